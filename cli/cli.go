// Package cli wires the svcmigrate commands.
package cli

import (
	"fmt"

	kingpin "github.com/alecthomas/kingpin/v2"

	"github.com/TykTechnologies/servicemigration/cli/document"
	"github.com/TykTechnologies/servicemigration/cli/edit"
	"github.com/TykTechnologies/servicemigration/cli/inspect"
	"github.com/TykTechnologies/servicemigration/cli/linter"
	"github.com/TykTechnologies/servicemigration/config"
	logger "github.com/TykTechnologies/servicemigration/log"
	"github.com/TykTechnologies/servicemigration/version"
)

const (
	appName = "svcmigrate"
	appDesc = "Inspect and edit service migration documents."

	requireCmdName = "require"
	requireCmdDesc = "Check that this tool satisfies a required SDK version"
)

var (
	app *kingpin.Application

	log = logger.Get().WithField("prefix", "main")
)

// Init sets up the command line application. The first existing file of
// confPaths is loaded unless --conf names another one.
func Init(confPaths []string) {
	app = kingpin.New(appName, appDesc)
	app.Version(version.APIVersion)
	app.HelpFlag.Short('h')

	confFile := app.Flag("conf", "Load a named configuration file").PlaceHolder("FILE").String()
	logLevel := app.Flag("log-level", "Log level, overrides the configuration").Enum("debug", "info", "warn", "error")

	app.PreAction(func(*kingpin.ParseContext) error {
		paths := confPaths
		if *confFile != "" {
			paths = []string{*confFile}
		}

		conf := &config.Config{}
		if err := config.Load(document.Fs, paths, conf); err != nil {
			return err
		}
		if *logLevel != "" {
			conf.LogLevel = *logLevel
		}

		logger.Get().SetLevel(logger.ParseLevel(conf.LogLevel))
		document.Conf = conf
		return nil
	})

	requireCmd := app.Command(requireCmdName, requireCmdDesc)
	required := requireCmd.Arg("version", "Required SDK version, e.g. 1.0.0").Required().String()
	requireCmd.Action(func(*kingpin.ParseContext) error {
		if err := version.Require(*required); err != nil {
			return err
		}
		fmt.Fprintf(document.Out, "%s satisfies %s\n", version.APIVersion, *required)
		return nil
	})

	inspect.AddTo(app)
	linter.AddTo(app)
	edit.AddTo(app)
}

// Parse runs the command named by args.
func Parse(args []string) error {
	command, err := app.Parse(args)
	if err != nil {
		return err
	}
	log.Debugf("Finished %s", command)
	return nil
}
