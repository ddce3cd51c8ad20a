// Package document holds the flags and helpers shared by the commands that
// read or write a migration document.
package document

import (
	"io"
	"os"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/TykTechnologies/servicemigration/config"
	"github.com/TykTechnologies/servicemigration/migration"
)

var (
	// Fs is the file system documents are read from and written to.
	Fs = afero.NewOsFs()
	// Out receives command output.
	Out io.Writer = os.Stdout
	// Conf is the loaded tool configuration. The environment is read when
	// it is nil.
	Conf *config.Config
)

// Config returns Conf, or the configuration currently set in the environment.
func Config() (*config.Config, error) {
	if Conf != nil {
		return Conf, nil
	}
	return config.FromEnv()
}

// Source is the input and output location of a command.
type Source struct {
	input  *string
	output *string
}

// Register adds the --input flag, and --output when writable is set.
func (s *Source) Register(cmd *kingpin.CmdClause, writable bool) {
	s.input = cmd.Flag("input", "Migration document to read, defaults to $MIGRATE_INPUTFILE").Short('i').String()
	if writable {
		s.output = cmd.Flag("output", "Location to commit to, defaults to $MIGRATE_OUTPUTFILE").String()
	}
}

// Load reads the document named by --input or by the environment.
func (s *Source) Load(opts ...migration.Option) (*migration.ServiceContext, error) {
	conf, err := Config()
	if err != nil {
		return nil, err
	}

	opts = append([]migration.Option{migration.WithFs(Fs), migration.WithConfig(conf)}, opts...)
	return migration.Load(migration.At(s.InputPath()), opts...)
}

// InputPath returns the --input value, empty when the flag was not given.
func (s *Source) InputPath() string {
	if s.input == nil {
		return ""
	}
	return *s.input
}

// Commit writes ctx to --output or the configured output file.
func (s *Source) Commit(ctx *migration.ServiceContext) error {
	var loc migration.Location
	if s.output != nil {
		loc = migration.At(*s.output)
	}
	return ctx.Commit(loc)
}
