package linter

import (
	"bytes"
	"fmt"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"

	"github.com/TykTechnologies/servicemigration/cli/document"
	"github.com/TykTechnologies/servicemigration/config"
	"github.com/TykTechnologies/servicemigration/internal/errors"
	"github.com/TykTechnologies/servicemigration/migration"
)

const (
	cmdName = "lint"
	cmdDesc = "Check a migration document against the schema and the tree rules"
)

var linter = &Linter{}

// Linter checks migration documents.
type Linter struct {
	source document.Source
}

// Run checks a migration document and returns one message per problem. The
// error is only set when the document could not be checked at all.
func Run(data []byte) ([]string, error) {
	_, err := migration.LoadFrom(bytes.NewReader(data), migration.WithConfig(&config.Config{ValidateSchema: true}))
	if err == nil {
		return nil, nil
	}

	var merr *multierror.Error
	if errors.As(err, &merr) {
		problems := make([]string, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			problems = append(problems, e.Error())
		}
		return problems, nil
	}

	if errors.IsStructural(err) {
		return []string{err.Error()}, nil
	}
	return nil, err
}

// Lint is the action of the lint command.
func (l *Linter) Lint(_ *kingpin.ParseContext) error {
	path := l.source.InputPath()
	if path == "" {
		conf, err := document.Config()
		if err != nil {
			return err
		}
		path = conf.InputFile
	}
	if path == "" {
		return migration.ErrNoInput
	}

	data, err := afero.ReadFile(document.Fs, path)
	if err != nil {
		return err
	}

	problems, err := Run(data)
	if err != nil {
		return err
	}
	for _, problem := range problems {
		fmt.Fprintf(document.Out, "%s: %s\n", path, problem)
	}
	if len(problems) > 0 {
		return fmt.Errorf("found %d problems in %s", len(problems), path)
	}

	fmt.Fprintf(document.Out, "%s: ok\n", path)
	return nil
}

// AddTo registers the lint command.
func AddTo(app *kingpin.Application) {
	cmd := app.Command(cmdName, cmdDesc)
	linter.source.Register(cmd, false)
	cmd.Action(linter.Lint)
}
