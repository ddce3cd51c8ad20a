package edit

import (
	"fmt"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/spf13/afero"

	"github.com/TykTechnologies/servicemigration/cli/document"
	logger "github.com/TykTechnologies/servicemigration/log"
	"github.com/TykTechnologies/servicemigration/migration"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

const (
	reparentCmdName = "reparent"
	reparentCmdDesc = "Move a service below another service"
	deployCmdName   = "deploy"
	deployCmdDesc   = "Queue a service definition for deployment"
)

var (
	editor = &Editor{}

	log = logger.Get().WithField("prefix", "edit")
)

// Editor applies one change to a migration document and commits it.
type Editor struct {
	reparentSource document.Source
	deploySource   document.Source

	service        *string
	reparentParent *string
	validate       *bool
	definition     *string
	deployParent   *string
}

func findService(ctx *migration.ServiceContext, path string) (*servicedef.Service, error) {
	svc := ctx.FindService(path)
	if svc == nil {
		return nil, fmt.Errorf("no unique service at %s", path)
	}
	return svc, nil
}

// Reparent moves the service at the first path below the one at the second.
func (e *Editor) Reparent(_ *kingpin.ParseContext) error {
	ctx, err := e.reparentSource.Load(migration.WithValidateOnCommit(*e.validate))
	if err != nil {
		return err
	}

	svc, err := findService(ctx, *e.service)
	if err != nil {
		return err
	}
	parent, err := findService(ctx, *e.reparentParent)
	if err != nil {
		return err
	}

	if err := ctx.ReparentService(svc, parent); err != nil {
		return fmt.Errorf("reparent %s: %w", *e.service, err)
	}
	log.Infof("Moved %s to %s", svc.Name, ctx.ServicePath(svc))

	return e.reparentSource.Commit(ctx)
}

// Deploy queues the definition file below the service at --parent.
func (e *Editor) Deploy(_ *kingpin.ParseContext) error {
	ctx, err := e.deploySource.Load()
	if err != nil {
		return err
	}

	parent, err := findService(ctx, *e.deployParent)
	if err != nil {
		return err
	}

	data, err := afero.ReadFile(document.Fs, *e.definition)
	if err != nil {
		return err
	}
	def, err := migration.NewDefinition(data)
	if err != nil {
		return fmt.Errorf("%s: %w", *e.definition, err)
	}

	if err := ctx.DeployService(def, migration.ByService(parent)); err != nil {
		return err
	}
	log.Infof("Queued %s below %s", *e.definition, ctx.ServicePath(parent))

	return e.deploySource.Commit(ctx)
}

// AddTo registers the reparent and deploy commands.
func AddTo(app *kingpin.Application) {
	reparentCmd := app.Command(reparentCmdName, reparentCmdDesc)
	editor.reparentSource.Register(reparentCmd, true)
	editor.service = reparentCmd.Arg("service", "Path of the service to move").Required().String()
	editor.reparentParent = reparentCmd.Arg("parent", "Path of the new parent").Required().String()
	editor.validate = reparentCmd.Flag("validate", "Validate the service tree before committing").Default("true").Bool()
	reparentCmd.Action(editor.Reparent)

	deployCmd := app.Command(deployCmdName, deployCmdDesc)
	editor.deploySource.Register(deployCmd, true)
	editor.definition = deployCmd.Arg("definition", "File holding the service definition").Required().String()
	editor.deployParent = deployCmd.Flag("parent", "Path of the parent service").Required().String()
	deployCmd.Action(editor.Deploy)
}
