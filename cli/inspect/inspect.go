package inspect

import (
	"fmt"
	"strings"

	kingpin "github.com/alecthomas/kingpin/v2"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/TykTechnologies/servicemigration/cli/document"
	logger "github.com/TykTechnologies/servicemigration/log"
	"github.com/TykTechnologies/servicemigration/migration"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

const (
	treeCmdName = "tree"
	treeCmdDesc = "Print the service tree of a migration document"
	findCmdName = "find"
	findCmdDesc = "Print the paths of the services matching a pattern"

	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

var (
	inspector = &Inspector{}

	log = logger.Get().WithField("prefix", "inspect")
)

// Inspector prints the content of a migration document.
type Inspector struct {
	treeSource document.Source
	findSource document.Source
	format     *string
	pattern    *string
	exact      *bool
}

// Node is one service of the printed tree.
type Node struct {
	Name     string  `json:"name" yaml:"name"`
	ID       string  `json:"id,omitempty" yaml:"id,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Tree prints the service tree.
func (i *Inspector) Tree(_ *kingpin.ParseContext) error {
	ctx, err := i.treeSource.Load()
	if err != nil {
		return err
	}

	tenant := ctx.Tenant()
	if tenant == nil {
		return fmt.Errorf("document has no tenant")
	}
	root := buildNode(ctx, tenant, map[*servicedef.Service]bool{})

	switch *i.format {
	case formatYAML:
		enc := yaml.NewEncoder(document.Out)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		data, err := json.MarshalIndent(root, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(document.Out, string(data))
		return err
	default:
		printNode(root, 0)
		return nil
	}
}

func buildNode(ctx *migration.ServiceContext, svc *servicedef.Service, seen map[*servicedef.Service]bool) *Node {
	seen[svc] = true
	node := &Node{Name: svc.Name, ID: svc.ID()}
	for _, child := range ctx.ServiceChildren(svc) {
		if seen[child] {
			log.Warnf("Skipping %s, already printed", child.Name)
			continue
		}
		node.Children = append(node.Children, buildNode(ctx, child, seen))
	}
	return node
}

func printNode(node *Node, depth int) {
	fmt.Fprintf(document.Out, "%s%s\n", strings.Repeat("  ", depth), node.Name)
	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}

// Find prints the path of every service matching the pattern, or of the
// service at that exact path with --exact.
func (i *Inspector) Find(_ *kingpin.ParseContext) error {
	ctx, err := i.findSource.Load()
	if err != nil {
		return err
	}

	if *i.exact {
		svc := ctx.FindService(*i.pattern)
		if svc == nil {
			return fmt.Errorf("no unique service at %s", *i.pattern)
		}
		fmt.Fprintf(document.Out, "%s\t%s\n", ctx.ServicePath(svc), svc.ID())
		return nil
	}

	svcs, err := ctx.FindServices(*i.pattern)
	if err != nil {
		return err
	}
	for _, svc := range svcs {
		fmt.Fprintf(document.Out, "%s\t%s\n", ctx.ServicePath(svc), svc.ID())
	}
	log.Debugf("%d services match %s", len(svcs), *i.pattern)
	return nil
}

// AddTo registers the tree and find commands.
func AddTo(app *kingpin.Application) {
	treeCmd := app.Command(treeCmdName, treeCmdDesc)
	inspector.treeSource.Register(treeCmd, false)
	inspector.format = treeCmd.Flag("format", "Output format").Short('o').Default(formatText).Enum(formatText, formatYAML, formatJSON)
	treeCmd.Action(inspector.Tree)

	findCmd := app.Command(findCmdName, findCmdDesc)
	inspector.findSource.Register(findCmd, false)
	inspector.pattern = findCmd.Arg("pattern", "Regular expression matched against service paths").Required().String()
	inspector.exact = findCmd.Flag("exact", "Treat the pattern as a service path").Bool()
	findCmd.Action(inspector.Find)
}
