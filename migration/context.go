// Package migration loads a service migration document, exposes its
// services as a tree and writes the modified document back.
//
// A ServiceContext is not safe for concurrent use.
package migration

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/TykTechnologies/servicemigration/internal/errors"
	logger "github.com/TykTechnologies/servicemigration/log"
	"github.com/TykTechnologies/servicemigration/servicedef"
)

// ServiceContext holds the services of one migration document.
//
// Services may be modified directly: appending a service adds it to the
// tree, removing one deletes it. Parent and child relations are derived
// from the parent references of the services on every query.
type ServiceContext struct {
	Services []*servicedef.Service
	Version  string

	deploy []DeployRequest
	opts   options
	log    logger.Logger
	idx    index
}

// New loads the document found at the configured input file.
func New(opts ...Option) (*ServiceContext, error) {
	return Load(Location{}, opts...)
}

// Load reads the document at loc. A zero loc falls back to the configured
// input file, ErrNoInput is returned when neither is set.
func Load(loc Location, opts ...Option) (*ServiceContext, error) {
	o := newOptions(opts)

	conf, err := o.config()
	if err != nil {
		return nil, err
	}

	path, ok := loc.resolve(conf.InputFile)
	if !ok {
		return nil, ErrNoInput
	}

	data, err := afero.ReadFile(o.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read migration input: %w", err)
	}

	ctx, err := decode(data, o, o.schemaValidation(conf))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	ctx.log.WithFields(logger.Fields{
		"path":     path,
		"services": len(ctx.Services),
		"version":  ctx.Version,
	}).Info("Loaded migration document")
	return ctx, nil
}

// LoadFrom reads a document from r.
func LoadFrom(r io.Reader, opts ...Option) (*ServiceContext, error) {
	o := newOptions(opts)

	conf, err := o.config()
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read migration input: %w", err)
	}

	return decode(data, o, o.schemaValidation(conf))
}

func decode(data []byte, o options, validateSchema bool) (*ServiceContext, error) {
	doc, err := decodeDocument(data, validateSchema)
	if err != nil {
		return nil, err
	}

	services := make([]*servicedef.Service, len(doc.Services))
	for i, rec := range doc.Services {
		if services[i], err = servicedef.Deserialize(rec); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}

	result := servicedef.Validate(services, servicedef.DefaultValidationRuleSet)
	if err := result.Err(); err != nil {
		return nil, err
	}

	return &ServiceContext{
		Services: services,
		Version:  doc.Version,
		deploy:   doc.Deploy,
		opts:     o,
		log:      o.log,
	}, nil
}

// Validate runs the structural rule set against the current services.
func (c *ServiceContext) Validate() error {
	result := servicedef.Validate(c.Services, servicedef.DefaultValidationRuleSet)
	return result.Err()
}

// Document returns the persisted form of the context.
func (c *ServiceContext) Document() (*Document, error) {
	doc := &Document{
		Version:  c.Version,
		Services: make([]*servicedef.Record, 0, len(c.Services)),
		Deploy:   c.Deployments(),
	}

	for i, svc := range c.Services {
		if svc == nil {
			return nil, fmt.Errorf("service %d: %w", i, ErrNilService)
		}
		rec, err := servicedef.Serialize(svc)
		if err != nil {
			return nil, err
		}
		doc.Services = append(doc.Services, rec)
	}
	return doc, nil
}

// Commit writes the whole document to loc, replacing its content. A zero
// loc falls back to the configured output file, ErrNoOutput is returned
// when neither is set.
func (c *ServiceContext) Commit(loc Location) error {
	conf, err := c.opts.config()
	if err != nil {
		return err
	}

	path, ok := loc.resolve(conf.OutputFile)
	if !ok {
		return ErrNoOutput
	}

	data, err := c.encode()
	if err != nil {
		return err
	}

	if err := afero.WriteFile(c.opts.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write migration output: %w", err)
	}

	c.log.WithFields(logger.Fields{
		"path":     path,
		"services": len(c.Services),
		"deploy":   len(c.deploy),
	}).Info("Committed migration document")
	return nil
}

// CommitTo writes the whole document to w.
func (c *ServiceContext) CommitTo(w io.Writer) error {
	data, err := c.encode()
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

func (c *ServiceContext) encode() ([]byte, error) {
	if c.opts.validateOnCommit {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("commit rejected: %w", err)
		}
	}

	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return encodeDocument(doc)
}

// IsConfigurationError reports whether err was caused by an unresolved
// input or output location.
func IsConfigurationError(err error) bool {
	return errors.IsConfiguration(err)
}
