package migration

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/TykTechnologies/servicemigration/servicedef"
)

// Definition is the raw JSON object of a service to deploy.
type Definition struct {
	raw json.RawMessage
}

// NewDefinition builds a Definition. JSON text given as a string, []byte or
// json.RawMessage is used as is, any other value is marshalled first. The
// result must be a JSON object.
func NewDefinition(v interface{}) (Definition, error) {
	var data []byte
	switch def := v.(type) {
	case string:
		data = []byte(def)
	case []byte:
		data = def
	case json.RawMessage:
		data = def
	default:
		var err error
		if data, err = json.Marshal(v); err != nil {
			return Definition{}, fmt.Errorf("%w: %w", ErrDefinition, err)
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return Definition{}, fmt.Errorf("%w: %w", ErrDefinition, err)
	}
	if compact.Len() == 0 || compact.Bytes()[0] != '{' {
		return Definition{}, ErrDefinition
	}

	return Definition{raw: compact.Bytes()}, nil
}

// Raw returns the JSON object of the definition.
func (d Definition) Raw() json.RawMessage {
	return d.raw
}

// ParentRef identifies the parent of a deployed service, either by
// identifier or by a Service of the context.
type ParentRef struct {
	id  string
	svc *servicedef.Service
}

// ByID refers to a parent by its identifier.
func ByID(id string) ParentRef {
	return ParentRef{id: id}
}

// ByService refers to a parent by its Service.
func ByService(svc *servicedef.Service) ParentRef {
	return ParentRef{svc: svc}
}

func (p ParentRef) resolve() (string, error) {
	if p.svc != nil {
		if !p.svc.Committed() {
			return "", fmt.Errorf("%w: %q", ErrDeployToNew, p.svc.Name)
		}
		return p.svc.ID(), nil
	}
	if p.id == "" {
		return "", ErrDeployToNew
	}
	return p.id, nil
}

// DeployService queues def for deployment below parent. The service is not
// added to Services, it only shows up once the committed document has been
// processed and loaded again.
func (c *ServiceContext) DeployService(def Definition, parent ParentRef) error {
	if len(def.raw) == 0 {
		return ErrDefinition
	}

	parentID, err := parent.resolve()
	if err != nil {
		return err
	}

	service := make(json.RawMessage, len(def.raw))
	copy(service, def.raw)

	c.deploy = append(c.deploy, DeployRequest{
		Service:  service,
		ParentID: parentID,
	})
	c.log.WithField("parent", parentID).Debug("Queued service deployment")
	return nil
}

// Deployments returns a copy of the deploy queue.
func (c *ServiceContext) Deployments() []DeployRequest {
	out := make([]DeployRequest, len(c.deploy))
	copy(out, c.deploy)
	return out
}
