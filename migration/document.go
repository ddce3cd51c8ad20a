package migration

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/TykTechnologies/servicemigration/servicedef"
)

const documentIndent = "    "

// Document is the persisted layout of a migration document.
type Document struct {
	Version  string               `json:"Version"`
	Services []*servicedef.Record `json:"Services"`
	Deploy   []DeployRequest      `json:"Deploy"`
}

// DeployRequest is a queued service definition together with the
// identifier of the service it is deployed below.
type DeployRequest struct {
	Service  json.RawMessage `json:"Service"`
	ParentID string          `json:"ParentID"`
}

func decodeDocument(data []byte, validateSchema bool) (*Document, error) {
	if validateSchema {
		if err := servicedef.ValidateDocument(data); err != nil {
			return nil, err
		}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	for i, rec := range doc.Services {
		if rec == nil {
			return nil, fmt.Errorf("%w: service %d is null", ErrInvalidDocument, i)
		}
	}
	return &doc, nil
}

func encodeDocument(doc *Document) ([]byte, error) {
	if doc.Services == nil {
		doc.Services = []*servicedef.Record{}
	}
	if doc.Deploy == nil {
		doc.Deploy = []DeployRequest{}
	}

	data, err := json.MarshalIndent(doc, "", documentIndent)
	if err != nil {
		return nil, fmt.Errorf("encode migration document: %w", err)
	}
	return append(data, '\n'), nil
}
