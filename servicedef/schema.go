package servicedef

import (
	"embed"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/xeipuuv/gojsonschema"

	tykerrors "github.com/TykTechnologies/servicemigration/internal/errors"
)

//go:embed schema/*
var schemaDir embed.FS

const documentSchemaFile = "schema/document.json"

var (
	// ErrInvalidDocument is returned when a document does not match the schema.
	ErrInvalidDocument = tykerrors.NewClassified(tykerrors.ClassStructural, "invalid migration document")

	schemaOnce     sync.Once
	documentSchema *gojsonschema.Schema
	schemaErr      error
)

func loadDocumentSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		data, err := schemaDir.ReadFile(documentSchemaFile)
		if err != nil {
			schemaErr = fmt.Errorf("%s loading failed: %w", documentSchemaFile, err)
			return
		}

		documentSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	})
	return documentSchema, schemaErr
}

// ValidateDocument checks a raw migration document against the embedded
// JSON schema. Only the layout is checked: the document must be an object
// with a Services array of named records and an optional Deploy queue.
// Unknown keys are allowed anywhere.
func ValidateDocument(document []byte) error {
	schema, err := loadDocumentSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	if result.Valid() {
		return nil
	}

	combinedErr := &multierror.Error{}
	combinedErr.ErrorFormat = tykerrors.Formatter

	for _, validationErr := range result.Errors() {
		combinedErr = multierror.Append(combinedErr, tykerrors.New(validationErr.String()))
	}

	return fmt.Errorf("%w: %w", ErrInvalidDocument, combinedErr.ErrorOrNil())
}
