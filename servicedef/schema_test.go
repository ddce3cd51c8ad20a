package servicedef

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TykTechnologies/servicemigration/internal/errors"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{
			name:     "minimal",
			document: `{"Services": []}`,
			valid:    true,
		},
		{
			name:     "full",
			document: `{"Version": "1.0.0", "Services": [` + recordJSON + `], "Deploy": [{"Service": {"Name": "x"}, "ParentID": "a"}], "Other": 1}`,
			valid:    true,
		},
		{
			name:     "null deploy",
			document: `{"Services": [{"Name": "a"}], "Deploy": null}`,
			valid:    true,
		},
		{
			name:     "missing services",
			document: `{"Version": "1.0.0"}`,
		},
		{
			name:     "service without name",
			document: `{"Services": [{"ID": "a"}]}`,
		},
		{
			name:     "runs with non string command",
			document: `{"Services": [{"Name": "a", "Runs": {"x": 1}}]}`,
		},
		{
			name:     "deploy without parent",
			document: `{"Services": [], "Deploy": [{"Service": {}}]}`,
		},
		{
			name:     "not json",
			document: `{"Services": [`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocument([]byte(tc.document))
			if tc.valid {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, ErrInvalidDocument)
			assert.True(t, errors.IsStructural(err))
		})
	}
}
