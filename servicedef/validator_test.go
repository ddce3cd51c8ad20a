package servicedef

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TykTechnologies/servicemigration/internal/errors"
)

func buildServices(t *testing.T, records ...string) []*Service {
	t.Helper()

	services := make([]*Service, 0, len(records))
	for _, rec := range records {
		services = append(services, loadService(t, rec))
	}
	return services
}

func record(id, parentID, name string) string {
	return fmt.Sprintf(`{"ID": %q, "ParentServiceID": %q, "Name": %q}`, id, parentID, name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		services []string
		errs     []error
	}{
		{
			name: "valid tree",
			services: []string{
				record("t", "", "tenant"),
				record("a", "t", "a"),
				record("b", "a", "b"),
				record("", "a", "uncommitted"),
				record("", "a", "uncommitted"),
			},
		},
		{
			name:     "no services",
			services: nil,
			errs:     []error{ErrNoTenant},
		},
		{
			name: "two tenants",
			services: []string{
				record("t", "", "tenant"),
				record("u", "", "other"),
			},
			errs: []error{ErrMultipleTenants},
		},
		{
			name: "duplicate id",
			services: []string{
				record("t", "", "tenant"),
				record("a", "t", "a"),
				record("a", "t", "b"),
			},
			errs: []error{ErrDuplicateID},
		},
		{
			name: "missing parent",
			services: []string{
				record("t", "", "tenant"),
				record("a", "x", "a"),
			},
			errs: []error{ErrMissingParent},
		},
		{
			name: "cycle",
			services: []string{
				record("t", "", "tenant"),
				record("a", "b", "a"),
				record("b", "a", "b"),
				record("c", "a", "c"),
			},
			errs: []error{ErrCycle},
		},
		{
			name: "cycle without tenant",
			services: []string{
				record("a", "b", "a"),
				record("b", "a", "b"),
			},
			errs: []error{ErrNoTenant, ErrCycle},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(buildServices(t, tc.services...), DefaultValidationRuleSet)

			if len(tc.errs) == 0 {
				assert.True(t, result.Valid)
				assert.False(t, result.HasErrors())
				assert.NoError(t, result.Err())
				assert.Nil(t, result.FirstError())
				return
			}

			assert.False(t, result.Valid)
			require.Equal(t, len(tc.errs), result.ErrorCount())
			for i, expected := range tc.errs {
				assert.ErrorIs(t, result.ErrorAt(i), expected)
				assert.True(t, errors.IsStructural(result.ErrorAt(i)))
			}
			assert.ErrorIs(t, result.FirstError(), tc.errs[0])
			assert.ErrorIs(t, result.Err(), tc.errs[len(tc.errs)-1])
		})
	}
}

func TestValidationResult_ErrorAt(t *testing.T) {
	result := ValidationResult{Valid: true}
	assert.Nil(t, result.ErrorAt(0))
	assert.Nil(t, result.ErrorAt(-1))

	result.Append(ErrCycle)
	assert.False(t, result.Valid)
	assert.Equal(t, ErrCycle, result.ErrorAt(0))
	assert.Nil(t, result.ErrorAt(1))
}

func TestValidate_NilService(t *testing.T) {
	services := buildServices(t, record("t", "", "tenant"), record("a", "t", "a"))
	services = append(services, nil)

	result := Validate(services, DefaultValidationRuleSet)
	require.Equal(t, 1, result.ErrorCount())
	assert.ErrorIs(t, result.FirstError(), ErrNilService)
	assert.EqualError(t, result.FirstError(), "service 2: service is nil")
}
