package errors

import (
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	errConfig := NewClassified(ClassConfiguration, "no input")
	errTree := NewClassified(ClassStructural, "cycle")
	errVersion := NewClassified(ClassVersion, "incompatible")

	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ClassUnknown},
		{"plain", New("plain"), ClassUnknown},
		{"configuration", errConfig, ClassConfiguration},
		{"structural", errTree, ClassStructural},
		{"version", errVersion, ClassVersion},
		{"wrapped", fmt.Errorf("commit: %w", errConfig), ClassConfiguration},
		{"double wrapped", fmt.Errorf("%w: %w", New("other"), errTree), ClassStructural},
		{"multierror", multierror.Append(nil, errVersion), ClassVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestClassifiedError(t *testing.T) {
	err := NewClassified(ClassStructural, "can't reparent tenant")

	assert.Equal(t, "can't reparent tenant", err.Error())
	assert.True(t, IsStructural(err))
	assert.False(t, IsConfiguration(err))
	assert.True(t, Is(fmt.Errorf("wrap: %w", err), err))
	assert.Equal(t, "unknown", ClassUnknown.String())
	assert.Equal(t, "version", ClassVersion.String())
}
