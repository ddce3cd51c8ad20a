package errors

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
)

func TestFormatter(t *testing.T) {
	tests := []struct {
		name     string
		errs     []error
		expected string
	}{
		{"none", []error{}, ""},
		{"single", []error{New("duplicate service id")}, "duplicate service id"},
		{"multiple", []error{New("no tenant"), New("cycle")}, "no tenant\ncycle"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Formatter(tc.errs))
		})
	}
}

func TestFormatterAsMultierrorFormat(t *testing.T) {
	merr := &multierror.Error{ErrorFormat: Formatter}
	merr = multierror.Append(merr, New("first"), New("second"))

	assert.Equal(t, "first\nsecond", merr.Error())
}
