package servicedef

import (
	"fmt"

	"github.com/goccy/go-json"
)

// HealthCheck is a named script run periodically to probe the service.
// Health checks are persisted as an object keyed by name.
type HealthCheck struct {
	Name     string  `mapstructure:"-"`
	Script   string  `mapstructure:"Script"`
	Interval float64 `mapstructure:"Interval"`
	Timeout  float64 `mapstructure:"Timeout"`

	Extra map[string]interface{} `mapstructure:",remain"`

	keys leafKeys
}

// DeserializeHealthChecks converts the raw HealthChecks collection of a
// record, ordered by name.
func DeserializeHealthChecks(raw json.RawMessage) ([]HealthCheck, error) {
	items, names, err := decodeNamed[map[string]interface{}](raw)
	if err != nil || items == nil {
		return nil, err
	}

	checks := make([]HealthCheck, len(names))
	for i, name := range names {
		keys, err := decodeLeaf(items[name], &checks[i])
		if err != nil {
			return nil, fmt.Errorf("health check %q: %w", name, err)
		}
		checks[i].Name = name
		checks[i].keys = keys
	}
	return checks, nil
}

// SerializeHealthChecks is the inverse of DeserializeHealthChecks.
func SerializeHealthChecks(checks []HealthCheck) (json.RawMessage, error) {
	if checks == nil {
		return encodeValue(nil, true)
	}

	out := make(map[string]map[string]interface{}, len(checks))
	for i := range checks {
		item, err := encodeLeaf(checks[i], checks[i].Extra, checks[i].keys)
		if err != nil {
			return nil, fmt.Errorf("health check %q: %w", checks[i].Name, err)
		}
		out[checks[i].Name] = item
	}
	return encodeValue(out, false)
}
