package servicedef

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Endpoint is a network endpoint a service exports or imports.
type Endpoint struct {
	Name                string   `mapstructure:"Name"`
	Purpose             string   `mapstructure:"Purpose"`
	Protocol            string   `mapstructure:"Protocol"`
	PortNumber          int      `mapstructure:"PortNumber"`
	Application         string   `mapstructure:"Application"`
	ApplicationTemplate string   `mapstructure:"ApplicationTemplate"`
	VHosts              []string `mapstructure:"VHosts"`

	Extra map[string]interface{} `mapstructure:",remain"`

	keys leafKeys
}

// DeserializeEndpoints converts the raw Endpoints collection of a record.
func DeserializeEndpoints(raw json.RawMessage) ([]Endpoint, error) {
	items, err := decodeList(raw)
	if err != nil || items == nil {
		return nil, err
	}

	endpoints := make([]Endpoint, len(items))
	for i, item := range items {
		keys, err := decodeLeaf(item, &endpoints[i])
		if err != nil {
			return nil, fmt.Errorf("endpoint %d: %w", i, err)
		}
		endpoints[i].keys = keys
	}
	return endpoints, nil
}

// SerializeEndpoints is the inverse of DeserializeEndpoints.
func SerializeEndpoints(endpoints []Endpoint) (json.RawMessage, error) {
	if endpoints == nil {
		return encodeValue(nil, true)
	}

	out := make([]map[string]interface{}, len(endpoints))
	for i := range endpoints {
		item, err := encodeLeaf(endpoints[i], endpoints[i].Extra, endpoints[i].keys)
		if err != nil {
			return nil, fmt.Errorf("endpoint %d: %w", i, err)
		}
		out[i] = item
	}
	return encodeValue(out, false)
}
