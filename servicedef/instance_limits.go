package servicedef

import (
	"github.com/goccy/go-json"
)

// InstanceLimits bounds the number of running instances of a service.
type InstanceLimits struct {
	Min     int `mapstructure:"Min"`
	Max     int `mapstructure:"Max"`
	Default int `mapstructure:"Default"`

	Extra map[string]interface{} `mapstructure:",remain"`

	keys leafKeys
	null bool
}

// DeserializeInstanceLimits converts the raw InstanceLimits object of a
// record. A missing or null object yields the zero InstanceLimits.
func DeserializeInstanceLimits(raw json.RawMessage) (InstanceLimits, error) {
	var limits InstanceLimits
	if len(raw) == 0 {
		return limits, nil
	}

	var item map[string]interface{}
	if err := unmarshalNumbers(raw, &item); err != nil {
		return limits, err
	}
	if item == nil {
		limits.null = true
		return limits, nil
	}

	keys, err := decodeLeaf(item, &limits)
	if err != nil {
		return limits, err
	}
	limits.keys = keys
	return limits, nil
}

// SerializeInstanceLimits is the inverse of DeserializeInstanceLimits.
func SerializeInstanceLimits(limits InstanceLimits) (json.RawMessage, error) {
	if limits.null && limits.isZero() {
		return encodeValue(nil, true)
	}

	out, err := encodeLeaf(limits, limits.Extra, limits.keys)
	if err != nil {
		return nil, err
	}
	return encodeValue(out, false)
}

func (l InstanceLimits) isZero() bool {
	return l.Min == 0 && l.Max == 0 && l.Default == 0 && len(l.Extra) == 0
}
