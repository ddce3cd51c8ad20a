package servicedef

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Volume is a host path mounted into the service container.
type Volume struct {
	Owner         string `mapstructure:"Owner"`
	Permission    string `mapstructure:"Permission"`
	ResourcePath  string `mapstructure:"ResourcePath"`
	ContainerPath string `mapstructure:"ContainerPath"`
	Type          string `mapstructure:"Type"`

	Extra map[string]interface{} `mapstructure:",remain"`

	keys leafKeys
}

// DeserializeVolumes converts the raw Volumes collection of a record.
func DeserializeVolumes(raw json.RawMessage) ([]Volume, error) {
	items, err := decodeList(raw)
	if err != nil || items == nil {
		return nil, err
	}

	volumes := make([]Volume, len(items))
	for i, item := range items {
		keys, err := decodeLeaf(item, &volumes[i])
		if err != nil {
			return nil, fmt.Errorf("volume %d: %w", i, err)
		}
		volumes[i].keys = keys
	}
	return volumes, nil
}

// SerializeVolumes is the inverse of DeserializeVolumes.
func SerializeVolumes(volumes []Volume) (json.RawMessage, error) {
	if volumes == nil {
		return encodeValue(nil, true)
	}

	out := make([]map[string]interface{}, len(volumes))
	for i := range volumes {
		item, err := encodeLeaf(volumes[i], volumes[i].Extra, volumes[i].keys)
		if err != nil {
			return nil, fmt.Errorf("volume %d: %w", i, err)
		}
		out[i] = item
	}
	return encodeValue(out, false)
}
