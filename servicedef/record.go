package servicedef

import (
	"fmt"

	"github.com/buger/jsonparser"
	"github.com/goccy/go-json"

	"github.com/TykTechnologies/servicemigration/internal/reflect"
)

// Keys of the service record fields modeled by the SDK.
const (
	KeyID              = "ID"
	KeyParentServiceID = "ParentServiceID"
	KeyName            = "Name"
	KeyDescription     = "Description"
	KeyStartup         = "Startup"
	KeyDesiredState    = "DesiredState"
	KeyEndpoints       = "Endpoints"
	KeyRuns            = "Runs"
	KeyVolumes         = "Volumes"
	KeyHealthChecks    = "HealthChecks"
	KeyInstanceLimits  = "InstanceLimits"
)

// Record is the persisted form of one service. Modeled keys are decoded into
// named fields, sub-entity collections are kept as raw JSON for the leaf
// serializers, and every other key is kept verbatim in Extra so a load/save
// cycle never loses data the SDK does not know about.
type Record struct {
	ID              string
	ParentServiceID string
	Name            string
	Description     string
	Startup         string
	DesiredState    int

	Endpoints      json.RawMessage
	Runs           json.RawMessage
	Volumes        json.RawMessage
	HealthChecks   json.RawMessage
	InstanceLimits json.RawMessage

	// Extra holds the keys not modeled above.
	Extra map[string]json.RawMessage

	// present tracks modeled keys found in the input, these are written
	// back even when their value is zero. null tracks scalar keys that were
	// null in the input, they are written back as null while still zero.
	present map[string]bool
	null    map[string]bool
}

// Has reports whether the modeled key was present in the decoded input.
func (r *Record) Has(key string) bool {
	return r.present[key]
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	return reflect.Clone(r)
}

func (r *Record) markPresent(key string) {
	if r.present == nil {
		r.present = make(map[string]bool)
	}
	r.present[key] = true
}

func (r *Record) markNull(key string) {
	if r.null == nil {
		r.null = make(map[string]bool)
	}
	r.null[key] = true
}

func (r *Record) forget(key string) {
	delete(r.present, key)
	delete(r.null, key)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	return jsonparser.ObjectEach(data, func(key []byte, value []byte, dataType jsonparser.ValueType, _ int) error {
		name := string(key)
		raw := rawValue(value, dataType)

		var err error
		if dataType == jsonparser.Null && isScalarKey(name) {
			r.markNull(name)
		}

		switch name {
		case KeyID:
			err = decodeScalar(raw, &r.ID)
		case KeyParentServiceID:
			err = decodeScalar(raw, &r.ParentServiceID)
		case KeyName:
			err = decodeScalar(raw, &r.Name)
		case KeyDescription:
			err = decodeScalar(raw, &r.Description)
		case KeyStartup:
			err = decodeScalar(raw, &r.Startup)
		case KeyDesiredState:
			err = decodeScalar(raw, &r.DesiredState)
		case KeyEndpoints:
			r.Endpoints = raw
		case KeyRuns:
			r.Runs = raw
		case KeyVolumes:
			r.Volumes = raw
		case KeyHealthChecks:
			r.HealthChecks = raw
		case KeyInstanceLimits:
			r.InstanceLimits = raw
		default:
			if r.Extra == nil {
				r.Extra = make(map[string]json.RawMessage)
			}
			r.Extra[name] = raw
			return nil
		}
		if err != nil {
			return fmt.Errorf("service record field %s: %w", name, err)
		}

		r.markPresent(name)
		return nil
	})
}

// MarshalJSON implements json.Marshaler. Unknown keys are written back
// unchanged. A modeled key is written if it was present in the input or
// holds a non-zero value.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Extra)+11)
	for k, v := range r.Extra {
		out[k] = v
	}

	fields := []struct {
		key   string
		value interface{}
	}{
		{KeyID, r.ID},
		{KeyParentServiceID, r.ParentServiceID},
		{KeyName, r.Name},
		{KeyDescription, r.Description},
		{KeyStartup, r.Startup},
		{KeyDesiredState, r.DesiredState},
		{KeyEndpoints, r.Endpoints},
		{KeyRuns, r.Runs},
		{KeyVolumes, r.Volumes},
		{KeyHealthChecks, r.HealthChecks},
		{KeyInstanceLimits, r.InstanceLimits},
	}

	for _, f := range fields {
		if !r.Has(f.key) && reflect.IsEmpty(f.value) {
			continue
		}
		if raw, ok := f.value.(json.RawMessage); ok && len(raw) == 0 {
			f.value = json.RawMessage("null")
		}
		if r.null[f.key] && reflect.IsEmpty(f.value) {
			f.value = nil
		}
		out[f.key] = f.value
	}

	return json.Marshal(out)
}

// rawValue returns an owned copy of a value found by jsonparser. String
// values are handed over without their quotes and are still escaped, so
// quoting them again restores the original token.
func rawValue(value []byte, dataType jsonparser.ValueType) json.RawMessage {
	if dataType == jsonparser.String {
		raw := make(json.RawMessage, 0, len(value)+2)
		raw = append(raw, '"')
		raw = append(raw, value...)
		return append(raw, '"')
	}

	raw := make(json.RawMessage, len(value))
	copy(raw, value)
	return raw
}

func isScalarKey(key string) bool {
	switch key {
	case KeyID, KeyParentServiceID, KeyName, KeyDescription, KeyStartup, KeyDesiredState:
		return true
	}
	return false
}

func decodeScalar(raw json.RawMessage, dst interface{}) error {
	return json.Unmarshal(raw, dst)
}
