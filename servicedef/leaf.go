package servicedef

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	refl "github.com/TykTechnologies/servicemigration/internal/reflect"
)

// extraField is the name of the ",remain" field on every leaf type.
const extraField = "Extra"

// leafKeys records the keys found on a decoded leaf object. Input values
// the typed field cannot reproduce (null, a fraction in an integer field)
// are kept with their typed form and written back while that form is
// unchanged.
type leafKeys map[string]*leafValue

type leafValue struct {
	input interface{}
	typed json.RawMessage
}

// decodeLeaf maps one raw leaf object onto out. Keys without a matching
// field end up in the leaf's Extra map.
func decodeLeaf(input map[string]interface{}, out interface{}) (leafKeys, error) {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:     out,
		MatchName:  matchExact,
		DecodeHook: numberHook,
	})
	if err != nil {
		return nil, err
	}

	if err := dec.Decode(input); err != nil {
		return nil, err
	}

	typed := make(map[string]interface{})
	if err := mapstructure.Decode(out, &typed); err != nil {
		return nil, err
	}

	keys := make(leafKeys, len(input))
	for k, v := range input {
		keys[k] = &leafValue{}

		t, ok := typed[k]
		if !ok || k == extraField {
			continue
		}
		if same, err := sameJSON(v, t); err != nil || same {
			continue
		}
		data, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		keys[k] = &leafValue{input: v, typed: data}
	}
	return keys, nil
}

// numberHook converts json.Number input for numeric fields. Fractions are
// truncated for integer fields, the input is kept by decodeLeaf.
func numberHook(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if i, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
			return i, nil
		}
		return n.Float64()
	case reflect.Float32, reflect.Float64:
		return n.Float64()
	}
	return data, nil
}

// matchExact keeps key matching case sensitive, so a key differing from a
// field name only in case is preserved in Extra instead of being renamed.
func matchExact(mapKey, fieldName string) bool {
	return mapKey == fieldName
}

// encodeLeaf is the inverse of decodeLeaf. Modeled keys that were absent
// from the original object and are still zero are left out.
func encodeLeaf(in interface{}, extra map[string]interface{}, keys leafKeys) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	if err := mapstructure.Decode(in, &out); err != nil {
		return nil, err
	}
	delete(out, extraField)

	for k, v := range out {
		kept := keys[k]
		if kept == nil {
			if refl.IsEmpty(v) {
				delete(out, k)
			}
			continue
		}
		if kept.typed == nil {
			continue
		}
		if same, err := sameJSON(json.RawMessage(kept.typed), v); err == nil && same {
			out[k] = kept.input
		}
	}

	for k, v := range extra {
		out[k] = v
	}
	return out, nil
}

func sameJSON(a, b interface{}) (bool, error) {
	da, err := json.Marshal(a)
	if err != nil {
		return false, err
	}
	db, err := json.Marshal(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}

// unmarshalNumbers decodes raw into v keeping numbers as json.Number, so
// integers beyond float64 precision survive in Extra.
func unmarshalNumbers(raw json.RawMessage, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// decodeList unmarshals a raw JSON array of objects. A missing or null
// collection yields nil, an empty one a non-nil empty slice.
func decodeList(raw json.RawMessage) ([]map[string]interface{}, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var items []map[string]interface{}
	if err := unmarshalNumbers(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// decodeNamed unmarshals a raw JSON object keyed by name and returns it
// together with its keys in sorted order.
func decodeNamed[T any](raw json.RawMessage) (map[string]T, []string, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}

	var items map[string]T
	if err := unmarshalNumbers(raw, &items); err != nil {
		return nil, nil, err
	}

	names := lo.Keys(items)
	sort.Strings(names)
	return items, names, nil
}

func encodeValue(v interface{}, isNil bool) (json.RawMessage, error) {
	if isNil {
		return json.RawMessage("null"), nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("leaf serialization: %w", err)
	}
	return data, nil
}
