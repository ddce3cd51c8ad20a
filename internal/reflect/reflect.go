package reflect

import (
	"math"
	"reflect"
)

// IsEmpty reports whether i holds a value that should be left out of a
// serialized record when its key was not present in the input.
func IsEmpty(i interface{}) bool {
	return IsZero(reflect.ValueOf(i))
}

// IsZero is a customized implementation of reflect.Value.IsZero. Slices and
// maps of length 0 count as zero, and so does a pointer to a zero value.
func IsZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return math.Float64bits(v.Float()) == 0
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !IsZero(v.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	case reflect.Ptr:
		if v.IsNil() {
			return true
		}
		return IsZero(v.Elem())
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if !IsZero(v.Field(i)) {
				return false
			}
		}
		return true
	default:
		panic(&reflect.ValueError{Method: "reflect.IsZero", Kind: v.Kind()})
	}
}
