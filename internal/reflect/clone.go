package reflect

import (
	clone "github.com/huandu/go-clone"
)

// Clone returns a deep copy of t. Maps, slices and pointers are copied
// recursively, so mutating the result never affects the source.
func Clone[T any](t T) T {
	cloned, ok := clone.Clone(t).(T)
	if !ok {
		var zero T
		return zero
	}
	return cloned
}
