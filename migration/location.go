package migration

// Location names a document on the context file system. The zero Location
// falls back to the configured input or output file.
type Location struct {
	Path string
}

// At returns an explicit Location.
func At(path string) Location {
	return Location{Path: path}
}

// IsZero reports whether the location defers to the configured fallback.
func (l Location) IsZero() bool {
	return l.Path == ""
}

// resolve returns the explicit path, or fallback when none was given.
func (l Location) resolve(fallback string) (string, bool) {
	if !l.IsZero() {
		return l.Path, true
	}
	return fallback, fallback != ""
}
