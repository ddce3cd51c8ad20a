package errors

// Class groups SDK errors by how a caller is expected to react to them.
type Class string

const (
	// ClassUnknown is returned for errors the SDK did not originate.
	ClassUnknown Class = ""

	// ClassConfiguration covers unresolved input or output locations. The
	// caller has to supply a location and retry the whole operation.
	ClassConfiguration Class = "configuration"

	// ClassStructural covers rejected tree mutations and malformed trees.
	// A rejected operation leaves the in-memory tree unchanged.
	ClassStructural Class = "structural"

	// ClassVersion covers SDK/document version incompatibilities.
	ClassVersion Class = "version"
)

// String returns the string representation of the Class.
func (c Class) String() string {
	if c == ClassUnknown {
		return "unknown"
	}
	return string(c)
}

// ClassifiedError is a sentinel error carrying its Class.
type ClassifiedError struct {
	Class   Class
	Message string
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return e.Message
}

// NewClassified creates a sentinel error of the given class.
func NewClassified(class Class, message string) error {
	return &ClassifiedError{
		Class:   class,
		Message: message,
	}
}

// Classify walks the wrap chain of err and returns the class of the first
// ClassifiedError found. Returns ClassUnknown if err is nil or unclassified.
func Classify(err error) Class {
	if err == nil {
		return ClassUnknown
	}

	var ce *ClassifiedError
	if As(err, &ce) {
		return ce.Class
	}

	return ClassUnknown
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool {
	return Classify(err) == ClassConfiguration
}

// IsStructural reports whether err is a structural error.
func IsStructural(err error) bool {
	return Classify(err) == ClassStructural
}
