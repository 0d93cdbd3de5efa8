package pgmap

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrAmbiguousMapping indicates several mappings share a data type name
	// and none (or more than one) of them is marked default.
	ErrAmbiguousMapping = errors.New("ambiguous mapping")

	// ErrNoDefaultMapping indicates a registry that must answer name-less
	// lookups has no default mapping.
	ErrNoDefaultMapping = errors.New("no default mapping")

	// ErrInvalidMapping indicates a mapping registration is malformed.
	ErrInvalidMapping = errors.New("invalid mapping")

	// ErrInvalidDataTypeName indicates a data type name is not schema qualified.
	ErrInvalidDataTypeName = errors.New("invalid data type name")

	// ErrUnknownFamily indicates an unrecognized shape family.
	ErrUnknownFamily = errors.New("unknown family")

	// ErrDuplicateFamily indicates a family listed more than once in a config.
	ErrDuplicateFamily = errors.New("duplicate family")

	// ErrUnsupportedType indicates no resolver handled a lookup.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNilProvider indicates a handled lookup was made without a provider.
	ErrNilProvider = errors.New("nil provider")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// AmbiguousMappingError reports a data type name that cannot be resolved to
// a single mapping. It is a registration bug, never a transient condition.
type AmbiguousMappingError struct {
	Name     DataTypeName // Data type name shared by the mappings
	Count    int          // Number of mappings registered under Name
	Defaults int          // Number of those marked default
}

func (e *AmbiguousMappingError) Error() string {
	return fmt.Sprintf("%s for %q (%d mappings, %d defaults)", ErrAmbiguousMapping.Error(), e.Name, e.Count, e.Defaults)
}

func (e *AmbiguousMappingError) Unwrap() error {
	return ErrAmbiguousMapping
}

// BuildError wraps a registry build failure with the family that failed.
type BuildError struct {
	Family Family // Shape family whose registry failed to build
	Err    error  // Underlying error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s mappings: %v", e.Family, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// UnsupportedTypeError reports a lookup that no resolver in a chain handled.
type UnsupportedTypeError struct {
	Type         reflect.Type // Requested runtime type, may be nil
	DataTypeName DataTypeName // Requested data type name, may be empty
}

func (e *UnsupportedTypeError) Error() string {
	switch {
	case e.Type != nil && e.DataTypeName != "":
		return fmt.Sprintf("%s %s (data type %q)", ErrUnsupportedType.Error(), e.Type, e.DataTypeName)
	case e.Type != nil:
		return fmt.Sprintf("%s %s", ErrUnsupportedType.Error(), e.Type)
	case e.DataTypeName != "":
		return fmt.Sprintf("%s (data type %q)", ErrUnsupportedType.Error(), e.DataTypeName)
	}
	return ErrUnsupportedType.Error()
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}

// invalidMapping wraps ErrInvalidMapping with a reason.
func invalidMapping(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMapping, fmt.Sprintf(format, args...))
}

// isRegistrationError reports whether a recovered panic value is one of the
// errors raised by fail-fast registration.
func isRegistrationError(err error) bool {
	return errors.Is(err, ErrAmbiguousMapping) ||
		errors.Is(err, ErrInvalidMapping) ||
		errors.Is(err, ErrInvalidDataTypeName)
}
