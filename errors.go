package multiform

import (
	"errors"
	"reflect"
)

var (
	// ErrEmptyBoundary is returned when decoding is asked to split on an
	// empty boundary.
	ErrEmptyBoundary = errors.New("multiform: empty boundary")

	// ErrNotMultipart is returned when a Content-Type is not
	// multipart/form-data.
	ErrNotMultipart = errors.New("multiform: content type is not multipart/form-data")

	// ErrMissingBoundary is returned when a multipart Content-Type carries no
	// boundary parameter.
	ErrMissingBoundary = errors.New("multiform: no boundary in content type")
)

// InvalidBindError describes an invalid argument passed to [Form.Bind].
// (The argument to [Form.Bind] must be a non-nil pointer to a struct.)
type InvalidBindError struct {
	Type reflect.Type
}

func (e *InvalidBindError) Error() string {
	if e.Type == nil {
		return "multiform: Bind(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "multiform: Bind(non-pointer " + e.Type.String() + ")"
	}
	if e.Type.Elem().Kind() != reflect.Struct {
		return "multiform: Bind(non-struct " + e.Type.String() + ")"
	}
	return "multiform: Bind(nil " + e.Type.String() + ")"
}
