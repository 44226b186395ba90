package transformations

import "errors"

// Transformation is the interface that all cell transformations must implement
type Transformation interface {
	// Transform takes a cell value and returns the transformed value. On error
	// the caller decides whether to keep the original cell.
	Transform(input string) (string, error)
}

var (
	// ErrInvalidBase64 is returned when a cell is not valid base64 text.
	ErrInvalidBase64 = errors.New("invalid base64")

	// ErrNotInteger is returned when the decoded text does not start with a
	// base-10 integer.
	ErrNotInteger = errors.New("decoded value is not an integer")
)
