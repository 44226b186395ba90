package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOptions is wrapped by every validation error returned from New.
	ErrInvalidOptions = errors.New("invalid decoder options")

	// ErrNotRegularFile is wrapped in an *IOError when the input path exists
	// but is a directory, device or similar.
	ErrNotRegularFile = errors.New("not a regular file")

	// ErrEmptyInput is returned when the parsed document has zero rows.
	ErrEmptyInput = errors.New("csv file is empty")

	// ErrNoColumnsFound is returned when none of the requested column names
	// match the header row.
	ErrNoColumnsFound = errors.New("none of the requested columns were found")

	// ErrCellDecode is returned when a cell cannot be transformed and the
	// policy is PolicyFail.
	ErrCellDecode = errors.New("cell could not be decoded")
)

// IOError reports a failed file system operation on the input or output file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ProcessError wraps any fatal error surfaced by Process together with the
// stage it happened in.
type ProcessError struct {
	Stage Stage
	Err   error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("csv processing error: %s: %v", e.Stage, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }
