package dataprep

import "errors"

var (
	// ErrMissingColumn is returned when a named column is not in the frame.
	ErrMissingColumn = errors.New("column not found")
	// ErrInvalidTestSize is returned when the test fraction is outside (0, 1).
	ErrInvalidTestSize = errors.New("test size must be between 0 and 1 exclusive")
	// ErrEmptyFrame is returned when an operation needs at least one data row.
	ErrEmptyFrame = errors.New("frame has no data rows")
)
