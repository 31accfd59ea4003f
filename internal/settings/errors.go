package settings

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotStruct is returned when the schema type parameter is not a struct.
	// It indicates a programming error and is reported before any file is read.
	ErrNotStruct = errors.New("settings schema must be a struct type")
)

// MissingParamsError reports schema fields that no configuration source
// populated.
type MissingParamsError struct {
	Fields []string
}

func (e *MissingParamsError) Error() string {
	return fmt.Sprintf("missing required settings: %s", strings.Join(e.Fields, ", "))
}
