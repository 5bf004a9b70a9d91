package importer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedInput matches any MalformedInputError via errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// MalformedInputError aborts a whole parse: too few rows or missing header columns.
type MalformedInputError struct {
	Reason  string
	Missing []string
}

func (e *MalformedInputError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("malformed input: %s: %s", e.Reason, strings.Join(e.Missing, ", "))
	}
	return "malformed input: " + e.Reason
}

// Is reports whether target is ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}
