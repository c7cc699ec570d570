package imports

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedDocument is returned when the input is not parseable JSON.
	ErrMalformedDocument = errors.New("malformed document: invalid JSON")

	// ErrFileTooLarge is returned when the input exceeds MaxImportSize.
	ErrFileTooLarge = errors.New("file too large (maximum 5 MiB)")

	// ErrUnsupportedType is returned when the input is not a JSON file.
	ErrUnsupportedType = errors.New("unsupported file type: expected a .json file")
)

// ValidationError reports a structural violation in an import document. Field
// is a human-readable field reference; Index is the offending entry's position
// in the topic array, or -1 when the violation is not entry-specific.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("invalid field '%s' (entry #%d): %s", e.Field, e.Index+1, e.Reason)
	}
	return fmt.Sprintf("invalid field '%s': %s", e.Field, e.Reason)
}

// newValidationError creates a ValidationError for a document-level field.
func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Index: -1, Reason: reason}
}
