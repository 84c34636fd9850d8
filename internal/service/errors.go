package service

import (
	"errors"
	"strings"
)

// ErrIncompleteAssignment is returned by Finalize while any item still has
// no assignee. Incomplete assignment is valid intermediate state during
// editing; it only blocks finalization.
var ErrIncompleteAssignment = errors.New("every item needs at least one assignee")

// ValidationError carries the full list of business-rule violations for a
// rejected input. The split engine reports violations as data; the service
// boundary converts them to this error type when it must refuse a request.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
