package validate

import (
	"errors"
	"strings"
)

var ErrValidation = errors.New("validation failed")

// ValidationError carries every fatal issue found in one check.
type ValidationError struct {
	// Reserved lists the field paths that collide with reserved names.
	Reserved []string
	Issues   []Issue
}

func (e *ValidationError) Error() string {
	buf := &strings.Builder{}
	buf.WriteString(ErrValidation.Error())
	if len(e.Reserved) != 0 {
		buf.WriteString(": reserved field names: ")
		buf.WriteString(strings.Join(e.Reserved, ", "))
	}
	for i := range e.Issues {
		if e.Issues[i].Kind == ReservedName {
			continue
		}
		buf.WriteString("; ")
		buf.WriteString(e.Issues[i].Error())
	}
	return buf.String()
}

// Unwrap exposes ErrValidation and each issue, so errors.As can pick out
// an *Issue.
func (e *ValidationError) Unwrap() []error {
	res := make([]error, 0, len(e.Issues)+1)
	res = append(res, ErrValidation)
	for i := range e.Issues {
		res = append(res, &e.Issues[i])
	}
	return res
}
