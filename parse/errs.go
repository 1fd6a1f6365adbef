package parse

import (
	"errors"
	"fmt"
)

var ErrParse = errors.New("parse error")

// ParseError reports why a document could not be read. It is always fatal
// to the parse.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", ErrParse, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrParse, e.Reason, e.Err)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// VersionWarning is reported when a document declares another format
// version. The document is still read.
type VersionWarning struct {
	Got, Want string
}

func (w *VersionWarning) Error() string {
	return fmt.Sprintf("format version mismatch: expected %s, got %s", w.Want, w.Got)
}
