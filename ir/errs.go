package ir

import "errors"

var (
	// ErrNotFound is returned when a path addresses a missing node and
	// create-on-write is disabled.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a path runs through a value of the wrong
	// kind, such as indexing a string.
	ErrConflict = errors.New("path conflict")
	ErrDecode   = errors.New("decode error")
)
