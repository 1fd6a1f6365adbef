package sdm

import "errors"

var (
	// ErrNotSequence is returned by Append when the field holds a value
	// that is not a list.
	ErrNotSequence = errors.New("not a sequence")
	// ErrIndexTag is returned when a type tag is given for a list element.
	// List elements take their type from the list's tag.
	ErrIndexTag = errors.New("list elements carry no type tag")
	// ErrNotMaterializable is returned by Materialize for values without a
	// resolved host class.
	ErrNotMaterializable = errors.New("not materializable")
)
