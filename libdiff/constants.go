package libdiff

import "fmt"

type Op int

const (
	Insert Op = iota
	Delete
	Replace
	// Retag is a change to a field's type tag. From or To is nil when the
	// tag was added or removed.
	Retag
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	case Retag:
		return "retag"
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Symbol returns the one character marker used when listing changes.
func (o Op) Symbol() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	case Replace:
		return "~"
	case Retag:
		return "@"
	}
	return "?"
}
