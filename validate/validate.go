package validate

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/410-dev/lks410-sdm/debug"
	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/ir/kpath"
	"github.com/410-dev/lks410-sdm/tag"
)

// Reserved names may not be the last segment of any user field.
var reserved = []string{ir.StandardKey, ir.DataRootKey, ir.ExtraKey, kpath.TypeField}

// ReservedNames returns the names no field may end with.
func ReservedNames() []string {
	return slices.Clone(reserved)
}

// IsReserved reports whether name is a reserved name.
func IsReserved(name string) bool {
	return slices.Contains(reserved, name)
}

type Level int

const (
	Off Level = iota
	Advisory
	Fatal
)

func (l Level) String() string {
	switch l {
	case Off:
		return "off"
	case Advisory:
		return "advisory"
	case Fatal:
		return "fatal"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(d []byte) error {
	switch string(d) {
	case "off":
		*l = Off
	case "advisory":
		*l = Advisory
	case "fatal":
		*l = Fatal
	default:
		return fmt.Errorf("unknown level %q", d)
	}
	return nil
}

type Kind int

const (
	ReservedName Kind = iota
	Naming
	TypeMismatch
)

func (k Kind) String() string {
	switch k {
	case ReservedName:
		return "reserved"
	case Naming:
		return "naming"
	case TypeMismatch:
		return "type"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Issue is one finding about one field.
type Issue struct {
	Path  string
	Kind  Kind
	Msg   string
	Fatal bool
}

func (i *Issue) Error() string {
	return fmt.Sprintf("%s %s: %s", i.Kind, i.Path, i.Msg)
}

// Options selects the checks run by Check. Reserved names are always
// checked.
type Options struct {
	Naming Level
	Types  Level
}

// Report holds the outcome of Check in tree order.
type Report struct {
	Issues []Issue
}

// Reserved returns the paths of reserved name collisions.
func (r *Report) Reserved() []string {
	var res []string
	for i := range r.Issues {
		if r.Issues[i].Kind == ReservedName {
			res = append(res, r.Issues[i].Path)
		}
	}
	return res
}

// Advisories returns the non fatal issues.
func (r *Report) Advisories() []Issue {
	var res []Issue
	for _, is := range r.Issues {
		if !is.Fatal {
			res = append(res, is)
		}
	}
	return res
}

// Err returns a *ValidationError holding every fatal issue, or nil.
func (r *Report) Err() error {
	var fatal []Issue
	for _, is := range r.Issues {
		if is.Fatal {
			fatal = append(fatal, is)
		}
	}
	if len(fatal) == 0 {
		return nil
	}
	return &ValidationError{Reserved: r.Reserved(), Issues: fatal}
}

// Check runs the reserved name check and whichever of the naming and type
// checks opts enables, over the mapping root.
func Check(root *ir.Node, opts Options) *Report {
	rep := &Report{}
	for _, p := range Reserved(root) {
		rep.Issues = append(rep.Issues, Issue{
			Path:  p,
			Kind:  ReservedName,
			Msg:   "collides with a reserved name",
			Fatal: true,
		})
	}
	if opts.Naming != Off {
		for _, is := range NamingIssues(root) {
			is.Fatal = opts.Naming == Fatal
			rep.Issues = append(rep.Issues, is)
		}
	}
	if opts.Types != Off {
		for _, is := range Types(root) {
			is.Fatal = opts.Types == Fatal
			rep.Issues = append(rep.Issues, is)
		}
	}
	if debug.Validate() {
		debug.Logf("validate: %d issues\n", len(rep.Issues))
		for i := range rep.Issues {
			debug.Logf("   %s (fatal=%t)\n", rep.Issues[i].Error(), rep.Issues[i].Fatal)
		}
	}
	return rep
}

// field is one key of a mapping found while walking a tree.
type field struct {
	path   string
	name   string
	parent *ir.Node
	// sidecar is set for a tag key, whose name is normalized to the field
	// it describes.
	sidecar bool
}

func walk(node *ir.Node, prefix string, f func(fd field)) {
	switch node.Type {
	case ir.ObjectType:
		for i, key := range node.Fields {
			fd := field{name: key, parent: node}
			if name, ok := kpath.IsTagKey(key); ok {
				fd.name = name
				fd.sidecar = true
			}
			fd.path = ir.JoinKPath(prefix, fd.name)
			f(fd)
			if !fd.sidecar {
				walk(node.Values[i], fd.path, f)
			}
		}
	case ir.ArrayType:
		for i, v := range node.Values {
			walk(v, ir.IndexKPath(prefix, i), f)
		}
	}
}

// FieldNames returns the path of every field below root, in tree order.
// Tag keys are not fields and are left out.
func FieldNames(root *ir.Node) []string {
	var res []string
	walk(root, "", func(fd field) {
		if !fd.sidecar {
			res = append(res, fd.path)
		}
	})
	return res
}

// Reserved returns every field path whose last segment is a reserved
// name. A tag key counts as its field, so a stored "standard.type" reports
// "standard" even when the field itself is absent.
func Reserved(root *ir.Node) []string {
	var res []string
	walk(root, "", func(fd field) {
		if !IsReserved(fd.name) {
			return
		}
		if fd.sidecar && fd.parent.FieldIndex(fd.name) != -1 {
			return
		}
		res = append(res, fd.path)
	})
	return res
}

// NamingIssues reports fields that break the naming convention: container
// kinds start with an upper case letter, everything else with a lower case
// one, and no name contains an underscore.
func NamingIssues(root *ir.Node) []Issue {
	var res []Issue
	walk(root, "", func(fd field) {
		if fd.sidecar || IsReserved(fd.name) {
			return
		}
		container := isComplex(fd.parent, fd.name)
		r, _ := utf8.DecodeRuneInString(fd.name)
		switch {
		case container && !unicode.IsUpper(r):
			res = append(res, Issue{Path: fd.path, Kind: Naming, Msg: "container field should start with an upper case letter"})
		case !container && !unicode.IsLower(r):
			res = append(res, Issue{Path: fd.path, Kind: Naming, Msg: "field should start with a lower case letter"})
		}
		if strings.Contains(fd.name, "_") {
			res = append(res, Issue{Path: fd.path, Kind: Naming, Msg: "field name contains an underscore"})
		}
	})
	return res
}

// isComplex classifies a field by its stored tag, falling back to the
// shape of its value.
func isComplex(parent *ir.Node, name string) bool {
	if s := ir.Get(parent, kpath.TagKey(name)); s != nil && s.Type == ir.StringType {
		if t, err := tag.Parse(s.String); err == nil {
			return t.IsComplex()
		}
	}
	v := ir.Get(parent, name)
	return v != nil && (v.Type == ir.ObjectType || v.Type == ir.ArrayType)
}

// Types checks every stored tag: it must be a well formed tag string, have
// a field to describe, and accept the field's value. Untagged fields always
// agree with their inferred tag and are not reported.
func Types(root *ir.Node) []Issue {
	var res []Issue
	walk(root, "", func(fd field) {
		if !fd.sidecar {
			return
		}
		add := func(format string, args ...any) {
			res = append(res, Issue{Path: fd.path, Kind: TypeMismatch, Msg: fmt.Sprintf(format, args...)})
		}
		s := ir.Get(fd.parent, kpath.TagKey(fd.name))
		if s.Type != ir.StringType {
			add("type tag is a %s, not a string", s.Type)
			return
		}
		t, err := tag.Parse(s.String)
		if err != nil {
			add("%v", err)
			return
		}
		v := ir.Get(fd.parent, fd.name)
		if v == nil {
			add("type tag %s describes no field", t)
			return
		}
		if err := tag.Check(t, v); err != nil {
			add("declared %s, inferred %s: %v", t, tag.Infer(v), err)
		}
	})
	return res
}
