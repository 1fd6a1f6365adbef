package tag

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/410-dev/lks410-sdm/debug"
)

const (
	String  = "String"
	Int8    = "Int8"
	Int16   = "Int16"
	Int32   = "Int32"
	Int64   = "Int64"
	Float32 = "Float32"
	Float64 = "Float64"
	Boolean = "Boolean"
	List    = "List"
	Object  = "Object"
	Null    = "Null"
	Auto    = "Auto"

	// NoStandard follows Object to mark a host specific class.
	NoStandard = "NoStandard"
	// Undefined is the effective type of anything that cannot be
	// classified, including a NoStandard tag with no marker for the host.
	Undefined = "UndefinedType"

	Separator    = ":"
	MarkerPrefix = "@"
)

var ErrBadTag = errors.New("bad type tag")

var primaries = []string{
	String, Int8, Int16, Int32, Int64, Float32, Float64, Boolean, List, Object, Null, Auto,
}

// Primaries returns the primary type names in canonical order.
func Primaries() []string {
	return slices.Clone(primaries)
}

// Tag is a parsed type tag.
type Tag struct {
	Primary string
	Subs    []string
}

// Parse parses and checks a tag string.
func Parse(s string) (Tag, error) {
	if s == "" {
		return Tag{}, fmt.Errorf("%w: empty tag", ErrBadTag)
	}
	parts := strings.Split(s, Separator)
	t := Tag{Primary: parts[0]}
	if len(parts) > 1 {
		t.Subs = parts[1:]
	}
	if err := t.check(); err != nil {
		return Tag{}, fmt.Errorf("%w %q: %w", ErrBadTag, s, err)
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Tag {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Tag) check() error {
	for _, sub := range t.Subs {
		if sub == "" {
			return errors.New("empty tag element")
		}
	}
	switch t.Primary {
	case String, Int8, Int16, Int32, Int64, Float32, Float64, Boolean, Null, Auto:
		if len(t.Subs) != 0 {
			return fmt.Errorf("%s takes no arguments", t.Primary)
		}
		return nil
	case List:
		if len(t.Subs) == 0 {
			return nil
		}
		_, err := Parse(strings.Join(t.Subs, Separator))
		return err
	case Object:
		if len(t.Subs) == 0 {
			return nil
		}
		if t.Subs[0] != NoStandard {
			return fmt.Errorf("unexpected %q after %s", t.Subs[0], Object)
		}
		for _, m := range t.Subs[1:] {
			if _, err := parseMarker(m); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown primary type %q", t.Primary)
}

// String encodes the tag, keeping marker order.
func (t Tag) String() string {
	return Compose(t.Primary, t.Subs...)
}

// Compose joins a primary type and its arguments into a tag string.
func Compose(primary string, subs ...string) string {
	if len(subs) == 0 {
		return primary
	}
	return primary + Separator + strings.Join(subs, Separator)
}

// IsNoStandard reports whether t is an Object:NoStandard tag.
func (t Tag) IsNoStandard() bool {
	return t.Primary == Object && len(t.Subs) > 0 && t.Subs[0] == NoStandard
}

// IsComplex reports whether t is a container kind (List, Object or
// NoStandard).
func (t Tag) IsComplex() bool {
	return t.Primary == List || t.Primary == Object
}

// Elem returns the element tag of a List tag; a bare List has element
// type Auto.
func (t Tag) Elem() (Tag, bool) {
	if t.Primary != List {
		return Tag{}, false
	}
	if len(t.Subs) == 0 {
		return Tag{Primary: Auto}, true
	}
	return Tag{Primary: t.Subs[0], Subs: slices.Clone(t.Subs[1:])}, true
}

// Marker is one "@host=class" element of a NoStandard tag.
type Marker struct {
	Host  string
	Class string
}

func (m Marker) String() string {
	return MarkerPrefix + m.Host + "=" + m.Class
}

func parseMarker(s string) (Marker, error) {
	if !strings.HasPrefix(s, MarkerPrefix) {
		return Marker{}, fmt.Errorf("marker %q does not start with %q", s, MarkerPrefix)
	}
	host, class, ok := strings.Cut(s[len(MarkerPrefix):], "=")
	if !ok || host == "" || class == "" {
		return Marker{}, fmt.Errorf("marker %q is not of the form @host=class", s)
	}
	return Marker{Host: host, Class: class}, nil
}

// Markers returns the host markers of a NoStandard tag in order.
func (t Tag) Markers() []Marker {
	if !t.IsNoStandard() {
		return nil
	}
	var res []Marker
	for _, s := range t.Subs[1:] {
		m, err := parseMarker(s)
		if err != nil {
			continue
		}
		res = append(res, m)
	}
	return res
}

// Class returns the class identifier declared for host.
func (t Tag) Class(host string) (string, bool) {
	for _, m := range t.Markers() {
		if m.Host == host {
			return m.Class, true
		}
	}
	return "", false
}

// Resolution is the outcome of resolving a stored tag for one host.
type Resolution struct {
	// Tag is the stored tag string.
	Tag string
	// Effective is the type to use on the host: the class identifier for
	// a resolved NoStandard tag, Undefined for an unresolved one, and the
	// tag itself otherwise.
	Effective string
	// Class is set only when a NoStandard marker matched.
	Class      string
	NoStandard bool
}

// Resolved reports whether a NoStandard tag found a class for the host.
func (r Resolution) Resolved() bool {
	return r.Class != ""
}

// Resolve decodes a stored tag string for host. It never fails: malformed
// NoStandard markers are skipped and an unmatched host yields Undefined.
func Resolve(s, host string) Resolution {
	res := Resolution{Tag: s, Effective: s}
	parts := strings.Split(s, Separator)
	if len(parts) < 2 || parts[0] != Object || parts[1] != NoStandard {
		return res
	}
	res.NoStandard = true
	res.Effective = Undefined
	for _, p := range parts[2:] {
		m, err := parseMarker(p)
		if err != nil || m.Host != host {
			continue
		}
		res.Effective = m.Class
		res.Class = m.Class
		break
	}
	if debug.Tag() {
		debug.Logf("resolve %q for @%s: %q\n", s, host, res.Effective)
	}
	return res
}
