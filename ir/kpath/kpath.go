package kpath

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// TypeField is the segment name that refers to a field's type tag.
	TypeField = "type"
	// TagSuffix is appended to a field name to form its tag key.
	TagSuffix = "." + TypeField
	// Disallowed lists characters that may not appear in any path.
	Disallowed = "{}():"
	// MaxIndex bounds list indices so that create-on-write cannot be
	// asked to materialize an unbounded list.
	MaxIndex = 1 << 20
)

var ErrPath = errors.New("invalid path")

// PathError describes why a path could not be parsed.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrPath, e.Path, e.Reason)
}

func (e *PathError) Unwrap() error { return ErrPath }

// KPath is one segment of a parsed path, linked to the next.
type KPath struct {
	Field string // field name in the enclosing mapping
	Index *int   // list index applied to Field, if any
	Tag   bool   // final segment only: address Field's type tag
	Next  *KPath
}

// TagKey returns the key under which the tag of field is stored.
func TagKey(field string) string {
	return field + TagSuffix
}

// IsTagKey reports whether key names a tag entry, returning the field it
// belongs to.
func IsTagKey(key string) (field string, ok bool) {
	if key == TypeField || !strings.HasSuffix(key, TagSuffix) {
		return "", false
	}
	return strings.TrimSuffix(key, TagSuffix), true
}

// Parse parses a dotted path. See the package documentation for the
// grammar and the meaning of allowTag.
func Parse(path string, allowTag bool) (*KPath, error) {
	if path == "" {
		return nil, &PathError{Path: path, Reason: "empty path"}
	}
	if i := strings.IndexAny(path, Disallowed); i != -1 {
		return nil, &PathError{Path: path, Reason: fmt.Sprintf("disallowed character %q", path[i])}
	}
	parts := strings.Split(path, ".")
	n := len(parts)
	tagRef := false
	if n > 1 && parts[n-1] == TypeField {
		if !allowTag {
			return nil, &PathError{Path: path, Reason: "type tag access is not allowed here"}
		}
		tagRef = true
		parts = parts[:n-1]
	}
	var (
		root, cur *KPath
	)
	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, &PathError{Path: path, Reason: err.Error()}
		}
		if seg.Field == TypeField && n > 1 {
			return nil, &PathError{Path: path, Reason: "type tags are not traversable"}
		}
		if root == nil {
			root = seg
		} else {
			cur.Next = seg
		}
		cur = seg
	}
	if tagRef {
		if cur.Index != nil {
			return nil, &PathError{Path: path, Reason: "list elements carry no type tag"}
		}
		cur.Tag = true
	}
	return root, nil
}

func parseSegment(part string) (*KPath, error) {
	if part == "" {
		return nil, errors.New("empty segment")
	}
	i := strings.IndexByte(part, '[')
	if i == -1 {
		if strings.IndexByte(part, ']') != -1 {
			return nil, fmt.Errorf("unbalanced ']' in %q", part)
		}
		return &KPath{Field: part}, nil
	}
	if i == 0 {
		return nil, fmt.Errorf("missing field name before index in %q", part)
	}
	rest := part[i+1:]
	j := strings.IndexByte(rest, ']')
	if j == -1 {
		return nil, fmt.Errorf("expected '[' <index> ']' in %q", part)
	}
	if j != len(rest)-1 {
		return nil, fmt.Errorf("unexpected %q after index in %q", rest[j+1:], part)
	}
	index, err := parseIndex(rest[:j])
	if err != nil {
		return nil, err
	}
	return &KPath{Field: part[:i], Index: &index}, nil
}

func parseIndex(is string) (int, error) {
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid list index %q", is)
	}
	if u64 > MaxIndex {
		return 0, fmt.Errorf("list index %d exceeds %d", u64, MaxIndex)
	}
	return int(u64), nil
}

// String returns the canonical path form of p.
func (p *KPath) String() string {
	if p == nil {
		return ""
	}
	buf := bytes.NewBuffer(nil)
	for x := p; x != nil; x = x.Next {
		if buf.Len() > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(x.SegmentString())
	}
	return buf.String()
}

// SegmentString returns the string form of this segment alone.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	s := p.Field
	if p.Index != nil {
		s += "[" + strconv.Itoa(*p.Index) + "]"
	}
	if p.Tag {
		s += TagSuffix
	}
	return s
}

// Key returns the mapping key this segment addresses: the field name, or
// the field's tag key for a tag reference.
func (p *KPath) Key() string {
	if p.Tag {
		return TagKey(p.Field)
	}
	return p.Field
}

// Last returns the final segment.
func (p *KPath) Last() *KPath {
	x := p
	for x != nil && x.Next != nil {
		x = x.Next
	}
	return x
}

// Len returns the number of segments.
func (p *KPath) Len() int {
	n := 0
	for x := p; x != nil; x = x.Next {
		n++
	}
	return n
}

// Parent returns a copy of p without its last segment, or nil for a single
// segment path.
func (p *KPath) Parent() *KPath {
	if p == nil || p.Next == nil {
		return nil
	}
	res := p.copySegment()
	cur := res
	for x := p.Next; x.Next != nil; x = x.Next {
		cur.Next = x.copySegment()
		cur = cur.Next
	}
	return res
}

// WithTag returns a copy of p whose last segment addresses the type tag.
// It returns nil if the last segment is a list index.
func (p *KPath) WithTag() *KPath {
	if p == nil || p.Last().Index != nil {
		return nil
	}
	res := p.copySegment()
	cur := res
	for x := p.Next; x != nil; x = x.Next {
		cur.Next = x.copySegment()
		cur = cur.Next
	}
	cur.Tag = true
	return res
}

func (p *KPath) copySegment() *KPath {
	res := &KPath{Field: p.Field, Tag: p.Tag}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

func (p *KPath) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *KPath) UnmarshalText(d []byte) error {
	pp, err := Parse(string(d), true)
	if err != nil {
		return err
	}
	*p = *pp
	return nil
}
