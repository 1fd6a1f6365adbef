package ir

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/debug"
	"github.com/410-dev/lks410-sdm/ir/kpath"
)

// NoIndex is the Handle index of a direct field access.
const NoIndex = -1

// Handle addresses one slot of a tree: the field Key of the mapping Parent,
// or element Index of the list stored under Key. The addressed value itself
// is not dereferenced, so one Handle serves reads, writes and deletes.
type Handle struct {
	Grandparent *Node
	Parent      *Node
	Key         string
	Index       int
	// Tag is set when Key is a type tag key.
	Tag bool

	path string
}

// Locate walks the mapping node along kp.
//
// For every segment but the last, a missing or null child is materialized
// as an empty mapping (or as a null padded list with an empty mapping at the
// requested index) when create is set; otherwise Locate fails with
// ErrNotFound and the tree is left untouched. A child of the wrong kind
// fails with ErrConflict in create mode and ErrNotFound otherwise; in both
// cases nothing has been mutated yet. With create set, a final indexed
// segment also has its list created and padded.
func (node *Node) Locate(kp *kpath.KPath, create bool) (*Handle, error) {
	if node.Type != ObjectType {
		return nil, fmt.Errorf("%w: cannot address fields of %s", ErrConflict, node.Type)
	}
	cur := node
	prefix := ""
	for seg := kp; seg != nil; seg = seg.Next {
		if prefix != "" {
			prefix += "."
		}
		prefix += seg.SegmentString()
		if seg.Next != nil {
			next, err := step(cur, seg, create)
			if err != nil {
				if debug.Traverse() {
					debug.Logf("locate %s: stop at %s: %v\n", kp, prefix, err)
				}
				return nil, fmt.Errorf("%w at %q", err, prefix)
			}
			cur = next
			continue
		}
		h := &Handle{
			Grandparent: cur.Parent,
			Parent:      cur,
			Key:         seg.Key(),
			Index:       NoIndex,
			Tag:         seg.Tag,
			path:        prefix,
		}
		if seg.Index == nil {
			return h, nil
		}
		h.Index = *seg.Index
		if create {
			if _, err := ensureList(cur, seg.Field, h.Index+1); err != nil {
				return nil, fmt.Errorf("%w at %q", err, prefix)
			}
		}
		if debug.Traverse() {
			debug.Logf("locate %s: key %q index %d\n", kp, h.Key, h.Index)
		}
		return h, nil
	}
	return nil, fmt.Errorf("%w: empty path", ErrNotFound)
}

func step(cur *Node, seg *kpath.KPath, create bool) (*Node, error) {
	child := Get(cur, seg.Field)
	if seg.Index == nil {
		if child == nil || child.Type == NullType {
			if !create {
				return nil, ErrNotFound
			}
			child = NewObject()
			cur.Put(seg.Field, child)
			return child, nil
		}
		if child.Type != ObjectType {
			return nil, mismatch(create, child.Type, ObjectType)
		}
		return child, nil
	}
	idx := *seg.Index
	if !create {
		if child == nil || child.Type == NullType {
			return nil, ErrNotFound
		}
		if child.Type != ArrayType {
			return nil, mismatch(create, child.Type, ArrayType)
		}
		if idx >= len(child.Values) {
			return nil, ErrNotFound
		}
	}
	list, err := ensureList(cur, seg.Field, idx+1)
	if err != nil {
		return nil, err
	}
	elem := list.Values[idx]
	switch elem.Type {
	case ObjectType:
		return elem, nil
	case NullType:
		if !create {
			return nil, ErrNotFound
		}
		elem = NewObject()
		list.SetIndex(idx, elem)
		return elem, nil
	}
	return nil, mismatch(create, elem.Type, ObjectType)
}

// ensureList returns the list stored under field, creating it when absent
// or null and padding it with nulls to at least n elements.
func ensureList(cur *Node, field string, n int) (*Node, error) {
	list := Get(cur, field)
	if list == nil || list.Type == NullType {
		list = NewArray(0)
		cur.Put(field, list)
	}
	if list.Type != ArrayType {
		return nil, mismatch(true, list.Type, ArrayType)
	}
	list.Pad(n)
	return list, nil
}

func mismatch(create bool, got, want Type) error {
	if create {
		return fmt.Errorf("%w: found %s, need %s", ErrConflict, got, want)
	}
	return fmt.Errorf("%w: found %s, need %s", ErrNotFound, got, want)
}

// Path returns the path that produced the handle.
func (h *Handle) Path() string {
	return h.path
}

// Field returns the user field name addressed by the handle, without any
// tag suffix.
func (h *Handle) Field() string {
	if f, ok := kpath.IsTagKey(h.Key); ok && h.Tag {
		return f
	}
	return h.Key
}

// TagKey returns the key of the type tag for the addressed field.
func (h *Handle) TagKey() string {
	return kpath.TagKey(h.Field())
}

// Value returns the addressed node, or nil if it does not exist.
func (h *Handle) Value() *Node {
	v := Get(h.Parent, h.Key)
	if h.Index == NoIndex || v == nil {
		return v
	}
	if v.Type != ArrayType || h.Index >= len(v.Values) {
		return nil
	}
	return v.Values[h.Index]
}

// Set stores v in the addressed slot.
func (h *Handle) Set(v *Node) error {
	if h.Index == NoIndex {
		h.Parent.Put(h.Key, v)
		return nil
	}
	list := Get(h.Parent, h.Key)
	if list == nil || list.Type != ArrayType || h.Index >= len(list.Values) {
		return fmt.Errorf("%w: no list element at %q", ErrNotFound, h.path)
	}
	list.SetIndex(h.Index, v)
	return nil
}

// Delete removes a field or nulls a list element, reporting whether
// anything was there.
func (h *Handle) Delete() bool {
	if h.Index == NoIndex {
		return h.Parent.Delete(h.Key)
	}
	list := Get(h.Parent, h.Key)
	if list == nil || list.Type != ArrayType || h.Index >= len(list.Values) {
		return false
	}
	list.SetIndex(h.Index, Null())
	return true
}

// GetKPath returns the node at path, which may not reference type tags.
func (node *Node) GetKPath(path string) (*Node, error) {
	kp, err := kpath.Parse(path, false)
	if err != nil {
		return nil, err
	}
	h, err := node.Locate(kp, false)
	if err != nil {
		return nil, err
	}
	v := h.Value()
	if v == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, path)
	}
	return v, nil
}
