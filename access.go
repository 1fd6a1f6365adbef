package sdm

import (
	"errors"
	"fmt"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/ir/kpath"
	"github.com/410-dev/lks410-sdm/tag"
)

// Value is a field value together with its stored type tag, if any.
type Value struct {
	Node *ir.Node
	// Tag is the stored tag string, empty when the field has none.
	Tag string
}

// Type returns the effective type of v on host.
func (v Value) Type(host string) string {
	if v.Tag == "" {
		return tag.Infer(v.Node)
	}
	return tag.Resolve(v.Tag, host).Effective
}

func (d *Document) locate(path string, allowTag, create bool) (*ir.Handle, error) {
	kp, err := kpath.Parse(path, allowTag)
	if err != nil {
		return nil, err
	}
	return d.root.Locate(kp, create)
}

// Get returns a copy of the value at path. A path ending in ".type"
// returns the stored tag of the field.
func (d *Document) Get(path string) (*ir.Node, error) {
	h, err := d.locate(path, true, false)
	if err != nil {
		return nil, err
	}
	v := h.Value()
	if v == nil {
		return nil, fmt.Errorf("%w: %q", ir.ErrNotFound, path)
	}
	return detach(v), nil
}

func detach(n *ir.Node) *ir.Node {
	res := n.Clone()
	res.Parent = nil
	res.ParentField = ""
	res.ParentIndex = 0
	return res
}

// Lookup returns a copy of the value at path with its stored tag. For a
// list element the tag is the element type from the list's tag.
func (d *Document) Lookup(path string) (Value, error) {
	h, err := d.locate(path, false, false)
	if err != nil {
		return Value{}, err
	}
	v := h.Value()
	if v == nil {
		return Value{}, fmt.Errorf("%w: %q", ir.ErrNotFound, path)
	}
	return Value{Node: detach(v), Tag: storedTag(h)}, nil
}

// storedTag returns the tag that applies to the handle's slot.
func storedTag(h *ir.Handle) string {
	s := ir.Get(h.Parent, h.TagKey())
	if s == nil || s.Type != ir.StringType {
		return ""
	}
	if h.Index == ir.NoIndex {
		return s.String
	}
	t, err := tag.Parse(s.String)
	if err != nil {
		return ""
	}
	elem, ok := t.Elem()
	if !ok || elem.Primary == tag.Auto {
		return ""
	}
	return elem.String()
}

// Has reports whether path addresses an existing value.
func (d *Document) Has(path string) bool {
	h, err := d.locate(path, true, false)
	return err == nil && h.Value() != nil
}

// Info returns a read only handle for path without dereferencing it.
func (d *Document) Info(path string) (*ir.Handle, error) {
	return d.locate(path, true, false)
}

type setConfig struct {
	tag      string
	hasTag   bool
	allowTag bool
}

type SetOption func(*setConfig)

// As stores t as the field's type tag. tag.Auto stores the tag inferred
// from the value.
func As(t string) SetOption {
	return func(c *setConfig) { c.tag, c.hasTag = t, true }
}

// AllowTag permits paths ending in ".type", which write a field's type tag
// directly.
func AllowTag() SetOption {
	return func(c *setConfig) { c.allowTag = true }
}

// Set stores v at path, creating missing mappings and lists on the way.
// v may be an *ir.Node or any value ir.FromAny accepts. Without As, an
// existing type tag is left alone.
//
// Set checks the path, value and tag before changing anything, so a
// failed Set leaves d unchanged.
func (d *Document) Set(path string, v any, opts ...SetOption) error {
	sc := &setConfig{}
	for _, o := range opts {
		o(sc)
	}
	kp, err := kpath.Parse(path, sc.allowTag)
	if err != nil {
		return err
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return err
	}
	n = detach(n)
	last := kp.Last()
	if last.Tag {
		if sc.hasTag {
			return fmt.Errorf("%w: cannot tag a type tag at %q", tag.ErrBadTag, path)
		}
		if n.Type != ir.StringType {
			return fmt.Errorf("%w: type tag at %q must be a string, not %s", tag.ErrBadTag, path, n.Type)
		}
		if _, err := tag.Parse(n.String); err != nil {
			return err
		}
	}
	tagStr := ""
	if sc.hasTag {
		if last.Index != nil {
			return fmt.Errorf("%w: %q", ErrIndexTag, path)
		}
		if tagStr, err = resolveSetTag(sc.tag, n); err != nil {
			return err
		}
	}
	h, err := d.root.Locate(kp, true)
	if err != nil {
		return err
	}
	if err := h.Set(n); err != nil {
		return err
	}
	if tagStr != "" {
		h.Parent.Put(h.TagKey(), ir.FromString(tagStr))
	}
	return nil
}

// SetAs is Set with As(t).
func (d *Document) SetAs(path string, v any, t string) error {
	return d.Set(path, v, As(t))
}

func resolveSetTag(s string, n *ir.Node) (string, error) {
	if s == tag.Auto {
		return tag.Infer(n), nil
	}
	t, err := tag.Parse(s)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// SetType stores t as the type tag of the existing field at path.
func (d *Document) SetType(path string, t string) error {
	kp, err := kpath.Parse(path, false)
	if err != nil {
		return err
	}
	if kp.Last().Index != nil {
		return fmt.Errorf("%w: %q", ErrIndexTag, path)
	}
	h, err := d.root.Locate(kp, false)
	if err != nil {
		return err
	}
	v := h.Value()
	if v == nil {
		return fmt.Errorf("%w: %q", ir.ErrNotFound, path)
	}
	s, err := resolveSetTag(t, v)
	if err != nil {
		return err
	}
	h.Parent.Put(h.TagKey(), ir.FromString(s))
	return nil
}

// TypeOf returns the effective type of the value at path: its stored tag,
// resolved for the document's host, or the inferred tag when there is
// none. List elements use the element type of the list's tag. A missing
// value or a bad path yields tag.Undefined.
func (d *Document) TypeOf(path string) string {
	h, err := d.locate(path, false, false)
	if err != nil {
		return tag.Undefined
	}
	v := h.Value()
	if v == nil {
		return tag.Undefined
	}
	return Value{Node: v, Tag: storedTag(h)}.Type(d.cfg.host)
}

// TypeMatches reports whether TypeOf(path) is t.
func (d *Document) TypeMatches(path, t string) bool {
	return d.TypeOf(path) == t
}

// Remove deletes the value at path. A field is removed together with its
// type tag; a list element is replaced with null so later indices keep
// their meaning; a path ending in ".type" removes only the tag. Remove
// reports whether anything was removed.
func (d *Document) Remove(path string) (bool, error) {
	h, err := d.locate(path, true, false)
	if err != nil {
		if errors.Is(err, ir.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if !h.Delete() {
		return false, nil
	}
	if h.Index == ir.NoIndex && !h.Tag {
		h.Parent.Delete(h.TagKey())
	}
	return true, nil
}

// Append adds v to the end of the list at path. A missing or null value
// becomes a new list. Appending to anything else fails with
// ErrNotSequence and leaves d unchanged.
func (d *Document) Append(path string, v any) error {
	kp, err := kpath.Parse(path, false)
	if err != nil {
		return err
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return err
	}
	n = detach(n)
	h, err := d.root.Locate(kp, false)
	switch {
	case errors.Is(err, ir.ErrNotFound):
	case err != nil:
		return err
	default:
		if cur := h.Value(); cur != nil {
			switch cur.Type {
			case ir.ArrayType:
				cur.Append(n)
				return nil
			case ir.NullType:
			default:
				return fmt.Errorf("%w: %q holds %s", ErrNotSequence, path, cur.Type)
			}
		}
	}
	h, err = d.root.Locate(kp, true)
	if err != nil {
		return err
	}
	return h.Set(ir.FromSlice([]*ir.Node{n}))
}
