package ir

import (
	"errors"
	"testing"

	"github.com/410-dev/lks410-sdm/ir/kpath"
)

func mustKPath(t *testing.T, p string, allowTag bool) *kpath.KPath {
	t.Helper()
	kp, err := kpath.Parse(p, allowTag)
	if err != nil {
		t.Fatalf("parse %q: %v", p, err)
	}
	return kp
}

func mustJSON(t *testing.T, s string) *Node {
	t.Helper()
	n, err := FromJSON([]byte(s))
	if err != nil {
		t.Fatalf("decode %s: %v", s, err)
	}
	return n
}

func toJSON(t *testing.T, n *Node) string {
	t.Helper()
	d, err := n.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestLocateCreatesPaddedList(t *testing.T) {
	root := NewObject()
	h, err := root.Locate(mustKPath(t, "a.b[2].c", false), true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Set(FromString("x")); err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"b":[null,null,{"c":"x"}]}}`
	if got := toJSON(t, root); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	got, err := root.GetKPath("a.b[2].c")
	if err != nil {
		t.Fatal(err)
	}
	if got.String != "x" {
		t.Errorf("get returned %q", got.String)
	}
	if p := got.KPath(); p != "a.b[2].c" {
		t.Errorf("KPath() = %q", p)
	}
}

func TestLocateReadOnlyDoesNotMutate(t *testing.T) {
	paths := []string{
		"missing.x",
		"a.missing.x",
		"a.list[5].x",
		"a.list[0].x",
		"a.str.x",
		"a.str[0].x",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			root := mustJSON(t, `{"a":{"list":[null],"str":"s"}}`)
			before := toJSON(t, root)
			_, err := root.Locate(mustKPath(t, p, false), false)
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Locate(%q) err = %v, want ErrNotFound", p, err)
			}
			if after := toJSON(t, root); after != before {
				t.Errorf("tree mutated: %s -> %s", before, after)
			}
		})
	}
}

func TestLocateConflict(t *testing.T) {
	paths := []string{"a.str.x", "a.str[1].x", "a.str[1]", "a.list[0].x"}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			root := mustJSON(t, `{"a":{"list":[1],"str":"s"}}`)
			before := toJSON(t, root)
			_, err := root.Locate(mustKPath(t, p, false), true)
			if !errors.Is(err, ErrConflict) {
				t.Errorf("err = %v, want ErrConflict", err)
			}
			if after := toJSON(t, root); after != before {
				t.Errorf("tree mutated: %s -> %s", before, after)
			}
		})
	}
}

func TestLocateNullElementMaterialized(t *testing.T) {
	root := mustJSON(t, `{"l":[null,{"k":1}]}`)
	h, err := root.Locate(mustKPath(t, "l[0].k", false), true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Set(FromInt(2)); err != nil {
		t.Fatal(err)
	}
	if got, want := toJSON(t, root), `{"l":[{"k":2},{"k":1}]}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestHandle(t *testing.T) {
	root := mustJSON(t, `{"a":{"v":1,"v.type":"Int64","l":[1,2,3]}}`)

	h, err := root.Locate(mustKPath(t, "a.v", false), false)
	if err != nil {
		t.Fatal(err)
	}
	if h.Parent != Get(root, "a") || h.Grandparent != root || h.Key != "v" || h.Index != NoIndex {
		t.Errorf("unexpected handle %+v", h)
	}
	if h.TagKey() != "v.type" {
		t.Errorf("TagKey() = %q", h.TagKey())
	}
	if v := h.Value(); v == nil || *v.Int64 != 1 {
		t.Errorf("Value() = %v", v)
	}

	th, err := root.Locate(mustKPath(t, "a.v.type", true), false)
	if err != nil {
		t.Fatal(err)
	}
	if !th.Tag || th.Key != "v.type" || th.Field() != "v" {
		t.Errorf("unexpected tag handle %+v", th)
	}
	if v := th.Value(); v == nil || v.String != "Int64" {
		t.Errorf("tag Value() = %v", v)
	}

	lh, err := root.Locate(mustKPath(t, "a.l[1]", false), false)
	if err != nil {
		t.Fatal(err)
	}
	if v := lh.Value(); v == nil || *v.Int64 != 2 {
		t.Errorf("list Value() = %v", v)
	}
	if !lh.Delete() {
		t.Errorf("Delete() of list element = false")
	}
	oob, _ := root.Locate(mustKPath(t, "a.l[7]", false), false)
	if oob.Value() != nil || oob.Delete() {
		t.Errorf("out of range element should be absent")
	}
	if err := oob.Set(FromInt(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("Set out of range: %v", err)
	}
	if !h.Delete() || h.Delete() {
		t.Errorf("Delete of field should succeed once")
	}
	if got, want := toJSON(t, root), `{"a":{"v.type":"Int64","l":[1,null,3]}}`; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLocateOnScalarRoot(t *testing.T) {
	_, err := FromString("x").Locate(mustKPath(t, "a", false), true)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v", err)
	}
}
