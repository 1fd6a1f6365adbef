package sdm

import (
	"errors"
	"testing"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/libdiff"
	"github.com/410-dev/lks410-sdm/tag"
	"github.com/google/go-cmp/cmp"
)

func docWithRoot(t *testing.T, root string, opts ...Option) *Document {
	t.Helper()
	d := New(opts...)
	if err := d.replaceJSON([]byte(root)); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name  string
		patch string
		want  string
		err   error
	}{
		{
			name:  "add and replace",
			patch: `[{"op":"add","path":"/L/-","value":3},{"op":"replace","path":"/a","value":"x"}]`,
			want:  `{"a":"x","L":[1,2,3]}`,
		},
		{
			name:  "tag keys are plain keys",
			patch: `[{"op":"add","path":"/a.type","value":"Int8"}]`,
			want:  `{"a":1,"a.type":"Int8","L":[1,2]}`,
		},
		{
			name:  "reserved name",
			patch: `[{"op":"add","path":"/standard","value":1}]`,
			err:   errValidation,
		},
		{
			name:  "missing target",
			patch: `[{"op":"replace","path":"/nope/x","value":1}]`,
			err:   ir.ErrConflict,
		},
		{
			name:  "failed test op",
			patch: `[{"op":"remove","path":"/a"},{"op":"test","path":"/L/0","value":9}]`,
			err:   ir.ErrConflict,
		},
		{
			name:  "malformed",
			patch: `{"op":`,
			err:   ir.ErrDecode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := docWithRoot(t, `{"a":1,"L":[1,2]}`)
			before := rootJSON(t, d)
			err := d.Patch([]byte(tt.patch))
			if tt.err != nil {
				if !errorIs(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				if got := rootJSON(t, d); got != before {
					t.Errorf("failed patch changed document to %s", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if want := mustJSON(t, tt.want); !ir.Equal(d.Root(), want) {
				t.Errorf("got %s, want %s", rootJSON(t, d), tt.want)
			}
		})
	}
}

// errValidation stands in for validation failures in test tables.
var errValidation = errors.New("validation")

func errorIs(err, target error) bool {
	if target == errValidation {
		return IsValidation(err)
	}
	return errors.Is(err, target)
}

func TestMergePatch(t *testing.T) {
	d := docWithRoot(t, `{"a":1,"B":{"c":1,"d":2},"x":"s","x.type":"String"}`)
	if err := d.MergePatch([]byte(`{"a":null,"B":{"d":null,"e":[1]},"x.type":null}`)); err != nil {
		t.Fatal(err)
	}
	want := mustJSON(t, `{"B":{"c":1,"e":[1]},"x":"s"}`)
	if !ir.Equal(d.Root(), want) {
		t.Errorf("got %s", rootJSON(t, d))
	}
	before := rootJSON(t, d)
	if err := d.MergePatch([]byte(`{"B":{"DataRoot":1}}`)); !IsValidation(err) {
		t.Errorf("err = %v", err)
	}
	if got := rootJSON(t, d); got != before {
		t.Errorf("failed merge changed document to %s", got)
	}
}

func TestDiffPatchRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{`{"a":1}`, `{"a":1}`},
		{`{"a":1,"L":[1,2,3]}`, `{"L":[3,1],"b":{"c":null}}`},
		{`{"x":1,"x.type":"Int8"}`, `{"x":1.5,"x.type":"Float32"}`},
		{`{"U":[{"n":"a"},{"n":"b"}]}`, `{"U":[{"n":"b"},{"n":"c"},{"n":"a"}]}`},
	}
	for _, p := range pairs {
		from := docWithRoot(t, p[0])
		to := docWithRoot(t, p[1])
		pd, err := from.DiffPatch(to)
		if err != nil {
			t.Fatal(err)
		}
		if err := from.Patch(pd); err != nil {
			t.Fatalf("%s -> %s: %v\npatch %s", p[0], p[1], err, pd)
		}
		if !ir.Equal(from.Root(), to.Root()) {
			t.Errorf("%s -> %s: got %s", p[0], p[1], rootJSON(t, from))
		}
		if cs := from.Diff(to); len(cs) != 0 {
			t.Errorf("patched document still differs: %v", cs)
		}
	}
}

func TestDiffReportsRetag(t *testing.T) {
	a := New()
	mustSet(t, a, "port", 80, As(tag.Int16))
	b := a.Clone()
	mustSet(t, b, "port", 80, As(tag.Int32))
	cs := a.Diff(b)
	want := []libdiff.Change{{
		Op:      libdiff.Retag,
		Path:    "port",
		Pointer: "/port.type",
		From:    ir.FromString("Int16"),
		To:      ir.FromString("Int32"),
	}}
	if diff := cmp.Diff(want, cs); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

type user struct {
	class string
	id    int64
}

func TestMaterialize(t *testing.T) {
	const owner = "Object:NoStandard:@python=users.UserObject:@go=example.com/users.User"
	m := MaterializerFunc(func(class string, fields *ir.Node) (any, error) {
		id := ir.Get(fields, "id")
		if id == nil || !id.IsInt() {
			return nil, errors.New("no id")
		}
		return user{class: class, id: *id.Int64}, nil
	})
	build := func(host string) *Document {
		d := New(WithHost(host))
		mustSet(t, d, "Owner", map[string]any{"id": 7}, As(owner))
		mustSet(t, d, "Plain", map[string]any{"id": 1})
		mustSet(t, d, "n", 1)
		return d
	}

	got, err := build("python").Materialize("Owner", m)
	if err != nil {
		t.Fatal(err)
	}
	if u := got.(user); u.class != "users.UserObject" || u.id != 7 {
		t.Errorf("got %+v", u)
	}
	got, err = build(DefaultHost).Materialize("Owner", m)
	if err != nil || got.(user).class != "example.com/users.User" {
		t.Errorf("go host = %v, %v", got, err)
	}

	for _, tt := range []struct {
		host, path string
	}{
		{"rust", "Owner"},
		{DefaultHost, "Plain"},
		{DefaultHost, "n"},
	} {
		if _, err := build(tt.host).Materialize(tt.path, m); !errors.Is(err, ErrNotMaterializable) {
			t.Errorf("%s %s: err = %v", tt.host, tt.path, err)
		}
	}
	if _, err := build(DefaultHost).Materialize("missing", m); !errors.Is(err, ir.ErrNotFound) {
		t.Errorf("missing: err = %v", err)
	}
}
