package tag

import (
	"errors"
	"math"
	"testing"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{in: "String", want: Tag{Primary: String}},
		{in: "Int64", want: Tag{Primary: Int64}},
		{in: "List", want: Tag{Primary: List}},
		{in: "List:String", want: Tag{Primary: List, Subs: []string{"String"}}},
		{in: "List:List:Int8", want: Tag{Primary: List, Subs: []string{"List", "Int8"}}},
		{in: "Object", want: Tag{Primary: Object}},
		{in: "Object:NoStandard", want: Tag{Primary: Object, Subs: []string{NoStandard}}},
		{
			in:   "Object:NoStandard:@python=sampleObjects.user.UserObject:@java=javax.randomframework.objects.UserObject",
			want: Tag{Primary: Object, Subs: []string{NoStandard, "@python=sampleObjects.user.UserObject", "@java=javax.randomframework.objects.UserObject"}},
		},
		{in: "", wantErr: true},
		{in: "Integer", wantErr: true},
		{in: "String:Auto", wantErr: true},
		{in: "List:", wantErr: true},
		{in: "List:Bogus", wantErr: true},
		{in: "Object:String", wantErr: true},
		{in: "Object:NoStandard:python=x", wantErr: true},
		{in: "Object:NoStandard:@python", wantErr: true},
		{in: "Object:NoStandard:@=x", wantErr: true},
		{in: "UndefinedType", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrBadTag) {
					t.Fatalf("Parse(%q) err = %v, want ErrBadTag", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	const stored = "Object:NoStandard:@python=sampleObjects.user.UserObject:@go=example.com/users.User"
	tests := []struct {
		name      string
		tag, host string
		want      Resolution
	}{
		{
			name: "standard tag passes through",
			tag:  "List:String", host: "go",
			want: Resolution{Tag: "List:String", Effective: "List:String"},
		},
		{
			name: "matching host",
			tag:  stored, host: "go",
			want: Resolution{Tag: stored, Effective: "example.com/users.User", Class: "example.com/users.User", NoStandard: true},
		},
		{
			name: "first marker",
			tag:  stored, host: "python",
			want: Resolution{Tag: stored, Effective: "sampleObjects.user.UserObject", Class: "sampleObjects.user.UserObject", NoStandard: true},
		},
		{
			name: "unknown host is undefined",
			tag:  stored, host: "java",
			want: Resolution{Tag: stored, Effective: Undefined, NoStandard: true},
		},
		{
			name: "no markers",
			tag:  "Object:NoStandard", host: "go",
			want: Resolution{Tag: "Object:NoStandard", Effective: Undefined, NoStandard: true},
		},
		{
			name: "malformed markers are skipped",
			tag:  "Object:NoStandard:go=x:@go=y", host: "go",
			want: Resolution{Tag: "Object:NoStandard:go=x:@go=y", Effective: "y", Class: "y", NoStandard: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.tag, tt.host)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if got.Resolved() != (tt.want.Class != "") {
				t.Errorf("Resolved() = %v", got.Resolved())
			}
		})
	}
}

func TestMarkers(t *testing.T) {
	tg := MustParse("Object:NoStandard:@python=a.B:@java=c.D")
	want := []Marker{{Host: "python", Class: "a.B"}, {Host: "java", Class: "c.D"}}
	if diff := cmp.Diff(want, tg.Markers()); diff != "" {
		t.Errorf("Markers mismatch (-want +got):\n%s", diff)
	}
	if c, ok := tg.Class("java"); !ok || c != "c.D" {
		t.Errorf("Class(java) = %q, %v", c, ok)
	}
	if _, ok := tg.Class("go"); ok {
		t.Errorf("Class(go) should not resolve")
	}
	if want[0].String() != "@python=a.B" {
		t.Errorf("Marker.String() = %q", want[0].String())
	}
	if MustParse("Object").Markers() != nil {
		t.Errorf("plain Object has no markers")
	}
}

func TestKinds(t *testing.T) {
	if !MustParse("List:Int8").IsComplex() || !MustParse("Object:NoStandard").IsComplex() {
		t.Errorf("containers should be complex")
	}
	if MustParse("String").IsComplex() {
		t.Errorf("String is not complex")
	}
	if e, ok := MustParse("List:List:Int8").Elem(); !ok || e.String() != "List:Int8" {
		t.Errorf("Elem() = %v, %v", e, ok)
	}
	if e, _ := MustParse("List").Elem(); e.Primary != Auto {
		t.Errorf("bare List elem = %v", e)
	}
	if _, ok := MustParse("Object").Elem(); ok {
		t.Errorf("Object has no element type")
	}
}

func TestInfer(t *testing.T) {
	tests := []struct {
		name string
		n    *ir.Node
		want string
	}{
		{"mapping", ir.NewObject(), Object},
		{"sequence", ir.FromSlice(nil), "List:Auto"},
		{"bool", ir.FromBool(true), Boolean},
		{"string", ir.FromString("x"), String},
		{"int", ir.FromInt(1), Int32},
		{"float", ir.FromFloat(0.4), Float64},
		{"null", ir.Null(), Null},
		{"absent", nil, Null},
		// Magnitude does not promote the width; Check flags the value.
		{"large int stays Int32", ir.FromInt(1 << 40), Int32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(tt.n); got != tt.want {
				t.Errorf("Infer() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInferredLargeIntFailsCheck(t *testing.T) {
	n := ir.FromInt(1 << 40)
	if err := Check(MustParse(Infer(n)), n); err == nil {
		t.Errorf("value beyond Int32 should not check against its inferred tag")
	}
}

func TestCheck(t *testing.T) {
	list := func(vs ...*ir.Node) *ir.Node { return ir.FromSlice(vs) }
	tests := []struct {
		name string
		tag  string
		n    *ir.Node
		ok   bool
	}{
		{"string", "String", ir.FromString("x"), true},
		{"string mismatch", "String", ir.FromInt(1), false},
		{"int8 in range", "Int8", ir.FromInt(-128), true},
		{"int8 overflow", "Int8", ir.FromInt(128), false},
		{"int16 overflow", "Int16", ir.FromInt(1 << 15), false},
		{"int32 overflow", "Int32", ir.FromInt(1 << 31), false},
		{"int64", "Int64", ir.FromInt(math.MaxInt64), true},
		{"int from float", "Int32", ir.FromFloat(1), false},
		{"float64 accepts int", "Float64", ir.FromInt(3), true},
		{"float32 overflow", "Float32", ir.FromFloat(1e39), false},
		{"float from string", "Float64", ir.FromString("1"), false},
		{"boolean", "Boolean", ir.FromBool(false), true},
		{"null", "Null", ir.Null(), true},
		{"null mismatch", "Null", ir.FromBool(false), false},
		{"auto", "Auto", ir.FromString("x"), true},
		{"object", "Object", ir.NewObject(), true},
		{"nostandard", "Object:NoStandard:@go=x", ir.NewObject(), true},
		{"nostandard scalar", "Object:NoStandard:@go=x", ir.FromString("x"), false},
		{"list auto", "List:Auto", list(ir.FromInt(1), ir.FromString("s")), true},
		{"list string", "List:String", list(ir.FromString("a"), ir.Null()), true},
		{"list string mismatch", "List:String", list(ir.FromString("a"), ir.FromInt(1)), false},
		{"nested list", "List:List:Int8", list(list(ir.FromInt(1))), true},
		{"nested list overflow", "List:List:Int8", list(list(ir.FromInt(1000))), false},
		{"list of scalar", "List:String", ir.FromString("a"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(MustParse(tt.tag), tt.n)
			if (err == nil) != tt.ok {
				t.Errorf("Check(%s) = %v, want ok=%v", tt.tag, err, tt.ok)
			}
		})
	}
}

func TestPrimaries(t *testing.T) {
	ps := Primaries()
	for _, p := range ps {
		if _, err := Parse(p); err != nil {
			t.Errorf("primary %q does not parse: %v", p, err)
		}
	}
	ps[0] = "mutated"
	if Primaries()[0] != String {
		t.Errorf("Primaries returned shared storage")
	}
}
