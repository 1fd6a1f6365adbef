package kpath

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func intPtr(i int) *int {
	return &i
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowTag bool
		want     *KPath
		wantErr  bool
	}{
		{
			name:  "single field",
			input: "a",
			want:  &KPath{Field: "a"},
		},
		{
			name:  "nested fields",
			input: "a.b.c",
			want: &KPath{
				Field: "a",
				Next: &KPath{
					Field: "b",
					Next:  &KPath{Field: "c"},
				},
			},
		},
		{
			name:  "list index",
			input: "a.b[2].c",
			want: &KPath{
				Field: "a",
				Next: &KPath{
					Field: "b",
					Index: intPtr(2),
					Next:  &KPath{Field: "c"},
				},
			},
		},
		{
			name:  "final index",
			input: "Val4[0]",
			want:  &KPath{Field: "Val4", Index: intPtr(0)},
		},
		{
			name:     "tag reference",
			input:    "a.b.type",
			allowTag: true,
			want: &KPath{
				Field: "a",
				Next:  &KPath{Field: "b", Tag: true},
			},
		},
		{
			name:     "literal type key",
			input:    "type",
			allowTag: true,
			want:     &KPath{Field: "type"},
		},
		{
			name:  "literal type key without tag access",
			input: "type",
			want:  &KPath{Field: "type"},
		},
		{
			name:  "type prefix is an ordinary field",
			input: "a.typeface",
			want: &KPath{
				Field: "a",
				Next:  &KPath{Field: "typeface"},
			},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "open paren", input: "a(b", wantErr: true},
		{name: "close paren", input: "a)b", wantErr: true},
		{name: "brace", input: "a{0}", wantErr: true},
		{name: "colon", input: "a:b", wantErr: true},
		{name: "empty segment", input: "a..b", wantErr: true},
		{name: "leading dot", input: ".a", wantErr: true},
		{name: "trailing dot", input: "a.", wantErr: true},
		{name: "negative index", input: "a[-1]", wantErr: true},
		{name: "non numeric index", input: "a[x]", wantErr: true},
		{name: "unterminated index", input: "a[1", wantErr: true},
		{name: "text after index", input: "a[1]b", wantErr: true},
		{name: "double index", input: "a[1][2]", wantErr: true},
		{name: "stray bracket", input: "a]", wantErr: true},
		{name: "index without field", input: "[0]", wantErr: true},
		{name: "huge index", input: "a[99999999999]", wantErr: true},
		{name: "tag without permission", input: "a.type", wantErr: true},
		{name: "type not final", input: "a.type.b", allowTag: true, wantErr: true},
		{name: "tag of list element", input: "a[1].type", allowTag: true, wantErr: true},
		{name: "tag of type", input: "type.type", allowTag: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.allowTag)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrPath) {
					t.Errorf("error %v does not wrap ErrPath", err)
				}
				var pe *PathError
				if !errors.As(err, &pe) || pe.Path != tt.input {
					t.Errorf("error %v is not a PathError for %q", err, tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
			if s := got.String(); s != tt.input {
				t.Errorf("String() = %q, want %q", s, tt.input)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		key   string
	}{
		{"a", "a"},
		{"a.b", "b"},
		{"a.b.type", "b.type"},
		{"a[3]", "a"},
	}
	for _, tt := range tests {
		kp, err := Parse(tt.input, true)
		if err != nil {
			t.Fatal(err)
		}
		if got := kp.Last().Key(); got != tt.key {
			t.Errorf("Key(%q) = %q, want %q", tt.input, got, tt.key)
		}
	}
}

func TestParentAndWithTag(t *testing.T) {
	kp, err := Parse("a.b[1].c", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := kp.Parent().String(); got != "a.b[1]" {
		t.Errorf("Parent() = %q", got)
	}
	if got := kp.WithTag().String(); got != "a.b[1].c.type" {
		t.Errorf("WithTag() = %q", got)
	}
	if kp.String() != "a.b[1].c" {
		t.Errorf("WithTag mutated the receiver: %q", kp)
	}
	if kp.Len() != 3 {
		t.Errorf("Len() = %d", kp.Len())
	}
	if kp.Parent().WithTag() != nil {
		t.Errorf("WithTag on an indexed segment should be nil")
	}
	single, _ := Parse("a", false)
	if single.Parent() != nil {
		t.Errorf("Parent of a single segment should be nil")
	}
}

func TestIsTagKey(t *testing.T) {
	tests := []struct {
		key   string
		field string
		ok    bool
	}{
		{"val1.type", "val1", true},
		{"standard.type", "standard", true},
		{"type", "", false},
		{"typed", "", false},
		{"val1", "", false},
	}
	for _, tt := range tests {
		f, ok := IsTagKey(tt.key)
		if f != tt.field || ok != tt.ok {
			t.Errorf("IsTagKey(%q) = %q, %v; want %q, %v", tt.key, f, ok, tt.field, tt.ok)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	kp := &KPath{}
	if err := kp.UnmarshalText([]byte("x.y[4].z.type")); err != nil {
		t.Fatal(err)
	}
	d, err := kp.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "x.y[4].z.type" {
		t.Errorf("got %q", d)
	}
}
