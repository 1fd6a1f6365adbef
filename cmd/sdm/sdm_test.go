package main

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

func TestSplitAssign(t *testing.T) {
	tests := []struct {
		arg  string
		path string
		v    any
	}{
		{"a=1", "a", uint64(1)},
		{"a.b=-2", "a.b", int64(-2)},
		{"x=hello", "x", "hello"},
		{"x='1'", "x", "1"},
		{"f=0.5", "f", 0.5},
		{"on=true", "on", true},
		{"n=", "n", nil},
		{"n=null", "n", nil},
		{"L=[1, x]", "L", []any{uint64(1), "x"}},
		{"O={k: v}", "O", map[string]any{"k": "v"}},
		{"x.type=Int16", "x.type", "Int16"},
		{"eq=a=b", "eq", "a=b"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			path, v, err := splitAssign(tt.arg)
			if err != nil {
				t.Fatal(err)
			}
			if path != tt.path {
				t.Errorf("path = %q, want %q", path, tt.path)
			}
			if diff := cmp.Diff(tt.v, v); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, _, err := splitAssign("novalue"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("err = %v", err)
	}
}
