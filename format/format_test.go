package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"j": JSONFormat, "json": JSONFormat, "y": YAMLFormat, "yaml": YAMLFormat} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("toml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestText(t *testing.T) {
	for _, f := range []Format{JSONFormat, YAMLFormat} {
		d, err := f.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var g Format
		if err := g.UnmarshalText(d); err != nil || g != f {
			t.Errorf("%s: got %v, %v", f, g, err)
		}
	}
	if _, err := Format(7).MarshalText(); err == nil {
		t.Errorf("expected error for unknown format")
	}
}
