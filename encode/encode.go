package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/410-dev/lks410-sdm/format"
	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/ir/kpath"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

func newState(opts []EncodeOption) *EncState {
	es := &EncState{indent: DefaultIndent}
	for _, opt := range opts {
		opt(es)
	}
	return es
}

// Encode writes node to w. Indented output ends with a newline; compact
// output does not.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	if es.format == format.YAMLFormat {
		return encodeYAML(node, w, es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	return writeEnd(w, es)
}

// EncodeEnvelope writes a whole document with its three top level keys in
// order. The document nodes are not reparented.
func EncodeEnvelope(env *ir.Envelope, w io.Writer, opts ...EncodeOption) error {
	es := newState(opts)
	extra := env.Extra
	if extra == nil {
		extra = ir.NewObject()
	}
	vals := []*ir.Node{ir.FromString(env.Header), env.Root, extra}
	if es.format == format.YAMLFormat {
		return encodeYAMLFields(ir.EnvelopeKeys(), vals, w, es)
	}
	if err := encodeFields(ir.EnvelopeKeys(), vals, w, es); err != nil {
		return err
	}
	return writeEnd(w, es)
}

// MustString encodes node with opts and panics on error.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	buf := &strings.Builder{}
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func compact(es *EncState) bool {
	return es.indent < 0
}

func writeEnd(w io.Writer, es *EncState) error {
	if compact(es) {
		return nil
	}
	return writeString(w, "\n")
}

func writeNL(w io.Writer, es *EncState) error {
	if compact(es) {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	switch node.Type {
	case ir.ObjectType:
		return encodeFields(node.Fields, node.Values, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		v, err := ir.QuoteJSON(node.String)
		if err != nil {
			return err
		}
		return writeString(w, applyColor(es, ir.StringType, ValueColor, v))
	case ir.NumberType:
		return encodeNumber(node, w, es)
	case ir.BoolType:
		return writeString(w, applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	}
	return fmt.Errorf("%w: cannot encode %s", ErrEncoding, node.Type)
}

func encodeFields(keys []string, vals []*ir.Node, w io.Writer, es *EncState) error {
	if len(keys) == 0 {
		return writeString(w, applyColor(es, ir.ObjectType, SepColor, "{}"))
	}
	if err := writeString(w, applyColor(es, ir.ObjectType, SepColor, "{")); err != nil {
		return err
	}
	es.depth++
	for i, key := range keys {
		if i != 0 {
			if err := writeString(w, applyColor(es, ir.ObjectType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		_, isTag := kpath.IsTagKey(key)
		if err := writeField(w, key, es); err != nil {
			return err
		}
		val := vals[i]
		if isTag && val != nil && val.Type == ir.StringType {
			v, err := ir.QuoteJSON(val.String)
			if err != nil {
				return err
			}
			if err := writeString(w, applyColor(es, ir.StringType, TagColor, v)); err != nil {
				return err
			}
			continue
		}
		if err := encode(val, w, es); err != nil {
			return fmt.Errorf("%w (field %q)", err, key)
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.ObjectType, SepColor, "}"))
}

func writeField(w io.Writer, key string, es *EncState) error {
	q, err := ir.QuoteJSON(key)
	if err != nil {
		return err
	}
	attr := FieldColor
	if _, ok := kpath.IsTagKey(key); ok {
		attr = TagColor
	}
	sep := ":"
	if !compact(es) {
		sep += " "
	}
	return writeString(w, applyColor(es, ir.ObjectType, attr, q)+applyColor(es, ir.ObjectType, SepColor, sep))
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Values) == 0 {
		return writeString(w, applyColor(es, ir.ArrayType, SepColor, "[]"))
	}
	if err := writeString(w, applyColor(es, ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	es.depth++
	for i, v := range node.Values {
		if i != 0 {
			if err := writeString(w, applyColor(es, ir.ArrayType, SepColor, ",")); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return fmt.Errorf("%w (index %d)", err, i)
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeString(w, applyColor(es, ir.ArrayType, SepColor, "]"))
}

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	var v string
	switch {
	case node.Int64 != nil:
		v = strconv.FormatInt(*node.Int64, 10)
	case node.Float64 != nil:
		s, err := ir.FormatFloat(*node.Float64)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		v = s
	default:
		return fmt.Errorf("%w: number without value", ErrEncoding)
	}
	return writeString(w, applyColor(es, ir.NumberType, ValueColor, v))
}
