package ir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// FromJSON decodes a single JSON value into a node tree. Object key order is
// preserved. Integral numbers become Int64 nodes unless they overflow, in
// which case they fall back to Float64.
func FromJSON(d []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after value", ErrDecode)
	}
	return res, nil
}

func decodeValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		switch x {
		case '{':
			res := NewObject()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", kt)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Put(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		case '[':
			res := FromSlice(nil)
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				res.Append(v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return res, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case nil:
		return Null(), nil
	case json.Number:
		return fromNumber(string(x))
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func fromNumber(s string) (*Node, error) {
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return FromInt(i), nil
		}
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || !errors.Is(numErr.Err, strconv.ErrRange) {
			return nil, fmt.Errorf("%w: bad number %q", ErrDecode, s)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad number %q", ErrDecode, s)
	}
	return FromFloat(f), nil
}

// MarshalJSON encodes the node as compact JSON with object keys in node
// order. Non-integral floats always carry a fraction or exponent so that
// they decode back to floats.
func (y *Node) MarshalJSON() ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSON(buf, y); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := FromJSON(d)
	if err != nil {
		return err
	}
	n.CloneTo(y)
	return nil
}

func writeJSON(buf *bytes.Buffer, y *Node) error {
	switch y.Type {
	case NullType:
		buf.WriteString("null")
	case BoolType:
		buf.WriteString(strconv.FormatBool(y.Bool))
	case StringType:
		return writeJSONString(buf, y.String)
	case NumberType:
		if y.Int64 != nil {
			buf.WriteString(strconv.FormatInt(*y.Int64, 10))
			return nil
		}
		if y.Float64 == nil {
			return fmt.Errorf("number node without value at %s", y.KPath())
		}
		s, err := FormatFloat(*y.Float64)
		if err != nil {
			return fmt.Errorf("%w at %s", err, y.KPath())
		}
		buf.WriteString(s)
	case ArrayType:
		buf.WriteByte('[')
		for i, v := range y.Values {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case ObjectType:
		buf.WriteByte('{')
		for i, f := range y.Fields {
			if i != 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, f); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, y.Values[i]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot encode %s as json", y.Type)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates each value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// FormatFloat renders f as a JSON number that decodes back to a float.
func FormatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("unsupported float value %v", f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// QuoteJSON returns s as a JSON string literal without HTML escaping.
func QuoteJSON(s string) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := writeJSONString(buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}
