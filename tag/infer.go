package tag

import (
	"fmt"
	"math"

	"github.com/410-dev/lks410-sdm/ir"
)

// Infer classifies a node by shape. Integral numbers are always Int32
// whatever their magnitude; Check reports values that do not fit.
func Infer(n *ir.Node) string {
	if n == nil {
		return Null
	}
	switch n.Type {
	case ir.ObjectType:
		return Object
	case ir.ArrayType:
		return Compose(List, Auto)
	case ir.BoolType:
		return Boolean
	case ir.StringType:
		return String
	case ir.NullType:
		return Null
	case ir.NumberType:
		if n.IsInt() {
			return Int32
		}
		return Float64
	}
	return Undefined
}

var intRanges = map[string][2]int64{
	Int8:  {math.MinInt8, math.MaxInt8},
	Int16: {math.MinInt16, math.MaxInt16},
	Int32: {math.MinInt32, math.MaxInt32},
	Int64: {math.MinInt64, math.MaxInt64},
}

// Check reports whether n is a valid value for t. Integer tags check
// the value range; float tags also accept integral numbers; list elements
// are checked against the element tag, with null placeholders allowed.
func Check(t Tag, n *ir.Node) error {
	if n == nil {
		n = ir.Null()
	}
	switch t.Primary {
	case Auto:
		return nil
	case String:
		return want(n, ir.StringType, t)
	case Boolean:
		return want(n, ir.BoolType, t)
	case Null:
		return want(n, ir.NullType, t)
	case Object:
		return want(n, ir.ObjectType, t)
	case Int8, Int16, Int32, Int64:
		if !n.IsInt() {
			return fmt.Errorf("%s value for %s", Infer(n), t)
		}
		r := intRanges[t.Primary]
		if v := *n.Int64; v < r[0] || v > r[1] {
			return fmt.Errorf("value %d out of range for %s", v, t)
		}
		return nil
	case Float32, Float64:
		if n.Type != ir.NumberType {
			return fmt.Errorf("%s value for %s", Infer(n), t)
		}
		if t.Primary == Float32 && n.Float64 != nil && math.Abs(*n.Float64) > math.MaxFloat32 {
			return fmt.Errorf("value %g out of range for %s", *n.Float64, t)
		}
		return nil
	case List:
		if err := want(n, ir.ArrayType, t); err != nil {
			return err
		}
		elem, _ := t.Elem()
		for i, v := range n.Values {
			if v.Type == ir.NullType {
				continue
			}
			if err := Check(elem, v); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	}
	return fmt.Errorf("%w: unknown primary type %q", ErrBadTag, t.Primary)
}

func want(n *ir.Node, typ ir.Type, t Tag) error {
	if n.Type != typ {
		return fmt.Errorf("%s value for %s", Infer(n), t)
	}
	return nil
}
