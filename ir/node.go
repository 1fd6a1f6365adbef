package ir

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"
)

// Node is one value in a document tree.
//
// For ObjectType, Fields[i] is the key for Values[i]. For ArrayType only
// Values is populated. Numbers carry exactly one of Int64 or Float64.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []string
	Values      []*Node

	String  string
	Bool    bool
	Float64 *float64
	Int64   *int64
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Type = y.Type
	dst.Fields = nil
	dst.Values = nil
	if y.Fields != nil {
		dst.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
	}
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// NewObject returns an empty mapping.
func NewObject() *Node {
	return &Node{Type: ObjectType, Fields: []string{}, Values: []*Node{}}
}

// NewArray returns a sequence of n null elements.
func NewArray(n int) *Node {
	res := &Node{Type: ArrayType, Values: make([]*Node, 0, n)}
	for range n {
		res.Append(Null())
	}
	return res
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = node.Values[i]
	}
	return res
}

// FromMap builds a mapping with keys in sorted order.
func FromMap(yMap map[string]*Node) *Node {
	res := NewObject()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.Put(key, yMap[key])
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals builds a mapping preserving the order of kvs. A repeated key
// keeps its first position and its last value.
func FromKeyVals(kvs []KeyVal) *Node {
	res := NewObject()
	for _, kv := range kvs {
		res.Put(kv.Key, kv.Val)
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, 0, len(ySlice)),
	}
	for _, y := range ySlice {
		res.Append(y)
	}
	return res
}

// FromAny converts a Go value into a node tree. Maps are converted with
// sorted keys. A *Node is returned as is.
func FromAny(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case *Node:
		if x == nil {
			return Null(), nil
		}
		return x, nil
	case string:
		return FromString(x), nil
	case bool:
		return FromBool(x), nil
	case int:
		return FromInt(int64(x)), nil
	case int8:
		return FromInt(int64(x)), nil
	case int16:
		return FromInt(int64(x)), nil
	case int32:
		return FromInt(int64(x)), nil
	case int64:
		return FromInt(x), nil
	case uint8:
		return FromInt(int64(x)), nil
	case uint16:
		return FromInt(int64(x)), nil
	case uint32:
		return FromInt(int64(x)), nil
	case float32:
		return FromFloat(float64(x)), nil
	case float64:
		return FromFloat(x), nil
	case json.Number:
		return fromNumber(string(x))
	case []any:
		res := FromSlice(nil)
		for i, e := range x {
			en, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(en)
		}
		return res, nil
	case map[string]any:
		res := NewObject()
		for _, k := range slices.Sorted(maps.Keys(x)) {
			en, err := FromAny(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			res.Put(k, en)
		}
		return res, nil
	}
	return fromReflect(reflect.ValueOf(v))
}

func fromReflect(rv reflect.Value) (*Node, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null(), nil
		}
		return FromAny(rv.Elem().Interface())
	case reflect.Uint, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrDecode, u)
		}
		return FromInt(int64(u)), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(rv.Int()), nil
	case reflect.Float32, reflect.Float64:
		return FromFloat(rv.Float()), nil
	case reflect.String:
		return FromString(rv.String()), nil
	case reflect.Bool:
		return FromBool(rv.Bool()), nil
	case reflect.Slice, reflect.Array:
		res := FromSlice(nil)
		for i := range rv.Len() {
			en, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			res.Append(en)
		}
		return res, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrDecode, rv.Type().Key())
		}
		m := make(map[string]*Node, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			en, err := FromAny(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", iter.Key().String(), err)
			}
			m[iter.Key().String()] = en
		}
		return FromMap(m), nil
	}
	return nil, fmt.Errorf("%w: unsupported value of type %s", ErrDecode, rv.Type())
}

// ToAny converts the node tree into plain Go values: map[string]any, []any,
// string, bool, int64, float64 and nil.
func (y *Node) ToAny() any {
	switch y.Type {
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f] = y.Values[i].ToAny()
		}
		return res
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToAny()
		}
		return res
	case StringType:
		return y.String
	case BoolType:
		return y.Bool
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
	}
	return nil
}

func (y *Node) IsInt() bool {
	return y.Type == NumberType && y.Int64 != nil
}

func (y *Node) IsFloat() bool {
	return y.Type == NumberType && y.Int64 == nil
}

func Get(y *Node, field string) *Node {
	i := y.FieldIndex(field)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// FieldIndex returns the position of field in an object, or -1.
func (y *Node) FieldIndex(field string) int {
	if y == nil || y.Type != ObjectType {
		return -1
	}
	return slices.Index(y.Fields, field)
}

// Put sets field to v, replacing any existing value in place.
func (y *Node) Put(field string, v *Node) {
	v.Parent = y
	v.ParentField = field
	if i := y.FieldIndex(field); i != -1 {
		v.ParentIndex = i
		y.Values[i] = v
		return
	}
	v.ParentIndex = len(y.Values)
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
}

// Delete removes field, reporting whether it was present.
func (y *Node) Delete(field string) bool {
	i := y.FieldIndex(field)
	if i == -1 {
		return false
	}
	y.Values[i].Parent = nil
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Values); j++ {
		y.Values[j].ParentIndex = j
	}
	return true
}

// Append adds v to the end of an array.
func (y *Node) Append(v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
}

// SetIndex replaces the array element at i.
func (y *Node) SetIndex(i int, v *Node) {
	v.Parent = y
	v.ParentIndex = i
	v.ParentField = ""
	y.Values[i] = v
}

// Pad grows an array with nulls until it has at least n elements.
func (y *Node) Pad(n int) {
	for len(y.Values) < n {
		y.Append(Null())
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}
