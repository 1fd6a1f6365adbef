package libdiff

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/ir"
)

// ToJSONPatch renders changes as an RFC 6902 patch document.
func ToJSONPatch(changes []Change) ([]byte, error) {
	ops := make([]*ir.Node, 0, len(changes))
	for _, c := range changes {
		var op string
		var val *ir.Node
		switch {
		case c.Op == Insert, c.Op == Retag && c.From == nil:
			op, val = "add", c.To
		case c.Op == Delete, c.Op == Retag && c.To == nil:
			op = "remove"
		case c.Op == Replace, c.Op == Retag:
			op, val = "replace", c.To
		default:
			return nil, fmt.Errorf("unknown change %s", c.Op)
		}
		kvs := []ir.KeyVal{
			{Key: "op", Val: ir.FromString(op)},
			{Key: "path", Val: ir.FromString(c.Pointer)},
		}
		if val != nil {
			kvs = append(kvs, ir.KeyVal{Key: "value", Val: val.Clone()})
		}
		ops = append(ops, ir.FromKeyVals(kvs))
	}
	return ir.FromSlice(ops).MarshalJSON()
}
