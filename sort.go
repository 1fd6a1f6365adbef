package sdm

import (
	"cmp"
	"slices"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/ir/kpath"
)

// SortKeysByName orders the keys of every mapping in the document by name.
// A type tag key sorts right after the field it describes.
func (d *Document) SortKeysByName() {
	sortKeys(d.root)
	sortKeys(d.extra)
}

func sortKeys(node *ir.Node) {
	_ = node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost || y.Type != ir.ObjectType {
			return true, nil
		}
		idx := make([]int, len(y.Fields))
		for i := range idx {
			idx[i] = i
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			fa, ta := sortKey(y.Fields[a])
			fb, tb := sortKey(y.Fields[b])
			if c := cmp.Compare(fa, fb); c != 0 {
				return c
			}
			return cmp.Compare(ta, tb)
		})
		fields := make([]string, len(idx))
		values := make([]*ir.Node, len(idx))
		for i, j := range idx {
			fields[i] = y.Fields[j]
			values[i] = y.Values[j]
			values[i].ParentIndex = i
		}
		y.Fields, y.Values = fields, values
		return true, nil
	})
}

func sortKey(key string) (string, int) {
	if f, ok := kpath.IsTagKey(key); ok {
		return f, 1
	}
	return key, 0
}
