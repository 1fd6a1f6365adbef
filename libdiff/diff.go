package libdiff

import (
	"strconv"
	"strings"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Change is one step of a diff.
type Change struct {
	Op Op
	// Path is the address of the changed value ("a.b[2]"). For Retag it is
	// the field whose tag changed.
	Path string
	// Pointer is the RFC 6901 pointer of the changed key ("/a/b/2",
	// "/a/x.type").
	Pointer string
	From    *ir.Node
	To      *ir.Node
}

func (c Change) String() string {
	buf := &strings.Builder{}
	buf.WriteString(c.Op.Symbol())
	buf.WriteByte(' ')
	if c.Path == "" {
		buf.WriteString(".")
	} else {
		buf.WriteString(c.Path)
	}
	buf.WriteString(": ")
	switch {
	case c.From != nil && c.To != nil:
		buf.WriteString(short(c.From) + " -> " + short(c.To))
	case c.From != nil:
		buf.WriteString(short(c.From))
	case c.To != nil:
		buf.WriteString(short(c.To))
	}
	return buf.String()
}

func short(n *ir.Node) string {
	d, err := n.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(d)
}

type loc struct {
	path, ptr string
}

func (l loc) field(f string) loc {
	return loc{path: ir.JoinKPath(l.path, f), ptr: l.ptr + "/" + escapePointer(f)}
}

func (l loc) index(i int) loc {
	return loc{path: ir.IndexKPath(l.path, i), ptr: l.ptr + "/" + strconv.Itoa(i)}
}

func escapePointer(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

type differ struct {
	changes []Change
}

// Diff returns the changes that turn from into to, or nil if they are
// equal.
func Diff(from, to *ir.Node) []Change {
	d := &differ{}
	d.diff(from, to, loc{})
	return d.changes
}

func (d *differ) add(op Op, at loc, from, to *ir.Node) {
	d.changes = append(d.changes, Change{
		Op:      op,
		Path:    at.path,
		Pointer: at.ptr,
		From:    detach(from),
		To:      detach(to),
	})
}

func detach(n *ir.Node) *ir.Node {
	if n == nil {
		return nil
	}
	res := n.Clone()
	res.Parent = nil
	res.ParentField = ""
	res.ParentIndex = 0
	return res
}

func (d *differ) diff(from, to *ir.Node, at loc) {
	switch {
	case from.Type == ir.ObjectType && to.Type == ir.ObjectType:
		d.diffObject(from, to, at)
	case from.Type == ir.ArrayType && to.Type == ir.ArrayType:
		d.diffArray(from, to, at)
	case !ir.Equal(from, to):
		d.add(Replace, at, from, to)
	}
}

// diffObject matches fields by name; field order is not significant.
func (d *differ) diffObject(from, to *ir.Node, at loc) {
	for i, key := range from.Fields {
		fv := from.Values[i]
		tv := ir.Get(to, key)
		if field, ok := kpath.IsTagKey(key); ok {
			if tv == nil || !ir.Equal(fv, tv) {
				d.retag(at, field, key, fv, tv)
			}
			continue
		}
		if tv == nil {
			d.add(Delete, at.field(key), fv, nil)
			continue
		}
		d.diff(fv, tv, at.field(key))
	}
	for i, key := range to.Fields {
		if from.FieldIndex(key) != -1 {
			continue
		}
		if field, ok := kpath.IsTagKey(key); ok {
			d.retag(at, field, key, nil, to.Values[i])
			continue
		}
		d.add(Insert, at.field(key), nil, to.Values[i])
	}
}

func (d *differ) retag(at loc, field, key string, from, to *ir.Node) {
	d.add(Retag, loc{path: at.field(field).path, ptr: at.field(key).ptr}, from, to)
}

// diffArray diffs the sequences of element summaries and recurses into
// elements that line up. A deletion run followed by an insertion run is
// paired up element by element.
func (d *differ) diffArray(from, to *ir.Node, at loc) {
	m := map[string]rune{}
	fromRunes := mapValues(m, from)
	toRunes := mapValues(m, to)
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti, ri := 0, 0, 0
	for i := 0; i < len(diffs); i++ {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffEqual:
			for range n {
				d.diff(from.Values[fi], to.Values[ti], at.index(ri))
				fi++
				ti++
				ri++
			}
		case diffpatch.DiffDelete:
			nIns := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				nIns = len([]rune(diffs[i+1].Text))
				i++
			}
			paired := min(n, nIns)
			for range paired {
				d.diff(from.Values[fi], to.Values[ti], at.index(ri))
				fi++
				ti++
				ri++
			}
			for range n - paired {
				d.add(Delete, at.index(ri), from.Values[fi], nil)
				fi++
			}
			for range nIns - paired {
				d.add(Insert, at.index(ri), nil, to.Values[ti])
				ti++
				ri++
			}
		case diffpatch.DiffInsert:
			for range n {
				d.add(Insert, at.index(ri), nil, to.Values[ti])
				ti++
				ri++
			}
		}
	}
}

// mapValues summarizes each element as a rune. Scalars are summarized by
// type and value, containers by type alone so that they line up and get
// compared field by field.
func mapValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		s := v.Type.String()
		if v.Type.IsLeaf() {
			s += "-" + short(v)
		}
		r, ok := m[s]
		if !ok {
			r = rune(len(m))
			m[s] = r
		}
		rs[i] = r
	}
	return rs
}

// Reverse returns the changes that undo changes.
func Reverse(changes []Change) []Change {
	res := make([]Change, len(changes))
	for i, c := range changes {
		r := Change{Op: c.Op, Path: c.Path, Pointer: c.Pointer, From: c.To, To: c.From}
		switch c.Op {
		case Insert:
			r.Op = Delete
		case Delete:
			r.Op = Insert
		}
		res[len(changes)-1-i] = r
	}
	return res
}
