package sdm

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/tag"
)

// Materializer builds a host object for a NoStandard value. It receives
// the class identifier resolved for the host and a copy of the field
// mapping.
type Materializer interface {
	Materialize(classID string, fields *ir.Node) (any, error)
}

type MaterializerFunc func(classID string, fields *ir.Node) (any, error)

func (f MaterializerFunc) Materialize(classID string, fields *ir.Node) (any, error) {
	return f(classID, fields)
}

// Materialize resolves the NoStandard tag of the mapping at path for the
// document's host and passes it to m.
func (d *Document) Materialize(path string, m Materializer) (any, error) {
	v, err := d.Lookup(path)
	if err != nil {
		return nil, err
	}
	if v.Node.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotMaterializable, path, v.Node.Type)
	}
	res := tag.Resolve(v.Tag, d.cfg.host)
	if !res.NoStandard {
		return nil, fmt.Errorf("%w: %q has no NoStandard tag", ErrNotMaterializable, path)
	}
	if !res.Resolved() {
		return nil, fmt.Errorf("%w: %q has no class for host %q", ErrNotMaterializable, path, d.cfg.host)
	}
	return m.Materialize(res.Class, v.Node)
}
