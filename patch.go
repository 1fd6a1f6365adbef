package sdm

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/libdiff"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON patch to DataRoot. Pointers are relative
// to DataRoot. The result is validated like a parsed document; on any
// error d is unchanged.
func (d *Document) Patch(patch []byte) error {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ir.ErrDecode, err)
	}
	doc, err := d.root.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ir.ErrConflict, err)
	}
	return d.replaceJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to DataRoot, with the same
// guarantees as Patch.
func (d *Document) MergePatch(patch []byte) error {
	doc, err := d.root.MarshalJSON()
	if err != nil {
		return err
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return fmt.Errorf("%w: %w", ir.ErrDecode, err)
	}
	return d.replaceJSON(out)
}

func (d *Document) replaceJSON(data []byte) error {
	root, err := ir.FromJSON(data)
	if err != nil {
		return err
	}
	return d.replaceRoot(root)
}

// Diff returns the changes turning the DataRoot of d into that of other.
func (d *Document) Diff(other *Document) []libdiff.Change {
	return libdiff.Diff(d.root, other.root)
}

// DiffPatch returns Diff as an RFC 6902 patch that Patch accepts.
func (d *Document) DiffPatch(other *Document) ([]byte, error) {
	return libdiff.ToJSONPatch(d.Diff(other))
}
