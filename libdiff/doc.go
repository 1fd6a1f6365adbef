// Package libdiff computes the difference between two data map trees.
//
// # Usage
//
//	// Compute the changes turning one tree into another
//	changes := libdiff.Diff(oldRoot, newRoot)
//
//	// As an RFC 6902 JSON patch
//	patch, err := libdiff.ToJSONPatch(changes)
//
//	// Undo
//	undo := libdiff.Reverse(changes)
//
// Changes are ordered so that applying them one after another turns the
// old tree into the new one. List positions in later changes account for
// earlier insertions and deletions in the same list.
//
// Changes to a "<field>.type" key are reported as Retag on the field.
package libdiff
