// Package kpath parses the dotted paths used to address values in a data map.
//
// A path is a sequence of field names separated by '.', each optionally
// followed by a list index:
//
//	"name"            // field of the data root
//	"a.b.c"           // nested mapping fields
//	"a.b[2].c"        // field c of the mapping at index 2 of list a.b
//	"users[0]"        // list element
//
// The characters '{', '}', '(', ')' and ':' are never allowed.
//
// # Type tags
//
// A field's type tag is stored next to it under the key "<field>.type". When
// a path is parsed with allowTag set, a final segment that is exactly "type"
// is a tag reference: "a.b.type" addresses the tag of field "a.b". Without
// allowTag such a path is rejected so ordinary access cannot touch tags by
// accident. A "type" segment anywhere else is always rejected.
//
// # Usage
//
//	kp, err := kpath.Parse("a.b[2].c", false)
//	if err != nil {
//	    // errors.Is(err, kpath.ErrPath)
//	}
//	last := kp.Last()
//	key := last.Key() // "c"
//
// # Related Packages
//
//   - github.com/410-dev/lks410-sdm/ir - node tree and traversal
package kpath
