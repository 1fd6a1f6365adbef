// Package sdm implements the LKS410 Standard Data Map, a self describing
// JSON document format.
//
// A document holds a tree of user fields under DataRoot, addressed by
// dotted paths with optional list indices:
//
//	d := sdm.New()
//	d.Set("Server.Ports[2]", 8080)
//	d.SetAs("Server.name", "edge", "String")
//	v, err := d.Get("Server.name")
//
// Any field may carry a type tag stored next to it under "<field>.type".
// TypeOf returns the stored tag, or the tag inferred from the value's shape
// when there is none. An "Object:NoStandard:@host=class" tag resolves to the
// class declared for the document's host (see WithHost), or to
// tag.Undefined when the host has no marker.
//
// Parse replaces a document only if the new content passes validation;
// Compile refuses to write a document with reserved field names. Both are
// all or nothing.
//
// A Document is not safe for concurrent use. Callers sharing one must hold
// a lock around each call.
package sdm
