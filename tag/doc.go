// Package tag implements the type tags attached to data map fields.
//
// A tag is a colon separated list whose first element is the primary type:
//
//	String Int8 Int16 Int32 Int64 Float32 Float64 Boolean Null Auto
//	List[:<element tag>]
//	Object[:NoStandard[:@host=identifier]...]
//
// "Object:NoStandard" marks a host specific class instance. Each "@host=id"
// marker names the class to use on one host, so a single document can carry
// identities for several runtimes:
//
//	Object:NoStandard:@python=users.UserObject:@go=example.com/users.User
//
// Resolve picks the marker for the active host. When there is none the
// effective type is Undefined; this is an expected outcome, not an error.
//
// Infer derives a tag from a node's shape when none is stored.
package tag
