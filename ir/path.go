package ir

import "strconv"

// KPath returns the path of this node relative to the root of its tree, in
// the form used to address it ("a.b[2].c"). The root itself yields "".
func (node *Node) KPath() string {
	if node.Parent == nil {
		return ""
	}
	prefix := node.Parent.KPath()
	switch node.Parent.Type {
	case ObjectType:
		if prefix == "" {
			return node.ParentField
		}
		return prefix + "." + node.ParentField
	case ArrayType:
		return prefix + "[" + strconv.Itoa(node.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

// JoinKPath appends a field to a path prefix.
func JoinKPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// IndexKPath appends a list index to a path prefix.
func IndexKPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
