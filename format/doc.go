// Package format names the text formats a data map can be written in.
//
// JSON is the document format itself. YAML is an output only rendering
// of values for people to read.
package format
