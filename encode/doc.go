// Package encode writes data map trees and whole documents as text.
//
// # Usage
//
//	// Encode a tree as indented JSON
//	err := encode.Encode(node, w)
//
//	// Compact JSON
//	err := encode.Encode(node, w, encode.Indent(-1))
//
//	// A whole document with the envelope keys in order
//	err := encode.EncodeEnvelope(env, w, encode.Indent(2))
//
//	// YAML for reading, colored for a terminal
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//	err := encode.Encode(node, w, encode.EncodeColors(encode.NewColors()))
//
// Object keys are written in node order. Floats always carry a fraction or
// exponent so that they decode back to floats.
//
// # Related Packages
//
//   - github.com/410-dev/lks410-sdm/ir - tree representation
//   - github.com/410-dev/lks410-sdm/parse - read documents back
package encode
