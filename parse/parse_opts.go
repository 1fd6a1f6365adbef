package parse

import "github.com/410-dev/lks410-sdm/ir"

type ParseOption func(*parseOpts)

type parseOpts struct {
	header ir.Header
}

// ExpectHeader sets the product name and version documents are checked
// against. The default is ir.DefaultHeader().
func ExpectHeader(h ir.Header) ParseOption {
	return func(o *parseOpts) { o.header = h }
}
