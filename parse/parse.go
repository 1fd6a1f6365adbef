package parse

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/debug"
	"github.com/410-dev/lks410-sdm/ir"
)

// Result is a decoded document.
type Result struct {
	Envelope *ir.Envelope
	Header   ir.Header
	// Warnings holds non fatal findings such as a *VersionWarning.
	Warnings []error
}

// Parse decodes a whole document. The returned Root and Extra nodes are
// detached from the envelope object they were read from.
func Parse(d []byte, opts ...ParseOption) (*Result, error) {
	pOpts := &parseOpts{header: ir.DefaultHeader()}
	for _, f := range opts {
		f(pOpts)
	}
	top, err := ir.FromJSON(d)
	if err != nil {
		return nil, &ParseError{Reason: "malformed document", Err: err}
	}
	if top.Type != ir.ObjectType {
		return nil, &ParseError{Reason: fmt.Sprintf("document is a %s, not an object", top.Type)}
	}
	for _, f := range top.Fields {
		switch f {
		case ir.StandardKey, ir.DataRootKey, ir.ExtraKey:
		default:
			return nil, &ParseError{Reason: fmt.Sprintf("unexpected top level key %q", f)}
		}
	}

	std := ir.Get(top, ir.StandardKey)
	if std == nil {
		return nil, &ParseError{Reason: fmt.Sprintf("missing %q header", ir.StandardKey)}
	}
	if std.Type != ir.StringType {
		return nil, &ParseError{Reason: fmt.Sprintf("%q header is a %s", ir.StandardKey, std.Type)}
	}
	h, err := ir.ParseHeader(std.String)
	if err != nil {
		return nil, &ParseError{Reason: "bad header", Err: err}
	}
	if h.Name != pOpts.header.Name {
		return nil, &ParseError{Reason: fmt.Sprintf("header name %q, expected %q", h.Name, pOpts.header.Name)}
	}
	res := &Result{Header: h}
	if h.Version != pOpts.header.Version {
		res.Warnings = append(res.Warnings, &VersionWarning{Got: h.Version, Want: pOpts.header.Version})
	}

	root, err := section(top, ir.DataRootKey, false)
	if err != nil {
		return nil, err
	}
	extra, err := section(top, ir.ExtraKey, true)
	if err != nil {
		return nil, err
	}
	res.Envelope = &ir.Envelope{Header: std.String, Root: root, Extra: extra}
	if debug.Parse() {
		debug.Logf("parse: header %+v, %d root fields, %d extra fields, %d warnings\n",
			h, len(root.Fields), len(extra.Fields), len(res.Warnings))
	}
	return res, nil
}

func section(top *ir.Node, key string, optional bool) (*ir.Node, error) {
	n := ir.Get(top, key)
	if n == nil {
		if optional {
			return ir.NewObject(), nil
		}
		return nil, &ParseError{Reason: fmt.Sprintf("missing %q", key)}
	}
	if n.Type != ir.ObjectType {
		return nil, &ParseError{Reason: fmt.Sprintf("%q is a %s, not an object", key, n.Type)}
	}
	n.Parent = nil
	n.ParentField = ""
	n.ParentIndex = 0
	return n, nil
}
