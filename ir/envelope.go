package ir

import (
	"fmt"
	"strings"
)

// Top level keys of a serialized document.
const (
	StandardKey = "standard"
	DataRootKey = "DataRoot"
	ExtraKey    = "ExtraProperties"
)

const (
	ProductName   = "LKS410 Standard Data Map"
	FormatVersion = "1.0"
	ReferenceURL  = "https://github.com/410-dev/lks410-sdm/tree/main/docs"
	// HeaderSep separates the components of a header.
	HeaderSep = ";;;"
)

// EnvelopeKeys returns the top level keys in serialization order.
func EnvelopeKeys() []string {
	return []string{StandardKey, DataRootKey, ExtraKey}
}

// Header is the decoded "standard" value of a document.
type Header struct {
	Name    string
	Version string
	URL     string
}

// DefaultHeader returns the header written by this implementation.
func DefaultHeader() Header {
	return Header{Name: ProductName, Version: FormatVersion, URL: ReferenceURL}
}

func (h Header) String() string {
	return h.Name + HeaderSep + h.Version + HeaderSep + h.URL
}

// ParseHeader splits a header string. A header needs at least a name and a
// version; the URL and anything after it are kept together in URL.
func ParseHeader(s string) (Header, error) {
	parts := strings.SplitN(s, HeaderSep, 3)
	if len(parts) < 2 {
		return Header{}, fmt.Errorf("%w: header %q has no version", ErrDecode, s)
	}
	h := Header{Name: parts[0], Version: parts[1]}
	if len(parts) == 3 {
		h.URL = parts[2]
	}
	return h, nil
}

// Envelope is a whole document: its header line, the data root and the
// extra properties mapping.
type Envelope struct {
	Header string
	Root   *Node
	Extra  *Node
}
