package sdm

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/410-dev/lks410-sdm/encode"
	"github.com/410-dev/lks410-sdm/ir"
	"github.com/410-dev/lks410-sdm/parse"
	"github.com/410-dev/lks410-sdm/validate"
)

// Document is a data map: a header, the DataRoot tree and the
// ExtraProperties mapping.
type Document struct {
	header   string
	root     *ir.Node
	extra    *ir.Node
	warnings []error
	cfg      *config
}

// New returns an empty document with the current header.
func New(opts ...Option) *Document {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return &Document{
		header: ir.DefaultHeader().String(),
		root:   ir.NewObject(),
		extra:  ir.NewObject(),
		cfg:    cfg,
	}
}

// Parse returns a new document read from data.
func Parse(data []byte, opts ...Option) (*Document, error) {
	d := New(opts...)
	if err := d.Parse(data); err != nil {
		return nil, err
	}
	return d, nil
}

func ParseString(s string, opts ...Option) (*Document, error) {
	return Parse([]byte(s), opts...)
}

// Parse replaces the content of d with data. The new content is validated
// first; on any error d is left as it was.
func (d *Document) Parse(data []byte) error {
	res, err := parse.Parse(data)
	if err != nil {
		return err
	}
	if err := d.check(res.Envelope.Root); err != nil {
		return err
	}
	d.header = res.Envelope.Header
	d.root = res.Envelope.Root
	d.extra = res.Envelope.Extra
	d.warnings = res.Warnings
	for _, w := range res.Warnings {
		d.cfg.log.Warn("parse", "warning", w)
	}
	return nil
}

func (d *Document) ParseString(s string) error {
	return d.Parse([]byte(s))
}

// check validates root with the document settings, logs advisories and
// returns the fatal issues.
func (d *Document) check(root *ir.Node) error {
	rep := validate.Check(root, d.cfg.validateOpts())
	for _, is := range rep.Advisories() {
		d.cfg.log.Warn("validate", "path", is.Path, "kind", is.Kind, "issue", is.Msg)
	}
	return rep.Err()
}

// Warnings returns the non fatal findings of the last Parse, such as a
// *parse.VersionWarning.
func (d *Document) Warnings() []error {
	return slices.Clone(d.warnings)
}

// Header returns the header string that Compile writes.
func (d *Document) Header() string {
	return d.header
}

// Root returns the DataRoot mapping. Changes to it are changes to d.
func (d *Document) Root() *ir.Node {
	return d.root
}

// ExtraProperties returns the ExtraProperties mapping. Changes to it are
// changes to d.
func (d *Document) ExtraProperties() *ir.Node {
	return d.extra
}

// Host returns the host NoStandard tags resolve for.
func (d *Document) Host() string {
	return d.cfg.host
}

// Clone returns a deep copy of d with the same settings.
func (d *Document) Clone() *Document {
	cfg := *d.cfg
	return &Document{
		header:   d.header,
		root:     d.root.Clone(),
		extra:    d.extra.Clone(),
		warnings: slices.Clone(d.warnings),
		cfg:      &cfg,
	}
}

// Validate runs every check enabled for d and returns the full report.
func (d *Document) Validate() *validate.Report {
	return validate.Check(d.root, d.cfg.validateOpts())
}

// CheckFieldNames returns the paths of all fields colliding with reserved
// names.
func (d *Document) CheckFieldNames() []string {
	return validate.Reserved(d.root)
}

// TypeCheck compares every stored type tag with its value.
func (d *Document) TypeCheck() []validate.Issue {
	return validate.Types(d.root)
}

// Compile writes d as text. Unless validation is disabled, a document
// with reserved field names is refused, as are naming and type issues in
// strict mode. opts are applied after the document's indentation.
func (d *Document) Compile(opts ...encode.EncodeOption) ([]byte, error) {
	if d.cfg.validate {
		if err := d.check(d.root); err != nil {
			return nil, err
		}
	}
	eOpts := append([]encode.EncodeOption{encode.Indent(d.cfg.indent)}, opts...)
	buf := &bytes.Buffer{}
	env := &ir.Envelope{Header: d.header, Root: d.root, Extra: d.extra}
	if err := encode.EncodeEnvelope(env, buf, eOpts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) CompileString(opts ...encode.EncodeOption) (string, error) {
	data, err := d.Compile(opts...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// replaceRoot validates root and installs it.
func (d *Document) replaceRoot(root *ir.Node) error {
	if root.Type != ir.ObjectType {
		return fmt.Errorf("%w: %s is a %s, not an object", ir.ErrConflict, ir.DataRootKey, root.Type)
	}
	if err := d.check(root); err != nil {
		return err
	}
	root.Parent = nil
	d.root = root
	return nil
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, validate.ErrValidation)
}
