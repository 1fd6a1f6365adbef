package sdm

import (
	"log/slog"

	"github.com/410-dev/lks410-sdm/encode"
	"github.com/410-dev/lks410-sdm/validate"
)

// DefaultHost is the host name used to resolve NoStandard type tags.
const DefaultHost = "go"

type config struct {
	host     string
	log      *slog.Logger
	validate bool
	naming   validate.Level
	strict   bool
	indent   int
}

func defaultConfig() *config {
	return &config{
		host:     DefaultHost,
		log:      slog.New(slog.DiscardHandler),
		validate: true,
		naming:   validate.Advisory,
		indent:   encode.DefaultIndent,
	}
}

type Option func(*config)

// WithHost sets the host whose "@host=class" markers NoStandard tags
// resolve to.
func WithHost(host string) Option {
	return func(c *config) { c.host = host }
}

// WithLogger sets the logger for version warnings and advisory validation
// issues.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// WithValidation turns validation before Compile on or off. Parse always
// checks reserved names.
func WithValidation(v bool) Option {
	return func(c *config) { c.validate = v }
}

// WithNaming sets how naming convention issues are treated.
func WithNaming(l validate.Level) Option {
	return func(c *config) { c.naming = l }
}

// WithStrict makes naming and type issues fatal to Parse and Compile.
func WithStrict(v bool) Option {
	return func(c *config) { c.strict = v }
}

// WithIndent sets the Compile indentation width; negative is compact.
func WithIndent(n int) Option {
	return func(c *config) { c.indent = n }
}

func (c *config) validateOpts() validate.Options {
	if c.strict {
		return validate.Options{Naming: validate.Fatal, Types: validate.Fatal}
	}
	return validate.Options{Naming: c.naming, Types: validate.Off}
}
