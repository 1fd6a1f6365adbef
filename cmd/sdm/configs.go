package main

import (
	"io"
	"os"

	sdm "github.com/410-dev/lks410-sdm"
	"github.com/410-dev/lks410-sdm/encode"
	"github.com/410-dev/lks410-sdm/format"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool   `cli:"name=color desc='encode with color'"`
	Y       bool   `cli:"name=y aliases=yaml desc='output yaml'"`
	Compact bool   `cli:"name=c aliases=compact desc='output compact json'"`
	Indent  int    `cli:"name=indent desc='indentation width'"`
	Host    string `cli:"name=host desc='host whose classes NoStandard tags resolve to'"`
	Strict  bool   `cli:"name=strict desc='treat naming and type issues as errors'"`
	NoCheck bool   `cli:"name=nocheck desc='write documents without validating them'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) docOpts() []sdm.Option {
	indent := cfg.Indent
	if cfg.Compact {
		indent = -1
	}
	return []sdm.Option{
		sdm.WithLogger(theLog),
		sdm.WithHost(cfg.Host),
		sdm.WithStrict(cfg.Strict),
		sdm.WithValidation(!cfg.NoCheck),
		sdm.WithIndent(indent),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	fmat := format.JSONFormat
	if cfg.Y {
		fmat = format.YAMLFormat
	}
	indent := cfg.Indent
	if cfg.Compact {
		indent = -1
	}
	res := []encode.EncodeOption{
		encode.EncodeFormat(fmat),
		encode.Indent(indent),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: always with -color,
// never with -color=false, otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type NewConfig struct {
	*MainConfig
	New *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type TypeConfig struct {
	*MainConfig
	Type *cli.Command
}

type SetConfig struct {
	*MainConfig
	As    string `cli:"name=as desc='type tag to store with the value'"`
	Write bool   `cli:"name=w desc='write the result back to the file'"`

	Set *cli.Command
}

type RmConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Rm *cli.Command
}

type AppendConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Append *cli.Command
}

type SortConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Sort *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Types bool `cli:"name=types desc='also check stored type tags'"`
	Watch bool `cli:"name=watch desc='check again whenever a file changes'"`

	Check *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Patch   bool `cli:"name=p desc='print the diff as a JSON patch'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Merge bool `cli:"name=m desc='apply a JSON merge patch'"`
	Write bool `cli:"name=w desc='write the result back to the file'"`

	Patch *cli.Command
}
