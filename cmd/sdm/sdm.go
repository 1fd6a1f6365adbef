package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sdm "github.com/410-dev/lks410-sdm"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

func sdmMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Compact && cfg.Y {
		return fmt.Errorf("%w: -c and -y are exclusive", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readInput reads the named file, or the command input for "" and "-".
func readInput(cc *cli.Context, arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		return io.ReadAll(cc.In)
	}
	return os.ReadFile(arg)
}

func (cfg *MainConfig) readDoc(cc *cli.Context, arg string) (*sdm.Document, error) {
	d, err := readInput(cc, arg)
	if err != nil {
		return nil, err
	}
	doc, err := sdm.Parse(d, cfg.docOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", displayName(arg), err)
	}
	return doc, nil
}

func displayName(arg string) string {
	if arg == "" || arg == "-" {
		return "<stdin>"
	}
	return arg
}

// writeDoc writes doc to the command output, or back to file when
// inPlace is set.
func (cfg *MainConfig) writeDoc(cc *cli.Context, doc *sdm.Document, file string, inPlace bool) error {
	if !inPlace {
		d, err := doc.Compile(cfg.encOpts(cc.Out)...)
		if err != nil {
			return err
		}
		_, err = cc.Out.Write(d)
		return err
	}
	if file == "" || file == "-" {
		return fmt.Errorf("%w: -w needs a file argument", cli.ErrUsage)
	}
	d, err := doc.Compile(cfg.encOpts(nil)...)
	if err != nil {
		return err
	}
	fi, err := os.Stat(file)
	if err != nil {
		return err
	}
	return os.WriteFile(file, d, fi.Mode().Perm())
}

// splitAssign splits a "path=value" argument, reading the value as YAML.
func splitAssign(a string) (string, any, error) {
	path, val, ok := strings.Cut(a, "=")
	if !ok {
		return "", nil, fmt.Errorf("%w: argument %q expected path=value", cli.ErrUsage, a)
	}
	var v any
	if err := yaml.Unmarshal([]byte(val), &v); err != nil {
		return "", nil, fmt.Errorf("%w: value of %s: %w", cli.ErrUsage, path, err)
	}
	return path, v, nil
}

// optArg returns args[i], or "" when there are not that many.
func optArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
