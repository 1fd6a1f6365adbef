package main

import (
	"fmt"

	sdm "github.com/410-dev/lks410-sdm"

	"github.com/scott-cotton/cli"
)

func newDoc(cfg *NewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.New.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: new takes no arguments", cli.ErrUsage)
	}
	return cfg.writeDoc(cc, sdm.New(cfg.docOpts()...), "", false)
}

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: set requires a path=value argument and at most one file", cli.ErrUsage)
	}
	path, v, err := splitAssign(args[0])
	if err != nil {
		return err
	}
	file := optArg(args, 1)
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	opts := []sdm.SetOption{sdm.AllowTag()}
	if cfg.As != "" {
		opts = append(opts, sdm.As(cfg.As))
	}
	if err := doc.Set(path, v, opts...); err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	return cfg.writeDoc(cc, doc, file, cfg.Write)
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: rm requires a path and at most one file", cli.ErrUsage)
	}
	file := optArg(args, 1)
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	ok, err := doc.Remove(args[0])
	if err != nil {
		return fmt.Errorf("error removing %s: %w", args[0], err)
	}
	if !ok {
		theLog.Warn("nothing to remove", "path", args[0])
	}
	return cfg.writeDoc(cc, doc, file, cfg.Write)
}

func appendValue(cfg *AppendConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Append.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: append requires a path=value argument and at most one file", cli.ErrUsage)
	}
	path, v, err := splitAssign(args[0])
	if err != nil {
		return err
	}
	file := optArg(args, 1)
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	if err := doc.Append(path, v); err != nil {
		return fmt.Errorf("error appending to %s: %w", path, err)
	}
	return cfg.writeDoc(cc, doc, file, cfg.Write)
}

func sortDoc(cfg *SortConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Sort.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: sort takes at most one file", cli.ErrUsage)
	}
	file := optArg(args, 0)
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	doc.SortKeysByName()
	return cfg.writeDoc(cc, doc, file, cfg.Write)
}
