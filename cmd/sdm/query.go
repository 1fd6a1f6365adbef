package main

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/encode"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		doc, err := cfg.readDoc(cc, arg)
		if err != nil {
			return err
		}
		if err := cfg.writeDoc(cc, doc, arg, false); err != nil {
			return fmt.Errorf("error encoding %s: %w", displayName(arg), err)
		}
	}
	return nil
}

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: get requires a path and at most one file", cli.ErrUsage)
	}
	doc, err := cfg.readDoc(cc, optArg(args, 1))
	if err != nil {
		return err
	}
	v, err := doc.Get(args[0])
	if err != nil {
		return fmt.Errorf("error getting %s: %w", args[0], err)
	}
	if err := encode.Encode(v, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}

func typeOf(cfg *TypeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Type.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: type requires a path and at most one file", cli.ErrUsage)
	}
	doc, err := cfg.readDoc(cc, optArg(args, 1))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cc.Out, doc.TypeOf(args[0]))
	return err
}
