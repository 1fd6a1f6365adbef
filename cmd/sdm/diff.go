package main

import (
	"fmt"

	"github.com/410-dev/lks410-sdm/libdiff"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	from, err := cfg.readDoc(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(cc, args[1])
	if err != nil {
		return err
	}
	if cfg.Reverse {
		from, to = to, from
	}
	changes := from.Diff(to)
	if cfg.Patch {
		d, err := libdiff.ToJSONPatch(changes)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", d)
		return err
	}
	colors := map[libdiff.Op]func(a ...any) string{
		libdiff.Insert:  cfg.paint(cc.Out, color.FgGreen),
		libdiff.Delete:  cfg.paint(cc.Out, color.FgRed),
		libdiff.Replace: cfg.paint(cc.Out, color.FgYellow),
		libdiff.Retag:   cfg.paint(cc.Out, color.FgCyan),
	}
	for _, c := range changes {
		if _, err := fmt.Fprintln(cc.Out, colors[c.Op](c.String())); err != nil {
			return err
		}
	}
	return nil
}

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch file and at most one file", cli.ErrUsage)
	}
	file := optArg(args, 1)
	if args[0] == "-" && (file == "" || file == "-") {
		return fmt.Errorf("%w: patch and document cannot both be stdin", cli.ErrUsage)
	}
	pd, err := readInput(cc, args[0])
	if err != nil {
		return err
	}
	doc, err := cfg.readDoc(cc, file)
	if err != nil {
		return err
	}
	if cfg.Merge {
		err = doc.MergePatch(pd)
	} else {
		err = doc.Patch(pd)
	}
	if err != nil {
		return fmt.Errorf("error applying %s: %w", displayName(args[0]), err)
	}
	return cfg.writeDoc(cc, doc, file, cfg.Write)
}
