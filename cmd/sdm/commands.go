package main

import (
	sdm "github.com/410-dev/lks410-sdm"
	"github.com/410-dev/lks410-sdm/encode"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: encode.DefaultIndent, Host: sdm.DefaultHost}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "sdm").
		WithSynopsis("sdm [opts] command [opts]").
		WithDescription("sdm reads, edits and checks LKS410 standard data maps.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sdmMain(cfg, cc, args)
		}).
		WithSubs(
			NewCommand(cfg),
			ViewCommand(cfg),
			GetCommand(cfg),
			TypeCommand(cfg),
			SetCommand(cfg),
			RmCommand(cfg),
			AppendCommand(cfg),
			SortCommand(cfg),
			CheckCommand(cfg),
			DiffCommand(cfg),
			PatchCommand(cfg))
}

func NewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &NewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.New, "new").
		WithSynopsis("new").
		WithDescription("write an empty data map").
		WithRun(func(cc *cli.Context, args []string) error {
			return newDoc(cfg, cc, args)
		})
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view data maps with type tags in color").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <path> [file]").
		WithDescription("print the value at a path; a path ending in .type prints the stored tag").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func TypeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypeConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Type, "type").
		WithAliases("t").
		WithSynopsis("type <path> [file]").
		WithDescription("print the effective type of the value at a path").
		WithRun(func(cc *cli.Context, args []string) error {
			return typeOf(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-as tag] [-w] <path=value> [file]").
		WithDescription(setDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

const setDescription = `set stores a value at a path, creating the mappings and lists on the
way. The value is read as YAML, so 'a=1' stores a number, 'a=x' a string and
'a={b: [1, 2]}' a mapping.

A path ending in .type writes the stored type tag of the field directly:

  sdm set 'port.type=Int16' doc.json

-as stores a type tag together with the value; -as Auto stores the tag
inferred from the value.`

func RmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RmConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Rm, "rm").
		WithSynopsis("rm [-w] <path> [file]").
		WithDescription("remove the value at a path; list elements become null").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rm(cfg, cc, args)
		})
}

func AppendCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &AppendConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Append, "append").
		WithAliases("a").
		WithSynopsis("append [-w] <path=value> [file]").
		WithDescription("append a value to the list at a path").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return appendValue(cfg, cc, args)
		})
}

func SortCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SortConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Sort, "sort").
		WithSynopsis("sort [-w] [file]").
		WithDescription("sort the keys of every mapping by name").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return sortDoc(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-types] [-watch] [files]").
		WithDescription("report reserved names, naming issues and type mismatches").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] [-p] a b").
		WithDescription("diff the DataRoot of two data maps").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithAliases("p").
		WithSynopsis("patch [-m] [-w] <patchfile> [file]").
		WithDescription("apply a JSON patch, or with -m a merge patch, to DataRoot").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}
