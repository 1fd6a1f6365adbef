package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	sdm "github.com/410-dev/lks410-sdm"
	"github.com/410-dev/lks410-sdm/validate"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		if cfg.Watch {
			return fmt.Errorf("%w: -watch needs file arguments", cli.ErrUsage)
		}
		args = []string{"-"}
	}
	failed := false
	for _, arg := range args {
		fatal, err := cfg.checkFile(cc, arg)
		if err != nil {
			return err
		}
		failed = failed || fatal
	}
	if cfg.Watch {
		return cfg.watch(cc, args)
	}
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// checkFile prints the issues found in arg and reports whether any of
// them is fatal. Only read and decode failures are returned as errors.
func (cfg *CheckConfig) checkFile(cc *cli.Context, arg string) (bool, error) {
	d, err := readInput(cc, arg)
	if err != nil {
		return false, err
	}
	opts := append(cfg.docOpts(), sdm.WithLogger(slog.New(slog.DiscardHandler)))
	doc, err := sdm.Parse(d, opts...)
	name := displayName(arg)
	if err != nil {
		var verr *validate.ValidationError
		if !errors.As(err, &verr) {
			cfg.report(cc.Out, name, "error", err.Error())
			return true, nil
		}
		for i := range verr.Issues {
			cfg.reportIssue(cc.Out, name, &verr.Issues[i])
		}
		return true, nil
	}
	for _, w := range doc.Warnings() {
		cfg.report(cc.Out, name, "warning", w.Error())
	}
	rep := doc.Validate()
	if cfg.Types && !cfg.Strict {
		rep.Issues = append(rep.Issues, doc.TypeCheck()...)
	}
	fatal := false
	for i := range rep.Issues {
		cfg.reportIssue(cc.Out, name, &rep.Issues[i])
		fatal = fatal || rep.Issues[i].Fatal
	}
	if len(rep.Issues) == 0 {
		cfg.report(cc.Out, name, "ok", "")
	}
	return fatal, nil
}

func (cfg *CheckConfig) reportIssue(w io.Writer, name string, is *validate.Issue) {
	level := "warning"
	if is.Fatal {
		level = "error"
	}
	cfg.report(w, name, level, fmt.Sprintf("%s: %s (%s)", is.Path, is.Msg, is.Kind))
}

func (cfg *CheckConfig) report(w io.Writer, name, level, msg string) {
	var attrs []color.Attribute
	switch level {
	case "error":
		attrs = []color.Attribute{color.FgRed, color.Bold}
	case "warning":
		attrs = []color.Attribute{color.FgYellow}
	default:
		attrs = []color.Attribute{color.FgGreen}
	}
	lvl := cfg.paint(w, attrs...)(level)
	if msg == "" {
		fmt.Fprintf(w, "%s: %s\n", name, lvl)
		return
	}
	fmt.Fprintf(w, "%s: %s: %s\n", name, lvl, msg)
}

func (cfg *MainConfig) paint(w io.Writer, attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	if cfg.useColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintFunc()
}

// watch checks a file again each time it is written, until interrupted.
// The parent directories are watched; events for other files are ignored.
func (cfg *CheckConfig) watch(cc *cli.Context, files []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]string{}
	for _, f := range files {
		if f == "-" {
			return fmt.Errorf("%w: cannot watch stdin", cli.ErrUsage)
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		watched[abs] = f
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
	}
	theLog.Info("watching", "files", len(files))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			arg, ok := watched[ev.Name]
			if !ok || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			theLog.Info("changed", "file", arg, "event", ev.Op.String())
			if _, err := cfg.checkFile(cc, arg); err != nil {
				theLog.Error("check failed", "file", arg, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			theLog.Error("watch", "error", err)
		}
	}
}
