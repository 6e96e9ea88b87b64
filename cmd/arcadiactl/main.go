package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	arcadia "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002"
	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("arcadiactl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML options file")
	purge := fs.Bool("purge", false, "purge name caches during the collection cycle")
	verbose := fs.Bool("v", false, "log runtime activity to stderr")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [-config options.yaml] [-purge] <manifest.yaml>\n\n", os.Args[0]),
			writeln(stderr, "Registers the types of a manifest, runs one collection cycle and prints the registry."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one manifest file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}
	manifestPath := remaining[0]

	opts := arcadia.NewOptions()
	if *configPath != "" {
		loaded, err := arcadia.LoadOptionsFile(*configPath)
		if err != nil {
			if writeErr := writef(stderr, "error loading options: %v\n", err); writeErr != nil {
				return 1
			}
			return 1
		}
		opts = loaded
	}
	if *verbose {
		opts = opts.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	m, err := loadManifest(manifestPath)
	if err != nil {
		if writeErr := writef(stderr, "error loading manifest: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	rt := arcadia.New(opts)
	if err := rt.Acquire(); err != nil {
		if writeErr := writef(stderr, "error starting runtime (%s): %v\n", rterrors.StatusOf(err), err); writeErr != nil {
			return 1
		}
		return 1
	}
	code := report(rt, m, *purge, stdout, stderr)
	if err := rt.Release(); err != nil {
		if writeErr := writef(stderr, "error stopping runtime: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return code
}

func report(rt *arcadia.Runtime, m *manifest, purge bool, stdout, stderr io.Writer) int {
	if err := m.register(rt); err != nil {
		if writeErr := writef(stderr, "error registering types (%s): %v\n", rterrors.StatusOf(err), err); writeErr != nil {
			return 1
		}
		return 1
	}
	stats, err := rt.RunCollectionCycle(purge)
	if err != nil {
		if writeErr := writef(stderr, "error collecting: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}

	for _, t := range rt.Types().Types() {
		parent := "-"
		if p := t.Parent(); p != nil {
			parent = p.String()
		}
		if err := writef(stdout, "%s\t%s\t%s\t%d\t%d\n", t, t.Kind(), parent, t.FieldCount(), t.DispatchSize()); err != nil {
			return 1
		}
	}
	if err := writef(stdout, "cycle: passes=%d reclaimed=%d destroyed=%d live=%d\n",
		stats.Passes, stats.Reclaimed, stats.Destroyed, stats.Live); err != nil {
		return 1
	}
	return 0
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
