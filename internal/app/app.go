// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/MrSud0/openvpn-mem-extractor/internal/cli"
	"github.com/MrSud0/openvpn-mem-extractor/internal/cmdutil"
	"github.com/MrSud0/openvpn-mem-extractor/internal/config"
	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
	"github.com/MrSud0/openvpn-mem-extractor/internal/scan"
	"github.com/MrSud0/openvpn-mem-extractor/internal/version"
	"github.com/MrSud0/openvpn-mem-extractor/internal/writers"
)

const name = "ovpnextract"

// RunContext is the whole program behind main: parse, assemble, run,
// translate errors to the exit-code contract (0 ok, 2 usage, 3 I/O,
// 130 cancelled). Finding nothing is success.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet(name)
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		_, _ = cli.ParseArgs(fs, []string{"--help"})
		cli.Usage(stdout, fs, name)
		return 0
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cli.Usage(stdout, fs, name)
			return 0
		}
		fmt.Fprintln(stderr, err)
		cli.Usage(stderr, fs, name)
		return 2
	}
	if opts.Version {
		fmt.Fprintf(stdout, "%s version %s\n", name, version.Version)
		return 0
	}

	level := cmdutil.LevelInfo
	if opts.Verbose {
		level = cmdutil.LevelDebug
	}
	if opts.Quiet {
		level = cmdutil.LevelError
	}
	log := cmdutil.New(stderr, level)

	scanCfg, minRun, err := assembleScan(fs, opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	sink, err := writers.New(opts.Output, writers.Options{
		OutDir: opts.OutputDir,
		Prefix: opts.Prefix,
		Stdout: stdout,
		Log:    log,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Manifest != "" {
		sink = writers.WithManifest(sink, opts.Manifest, opts.Files)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	log.Infof("%s %s: scanning %d input(s)", name, version.Version, len(opts.Files))
	stats, perr := pipeline.ForEachBlock(ctx, pipeline.Config{
		MinRun:  minRun,
		Scan:    scanCfg,
		Workers: opts.Threads,
	}, opts.Files, sink.Write, log)

	cerr := sink.Close()

	if errors.Is(perr, context.Canceled) {
		return 130
	}
	if perr != nil {
		// Per-file details were logged as they happened; surface the
		// first error for the exit status.
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if cerr != nil {
		if writers.IsBrokenPipe(cerr) {
			return 0
		}
		fmt.Fprintln(stderr, cerr)
		return 3
	}

	if stats.Blocks == 0 {
		log.Warnf("no OpenVPN configurations were found")
	} else {
		log.Infof("extracted %d configuration(s) from %d file(s)", stats.Blocks, stats.Files)
	}
	return 0
}

// assembleScan merges defaults, the optional pattern file, and inline
// flags into the scanner configuration. Explicitly set flags beat the
// file; inline patterns replace their whole default set.
func assembleScan(fs *flag.FlagSet, opts cli.Options) (scan.Config, int, error) {
	cfg := scan.Config{
		Start:          scan.DefaultStartPatterns(),
		End:            scan.DefaultEndPatterns(),
		MinLines:       opts.MinLines,
		RestartOnStart: opts.RestartOnStart,
	}
	minRun := opts.MinRun

	if opts.PatternFile != "" {
		pf, err := config.Load(opts.PatternFile)
		if err != nil {
			return cfg, 0, err
		}
		if len(pf.StartPatterns) > 0 {
			cfg.Start = config.Patterns(pf.StartPatterns)
		}
		if len(pf.EndPatterns) > 0 {
			cfg.End = config.Patterns(pf.EndPatterns)
		}
		if pf.MinLines > 0 && !fs.Changed("min-lines") {
			cfg.MinLines = pf.MinLines
		}
		if pf.MinRun > 0 && !fs.Changed("min-run") {
			minRun = pf.MinRun
		}
		if pf.RestartOnStart && !fs.Changed("restart-on-start") {
			cfg.RestartOnStart = true
		}
	}
	if len(opts.StartPatterns) > 0 {
		cfg.Start = inlinePatterns(opts.StartPatterns, false, opts.IgnoreCase)
	}
	if len(opts.EndPatterns) > 0 {
		cfg.End = inlinePatterns(opts.EndPatterns, true, opts.IgnoreCase)
	}
	return cfg, minRun, nil
}

// Inline start markers anchor at line start; inline end markers match
// anywhere in the line.
func inlinePatterns(texts []string, contains, fold bool) []scan.Pattern {
	out := make([]scan.Pattern, 0, len(texts))
	for _, t := range texts {
		out = append(out, scan.Pattern{Text: t, Contains: contains, Fold: fold})
	}
	return out
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
