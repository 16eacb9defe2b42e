// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/MrSud0/openvpn-mem-extractor/internal/cliutil"
	"github.com/MrSud0/openvpn-mem-extractor/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs (positional; globs expanded; '-' = stdin)
	Files []string

	// Extraction policy
	MinLines int
	MinRun   int

	// Patterns
	StartPatterns  []string
	EndPatterns    []string
	IgnoreCase     bool
	RestartOnStart bool
	PatternFile    string

	// Output
	OutputDir string
	Prefix    string
	Output    string // files | text | jsonl
	Manifest  string

	// Performance
	Threads int

	// Misc
	Verbose bool
	Quiet   bool
	Version bool
}

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options

	fs.StringVarP(&opt.OutputDir, "output-dir", "o", ".", "directory for extracted .ovpn files")
	fs.StringVarP(&opt.Prefix, "prefix", "p", "config_", "output filename stem")
	fs.IntVarP(&opt.MinLines, "min-lines", "m", 50, "minimum line count for a valid config")
	fs.IntVar(&opt.MinRun, "min-run", 4, "minimum printable run length")
	fs.StringArrayVar(&opt.StartPatterns, "start-pattern", nil, "custom start marker, prefix match (repeatable; replaces defaults)")
	fs.StringArrayVar(&opt.EndPatterns, "end-pattern", nil, "custom end marker, substring match (repeatable; replaces defaults)")
	fs.BoolVar(&opt.IgnoreCase, "ignore-case", false, "match custom patterns case-insensitively")
	fs.BoolVar(&opt.RestartOnStart, "restart-on-start", false, "restart the block when a start marker appears mid-capture")
	fs.StringVar(&opt.PatternFile, "patterns", "", "YAML pattern file")
	fs.StringVarP(&opt.Output, "output", "O", "files", "output mode: files | text | jsonl")
	fs.StringVar(&opt.Manifest, "manifest", "", "write a JSON run manifest to this path")
	fs.IntVarP(&opt.Threads, "threads", "t", 0, "concurrent input files (0 = all CPUs)")
	fs.BoolVarP(&opt.Verbose, "verbose", "v", false, "verbose (debug) logging")
	fs.BoolVarP(&opt.Quiet, "quiet", "q", false, "errors only")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if opt.Version {
		return opt, nil
	}

	files, err := cliutil.ExpandPositionals(fs.Args())
	if err != nil {
		return opt, err
	}
	opt.Files = files

	// Validation
	if len(opt.Files) == 0 {
		return opt, errors.New("at least one input file is required ('-' for stdin)")
	}
	if opt.MinLines < 1 {
		return opt, errors.New("--min-lines must be ≥ 1")
	}
	if opt.MinRun < 1 {
		return opt, errors.New("--min-run must be ≥ 1")
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	switch opt.Output {
	case "files", "text", "jsonl":
	default:
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	for _, p := range opt.StartPatterns {
		if p == "" {
			return opt, errors.New("--start-pattern must not be empty")
		}
	}
	for _, p := range opt.EndPatterns {
		if p == "" {
			return opt, errors.New("--end-pattern must not be empty")
		}
	}
	if opt.PatternFile != "" && (len(opt.StartPatterns) > 0 || len(opt.EndPatterns) > 0) {
		return opt, errors.New("--patterns conflicts with --start-pattern/--end-pattern")
	}
	if opt.Verbose && opt.Quiet {
		return opt, errors.New("--verbose conflicts with --quiet")
	}
	return opt, nil
}

// Usage prints the full help text.
func Usage(out io.Writer, fs *flag.FlagSet, name string) {
	fmt.Fprintf(out, "%s – carve OpenVPN configs out of binary images\n\n", name)
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)
	fmt.Fprintf(out, "Usage:\n  %s [flags] FILE...   ('-' reads stdin)\n\nFlags:\n", name)
	fmt.Fprint(out, fs.FlagUsages())
	fmt.Fprintf(out, `
Examples:
  # Carve configs from a memory dump
  %[1]s memdump.bin

  # Custom output directory and filename stem
  %[1]s -o carved -p vpn_ disk.img mem.raw

  # Custom markers, streamed as JSONL
  %[1]s --start-pattern 'dev tun' --end-pattern '</ca>' -O jsonl dump.bin
`, name)
}
