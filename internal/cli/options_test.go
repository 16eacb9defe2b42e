// internal/cli/options_test.go
package cli

import "testing"

func mustParse(t *testing.T, args ...string) Options {
	t.Helper()
	opts, err := ParseArgs(NewFlagSet("test"), args)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	return opts
}

func mustFail(t *testing.T, args ...string) {
	t.Helper()
	if _, err := ParseArgs(NewFlagSet("test"), args); err == nil {
		t.Fatalf("expected error for %v", args)
	}
}

func TestDefaults(t *testing.T) {
	o := mustParse(t, "mem.bin")
	if o.OutputDir != "." || o.Prefix != "config_" || o.MinLines != 50 || o.MinRun != 4 {
		t.Errorf("bad defaults: %+v", o)
	}
	if o.Output != "files" || o.Threads != 0 {
		t.Errorf("bad defaults: %+v", o)
	}
	if len(o.Files) != 1 || o.Files[0] != "mem.bin" {
		t.Errorf("files = %v", o.Files)
	}
}

func TestMultipleInputsAndStdin(t *testing.T) {
	o := mustParse(t, "a.bin", "-", "b.bin")
	if len(o.Files) != 3 || o.Files[1] != "-" {
		t.Errorf("files = %v", o.Files)
	}
}

func TestRepeatablePatterns(t *testing.T) {
	o := mustParse(t,
		"--start-pattern", "dev tun",
		"--start-pattern", "# OpenVPN",
		"--end-pattern", "</ca>",
		"mem.bin",
	)
	if len(o.StartPatterns) != 2 || len(o.EndPatterns) != 1 {
		t.Errorf("patterns = %+v / %+v", o.StartPatterns, o.EndPatterns)
	}
}

func TestShortFlags(t *testing.T) {
	o := mustParse(t, "-o", "carved", "-p", "vpn_", "-m", "3", "-t", "2", "-O", "jsonl", "mem.bin")
	if o.OutputDir != "carved" || o.Prefix != "vpn_" || o.MinLines != 3 || o.Threads != 2 || o.Output != "jsonl" {
		t.Errorf("short flags: %+v", o)
	}
}

func TestVersionSkipsValidation(t *testing.T) {
	o := mustParse(t, "--version")
	if !o.Version {
		t.Error("version flag not set")
	}
}

func TestErrorNoInputs(t *testing.T)     { mustFail(t) }
func TestErrorBadOutput(t *testing.T)    { mustFail(t, "-O", "xml", "mem.bin") }
func TestErrorBadMinLines(t *testing.T)  { mustFail(t, "-m", "0", "mem.bin") }
func TestErrorBadMinRun(t *testing.T)    { mustFail(t, "--min-run", "0", "mem.bin") }
func TestErrorBadThreads(t *testing.T)   { mustFail(t, "-t", "-1", "mem.bin") }
func TestErrorEmptyStart(t *testing.T)   { mustFail(t, "--start-pattern", "", "mem.bin") }
func TestErrorEmptyEnd(t *testing.T)     { mustFail(t, "--end-pattern", "", "mem.bin") }
func TestErrorVerboseQuiet(t *testing.T) { mustFail(t, "-v", "-q", "mem.bin") }

func TestErrorPatternsConflict(t *testing.T) {
	mustFail(t, "--patterns", "p.yaml", "--start-pattern", "client", "mem.bin")
}
