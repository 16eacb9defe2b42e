// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MrSud0/openvpn-mem-extractor/internal/app"
	"github.com/MrSud0/openvpn-mem-extractor/pkg/api"
)

func writeDump(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

var dump = []byte("\x00\x7f\x00garbage\x00\x00" +
	"client\ndev tun\nremote 1.2.3.4 1194\nkey-direction 1\n" +
	"\x00\x01\x02trailing\x00")

func TestEndToEndFiles(t *testing.T) {
	f := writeDump(t, "mem.bin", dump)
	outDir := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-m", "3", "-o", outDir, f}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, "config_mem_1.ovpn"))
	if err != nil {
		t.Fatalf("expected carved config: %v", err)
	}
	want := "client\ndev tun\nremote 1.2.3.4 1194\nkey-direction 1\n"
	if string(data) != want {
		t.Errorf("carved config = %q, want %q", data, want)
	}
	if !strings.Contains(errBuf.String(), "saved:") {
		t.Errorf("missing progress log: %s", errBuf.String())
	}
}

func TestEndToEndJSONL(t *testing.T) {
	f := writeDump(t, "mem.bin", dump)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-m", "3", "-O", "jsonl", "-q", f}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	var b api.BlockV1
	if err := json.Unmarshal(out.Bytes(), &b); err != nil {
		t.Fatalf("bad jsonl output %q: %v", out.String(), err)
	}
	if b.LineCount != 4 || b.Index != 1 {
		t.Errorf("wire block = %+v", b)
	}
}

func TestNoMatchesIsSuccess(t *testing.T) {
	f := writeDump(t, "noise.bin", []byte("\x00\x01nothing of interest here\x00"))

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-o", t.TempDir(), f}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("zero matches must exit 0, got %d (%s)", code, errBuf.String())
	}
	if !strings.Contains(errBuf.String(), "no OpenVPN configurations") {
		t.Errorf("missing no-match warning: %s", errBuf.String())
	}
}

func TestUnreadableInputExits3(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := app.Run([]string{filepath.Join(t.TempDir(), "absent.bin")}, &out, &errBuf)
	if code != 3 {
		t.Fatalf("want exit 3 for unreadable input, got %d", code)
	}
}

func TestUsageErrorExits2(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--output", "xml", "x.bin"}, &out, &errBuf); code != 2 {
		t.Fatalf("want exit 2 for bad flag value, got %d", code)
	}
	if code := app.Run([]string{"-v", "-q", "x.bin"}, &out, &errBuf); code != 2 {
		t.Fatalf("want exit 2 for flag conflict, got %d", code)
	}
}

func TestCustomPatternsOverrideDefaults(t *testing.T) {
	// "client" alone must not trigger capture once custom markers are set.
	raw := []byte("\x00client\njunk\x00dev tun\nproto udp\n</ca>\n\x00")
	f := writeDump(t, "mem.bin", raw)
	outDir := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"-m", "2", "-o", outDir,
		"--start-pattern", "dev tun",
		"--end-pattern", "</ca>",
		f,
	}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	data, err := os.ReadFile(filepath.Join(outDir, "config_mem_1.ovpn"))
	if err != nil {
		t.Fatalf("expected carved config: %v", err)
	}
	if got := string(data); got != "dev tun\nproto udp\n</ca>\n" {
		t.Errorf("carved config = %q", got)
	}
}

const patternYAML = `min_lines: 2
start_patterns:
  - text: "BEGIN CFG"
end_patterns:
  - text: "END CFG"
    contains: true
`

// Dump with one region matching only the built-in markers and one matching
// only the pattern file's markers.
var patternDump = []byte("\x00client\ndev tun\nkey-direction 1\n" +
	"\x00BEGIN CFG\nproto udp\nEND CFG\n\x00")

func TestPatternFileReplacesDefaults(t *testing.T) {
	f := writeDump(t, "mem.bin", patternDump)
	pf := writeDump(t, "patterns.yaml", []byte(patternYAML))
	outDir := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--patterns", pf, "-o", outDir, f}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	data, err := os.ReadFile(filepath.Join(outDir, "config_mem_1.ovpn"))
	if err != nil {
		t.Fatalf("expected carved config: %v", err)
	}
	// The file's min_lines (2) applies: without it the 3-line block would
	// fall under the built-in 50-line gate.
	if got := string(data); got != "BEGIN CFG\nproto udp\nEND CFG\n" {
		t.Errorf("carved config = %q", got)
	}
	if _, err := os.Stat(filepath.Join(outDir, "config_mem_2.ovpn")); err == nil {
		t.Error("built-in markers still active despite pattern file")
	}
}

func TestExplicitMinLinesBeatsPatternFile(t *testing.T) {
	f := writeDump(t, "mem.bin", patternDump)
	pf := writeDump(t, "patterns.yaml", []byte(patternYAML))
	outDir := t.TempDir()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--patterns", pf, "-m", "5", "-o", outDir, f}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errBuf.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "config_mem_1.ovpn")); err == nil {
		t.Error("explicit -m 5 must beat the file's min_lines and discard the 3-line block")
	}
	if !strings.Contains(errBuf.String(), "no OpenVPN configurations") {
		t.Errorf("missing no-match warning: %s", errBuf.String())
	}
}

func TestVersionFlag(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run([]string{"--version"}, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.HasPrefix(out.String(), "ovpnextract version ") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestHelpOnEmptyArgv(t *testing.T) {
	var out, errBuf bytes.Buffer
	if code := app.Run(nil, &out, &errBuf); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("usage output = %q", out.String())
	}
}
