// internal/writers/manifest_test.go
package writers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestManifestRecordsBlocks(t *testing.T) {
	dir := t.TempDir()
	inner, _ := New("files", Options{OutDir: dir, Prefix: "config_"})
	path := filepath.Join(dir, "run.json")

	s := WithManifest(inner, path, []string{"mem.bin", "disk.img"})
	if err := s.Write(block("mem.bin", 1, "client", "</ca>")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if m.RunID == "" {
		t.Error("manifest needs a run id")
	}
	if len(m.Inputs) != 2 || len(m.Blocks) != 1 {
		t.Errorf("manifest = %+v", m)
	}
	if m.Blocks[0].SourceFile != "mem.bin" || m.Blocks[0].LineCount != 2 {
		t.Errorf("block entry = %+v", m.Blocks[0])
	}
}
