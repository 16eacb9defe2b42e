// internal/writers/files.go
package writers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrSud0/openvpn-mem-extractor/internal/cmdutil"
	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
)

func init() { Register("files", newFileSink) }

// fileSink writes each block to {prefix}{stem}_{index}.ovpn under the
// output directory. Extracted configs can embed private keys, so files
// are created 0600 and the directory 0700.
type fileSink struct {
	dir    string
	prefix string
	log    *cmdutil.Logger
	made   bool
}

func newFileSink(o Options) (Sink, error) {
	dir := o.OutDir
	if dir == "" {
		dir = "."
	}
	return &fileSink{dir: dir, prefix: o.Prefix, log: o.Log}, nil
}

func (s *fileSink) Write(fb pipeline.FileBlock) error {
	if !s.made {
		if err := os.MkdirAll(s.dir, 0o700); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		s.made = true
	}
	name := fmt.Sprintf("%s%s_%d.ovpn", s.prefix, Stem(fb.File), fb.Index)
	path := filepath.Join(s.dir, name)
	data := strings.Join(fb.Lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		return fmt.Errorf("save block %d from %s: %w", fb.Index, fb.File, err)
	}
	s.log.Infof("saved: %s", path)
	return nil
}

func (s *fileSink) Close() error { return nil }

// Stem returns the base name of path without its extension; "-" (stdin)
// becomes "stdin".
func Stem(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
