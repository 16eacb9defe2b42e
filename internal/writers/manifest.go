// internal/writers/manifest.go
package writers

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
)

// Manifest is the run record written by --manifest: which inputs were
// scanned and which blocks came out, under a unique run id.
type Manifest struct {
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Inputs    []string        `json:"inputs"`
	Blocks    []ManifestBlock `json:"blocks"`
}

// ManifestBlock is one captured block's bookkeeping entry.
type ManifestBlock struct {
	SourceFile string `json:"source_file"`
	Index      int    `json:"index"`
	Offset     int    `json:"offset"`
	LineCount  int    `json:"line_count"`
}

// WithManifest decorates a sink so every block is also recorded in a JSON
// manifest, written when the sink closes.
func WithManifest(inner Sink, path string, inputs []string) Sink {
	return &manifestSink{
		inner: inner,
		path:  path,
		m: Manifest{
			RunID:     uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Inputs:    inputs,
		},
	}
}

type manifestSink struct {
	inner Sink
	path  string
	m     Manifest
}

func (s *manifestSink) Write(fb pipeline.FileBlock) error {
	s.m.Blocks = append(s.m.Blocks, ManifestBlock{
		SourceFile: fb.File,
		Index:      fb.Index,
		Offset:     fb.Offset,
		LineCount:  len(fb.Lines),
	})
	return s.inner.Write(fb)
}

func (s *manifestSink) Close() error {
	if err := s.inner.Close(); err != nil {
		return err
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.m); err != nil {
		_ = f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	return f.Close()
}
