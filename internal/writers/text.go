// internal/writers/text.go
package writers

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
)

func init() { Register("text", newTextSink) }

// textSink dumps blocks to stdout with a header rule per block. Meant for
// eyeballing results before committing to files.
type textSink struct {
	w io.Writer
}

func newTextSink(o Options) (Sink, error) { return &textSink{w: o.Stdout}, nil }

func (s *textSink) Write(fb pipeline.FileBlock) error {
	_, err := fmt.Fprintf(s.w, "-- %s #%d (offset %d, %d lines)\n%s\n\n",
		fb.File, fb.Index, fb.Offset, len(fb.Lines), strings.Join(fb.Lines, "\n"))
	return err
}

func (s *textSink) Close() error { return nil }
