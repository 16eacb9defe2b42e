// internal/writers/jsonl.go
package writers

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"syscall"

	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
	"github.com/MrSud0/openvpn-mem-extractor/pkg/api"
)

func init() { Register("jsonl", newJSONLSink) }

// jsonlSink streams each block as one BlockV1 JSON line from a dedicated
// encoder goroutine. On encode failure the goroutine drains the channel so
// Write never blocks; the error surfaces from Close.
type jsonlSink struct {
	in   chan pipeline.FileBlock
	done chan error
}

func newJSONLSink(o Options) (Sink, error) {
	s := &jsonlSink{
		in:   make(chan pipeline.FileBlock, 64),
		done: make(chan error, 1),
	}
	go func() {
		bw := bufio.NewWriterSize(o.Stdout, 64<<10)
		enc := json.NewEncoder(bw)
		var werr error
		for fb := range s.in {
			if werr != nil {
				continue
			}
			werr = enc.Encode(ToAPIBlock(fb))
		}
		if werr == nil {
			werr = bw.Flush()
		}
		s.done <- werr
	}()
	return s, nil
}

func (s *jsonlSink) Write(fb pipeline.FileBlock) error {
	s.in <- fb
	return nil
}

func (s *jsonlSink) Close() error {
	close(s.in)
	if err := <-s.done; err != nil && !IsBrokenPipe(err) {
		return err
	}
	return nil
}

// IsBrokenPipe reports whether err means the stream reader went away,
// e.g. `ovpnextract ... | head` closing stdout mid-run. Such runs still
// exit 0.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}

// ToAPIBlock converts a captured block to the stable wire schema (v1).
func ToAPIBlock(fb pipeline.FileBlock) api.BlockV1 {
	return api.BlockV1{
		SourceFile: fb.File,
		Index:      fb.Index,
		Offset:     fb.Offset,
		LineCount:  len(fb.Lines),
		Text:       strings.Join(fb.Lines, "\n"),
	}
}
