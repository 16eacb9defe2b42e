// internal/extract/extract.go
package extract

import "context"

// Run is a printable-text span recovered from a binary buffer.
type Run struct {
	Offset int // byte offset of the run's first character in the buffer
	Text   string
}

// Printable reports whether b is printable ASCII (0x20–0x7E).
func Printable(b byte) bool { return b >= 0x20 && b <= 0x7E }

// Separator reports whether b joins adjacent printable spans without
// terminating the run (newline class plus tab).
func Separator(b byte) bool { return b == '\n' || b == '\r' || b == '\t' }

// Runs walks buf once and emits printable runs in buffer order.
//
// A run is a maximal span of printable and separator bytes, trimmed of
// leading and trailing separators. Separator bytes inside a run are kept
// so a multi-line config body broken up only by newlines stays one run;
// "\r\n" and lone "\r" are normalized to "\n". Runs shorter than minRun
// characters are discarded silently.
//
// Return a non-nil error from emit (e.g. ctx.Err()) to stop early.
func Runs(ctx context.Context, buf []byte, minRun int, emit func(Run) error) error {
	if minRun < 1 {
		minRun = 1
	}
	var (
		cur   []byte // accumulated run text
		pend  []byte // separators not yet committed (trail-trimming)
		start = -1
		prev  byte
	)
	flush := func() error {
		if start < 0 {
			return nil
		}
		off, text := start, cur
		cur, pend, start = cur[:0], pend[:0], -1
		if len(text) < minRun {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		return emit(Run{Offset: off, Text: string(text)})
	}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		switch {
		case Printable(b):
			if start < 0 {
				start = i
			}
			cur = append(cur, pend...)
			pend = pend[:0]
			cur = append(cur, b)
		case Separator(b):
			if start < 0 {
				break // leading separators never open a run
			}
			switch {
			case b == '\t':
				pend = append(pend, '\t')
			case b == '\n' && prev == '\r':
				// collapsed into the '\n' already pended for '\r'
			default:
				pend = append(pend, '\n')
			}
		default:
			if err := flush(); err != nil {
				return err
			}
		}
		prev = b
	}
	return flush()
}
