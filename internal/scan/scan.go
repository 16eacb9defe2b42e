// internal/scan/scan.go
package scan

// Line is one text line derived from a printable run.
type Line struct {
	Text   string
	Offset int // byte offset of the line in the source buffer
}

// Block is a captured candidate configuration.
type Block struct {
	Lines  []string
	Index  int // 1-based emission index within one Scanner
	Offset int // offset of the block's first line
}

// Config controls block capture. Pattern sets are explicit values so
// concurrent scans with different sets cannot interfere.
type Config struct {
	Start    []Pattern // empty = DefaultStartPatterns
	End      []Pattern // empty = DefaultEndPatterns
	MinLines int       // blocks below this line count are discarded

	// RestartOnStart discards the in-progress block when a start marker
	// appears mid-capture and begins a fresh one at that line. Off by
	// default: the scanner stays committed until an end marker or EOF.
	RestartOnStart bool
}

// Scanner is the two-state capture machine (idle / capturing). It is
// incremental: callers may suspend between Push calls without losing the
// accumulated block.
type Scanner struct {
	cfg       Config
	capturing bool
	lines     []string
	offset    int
	emitted   int
}

// New returns a Scanner for cfg, filling in defaults.
func New(cfg Config) *Scanner {
	if len(cfg.Start) == 0 {
		cfg.Start = DefaultStartPatterns()
	}
	if len(cfg.End) == 0 {
		cfg.End = DefaultEndPatterns()
	}
	if cfg.MinLines < 1 {
		cfg.MinLines = 1
	}
	return &Scanner{cfg: cfg}
}

// Push feeds one line. It returns a finalized block and true when the line
// closed a block that passed the MinLines gate.
func (s *Scanner) Push(ln Line) (Block, bool) {
	if !s.capturing {
		if matchAny(s.cfg.Start, ln.Text) {
			s.begin(ln)
		}
		return Block{}, false
	}
	if s.cfg.RestartOnStart && matchAny(s.cfg.Start, ln.Text) {
		s.begin(ln)
		return Block{}, false
	}
	s.lines = append(s.lines, ln.Text)
	if matchAny(s.cfg.End, ln.Text) {
		return s.finalize()
	}
	return Block{}, false
}

// Flush finalizes a block still open at end of input, subject to the same
// MinLines gate. A truncated capture is still evidence; it is never
// dropped merely because no end marker appeared.
func (s *Scanner) Flush() (Block, bool) {
	if !s.capturing {
		return Block{}, false
	}
	return s.finalize()
}

func (s *Scanner) begin(ln Line) {
	s.capturing = true
	s.lines = []string{ln.Text}
	s.offset = ln.Offset
}

func (s *Scanner) finalize() (Block, bool) {
	lines, off := s.lines, s.offset
	s.capturing = false
	s.lines = nil
	if len(lines) < s.cfg.MinLines {
		return Block{}, false
	}
	s.emitted++
	return Block{Lines: lines, Index: s.emitted, Offset: off}, true
}
