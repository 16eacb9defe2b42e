// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"sync"
)

// Level is the minimum severity a Logger reports.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelError
)

// Logger is a minimal leveled logger for CLI diagnostics on stderr.
// A nil *Logger is valid and discards everything.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	lvl Level
}

// New returns a Logger writing to w at the given level.
func New(w io.Writer, lvl Level) *Logger { return &Logger{w: w, lvl: lvl} }

func (l *Logger) logf(lvl Level, tag, format string, a ...any) {
	if l == nil || lvl < l.lvl {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.w, tag+": "+format+"\n", a...)
}

func (l *Logger) Debugf(format string, a ...any) { l.logf(LevelDebug, "DEBUG", format, a...) }
func (l *Logger) Infof(format string, a ...any)  { l.logf(LevelInfo, "INFO", format, a...) }
func (l *Logger) Warnf(format string, a ...any)  { l.logf(LevelInfo, "WARN", format, a...) }
func (l *Logger) Errorf(format string, a ...any) { l.logf(LevelError, "ERROR", format, a...) }
