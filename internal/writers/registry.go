// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"

	"github.com/MrSud0/openvpn-mem-extractor/internal/cmdutil"
	"github.com/MrSud0/openvpn-mem-extractor/internal/pipeline"
)

// Sink consumes captured blocks. Write is called serially by the pipeline;
// Close runs once after the batch completes.
type Sink interface {
	Write(fb pipeline.FileBlock) error
	Close() error
}

// Options carries everything a sink may need.
type Options struct {
	OutDir string
	Prefix string
	Stdout io.Writer
	Log    *cmdutil.Logger
}

// Factory builds a Sink for one output mode. Register in init() blocks
// from the sink files.
type Factory func(Options) (Sink, error)

var registry = map[string]Factory{}

// Register installs a sink factory (last wins).
func Register(mode string, f Factory) { registry[mode] = f }

// New dispatches on the output mode.
func New(mode string, opts Options) (Sink, error) {
	f, ok := registry[mode]
	if !ok {
		return nil, fmt.Errorf("unknown output mode %q (have %v)", mode, Modes())
	}
	return f(opts)
}

// Modes returns the registered mode names, sorted.
func Modes() []string {
	out := make([]string, 0, len(registry))
	for m := range registry {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
