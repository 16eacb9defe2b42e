// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/MrSud0/openvpn-mem-extractor/internal/cmdutil"
	"github.com/MrSud0/openvpn-mem-extractor/internal/extract"
	"github.com/MrSud0/openvpn-mem-extractor/internal/scan"
)

// Config controls the carving pipeline.
type Config struct {
	MinRun  int         // minimum printable run length
	Scan    scan.Config // block-capture settings (fresh Scanner per file)
	Workers int         // concurrent files (<=0 = all CPUs)
}

// FileBlock is a captured block tagged with its source file.
type FileBlock struct {
	scan.Block
	File string
}

// Stats summarizes one batch.
type Stats struct {
	Files       int
	FailedFiles int
	Blocks      int
}

// ForEachBlock reads each input file, extracts printable runs, scans them
// for config blocks, and calls visit for every block that passes the
// MinLines gate. Files run concurrently; each file owns its buffer and
// scanner state, and visit calls are serialized.
//
// A file that cannot be read (or whose blocks cannot be written by visit)
// is counted as failed and skipped; the first such error is returned after
// the whole batch completes. Context cancellation aborts the batch.
func ForEachBlock(
	ctx context.Context,
	cfg Config,
	files []string,
	visit func(FileBlock) error,
	log *cmdutil.Logger,
) (Stats, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var (
		mu    sync.Mutex // serializes visit and guards stats/ferr
		stats = Stats{Files: len(files)}
		ferr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range files {
		path := path
		g.Go(func() error {
			n, err := scanFile(gctx, cfg, path, func(b scan.Block) error {
				mu.Lock()
				defer mu.Unlock()
				return visit(FileBlock{Block: b, File: path})
			}, log)

			mu.Lock()
			defer mu.Unlock()
			stats.Blocks += n
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				stats.FailedFiles++
				log.Errorf("%s: %v", path, err)
				if ferr == nil {
					ferr = err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, ferr
}

// scanFile runs the per-file sequence: read, extract runs, split into
// lines, push through a fresh Scanner, flush at EOF. It returns the number
// of blocks visited.
func scanFile(
	ctx context.Context,
	cfg Config,
	path string,
	visit func(scan.Block) error,
	log *cmdutil.Logger,
) (int, error) {
	buf, err := readInput(path)
	if err != nil {
		return 0, err
	}
	log.Infof("processing %s (%d bytes)", displayName(path), len(buf))

	sc := scan.New(cfg.Scan)
	blocks, runs := 0, 0
	emit := func(r extract.Run) error {
		runs++
		// Line offsets assume 1-byte newlines; CRLF normalization can
		// shift them slightly within a run.
		off := r.Offset
		for _, text := range strings.Split(r.Text, "\n") {
			b, ok := sc.Push(scan.Line{Text: text, Offset: off})
			off += len(text) + 1
			if !ok {
				continue
			}
			blocks++
			log.Debugf("%s: block %d closed at %d lines", displayName(path), b.Index, len(b.Lines))
			if err := visit(b); err != nil {
				return err
			}
		}
		return nil
	}
	if err := extract.Runs(ctx, buf, cfg.MinRun, emit); err != nil {
		return blocks, err
	}
	if b, ok := sc.Flush(); ok {
		blocks++
		log.Debugf("%s: block %d still open at EOF, kept (%d lines)", displayName(path), b.Index, len(b.Lines))
		if err := visit(b); err != nil {
			return blocks, err
		}
	}
	log.Infof("%s: %d printable runs, %d candidate configs", displayName(path), runs, blocks)
	return blocks, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return path
}
