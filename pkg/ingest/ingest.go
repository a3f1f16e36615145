// Package ingest imports CC-CEDICT sources into the dictionary store.
package ingest

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/japaniel/writer/pkg/cedict"
	"github.com/japaniel/writer/pkg/db"
)

// ErrIncomplete is returned when the worker pool stopped before parsing
// every chunk of a source.
var ErrIncomplete = errors.New("import stopped before the whole source was parsed")

// Replacer is the part of the store an import writes to.
type Replacer interface {
	ReplaceDictionary(ctx context.Context, name string, entries iter.Seq[db.WordDef]) (int, error)
}

// Importer parses a dictionary source on a pool of workers and then swaps it
// into the store in a single ReplaceDictionary call.
type Importer struct {
	Store Replacer
	// Workers and ChunkSize control parallel parsing. Each job parses
	// ChunkSize consecutive lines.
	Workers   int
	ChunkSize int
	// Logger is used for informational messages. nil means no logging.
	Logger *slog.Logger
	// OnProgress is called with the number of parsed lines and the total.
	// It may be called from several goroutines at once.
	OnProgress func(parsed, total int)

	// PoolFactory allows tests to inject custom worker pool implementations.
	PoolFactory func(workers, queue int) Pool
}

// NewImporter creates a new Importer.
func NewImporter(store Replacer) *Importer {
	return &Importer{
		Store:     store,
		Workers:   4,
		ChunkSize: 2000,
	}
}

// Import reads a CC-CEDICT source from r and makes it the full content of the
// dictionary called name. If any line fails to parse, the error names the
// lowest failing line and the store is not touched.
func (im *Importer) Import(ctx context.Context, name string, r io.Reader) (int, error) {
	start := time.Now()
	lines, err := cedict.ReadLines(r)
	if err != nil {
		return 0, err
	}

	defs, err := im.parse(ctx, lines)
	if err != nil {
		return 0, err
	}
	im.info("parsed dictionary source", "dict", name, "entries", len(defs), "elapsed", time.Since(start))

	n, err := im.Store.ReplaceDictionary(ctx, name, slices.Values(defs))
	if err != nil {
		return 0, err
	}
	im.info("imported dictionary", "dict", name, "entries", n, "elapsed", time.Since(start))
	return n, nil
}

// parse splits lines into chunks and parses them concurrently. Results keep
// source order. Because chunks are ordered and each chunk stops at its first
// bad line, the first error found scanning chunks in order is the lowest
// failing line overall.
func (im *Importer) parse(ctx context.Context, lines []cedict.Line) ([]db.WordDef, error) {
	size := im.ChunkSize
	if size <= 0 {
		size = len(lines)
	}
	if len(lines) == 0 {
		return nil, nil
	}
	count := (len(lines) + size - 1) / size
	results := make([][]db.WordDef, count)
	errs := make([]error, count)

	var wp Pool
	if im.PoolFactory != nil {
		wp = im.PoolFactory(im.Workers, im.Workers*2)
	} else {
		wp = NewWorkerPool(im.Workers, im.Workers*2)
	}
	wp.Start(ctx)
	defer wp.Close()

	var parsed atomic.Int64
	for i := 0; i < count; i++ {
		lo := i * size
		hi := min(lo+size, len(lines))
		idx := i
		job := func(ctx context.Context) error {
			results[idx], errs[idx] = cedict.ParseLines(lines[lo:hi])
			if errs[idx] != nil {
				return errs[idx]
			}
			done := parsed.Add(int64(hi - lo))
			if im.OnProgress != nil {
				im.OnProgress(int(done), len(lines))
			}
			return nil
		}
		if err := wp.SubmitCtx(ctx, job); err != nil {
			return nil, err
		}
	}

	// Wait for every submitted job before reading results.
	wp.Close()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for i, err := range errs {
		if err != nil {
			return nil, err
		}
		if results[i] == nil {
			return nil, ErrIncomplete
		}
	}
	return slices.Concat(results...), nil
}

func (im *Importer) info(msg string, args ...any) {
	if im.Logger != nil {
		im.Logger.Info(msg, args...)
	}
}
