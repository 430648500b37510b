package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dave/jennifer/jen"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Metrics tracks generation throughput.
type Metrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     time.Duration
	FormatTime     time.Duration
	WriteTime      time.Duration
}

// writer renders and writes generated files with a bounded worker pool.
type writer struct {
	outDir  string
	workers int
	log     zerolog.Logger
	tasks   []task

	mu      sync.Mutex
	metrics Metrics
}

type task struct {
	name string
	file *jen.File
}

func newWriter(outDir string, workers int, log zerolog.Logger) *writer {
	return &writer{outDir: outDir, workers: workers, log: log}
}

func (w *writer) add(name string, f *jen.File) {
	w.tasks = append(w.tasks, task{name: name, file: f})
}

// flush writes all queued files in parallel and logs a summary.
func (w *writer) flush(ctx context.Context) error {
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("gen: create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, t := range w.tasks {
		t := t
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(t)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	w.log.Debug().
		Int("files", w.metrics.FilesGenerated).
		Int64("bytes", w.metrics.TotalBytes).
		Dur("render", w.metrics.RenderTime).
		Dur("format", w.metrics.FormatTime).
		Dur("write", w.metrics.WriteTime).
		Msg("generation finished")
	return nil
}

func (w *writer) write(t task) error {
	start := time.Now()
	var buf bytes.Buffer
	if err := t.file.Render(&buf); err != nil {
		return fmt.Errorf("gen: render %s: %w", t.name, err)
	}
	rendered := time.Now()

	// goimports pass normalizes import grouping in the rendered output.
	fullPath := filepath.Join(w.outDir, t.name)
	formatted, err := imports.Process(fullPath, buf.Bytes(), nil)
	if err != nil {
		// Keep the unformatted output around for debugging.
		debugPath := fullPath + ".error"
		_ = os.WriteFile(debugPath, buf.Bytes(), 0o644)
		return fmt.Errorf("gen: format %s: %w (unformatted written to %s)", t.name, err, debugPath)
	}
	formattedAt := time.Now()

	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("gen: write %s: %w", t.name, err)
	}
	done := time.Now()

	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(formatted))
	w.metrics.RenderTime += rendered.Sub(start)
	w.metrics.FormatTime += formattedAt.Sub(rendered)
	w.metrics.WriteTime += done.Sub(formattedAt)
	w.mu.Unlock()

	w.log.Debug().Str("file", t.name).Int("bytes", len(formatted)).Msg("generated")
	return nil
}
