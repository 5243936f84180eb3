// Package convert drives one documentation conversion: entries flow from a
// parser into the search index and the TOC patcher, in production order.
package convert

import (
	"context"
	"fmt"
	"iter"
	"log/slog"

	"github.com/dustin/go-humanize"

	"doc2dash/internal/entry"
	"doc2dash/internal/logging"
	"doc2dash/internal/patcher"
)

// Source produces the entries of a documentation tree.
type Source interface {
	Parse() (iter.Seq[entry.Entry], error)
}

// Index stores entries and reports how many rows it holds. An Index that
// also implements Commit() error is committed before patching starts.
type Index interface {
	Add(e entry.Entry) error
	Count() (int, error)
}

// TOC is the patcher side of a conversion.
type TOC interface {
	Collect(e entry.Entry) error
	Finish(ctx context.Context) (patcher.Report, error)
}

type committer interface {
	Commit() error
}

// Result is the outcome of Run.
type Result struct {
	// Entries is the index row count after parsing.
	Entries int
	Patch   patcher.Report
}

// Run parses src, sending every entry first to idx and then to toc. Once the
// parser is exhausted the index is counted (and committed when supported) and
// only then is toc finished. Zero entries is a valid result.
func Run(ctx context.Context, src Source, idx Index, toc TOC, logger *slog.Logger) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logging.NewComponentLogger(logger, "convert")

	logger.Info("Parsing documentation...")
	entries, err := src.Parse()
	if err != nil {
		return Result{}, fmt.Errorf("parse documentation: %w", err)
	}

	for e := range entries {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if err := idx.Add(e); err != nil {
			return Result{}, fmt.Errorf("index entry: %w", err)
		}
		if err := toc.Collect(e); err != nil {
			return Result{}, fmt.Errorf("queue entry for patching: %w", err)
		}
	}

	count, err := idx.Count()
	if err != nil {
		return Result{}, fmt.Errorf("count index entries: %w", err)
	}
	if c, ok := idx.(committer); ok {
		if err := c.Commit(); err != nil {
			return Result{}, fmt.Errorf("commit index: %w", err)
		}
	}
	if count > 0 {
		logger.Info(fmt.Sprintf("Added %s index entries.", humanize.Comma(int64(count))))
	} else {
		logger.Warn("Added 0 index entries.")
	}

	report, err := toc.Finish(ctx)
	if err != nil {
		return Result{Entries: count, Patch: report}, fmt.Errorf("patch documentation: %w", err)
	}
	return Result{Entries: count, Patch: report}, nil
}
