// Package feed collects raw job postings from configured sources.
package feed

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-twin-engine/internal/config"
	"github.com/jonathan/skill-twin-engine/internal/fetch"
	"github.com/jonathan/skill-twin-engine/internal/logger"
	"github.com/jonathan/skill-twin-engine/internal/types"
)

// Source yields raw postings from one origin.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]types.RawPosting, error)
}

// Error represents a failed source feed.
type Error struct {
	Source  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feed %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("feed %s: %s", e.Source, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options controls Collect and Stream.
type Options struct {
	// SkipFailed logs and skips sources that fail instead of aborting.
	SkipFailed bool
	// MaxParallel bounds concurrent fetches. Zero means one worker per source.
	MaxParallel int
	Logger      *logger.Logger
}

func (o Options) log() *logger.Logger {
	if o.Logger == nil {
		return logger.Nop()
	}
	return o.Logger
}

// Collect fetches every source in parallel and concatenates the postings in
// source order, so the merged batch is the same regardless of which feed
// finishes first.
func Collect(ctx context.Context, sources []Source, opts Options) ([]types.RawPosting, error) {
	results := make([][]types.RawPosting, len(sources))
	log := opts.log()

	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxParallel > 0 {
		g.SetLimit(opts.MaxParallel)
	}
	for i, src := range sources {
		g.Go(func() error {
			postings, err := fetchSource(gctx, src, opts, log)
			if err != nil {
				return err
			}
			results[i] = postings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]types.RawPosting, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}

// Stream fetches every source in parallel and sends postings as each source
// completes. The channel is closed once all sources are done; wait then
// returns the first error, if any.
func Stream(ctx context.Context, sources []Source, opts Options) (postings <-chan types.RawPosting, wait func() error) {
	ch := make(chan types.RawPosting)
	log := opts.log()

	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxParallel > 0 {
		g.SetLimit(opts.MaxParallel)
	}

	var (
		waitErr error
		done    = make(chan struct{})
	)
	go func() {
		for _, src := range sources {
			g.Go(func() error {
				batch, err := fetchSource(gctx, src, opts, log)
				if err != nil {
					return err
				}
				for _, p := range batch {
					select {
					case ch <- p:
					case <-gctx.Done():
						return gctx.Err()
					}
				}
				return nil
			})
		}
		waitErr = g.Wait()
		close(ch)
		close(done)
	}()

	return ch, func() error {
		<-done
		return waitErr
	}
}

func fetchSource(ctx context.Context, src Source, opts Options, log *logger.Logger) ([]types.RawPosting, error) {
	postings, err := src.Fetch(ctx)
	if err != nil {
		var feedErr *Error
		if !errors.As(err, &feedErr) {
			err = &Error{Source: src.Name(), Message: "fetch failed", Cause: err}
		}
		if opts.SkipFailed && ctx.Err() == nil {
			log.Warn("skipping failed feed", "source", src.Name(), "error", err)
			return nil, nil
		}
		return nil, err
	}
	log.Info("collected feed", "source", src.Name(), "postings", len(postings))
	return postings, nil
}

// FromConfig builds sources from configuration entries.
func FromConfig(entries []config.SourceConfig, fetchOpts *fetch.Options, log *logger.Logger) ([]Source, error) {
	sources := make([]Source, 0, len(entries))
	for i, entry := range entries {
		name := entry.Name
		if name == "" {
			name = fmt.Sprintf("source-%d", i+1)
		}
		switch entry.Kind {
		case config.SourceKindFile:
			sources = append(sources, &FileSource{Label: name, Path: entry.Path, Source: entry.Source})
		case config.SourceKindHTML:
			sources = append(sources, &HTMLSource{
				Label:      name,
				URL:        entry.URL,
				Source:     entry.Source,
				UseBrowser: entry.UseBrowser,
				Options:    fetchOpts,
				Logger:     log,
			})
		default:
			return nil, fmt.Errorf("source %q: unknown kind %q", name, entry.Kind)
		}
	}
	return sources, nil
}
