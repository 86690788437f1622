// internal/sif/searcher.go
package sif

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/pattern"
)

// Miner pairs a pattern with the code that turns its matches into
// interactions of one type.
type Miner interface {
	Name() string
	Type() Type
	Pattern() *pattern.Pattern
	CreateInteractions(m *pattern.Match, fetcher idfetch.Fetcher) []*Interaction
}

// FetcherSetter is implemented by miners whose pattern depends on an
// identifier fetcher.
type FetcherSetter interface {
	SetIDFetcher(f idfetch.Fetcher)
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTypes restricts the output to the given types. No types means all.
func WithTypes(ts ...Type) Option {
	return func(s *Searcher) {
		if len(ts) == 0 {
			s.types = nil
			return
		}
		s.types = make(map[string]bool, len(ts))
		for _, t := range ts {
			s.types[t.Tag] = true
		}
	}
}

// WithConcurrency sets how many patterns are searched at once. Values below
// one are treated as one.
func WithConcurrency(n int) Option {
	return func(s *Searcher) {
		if n < 1 {
			n = 1
		}
		s.concurrency = n
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Searcher) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPatternSearcher replaces the default depth-first pattern searcher.
func WithPatternSearcher(ps pattern.Searcher) Option {
	return func(s *Searcher) {
		if ps != nil {
			s.patterns = ps
		}
	}
}

// WithProgressInterval sets the minimum spacing between progress log lines.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Searcher) { s.progress = &rate.Sometimes{Interval: d} }
}

// Searcher runs a set of miners over a model and aggregates their output
// into a deduplicated, sorted list of interactions.
type Searcher struct {
	fetcher     idfetch.Fetcher
	miners      []Miner
	types       map[string]bool
	concurrency int
	patterns    pattern.Searcher
	logger      *zap.Logger
	progress    *rate.Sometimes
}

// NewSearcher builds a searcher. The fetcher is handed to every miner that
// accepts one.
func NewSearcher(fetcher idfetch.Fetcher, miners []Miner, opts ...Option) *Searcher {
	s := &Searcher{
		fetcher:     fetcher,
		miners:      miners,
		concurrency: 1,
		patterns:    pattern.DFSSearcher{},
		logger:      zap.NewNop(),
		progress:    &rate.Sometimes{Interval: 2 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("sif_searcher")
	for _, m := range miners {
		if fs, ok := m.(FetcherSetter); ok {
			fs.SetIDFetcher(fetcher)
		}
	}
	return s
}

// Miners returns the miners this searcher runs, in order.
func (s *Searcher) Miners() []Miner { return append([]Miner(nil), s.miners...) }

// accepts reports whether the type filter lets t through.
func (s *Searcher) accepts(t Type) bool {
	return len(s.types) == 0 || s.types[t.Tag]
}

// SearchSIF runs every miner whose type passes the filter and returns the
// merged interactions in canonical order. The result does not depend on the
// concurrency level.
func (s *Searcher) SearchSIF(ctx context.Context, model *biopax.Model) ([]*Interaction, error) {
	if model == nil {
		return nil, fmt.Errorf("sif: nil model")
	}

	// Identifiers are memoized for this call only.
	fetcher := idfetch.NewCache(s.fetcher)

	var active []Miner
	for _, m := range s.miners {
		if s.accepts(m.Type()) {
			active = append(active, m)
		}
	}

	start := time.Now()
	s.logger.Info("Starting SIF search.",
		zap.Int("miners", len(active)),
		zap.Int("model_size", model.Len()),
		zap.Int("concurrency", s.concurrency))

	candidates := make([][]*Interaction, len(active))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, m := range active {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[i] = s.mine(m, model, fetcher)
			s.progress.Do(func() {
				s.logger.Info("Miner finished.",
					zap.String("miner", m.Name()),
					zap.Int("candidates", len(candidates[i])),
					zap.Duration("elapsed", time.Since(start)))
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[Key]*Interaction)
	var order []*Interaction
	for i, m := range active {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, c := range candidates[i] {
			if !s.accepts(c.Type) || !c.HasIDs() || c.IsSelfPair() {
				continue
			}
			if prev, ok := merged[c.Key()]; ok {
				prev.Merge(c)
				continue
			}
			merged[c.Key()] = c
			order = append(order, c)
		}
		s.logger.Debug("Merged miner output.", zap.String("miner", m.Name()), zap.Int("total", len(order)))
	}

	Sort(order)
	s.logger.Info("SIF search complete.",
		zap.Int("interactions", len(order)),
		zap.Duration("duration", time.Since(start)))
	return order, nil
}

func (s *Searcher) mine(m Miner, model *biopax.Model, fetcher idfetch.Fetcher) []*Interaction {
	results := s.patterns.Search(model, m.Pattern())
	var out []*Interaction
	for _, anchor := range pattern.SortedAnchors(results) {
		for _, match := range results[anchor] {
			out = append(out, m.CreateInteractions(match, fetcher)...)
		}
	}
	return out
}
