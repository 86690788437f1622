// internal/ubique/generator.go
package ubique

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/miner"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// Options configures a Generator.
type Options struct {
	// Decider scores molecules. Nil means blacklist.NewDefaultDecider().
	Decider blacklist.Decider
	// ClusterNames merges molecules with overlapping synonyms before
	// counting. Otherwise molecules are keyed by their lower-cased name.
	ClusterNames bool
	// MappingFile holds the curated display name mapping used with
	// ClusterNames. Empty skips curation.
	MappingFile string
	Logger      *zap.Logger
}

// Generator derives a blacklist of ubiquitous small molecules from the
// used-to-produce network of a model.
type Generator struct {
	decider      blacklist.Decider
	clusterNames bool
	mappingFile  string
	logger       *zap.Logger
}

func NewGenerator(opts Options) *Generator {
	g := &Generator{
		decider:      opts.Decider,
		clusterNames: opts.ClusterNames,
		mappingFile:  opts.MappingFile,
		logger:       opts.Logger,
	}
	if g.decider == nil {
		g.decider = blacklist.NewDefaultDecider()
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	g.logger = g.logger.Named("ubique")
	return g
}

// Neighborhood holds the adjacency of one canonical name after the
// upstream/downstream overlap was removed.
type Neighborhood struct {
	Neighbors  map[string]struct{}
	Upstream   map[string]struct{}
	Downstream map[string]struct{}
}

// namer picks the naming strategy, running the curation gate when needed.
func (g *Generator) namer(model *biopax.Model) (Namer, error) {
	if !g.clusterNames {
		return LowercaseNamer{}, nil
	}
	if g.mappingFile == "" {
		return NewClusterNamer(model, nil), nil
	}
	proposals := NewClusterNamer(model, nil).Proposals()
	mapping, err := curate(g.mappingFile, proposals)
	if err != nil {
		return nil, err
	}
	return NewClusterNamer(model, mapping), nil
}

// nameFetcher resolves physical entities through their reference.
func nameFetcher(n Namer) idfetch.Fetcher {
	return idfetch.Func(func(e *biopax.Element) []string {
		if !e.IsA(biopax.ClassSmallMoleculeReference) {
			e = e.EntityReference()
			if e == nil || !e.IsA(biopax.ClassSmallMoleculeReference) {
				return nil
			}
		}
		if name := n.Name(e); name != "" {
			return []string{name}
		}
		return nil
	})
}

// Neighborhoods runs the used-to-produce search and returns the adjacency of
// every canonical name, together with the namer used.
func (g *Generator) Neighborhoods(ctx context.Context, model *biopax.Model) (map[string]*Neighborhood, Namer, error) {
	namer, err := g.namer(model)
	if err != nil {
		return nil, nil, err
	}

	m, err := miner.ByName("used-to-produce", nil)
	if err != nil {
		return nil, nil, err
	}
	s := sif.NewSearcher(nameFetcher(namer), []sif.Miner{m}, sif.WithLogger(g.logger))
	edges, err := s.SearchSIF(ctx, model)
	if err != nil {
		return nil, nil, fmt.Errorf("used-to-produce search: %w", err)
	}

	hoods := make(map[string]*Neighborhood)
	get := func(name string) *Neighborhood {
		h, ok := hoods[name]
		if !ok {
			h = &Neighborhood{
				Neighbors:  make(map[string]struct{}),
				Upstream:   make(map[string]struct{}),
				Downstream: make(map[string]struct{}),
			}
			hoods[name] = h
		}
		return h
	}
	for _, e := range edges {
		src, tgt := get(e.SourceID), get(e.TargetID)
		src.Neighbors[e.TargetID] = struct{}{}
		tgt.Neighbors[e.SourceID] = struct{}{}
		src.Downstream[e.TargetID] = struct{}{}
		tgt.Upstream[e.SourceID] = struct{}{}
	}

	// Both differences use the original sets.
	for _, h := range hoods {
		up, down := h.Upstream, h.Downstream
		h.Upstream = minus(up, down)
		h.Downstream = minus(down, up)
	}
	g.logger.Debug("Built used-to-produce neighborhoods.",
		zap.Int("edges", len(edges)), zap.Int("molecules", len(hoods)))
	return hoods, namer, nil
}

func minus(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(a))
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = struct{}{}
		}
	}
	return out
}

// Generate builds the blacklist. It returns an error wrapping
// ErrMappingRequired when name curation must happen first.
func (g *Generator) Generate(ctx context.Context, model *biopax.Model) (*blacklist.Blacklist, error) {
	hoods, namer, err := g.Neighborhoods(ctx, model)
	if err != nil {
		return nil, err
	}

	bl := blacklist.New()
	for _, smr := range model.Objects(biopax.ClassSmallMoleculeReference) {
		h, ok := hoods[namer.Name(smr)]
		if !ok {
			continue
		}
		n, up, down := len(h.Neighbors), len(h.Upstream), len(h.Downstream)
		if !g.decider.IsUbique(n, up, down) {
			continue
		}
		bl.Add(smr.URI(), g.decider.Score(n, up, down), g.decider.Context(n, up, down))
	}

	g.logger.Info("Blacklist generated.",
		zap.Int("molecules", len(hoods)),
		zap.Int("ubiques", bl.Len()))
	return bl, nil
}
