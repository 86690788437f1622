// internal/pattern/searcher.go
package pattern

import (
	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// Searcher finds every match of a pattern in a model, grouped by anchor
// element. Implementations must be deterministic and must not modify the model.
type Searcher interface {
	Search(model *biopax.Model, p *Pattern) map[*biopax.Element][]*Match
}

// DFSSearcher binds variables depth first, following the constraint order of
// the pattern and backtracking on the first failed check.
type DFSSearcher struct{}

// Search implements Searcher.
func (DFSSearcher) Search(model *biopax.Model, p *Pattern) map[*biopax.Element][]*Match {
	out := make(map[*biopax.Element][]*Match)
	for _, anchor := range model.Objects(p.start) {
		if ms := SearchFrom(anchor, p); len(ms) > 0 {
			out[anchor] = ms
		}
	}
	return out
}

// SearchFrom returns the matches anchored at one element.
func SearchFrom(anchor *biopax.Element, p *Pattern) []*Match {
	if anchor == nil || !anchor.IsA(p.start) {
		return nil
	}
	m := NewMatch(p)
	m.set(0, anchor)
	var out []*Match
	p.extend(m, 0, &out)
	return out
}

func (p *Pattern) extend(m *Match, step int, out *[]*Match) {
	if step == len(p.mappings) {
		*out = append(*out, m.clone())
		return
	}
	mp := p.mappings[step]
	last := mp.inds[len(mp.inds)-1]

	if m.vars[last] != nil {
		if mp.constraint.Satisfies(m, mp.inds...) {
			p.extend(m, step+1, out)
		}
		return
	}

	for _, candidate := range mp.constraint.Generate(m, mp.inds...) {
		m.set(last, candidate)
		p.extend(m, step+1, out)
	}
	m.set(last, nil)
}

// SortedAnchors returns the anchors of a search result ordered by URI.
func SortedAnchors(results map[*biopax.Element][]*Match) []*biopax.Element {
	anchors := make([]*biopax.Element, 0, len(results))
	for a := range results {
		anchors = append(anchors, a)
	}
	return biopax.SortByURI(anchors)
}
