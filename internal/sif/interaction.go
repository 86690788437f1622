// internal/sif/interaction.go
package sif

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// ElementSet is a set of model elements keyed by URI.
type ElementSet map[string]*biopax.Element

// NewElementSet builds a set from the given elements, skipping nils.
func NewElementSet(es ...*biopax.Element) ElementSet {
	s := make(ElementSet, len(es))
	s.Add(es...)
	return s
}

func (s ElementSet) Add(es ...*biopax.Element) {
	for _, e := range es {
		if e != nil {
			s[e.URI()] = e
		}
	}
}

// Union adds every member of o to s.
func (s ElementSet) Union(o ElementSet) {
	for k, v := range o {
		s[k] = v
	}
}

func (s ElementSet) Len() int { return len(s) }

func (s ElementSet) Contains(e *biopax.Element) bool {
	if e == nil {
		return false
	}
	_, ok := s[e.URI()]
	return ok
}

// Sorted returns the members ordered by URI.
func (s ElementSet) Sorted() []*biopax.Element {
	out := make([]*biopax.Element, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	return biopax.SortByURI(out)
}

// URIs returns the member URIs in sorted order.
func (s ElementSet) URIs() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Evidence groups the model elements a miner cites for one interaction.
type Evidence struct {
	Mediators []*biopax.Element
	SourcePEs []*biopax.Element
	TargetPEs []*biopax.Element
	SourceERs []*biopax.Element
	TargetERs []*biopax.Element
}

// Key is the identity of an interaction. Two interactions with equal keys
// describe the same relation and are merged.
type Key struct {
	Source string
	Target string
	Tag    string
}

func (k Key) String() string { return k.Source + "\t" + k.Tag + "\t" + k.Target }

// Interaction is one binary relation between two identifiers plus the model
// elements that support it.
type Interaction struct {
	SourceID string
	TargetID string
	Type     Type

	Mediators ElementSet
	SourcePEs ElementSet
	TargetPEs ElementSet
	SourceERs ElementSet
	TargetERs ElementSet
}

// NewInteraction creates an interaction. For undirected types the endpoints
// are stored in lexicographic order, and the per-side evidence follows them.
func NewInteraction(sourceID, targetID string, t Type, ev Evidence) *Interaction {
	if !t.Directed && sourceID > targetID {
		sourceID, targetID = targetID, sourceID
		ev.SourcePEs, ev.TargetPEs = ev.TargetPEs, ev.SourcePEs
		ev.SourceERs, ev.TargetERs = ev.TargetERs, ev.SourceERs
	}
	return &Interaction{
		SourceID:  sourceID,
		TargetID:  targetID,
		Type:      t,
		Mediators: NewElementSet(ev.Mediators...),
		SourcePEs: NewElementSet(ev.SourcePEs...),
		TargetPEs: NewElementSet(ev.TargetPEs...),
		SourceERs: NewElementSet(ev.SourceERs...),
		TargetERs: NewElementSet(ev.TargetERs...),
	}
}

func (i *Interaction) Key() Key {
	return Key{Source: i.SourceID, Target: i.TargetID, Tag: i.Type.Tag}
}

// HasIDs reports whether both endpoint identifiers are present.
func (i *Interaction) HasIDs() bool {
	return i.SourceID != "" && i.TargetID != ""
}

// IsSelfPair reports whether both endpoints carry the same identifier.
func (i *Interaction) IsSelfPair() bool { return i.SourceID == i.TargetID }

// Merge unions the evidence of o into i. It returns false, and changes
// nothing, when the two interactions have different keys.
func (i *Interaction) Merge(o *Interaction) bool {
	if o == nil || i.Key() != o.Key() {
		return false
	}
	i.Mediators.Union(o.Mediators)
	i.SourcePEs.Union(o.SourcePEs)
	i.TargetPEs.Union(o.TargetPEs)
	i.SourceERs.Union(o.SourceERs)
	i.TargetERs.Union(o.TargetERs)
	return true
}

// MediatorURIs returns the URIs of the mediating elements, sorted.
func (i *Interaction) MediatorURIs() []string { return i.Mediators.URIs() }

// String renders the interaction as a simple SIF line without the newline.
func (i *Interaction) String() string {
	return fmt.Sprintf("%s\t%s\t%s", i.SourceID, i.Type.Tag, i.TargetID)
}

// sortKey is the concatenation used for the canonical output order.
func (i *Interaction) sortKey() string {
	var b strings.Builder
	b.Grow(len(i.SourceID) + len(i.TargetID) + len(i.Type.Tag))
	b.WriteString(i.SourceID)
	b.WriteString(i.TargetID)
	b.WriteString(i.Type.Tag)
	return b.String()
}

// Sort orders interactions by the concatenation of source, target and tag.
// Ties fall back to the individual fields so the order is total.
func Sort(is []*Interaction) {
	sort.SliceStable(is, func(a, b int) bool {
		ka, kb := is[a].sortKey(), is[b].sortKey()
		if ka != kb {
			return ka < kb
		}
		if is[a].SourceID != is[b].SourceID {
			return is[a].SourceID < is[b].SourceID
		}
		return is[a].Type.Tag < is[b].Type.Tag
	})
}
