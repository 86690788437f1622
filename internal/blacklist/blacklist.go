// internal/blacklist/blacklist.go
package blacklist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// RelType is the side of a conversion on which a molecule is ubiquitous.
// NoContext means both sides.
type RelType string

const (
	NoContext RelType = ""
	Input     RelType = "INPUT"
	Output    RelType = "OUTPUT"
)

// ParseRelType accepts INPUT, OUTPUT or an empty string.
func ParseRelType(s string) (RelType, error) {
	switch RelType(strings.ToUpper(strings.TrimSpace(s))) {
	case NoContext:
		return NoContext, nil
	case Input:
		return Input, nil
	case Output:
		return Output, nil
	default:
		return NoContext, fmt.Errorf("unknown context %q", s)
	}
}

// Entry is the blacklist record of one molecule.
type Entry struct {
	Score   int
	Context RelType
}

// Blacklist maps entity URIs to ubiquity entries. It is filled once, by
// Generate or by loading a file, and only read afterwards. A nil *Blacklist
// contains nothing.
type Blacklist struct {
	entries map[string]Entry
}

// New creates an empty blacklist.
func New() *Blacklist {
	return &Blacklist{entries: make(map[string]Entry)}
}

// Add records or replaces an entry.
func (b *Blacklist) Add(uri string, score int, ctx RelType) {
	b.entries[uri] = Entry{Score: score, Context: ctx}
}

// Len returns the number of entries.
func (b *Blacklist) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Entry returns the record of a URI.
func (b *Blacklist) Entry(uri string) (Entry, bool) {
	if b == nil {
		return Entry{}, false
	}
	e, ok := b.entries[uri]
	return e, ok
}

// Entries returns a copy of the table.
func (b *Blacklist) Entries() map[string]Entry {
	out := make(map[string]Entry, b.Len())
	if b == nil {
		return out
	}
	for k, v := range b.entries {
		out[k] = v
	}
	return out
}

// URIs returns the blacklisted URIs in sorted order.
func (b *Blacklist) URIs() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.entries))
	for uri := range b.entries {
		out = append(out, uri)
	}
	sort.Strings(out)
	return out
}

// IsUbique reports whether the URI is blacklisted in any context.
func (b *Blacklist) IsUbique(uri string) bool {
	_, ok := b.Entry(uri)
	return ok
}

// IsUbiqueIn reports whether the URI is ubiquitous in ctx. An entry without
// context matches every ctx; a query without context matches every entry.
func (b *Blacklist) IsUbiqueIn(uri string, ctx RelType) bool {
	e, ok := b.Entry(uri)
	if !ok {
		return false
	}
	if ctx == NoContext {
		return true
	}
	return e.Context == NoContext || e.Context == ctx
}

// keyOf picks the URI the blacklist is keyed on for a model element: the
// entity reference for physical entities that have one, the element itself
// otherwise.
func keyOf(e *biopax.Element) string {
	if er := e.EntityReference(); er != nil {
		return er.URI()
	}
	return e.URI()
}

// IsUbiqueElement checks a model element, or its entity reference, in ctx.
func (b *Blacklist) IsUbiqueElement(e *biopax.Element, ctx RelType) bool {
	if b.Len() == 0 || e == nil {
		return false
	}
	return b.IsUbiqueIn(e.URI(), ctx) || b.IsUbiqueIn(keyOf(e), ctx)
}

// ScoreOf returns the score of an element, or of its entity reference.
func (b *Blacklist) ScoreOf(e *biopax.Element) int {
	if entry, ok := b.Entry(e.URI()); ok {
		return entry.Score
	}
	if entry, ok := b.Entry(keyOf(e)); ok {
		return entry.Score
	}
	return 0
}

// NonUbiques removes the ids that are ubiquitous in ctx. When every id is
// ubiquitous the least ubiquitous ones, those with the minimum score, are kept
// so a reaction made only of ubiquitous molecules still has a participant.
func (b *Blacklist) NonUbiques(ids []string, ctx RelType) []string {
	var ubiques []string
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if b.IsUbiqueIn(id, ctx) {
			ubiques = append(ubiques, id)
			continue
		}
		out = append(out, id)
	}
	if len(out) > 0 || len(ubiques) == 0 {
		return out
	}
	return b.LeastUbique(ubiques)
}

// LeastUbique returns the ids with the minimum score.
func (b *Blacklist) LeastUbique(ids []string) []string {
	min := -1
	var out []string
	for _, id := range ids {
		e, _ := b.Entry(id)
		switch {
		case min == -1 || e.Score < min:
			min = e.Score
			out = []string{id}
		case e.Score == min:
			out = append(out, id)
		}
	}
	return out
}

// NonUbiqueElements is NonUbiques over model elements.
func (b *Blacklist) NonUbiqueElements(es []*biopax.Element, ctx RelType) []*biopax.Element {
	if b.Len() == 0 {
		return es
	}
	var ubiques []*biopax.Element
	out := make([]*biopax.Element, 0, len(es))
	for _, e := range es {
		if b.IsUbiqueElement(e, ctx) {
			ubiques = append(ubiques, e)
			continue
		}
		out = append(out, e)
	}
	if len(out) > 0 || len(ubiques) == 0 {
		return out
	}

	min := -1
	for _, e := range ubiques {
		s := b.ScoreOf(e)
		switch {
		case min == -1 || s < min:
			min = s
			out = []*biopax.Element{e}
		case s == min:
			out = append(out, e)
		}
	}
	return out
}
