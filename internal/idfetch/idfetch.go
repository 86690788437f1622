// internal/idfetch/idfetch.go
package idfetch

import (
	"sort"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// Fetcher names graph elements. An empty result means the element cannot be
// named and any relation involving it is dropped.
type Fetcher interface {
	FetchID(e *biopax.Element) []string
}

// Func adapts a function to a Fetcher.
type Func func(e *biopax.Element) []string

func (f Func) FetchID(e *biopax.Element) []string { return f(e) }

// Options selects the databases and fallbacks of a Configurable fetcher.
type Options struct {
	// SeqDBs lists database name prefixes accepted for sequence entity
	// references, in priority order.
	SeqDBs []string
	// ChemDBs lists database name prefixes accepted for small molecule
	// references, in priority order.
	ChemDBs []string
	// UseNameWhenNoDBMatch falls back to the element names.
	UseNameWhenNoDBMatch bool
	// UseURIWhenNoDBMatch falls back to the element URI after names.
	UseURIWhenNoDBMatch bool
	// Symbols maps HGNC ids to symbols. Without it HGNC ids are dropped.
	Symbols *SymbolTable
}

// DefaultOptions names genes by HGNC symbol and chemicals by ChEBI, then
// PubChem, falling back to names.
func DefaultOptions() Options {
	return Options{
		SeqDBs:               []string{"hgnc symbol", "hgnc"},
		ChemDBs:              []string{"chebi", "pubchem"},
		UseNameWhenNoDBMatch: true,
	}
}

// Configurable resolves ids from xrefs of allow-listed databases with name
// and URI fallbacks.
type Configurable struct {
	opts    Options
	seqDBs  []string
	chemDBs []string
}

// NewConfigurable creates a fetcher. Database prefixes are matched
// case-insensitively.
func NewConfigurable(opts Options) *Configurable {
	return &Configurable{opts: opts, seqDBs: lower(opts.SeqDBs), chemDBs: lower(opts.ChemDBs)}
}

func lower(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FetchID implements Fetcher. Physical entities are named through their
// entity reference when they have one.
func (c *Configurable) FetchID(e *biopax.Element) []string {
	if e == nil {
		return nil
	}
	target := e
	if er := e.EntityReference(); er != nil {
		target = er
	}

	var dbs []string
	switch {
	case target.IsA(biopax.ClassSequenceEntityReference):
		dbs = c.seqDBs
	case target.IsA(biopax.ClassSmallMoleculeReference):
		dbs = c.chemDBs
	}
	if ids := c.fromXrefs(target, dbs); len(ids) > 0 {
		return ids
	}

	if c.opts.UseNameWhenNoDBMatch {
		if name := ValidName(target); name != "" {
			return []string{name}
		}
		if target != e {
			if name := ValidName(e); name != "" {
				return []string{name}
			}
		}
	}
	if c.opts.UseURIWhenNoDBMatch {
		return []string{target.URI()}
	}
	return nil
}

// fromXrefs returns the ids of the first allow-listed database that yields
// any. Unification xrefs are consulted before relationship xrefs.
func (c *Configurable) fromXrefs(e *biopax.Element, dbs []string) []string {
	if len(dbs) == 0 {
		return nil
	}
	xrefs := append(sortedXrefs(e.XrefsOf(biopax.XrefUnification)), sortedXrefs(e.XrefsOf(biopax.XrefRelationship))...)

	for _, prefix := range dbs {
		set := make(map[string]struct{})
		for _, x := range xrefs {
			db := strings.ToLower(strings.TrimSpace(x.DB))
			if !strings.HasPrefix(db, prefix) || x.ID == "" {
				continue
			}
			id := x.ID
			if isHGNCID(db) {
				sym, ok := c.opts.Symbols.Symbol(id)
				if !ok {
					continue
				}
				id = sym
			}
			set[id] = struct{}{}
		}
		if len(set) > 0 {
			return sortedKeys(set)
		}
	}
	return nil
}

// isHGNCID reports whether the database carries HGNC accession numbers rather
// than symbols.
func isHGNCID(db string) bool {
	return strings.HasPrefix(db, "hgnc") && !strings.Contains(db, "symbol")
}

func sortedXrefs(in []biopax.Xref) []biopax.Xref {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].DB != in[j].DB {
			return in[i].DB < in[j].DB
		}
		return in[i].ID < in[j].ID
	})
	return in
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// IsTruncated reports whether a name carries an ellipsis marker.
func IsTruncated(name string) bool {
	return strings.Contains(name, "...") || strings.Contains(name, "…")
}

// ValidName returns the display name, the standard name or the first sorted
// other name, skipping blank and truncated ones.
func ValidName(e *biopax.Element) string {
	for _, n := range []string{e.DisplayName(), e.StandardName()} {
		if n = strings.TrimSpace(n); n != "" && !IsTruncated(n) {
			return n
		}
	}
	names := append([]string(nil), e.Names()...)
	sort.Strings(names)
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" && !IsTruncated(n) {
			return n
		}
	}
	return ""
}
