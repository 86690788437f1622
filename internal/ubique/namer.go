// internal/ubique/namer.go
package ubique

import (
	"sort"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
)

// Namer gives small molecule references the canonical name they are counted
// under. An empty name leaves the molecule out.
type Namer interface {
	Name(smr *biopax.Element) string
}

// LowercaseNamer uses the lower-cased first valid name of the reference.
type LowercaseNamer struct{}

func (LowercaseNamer) Name(smr *biopax.Element) string {
	return strings.ToLower(idfetch.ValidName(smr))
}

// namesOf collects the lower-cased, non-truncated names of a reference and
// of the physical entities pointing at it.
func namesOf(smr *biopax.Element) []string {
	set := make(map[string]struct{})
	add := func(e *biopax.Element) {
		for _, n := range e.AllNames() {
			if n == "" || idfetch.IsTruncated(n) {
				continue
			}
			set[strings.ToLower(n)] = struct{}{}
		}
	}
	add(smr)
	for _, pe := range smr.EntityReferenceOf() {
		add(pe)
	}
	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// unionFind over names. The root of a set is its smallest member.
type unionFind map[string]string

func (u unionFind) find(x string) string {
	if _, ok := u[x]; !ok {
		u[x] = x
	}
	for u[x] != x {
		u[x] = u[u[x]]
		x = u[x]
	}
	return x
}

func (u unionFind) union(a, b string) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	u[rb] = ra
}

// ClusterNamer merges references whose name sets intersect, transitively,
// and names each cluster by its smallest name. A curated mapping from
// lower-cased display name to canonical name takes precedence.
type ClusterNamer struct {
	root    map[*biopax.Element]string
	display map[*biopax.Element]string
	mapping map[string]string
}

// NewClusterNamer clusters every small molecule reference of the model.
func NewClusterNamer(model *biopax.Model, mapping map[string]string) *ClusterNamer {
	c := &ClusterNamer{
		root:    make(map[*biopax.Element]string),
		display: make(map[*biopax.Element]string),
		mapping: mapping,
	}
	uf := make(unionFind)
	key := make(map[*biopax.Element]string)
	for _, smr := range model.Objects(biopax.ClassSmallMoleculeReference) {
		names := namesOf(smr)
		if len(names) == 0 {
			continue
		}
		key[smr] = names[0]
		c.display[smr] = strings.ToLower(idfetch.ValidName(smr))
		for _, n := range names[1:] {
			uf.union(names[0], n)
		}
	}
	// Resolve roots up front so Name is read-only and safe to share.
	for smr, k := range key {
		c.root[smr] = uf.find(k)
	}
	return c
}

func (c *ClusterNamer) Name(smr *biopax.Element) string {
	if d, ok := c.display[smr]; ok && d != "" {
		if canonical, ok := c.mapping[d]; ok {
			return canonical
		}
	}
	return c.root[smr]
}

// Clusters returns each cluster's sorted display names keyed by its
// canonical name.
func (c *ClusterNamer) Clusters() map[string][]string {
	sets := make(map[string]map[string]struct{})
	for smr, root := range c.root {
		if sets[root] == nil {
			sets[root] = make(map[string]struct{})
		}
		if d := c.display[smr]; d != "" {
			sets[root][d] = struct{}{}
		}
	}
	out := make(map[string][]string, len(sets))
	for root, set := range sets {
		names := make([]string, 0, len(set))
		for n := range set {
			names = append(names, n)
		}
		sort.Strings(names)
		out[root] = names
	}
	return out
}

// Proposals lists, for every cluster whose members disagree on their display
// name, each display name with the canonical name it would be merged under.
func (c *ClusterNamer) Proposals() map[string]string {
	out := make(map[string]string)
	for root, names := range c.Clusters() {
		if len(names) < 2 {
			continue
		}
		for _, n := range names {
			out[n] = root
		}
	}
	return out
}
