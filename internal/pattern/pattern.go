// internal/pattern/pattern.go
package pattern

import (
	"fmt"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
)

// Constraint relates one or more pattern variables. A generative constraint
// can enumerate candidates for its last variable given the others.
type Constraint interface {
	// VariableSize is the number of labels the constraint is applied to.
	VariableSize() int
	// CanGenerate reports whether Generate may be used to bind the last variable.
	CanGenerate() bool
	// Generate returns candidates for the element at ind[len(ind)-1].
	Generate(m *Match, ind ...int) []*biopax.Element
	// Satisfies checks the constraint once every variable is bound.
	Satisfies(m *Match, ind ...int) bool
}

// mapping binds a constraint to label indices.
type mapping struct {
	constraint Constraint
	inds       []int
}

// Pattern is an ordered chain of constraints over labeled variables. The
// first label is the anchor and is bound to every element of the start class.
type Pattern struct {
	start    biopax.Class
	labels   []string
	index    map[string]int
	mappings []mapping
}

// New creates a pattern whose anchor variable has the given class and label.
func New(start biopax.Class, label string) *Pattern {
	return &Pattern{
		start:  start,
		labels: []string{label},
		index:  map[string]int{label: 0},
	}
}

// StartClass returns the class of the anchor variable.
func (p *Pattern) StartClass() biopax.Class { return p.start }

// Labels returns the labels in binding order.
func (p *Pattern) Labels() []string { return append([]string(nil), p.labels...) }

// Size returns the number of variables.
func (p *Pattern) Size() int { return len(p.labels) }

// HasLabel reports whether the label is declared.
func (p *Pattern) HasLabel(label string) bool {
	_, ok := p.index[label]
	return ok
}

// IndexOf returns the variable index of a label, or -1.
func (p *Pattern) IndexOf(label string) int {
	if i, ok := p.index[label]; ok {
		return i
	}
	return -1
}

// Len returns the number of constraints.
func (p *Pattern) Len() int { return len(p.mappings) }

// Add appends a constraint. Every label but the last must already exist. If
// the last label is new the constraint must be generative and introduces it.
func (p *Pattern) Add(c Constraint, labels ...string) {
	inds := p.resolve(c, labels)
	p.mappings = append(p.mappings, mapping{constraint: c, inds: inds})
}

// InsertAfterBound inserts a check constraint right after the point where all
// of its labels are bound, so it prunes as early as possible.
func (p *Pattern) InsertAfterBound(c Constraint, labels ...string) {
	inds := make([]int, len(labels))
	for i, l := range labels {
		idx, ok := p.index[l]
		if !ok {
			panic(fmt.Sprintf("pattern: unknown label %q", l))
		}
		inds[i] = idx
	}
	if c.VariableSize() != len(labels) {
		panic(fmt.Sprintf("pattern: constraint needs %d labels, got %d", c.VariableSize(), len(labels)))
	}

	bound := map[int]bool{0: true}
	pos := 0
	if !allBound(bound, inds) {
		for i, mp := range p.mappings {
			bound[mp.inds[len(mp.inds)-1]] = true
			if allBound(bound, inds) {
				pos = i + 1
				break
			}
		}
	}
	p.mappings = append(p.mappings, mapping{})
	copy(p.mappings[pos+1:], p.mappings[pos:])
	p.mappings[pos] = mapping{constraint: c, inds: inds}
}

func allBound(bound map[int]bool, inds []int) bool {
	for _, i := range inds {
		if !bound[i] {
			return false
		}
	}
	return true
}

func (p *Pattern) resolve(c Constraint, labels []string) []int {
	if c.VariableSize() != len(labels) {
		panic(fmt.Sprintf("pattern: constraint needs %d labels, got %d (%s)",
			c.VariableSize(), len(labels), strings.Join(labels, ", ")))
	}
	inds := make([]int, len(labels))
	for i, l := range labels {
		idx, ok := p.index[l]
		if !ok {
			if i != len(labels)-1 {
				panic(fmt.Sprintf("pattern: label %q used before it is introduced", l))
			}
			if !c.CanGenerate() {
				panic(fmt.Sprintf("pattern: label %q introduced by a non-generative constraint", l))
			}
			idx = len(p.labels)
			p.labels = append(p.labels, l)
			p.index[l] = idx
		}
		inds[i] = idx
	}
	return inds
}

// Match is a binding of pattern labels to elements. Matches handed out by a
// Searcher are never modified.
type Match struct {
	vars  []*biopax.Element
	index map[string]int
}

// NewMatch creates an empty match sized for the pattern.
func NewMatch(p *Pattern) *Match {
	return &Match{vars: make([]*biopax.Element, len(p.labels)), index: p.index}
}

// Get returns the element bound to label, or nil.
func (m *Match) Get(label string) *biopax.Element {
	i, ok := m.index[label]
	if !ok || i >= len(m.vars) {
		return nil
	}
	return m.vars[i]
}

// GetAll returns the non-nil elements bound to the labels.
func (m *Match) GetAll(labels ...string) []*biopax.Element {
	var out []*biopax.Element
	for _, l := range labels {
		if e := m.Get(l); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// At returns the element at a variable index.
func (m *Match) At(i int) *biopax.Element { return m.vars[i] }

// First returns the anchor element.
func (m *Match) First() *biopax.Element { return m.vars[0] }

func (m *Match) set(i int, e *biopax.Element) { m.vars[i] = e }

func (m *Match) clone() *Match {
	vars := make([]*biopax.Element, len(m.vars))
	copy(vars, m.vars)
	return &Match{vars: vars, index: m.index}
}

// String lists the bindings, for debugging.
func (m *Match) String() string {
	labels := make([]string, len(m.vars))
	for l, i := range m.index {
		labels[i] = l
	}
	var b strings.Builder
	for i, e := range m.vars {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(labels[i])
		b.WriteString("=")
		if e == nil {
			b.WriteString("nil")
		} else {
			b.WriteString(e.URI())
		}
	}
	return b.String()
}
