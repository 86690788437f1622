// internal/pattern/constraints.go
package pattern

import (
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
)

// checker is embedded by constraints that only check bindings.
type checker struct{ size int }

func (c checker) VariableSize() int { return c.size }
func (c checker) CanGenerate() bool { return false }
func (c checker) Generate(*Match, ...int) []*biopax.Element {
	return nil
}

// generated is the Satisfies of every generative constraint: the bound last
// variable must be among the generated candidates.
func generated(c Constraint, m *Match, ind []int) bool {
	target := m.At(ind[len(ind)-1])
	for _, e := range c.Generate(m, ind...) {
		if e == target {
			return true
		}
	}
	return false
}

// -- Type --

type typeConstraint struct {
	checker
	class biopax.Class
}

// Type requires the element to be an instance of class.
func Type(class biopax.Class) Constraint {
	return typeConstraint{checker: checker{1}, class: class}
}

func (c typeConstraint) Satisfies(m *Match, ind ...int) bool {
	e := m.At(ind[0])
	return e != nil && e.IsA(c.class)
}

// -- Equality --

type equality struct {
	checker
	equal bool
}

// Equality requires two variables to be the same element, or different ones.
func Equality(equal bool) Constraint {
	return equality{checker: checker{2}, equal: equal}
}

func (c equality) Satisfies(m *Match, ind ...int) bool {
	return (m.At(ind[0]) == m.At(ind[1])) == c.equal
}

// -- NOT --

type not struct{ inner Constraint }

// NOT negates a constraint. The result is never generative.
func NOT(c Constraint) Constraint { return not{inner: c} }

func (c not) VariableSize() int                         { return c.inner.VariableSize() }
func (c not) CanGenerate() bool                         { return false }
func (c not) Generate(*Match, ...int) []*biopax.Element { return nil }
func (c not) Satisfies(m *Match, ind ...int) bool       { return !c.inner.Satisfies(m, ind...) }

// -- Empty --

type empty struct{ inner Constraint }

// Empty is satisfied when a generative constraint yields nothing for the
// given variables. It takes one label less than the wrapped constraint.
func Empty(gen Constraint) Constraint { return empty{inner: gen} }

func (c empty) VariableSize() int                         { return c.inner.VariableSize() - 1 }
func (c empty) CanGenerate() bool                         { return false }
func (c empty) Generate(*Match, ...int) []*biopax.Element { return nil }
func (c empty) Satisfies(m *Match, ind ...int) bool {
	args := append(append([]int(nil), ind...), -1)
	return len(c.inner.Generate(m, args...)) == 0
}

// -- Path --

// Step is one hop of a Path.
type Step struct {
	Name string
	Next func(e *biopax.Element) []*biopax.Element
}

func one(e *biopax.Element) []*biopax.Element {
	if e == nil {
		return nil
	}
	return []*biopax.Element{e}
}

var (
	ERToPE = Step{"EntityReference/entityReferenceOf", (*biopax.Element).EntityReferenceOf}
	PEToER = Step{"PhysicalEntity/entityReference", func(e *biopax.Element) []*biopax.Element {
		return one(e.EntityReference())
	}}
	ControllerOf       = Step{"PhysicalEntity/controllerOf", (*biopax.Element).ControllerOf}
	Controller         = Step{"Control/controller", (*biopax.Element).Controllers}
	Controlled         = Step{"Control/controlled", (*biopax.Element).Controlled}
	ControlledOf       = Step{"Interaction/controlledOf", (*biopax.Element).ControlledOf}
	ComponentOf        = Step{"PhysicalEntity/componentOf", (*biopax.Element).ComponentOf}
	Component          = Step{"Complex/component", (*biopax.Element).Components}
	InteractionOf      = Step{"PhysicalEntity/interaction", (*biopax.Element).Interactions}
	Participant        = Step{"Interaction/participant", (*biopax.Element).Participants}
	Product            = Step{"TemplateReaction/product", (*biopax.Element).Products}
	PathwayComponentOf = Step{"Process/pathwayComponentOf", (*biopax.Element).PathwayComponentOf}
)

type path struct {
	steps []Step
	class biopax.Class
}

// Path follows a chain of steps from the first variable to the second.
func Path(steps ...Step) Constraint { return path{steps: steps} }

// PathTo is Path restricted to results of class.
func PathTo(class biopax.Class, steps ...Step) Constraint {
	return path{steps: steps, class: class}
}

func (c path) VariableSize() int { return 2 }
func (c path) CanGenerate() bool { return true }

func (c path) Generate(m *Match, ind ...int) []*biopax.Element {
	frontier := one(m.At(ind[0]))
	for _, s := range c.steps {
		var next []*biopax.Element
		seen := make(map[*biopax.Element]struct{})
		for _, e := range frontier {
			for _, n := range s.Next(e) {
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	if c.class == biopax.ClassUnknown {
		return frontier
	}
	out := frontier[:0:0]
	for _, e := range frontier {
		if e.IsA(c.class) {
			out = append(out, e)
		}
	}
	return out
}

func (c path) Satisfies(m *Match, ind ...int) bool { return generated(c, m, ind) }

// String renders the step names joined by '/'.
func (c path) String() string {
	names := make([]string, len(c.steps))
	for i, s := range c.steps {
		names[i] = s.Name
	}
	return strings.Join(names, "/")
}

// -- LinkedPE --

// LinkDirection selects which way LinkedPE walks the complex and generic
// membership hierarchy.
type LinkDirection int

const (
	// Up walks to the complexes and generic entities containing a physical entity.
	Up LinkDirection = iota
	// Down walks to the components and members of a physical entity.
	Down
)

type linkedPE struct{ dir LinkDirection }

// LinkedPE relates a physical entity to itself and every entity reachable
// through complex or generic membership in the chosen direction.
func LinkedPE(dir LinkDirection) Constraint { return linkedPE{dir: dir} }

func (c linkedPE) VariableSize() int { return 2 }
func (c linkedPE) CanGenerate() bool { return true }

func (c linkedPE) Generate(m *Match, ind ...int) []*biopax.Element {
	start := m.At(ind[0])
	if start == nil {
		return nil
	}
	seen := map[*biopax.Element]struct{}{start: {}}
	out := []*biopax.Element{start}
	for i := 0; i < len(out); i++ {
		e := out[i]
		var next []*biopax.Element
		if c.dir == Up {
			next = append(append(next, e.ComponentOf()...), physicalOnly(e.MemberOf())...)
		} else {
			next = append(append(next, e.Components()...), physicalOnly(e.Members())...)
		}
		for _, n := range next {
			if _, ok := seen[n]; !ok {
				seen[n] = struct{}{}
				out = append(out, n)
			}
		}
	}
	return out
}

func (c linkedPE) Satisfies(m *Match, ind ...int) bool { return generated(c, m, ind) }

func physicalOnly(es []*biopax.Element) []*biopax.Element {
	var out []*biopax.Element
	for _, e := range es {
		if e.IsA(biopax.ClassPhysicalEntity) {
			out = append(out, e)
		}
	}
	return out
}

// -- Conversion sides --

// sides returns the input and output participants of a conversion according
// to its direction. Reversible and undirected conversions have every
// participant on both.
func sides(conv *biopax.Element) (inputs, outputs []*biopax.Element) {
	switch conv.Direction() {
	case biopax.DirectionLeftToRight:
		return conv.Left(), conv.Right()
	case biopax.DirectionRightToLeft:
		return conv.Right(), conv.Left()
	default:
		all := append(append([]*biopax.Element(nil), conv.Left()...), conv.Right()...)
		return all, all
	}
}

func contains(es []*biopax.Element, e *biopax.Element) bool {
	for _, x := range es {
		if x == e {
			return true
		}
	}
	return false
}

type participant struct {
	rel blacklist.RelType
	bl  *blacklist.Blacklist
}

// ConversionParticipant generates the input or output participants of a
// conversion, dropping molecules ubiquitous in that context.
func ConversionParticipant(rel blacklist.RelType, bl *blacklist.Blacklist) Constraint {
	return participant{rel: rel, bl: bl}
}

func (c participant) VariableSize() int { return 2 }
func (c participant) CanGenerate() bool { return true }

func (c participant) Generate(m *Match, ind ...int) []*biopax.Element {
	conv := m.At(ind[0])
	if conv == nil || !conv.IsA(biopax.ClassConversion) {
		return nil
	}
	inputs, outputs := sides(conv)
	side := inputs
	if c.rel == blacklist.Output {
		side = outputs
	}
	return c.bl.NonUbiqueElements(side, c.rel)
}

func (c participant) Satisfies(m *Match, ind ...int) bool { return generated(c, m, ind) }

type participatesInConv struct {
	rel blacklist.RelType
	bl  *blacklist.Blacklist
}

// ParticipatesInConv generates the conversions a physical entity takes part
// in on the given side. A molecule ubiquitous in that context generates nothing.
func ParticipatesInConv(rel blacklist.RelType, bl *blacklist.Blacklist) Constraint {
	return participatesInConv{rel: rel, bl: bl}
}

func (c participatesInConv) VariableSize() int { return 2 }
func (c participatesInConv) CanGenerate() bool { return true }

func (c participatesInConv) Generate(m *Match, ind ...int) []*biopax.Element {
	pe := m.At(ind[0])
	if pe == nil || c.bl.IsUbiqueElement(pe, c.rel) {
		return nil
	}
	var out []*biopax.Element
	for _, conv := range pe.ParticipantOf() {
		if !conv.IsA(biopax.ClassConversion) {
			continue
		}
		inputs, outputs := sides(conv)
		side := inputs
		if c.rel == blacklist.Output {
			side = outputs
		}
		if contains(side, pe) {
			out = append(out, conv)
		}
	}
	return out
}

func (c participatesInConv) Satisfies(m *Match, ind ...int) bool { return generated(c, m, ind) }

// SideType selects the side ConversionSide generates.
type SideType int

const (
	SameSide SideType = iota
	OtherSide
)

type conversionSide struct {
	side SideType
	bl   *blacklist.Blacklist
	rel  blacklist.RelType
}

// ConversionSide relates a participant (first variable) of a conversion
// (second variable) to the participants on the same or the opposite side
// (third variable). Generated molecules ubiquitous in rel are dropped.
func ConversionSide(side SideType, bl *blacklist.Blacklist, rel blacklist.RelType) Constraint {
	return conversionSide{side: side, bl: bl, rel: rel}
}

func (c conversionSide) VariableSize() int { return 3 }
func (c conversionSide) CanGenerate() bool { return true }

func (c conversionSide) Generate(m *Match, ind ...int) []*biopax.Element {
	pe, conv := m.At(ind[0]), m.At(ind[1])
	if pe == nil || conv == nil || !conv.IsA(biopax.ClassConversion) {
		return nil
	}
	onLeft, onRight := contains(conv.Left(), pe), contains(conv.Right(), pe)

	var out []*biopax.Element
	add := func(es []*biopax.Element) {
		for _, e := range es {
			if (c.side == SameSide && e == pe) || contains(out, e) {
				continue
			}
			out = append(out, e)
		}
	}
	switch c.side {
	case SameSide:
		if onLeft {
			add(conv.Left())
		}
		if onRight {
			add(conv.Right())
		}
	case OtherSide:
		if onLeft {
			add(conv.Right())
		}
		if onRight {
			add(conv.Left())
		}
	}
	return c.bl.NonUbiqueElements(out, c.rel)
}

func (c conversionSide) Satisfies(m *Match, ind ...int) bool { return generated(c, m, ind) }

// -- Participant entity references --

type participantER struct{ checker }

// ParticipantER is satisfied when the entity reference (second variable) is
// the reference of any participant of the interaction (first variable),
// looking inside complexes and generics.
func ParticipantER() Constraint { return participantER{checker{2}} }

func (c participantER) Satisfies(m *Match, ind ...int) bool {
	inter, er := m.At(ind[0]), m.At(ind[1])
	if inter == nil || er == nil {
		return false
	}
	down := linkedPE{dir: Down}
	for _, pe := range append(append([]*biopax.Element(nil), inter.Left()...), inter.Right()...) {
		for _, simple := range down.expand(pe) {
			if simple.EntityReference() == er {
				return true
			}
		}
	}
	return false
}

func (c linkedPE) expand(e *biopax.Element) []*biopax.Element {
	mm := &Match{vars: []*biopax.Element{e}}
	return c.Generate(mm, 0)
}

// -- Identifier presence --

type hasAnID struct {
	checker
	fetcher idfetch.Fetcher
}

// HasAnID requires the element to resolve to at least one identifier.
func HasAnID(f idfetch.Fetcher) Constraint {
	return hasAnID{checker: checker{1}, fetcher: f}
}

func (c hasAnID) Satisfies(m *Match, ind ...int) bool {
	return len(c.fetcher.FetchID(m.At(ind[0]))) > 0
}

// -- Ubiquity --

type nonUbique struct {
	checker
	bl  *blacklist.Blacklist
	rel blacklist.RelType
}

// NonUbique rejects molecules ubiquitous in rel.
func NonUbique(bl *blacklist.Blacklist, rel blacklist.RelType) Constraint {
	return nonUbique{checker: checker{1}, bl: bl, rel: rel}
}

func (c nonUbique) Satisfies(m *Match, ind ...int) bool {
	return !c.bl.IsUbiqueElement(m.At(ind[0]), c.rel)
}

// -- State changes --

type modificationChanged struct {
	checker
	term string
}

// ModificationChanged is satisfied when two physical entities carry a
// different number of modifications whose term contains term, compared
// case-insensitively.
func ModificationChanged(term string) Constraint {
	return modificationChanged{checker: checker{2}, term: strings.ToLower(term)}
}

func (c modificationChanged) count(e *biopax.Element) int {
	n := 0
	for _, f := range e.Features() {
		if f.Kind == "modification" && strings.Contains(strings.ToLower(f.Term), c.term) {
			n++
		}
	}
	return n
}

func (c modificationChanged) Satisfies(m *Match, ind ...int) bool {
	a, b := m.At(ind[0]), m.At(ind[1])
	if a == nil || b == nil {
		return false
	}
	return c.count(a) != c.count(b)
}

type locationChanged struct{ checker }

// LocationChanged is satisfied when two physical entities have different
// cellular locations.
func LocationChanged() Constraint { return locationChanged{checker{2}} }

func (c locationChanged) Satisfies(m *Match, ind ...int) bool {
	a, b := m.At(ind[0]), m.At(ind[1])
	if a == nil || b == nil {
		return false
	}
	return a.CellularLocation() != b.CellularLocation()
}
