// internal/pattern/pattern_test.go
package pattern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/pattern"
)

// controllerToInput links a controller reference to the references of the
// sequence entities its conversions consume.
func controllerToInput(bl *blacklist.Blacklist) *pattern.Pattern {
	p := pattern.New(biopax.ClassSequenceEntityReference, "controller ER")
	p.Add(pattern.Path(pattern.ERToPE), "controller ER", "controller PE")
	p.Add(pattern.Path(pattern.ControllerOf), "controller PE", "Control")
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), "Control", "Conversion")
	p.Add(pattern.ConversionParticipant(blacklist.Input, bl), "Conversion", "input PE")
	return p
}

// -- Test Cases --

func TestPattern_AddIntroducesLabels(t *testing.T) {
	p := controllerToInput(nil)

	assert.Equal(t, []string{"controller ER", "controller PE", "Control", "Conversion", "input PE"}, p.Labels())
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, 3, p.IndexOf("Conversion"))
	assert.Equal(t, -1, p.IndexOf("nope"))
	assert.True(t, p.HasLabel("input PE"))
	assert.Equal(t, biopax.ClassSequenceEntityReference, p.StartClass())
}

func TestPattern_AddMisuse(t *testing.T) {
	p := pattern.New(biopax.ClassProtein, "a")

	assert.Panics(t, func() { p.Add(pattern.Equality(false), "a", "b") }, "checks cannot introduce labels")
	assert.Panics(t, func() { p.Add(pattern.Path(pattern.PEToER), "x", "y") }, "only the last label may be new")
	assert.Panics(t, func() { p.Add(pattern.Type(biopax.ClassProtein), "a", "a") }, "arity mismatch")
	assert.Panics(t, func() { p.InsertAfterBound(pattern.Type(biopax.ClassProtein), "missing") })
}

func TestDFSSearcher_Search(t *testing.T) {
	toy := biopaxtest.NewToy()
	p := controllerToInput(nil)

	res := pattern.DFSSearcher{}.Search(toy.Model, p)
	require.Len(t, res, 1)
	ms := res[toy.KinaseRef]
	require.Len(t, ms, 2)

	var inputs []*biopax.Element
	for _, m := range ms {
		assert.Equal(t, toy.Kinase, m.Get("controller PE"))
		assert.Equal(t, toy.Catalysis, m.Get("Control"))
		assert.Equal(t, toy.Reaction, m.Get("Conversion"))
		assert.Equal(t, toy.KinaseRef, m.First())
		inputs = append(inputs, m.Get("input PE"))
	}
	assert.ElementsMatch(t, []*biopax.Element{toy.ATP, toy.ProteinA}, inputs)
	assert.Equal(t, []*biopax.Element{toy.KinaseRef}, pattern.SortedAnchors(res))
}

func TestDFSSearcher_BlacklistPrunesInputs(t *testing.T) {
	toy := biopaxtest.NewToy()
	bl := blacklist.New()
	bl.Add(toy.ATPRef.URI(), 80, blacklist.NoContext)

	ms := pattern.SearchFrom(toy.KinaseRef, controllerToInput(bl))
	require.Len(t, ms, 1)
	assert.Equal(t, toy.ProteinA, ms[0].Get("input PE"))
}

func TestInsertAfterBound_PrunesEarly(t *testing.T) {
	toy := biopaxtest.NewToy()
	p := controllerToInput(nil)

	calls := 0
	counting := idfetch.Func(func(e *biopax.Element) []string {
		calls++
		return nil
	})
	p.InsertAfterBound(pattern.HasAnID(counting), "controller ER")

	assert.Empty(t, pattern.DFSSearcher{}.Search(toy.Model, p))
	// The check runs once per anchor, before any variable is generated.
	assert.Equal(t, len(toy.Model.Objects(biopax.ClassSequenceEntityReference)), calls)
}

func TestConversionSide(t *testing.T) {
	toy := biopaxtest.NewToy()

	other := pattern.New(biopax.ClassProtein, "input PE")
	other.Add(pattern.ParticipatesInConv(blacklist.Input, nil), "input PE", "Conversion")
	other.Add(pattern.ConversionSide(pattern.OtherSide, nil, blacklist.Output), "input PE", "Conversion", "output PE")

	ms := pattern.SearchFrom(toy.ProteinA, other)
	require.Len(t, ms, 2)
	assert.ElementsMatch(t, []*biopax.Element{toy.ADP, toy.ProteinAP},
		[]*biopax.Element{ms[0].Get("output PE"), ms[1].Get("output PE")})

	same := pattern.New(biopax.ClassProtein, "input PE")
	same.Add(pattern.ParticipatesInConv(blacklist.Input, nil), "input PE", "Conversion")
	same.Add(pattern.ConversionSide(pattern.SameSide, nil, blacklist.Input), "input PE", "Conversion", "partner")
	ms = pattern.SearchFrom(toy.ProteinA, same)
	require.Len(t, ms, 1)
	assert.Equal(t, toy.ATP, ms[0].Get("partner"))

	// Protein_A_phosphorylated is produced, not consumed.
	assert.Empty(t, pattern.SearchFrom(toy.ProteinAP, other))
}

func TestConversionDirection(t *testing.T) {
	m := biopax.NewModel()
	a := m.MustAdd(biopax.ClassSmallMolecule, "urn:a")
	b := m.MustAdd(biopax.ClassSmallMolecule, "urn:b")
	m.MustAdd(biopax.ClassBiochemicalReaction, "urn:r",
		biopax.WithLeft(a), biopax.WithRight(b), biopax.WithDirection(biopax.DirectionRightToLeft))
	m.MustAdd(biopax.ClassBiochemicalReaction, "urn:rev",
		biopax.WithLeft(a), biopax.WithRight(b), biopax.WithDirection(biopax.DirectionReversible))

	p := pattern.New(biopax.ClassSmallMolecule, "in")
	p.Add(pattern.ParticipatesInConv(blacklist.Input, nil), "in", "conv")

	convs := func(e *biopax.Element) []string {
		var out []string
		for _, mt := range pattern.SearchFrom(e, p) {
			out = append(out, mt.Get("conv").URI())
		}
		return out
	}
	assert.ElementsMatch(t, []string{"urn:rev"}, convs(a))
	assert.ElementsMatch(t, []string{"urn:r", "urn:rev"}, convs(b))
}

func TestNOTAndEmpty(t *testing.T) {
	toy := biopaxtest.NewToy()

	p := pattern.New(biopax.ClassControl, "Control")
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), "Control", "Conversion")
	p.Add(pattern.Path(pattern.Controller, pattern.PEToER), "Control", "controller ER")
	p.Add(pattern.NOT(pattern.ParticipantER()), "Conversion", "controller ER")
	assert.Len(t, pattern.SearchFrom(toy.Catalysis, p), 1)

	q := pattern.New(biopax.ClassConversion, "Conversion")
	q.Add(pattern.Empty(pattern.ConversionParticipant(blacklist.Input, nil)), "Conversion")
	assert.Empty(t, pattern.SearchFrom(toy.Reaction, q))

	m := biopax.NewModel()
	out := m.MustAdd(biopax.ClassProtein, "urn:out")
	synth := m.MustAdd(biopax.ClassBiochemicalReaction, "urn:synth",
		biopax.WithRight(out), biopax.WithDirection(biopax.DirectionLeftToRight))
	assert.Len(t, pattern.SearchFrom(synth, q), 1)
}

func TestLinkedPE(t *testing.T) {
	m := biopax.NewModel()
	p1 := m.MustAdd(biopax.ClassProtein, "urn:p1")
	p2 := m.MustAdd(biopax.ClassProtein, "urn:p2")
	generic := m.MustAdd(biopax.ClassProtein, "urn:generic", biopax.WithMembers(p1))
	inner := m.MustAdd(biopax.ClassComplex, "urn:inner", biopax.WithComponents(generic, p2))
	outer := m.MustAdd(biopax.ClassComplex, "urn:outer", biopax.WithComponents(inner))

	up := pattern.New(biopax.ClassProtein, "simple")
	up.Add(pattern.LinkedPE(pattern.Up), "simple", "linked")
	var got []*biopax.Element
	for _, mt := range pattern.SearchFrom(p1, up) {
		got = append(got, mt.Get("linked"))
	}
	assert.ElementsMatch(t, []*biopax.Element{p1, generic, inner, outer}, got)

	down := pattern.New(biopax.ClassComplex, "complex")
	down.Add(pattern.LinkedPE(pattern.Down), "complex", "linked")
	down.Add(pattern.Type(biopax.ClassProtein), "linked")
	got = nil
	for _, mt := range pattern.SearchFrom(outer, down) {
		got = append(got, mt.Get("linked"))
	}
	assert.ElementsMatch(t, []*biopax.Element{p1, p2, generic}, got)
}

func TestStateChangeChecks(t *testing.T) {
	toy := biopaxtest.NewToy()

	p := pattern.New(biopax.ClassProtein, "input")
	p.Add(pattern.ParticipatesInConv(blacklist.Input, nil), "input", "conv")
	p.Add(pattern.ConversionSide(pattern.OtherSide, nil, blacklist.Output), "input", "conv", "output")
	p.Add(pattern.Type(biopax.ClassProtein), "output")
	p.Add(pattern.ModificationChanged("phospho"), "input", "output")
	require.Len(t, pattern.SearchFrom(toy.ProteinA, p), 1)

	loc := pattern.New(biopax.ClassProtein, "input")
	loc.Add(pattern.ParticipatesInConv(blacklist.Input, nil), "input", "conv")
	loc.Add(pattern.ConversionSide(pattern.OtherSide, nil, blacklist.Output), "input", "conv", "output")
	loc.Add(pattern.LocationChanged(), "input", "output")
	assert.Empty(t, pattern.SearchFrom(toy.ProteinA, loc))
}

func TestMatch_String(t *testing.T) {
	toy := biopaxtest.NewToy()
	ms := pattern.SearchFrom(toy.KinaseRef, controllerToInput(nil))
	require.NotEmpty(t, ms)
	assert.Contains(t, ms[0].String(), "controller ER=urn:ref:kinase")
	assert.Nil(t, ms[0].Get("unknown"))
	assert.Len(t, ms[0].GetAll("Control", "unknown", "Conversion"), 2)
}
