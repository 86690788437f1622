// internal/miner/registry.go
package miner

import (
	"errors"
	"fmt"

	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// ErrUnknownMiner is returned by ByName for names not in the table.
var ErrUnknownMiner = errors.New("miner: unknown miner")

type entry struct {
	name        string
	description string
	typ         sif.Type
	labels      Labels
	construct   Constructor
}

var (
	stateChangeLabels = Labels{
		Source:    lControllerER,
		Target:    lChangedER,
		Mediators: []string{lControl, lConversion},
		SourcePEs: []string{lControllerSimplePE, lControllerPE},
		TargetPEs: []string{lInputPE, lInputSimplePE, lOutputPE, lOutputSimplePE},
	}
	upperStateChangeLabels = Labels{
		Source:    lUpperControllerER,
		Target:    lChangedER,
		Mediators: []string{lUpperControl, lUpperConversion, lControl, lConversion},
		SourcePEs: []string{lUpperControllerSimplePE, lUpperControllerPE},
		TargetPEs: []string{lInputPE, lInputSimplePE, lOutputPE, lOutputSimplePE},
	}
	pairLabels = func(mediator string) Labels {
		return Labels{
			Source:    lProtein1,
			Target:    lProtein2,
			Mediators: []string{mediator},
			SourcePEs: []string{lSimplePE1, lPE1},
			TargetPEs: []string{lSimplePE2},
		}
	}
)

// table is the full set of miners, in the order searches run them.
var table = []entry{
	{"controls-state-change-of", "Controller of a conversion changes the state of a protein.",
		sif.ControlsStateChangeOf, stateChangeLabels, controlsStateChange},
	{"controls-state-change-of-but-is-participant", "Controller is also a participant of the state-changing conversion.",
		sif.ControlsStateChangeOf, stateChangeLabels, controlsStateChangeButIsParticipant},
	{"controls-state-change-of-through-controller-small-molecule", "A protein produces a small molecule that controls a state change.",
		sif.ControlsStateChangeOf, upperStateChangeLabels, controlsStateChangeThroughControllerSmallMolecule},
	{"controls-state-change-of-through-binding-small-molecule", "A protein produces a small molecule that binds and changes another protein.",
		sif.ControlsStateChangeOf, upperStateChangeLabels, controlsStateChangeThroughBindingSmallMolecule},
	{"controls-state-change-of-through-degradation", "Controller of a degradation changes the state of the degraded protein.",
		sif.ControlsStateChangeOf, Labels{
			Source:    lControllerER,
			Target:    lChangedER,
			Mediators: []string{lControl, lConversion},
			SourcePEs: []string{lControllerSimplePE, lControllerPE},
			TargetPEs: []string{lInputPE, lInputSimplePE},
		}, controlsStateChangeThroughDegradation},
	{"controls-phosphorylation-of", "Controller of a conversion changes the phosphorylation of a protein.",
		sif.ControlsPhosphorylationOf, stateChangeLabels, controlsPhosphorylation},
	{"controls-transport-of", "Controller of a conversion changes the location of a protein.",
		sif.ControlsTransportOf, stateChangeLabels, controlsTransport},
	{"controls-transport-of-chemical", "Controller of a conversion changes the location of a small molecule.",
		sif.ControlsTransportOfChemical, Labels{
			Source:    lControllerER,
			Target:    lChangedER,
			Mediators: []string{lControl, lConversion},
			SourcePEs: []string{lControllerSimplePE, lControllerPE},
			TargetPEs: []string{lInputPE, lInputSimplePE, lOutputPE, lOutputSimplePE},
		}, controlsTransportOfChemical},
	{"controls-expression-of", "Controller of a template reaction controls the expression of its product.",
		sif.ControlsExpressionOf, Labels{
			Source:    lControllerER,
			Target:    lProductER,
			Mediators: []string{lControl, lTemplateReaction},
			SourcePEs: []string{lControllerSimplePE, lControllerPE},
			TargetPEs: []string{lProductPE, lProductSimplePE},
		}, controlsExpression},
	{"controls-expression-of-with-conversion", "Controller of an input-less conversion controls the expression of its product.",
		sif.ControlsExpressionOf, Labels{
			Source:    lControllerER,
			Target:    lProductER,
			Mediators: []string{lControl, lConversion},
			SourcePEs: []string{lControllerSimplePE, lControllerPE},
			TargetPEs: []string{lProductPE, lProductSimplePE},
		}, controlsExpressionWithConv},
	{"catalysis-precedes", "Output of one controlled conversion is input to another.",
		sif.CatalysisPrecedes, Labels{
			Source:    lFirstER,
			Target:    lSecondER,
			Mediators: []string{lFirstControl, lFirstConversion, lSecondConversion, lSecondControl},
			SourcePEs: []string{lFirstSimplePE, lFirstController},
			TargetPEs: []string{lSecondController, lSecondSimplePE},
		}, catalysisPrecedes},
	{"in-complex-with", "Proteins are members of the same complex.",
		sif.InComplexWith, pairLabels(lComplex), inComplexWith},
	{"interacts-with", "Proteins take part in the same molecular interaction.",
		sif.InteractsWith, pairLabels(lInteraction), interactsWith},
	{"neighbor-of", "Proteins take part in or control the same interaction.",
		sif.NeighborOf, pairLabels(lInteraction), neighborOf},
	{"consumption-controlled-by", "A small molecule is consumed by a conversion a protein controls.",
		sif.ConsumptionControlledBy, Labels{
			Source:    lSMR,
			Target:    lControllerER,
			Mediators: []string{lConversion, lControl},
			SourcePEs: []string{lSimpleSM, lSM},
			TargetPEs: []string{lControllerPE, lControllerSimplePE},
		}, consumptionControlledBy},
	{"controls-production-of", "A protein controls a conversion that produces a small molecule.",
		sif.ControlsProductionOf, Labels{
			Source:    lControllerER,
			Target:    lSMR,
			Mediators: []string{lControl, lConversion},
			SourcePEs: []string{lControllerSimplePE, lControllerPE},
			TargetPEs: []string{lOutputPE, lOutputSimplePE},
		}, controlsProductionOf},
	{"chemical-affects-through-binding", "A small molecule binds a protein into a complex.",
		sif.ChemicalAffects, Labels{
			Source:    lSMR,
			Target:    lChangedER,
			Mediators: []string{lConversion},
			SourcePEs: []string{lSimpleSM, lSM},
			TargetPEs: []string{lInputPE, lInputSimplePE, lOutputPE, lOutputSimplePE},
		}, chemicalAffectsThroughBinding},
	{"chemical-affects-through-control", "A small molecule controls a conversion that changes a protein.",
		sif.ChemicalAffects, Labels{
			Source:    lSMR,
			Target:    lChangedER,
			Mediators: []string{lControl, lConversion},
			SourcePEs: []string{lSimpleSM, lSM},
			TargetPEs: []string{lInputPE, lInputSimplePE, lOutputPE, lOutputSimplePE},
		}, chemicalAffectsThroughControl},
	{"reacts-with", "Small molecules are inputs to the same biochemical reaction.",
		sif.ReactsWith, Labels{
			Source:    lSMR,
			Target:    lSMR2,
			Mediators: []string{lConversion},
			SourcePEs: []string{lSimpleSM, lSM},
			TargetPEs: []string{lSM2, lSimpleSM2},
		}, reactsWith},
	{"used-to-produce", "A conversion consumes one small molecule to produce another.",
		sif.UsedToProduce, Labels{
			Source:    lSMR,
			Target:    lSMR2,
			Mediators: []string{lConversion},
			SourcePEs: []string{lSimpleSM, lSM},
			TargetPEs: []string{lSM2, lSimpleSM2},
		}, usedToProduce},
}

func (e entry) build(bl *blacklist.Blacklist) *SIFMiner {
	m := NewSIFMiner(e.name, e.description, e.typ, e.labels, e.construct)
	m.SetBlacklist(bl)
	return m
}

// Names lists every miner name in table order.
func Names() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.name
	}
	return out
}

// ForType lists the names of the miners producing t.
func ForType(t sif.Type) []string {
	var out []string
	for _, e := range table {
		if e.typ.Tag == t.Tag {
			out = append(out, e.name)
		}
	}
	return out
}

// ByName creates the named miner.
func ByName(name string, bl *blacklist.Blacklist) (*SIFMiner, error) {
	for _, e := range table {
		if e.name == name {
			return e.build(bl), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMiner, name)
}

// ForTypes creates the miners for the given types. No types means all.
func ForTypes(bl *blacklist.Blacklist, types ...sif.Type) []*SIFMiner {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t.Tag] = true
	}
	var out []*SIFMiner
	for _, e := range table {
		if len(want) == 0 || want[e.typ.Tag] {
			out = append(out, e.build(bl))
		}
	}
	return out
}

// All creates every miner.
func All(bl *blacklist.Blacklist) []*SIFMiner { return ForTypes(bl) }

// AsSIF adapts a miner list for sif.NewSearcher.
func AsSIF(ms []*SIFMiner) []sif.Miner {
	out := make([]sif.Miner, len(ms))
	for i, m := range ms {
		out[i] = m
	}
	return out
}
