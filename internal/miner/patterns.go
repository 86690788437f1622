// internal/miner/patterns.go
package miner

import (
	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/pattern"
)

// Pattern construction. Labels are shared between the builders below so the
// miner table can refer to them by name.
const (
	lControllerER       = "controller ER"
	lControllerSimplePE = "controller simple PE"
	lControllerPE       = "controller PE"
	lControl            = "Control"
	lConversion         = "Conversion"
	lInputPE            = "input PE"
	lInputSimplePE      = "input simple PE"
	lChangedER          = "changed ER"
	lOutputPE           = "output PE"
	lOutputSimplePE     = "output simple PE"
)

// controllerHead anchors a pattern at an entity reference and walks to the
// conversions controlled by any physical entity linked to it.
func controllerHead(start biopax.Class) *pattern.Pattern {
	p := pattern.New(start, lControllerER)
	p.Add(pattern.Path(pattern.ERToPE), lControllerER, lControllerSimplePE)
	p.Add(pattern.LinkedPE(pattern.Up), lControllerSimplePE, lControllerPE)
	p.Add(pattern.Path(pattern.ControllerOf), lControllerPE, lControl)
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), lControl, lConversion)
	return p
}

// stateChangeTail binds an input of conv whose entity reference reappears
// with a different physical entity on the other side.
func stateChangeTail(p *pattern.Pattern, bl *blacklist.Blacklist, conv string, class biopax.Class) {
	p.Add(pattern.ConversionParticipant(blacklist.Input, bl), conv, lInputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lInputPE, lInputSimplePE)
	p.Add(pattern.Type(class), lInputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lInputSimplePE, lChangedER)
	p.Add(pattern.ConversionSide(pattern.OtherSide, bl, blacklist.Output), lInputPE, conv, lOutputPE)
	p.Add(pattern.Equality(false), lInputPE, lOutputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lOutputPE, lOutputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lOutputSimplePE, lChangedER)
	p.Add(pattern.Equality(false), lInputSimplePE, lOutputSimplePE)
}

func controlsStateChange(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controllerHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lControllerER)
	stateChangeTail(p, bl, lConversion, biopax.ClassSequenceEntity)
	p.Add(pattern.Equality(false), lControllerER, lChangedER)
	return p
}

func controlsStateChangeButIsParticipant(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controllerHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.ParticipantER(), lConversion, lControllerER)
	stateChangeTail(p, bl, lConversion, biopax.ClassSequenceEntity)
	p.Add(pattern.Equality(false), lControllerER, lChangedER)
	return p
}

func controlsPhosphorylation(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controlsStateChange(bl)
	p.Add(pattern.ModificationChanged("phospho"), lInputSimplePE, lOutputSimplePE)
	return p
}

func controlsTransport(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controlsStateChange(bl)
	p.Add(pattern.LocationChanged(), lInputPE, lOutputPE)
	return p
}

func controlsTransportOfChemical(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controllerHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lControllerER)
	stateChangeTail(p, bl, lConversion, biopax.ClassSmallMolecule)
	p.Add(pattern.LocationChanged(), lInputSimplePE, lOutputSimplePE)
	return p
}

func controlsStateChangeThroughDegradation(bl *blacklist.Blacklist) *pattern.Pattern {
	p := pattern.New(biopax.ClassSequenceEntityReference, lControllerER)
	p.Add(pattern.Path(pattern.ERToPE), lControllerER, lControllerSimplePE)
	p.Add(pattern.LinkedPE(pattern.Up), lControllerSimplePE, lControllerPE)
	p.Add(pattern.Path(pattern.ControllerOf), lControllerPE, lControl)
	p.Add(pattern.PathTo(biopax.ClassDegradation, pattern.Controlled), lControl, lConversion)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lControllerER)
	p.Add(pattern.Empty(pattern.ConversionParticipant(blacklist.Output, bl)), lConversion)
	p.Add(pattern.ConversionParticipant(blacklist.Input, bl), lConversion, lInputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lInputPE, lInputSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lInputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lInputSimplePE, lChangedER)
	p.Add(pattern.Equality(false), lControllerER, lChangedER)
	return p
}

const (
	lUpperControllerER       = "upper controller ER"
	lUpperControllerSimplePE = "upper controller simple PE"
	lUpperControllerPE       = "upper controller PE"
	lUpperControl            = "upper Control"
	lUpperConversion         = "upper Conversion"
	lLinkerPE                = "linker PE"
)

// upperHead walks from a protein to the small molecules produced by the
// conversions it controls.
func upperHead(bl *blacklist.Blacklist) *pattern.Pattern {
	p := pattern.New(biopax.ClassSequenceEntityReference, lUpperControllerER)
	p.Add(pattern.Path(pattern.ERToPE), lUpperControllerER, lUpperControllerSimplePE)
	p.Add(pattern.LinkedPE(pattern.Up), lUpperControllerSimplePE, lUpperControllerPE)
	p.Add(pattern.Path(pattern.ControllerOf), lUpperControllerPE, lUpperControl)
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), lUpperControl, lUpperConversion)
	p.Add(pattern.NOT(pattern.ParticipantER()), lUpperConversion, lUpperControllerER)
	p.Add(pattern.ConversionParticipant(blacklist.Output, bl), lUpperConversion, lLinkerPE)
	p.Add(pattern.Type(biopax.ClassSmallMolecule), lLinkerPE)
	return p
}

func controlsStateChangeThroughControllerSmallMolecule(bl *blacklist.Blacklist) *pattern.Pattern {
	p := upperHead(bl)
	p.Add(pattern.LinkedPE(pattern.Up), lLinkerPE, lControllerPE)
	p.Add(pattern.Path(pattern.ControllerOf), lControllerPE, lControl)
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), lControl, lConversion)
	p.Add(pattern.Equality(false), lUpperConversion, lConversion)
	stateChangeTail(p, bl, lConversion, biopax.ClassSequenceEntity)
	p.Add(pattern.Equality(false), lUpperControllerER, lChangedER)
	return p
}

func controlsStateChangeThroughBindingSmallMolecule(bl *blacklist.Blacklist) *pattern.Pattern {
	p := upperHead(bl)
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lLinkerPE, lConversion)
	p.Add(pattern.Equality(false), lUpperConversion, lConversion)
	// The small molecule is consumed, so it must not come out again.
	p.Add(pattern.NOT(pattern.ConversionSide(pattern.OtherSide, nil, blacklist.Output)), lLinkerPE, lConversion, lLinkerPE)
	p.Add(pattern.ConversionSide(pattern.SameSide, bl, blacklist.Input), lLinkerPE, lConversion, lInputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lInputPE, lInputSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lInputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lInputSimplePE, lChangedER)
	p.Add(pattern.ConversionSide(pattern.OtherSide, bl, blacklist.Output), lInputPE, lConversion, lOutputPE)
	p.Add(pattern.Equality(false), lInputPE, lOutputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lOutputPE, lOutputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lOutputSimplePE, lChangedER)
	p.Add(pattern.Equality(false), lInputSimplePE, lOutputSimplePE)
	p.Add(pattern.Equality(false), lUpperControllerER, lChangedER)
	return p
}

const (
	lTemplateReaction = "TempReac"
	lProductPE        = "product PE"
	lProductSimplePE  = "product simple PE"
	lProductER        = "product ER"
)

func controlsExpression(_ *blacklist.Blacklist) *pattern.Pattern {
	p := pattern.New(biopax.ClassSequenceEntityReference, lControllerER)
	p.Add(pattern.Path(pattern.ERToPE), lControllerER, lControllerSimplePE)
	p.Add(pattern.LinkedPE(pattern.Up), lControllerSimplePE, lControllerPE)
	p.Add(pattern.Path(pattern.ControllerOf), lControllerPE, lControl)
	p.Add(pattern.PathTo(biopax.ClassTemplateReaction, pattern.Controlled), lControl, lTemplateReaction)
	p.Add(pattern.NOT(pattern.ParticipantER()), lTemplateReaction, lControllerER)
	p.Add(pattern.Path(pattern.Product), lTemplateReaction, lProductPE)
	p.Add(pattern.LinkedPE(pattern.Down), lProductPE, lProductSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lProductSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lProductSimplePE, lProductER)
	p.Add(pattern.Equality(false), lControllerER, lProductER)
	return p
}

// controlsExpressionWithConv covers conversions that stand in for
// expression: nothing goes in, the product comes out.
func controlsExpressionWithConv(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controllerHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lControllerER)
	p.Add(pattern.Empty(pattern.ConversionParticipant(blacklist.Input, nil)), lConversion)
	p.Add(pattern.ConversionParticipant(blacklist.Output, bl), lConversion, lProductPE)
	p.Add(pattern.LinkedPE(pattern.Down), lProductPE, lProductSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lProductSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lProductSimplePE, lProductER)
	p.Add(pattern.Equality(false), lControllerER, lProductER)
	return p
}

const (
	lFirstER          = "first ER"
	lFirstSimplePE    = "first simple PE"
	lFirstController  = "first controller"
	lFirstControl     = "first Control"
	lFirstConversion  = "first Conversion"
	lSecondConversion = "second Conversion"
	lSecondControl    = "second Control"
	lSecondController = "second controller"
	lSecondSimplePE   = "second simple PE"
	lSecondER         = "second ER"
)

func catalysisPrecedes(bl *blacklist.Blacklist) *pattern.Pattern {
	p := pattern.New(biopax.ClassSequenceEntityReference, lFirstER)
	p.Add(pattern.Path(pattern.ERToPE), lFirstER, lFirstSimplePE)
	p.Add(pattern.LinkedPE(pattern.Up), lFirstSimplePE, lFirstController)
	p.Add(pattern.Path(pattern.ControllerOf), lFirstController, lFirstControl)
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), lFirstControl, lFirstConversion)
	p.Add(pattern.ConversionParticipant(blacklist.Output, bl), lFirstConversion, lLinkerPE)
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lLinkerPE, lSecondConversion)
	p.Add(pattern.Equality(false), lFirstConversion, lSecondConversion)
	p.Add(pattern.PathTo(biopax.ClassControl, pattern.ControlledOf), lSecondConversion, lSecondControl)
	p.Add(pattern.Path(pattern.Controller), lSecondControl, lSecondController)
	p.Add(pattern.LinkedPE(pattern.Down), lSecondController, lSecondSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lSecondSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lSecondSimplePE, lSecondER)
	p.Add(pattern.Equality(false), lFirstER, lSecondER)
	return p
}

const (
	lProtein1    = "Protein 1"
	lSimplePE1   = "simple PE 1"
	lPE1         = "PE 1"
	lComplex     = "Complex"
	lInteraction = "Interaction"
	lPE2         = "PE 2"
	lSimplePE2   = "simple PE 2"
	lProtein2    = "Protein 2"
)

// pairHead walks from a reference to every physical entity linked to it.
func pairHead(start biopax.Class) *pattern.Pattern {
	p := pattern.New(start, lProtein1)
	p.Add(pattern.Path(pattern.ERToPE), lProtein1, lSimplePE1)
	p.Add(pattern.LinkedPE(pattern.Up), lSimplePE1, lPE1)
	return p
}

// pairTail binds a second reference of class through a simple entity.
func pairTail(p *pattern.Pattern, from string, class biopax.Class) {
	p.Add(pattern.LinkedPE(pattern.Down), from, lSimplePE2)
	p.Add(pattern.Type(class), lSimplePE2)
	p.Add(pattern.Equality(false), lSimplePE1, lSimplePE2)
	p.Add(pattern.Path(pattern.PEToER), lSimplePE2, lProtein2)
	p.Add(pattern.Equality(false), lProtein1, lProtein2)
}

func inComplexWith(_ *blacklist.Blacklist) *pattern.Pattern {
	p := pairHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.PathTo(biopax.ClassComplex, pattern.ComponentOf), lPE1, lComplex)
	pairTail(p, lComplex, biopax.ClassSequenceEntity)
	return p
}

func interactsWith(_ *blacklist.Blacklist) *pattern.Pattern {
	p := pairHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.PathTo(biopax.ClassMolecularInteraction, pattern.InteractionOf), lPE1, lInteraction)
	p.Add(pattern.Path(pattern.Participant), lInteraction, lPE2)
	p.Add(pattern.Equality(false), lPE1, lPE2)
	pairTail(p, lPE2, biopax.ClassSequenceEntity)
	return p
}

// neighborPEs lists the physical entities around an interaction: its own
// participants, those of the interactions it controls, and the controllers
// of the controls acting on it.
var neighborPEs = pattern.Step{Name: "Interaction/neighbor", Next: func(e *biopax.Element) []*biopax.Element {
	out := append([]*biopax.Element(nil), e.Participants()...)
	for _, c := range e.Controlled() {
		out = append(out, c.Participants()...)
	}
	for _, c := range e.ControlledOf() {
		out = append(out, c.Controllers()...)
	}
	return out
}}

func neighborOf(_ *blacklist.Blacklist) *pattern.Pattern {
	p := pairHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.Path(pattern.InteractionOf), lPE1, lInteraction)
	p.Add(pattern.Path(neighborPEs), lInteraction, lPE2)
	p.Add(pattern.Equality(false), lPE1, lPE2)
	pairTail(p, lPE2, biopax.ClassSequenceEntity)
	return p
}

const (
	lSMR       = "SMR"
	lSimpleSM  = "simple SM"
	lSM        = "SM"
	lSMR2      = "SMR 2"
	lSimpleSM2 = "simple SM 2"
	lSM2       = "SM 2"
)

// smallMoleculeHead anchors at a small molecule reference and binds the
// physical entities it is part of.
func smallMoleculeHead() *pattern.Pattern {
	p := pattern.New(biopax.ClassSmallMoleculeReference, lSMR)
	p.Add(pattern.Path(pattern.ERToPE), lSMR, lSimpleSM)
	p.Add(pattern.LinkedPE(pattern.Up), lSimpleSM, lSM)
	return p
}

func consumptionControlledBy(bl *blacklist.Blacklist) *pattern.Pattern {
	p := smallMoleculeHead()
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lSM, lConversion)
	p.Add(pattern.PathTo(biopax.ClassControl, pattern.ControlledOf), lConversion, lControl)
	p.Add(pattern.Path(pattern.Controller), lControl, lControllerPE)
	p.Add(pattern.LinkedPE(pattern.Down), lControllerPE, lControllerSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lControllerSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lControllerSimplePE, lControllerER)
	return p
}

func controlsProductionOf(bl *blacklist.Blacklist) *pattern.Pattern {
	p := controllerHead(biopax.ClassSequenceEntityReference)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lControllerER)
	p.Add(pattern.ConversionParticipant(blacklist.Output, bl), lConversion, lOutputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lOutputPE, lOutputSimplePE)
	p.Add(pattern.Type(biopax.ClassSmallMolecule), lOutputSimplePE)
	p.Add(pattern.NonUbique(bl, blacklist.Output), lOutputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lOutputSimplePE, lSMR)
	return p
}

func chemicalAffectsThroughBinding(bl *blacklist.Blacklist) *pattern.Pattern {
	p := smallMoleculeHead()
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lSM, lConversion)
	p.Add(pattern.ConversionSide(pattern.SameSide, bl, blacklist.Input), lSM, lConversion, lInputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lInputPE, lInputSimplePE)
	p.Add(pattern.Type(biopax.ClassSequenceEntity), lInputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lInputSimplePE, lChangedER)
	p.Add(pattern.ConversionSide(pattern.OtherSide, bl, blacklist.Output), lInputPE, lConversion, lOutputPE)
	p.Add(pattern.Type(biopax.ClassComplex), lOutputPE)
	p.Add(pattern.LinkedPE(pattern.Down), lOutputPE, lOutputSimplePE)
	p.Add(pattern.Path(pattern.PEToER), lOutputSimplePE, lChangedER)
	return p
}

func chemicalAffectsThroughControl(bl *blacklist.Blacklist) *pattern.Pattern {
	p := smallMoleculeHead()
	p.Add(pattern.NonUbique(bl, blacklist.NoContext), lSimpleSM)
	p.Add(pattern.Path(pattern.ControllerOf), lSM, lControl)
	p.Add(pattern.PathTo(biopax.ClassConversion, pattern.Controlled), lControl, lConversion)
	p.Add(pattern.NOT(pattern.ParticipantER()), lConversion, lSMR)
	stateChangeTail(p, bl, lConversion, biopax.ClassSequenceEntity)
	return p
}

func reactsWith(bl *blacklist.Blacklist) *pattern.Pattern {
	p := smallMoleculeHead()
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lSM, lConversion)
	p.Add(pattern.Type(biopax.ClassBiochemicalReaction), lConversion)
	p.Add(pattern.ConversionSide(pattern.SameSide, bl, blacklist.Input), lSM, lConversion, lSM2)
	p.Add(pattern.LinkedPE(pattern.Down), lSM2, lSimpleSM2)
	p.Add(pattern.Type(biopax.ClassSmallMolecule), lSimpleSM2)
	p.Add(pattern.Path(pattern.PEToER), lSimpleSM2, lSMR2)
	p.Add(pattern.Equality(false), lSMR, lSMR2)
	return p
}

func usedToProduce(bl *blacklist.Blacklist) *pattern.Pattern {
	p := smallMoleculeHead()
	p.Add(pattern.ParticipatesInConv(blacklist.Input, bl), lSM, lConversion)
	p.Add(pattern.ConversionSide(pattern.OtherSide, bl, blacklist.Output), lSM, lConversion, lSM2)
	p.Add(pattern.LinkedPE(pattern.Down), lSM2, lSimpleSM2)
	p.Add(pattern.Type(biopax.ClassSmallMolecule), lSimpleSM2)
	p.Add(pattern.Path(pattern.PEToER), lSimpleSM2, lSMR2)
	p.Add(pattern.Equality(false), lSMR, lSMR2)
	return p
}
