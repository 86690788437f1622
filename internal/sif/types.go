// internal/sif/types.go
package sif

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownType is returned when a tag does not name a registered type.
var ErrUnknownType = errors.New("sif: unknown interaction type")

// Type is a kind of binary relation. The tag is unique across types and is
// both the serialized token and part of an interaction's identity.
type Type struct {
	Tag         string
	Directed    bool
	Description string
}

func (t Type) String() string { return t.Tag }

var (
	ControlsStateChangeOf = Type{"controls-state-change-of", true,
		"First protein controls a reaction that changes the state of the second protein."}
	ControlsPhosphorylationOf = Type{"controls-phosphorylation-of", true,
		"First protein controls a reaction that changes the phosphorylation status of the second protein."}
	ControlsTransportOf = Type{"controls-transport-of", true,
		"First protein controls a reaction that changes the cellular location of the second protein."}
	ControlsExpressionOf = Type{"controls-expression-of", true,
		"First protein controls a conversion or a template reaction that changes the expression of the second protein."}
	CatalysisPrecedes = Type{"catalysis-precedes", true,
		"First protein controls a reaction whose output molecule is input to another reaction controlled by the second protein."}
	InComplexWith = Type{"in-complex-with", false,
		"Proteins are members of the same complex."}
	InteractsWith = Type{"interacts-with", false,
		"Proteins are participants of the same molecular interaction."}
	NeighborOf = Type{"neighbor-of", false,
		"Proteins are participants or controllers of the same interaction."}
	ConsumptionControlledBy = Type{"consumption-controlled-by", true,
		"The small molecule is consumed by a reaction that is controlled by a protein."}
	ControlsProductionOf = Type{"controls-production-of", true,
		"The protein controls a reaction of which the small molecule is an output."}
	ControlsTransportOfChemical = Type{"controls-transport-of-chemical", true,
		"The protein controls a reaction that changes the cellular location of the small molecule."}
	ChemicalAffects = Type{"chemical-affects", true,
		"A small molecule has an effect on the protein state."}
	ReactsWith = Type{"reacts-with", false,
		"Small molecules are input to a biochemical reaction."}
	UsedToProduce = Type{"used-to-produce", true,
		"A reaction consumes a small molecule to produce another small molecule."}
)

// registry lists every type in declaration order.
var registry = []Type{
	ControlsStateChangeOf,
	ControlsPhosphorylationOf,
	ControlsTransportOf,
	ControlsExpressionOf,
	CatalysisPrecedes,
	InComplexWith,
	InteractsWith,
	NeighborOf,
	ConsumptionControlledBy,
	ControlsProductionOf,
	ControlsTransportOfChemical,
	ChemicalAffects,
	ReactsWith,
	UsedToProduce,
}

var byTag = func() map[string]Type {
	m := make(map[string]Type, len(registry))
	for _, t := range registry {
		m[t.Tag] = t
	}
	return m
}()

// Types returns every registered type.
func Types() []Type { return append([]Type(nil), registry...) }

// ParseType looks a type up by tag, case-insensitively. Underscores are
// accepted in place of dashes so enum-style names work too.
func ParseType(tag string) (Type, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if t, ok := byTag[norm]; ok {
		return t, nil
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, tag)
}

// ParseTypes parses a list of tags. An empty list yields nil.
func ParseTypes(tags []string) ([]Type, error) {
	var out []Type
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		t, err := ParseType(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
