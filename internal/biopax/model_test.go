// internal/biopax/model_test.go
package biopax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
)

func TestClass_IsA(t *testing.T) {
	tests := []struct {
		class, super biopax.Class
		want         bool
	}{
		{biopax.ClassProtein, biopax.ClassPhysicalEntity, true},
		{biopax.ClassProtein, biopax.ClassSequenceEntity, true},
		{biopax.ClassSmallMolecule, biopax.ClassSequenceEntity, false},
		{biopax.ClassCatalysis, biopax.ClassControl, true},
		{biopax.ClassTransportWithBiochemicalReaction, biopax.ClassConversion, true},
		{biopax.ClassTemplateReaction, biopax.ClassConversion, false},
		{biopax.ClassProteinReference, biopax.ClassSequenceEntityReference, true},
		{biopax.ClassSmallMoleculeReference, biopax.ClassSequenceEntityReference, false},
	}
	for _, tt := range tests {
		t.Run(tt.class.String()+"/"+tt.super.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.class.IsA(tt.super))
		})
	}
}

func TestParseClass(t *testing.T) {
	assert.Equal(t, biopax.ClassBiochemicalReaction, biopax.ParseClass("biochemicalReaction"))
	assert.Equal(t, biopax.ClassUnknown, biopax.ParseClass("Gene"))
	for _, c := range biopax.Classes() {
		assert.Equal(t, c, biopax.ParseClass(c.String()))
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, biopax.DirectionLeftToRight, biopax.ParseDirection("LEFT-TO-RIGHT"))
	assert.Equal(t, biopax.DirectionRightToLeft, biopax.ParseDirection("right_to_left"))
	assert.Equal(t, biopax.DirectionReversible, biopax.ParseDirection("REVERSIBLE"))
	assert.Equal(t, biopax.DirectionUnset, biopax.ParseDirection(""))
}

func TestModel_BackReferences(t *testing.T) {
	toy := biopaxtest.NewToy()

	assert.ElementsMatch(t, []*biopax.Element{toy.ProteinA, toy.ProteinAP}, toy.ProteinARef.EntityReferenceOf())
	assert.Equal(t, []*biopax.Element{toy.Reaction}, toy.ATP.ParticipantOf())
	assert.Equal(t, []*biopax.Element{toy.Catalysis}, toy.Kinase.ControllerOf())
	assert.Equal(t, []*biopax.Element{toy.Catalysis}, toy.Reaction.ControlledOf())
	assert.Equal(t, []*biopax.Element{toy.Pathway}, toy.Reaction.PathwayComponentOf())
	assert.ElementsMatch(t, []*biopax.Element{toy.Catalysis}, toy.Kinase.Interactions())
	assert.ElementsMatch(t,
		[]*biopax.Element{toy.ATP, toy.ProteinA, toy.ADP, toy.ProteinAP},
		toy.Reaction.Participants())
}

func TestModel_AddRejectsDuplicates(t *testing.T) {
	m := biopax.NewModel()
	_, err := m.Add(biopax.ClassProtein, "urn:p")
	require.NoError(t, err)

	_, err = m.Add(biopax.ClassProtein, "urn:p")
	assert.Error(t, err)

	_, err = m.Add(biopax.ClassProtein, "")
	assert.Error(t, err)
}

func TestModel_ObjectsIncludesSubclassesSorted(t *testing.T) {
	toy := biopaxtest.NewToy()

	pes := toy.Model.Objects(biopax.ClassPhysicalEntity)
	require.Len(t, pes, 5)
	for i := 1; i < len(pes); i++ {
		assert.Less(t, pes[i-1].URI(), pes[i].URI())
	}
	assert.Len(t, toy.Model.Objects(biopax.ClassSmallMoleculeReference), 2)
	assert.Len(t, toy.Model.Objects(biopax.ClassInteraction), 2)
}

func TestElement_Names(t *testing.T) {
	m := biopax.NewModel()
	e := m.MustAdd(biopax.ClassSmallMolecule, "urn:sm",
		biopax.WithStandardName("water"),
		biopax.WithNames("H2O", "water", "oxidane"))

	assert.Equal(t, []string{"H2O", "oxidane", "water"}, e.AllNames())
	assert.Equal(t, "water", e.BestName())
}
