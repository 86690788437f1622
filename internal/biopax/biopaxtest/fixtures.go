// internal/biopax/biopaxtest/fixtures.go
package biopaxtest

import "github.com/xkilldash9x/sifminer/internal/biopax"

// Toy is a small phosphorylation model:
//
//	ATP + Protein_A -> ADP + Protein_A_phosphorylated, catalysed by Kinase_K
//
// inside a single pathway. Element fields are exposed so tests can assert on
// evidence sets.
type Toy struct {
	Model *biopax.Model

	KinaseRef, ProteinARef, ATPRef, ADPRef *biopax.Element
	Kinase, ProteinA, ProteinAP, ATP, ADP  *biopax.Element
	Reaction, Catalysis, Pathway           *biopax.Element
}

const (
	KinaseID   = "KINK"
	ProteinAID = "PROTA"
	ATPID      = "CHEBI:15422"
	ADPID      = "CHEBI:16761"
	GTPID      = "CHEBI:15996"
	GDPID      = "CHEBI:17552"
)

var phospho = biopax.Feature{Kind: "modification", Term: "O-phospho-L-serine"}

// NewToy builds the phosphorylation model.
func NewToy() *Toy {
	m := biopax.NewModel()
	t := &Toy{Model: m}

	t.KinaseRef = m.MustAdd(biopax.ClassProteinReference, "urn:ref:kinase",
		biopax.WithDisplayName("Kinase_K"),
		biopax.WithXrefs(
			biopax.Xref{Type: biopax.XrefUnification, DB: "HGNC Symbol", ID: KinaseID},
			biopax.Xref{Type: biopax.XrefRelationship, DB: "UniProt", ID: "P00001"},
		))
	t.ProteinARef = m.MustAdd(biopax.ClassProteinReference, "urn:ref:prota",
		biopax.WithDisplayName("Protein_A"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefUnification, DB: "HGNC Symbol", ID: ProteinAID}))
	t.ATPRef = m.MustAdd(biopax.ClassSmallMoleculeReference, "urn:ref:atp",
		biopax.WithDisplayName("ATP"),
		biopax.WithNames("adenosine triphosphate"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefUnification, DB: "ChEBI", ID: ATPID}))
	t.ADPRef = m.MustAdd(biopax.ClassSmallMoleculeReference, "urn:ref:adp",
		biopax.WithDisplayName("ADP"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefUnification, DB: "ChEBI", ID: ADPID}))

	t.Kinase = m.MustAdd(biopax.ClassProtein, "urn:pe:kinase",
		biopax.WithDisplayName("Kinase_K"), biopax.WithEntityReference(t.KinaseRef))
	t.ProteinA = m.MustAdd(biopax.ClassProtein, "urn:pe:prota",
		biopax.WithDisplayName("Protein_A"), biopax.WithEntityReference(t.ProteinARef))
	t.ProteinAP = m.MustAdd(biopax.ClassProtein, "urn:pe:prota-p",
		biopax.WithDisplayName("Protein_A_phosphorylated"),
		biopax.WithEntityReference(t.ProteinARef),
		biopax.WithFeatures(phospho))
	t.ATP = m.MustAdd(biopax.ClassSmallMolecule, "urn:pe:atp",
		biopax.WithDisplayName("ATP"), biopax.WithEntityReference(t.ATPRef))
	t.ADP = m.MustAdd(biopax.ClassSmallMolecule, "urn:pe:adp",
		biopax.WithDisplayName("ADP"), biopax.WithEntityReference(t.ADPRef))

	t.Reaction = m.MustAdd(biopax.ClassBiochemicalReaction, "urn:rxn:phos",
		biopax.WithDisplayName("Protein_A phosphorylation"),
		biopax.WithDataSources("Reactome"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefPublication, DB: "PubMed", ID: "12345"}),
		biopax.WithLeft(t.ATP, t.ProteinA),
		biopax.WithRight(t.ADP, t.ProteinAP),
		biopax.WithDirection(biopax.DirectionLeftToRight))
	t.Catalysis = m.MustAdd(biopax.ClassCatalysis, "urn:ctrl:cat",
		biopax.WithDataSources("Reactome"),
		biopax.WithControlType("ACTIVATION"),
		biopax.WithControllers(t.Kinase),
		biopax.WithControlled(t.Reaction))
	t.Pathway = m.MustAdd(biopax.ClassPathway, "urn:pw:signal",
		biopax.WithDisplayName("Signalling"),
		biopax.WithPathwayComponents(t.Reaction, t.Catalysis))
	return t
}

// AddSecondPhosphorylation adds GTP + Protein_A -> GDP + Protein_A_phosphorylated,
// catalysed by the same kinase through a separate control. It returns the new
// reaction and control.
func (t *Toy) AddSecondPhosphorylation() (reaction, control *biopax.Element) {
	m := t.Model
	gtpRef := m.MustAdd(biopax.ClassSmallMoleculeReference, "urn:ref:gtp",
		biopax.WithDisplayName("GTP"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefUnification, DB: "ChEBI", ID: GTPID}))
	gdpRef := m.MustAdd(biopax.ClassSmallMoleculeReference, "urn:ref:gdp",
		biopax.WithDisplayName("GDP"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefUnification, DB: "ChEBI", ID: GDPID}))
	gtp := m.MustAdd(biopax.ClassSmallMolecule, "urn:pe:gtp", biopax.WithEntityReference(gtpRef))
	gdp := m.MustAdd(biopax.ClassSmallMolecule, "urn:pe:gdp", biopax.WithEntityReference(gdpRef))

	reaction = m.MustAdd(biopax.ClassBiochemicalReaction, "urn:rxn:phos2",
		biopax.WithDataSources("KEGG"),
		biopax.WithXrefs(biopax.Xref{Type: biopax.XrefPublication, DB: "PubMed", ID: "67890"}),
		biopax.WithLeft(gtp, t.ProteinA),
		biopax.WithRight(gdp, t.ProteinAP),
		biopax.WithDirection(biopax.DirectionLeftToRight))
	control = m.MustAdd(biopax.ClassCatalysis, "urn:ctrl:cat2",
		biopax.WithControllers(t.Kinase),
		biopax.WithControlled(reaction))
	return reaction, control
}
