// internal/biopax/reader_test.go
package biopax_test

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
)

const owlFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:bp="http://www.biopax.org/release/biopax-level3.owl#"
         xmlns:owl="http://www.w3.org/2002/07/owl#"
         xml:base="http://example.org/">
  <owl:Ontology rdf:about=""/>
  <bp:ProteinReference rdf:ID="ref_kinase">
    <bp:displayName rdf:datatype="http://www.w3.org/2001/XMLSchema#string">Kinase_K</bp:displayName>
    <bp:xref rdf:resource="#ux_kink"/>
  </bp:ProteinReference>
  <bp:UnificationXref rdf:ID="ux_kink">
    <bp:db>HGNC Symbol</bp:db>
    <bp:id>KINK</bp:id>
  </bp:UnificationXref>
  <bp:Protein rdf:ID="kinase">
    <bp:entityReference rdf:resource="#ref_kinase"/>
    <bp:displayName>Kinase_K</bp:displayName>
    <bp:cellularLocation>
      <bp:CellularLocationVocabulary rdf:ID="cytosol">
        <bp:term>cytosol</bp:term>
      </bp:CellularLocationVocabulary>
    </bp:cellularLocation>
  </bp:Protein>
  <bp:Protein rdf:ID="target_p">
    <bp:feature rdf:resource="#mod1"/>
  </bp:Protein>
  <bp:ModificationFeature rdf:ID="mod1">
    <bp:modificationType>
      <bp:SequenceModificationVocabulary rdf:ID="mv1">
        <bp:term>phosphorylation</bp:term>
      </bp:SequenceModificationVocabulary>
    </bp:modificationType>
  </bp:ModificationFeature>
  <bp:Protein rdf:ID="target"/>
  <bp:BiochemicalReaction rdf:ID="rxn">
    <bp:left rdf:resource="#target"/>
    <bp:right rdf:resource="#target_p"/>
    <bp:conversionDirection>LEFT-TO-RIGHT</bp:conversionDirection>
    <bp:dataSource rdf:resource="#reactome"/>
    <bp:xref rdf:resource="#pub1"/>
  </bp:BiochemicalReaction>
  <bp:Provenance rdf:ID="reactome">
    <bp:displayName>Reactome</bp:displayName>
  </bp:Provenance>
  <bp:PublicationXref rdf:ID="pub1">
    <bp:db>PubMed</bp:db>
    <bp:id>12345</bp:id>
  </bp:PublicationXref>
  <bp:Catalysis rdf:ID="cat">
    <bp:controller rdf:resource="#kinase"/>
    <bp:controlled rdf:resource="#rxn"/>
    <bp:controlType>ACTIVATION</bp:controlType>
  </bp:Catalysis>
</rdf:RDF>`

// -- Test Cases --

func TestReadOWL(t *testing.T) {
	m, err := biopax.ReadOWL(strings.NewReader(owlFixture))
	require.NoError(t, err)

	assert.Equal(t, "http://example.org/", m.XMLBase())
	assert.Equal(t, 6, m.Len(), "xrefs, vocabularies, features and provenance are not model elements")

	kinase, ok := m.ByURI("http://example.org/kinase")
	require.True(t, ok)
	require.NotNil(t, kinase.EntityReference())
	assert.Equal(t, "http://example.org/ref_kinase", kinase.EntityReference().URI())
	assert.Equal(t, "cytosol", kinase.CellularLocation())
	assert.Equal(t, []biopax.Xref{{Type: biopax.XrefUnification, DB: "HGNC Symbol", ID: "KINK"}},
		kinase.EntityReference().Xrefs())

	rxn, ok := m.ByURI("http://example.org/rxn")
	require.True(t, ok)
	assert.Equal(t, biopax.DirectionLeftToRight, rxn.Direction())
	assert.Equal(t, []string{"Reactome"}, rxn.DataSources())
	assert.Len(t, rxn.XrefsOf(biopax.XrefPublication), 1)
	require.Len(t, rxn.Right(), 1)
	assert.Equal(t, []biopax.Feature{{Kind: "modification", Term: "phosphorylation"}}, rxn.Right()[0].Features())

	cat, ok := m.ByURI("http://example.org/cat")
	require.True(t, ok)
	assert.Equal(t, "ACTIVATION", cat.ControlType())
	assert.Equal(t, []*biopax.Element{cat}, kinase.ControllerOf())
	assert.Equal(t, []*biopax.Element{cat}, rxn.ControlledOf())
}

func TestReadOWL_RejectsNonRDF(t *testing.T) {
	_, err := biopax.ReadOWL(strings.NewReader(`<root/>`))
	assert.Error(t, err)
}

func TestJSON_RoundTrip(t *testing.T) {
	toy := biopaxtest.NewToy()

	var buf bytes.Buffer
	require.NoError(t, biopax.WriteJSON(&buf, toy.Model))
	first := buf.String()

	m, err := biopax.ReadJSON(strings.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, toy.Model.Len(), m.Len())

	buf.Reset()
	require.NoError(t, biopax.WriteJSON(&buf, m))
	if diff := cmp.Diff(first, buf.String()); diff != "" {
		t.Errorf("json round trip mismatch (-want +got):\n%s", diff)
	}

	rxn, ok := m.ByURI("urn:rxn:phos")
	require.True(t, ok)
	assert.Len(t, rxn.ControlledOf(), 1)
}

func TestReadJSON_Errors(t *testing.T) {
	t.Run("unknown class", func(t *testing.T) {
		_, err := biopax.ReadJSON(strings.NewReader(`{"elements":[{"uri":"u","class":"Gene"}]}`))
		assert.ErrorContains(t, err, "unknown class")
	})
	t.Run("dangling reference", func(t *testing.T) {
		_, err := biopax.ReadJSON(strings.NewReader(`{"elements":[{"uri":"u","class":"Protein","entityReference":"missing"}]}`))
		assert.ErrorContains(t, err, "unknown URI")
	})
	t.Run("malformed", func(t *testing.T) {
		_, err := biopax.ReadJSON(strings.NewReader(`{`))
		assert.Error(t, err)
	})
}

func TestLoad_CompressedInputs(t *testing.T) {
	toy := biopaxtest.NewToy()
	var raw bytes.Buffer
	require.NoError(t, biopax.WriteJSON(&raw, toy.Model))

	dir := t.TempDir()

	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, err = bw.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, bw.Close())

	files := map[string][]byte{
		"model.json":    raw.Bytes(),
		"model.json.gz": gz.Bytes(),
		"model.json.br": br.Bytes(),
		"model.owl":     []byte(owlFixture),
	}
	for name, data := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, data, 0o644))
			m, err := biopax.Load(path)
			require.NoError(t, err)
			assert.Positive(t, m.Len())
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		path := filepath.Join(dir, "model.csv")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
		_, err := biopax.Load(path)
		assert.ErrorIs(t, err, biopax.ErrUnsupportedFormat)
	})
}
