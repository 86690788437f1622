// internal/idfetch/idfetch_test.go
package idfetch_test

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
)

func TestConfigurable_XrefPriority(t *testing.T) {
	m := biopax.NewModel()
	ref := m.MustAdd(biopax.ClassProteinReference, "urn:ref:tp53",
		biopax.WithDisplayName("Cellular tumor antigen p53"),
		biopax.WithXrefs(
			biopax.Xref{Type: biopax.XrefRelationship, DB: "HGNC", ID: "HGNC:11998"},
			biopax.Xref{Type: biopax.XrefUnification, DB: "UniProt Knowledgebase", ID: "P04637"},
		))
	pe := m.MustAdd(biopax.ClassProtein, "urn:pe:tp53", biopax.WithEntityReference(ref))

	t.Run("hgnc id mapped through symbol table", func(t *testing.T) {
		f := idfetch.NewConfigurable(idfetch.Options{
			SeqDBs:  []string{"HGNC Symbol", "hgnc"},
			Symbols: idfetch.NewSymbolTable(map[string]string{"11998": "TP53"}),
		})
		assert.Equal(t, []string{"TP53"}, f.FetchID(ref))
		assert.Equal(t, []string{"TP53"}, f.FetchID(pe), "physical entities resolve through their reference")
	})

	t.Run("unmapped hgnc id is discarded not substituted", func(t *testing.T) {
		f := idfetch.NewConfigurable(idfetch.Options{SeqDBs: []string{"hgnc"}})
		assert.Empty(t, f.FetchID(ref))
	})

	t.Run("first database with a match wins", func(t *testing.T) {
		f := idfetch.NewConfigurable(idfetch.Options{SeqDBs: []string{"uniprot", "hgnc"}})
		assert.Equal(t, []string{"P04637"}, f.FetchID(ref))
	})

	t.Run("name fallback", func(t *testing.T) {
		f := idfetch.NewConfigurable(idfetch.Options{SeqDBs: []string{"ensembl"}, UseNameWhenNoDBMatch: true})
		assert.Equal(t, []string{"Cellular tumor antigen p53"}, f.FetchID(pe))
	})

	t.Run("uri fallback", func(t *testing.T) {
		f := idfetch.NewConfigurable(idfetch.Options{SeqDBs: []string{"ensembl"}, UseURIWhenNoDBMatch: true})
		assert.Equal(t, []string{"urn:ref:tp53"}, f.FetchID(pe))
	})
}

func TestConfigurable_ChemicalPrefixIsCaseInsensitive(t *testing.T) {
	toy := biopaxtest.NewToy()
	f := idfetch.NewConfigurable(idfetch.DefaultOptions())

	assert.Equal(t, []string{biopaxtest.ATPID}, f.FetchID(toy.ATP))
	assert.Equal(t, []string{biopaxtest.KinaseID}, f.FetchID(toy.Kinase))
	assert.Equal(t, []string{"Protein_A phosphorylation"}, f.FetchID(toy.Reaction))
}

func TestValidName_SkipsTruncated(t *testing.T) {
	m := biopax.NewModel()

	tests := []struct {
		name string
		opts []biopax.Option
		want string
	}{
		{"display", []biopax.Option{biopax.WithDisplayName("ATP"), biopax.WithStandardName("adenosine")}, "ATP"},
		{"truncated display", []biopax.Option{biopax.WithDisplayName("adenosine 5'-tri..."), biopax.WithStandardName("ATP")}, "ATP"},
		{"unicode ellipsis", []biopax.Option{biopax.WithDisplayName("long name…"), biopax.WithNames("b", "a…", "c")}, "b"},
		{"sorted names", []biopax.Option{biopax.WithNames("zeta", "alpha")}, "alpha"},
		{"all truncated", []biopax.Option{biopax.WithDisplayName("x..."), biopax.WithNames("y…")}, ""},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := m.MustAdd(biopax.ClassSmallMolecule, "urn:sm:"+string(rune('a'+i)), tt.opts...)
			assert.Equal(t, tt.want, idfetch.ValidName(e))
		})
	}
}

func TestReadSymbolTable(t *testing.T) {
	in := "# hgnc_id\tsymbol\nHGNC:5\tA1BG\r\n\n37133\tA1BG-AS1\textra\n"
	st, err := idfetch.ReadSymbolTable(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, st.Len())

	sym, ok := st.Symbol("5")
	assert.True(t, ok)
	assert.Equal(t, "A1BG", sym)
	sym, ok = st.Symbol("hgnc:37133")
	assert.True(t, ok)
	assert.Equal(t, "A1BG-AS1", sym)

	_, err = idfetch.ReadSymbolTable(strings.NewReader("lonely\n"))
	assert.Error(t, err)

	var nilTable *idfetch.SymbolTable
	_, ok = nilTable.Symbol("5")
	assert.False(t, ok)
}

func TestCache_MemoizesConcurrently(t *testing.T) {
	toy := biopaxtest.NewToy()
	var calls atomic.Int32
	base := idfetch.Func(func(e *biopax.Element) []string {
		calls.Add(1)
		return []string{e.URI()}
	})
	c := idfetch.NewCache(base)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range toy.Model.All() {
				assert.Equal(t, []string{e.URI()}, c.FetchID(e))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, toy.Model.Len(), c.Len())
	// Racing goroutines may compute an entry more than once.
	assert.LessOrEqual(t, int(calls.Load()), 16*toy.Model.Len())

	before := calls.Load()
	c.FetchID(toy.ATP)
	assert.Equal(t, before, calls.Load())
}
