// internal/ubique/ubique_test.go
package ubique_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/biopax/biopaxtest"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/ubique"
)

type corpus struct {
	m *biopax.Model
	n int
}

func newCorpus() *corpus { return &corpus{m: biopax.NewModel()} }

// molecule adds a small molecule reference and one physical entity for it.
func (c *corpus) molecule(id, display string, names ...string) *biopax.Element {
	ref := c.m.MustAdd(biopax.ClassSmallMoleculeReference, "urn:ref:"+id,
		biopax.WithDisplayName(display), biopax.WithNames(names...))
	return c.m.MustAdd(biopax.ClassSmallMolecule, "urn:pe:"+id, biopax.WithEntityReference(ref))
}

func (c *corpus) react(in, out *biopax.Element) {
	c.n++
	c.m.MustAdd(biopax.ClassBiochemicalReaction, "urn:rxn:"+string(rune('a'+c.n)),
		biopax.WithLeft(in), biopax.WithRight(out), biopax.WithDirection(biopax.DirectionLeftToRight))
}

// hub builds ATP feeding four distinct products, and X1 feeding Y.
func hub() *corpus {
	c := newCorpus()
	atp := c.molecule("atp", "ATP")
	var xs []*biopax.Element
	for _, id := range []string{"x1", "x2", "x3", "x4"} {
		x := c.molecule(id, strings.ToUpper(id))
		c.react(atp, x)
		xs = append(xs, x)
	}
	c.react(xs[0], c.molecule("y", "Y"))
	return c
}

func generate(t *testing.T, m *biopax.Model, opts ubique.Options) *blacklist.Blacklist {
	t.Helper()
	opts.Logger = zaptest.NewLogger(t)
	bl, err := ubique.NewGenerator(opts).Generate(context.Background(), m)
	require.NoError(t, err)
	return bl
}

// -- Test Cases --

func TestGenerate_HubIsUbiquitous(t *testing.T) {
	c := hub()
	bl := generate(t, c.m, ubique.Options{Decider: blacklist.DefaultDecider{Threshold: 3, Ratio: 10}})

	assert.Equal(t, []string{"urn:ref:atp"}, bl.URIs())
	e, ok := bl.Entry("urn:ref:atp")
	require.True(t, ok)
	assert.Equal(t, 4, e.Score)
	assert.Equal(t, blacklist.Input, e.Context, "only ever consumed")
}

func TestGenerate_ContextsAtLowThreshold(t *testing.T) {
	c := hub()
	bl := generate(t, c.m, ubique.Options{Decider: blacklist.DefaultDecider{Threshold: 1, Ratio: 10}})

	ctx := func(uri string) blacklist.RelType {
		e, ok := bl.Entry(uri)
		require.True(t, ok, uri)
		return e.Context
	}
	assert.Equal(t, blacklist.Input, ctx("urn:ref:atp"))
	assert.Equal(t, blacklist.NoContext, ctx("urn:ref:x1"), "one producer and one product")
	assert.Equal(t, blacklist.Output, ctx("urn:ref:x2"))
	assert.Equal(t, blacklist.Output, ctx("urn:ref:y"))
}

func TestGenerate_ThresholdIsMonotonic(t *testing.T) {
	c := hub()
	var prev []string
	for th := 6; th >= 1; th-- {
		got := generate(t, c.m, ubique.Options{Decider: blacklist.DefaultDecider{Threshold: th, Ratio: 10}}).URIs()
		for _, uri := range prev {
			assert.Contains(t, got, uri, "lowering the threshold to %d dropped %s", th, uri)
		}
		prev = got
	}
	assert.Len(t, prev, 6)

	assert.Zero(t, generate(t, c.m, ubique.Options{}).Len(), "default threshold is far above this corpus")
}

func TestNeighborhoods_OverlapRemovedFromSnapshot(t *testing.T) {
	c := newCorpus()
	a, b := c.molecule("a", "A"), c.molecule("b", "B")
	c.react(a, b)
	c.react(b, a)
	c.react(a, c.molecule("z", "Z"))

	hoods, namer, err := ubique.NewGenerator(ubique.Options{}).Neighborhoods(context.Background(), c.m)
	require.NoError(t, err)
	ref, _ := c.m.ByURI("urn:ref:a")
	h := hoods[namer.Name(ref)]
	require.NotNil(t, h)

	assert.Len(t, h.Neighbors, 2)
	assert.Empty(t, h.Upstream)
	assert.Equal(t, map[string]struct{}{"z": {}}, h.Downstream)
	assert.Empty(t, hoods["b"].Upstream)
	assert.Empty(t, hoods["b"].Downstream)
}

func synonyms() *corpus {
	c := newCorpus()
	atp1 := c.molecule("atp1", "ATP", "adenosine triphosphate")
	atp2 := c.molecule("atp2", "Adenosine 5'-triphosphate", "adenosine triphosphate")
	c.react(atp1, c.molecule("p1", "P1"))
	c.react(atp2, c.molecule("p2", "P2"))
	return c
}

func TestClusterNamer(t *testing.T) {
	c := synonyms()
	n := ubique.NewClusterNamer(c.m, nil)

	r1, _ := c.m.ByURI("urn:ref:atp1")
	r2, _ := c.m.ByURI("urn:ref:atp2")
	assert.Equal(t, n.Name(r1), n.Name(r2))
	assert.Equal(t, "adenosine 5'-triphosphate", n.Name(r1))
	assert.Equal(t, map[string]string{
		"adenosine 5'-triphosphate": "adenosine 5'-triphosphate",
		"atp":                       "adenosine 5'-triphosphate",
	}, n.Proposals())

	curated := ubique.NewClusterNamer(c.m, map[string]string{"atp": "atp", "adenosine 5'-triphosphate": "atp"})
	assert.Equal(t, "atp", curated.Name(r1))
	assert.Equal(t, "atp", curated.Name(r2))

	assert.Equal(t, "atp", ubique.LowercaseNamer{}.Name(r1))
}

func TestGenerate_ClusteringMergesSynonyms(t *testing.T) {
	c := synonyms()
	decider := blacklist.DefaultDecider{Threshold: 2, Ratio: 10}

	assert.Zero(t, generate(t, c.m, ubique.Options{Decider: decider}).Len())

	bl := generate(t, c.m, ubique.Options{Decider: decider, ClusterNames: true})
	assert.Equal(t, []string{"urn:ref:atp1", "urn:ref:atp2"}, bl.URIs())
}

func TestGenerate_CurationGate(t *testing.T) {
	c := synonyms()
	path := filepath.Join(t.TempDir(), "names.tsv")
	opts := ubique.Options{
		Decider:      blacklist.DefaultDecider{Threshold: 2, Ratio: 10},
		ClusterNames: true,
		MappingFile:  path,
	}

	_, err := ubique.NewGenerator(opts).Generate(context.Background(), c.m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ubique.ErrMappingRequired))
	var mre *ubique.MappingRequiredError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, path, mre.Path)
	assert.Equal(t, 2, mre.Pending)

	proposal, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "adenosine 5'-triphosphate\tadenosine 5'-triphosphate\natp\tadenosine 5'-triphosphate\n", string(proposal))

	t.Run("partial mapping writes pending names", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("# curated\natp\tatp\n"), 0o644))
		_, err := ubique.NewGenerator(opts).Generate(context.Background(), c.m)
		require.True(t, errors.As(err, &mre))
		assert.Equal(t, path+".pending", mre.Path)
		assert.Equal(t, 1, mre.Pending)
	})

	t.Run("complete mapping runs", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("atp\tatp\nadenosine 5'-triphosphate\tatp\n"), 0o644))
		bl, err := ubique.NewGenerator(opts).Generate(context.Background(), c.m)
		require.NoError(t, err)
		assert.Equal(t, 2, bl.Len())
	})
}

func TestGenerate_NothingToCurate(t *testing.T) {
	toy := biopaxtest.NewToy()
	path := filepath.Join(t.TempDir(), "names.tsv")
	opts := ubique.Options{
		Decider:      blacklist.DefaultDecider{Threshold: 1, Ratio: 10},
		ClusterNames: true,
		MappingFile:  path,
	}

	bl, err := ubique.NewGenerator(opts).Generate(context.Background(), toy.Model)
	require.NoError(t, err)
	assert.Equal(t, 2, bl.Len())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no mapping file is written when no cluster is ambiguous")
}

func TestReadMapping_HashPrefixedNames(t *testing.T) {
	m, err := ubique.ReadMapping(strings.NewReader("# curated\n#5-atp\tatp\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"#5-atp": "atp"}, m)
}

func TestReadMapping_Malformed(t *testing.T) {
	_, err := ubique.ReadMapping(strings.NewReader("ok\tfine\nbroken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
