// internal/reporting/extended.go
package reporting

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

const (
	edgeHeaderPrefix = "PARTICIPANT_A\tINTERACTION_TYPE\tPARTICIPANT_B"
	nodeHeader       = "PARTICIPANT\tPARTICIPANT_TYPE\tPARTICIPANT_NAME\tUNIFICATION_XREF\tRELATIONSHIP_XREF"
	multiSep         = ";"
)

// Column generates one extra column of the extended format.
type Column interface {
	Header() string
	Values(i *sif.Interaction) []string
}

// ColumnFunc adapts a function to Column.
type ColumnFunc struct {
	Name string
	Fn   func(i *sif.Interaction) []string
}

func (c ColumnFunc) Header() string                     { return c.Name }
func (c ColumnFunc) Values(i *sif.Interaction) []string { return c.Fn(i) }

// DataSourceColumn lists the data sources of the mediators.
var DataSourceColumn Column = ColumnFunc{"INTERACTION_DATA_SOURCE", func(i *sif.Interaction) []string {
	var out []string
	for _, m := range i.Mediators.Sorted() {
		out = append(out, m.DataSources()...)
	}
	return out
}}

// PubMedColumn lists the PubMed ids cited by the mediators.
var PubMedColumn Column = ColumnFunc{"INTERACTION_PUBMED_ID", func(i *sif.Interaction) []string {
	var out []string
	for _, m := range i.Mediators.Sorted() {
		for _, x := range m.XrefsOf(biopax.XrefPublication) {
			if strings.EqualFold(x.DB, "pubmed") && x.ID != "" {
				out = append(out, x.ID)
			}
		}
	}
	return out
}}

// PathwayNameColumn lists the names of the pathways containing a mediator,
// directly or through sub-pathways.
var PathwayNameColumn Column = ColumnFunc{"PATHWAY_NAMES", func(i *sif.Interaction) []string {
	seen := make(map[*biopax.Element]bool)
	var out []string
	var visit func(e *biopax.Element)
	visit = func(e *biopax.Element) {
		for _, pw := range e.PathwayComponentOf() {
			if seen[pw] {
				continue
			}
			seen[pw] = true
			if n := pw.BestName(); n != "" {
				out = append(out, n)
			}
			visit(pw)
		}
	}
	for _, m := range i.Mediators.Sorted() {
		visit(m)
	}
	return out
}}

// MediatorIDColumn lists the mediator URIs.
var MediatorIDColumn Column = ColumnFunc{"MEDIATOR_IDS", func(i *sif.Interaction) []string {
	return i.MediatorURIs()
}}

// DefaultColumns returns the standard extended columns.
func DefaultColumns() []Column {
	return []Column{DataSourceColumn, PubMedColumn, PathwayNameColumn, MediatorIDColumn}
}

// joinSorted deduplicates, sorts and joins values.
func joinSorted(values []string) string {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return strings.Join(out, multiSep)
}

// node aggregates what is known about one endpoint identifier.
type node struct {
	types, names, uxrefs, rxrefs []string
}

func (n *node) add(er *biopax.Element) {
	n.types = append(n.types, er.Class().String())
	if name := er.BestName(); name != "" {
		n.names = append(n.names, name)
	}
	for _, x := range er.XrefsOf(biopax.XrefUnification) {
		n.uxrefs = append(n.uxrefs, x.String())
	}
	for _, x := range er.XrefsOf(biopax.XrefRelationship) {
		n.rxrefs = append(n.rxrefs, x.String())
	}
}

// WriteExtended writes the edge section with the given columns, a blank
// line, then one line per distinct endpoint identifier.
func WriteExtended(w io.Writer, is []*sif.Interaction, cols ...Column) error {
	bw := bufio.NewWriter(w)

	header := edgeHeaderPrefix
	for _, c := range cols {
		header += "\t" + c.Header()
	}
	if _, err := fmt.Fprintln(bw, header); err != nil {
		return err
	}

	nodes := make(map[string]*node)
	nodeOf := func(id string) *node {
		n, ok := nodes[id]
		if !ok {
			n = &node{}
			nodes[id] = n
		}
		return n
	}

	for _, i := range is {
		var b strings.Builder
		b.WriteString(i.SourceID + "\t" + i.Type.Tag + "\t" + i.TargetID)
		for _, c := range cols {
			b.WriteString("\t" + joinSorted(c.Values(i)))
		}
		if _, err := fmt.Fprintln(bw, b.String()); err != nil {
			return err
		}

		src, tgt := nodeOf(i.SourceID), nodeOf(i.TargetID)
		for _, er := range i.SourceERs.Sorted() {
			src.add(er)
		}
		for _, er := range i.TargetERs.Sorted() {
			tgt.add(er)
		}
	}

	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(bw, nodeHeader); err != nil {
		return err
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		n := nodes[id]
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%s\n", id,
			joinSorted(n.types), joinSorted(n.names), joinSorted(n.uxrefs), joinSorted(n.rxrefs)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
