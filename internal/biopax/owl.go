// internal/biopax/owl.go
package biopax

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// owlNode is a raw RDF resource before it is turned into an Element.
type owlNode struct {
	class    string
	uri      string
	literals map[string][]string
	refs     map[string][]string
}

func (n *owlNode) literal(prop string) string {
	if vs := n.literals[prop]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

type owlReader struct {
	base  string
	nodes map[string]*owlNode
	order []string
	blank int
}

// ReadOWL reads the subset of BioPAX Level 3 RDF/XML the miners need:
// physical entities, entity references, interactions, pathways, xrefs,
// provenance, features and vocabularies. Unknown classes and properties are
// skipped.
func ReadOWL(r io.Reader) (*Model, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("biopax: parsing rdf/xml: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "RDF" {
		return nil, fmt.Errorf("biopax: document root is not rdf:RDF")
	}

	rd := &owlReader{base: root.SelectAttrValue("xml:base", ""), nodes: make(map[string]*owlNode)}
	for _, child := range root.ChildElements() {
		if child.Tag == "Ontology" {
			continue
		}
		rd.parseNode(child)
	}
	return rd.build()
}

func (rd *owlReader) resolveRef(v string) string {
	if !strings.HasPrefix(v, "#") {
		return v
	}
	if strings.HasSuffix(rd.base, "#") || strings.HasSuffix(rd.base, "/") {
		return rd.base + v[1:]
	}
	return rd.base + v
}

func (rd *owlReader) parseNode(el *etree.Element) string {
	uri := el.SelectAttrValue("rdf:about", "")
	if uri == "" {
		if id := el.SelectAttrValue("rdf:ID", ""); id != "" {
			uri = rd.resolveRef("#" + id)
		}
	} else {
		uri = rd.resolveRef(uri)
	}
	if uri == "" {
		rd.blank++
		uri = "_:b" + strconv.Itoa(rd.blank)
	}

	n, ok := rd.nodes[uri]
	if !ok {
		n = &owlNode{uri: uri, literals: make(map[string][]string), refs: make(map[string][]string)}
		rd.nodes[uri] = n
		rd.order = append(rd.order, uri)
	}
	n.class = el.Tag

	for _, prop := range el.ChildElements() {
		if res := prop.SelectAttrValue("rdf:resource", ""); res != "" {
			n.refs[prop.Tag] = append(n.refs[prop.Tag], rd.resolveRef(res))
			continue
		}
		if nested := prop.ChildElements(); len(nested) > 0 {
			n.refs[prop.Tag] = append(n.refs[prop.Tag], rd.parseNode(nested[0]))
			continue
		}
		if text := strings.TrimSpace(prop.Text()); text != "" {
			n.literals[prop.Tag] = append(n.literals[prop.Tag], text)
		}
	}
	return uri
}

func (rd *owlReader) referenced(n *owlNode, prop string) []*owlNode {
	var out []*owlNode
	for _, u := range n.refs[prop] {
		if target, ok := rd.nodes[u]; ok {
			out = append(out, target)
		}
	}
	return out
}

func (rd *owlReader) xrefs(n *owlNode) []Xref {
	var out []Xref
	for _, x := range rd.referenced(n, "xref") {
		var t XrefType
		switch x.class {
		case "UnificationXref":
			t = XrefUnification
		case "RelationshipXref":
			t = XrefRelationship
		case "PublicationXref":
			t = XrefPublication
		default:
			continue
		}
		db, id := x.literal("db"), x.literal("id")
		if db == "" || id == "" {
			continue
		}
		out = append(out, Xref{Type: t, DB: db, ID: id})
	}
	return out
}

func (rd *owlReader) dataSources(n *owlNode) []string {
	var out []string
	for _, p := range rd.referenced(n, "dataSource") {
		name := p.literal("displayName")
		if name == "" {
			name = p.literal("standardName")
		}
		if name == "" {
			name = p.literal("name")
		}
		if name == "" {
			name = p.uri
		}
		out = append(out, name)
	}
	return out
}

func (rd *owlReader) vocabularyTerm(n *owlNode, prop string) string {
	for _, v := range rd.referenced(n, prop) {
		if t := v.literal("term"); t != "" {
			return t
		}
	}
	return ""
}

func (rd *owlReader) features(n *owlNode) []Feature {
	var out []Feature
	for _, f := range rd.referenced(n, "feature") {
		switch f.class {
		case "ModificationFeature":
			out = append(out, Feature{Kind: "modification", Term: rd.vocabularyTerm(f, "modificationType")})
		case "BindingFeature", "CovalentBindingFeature":
			out = append(out, Feature{Kind: "binding"})
		case "FragmentFeature":
			out = append(out, Feature{Kind: "fragment"})
		}
	}
	return out
}

var owlRelations = []struct {
	prop string
	opt  func(...*Element) Option
}{
	{"component", WithComponents},
	{"memberPhysicalEntity", WithMembers},
	{"memberEntityReference", WithMembers},
	{"left", WithLeft},
	{"right", WithRight},
	{"participant", WithParticipants},
	{"product", WithProducts},
	{"controller", WithControllers},
	{"controlled", WithControlled},
	{"pathwayComponent", WithPathwayComponents},
}

func (rd *owlReader) build() (*Model, error) {
	m := NewModel()
	m.SetXMLBase(rd.base)

	for _, uri := range rd.order {
		n := rd.nodes[uri]
		class := ParseClass(n.class)
		if class == ClassUnknown {
			continue
		}
		_, err := m.Add(class, uri,
			WithDisplayName(n.literal("displayName")),
			WithStandardName(n.literal("standardName")),
			WithNames(n.literals["name"]...),
			WithXrefs(rd.xrefs(n)...),
			WithDataSources(rd.dataSources(n)...),
			WithFeatures(rd.features(n)...),
			WithCellularLocation(rd.vocabularyTerm(n, "cellularLocation")),
			WithDirection(ParseDirection(n.literal("conversionDirection"))),
			WithControlType(n.literal("controlType")),
		)
		if err != nil {
			return nil, err
		}
	}

	for _, uri := range rd.order {
		e, ok := m.ByURI(uri)
		if !ok {
			continue
		}
		n := rd.nodes[uri]
		var opts []Option
		for _, ref := range n.refs["entityReference"] {
			if er, ok := m.ByURI(ref); ok {
				opts = append(opts, WithEntityReference(er))
				break
			}
		}
		for _, rel := range owlRelations {
			var targets []*Element
			for _, ref := range n.refs[rel.prop] {
				if t, ok := m.ByURI(ref); ok {
					targets = append(targets, t)
				}
			}
			if len(targets) > 0 {
				opts = append(opts, rel.opt(targets...))
			}
		}
		m.Update(e, opts...)
	}
	return m, nil
}
