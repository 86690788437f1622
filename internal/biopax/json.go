// internal/biopax/json.go
package biopax

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonDocument is the on-disk fixture format. Relations are URI references
// and only the forward direction is stored; back references are rebuilt on load.
type jsonDocument struct {
	XMLBase  string        `json:"xmlBase,omitempty"`
	Elements []jsonElement `json:"elements"`
}

type jsonElement struct {
	URI               string    `json:"uri"`
	Class             string    `json:"class"`
	DisplayName       string    `json:"displayName,omitempty"`
	StandardName      string    `json:"standardName,omitempty"`
	Names             []string  `json:"names,omitempty"`
	Xrefs             []Xref    `json:"xrefs,omitempty"`
	DataSources       []string  `json:"dataSources,omitempty"`
	Features          []Feature `json:"features,omitempty"`
	CellularLocation  string    `json:"cellularLocation,omitempty"`
	Direction         string    `json:"direction,omitempty"`
	ControlType       string    `json:"controlType,omitempty"`
	EntityReference   string    `json:"entityReference,omitempty"`
	Components        []string  `json:"components,omitempty"`
	Members           []string  `json:"members,omitempty"`
	Left              []string  `json:"left,omitempty"`
	Right             []string  `json:"right,omitempty"`
	Participants      []string  `json:"participants,omitempty"`
	Products          []string  `json:"products,omitempty"`
	Controllers       []string  `json:"controllers,omitempty"`
	Controlled        []string  `json:"controlled,omitempty"`
	PathwayComponents []string  `json:"pathwayComponents,omitempty"`
}

// ReadJSON decodes a model from the JSON fixture format.
func ReadJSON(r io.Reader) (*Model, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("biopax: decoding json model: %w", err)
	}

	m := NewModel()
	m.SetXMLBase(doc.XMLBase)
	for _, je := range doc.Elements {
		class := ParseClass(je.Class)
		if class == ClassUnknown {
			return nil, fmt.Errorf("biopax: element %q has unknown class %q", je.URI, je.Class)
		}
		_, err := m.Add(class, je.URI,
			WithDisplayName(je.DisplayName),
			WithStandardName(je.StandardName),
			WithNames(je.Names...),
			WithXrefs(je.Xrefs...),
			WithDataSources(je.DataSources...),
			WithFeatures(je.Features...),
			WithCellularLocation(je.CellularLocation),
			WithDirection(ParseDirection(je.Direction)),
			WithControlType(je.ControlType),
		)
		if err != nil {
			return nil, err
		}
	}

	// Second pass: relations may point forward in the document.
	for _, je := range doc.Elements {
		e, _ := m.ByURI(je.URI)
		var opts []Option
		if je.EntityReference != "" {
			er, err := resolve(m, je.URI, je.EntityReference)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithEntityReference(er[0]))
		}
		for _, rel := range []struct {
			uris []string
			opt  func(...*Element) Option
		}{
			{je.Components, WithComponents},
			{je.Members, WithMembers},
			{je.Left, WithLeft},
			{je.Right, WithRight},
			{je.Participants, WithParticipants},
			{je.Products, WithProducts},
			{je.Controllers, WithControllers},
			{je.Controlled, WithControlled},
			{je.PathwayComponents, WithPathwayComponents},
		} {
			if len(rel.uris) == 0 {
				continue
			}
			targets, err := resolve(m, je.URI, rel.uris...)
			if err != nil {
				return nil, err
			}
			opts = append(opts, rel.opt(targets...))
		}
		m.Update(e, opts...)
	}
	return m, nil
}

func resolve(m *Model, from string, uris ...string) ([]*Element, error) {
	out := make([]*Element, 0, len(uris))
	for _, u := range uris {
		e, ok := m.ByURI(u)
		if !ok {
			return nil, fmt.Errorf("biopax: element %q references unknown URI %q", from, u)
		}
		out = append(out, e)
	}
	return out, nil
}

// WriteJSON encodes the model in the JSON fixture format, elements sorted by URI.
func WriteJSON(w io.Writer, m *Model) error {
	doc := jsonDocument{XMLBase: m.XMLBase()}
	for _, e := range m.All() {
		je := jsonElement{
			URI:               e.uri,
			Class:             e.class.String(),
			DisplayName:       e.displayName,
			StandardName:      e.standardName,
			Names:             e.names,
			Xrefs:             e.xrefs,
			DataSources:       e.dataSources,
			Features:          e.features,
			CellularLocation:  e.cellularLocation,
			Direction:         string(e.direction),
			ControlType:       e.controlType,
			Components:        uris(e.components),
			Members:           uris(e.members),
			Left:              uris(e.left),
			Right:             uris(e.right),
			Participants:      uris(e.participants),
			Products:          uris(e.products),
			Controllers:       uris(e.controllers),
			Controlled:        uris(e.controlled),
			PathwayComponents: uris(e.pathwayParts),
		}
		if e.entityReference != nil {
			je.EntityReference = e.entityReference.uri
		}
		doc.Elements = append(doc.Elements, je)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("biopax: encoding json model: %w", err)
	}
	return nil
}

func uris(es []*Element) []string {
	if len(es) == 0 {
		return nil
	}
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.uri
	}
	return out
}
