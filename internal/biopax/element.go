// internal/biopax/element.go
package biopax

import (
	"sort"
	"strings"
)

// XrefType distinguishes the kinds of cross-references.
type XrefType string

const (
	XrefUnification  XrefType = "unification"
	XrefRelationship XrefType = "relationship"
	XrefPublication  XrefType = "publication"
)

// Xref is a (db, id) cross-reference attached to an element.
type Xref struct {
	Type XrefType `json:"type"`
	DB   string   `json:"db"`
	ID   string   `json:"id"`
}

// String renders the xref as "db:id".
func (x Xref) String() string { return x.DB + ":" + x.ID }

// Direction is the conversion direction of a Conversion.
type Direction string

const (
	DirectionUnset       Direction = ""
	DirectionLeftToRight Direction = "LEFT_TO_RIGHT"
	DirectionRightToLeft Direction = "RIGHT_TO_LEFT"
	DirectionReversible  Direction = "REVERSIBLE"
)

// ParseDirection accepts both the BioPAX spelling (LEFT-TO-RIGHT) and the
// underscore form.
func ParseDirection(s string) Direction {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "LEFT_TO_RIGHT":
		return DirectionLeftToRight
	case "RIGHT_TO_LEFT":
		return DirectionRightToLeft
	case "REVERSIBLE":
		return DirectionReversible
	default:
		return DirectionUnset
	}
}

// Feature is an entity feature (modification, binding site) of a physical entity.
type Feature struct {
	Kind string `json:"kind"`
	Term string `json:"term"`
}

// Element is a node of the pathway graph. Forward references are set through
// Options; the matching back references are maintained on the other side at
// the same time, so an Element is consistent as soon as Add or Update returns.
// Elements are not to be modified once the model is handed to a search.
type Element struct {
	uri              string
	class            Class
	displayName      string
	standardName     string
	names            []string
	xrefs            []Xref
	dataSources      []string
	features         []Feature
	cellularLocation string
	direction        Direction
	controlType      string

	entityReference *Element
	components      []*Element
	members         []*Element
	left            []*Element
	right           []*Element
	participants    []*Element
	products        []*Element
	controllers     []*Element
	controlled      []*Element
	pathwayParts    []*Element

	entityReferenceOf  []*Element
	componentOf        []*Element
	memberOf           []*Element
	participantOf      []*Element
	controllerOf       []*Element
	controlledOf       []*Element
	pathwayComponentOf []*Element
}

func (e *Element) URI() string          { return e.uri }
func (e *Element) Class() Class         { return e.class }
func (e *Element) IsA(c Class) bool     { return e.class.IsA(c) }
func (e *Element) DisplayName() string  { return e.displayName }
func (e *Element) StandardName() string { return e.standardName }
func (e *Element) Names() []string      { return e.names }
func (e *Element) Xrefs() []Xref        { return e.xrefs }
func (e *Element) DataSources() []string {
	return e.dataSources
}
func (e *Element) Features() []Feature       { return e.features }
func (e *Element) CellularLocation() string  { return e.cellularLocation }
func (e *Element) Direction() Direction      { return e.direction }
func (e *Element) ControlType() string       { return e.controlType }
func (e *Element) EntityReference() *Element { return e.entityReference }
func (e *Element) Components() []*Element    { return e.components }
func (e *Element) Members() []*Element       { return e.members }
func (e *Element) Left() []*Element          { return e.left }
func (e *Element) Right() []*Element         { return e.right }
func (e *Element) Products() []*Element      { return e.products }
func (e *Element) Controllers() []*Element   { return e.controllers }
func (e *Element) Controlled() []*Element    { return e.controlled }
func (e *Element) PathwayComponents() []*Element {
	return e.pathwayParts
}
func (e *Element) EntityReferenceOf() []*Element  { return e.entityReferenceOf }
func (e *Element) ComponentOf() []*Element        { return e.componentOf }
func (e *Element) MemberOf() []*Element           { return e.memberOf }
func (e *Element) ParticipantOf() []*Element      { return e.participantOf }
func (e *Element) ControllerOf() []*Element       { return e.controllerOf }
func (e *Element) ControlledOf() []*Element       { return e.controlledOf }
func (e *Element) PathwayComponentOf() []*Element { return e.pathwayComponentOf }

// Participants returns every physical entity taking part in an interaction,
// controllers included.
func (e *Element) Participants() []*Element {
	out := make([]*Element, 0, len(e.left)+len(e.right)+len(e.participants)+len(e.products)+len(e.controllers))
	out = append(out, e.left...)
	out = append(out, e.right...)
	out = append(out, e.participants...)
	out = append(out, e.products...)
	out = append(out, e.controllers...)
	return uniqueElements(out)
}

// Interactions returns the interactions the element takes part in, either as
// a participant or as a controller.
func (e *Element) Interactions() []*Element {
	out := make([]*Element, 0, len(e.participantOf)+len(e.controllerOf))
	out = append(out, e.participantOf...)
	out = append(out, e.controllerOf...)
	return uniqueElements(out)
}

// AllNames returns display, standard and other names, deduplicated and sorted.
func (e *Element) AllNames() []string {
	seen := make(map[string]struct{})
	for _, n := range append([]string{e.displayName, e.standardName}, e.names...) {
		if n != "" {
			seen[n] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// BestName returns the display name, the standard name or the first sorted
// name, in that order.
func (e *Element) BestName() string {
	if e.displayName != "" {
		return e.displayName
	}
	if e.standardName != "" {
		return e.standardName
	}
	if names := e.AllNames(); len(names) > 0 {
		return names[0]
	}
	return ""
}

// XrefsOf filters the element's xrefs by type.
func (e *Element) XrefsOf(t XrefType) []Xref {
	var out []Xref
	for _, x := range e.xrefs {
		if x.Type == t {
			out = append(out, x)
		}
	}
	return out
}

func (e *Element) String() string { return e.class.String() + "<" + e.uri + ">" }

// uniqueElements drops repeated pointers while keeping first-seen order.
func uniqueElements(in []*Element) []*Element {
	seen := make(map[*Element]struct{}, len(in))
	out := in[:0]
	for _, e := range in {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		out = append(out, e)
	}
	return out
}

// SortByURI sorts elements in place by URI and returns the slice.
func SortByURI(es []*Element) []*Element {
	sort.Slice(es, func(i, j int) bool { return es[i].uri < es[j].uri })
	return es
}
