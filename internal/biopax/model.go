// internal/biopax/model.go
package biopax

import (
	"fmt"
	"sort"
	"sync"
)

// Option sets a property or a relation of an element.
type Option func(e *Element)

func WithDisplayName(n string) Option  { return func(e *Element) { e.displayName = n } }
func WithStandardName(n string) Option { return func(e *Element) { e.standardName = n } }
func WithNames(n ...string) Option     { return func(e *Element) { e.names = append(e.names, n...) } }
func WithXrefs(x ...Xref) Option       { return func(e *Element) { e.xrefs = append(e.xrefs, x...) } }
func WithDataSources(ds ...string) Option {
	return func(e *Element) { e.dataSources = append(e.dataSources, ds...) }
}
func WithFeatures(f ...Feature) Option {
	return func(e *Element) { e.features = append(e.features, f...) }
}
func WithCellularLocation(l string) Option {
	return func(e *Element) { e.cellularLocation = l }
}
func WithDirection(d Direction) Option { return func(e *Element) { e.direction = d } }
func WithControlType(t string) Option  { return func(e *Element) { e.controlType = t } }

// WithEntityReference links a physical entity to its entity reference.
func WithEntityReference(er *Element) Option {
	return func(e *Element) {
		if er == nil {
			return
		}
		e.entityReference = er
		er.entityReferenceOf = appendOnce(er.entityReferenceOf, e)
	}
}

// WithComponents adds complex components.
func WithComponents(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.components = appendOnce(e.components, pe)
			pe.componentOf = appendOnce(pe.componentOf, e)
		}
	}
}

// WithMembers adds generic members, either member physical entities or
// member entity references.
func WithMembers(ms ...*Element) Option {
	return func(e *Element) {
		for _, m := range ms {
			e.members = appendOnce(e.members, m)
			m.memberOf = appendOnce(m.memberOf, e)
		}
	}
}

func WithLeft(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.left = appendOnce(e.left, pe)
			pe.participantOf = appendOnce(pe.participantOf, e)
		}
	}
}

func WithRight(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.right = appendOnce(e.right, pe)
			pe.participantOf = appendOnce(pe.participantOf, e)
		}
	}
}

// WithParticipants adds participants of interactions that have no sides,
// such as molecular interactions.
func WithParticipants(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.participants = appendOnce(e.participants, pe)
			pe.participantOf = appendOnce(pe.participantOf, e)
		}
	}
}

// WithProducts adds template reaction products.
func WithProducts(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.products = appendOnce(e.products, pe)
			pe.participantOf = appendOnce(pe.participantOf, e)
		}
	}
}

func WithControllers(pes ...*Element) Option {
	return func(e *Element) {
		for _, pe := range pes {
			e.controllers = appendOnce(e.controllers, pe)
			pe.controllerOf = appendOnce(pe.controllerOf, e)
		}
	}
}

func WithControlled(is ...*Element) Option {
	return func(e *Element) {
		for _, i := range is {
			e.controlled = appendOnce(e.controlled, i)
			i.controlledOf = appendOnce(i.controlledOf, e)
		}
	}
}

func WithPathwayComponents(parts ...*Element) Option {
	return func(e *Element) {
		for _, p := range parts {
			e.pathwayParts = appendOnce(e.pathwayParts, p)
			p.pathwayComponentOf = appendOnce(p.pathwayComponentOf, e)
		}
	}
}

func appendOnce(list []*Element, e *Element) []*Element {
	for _, x := range list {
		if x == e {
			return list
		}
	}
	return append(list, e)
}

// Model is an in-memory pathway graph indexed by URI and by class.
type Model struct {
	mu       sync.RWMutex
	byURI    map[string]*Element
	elements []*Element
	xmlBase  string
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{byURI: make(map[string]*Element)}
}

// XMLBase returns the base URI recorded by the loader, if any.
func (m *Model) XMLBase() string { return m.xmlBase }

// SetXMLBase records the base URI of the model.
func (m *Model) SetXMLBase(base string) { m.xmlBase = base }

// Add creates a new element. It fails if the URI is already taken.
func (m *Model) Add(class Class, uri string, opts ...Option) (*Element, error) {
	if uri == "" {
		return nil, fmt.Errorf("biopax: element of class %s has an empty URI", class)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byURI[uri]; exists {
		return nil, fmt.Errorf("biopax: duplicate URI %q", uri)
	}
	e := &Element{uri: uri, class: class}
	for _, opt := range opts {
		opt(e)
	}
	m.byURI[uri] = e
	m.elements = append(m.elements, e)
	return e, nil
}

// MustAdd is Add for fixtures and tests; it panics on error.
func (m *Model) MustAdd(class Class, uri string, opts ...Option) *Element {
	e, err := m.Add(class, uri, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Update applies further options to an element already in the model.
func (m *Model) Update(e *Element, opts ...Option) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, opt := range opts {
		opt(e)
	}
}

// ByURI looks up an element.
func (m *Model) ByURI(uri string) (*Element, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.byURI[uri]
	return e, ok
}

// Objects returns the elements of the class or any of its subclasses,
// sorted by URI.
func (m *Model) Objects(class Class) []*Element {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Element
	for _, e := range m.elements {
		if e.class.IsA(class) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].uri < out[j].uri })
	return out
}

// Len returns the number of elements.
func (m *Model) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.elements)
}

// All returns every element, sorted by URI.
func (m *Model) All() []*Element {
	m.mu.RLock()
	out := make([]*Element, len(m.elements))
	copy(out, m.elements)
	m.mu.RUnlock()
	return SortByURI(out)
}
