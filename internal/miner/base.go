// internal/miner/base.go
package miner

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/xkilldash9x/sifminer/internal/biopax"
	"github.com/xkilldash9x/sifminer/internal/blacklist"
	"github.com/xkilldash9x/sifminer/internal/idfetch"
	"github.com/xkilldash9x/sifminer/internal/pattern"
	"github.com/xkilldash9x/sifminer/internal/sif"
)

// Constructor builds a miner's pattern. The blacklist may be nil.
type Constructor func(bl *blacklist.Blacklist) *pattern.Pattern

// Base holds a miner's name and its lazily constructed pattern. The pattern
// is built at most once until something it depends on changes.
type Base struct {
	name        string
	description string
	construct   Constructor

	mu      sync.Mutex
	bl      *blacklist.Blacklist
	pattern *pattern.Pattern
	// augment runs on a freshly constructed pattern before it is cached.
	augment func(p *pattern.Pattern)
}

// NewBase creates a miner base. construct is called on first use of Pattern.
func NewBase(name, description string, construct Constructor) *Base {
	return &Base{name: name, description: description, construct: construct}
}

func (b *Base) Name() string        { return b.name }
func (b *Base) Description() string { return b.description }

// Blacklist returns the blacklist the pattern is built against.
func (b *Base) Blacklist() *blacklist.Blacklist {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bl
}

// SetBlacklist replaces the blacklist and drops the cached pattern.
func (b *Base) SetBlacklist(bl *blacklist.Blacklist) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bl = bl
	b.pattern = nil
}

// Pattern returns the memoized pattern, constructing it on first call.
func (b *Base) Pattern() *pattern.Pattern {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pattern == nil {
		p := b.construct(b.bl)
		if b.augment != nil {
			b.augment(p)
		}
		b.pattern = p
	}
	return b.pattern
}

func (b *Base) invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pattern = nil
}

// Labels names the pattern variables a SIF miner reads.
type Labels struct {
	Source    string
	Target    string
	Mediators []string
	SourcePEs []string
	TargetPEs []string
}

// SIFMiner is a miner whose matches reduce to interactions of one type.
type SIFMiner struct {
	*Base
	typ    sif.Type
	labels Labels

	fetchMu sync.RWMutex
	fetcher idfetch.Fetcher
}

// NewSIFMiner creates a SIF miner. Once a fetcher is set, identifier
// presence checks on the source and target labels are woven into the pattern.
func NewSIFMiner(name, description string, t sif.Type, labels Labels, construct Constructor) *SIFMiner {
	m := &SIFMiner{Base: NewBase(name, description, construct), typ: t, labels: labels}
	m.Base.augment = m.addIDChecks
	return m
}

func (m *SIFMiner) Type() sif.Type { return m.typ }

// Labels returns the label roles of this miner.
func (m *SIFMiner) Labels() Labels { return m.labels }

// SetIDFetcher replaces the fetcher used for the identifier presence checks
// and drops the cached pattern.
func (m *SIFMiner) SetIDFetcher(f idfetch.Fetcher) {
	m.fetchMu.Lock()
	m.fetcher = f
	m.fetchMu.Unlock()
	m.invalidate()
}

func (m *SIFMiner) idFetcher() idfetch.Fetcher {
	m.fetchMu.RLock()
	defer m.fetchMu.RUnlock()
	return m.fetcher
}

func (m *SIFMiner) addIDChecks(p *pattern.Pattern) {
	f := m.idFetcher()
	if f == nil {
		return
	}
	p.InsertAfterBound(pattern.HasAnID(f), m.labels.Source)
	p.InsertAfterBound(pattern.HasAnID(f), m.labels.Target)
}

// CreateInteractions turns one match into interactions: every source id
// paired with every target id, minus self pairs.
func (m *SIFMiner) CreateInteractions(match *pattern.Match, fetcher idfetch.Fetcher) []*sif.Interaction {
	src, tgt := match.Get(m.labels.Source), match.Get(m.labels.Target)
	if src == nil || tgt == nil {
		return nil
	}
	if fetcher == nil {
		fetcher = m.idFetcher()
	}
	if fetcher == nil {
		return nil
	}

	ev := sif.Evidence{
		Mediators: match.GetAll(m.labels.Mediators...),
		SourcePEs: match.GetAll(m.labels.SourcePEs...),
		TargetPEs: match.GetAll(m.labels.TargetPEs...),
		SourceERs: refOf(src),
		TargetERs: refOf(tgt),
	}
	var out []*sif.Interaction
	for _, s := range fetcher.FetchID(src) {
		for _, t := range fetcher.FetchID(tgt) {
			if s == t {
				continue
			}
			out = append(out, sif.NewInteraction(s, t, m.typ, ev))
		}
	}
	return out
}

// refOf returns the entity reference an endpoint stands for.
func refOf(e *biopax.Element) []*biopax.Element {
	if e.IsA(biopax.ClassEntityReference) {
		return []*biopax.Element{e}
	}
	if er := e.EntityReference(); er != nil {
		return []*biopax.Element{er}
	}
	return nil
}

// WriteResult writes the interactions of the given matches as simple SIF,
// deduplicated and sorted.
func (m *SIFMiner) WriteResult(matches map[*biopax.Element][]*pattern.Match, w io.Writer) error {
	fetcher := m.idFetcher()
	if fetcher == nil {
		return fmt.Errorf("miner %s: no id fetcher set", m.name)
	}
	fetcher = idfetch.NewCache(fetcher)

	merged := make(map[sif.Key]*sif.Interaction)
	var all []*sif.Interaction
	for _, anchor := range pattern.SortedAnchors(matches) {
		for _, match := range matches[anchor] {
			for _, i := range m.CreateInteractions(match, fetcher) {
				if !i.HasIDs() {
					continue
				}
				if prev, ok := merged[i.Key()]; ok {
					prev.Merge(i)
					continue
				}
				merged[i.Key()] = i
				all = append(all, i)
			}
		}
	}
	sif.Sort(all)

	bw := bufio.NewWriter(w)
	for _, i := range all {
		if _, err := fmt.Fprintln(bw, i.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
