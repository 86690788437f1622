// internal/blacklist/decider.go
package blacklist

// Decider is the ubiquity policy applied to the degree statistics of a small
// molecule: neighborSize is the number of distinct molecules it is connected
// to, upstreamOnly and downstreamOnly count the neighbors found exclusively
// before or after it.
type Decider interface {
	IsUbique(neighborSize, upstreamOnly, downstreamOnly int) bool
	Score(neighborSize, upstreamOnly, downstreamOnly int) int
	Context(neighborSize, upstreamOnly, downstreamOnly int) RelType
}

const (
	// DefaultThreshold is the neighbor count of the newer generator.
	DefaultThreshold = 50
	// LegacyThreshold is the neighbor count of the older generator.
	LegacyThreshold = 30
	// DefaultRatio is the asymmetry a side must show to claim a context.
	DefaultRatio = 10
)

// DefaultDecider flags molecules with at least Threshold neighbors and
// scores them by neighbor count. A side claims the context when its exclusive
// neighbor count exceeds Ratio times the other side's.
type DefaultDecider struct {
	Threshold int
	Ratio     int
}

// NewDefaultDecider returns the decider of the newer generator.
func NewDefaultDecider() DefaultDecider {
	return DefaultDecider{Threshold: DefaultThreshold, Ratio: DefaultRatio}
}

func (d DefaultDecider) IsUbique(neighborSize, _, _ int) bool {
	return neighborSize >= d.Threshold
}

func (d DefaultDecider) Score(neighborSize, _, _ int) int {
	return neighborSize
}

// Context returns Output when the molecule mostly has upstream neighbors,
// meaning it is mostly produced, and Input when it is mostly consumed.
func (d DefaultDecider) Context(_, upstreamOnly, downstreamOnly int) RelType {
	ratio := d.Ratio
	if ratio <= 0 {
		ratio = DefaultRatio
	}
	switch {
	case upstreamOnly > ratio*downstreamOnly:
		return Output
	case downstreamOnly > ratio*upstreamOnly:
		return Input
	default:
		return NoContext
	}
}

// DeciderFuncs adapts closures to a Decider. Nil functions fall back to the
// DefaultDecider behavior with default parameters.
type DeciderFuncs struct {
	UbiqueFunc  func(neighborSize, upstreamOnly, downstreamOnly int) bool
	ScoreFunc   func(neighborSize, upstreamOnly, downstreamOnly int) int
	ContextFunc func(neighborSize, upstreamOnly, downstreamOnly int) RelType
}

func (f DeciderFuncs) IsUbique(n, up, down int) bool {
	if f.UbiqueFunc == nil {
		return NewDefaultDecider().IsUbique(n, up, down)
	}
	return f.UbiqueFunc(n, up, down)
}

func (f DeciderFuncs) Score(n, up, down int) int {
	if f.ScoreFunc == nil {
		return NewDefaultDecider().Score(n, up, down)
	}
	return f.ScoreFunc(n, up, down)
}

func (f DeciderFuncs) Context(n, up, down int) RelType {
	if f.ContextFunc == nil {
		return NewDefaultDecider().Context(n, up, down)
	}
	return f.ContextFunc(n, up, down)
}
