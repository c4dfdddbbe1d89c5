package telemetry

import "github.com/Versifine/stride/internal/locomotion"

type Transition int

const (
	TransitionNone Transition = iota
	TransitionLanded
	TransitionAirborne
)

func (t Transition) String() string {
	switch t {
	case TransitionLanded:
		return "landed"
	case TransitionAirborne:
		return "airborne"
	default:
		return "none"
	}
}

// tracker turns per-step grounded flags into edges.
type tracker struct {
	seen         bool
	grounded     bool
	leftGroundAt uint64
}

func (t *tracker) observe(r locomotion.StepReport) (Transition, uint64) {
	grounded := r.State.Grounded
	if !t.seen {
		t.seen = true
		t.grounded = grounded
		t.leftGroundAt = r.Tick
		return TransitionNone, 0
	}
	if grounded == t.grounded {
		return TransitionNone, 0
	}
	t.grounded = grounded
	if grounded {
		return TransitionLanded, r.Tick - t.leftGroundAt
	}
	t.leftGroundAt = r.Tick
	return TransitionAirborne, 0
}
