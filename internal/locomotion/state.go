package locomotion

// State is the evolving simulation state of one character.
type State struct {
	VerticalVelocity float64
	// Heading is the facing yaw in degrees, in (-180, 180].
	Heading      float64
	Grounded     bool
	GroundNormal Vec3
}

func NewState() State {
	return State{GroundNormal: Up}
}

// ProbeSample is the geometry and outcome of one ground probe.
type ProbeSample struct {
	Start    Vec3
	End      Vec3
	Radius   float64
	Grounded bool
	Normal   Vec3
}

// StepReport summarizes one fixed step for telemetry sinks.
type StepReport struct {
	Tick         uint64
	DT           float64
	Probe        ProbeSample
	State        State
	Displacement Vec3
	TargetYaw    float64
	Moving       bool
	Jumped       bool
}
