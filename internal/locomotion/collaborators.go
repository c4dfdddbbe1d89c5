package locomotion

// Hit describes the first surface touched by a sphere cast.
type Hit struct {
	Point    Vec3
	Normal   Vec3
	Distance float64
	Layer    LayerMask
}

// Prober answers geometric queries against the collision world.
type Prober interface {
	SphereCast(origin Vec3, radius float64, dir Vec3, distance float64, mask LayerMask) (Hit, bool)
}

// Mover is the swept movement primitive. Contact information, if any, is
// the mover's business.
type Mover interface {
	Move(displacement Vec3)
}

// Camera exposes the rig's current horizontal heading in degrees.
type Camera interface {
	Yaw() float64
}

// Body reports where the character currently stands.
type Body interface {
	Position() Vec3
}

// Telemetry observes each fixed step. It never feeds back into the core.
type Telemetry interface {
	ObserveStep(report StepReport)
}

// Collaborators bundles the handles a Controller is built with.
// Telemetry is optional.
type Collaborators struct {
	Prober    Prober
	Mover     Mover
	Camera    Camera
	Body      Body
	Telemetry Telemetry
}

type nopTelemetry struct{}

func (nopTelemetry) ObserveStep(StepReport) {}
