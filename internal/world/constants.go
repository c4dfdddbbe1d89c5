package world

const (
	DefaultCapsuleRadius = 0.4
	DefaultCapsuleHeight = 1.8

	CollisionAxisTolerance = 1e-9
)
