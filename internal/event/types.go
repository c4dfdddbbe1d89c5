package event

const (
	EventJumped   = "locomotion.jumped"
	EventLanded   = "locomotion.landed"
	EventAirborne = "locomotion.airborne"
)

type JumpEvent struct {
	Tick     uint64
	Velocity float64
	Heading  float64
}

type LandEvent struct {
	Tick   uint64
	Normal [3]float64
	// Airtime is the number of steps since the character left the ground.
	Airtime uint64
}

type AirborneEvent struct {
	Tick     uint64
	Velocity float64
}
