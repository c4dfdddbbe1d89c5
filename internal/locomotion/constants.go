package locomotion

const (
	// Deadzone is the input magnitude at or below which movement intent is
	// treated as absent.
	Deadzone = 0.1

	DefaultMoveSpeed           = 5.0
	DefaultTurnSpeed           = 10.0
	DefaultGravity             = -20.0
	DefaultJumpHeight          = 2.5
	// The probe sphere starts just above the feet and sweeps slightly past
	// them, so only near-contact reads as grounded.
	DefaultGroundCheckOffset   = 0.3
	DefaultGroundCheckDistance = 0.1
	DefaultGroundCheckRadius   = 0.25
	DefaultGroundMask          = LayerMask(1)

	epsilon = 1e-9
)
