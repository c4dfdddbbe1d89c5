package locomotion

// Intent buffers the latest movement and look input between fixed steps.
// Writes are last-write-wins; nothing is queued.
type Intent struct {
	moveAxis      Vec3
	lookAxis      Vec3
	jumpRequested bool
}

// SetMoveInput stores raw when its magnitude clears the deadzone and the
// zero vector otherwise.
func (in *Intent) SetMoveInput(raw Vec3) {
	if raw.Len() > Deadzone {
		in.moveAxis = raw
		return
	}
	in.moveAxis = Vec3{}
}

// SetLookDirection stores the horizontal projection of raw as a unit
// vector. A vertical or zero raw vector stores the zero vector.
func (in *Intent) SetLookDirection(raw Vec3) {
	in.lookAxis = raw.Horizontal().Normalize()
}

// RequestJump latches a jump for the next fixed step.
func (in *Intent) RequestJump() {
	in.jumpRequested = true
}

func (in *Intent) MoveAxis() Vec3 { return in.moveAxis }
func (in *Intent) LookAxis() Vec3 { return in.lookAxis }

// HasMoveInput is derived from the stored axis.
func (in *Intent) HasMoveInput() bool {
	return in.moveAxis.Len() > Deadzone
}

// JumpRequested reports whether a jump is latched and not yet consumed.
func (in *Intent) JumpRequested() bool {
	return in.jumpRequested
}

func (in *Intent) consumeJump() bool {
	requested := in.jumpRequested
	in.jumpRequested = false
	return requested
}
