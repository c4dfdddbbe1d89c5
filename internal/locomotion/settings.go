package locomotion

import (
	"fmt"
	"math"
)

// LayerMask selects which collision layers count as ground.
type LayerMask uint32

func (m LayerMask) Contains(layer LayerMask) bool {
	return m&layer != 0
}

// Settings are the per-character tunables, fixed at construction.
type Settings struct {
	MoveSpeed           float64
	TurnSpeed           float64
	Gravity             float64
	JumpHeight          float64
	GroundCheckOffset   float64
	GroundCheckDistance float64
	GroundCheckRadius   float64
	GroundMask          LayerMask
}

func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:           DefaultMoveSpeed,
		TurnSpeed:           DefaultTurnSpeed,
		Gravity:             DefaultGravity,
		JumpHeight:          DefaultJumpHeight,
		GroundCheckOffset:   DefaultGroundCheckOffset,
		GroundCheckDistance: DefaultGroundCheckDistance,
		GroundCheckRadius:   DefaultGroundCheckRadius,
		GroundMask:          DefaultGroundMask,
	}
}

func (s Settings) Validate() error {
	switch {
	case s.MoveSpeed <= 0:
		return fmt.Errorf("%w: move speed must be positive, got %v", ErrInvalidSettings, s.MoveSpeed)
	case s.TurnSpeed <= 0:
		return fmt.Errorf("%w: turn speed must be positive, got %v", ErrInvalidSettings, s.TurnSpeed)
	case s.Gravity >= 0:
		return fmt.Errorf("%w: gravity must be negative, got %v", ErrInvalidSettings, s.Gravity)
	case s.JumpHeight < 0:
		return fmt.Errorf("%w: jump height must not be negative, got %v", ErrInvalidSettings, s.JumpHeight)
	case s.GroundCheckDistance <= 0:
		return fmt.Errorf("%w: ground check distance must be positive, got %v", ErrInvalidSettings, s.GroundCheckDistance)
	case s.GroundCheckRadius <= 0:
		return fmt.Errorf("%w: ground check radius must be positive, got %v", ErrInvalidSettings, s.GroundCheckRadius)
	case s.GroundMask == 0:
		return fmt.Errorf("%w: ground mask is empty", ErrInvalidSettings)
	}
	return nil
}

// JumpVelocity is the launch speed whose ballistic apex equals JumpHeight.
func (s Settings) JumpVelocity() float64 {
	return math.Sqrt(2 * -s.Gravity * s.JumpHeight)
}
