package locomotion

import (
	"fmt"
	"log/slog"
)

// Controller integrates one character's locomotion once per fixed step.
// It is not safe for concurrent use: intent writes and steps must happen on
// the thread that owns the character.
type Controller struct {
	settings  Settings
	prober    Prober
	mover     Mover
	camera    Camera
	body      Body
	telemetry Telemetry

	intent Intent
	state  State
	tick   uint64
}

type Option func(*Controller)

// WithInitialHeading sets the facing yaw before the first step. It is the
// only place the heading is ever snapped.
func WithInitialHeading(yaw float64) Option {
	return func(c *Controller) {
		c.state.Heading = NormalizeAngle(yaw)
	}
}

// WithState seeds the controller with a previously captured state.
func WithState(state State) Option {
	return func(c *Controller) {
		state.Heading = NormalizeAngle(state.Heading)
		if !state.Grounded {
			state.GroundNormal = Up
		}
		c.state = state
	}
}

func New(settings Settings, collab Collaborators, opts ...Option) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	switch {
	case collab.Prober == nil:
		return nil, ErrMissingProber
	case collab.Mover == nil:
		return nil, ErrMissingMover
	case collab.Camera == nil:
		return nil, ErrMissingCamera
	case collab.Body == nil:
		return nil, ErrMissingBody
	}

	c := &Controller{
		settings:  settings,
		prober:    collab.Prober,
		mover:     collab.Mover,
		camera:    collab.Camera,
		body:      collab.Body,
		telemetry: collab.Telemetry,
		state:     NewState(),
	}
	if c.telemetry == nil {
		c.telemetry = nopTelemetry{}
	}
	for _, opt := range opts {
		opt(c)
	}

	slog.Debug("Locomotion controller ready",
		"move_speed", settings.MoveSpeed,
		"turn_speed", settings.TurnSpeed,
		"gravity", settings.Gravity,
		"jump_height", settings.JumpHeight,
		"heading", c.state.Heading,
	)
	return c, nil
}

// MustNew is New for hosts that treat misconfiguration as fatal.
func MustNew(settings Settings, collab Collaborators, opts ...Option) *Controller {
	c, err := New(settings, collab, opts...)
	if err != nil {
		panic(fmt.Sprintf("locomotion: %v", err))
	}
	return c
}

// Intent is the buffer input adapters write into.
func (c *Controller) Intent() *Intent {
	return &c.intent
}

func (c *Controller) SetMoveInput(raw Vec3)     { c.intent.SetMoveInput(raw) }
func (c *Controller) SetLookDirection(raw Vec3) { c.intent.SetLookDirection(raw) }
func (c *Controller) RequestJump()              { c.intent.RequestJump() }
func (c *Controller) Settings() Settings        { return c.settings }
func (c *Controller) State() State              { return c.state }
func (c *Controller) Ticks() uint64             { return c.tick }
func (c *Controller) IsGrounded() bool          { return c.state.Grounded }
func (c *Controller) Heading() float64          { return c.state.Heading }
func (c *Controller) VerticalVelocity() float64 { return c.state.VerticalVelocity }

// Jump launches the character if the latest ground probe found support.
// While airborne it does nothing and reports false.
func (c *Controller) Jump() bool {
	if !c.state.Grounded {
		return false
	}
	c.state.VerticalVelocity = c.settings.JumpVelocity()
	return true
}

// Step advances the simulation by dt seconds and submits the resulting
// displacement to the mover. Non-positive dt is ignored.
func (c *Controller) Step(dt float64) {
	if dt <= 0 {
		return
	}
	c.tick++

	probe := probeGround(c.prober, c.body.Position(), c.settings)
	c.state.Grounded = probe.Grounded
	c.state.GroundNormal = probe.Normal

	jumped := false
	if c.intent.consumeJump() {
		jumped = c.Jump()
	}

	vertical := c.integrateVertical(dt)

	targetYaw := c.state.Heading
	var horizontal Vec3
	moving := c.intent.HasMoveInput()
	if moving {
		targetYaw = NormalizeAngle(YawOf(c.intent.lookAxis) + c.camera.Yaw())
		c.state.Heading = SlerpYaw(c.state.Heading, targetYaw, c.settings.TurnSpeed*dt)
		horizontal = DirectionOf(c.state.Heading).Scale(c.settings.MoveSpeed * dt)
	}

	displacement := horizontal.Add(vertical)
	c.mover.Move(displacement)

	c.telemetry.ObserveStep(StepReport{
		Tick:         c.tick,
		DT:           dt,
		Probe:        probe,
		State:        c.state,
		Displacement: displacement,
		TargetYaw:    targetYaw,
		Moving:       moving,
		Jumped:       jumped,
	})
}

// integrateVertical applies gravity and returns this step's vertical
// displacement. A grounded character that is still falling lands: its
// downward speed is cleared before gravity presses it into the ground again.
func (c *Controller) integrateVertical(dt float64) Vec3 {
	if c.state.Grounded && c.state.VerticalVelocity < 0 {
		c.state.VerticalVelocity = 0
	}
	c.state.VerticalVelocity += c.settings.Gravity * dt
	return Vec3{Y: c.state.VerticalVelocity * dt}
}
