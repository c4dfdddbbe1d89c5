package locomotion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	grounded bool
	normal   Vec3
	casts    []Vec3
	masks    []LayerMask
}

func (p *stubProber) SphereCast(origin Vec3, radius float64, dir Vec3, distance float64, mask LayerMask) (Hit, bool) {
	p.casts = append(p.casts, origin)
	p.masks = append(p.masks, mask)
	if !p.grounded {
		return Hit{}, false
	}
	return Hit{Point: origin.Add(dir.Scale(distance)), Normal: p.normal, Distance: distance, Layer: mask}, true
}

type recordingMover struct {
	moves []Vec3
	pos   Vec3
}

func (m *recordingMover) Move(d Vec3) {
	m.moves = append(m.moves, d)
	m.pos = m.pos.Add(d)
}

func (m *recordingMover) Position() Vec3 { return m.pos }

type fixedCamera float64

func (c fixedCamera) Yaw() float64 { return float64(c) }

type captureTelemetry struct {
	reports []StepReport
}

func (t *captureTelemetry) ObserveStep(r StepReport) { t.reports = append(t.reports, r) }

type rig struct {
	prober    *stubProber
	mover     *recordingMover
	telemetry *captureTelemetry
	ctrl      *Controller
}

func newRig(t *testing.T, settings Settings, cameraYaw float64, grounded bool, opts ...Option) *rig {
	t.Helper()
	r := &rig{
		prober:    &stubProber{grounded: grounded, normal: Up},
		mover:     &recordingMover{},
		telemetry: &captureTelemetry{},
	}
	ctrl, err := New(settings, Collaborators{
		Prober:    r.prober,
		Mover:     r.mover,
		Camera:    fixedCamera(cameraYaw),
		Body:      r.mover,
		Telemetry: r.telemetry,
	}, opts...)
	require.NoError(t, err)
	r.ctrl = ctrl
	return r
}

func TestNew_FailsFastOnMissingCollaborators(t *testing.T) {
	prober := &stubProber{}
	mover := &recordingMover{}
	full := Collaborators{Prober: prober, Mover: mover, Camera: fixedCamera(0), Body: mover}

	tests := []struct {
		name   string
		mutate func(c *Collaborators)
		want   error
	}{
		{"prober", func(c *Collaborators) { c.Prober = nil }, ErrMissingProber},
		{"mover", func(c *Collaborators) { c.Mover = nil }, ErrMissingMover},
		{"camera", func(c *Collaborators) { c.Camera = nil }, ErrMissingCamera},
		{"body", func(c *Collaborators) { c.Body = nil }, ErrMissingBody},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collab := full
			tt.mutate(&collab)
			_, err := New(DefaultSettings(), collab)
			require.ErrorIs(t, err, tt.want)
		})
	}

	ctrl, err := New(DefaultSettings(), full)
	require.NoError(t, err)
	assert.NotPanics(t, func() { ctrl.Step(0.02) }, "telemetry is optional")
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	mover := &recordingMover{}
	s := DefaultSettings()
	s.Gravity = 9.8
	_, err := New(s, Collaborators{Prober: &stubProber{}, Mover: mover, Camera: fixedCamera(0), Body: mover})
	require.ErrorIs(t, err, ErrInvalidSettings)

	assert.Panics(t, func() {
		MustNew(s, Collaborators{Prober: &stubProber{}, Mover: mover, Camera: fixedCamera(0), Body: mover})
	})
}

func TestGroundProbe_HitAndMiss(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, true)
	r.ctrl.Step(0.02)
	st := r.ctrl.State()
	assert.True(t, st.Grounded)
	assert.Equal(t, Vec3{Y: 1}, st.GroundNormal)

	r.prober.grounded = false
	r.ctrl.Step(0.02)
	st = r.ctrl.State()
	assert.False(t, st.Grounded)
	assert.Equal(t, Vec3{Y: 1}, st.GroundNormal)
}

func TestGroundProbe_ReportsSlopeNormalAndGeometry(t *testing.T) {
	s := DefaultSettings()
	s.GroundCheckOffset = 0.3
	s.GroundCheckDistance = 0.4
	s.GroundMask = LayerMask(0b100)
	r := newRig(t, s, 0, true)
	r.mover.pos = Vec3{X: 2, Y: 1, Z: -3}
	slope := Vec3{X: 0.6, Y: 0.8}
	r.prober.normal = slope

	r.ctrl.Step(0.02)

	assert.Equal(t, slope, r.ctrl.State().GroundNormal)
	require.Len(t, r.prober.casts, 1)
	assert.InDelta(t, 1.3, r.prober.casts[0].Y, 1e-12)
	assert.Equal(t, LayerMask(0b100), r.prober.masks[0])

	probe := r.telemetry.reports[0].Probe
	assert.InDelta(t, 0.9, probe.End.Y, 1e-12)
	assert.Equal(t, s.GroundCheckRadius, probe.Radius)
	assert.True(t, probe.Grounded)
}

func TestJump_AirborneIsNoop(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, false, WithState(State{VerticalVelocity: -3.5}))
	r.ctrl.Step(0.02)
	before := r.ctrl.VerticalVelocity()

	assert.False(t, r.ctrl.Jump())
	assert.Equal(t, before, r.ctrl.VerticalVelocity())
}

func TestJump_GroundedSetsLaunchVelocity(t *testing.T) {
	s := DefaultSettings()
	r := newRig(t, s, 0, true)
	r.ctrl.Step(0.02)

	require.True(t, r.ctrl.Jump())
	assert.InDelta(t, math.Sqrt(2*20*2.5), r.ctrl.VerticalVelocity(), 1e-12)
	assert.InDelta(t, 10.0, r.ctrl.VerticalVelocity(), 1e-12)
}

func TestJump_ApexMatchesJumpHeight(t *testing.T) {
	const dt = 0.02
	s := DefaultSettings()
	s.Gravity = -20
	s.JumpHeight = 2.5
	r := newRig(t, s, 0, true)
	r.ctrl.Step(dt)
	require.True(t, r.ctrl.Jump())
	v0 := r.ctrl.VerticalVelocity()
	require.InDelta(t, 10.0, v0, 1e-9)

	r.prober.grounded = false
	startY := r.mover.pos.Y
	elapsed := 0.0
	for i := 0; i < 1000 && r.ctrl.VerticalVelocity() > 0; i++ {
		r.ctrl.Step(dt)
		elapsed += dt
	}
	require.LessOrEqual(t, r.ctrl.VerticalVelocity(), 0.0)

	apex := v0*elapsed + 0.5*s.Gravity*elapsed*elapsed
	assert.InDelta(t, 2.5, apex, 0.01)
	assert.InDelta(t, 2.5, r.mover.pos.Y-startY, 0.15)
}

func TestJumpRequest_SeesFreshProbe(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, true)
	require.False(t, r.ctrl.IsGrounded(), "not grounded before the first probe")

	r.ctrl.RequestJump()
	r.ctrl.Step(0.02)

	assert.True(t, r.telemetry.reports[0].Jumped)
	assert.InDelta(t, 10.0-20*0.02, r.ctrl.VerticalVelocity(), 1e-12)
	assert.False(t, r.ctrl.Intent().JumpRequested())
}

func TestJumpRequest_StaleGroundedIgnored(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, false, WithState(State{Grounded: true, GroundNormal: Up}))

	r.ctrl.RequestJump()
	r.ctrl.Step(0.02)

	assert.False(t, r.telemetry.reports[0].Jumped)
	assert.InDelta(t, -20*0.02, r.ctrl.VerticalVelocity(), 1e-12)
	assert.False(t, r.ctrl.Intent().JumpRequested(), "request is consumed even when it fails")
}

func TestVertical_GravityAppliedWhileGrounded(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, true)
	for i := 0; i < 10; i++ {
		r.ctrl.Step(0.02)
		assert.InDelta(t, -0.4, r.ctrl.VerticalVelocity(), 1e-12)
		last := r.mover.moves[len(r.mover.moves)-1]
		assert.Less(t, last.Y, 0.0, "character is pressed into the ground")
	}
}

func TestVertical_LandingClearsFallSpeed(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, false)
	for i := 0; i < 30; i++ {
		r.ctrl.Step(0.02)
	}
	assert.InDelta(t, -12.0, r.ctrl.VerticalVelocity(), 1e-9)

	r.prober.grounded = true
	r.ctrl.Step(0.02)
	assert.InDelta(t, -0.4, r.ctrl.VerticalVelocity(), 1e-12)
}

func TestHeading_IdlePreservesFacing(t *testing.T) {
	r := newRig(t, DefaultSettings(), 90, true, WithInitialHeading(37))
	r.ctrl.SetLookDirection(Vec3{X: 1})
	r.ctrl.SetMoveInput(Vec3{X: 0.05})

	for i := 0; i < 50; i++ {
		r.ctrl.Step(0.02)
		require.Equal(t, 37.0, r.ctrl.Heading())
		last := r.mover.moves[len(r.mover.moves)-1]
		require.Equal(t, 0.0, last.X)
		require.Equal(t, 0.0, last.Z)
	}
}

func TestHeading_ConvergesMonotonically(t *testing.T) {
	tests := []struct {
		name      string
		initial   float64
		look      Vec3
		cameraYaw float64
		target    float64
	}{
		{"camera right", 0, Vec3{Z: 1}, 90, 90},
		{"stick left", 10, Vec3{X: -1}, 0, -90},
		{"across the seam", 170, Vec3{Z: 1}, -170, -170},
		{"behind camera", -45, Vec3{Z: -1}, 30, -150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, DefaultSettings(), tt.cameraYaw, true, WithInitialHeading(tt.initial))
			r.ctrl.SetMoveInput(tt.look)
			r.ctrl.SetLookDirection(tt.look)

			prev := AngleBetween(r.ctrl.Heading(), tt.target)
			sign := math.Signbit(signedAngleDelta(r.ctrl.Heading(), tt.target))
			for i := 0; i < 200; i++ {
				r.ctrl.Step(0.02)
				remaining := AngleBetween(r.ctrl.Heading(), tt.target)
				require.LessOrEqual(t, remaining, prev+1e-9, "step %d", i)
				if remaining > 1e-9 {
					require.Equal(t, sign, math.Signbit(signedAngleDelta(r.ctrl.Heading(), tt.target)), "overshoot at step %d", i)
				}
				prev = remaining
			}
			assert.InDelta(t, 0, prev, 1e-6)
			assert.InDelta(t, tt.target, r.telemetry.reports[0].TargetYaw, 1e-9)
		})
	}
}

func TestHorizontal_CameraRelativeDisplacement(t *testing.T) {
	s := DefaultSettings()
	s.MoveSpeed = 5
	r := newRig(t, s, 90, true)
	r.ctrl.SetMoveInput(Vec3{Z: 1})
	r.ctrl.SetLookDirection(Vec3{Z: 1})

	r.ctrl.Step(0.02)

	require.Len(t, r.mover.moves, 1, "one combined submission per step")
	horizontal := r.mover.moves[0].Horizontal()
	assert.InDelta(t, 0.1, horizontal.Len(), 1e-12)

	heading := r.ctrl.Heading()
	assert.InDelta(t, SlerpYaw(0, 90, s.TurnSpeed*0.02), heading, 1e-12)
	want := DirectionOf(heading).Scale(0.1)
	assert.InDelta(t, want.X, horizontal.X, 1e-12)
	assert.InDelta(t, want.Z, horizontal.Z, 1e-12)
	assert.Greater(t, horizontal.X, 0.0, "not the raw world-forward axis")
}

func TestHorizontal_SpeedIsBinary(t *testing.T) {
	for _, raw := range []Vec3{{Z: 0.2}, {Z: 1}, {Z: 7}} {
		r := newRig(t, DefaultSettings(), 0, true)
		r.ctrl.SetMoveInput(raw)
		r.ctrl.SetLookDirection(raw)
		r.ctrl.Step(0.02)
		assert.InDelta(t, 0.1, r.mover.moves[0].Horizontal().Len(), 1e-12, "raw %v", raw)
	}
}

func TestStep_NonPositiveDTIgnored(t *testing.T) {
	r := newRig(t, DefaultSettings(), 0, true)
	r.ctrl.Step(0)
	r.ctrl.Step(-1)
	assert.Empty(t, r.mover.moves)
	assert.Zero(t, r.ctrl.Ticks())
}
