package locomotion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetMoveInput_Deadzone(t *testing.T) {
	inside := []Vec3{
		{},
		{X: 0.1},
		{Z: -0.1},
		{X: 0.05, Z: 0.05},
		{Y: 0.09},
	}
	for _, raw := range inside {
		var in Intent
		in.SetMoveInput(Vec3{X: 3, Z: 4})
		in.SetMoveInput(raw)
		assert.False(t, in.HasMoveInput(), "raw %v", raw)
		assert.Equal(t, Vec3{}, in.MoveAxis(), "raw %v", raw)
	}
}

func TestSetMoveInput_PassesThroughUnchanged(t *testing.T) {
	outside := []Vec3{
		{X: 0.11},
		{X: 0.5, Z: 0.5},
		{X: 3, Z: -4},
		{X: -0.7071, Z: 0.7071},
	}
	for _, raw := range outside {
		var in Intent
		in.SetMoveInput(raw)
		assert.True(t, in.HasMoveInput(), "raw %v", raw)
		assert.Equal(t, raw, in.MoveAxis(), "raw %v", raw)
	}
}

func TestSetLookDirection(t *testing.T) {
	tests := []struct {
		name string
		raw  Vec3
		want Vec3
	}{
		{"forward", Vec3{Z: 2}, Vec3{Z: 1}},
		{"drops vertical", Vec3{X: 3, Y: 10, Z: 4}, Vec3{X: 0.6, Z: 0.8}},
		{"zero", Vec3{}, Vec3{}},
		{"straight up", Vec3{Y: 5}, Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Intent
			in.SetLookDirection(tt.raw)
			got := in.LookAxis()
			assert.InDelta(t, tt.want.X, got.X, 1e-12)
			assert.Equal(t, 0.0, got.Y)
			assert.InDelta(t, tt.want.Z, got.Z, 1e-12)
		})
	}
}

func TestRequestJump_LastWriteWins(t *testing.T) {
	var in Intent
	in.RequestJump()
	in.RequestJump()
	assert.True(t, in.JumpRequested())
	assert.True(t, in.consumeJump())
	assert.False(t, in.consumeJump())
}
