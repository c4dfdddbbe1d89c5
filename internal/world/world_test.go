package world

import (
	"testing"

	"github.com/Versifine/stride/internal/locomotion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groundLayer = locomotion.LayerMask(1)
	propLayer   = locomotion.LayerMask(2)
)

func box(minX, minY, minZ, maxX, maxY, maxZ float64, layer locomotion.LayerMask) Box {
	return Box{
		AABB: AABB{
			Min: Vec3{X: minX, Y: minY, Z: minZ},
			Max: Vec3{X: maxX, Y: maxY, Z: maxZ},
		},
		Layer: layer,
	}
}

func newFloorWorld(t *testing.T, spawn Vec3) *World {
	t.Helper()
	w := New(0.4, 1.8, spawn)
	require.NoError(t, w.AddBox(box(-10, -1, -10, 10, 0, 10, groundLayer)))
	return w
}

func TestAddBox_RejectsInvalid(t *testing.T) {
	w := New(0, 0, Vec3{})
	assert.Equal(t, DefaultCapsuleRadius, w.Radius())
	assert.Equal(t, DefaultCapsuleHeight, w.Height())

	require.ErrorIs(t, w.AddBox(box(1, 0, 0, 0, 1, 1, groundLayer)), ErrInvalidBox)
	require.ErrorIs(t, w.AddBox(box(0, 0, 0, 1, 1, 1, 0)), ErrInvalidBox)
	assert.Empty(t, w.Boxes())
}

func TestMove_FreeFallWithoutColliders(t *testing.T) {
	w := New(0.4, 1.8, Vec3{Y: 10})
	w.Move(Vec3{X: 0.5, Y: -1, Z: 0.25})
	assert.Equal(t, Vec3{X: 0.5, Y: 9, Z: 0.25}, w.Position())
	assert.Equal(t, Contacts{}, w.Contacts())
}

func TestMove_FloorStopsFall(t *testing.T) {
	w := newFloorWorld(t, Vec3{Y: 0.3})
	w.Move(Vec3{Y: -1})
	assert.InDelta(t, 0.0, w.Position().Y, 1e-9)
	assert.True(t, w.Contacts().Below)

	w.Move(Vec3{Y: -0.008})
	assert.InDelta(t, 0.0, w.Position().Y, 1e-9)
	assert.True(t, w.Contacts().Below)
}

func TestMove_FloorDoesNotBlockWalking(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	w.Move(Vec3{X: 1, Z: -2})
	assert.InDelta(t, 1.0, w.Position().X, 1e-12)
	assert.InDelta(t, -2.0, w.Position().Z, 1e-12)
	assert.False(t, w.Contacts().Sides)
}

func TestMove_WallStopsHorizontalMovement(t *testing.T) {
	w := newFloorWorld(t, Vec3{X: 0.5})
	require.NoError(t, w.AddBox(box(1, 0, -1, 2, 3, 1, groundLayer)))

	w.Move(Vec3{X: 0.5, Y: -0.01})

	assert.InDelta(t, 0.6, w.Position().X, 1e-9)
	assert.InDelta(t, 0.0, w.Position().Y, 1e-9)
	assert.True(t, w.Contacts().Sides)
	assert.True(t, w.Contacts().Below)
	assert.False(t, w.Overlapping())
}

func TestMove_CeilingStopsRise(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	require.NoError(t, w.AddBox(box(-2, 2, -2, 2, 3, 2, groundLayer)))

	w.Move(Vec3{Y: 1})

	assert.InDelta(t, 0.2, w.Position().Y, 1e-9)
	assert.True(t, w.Contacts().Above)
}

func TestSphereCast_HitsFloorBelow(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	hit, ok := w.SphereCast(Vec3{Y: 0.3}, 0.25, locomotion.Down, 0.1, groundLayer)
	require.True(t, ok)
	assert.InDelta(t, 0.05, hit.Distance, 1e-9)
	assert.Equal(t, Vec3{Y: 1}, hit.Normal)
	assert.InDelta(t, 0.0, hit.Point.Y, 1e-9)
	assert.Equal(t, groundLayer, hit.Layer)
}

func TestSphereCast_MissesWhenOutOfReach(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	_, ok := w.SphereCast(Vec3{Y: 1}, 0.25, locomotion.Down, 0.4, groundLayer)
	assert.False(t, ok)
}

func TestSphereCast_MaskFiltersLayers(t *testing.T) {
	w := New(0.4, 1.8, Vec3{})
	require.NoError(t, w.AddBox(box(-1, -1, -1, 1, 0, 1, propLayer)))

	_, ok := w.SphereCast(Vec3{Y: 0.3}, 0.25, locomotion.Down, 0.4, groundLayer)
	assert.False(t, ok)

	hit, ok := w.SphereCast(Vec3{Y: 0.3}, 0.25, locomotion.Down, 0.4, groundLayer|propLayer)
	require.True(t, ok)
	assert.Equal(t, propLayer, hit.Layer)
}

func TestSphereCast_StartingInsideHitsImmediately(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	hit, ok := w.SphereCast(Vec3{}, 0.25, locomotion.Down, 0.4, groundLayer)
	require.True(t, ok)
	assert.Zero(t, hit.Distance)
	assert.Equal(t, Vec3{Y: 1}, hit.Normal)
}

func TestSphereCast_NearestBoxWins(t *testing.T) {
	w := newFloorWorld(t, Vec3{})
	require.NoError(t, w.AddBox(box(-1, 0, -1, 1, 1, 1, groundLayer)))

	hit, ok := w.SphereCast(Vec3{Y: 3}, 0.25, locomotion.Down, 5, groundLayer)
	require.True(t, ok)
	assert.InDelta(t, 1.75, hit.Distance, 1e-9)
	assert.InDelta(t, 1.0, hit.Point.Y, 1e-9)
}

func TestSphereCast_SideWallNormal(t *testing.T) {
	w := New(0.4, 1.8, Vec3{})
	require.NoError(t, w.AddBox(box(2, 0, -1, 3, 2, 1, groundLayer)))

	hit, ok := w.SphereCast(Vec3{Y: 1}, 0.5, Vec3{X: 1}, 3, groundLayer)
	require.True(t, ok)
	assert.Equal(t, Vec3{X: -1}, hit.Normal)
	assert.InDelta(t, 1.5, hit.Distance, 1e-9)
}
