package world

import (
	"math"

	"github.com/Versifine/stride/internal/locomotion"
)

type Vec3 = locomotion.Vec3

// AABB is an axis-aligned box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Box is a static collider on a single layer.
type Box struct {
	AABB
	Layer locomotion.LayerMask
}

// CapsuleAABB is the box that bounds a capsule standing with its feet at pos.
func CapsuleAABB(pos Vec3, radius, height float64) AABB {
	return AABB{
		Min: Vec3{X: pos.X - radius, Y: pos.Y, Z: pos.Z - radius},
		Max: Vec3{X: pos.X + radius, Y: pos.Y + height, Z: pos.Z + radius},
	}
}

func (a AABB) Expand(r float64) AABB {
	return AABB{
		Min: Vec3{X: a.Min.X - r, Y: a.Min.Y - r, Z: a.Min.Z - r},
		Max: Vec3{X: a.Max.X + r, Y: a.Max.Y + r, Z: a.Max.Z + r},
	}
}

func (a AABB) Contains(p Vec3) bool {
	return p.X > a.Min.X && p.X < a.Max.X &&
		p.Y > a.Min.Y && p.Y < a.Max.Y &&
		p.Z > a.Min.Z && p.Z < a.Max.Z
}

func intersects(a, b AABB) bool {
	return a.Min.X < b.Max.X &&
		a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y &&
		a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z &&
		a.Max.Z > b.Min.Z
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func component(v Vec3, a axis) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	default:
		return v.Z
	}
}

func withComponent(v Vec3, a axis, value float64) Vec3 {
	switch a {
	case axisX:
		v.X = value
	case axisY:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// overlapsAcross reports whether a and b overlap on both axes other than a.
func overlapsAcross(a, b AABB, along axis) bool {
	for _, other := range [...]axis{axisX, axisY, axisZ} {
		if other == along {
			continue
		}
		if component(a.Min, other) >= component(b.Max, other)-CollisionAxisTolerance ||
			component(a.Max, other) <= component(b.Min, other)+CollisionAxisTolerance {
			return false
		}
	}
	return true
}

// resolveAxis clamps delta along one axis so that box stops at the first
// collider face in its path. It reports whether the move was shortened.
func resolveAxis(box AABB, delta float64, along axis, colliders []Box) (float64, bool) {
	if nearlyZero(delta) {
		return delta, false
	}
	allowed := delta
	for _, c := range colliders {
		if !overlapsAcross(box, c.AABB, along) {
			continue
		}
		if delta > 0 {
			face := component(c.Min, along)
			gap := face - component(box.Max, along)
			if gap >= -CollisionAxisTolerance && gap < allowed {
				allowed = math.Max(gap, 0)
			}
		} else {
			face := component(c.Max, along)
			gap := face - component(box.Min, along)
			if gap <= CollisionAxisTolerance && gap > allowed {
				allowed = math.Min(gap, 0)
			}
		}
	}
	return allowed, !nearlyEqual(allowed, delta)
}

func nearlyZero(v float64) bool {
	return math.Abs(v) <= CollisionAxisTolerance
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= CollisionAxisTolerance
}
