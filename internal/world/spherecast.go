package world

import (
	"math"

	"github.com/Versifine/stride/internal/locomotion"
)

// sweepBox intersects a ray with box over [0, maxDist]. A ray that starts
// inside the box hits at distance 0 and reports the reverse direction as
// the normal.
func sweepBox(origin, dir Vec3, box AABB, maxDist float64) (float64, Vec3, bool) {
	tmin, tmax := 0.0, maxDist
	entered := false
	var normal Vec3

	for _, a := range [...]axis{axisX, axisY, axisZ} {
		o := component(origin, a)
		d := component(dir, a)
		lo := component(box.Min, a)
		hi := component(box.Max, a)

		if nearlyZero(d) {
			if o <= lo || o >= hi {
				return 0, Vec3{}, false
			}
			continue
		}

		inv := 1 / d
		t1 := (lo - o) * inv
		t2 := (hi - o) * inv
		sign := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tmin {
			tmin = t1
			entered = true
			normal = withComponent(Vec3{}, a, sign)
		}
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, Vec3{}, false
		}
	}

	if !entered {
		return 0, dir.Scale(-1), true
	}
	return tmin, normal, true
}

// SphereCast sweeps a sphere from origin along dir and returns the nearest
// box on a layer selected by mask. Boxes are grown by the radius, so corner
// hits are slightly conservative.
func (w *World) SphereCast(origin Vec3, radius float64, dir Vec3, distance float64, mask locomotion.LayerMask) (locomotion.Hit, bool) {
	dir = dir.Normalize()
	if dir.IsZero() || distance < 0 {
		return locomotion.Hit{}, false
	}

	best := locomotion.Hit{Distance: math.Inf(1)}
	found := false
	for _, b := range w.boxes {
		if !mask.Contains(b.Layer) {
			continue
		}
		grown := b.Expand(radius)
		var (
			t      float64
			normal Vec3
			ok     bool
		)
		if grown.Contains(origin) {
			t, normal, ok = 0, dir.Scale(-1), true
		} else {
			t, normal, ok = sweepBox(origin, dir, grown, distance)
		}
		if !ok || t >= best.Distance {
			continue
		}
		best = locomotion.Hit{
			Point:    origin.Add(dir.Scale(t)).Sub(normal.Scale(radius)),
			Normal:   normal,
			Distance: t,
			Layer:    b.Layer,
		}
		found = true
	}
	if !found {
		return locomotion.Hit{}, false
	}
	return best, true
}
