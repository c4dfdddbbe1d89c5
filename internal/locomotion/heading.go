package locomotion

import "math"

// YawOf returns the heading in degrees that faces along v in the
// horizontal plane. +Z is 0, +X is 90. The zero vector faces forward.
func YawOf(v Vec3) float64 {
	if math.Abs(v.X) <= epsilon && math.Abs(v.Z) <= epsilon {
		return 0
	}
	return NormalizeAngle(math.Atan2(v.X, v.Z) * 180.0 / math.Pi)
}

// DirectionOf rotates the forward axis by yaw degrees about world up.
func DirectionOf(yaw float64) Vec3 {
	rad := yaw * math.Pi / 180.0
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}

// SlerpYaw interpolates from current toward target along the shortest arc.
// t is clamped to [0, 1] so the result never passes the target.
func SlerpYaw(current, target, t float64) float64 {
	if t <= 0 {
		return NormalizeAngle(current)
	}
	if t >= 1 {
		return NormalizeAngle(target)
	}
	return NormalizeAngle(current + signedAngleDelta(current, target)*t)
}

// AngleBetween is the unsigned shortest-arc distance between two yaws.
func AngleBetween(a, b float64) float64 {
	return math.Abs(signedAngleDelta(a, b))
}

func signedAngleDelta(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// NormalizeAngle maps v into (-180, 180].
func NormalizeAngle(v float64) float64 {
	v = math.Mod(v, 360)
	if v <= -180 {
		v += 360
	} else if v > 180 {
		v -= 360
	}
	return v
}
