package locomotion

// probeGround casts the ground sphere from the body's current position.
func probeGround(prober Prober, position Vec3, s Settings) ProbeSample {
	start := position.Add(Up.Scale(s.GroundCheckOffset))
	sample := ProbeSample{
		Start:  start,
		End:    start.Add(Down.Scale(s.GroundCheckDistance)),
		Radius: s.GroundCheckRadius,
		Normal: Up,
	}

	hit, ok := prober.SphereCast(start, s.GroundCheckRadius, Down, s.GroundCheckDistance, s.GroundMask)
	if !ok {
		return sample
	}
	sample.Grounded = true
	sample.Normal = hit.Normal
	return sample
}
