package world

import (
	"errors"
	"fmt"
)

var ErrInvalidBox = errors.New("invalid box")

// Contacts records which sides of the capsule were blocked during the
// last Move.
type Contacts struct {
	Below bool
	Above bool
	Sides bool
}

// World is a static box scene with a single character capsule. It is the
// movement primitive and ground prober for a locomotion.Controller.
type World struct {
	boxes    []Box
	radius   float64
	height   float64
	pos      Vec3
	contacts Contacts
}

func New(radius, height float64, spawn Vec3) *World {
	if radius <= 0 {
		radius = DefaultCapsuleRadius
	}
	if height <= 0 {
		height = DefaultCapsuleHeight
	}
	return &World{radius: radius, height: height, pos: spawn}
}

func (w *World) AddBox(b Box) error {
	if b.Min.X >= b.Max.X || b.Min.Y >= b.Max.Y || b.Min.Z >= b.Max.Z {
		return fmt.Errorf("%w: min %v must be below max %v on every axis", ErrInvalidBox, b.Min, b.Max)
	}
	if b.Layer == 0 {
		return fmt.Errorf("%w: box has no layer", ErrInvalidBox)
	}
	w.boxes = append(w.boxes, b)
	return nil
}

func (w *World) Boxes() []Box {
	out := make([]Box, len(w.boxes))
	copy(out, w.boxes)
	return out
}

func (w *World) Position() Vec3     { return w.pos }
func (w *World) Contacts() Contacts { return w.contacts }
func (w *World) Radius() float64    { return w.radius }
func (w *World) Height() float64    { return w.height }
func (w *World) Bounds() AABB       { return CapsuleAABB(w.pos, w.radius, w.height) }
func (w *World) Overlapping() bool  { return w.overlapsAny(w.Bounds()) }

// Teleport places the capsule without collision checks.
func (w *World) Teleport(pos Vec3) {
	w.pos = pos
	w.contacts = Contacts{}
}

// Move sweeps the capsule by displacement, resolving the vertical axis
// first and then each horizontal axis against every collider.
func (w *World) Move(displacement Vec3) {
	w.contacts = Contacts{}
	pos := w.pos

	for _, a := range [...]axis{axisY, axisX, axisZ} {
		delta := component(displacement, a)
		allowed, blocked := resolveAxis(CapsuleAABB(pos, w.radius, w.height), delta, a, w.boxes)
		pos = withComponent(pos, a, component(pos, a)+allowed)
		if !blocked {
			continue
		}
		switch {
		case a != axisY:
			w.contacts.Sides = true
		case delta < 0:
			w.contacts.Below = true
		default:
			w.contacts.Above = true
		}
	}
	w.pos = pos
}

func (w *World) overlapsAny(box AABB) bool {
	for _, b := range w.boxes {
		if intersects(box, b.AABB) {
			return true
		}
	}
	return false
}
