package sim

import "github.com/Versifine/stride/internal/locomotion"

// OrbitCamera is a yaw-only camera rig orbiting the character.
type OrbitCamera struct {
	yaw float64
}

func NewOrbitCamera(yaw float64) *OrbitCamera {
	return &OrbitCamera{yaw: locomotion.NormalizeAngle(yaw)}
}

func (c *OrbitCamera) Yaw() float64 { return c.yaw }

func (c *OrbitCamera) SetYaw(yaw float64) { c.yaw = locomotion.NormalizeAngle(yaw) }

func (c *OrbitCamera) Rotate(delta float64) { c.yaw = locomotion.NormalizeAngle(c.yaw + delta) }
