package sim

import (
	"github.com/Versifine/stride/internal/locomotion"
	"github.com/Versifine/stride/internal/world"
)

// Character wires a controller to its world and camera.
type Character struct {
	World      *world.World
	Camera     *OrbitCamera
	Controller *locomotion.Controller
}

func NewCharacter(settings locomotion.Settings, w *world.World, camera *OrbitCamera, telemetry locomotion.Telemetry, opts ...locomotion.Option) (*Character, error) {
	collab := locomotion.Collaborators{Telemetry: telemetry}
	// Typed nils would slip past the controller's checks.
	if w != nil {
		collab.Prober = w
		collab.Mover = w
		collab.Body = w
	}
	if camera != nil {
		collab.Camera = camera
	}
	ctrl, err := locomotion.New(settings, collab, opts...)
	if err != nil {
		return nil, err
	}
	return &Character{World: w, Camera: camera, Controller: ctrl}, nil
}

func (c *Character) Step(dt float64) { c.Controller.Step(dt) }
