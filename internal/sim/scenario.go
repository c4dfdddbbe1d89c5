package sim

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/Versifine/stride/internal/locomotion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidScenario = errors.New("invalid scenario")

// Scenario is a scripted input sequence replayed at the fixed rate.
type Scenario struct {
	Name   string  `yaml:"name"`
	Phases []Phase `yaml:"phases"`
}

// Phase holds one input configuration for Duration seconds. Move and Look
// are stick axes [x, z]. Look defaults to Move, the way a gamepad host
// feeds the stick into both.
type Phase struct {
	Name      string    `yaml:"name"`
	Duration  float64   `yaml:"duration"`
	Move      []float64 `yaml:"move"`
	Look      []float64 `yaml:"look"`
	CameraYaw *float64  `yaml:"camera_yaw"`
	Jump      bool      `yaml:"jump"`
}

// Pilot is the input surface a scenario drives.
type Pilot interface {
	SetMoveInput(raw locomotion.Vec3)
	SetLookDirection(raw locomotion.Vec3)
	RequestJump()
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Scenario{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) Validate() error {
	if len(s.Phases) == 0 {
		return fmt.Errorf("%w: no phases", ErrInvalidScenario)
	}
	for i, p := range s.Phases {
		if p.Duration <= 0 {
			return fmt.Errorf("%w: phase %d has non-positive duration", ErrInvalidScenario, i)
		}
		if p.Move != nil && len(p.Move) != 2 {
			return fmt.Errorf("%w: phase %d move must be [x, z]", ErrInvalidScenario, i)
		}
		if p.Look != nil && len(p.Look) != 2 {
			return fmt.Errorf("%w: phase %d look must be [x, z]", ErrInvalidScenario, i)
		}
	}
	return nil
}

func stickAxis(v []float64) locomotion.Vec3 {
	if len(v) != 2 {
		return locomotion.Vec3{}
	}
	return locomotion.Vec3{X: v[0], Z: v[1]}
}

// Replay feeds every phase through a Runner with one fixed step per frame
// and returns the number of steps run.
func Replay(s *Scenario, pilot Pilot, stepper Stepper, camera *OrbitCamera, fixedStep time.Duration) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if fixedStep <= 0 {
		fixedStep = DefaultFixedStep
	}

	var current *Phase
	phaseStart := false
	runner, err := NewRunner(stepper, func(time.Duration) {
		if !phaseStart {
			return
		}
		phaseStart = false
		move := stickAxis(current.Move)
		look := move
		if current.Look != nil {
			look = stickAxis(current.Look)
		}
		pilot.SetMoveInput(move)
		pilot.SetLookDirection(look)
		if current.CameraYaw != nil && camera != nil {
			camera.SetYaw(*current.CameraYaw)
		}
		if current.Jump {
			pilot.RequestJump()
		}
	}, WithFixedStep(fixedStep), WithMaxStepsPerFrame(1))
	if err != nil {
		return 0, err
	}

	total := 0
	for i := range s.Phases {
		current = &s.Phases[i]
		phaseStart = true
		steps := int(math.Round(current.Duration / fixedStep.Seconds()))
		if steps < 1 {
			steps = 1
		}
		for j := 0; j < steps; j++ {
			total += runner.Frame(fixedStep)
		}
	}
	return total, nil
}
