// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples
// starting states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when an episode should end. If an episode should
// end, End modifies the argument TimeStep so that its StepType is
// timestep.Last and returns true.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme and episode termination for taking
// actions in some environment
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
}

// Environment implements a simulated environment, which includes a
// Task to complete. Actions are continuous scalars; agents with
// discrete action sets map their actions into ActionSpec before
// stepping.
type Environment interface {
	Reset() ts.TimeStep // Resets between episodes
	Step(action float64) (ts.TimeStep, bool)
	LastTimeStep() ts.TimeStep
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Renderer is an Environment that can draw its current state to an
// image file
type Renderer interface {
	Environment
	Render(filename string) error
}
