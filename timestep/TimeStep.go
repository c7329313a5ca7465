// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	StepType
	Reward      float64
	Observation mat.Vector
	Number      int
}

// New returns a new TimeStep
func New(t StepType, r float64, o mat.Vector, n int) TimeStep {
	return TimeStep{t, r, o, n}
}

// First returns whether a TimeStep is the first in an episode
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an episode
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an episode
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Number)
}

// Transition is a single (s, a, r, s', a') transition together with
// a flag indicating whether s' ended the episode. NextAction is only
// meaningful to on-policy learners, which must have chosen it before
// the transition is observed.
type Transition struct {
	Obs        mat.Vector
	Action     int
	Reward     float64
	NextObs    mat.Vector
	NextAction int
	Done       bool
}

// NewTransition constructs a Transition from the TimeStep an action was
// taken in and the TimeStep that action lead to
func NewTransition(step TimeStep, action int, next TimeStep,
	nextAction int) Transition {
	return Transition{
		Obs:        step.Observation,
		Action:     action,
		Reward:     next.Reward,
		NextObs:    next.Observation,
		NextAction: nextAction,
		Done:       next.Last(),
	}
}
