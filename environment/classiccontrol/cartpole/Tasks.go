package cartpole

import (
	"math"

	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	FailAngle    float64 = 24 * 2 * math.Pi / 360
	FailPosition float64 = 3.0
)

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to balance the pole on the cart in
// an upright position for as long as possible.
//
// The rewards are +1 for every timestep and -1 when the pole has fallen
// past the fail angle θ or the cart has left the track.
//
// Episodes end after a step limit, after the pole has fallen past θ, or
// after the cart position has left ±failPosition.
type Balance struct {
	environment.Starter
	stepLimiter  *environment.StepLimit
	stateLimiter *environment.IntervalLimit
	failAngle    float64
	failPosition float64
}

// NewBalance creates and returns a new Balance task
func NewBalance(s environment.Starter, episodeSteps int, failAngle,
	failPosition float64) *Balance {
	stepLimiter := environment.NewStepLimit(episodeSteps)

	legal := []r1.Interval{
		{Min: -failPosition, Max: failPosition},
		{Min: -failAngle, Max: failAngle},
	}
	stateLimiter := environment.NewIntervalLimit(legal,
		[]int{Position, Angle})

	return &Balance{s, stepLimiter, stateLimiter, failAngle, failPosition}
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep's StepType to timestep.Last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
func (b *Balance) End(t *ts.TimeStep) bool {
	if end := b.stateLimiter.End(t); end {
		return true
	}
	return b.stepLimiter.End(t)
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (b *Balance) GetReward(_, _, nextState mat.Vector) float64 {
	if b.Failed(nextState) {
		return -1.0
	}
	return 1.0
}

// Failed returns whether the pole has fallen or the cart has left the
// track in the argument state
func (b *Balance) Failed(state mat.Vector) bool {
	return math.Abs(state.AtVec(Angle)) > b.failAngle ||
		math.Abs(state.AtVec(Position)) > b.failPosition
}

// NewDefault returns a Cartpole environment performing the Balance
// task with starting states sampled uniformly from [-0.05, 0.05] for
// each feature
func NewDefault(episodeSteps int, seed uint64) (*Cartpole, ts.TimeStep) {
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	s := environment.NewUniformStarter([]r1.Interval{
		bounds,
		bounds,
		bounds,
		bounds,
	}, seed)

	task := NewBalance(s, episodeSteps, FailAngle, FailPosition)
	return New(task)
}
