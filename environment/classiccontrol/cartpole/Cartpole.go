// Package cartpole implements the Cartpole classic control environment
// with a continuous horizontal force as the action
package cartpole

import (
	"fmt"
	"math"

	"github.com/samuelfneumann/tabular/environment"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	HalfPoleLength float64 = 0.5  // half of pole length
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds        float64 = 4.8
	AngleBounds           float64 = math.Pi
	SpeedBounds           float64 = math.MaxFloat64
	AngularVelocityBounds float64 = math.MaxFloat64

	// Bounds (+/-) on the force applied to the cart
	MaxForce float64 = 20.0

	ObservationDims int = 4
)

// Observation feature indices
const (
	Position int = iota
	Angle
	Speed
	AngularVelocity
)

// Cartpole implements the classic control environment Cartpole. In
// this environment, a pole is attached to a cart, which can move
// horizontally. The agent must keep the pole upright by pushing the
// cart.
//
// Observations are continuous and ordered as
//
//	Index	Feature
//	  0		cart position
//	  1		pole angle from the positive y-axis
//	  2		cart speed
//	  3		pole angular velocity
//
// The cart position is clipped to ±PositionBounds, upon which the
// cart's speed is set to 0. The pole angle is wrapped into (-π, π].
//
// Actions are continuous, consisting of the horizontal force applied
// to the cart. Forces are clipped to ±MaxForce.
type Cartpole struct {
	environment.Task
	lastStep ts.TimeStep

	gravity        float64
	poleMass       float64
	halfPoleLength float64
	cartMass       float64
	dt             float64

	positionBounds r1.Interval
	forceBounds    r1.Interval
}

// New constructs a new Cartpole environment and returns it along with
// the first TimeStep of the first episode
func New(t environment.Task) (*Cartpole, ts.TimeStep) {
	c := &Cartpole{
		Task:           t,
		gravity:        Gravity,
		poleMass:       PoleMass,
		halfPoleLength: HalfPoleLength,
		cartMass:       CartMass,
		dt:             Dt,
		positionBounds: r1.Interval{Min: -PositionBounds, Max: PositionBounds},
		forceBounds:    r1.Interval{Min: -MaxForce, Max: MaxForce},
	}

	return c, c.Reset()
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (c *Cartpole) Reset() ts.TimeStep {
	state := c.Start()
	c.validateState(state)

	c.lastStep = ts.New(ts.First, 0.0, state, 0)
	return c.lastStep
}

// LastTimeStep returns the last TimeStep generated by the environment
func (c *Cartpole) LastTimeStep() ts.TimeStep {
	return c.lastStep
}

// ActionSpec returns the action specification of the environment
func (c *Cartpole) ActionSpec() environment.Spec {
	return environment.NewSpec(c.forceBounds)
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Cartpole) ObservationSpec() environment.Spec {
	return environment.NewSpec(
		c.positionBounds,
		r1.Interval{Min: -AngleBounds, Max: AngleBounds},
		r1.Interval{Min: -SpeedBounds, Max: SpeedBounds},
		r1.Interval{Min: -AngularVelocityBounds, Max: AngularVelocityBounds},
	)
}

// Step takes one environmental step given the force applied to the
// cart and returns the next TimeStep and a bool indicating whether or
// not the episode has ended
func (c *Cartpole) Step(force float64) (ts.TimeStep, bool) {
	if math.IsNaN(force) {
		panic("step: force is NaN")
	}
	force = floatutils.ClipInterval(force, c.forceBounds)

	state := c.lastStep.Observation
	nextState := c.nextState(state, force)

	action := mat.NewVecDense(1, []float64{force})
	reward := c.GetReward(state, action, nextState)
	nextStep := ts.New(ts.Mid, reward, nextState, c.lastStep.Number+1)

	// Check if the step ends the episode
	c.End(&nextStep)

	c.lastStep = nextStep
	return nextStep, nextStep.Last()
}

// nextState calculates the state reached by applying force to the cart
// in the argument state
func (c *Cartpole) nextState(state mat.Vector, force float64) *mat.VecDense {
	x, th := state.AtVec(Position), state.AtVec(Angle)
	xDot, thDot := state.AtVec(Speed), state.AtVec(AngularVelocity)

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	totalMass := c.poleMass + c.cartMass
	poleMassLength := c.poleMass * c.halfPoleLength

	temp := (force + poleMassLength*thDot*thDot*sinTheta) / totalMass
	thAcc := (c.gravity*sinTheta - cosTheta*temp) / (c.halfPoleLength *
		(4.0/3.0 - c.poleMass*cosTheta*cosTheta/totalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/totalMass

	// Update state variables using Euler kinematic integration
	x += c.dt * xDot
	xDot += c.dt * xAcc
	if x <= c.positionBounds.Min || x >= c.positionBounds.Max {
		x = floatutils.ClipInterval(x, c.positionBounds)
		xDot = 0.0
	}

	th = normalizeAngle(th + c.dt*thDot)
	thDot += c.dt * thAcc

	next := make([]float64, ObservationDims)
	next[Position], next[Angle] = x, th
	next[Speed], next[AngularVelocity] = xDot, thDot

	return mat.NewVecDense(ObservationDims, next)
}

// validateState ensures that a starting state is valid and within the
// physical bounds of the environment
func (c *Cartpole) validateState(obs mat.Vector) {
	if obs.Len() != ObservationDims {
		panic(fmt.Sprintf("validateState: state should have %v features "+
			"but got %v", ObservationDims, obs.Len()))
	}

	if !contains(c.positionBounds, obs.AtVec(Position)) {
		panic(fmt.Sprintf("validateState: position %v is not within "+
			"bounds %v", obs.AtVec(Position), c.positionBounds))
	}

	angleBounds := r1.Interval{Min: -AngleBounds, Max: AngleBounds}
	if !contains(angleBounds, obs.AtVec(Angle)) {
		panic(fmt.Sprintf("validateState: angle %v is not within "+
			"bounds %v", obs.AtVec(Angle), angleBounds))
	}
}

func (c *Cartpole) String() string {
	msg := "Cartpole  |  Position: %v  |  Angle: %v  |  Speed: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	return fmt.Sprintf(msg, state.AtVec(Position), state.AtVec(Angle),
		state.AtVec(Speed), state.AtVec(AngularVelocity))
}

func contains(i r1.Interval, value float64) bool {
	return value >= i.Min && value <= i.Max
}

// normalizeAngle wraps an angle into (-π, π]
func normalizeAngle(th float64) float64 {
	th = math.Mod(th+math.Pi, 2*math.Pi)
	if th <= 0 {
		th += 2 * math.Pi
	}
	return th - math.Pi
}
