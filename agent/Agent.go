// Package agent defines the interface shared by the tabular control
// agents and a registry used to construct them by Type
package agent

import (
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

// Agent determines the implementation details of a tabular control
// algorithm.
//
// An Agent selects actions with its behaviour policy, learns from the
// transitions those actions lead to, and can persist what it has
// learned. Each episode, the caller is responsible for decaying the
// exploration of the behaviour policy with DecayEpsilon.
type Agent interface {
	Policy
	Learner

	// DecayEpsilon decays the exploration rate of the behaviour policy
	DecayEpsilon()

	// Epsilon returns the current exploration rate
	Epsilon() float64

	// MeanValue returns the mean of all stored action values
	MeanValue() float64

	// Save and Load write and read the agent's tables to and from a
	// checkpoint file
	Save(filename string) error
	Load(filename string) error

	// Type returns the registered Type of the agent
	Type() Type
}

// Policy selects actions. SelectAction returns both the continuous
// action to apply to the environment and the discrete action index
// it was mapped from.
type Policy interface {
	SelectAction(obs mat.Vector) (float64, int)
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// Learner learns from transitions
type Learner interface {
	// Observe updates the learner with a single transition. An error is
	// returned if the transition's action is not a legal action index.
	Observe(t ts.Transition) error
}

// OnPolicy is an Agent that bootstraps from the action it will take
// next. The next action must be selected, and stored in the
// Transition, before the Transition is observed.
type OnPolicy interface {
	Agent
	OnPolicy()
}
