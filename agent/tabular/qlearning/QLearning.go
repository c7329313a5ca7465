// Package qlearning implements the tabular Q-Learning algorithm
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

func init() {
	agent.Register(agent.QLearning, func(c tabular.Config,
		seed uint64) (agent.Agent, error) {
		return New(c, seed)
	})
}

// QLearning implements the Q-Learning algorithm with an ε-greedy
// behaviour policy. Q-Learning bootstraps off the greedy value of the
// next state:
//
//	Q(s, a) ← Q(s, a) + α[r + γ max_a' Q(s', a') - Q(s, a)]
type QLearning struct {
	*tabular.Base
	q *tabular.ValueTable

	learningRate float64
	discount     float64
}

// New creates a new QLearning agent
func New(c tabular.Config, seed uint64) (*QLearning, error) {
	base, err := tabular.NewBase(c, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &QLearning{
		Base:         base,
		q:            tabular.NewValueTable(c.Actions),
		learningRate: c.LearningRate,
		discount:     c.Discount,
	}, nil
}

// Q returns the action values learned by the agent
func (q *QLearning) Q() *tabular.ValueTable {
	return q.q
}

// SelectAction selects an action in the state of obs
func (q *QLearning) SelectAction(obs mat.Vector) (float64, int) {
	action := q.Policy().Select(q.q, q.Discretize(obs))
	return q.Continuous(action), action
}

// Update performs a single Q-Learning update
func (q *QLearning) Update(obs mat.Vector, action int, reward float64,
	nextObs mat.Vector) error {
	if err := q.CheckAction(action); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	state, nextState := q.Discretize(obs), q.Discretize(nextObs)

	target := reward + q.discount*q.q.Max(nextState)
	q.q.Add(state, action, q.learningRate*(target-q.q.Value(state, action)))
	return nil
}

// Observe updates the agent with a single transition
func (q *QLearning) Observe(t ts.Transition) error {
	return q.Update(t.Obs, t.Action, t.Reward, t.NextObs)
}

// MeanValue returns the mean of all stored action values
func (q *QLearning) MeanValue() float64 {
	return q.q.Mean()
}

// Save writes the action values to a checkpoint
func (q *QLearning) Save(filename string) error {
	return tabular.Save(filename, q.sections())
}

// Load reads the action values from a checkpoint
func (q *QLearning) Load(filename string) error {
	return tabular.Load(filename, q.sections(), q.Discretizer())
}

func (q *QLearning) sections() tabular.Sections {
	return tabular.Sections{
		Values: map[string]*tabular.ValueTable{tabular.QValues: q.q},
	}
}

// Type returns the Type of the agent
func (q *QLearning) Type() agent.Type {
	return agent.QLearning
}
