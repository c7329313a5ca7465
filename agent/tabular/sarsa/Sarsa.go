// Package sarsa implements the tabular Sarsa algorithm, the on-policy
// one-step temporal difference control method
package sarsa

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

func init() {
	agent.Register(agent.Sarsa, func(c tabular.Config,
		seed uint64) (agent.Agent, error) {
		return New(c, seed)
	})
}

// Sarsa implements the Sarsa algorithm with an ε-greedy behaviour
// policy. Sarsa bootstraps off the value of the action the behaviour
// policy selects in the next state:
//
//	Q(s, a) ← Q(s, a) + α[r + γ Q(s', a') - Q(s, a)]
//
// so the next action must be selected before each update.
type Sarsa struct {
	*tabular.Base
	q *tabular.ValueTable

	learningRate float64
	discount     float64
}

// New creates a new Sarsa agent
func New(c tabular.Config, seed uint64) (*Sarsa, error) {
	base, err := tabular.NewBase(c, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &Sarsa{
		Base:         base,
		q:            tabular.NewValueTable(c.Actions),
		learningRate: c.LearningRate,
		discount:     c.Discount,
	}, nil
}

// Q returns the action values learned by the agent
func (s *Sarsa) Q() *tabular.ValueTable {
	return s.q
}

// SelectAction selects an action in the state of obs
func (s *Sarsa) SelectAction(obs mat.Vector) (float64, int) {
	action := s.Policy().Select(s.q, s.Discretize(obs))
	return s.Continuous(action), action
}

// Update performs a single Sarsa update
func (s *Sarsa) Update(obs mat.Vector, action int, reward float64,
	nextObs mat.Vector, nextAction int) error {
	if err := s.CheckAction(action); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := s.CheckAction(nextAction); err != nil {
		return fmt.Errorf("update: next action: %w", err)
	}

	state, nextState := s.Discretize(obs), s.Discretize(nextObs)

	target := reward + s.discount*s.q.Value(nextState, nextAction)
	s.q.Add(state, action, s.learningRate*(target-s.q.Value(state, action)))
	return nil
}

// Observe updates the agent with a single transition. The
// transition's NextAction must already be selected.
func (s *Sarsa) Observe(t ts.Transition) error {
	return s.Update(t.Obs, t.Action, t.Reward, t.NextObs, t.NextAction)
}

// OnPolicy marks Sarsa as an on-policy agent
func (s *Sarsa) OnPolicy() {}

// MeanValue returns the mean of all stored action values
func (s *Sarsa) MeanValue() float64 {
	return s.q.Mean()
}

// Save writes the action values to a checkpoint
func (s *Sarsa) Save(filename string) error {
	return tabular.Save(filename, s.sections())
}

// Load reads the action values from a checkpoint
func (s *Sarsa) Load(filename string) error {
	return tabular.Load(filename, s.sections(), s.Discretizer())
}

func (s *Sarsa) sections() tabular.Sections {
	return tabular.Sections{
		Values: map[string]*tabular.ValueTable{tabular.QValues: s.q},
	}
}

// Type returns the Type of the agent
func (s *Sarsa) Type() agent.Type {
	return agent.Sarsa
}
