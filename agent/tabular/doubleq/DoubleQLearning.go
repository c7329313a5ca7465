// Package doubleq implements the tabular Double Q-Learning algorithm
package doubleq

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

func init() {
	agent.Register(agent.DoubleQLearning, func(c tabular.Config,
		seed uint64) (agent.Agent, error) {
		return New(c, seed)
	})
}

// Table identifies one of the two ValueTables of a DoubleQLearning
// agent
type Table int

const (
	A Table = iota
	B
)

func (t Table) String() string {
	if t == A {
		return "A"
	}
	return "B"
}

// DoubleQLearning implements the Double Q-Learning algorithm with an
// ε-greedy behaviour policy. Two ValueTables are learned, and updates
// alternate between them. The updated table bootstraps off the greedy
// value of the other:
//
//	Qa(s, a) ← Qa(s, a) + α[r + γ max_a' Qb(s', a') - Qa(s, a)]
//
// and symmetrically for Qb. Actions are selected using both tables,
// see tabular.EGreedy.SelectDouble.
type DoubleQLearning struct {
	*tabular.Base
	qa, qb *tabular.ValueTable
	target Table

	learningRate float64
	discount     float64
}

// New creates a new DoubleQLearning agent. The first update targets
// table A.
func New(c tabular.Config, seed uint64) (*DoubleQLearning, error) {
	base, err := tabular.NewBase(c, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &DoubleQLearning{
		Base:         base,
		qa:           tabular.NewValueTable(c.Actions),
		qb:           tabular.NewValueTable(c.Actions),
		target:       A,
		learningRate: c.LearningRate,
		discount:     c.Discount,
	}, nil
}

// QA returns the first table of action values
func (d *DoubleQLearning) QA() *tabular.ValueTable {
	return d.qa
}

// QB returns the second table of action values
func (d *DoubleQLearning) QB() *tabular.ValueTable {
	return d.qb
}

// Target returns the table that the next update will modify
func (d *DoubleQLearning) Target() Table {
	return d.target
}

// SelectAction selects an action in the state of obs
func (d *DoubleQLearning) SelectAction(obs mat.Vector) (float64, int) {
	action := d.Policy().SelectDouble(d.qa, d.qb, d.Discretize(obs))
	return d.Continuous(action), action
}

// Update performs a single Double Q-Learning update on the target
// table. The target switches to the other table after every call,
// including calls that return an error.
func (d *DoubleQLearning) Update(obs mat.Vector, action int, reward float64,
	nextObs mat.Vector) error {
	updated, other := d.qa, d.qb
	if d.target == B {
		updated, other = d.qb, d.qa
	}
	d.target = 1 - d.target

	if err := d.CheckAction(action); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	state, nextState := d.Discretize(obs), d.Discretize(nextObs)

	target := reward + d.discount*other.Max(nextState)
	updated.Add(state, action,
		d.learningRate*(target-updated.Value(state, action)))
	return nil
}

// Observe updates the agent with a single transition
func (d *DoubleQLearning) Observe(t ts.Transition) error {
	return d.Update(t.Obs, t.Action, t.Reward, t.NextObs)
}

// MeanValue returns the mean of the stored action values of both
// tables
func (d *DoubleQLearning) MeanValue() float64 {
	return (d.qa.Mean() + d.qb.Mean()) / 2.0
}

// Save writes both tables of action values to a checkpoint
func (d *DoubleQLearning) Save(filename string) error {
	return tabular.Save(filename, d.sections())
}

// Load reads both tables of action values from a checkpoint
func (d *DoubleQLearning) Load(filename string) error {
	return tabular.Load(filename, d.sections(), d.Discretizer())
}

func (d *DoubleQLearning) sections() tabular.Sections {
	return tabular.Sections{
		Values: map[string]*tabular.ValueTable{
			tabular.QAValues: d.qa,
			tabular.QBValues: d.qb,
		},
	}
}

// Type returns the Type of the agent
func (d *DoubleQLearning) Type() agent.Type {
	return agent.DoubleQLearning
}
