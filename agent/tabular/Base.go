package tabular

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Base implements the functionality common to all tabular agents:
// discretizing observations, mapping actions to continuous forces,
// and managing the ε-greedy behaviour policy. Concrete agents embed a
// *Base and add their own ValueTables and update rule.
type Base struct {
	config      Config
	discretizer *Discretizer
	mapper      ActionMapper
	policy      *EGreedy
}

// NewBase returns a new Base for the argument Config, seeding the
// behaviour policy with seed
func NewBase(c Config, seed uint64) (*Base, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	discretizer, err := NewDiscretizer(c.Bins)
	if err != nil {
		return nil, err
	}

	mapper, err := NewActionMapper(c.Actions, c.ActionRange)
	if err != nil {
		return nil, err
	}

	c.Bins = discretizer.Bins()
	policy := NewEGreedy(c.InitialEpsilon, c.EpsilonDecay, c.FinalEpsilon,
		seed)

	return &Base{
		config:      c,
		discretizer: discretizer,
		mapper:      mapper,
		policy:      policy,
	}, nil
}

// Config returns the Config the agent was created with
func (b *Base) Config() Config {
	c := b.config
	c.Bins = append([]int(nil), c.Bins...)
	return c
}

// Discretizer returns the Discretizer used by the agent
func (b *Base) Discretizer() *Discretizer {
	return b.discretizer
}

// Policy returns the behaviour policy of the agent
func (b *Base) Policy() *EGreedy {
	return b.policy
}

// Discretize returns the State of an observation
func (b *Base) Discretize(obs mat.Vector) State {
	return b.discretizer.Discretize(obs)
}

// Continuous returns the continuous action for a discrete action index
func (b *Base) Continuous(action int) float64 {
	return b.mapper.Continuous(action)
}

// CheckAction returns an error if action is not a legal action index
func (b *Base) CheckAction(action int) error {
	if action < 0 || action >= b.config.Actions {
		return fmt.Errorf("illegal action %v ∉ [0, %v)", action,
			b.config.Actions)
	}
	return nil
}

// DecayEpsilon decays ε of the behaviour policy
func (b *Base) DecayEpsilon() {
	b.policy.Decay()
}

// Epsilon returns the current ε of the behaviour policy
func (b *Base) Epsilon() float64 {
	return b.policy.Epsilon()
}

// Eval sets the agent to evaluation mode, in which actions are
// selected greedily
func (b *Base) Eval() { b.policy.Eval() }

// Train sets the agent to training mode
func (b *Base) Train() { b.policy.Train() }

// IsEval returns whether the agent is in evaluation mode
func (b *Base) IsEval() bool { return b.policy.IsEval() }
