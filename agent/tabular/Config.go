// Package tabular implements the components shared by tabular control
// algorithms on the cartpole domain: discretizing observations into
// States, ε-greedy action selection over ValueTables, mapping discrete
// actions to continuous forces, and checkpointing ValueTables.
//
// The algorithms themselves live in the subpackages qlearning, sarsa,
// doubleq, and montecarlo.
package tabular

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// Config represents a configuration for a tabular agent. A Config is
// fixed for the lifetime of the agent it creates.
type Config struct {
	Actions         int         `json:"actions" mapstructure:"actions"`
	ActionRange     r1.Interval `json:"action_range" mapstructure:"action_range"`
	Bins            []int       `json:"bins" mapstructure:"bins"`
	LearningRate    float64     `json:"learning_rate" mapstructure:"learning_rate"`
	InitialEpsilon  float64     `json:"initial_epsilon" mapstructure:"initial_epsilon"`
	EpsilonDecay    float64     `json:"epsilon_decay" mapstructure:"epsilon_decay"`
	FinalEpsilon    float64     `json:"final_epsilon" mapstructure:"final_epsilon"`
	Discount        float64     `json:"discount" mapstructure:"discount"`

	// IncludeTerminal determines whether Monte Carlo agents credit the
	// transition passed along with the end of an episode. By default it
	// is dropped, and only the transitions observed before the end of
	// the episode are used to compute returns.
	IncludeTerminal bool `json:"include_terminal" mapstructure:"include_terminal"`
}

// Validate returns an error describing why the Config is invalid, or
// nil if it is valid
func (c Config) Validate() error {
	if c.Actions < 1 {
		return fmt.Errorf("validate: number of actions %v must be positive",
			c.Actions)
	}
	if math.IsNaN(c.ActionRange.Min) || math.IsNaN(c.ActionRange.Max) ||
		c.ActionRange.Min > c.ActionRange.Max {
		return fmt.Errorf("validate: illegal action range [%v, %v]",
			c.ActionRange.Min, c.ActionRange.Max)
	}
	if len(c.Bins) != StateDims {
		return fmt.Errorf("validate: expected %v bin counts but got %v",
			StateDims, len(c.Bins))
	}
	for i, n := range c.Bins {
		if n < 1 {
			return fmt.Errorf("validate: bin count %v for feature %v must "+
				"be positive", n, i)
		}
	}
	if !(c.LearningRate > 0 && c.LearningRate <= 1) {
		return fmt.Errorf("validate: learning rate %v not in (0, 1]",
			c.LearningRate)
	}
	if !(c.InitialEpsilon >= 0 && c.InitialEpsilon <= 1) {
		return fmt.Errorf("validate: initial epsilon %v not in [0, 1]",
			c.InitialEpsilon)
	}
	if !(c.EpsilonDecay > 0 && c.EpsilonDecay <= 1) {
		return fmt.Errorf("validate: epsilon decay %v not in (0, 1]",
			c.EpsilonDecay)
	}
	if !(c.FinalEpsilon >= 0 && c.FinalEpsilon <= c.InitialEpsilon) {
		return fmt.Errorf("validate: final epsilon %v not in [0, %v]",
			c.FinalEpsilon, c.InitialEpsilon)
	}
	if !(c.Discount >= 0 && c.Discount <= 1) {
		return fmt.Errorf("validate: discount %v not in [0, 1]", c.Discount)
	}
	return nil
}
