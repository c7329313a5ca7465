package tabular

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r1"
)

// ActionMapper maps discrete action indices in [0, actions) onto
// continuous actions in a closed interval. The mapping is linear,
// monotonic, and exact at both endpoints.
type ActionMapper struct {
	actions int
	bounds  r1.Interval
}

// NewActionMapper returns a new ActionMapper over actions discrete
// actions and the continuous interval bounds
func NewActionMapper(actions int, bounds r1.Interval) (ActionMapper, error) {
	if actions < 1 {
		return ActionMapper{}, fmt.Errorf("newActionMapper: number of "+
			"actions %v must be positive", actions)
	}
	if math.IsNaN(bounds.Min) || math.IsNaN(bounds.Max) ||
		bounds.Min > bounds.Max {
		return ActionMapper{}, fmt.Errorf("newActionMapper: illegal action "+
			"range [%v, %v]", bounds.Min, bounds.Max)
	}
	return ActionMapper{actions, bounds}, nil
}

// Continuous returns the continuous action for the discrete action
// index. With a single discrete action, every index maps to the
// minimum of the range.
func (m ActionMapper) Continuous(action int) float64 {
	if m.actions == 1 {
		return m.bounds.Min
	}
	if action == m.actions-1 {
		return m.bounds.Max
	}

	fraction := float64(action) / float64(m.actions-1)
	return m.bounds.Min + fraction*(m.bounds.Max-m.bounds.Min)
}

// Actions returns the number of discrete actions
func (m ActionMapper) Actions() int {
	return m.actions
}
