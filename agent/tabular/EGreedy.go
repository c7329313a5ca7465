package tabular

import (
	"golang.org/x/exp/rand"
)

// EGreedy implements an ε-greedy policy over ValueTables. With
// probability ε a uniformly random action is selected, otherwise the
// action with the largest value is selected.
//
// ε starts at an initial value and is decayed geometrically by Decay,
// never dropping below a final value. In evaluation mode the policy is
// greedy, but ε itself is left untouched so that training can resume.
type EGreedy struct {
	epsilon float64
	decay   float64
	final   float64
	eval    bool
	rng     *rand.Rand
}

// NewEGreedy returns a new EGreedy policy with ε = initial
func NewEGreedy(initial, decay, final float64, seed uint64) *EGreedy {
	return &EGreedy{
		epsilon: initial,
		decay:   decay,
		final:   final,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// explore draws whether to explore, and if so, which random action in
// [0, actions) to take
func (p *EGreedy) explore(actions int) (int, bool) {
	if p.eval {
		return 0, false
	}
	if p.rng.Float64() < p.epsilon {
		return p.rng.Intn(actions), true
	}
	return 0, false
}

// Select selects an action in s using the action values of q
func (p *EGreedy) Select(q *ValueTable, s State) int {
	if action, ok := p.explore(q.Actions()); ok {
		return action
	}
	return q.Argmax(s)
}

// SelectDouble selects an action in s using two ValueTables. When
// acting greedily, the greedy action of each table is found, and the
// one whose own value is largest is selected. The first table wins
// ties.
func (p *EGreedy) SelectDouble(qa, qb *ValueTable, s State) int {
	if action, ok := p.explore(qa.Actions()); ok {
		return action
	}

	actionA, actionB := qa.Argmax(s), qb.Argmax(s)
	if qa.Value(s, actionA) >= qb.Value(s, actionB) {
		return actionA
	}
	return actionB
}

// Decay decays ε by the decay rate, flooring it at the final ε
func (p *EGreedy) Decay() {
	p.epsilon *= p.decay
	if p.epsilon < p.final {
		p.epsilon = p.final
	}
}

// Epsilon returns the current ε
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}

// Eval sets the policy to evaluation mode
func (p *EGreedy) Eval() { p.eval = true }

// Train sets the policy to training mode
func (p *EGreedy) Train() { p.eval = false }

// IsEval returns whether the policy is in evaluation mode
func (p *EGreedy) IsEval() bool { return p.eval }
