// Package montecarlo implements tabular first-visit Monte Carlo control
package montecarlo

import (
	"fmt"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/mat"
)

func init() {
	agent.Register(agent.MonteCarlo, func(c tabular.Config,
		seed uint64) (agent.Agent, error) {
		return New(c, seed)
	})
}

// MonteCarlo implements first-visit Monte Carlo control with an
// ε-greedy behaviour policy.
//
// Transitions are stored until the end of an episode. The return
// following each step is then computed, and the action value of each
// state-action pair is moved towards the return following its first
// visit in the episode with step size 1/N, where N is the number of
// episodes in which the pair was visited. The configured learning rate
// is not used.
//
// By default, the transition passed along with the end of an episode
// is not stored, so its reward does not contribute to any return. If
// the Config sets IncludeTerminal, it is stored before returns are
// computed.
type MonteCarlo struct {
	*tabular.Base
	q *tabular.ValueTable
	n *tabular.CountTable

	states  []tabular.State
	actions []int
	rewards []float64

	discount        float64
	includeTerminal bool
}

// New creates a new MonteCarlo agent
func New(c tabular.Config, seed uint64) (*MonteCarlo, error) {
	base, err := tabular.NewBase(c, seed)
	if err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	return &MonteCarlo{
		Base:            base,
		q:               tabular.NewValueTable(c.Actions),
		n:               tabular.NewCountTable(c.Actions),
		discount:        c.Discount,
		includeTerminal: c.IncludeTerminal,
	}, nil
}

// Q returns the action values learned by the agent
func (m *MonteCarlo) Q() *tabular.ValueTable {
	return m.q
}

// N returns the first-visit counts of each state-action pair
func (m *MonteCarlo) N() *tabular.CountTable {
	return m.n
}

// Pending returns the number of transitions stored for the current
// episode
func (m *MonteCarlo) Pending() int {
	return len(m.rewards)
}

// SelectAction selects an action in the state of obs
func (m *MonteCarlo) SelectAction(obs mat.Vector) (float64, int) {
	action := m.Policy().Select(m.q, m.Discretize(obs))
	return m.Continuous(action), action
}

// Update stores the transition (obs, action, reward) if done is false.
// If done is true, the stored episode is learned from and then
// cleared.
func (m *MonteCarlo) Update(done bool, obs mat.Vector, action int,
	reward float64) error {
	if err := m.CheckAction(action); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	if !done || m.includeTerminal {
		m.states = append(m.states, m.Discretize(obs))
		m.actions = append(m.actions, action)
		m.rewards = append(m.rewards, reward)
	}
	if !done {
		return nil
	}

	returns := Returns(m.rewards, m.discount)

	type pair struct {
		state  tabular.State
		action int
	}
	visited := make(map[pair]bool, len(m.states))

	for t, state := range m.states {
		p := pair{state, m.actions[t]}
		if visited[p] {
			continue
		}
		visited[p] = true

		n := m.n.Increment(p.state, p.action)
		q := m.q.Value(p.state, p.action)
		m.q.Add(p.state, p.action, (returns[t]-q)/float64(n))
	}

	m.states = m.states[:0]
	m.actions = m.actions[:0]
	m.rewards = m.rewards[:0]
	return nil
}

// Returns computes the discounted return following each step of an
// episode with the argument rewards
func Returns(rewards []float64, discount float64) []float64 {
	returns := make([]float64, len(rewards))

	g := 0.0
	for i := len(rewards) - 1; i >= 0; i-- {
		g = rewards[i] + discount*g
		returns[i] = g
	}
	return returns
}

// Observe updates the agent with a single transition
func (m *MonteCarlo) Observe(t ts.Transition) error {
	return m.Update(t.Done, t.Obs, t.Action, t.Reward)
}

// MeanValue returns the mean of all stored action values
func (m *MonteCarlo) MeanValue() float64 {
	return m.q.Mean()
}

// Save writes the action values and visit counts to a checkpoint
func (m *MonteCarlo) Save(filename string) error {
	return tabular.Save(filename, m.sections())
}

// Load reads the action values and visit counts from a checkpoint.
// Transitions stored for the current episode are kept.
func (m *MonteCarlo) Load(filename string) error {
	return tabular.Load(filename, m.sections(), m.Discretizer())
}

func (m *MonteCarlo) sections() tabular.Sections {
	return tabular.Sections{
		Values: map[string]*tabular.ValueTable{tabular.QValues: m.q},
		Counts: map[string]*tabular.CountTable{tabular.NValues: m.n},
	}
}

// Type returns the Type of the agent
func (m *MonteCarlo) Type() agent.Type {
	return agent.MonteCarlo
}
