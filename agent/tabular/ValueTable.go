package tabular

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ValueTable maps States to a vector of per-action values. A State
// that has never been written to has the zero vector as its values;
// reading such a State does not add it to the table, so Has reports
// only States that have actually been updated or loaded.
type ValueTable struct {
	actions int
	values  map[State][]float64
}

// NewValueTable returns a new, empty ValueTable with actions values
// per State
func NewValueTable(actions int) *ValueTable {
	return &ValueTable{
		actions: actions,
		values:  make(map[State][]float64),
	}
}

// Actions returns the number of values stored per State
func (v *ValueTable) Actions() int {
	return v.actions
}

// Len returns the number of States stored in the table
func (v *ValueTable) Len() int {
	return len(v.values)
}

// Has returns whether s is stored in the table
func (v *ValueTable) Has(s State) bool {
	_, ok := v.values[s]
	return ok
}

// At returns a copy of the action values of s, or a zero vector if s
// is not stored in the table
func (v *ValueTable) At(s State) []float64 {
	out := make([]float64, v.actions)
	copy(out, v.values[s])
	return out
}

// Value returns the value of action a in s
func (v *ValueTable) Value(s State, a int) float64 {
	values, ok := v.values[s]
	if !ok {
		return 0.0
	}
	return values[a]
}

// Set sets the value of action a in s, adding s to the table if needed
func (v *ValueTable) Set(s State, a int, value float64) {
	v.row(s)[a] = value
}

// Add adds delta to the value of action a in s, adding s to the table
// if needed
func (v *ValueTable) Add(s State, a int, delta float64) {
	v.row(s)[a] += delta
}

// Max returns the maximum action value in s. States not stored in the
// table have a maximum value of 0.
func (v *ValueTable) Max(s State) float64 {
	values, ok := v.values[s]
	if !ok {
		return 0.0
	}
	return floats.Max(values)
}

// Argmax returns the action with the largest value in s. Ties are
// broken by choosing the lowest action index.
func (v *ValueTable) Argmax(s State) int {
	values, ok := v.values[s]
	if !ok {
		return 0
	}
	return floats.MaxIdx(values)
}

// Mean returns the mean action value over all stored States, or 0 if
// the table is empty
func (v *ValueTable) Mean() float64 {
	if len(v.values) == 0 {
		return 0.0
	}

	all := make([]float64, 0, len(v.values)*v.actions)
	for _, values := range v.values {
		all = append(all, values...)
	}
	return stat.Mean(all, nil)
}

// States returns all States stored in the table in lexicographic order
func (v *ValueTable) States() []State {
	return sortedStates(v.values)
}

// row returns the stored values of s, adding a zero vector for s first
// if it is not yet stored
func (v *ValueTable) row(s State) []float64 {
	values, ok := v.values[s]
	if !ok {
		values = make([]float64, v.actions)
		v.values[s] = values
	}
	return values
}

// CountTable maps States to a vector of per-action visit counts. Like
// a ValueTable, States that were never incremented have all-zero
// counts and are not stored.
type CountTable struct {
	actions int
	counts  map[State][]int
}

// NewCountTable returns a new, empty CountTable with actions counts per
// State
func NewCountTable(actions int) *CountTable {
	return &CountTable{
		actions: actions,
		counts:  make(map[State][]int),
	}
}

// Actions returns the number of counts stored per State
func (c *CountTable) Actions() int {
	return c.actions
}

// Len returns the number of States stored in the table
func (c *CountTable) Len() int {
	return len(c.counts)
}

// Has returns whether s is stored in the table
func (c *CountTable) Has(s State) bool {
	_, ok := c.counts[s]
	return ok
}

// At returns a copy of the counts of s, or a zero vector if s is not
// stored in the table
func (c *CountTable) At(s State) []int {
	out := make([]int, c.actions)
	copy(out, c.counts[s])
	return out
}

// Count returns the count of action a in s
func (c *CountTable) Count(s State, a int) int {
	counts, ok := c.counts[s]
	if !ok {
		return 0
	}
	return counts[a]
}

// Increment increments the count of action a in s and returns the new
// count
func (c *CountTable) Increment(s State, a int) int {
	counts, ok := c.counts[s]
	if !ok {
		counts = make([]int, c.actions)
		c.counts[s] = counts
	}
	counts[a]++
	return counts[a]
}

// States returns all States stored in the table in lexicographic order
func (c *CountTable) States() []State {
	return sortedStates(c.counts)
}

func sortedStates[T any](m map[State]T) []State {
	states := make([]State, 0, len(m))
	for s := range m {
		states = append(states, s)
	}

	sort.Slice(states, func(i, j int) bool {
		for k := range states[i] {
			if states[i][k] != states[j][k] {
				return states[i][k] < states[j][k]
			}
		}
		return false
	})
	return states
}
