package montecarlo

import (
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	ts "github.com/samuelfneumann/tabular/timestep"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func config() tabular.Config {
	return tabular.Config{
		Actions:        2,
		ActionRange:    r1.Interval{Min: -20, Max: 20},
		Bins:           []int{5, 5, 5, 5},
		LearningRate:   0.1,
		InitialEpsilon: 0.0,
		EpsilonDecay:   1.0,
		FinalEpsilon:   0.0,
		Discount:       1.0,
	}
}

var (
	// States (0, 0, 0, 0), (2, 2, 2, 2), and (5, 5, 5, 5)
	lowest  = mat.NewVecDense(4, []float64{-10, -1, -100, -100})
	middle  = mat.NewVecDense(4, []float64{0, 0, 0, 0})
	highest = mat.NewVecDense(4, []float64{10, 1, 100, 100})

	s0 = tabular.State{0, 0, 0, 0}
	s1 = tabular.State{2, 2, 2, 2}
	s2 = tabular.State{5, 5, 5, 5}
)

func TestReturns(t *testing.T) {
	tests := []struct {
		rewards  []float64
		discount float64
		want     []float64
	}{
		{[]float64{1, 1}, 1.0, []float64{2, 1}},
		{[]float64{1, 1, 1}, 0.5, []float64{1.75, 1.5, 1}},
		{[]float64{0, 0, 4}, 0.5, []float64{1, 2, 4}},
		{[]float64{}, 0.9, []float64{}},
	}

	for _, test := range tests {
		got := Returns(test.rewards, test.discount)
		if !floats.EqualApprox(got, test.want, 1e-12) {
			t.Errorf("returns(%v, %v): got %v want %v", test.rewards,
				test.discount, got, test.want)
		}
	}
}

func TestUpdateDefersUntilDone(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	steps := []struct {
		obs    *mat.VecDense
		action int
	}{
		{lowest, 0},
		{middle, 1},
	}
	for _, step := range steps {
		if err := m.Update(false, step.obs, step.action, 1.0); err != nil {
			t.Fatalf("update: %v", err)
		}
		if m.Q().Len() != 0 || m.N().Len() != 0 {
			t.Fatalf("update: tables modified before the end of the episode")
		}
	}
	if m.Pending() != 2 {
		t.Fatalf("pending: got %v want 2", m.Pending())
	}

	// The terminal transition is dropped by default
	if err := m.Update(true, highest, 1, 100.0); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := m.Q().Value(s0, 0); got != 2 {
		t.Errorf("update: Q%v[0] = %v want 2", s0, got)
	}
	if got := m.Q().Value(s1, 1); got != 1 {
		t.Errorf("update: Q%v[1] = %v want 1", s1, got)
	}
	if m.Q().Has(s2) || m.N().Has(s2) {
		t.Errorf("update: terminal transition was credited")
	}
	if m.Pending() != 0 {
		t.Errorf("pending: got %v want 0 after the end of the episode",
			m.Pending())
	}
}

func TestUpdateIncludeTerminal(t *testing.T) {
	c := config()
	c.IncludeTerminal = true
	m, err := New(c, 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Update(false, lowest, 0, 1.0); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := m.Update(true, middle, 1, 1.0); err != nil {
		t.Fatalf("update: %v", err)
	}

	if got := m.Q().Value(s0, 0); got != 2 {
		t.Errorf("update: Q%v[0] = %v want 2", s0, got)
	}
	if got := m.Q().Value(s1, 1); got != 1 {
		t.Errorf("update: Q%v[1] = %v want 1", s1, got)
	}
}

func TestFirstVisit(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	episode := func() {
		// (s0, 0) is visited twice, returns are [3, 2, 1]
		for _, obs := range []*mat.VecDense{lowest, lowest} {
			if err := m.Update(false, obs, 0, 1.0); err != nil {
				t.Fatalf("update: %v", err)
			}
		}
		if err := m.Update(false, middle, 1, 1.0); err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := m.Update(true, highest, 0, 0.0); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	episode()
	if got := m.N().Count(s0, 0); got != 1 {
		t.Errorf("count: N%v[0] = %v want 1", s0, got)
	}
	if got := m.Q().Value(s0, 0); got != 3 {
		t.Errorf("update: Q%v[0] = %v want 3", s0, got)
	}

	episode()
	if got := m.N().Count(s0, 0); got != 2 {
		t.Errorf("count: N%v[0] = %v want 2", s0, got)
	}
	if got := m.N().Count(s1, 1); got != 2 {
		t.Errorf("count: N%v[1] = %v want 2", s1, got)
	}
	if got := m.Q().Value(s0, 0); got != 3 {
		t.Errorf("update: Q%v[0] = %v want 3", s0, got)
	}
}

func TestUpdateAverages(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	// Returns of 4 then 2 from (s0, 1) average to 3
	for _, reward := range []float64{4, 2} {
		if err := m.Update(false, lowest, 1, reward); err != nil {
			t.Fatalf("update: %v", err)
		}
		if err := m.Update(true, lowest, 1, 0); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if got := m.Q().Value(s0, 1); got != 3 {
		t.Errorf("update: Q%v[1] = %v want 3", s0, got)
	}
}

func TestUpdateIllegalAction(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if err := m.Update(false, lowest, 2, 1.0); err == nil {
		t.Errorf("update: expected error for illegal action")
	}
	if m.Pending() != 0 {
		t.Errorf("update: illegal transition was stored")
	}
}

func TestObserve(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}

	first := ts.New(ts.First, 0, lowest, 0)
	mid := ts.New(ts.Mid, 1.0, middle, 1)
	last := ts.New(ts.Last, -1.0, highest, 2)

	if err := m.Observe(ts.NewTransition(first, 0, mid, 0)); err != nil {
		t.Fatalf("observe: %v", err)
	}
	if err := m.Observe(ts.NewTransition(mid, 1, last, 0)); err != nil {
		t.Fatalf("observe: %v", err)
	}

	// Only the first transition is credited
	if got := m.Q().Value(s0, 0); got != 1 {
		t.Errorf("observe: Q%v[0] = %v want 1", s0, got)
	}
	if m.Q().Has(s1) {
		t.Errorf("observe: terminal transition was credited")
	}
}

func TestSaveLoad(t *testing.T) {
	m, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := m.Update(false, lowest, 1, 1.0); err != nil {
			t.Fatal(err)
		}
		if err := m.Update(true, lowest, 1, 0); err != nil {
			t.Fatal(err)
		}
	}

	filename := filepath.Join(t.TempDir(), "mc.json")
	if err := m.Save(filename); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := New(config(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if err := loaded.Load(filename); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := loaded.N().Count(s0, 1); got != 3 {
		t.Errorf("load: N%v[1] = %v want 3", s0, got)
	}
	if got := loaded.Q().Value(s0, 1); got != 1 {
		t.Errorf("load: Q%v[1] = %v want 1", s0, got)
	}
}

func TestRegistered(t *testing.T) {
	a, err := agent.New(agent.MonteCarlo, config(), 1)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a.Type() != agent.MonteCarlo {
		t.Errorf("type: got %v want %v", a.Type(), agent.MonteCarlo)
	}
}
