package tabular

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r1"
)

// validConfig returns the hyperparameters of a typical cartpole run
func validConfig() Config {
	return Config{
		Actions:        11,
		ActionRange:    r1.Interval{Min: -20, Max: 20},
		Bins:           []int{5, 5, 5, 5},
		LearningRate:   0.1,
		InitialEpsilon: 1.0,
		EpsilonDecay:   0.9995,
		FinalEpsilon:   0.01,
		Discount:       0.5,
	}
}

func TestConfigValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("validate: valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero actions", func(c *Config) { c.Actions = 0 }},
		{"reversed range", func(c *Config) {
			c.ActionRange = r1.Interval{Min: 1, Max: -1}
		}},
		{"NaN range", func(c *Config) { c.ActionRange.Max = math.NaN() }},
		{"three bins", func(c *Config) { c.Bins = []int{5, 5, 5} }},
		{"zero bins", func(c *Config) { c.Bins = []int{5, 0, 5, 5} }},
		{"zero learning rate", func(c *Config) { c.LearningRate = 0 }},
		{"large learning rate", func(c *Config) { c.LearningRate = 1.5 }},
		{"negative epsilon", func(c *Config) { c.InitialEpsilon = -0.1 }},
		{"zero decay", func(c *Config) { c.EpsilonDecay = 0 }},
		{"large decay", func(c *Config) { c.EpsilonDecay = 1.01 }},
		{"negative final epsilon", func(c *Config) { c.FinalEpsilon = -1 }},
		{"final above initial", func(c *Config) {
			c.InitialEpsilon, c.FinalEpsilon = 0.1, 0.5
		}},
		{"large discount", func(c *Config) { c.Discount = 1.1 }},
		{"NaN discount", func(c *Config) { c.Discount = math.NaN() }},
	}

	for _, test := range tests {
		c := validConfig()
		test.modify(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("validate: expected error for %v", test.name)
		}
	}
}

func TestNewBase(t *testing.T) {
	c := validConfig()
	b, err := NewBase(c, 1)
	if err != nil {
		t.Fatalf("newBase: %v", err)
	}

	if b.Epsilon() != c.InitialEpsilon {
		t.Errorf("epsilon: got %v want %v", b.Epsilon(), c.InitialEpsilon)
	}
	if b.Continuous(0) != -20 || b.Continuous(10) != 20 {
		t.Errorf("continuous: endpoints map to (%v, %v) want (-20, 20)",
			b.Continuous(0), b.Continuous(10))
	}
	if err := b.CheckAction(10); err != nil {
		t.Errorf("checkAction(10): %v", err)
	}
	if err := b.CheckAction(11); err == nil {
		t.Errorf("checkAction(11): expected error")
	}
	if err := b.CheckAction(-1); err == nil {
		t.Errorf("checkAction(-1): expected error")
	}

	// The returned Config must not alias the agent's bins
	got := b.Config()
	got.Bins[0] = 100
	if b.Config().Bins[0] != 5 {
		t.Errorf("config: bins alias agent storage")
	}

	c.LearningRate = 0
	if _, err := NewBase(c, 1); err == nil {
		t.Errorf("newBase: expected error for invalid config")
	}
}
