package main

import (
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/environment/classiccontrol/cartpole"
	"gonum.org/v1/gonum/spatial/r1"
)

// startBounds bounds each feature of the starting states of episodes
var startBounds = r1.Interval{Min: -0.05, Max: 0.05}

// newCartpole creates the Cartpole environment described by c
func newCartpole(c config.EnvironmentConfig) *cartpole.Cartpole {
	s := environment.NewUniformStarter([]r1.Interval{
		startBounds,
		startBounds,
		startBounds,
		startBounds,
	}, c.Seed)

	task := cartpole.NewBalance(s, c.EpisodeSteps, c.FailAngleRadians(),
		c.FailPosition)
	env, _ := cartpole.New(task)
	return env
}
