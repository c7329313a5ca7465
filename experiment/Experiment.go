// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"

	"github.com/samuelfneumann/tabular/experiment/trackers"
)

// Interface Experiment outlines structs that can run experiments.
// The Run() method will run all episodes until the episode limit is
// reached or the context is cancelled. The RunEpisode() function will
// run a single episode.
//
// In order to save data, Experiments use Trackers. After each episode,
// Experiments send a trackers.Record summarizing the episode to each
// registered Tracker using the Tracker's Track() method. The Save()
// function will then save the data of all Trackers to disk. This is
// usually performed after an experiment has been run.
type Experiment interface {
	Run(ctx context.Context) error
	RunEpisode() (trackers.Record, error)

	// Adds a new Tracker to the (possibly already running) experiment.
	Register(t trackers.Tracker)

	// Save all tracked data to disk
	Save() error
}
