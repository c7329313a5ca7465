package experiment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/environment"
	"github.com/samuelfneumann/tabular/experiment/checkpointer"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	ts "github.com/samuelfneumann/tabular/timestep"
	"github.com/samuelfneumann/tabular/utils/progressbar"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Episodic is an Experiment that runs an agent for a fixed number of
// episodes. After each episode the agent's exploration rate is
// decayed, the episode is tracked, and the agent is checkpointed.
//
// If the agent is in evaluation mode when an episode starts, the agent
// neither learns nor decays its exploration rate during that episode,
// and it is not checkpointed after.
type Episodic struct {
	env           environment.Environment
	agent         agent.Agent
	episodes      int
	episode       int
	trackers      []trackers.Tracker
	checkpointers []checkpointer.Checkpointer

	logger      *zap.Logger
	logInterval int
	returns     []float64 // Returns since the last log

	progress *progressbar.ManualProgressBar
	frameDir string
}

// NewEpisodic creates and returns a new episodic experiment which runs
// agent a on environment e for the argument number of episodes. The
// t parameter is a slice of trackers.Tracker which determine what data
// is saved, and c is a slice of Checkpointers which determine when the
// agent is saved.
func NewEpisodic(e environment.Environment, a agent.Agent, episodes int,
	logger *zap.Logger, t []trackers.Tracker,
	c []checkpointer.Checkpointer) (*Episodic, error) {
	if episodes < 0 {
		return nil, fmt.Errorf("newEpisodic: number of episodes %v must "+
			"be non-negative", episodes)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Episodic{
		env:           e,
		agent:         a,
		episodes:      episodes,
		trackers:      t,
		checkpointers: c,
		logger:        logger,
		logInterval:   100,
	}, nil
}

// SetLogInterval sets the number of episodes between log messages
// summarizing training progress. An interval of 0 disables logging.
func (e *Episodic) SetLogInterval(episodes int) {
	e.logInterval = episodes
}

// SetProgressBar sets a progress bar to display after each episode
func (e *Episodic) SetProgressBar(p *progressbar.ManualProgressBar) {
	e.progress = p
}

// RenderTo saves an image of every environment step to dir. The
// environment must be an environment.Renderer.
func (e *Episodic) RenderTo(dir string) error {
	if _, ok := e.env.(environment.Renderer); !ok {
		return fmt.Errorf("renderTo: environment %T cannot be rendered",
			e.env)
	}
	e.frameDir = dir
	return nil
}

// Register registers a Tracker with the Experiment so that data
// generated during the experiment can be tracked and saved
func (e *Episodic) Register(t trackers.Tracker) {
	e.trackers = append(e.trackers, t)
}

// Run runs all remaining episodes of the experiment. The context is
// checked between episodes; if it is cancelled, Run returns the
// context's error after the current episode finishes.
func (e *Episodic) Run(ctx context.Context) error {
	if e.progress != nil {
		defer e.progress.Close()
	}

	for e.episode < e.episodes {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("experiment interrupted",
				zap.Int("episode", e.episode), zap.Error(err))
			return err
		}

		if _, err := e.RunEpisode(); err != nil {
			return err
		}
	}
	return nil
}

// RunEpisode runs a single episode of the experiment and returns its
// Record
func (e *Episodic) RunEpisode() (trackers.Record, error) {
	if e.episode >= e.episodes {
		return trackers.Record{}, fmt.Errorf("runEpisode: all %v episodes "+
			"have been run", e.episodes)
	}

	learn := !e.agent.IsEval()
	record := trackers.Record{
		Episode: e.episode,
		Epsilon: e.agent.Epsilon(),
	}

	if err := e.runEpisode(&record, learn); err != nil {
		return trackers.Record{}, fmt.Errorf("runEpisode: episode %v: %w",
			e.episode, err)
	}
	record.MeanValue = e.agent.MeanValue()

	for _, t := range e.trackers {
		if err := t.Track(record); err != nil {
			return record, fmt.Errorf("runEpisode: %w", err)
		}
	}

	if learn {
		for _, c := range e.checkpointers {
			filename, err := c.Checkpoint(e.episode)
			if err != nil {
				return record, fmt.Errorf("runEpisode: %w", err)
			}
			if filename != "" {
				e.logger.Debug("checkpoint saved",
					zap.Int("episode", e.episode),
					zap.String("filename", filename))
			}
		}
		e.agent.DecayEpsilon()
	}

	e.log(record)
	e.episode++
	return record, nil
}

// runEpisode steps the agent through a single episode, filling in
// the return and length of the episode in r
func (e *Episodic) runEpisode(r *trackers.Record, learn bool) error {
	_, onPolicy := e.agent.(agent.OnPolicy)

	step := e.env.Reset()
	if err := e.render(step); err != nil {
		return err
	}
	force, action := e.agent.SelectAction(step.Observation)

	for !step.Last() {
		next, _ := e.env.Step(force)
		r.Return += next.Reward
		r.Steps++

		if err := e.render(next); err != nil {
			return err
		}

		var nextForce float64
		var nextAction int
		switch {
		case !learn:
			if !next.Last() {
				nextForce, nextAction = e.agent.SelectAction(next.Observation)
			}

		case onPolicy:
			nextForce, nextAction = e.agent.SelectAction(next.Observation)
			err := e.agent.Observe(ts.NewTransition(step, action, next,
				nextAction))
			if err != nil {
				return err
			}

		default:
			if err := e.agent.Observe(ts.NewTransition(step, action, next,
				0)); err != nil {
				return err
			}
			if !next.Last() {
				nextForce, nextAction = e.agent.SelectAction(next.Observation)
			}
		}

		step, force, action = next, nextForce, nextAction
	}
	return nil
}

// render saves an image of the environment in the state of step, if
// frames are being rendered
func (e *Episodic) render(step ts.TimeStep) error {
	if e.frameDir == "" {
		return nil
	}

	dir := filepath.Join(e.frameDir, fmt.Sprintf("episode-%05d", e.episode))
	if step.First() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	filename := filepath.Join(dir, fmt.Sprintf("step-%05d.png", step.Number))
	return e.env.(environment.Renderer).Render(filename)
}

// log records the return of an episode and, every logInterval
// episodes, logs the average return since the last log
func (e *Episodic) log(r trackers.Record) {
	e.returns = append(e.returns, r.Return)

	if e.progress != nil {
		e.progress.Increment()
		e.progress.SetStatus("return: %.1f  ε: %.3f", r.Return, r.Epsilon)
		e.progress.Display()
	}

	if e.logInterval <= 0 || r.Episode%e.logInterval != 0 {
		return
	}

	e.logger.Info("episode summary",
		zap.Int("episode", r.Episode),
		zap.Float64("average_return", stat.Mean(e.returns, nil)),
		zap.Float64("epsilon", r.Epsilon),
		zap.Float64("mean_value", r.MeanValue),
		zap.Int("steps", r.Steps),
	)
	e.returns = e.returns[:0]
}

// Episode returns the number of episodes run so far
func (e *Episodic) Episode() int {
	return e.episode
}

// Save saves the data tracked by all Trackers to disk
func (e *Episodic) Save() error {
	var errs []error
	for _, t := range e.trackers {
		if err := t.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
