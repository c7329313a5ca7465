package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/agent/tabular"
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/experiment/checkpointer"
	"github.com/samuelfneumann/tabular/experiment/trackers"
	"github.com/samuelfneumann/tabular/plot"
	"github.com/samuelfneumann/tabular/utils/logging"
	"github.com/samuelfneumann/tabular/utils/progressbar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RunConfigFile is the name of the file in each run directory holding
// the agent configuration of the run
const RunConfigFile = "config.json"

func TrainCommand() *cobra.Command {
	var agentType string
	var episodes int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train an agent, saving checkpoints and training results",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("agent") {
				c.Agent.Type = agentType
			}
			if cmd.Flags().Changed("episodes") {
				c.Experiment.Episodes = episodes
			}
			if err := c.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt)
			defer stop()

			return Train(ctx, c)
		},
	}
	cmd.Flags().StringVarP(&agentType, "agent", "a", "",
		fmt.Sprintf("type of agent to train, one of %v", agent.Types()))
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 0,
		"number of episodes to train for")

	return cmd
}

// Train trains the agent described by c. Checkpoints, the run
// configuration, and training results are saved to a directory named
// after the agent type in the configured output directory.
func Train(ctx context.Context, c config.Config) error {
	logger, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	typed := c.Agent.TypedConfig()
	a, err := typed.CreateAgent(c.Experiment.Seed)
	if err != nil {
		return err
	}

	dir := filepath.Join(c.Experiment.OutputDir, string(typed.Type))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	err = agent.WriteTypedConfig(filepath.Join(dir, RunConfigFile), typed)
	if err != nil {
		return err
	}

	check, err := checkpointer.NewNEpisode(c.Experiment.CheckpointInterval,
		a, checkpointer.FilenameEpisode(dir, checkpointPattern(typed)))
	if err != nil {
		return err
	}

	csvFile := filepath.Join(dir, fmt.Sprintf("%v_training_results.csv",
		typed.Type))
	t, err := newTrackers(c.Experiment, typed, csvFile, logger)
	if err != nil {
		return err
	}
	saved := false
	defer func() {
		if !saved {
			closeTrackers(t)
		}
	}()

	env := newCartpole(c.Environment)
	e, err := experiment.NewEpisodic(env, a, c.Experiment.Episodes, logger, t,
		[]checkpointer.Checkpointer{check})
	if err != nil {
		return err
	}
	e.SetLogInterval(c.Experiment.LogInterval)
	if c.Experiment.ProgressBar {
		e.SetProgressBar(progressbar.NewManualProgressBar(os.Stdout, 40,
			c.Experiment.Episodes))
	}

	logger.Info("training",
		zap.String("agent", string(typed.Type)),
		zap.Int("episodes", c.Experiment.Episodes),
		zap.String("output", dir),
	)
	runErr := e.Run(ctx)

	// Save the final tables even if interrupted
	final := filepath.Join(dir, fmt.Sprintf(checkpointPattern(typed), "final"))
	if err := a.Save(final); err != nil {
		logger.Error("could not save final checkpoint", zap.Error(err))
	}
	saved = true
	if err := e.Save(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}

	run, err := plot.LoadRun(csvFile)
	if err != nil {
		return err
	}
	fmt.Printf("%v trained for %v episodes, final performance %v, "+
		"checkpoint %v\n", aurora.Bold(typed.Type), e.Episode(),
		aurora.Green(fmt.Sprintf("%.2f", run.FinalPerformance(100))), final)
	return nil
}

// newTrackers creates the Trackers of a training run: a CSV Tracker
// writing to csvFile and, if a database is configured, a SQLite
// Tracker. If any Tracker cannot be created, those already created
// are closed.
func newTrackers(c config.ExperimentConfig, typed agent.TypedConfig,
	csvFile string, logger *zap.Logger) ([]trackers.Tracker, error) {
	csvTracker, err := trackers.NewCSV(csvFile, c.TrackInterval)
	if err != nil {
		return nil, err
	}
	t := []trackers.Tracker{csvTracker}

	if c.Database == "" {
		return t, nil
	}

	configJSON, err := json.Marshal(typed)
	if err != nil {
		closeTrackers(t)
		return nil, fmt.Errorf("newTrackers: %w", err)
	}
	db, err := trackers.NewSQLite(c.Database, string(typed.Type),
		string(configJSON), c.TrackInterval)
	if err != nil {
		closeTrackers(t)
		return nil, err
	}
	logger.Info("tracking run", zap.String("run_id", db.RunID()),
		zap.String("database", c.Database))

	return append(t, db), nil
}

// closeTrackers saves and closes each Tracker, returning all errors
// encountered
func closeTrackers(t []trackers.Tracker) error {
	var errs []error
	for _, tracker := range t {
		if err := tracker.Save(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkpointPattern returns the pattern of checkpoint filenames, with
// a single %v verb for the episode
func checkpointPattern(t agent.TypedConfig) string {
	return fmt.Sprintf("%v_%%v_%v_%v_%v.json", t.Type, t.Config.Actions,
		t.Config.ActionRange.Max, binsLabel(t.Config))
}

func binsLabel(c tabular.Config) string {
	labels := make([]string, len(c.Bins))
	for i, b := range c.Bins {
		labels[i] = strconv.Itoa(b)
	}
	return strings.Join(labels, "_")
}
