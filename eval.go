package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabular/agent"
	"github.com/samuelfneumann/tabular/config"
	"github.com/samuelfneumann/tabular/experiment"
	"github.com/samuelfneumann/tabular/utils/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

func EvalCommand() *cobra.Command {
	var runConfig, checkpoint, frames string
	var episodes int

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the greedy policy of a saved agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(),
				os.Interrupt)
			defer stop()

			returns, err := Eval(ctx, c, runConfig, checkpoint, frames,
				episodes)
			if err != nil {
				return err
			}
			fmt.Printf("average return over %v episodes: %v\n", len(returns),
				aurora.Green(fmt.Sprintf("%.2f", stat.Mean(returns, nil))))
			return nil
		},
	}
	cmd.Flags().StringVar(&runConfig, "run-config", "",
		"agent configuration of the run, defaults to "+RunConfigFile+
			" next to the checkpoint")
	cmd.Flags().StringVar(&checkpoint, "checkpoint", "",
		"checkpoint file to load")
	cmd.Flags().StringVar(&frames, "frames", "",
		"directory to save a PNG of every step to")
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 10,
		"number of episodes to evaluate for")
	cmd.MarkFlagRequired("checkpoint")

	return cmd
}

// Eval loads the agent saved at checkpoint and runs its greedy policy
// for the argument number of episodes, returning the return of each
// episode. If frames is not empty, every step is rendered to a PNG in
// frames.
func Eval(ctx context.Context, c config.Config, runConfig, checkpoint,
	frames string, episodes int) ([]float64, error) {
	logger, err := logging.New(c.Logging.Level, c.Logging.Format)
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	if runConfig == "" {
		runConfig = filepath.Join(filepath.Dir(checkpoint), RunConfigFile)
	}
	typed, err := agent.ReadTypedConfig(runConfig)
	if err != nil {
		return nil, err
	}
	a, err := typed.CreateAgent(c.Experiment.Seed)
	if err != nil {
		return nil, err
	}
	if err := a.Load(checkpoint); err != nil {
		return nil, err
	}
	a.Eval()

	e, err := experiment.NewEpisodic(newCartpole(c.Environment), a, episodes,
		logger, nil, nil)
	if err != nil {
		return nil, err
	}
	e.SetLogInterval(0)
	if frames != "" {
		if err := e.RenderTo(frames); err != nil {
			return nil, err
		}
	}

	logger.Info("evaluating",
		zap.String("agent", string(typed.Type)),
		zap.String("checkpoint", checkpoint),
		zap.Int("episodes", episodes),
	)

	returns := make([]float64, 0, episodes)
	for e.Episode() < episodes {
		if err := ctx.Err(); err != nil {
			break
		}
		record, err := e.RunEpisode()
		if err != nil {
			return returns, err
		}
		logger.Debug("episode complete", zap.Int("episode", record.Episode),
			zap.Float64("return", record.Return))
		returns = append(returns, record.Return)
	}
	return returns, nil
}
