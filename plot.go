package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/samuelfneumann/tabular/plot"
	"github.com/spf13/cobra"
)

// Window sizes and thresholds of the run summaries
const (
	finalEpisodes        = 100
	convergenceWindow    = 10
	convergenceThreshold = 1.0
)

func PlotCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "plot results.csv [results.csv...]",
		Short: "Summarize and plot the training results of runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runs := make([]plot.Run, 0, len(args))
			for _, filename := range args {
				run, err := plot.LoadRun(filename)
				if err != nil {
					return err
				}
				runs = append(runs, run)
				summarize(run)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			if err := plot.Render(f, runs...); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("plot: %w", err)
			}

			fmt.Println("plots saved to", aurora.Bold(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "performance_comparison.html",
		"HTML file to render the plots to")

	return cmd
}

// summarize prints the final performance and convergence episode of a
// run
func summarize(r plot.Run) {
	fmt.Println(aurora.Bold(aurora.Blue(r.Name)))
	fmt.Printf("  final performance (last %v episodes): %v\n", finalEpisodes,
		aurora.Green(fmt.Sprintf("%.2f", r.FinalPerformance(finalEpisodes))))

	episode, ok := r.Convergence(convergenceWindow, convergenceThreshold)
	if ok {
		fmt.Printf("  converged at episode %v\n", aurora.Cyan(episode))
	} else {
		fmt.Println("  " + aurora.Yellow("did not converge").String())
	}
}
