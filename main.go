// Command tabular trains and evaluates tabular control agents on the
// continuous-force Cartpole environment, and plots their training
// results
package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	_ "github.com/samuelfneumann/tabular/agent/tabular/doubleq"
	_ "github.com/samuelfneumann/tabular/agent/tabular/montecarlo"
	_ "github.com/samuelfneumann/tabular/agent/tabular/qlearning"
	_ "github.com/samuelfneumann/tabular/agent/tabular/sarsa"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "tabular",
		Short:         "Tabular control on continuous-force Cartpole",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"path to a configuration file")

	root.AddCommand(TrainCommand(), EvalCommand(), PlotCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(fmt.Sprintf("error: %v", err)))
		os.Exit(1)
	}
}

var configPath string
