// Package plot summarizes and plots the results of training runs
// recorded by trackers.CSV
package plot

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samuelfneumann/tabular/experiment/trackers"
	"gonum.org/v1/gonum/stat"
)

// Run holds the Records of a single training run
type Run struct {
	Name    string
	Records []trackers.Record
}

// LoadRun loads the run recorded in a CSV file. The run is named after
// the file, without its extension. Records are sorted by episode.
func LoadRun(filename string) (Run, error) {
	records, err := trackers.ReadCSV(filename)
	if err != nil {
		return Run{}, fmt.Errorf("loadRun: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Episode < records[j].Episode
	})

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return Run{Name: name, Records: records}, nil
}

// Episodes returns the episode index of each Record
func (r Run) Episodes() []int {
	episodes := make([]int, len(r.Records))
	for i, record := range r.Records {
		episodes[i] = record.Episode
	}
	return episodes
}

// Returns returns the return of each Record
func (r Run) Returns() []float64 {
	return r.column(func(record trackers.Record) float64 {
		return record.Return
	})
}

func (r Run) column(f func(trackers.Record) float64) []float64 {
	values := make([]float64, len(r.Records))
	for i, record := range r.Records {
		values[i] = f(record)
	}
	return values
}

// RollingMean returns the mean of each value and the up to window-1
// values preceding it
func RollingMean(values []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	means := make([]float64, len(values))
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		means[i] = sum / float64(min(i+1, window))
	}
	return means
}

// FinalPerformance returns the mean return of the last n Records of
// the run, or of all Records if there are fewer than n. NaN is
// returned for an empty run.
func (r Run) FinalPerformance(n int) float64 {
	returns := r.Returns()
	if len(returns) == 0 {
		return math.NaN()
	}
	if len(returns) > n {
		returns = returns[len(returns)-n:]
	}
	return stat.Mean(returns, nil)
}

// Convergence returns the first episode at which the rolling mean
// return, over the argument window, changes by less than threshold
// from the previous Record. If the rolling mean never stabilizes,
// false is returned.
func (r Run) Convergence(window int, threshold float64) (int, bool) {
	means := RollingMean(r.Returns(), window)
	for i := 1; i < len(means); i++ {
		if math.Abs(means[i]-means[i-1]) < threshold {
			return r.Records[i].Episode, true
		}
	}
	return 0, false
}
