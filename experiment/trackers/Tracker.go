// Package trackers implements Trackers, which track and save data
// generated by an experiment
package trackers

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Record summarizes a single finished episode
type Record struct {
	Episode   int     // Zero-based index of the episode
	Return    float64 // Sum of rewards over the episode
	Epsilon   float64 // Exploration rate the episode was run with
	MeanValue float64 // Mean action value after the episode
	Steps     int     // Number of environment steps in the episode
}

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(r Record) error
	Save() error
}

// LoadData loads and returns the data saved by a gob-encoding Tracker
// such as Return or EpisodeLength
func LoadData[T any](filename string) ([]T, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	var data []T
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %w", err)
	}
	return data, nil
}

// saveData gob-encodes data to filename
func saveData(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("save: could not encode data: %w", err)
	}
	return file.Close()
}
