package trackers

// Return tracks and saves the episodic return in an experiment
type Return struct {
	episodeReturns []float64
	filename       string
}

// NewReturn creates and returns a new *Return Tracker which saves
// its data to filename
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track caches the return of an episode
func (r *Return) Track(record Record) error {
	r.episodeReturns = append(r.episodeReturns, record.Return)
	return nil
}

// Returns returns the episodic returns tracked so far
func (r *Return) Returns() []float64 {
	return append([]float64(nil), r.episodeReturns...)
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	return saveData(r.filename, r.episodeReturns)
}
