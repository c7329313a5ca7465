// Package checkpointer implements Checkpointers, which periodically
// save objects during an experiment
package checkpointer

// Saver is an object that can save itself to a file
type Saver interface {
	Save(filename string) error
}

// Checkpointer checkpoints/saves objects based on the index of the
// episode that just finished
type Checkpointer interface {
	Checkpoint(episode int) (string, error)
}

// Namer returns the filename to save the checkpoint of an episode in
type Namer func(episode int) string
