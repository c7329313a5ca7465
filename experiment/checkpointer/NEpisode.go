package checkpointer

import "fmt"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	object   Saver // Object to save

	// filename returns the string filename of the file to save the object
	// in.
	//
	// If each checkpoint should be saved in a separate file with each
	// file having an incremented number as a suffix (e.g. file1.json,
	// file2.json, ..., fileK.json), then simply use FilenameEnumerator.
	// To name files by the episode they were saved after, use
	// FilenameEpisode. Otherwise, if the filename does not matter, use
	// FileTimer. For example:
	//
	// n := NewNEpisode(10, object, FileTimer("filename", ".json"))
	filename Namer
}

// NewNEpisode returns a checkpointer that checkpoints after every
// episode whose zero-based index is a multiple of n
func NewNEpisode(n int, object Saver, filename Namer) (Checkpointer, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNEpisode: interval %v must be positive", n)
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}, nil
}

// Checkpoint checkpoints the Checkpointer's tracked object by calling
// its Save() method if the episode is a multiple of the interval. The
// name of the saved file is returned, or the empty string if nothing
// was saved.
func (n *nEpisode) Checkpoint(episode int) (string, error) {
	if episode%n.interval != 0 {
		return "", nil
	}

	filename := n.filename(episode)
	if err := n.object.Save(filename); err != nil {
		return "", fmt.Errorf("checkpoint: %w", err)
	}
	return filename, nil
}
