package checkpointer

import (
	"fmt"
	"path/filepath"
)

// fileEnumerator enumerates filenames
type fileEnumerator struct {
	i         int
	name      string
	extension string
}

// filename returns the name of the next consecutive enumerated file,
// ignoring the episode
func (f *fileEnumerator) filename(int) string {
	f.i++
	return fmt.Sprintf("%v%v%v", f.name, f.i, f.extension)
}

// FilenameEnumerator returns a Namer which will return filenames
// with a counter integer suffix. Each time the returned function is
// called, the filename counter suffix will be one higher than on the
// previous call. The filename parameter is the full filename with its
// path, while the extension parameter determines the file extension.
func FilenameEnumerator(start int, filename, extension string) Namer {
	enum := fileEnumerator{i: start, name: filename, extension: extension}

	return enum.filename
}

// FilenameEpisode returns a Namer which formats the episode into
// pattern, which should contain a single %v verb, and places the
// result in dir
func FilenameEpisode(dir, pattern string) Namer {
	return func(episode int) string {
		return filepath.Join(dir, fmt.Sprintf(pattern, episode))
	}
}
