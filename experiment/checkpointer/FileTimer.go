package checkpointer

import (
	"fmt"
	"time"
)

// FileTimer returns a Namer which will append to a filename the
// number of nanoseconds since January 1, 1970, followed by the
// extension
func FileTimer(filename, extension string) Namer {
	return func(int) string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(),
			extension)
	}
}
