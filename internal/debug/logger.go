package debug

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	writer io.Writer = io.Discard
)

// SetOutput sets the debug output destination
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	writer = w
}

// Log writes a timestamped debug message.
// Safe for concurrent use; the tuning watcher logs from its own goroutine.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if writer == io.Discard {
		return
	}
	fmt.Fprintf(writer, time.Now().Format("15:04:05.000")+" "+format+"\n", args...)
}

// Enabled returns true if debug logging is enabled
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return writer != io.Discard
}
