// Package logging routes the standard logger to a per-command file under logs/.
// Lines logged before the debug setting is known are held and replayed.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	Dir     = "logs"
	MaxSize = 10 * 1024 * 1024
)

var (
	mu      sync.Mutex
	pending bytes.Buffer
)

// pendingWriter buffers early lines under mu
type pendingWriter struct{}

func (pendingWriter) Write(p []byte) (int, error) {
	mu.Lock()
	defer mu.Unlock()
	return pending.Write(p)
}

// Capture holds log output in memory until Setup decides where it goes
func Capture() {
	mu.Lock()
	pending.Reset()
	mu.Unlock()
	log.SetOutput(pendingWriter{})
}

// Path returns the log file for the named command
func Path(name string) string {
	return filepath.Join(Dir, name+".log")
}

// Setup sends the standard logger to logs/<name>.log when debug is set and
// discards output otherwise; captured lines follow the same choice
// An oversized log is renamed with a timestamp first
// Returns the open file for the caller to close, nil when logging is disabled
func Setup(name string, debug bool) *os.File {
	mu.Lock()
	early := bytes.Clone(pending.Bytes())
	pending.Reset()
	mu.Unlock()

	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(Dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := Path(name)
	if info, err := os.Stat(logPath); err == nil && info.Size() > MaxSize {
		rotated := filepath.Join(Dir, fmt.Sprintf("%s-%s.log", name, time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "log rotate: %v\n", err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log open: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	if len(early) > 0 {
		f.Write(early)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
