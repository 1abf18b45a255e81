// Package errlog is the append-only error log: one timestamped line per
// failure, mirrored to stderr.
package errlog

import (
	"io"
	"log"
	"os"
	"sync"
)

const DefaultPath = "error_log.txt"

var (
	mu     sync.Mutex
	file   *os.File
	logger = log.New(os.Stderr, "ERROR ", log.LstdFlags)
)

// Open
// Opens (or creates) the log file at path for appending and mirrors every
// following Printf to it. A previously opened file is closed.
func Open(path string) error {
	handle, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	file = handle
	logger.SetOutput(io.MultiWriter(os.Stderr, handle))
	return nil
}

// SetOutput sends log lines to w only. Used by tests and embedding callers.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

// Printf writes one error line.
func Printf(format string, v ...interface{}) {
	logger.Printf(format, v...)
}

// Close closes the log file, if any, and falls back to stderr.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(os.Stderr)
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
