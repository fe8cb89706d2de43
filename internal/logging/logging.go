// Package logging configures the file-backed application logger. The TUI
// owns stdout, so every log line goes to a file under the user state dir.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open returns a logger writing to path, creating directories as needed.
// The returned close func flushes and releases the log file.
func Open(path string) (zerolog.Logger, func(), error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	logger := zerolog.New(file).With().Timestamp().Logger()
	return logger, func() { _ = file.Close() }, nil
}
