// Package logging builds the zerolog logger. The terminal belongs to the
// TUI, so everything goes to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/byxorna/shelf/pkg/runtime"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
)

const DefaultFile = "shelf.log"

// Open returns a logger writing to file at level, and the closer for the
// underlying file. An empty file means DefaultFile in the xdg runtime dir.
func Open(file, level string) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	if file == "" {
		file, err = runtime.File(DefaultFile)
		if err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("unable to place log file: %w", err)
		}
	}
	file, err = homedir.Expand(file)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("unable to open log %s: %w", file, err)
	}
	return New(f, lvl), f, nil
}

func New(w io.Writer, lvl zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// ParseLevel accepts the level names the config validates, "disabled"
// included.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return lvl, nil
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
