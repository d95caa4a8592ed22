// Package logging configures the process-wide zerolog logger used by every
// other package's global log.Info()/log.Warn() calls.
//
// There is no per-package Logger type: the pipeline follows the global
// log.Logger convention (as seen throughout the retrieval pack's zerolog
// usage) and this package only ever adjusts that global's output and
// level, once, at process start.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Format selects the global logger's output encoding.
type Format int

const (
	// FormatConsole renders colorized, human-readable lines. Intended for
	// the CLI (cmd/loopcourse).
	FormatConsole Format = iota
	// FormatJSON renders newline-delimited JSON. Intended for the API
	// server, where logs are typically shipped to a collector.
	FormatJSON
)

// Options configures Configure.
type Options struct {
	Format Format
	Level  zerolog.Level
	Writer io.Writer // defaults to os.Stderr when nil
}

// Configure sets the global zerolog logger according to opts. It is meant
// to be called once, early in main().
func Configure(opts Options) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(opts.Level)
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// ParseLevel maps a CLI/config-facing level name to a zerolog.Level,
// defaulting to zerolog.InfoLevel for an unrecognized or empty name.
func ParseLevel(name string) zerolog.Level {
	if name == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
