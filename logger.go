package fbox

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog logger writing to w at the named level
// ("debug", "info", "warn", ...). An empty level disables logging.
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	if level == "" {
		return zerolog.Nop(), nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("fbox: invalid log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "fbox").Logger(), nil
}
