// Package logging builds the structured logger of the command line tool.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidLevel = errors.New("invalid log level")

// ParseLevel returns the slog level matching name: debug, info, warn or error.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	if err != nil {
		return slog.LevelInfo, errors.Wrapf(ErrInvalidLevel, "%q", name)
	}

	return level, nil
}

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
