package terminal

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// NewLogger writes human-readable lines when w is a terminal and JSON
// otherwise.
func NewLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	out := w
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
