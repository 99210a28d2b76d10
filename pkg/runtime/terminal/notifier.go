package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// Notifier prints user-facing messages, coloured when the writer supports it.
type Notifier struct {
	out  io.Writer
	info lipgloss.Style
	fail lipgloss.Style
}

func NewNotifier(out io.Writer) *Notifier {
	r := lipgloss.NewRenderer(out)
	return &Notifier{
		out:  out,
		info: r.NewStyle().Foreground(lipgloss.Color("2")),
		fail: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

func (n *Notifier) Info(ctx context.Context, message string) {
	zerolog.Ctx(ctx).Debug().Str("message", message).Msg("notify info")
	fmt.Fprintln(n.out, n.info.Render("✔ "+message))
}

func (n *Notifier) Error(ctx context.Context, message string) {
	zerolog.Ctx(ctx).Debug().Str("message", message).Msg("notify error")
	fmt.Fprintln(n.out, n.fail.Render("✖ "+message))
}
