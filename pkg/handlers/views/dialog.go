package views

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

// LogNotifier sends user-facing messages to the request logger.
type LogNotifier struct{}

func (LogNotifier) Info(ctx context.Context, message string) {
	zerolog.Ctx(ctx).Info().Msg(message)
}

func (LogNotifier) Error(ctx context.Context, message string) {
	zerolog.Ctx(ctx).Warn().Msg(message)
}

// noPrompter dismisses every prompt; a request cannot ask follow-up questions.
type noPrompter struct{}

func (noPrompter) Input(context.Context, dialog.InputOptions) (string, error) {
	return "", domain.ErrCancelled
}

func (noPrompter) Pick(context.Context, string, []dialog.PickItem) (int, error) {
	return 0, domain.ErrCancelled
}

func (noPrompter) Confirm(context.Context, string, string) (bool, error) {
	return false, domain.ErrCancelled
}

// responsePanel writes the detail page as the response body.
type responsePanel struct {
	w       http.ResponseWriter
	written bool
}

func (p *responsePanel) Show(_ context.Context, _, html string) error {
	p.w.Header().Set("Content-Type", "text/html; charset=utf-8")
	p.w.WriteHeader(http.StatusOK)
	p.written = true
	_, err := io.WriteString(p.w, html)
	return err
}
