package views

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Handler struct {
	session *session.Session
	views   *resources.Set
}

func NewHandler(s *session.Session, views *resources.Set) *Handler {
	return &Handler{session: s, views: views}
}

// commands builds a dialog layer for one request. Every confirmation is
// taken as given, since the HTTP call is the user's decision; any other
// prompt is dismissed.
func (h *Handler) commands(panel dialog.Panel) *dialog.Commands {
	return dialog.New(dialog.Dependencies{
		Session:  h.session,
		Views:    h.views,
		Prompter: dialog.AssumeYes(noPrompter{}),
		Notifier: LogNotifier{},
		Panel:    panel,
	})
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, ok := viewParam(w, r)
	if !ok {
		return
	}
	p, err := h.views.Get(view)
	if err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}

	rows := p.Children(ctx, nil)
	writeJSON(ctx, w, http.StatusOK, api.ViewResponse{
		View:       string(view),
		Configured: h.session.Configured(),
		Rows:       adapters.MapRowsToAPI(rows),
	})
}

func (h *Handler) RefreshView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	view, ok := viewParam(w, r)
	if !ok {
		return
	}
	if err := h.commands(nil).Refresh(ctx, view); err != nil {
		writeError(ctx, w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetWorkloadDetails(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	runai, ok := h.session.Client()
	if !ok {
		writeError(ctx, w, http.StatusServiceUnavailable, "Run:AI client not initialized")
		return
	}

	workload, err := runai.GetWorkload(ctx, id)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("workload", id).Msg("failed to fetch workload")
		writeError(ctx, w, upstreamStatus(err), fmt.Sprintf("Failed to fetch workload: %v", err))
		return
	}

	panel := &responsePanel{w: w}
	if err := h.commands(panel).ShowWorkloadDetails(ctx, *workload); err != nil && !panel.written {
		writeError(ctx, w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) DeleteWorkload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	err := h.commands(nil).DeleteWorkload(ctx, domain.Workload{ID: id, Name: id})
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrNotConfigured):
		writeError(ctx, w, http.StatusServiceUnavailable, "Run:AI client not initialized")
	default:
		writeError(ctx, w, upstreamStatus(err), fmt.Sprintf("Failed to delete workload: %v", err))
	}
}

func viewParam(w http.ResponseWriter, r *http.Request) (domain.View, bool) {
	view := domain.View(chi.URLParam(r, "view"))
	if !view.Valid() {
		writeError(r.Context(), w, http.StatusNotFound, fmt.Sprintf("unknown view %q", view))
		return "", false
	}
	return view, true
}

// upstreamStatus passes a missing workload through as 404 and reports any
// other service failure as a bad gateway.
func upstreamStatus(err error) int {
	if client.IsStatus(err, http.StatusNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(ctx, w, status, api.ErrorResponse{Error: message})
}
