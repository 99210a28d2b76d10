package commands

import (
	"errors"
	"io"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
)

var errFetchFailed = errors.New("failed to fetch resources")

// Env is filled in by the root command before any subcommand runs.
type Env struct {
	Session  *session.Session
	Views    *resources.Set
	Deps     dialog.Dependencies
	Reporter *export.Reporter
	Out      io.Writer
}

func (e *Env) Dialog() *dialog.Commands {
	return dialog.New(e.Deps)
}

// fetchFailed reports whether a configured view fell back to the configure
// row, which only happens after the provider surfaced a fetch error.
func (e *Env) fetchFailed(rows []domain.Row) bool {
	return e.Session.Configured() &&
		len(rows) == 1 &&
		rows[0].Kind == domain.RowConfigure &&
		rows[0].Label == adapters.ConfigureLabel
}
