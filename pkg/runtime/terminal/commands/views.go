package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

type ListCmd struct {
	env  *Env
	view domain.View
}

// NewViewCmd builds the "<view> list" pair for the projects and clusters views.
func NewViewCmd(env *Env, view domain.View, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(view),
		Short: short,
	}
	cmd.AddCommand(newListCmd(env, view))
	return cmd
}

func newListCmd(env *Env, view domain.View) *cobra.Command {
	lc := &ListCmd{env: env, view: view}
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   fmt.Sprintf("List %s", view),
		Args:    cobra.NoArgs,
		RunE:    lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	p, err := lc.env.Views.Get(lc.view)
	if err != nil {
		return err
	}

	rows := p.Children(ctx, nil)
	if lc.env.fetchFailed(rows) {
		return dialog.MarkReported(errFetchFailed)
	}
	return lc.env.Reporter.Rows(lc.view, lc.env.Session.Configured(), rows)
}
