package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/adapters"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

func NewWorkloadsCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workloads",
		Aliases: []string{"wl"},
		Short:   "List, inspect and delete workloads",
	}

	cmd.AddCommand(newWorkloadsListCmd(env))
	cmd.AddCommand(newWorkloadsGetCmd(env))
	cmd.AddCommand(newWorkloadsDeleteCmd(env))
	cmd.AddCommand(newWorkloadsPickCmd(env))

	return cmd
}

type WorkloadsListCmd struct {
	env     *Env
	project string
}

func newWorkloadsListCmd(env *Env) *cobra.Command {
	lc := &WorkloadsListCmd{env: env}
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List workloads",
		Args:    cobra.NoArgs,
		RunE:    lc.run,
	}

	cmd.Flags().StringVar(&lc.project, "project", "", "Only list workloads of this project ID")

	return cmd
}

func (lc *WorkloadsListCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	configured := lc.env.Session.Configured()

	if lc.project == "" {
		rows := lc.env.Views.Workloads.Children(ctx, nil)
		if lc.env.fetchFailed(rows) {
			return dialog.MarkReported(errFetchFailed)
		}
		return lc.env.Reporter.Rows(domain.ViewWorkloads, configured, rows)
	}

	runai, ok := lc.env.Session.Client()
	if !ok {
		return lc.env.Reporter.Rows(domain.ViewWorkloads, configured, []domain.Row{adapters.ConfigureRow()})
	}

	workloads, err := runai.ListWorkloads(ctx, lc.project)
	if err != nil {
		lc.env.Deps.Notifier.Error(ctx, fmt.Sprintf("Failed to fetch %s: %v", domain.ViewWorkloads, err))
		return dialog.MarkReported(err)
	}

	rows := make([]domain.Row, 0, len(workloads))
	for _, w := range workloads {
		rows = append(rows, adapters.MapWorkloadToRow(w))
	}
	if len(rows) == 0 {
		rows = append(rows, adapters.EmptyRow(adapters.EmptyWorkloadsLabel))
	}
	return lc.env.Reporter.Rows(domain.ViewWorkloads, configured, rows)
}

type WorkloadsGetCmd struct {
	env  *Env
	html bool
}

func newWorkloadsGetCmd(env *Env) *cobra.Command {
	gc := &WorkloadsGetCmd{env: env}
	cmd := &cobra.Command{
		Use:   "get <workload-id>",
		Short: "Show a workload",
		Args:  cobra.ExactArgs(1),
		RunE:  gc.run,
	}

	cmd.Flags().BoolVar(&gc.html, "html", false, "Print the HTML detail page instead")

	return cmd
}

func (gc *WorkloadsGetCmd) run(cmd *cobra.Command, args []string) error {
	w, err := fetchWorkload(cmd, gc.env, args[0])
	if err != nil {
		return err
	}

	if !gc.html {
		return gc.env.Reporter.Workload(*w)
	}

	page, err := dialog.RenderWorkloadDetails(*w)
	if err != nil {
		return fmt.Errorf("failed to render workload details: %w", err)
	}
	_, err = io.WriteString(gc.env.Out, page)
	return err
}

type WorkloadsDeleteCmd struct {
	env *Env
	yes bool
}

func newWorkloadsDeleteCmd(env *Env) *cobra.Command {
	dc := &WorkloadsDeleteCmd{env: env}
	cmd := &cobra.Command{
		Use:     "delete <workload-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a workload after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE:    dc.run,
	}

	cmd.Flags().BoolVarP(&dc.yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func (dc *WorkloadsDeleteCmd) run(cmd *cobra.Command, args []string) error {
	w, err := fetchWorkload(cmd, dc.env, args[0])
	if err != nil {
		return err
	}

	deps := dc.env.Deps
	if dc.yes {
		deps.Prompter = dialog.AssumeYes(deps.Prompter)
	}
	return dialog.New(deps).DeleteWorkload(cmd.Context(), *w)
}

func newWorkloadsPickCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a workload interactively and open its detail page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.Dialog().ListWorkloads(cmd.Context())
		},
	}
}

func fetchWorkload(cmd *cobra.Command, env *Env, id string) (*domain.Workload, error) {
	ctx := cmd.Context()

	runai, ok := env.Session.Client()
	if !ok {
		env.Deps.Notifier.Error(ctx, "Run:AI client not initialized")
		return nil, dialog.MarkReported(domain.ErrNotConfigured)
	}

	w, err := runai.GetWorkload(ctx, id)
	if err != nil {
		env.Deps.Notifier.Error(ctx, fmt.Sprintf("Failed to fetch workload %s: %v", id, err))
		return nil, dialog.MarkReported(err)
	}
	return w, nil
}
