package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/runtime/terminal/viewer"
)

type BrowseCmd struct {
	env *Env
}

func NewBrowseCmd(env *Env) *cobra.Command {
	bc := &BrowseCmd{env: env}
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse workloads, projects and clusters interactively",
		Args:  cobra.NoArgs,
		RunE:  bc.run,
	}
}

func (bc *BrowseCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if err := bc.env.Dialog().GettingStarted(ctx); err != nil {
		return err
	}

	// the viewer owns the screen, so provider errors go to its status line
	model := viewer.NewModel(ctx, viewer.NewTabs(bc.env.Session))
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(bc.env.Out),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}
