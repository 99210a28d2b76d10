package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

type SubmitCmd struct {
	env      *Env
	training bool
	project  string
	name     string
	image    string
	command  string
	gpu      int
}

func NewSubmitCmd(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a workspace or training workload",
	}

	cmd.AddCommand(newSubmitKindCmd(env, false))
	cmd.AddCommand(newSubmitKindCmd(env, true))

	return cmd
}

func newSubmitKindCmd(env *Env, training bool) *cobra.Command {
	sc := &SubmitCmd{env: env, training: training}
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Submit an interactive workspace",
		Args:  cobra.NoArgs,
		RunE:  sc.run,
	}
	if training {
		cmd.Use = "training"
		cmd.Short = "Submit a training job"
		cmd.Flags().StringVar(&sc.command, "command", "", "Command the training job runs")
	}

	cmd.Flags().StringVar(&sc.project, "project", "", "Project ID or name, prompts when empty")
	cmd.Flags().StringVar(&sc.name, "name", "", "Workload name, prompts when empty")
	cmd.Flags().StringVar(&sc.image, "image", "", "Container image, prompts when empty")
	cmd.Flags().IntVar(&sc.gpu, "gpu", 0, "Number of GPUs, 0 requests none")

	return cmd
}

func (sc *SubmitCmd) run(cmd *cobra.Command, _ []string) error {
	in := dialog.SubmitInput{
		Project: sc.project,
		Name:    sc.name,
		Image:   sc.image,
	}
	if cmd.Flags().Changed("command") {
		in.Command = &sc.command
	}
	if cmd.Flags().Changed("gpu") {
		in.GPU = &sc.gpu
	}

	d := sc.env.Dialog()
	if sc.training {
		return d.SubmitTraining(cmd.Context(), in)
	}
	return d.SubmitWorkspace(cmd.Context(), in)
}
