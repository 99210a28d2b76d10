package commands

import (
	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
)

type ConfigureCmd struct {
	env    *Env
	apiURL string
	token  string
}

func NewConfigureCmd(env *Env) *cobra.Command {
	cc := &ConfigureCmd{env: env}
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Set the Run:AI API URL and token",
		Long: "Prompts for the Run:AI API URL and token and stores them in the settings file.\n" +
			"Pass --api-url to configure without prompting.",
		Args: cobra.NoArgs,
		RunE: cc.run,
	}

	cmd.Flags().StringVar(&cc.apiURL, "api-url", "", "Run:AI API URL, skips the prompts")
	cmd.Flags().StringVar(&cc.token, "token", "", "Run:AI API token, used with --api-url")

	return cmd
}

func (cc *ConfigureCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if cc.apiURL == "" {
		return cc.env.Dialog().Configure(ctx)
	}

	err := cc.env.Session.Configure(ctx, domain.ConnectionConfig{APIURL: cc.apiURL, Token: cc.token})
	if err != nil {
		cc.env.Deps.Notifier.Error(ctx, "Failed to update configuration: "+err.Error())
		return dialog.MarkReported(err)
	}
	cc.env.Deps.Notifier.Info(ctx, "Run:AI configuration updated successfully!")
	return nil
}
