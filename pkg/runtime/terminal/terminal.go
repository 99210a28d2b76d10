package terminal

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/models/domain"
	"github.com/de-tools/runai-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/runai-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/runai-atlas/pkg/services/config"
	"github.com/de-tools/runai-atlas/pkg/services/dialog"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

// CLI represents the command-line interface
type CLI struct {
	opts    Options
	env     *commands.Env
	rootCmd *cobra.Command

	optionsPath string
	configPath  string
	output      string
	logLevel    string
}

// Options contain configuration for the CLI
type Options struct {
	Input     io.Reader
	Output    io.Writer
	ErrOutput io.Writer

	// Factory builds the API client; client.Factory when nil.
	Factory session.ClientFactory
	// DetailsDir receives workload detail pages; the system temp dir when empty.
	DetailsDir string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Factory == nil {
		opts.Factory = client.Factory
	}

	cli := &CLI{
		opts: opts,
		env:  &commands.Env{Out: opts.Output},
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// SetArgs overrides os.Args, for tests.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "runai",
		Short:             "Work with Run:AI workloads, projects and clusters",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: cli.setup,
	}

	cmd.SetIn(cli.opts.Input)
	cmd.SetOut(cli.opts.Output)
	cmd.SetErr(cli.opts.ErrOutput)

	flags := cmd.PersistentFlags()
	flags.StringVar(&cli.optionsPath, "options", "", "Path to an options file (yaml, json or toml)")
	flags.StringVar(&cli.configPath, "config", "", "Path to the connection settings file (default $HOME/.runaicfg)")
	flags.StringVarP(&cli.output, "output", "o", "", "Output format: table, json or yaml")
	flags.StringVar(&cli.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(commands.NewConfigureCmd(cli.env))
	cmd.AddCommand(commands.NewWorkloadsCmd(cli.env))
	cmd.AddCommand(commands.NewSubmitCmd(cli.env))
	cmd.AddCommand(commands.NewViewCmd(cli.env, domain.ViewProjects, "List projects"))
	cmd.AddCommand(commands.NewViewCmd(cli.env, domain.ViewClusters, "List clusters"))
	cmd.AddCommand(commands.NewBrowseCmd(cli.env))

	return cmd
}

// setup resolves options (flags over RUNAI_* env over options file), then
// wires the session, views and dialogs the subcommands share.
func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	opts, err := config.LoadOptions(cli.optionsPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("config") {
		opts.ConfigPath = cli.configPath
	}
	if flags.Changed("output") {
		opts.Output = cli.output
	}
	if flags.Changed("log-level") {
		opts.LogLevel = cli.logLevel
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	logger := NewLogger(cli.opts.ErrOutput, opts.Level())
	ctx := logger.WithContext(cmd.Context())
	cmd.SetContext(ctx)

	sess, err := session.New(ctx, config.NewFileStore(opts.ConfigPath), cli.opts.Factory,
		session.WithOverrides(opts.Apply))
	if err != nil {
		// a broken settings file must not lock the user out of configure
		logger.Warn().Err(err).Str("path", opts.ConfigPath).Msg("failed to load connection settings")
	}

	notifier := NewNotifier(cli.opts.ErrOutput)
	views := resources.NewSet(sess, notifier)

	cli.env.Session = sess
	cli.env.Views = views
	cli.env.Reporter = export.NewReporter(cli.opts.Output, opts.Output)
	cli.env.Deps = dialog.Dependencies{
		Session:  sess,
		Views:    views,
		Prompter: NewPrompter(cli.opts.Input, cli.opts.ErrOutput),
		Notifier: notifier,
		Panel:    NewFilePanel(cli.opts.DetailsDir, cli.opts.Output),
	}

	logger.Debug().Bool("configured", sess.Configured()).Msg("session ready")
	return nil
}
