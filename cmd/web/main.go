package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/runai-atlas/pkg/handlers/views"
	"github.com/de-tools/runai-atlas/pkg/server"
	"github.com/de-tools/runai-atlas/pkg/services/config"
	"github.com/de-tools/runai-atlas/pkg/services/resources"
	"github.com/de-tools/runai-atlas/pkg/services/session"
	"github.com/de-tools/runai-atlas/pkg/store/client"
)

var (
	optionsPath string
	cfgPath     string
	addr        string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the Run:AI views over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&optionsPath, "options", "", "Path to an options file (yaml, json or toml)")
	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the connection settings file (default is $HOME/.runaicfg)")
	rootCmd.Flags().StringVar(&addr, "addr", "", "Listen address (default 127.0.0.1:8787)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// .env is optional; RUNAI_* variables may come from the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	opts, err := config.LoadOptions(optionsPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("config") {
		opts.ConfigPath = cfgPath
	}
	if cmd.Flags().Changed("addr") {
		opts.Addr = addr
	}

	logger := zerolog.New(os.Stdout).Level(opts.Level()).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	sess, err := session.New(ctx, config.NewFileStore(opts.ConfigPath), client.Factory,
		session.WithOverrides(opts.Apply))
	if err != nil {
		logger.Warn().Err(err).Str("path", opts.ConfigPath).Msg("serving without a Run:AI connection")
	} else if !sess.Configured() {
		logger.Warn().Str("path", opts.ConfigPath).Msg("Run:AI is not configured, views will ask for configuration")
	} else {
		logger.Info().Str("api_url", sess.Config().APIURL).Msg("Run:AI connection loaded")
	}

	web := server.NewWebAPI(logger, server.Config{
		Addr: opts.Addr,
		Dependencies: server.Dependencies{
			Session: sess,
			Views:   resources.NewSet(sess, views.LogNotifier{}),
		},
	})

	if err := web.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
