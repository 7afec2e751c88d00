package main

import (
	"context"
	"errors"

	"github.com/amirasaad/accountsystem/infra/initializer"
	"github.com/amirasaad/accountsystem/pkg/app"
	"github.com/amirasaad/accountsystem/pkg/config"
	"github.com/spf13/cobra"
)

// errOperationFailed marks a dispatch whose failure was already printed.
var errOperationFailed = errors.New("operation failed")

// appLoader assembles the application for one command invocation. The
// returned App is closed through App.Deps.Close.
type appLoader func(ctx context.Context, envFile string) (*app.App, error)

func loadApp(ctx context.Context, envFile string) (*app.App, error) {
	var paths []string
	if envFile != "" {
		paths = append(paths, envFile)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return nil, err
	}
	deps, err := initializer.InitializeDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return app.New(deps, cfg), nil
}

func newRootCmd(load appLoader) *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "accountsystem",
		Short:         "Single-account operation dispatcher",
		Long:          "Run balance, credit, debit and extension operations against one account.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "environment file to load before the process environment")

	withApp := func(cmd *cobra.Command, run func(*app.App) error) error {
		a, err := load(cmd.Context(), envFile)
		if err != nil {
			return err
		}
		defer func() { _ = a.Deps.Close() }()
		return run(a)
	}

	cmd.AddCommand(
		newMenuCmd(withApp),
		newExecCmd(withApp),
		newBalanceCmd(withApp),
		newOpsCmd(withApp),
	)
	return cmd
}
