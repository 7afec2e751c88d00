package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/amirasaad/accountsystem/pkg/app"
	"github.com/amirasaad/accountsystem/pkg/operation"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type runWithApp func(cmd *cobra.Command, run func(*app.App) error) error

var (
	okMark   = color.New(color.FgGreen, color.Bold).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

func newMenuCmd(withApp runWithApp) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Start the interactive account menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				return a.Menu(cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
			})
		},
	}
}

func newExecCmd(withApp runWithApp) *cobra.Command {
	return &cobra.Command{
		Use:     "exec <operation> [amount]",
		Short:   "Execute one operation",
		Example: "  accountsystem exec credit 250.00\n  accountsystem exec VIEW_BALANCE",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := operation.NoAmount()
			if len(args) == 2 {
				amount = operation.AmountFromString(args[1])
			}
			return withApp(cmd, func(a *app.App) error {
				return execute(cmd, a, operation.NormalizeID(args[0]), amount)
			})
		},
	}
}

func newBalanceCmd(withApp runWithApp) *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show the current balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				return execute(cmd, a, operation.ViewBalance, operation.NoAmount())
			})
		},
	}
}

func newOpsCmd(withApp runWithApp) *cobra.Command {
	return &cobra.Command{
		Use:   "ops",
		Short: "List registered operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(a *app.App) error {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), operationsTable(a.Registry.Available()))
				return err
			})
		},
	}
}

func execute(cmd *cobra.Command, a *app.App, id operation.ID, amount operation.Amount) error {
	res := a.Registry.Execute(cmd.Context(), id, amount)
	if err := printResult(cmd.OutOrStdout(), res); err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("%w: %w", errOperationFailed, res.Err())
	}
	return nil
}

func printResult(w io.Writer, res operation.Result) error {
	mark := okMark("✓")
	if !res.Success() {
		mark = failMark("✗")
	}
	// continuation lines align under the first
	msg := strings.ReplaceAll(res.Message(), "\n", "\n  ")
	_, err := fmt.Fprintf(w, "%s %s\n", mark, msg)
	return err
}

func operationsTable(ops []operation.Descriptor) string {
	rows := make([][]string, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, []string{op.ID.String(), op.Description, strconv.FormatBool(op.Builtin)})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("OPERATION", "DESCRIPTION", "BUILT-IN").
		Rows(rows...).
		String()
}
