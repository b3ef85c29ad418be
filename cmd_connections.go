package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"agriconnect/service"
)

var connectionsCmd = &cobra.Command{
	Use:   "connections",
	Short: "Show the current user's loans and loan requests",
	Args:  cobra.NoArgs,
	RunE:  runConnections,
}

func runConnections(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	d, err := a.connections.Dashboard(ctx, cfg.Directory.CurrentUserID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printLoans(out, "Lent", d.Lent, d.OutstandingLent)
	printLoans(out, "Borrowed", d.Borrowed, d.OutstandingBorrowed)
	fmt.Fprintf(out, "Loan requests: %d incoming, %d outgoing\n", len(d.Incoming), len(d.Outgoing))
	return nil
}

func printLoans(out io.Writer, title string, loans []service.ConnectionView, outstanding float64) {
	fmt.Fprintf(out, "%s (outstanding $%.2f)\n", title, outstanding)
	if len(loans) == 0 {
		fmt.Fprintln(out, "  none")
	}
	for _, v := range loans {
		fmt.Fprintf(out, "  %-22s $%8.2f  %-6s  due %s  %s\n",
			v.CounterpartyName, v.Loan.Amount, v.Loan.Status, v.Loan.DueDate, v.Loan.Purpose)
	}
}
