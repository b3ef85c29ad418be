package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agriconnect/domain"
	"agriconnect/service"
)

var planCmd = &cobra.Command{
	Use:   "plan <profile-id>",
	Short: "Generate an AI repayment plan for a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.directory.Get(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating a repayment plan for %s (%s)...\n", b.Details().Name, b.Details().Location)

	st, err := a.plans.Generate(ctx, args[0])
	if err != nil {
		return err
	}
	if st.Status != domain.PlanSuccess {
		return errors.New(service.UserMessage(st.Err))
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tAMOUNT\tDATE\tREASONING")
	for _, inst := range st.Plan {
		fmt.Fprintf(tw, "%d\t$%.2f\t%s\t%s\n", inst.Installment, inst.Amount, inst.SuggestedDate, inst.Reasoning)
	}
	fmt.Fprintf(tw, "\t$%.2f\tTotal\t\n", st.Plan.Total())
	return tw.Flush()
}
