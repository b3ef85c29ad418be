package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"agriconnect/domain"
	"agriconnect/service"
)

var (
	profilesSearch string
	profilesSort   string
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List the lending directory",
	Args:  cobra.NoArgs,
	RunE:  runProfiles,
}

func init() {
	profilesCmd.Flags().StringVar(&profilesSearch, "search", "", "Filter by name, location, crop or livestock")
	profilesCmd.Flags().StringVar(&profilesSort, "sort", string(service.SortTrustScore), "Sort by trust_score or name")
}

func runProfiles(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	list, err := a.directory.List(ctx, service.DirectoryQuery{
		Search: profilesSearch,
		Sort:   service.SortKey(profilesSort),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "No profiles match.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKIND\tLOCATION\tTRUST\tASSETS")
	for _, b := range list {
		p := b.Details()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d (%s)\t%s\n",
			p.ID, p.Name, b.Kind(), p.Location, p.TrustScore, domain.TrustTierFor(p.TrustScore), b.AssetSummary())
	}
	return tw.Flush()
}
