package cmd

import (
	"github.com/spf13/cobra"
)

func getRegionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region",
		Short: "Browse provider datacenter regions",
	}
	cmd.AddCommand(regionListCmd())
	cmd.AddCommand(regionGetCmd())
	return cmd
}

func regionListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List regions across all providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			regions, err := client.GetRegions(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(regions.Objects))
			for _, r := range regions.Objects {
				rows = append(rows, []string{r.Name, r.Label, r.Provider})
			}
			return renderList(cmd.OutOrStdout(), regions,
				[]string{"Name", "Label", "Provider"}, rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func regionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <provider> <name>",
		Short: "Show one region of a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			region, err := client.GetRegion(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), region)
		},
	}
}
