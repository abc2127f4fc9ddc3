package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func getProviderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "provider",
		Short: "Browse supported cloud providers",
	}
	cmd.AddCommand(providerListCmd())
	cmd.AddCommand(providerGetCmd())
	return cmd
}

func providerListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List supported cloud providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			providers, err := client.GetProviders(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(providers.Objects))
			for _, p := range providers.Objects {
				rows = append(rows, []string{p.Name, p.Label, strings.Join(p.Regions, ", ")})
			}
			return renderList(cmd.OutOrStdout(), providers,
				[]string{"Name", "Label", "Regions"}, rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func providerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one cloud provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			provider, err := client.GetProvider(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), provider)
		},
	}
}
