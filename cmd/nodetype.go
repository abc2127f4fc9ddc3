package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func getNodeTypeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodetype",
		Short: "Browse provider machine sizes",
	}
	cmd.AddCommand(nodeTypeListCmd())
	cmd.AddCommand(nodeTypeGetCmd())
	return cmd
}

func nodeTypeListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List node types across all providers",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			nodeTypes, err := client.GetNodeTypes(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(nodeTypes.Objects))
			for _, nt := range nodeTypes.Objects {
				rows = append(rows, []string{
					nt.Name, nt.Label, nt.Provider, strings.Join(nt.Regions, ", "),
				})
			}
			return renderList(cmd.OutOrStdout(), nodeTypes,
				[]string{"Name", "Label", "Provider", "Regions"}, rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func nodeTypeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <provider> <name>",
		Short: "Show one node type of a provider",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			nodeType, err := client.GetNodeType(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), nodeType)
		},
	}
}
