package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pennassurancesoftware/tutum-go/pkg/models"
	"github.com/pennassurancesoftware/tutum-go/pkg/tutum"
)

func getNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage individual compute nodes",
	}
	cmd.AddCommand(nodeListCmd())
	cmd.AddCommand(nodeGetCmd())
	cmd.AddCommand(nodeDeployCmd())
	cmd.AddCommand(nodeUpdateCmd())
	cmd.AddCommand(nodeUpgradeCmd())
	cmd.AddCommand(nodeTerminateCmd())
	return cmd
}

func nodeListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current and recently terminated nodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			nodes, err := client.GetNodes(cmd.Context(), page)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(nodes.Objects))
			for _, n := range nodes.Objects {
				rows = append(rows, []string{
					n.UUID, string(n.State), n.PublicIP, n.DockerVersion,
					n.NodeCluster, strings.Join(n.Tags, ", "),
				})
			}
			return renderList(cmd.OutOrStdout(), nodes,
				[]string{"UUID", "State", "Public IP", "Docker", "Cluster", "Tags"}, rows)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func nodeGetCmd() *cobra.Command {
	return nodeActionCmd(
		"get <uuid>",
		"Show one node",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.Node, error) {
			return client.GetNode(cmd.Context(), uuid)
		},
	)
}

func nodeDeployCmd() *cobra.Command {
	return nodeActionCmd(
		"deploy <uuid>",
		"Deploy and provision a freshly created node",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.Node, error) {
			return client.DeployNode(cmd.Context(), uuid)
		},
	)
}

func nodeUpgradeCmd() *cobra.Command {
	return nodeActionCmd(
		"upgrade <uuid>",
		"Upgrade the node's Docker daemon (restarts its containers)",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.Node, error) {
			return client.UpgradeDockerOnNode(cmd.Context(), uuid)
		},
	)
}

func nodeTerminateCmd() *cobra.Command {
	return nodeActionCmd(
		"terminate <uuid>",
		"Terminate the node (rejected while containers are running)",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.Node, error) {
			return client.TerminateNode(cmd.Context(), uuid)
		},
	)
}

func nodeActionCmd(
	use, short string,
	action func(tutum.Tutum, *cobra.Command, string) (*models.Node, error),
) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUUID(args[0]); err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			node, err := action(client, cmd, args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), node)
		},
	}
}

func nodeUpdateCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "update <uuid>",
		Short: "Replace the node's tag set with the given tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUUID(args[0]); err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			node, err := client.UpdateNode(cmd.Context(), &models.Node{
				UUID: args[0],
				Tags: tags,
			})
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), node)
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tag (repeatable; omit to clear all tags)")
	return cmd
}
