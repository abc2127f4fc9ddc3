package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pennassurancesoftware/tutum-go/pkg/models"
	"github.com/pennassurancesoftware/tutum-go/pkg/tutum"
)

func getNodeClusterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nodecluster",
		Short: "Manage node clusters",
	}
	cmd.AddCommand(nodeClusterListCmd())
	cmd.AddCommand(nodeClusterGetCmd())
	cmd.AddCommand(nodeClusterCreateCmd())
	cmd.AddCommand(nodeClusterDeployCmd())
	cmd.AddCommand(nodeClusterUpdateCmd())
	cmd.AddCommand(nodeClusterUpgradeCmd())
	cmd.AddCommand(nodeClusterTerminateCmd())
	return cmd
}

func nodeClusterRows(clusters *models.NodeClusters) [][]string {
	rows := make([][]string, 0, len(clusters.Objects))
	for _, c := range clusters.Objects {
		rows = append(rows, []string{
			c.UUID, c.Name, string(c.State),
			fmt.Sprintf("%d/%d", c.CurrentNumNodes, c.TargetNumNodes),
			c.Region, c.NodeType,
		})
	}
	return rows
}

var nodeClusterHeaders = []string{"UUID", "Name", "State", "Nodes", "Region", "Node type"}

func nodeClusterListCmd() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List current and recently terminated node clusters",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			clusters, err := client.GetNodeClusters(cmd.Context(), page)
			if err != nil {
				return err
			}
			return renderList(cmd.OutOrStdout(), clusters, nodeClusterHeaders, nodeClusterRows(clusters))
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number (0 = server default)")
	return cmd
}

func nodeClusterGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <uuid>",
		Short: "Show one node cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUUID(args[0]); err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			cluster, err := client.GetNodeCluster(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), cluster)
		},
	}
}

// resourceRef expands "provider/name" shorthand into a full resource
// URI; full URIs pass through untouched.
func resourceRef(kind, ref string) (string, error) {
	if strings.HasPrefix(ref, "/api/") {
		return ref, nil
	}
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid %s reference %q: want provider/name or a resource URI", kind, ref)
	}
	version := viper.GetString("tutum.version")
	if version == "" {
		version = tutum.DefaultVersion
	}
	if kind == "region" {
		return tutum.RegionURI(version, parts[0], parts[1]), nil
	}
	return tutum.NodeTypeURI(version, parts[0], parts[1]), nil
}

func nodeClusterCreateCmd() *cobra.Command {
	var (
		name           string
		region         string
		nodeType       string
		targetNumNodes int
		disk           int
		tags           []string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new node cluster",
		Long: `Create registers a new node cluster in the Init state. Region and
node type take either a "provider/name" pair (digitalocean/lon1) or a
full resource URI. Run "nodecluster deploy" afterwards to provision it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			regionURI, err := resourceRef("region", region)
			if err != nil {
				return err
			}
			nodeTypeURI, err := resourceRef("node type", nodeType)
			if err != nil {
				return err
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			cluster, err := client.CreateNodeCluster(cmd.Context(), &models.NodeCluster{
				Name:           name,
				Region:         regionURI,
				NodeType:       nodeTypeURI,
				TargetNumNodes: targetNumNodes,
				Disk:           disk,
				Tags:           tags,
			})
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), cluster)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "cluster name (required)")
	cmd.Flags().StringVar(&region, "region", "", "region, as provider/name or resource URI (required)")
	cmd.Flags().StringVar(&nodeType, "node-type", "", "node type, as provider/name or resource URI (required)")
	cmd.Flags().IntVar(&targetNumNodes, "target-num-nodes", 1, "number of nodes to provision")
	cmd.Flags().IntVar(&disk, "disk", 0, "disk size in GB (0 = provider default)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to attach (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("node-type")
	return cmd
}

func nodeClusterDeployCmd() *cobra.Command {
	return nodeClusterActionCmd(
		"deploy <uuid>",
		"Deploy and provision a freshly created node cluster",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.NodeCluster, error) {
			return client.DeployNodeCluster(cmd.Context(), uuid)
		},
	)
}

func nodeClusterUpgradeCmd() *cobra.Command {
	return nodeClusterActionCmd(
		"upgrade <uuid>",
		"Upgrade the Docker daemon on every node in the cluster",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.NodeCluster, error) {
			return client.UpgradeDockerOnNodeCluster(cmd.Context(), uuid)
		},
	)
}

func nodeClusterTerminateCmd() *cobra.Command {
	return nodeClusterActionCmd(
		"terminate <uuid>",
		"Terminate all nodes in the cluster and the cluster itself (not reversible)",
		func(client tutum.Tutum, cmd *cobra.Command, uuid string) (*models.NodeCluster, error) {
			return client.TerminateNodeCluster(cmd.Context(), uuid)
		},
	)
}

func nodeClusterActionCmd(
	use, short string,
	action func(tutum.Tutum, *cobra.Command, string) (*models.NodeCluster, error),
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
			cluster, err := action(client, cmd, args[0])
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), cluster)
		},
	}
}

func nodeClusterUpdateCmd() *cobra.Command {
	var (
		targetNumNodes string
		tags           []string
	)
	cmd := &cobra.Command{
		Use:   "update <uuid>",
		Short: "Update cluster details and apply them automatically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateUUID(args[0]); err != nil {
				return err
			}
			update := &models.NodeCluster{UUID: args[0], Tags: tags}
			if targetNumNodes != "" {
				n, err := strconv.Atoi(targetNumNodes)
				if err != nil || n < 0 {
					return fmt.Errorf("invalid --target-num-nodes %q", targetNumNodes)
				}
				update.TargetNumNodes = n
			}
			client, err := newAPIClient()
			if err != nil {
				return err
			}
			cluster, err := client.UpdateNodeCluster(cmd.Context(), update)
			if err != nil {
				return err
			}
			return renderItem(cmd.OutOrStdout(), cluster)
		},
	}
	cmd.Flags().StringVar(&targetNumNodes, "target-num-nodes", "", "new target node count")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "replacement tag (repeatable)")
	return cmd
}
