package tutum

import (
	"context"
	"fmt"

	"github.com/pennassurancesoftware/tutum-go/pkg/models"
)

// Tutum is the API surface: one method per REST endpoint. The single
// implementation is Client; the interface exists so callers (and the
// CLI) can swap in a mock.
//
// A page argument of zero or less asks the server for its default
// page. Every method can fail two ways: *ApiError when the service
// understood and rejected the request, and *RequestError when the
// call could not be completed at all. See errors.go.
type Tutum interface {
	// GetActions lists the audit log in chronological order.
	GetActions(ctx context.Context, page int) (*models.Actions, error)
	GetAction(ctx context.Context, uuid string) (*models.Action, error)

	GetProviders(ctx context.Context, page int) (*models.Providers, error)
	GetProvider(ctx context.Context, name string) (*models.Provider, error)

	GetRegions(ctx context.Context, page int) (*models.Regions, error)
	GetRegion(ctx context.Context, providerName, name string) (*models.Region, error)

	GetNodeTypes(ctx context.Context, page int) (*models.NodeTypes, error)
	GetNodeType(ctx context.Context, providerName, name string) (*models.NodeType, error)

	GetNodeClusters(ctx context.Context, page int) (*models.NodeClusters, error)
	GetNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error)

	// CreateNodeCluster registers a new cluster. Name, Region and
	// NodeType must be set (Region and NodeType as resource URIs, see
	// RegionURI and NodeTypeURI). The cluster is created in the Init
	// state; call DeployNodeCluster to provision it.
	CreateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error)

	// DeployNodeCluster provisions a freshly created cluster in its
	// region and provider.
	DeployNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error)

	// UpdateNodeCluster changes cluster details (target node count,
	// tags) and applies them automatically. The UUID field selects the
	// cluster.
	UpdateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error)

	// UpgradeDockerOnNodeCluster upgrades the Docker daemon on every
	// node in the cluster.
	UpgradeDockerOnNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error)

	// TerminateNodeCluster terminates all nodes in the cluster and the
	// cluster itself. Not reversible.
	TerminateNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error)

	GetNodes(ctx context.Context, page int) (*models.Nodes, error)
	GetNode(ctx context.Context, uuid string) (*models.Node, error)

	DeployNode(ctx context.Context, uuid string) (*models.Node, error)

	// UpdateNode replaces the node's tag set wholesale with the one in
	// the given node.
	UpdateNode(ctx context.Context, node *models.Node) (*models.Node, error)

	// UpgradeDockerOnNode upgrades the node's Docker daemon. Containers
	// on the node are restarted as a side effect.
	UpgradeDockerOnNode(ctx context.Context, uuid string) (*models.Node, error)

	// TerminateNode terminates the node. The server rejects the call
	// while the node has running containers.
	TerminateNode(ctx context.Context, uuid string) (*models.Node, error)
}

// RegionURI builds the resource URI the create endpoint expects for a
// region, e.g. "/api/v1/region/digitalocean/lon1/".
func RegionURI(version, providerName, name string) string {
	return fmt.Sprintf("/api/%s/region/%s/%s/", version, providerName, name)
}

// NodeTypeURI builds the resource URI for a node type, e.g.
// "/api/v1/nodetype/digitalocean/1gb/".
func NodeTypeURI(version, providerName, name string) string {
	return fmt.Sprintf("/api/%s/nodetype/%s/%s/", version, providerName, name)
}
