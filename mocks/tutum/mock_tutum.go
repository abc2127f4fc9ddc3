package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pennassurancesoftware/tutum-go/pkg/models"
)

// MockTutum is a testify mock of the tutum.Tutum interface.
type MockTutum struct {
	mock.Mock
}

func (m *MockTutum) GetActions(ctx context.Context, page int) (*models.Actions, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actions), args.Error(1)
}

func (m *MockTutum) GetAction(ctx context.Context, uuid string) (*models.Action, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Action), args.Error(1)
}

func (m *MockTutum) GetProviders(ctx context.Context, page int) (*models.Providers, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Providers), args.Error(1)
}

func (m *MockTutum) GetProvider(ctx context.Context, name string) (*models.Provider, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Provider), args.Error(1)
}

func (m *MockTutum) GetRegions(ctx context.Context, page int) (*models.Regions, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Regions), args.Error(1)
}

func (m *MockTutum) GetRegion(ctx context.Context, providerName, name string) (*models.Region, error) {
	args := m.Called(ctx, providerName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Region), args.Error(1)
}

func (m *MockTutum) GetNodeTypes(ctx context.Context, page int) (*models.NodeTypes, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeTypes), args.Error(1)
}

func (m *MockTutum) GetNodeType(ctx context.Context, providerName, name string) (*models.NodeType, error) {
	args := m.Called(ctx, providerName, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeType), args.Error(1)
}

func (m *MockTutum) GetNodeClusters(ctx context.Context, page int) (*models.NodeClusters, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeClusters), args.Error(1)
}

func (m *MockTutum) GetNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) CreateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error) {
	args := m.Called(ctx, cluster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) DeployNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) UpdateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error) {
	args := m.Called(ctx, cluster)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) UpgradeDockerOnNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) TerminateNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NodeCluster), args.Error(1)
}

func (m *MockTutum) GetNodes(ctx context.Context, page int) (*models.Nodes, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Nodes), args.Error(1)
}

func (m *MockTutum) GetNode(ctx context.Context, uuid string) (*models.Node, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Node), args.Error(1)
}

func (m *MockTutum) DeployNode(ctx context.Context, uuid string) (*models.Node, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Node), args.Error(1)
}

func (m *MockTutum) UpdateNode(ctx context.Context, node *models.Node) (*models.Node, error) {
	args := m.Called(ctx, node)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Node), args.Error(1)
}

func (m *MockTutum) UpgradeDockerOnNode(ctx context.Context, uuid string) (*models.Node, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Node), args.Error(1)
}

func (m *MockTutum) TerminateNode(ctx context.Context, uuid string) (*models.Node, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Node), args.Error(1)
}
