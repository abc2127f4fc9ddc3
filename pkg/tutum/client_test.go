package tutum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennassurancesoftware/tutum-go/internal/testutil"
	"github.com/pennassurancesoftware/tutum-go/pkg/models"
)

func newTestClient(t *testing.T, fake *testutil.FakeAPI, opts ...Option) *Client {
	t.Helper()
	opts = append([]Option{WithBaseURL(fake.URL() + "/")}, opts...)
	client, err := New(testutil.Token, opts...)
	require.NoError(t, err)
	return client
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}

func TestGetNodeClusterReturnsRequestedID(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	id := fake.SeedCluster(models.NodeCluster{Name: "workers"})

	client := newTestClient(t, fake)
	cluster, err := client.GetNodeCluster(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, cluster.UUID)
	assert.Equal(t, "workers", cluster.Name)
}

func TestGetNodeReturnsRequestedID(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	id := fake.SeedNode(models.Node{PublicIP: "10.1.2.3"})

	client := newTestClient(t, fake)
	node, err := client.GetNode(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, node.UUID)
	assert.Equal(t, "10.1.2.3", node.PublicIP)
}

func TestGetNodeClusterNotFound(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()

	client := newTestClient(t, fake)
	_, err := client.GetNodeCluster(context.Background(), "no-such-uuid")

	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "no-such-uuid")
}

func TestCreateNodeClusterValidation(t *testing.T) {
	var requests int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
	}))
	defer srv.Close()

	client, err := New("token", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	cases := map[string]*models.NodeCluster{
		"nil cluster":    nil,
		"missing name":   {Region: "/api/v1/region/digitalocean/lon1/", NodeType: "/api/v1/nodetype/digitalocean/1gb/"},
		"missing region": {Name: "workers", NodeType: "/api/v1/nodetype/digitalocean/1gb/"},
		"missing type":   {Name: "workers", Region: "/api/v1/region/digitalocean/lon1/"},
	}
	for name, cluster := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := client.CreateNodeCluster(context.Background(), cluster)
			var apiErr *ApiError
			require.ErrorAs(t, err, &apiErr, "validation must surface as a domain error")
			var reqErr *RequestError
			assert.False(t, errors.As(err, &reqErr))
		})
	}
	// Validation happens before any request is built.
	assert.Zero(t, atomic.LoadInt32(&requests))
}

func TestNodeClusterLifecycle(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	cluster, err := client.CreateNodeCluster(ctx, &models.NodeCluster{
		Name:           "workers",
		Region:         RegionURI("v1", "digitalocean", "lon1"),
		NodeType:       NodeTypeURI("v1", "digitalocean", "1gb"),
		TargetNumNodes: 3,
	})
	require.NoError(t, err)
	require.NotEmpty(t, cluster.UUID)
	assert.Equal(t, models.StateInit, cluster.State)

	cluster, err = client.DeployNodeCluster(ctx, cluster.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDeployed, cluster.State)
	assert.Equal(t, 3, cluster.CurrentNumNodes)

	cluster, err = client.UpdateNodeCluster(ctx, &models.NodeCluster{
		UUID:           cluster.UUID,
		TargetNumNodes: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, cluster.TargetNumNodes)

	cluster, err = client.UpgradeDockerOnNodeCluster(ctx, cluster.UUID)
	require.NoError(t, err)

	cluster, err = client.TerminateNodeCluster(ctx, cluster.UUID)
	require.NoError(t, err)
	assert.Equal(t, models.StateTerminated, cluster.State)
	assert.True(t, cluster.State.IsTerminal())
}

func TestTerminatedClusterIsTerminal(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	id := fake.SeedCluster(models.NodeCluster{Name: "doomed", State: models.StateTerminated})

	// No operation leads out of the terminated state.
	var apiErr *ApiError
	_, err := client.DeployNodeCluster(ctx, id)
	require.ErrorAs(t, err, &apiErr)

	_, err = client.UpdateNodeCluster(ctx, &models.NodeCluster{UUID: id, TargetNumNodes: 9})
	require.ErrorAs(t, err, &apiErr)

	_, err = client.UpgradeDockerOnNodeCluster(ctx, id)
	require.ErrorAs(t, err, &apiErr)

	cluster, err := client.GetNodeCluster(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTerminated, cluster.State)
}

func TestUpdateNodeReplacesTagsWholesale(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	id := fake.SeedNode(models.Node{Tags: []string{"old", "stale"}})

	node, err := client.UpdateNode(ctx, &models.Node{UUID: id, Tags: []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, node.Tags)

	node, err = client.GetNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, node.Tags, "update must replace, not merge")

	// An empty set clears the tags entirely.
	node, err = client.UpdateNode(ctx, &models.Node{UUID: id})
	require.NoError(t, err)
	assert.Empty(t, node.Tags)
}

func TestTerminateNodeWithRunningContainers(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	id := fake.SeedNode(models.Node{})
	fake.SetRunningContainers(id, 2)

	_, err := client.TerminateNode(ctx, id)
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "running containers")

	// The node survives the rejected call.
	node, err := client.GetNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateDeployed, node.State)

	fake.SetRunningContainers(id, 0)
	node, err = client.TerminateNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTerminated, node.State)
}

func TestNodeLifecycle(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	id := fake.SeedNode(models.Node{State: models.StateInit})

	node, err := client.DeployNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateDeployed, node.State)

	node, err = client.UpgradeDockerOnNode(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, node.DockerVersion)

	node, err = client.TerminateNode(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, models.StateTerminated, node.State)

	_, err = client.DeployNode(ctx, id)
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
}

func TestPaginationYieldsDisjointPages(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		fake.SeedCluster(models.NodeCluster{Name: "c"})
	}

	page1, err := client.GetNodeClusters(ctx, 1)
	require.NoError(t, err)
	page2, err := client.GetNodeClusters(ctx, 2)
	require.NoError(t, err)

	assert.True(t, page1.Meta.HasNext())
	assert.Equal(t, 7, page1.Meta.TotalCount)

	seen := map[string]bool{}
	for _, c := range page1.Objects {
		seen[c.UUID] = true
	}
	for _, c := range page2.Objects {
		assert.False(t, seen[c.UUID], "pages must not overlap")
	}
	assert.NotEmpty(t, page2.Objects)
}

func TestCatalogEndpoints(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	providers, err := client.GetProviders(ctx, 0)
	require.NoError(t, err)
	require.NotEmpty(t, providers.Objects)

	provider, err := client.GetProvider(ctx, "digitalocean")
	require.NoError(t, err)
	assert.Equal(t, "Digital Ocean", provider.Label)

	region, err := client.GetRegion(ctx, "digitalocean", "lon1")
	require.NoError(t, err)
	assert.Equal(t, "lon1", region.Name)

	nodeType, err := client.GetNodeType(ctx, "digitalocean", "1gb")
	require.NoError(t, err)
	assert.Equal(t, "1gb", nodeType.Name)

	_, err = client.GetRegion(ctx, "digitalocean", "nowhere")
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
}

func TestGetActions(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)
	ctx := context.Background()

	id := fake.AddAction(models.Action{Action: "Node Deploy", Method: "POST", State: "Success"})

	actions, err := client.GetActions(ctx, 0)
	require.NoError(t, err)
	require.Len(t, actions.Objects, 1)

	action, err := client.GetAction(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Node Deploy", action.Action)
}

func TestBadTokenIsDomainError(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()

	client, err := New("wrong-token", WithBaseURL(fake.URL()+"/"))
	require.NoError(t, err)

	_, err = client.GetProviders(context.Background(), 0)
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestServerErrorIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, err := New("token", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.GetNodes(context.Background(), 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
}

func TestMalformedBodyIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client, err := New("token", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.GetNodes(context.Background(), 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestConnectionFailureIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client, err := New("token", WithBaseURL(srv.URL+"/"))
	require.NoError(t, err)

	_, err = client.GetNodes(context.Background(), 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	require.Error(t, errors.Unwrap(reqErr))
}

func TestRetryRecoversFromTransportFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meta":{"limit":25,"offset":0,"next":"","previous":"","total_count":0},"objects":[]}`))
	}))
	defer srv.Close()

	client, err := New("token", WithBaseURL(srv.URL+"/"), WithRetry(5*time.Second))
	require.NoError(t, err)

	nodes, err := client.GetNodes(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, nodes.Objects)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetryNeverRepeatsDomainErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"no such thing"}`))
	}))
	defer srv.Close()

	client, err := New("token", WithBaseURL(srv.URL+"/"), WithRetry(5*time.Second))
	require.NoError(t, err)

	_, err = client.GetNode(context.Background(), "some-uuid")
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "no such thing", apiErr.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "domain errors are never retried")
}

func TestServerMessageSurvivesIntact(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)

	id := fake.SeedNode(models.Node{})
	fake.SetRunningContainers(id, 1)

	_, err := client.TerminateNode(context.Background(), id)
	var apiErr *ApiError
	require.ErrorAs(t, err, &apiErr)
	// The message is the server's own, not a client paraphrase.
	assert.Contains(t, apiErr.Message, id)
}

func TestContextCancellation(t *testing.T) {
	fake := testutil.NewFakeAPI()
	defer fake.Close()
	client := newTestClient(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetProviders(ctx, 0)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
}

func TestResourceURIHelpers(t *testing.T) {
	assert.Equal(t,
		"/api/v1/region/digitalocean/lon1/",
		RegionURI("v1", "digitalocean", "lon1"))
	assert.Equal(t,
		"/api/v1/nodetype/digitalocean/1gb/",
		NodeTypeURI("v1", "digitalocean", "1gb"))
}
