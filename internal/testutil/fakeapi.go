package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pennassurancesoftware/tutum-go/pkg/models"
)

// Token is the auth token the fake API accepts.
const Token = "test-token"

const defaultPageSize = 3

// FakeAPI is an in-memory stand-in for the node/cluster service. It
// implements enough of the REST surface for client tests: CRUD on node
// clusters and nodes, the catalog endpoints, pagination, and the
// server-side rules the real service enforces (terminal states, nodes
// with running containers).
type FakeAPI struct {
	srv *httptest.Server

	mu       sync.Mutex
	clusters map[string]*models.NodeCluster
	nodes    map[string]*models.Node
	order    []string // cluster uuids in creation order, for stable pagination
	nodeIDs  []string

	// running containers per node uuid; nonzero blocks termination
	containers map[string]int

	providers []models.Provider
	regions   []models.Region
	nodeTypes []models.NodeType
	actions   []models.Action

	PageSize int
}

func NewFakeAPI() *FakeAPI {
	f := &FakeAPI{
		clusters:   map[string]*models.NodeCluster{},
		nodes:      map[string]*models.Node{},
		containers: map[string]int{},
		PageSize:   defaultPageSize,
		providers: []models.Provider{
			{Name: "digitalocean", Label: "Digital Ocean", ResourceURI: "/api/v1/provider/digitalocean/"},
			{Name: "aws", Label: "Amazon Web Services", ResourceURI: "/api/v1/provider/aws/"},
		},
		regions: []models.Region{
			{Name: "lon1", Label: "London 1", Provider: "/api/v1/provider/digitalocean/",
				ResourceURI: "/api/v1/region/digitalocean/lon1/"},
			{Name: "ams2", Label: "Amsterdam 2", Provider: "/api/v1/provider/digitalocean/",
				ResourceURI: "/api/v1/region/digitalocean/ams2/"},
		},
		nodeTypes: []models.NodeType{
			{Name: "1gb", Label: "1GB", Provider: "/api/v1/provider/digitalocean/",
				ResourceURI: "/api/v1/nodetype/digitalocean/1gb/"},
		},
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *FakeAPI) URL() string { return f.srv.URL }
func (f *FakeAPI) Close()      { f.srv.Close() }

// SeedNode registers a node directly, bypassing the API.
func (f *FakeAPI) SeedNode(node models.Node) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if node.UUID == "" {
		node.UUID = uuid.NewString()
	}
	if node.State == "" {
		node.State = models.StateDeployed
	}
	node.ResourceURI = "/api/v1/node/" + node.UUID + "/"
	f.nodes[node.UUID] = &node
	f.nodeIDs = append(f.nodeIDs, node.UUID)
	return node.UUID
}

// SeedCluster registers a cluster directly, bypassing the API.
func (f *FakeAPI) SeedCluster(cluster models.NodeCluster) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cluster.UUID == "" {
		cluster.UUID = uuid.NewString()
	}
	if cluster.State == "" {
		cluster.State = models.StateDeployed
	}
	cluster.ResourceURI = "/api/v1/nodecluster/" + cluster.UUID + "/"
	f.clusters[cluster.UUID] = &cluster
	f.order = append(f.order, cluster.UUID)
	return cluster.UUID
}

// SetRunningContainers marks a node as busy so termination is refused.
func (f *FakeAPI) SetRunningContainers(nodeUUID string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containers[nodeUUID] = n
}

// AddAction appends an audit record.
func (f *FakeAPI) AddAction(a models.Action) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.UUID == "" {
		a.UUID = uuid.NewString()
	}
	a.ResourceURI = "/api/v1/action/" + a.UUID + "/"
	f.actions = append(f.actions, a)
	return a.UUID
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf(format, args...)})
}

func (f *FakeAPI) handle(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "ApiKey "+Token {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// api / v1 / <resource> / ...
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "v1" {
		writeError(w, http.StatusNotFound, "unknown endpoint %s", r.URL.Path)
		return
	}
	resource, rest := parts[2], parts[3:]

	f.mu.Lock()
	defer f.mu.Unlock()

	switch resource {
	case "action":
		f.handleAction(w, r, rest)
	case "provider":
		f.handleProvider(w, r, rest)
	case "region":
		f.handleRegion(w, r, rest)
	case "nodetype":
		f.handleNodeType(w, r, rest)
	case "nodecluster":
		f.handleNodeCluster(w, r, rest)
	case "node":
		f.handleNode(w, r, rest)
	default:
		writeError(w, http.StatusNotFound, "unknown resource %q", resource)
	}
}

// page slices a collection of n items, returning the index range and
// pagination meta for the request's page parameter.
func (f *FakeAPI) page(r *http.Request, n int) (lo, hi int, meta models.Meta) {
	pageNo := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pageNo = parsed
		}
	}
	lo = (pageNo - 1) * f.PageSize
	hi = lo + f.PageSize
	if lo > n {
		lo = n
	}
	if hi > n {
		hi = n
	}
	meta = models.Meta{
		Limit:      f.PageSize,
		Offset:     lo,
		TotalCount: n,
	}
	if hi < n {
		meta.Next = fmt.Sprintf("%s?page=%d", r.URL.Path, pageNo+1)
	}
	if pageNo > 1 {
		meta.Previous = fmt.Sprintf("%s?page=%d", r.URL.Path, pageNo-1)
	}
	return lo, hi, meta
}

func (f *FakeAPI) handleAction(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		lo, hi, meta := f.page(r, len(f.actions))
		writeJSON(w, http.StatusOK, models.Actions{Meta: meta, Objects: f.actions[lo:hi]})
		return
	}
	for _, a := range f.actions {
		if a.UUID == rest[0] {
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	writeError(w, http.StatusNotFound, "action %q not found", rest[0])
}

func (f *FakeAPI) handleProvider(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		lo, hi, meta := f.page(r, len(f.providers))
		writeJSON(w, http.StatusOK, models.Providers{Meta: meta, Objects: f.providers[lo:hi]})
		return
	}
	for _, p := range f.providers {
		if p.Name == rest[0] {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeError(w, http.StatusNotFound, "provider %q not found", rest[0])
}

func (f *FakeAPI) handleRegion(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		lo, hi, meta := f.page(r, len(f.regions))
		writeJSON(w, http.StatusOK, models.Regions{Meta: meta, Objects: f.regions[lo:hi]})
		return
	}
	if len(rest) != 2 {
		writeError(w, http.StatusNotFound, "regions are addressed by provider and name")
		return
	}
	for _, reg := range f.regions {
		if reg.Name == rest[1] && strings.Contains(reg.Provider, "/"+rest[0]+"/") {
			writeJSON(w, http.StatusOK, reg)
			return
		}
	}
	writeError(w, http.StatusNotFound, "region %q/%q not found", rest[0], rest[1])
}

func (f *FakeAPI) handleNodeType(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		lo, hi, meta := f.page(r, len(f.nodeTypes))
		writeJSON(w, http.StatusOK, models.NodeTypes{Meta: meta, Objects: f.nodeTypes[lo:hi]})
		return
	}
	if len(rest) != 2 {
		writeError(w, http.StatusNotFound, "node types are addressed by provider and name")
		return
	}
	for _, nt := range f.nodeTypes {
		if nt.Name == rest[1] && strings.Contains(nt.Provider, "/"+rest[0]+"/") {
			writeJSON(w, http.StatusOK, nt)
			return
		}
	}
	writeError(w, http.StatusNotFound, "node type %q/%q not found", rest[0], rest[1])
}

func (f *FakeAPI) handleNodeCluster(w http.ResponseWriter, r *http.Request, rest []string) {
	switch {
	case len(rest) == 0 && r.Method == http.MethodGet:
		lo, hi, meta := f.page(r, len(f.order))
		out := make([]models.NodeCluster, 0, hi-lo)
		for _, id := range f.order[lo:hi] {
			out = append(out, *f.clusters[id])
		}
		writeJSON(w, http.StatusOK, models.NodeClusters{Meta: meta, Objects: out})

	case len(rest) == 0 && r.Method == http.MethodPost:
		var in models.NodeCluster
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed body: %v", err)
			return
		}
		if in.Name == "" || in.Region == "" || in.NodeType == "" {
			writeError(w, http.StatusBadRequest, "name, region and node_type are required")
			return
		}
		in.UUID = uuid.NewString()
		in.ResourceURI = "/api/v1/nodecluster/" + in.UUID + "/"
		in.State = models.StateInit
		if in.TargetNumNodes == 0 {
			in.TargetNumNodes = 1
		}
		f.clusters[in.UUID] = &in
		f.order = append(f.order, in.UUID)
		writeJSON(w, http.StatusCreated, in)

	case len(rest) >= 1:
		cluster, ok := f.clusters[rest[0]]
		if !ok {
			writeError(w, http.StatusNotFound, "node cluster %q not found", rest[0])
			return
		}
		f.handleNodeClusterItem(w, r, cluster, rest[1:])

	default:
		writeError(w, http.StatusNotFound, "unknown endpoint")
	}
}

func (f *FakeAPI) handleNodeClusterItem(
	w http.ResponseWriter,
	r *http.Request,
	cluster *models.NodeCluster,
	rest []string,
) {
	if len(rest) == 1 && r.Method == http.MethodPost {
		if cluster.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node cluster %q is terminated", cluster.UUID)
			return
		}
		switch rest[0] {
		case "deploy":
			cluster.State = models.StateDeployed
			cluster.CurrentNumNodes = cluster.TargetNumNodes
		case "docker-upgrade":
			cluster.State = models.StateDeployed
		default:
			writeError(w, http.StatusNotFound, "unknown operation %q", rest[0])
			return
		}
		writeJSON(w, http.StatusOK, cluster)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, cluster)
	case http.MethodPatch:
		if cluster.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node cluster %q is terminated", cluster.UUID)
			return
		}
		var in models.NodeCluster
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed body: %v", err)
			return
		}
		if in.TargetNumNodes > 0 {
			cluster.TargetNumNodes = in.TargetNumNodes
			cluster.State = models.StateScaling
		}
		if in.Tags != nil {
			cluster.Tags = in.Tags
		}
		writeJSON(w, http.StatusOK, cluster)
	case http.MethodDelete:
		if cluster.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node cluster %q is already terminated", cluster.UUID)
			return
		}
		cluster.State = models.StateTerminated
		cluster.CurrentNumNodes = 0
		writeJSON(w, http.StatusOK, cluster)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method %s not allowed", r.Method)
	}
}

func (f *FakeAPI) handleNode(w http.ResponseWriter, r *http.Request, rest []string) {
	if len(rest) == 0 {
		lo, hi, meta := f.page(r, len(f.nodeIDs))
		out := make([]models.Node, 0, hi-lo)
		for _, id := range f.nodeIDs[lo:hi] {
			out = append(out, *f.nodes[id])
		}
		writeJSON(w, http.StatusOK, models.Nodes{Meta: meta, Objects: out})
		return
	}

	node, ok := f.nodes[rest[0]]
	if !ok {
		writeError(w, http.StatusNotFound, "node %q not found", rest[0])
		return
	}

	if len(rest) == 2 && r.Method == http.MethodPost {
		if node.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node %q is terminated", node.UUID)
			return
		}
		switch rest[1] {
		case "deploy":
			node.State = models.StateDeployed
		case "docker-upgrade":
			node.State = models.StateDeployed
			node.DockerVersion = "1.5.0"
		default:
			writeError(w, http.StatusNotFound, "unknown operation %q", rest[1])
			return
		}
		writeJSON(w, http.StatusOK, node)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, node)
	case http.MethodPatch:
		if node.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node %q is terminated", node.UUID)
			return
		}
		var in models.Node
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "malformed body: %v", err)
			return
		}
		// Tag replacement is wholesale: whatever arrives is the new set.
		node.Tags = in.Tags
		writeJSON(w, http.StatusOK, node)
	case http.MethodDelete:
		if node.State.IsTerminal() {
			writeError(w, http.StatusConflict, "node %q is already terminated", node.UUID)
			return
		}
		if f.containers[node.UUID] > 0 {
			writeError(w, http.StatusConflict,
				"node %q has %d running containers", node.UUID, f.containers[node.UUID])
			return
		}
		node.State = models.StateTerminated
		writeJSON(w, http.StatusOK, node)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method %s not allowed", r.Method)
	}
}
