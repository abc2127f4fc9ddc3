package tutum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pennassurancesoftware/tutum-go/pkg/logger"
	"github.com/pennassurancesoftware/tutum-go/pkg/models"
)

const (
	DefaultBaseURL = "https://dashboard.tutum.co/"
	DefaultVersion = "v1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "tutum-go"

	maxResponseBody = 4 << 20
)

// Client talks to the Tutum API. It holds no mutable state between
// calls, so a single Client is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	version    string
	token      string
	userAgent  string
	httpClient *http.Client

	// Opt-in retry budget for transport-class failures. Zero disables
	// retries entirely; domain rejections are never retried.
	maxRetryElapsed time.Duration

	log *logger.Logger
}

var _ Tutum = (*Client)(nil)

type Option func(*Client)

// WithBaseURL points the client at a different API endpoint, such as a
// test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil {
			c.baseURL = u
		}
	}
}

// WithVersion selects the API version segment of every path.
func WithVersion(version string) Option {
	return func(c *Client) { c.version = version }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithRetry enables exponential-backoff retries of transport failures
// for up to maxElapsed per call.
func WithRetry(maxElapsed time.Duration) Option {
	return func(c *Client) { c.maxRetryElapsed = maxElapsed }
}

// New builds a Client for the given auth token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("tutum: auth token is required")
	}

	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    base,
		version:    DefaultVersion,
		token:      token,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        logger.Get(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Version returns the API version segment the client addresses.
func (c *Client) Version() string {
	return c.version
}

func (c *Client) resourcePath(segments ...string) string {
	p := "api/" + c.version + "/"
	for _, s := range segments {
		p += url.PathEscape(s) + "/"
	}
	return p
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	page int,
	body interface{},
) (*http.Request, error) {
	rel := &url.URL{Path: path}
	u := c.baseURL.ResolveReference(rel)

	if page > 0 {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		u.RawQuery = q.Encode()
	}

	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &RequestError{Message: "encoding request body", Err: err}
		}
		buf = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), buf)
	if err != nil {
		return nil, &RequestError{Message: "building request", Err: err}
	}

	req.Header.Set("Authorization", "ApiKey "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do issues the call and decodes a 2xx body into v. With retries
// enabled, transport failures are retried with exponential backoff
// until the budget runs out; ApiError short-circuits as permanent.
func (c *Client) do(ctx context.Context, method, path string, page int, body, v interface{}) error {
	operation := func() error {
		req, err := c.newRequest(ctx, method, path, page, body)
		if err != nil {
			return backoff.Permanent(err)
		}
		if err := c.doOnce(req, v); err != nil {
			if _, ok := err.(*ApiError); ok {
				return backoff.Permanent(err)
			}
			return err
		}
		return nil
	}

	if c.maxRetryElapsed <= 0 {
		err := operation()
		if perm, ok := err.(*backoff.PermanentError); ok {
			return perm.Err
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxRetryElapsed
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

func (c *Client) doOnce(req *http.Request, v interface{}) error {
	c.log.Debugf("tutum: %s %s", req.Method, req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Message: "issuing request", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return &RequestError{StatusCode: resp.StatusCode, Message: "reading response body", Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if v == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, v); err != nil {
			return &RequestError{StatusCode: resp.StatusCode, Message: "decoding response body", Err: err}
		}
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ApiError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	default:
		return &RequestError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}
}

// serverMessage extracts the service's own message from an error body,
// falling back to the raw body when it is not the documented shape.
func serverMessage(data []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return string(data)
}

// Actions

func (c *Client) GetActions(ctx context.Context, page int) (*models.Actions, error) {
	out := &models.Actions{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("action"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetAction(ctx context.Context, uuid string) (*models.Action, error) {
	if uuid == "" {
		return nil, newValidationError("action uuid is required")
	}
	out := &models.Action{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("action", uuid), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Catalog

func (c *Client) GetProviders(ctx context.Context, page int) (*models.Providers, error) {
	out := &models.Providers{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("provider"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProvider(ctx context.Context, name string) (*models.Provider, error) {
	if name == "" {
		return nil, newValidationError("provider name is required")
	}
	out := &models.Provider{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("provider", name), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRegions(ctx context.Context, page int) (*models.Regions, error) {
	out := &models.Regions{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("region"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetRegion(ctx context.Context, providerName, name string) (*models.Region, error) {
	if providerName == "" || name == "" {
		return nil, newValidationError("provider name and region name are required")
	}
	out := &models.Region{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("region", providerName, name), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNodeTypes(ctx context.Context, page int) (*models.NodeTypes, error) {
	out := &models.NodeTypes{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("nodetype"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNodeType(ctx context.Context, providerName, name string) (*models.NodeType, error) {
	if providerName == "" || name == "" {
		return nil, newValidationError("provider name and node type name are required")
	}
	out := &models.NodeType{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("nodetype", providerName, name), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Node clusters

func (c *Client) GetNodeClusters(ctx context.Context, page int) (*models.NodeClusters, error) {
	out := &models.NodeClusters{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("nodecluster"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	if uuid == "" {
		return nil, newValidationError("node cluster uuid is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("nodecluster", uuid), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error) {
	if cluster == nil {
		return nil, newValidationError("node cluster is required")
	}
	if cluster.Name == "" {
		return nil, newValidationError("node cluster name is required")
	}
	if cluster.Region == "" {
		return nil, newValidationError("node cluster region is required")
	}
	if cluster.NodeType == "" {
		return nil, newValidationError("node cluster node type is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodPost, c.resourcePath("nodecluster"), 0, cluster, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeployNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	if uuid == "" {
		return nil, newValidationError("node cluster uuid is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodPost, c.resourcePath("nodecluster", uuid, "deploy"), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateNodeCluster(ctx context.Context, cluster *models.NodeCluster) (*models.NodeCluster, error) {
	if cluster == nil || cluster.UUID == "" {
		return nil, newValidationError("node cluster uuid is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodPatch, c.resourcePath("nodecluster", cluster.UUID), 0, cluster, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpgradeDockerOnNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	if uuid == "" {
		return nil, newValidationError("node cluster uuid is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodPost, c.resourcePath("nodecluster", uuid, "docker-upgrade"), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TerminateNodeCluster(ctx context.Context, uuid string) (*models.NodeCluster, error) {
	if uuid == "" {
		return nil, newValidationError("node cluster uuid is required")
	}
	out := &models.NodeCluster{}
	if err := c.do(ctx, http.MethodDelete, c.resourcePath("nodecluster", uuid), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Nodes

func (c *Client) GetNodes(ctx context.Context, page int) (*models.Nodes, error) {
	out := &models.Nodes{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("node"), page, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetNode(ctx context.Context, uuid string) (*models.Node, error) {
	if uuid == "" {
		return nil, newValidationError("node uuid is required")
	}
	out := &models.Node{}
	if err := c.do(ctx, http.MethodGet, c.resourcePath("node", uuid), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeployNode(ctx context.Context, uuid string) (*models.Node, error) {
	if uuid == "" {
		return nil, newValidationError("node uuid is required")
	}
	out := &models.Node{}
	if err := c.do(ctx, http.MethodPost, c.resourcePath("node", uuid, "deploy"), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdateNode(ctx context.Context, node *models.Node) (*models.Node, error) {
	if node == nil || node.UUID == "" {
		return nil, newValidationError("node uuid is required")
	}
	// The tag set replaces the server's wholesale, so send it even
	// when empty.
	payload := struct {
		Tags []string `json:"tags"`
	}{Tags: node.Tags}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}
	out := &models.Node{}
	if err := c.do(ctx, http.MethodPatch, c.resourcePath("node", node.UUID), 0, payload, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpgradeDockerOnNode(ctx context.Context, uuid string) (*models.Node, error) {
	if uuid == "" {
		return nil, newValidationError("node uuid is required")
	}
	out := &models.Node{}
	if err := c.do(ctx, http.MethodPost, c.resourcePath("node", uuid, "docker-upgrade"), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TerminateNode(ctx context.Context, uuid string) (*models.Node, error) {
	if uuid == "" {
		return nil, newValidationError("node uuid is required")
	}
	out := &models.Node{}
	if err := c.do(ctx, http.MethodDelete, c.resourcePath("node", uuid), 0, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}
