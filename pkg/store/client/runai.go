package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/de-tools/runai-atlas/pkg/models/api"
	"github.com/de-tools/runai-atlas/pkg/models/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	workloadsPath  = "/api/v1/workloads"
	workspacesPath = "/api/v1/workloads/workspaces"
	trainingsPath  = "/api/v1/workloads/trainings"
	projectsPath   = "/api/v1/projects"
	clustersPath   = "/api/v1/clusters"

	userAgent = "runai-atlas/1"
)

// RunAI is the set of operations the tools perform against the orchestration service.
type RunAI interface {
	ListWorkloads(ctx context.Context, projectID string) ([]domain.Workload, error)
	GetWorkload(ctx context.Context, id string) (*domain.Workload, error)
	DeleteWorkload(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListClusters(ctx context.Context) ([]domain.Cluster, error)
	SubmitWorkspace(ctx context.Context, projectID, name, image string, gpu int) (api.SubmitResult, error)
	SubmitTraining(ctx context.Context, projectID, name, image, command string, gpu int) (api.SubmitResult, error)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

// WithHTTPClient replaces the default client. The default has no timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

func NewClient(cfg domain.ConnectionConfig, opts ...Option) (*Client, error) {
	if !cfg.Configured() {
		return nil, domain.ErrNotConfigured
	}

	base, err := url.Parse(strings.TrimSuffix(cfg.APIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse api url %q: %w", cfg.APIURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api url %q must be absolute", cfg.APIURL)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    base.String(),
		token:      cfg.Token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Factory adapts NewClient to the signature the session expects.
func Factory(cfg domain.ConnectionConfig) (RunAI, error) {
	c, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ListWorkloads(ctx context.Context, projectID string) ([]domain.Workload, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("filterBy", "projectId=="+projectID)
	}

	var list api.WorkloadList
	if err := c.call(ctx, http.MethodGet, workloadsPath, query, nil, &list); err != nil {
		return nil, err
	}
	if list.Workloads == nil {
		return []domain.Workload{}, nil
	}
	return list.Workloads, nil
}

func (c *Client) GetWorkload(ctx context.Context, id string) (*domain.Workload, error) {
	var workload domain.Workload
	if err := c.call(ctx, http.MethodGet, workloadPath(id), nil, nil, &workload); err != nil {
		return nil, err
	}
	return &workload, nil
}

func (c *Client) DeleteWorkload(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodDelete, workloadPath(id), nil, nil, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var list api.ProjectList
	if err := c.call(ctx, http.MethodGet, projectsPath, nil, nil, &list); err != nil {
		return nil, err
	}
	if list.Projects == nil {
		return []domain.Project{}, nil
	}
	return list.Projects, nil
}

func (c *Client) ListClusters(ctx context.Context) ([]domain.Cluster, error) {
	var list api.ClusterList
	if err := c.call(ctx, http.MethodGet, clustersPath, nil, nil, &list); err != nil {
		return nil, err
	}
	if list.Clusters == nil {
		return []domain.Cluster{}, nil
	}
	return list.Clusters, nil
}

func (c *Client) SubmitWorkspace(
	ctx context.Context,
	projectID, name, image string,
	gpu int,
) (api.SubmitResult, error) {
	req := newSubmitRequest(projectID, name, image, gpu)
	return c.submit(ctx, workspacesPath, req)
}

func (c *Client) SubmitTraining(
	ctx context.Context,
	projectID, name, image, command string,
	gpu int,
) (api.SubmitResult, error) {
	req := newSubmitRequest(projectID, name, image, gpu)
	req.Spec.Command = &command
	return c.submit(ctx, trainingsPath, req)
}

// newSubmitRequest leaves gpuDevicesRequest out unless a positive count was asked for.
func newSubmitRequest(projectID, name, image string, gpu int) *api.SubmitRequest {
	req := &api.SubmitRequest{
		Name:      name,
		ProjectID: projectID,
		Spec:      api.WorkloadSpec{Image: image},
	}
	if gpu > 0 {
		req.Spec.Compute.GPUDevicesRequest = &gpu
	}
	return req
}

func (c *Client) submit(ctx context.Context, path string, req *api.SubmitRequest) (api.SubmitResult, error) {
	var result api.SubmitResult
	if err := c.call(ctx, http.MethodPost, path, nil, req, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func workloadPath(id string) string {
	return workloadsPath + "/" + url.PathEscape(id)
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	query url.Values,
	body interface{},
) (*http.Request, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to build url for %s: %w", path, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// call sends the request and decodes a 2xx body into v. An empty body leaves v untouched.
func (c *Client) call(
	ctx context.Context,
	method, path string,
	query url.Values,
	body interface{},
	v interface{},
) error {
	logger := zerolog.Ctx(ctx)

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	logger.Debug().Str("method", method).Str("url", req.URL.String()).Msg("runai request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func(Body io.ReadCloser) {
		// drain so the transport can reuse the connection
		_, _ = io.Copy(io.Discard, Body)
		if err := Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if err := checkResponse(method, path, resp); err != nil {
		logger.Debug().Err(err).Msg("runai request failed")
		return err
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
