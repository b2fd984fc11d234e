package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
)

// DefaultBaseURL is the production TickTick Open API endpoint.
const DefaultBaseURL = "https://api.ticktick.com/open/v1"

// defaultTimeout bounds each API call; callers can impose a shorter
// deadline through the request context.
const defaultTimeout = 30 * time.Second

// APIError describes a non-2xx response from the TickTick API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ticktick: API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("ticktick: API error: status %d: %s", e.StatusCode, e.Body)
}

// MetricsRecorder receives one record per API operation. The
// instrumentation package provides the production implementation.
type MetricsRecorder interface {
	RecordAPIOperation(ctx context.Context, operation, status string, duration time.Duration)
}

// Client is a TickTick Open API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    MetricsRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used for tests and
// self-hosted endpoints.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics sets the recorder notified of every API operation.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a TickTick client authenticating with the given
// OAuth2 access token.
func NewClient(accessToken string, opts ...Option) *Client {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: ts},
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewClientFromEnv creates a client from the TICKTICK_ACCESS_TOKEN and
// optional TICKTICK_BASE_URL environment variables.
func NewClientFromEnv() (*Client, error) {
	token := os.Getenv("TICKTICK_ACCESS_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("ticktick: TICKTICK_ACCESS_TOKEN is not set")
	}

	var opts []Option
	if baseURL := os.Getenv("TICKTICK_BASE_URL"); baseURL != "" {
		opts = append(opts, WithBaseURL(baseURL))
	}
	return NewClient(token, opts...), nil
}

// do performs an API request under the given operation name and
// records its outcome with the metrics recorder, if one is set.
func (c *Client) do(ctx context.Context, operation, method, path string, in, out any) error {
	start := time.Now()
	err := c.roundTrip(ctx, method, path, in, out)
	if c.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		c.metrics.RecordAPIOperation(ctx, operation, status, time.Since(start))
	}
	return err
}

// roundTrip performs an API request and decodes the JSON response into
// out (when out is non-nil and the response has a body).
func (c *Client) roundTrip(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("ticktick: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("ticktick: failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ticktick: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(bytes.TrimSpace(data))}
	}

	if out == nil {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ticktick: failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("ticktick: failed to decode response: %w", err)
	}
	return nil
}

// GetAllProjects lists all user-created projects. The inbox is not
// included; fetch it explicitly with GetProjectWithData(InboxProjectID).
func (c *Client) GetAllProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, "list_projects", http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProjectWithData retrieves a project together with its tasks.
// The ID "inbox" returns the synthetic inbox collection; the API does
// not return project metadata for it, so the client fills it in.
func (c *Client) GetProjectWithData(ctx context.Context, projectID string) (*ProjectData, error) {
	var data ProjectData
	if err := c.do(ctx, "get_project_data", http.MethodGet, "/project/"+projectID+"/data", nil, &data); err != nil {
		return nil, fmt.Errorf("failed to get project data for %s: %w", projectID, err)
	}

	if projectID == InboxProjectID && data.Project.ID == "" {
		data.Project = Project{ID: InboxProjectID, Name: "Inbox"}
	}
	return &data, nil
}

// GetTask retrieves a single task by project and task ID.
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*Task, error) {
	var task Task
	if err := c.do(ctx, "get_task", http.MethodGet, "/project/"+projectID+"/task/"+taskID, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}
	return &task, nil
}

// CreateTask creates a new task. Input must carry at least a title and
// a project ID.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, "create_task", http.MethodPost, "/task", input, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask updates an existing task. Only the fields set in input are
// changed; input.ProjectID must identify the task's current project.
func (c *Client) UpdateTask(ctx context.Context, taskID string, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, "update_task", http.MethodPost, "/task/"+taskID, input, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", taskID, err)
	}
	return &task, nil
}

// CompleteTask marks a task as completed.
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.do(ctx, "complete_task", http.MethodPost, "/project/"+projectID+"/task/"+taskID+"/complete", nil, nil); err != nil {
		return fmt.Errorf("failed to complete task %s: %w", taskID, err)
	}
	return nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	if err := c.do(ctx, "delete_task", http.MethodDelete, "/project/"+projectID+"/task/"+taskID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, "create_project", http.MethodPost, "/project", input, &project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// UpdateProject updates a project's metadata.
func (c *Client) UpdateProject(ctx context.Context, projectID string, input ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, "update_project", http.MethodPost, "/project/"+projectID, input, &project); err != nil {
		return nil, fmt.Errorf("failed to update project %s: %w", projectID, err)
	}
	return &project, nil
}

// DeleteProject deletes a project.
func (c *Client) DeleteProject(ctx context.Context, projectID string) error {
	if err := c.do(ctx, "delete_project", http.MethodDelete, "/project/"+projectID, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", projectID, err)
	}
	return nil
}
