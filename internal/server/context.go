package server

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/tickdo/tickdo/internal/instrumentation"
	"github.com/tickdo/tickdo/internal/query"
	"github.com/tickdo/tickdo/internal/ticktick"
)

// Config holds the configuration for creating a ServerContext. Empty
// fields fall back to the corresponding environment variables.
type Config struct {
	// AccessToken is the TickTick Open API access token.
	// Falls back to TICKTICK_ACCESS_TOKEN.
	AccessToken string

	// APIBaseURL overrides the TickTick API endpoint.
	// Falls back to TICKTICK_BASE_URL, then the production endpoint.
	APIBaseURL string

	// DisplayTimezone is the IANA zone used for calendar-day views when
	// a task carries no timezone of its own.
	// Falls back to TICKTICK_DISPLAY_TIMEZONE, then host-local time.
	DisplayTimezone string
}

// Client is the full TickTick API surface the tool handlers use.
// *ticktick.Client satisfies it; tests substitute fakes. Its read
// methods form a superset of query.Store, so a Client can be passed
// directly to query.NewExecutor.
type Client interface {
	GetAllProjects(ctx context.Context) ([]ticktick.Project, error)
	GetProjectWithData(ctx context.Context, projectID string) (*ticktick.ProjectData, error)
	GetTask(ctx context.Context, projectID, taskID string) (*ticktick.Task, error)

	CreateTask(ctx context.Context, input ticktick.TaskInput) (*ticktick.Task, error)
	UpdateTask(ctx context.Context, taskID string, input ticktick.TaskInput) (*ticktick.Task, error)
	CompleteTask(ctx context.Context, projectID, taskID string) error
	DeleteTask(ctx context.Context, projectID, taskID string) error

	CreateProject(ctx context.Context, input ticktick.ProjectInput) (*ticktick.Project, error)
	UpdateProject(ctx context.Context, projectID string, input ticktick.ProjectInput) (*ticktick.Project, error)
	DeleteProject(ctx context.Context, projectID string) error
}

// ServerContext holds the shared state for the MCP server, including
// the lazily-initialized TickTick client and the timezone resolver.
type ServerContext struct {
	ctx      context.Context
	config   Config
	resolver *query.Resolver

	mu       sync.Mutex
	client   Client
	metrics  *instrumentation.Metrics
	shutdown bool
}

// NewServerContext creates a new server context. The TickTick client is
// not created here; it is built on first use so that the server can
// start (and report health) before credentials are available.
func NewServerContext(ctx context.Context, config Config) (*ServerContext, error) {
	var resolver *query.Resolver
	if config.DisplayTimezone != "" {
		resolver = query.NewResolver(config.DisplayTimezone)
	} else {
		resolver = query.NewResolverFromEnv()
	}

	return &ServerContext{
		ctx:      ctx,
		config:   config,
		resolver: resolver,
		metrics:  &instrumentation.Metrics{}, // no-op until SetMetrics
	}, nil
}

// Context returns the server's base context, which is cancelled on
// shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Client returns the TickTick client, creating it on first use.
func (sc *ServerContext) Client() (Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil, fmt.Errorf("server context is shut down")
	}
	if sc.client != nil {
		return sc.client, nil
	}

	token := sc.config.AccessToken
	if token == "" {
		token = os.Getenv("TICKTICK_ACCESS_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("no TickTick access token configured: set --access-token or TICKTICK_ACCESS_TOKEN")
	}

	baseURL := sc.config.APIBaseURL
	if baseURL == "" {
		baseURL = os.Getenv("TICKTICK_BASE_URL")
	}

	opts := []ticktick.Option{ticktick.WithMetrics(sc.metrics)}
	if baseURL != "" {
		opts = append(opts, ticktick.WithBaseURL(baseURL))
	}

	sc.client = ticktick.NewClient(token, opts...)
	return sc.client, nil
}

// SetClient replaces the TickTick client. Used by tests.
func (sc *ServerContext) SetClient(client Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = client
}

// HasClient reports whether a client has already been created, without
// creating one.
func (sc *ServerContext) HasClient() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.client != nil
}

// Resolver returns the timezone resolver for calendar-day views.
func (sc *ServerContext) Resolver() *query.Resolver {
	return sc.resolver
}

// Classifier returns a due-date classifier evaluating against the
// current time.
func (sc *ServerContext) Classifier() *query.Classifier {
	return query.NewClassifier(sc.resolver, nil)
}

// SetMetrics sets the metrics recorder used by tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if metrics != nil {
		sc.metrics = metrics
	}
}

// Metrics returns the metrics recorder. Never nil; before SetMetrics it
// is a no-op recorder.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.metrics
}

// IsShutdown reports whether the context has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.shutdown
}

// Shutdown marks the server context as shut down and releases the
// client. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.client = nil
	return nil
}
