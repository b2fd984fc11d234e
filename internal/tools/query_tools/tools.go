package query_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tickdo/tickdo/internal/format"
	"github.com/tickdo/tickdo/internal/instrumentation"
	"github.com/tickdo/tickdo/internal/query"
	"github.com/tickdo/tickdo/internal/server"
	"github.com/tickdo/tickdo/internal/tools/common"
)

// runQuery executes a query spec against the configured store and
// renders the report. User-facing faults (bad arguments, missing
// token, API errors) come back as tool error results, not Go errors.
func runQuery(ctx context.Context, sc *server.ServerContext, spec query.Spec) (*mcp.CallToolResult, error) {
	client, err := sc.Client()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	executor := query.NewExecutor(client, sc.Classifier())
	report, err := executor.Execute(ctx, spec)
	if err != nil {
		sc.Metrics().RecordQueryExecution(ctx, string(spec.Scope()), instrumentation.StatusError)
		var verr *query.ValidationError
		if errors.As(err, &verr) {
			return mcp.NewToolResultError(verr.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
	}

	sc.Metrics().RecordQueryExecution(ctx, string(report.Scope), instrumentation.StatusSuccess)
	for _, col := range report.Collections {
		if col.FetchErr != nil {
			sc.Metrics().RecordCollectionFailure(ctx, col.Project.ID)
		}
	}

	return mcp.NewToolResultText(format.Report(sc.Resolver(), report)), nil
}

// specFromArgs builds a query spec from the unified query_tasks
// arguments.
func specFromArgs(args map[string]interface{}) (query.Spec, error) {
	var spec query.Spec
	var err error

	if spec.TaskID, err = common.OptionalString(args, "task_id"); err != nil {
		return spec, err
	}
	if spec.ProjectID, err = common.OptionalString(args, "project_id"); err != nil {
		return spec, err
	}

	dateFilter, err := common.OptionalString(args, "date_filter")
	if err != nil {
		return spec, err
	}
	spec.DateFilter = query.DateFilter(dateFilter)

	if spec.CustomDays, err = common.OptionalInt(args, "custom_days"); err != nil {
		return spec, err
	}
	if spec.Priority, err = common.OptionalInt(args, "priority"); err != nil {
		return spec, err
	}
	if spec.SearchTerm, err = common.OptionalString(args, "search_term"); err != nil {
		return spec, err
	}

	return spec, nil
}

// RegisterQueryTools registers the query tools with the MCP server.
func RegisterQueryTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	registerQueryTasks(s, sc)
	registerConvenienceTools(s, sc)
	return nil
}

func registerQueryTasks(s *mcpserver.MCPServer, sc *server.ServerContext) {
	queryTasksTool := mcp.NewTool("query_tasks",
		mcp.WithDescription(`Query tasks with combinable filters. All filters are optional and
combine with AND. Without project_id, scans all open projects plus the inbox.
With project_id and task_id, checks that single task against the filters.`),
		mcp.WithString("task_id",
			mcp.Description("Restrict to a single task ID. With project_id this checks that one task directly; alone it scans all collections and filters by ID."),
		),
		mcp.WithString("project_id",
			mcp.Description("Restrict the scan to one project. Use 'inbox' for the inbox."),
		),
		mcp.WithString("date_filter",
			mcp.Description("Due-date filter: today, tomorrow, overdue, next_7_days, custom, engaged, or next"),
		),
		mcp.WithNumber("custom_days",
			mcp.Description("Day offset for date_filter 'custom' (0 = today, 1 = tomorrow, ...)"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Priority level: 0 (None), 1 (Low), 3 (Medium), or 5 (High)"),
		),
		mcp.WithString("search_term",
			mcp.Description("Case-insensitive term matched against title, content, and subtask titles"),
		),
	)

	s.AddTool(queryTasksTool, common.InstrumentedToolHandler("query_tasks", sc, queryTasksHandler(sc)))
}

// queryTasksHandler handles the unified query_tasks tool. A task_id
// without a project_id falls through to the global scan, which filters
// by ID.
func queryTasksHandler(sc *server.ServerContext) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		spec, err := specFromArgs(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return runQuery(ctx, sc, spec)
	}
}

// convenienceTool is a fixed-filter view over the query executor.
type convenienceTool struct {
	name        string
	description string
	spec        func(args map[string]interface{}) (query.Spec, error)
	extraParams []mcp.ToolOption
}

func registerConvenienceTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	projectIDParam := mcp.WithString("project_id",
		mcp.Description("Restrict the scan to one project. Use 'inbox' for the inbox."),
	)

	// fixedDate builds a spec function for a preset date filter plus the
	// optional project_id scope.
	fixedDate := func(filter query.DateFilter) func(args map[string]interface{}) (query.Spec, error) {
		return func(args map[string]interface{}) (query.Spec, error) {
			projectID, err := common.OptionalString(args, "project_id")
			if err != nil {
				return query.Spec{}, err
			}
			return query.Spec{ProjectID: projectID, DateFilter: filter}, nil
		}
	}

	tools := []convenienceTool{
		{
			name:        "get_all_tasks",
			description: "Get all tasks, either across all projects and the inbox or within one project",
			spec:        fixedDate(query.DateFilterNone),
		},
		{
			name:        "get_tasks_due_today",
			description: "Get tasks due today (calendar day in the task's timezone, falling back to the configured display timezone)",
			spec:        fixedDate(query.DateFilterToday),
		},
		{
			name:        "get_tasks_due_tomorrow",
			description: "Get tasks due tomorrow",
			spec:        fixedDate(query.DateFilterTomorrow),
		},
		{
			name:        "get_overdue_tasks",
			description: "Get tasks whose due time has already passed",
			spec:        fixedDate(query.DateFilterOverdue),
		},
		{
			name:        "get_tasks_due_this_week",
			description: "Get tasks due within the next 7 days",
			spec:        fixedDate(query.DateFilterNext7),
		},
		{
			name:        "get_engaged_tasks",
			description: "Get tasks needing attention now: high priority, due today, or overdue",
			spec:        fixedDate(query.DateFilterEngaged),
		},
		{
			name:        "get_next_tasks",
			description: "Get tasks queued up next: medium priority or due tomorrow",
			spec:        fixedDate(query.DateFilterNext),
		},
		{
			name:        "get_tasks_due_in_days",
			description: "Get tasks due exactly N days from today (0 = today, 1 = tomorrow, ...)",
			extraParams: []mcp.ToolOption{
				mcp.WithNumber("days",
					mcp.Required(),
					mcp.Description("Number of days from today (non-negative)"),
				),
			},
			spec: func(args map[string]interface{}) (query.Spec, error) {
				days, err := common.OptionalInt(args, "days")
				if err != nil {
					return query.Spec{}, err
				}
				if days == nil {
					return query.Spec{}, fmt.Errorf("days is required")
				}
				projectID, err := common.OptionalString(args, "project_id")
				if err != nil {
					return query.Spec{}, err
				}
				return query.Spec{
					ProjectID:  projectID,
					DateFilter: query.DateFilterCustom,
					CustomDays: days,
				}, nil
			},
		},
		{
			name:        "get_tasks_by_priority",
			description: "Get tasks with the given priority level",
			extraParams: []mcp.ToolOption{
				mcp.WithNumber("priority",
					mcp.Required(),
					mcp.Description("Priority level: 0 (None), 1 (Low), 3 (Medium), or 5 (High)"),
				),
			},
			spec: func(args map[string]interface{}) (query.Spec, error) {
				priority, err := common.OptionalInt(args, "priority")
				if err != nil {
					return query.Spec{}, err
				}
				if priority == nil {
					return query.Spec{}, fmt.Errorf("priority is required")
				}
				projectID, err := common.OptionalString(args, "project_id")
				if err != nil {
					return query.Spec{}, err
				}
				return query.Spec{ProjectID: projectID, Priority: priority}, nil
			},
		},
		{
			name:        "search_tasks",
			description: "Search tasks by a case-insensitive term in their title, content, or subtask titles",
			extraParams: []mcp.ToolOption{
				mcp.WithString("query",
					mcp.Required(),
					mcp.Description("The search term"),
				),
			},
			spec: func(args map[string]interface{}) (query.Spec, error) {
				term, err := common.RequiredString(args, "query")
				if err != nil {
					return query.Spec{}, err
				}
				projectID, err := common.OptionalString(args, "project_id")
				if err != nil {
					return query.Spec{}, err
				}
				return query.Spec{ProjectID: projectID, SearchTerm: term}, nil
			},
		},
	}

	for _, ct := range tools {
		opts := []mcp.ToolOption{
			mcp.WithDescription(ct.description),
			projectIDParam,
		}
		opts = append(opts, ct.extraParams...)

		tool := mcp.NewTool(ct.name, opts...)
		buildSpec := ct.spec
		s.AddTool(tool, common.InstrumentedToolHandler(ct.name, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args, _ := request.Params.Arguments.(map[string]interface{})

				spec, err := buildSpec(args)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return runQuery(ctx, sc, spec)
			}))
	}
}
