package task_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tickdo/tickdo/internal/format"
	"github.com/tickdo/tickdo/internal/server"
	"github.com/tickdo/tickdo/internal/ticktick"
	"github.com/tickdo/tickdo/internal/tools/batch"
	"github.com/tickdo/tickdo/internal/tools/common"
)

// RegisterTaskTools registers the task tools with the MCP server. When
// readOnly is true, update, complete, and delete are not registered.
func RegisterTaskTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerCreateTool(s, sc)

	if !readOnly {
		registerWriteTools(s, sc)
	}

	return nil
}

func registerCreateTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createTasksTool := mcp.NewTool("create_tasks",
		mcp.WithDescription(`Create one or more tasks. Each task object requires a title and a
project_id ('inbox' targets the inbox) and may carry content, desc,
start_date, due_date (ISO 8601, e.g. 2024-01-20T23:59:59+0000),
time_zone (IANA name), is_all_day, and priority (0, 1, 3, or 5).
Failed items do not stop the batch.`),
		mcp.WithArray("tasks",
			mcp.Required(),
			mcp.Description("Array of task objects to create"),
		),
	)

	s.AddTool(createTasksTool, common.InstrumentedToolHandler("create_tasks", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			items, ok := args["tasks"].([]interface{})
			if !ok || len(items) == 0 {
				return mcp.NewToolResultError("tasks must be a non-empty array of task objects"), nil
			}

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			results := make([]batch.Result, 0, len(items))
			for i, item := range items {
				obj, ok := item.(map[string]interface{})
				if !ok {
					results = append(results, batch.Result{
						ID:     fmt.Sprintf("tasks[%d]", i),
						Status: "error",
						Error:  "must be an object",
					})
					continue
				}

				input, err := taskInputFromArgs(obj, true)
				if err != nil {
					results = append(results, batch.Result{
						ID:     fmt.Sprintf("tasks[%d]", i),
						Status: "error",
						Error:  err.Error(),
					})
					continue
				}

				task, err := client.CreateTask(ctx, input)
				if err != nil {
					results = append(results, batch.Result{
						ID:     input.Title,
						Status: "error",
						Error:  err.Error(),
					})
					continue
				}

				results = append(results, batch.Result{
					ID:     task.ID,
					Status: "success",
					Result: fmt.Sprintf("created %q in project %s", task.Title, task.ProjectID),
				})
			}

			return mcp.NewToolResultText(batch.FormatResults(results)), nil
		}))
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	updateTaskTool := mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task. Only the provided fields are changed."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID to update"),
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project the task currently belongs to"),
		),
		mcp.WithString("title",
			mcp.Description("New task title"),
		),
		mcp.WithString("content",
			mcp.Description("New task content"),
		),
		mcp.WithString("desc",
			mcp.Description("New task description"),
		),
		mcp.WithString("start_date",
			mcp.Description("New start date (ISO 8601)"),
		),
		mcp.WithString("due_date",
			mcp.Description("New due date (ISO 8601)"),
		),
		mcp.WithString("time_zone",
			mcp.Description("New task timezone (IANA name, e.g. Asia/Shanghai)"),
		),
		mcp.WithBoolean("is_all_day",
			mcp.Description("Whether the task is an all-day task"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New priority: 0 (None), 1 (Low), 3 (Medium), or 5 (High)"),
		),
	)

	s.AddTool(updateTaskTool, common.InstrumentedToolHandler("update_task", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			taskID, err := common.RequiredString(args, "task_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input, err := taskInputFromArgs(args, false)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			input.ID = taskID

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			task, err := client.UpdateTask(ctx, taskID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update task %s: %v", taskID, err)), nil
			}

			return mcp.NewToolResultText("Task updated:\n" + format.Task(sc.Resolver(), *task)), nil
		}))

	completeTasksTool := mcp.NewTool("complete_tasks",
		mcp.WithDescription("Mark one or more tasks in a project as completed. Failed items do not stop the batch."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project the tasks belong to"),
		),
		mcp.WithString("task_ids",
			mcp.Required(),
			mcp.Description("A task ID or an array of task IDs"),
		),
	)

	s.AddTool(completeTasksTool, common.InstrumentedToolHandler("complete_tasks", sc,
		batchTaskHandler(sc, "completed",
			func(ctx context.Context, client server.Client, projectID, taskID string) error {
				return client.CompleteTask(ctx, projectID, taskID)
			})))

	deleteTasksTool := mcp.NewTool("delete_tasks",
		mcp.WithDescription("Delete one or more tasks in a project. This cannot be undone. Failed items do not stop the batch."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project the tasks belong to"),
		),
		mcp.WithString("task_ids",
			mcp.Required(),
			mcp.Description("A task ID or an array of task IDs"),
		),
	)

	s.AddTool(deleteTasksTool, common.InstrumentedToolHandler("delete_tasks", sc,
		batchTaskHandler(sc, "deleted",
			func(ctx context.Context, client server.Client, projectID, taskID string) error {
				return client.DeleteTask(ctx, projectID, taskID)
			})))
}

// batchTaskHandler builds a handler that applies op to every task ID in
// the task_ids argument within one project.
func batchTaskHandler(sc *server.ServerContext, verb string,
	op func(ctx context.Context, client server.Client, projectID, taskID string) error,
) common.ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, _ := request.Params.Arguments.(map[string]interface{})

		projectID, err := common.RequiredString(args, "project_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		taskIDs, err := batch.ParseStringOrArray(args["task_ids"], "task_ids")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		client, err := sc.Client()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results := batch.Process(ctx, taskIDs, func(ctx context.Context, taskID string) (string, error) {
			if err := op(ctx, client, projectID, taskID); err != nil {
				return "", err
			}
			return fmt.Sprintf("task %s %s", taskID, verb), nil
		})

		return mcp.NewToolResultText(batch.FormatResults(results)), nil
	}
}

// taskInputFromArgs builds a TaskInput from tool or batch-item
// arguments. When forCreate is true, title and project_id are required;
// otherwise all fields are optional.
func taskInputFromArgs(args map[string]interface{}, forCreate bool) (ticktick.TaskInput, error) {
	var input ticktick.TaskInput
	var err error

	if forCreate {
		if input.Title, err = common.RequiredString(args, "title"); err != nil {
			return input, err
		}
		if input.ProjectID, err = common.RequiredString(args, "project_id"); err != nil {
			return input, err
		}
	} else {
		if input.Title, err = common.OptionalString(args, "title"); err != nil {
			return input, err
		}
		if input.ProjectID, err = common.RequiredString(args, "project_id"); err != nil {
			return input, err
		}
	}

	if input.Content, err = common.OptionalString(args, "content"); err != nil {
		return input, err
	}
	if input.Desc, err = common.OptionalString(args, "desc"); err != nil {
		return input, err
	}
	if input.StartDate, err = common.OptionalString(args, "start_date"); err != nil {
		return input, err
	}
	if input.DueDate, err = common.OptionalString(args, "due_date"); err != nil {
		return input, err
	}
	if input.TimeZone, err = common.OptionalString(args, "time_zone"); err != nil {
		return input, err
	}
	if input.IsAllDay, err = common.OptionalBool(args, "is_all_day"); err != nil {
		return input, err
	}

	if input.Priority, err = common.OptionalInt(args, "priority"); err != nil {
		return input, err
	}
	if input.Priority != nil && !ticktick.ValidPriority(*input.Priority) {
		return input, fmt.Errorf("priority must be 0 (None), 1 (Low), 3 (Medium), or 5 (High), got %d", *input.Priority)
	}

	return input, nil
}
