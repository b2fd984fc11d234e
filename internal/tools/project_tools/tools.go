package project_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tickdo/tickdo/internal/format"
	"github.com/tickdo/tickdo/internal/server"
	"github.com/tickdo/tickdo/internal/ticktick"
	"github.com/tickdo/tickdo/internal/tools/common"
)

// RegisterProjectTools registers the project tools with the MCP server.
// When readOnly is true, update and delete are not registered.
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerReadTools(s, sc)
	registerCreateTool(s, sc)

	if !readOnly {
		registerWriteTools(s, sc)
	}

	return nil
}

func registerReadTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	getAllProjectsTool := mcp.NewTool("get_all_projects",
		mcp.WithDescription("List all projects. The inbox is not included; use project ID 'inbox' to access it."),
	)

	s.AddTool(getAllProjectsTool, common.InstrumentedToolHandler("get_all_projects", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			projects, err := client.GetAllProjects(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
			}

			return mcp.NewToolResultText(format.Projects(projects, "projects")), nil
		}))

	getProjectInfoTool := mcp.NewTool("get_project_info",
		mcp.WithDescription("Get a project's metadata together with all its tasks. Use 'inbox' for the inbox."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID, or 'inbox'"),
		),
	)

	s.AddTool(getProjectInfoTool, common.InstrumentedToolHandler("get_project_info", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, err := common.RequiredString(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			data, err := client.GetProjectWithData(ctx, projectID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get project %s: %v", projectID, err)), nil
			}

			text := "Project:\n" + format.Project(data.Project) + "\n" +
				format.Tasks(sc.Resolver(), data.Tasks, "tasks")
			return mcp.NewToolResultText(text), nil
		}))
}

func registerCreateTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	createProjectTool := mcp.NewTool("create_project",
		mcp.WithDescription("Create a new project"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("The project name"),
		),
		mcp.WithString("color",
			mcp.Description("Project color as a hex string (e.g. '#F18181')"),
		),
		mcp.WithString("view_mode",
			mcp.Description("View mode: list, kanban, or timeline (default: list)"),
		),
		mcp.WithString("kind",
			mcp.Description("Project kind: TASK or NOTE (default: TASK)"),
		),
	)

	s.AddTool(createProjectTool, common.InstrumentedToolHandler("create_project", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			input, err := projectInputFromArgs(args, true)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := client.CreateProject(ctx, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to create project: %v", err)), nil
			}

			return mcp.NewToolResultText("Project created:\n" + format.Project(*project)), nil
		}))
}

func registerWriteTools(s *mcpserver.MCPServer, sc *server.ServerContext) {
	updateProjectTool := mcp.NewTool("update_project",
		mcp.WithDescription("Update a project's metadata. Only the provided fields are changed."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID to update"),
		),
		mcp.WithString("name",
			mcp.Description("New project name"),
		),
		mcp.WithString("color",
			mcp.Description("New project color as a hex string"),
		),
		mcp.WithString("view_mode",
			mcp.Description("New view mode: list, kanban, or timeline"),
		),
		mcp.WithString("kind",
			mcp.Description("New project kind: TASK or NOTE"),
		),
	)

	s.AddTool(updateProjectTool, common.InstrumentedToolHandler("update_project", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, err := common.RequiredString(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			input, err := projectInputFromArgs(args, false)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if input == (ticktick.ProjectInput{}) {
				return mcp.NewToolResultError("at least one of name, color, view_mode, or kind must be provided"), nil
			}

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			project, err := client.UpdateProject(ctx, projectID, input)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to update project %s: %v", projectID, err)), nil
			}

			return mcp.NewToolResultText("Project updated:\n" + format.Project(*project)), nil
		}))

	deleteProjectTool := mcp.NewTool("delete_project",
		mcp.WithDescription("Delete a project and all its tasks. This cannot be undone."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The project ID to delete"),
		),
	)

	s.AddTool(deleteProjectTool, common.InstrumentedToolHandler("delete_project", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})

			projectID, err := common.RequiredString(args, "project_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			client, err := sc.Client()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			if err := client.DeleteProject(ctx, projectID); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to delete project %s: %v", projectID, err)), nil
			}

			return mcp.NewToolResultText(fmt.Sprintf("Project %s deleted.", projectID)), nil
		}))
}

// projectInputFromArgs builds a ProjectInput from tool arguments. When
// requireName is true a missing name is an error.
func projectInputFromArgs(args map[string]interface{}, requireName bool) (ticktick.ProjectInput, error) {
	var input ticktick.ProjectInput
	var err error

	if requireName {
		input.Name, err = common.RequiredString(args, "name")
	} else {
		input.Name, err = common.OptionalString(args, "name")
	}
	if err != nil {
		return input, err
	}

	if input.Color, err = common.OptionalString(args, "color"); err != nil {
		return input, err
	}
	if input.ViewMode, err = common.OptionalString(args, "view_mode"); err != nil {
		return input, err
	}
	if input.Kind, err = common.OptionalString(args, "kind"); err != nil {
		return input, err
	}

	return input, nil
}
