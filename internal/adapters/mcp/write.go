package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scrivano/internal/adapters/export"
	"scrivano/internal/application/commands"
	"scrivano/internal/application/session"
	"scrivano/internal/ports"
)

// RegisterWriteTools adds all document-changing tools to the MCP server.
// Exports land in exportDir unless the caller names another directory.
func RegisterWriteTools(s *server.MCPServer, m *session.Manager, exporter ports.Exporter, exportDir string) {
	s.AddTool(writeSceneTool(), writeSceneHandler(m))
	s.AddTool(addSceneTool(), addSceneHandler(m))
	s.AddTool(selectSceneTool(), selectSceneHandler(m))
	s.AddTool(restoreVersionTool(), restoreVersionHandler(m))
	s.AddTool(setGoalTool(), setGoalHandler(m))
	s.AddTool(setTitleTool(), setTitleHandler(m))
	s.AddTool(addCharacterTool(), addCharacterHandler(m))
	s.AddTool(setWorldNotesTool(), setWorldNotesHandler(m))
	s.AddTool(snapshotTool(), snapshotHandler(m))
	s.AddTool(addActTool(), addActHandler(m))
	s.AddTool(assignSceneTool(), assignSceneHandler(m))
	s.AddTool(reloadTool(), reloadHandler(m))
	s.AddTool(forceSaveTool(), forceSaveHandler(m))
	s.AddTool(exportTool(), exportHandler(m, exporter, exportDir))
}

// --- write_scene ---

func writeSceneTool() mcp.Tool {
	return mcp.NewTool("write_scene",
		mcp.WithDescription("Replace the full text of a scene. Returns the active scene's word count."),
		mcp.WithNumber("scene_id",
			mcp.Description("Scene ID (see list_scenes)"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("New scene text. An empty string clears the scene."),
			mcp.Required(),
		),
	)
}

func writeSceneHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sceneID := req.GetInt("scene_id", 0)
		text := req.GetString("text", "")

		result, err := commands.NewWriteSceneCommand(m, sceneID, text).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_scene ---

func addSceneTool() mcp.Tool {
	return mcp.NewTool("add_scene",
		mcp.WithDescription("Append a new empty scene and make it active."),
		mcp.WithString("name",
			mcp.Description("Scene name. Omit for \"Scene N\"."),
		),
	)
}

func addSceneHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		result, err := commands.NewAddSceneCommand(m, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- select_scene ---

func selectSceneTool() mcp.Tool {
	return mcp.NewTool("select_scene",
		mcp.WithDescription("Make a scene the active one. Autosave captures the active scene."),
		mcp.WithNumber("scene_id",
			mcp.Description("Scene ID"),
			mcp.Required(),
		),
	)
}

func selectSceneHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sceneID := req.GetInt("scene_id", 0)

		result, err := commands.NewSelectSceneCommand(m, sceneID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- restore_version ---

func restoreVersionTool() mcp.Tool {
	return mcp.NewTool("restore_version",
		mcp.WithDescription("Overwrite a scene with a version from history (see list_history). The current text is not kept unless it was captured earlier."),
		mcp.WithNumber("scene_id",
			mcp.Description("Scene ID to overwrite"),
			mcp.Required(),
		),
		mcp.WithNumber("index",
			mcp.Description("History index, 0 is the oldest version"),
			mcp.Required(),
		),
	)
}

func restoreVersionHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sceneID := req.GetInt("scene_id", 0)
		index := req.GetInt("index", -1)

		result, err := commands.NewRestoreCommand(m, sceneID, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_goal ---

func setGoalTool() mcp.Tool {
	return mcp.NewTool("set_goal",
		mcp.WithDescription("Set the daily word goal."),
		mcp.WithNumber("goal",
			mcp.Description("Words per day, greater than zero"),
			mcp.Required(),
		),
	)
}

func setGoalHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		goal := req.GetInt("goal", 0)

		result, err := commands.NewSetGoalCommand(m, goal).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_title ---

func setTitleTool() mcp.Tool {
	return mcp.NewTool("set_title",
		mcp.WithDescription("Set the novel title."),
		mcp.WithString("title",
			mcp.Description("New title"),
			mcp.Required(),
		),
	)
}

func setTitleHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")

		result, err := commands.NewSetTitleCommand(m, title).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_character ---

func addCharacterTool() mcp.Tool {
	return mcp.NewTool("add_character",
		mcp.WithDescription("Add a character to the character sheet."),
		mcp.WithString("name",
			mcp.Description("Character name"),
			mcp.Required(),
		),
		mcp.WithString("role",
			mcp.Description("Role or notes"),
		),
	)
}

func addCharacterHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		role := req.GetString("role", "")

		result, err := commands.NewAddCharacterCommand(m, name, role).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_world_notes ---

func setWorldNotesTool() mcp.Tool {
	return mcp.NewTool("set_world_notes",
		mcp.WithDescription("Replace the free-form world-building notes."),
		mcp.WithString("text",
			mcp.Description("New notes"),
			mcp.Required(),
		),
	)
}

func setWorldNotesHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := req.GetString("text", "")

		result, err := commands.NewSetWorldNotesCommand(m, text).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- snapshot ---

func snapshotTool() mcp.Tool {
	return mcp.NewTool("snapshot",
		mcp.WithDescription("Capture the active scene into history now and save, without waiting for autosave."),
	)
}

func snapshotHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewSnapshotCommand(m).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Write the document to a file as JSON, a Markdown manuscript, or a plain-text scene summary."),
		mcp.WithString("format",
			mcp.Description("json, markdown or text"),
			mcp.Enum("json", "markdown", "text"),
		),
		mcp.WithBoolean("include_history",
			mcp.Description("JSON only: keep the version history in the export"),
		),
		mcp.WithString("dir",
			mcp.Description("Destination directory. Omit for the configured export directory."),
		),
	)
}

func exportHandler(m *session.Manager, exporter ports.Exporter, exportDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, err := export.ParseFormat(req.GetString("format", "json"))
		if err != nil {
			return toolError(err)
		}

		opts := ports.ExportOptions{
			Format:         format,
			IncludeHistory: req.GetBool("include_history", false),
			Dir:            req.GetString("dir", exportDir),
		}

		result, err := commands.NewExportCommand(m, exporter, opts).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- add_act ---

func addActTool() mcp.Tool {
	return mcp.NewTool("add_act",
		mcp.WithDescription("Append an empty act to the plot outline."),
		mcp.WithString("title",
			mcp.Description("Act title, e.g. \"Epilogue\""),
			mcp.Required(),
		),
	)
}

func addActHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")

		result, err := commands.NewAddActCommand(m, title).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- assign_scene ---

func assignSceneTool() mcp.Tool {
	return mcp.NewTool("assign_scene",
		mcp.WithDescription("Place a scene at the end of an act (see plot), moving it out of any other act. Pass act -1 to take it out of the outline."),
		mcp.WithNumber("act",
			mcp.Description("Act index, or -1 to unassign"),
			mcp.Required(),
		),
		mcp.WithNumber("scene_id",
			mcp.Description("Scene ID"),
			mcp.Required(),
		),
	)
}

func assignSceneHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		act := req.GetInt("act", -1)
		sceneID := req.GetInt("scene_id", 0)

		result, err := commands.NewAssignSceneCommand(m, act, sceneID).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- reload_document ---

func reloadTool() mcp.Tool {
	return mcp.NewTool("reload_document",
		mcp.WithDescription("Discard unsaved changes and read the document from storage again. Use after a failed read held saves back."),
	)
}

func reloadHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := m.Load()
		if res.Warning != nil {
			return toolError(res.Warning)
		}
		return mcp.NewToolResultText("Document reloaded from storage"), nil
	}
}

// --- force_save ---

func forceSaveTool() mcp.Tool {
	return mcp.NewTool("force_save",
		mcp.WithDescription("Save the current document even if the stored one was never read, replacing it."),
	)
}

func forceSaveHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := m.ForceSave(); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText("Document saved"), nil
	}
}
