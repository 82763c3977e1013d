package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"scrivano/internal/application/commands"
	"scrivano/internal/application/session"
	"scrivano/internal/domain"
)

// RegisterReadTools adds all read-only document tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, m *session.Manager) {
	s.AddTool(getDocumentTool(), getDocumentHandler(m))
	s.AddTool(listScenesTool(), listScenesHandler(m))
	s.AddTool(readSceneTool(), readSceneHandler(m))
	s.AddTool(listHistoryTool(), listHistoryHandler(m))
	s.AddTool(statsTool(), statsHandler(m))
	s.AddTool(previewTool(), previewHandler(m))
	s.AddTool(searchTool(), searchHandler(m))
	s.AddTool(plotTool(), plotHandler(m))
}

// --- get_document ---

func getDocumentTool() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Return the whole document as the JSON blob it is stored as: title, scenes, scene text, history, goal, characters and world notes."),
	)
}

func getDocumentHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := m.Document()
		if err != nil {
			return toolError(err)
		}
		blob, err := session.Encode(doc)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(blob), nil
	}
}

// --- list_scenes ---

func listScenesTool() mcp.Tool {
	return mcp.NewTool("list_scenes",
		mcp.WithDescription("List scenes with their IDs and word counts. The active scene is marked with *."),
	)
}

func listScenesHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := m.Document()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(doc.Scenes, func(s domain.Scene) string {
			marker := " "
			if s.ID == doc.CurrentScene {
				marker = "*"
			}
			return fmt.Sprintf("%s %d  %s  (%d words)", marker, s.ID, s.Name, domain.WordCount(doc.SceneText(s.ID)))
		})
	}
}

// --- read_scene ---

func readSceneTool() mcp.Tool {
	return mcp.NewTool("read_scene",
		mcp.WithDescription("Read the full text of a scene."),
		mcp.WithNumber("scene_id",
			mcp.Description("Scene ID. Omit to read the active scene."),
		),
	)
}

func readSceneHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := m.Document()
		if err != nil {
			return toolError(err)
		}

		id := req.GetInt("scene_id", doc.CurrentScene)
		if !doc.HasScene(id) {
			return toolError(fmt.Errorf("scene %d not found", id))
		}

		text := doc.SceneText(id)
		if strings.TrimSpace(text) == "" {
			return mcp.NewToolResultText(domain.EmptyScenePlaceholder), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- list_history ---

func listHistoryTool() mcp.Tool {
	return mcp.NewTool("list_history",
		mcp.WithDescription("List retained versions, oldest first. Pass the index to restore_version."),
	)
}

func listHistoryHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		history, err := m.History()
		if err != nil {
			return toolError(err)
		}
		if len(history) == 0 {
			return mcp.NewToolResultText("No versions yet."), nil
		}

		var sb strings.Builder
		for i, e := range history {
			fmt.Fprintf(&sb, "%d  %s  scene %d  %d words  %s\n",
				i, e.Timestamp.Format("2006-01-02 15:04:05"), e.SceneID, domain.WordCount(e.Text), domain.Excerpt(e.Text, 50))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Word counts, daily goal progress and document totals."),
	)
}

func statsHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := m.Stats()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(FormatStats(stats)), nil
	}
}

// FormatStats renders stats as aligned lines
func FormatStats(s session.Stats) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Active scene:  %d %s\n", s.SceneID, s.SceneName)
	fmt.Fprintf(&sb, "Scene words:   %d\n", s.SceneWords)
	fmt.Fprintf(&sb, "Daily goal:    %d/%d (%d%%)\n", s.Progress.Words, s.Progress.Goal, s.Progress.Percent)
	fmt.Fprintf(&sb, "Total words:   %d\n", s.TotalWords)
	fmt.Fprintf(&sb, "Scenes:        %d\n", s.Scenes)
	fmt.Fprintf(&sb, "Characters:    %d\n", s.Characters)
	fmt.Fprintf(&sb, "Versions:      %d/%d\n", s.Versions, domain.HistoryCapacity)
	if s.LastSaved.IsZero() {
		sb.WriteString("Last saved:    never\n")
	} else {
		fmt.Fprintf(&sb, "Last saved:    %s\n", s.LastSaved.Format("2006-01-02 15:04:05"))
	}
	if s.Blocked {
		sb.WriteString("Saving:        held, the stored document could not be read\n")
	}
	return sb.String()
}

// --- preview ---

func previewTool() mcp.Tool {
	return mcp.NewTool("preview",
		mcp.WithDescription("Assemble the manuscript: title, then every scene's name and text."),
	)
}

func previewHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := m.Document()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(domain.Manuscript(doc)), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search scene names, scene text, characters and world notes by keyword."),
		mcp.WithString("query",
			mcp.Description("Search query"),
			mcp.Required(),
		),
	)
}

func searchHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(m, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Kind, r.Name, r.MatchedText)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- plot ---

func plotTool() mcp.Tool {
	return mcp.NewTool("plot",
		mcp.WithDescription("Show the plot outline: each act by index with its scenes in order, then the scenes not placed in any act."),
	)
}

func plotHandler(m *session.Manager) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := m.Document()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(FormatPlot(doc)), nil
	}
}

// FormatPlot renders the plot outline, one act per block
func FormatPlot(doc *domain.Document) string {
	acts, unassigned := doc.PlotOutline()

	var sb strings.Builder
	for i, act := range acts {
		fmt.Fprintf(&sb, "Act %d: %s\n", i, act.Title)
		if len(act.Scenes) == 0 {
			sb.WriteString("  (no scenes)\n")
		}
		for _, s := range act.Scenes {
			fmt.Fprintf(&sb, "  %d  %s\n", s.ID, s.Name)
		}
	}
	if len(unassigned) > 0 {
		sb.WriteString("Unassigned:\n")
		for _, s := range unassigned {
			fmt.Fprintf(&sb, "  %d  %s\n", s.ID, s.Name)
		}
	}
	return sb.String()
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
