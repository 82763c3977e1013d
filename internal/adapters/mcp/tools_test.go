package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"scrivano/internal/adapters/memory"
	"scrivano/internal/application/session"
)

func newLoadedManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(memory.NewStore())
	require.NoError(t, m.Load().Warning)
	return m
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := mcp.AsTextContent(res.Content[0])
	require.True(t, ok)
	return text.Text
}

func TestWriteAndReadScene(t *testing.T) {
	m := newLoadedManager(t)

	res := call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(1), "text": "Elena plays."})
	require.False(t, res.IsError, resultText(t, res))

	res = call(t, readSceneHandler(m), nil)
	require.Equal(t, "Elena plays.", resultText(t, res))

	res = call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(9), "text": "x"})
	require.True(t, res.IsError)
}

func TestSceneTools(t *testing.T) {
	m := newLoadedManager(t)

	res := call(t, addSceneHandler(m), map[string]any{"name": "The Duel"})
	require.False(t, res.IsError)

	res = call(t, listScenesHandler(m), nil)
	lines := strings.Split(strings.TrimSpace(resultText(t, res)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], "* 2  The Duel"))

	res = call(t, selectSceneHandler(m), map[string]any{"scene_id": float64(1)})
	require.False(t, res.IsError)

	res = call(t, readSceneHandler(m), map[string]any{"scene_id": float64(2)})
	require.Equal(t, "(Empty)", resultText(t, res))
}

func TestHistoryTools(t *testing.T) {
	m := newLoadedManager(t)

	call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(1), "text": "first"})
	res := call(t, snapshotHandler(m), nil)
	require.False(t, res.IsError)
	call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(1), "text": "second"})

	res = call(t, listHistoryHandler(m), nil)
	require.Contains(t, resultText(t, res), "first")

	res = call(t, restoreVersionHandler(m), map[string]any{"scene_id": float64(1), "index": float64(0)})
	require.False(t, res.IsError, resultText(t, res))

	doc, err := m.Document()
	require.NoError(t, err)
	require.Equal(t, "first", doc.SceneText(1))

	res = call(t, restoreVersionHandler(m), map[string]any{"scene_id": float64(1), "index": float64(4)})
	require.True(t, res.IsError)

	res = call(t, restoreVersionHandler(m), map[string]any{"scene_id": float64(1)})
	require.True(t, res.IsError)
}

func TestSearchTool(t *testing.T) {
	m := newLoadedManager(t)
	call(t, addCharacterHandler(m), map[string]any{"name": "Elena", "role": "Violinist"})

	res := call(t, searchHandler(m), map[string]any{"query": "violin"})
	require.Contains(t, resultText(t, res), "character  Elena  Violinist")

	res = call(t, searchHandler(m), map[string]any{"query": "dragon"})
	require.Equal(t, "No results found.", resultText(t, res))

	res = call(t, searchHandler(m), nil)
	require.True(t, res.IsError)
}

func TestStatsTool(t *testing.T) {
	m := newLoadedManager(t)
	call(t, setGoalHandler(m), map[string]any{"goal": float64(4)})
	call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(1), "text": "one two"})

	res := call(t, statsHandler(m), nil)
	text := resultText(t, res)
	require.Contains(t, text, "Daily goal:    2/4 (50%)")
	require.Contains(t, text, "Last saved:")

	res = call(t, setGoalHandler(m), map[string]any{"goal": float64(0)})
	require.True(t, res.IsError)
}

func TestGetDocumentTool(t *testing.T) {
	m := newLoadedManager(t)
	call(t, setTitleHandler(m), map[string]any{"title": "The Resonance"})

	res := call(t, getDocumentHandler(m), nil)
	require.Contains(t, resultText(t, res), `"title":"The Resonance"`)

	res = call(t, previewHandler(m), nil)
	require.True(t, strings.HasPrefix(resultText(t, res), "The Resonance\n\nScene 1\n\n(Empty)"))
}

func TestPlotTools(t *testing.T) {
	m := newLoadedManager(t)
	call(t, addSceneHandler(m), map[string]any{"name": "The Calling"})

	res := call(t, assignSceneHandler(m), map[string]any{"act": float64(0), "scene_id": float64(2)})
	require.False(t, res.IsError, resultText(t, res))
	res = call(t, addActHandler(m), map[string]any{"title": "Epilogue"})
	require.Equal(t, "Added act 3: Epilogue", resultText(t, res))

	res = call(t, plotHandler(m), nil)
	out := resultText(t, res)
	require.Contains(t, out, "Act 0: Setup\n  2  The Calling\n")
	require.Contains(t, out, "Act 1: Confrontation\n  (no scenes)\n")
	require.Contains(t, out, "Act 3: Epilogue")
	require.Contains(t, out, "Unassigned:\n  1  Scene 1\n")

	res = call(t, assignSceneHandler(m), map[string]any{"act": float64(8), "scene_id": float64(1)})
	require.True(t, res.IsError)
	res = call(t, addActHandler(m), map[string]any{"title": ""})
	require.True(t, res.IsError)
}

type lockedStore struct {
	*memory.Store
	err error
}

func (s *lockedStore) Get(key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	return s.Store.Get(key)
}

func TestReloadAndForceSaveTools(t *testing.T) {
	store := &lockedStore{Store: memory.NewStore()}
	require.NoError(t, store.Set(session.StorageKey, `{"sceneText":{"1":"kept"}}`))
	store.err = errors.New("database is locked")

	m := session.NewManager(store)
	m.Load()

	res := call(t, writeSceneHandler(m), map[string]any{"scene_id": float64(1), "text": "x"})
	require.True(t, res.IsError)

	res = call(t, statsHandler(m), nil)
	require.Contains(t, resultText(t, res), "Saving:        held")

	res = call(t, reloadHandler(m), nil)
	require.True(t, res.IsError)

	store.err = nil
	res = call(t, reloadHandler(m), nil)
	require.False(t, res.IsError)
	res = call(t, readSceneHandler(m), nil)
	require.Equal(t, "kept", resultText(t, res))

	store.err = errors.New("database is locked")
	m.Load()
	store.err = nil
	res = call(t, forceSaveHandler(m), nil)
	require.False(t, res.IsError)
	blob, _, _ := store.Get(session.StorageKey)
	require.NotContains(t, blob, "kept")
}

func TestRegisterTools(t *testing.T) {
	s := server.NewMCPServer("scrivano-mcp-test", "0.0.0", server.WithToolCapabilities(true))
	m := newLoadedManager(t)

	require.NotPanics(t, func() {
		RegisterReadTools(s, m)
		RegisterWriteTools(s, m, nil, t.TempDir())
	})
}
