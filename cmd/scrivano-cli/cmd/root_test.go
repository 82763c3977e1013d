package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"scrivano/internal/adapters/filesystem"
	"scrivano/internal/application/session"
)

func runCLI(t *testing.T, dir string, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append([]string{"--data-dir", dir, "--backend", "file"}, args...))
	return rootCmd.Execute()
}

func loadDir(t *testing.T, dir string) *session.Manager {
	t.Helper()
	m := session.NewManager(filesystem.NewStore(dir))
	require.Nil(t, m.Load().Warning)
	return m
}

func TestCLI_WriteSnapshotRestore(t *testing.T) {
	t.Setenv("SCRIVANO_LOG_LEVEL", "error")
	dir := t.TempDir()

	require.NoError(t, runCLI(t, dir, "write", "1", "first draft"))
	require.NoError(t, runCLI(t, dir, "snapshot"))
	require.NoError(t, runCLI(t, dir, "write", "1", "second draft"))
	require.NoError(t, runCLI(t, dir, "restore", "1", "0"))

	doc, err := loadDir(t, dir).Document()
	require.NoError(t, err)
	require.Equal(t, "first draft", doc.SceneText(1))
	require.Equal(t, 1, doc.History.Len())
}

func TestCLI_ScenesAndCharacters(t *testing.T) {
	t.Setenv("SCRIVANO_LOG_LEVEL", "error")
	dir := t.TempDir()

	require.NoError(t, runCLI(t, dir, "scenes", "add", "Storm"))
	require.NoError(t, runCLI(t, dir, "scenes", "rename", "1", "Opening"))
	require.NoError(t, runCLI(t, dir, "goal", "750"))
	require.NoError(t, runCLI(t, dir, "characters", "add", "Elena", "Violinist"))

	doc, err := loadDir(t, dir).Document()
	require.NoError(t, err)
	require.Equal(t, 2, doc.CurrentScene)
	require.Equal(t, "Opening", doc.Scenes[0].Name)
	require.Equal(t, 750, doc.DailyGoal)
	require.Len(t, doc.Characters, 1)
}

func TestCLI_Errors(t *testing.T) {
	t.Setenv("SCRIVANO_LOG_LEVEL", "error")
	dir := t.TempDir()

	require.Error(t, runCLI(t, dir, "restore", "1", "5"))
	require.Error(t, runCLI(t, dir, "write", "x", "text"))
	require.Error(t, runCLI(t, dir, "revisions"))
}

func TestCLI_Plot(t *testing.T) {
	t.Setenv("SCRIVANO_LOG_LEVEL", "error")
	dir := t.TempDir()

	require.NoError(t, runCLI(t, dir, "scenes", "add", "The Calling"))
	require.NoError(t, runCLI(t, dir, "plot", "assign", "0", "2"))
	require.NoError(t, runCLI(t, dir, "plot", "add-act", "Epilogue"))
	require.NoError(t, runCLI(t, dir, "plot", "rename-act", "1", "Rising Action"))
	require.NoError(t, runCLI(t, dir, "plot"))
	require.Error(t, runCLI(t, dir, "plot", "assign", "9", "1"))

	doc, err := loadDir(t, dir).Document()
	require.NoError(t, err)
	require.Len(t, doc.Plot, 4)
	require.Equal(t, "Rising Action", doc.Plot[1].Title)
	require.Equal(t, 0, doc.ActOf(2))
}

func TestCLI_UnreadableStorageRefusesWrites(t *testing.T) {
	t.Setenv("SCRIVANO_LOG_LEVEL", "error")
	dir := t.TempDir()

	// A directory in place of the data file makes every read fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, session.StorageKey+".json"), 0o755))

	err := runCLI(t, dir, "write", "1", "would wipe the novel")
	require.ErrorContains(t, err, "could not be read")
	require.Error(t, runCLI(t, dir, "plot", "add-act", "Epilogue"))

	// Reads still run
	require.NoError(t, runCLI(t, dir, "show"))

	entries, err := os.ReadDir(filepath.Join(dir, session.StorageKey+".json"))
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestTextArg(t *testing.T) {
	text, err := textArg([]string{"inline"}, nil)
	require.NoError(t, err)
	require.Equal(t, "inline", text)

	text, err = textArg([]string{"-"}, strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	require.Equal(t, "from stdin", text)

	text, err = textArg(nil, strings.NewReader("no args"))
	require.NoError(t, err)
	require.Equal(t, "no args", text)
}

func TestParseID(t *testing.T) {
	id, err := parseID("scene-id", "3")
	require.NoError(t, err)
	require.Equal(t, 3, id)

	_, err = parseID("scene-id", "three")
	require.ErrorContains(t, err, "scene-id")
}
