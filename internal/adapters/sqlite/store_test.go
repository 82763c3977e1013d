package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)

	value, ok, err := s.Get("novel-writer-data")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "", value)
}

func TestStore_SetGet(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", `{"title":"one"}`))
	require.NoError(t, s.Set("k", `{"title":"two"}`))

	value, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"title":"two"}`, value)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, filepath.Join(dir, DatabaseFile), s.Path())
	value, ok, err := s.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", value)

	version, err := s.SchemaVersion()
	require.NoError(t, err)
	require.Equal(t, schemaVersion, version)
}

func TestStore_Revisions(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", "a"))
	require.NoError(t, s.Set("k", "bb"))
	require.NoError(t, s.Set("k", "ccc"))
	require.NoError(t, s.Set("other", "x"))

	revs, err := s.Revisions("k", 0)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	require.Equal(t, 3, revs[0].Size)
	require.Equal(t, 1, revs[2].Size)
	require.Greater(t, revs[0].ID, revs[1].ID)

	revs, err = s.Revisions("k", 2)
	require.NoError(t, err)
	require.Len(t, revs, 2)
}

func TestStore_PrunesRevisions(t *testing.T) {
	s := openTestStore(t)
	s.SetRevisionLimit(3)

	for _, v := range []string{"1", "22", "333", "4444", "55555"} {
		require.NoError(t, s.Set("k", v))
	}

	revs, err := s.Revisions("k", 0)
	require.NoError(t, err)
	require.Len(t, revs, 3)
	require.Equal(t, 5, revs[0].Size)
	require.Equal(t, 3, revs[2].Size)
}
