package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scrivano/internal/application"
)

func TestAutosave_TicksUntilStopped(t *testing.T) {
	store := newFakeStorage()
	m := loadedManager(t, store)
	_, _ = m.SetSceneText(1, "draft")

	saver, err := m.StartAutosave(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return store.Writes() >= 2
	}, time.Second, time.Millisecond)

	saver.Stop()
	after := store.Writes()

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, after, store.Writes())

	history, err := m.History()
	require.NoError(t, err)
	require.Equal(t, "draft", history[0].Text)

	// Stop is idempotent
	saver.Stop()
}

func TestAutosave_StopsWithContext(t *testing.T) {
	m := loadedManager(t, newFakeStorage())

	ctx, cancel := context.WithCancel(context.Background())
	saver, err := m.StartAutosave(ctx, time.Hour)
	require.NoError(t, err)

	cancel()
	select {
	case <-saver.Done():
	case <-time.After(time.Second):
		t.Fatal("autosave did not stop after context cancel")
	}
}

func TestAutosave_KeepsRunningAfterStorageFailure(t *testing.T) {
	store := newFakeStorage()
	m := loadedManager(t, store)
	store.failSet(errors.New("quota exceeded"))

	saver, err := m.StartAutosave(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
	defer saver.Stop()

	require.Eventually(t, func() bool {
		h, _ := m.History()
		return len(h) >= 2
	}, time.Second, time.Millisecond)

	store.failSet(nil)
	require.Eventually(t, func() bool {
		return store.Writes() >= 1
	}, time.Second, time.Millisecond)
}

func TestAutosave_RequiresLoad(t *testing.T) {
	m := NewManager(newFakeStorage())

	_, err := m.StartAutosave(context.Background(), time.Second)
	require.ErrorIs(t, err, application.ErrNotLoaded)
}
