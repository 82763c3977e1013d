// Package session owns a writing session: the current document, its bounded
// version history, and persistence to a storage backend.
package session

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scrivano/internal/application"
	"scrivano/internal/domain"
	"scrivano/internal/ports"
)

// State is the lifecycle state of a Manager
type State int

const (
	StateUninitialized State = iota
	StateActive
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// LoadSource tells where a loaded document came from
type LoadSource int

const (
	LoadedDefault LoadSource = iota
	LoadedSnapshot
)

// LoadResult is returned by Load. Document is always usable. Warning is set
// when storage could not be read or held a malformed blob; in both cases a
// fresh default document was started. After a read failure the Manager does
// not write until storage is readable and empty, or ForceSave is called.
type LoadResult struct {
	Document *domain.Document
	Source   LoadSource
	Warning  error
}

// Stats summarizes the session for dashboards and status lines
type Stats struct {
	SceneID    int
	SceneName  string
	SceneWords int
	TotalWords int
	Progress   domain.Progress // Active scene words against the daily goal
	Scenes     int
	Characters int
	Versions   int
	LastSaved  time.Time // Zero until the first successful write
	Blocked    bool      // Writes held back because the stored document was never read
}

// Manager maintains the document state, snapshots the active scene into
// history on every tick, and persists the whole document to storage.
//
// Every method is serialized by an internal mutex so the autosave goroutine
// and a caller can share one Manager.
type Manager struct {
	mu sync.Mutex

	storage ports.Storage
	clock   ports.Clock
	log     *logrus.Entry
	key     string
	id      string

	state     State
	doc       *domain.Document
	lastSaved time.Time
	blocked   bool
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the clock used for history timestamps
func WithClock(c ports.Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithLogger sets the logger. Without it the Manager logs nowhere.
func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Manager) {
		m.log = l.WithField("session", m.id)
	}
}

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(m *Manager) {
		m.key = key
	}
}

// NewManager creates an uninitialized Manager. Call Load before anything else.
func NewManager(storage ports.Storage, opts ...Option) *Manager {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	m := &Manager{
		storage: storage,
		clock:   ports.SystemClock{},
		key:     StorageKey,
		id:      uuid.NewString(),
		state:   StateUninitialized,
	}
	m.log = discard.WithField("session", m.id)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the session identifier used in log fields
func (m *Manager) ID() string {
	return m.id
}

// State returns the lifecycle state
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Load reads the stored document and activates the session. A missing value
// yields the default document. Read failures and malformed blobs also yield
// the default document, reported through LoadResult.Warning.
func (m *Manager) Load() *LoadResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &LoadResult{Source: LoadedDefault}
	doc := domain.NewDocument()

	value, ok, err := m.storage.Get(m.key)
	m.blocked = err != nil
	switch {
	case err != nil:
		result.Warning = &application.StorageError{Op: "get", Key: m.key, Err: err}
		m.log.WithError(err).Warn("storage unavailable, starting fresh document without saving")
	case !ok:
		m.log.Info("no saved document, starting fresh")
	default:
		decoded, derr := Decode(value)
		if derr != nil {
			result.Warning = derr
			m.log.WithError(derr).Warn("discarding saved document")
			break
		}
		doc = decoded
		result.Source = LoadedSnapshot
		m.log.WithFields(logrus.Fields{
			"scenes":  len(doc.Scenes),
			"history": doc.History.Len(),
		}).Info("loaded saved document")
	}

	m.doc = doc
	m.state = StateActive
	result.Document = doc.Clone()
	return result
}

func (m *Manager) requireActive() error {
	if m.state != StateActive {
		return application.ErrNotLoaded
	}
	return nil
}

// SetSceneText replaces the text of a scene and returns the word count of the
// active scene afterwards
func (m *Manager) SetSceneText(sceneID int, text string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return 0, err
	}
	if !m.doc.HasScene(sceneID) {
		return 0, &application.SceneError{SceneID: sceneID}
	}

	m.doc.SceneContents[sceneID] = text
	return domain.WordCount(m.doc.CurrentText()), nil
}

// WordCount returns the word count of the active scene
func (m *Manager) WordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return 0
	}
	return domain.WordCount(m.doc.CurrentText())
}

// Tick records the active scene in history, evicting the oldest version at
// capacity, then persists the whole document. A failed write returns a
// *application.StorageError; the new history entry is kept in memory.
func (m *Manager) Tick() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}

	m.doc.History.Append(domain.HistoryEntry{
		Timestamp: m.now(),
		SceneID:   m.doc.CurrentScene,
		Text:      m.doc.CurrentText(),
	})

	m.log.WithFields(logrus.Fields{
		"scene":   m.doc.CurrentScene,
		"history": m.doc.History.Len(),
	}).Debug("captured version")

	return m.persist()
}

// Save persists the document without recording a version
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	return m.persist()
}

// ForceSave persists the document even when the stored one was never read,
// replacing it
func (m *Manager) ForceSave() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if m.blocked {
		m.log.Warn("overwriting a stored document that was never loaded")
	}
	m.blocked = false
	return m.persist()
}

// Blocked reports whether writes are held back after a failed read
func (m *Manager) Blocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blocked
}

func (m *Manager) persist() error {
	if m.blocked {
		if err := m.unblock(); err != nil {
			return err
		}
	}

	blob, err := Encode(m.doc)
	if err != nil {
		return err
	}

	if err := m.storage.Set(m.key, blob); err != nil {
		m.log.WithError(err).Warn("failed to persist document")
		return &application.StorageError{Op: "set", Key: m.key, Err: err}
	}

	m.lastSaved = m.now()
	m.log.WithField("bytes", len(blob)).Debug("persisted document")
	return nil
}

// unblock lifts the write hold once storage reads again and holds no
// document. A stored document that was never loaded is not overwritten.
func (m *Manager) unblock() error {
	_, ok, err := m.storage.Get(m.key)
	if err != nil {
		return &application.StorageError{Op: "get", Key: m.key, Err: err}
	}
	if ok {
		return &application.StorageError{Op: "set", Key: m.key, Err: application.ErrUnreadDocument}
	}
	m.blocked = false
	m.log.Info("storage readable and empty, resuming saves")
	return nil
}

// now returns UTC without the monotonic reading, the form a timestamp has
// after a trip through storage
func (m *Manager) now() time.Time {
	return m.clock.Now().UTC().Round(0)
}

// Restore overwrites a scene's text with the version at historyIndex,
// counted from the oldest. Out-of-range indexes return a
// *application.HistoryIndexError and leave the text unchanged.
func (m *Manager) Restore(sceneID, historyIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if !m.doc.HasScene(sceneID) {
		return &application.SceneError{SceneID: sceneID}
	}

	entry, ok := m.doc.History.At(historyIndex)
	if !ok {
		return &application.HistoryIndexError{Index: historyIndex, Len: m.doc.History.Len()}
	}

	m.doc.SceneContents[sceneID] = entry.Text
	m.log.WithFields(logrus.Fields{
		"scene":   sceneID,
		"version": historyIndex,
	}).Info("restored version")
	return nil
}

// AddScene allocates the next scene ID, gives it empty text and makes it active
func (m *Manager) AddScene(name string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return 0, err
	}

	scene := m.doc.AddScene(name)
	m.log.WithField("scene", scene.ID).Debug("added scene")
	return scene.ID, nil
}

// SelectScene makes a scene active
func (m *Manager) SelectScene(sceneID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if !m.doc.HasScene(sceneID) {
		return &application.SceneError{SceneID: sceneID}
	}
	m.doc.CurrentScene = sceneID
	return nil
}

// RenameScene changes a scene's display name
func (m *Manager) RenameScene(sceneID int, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if err := application.ValidateRequired("sceneName", name); err != nil {
		return err
	}
	if !m.doc.RenameScene(sceneID, name) {
		return &application.SceneError{SceneID: sceneID}
	}
	return nil
}

// SetTitle changes the document title
func (m *Manager) SetTitle(title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	m.doc.Title = title
	return nil
}

// SetDailyGoal changes the daily word target. Non-positive goals are rejected.
func (m *Manager) SetDailyGoal(goal int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if err := application.ValidatePositive("dailyGoal", goal); err != nil {
		return err
	}
	m.doc.DailyGoal = goal
	return nil
}

// AddCharacter appends a character and returns its index
func (m *Manager) AddCharacter(name, role string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return 0, err
	}
	m.doc.Characters = append(m.doc.Characters, domain.Character{Name: name, Role: role})
	return len(m.doc.Characters) - 1, nil
}

// UpdateCharacter replaces the character at index
func (m *Manager) UpdateCharacter(index int, name, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if index < 0 || index >= len(m.doc.Characters) {
		return fmt.Errorf("character %d: %w", index, application.ErrCharacterNotFound)
	}
	m.doc.Characters[index] = domain.Character{Name: name, Role: role}
	return nil
}

// RemoveCharacter deletes the character at index
func (m *Manager) RemoveCharacter(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if index < 0 || index >= len(m.doc.Characters) {
		return fmt.Errorf("character %d: %w", index, application.ErrCharacterNotFound)
	}
	m.doc.Characters = append(m.doc.Characters[:index], m.doc.Characters[index+1:]...)
	return nil
}

// SetWorldNotes replaces the free-form world notes
func (m *Manager) SetWorldNotes(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	m.doc.WorldNotes = text
	return nil
}

// AddAct appends an empty act to the plot outline and returns its index
func (m *Manager) AddAct(title string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return 0, err
	}
	if err := application.ValidateRequired("actTitle", title); err != nil {
		return 0, err
	}
	return m.doc.AddAct(title), nil
}

// RenameAct changes an act's title
func (m *Manager) RenameAct(index int, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if err := application.ValidateRequired("actTitle", title); err != nil {
		return err
	}
	if index < 0 || index >= len(m.doc.Plot) {
		return fmt.Errorf("act %d: %w", index, application.ErrActNotFound)
	}
	m.doc.Plot[index].Title = title
	return nil
}

// RemoveAct deletes an act; its scenes become unassigned
func (m *Manager) RemoveAct(index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if index < 0 || index >= len(m.doc.Plot) {
		return fmt.Errorf("act %d: %w", index, application.ErrActNotFound)
	}
	m.doc.Plot = append(m.doc.Plot[:index], m.doc.Plot[index+1:]...)
	return nil
}

// AssignScene places a scene at the end of an act, moving it out of any
// other act
func (m *Manager) AssignScene(actIndex, sceneID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if !m.doc.HasScene(sceneID) {
		return &application.SceneError{SceneID: sceneID}
	}
	if !m.doc.AssignScene(actIndex, sceneID) {
		return fmt.Errorf("act %d: %w", actIndex, application.ErrActNotFound)
	}
	return nil
}

// UnassignScene takes a scene out of the plot outline. A scene in no act is
// left as it is.
func (m *Manager) UnassignScene(sceneID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return err
	}
	if !m.doc.HasScene(sceneID) {
		return &application.SceneError{SceneID: sceneID}
	}
	m.doc.UnassignScene(sceneID)
	return nil
}

// Document returns a deep copy of the current document
func (m *Manager) Document() (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return nil, err
	}
	return m.doc.Clone(), nil
}

// History returns the retained versions, oldest first
func (m *Manager) History() ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return nil, err
	}
	return m.doc.History.Entries(), nil
}

// Stats summarizes the current document
func (m *Manager) Stats() (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return Stats{}, err
	}

	scene, _ := m.doc.Scene(m.doc.CurrentScene)
	words := domain.WordCount(m.doc.CurrentText())

	return Stats{
		SceneID:    scene.ID,
		SceneName:  scene.Name,
		SceneWords: words,
		TotalWords: m.doc.TotalWords(),
		Progress:   domain.NewProgress(words, m.doc.DailyGoal),
		Scenes:     len(m.doc.Scenes),
		Characters: len(m.doc.Characters),
		Versions:   m.doc.History.Len(),
		LastSaved:  m.lastSaved,
		Blocked:    m.blocked,
	}, nil
}

// Search finds query in scenes, characters and world notes
func (m *Manager) Search(query string) ([]domain.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireActive(); err != nil {
		return nil, err
	}
	if err := application.ValidateRequired("query", query); err != nil {
		return nil, err
	}
	return domain.Search(m.doc, query), nil
}
