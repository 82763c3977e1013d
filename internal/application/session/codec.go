package session

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"scrivano/internal/application"
	"scrivano/internal/domain"
)

const (
	// StorageKey is the fixed key the document blob is stored under
	StorageKey = "novel-writer-data"

	// SchemaVersion is written into every blob. Blobs without a version are
	// treated as version 1: no scene list, no active scene, no history scene IDs.
	SchemaVersion = 2
)

type snapshot struct {
	Version      int               `json:"version"`
	Title        string            `json:"title"`
	Scenes       []sceneRecord     `json:"scenes"`
	CurrentScene int               `json:"currentScene"`
	SceneText    map[int]string    `json:"sceneText"`
	History      []historyRecord   `json:"history"`
	Goal         int               `json:"goal"`
	Characters   []characterRecord `json:"characters"`
	WorldNotes   string            `json:"worldNotes"`
	Plot         []actRecord       `json:"plot"`
}

type sceneRecord struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type historyRecord struct {
	Timestamp time.Time `json:"timestamp"`
	SceneID   int       `json:"sceneId,omitempty"`
	Text      string    `json:"text"`
}

type actRecord struct {
	Title    string `json:"title"`
	SceneIDs []int  `json:"sceneIds"`
}

type characterRecord struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// Encode serializes the document to its stored JSON form
func Encode(doc *domain.Document) (string, error) {
	snap := snapshot{
		Version:      SchemaVersion,
		Title:        doc.Title,
		Scenes:       make([]sceneRecord, 0, len(doc.Scenes)),
		CurrentScene: doc.CurrentScene,
		SceneText:    doc.SceneContents,
		History:      []historyRecord{},
		Goal:         doc.DailyGoal,
		Characters:   make([]characterRecord, 0, len(doc.Characters)),
		WorldNotes:   doc.WorldNotes,
		Plot:         make([]actRecord, 0, len(doc.Plot)),
	}

	for _, s := range doc.Scenes {
		snap.Scenes = append(snap.Scenes, sceneRecord{ID: s.ID, Name: s.Name})
	}
	if doc.History != nil {
		for _, e := range doc.History.Entries() {
			snap.History = append(snap.History, historyRecord{Timestamp: e.Timestamp, SceneID: e.SceneID, Text: e.Text})
		}
	}
	for _, c := range doc.Characters {
		snap.Characters = append(snap.Characters, characterRecord{Name: c.Name, Role: c.Role})
	}
	for _, a := range doc.Plot {
		ids := a.SceneIDs
		if ids == nil {
			ids = []int{}
		}
		snap.Plot = append(snap.Plot, actRecord{Title: a.Title, SceneIDs: ids})
	}
	if snap.SceneText == nil {
		snap.SceneText = map[int]string{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(data), nil
}

// Decode parses a stored blob field by field. Fields that are missing or hold
// an unusable value take their defaults; entries of the wrong shape inside a
// list are skipped. Only a blob that is not a JSON object, a newer schema
// version or a sceneText that is not an object yields a
// *application.SnapshotError.
func Decode(blob string) (*domain.Document, error) {
	if !gjson.Valid(blob) {
		return nil, &application.SnapshotError{Reason: "invalid JSON"}
	}

	root := gjson.Parse(blob)
	if !root.IsObject() {
		return nil, &application.SnapshotError{Reason: "expected a JSON object"}
	}

	if v := root.Get("version"); v.Type == gjson.Number && v.Int() > SchemaVersion {
		return nil, &application.SnapshotError{Reason: fmt.Sprintf("unsupported version %d", v.Int())}
	}

	contents, err := decodeSceneText(root.Get("sceneText"))
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		Title:         stringOr(root.Get("title"), domain.DefaultTitle),
		SceneContents: contents,
		CurrentScene:  intOr(root.Get("currentScene"), 0),
		DailyGoal:     intOr(root.Get("goal"), domain.DefaultDailyGoal),
		WorldNotes:    stringOr(root.Get("worldNotes"), ""),
		Characters:    []domain.Character{},
	}

	for _, s := range arrayOf(root.Get("scenes")) {
		id := intOr(s.Get("id"), 0)
		if !s.IsObject() || id <= 0 || doc.HasScene(id) {
			continue
		}
		doc.Scenes = append(doc.Scenes, domain.Scene{ID: id, Name: stringOr(s.Get("name"), "")})
	}

	for _, c := range arrayOf(root.Get("characters")) {
		if !c.IsObject() {
			continue
		}
		doc.Characters = append(doc.Characters, domain.Character{
			Name: stringOr(c.Get("name"), ""),
			Role: stringOr(c.Get("role"), ""),
		})
	}

	if plot := root.Get("plot"); plot.IsArray() {
		doc.Plot = []domain.Act{}
		for _, a := range plot.Array() {
			if !a.IsObject() {
				continue
			}
			act := domain.Act{Title: stringOr(a.Get("title"), ""), SceneIDs: []int{}}
			for _, id := range arrayOf(a.Get("sceneIds")) {
				if id.Type == gjson.Number {
					act.SceneIDs = append(act.SceneIDs, int(id.Int()))
				}
			}
			doc.Plot = append(doc.Plot, act)
		}
	} else {
		doc.Plot = domain.DefaultPlot()
	}

	var entries []domain.HistoryEntry
	for _, h := range arrayOf(root.Get("history")) {
		if entry, ok := decodeHistoryEntry(h); ok {
			entries = append(entries, entry)
		}
	}
	doc.History = domain.HistoryFrom(entries, domain.HistoryCapacity)

	doc.Normalize()
	return doc, nil
}

// decodeSceneText reads the scene ID to text map. Keys that are not scene
// IDs and values that are not strings are skipped.
func decodeSceneText(v gjson.Result) (map[int]string, error) {
	contents := map[int]string{}
	if !v.Exists() || v.Type == gjson.Null {
		return contents, nil
	}
	if !v.IsObject() {
		return nil, &application.SnapshotError{Reason: "sceneText is not an object"}
	}

	v.ForEach(func(key, value gjson.Result) bool {
		id, err := strconv.Atoi(key.String())
		if err != nil || value.Type != gjson.String {
			return true
		}
		contents[id] = value.String()
		return true
	})
	return contents, nil
}

// decodeHistoryEntry reads one version. Entries without text are dropped; an
// unreadable timestamp is kept as the zero time.
func decodeHistoryEntry(h gjson.Result) (domain.HistoryEntry, bool) {
	text := h.Get("text")
	if !h.IsObject() || text.Type != gjson.String {
		return domain.HistoryEntry{}, false
	}

	entry := domain.HistoryEntry{
		SceneID: intOr(h.Get("sceneId"), 0),
		Text:    text.String(),
	}
	if ts := h.Get("timestamp"); ts.Type == gjson.String {
		if t, err := time.Parse(time.RFC3339Nano, ts.String()); err == nil {
			entry.Timestamp = t
		}
	}
	return entry, true
}

func stringOr(v gjson.Result, def string) string {
	if v.Type == gjson.String {
		return v.String()
	}
	return def
}

// intOr truncates fractional numbers, so a goal of 1500.5 reads as 1500
func intOr(v gjson.Result, def int) int {
	if v.Type == gjson.Number {
		return int(v.Int())
	}
	return def
}

func arrayOf(v gjson.Result) []gjson.Result {
	if !v.IsArray() {
		return nil
	}
	return v.Array()
}
