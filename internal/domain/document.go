package domain

import (
	"fmt"
	"slices"
	"sort"
)

const (
	DefaultTitle     = "My Novel"
	DefaultDailyGoal = 1000
)

// Scene represents a named unit of prose in the scene list
type Scene struct {
	ID   int    // e.g., 1
	Name string // e.g., "Scene 1"
}

// Character represents a character sheet entry
type Character struct {
	Name string
	Role string // Role or free-form notes
}

// Document is the aggregate writing-session state
type Document struct {
	Title         string
	Scenes        []Scene
	SceneContents map[int]string // Scene ID -> text, stale IDs tolerated
	CurrentScene  int
	DailyGoal     int
	Characters    []Character
	WorldNotes    string
	Plot          []Act
	History       *History
}

// NewDocument returns a document with one empty scene and default settings
func NewDocument() *Document {
	return &Document{
		Title:         DefaultTitle,
		Scenes:        []Scene{{ID: 1, Name: DefaultSceneName(1)}},
		SceneContents: map[int]string{1: ""},
		CurrentScene:  1,
		DailyGoal:     DefaultDailyGoal,
		Characters:    []Character{},
		Plot:          DefaultPlot(),
		History:       NewHistory(HistoryCapacity),
	}
}

// DefaultSceneName returns the display name for a scene without one
func DefaultSceneName(id int) string {
	return fmt.Sprintf("Scene %d", id)
}

// HasScene reports whether id is in the scene list
func (d *Document) HasScene(id int) bool {
	return d.sceneIndex(id) >= 0
}

// Scene returns the scene with the given ID
func (d *Document) Scene(id int) (Scene, bool) {
	if i := d.sceneIndex(id); i >= 0 {
		return d.Scenes[i], true
	}
	return Scene{}, false
}

func (d *Document) sceneIndex(id int) int {
	return slices.IndexFunc(d.Scenes, func(s Scene) bool { return s.ID == id })
}

// SceneText returns the text of a scene, empty if it has none
func (d *Document) SceneText(id int) string {
	return d.SceneContents[id]
}

// CurrentText returns the text of the active scene
func (d *Document) CurrentText() string {
	return d.SceneContents[d.CurrentScene]
}

// NextSceneID returns one greater than the highest scene ID in use
func (d *Document) NextSceneID() int {
	maxID := 0
	for _, s := range d.Scenes {
		maxID = max(maxID, s.ID)
	}
	return maxID + 1
}

// AddScene appends a scene with empty text and makes it active.
// An empty name defaults to "Scene <id>".
func (d *Document) AddScene(name string) Scene {
	id := d.NextSceneID()
	if name == "" {
		name = DefaultSceneName(id)
	}
	scene := Scene{ID: id, Name: name}
	d.Scenes = append(d.Scenes, scene)
	d.SceneContents[id] = ""
	d.CurrentScene = id
	return scene
}

// RenameScene changes the display name of a scene
func (d *Document) RenameScene(id int, name string) bool {
	i := d.sceneIndex(id)
	if i < 0 {
		return false
	}
	d.Scenes[i].Name = name
	return true
}

// TotalWords returns the word count across every scene in the scene list
func (d *Document) TotalWords() int {
	total := 0
	for _, s := range d.Scenes {
		total += WordCount(d.SceneContents[s.ID])
	}
	return total
}

// Normalize restores the document invariants after decoding or construction:
// a non-empty scene list, a text entry per scene, a valid active scene,
// a positive goal, non-nil collections and a plot that only places known
// scenes, each once.
func (d *Document) Normalize() {
	if d.SceneContents == nil {
		d.SceneContents = map[int]string{}
	}

	if len(d.Scenes) == 0 {
		d.Scenes = scenesFromContents(d.SceneContents)
	}
	if len(d.Scenes) == 0 {
		d.Scenes = []Scene{{ID: 1, Name: DefaultSceneName(1)}}
	}

	for i, s := range d.Scenes {
		if s.Name == "" {
			d.Scenes[i].Name = DefaultSceneName(s.ID)
		}
		if _, ok := d.SceneContents[s.ID]; !ok {
			d.SceneContents[s.ID] = ""
		}
	}

	if !d.HasScene(d.CurrentScene) {
		d.CurrentScene = d.Scenes[0].ID
	}

	if d.DailyGoal <= 0 {
		d.DailyGoal = DefaultDailyGoal
	}

	if d.Characters == nil {
		d.Characters = []Character{}
	}

	d.normalizePlot()

	if d.History == nil {
		d.History = NewHistory(HistoryCapacity)
	}
}

// scenesFromContents derives a scene list from text keys, lowest ID first
func scenesFromContents(contents map[int]string) []Scene {
	ids := make([]int, 0, len(contents))
	for id := range contents {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	scenes := make([]Scene, 0, len(ids))
	for _, id := range ids {
		scenes = append(scenes, Scene{ID: id, Name: DefaultSceneName(id)})
	}
	return scenes
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	c := &Document{
		Title:         d.Title,
		Scenes:        slices.Clone(d.Scenes),
		SceneContents: make(map[int]string, len(d.SceneContents)),
		CurrentScene:  d.CurrentScene,
		DailyGoal:     d.DailyGoal,
		Characters:    slices.Clone(d.Characters),
		WorldNotes:    d.WorldNotes,
		Plot:          clonePlot(d.Plot),
	}
	for id, text := range d.SceneContents {
		c.SceneContents[id] = text
	}
	if d.History != nil {
		c.History = d.History.Clone()
	}
	if c.Scenes == nil {
		c.Scenes = []Scene{}
	}
	if c.Characters == nil {
		c.Characters = []Character{}
	}
	return c
}
