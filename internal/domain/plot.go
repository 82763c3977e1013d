package domain

import "slices"

// Act is one column of the plot outline: a title and the scenes it holds, in
// story order. A scene belongs to at most one act.
type Act struct {
	Title    string
	SceneIDs []int
}

// DefaultPlot returns the three-act outline new documents start with
func DefaultPlot() []Act {
	return []Act{
		{Title: "Setup", SceneIDs: []int{}},
		{Title: "Confrontation", SceneIDs: []int{}},
		{Title: "Resolution", SceneIDs: []int{}},
	}
}

// ActOutline is an act with its scene IDs resolved to scenes
type ActOutline struct {
	Title  string
	Scenes []Scene
}

// PlotOutline resolves every act's scenes. Scenes in no act are returned
// separately, in scene-list order.
func (d *Document) PlotOutline() (acts []ActOutline, unassigned []Scene) {
	placed := map[int]bool{}
	acts = make([]ActOutline, 0, len(d.Plot))
	for _, act := range d.Plot {
		outline := ActOutline{Title: act.Title, Scenes: make([]Scene, 0, len(act.SceneIDs))}
		for _, id := range act.SceneIDs {
			if scene, ok := d.Scene(id); ok {
				outline.Scenes = append(outline.Scenes, scene)
				placed[id] = true
			}
		}
		acts = append(acts, outline)
	}

	unassigned = []Scene{}
	for _, s := range d.Scenes {
		if !placed[s.ID] {
			unassigned = append(unassigned, s)
		}
	}
	return acts, unassigned
}

// ActOf returns the index of the act holding sceneID, or -1
func (d *Document) ActOf(sceneID int) int {
	for i, act := range d.Plot {
		if slices.Contains(act.SceneIDs, sceneID) {
			return i
		}
	}
	return -1
}

// AddAct appends an empty act and returns its index
func (d *Document) AddAct(title string) int {
	d.Plot = append(d.Plot, Act{Title: title, SceneIDs: []int{}})
	return len(d.Plot) - 1
}

// AssignScene moves a scene to the end of an act, taking it out of any act
// it was in. It reports false for an unknown act or scene.
func (d *Document) AssignScene(actIndex, sceneID int) bool {
	if actIndex < 0 || actIndex >= len(d.Plot) || !d.HasScene(sceneID) {
		return false
	}
	d.UnassignScene(sceneID)
	d.Plot[actIndex].SceneIDs = append(d.Plot[actIndex].SceneIDs, sceneID)
	return true
}

// UnassignScene takes a scene out of its act. It reports whether the scene
// was in one.
func (d *Document) UnassignScene(sceneID int) bool {
	i := d.ActOf(sceneID)
	if i < 0 {
		return false
	}
	d.Plot[i].SceneIDs = slices.DeleteFunc(d.Plot[i].SceneIDs, func(id int) bool { return id == sceneID })
	return true
}

// normalizePlot drops scene IDs that are not in the scene list or already
// placed in an earlier act
func (d *Document) normalizePlot() {
	if d.Plot == nil {
		d.Plot = []Act{}
	}
	seen := map[int]bool{}
	for i := range d.Plot {
		ids := make([]int, 0, len(d.Plot[i].SceneIDs))
		for _, id := range d.Plot[i].SceneIDs {
			if seen[id] || !d.HasScene(id) {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
		}
		d.Plot[i].SceneIDs = ids
	}
}

func clonePlot(plot []Act) []Act {
	if plot == nil {
		return []Act{}
	}
	c := make([]Act, len(plot))
	for i, act := range plot {
		c[i] = Act{Title: act.Title, SceneIDs: slices.Clone(act.SceneIDs)}
		if c[i].SceneIDs == nil {
			c[i].SceneIDs = []int{}
		}
	}
	return c
}
