// Package mouse maps terminal mouse events onto rectangular screen regions.
package mouse

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen rectangle in cells. Right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area carrying arbitrary data.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last render. Later regions win on overlap.
type HitMap struct {
	regions []Region
}

// NewHitMap returns an empty hit map.
func NewHitMap() *HitMap { return &HitMap{} }

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from raw coordinates.
func (h *HitMap) AddRect(id string, x, y, w, ht int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: ht}, data)
}

// Clear drops all regions.
func (h *HitMap) Clear() { h.regions = h.regions[:0] }

// Test returns the topmost region under (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionContext
	ActionScrollUp
	ActionScrollDown
)

// Action is a classified mouse event with the region it landed on.
type Action struct {
	Type   ActionType
	Region *Region
	// X is the pressed column; popups anchor on it.
	X int
}

// Classify turns a raw mouse message into an Action. Presses of the left and
// right buttons need a region; wheel events do not.
func (h *HitMap) Classify(msg tea.MouseMsg) Action {
	a := Action{X: msg.X}
	if msg.Action != tea.MouseActionPress {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.Type = ActionScrollUp
		return a
	case tea.MouseButtonWheelDown:
		a.Type = ActionScrollDown
		return a
	}
	a.Region = h.Test(msg.X, msg.Y)
	if a.Region == nil {
		return a
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		a.Type = ActionClick
	case tea.MouseButtonRight:
		a.Type = ActionContext
	}
	return a
}
