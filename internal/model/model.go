// Package model defines the value types shared by the cut-planning engine,
// the importers and the exporters: panel specifications, expanded panel
// instances, placed rectangles and stock sheets.
package model

import "github.com/google/uuid"

// PanelSpec is a requested panel: dimensions plus how many copies are needed.
// Specs are immutable request input; the engine never mutates them.
type PanelSpec struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
	Quantity int     `json:"quantity"`
}

func NewPanelSpec(label string, w, h float64, qty int) PanelSpec {
	return PanelSpec{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Area returns the area of a single copy of the spec.
func (p PanelSpec) Area() float64 {
	return p.Width * p.Height
}

// LongSide returns the larger of the spec's two dimensions.
func (p PanelSpec) LongSide() float64 {
	if p.Width > p.Height {
		return p.Width
	}
	return p.Height
}

// ShortSide returns the smaller of the spec's two dimensions.
func (p PanelSpec) ShortSide() float64 {
	if p.Width < p.Height {
		return p.Width
	}
	return p.Height
}

// FitsStock reports whether a single copy fits on an empty stock sheet of the
// given dimensions, in at least one of the two orientations.
func (p PanelSpec) FitsStock(stockW, stockH float64) bool {
	return (p.Width <= stockW && p.Height <= stockH) ||
		(p.Height <= stockW && p.Width <= stockH)
}

// PanelInstance is one physical panel expanded from a spec. An instance is
// created unplaced and transitions to placed exactly once; after that its
// position and rotation never change.
type PanelInstance struct {
	ID     string  `json:"id"`
	SpecID string  `json:"spec_id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`  // mm, as requested (not rotated)
	Height float64 `json:"height"` // mm, as requested (not rotated)

	Placed     bool    `json:"placed"`
	SheetIndex int     `json:"sheet_index"` // valid only when Placed
	X          float64 `json:"x"`           // valid only when Placed
	Y          float64 `json:"y"`           // valid only when Placed
	Rotated    bool    `json:"rotated"`     // valid only when Placed
}

// OccupiedRect is a rectangle claimed on a sheet by a placed instance.
// The back-reference to the instance is by ID only; the Layout owns the
// instance values.
type OccupiedRect struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	W          float64 `json:"w"` // placed width (swapped when rotated)
	H          float64 `json:"h"` // placed height (swapped when rotated)
	Rotated    bool    `json:"rotated"`
	InstanceID string  `json:"instance_id"`

	// Source panel dimensions as requested, for labeling.
	PanelWidth  float64 `json:"panel_width"`
	PanelHeight float64 `json:"panel_height"`
}

// Area returns the area claimed by the rectangle.
func (r OccupiedRect) Area() float64 {
	return r.W * r.H
}

// Overlaps reports whether the rectangle's interior intersects the rectangle
// (x, y, w, h). Rectangles that only touch at an edge do not overlap.
func (r OccupiedRect) Overlaps(x, y, w, h float64) bool {
	return !(x+w <= r.X || x >= r.X+r.W || y+h <= r.Y || y >= r.Y+r.H)
}

// Sheet is one stock sheet with the rectangles placed on it. Rects is
// append-only; insertion order is placement order.
type Sheet struct {
	Width  float64        `json:"width"`  // mm
	Height float64        `json:"height"` // mm
	Rects  []OccupiedRect `json:"rects"`
}

func NewSheet(w, h float64) *Sheet {
	return &Sheet{Width: w, Height: h}
}

// UsedArea returns the total area claimed by placed rectangles.
func (s *Sheet) UsedArea() float64 {
	var total float64
	for _, r := range s.Rects {
		total += r.Area()
	}
	return total
}

// TotalArea returns the stock sheet area.
func (s *Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Efficiency returns the percentage of the sheet covered by placed panels.
func (s *Sheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea() / ta) * 100.0
}

// CutRequest is the immutable input to an optimization run.
type CutRequest struct {
	StockWidth  float64     `json:"stock_width"`  // mm
	StockHeight float64     `json:"stock_height"` // mm
	Panels      []PanelSpec `json:"panels"`
}

// TotalPanelArea returns the combined area of every requested panel copy.
func (cr CutRequest) TotalPanelArea() float64 {
	var total float64
	for _, p := range cr.Panels {
		total += p.Area() * float64(p.Quantity)
	}
	return total
}

// TotalQuantity returns the number of panel instances the request expands to.
func (cr CutRequest) TotalQuantity() int {
	var total int
	for _, p := range cr.Panels {
		total += p.Quantity
	}
	return total
}

// Layout is the result of an optimization run: the ordered sheet list plus
// the placed instances backing the rects' InstanceID references.
type Layout struct {
	StockWidth  float64         `json:"stock_width"`
	StockHeight float64         `json:"stock_height"`
	Sheets      []*Sheet        `json:"sheets"`
	Instances   []PanelInstance `json:"instances"`
}

// Instance resolves an instance ID to its value. The second return is false
// when the ID is unknown.
func (l Layout) Instance(id string) (PanelInstance, bool) {
	for _, inst := range l.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return PanelInstance{}, false
}

// PlacedCount returns the number of rects across all sheets.
func (l Layout) PlacedCount() int {
	var total int
	for _, s := range l.Sheets {
		total += len(s.Rects)
	}
	return total
}

// TotalEfficiency returns overall material usage across all sheets.
func (l Layout) TotalEfficiency() float64 {
	var used, total float64
	for _, s := range l.Sheets {
		used += s.UsedArea()
		total += s.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}

// WastePercent returns the share of stock material left unused.
func (l Layout) WastePercent() float64 {
	if len(l.Sheets) == 0 {
		return 0
	}
	return 100.0 - l.TotalEfficiency()
}

// Project ties a request and its layout together for save/load.
type Project struct {
	Name    string     `json:"name"`
	Request CutRequest `json:"request"`
	Layout  *Layout    `json:"layout,omitempty"`
}

func NewProject() Project {
	return Project{Name: "Untitled"}
}
