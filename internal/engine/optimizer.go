// Package engine implements the greedy placement engine: panel expansion and
// ordering, per-sheet candidate-position search, and the multi-sheet
// first-fit allocation loop.
package engine

import (
	"github.com/panelworks/cutplan/internal/model"
)

// Settings holds the tunables of a run. The zero value is usable but
// unbudgeted; DefaultSettings is what callers normally want.
type Settings struct {
	// GridBudget caps the number of candidate cells one position search may
	// visit during the fallback grid scan. Zero disables the cap.
	GridBudget int64

	// Workers sets how many goroutines evaluate grid rows concurrently.
	// Values below 2 keep the scan serial. The reduction is a total-order
	// minimum, so the result is identical either way.
	Workers int
}

func DefaultSettings() Settings {
	return Settings{
		GridBudget: 5_000_000,
		Workers:    1,
	}
}

// Optimizer runs the greedy bottom-left placement algorithm.
type Optimizer struct {
	Settings Settings
}

func New(settings Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize places every requested panel instance across as few stock sheets
// as possible and returns the resulting layout. The sheet list, rect order
// and coordinates are deterministic for identical input.
//
// It fails with *InputError when any spec cannot fit an empty sheet in
// either orientation, and with *AbortError when the grid-scan budget is
// exceeded. No partial layout is ever returned.
func (o *Optimizer) Optimize(req model.CutRequest) (model.Layout, error) {
	if err := ValidateRequest(req); err != nil {
		return model.Layout{}, err
	}

	queue := Normalize(req.Panels)
	sheets := []*model.Sheet{model.NewSheet(req.StockWidth, req.StockHeight)}

	for i := range queue {
		inst := &queue[i]

		placed := false
		for si, sheet := range sheets {
			pos, ok, err := o.findPosition(sheet, inst.Width, inst.Height)
			if err != nil {
				return model.Layout{}, err
			}
			if ok {
				placeInstance(sheet, si, inst, pos)
				placed = true
				break
			}
		}

		if !placed {
			fresh := model.NewSheet(req.StockWidth, req.StockHeight)
			pos, ok, err := o.findPosition(fresh, inst.Width, inst.Height)
			if err != nil {
				return model.Layout{}, err
			}
			if !ok {
				// Unreachable after ValidateRequest, kept as a fail-fast
				// guard: never return a partial layout.
				return model.Layout{}, &InputError{
					PanelWidth:  inst.Width,
					PanelHeight: inst.Height,
					StockWidth:  req.StockWidth,
					StockHeight: req.StockHeight,
				}
			}
			sheets = append(sheets, fresh)
			placeInstance(fresh, len(sheets)-1, inst, pos)
		}
	}

	return model.Layout{
		StockWidth:  req.StockWidth,
		StockHeight: req.StockHeight,
		Sheets:      sheets,
		Instances:   queue,
	}, nil
}

// placeInstance appends the occupied rect to the sheet and fixes the
// instance's placement. Both happen exactly once per instance.
func placeInstance(sheet *model.Sheet, sheetIndex int, inst *model.PanelInstance, pos position) {
	w, h := inst.Width, inst.Height
	if pos.rotated {
		w, h = h, w
	}

	sheet.Rects = append(sheet.Rects, model.OccupiedRect{
		X:           pos.x,
		Y:           pos.y,
		W:           w,
		H:           h,
		Rotated:     pos.rotated,
		InstanceID:  inst.ID,
		PanelWidth:  inst.Width,
		PanelHeight: inst.Height,
	})

	inst.Placed = true
	inst.SheetIndex = sheetIndex
	inst.X = pos.x
	inst.Y = pos.y
	inst.Rotated = pos.rotated
}
