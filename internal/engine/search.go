package engine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/panelworks/cutplan/internal/model"
)

// position is a candidate placement on one sheet.
type position struct {
	x, y    float64
	rotated bool
}

// better reports whether candidate (y, x) beats the current best under the
// bottom-left ordering: smallest y wins, then smallest x.
func better(y, x, bestY, bestX float64) bool {
	return y < bestY || (y == bestY && x < bestX)
}

type orientation struct {
	w, h    float64
	rotated bool
}

// findPosition finds the best admissible free position for a panelW x panelH
// panel on the sheet, trying both orientations. It returns ok=false when no
// position exists, and *AbortError when the fallback grid scan blows its
// iteration budget.
func (o *Optimizer) findPosition(sheet *model.Sheet, panelW, panelH float64) (position, bool, error) {
	// Grid step: 0.1% of the smallest of the panel and sheet dimensions,
	// taken from the unrotated panel and the full sheet extent.
	step := minFloat(panelW, panelH, sheet.Width, sheet.Height) * 0.001

	orients := []orientation{{panelW, panelH, false}}
	if panelW != panelH {
		orients = append(orients, orientation{panelH, panelW, true})
	}

	// Try first the orientation that better exploits the sheet's width,
	// then its height. A dimension that overflows the sheet counts as zero.
	effW := func(or orientation) float64 {
		if or.w <= sheet.Width {
			return or.w
		}
		return 0
	}
	effH := func(or orientation) float64 {
		if or.h <= sheet.Height {
			return or.h
		}
		return 0
	}
	sort.SliceStable(orients, func(i, j int) bool {
		if effW(orients[i]) != effW(orients[j]) {
			return effW(orients[i]) > effW(orients[j])
		}
		return effH(orients[i]) > effH(orients[j])
	})

	var best position
	found := false
	var cells int64

	for _, or := range orients {
		if or.w > sheet.Width || or.h > sheet.Height {
			continue
		}

		// Phase 1: priority positions.
		for _, c := range priorityPositions(sheet, or.w, or.h) {
			if overlapsAny(sheet, c.x, c.y, or.w, or.h) {
				continue
			}
			if !found || better(c.y, c.x, best.y, best.x) {
				best = position{x: c.x, y: c.y, rotated: or.rotated}
				found = true
			}
		}

		// Phase 2: grid scan, only when nothing has been found yet. The
		// overall best is tracked across orientations, so a later
		// orientation's priority pass can still improve on a grid hit.
		if !found {
			pos, ok, err := o.gridScan(sheet, or, step, &cells)
			if err != nil {
				return position{}, false, err
			}
			if ok {
				best = pos
				found = true
			}
		}
	}

	return best, found, nil
}

// point is a priority candidate prior to overlap filtering.
type point struct {
	x, y float64
}

// priorityPositions returns the sheet corners adjusted for the panel size,
// plus the point immediately right of and immediately above every placed
// rect, filtered to those inside the sheet for a w x h panel.
func priorityPositions(sheet *model.Sheet, w, h float64) []point {
	candidates := []point{
		{0, 0},
		{sheet.Width - w, 0},
		{0, sheet.Height - h},
		{sheet.Width - w, sheet.Height - h},
	}
	for _, used := range sheet.Rects {
		candidates = append(candidates,
			point{used.X + used.W, used.Y},
			point{used.X, used.Y + used.H},
		)
	}

	valid := candidates[:0]
	for _, c := range candidates {
		if c.x >= 0 && c.x <= sheet.Width-w && c.y >= 0 && c.y <= sheet.Height-h {
			valid = append(valid, c)
		}
	}
	return valid
}

// overlapsAny reports whether a w x h panel at (x, y) would overlap any
// placed rect. Edge contact is not overlap.
func overlapsAny(sheet *model.Sheet, x, y, w, h float64) bool {
	for _, used := range sheet.Rects {
		if used.Overlaps(x, y, w, h) {
			return true
		}
	}
	return false
}

// gridScan walks the free region in y-major, x-minor order at the given step
// and returns the admissible cell minimizing (y, x). Cell coordinates are
// computed from row/column indices so the serial and parallel paths visit
// identical positions.
func (o *Optimizer) gridScan(sheet *model.Sheet, or orientation, step float64, cells *int64) (position, bool, error) {
	if step <= 0 {
		return position{}, false, nil
	}

	rows := gridCount(sheet.Height-or.h, step)
	cols := gridCount(sheet.Width-or.w, step)
	if rows == 0 || cols == 0 {
		return position{}, false, nil
	}

	budget := o.Settings.GridBudget
	if budget > 0 && atomic.LoadInt64(cells)+int64(rows)*int64(cols) > budget {
		return position{}, false, &AbortError{
			Iterations: atomic.LoadInt64(cells) + int64(rows)*int64(cols),
			Budget:     budget,
		}
	}

	if o.Settings.Workers > 1 {
		return o.gridScanParallel(sheet, or, step, rows, cols, cells)
	}

	var best position
	found := false
	for row := 0; row < rows; row++ {
		y := float64(row) * step
		for col := 0; col < cols; col++ {
			x := float64(col) * step
			atomic.AddInt64(cells, 1)
			if overlapsAny(sheet, x, y, or.w, or.h) {
				continue
			}
			if !found || better(y, x, best.y, best.x) {
				best = position{x: x, y: y, rotated: or.rotated}
				found = true
			}
		}
	}
	return best, found, nil
}

// gridScanParallel fans grid rows out to a worker pool. Workers only read
// sheet state; each keeps a local best and the results reduce to the global
// (y, x) minimum, so the outcome matches the serial scan exactly.
func (o *Optimizer) gridScanParallel(sheet *model.Sheet, or orientation, step float64, rows, cols int, cells *int64) (position, bool, error) {
	workers := o.Settings.Workers
	if workers > rows {
		workers = rows
	}

	type rowResult struct {
		pos   position
		found bool
	}
	results := make([]rowResult, workers)

	var wg sync.WaitGroup
	for wid := 0; wid < workers; wid++ {
		wg.Add(1)
		go func(wid int) {
			defer wg.Done()
			var best position
			found := false
			for row := wid; row < rows; row += workers {
				y := float64(row) * step
				for col := 0; col < cols; col++ {
					x := float64(col) * step
					atomic.AddInt64(cells, 1)
					if overlapsAny(sheet, x, y, or.w, or.h) {
						continue
					}
					if !found || better(y, x, best.y, best.x) {
						best = position{x: x, y: y, rotated: or.rotated}
						found = true
					}
				}
			}
			results[wid] = rowResult{pos: best, found: found}
		}(wid)
	}
	wg.Wait()

	var best position
	found := false
	for _, r := range results {
		if !r.found {
			continue
		}
		if !found || better(r.pos.y, r.pos.x, best.y, best.x) {
			best = r.pos
			found = true
		}
	}
	return best, found, nil
}

// gridCount returns how many grid positions fit in [0, limit] at the given
// step, i.e. the count of indices k with k*step <= limit.
func gridCount(limit, step float64) int {
	if limit < 0 {
		return 0
	}
	n := int(limit/step) + 1
	for float64(n)*step <= limit {
		n++
	}
	for n > 1 && float64(n-1)*step > limit {
		n--
	}
	return n
}

func minFloat(values ...float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
