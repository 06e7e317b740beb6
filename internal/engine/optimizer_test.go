package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelworks/cutplan/internal/model"
)

func request(stockW, stockH float64, specs ...model.PanelSpec) model.CutRequest {
	return model.CutRequest{StockWidth: stockW, StockHeight: stockH, Panels: specs}
}

func TestOptimize_SinglePanelSingleSheet(t *testing.T) {
	// Stock 1650x2140 with one 1524x1524 panel: one sheet, ~65.8% efficient.
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(1650, 2140, model.NewPanelSpec("Tabletop", 1524, 1524, 1)))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 1)
	require.Len(t, layout.Sheets[0].Rects, 1)

	r := layout.Sheets[0].Rects[0]
	assert.Equal(t, 0.0, r.X)
	assert.Equal(t, 0.0, r.Y)
	assert.Equal(t, 1524.0, r.W)
	assert.Equal(t, 1524.0, r.H)
	assert.False(t, r.Rotated)
	assert.InDelta(t, 65.8, layout.Sheets[0].Efficiency(), 0.1)
}

func TestOptimize_SecondPanelOpensNewSheet(t *testing.T) {
	// Two 80x80 panels on 100x100 stock: 80+80 exceeds the sheet on both
	// axes, so the second panel must open a new sheet.
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(100, 100, model.NewPanelSpec("Square", 80, 80, 2)))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 2)
	for _, sheet := range layout.Sheets {
		require.Len(t, sheet.Rects, 1)
		assert.InDelta(t, 64.0, sheet.Efficiency(), 0.001)
	}
}

func TestOptimize_FourPanelsShelfPack(t *testing.T) {
	// Four 50x40 panels tile a 100x100 sheet as two shelves: 80% efficient.
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(100, 100, model.NewPanelSpec("Shelf", 50, 40, 4)))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 1)

	sheet := layout.Sheets[0]
	require.Len(t, sheet.Rects, 4)

	wantPositions := []struct{ x, y float64 }{
		{0, 0}, {50, 0}, {0, 40}, {50, 40},
	}
	for i, want := range wantPositions {
		assert.Equal(t, want.x, sheet.Rects[i].X, "rect %d x", i)
		assert.Equal(t, want.y, sheet.Rects[i].Y, "rect %d y", i)
		assert.False(t, sheet.Rects[i].Rotated, "rect %d rotation", i)
	}

	assert.Equal(t, 8000.0, sheet.UsedArea())
	assert.InDelta(t, 80.0, sheet.Efficiency(), 0.001)
}

func TestOptimize_OversizedPanelFailsFast(t *testing.T) {
	// 20x20 panel on 10x10 stock: InputError and no sheets.
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(10, 10, model.NewPanelSpec("Huge", 20, 20, 1)))

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Empty(t, layout.Sheets, "no partial layout on failure")
}

func TestOptimize_RotationFlagSwapsDimensions(t *testing.T) {
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(500, 1000, model.NewPanelSpec("Tall", 800, 400, 1)))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 1)

	r := layout.Sheets[0].Rects[0]
	require.True(t, r.Rotated)
	assert.Equal(t, 400.0, r.W, "placed width is the panel height")
	assert.Equal(t, 800.0, r.H, "placed height is the panel width")
	assert.Equal(t, 800.0, r.PanelWidth)
	assert.Equal(t, 400.0, r.PanelHeight)
}

func TestOptimize_InstancesMirrorPlacements(t *testing.T) {
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(100, 100, model.NewPanelSpec("Shelf", 50, 40, 4)))

	require.NoError(t, err)
	require.Len(t, layout.Instances, 4)

	for _, inst := range layout.Instances {
		require.True(t, inst.Placed)
		assert.Equal(t, 0, inst.SheetIndex)
	}

	// Every rect's back-reference resolves, and agrees with the instance.
	for si, sheet := range layout.Sheets {
		for _, r := range sheet.Rects {
			inst, ok := layout.Instance(r.InstanceID)
			require.True(t, ok, "dangling instance reference %q", r.InstanceID)
			assert.Equal(t, si, inst.SheetIndex)
			assert.Equal(t, r.X, inst.X)
			assert.Equal(t, r.Y, inst.Y)
			assert.Equal(t, r.Rotated, inst.Rotated)
		}
	}
}

func TestOptimize_FirstFitPrefersEarlierSheets(t *testing.T) {
	// The two big panels force two sheets; the small panel then lands on
	// sheet 0, the first one with room, not the emptier sheet 1.
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(100, 100,
		model.NewPanelSpec("Big", 90, 60, 2),
		model.NewPanelSpec("Small", 20, 20, 1),
	))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 2)
	assert.Len(t, layout.Sheets[0].Rects, 2, "small panel joins the first sheet")
	assert.Len(t, layout.Sheets[1].Rects, 1)
}

func TestOptimize_EmptyRequestYieldsOneEmptySheet(t *testing.T) {
	opt := New(DefaultSettings())

	layout, err := opt.Optimize(request(100, 100))

	require.NoError(t, err)
	require.Len(t, layout.Sheets, 1)
	assert.Empty(t, layout.Sheets[0].Rects)
	assert.Equal(t, 0.0, layout.Sheets[0].Efficiency())
}

func TestOptimize_MixedPanelsInvariants(t *testing.T) {
	opt := New(DefaultSettings())
	req := request(1650, 2140,
		model.NewPanelSpec("Door", 600, 400, 2),
		model.NewPanelSpec("Side", 500, 300, 3),
		model.NewPanelSpec("Back", 800, 600, 1),
		model.NewPanelSpec("Strip", 1600, 120, 2),
	)

	layout, err := opt.Optimize(req)
	require.NoError(t, err)

	// Conservation: placed rects equal requested quantities.
	assert.Equal(t, req.TotalQuantity(), layout.PlacedCount())

	for si, sheet := range layout.Sheets {
		// Containment.
		for _, r := range sheet.Rects {
			assert.GreaterOrEqual(t, r.X, 0.0)
			assert.GreaterOrEqual(t, r.Y, 0.0)
			assert.LessOrEqual(t, r.X+r.W, sheet.Width, "sheet %d rect exceeds width", si)
			assert.LessOrEqual(t, r.Y+r.H, sheet.Height, "sheet %d rect exceeds height", si)
		}

		// Pairwise non-overlap: interiors disjoint, edge contact allowed.
		for i := 0; i < len(sheet.Rects); i++ {
			for j := i + 1; j < len(sheet.Rects); j++ {
				a, b := sheet.Rects[i], sheet.Rects[j]
				assert.False(t, a.Overlaps(b.X, b.Y, b.W, b.H),
					"sheet %d rects %d and %d overlap", si, i, j)
			}
		}

		// Efficiency identity.
		eff := sheet.Efficiency()
		assert.InDelta(t, 100.0*sheet.UsedArea()/sheet.TotalArea(), eff, 1e-9)
		assert.GreaterOrEqual(t, eff, 0.0)
		assert.LessOrEqual(t, eff, 100.0)
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	req := request(1650, 2140,
		model.NewPanelSpec("Door", 600, 400, 2),
		model.NewPanelSpec("Side", 500, 300, 3),
		model.NewPanelSpec("Back", 800, 600, 1),
	)

	first, err := New(DefaultSettings()).Optimize(req)
	require.NoError(t, err)
	second, err := New(DefaultSettings()).Optimize(req)
	require.NoError(t, err)

	require.Len(t, second.Sheets, len(first.Sheets))
	for si := range first.Sheets {
		a, b := first.Sheets[si], second.Sheets[si]
		require.Len(t, b.Rects, len(a.Rects), "sheet %d rect count", si)
		for ri := range a.Rects {
			assert.Equal(t, a.Rects[ri].X, b.Rects[ri].X)
			assert.Equal(t, a.Rects[ri].Y, b.Rects[ri].Y)
			assert.Equal(t, a.Rects[ri].W, b.Rects[ri].W)
			assert.Equal(t, a.Rects[ri].H, b.Rects[ri].H)
			assert.Equal(t, a.Rects[ri].Rotated, b.Rects[ri].Rotated)
		}
	}
}

func TestOptimize_ParallelMatchesSerial(t *testing.T) {
	req := request(1650, 2140,
		model.NewPanelSpec("Door", 600, 400, 2),
		model.NewPanelSpec("Side", 500, 300, 3),
		model.NewPanelSpec("Back", 800, 600, 1),
	)

	serial, err := New(DefaultSettings()).Optimize(req)
	require.NoError(t, err)

	settings := DefaultSettings()
	settings.Workers = 4
	parallel, err := New(settings).Optimize(req)
	require.NoError(t, err)

	require.Len(t, parallel.Sheets, len(serial.Sheets))
	for si := range serial.Sheets {
		require.Equal(t, len(serial.Sheets[si].Rects), len(parallel.Sheets[si].Rects))
		for ri := range serial.Sheets[si].Rects {
			a, b := serial.Sheets[si].Rects[ri], parallel.Sheets[si].Rects[ri]
			assert.Equal(t, a.X, b.X)
			assert.Equal(t, a.Y, b.Y)
		}
	}
}

func TestOptimize_GridBudgetAbortsRun(t *testing.T) {
	// The second 80x80 panel cannot share sheet 1, so its search falls
	// through to the grid scan, which the tiny budget rejects.
	settings := DefaultSettings()
	settings.GridBudget = 10
	opt := New(settings)

	layout, err := opt.Optimize(request(100, 100, model.NewPanelSpec("Square", 80, 80, 2)))

	var abortErr *AbortError
	require.ErrorAs(t, err, &abortErr)
	assert.Empty(t, layout.Sheets, "no partial layout on abort")
}
