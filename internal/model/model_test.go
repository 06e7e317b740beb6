package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanelSpec(t *testing.T) {
	spec := NewPanelSpec("Door", 600, 400, 3)

	assert.Len(t, spec.ID, 8)
	assert.Equal(t, "Door", spec.Label)
	assert.Equal(t, 600.0, spec.Width)
	assert.Equal(t, 400.0, spec.Height)
	assert.Equal(t, 3, spec.Quantity)
}

func TestPanelSpec_Sides(t *testing.T) {
	spec := NewPanelSpec("A", 300, 800, 1)

	assert.Equal(t, 800.0, spec.LongSide())
	assert.Equal(t, 300.0, spec.ShortSide())
	assert.Equal(t, 240000.0, spec.Area())
}

func TestPanelSpec_FitsStock(t *testing.T) {
	tests := []struct {
		name   string
		w, h   float64
		sw, sh float64
		want   bool
	}{
		{"fits normally", 500, 300, 1000, 600, true},
		{"fits only rotated", 800, 400, 500, 1000, true},
		{"exact fit", 1000, 600, 1000, 600, true},
		{"exact fit rotated", 600, 1000, 1000, 600, true},
		{"too large both ways", 20, 20, 10, 10, false},
		{"one dimension never fits", 1200, 400, 1000, 1000, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			spec := PanelSpec{Width: tc.w, Height: tc.h, Quantity: 1}
			assert.Equal(t, tc.want, spec.FitsStock(tc.sw, tc.sh))
		})
	}
}

func TestOccupiedRect_Overlaps(t *testing.T) {
	r := OccupiedRect{X: 100, Y: 100, W: 200, H: 150}

	assert.True(t, r.Overlaps(150, 150, 50, 50), "contained rect overlaps")
	assert.True(t, r.Overlaps(250, 200, 200, 200), "partial overlap")
	assert.False(t, r.Overlaps(300, 100, 50, 50), "touching right edge is not overlap")
	assert.False(t, r.Overlaps(100, 250, 200, 50), "touching top edge is not overlap")
	assert.False(t, r.Overlaps(500, 500, 10, 10), "disjoint rects")
}

func TestSheet_Efficiency(t *testing.T) {
	sheet := NewSheet(100, 100)
	sheet.Rects = append(sheet.Rects,
		OccupiedRect{X: 0, Y: 0, W: 50, H: 40},
		OccupiedRect{X: 50, Y: 0, W: 50, H: 40},
	)

	assert.Equal(t, 4000.0, sheet.UsedArea())
	assert.Equal(t, 10000.0, sheet.TotalArea())
	assert.InDelta(t, 40.0, sheet.Efficiency(), 0.001)
}

func TestSheet_EfficiencyZeroArea(t *testing.T) {
	sheet := NewSheet(0, 0)
	assert.Equal(t, 0.0, sheet.Efficiency())
}

func TestCutRequest_Totals(t *testing.T) {
	req := CutRequest{
		StockWidth:  1000,
		StockHeight: 500,
		Panels: []PanelSpec{
			NewPanelSpec("A", 100, 200, 3),
			NewPanelSpec("B", 50, 50, 2),
		},
	}

	assert.Equal(t, 5, req.TotalQuantity())
	assert.Equal(t, 3*100*200.0+2*50*50.0, req.TotalPanelArea())
}

func TestLayout_InstanceLookup(t *testing.T) {
	layout := Layout{
		Instances: []PanelInstance{
			{ID: "aaa", Label: "A"},
			{ID: "bbb", Label: "B"},
		},
	}

	inst, ok := layout.Instance("bbb")
	require.True(t, ok)
	assert.Equal(t, "B", inst.Label)

	_, ok = layout.Instance("zzz")
	assert.False(t, ok)
}

func TestLayout_TotalEfficiency(t *testing.T) {
	s1 := NewSheet(100, 100)
	s1.Rects = append(s1.Rects, OccupiedRect{W: 80, H: 80})
	s2 := NewSheet(100, 100)
	s2.Rects = append(s2.Rects, OccupiedRect{W: 80, H: 80})

	layout := Layout{Sheets: []*Sheet{s1, s2}}

	assert.Equal(t, 2, layout.PlacedCount())
	assert.InDelta(t, 64.0, layout.TotalEfficiency(), 0.001)
	assert.InDelta(t, 36.0, layout.WastePercent(), 0.001)
}

func TestAppConfig_AddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("/tmp/a.json", 3)
	cfg.AddRecentProject("/tmp/b.json", 3)
	cfg.AddRecentProject("/tmp/a.json", 3)

	require.Len(t, cfg.RecentProjects, 2)
	assert.Equal(t, "/tmp/a.json", cfg.RecentProjects[0])
	assert.Equal(t, "/tmp/b.json", cfg.RecentProjects[1])

	cfg.AddRecentProject("/tmp/c.json", 2)
	assert.Equal(t, []string{"/tmp/c.json", "/tmp/a.json"}, cfg.RecentProjects)
}
