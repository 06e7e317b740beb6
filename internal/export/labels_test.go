package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/panelworks/cutplan/internal/model"
)

func TestLabels_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := Labels(path, buildTestLayout()); err != nil {
		t.Fatalf("Labels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("label PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("label PDF is empty")
	}
}

func TestLabels_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	if err := Labels(path, model.Layout{}); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	layout := buildTestLayout()
	labels := CollectLabelInfos(layout)

	if len(labels) != 4 {
		t.Fatalf("got %d labels, want 4", len(labels))
	}

	first := labels[0]
	if first.PanelLabel != "Side Panel" {
		t.Errorf("first label = %q, want %q", first.PanelLabel, "Side Panel")
	}
	if first.SheetIndex != 1 {
		t.Errorf("first label sheet = %d, want 1", first.SheetIndex)
	}
	if first.Width != 600 || first.Height != 400 {
		t.Errorf("first label dims = %gx%g, want 600x400", first.Width, first.Height)
	}

	last := labels[3]
	if last.PanelLabel != "Back Panel" {
		t.Errorf("last label = %q, want %q", last.PanelLabel, "Back Panel")
	}
	if last.SheetIndex != 2 {
		t.Errorf("last label sheet = %d, want 2", last.SheetIndex)
	}
}

func TestCollectLabelInfos_UnknownInstanceFallsBackToID(t *testing.T) {
	layout := model.Layout{
		Sheets: []*model.Sheet{
			{
				Width: 100, Height: 100,
				Rects: []model.OccupiedRect{
					{X: 0, Y: 0, W: 50, H: 50, InstanceID: "orphan", PanelWidth: 50, PanelHeight: 50},
				},
			},
		},
	}

	labels := CollectLabelInfos(layout)
	if len(labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(labels))
	}
	if labels[0].PanelLabel != "orphan" {
		t.Errorf("label = %q, want instance ID fallback", labels[0].PanelLabel)
	}
}

func TestLabels_ManyPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_labels.pdf")

	// More labels than fit on a single page
	sheet := &model.Sheet{Width: 3000, Height: 3000}
	layout := model.Layout{StockWidth: 3000, StockHeight: 3000, Sheets: []*model.Sheet{sheet}}
	for i := 0; i < 35; i++ {
		sheet.Rects = append(sheet.Rects, model.OccupiedRect{
			X: float64((i % 6) * 500), Y: float64((i / 6) * 500),
			W: 400, H: 400, InstanceID: "x", PanelWidth: 400, PanelHeight: 400,
		})
	}

	if err := Labels(path, layout); err != nil {
		t.Fatalf("Labels returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("label PDF was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("label PDF is empty")
	}
}
