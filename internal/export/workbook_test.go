package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/panelworks/cutplan/internal/model"
)

func TestWorkbook_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.xlsx")

	if err := Workbook(path, buildTestLayout()); err != nil {
		t.Fatalf("Workbook returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Summary", "Sheet 1", "Sheet 2"}
	if len(sheets) != len(want) {
		t.Fatalf("got worksheets %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("worksheet[%d] = %q, want %q", i, sheets[i], name)
		}
	}

	// Summary carries the sheet count
	val, err := f.GetCellValue("Summary", "B2")
	if err != nil {
		t.Fatalf("cannot read summary cell: %v", err)
	}
	if val != "2" {
		t.Errorf("sheets used = %q, want 2", val)
	}

	// First placement row on Sheet 1 resolves the instance label
	label, err := f.GetCellValue("Sheet 1", "A2")
	if err != nil {
		t.Fatalf("cannot read placement cell: %v", err)
	}
	if label != "Side Panel" {
		t.Errorf("first placement label = %q, want %q", label, "Side Panel")
	}

	rotated, err := f.GetCellValue("Sheet 1", "F3")
	if err != nil {
		t.Fatalf("cannot read rotated cell: %v", err)
	}
	if rotated != "yes" {
		t.Errorf("rotated marker = %q, want %q", rotated, "yes")
	}
}

func TestWorkbook_EmptyLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.xlsx")

	if err := Workbook(path, model.Layout{}); err == nil {
		t.Fatal("expected error for empty layout, got nil")
	}
}
