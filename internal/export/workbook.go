package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/panelworks/cutplan/internal/model"
)

// Workbook writes the layout as an Excel cut list. The first sheet holds a
// run summary; each stock sheet then gets its own worksheet with one row per
// placed panel.
func Workbook(path string, layout model.Layout) error {
	if len(layout.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, layout); err != nil {
		return err
	}

	for i, sheet := range layout.Sheets {
		if err := writePlacementSheet(f, layout, sheet, i); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, layout model.Layout) error {
	const name = "Summary"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Stock sheet size", fmt.Sprintf("%.0f x %.0f mm", layout.StockWidth, layout.StockHeight)},
		{"Sheets used", len(layout.Sheets)},
		{"Panels placed", layout.PlacedCount()},
		{"Overall efficiency", fmt.Sprintf("%.1f%%", layout.TotalEfficiency())},
		{"Waste", fmt.Sprintf("%.1f%%", layout.WastePercent())},
		{},
		{"Sheet", "Panels", "Used area (mm2)", "Efficiency"},
	}
	for i, sheet := range layout.Sheets {
		rows = append(rows, []interface{}{
			i + 1,
			len(sheet.Rects),
			sheet.UsedArea(),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
		})
	}

	return writeRows(f, name, rows)
}

func writePlacementSheet(f *excelize.File, layout model.Layout, sheet *model.Sheet, index int) error {
	name := fmt.Sprintf("Sheet %d", index+1)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", name, err)
	}

	rows := [][]interface{}{
		{"Panel", "Width", "Height", "X", "Y", "Rotated"},
	}
	for _, r := range sheet.Rects {
		label := r.InstanceID
		if inst, ok := layout.Instance(r.InstanceID); ok && inst.Label != "" {
			label = inst.Label
		}
		rotated := ""
		if r.Rotated {
			rotated = "yes"
		}
		rows = append(rows, []interface{}{label, r.PanelWidth, r.PanelHeight, r.X, r.Y, rotated})
	}

	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheetName string, rows [][]interface{}) error {
	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to compute cell reference: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, val); err != nil {
				return fmt.Errorf("failed to write cell %s!%s: %w", sheetName, cell, err)
			}
		}
	}
	return nil
}
