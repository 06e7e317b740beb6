package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/panelworks/cutplan/internal/model"
)

// dxfSheetGap is the horizontal spacing between sheets in the exported
// drawing, in the same units as the layout.
const dxfSheetGap = 100.0

// DXF writes the layout as a DXF drawing for CAD and CNC toolchains. Each
// sheet gets its own layer with the sheet boundary and every placed panel
// drawn as line loops. Sheets are laid out side by side along the X axis.
func DXF(path string, layout model.Layout) error {
	if len(layout.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()

	offsetX := 0.0
	for i, sheet := range layout.Sheets {
		layerName := fmt.Sprintf("SHEET_%d", i+1)
		if _, err := d.AddLayer(layerName, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", layerName, err)
		}

		drawRect(d, offsetX, 0, sheet.Width, sheet.Height)
		for _, r := range sheet.Rects {
			drawRect(d, offsetX+r.X, r.Y, r.W, r.H)
		}

		offsetX += sheet.Width + dxfSheetGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF file: %w", err)
	}
	return nil
}

// drawRect draws an axis-aligned rectangle as four line entities on the
// current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
