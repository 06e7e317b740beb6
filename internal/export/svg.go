// Package export renders optimized cut layouts to SVG, PDF, DXF and Excel,
// and generates QR-coded part labels.
package export

import (
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo/float"

	"github.com/panelworks/cutplan/internal/model"
)

// sizeKey groups panels of identical placed dimensions so equal panels share
// a fill color.
type sizeKey struct {
	w, h float64
}

// panelPalette holds the fill colors cycled across distinct panel sizes.
var panelPalette = []string{
	"#4caf50", // green
	"#2196f3", // blue
	"#ff9800", // orange
	"#9c27b0", // purple
	"#00bcd4", // cyan
	"#f44336", // red
	"#ffeb3b", // yellow
	"#795548", // brown
}

// SVG layout constants: each sheet is drawn in its own 600x600 cell with the
// efficiency caption above it.
const (
	svgCellSize   = 600.0
	svgCellGap    = 40.0
	svgCaptionH   = 30.0
	svgStrokeMain = "stroke:#000;stroke-width:2;fill:none"
)

// WriteSVG renders every sheet of the layout side by side into w.
func WriteSVG(w io.Writer, layout model.Layout) error {
	if len(layout.Sheets) == 0 {
		return fmt.Errorf("no sheets to render")
	}

	colors := sizeColors(layout)

	n := float64(len(layout.Sheets))
	totalW := n*svgCellSize + (n+1)*svgCellGap
	totalH := svgCellSize + svgCaptionH + 2*svgCellGap

	canvas := svg.New(w)
	canvas.Start(totalW, totalH)

	for i, sheet := range layout.Sheets {
		originX := svgCellGap + float64(i)*(svgCellSize+svgCellGap)
		originY := svgCellGap + svgCaptionH
		renderSheetSVG(canvas, layout, sheet, i, originX, originY, colors)
	}

	canvas.End()
	return nil
}

// SVGFile renders the layout to a file at path.
func SVGFile(path string, layout model.Layout) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := WriteSVG(f, layout); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// renderSheetSVG draws one sheet, its rects and its caption into the canvas
// at the given cell origin.
func renderSheetSVG(canvas *svg.SVG, layout model.Layout, sheet *model.Sheet, index int, originX, originY float64, colors map[sizeKey]string) {
	scale := svgCellSize / sheet.Width
	if s := svgCellSize / sheet.Height; s < scale {
		scale = s
	}
	sheetW := sheet.Width * scale
	sheetH := sheet.Height * scale

	// Caption with the sheet number and efficiency.
	caption := fmt.Sprintf("Sheet %d - Efficiency: %.1f%%", index+1, sheet.Efficiency())
	canvas.Text(originX, originY-10, caption,
		"font-family:sans-serif;font-size:16px;fill:#000")

	// Sheet boundary.
	canvas.Rect(originX, originY, sheetW, sheetH, svgStrokeMain)

	for _, r := range sheet.Rects {
		px := originX + r.X*scale
		py := originY + r.Y*scale
		pw := r.W * scale
		ph := r.H * scale

		fill := colors[sizeKey{r.W, r.H}]
		canvas.Rect(px, py, pw, ph,
			fmt.Sprintf("fill:%s;fill-opacity:0.5;stroke:#333;stroke-width:1", fill))

		// Dashed cut lines along the bottom and left edges of the panel.
		dash := "stroke:#000;stroke-width:1;stroke-dasharray:6,4;stroke-opacity:0.5"
		canvas.Line(px, py, px+pw, py, dash)
		canvas.Line(px, py, px, py+ph, dash)

		// Dimension label, with the rotation marker the shop expects.
		label := fmt.Sprintf("%gx%g", r.W, r.H)
		if r.Rotated {
			label += " R"
		}
		if pw > 60 && ph > 18 {
			canvas.Text(px+pw/2, py+ph/2+4, label,
				"font-family:sans-serif;font-size:12px;fill:#000;text-anchor:middle")
		}
	}
}

// sizeColors assigns one palette color per distinct placed size, in first
// appearance order so output is stable.
func sizeColors(layout model.Layout) map[sizeKey]string {
	colors := make(map[sizeKey]string)
	next := 0
	for _, sheet := range layout.Sheets {
		for _, r := range sheet.Rects {
			key := sizeKey{r.W, r.H}
			if _, seen := colors[key]; !seen {
				colors[key] = panelPalette[next%len(panelPalette)]
				next++
			}
		}
	}
	return colors
}
