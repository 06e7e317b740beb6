package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/panelworks/cutplan/internal/model"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - primary
	colorGreen = lipgloss.Color("35")  // Green - success
	colorAmber = lipgloss.Color("220") // Amber - warnings
	colorRed   = lipgloss.Color("167") // Soft red - errors
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorAmber)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconArrow   = "→"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleWarning.Render(iconWarning) + " " + styleWarning.Render(msg))
}

// printError prints an error message.
func printError(format string, args ...any) {
	fmt.Println(styleError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

// printFile prints a written-file line.
func printFile(path string) {
	fmt.Println("  " + styleDim.Render(iconArrow) + " " + styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Println(keyStyle.Render(key) + " " + styleValue.Render(value))
}

// printLayoutSummary prints the optimization result summary: overall stats
// followed by one line per sheet.
func printLayoutSummary(layout model.Layout) {
	fmt.Println(styleTitle.Render("Cut plan"))
	printKeyValue("Stock sheet", fmt.Sprintf("%g x %g mm", layout.StockWidth, layout.StockHeight))
	printKeyValue("Sheets used", fmt.Sprintf("%d", len(layout.Sheets)))
	printKeyValue("Panels placed", fmt.Sprintf("%d", layout.PlacedCount()))
	printKeyValue("Efficiency", fmt.Sprintf("%.1f%%", layout.TotalEfficiency()))
	printKeyValue("Waste", fmt.Sprintf("%.1f%%", layout.WastePercent()))
	fmt.Println()

	for i, sheet := range layout.Sheets {
		header := fmt.Sprintf("Sheet %d: %d panels, %.1f%% used", i+1, len(sheet.Rects), sheet.Efficiency())
		fmt.Println(styleTitle.Render(header))
		for _, r := range sheet.Rects {
			label := r.InstanceID
			if inst, ok := layout.Instance(r.InstanceID); ok && inst.Label != "" {
				label = inst.Label
			}
			rotated := ""
			if r.Rotated {
				rotated = styleDim.Render(" (rotated)")
			}
			line := fmt.Sprintf("  %-20s %g x %g at (%g, %g)%s",
				truncate(label, 20), r.W, r.H, r.X, r.Y, rotated)
			fmt.Println(line)
		}
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
