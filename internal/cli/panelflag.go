package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/panelworks/cutplan/internal/model"
)

// parsePanelFlag parses a --panel value of the form WxH or WxHxQ, where W and
// H are dimensions in mm and Q is an optional quantity defaulting to 1.
func parsePanelFlag(s string) (model.PanelSpec, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) < 2 || len(parts) > 3 {
		return model.PanelSpec{}, fmt.Errorf("invalid panel %q: expected WxH or WxHxQ", s)
	}

	width, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.PanelSpec{}, fmt.Errorf("invalid panel width in %q: %w", s, err)
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.PanelSpec{}, fmt.Errorf("invalid panel height in %q: %w", s, err)
	}

	qty := 1
	if len(parts) == 3 {
		qty, err = strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return model.PanelSpec{}, fmt.Errorf("invalid panel quantity in %q: %w", s, err)
		}
	}

	if width <= 0 || height <= 0 || qty <= 0 {
		return model.PanelSpec{}, fmt.Errorf("invalid panel %q: dimensions and quantity must be positive", s)
	}

	label := fmt.Sprintf("%gx%g", width, height)
	return model.NewPanelSpec(label, width, height, qty), nil
}
