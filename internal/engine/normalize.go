package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/panelworks/cutplan/internal/model"
)

// ValidateRequest rejects a request before allocation starts. A spec is
// unplaceable exactly when it fits an empty stock sheet in neither
// orientation; that case yields *InputError. Non-positive dimensions or
// quantities are plain input mistakes and fail with a descriptive error.
func ValidateRequest(req model.CutRequest) error {
	if req.StockWidth <= 0 || req.StockHeight <= 0 {
		return fmt.Errorf("stock sheet dimensions must be positive, got %gx%g",
			req.StockWidth, req.StockHeight)
	}
	for _, spec := range req.Panels {
		if spec.Width <= 0 || spec.Height <= 0 || spec.Quantity < 1 {
			return fmt.Errorf("panel %q: width, height and quantity must be positive",
				spec.Label)
		}
		if !spec.FitsStock(req.StockWidth, req.StockHeight) {
			return &InputError{
				PanelWidth:  spec.Width,
				PanelHeight: spec.Height,
				StockWidth:  req.StockWidth,
				StockHeight: req.StockHeight,
			}
		}
	}
	return nil
}

// Normalize expands specs into one instance per requested copy and orders
// them by placement priority: longer dimension first, then area, then
// shorter dimension, all descending. The sort is stable, so ties keep the
// original input order.
func Normalize(specs []model.PanelSpec) []model.PanelInstance {
	var instances []model.PanelInstance
	for _, spec := range specs {
		for i := 0; i < spec.Quantity; i++ {
			instances = append(instances, model.PanelInstance{
				ID:     uuid.New().String()[:8],
				SpecID: spec.ID,
				Label:  spec.Label,
				Width:  spec.Width,
				Height: spec.Height,
			})
		}
	}

	sort.SliceStable(instances, func(i, j int) bool {
		a, b := instances[i], instances[j]
		al, bl := longSide(a), longSide(b)
		if al != bl {
			return al > bl
		}
		aa, ba := a.Width*a.Height, b.Width*b.Height
		if aa != ba {
			return aa > ba
		}
		return shortSide(a) > shortSide(b)
	})

	return instances
}

func longSide(p model.PanelInstance) float64 {
	if p.Width > p.Height {
		return p.Width
	}
	return p.Height
}

func shortSide(p model.PanelInstance) float64 {
	if p.Width < p.Height {
		return p.Width
	}
	return p.Height
}
