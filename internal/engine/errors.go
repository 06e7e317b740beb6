package engine

import "fmt"

// InputError reports a panel spec that cannot be placed on an empty stock
// sheet in either orientation. The run is aborted before any partial layout
// is produced.
type InputError struct {
	PanelWidth  float64
	PanelHeight float64
	StockWidth  float64
	StockHeight float64
}

func (e *InputError) Error() string {
	return fmt.Sprintf("panel %gx%g is too large for stock sheet %gx%g",
		e.PanelWidth, e.PanelHeight, e.StockWidth, e.StockHeight)
}

// AbortError reports that the fallback grid scan exceeded its iteration
// budget. The grid step shrinks with the smallest panel dimension, so
// pathological inputs can otherwise drive a single search toward an
// unbounded number of candidate cells.
type AbortError struct {
	Iterations int64
	Budget     int64
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("optimization aborted: grid scan exceeded budget of %d iterations", e.Budget)
}
