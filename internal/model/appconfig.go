package model

// AppConfig holds user-level application preferences persisted between runs.
type AppConfig struct {
	DefaultStockWidth  float64  `json:"default_stock_width"`  // mm
	DefaultStockHeight float64  `json:"default_stock_height"` // mm
	RecentProjects     []string `json:"recent_projects"`
}

// DefaultAppConfig returns the configuration used on first run. The default
// stock size matches a common laminate sheet.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStockWidth:  1650.0,
		DefaultStockHeight: 2140.0,
		RecentProjects:     []string{},
	}
}

// AddRecentProject prepends a path to the recent list, de-duplicating and
// keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	updated := []string{path}
	for _, p := range c.RecentProjects {
		if p != path && len(updated) < max {
			updated = append(updated, p)
		}
	}
	c.RecentProjects = updated
}
