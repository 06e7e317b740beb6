package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/panelworks/cutplan/internal/engine"
	"github.com/panelworks/cutplan/internal/export"
	"github.com/panelworks/cutplan/internal/importer"
	"github.com/panelworks/cutplan/internal/model"
	"github.com/panelworks/cutplan/internal/project"
)

// optimizeOptions collects the flags of the optimize command.
type optimizeOptions struct {
	stockWidth  float64
	stockHeight float64
	panels      []string
	input       string

	svgPath    string
	pdfPath    string
	dxfPath    string
	labelsPath string
	xlsxPath   string
	outPath    string

	gridBudget int64
	workers    int
}

// optimizeCommand creates the optimize command.
func (c *CLI) optimizeCommand() *cobra.Command {
	opts := optimizeOptions{}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Pack panels onto stock sheets and export the layout",
		Long: `Pack panels onto stock sheets and export the layout.

Panels come from repeated --panel flags (WxH or WxHxQ, in mm) or from an
input file (--input) in CSV, Excel, or DXF format. The resulting layout can
be written as an SVG or PDF diagram, a DXF drawing, an Excel cut list, QR
part labels, and a reloadable project file.

Stock dimensions default to the values in ~/.cutplan/config.json.`,
		Example: `  cutplan optimize --panel 600x400x2 --panel 300x200 --svg plan.svg
  cutplan optimize --input panels.csv --stock-width 2440 --stock-height 1220 --pdf plan.pdf
  cutplan optimize --input panels.xlsx --out kitchen.cutplan`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOptimize(opts)
		},
	}

	cmd.Flags().Float64Var(&opts.stockWidth, "stock-width", 0, "stock sheet width in mm (default from config)")
	cmd.Flags().Float64Var(&opts.stockHeight, "stock-height", 0, "stock sheet height in mm (default from config)")
	cmd.Flags().StringArrayVarP(&opts.panels, "panel", "p", nil, "panel as WxH or WxHxQ in mm (repeatable)")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "panel list file (.csv, .xlsx, .dxf)")

	cmd.Flags().StringVar(&opts.svgPath, "svg", "", "write layout diagram as SVG")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write layout diagram as PDF")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "write layout as DXF drawing")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "write QR part labels as PDF")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write cut list as Excel workbook")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", "", "save project file for later use with 'show'")

	cmd.Flags().Int64Var(&opts.gridBudget, "grid-budget", engine.DefaultSettings().GridBudget, "abort after this many grid cells scanned (0 disables)")
	cmd.Flags().IntVar(&opts.workers, "parallel", 1, "worker goroutines for the grid scan")

	return cmd
}

// runOptimize assembles the request, runs the engine, prints the summary,
// and writes all requested outputs.
func (c *CLI) runOptimize(opts optimizeOptions) error {
	req, err := c.buildRequest(opts)
	if err != nil {
		return err
	}
	if len(req.Panels) == 0 {
		return fmt.Errorf("no panels given: use --panel or --input")
	}

	c.Logger.Debug("optimizing",
		"stock_width", req.StockWidth,
		"stock_height", req.StockHeight,
		"panels", req.TotalQuantity())

	opt := engine.New(engine.Settings{
		GridBudget: opts.gridBudget,
		Workers:    opts.workers,
	})

	layout, err := opt.Optimize(req)
	if err != nil {
		var inputErr *engine.InputError
		var abortErr *engine.AbortError
		switch {
		case errors.As(err, &inputErr):
			printError("%v", inputErr)
		case errors.As(err, &abortErr):
			printError("search aborted: %v", abortErr)
		}
		return err
	}

	printLayoutSummary(layout)
	return c.writeOutputs(opts, req, layout)
}

// buildRequest collects panels from flags and the input file, applying stock
// dimensions from the app config when not given explicitly.
func (c *CLI) buildRequest(opts optimizeOptions) (model.CutRequest, error) {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		c.Logger.Warn("cannot load config, using defaults", "err", err)
		cfg = model.DefaultAppConfig()
	}

	stockW := opts.stockWidth
	if stockW == 0 {
		stockW = cfg.DefaultStockWidth
	}
	stockH := opts.stockHeight
	if stockH == 0 {
		stockH = cfg.DefaultStockHeight
	}

	req := model.CutRequest{StockWidth: stockW, StockHeight: stockH}

	for _, raw := range opts.panels {
		spec, err := parsePanelFlag(raw)
		if err != nil {
			return model.CutRequest{}, err
		}
		req.Panels = append(req.Panels, spec)
	}

	if opts.input != "" {
		result := importFile(opts.input)
		for _, w := range result.Warnings {
			printWarning("%s", w)
		}
		for _, e := range result.Errors {
			printError("%s", e)
		}
		if len(result.Errors) > 0 && len(result.Panels) == 0 {
			return model.CutRequest{}, fmt.Errorf("import of %s failed", opts.input)
		}
		req.Panels = append(req.Panels, result.Panels...)
		c.Logger.Debug("imported panels", "file", opts.input, "count", len(result.Panels))
	}

	return req, nil
}

// importFile dispatches to the right importer based on file extension.
func importFile(path string) importer.ImportResult {
	if strings.EqualFold(filepath.Ext(path), ".dxf") {
		return importer.ImportDXF(path)
	}
	return importer.ImportFile(path)
}

// writeOutputs writes every requested export artifact.
func (c *CLI) writeOutputs(opts optimizeOptions, req model.CutRequest, layout model.Layout) error {
	type output struct {
		path  string
		write func(string) error
	}
	outputs := []output{
		{opts.svgPath, func(p string) error { return export.SVGFile(p, layout) }},
		{opts.pdfPath, func(p string) error { return export.PDF(p, layout) }},
		{opts.dxfPath, func(p string) error { return export.DXF(p, layout) }},
		{opts.labelsPath, func(p string) error { return export.Labels(p, layout) }},
		{opts.xlsxPath, func(p string) error { return export.Workbook(p, layout) }},
	}

	wrote := false
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := out.write(out.path); err != nil {
			return fmt.Errorf("write %s: %w", out.path, err)
		}
		printFile(out.path)
		wrote = true
	}

	if opts.outPath != "" {
		name := strings.TrimSuffix(filepath.Base(opts.outPath), filepath.Ext(opts.outPath))
		p := model.Project{Name: name, Request: req, Layout: &layout}
		if err := project.Save(opts.outPath, p); err != nil {
			return fmt.Errorf("save project: %w", err)
		}
		printFile(opts.outPath)
		wrote = true

		if cfg, err := project.LoadAppConfig(project.DefaultConfigPath()); err == nil {
			cfg.AddRecentProject(opts.outPath, 10)
			if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
				c.Logger.Debug("cannot update recent projects", "err", err)
			}
		}
	}

	if wrote {
		printSuccess("Done")
	}
	return nil
}
