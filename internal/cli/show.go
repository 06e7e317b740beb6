package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/panelworks/cutplan/internal/export"
	"github.com/panelworks/cutplan/internal/project"
)

// showCommand creates the show command for inspecting saved projects.
func (c *CLI) showCommand() *cobra.Command {
	var (
		svgPath string
		pdfPath string
	)

	cmd := &cobra.Command{
		Use:   "show <project.cutplan>",
		Short: "Print the layout stored in a saved project file",
		Long: `Print the layout stored in a saved project file.

The layout computed by 'optimize --out' is loaded and summarized without
re-running the optimizer. The stored layout can also be re-exported as an
SVG or PDF diagram.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(args[0], svgPath, pdfPath)
		},
	}

	cmd.Flags().StringVar(&svgPath, "svg", "", "re-export layout diagram as SVG")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "re-export layout diagram as PDF")

	return cmd
}

func (c *CLI) runShow(path, svgPath, pdfPath string) error {
	p, err := project.Load(path)
	if err != nil {
		return err
	}

	printKeyValue("Project", p.Name)
	if p.Layout == nil {
		printWarning("project has no stored layout; run 'cutplan optimize' with --out to compute one")
		return nil
	}

	printLayoutSummary(*p.Layout)

	if svgPath != "" {
		if err := export.SVGFile(svgPath, *p.Layout); err != nil {
			return fmt.Errorf("write %s: %w", svgPath, err)
		}
		printFile(svgPath)
	}
	if pdfPath != "" {
		if err := export.PDF(pdfPath, *p.Layout); err != nil {
			return fmt.Errorf("write %s: %w", pdfPath, err)
		}
		printFile(pdfPath)
	}

	return nil
}
