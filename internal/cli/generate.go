package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/export"
	"github.com/piwi3910/BoxForge/internal/gcode"
	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	paramFlags
	output  string
	nest    bool
	verify  bool
	labels  string
	cutlist string
}

// newGenerateCmd creates the generate command. The output format is
// chosen by the file extension of --output: .svg, .dxf, .pdf, or
// .gcode/.nc for machine code.
func newGenerateCmd() *cobra.Command {
	opts := generateOpts{paramFlags: newParamFlags()}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a box layout and write it by output extension",
		Long: `Generate a finger-jointed box layout and write it to a file.

The output format follows the extension of --output: .svg and .dxf for
vector cuts, .pdf for a printable layout with a summary page, .gcode or
.nc for machine code using the selected G-code profile.

Settings are applied in order: stored template (--template), TOML preset
file (--preset), material preset (--material), then explicitly set flags.

Examples:
  boxforge generate -o crate.svg --width 120 --depth 80 --height 50
  boxforge generate -o tray.gcode --type "open top" --material "Birch Plywood 6mm"
  boxforge generate -o box.dxf --preset box.toml --verify
  boxforge generate -o parts.svg --nest --bed-width 300 --bed-height 200`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runGenerate(c, &opts)
		},
	}

	opts.register(cmd)

	fl := cmd.Flags()
	fl.StringVarP(&opts.output, "output", "o", "", "output file (.svg, .dxf, .pdf, .gcode, .nc)")
	fl.BoolVar(&opts.nest, "nest", false, "split panels onto bed-sized sheets, one file per sheet")
	fl.BoolVar(&opts.verify, "verify", false, "check the layout for overlaps and bed fit")
	fl.StringVar(&opts.labels, "labels", "", "also write an assembly label PDF to this path")
	fl.StringVar(&opts.cutlist, "cutlist", "", "also write a cut list workbook (.xlsx) to this path")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	params, laser, layout, err := opts.build(cmd)
	if err != nil {
		return err
	}

	// Custom G-code dialects live in the user profile store; load them
	// so --profile can name one. Built-ins always work without this.
	if _, err := project.LoadAllProfiles(); err != nil {
		logger.Debugf("Custom profiles unavailable: %v", err)
	}

	logger.Debugf("Generating %s %.0fx%.0fx%.0f mm, thickness %.1f mm, burn %.2f mm",
		params.BoxType, params.X, params.Y, params.H, params.Thickness, params.Burn)

	prog := newProgress(logger)
	box, err := engine.New(layout).Generate(params)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated %d panels on a %.0fx%.0f mm sheet",
		len(box.Panels), box.Width(), box.Height()))

	if opts.verify {
		verifyLayout(logger, box, laser)
	}

	if opts.nest {
		if err := writeNestedSheets(logger, box, laser, layout, opts.output); err != nil {
			return err
		}
	} else {
		if err := writeBoxOutput(opts.output, box, laser); err != nil {
			return err
		}
		logger.Infof("Wrote %s", opts.output)
	}

	if opts.labels != "" {
		if err := export.ExportLabelsPDF(opts.labels, box); err != nil {
			return fmt.Errorf("write labels: %w", err)
		}
		logger.Infof("Wrote labels to %s", opts.labels)
	}
	if opts.cutlist != "" {
		if err := export.ExportCutListXLSX(opts.cutlist, box); err != nil {
			return fmt.Errorf("write cut list: %w", err)
		}
		logger.Infof("Wrote cut list to %s", opts.cutlist)
	}

	return nil
}

// verifyLayout logs overlap and bed fit findings for a generated box.
func verifyLayout(logger *log.Logger, box model.Box, laser model.LaserSettings) {
	warnings := engine.FormatOverlapWarnings(engine.FindOverlaps(box.Panels))
	warnings = append(warnings, engine.CheckBedFit(box, laser)...)
	for _, w := range warnings {
		logger.Warn(w)
	}
	if len(warnings) == 0 {
		logger.Info("Layout verified: no overlaps, fits the bed")
	}
}

// writeNestedSheets splits the box panels onto bed-sized sheets and
// writes one output file per sheet, numbered before the extension.
func writeNestedSheets(logger *log.Logger, box model.Box, laser model.LaserSettings, layout model.LayoutConfig, output string) error {
	result := engine.NestSheets(box.Panels, laser, layout)

	for _, p := range result.Unplaced {
		min, max := p.Outline.BoundingBox()
		logger.Warnf("Panel %s (%.0fx%.0f mm) exceeds the %.0fx%.0f mm bed and was not placed",
			p.Label, max.X-min.X, max.Y-min.Y, laser.BedWidth, laser.BedHeight)
	}

	for _, sheet := range result.Sheets {
		sheetBox := model.Box{Params: box.Params, Panels: sheet.Panels}
		path := sheetPath(output, sheet.Index)
		if err := writeBoxOutput(path, sheetBox, laser); err != nil {
			return err
		}
		logger.Infof("Wrote sheet %d (%d panels) to %s", sheet.Index+1, len(sheet.Panels), path)
	}

	return nil
}

// sheetPath numbers an output path per sheet: out.svg -> out-sheet2.svg.
func sheetPath(path string, index int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-sheet%d%s", strings.TrimSuffix(path, ext), index+1, ext)
}

// outputName derives the job name embedded in G-code headers from the
// output file name.
func outputName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeBoxOutput writes the box layout to path in the format chosen by
// the file extension.
func writeBoxOutput(path string, box model.Box, laser model.LaserSettings) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return export.ExportSVG(path, box)
	case ".dxf":
		return export.ExportDXF(path, box)
	case ".pdf":
		return export.ExportPDF(path, box, laser)
	case ".gcode", ".nc", ".gc":
		return project.ExportGCode(path, gcode.New(laser).Generate(outputName(path), box))
	default:
		return fmt.Errorf("unsupported output extension %q (use .svg, .dxf, .pdf, .gcode or .nc)",
			filepath.Ext(path))
	}
}
