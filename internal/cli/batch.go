package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/importer"
	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	outDir   string
	format   string
	sheet    string
	material string
	profile  string
	spacing  float64
}

// newBatchCmd creates the batch command. It reads box specs from a CSV
// or Excel file and either writes one output file per box or packs every
// box onto a single sheet.
func newBatchCmd() *cobra.Command {
	layout := model.DefaultLayoutConfig()
	opts := batchOpts{format: "svg", spacing: layout.Spacing}

	cmd := &cobra.Command{
		Use:   "batch <specs.csv|specs.xlsx>",
		Short: "Generate boxes from a CSV or Excel spec sheet",
		Long: `Generate many boxes from a CSV or Excel spec sheet.

Each row describes one box: name, width (x), depth (y), height (h), and
optionally thickness, quantity and box type. Headers are detected and
matched loosely (x/width/w, qty/count/pcs, ...); without headers the
columns are read in that order. CSV delimiters (comma, semicolon, tab,
pipe) are sniffed automatically.

By default one file per box is written into --out-dir, named after the
row. With --sheet every box is repeated by its quantity and packed onto
a single sheet written to that path.

Examples:
  boxforge batch orders.csv --out-dir cuts --format dxf
  boxforge batch orders.xlsx --sheet sheet.svg --material "Poplar Plywood 3mm"
  boxforge batch orders.csv --sheet job.gcode --profile Marlin`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runBatch(c, &opts, args[0])
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for per-box output files")
	fl.StringVar(&opts.format, "format", opts.format, "per-box output format (svg, dxf, pdf, gcode, nc)")
	fl.StringVar(&opts.sheet, "sheet", "", "pack all boxes onto one sheet written to this path")
	fl.StringVar(&opts.material, "material", "", "material preset for the whole run (overrides row thickness)")
	fl.StringVar(&opts.profile, "profile", "", "G-code dialect profile name")
	fl.Float64Var(&opts.spacing, "spacing", opts.spacing, "gap between panels on the sheet in mm")

	return cmd
}

func runBatch(cmd *cobra.Command, opts *batchOpts, input string) error {
	logger := loggerFromContext(cmd.Context())

	var result importer.BatchResult
	switch strings.ToLower(filepath.Ext(input)) {
	case ".csv":
		result = importer.ImportBatchCSV(input)
	case ".xlsx":
		result = importer.ImportBatchXLSX(input)
	default:
		return fmt.Errorf("unsupported spec file %q (use .csv or .xlsx)", input)
	}

	for _, w := range result.Warnings {
		logger.Debug(w)
	}
	for _, e := range result.Errors {
		logger.Warn(e)
	}
	if len(result.Specs) == 0 {
		return fmt.Errorf("no usable box specs in %s", input)
	}
	logger.Infof("Imported %d box specs from %s", len(result.Specs), input)

	laser := model.DefaultLaserSettings()
	layout := model.DefaultLayoutConfig()
	layout.Spacing = opts.spacing

	var mat *model.MaterialPreset
	if opts.material != "" {
		materials, _, err := project.LoadOrCreateMaterials()
		if err != nil {
			return fmt.Errorf("load materials: %w", err)
		}
		mat = project.FindMaterialByName(materials, opts.material)
		if mat == nil {
			return fmt.Errorf("material %q not found (known: %s)",
				opts.material, strings.Join(project.MaterialNames(materials), ", "))
		}
		mat.ApplyToLaser(&laser)
	}
	if opts.profile != "" {
		laser.GCodeProfile = opts.profile
	}
	if _, err := project.LoadAllProfiles(); err != nil {
		logger.Debugf("Custom profiles unavailable: %v", err)
	}

	if opts.sheet != "" {
		return writeBatchSheet(cmd, opts, result.Specs, mat, laser, layout)
	}
	return writeBatchFiles(cmd, opts, result.Specs, mat, laser, layout)
}

// writeBatchFiles writes one output file per spec into the output
// directory, deduplicating file names across rows.
func writeBatchFiles(cmd *cobra.Command, opts *batchOpts, specs []importer.BatchSpec, mat *model.MaterialPreset, laser model.LaserSettings, layout model.LayoutConfig) error {
	logger := loggerFromContext(cmd.Context())

	ext := "." + strings.TrimPrefix(strings.ToLower(opts.format), ".")
	switch ext {
	case ".svg", ".dxf", ".pdf", ".gcode", ".nc":
	default:
		return fmt.Errorf("unsupported format %q (use svg, dxf, pdf, gcode or nc)", opts.format)
	}

	if err := os.MkdirAll(opts.outDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	prog := newProgress(logger)
	written := 0
	names := make(map[string]int)

	for _, spec := range specs {
		if mat != nil {
			mat.ApplyToParameters(&spec.Params)
		}
		box, err := engine.New(layout).Generate(spec.Params)
		if err != nil {
			logger.Warnf("%s: %v", spec.Name, err)
			continue
		}

		base := safeFileName(spec.Name)
		names[base]++
		if n := names[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		path := filepath.Join(opts.outDir, base+ext)

		if err := writeBoxOutput(path, box, laser); err != nil {
			return err
		}
		if spec.Quantity > 1 {
			logger.Infof("Wrote %s (cut %d times)", path, spec.Quantity)
		} else {
			logger.Infof("Wrote %s", path)
		}
		written++
	}

	if written == 0 {
		return fmt.Errorf("no boxes could be generated")
	}
	prog.done(fmt.Sprintf("Generated %d of %d boxes", written, len(specs)))
	return nil
}

// writeBatchSheet repeats every spec by its quantity, packs all panels
// onto one sheet and writes a single output file.
func writeBatchSheet(cmd *cobra.Command, opts *batchOpts, specs []importer.BatchSpec, mat *model.MaterialPreset, laser model.LaserSettings, layout model.LayoutConfig) error {
	logger := loggerFromContext(cmd.Context())

	prog := newProgress(logger)
	var all []model.Panel
	var params model.BoxParameters
	boxes := 0

	for _, spec := range specs {
		if mat != nil {
			mat.ApplyToParameters(&spec.Params)
		}
		box, err := engine.New(layout).Generate(spec.Params)
		if err != nil {
			logger.Warnf("%s: %v", spec.Name, err)
			continue
		}
		if boxes == 0 {
			params = spec.Params
		}
		for n := 1; n <= spec.Quantity; n++ {
			for _, p := range box.Panels {
				label := fmt.Sprintf("%s/%s", spec.Name, p.Label)
				if spec.Quantity > 1 {
					label = fmt.Sprintf("%s#%d/%s", spec.Name, n, p.Label)
				}
				all = append(all, model.NewPanel(label, p.Outline))
			}
		}
		boxes += spec.Quantity
	}

	if len(all) == 0 {
		return fmt.Errorf("no boxes could be generated")
	}

	packed := engine.NewPacker(layout).Pack(all)
	sheetBox := model.Box{Params: params, Panels: packed}

	if err := writeBoxOutput(opts.sheet, sheetBox, laser); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d boxes (%d panels) onto a %.0fx%.0f mm sheet",
		boxes, len(packed), sheetBox.Width(), sheetBox.Height()))
	logger.Infof("Wrote %s", opts.sheet)
	return nil
}

// safeFileName keeps letters, digits, dashes, underscores and dots,
// replacing everything else so row names become usable file names.
func safeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return b.String()
}
