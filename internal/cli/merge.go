package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/importer"
	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// mergeOpts holds the command-line flags for the merge command.
type mergeOpts struct {
	paramFlags
	output string
	noBox  bool
}

// newMergeCmd creates the merge command. It imports closed shapes from
// DXF files and packs them onto one sheet together with a generated box,
// so spare parts ride along on the same cut.
func newMergeCmd() *cobra.Command {
	opts := mergeOpts{paramFlags: newParamFlags()}

	cmd := &cobra.Command{
		Use:   "merge <parts.dxf> [more.dxf ...]",
		Short: "Pack imported DXF panels together with a generated box",
		Long: `Import closed shapes from DXF files and pack them onto one sheet
together with a generated box.

Closed LWPOLYLINEs, circles and chains of connected lines and arcs each
become a panel; open chains are closed with a final segment. The box
takes the same flags as generate. With --no-box only the imported panels
are packed, which renests arbitrary DXF parts onto a fresh sheet.

Examples:
  boxforge merge spares.dxf -o combined.svg --width 120 --depth 80
  boxforge merge a.dxf b.dxf -o renested.dxf --no-box --spacing 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runMerge(c, &opts, args)
		},
	}

	opts.register(cmd)

	fl := cmd.Flags()
	fl.StringVarP(&opts.output, "output", "o", "", "output file (.svg, .dxf, .pdf, .gcode, .nc)")
	fl.BoolVar(&opts.noBox, "no-box", false, "pack only the imported panels, skip box generation")

	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runMerge(cmd *cobra.Command, opts *mergeOpts, files []string) error {
	logger := loggerFromContext(cmd.Context())

	params, laser, layout, err := opts.build(cmd)
	if err != nil {
		return err
	}

	if _, err := project.LoadAllProfiles(); err != nil {
		logger.Debugf("Custom profiles unavailable: %v", err)
	}

	prog := newProgress(logger)
	var panels []model.Panel
	if !opts.noBox {
		box, err := engine.New(layout).Generate(params)
		if err != nil {
			return err
		}
		panels = box.Panels
		logger.Debugf("Generated %d box panels", len(box.Panels))
	}

	imported := 0
	for _, path := range files {
		res := importer.ImportDXF(path)
		for _, w := range res.Warnings {
			logger.Debug(w)
		}
		for _, e := range res.Errors {
			logger.Warnf("%s: %s", path, e)
		}
		if len(res.Panels) > 0 {
			logger.Infof("Imported %d panels from %s", len(res.Panels), path)
		}
		panels = append(panels, res.Panels...)
		imported += len(res.Panels)
	}

	if len(panels) == 0 {
		return fmt.Errorf("nothing to pack: no panels imported and box generation disabled")
	}
	if imported == 0 {
		logger.Warn("No panels imported; output contains only the generated box")
	}

	packed := engine.NewPacker(layout).Pack(panels)
	merged := model.Box{Params: params, Panels: packed}

	if err := writeBoxOutput(opts.output, merged, laser); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Packed %d panels (%d imported) onto a %.0fx%.0f mm sheet",
		len(packed), imported, merged.Width(), merged.Height()))
	logger.Infof("Wrote %s", opts.output)
	return nil
}
