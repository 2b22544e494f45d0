package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/engine"
	"github.com/piwi3910/BoxForge/internal/gcode"
	"github.com/piwi3910/BoxForge/internal/project"
)

// statsOpts holds the command-line flags for the stats command.
type statsOpts struct {
	paramFlags
	compare bool
}

// newStatsCmd creates the stats command. Without an argument it
// generates a box from the usual flags, emits its G-code in memory and
// reports on that; with a file argument it parses an existing G-code
// file instead and the box flags are ignored.
func newStatsCmd() *cobra.Command {
	opts := statsOpts{paramFlags: newParamFlags()}

	cmd := &cobra.Command{
		Use:   "stats [job.gcode]",
		Short: "Print cut length, rapid length and a job time estimate",
		Long: `Print cut length, rapid travel length and a job time estimate.

Without an argument the command generates a box from the same flags as
generate, emits its G-code in memory, parses it back and reports the
totals. With a G-code file argument it analyzes that file instead; the
box flags are then ignored.

Cut time uses each move's own feed rate. Rapids are estimated at the
usual 3000 mm/min of small gantry machines.

Examples:
  boxforge stats --width 120 --depth 80 --height 50 --passes 2
  boxforge stats --material "Birch Plywood 6mm" --compare
  boxforge stats job.gcode`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runStatsFile(c, args[0])
			}
			return runStatsGenerate(c, &opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.compare, "compare", false, "also compare the layout against what-if alternatives")

	return cmd
}

// runStatsFile parses an existing G-code file and prints its stats.
func runStatsFile(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	moves := gcode.ParseGCode(string(data))
	if len(moves) == 0 {
		return fmt.Errorf("no moves found in %s", path)
	}
	printTravelStats(cmd.OutOrStdout(), gcode.Stats(moves))
	return nil
}

// runStatsGenerate generates a box, emits its G-code in memory and
// prints layout and travel stats.
func runStatsGenerate(cmd *cobra.Command, opts *statsOpts) error {
	logger := loggerFromContext(cmd.Context())

	params, laser, layout, err := opts.build(cmd)
	if err != nil {
		return err
	}

	if _, err := project.LoadAllProfiles(); err != nil {
		logger.Debugf("Custom profiles unavailable: %v", err)
	}

	box, err := engine.New(layout).Generate(params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ls := engine.MeasureLayout(box)
	fmt.Fprintf(out, "Panels:       %d\n", ls.PanelCount)
	fmt.Fprintf(out, "Sheet:        %.1f x %.1f mm (%.1f%% used)\n",
		ls.SheetWidth, ls.SheetHeight, ls.Utilization*100)

	code := gcode.New(laser).Generate("stats", box)
	printTravelStats(out, gcode.Stats(gcode.ParseGCode(code)))

	if opts.compare {
		printComparison(out, engine.CompareScenarios(engine.BuildDefaultScenarios(params, layout)))
	}
	return nil
}

func printTravelStats(w io.Writer, st gcode.TravelStats) {
	fmt.Fprintf(w, "Moves:        %d\n", st.MoveCount)
	fmt.Fprintf(w, "Cut length:   %.1f mm\n", st.CutLength)
	fmt.Fprintf(w, "Rapid length: %.1f mm\n", st.RapidLength)
	fmt.Fprintf(w, "Cut time:     %.1f min\n", st.CutTime)
	fmt.Fprintf(w, "Rapid time:   %.1f min\n", st.RapidTime)
	fmt.Fprintf(w, "Total time:   %.1f min\n", st.TotalTime())
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "SCENARIO\tPANELS\tSHEET (MM)\tUTIL\tCUT (MM)")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\t\t\t\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%.0f x %.0f\t%.1f%%\t%.0f\n",
			r.Scenario.Name, r.Stats.PanelCount, r.Stats.SheetWidth, r.Stats.SheetHeight,
			r.Stats.Utilization*100, r.Stats.CutLength)
	}
	tw.Flush()
}
