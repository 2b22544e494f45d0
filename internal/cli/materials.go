package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// newMaterialsCmd creates the materials command tree for the material
// preset store. The store is seeded with common stock on first use.
func newMaterialsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage material presets",
		Long: `Manage the material presets that bundle thickness, kerf and laser
settings per stock. The store is seeded with common plywood, MDF and
acrylic entries on first use; generate and batch select presets with
--material.`,
	}

	cmd.AddCommand(newMaterialsListCmd())
	cmd.AddCommand(newMaterialsShowCmd())
	cmd.AddCommand(newMaterialsAddCmd())
	cmd.AddCommand(newMaterialsRemoveCmd())
	cmd.AddCommand(newMaterialsImportCmd())
	cmd.AddCommand(newMaterialsExportCmd())

	return cmd
}

func newMaterialsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List material presets",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			materials, _, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTHICKNESS\tKERF\tFEED\tPOWER\tPASSES")
			for _, m := range materials {
				fmt.Fprintf(tw, "%s\t%.1f mm\t%.2f mm\t%.0f\t%d\t%d\n",
					m.Name, m.Thickness, m.Burn, m.FeedRate, m.LaserPower, m.LaserPasses)
			}
			return tw.Flush()
		},
	}
}

func newMaterialsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a material preset in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			materials, _, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			m := project.FindMaterialByName(materials, args[0])
			if m == nil {
				return fmt.Errorf("material %q not found (known: %s)",
					args[0], strings.Join(project.MaterialNames(materials), ", "))
			}
			out := c.OutOrStdout()
			fmt.Fprintf(out, "Name:      %s\n", m.Name)
			fmt.Fprintf(out, "Thickness: %.1f mm\n", m.Thickness)
			fmt.Fprintf(out, "Kerf:      %.2f mm\n", m.Burn)
			fmt.Fprintf(out, "Feed rate: %.0f mm/min\n", m.FeedRate)
			fmt.Fprintf(out, "Power:     %d\n", m.LaserPower)
			fmt.Fprintf(out, "Passes:    %d\n", m.LaserPasses)
			if m.Notes != "" {
				fmt.Fprintf(out, "Notes:     %s\n", m.Notes)
			}
			return nil
		},
	}
}

func newMaterialsAddCmd() *cobra.Command {
	var (
		thickness float64
		burn      float64
		feed      float64
		power     int
		passes    int
		notes     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a material preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			materials, path, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			if project.FindMaterialByName(materials, args[0]) != nil {
				return fmt.Errorf("material %q already exists", args[0])
			}

			m := model.NewMaterialPreset(args[0], thickness, burn, feed, power, passes)
			m.Notes = notes
			materials = append(materials, m)

			if err := project.SaveMaterials(path, materials); err != nil {
				return err
			}
			logger.Infof("Added material %q (%.1f mm)", m.Name, m.Thickness)
			return nil
		},
	}

	fl := cmd.Flags()
	fl.Float64Var(&thickness, "thickness", 3.0, "material thickness in mm")
	fl.Float64Var(&burn, "burn", 0.1, "kerf in mm")
	fl.Float64Var(&feed, "feed", 600, "cutting feed rate in mm/min")
	fl.IntVar(&power, "power", 800, "laser power S value")
	fl.IntVar(&passes, "passes", 1, "cutting passes")
	fl.StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newMaterialsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a material preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			materials, path, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			kept := make([]model.MaterialPreset, 0, len(materials))
			removed := false
			for _, m := range materials {
				if m.Name == args[0] {
					removed = true
					continue
				}
				kept = append(kept, m)
			}
			if !removed {
				return fmt.Errorf("material %q not found (known: %s)",
					args[0], strings.Join(project.MaterialNames(materials), ", "))
			}
			if err := project.SaveMaterials(path, kept); err != nil {
				return err
			}
			logger.Infof("Removed material %q", args[0])
			return nil
		},
	}
}

func newMaterialsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <materials.json>",
		Short: "Merge material presets from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			materials, path, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			merged, err := project.ImportMaterials(args[0], materials)
			if err != nil {
				return err
			}
			if err := project.SaveMaterials(path, merged); err != nil {
				return err
			}
			logger.Infof("Imported %d new materials from %s", len(merged)-len(materials), args[0])
			return nil
		},
	}
}

func newMaterialsExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <materials.json>",
		Short: "Export all material presets to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			materials, _, err := project.LoadOrCreateMaterials()
			if err != nil {
				return err
			}
			if err := project.ExportMaterials(args[0], materials); err != nil {
				return err
			}
			logger.Infof("Exported %d materials to %s", len(materials), args[0])
			return nil
		},
	}
}
