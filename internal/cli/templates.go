package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// newTemplatesCmd creates the templates command tree for the box
// template store. A template freezes a full parameter set under a name
// that generate can start from with --template.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage box templates",
		Long: `Manage saved box templates. A template freezes box, joint, laser and
layout settings under a name; generate starts from one with --template.

Examples:
  boxforge templates add "Spice Rack" --width 150 --depth 60 --height 80 --dividers-x 3
  boxforge generate -o rack.svg --template "Spice Rack"`,
	}

	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesShowCmd())
	cmd.AddCommand(newTemplatesAddCmd())
	cmd.AddCommand(newTemplatesRemoveCmd())

	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return err
			}
			if len(store.Templates) == 0 {
				fmt.Fprintln(c.OutOrStdout(), "No templates saved.")
				return nil
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSIZE (MM)\tTYPE\tDESCRIPTION")
			for _, t := range store.Templates {
				fmt.Fprintf(tw, "%s\t%.0fx%.0fx%.0f\t%s\t%s\n",
					t.Name, t.Params.X, t.Params.Y, t.Params.H, t.Params.BoxType, t.Description)
			}
			return tw.Flush()
		},
	}
}

func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a template in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return err
			}
			t := store.FindByName(args[0])
			if t == nil {
				return fmt.Errorf("template %q not found (known: %s)",
					args[0], strings.Join(store.Names(), ", "))
			}
			out := c.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", t.Name)
			if t.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", t.Description)
			}
			fmt.Fprintf(out, "Size:        %.1f x %.1f x %.1f mm", t.Params.X, t.Params.Y, t.Params.H)
			if t.Params.Outside {
				fmt.Fprint(out, " (outer)")
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Type:        %s\n", t.Params.BoxType)
			fmt.Fprintf(out, "Thickness:   %.1f mm, kerf %.2f mm\n", t.Params.Thickness, t.Params.Burn)
			fmt.Fprintf(out, "Joint:       %s, finger %.1ft, space %.1ft, play %.2ft\n",
				t.Params.FingerJoint.Style, t.Params.FingerJoint.Finger,
				t.Params.FingerJoint.Space, t.Params.FingerJoint.Play)
			if t.Params.DividersX > 0 || t.Params.DividersY > 0 {
				fmt.Fprintf(out, "Dividers:    %d x, %d y\n", t.Params.DividersX, t.Params.DividersY)
			}
			fmt.Fprintf(out, "Laser:       %s, feed %.0f mm/min, power %d, %d pass(es)\n",
				t.Laser.GCodeProfile, t.Laser.FeedRate, t.Laser.LaserPower, t.Laser.LaserPasses)
			fmt.Fprintf(out, "Updated:     %s\n", t.UpdatedAt)
			return nil
		},
	}
}

// templatesAddOpts holds the flags for templates add: the shared
// parameter set plus a description.
type templatesAddOpts struct {
	paramFlags
	description string
}

func newTemplatesAddCmd() *cobra.Command {
	opts := templatesAddOpts{paramFlags: newParamFlags()}

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Save box settings as a named template",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runTemplatesAdd(c, &opts, args[0])
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.description, "description", "", "template description")

	return cmd
}

func runTemplatesAdd(cmd *cobra.Command, opts *templatesAddOpts, name string) error {
	logger := loggerFromContext(cmd.Context())

	params, laser, layout, err := opts.build(cmd)
	if err != nil {
		return err
	}

	store, err := project.LoadDefaultTemplates()
	if err != nil {
		return err
	}
	existed := store.FindByName(name) != nil
	store.Upsert(model.NewBoxTemplate(name, opts.description, params, laser, layout))

	if err := project.SaveDefaultTemplates(store); err != nil {
		return err
	}
	if existed {
		logger.Infof("Updated template %q", name)
	} else {
		logger.Infof("Added template %q", name)
	}
	return nil
}

func newTemplatesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			store, err := project.LoadDefaultTemplates()
			if err != nil {
				return err
			}
			t := store.FindByName(args[0])
			if t == nil {
				return fmt.Errorf("template %q not found (known: %s)",
					args[0], strings.Join(store.Names(), ", "))
			}
			store.Remove(t.ID)

			if err := project.SaveDefaultTemplates(store); err != nil {
				return err
			}
			logger.Infof("Removed template %q", args[0])
			return nil
		},
	}
}
