package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// newProfilesCmd creates the profiles command tree for the G-code
// dialect store. Built-in profiles can be listed, shown and exported;
// only custom ones can be added or removed.
func newProfilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage G-code dialect profiles",
		Long: `Manage the G-code dialect profiles used when writing machine code.

Grbl, Grbl-M3, Marlin and Generic are built in. Custom profiles live in
the user profile store as JSON and are merged over the built-ins; a
custom profile cannot take a built-in name.`,
	}

	cmd.AddCommand(newProfilesListCmd())
	cmd.AddCommand(newProfilesShowCmd())
	cmd.AddCommand(newProfilesAddCmd())
	cmd.AddCommand(newProfilesRemoveCmd())
	cmd.AddCommand(newProfilesExportCmd())

	return cmd
}

func newProfilesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom G-code profiles",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			profiles, err := project.LoadAllProfiles()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tUNITS\tLASER ON\tDESCRIPTION")
			for _, p := range profiles {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					p.Name, profileKind(p), p.Units, p.LaserOn, p.Description)
			}
			return tw.Flush()
		},
	}
}

func newProfilesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a G-code profile in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			p, err := findProfile(args[0])
			if err != nil {
				return err
			}
			printProfile(c.OutOrStdout(), *p)
			return nil
		},
	}
}

func newProfilesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <profile.json>",
		Short: "Add a custom profile from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			prof, err := project.ImportProfile(args[0])
			if err != nil {
				return err
			}
			for _, b := range model.GCodeProfiles {
				if strings.EqualFold(b.Name, prof.Name) {
					return fmt.Errorf("%q is a built-in profile name", prof.Name)
				}
			}

			customs, err := project.LoadCustomProfilesFromDefault()
			if err != nil {
				return err
			}
			replaced := false
			for i := range customs {
				if customs[i].Name == prof.Name {
					customs[i] = prof
					replaced = true
					break
				}
			}
			if !replaced {
				customs = append(customs, prof)
			}
			if err := project.SaveCustomProfilesToDefault(customs); err != nil {
				return err
			}

			if replaced {
				logger.Infof("Replaced custom profile %q", prof.Name)
			} else {
				logger.Infof("Added custom profile %q", prof.Name)
			}
			return nil
		},
	}
}

func newProfilesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a custom profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			customs, err := project.LoadCustomProfilesFromDefault()
			if err != nil {
				return err
			}
			kept := make([]model.GCodeProfile, 0, len(customs))
			removed := false
			for _, p := range customs {
				if p.Name == args[0] {
					removed = true
					continue
				}
				kept = append(kept, p)
			}
			if !removed {
				return fmt.Errorf("custom profile %q not found", args[0])
			}
			if err := project.SaveCustomProfilesToDefault(kept); err != nil {
				return err
			}
			logger.Infof("Removed custom profile %q", args[0])
			return nil
		},
	}
}

func newProfilesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a profile to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			logger := loggerFromContext(c.Context())

			p, err := findProfile(args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = safeFileName(p.Name) + ".json"
			}
			if err := project.ExportProfile(output, *p); err != nil {
				return err
			}
			logger.Infof("Exported profile %q to %s", p.Name, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <name>.json)")

	return cmd
}

// findProfile loads the profile store and returns the named profile,
// matched case-insensitively.
func findProfile(name string) (*model.GCodeProfile, error) {
	profiles, err := project.LoadAllProfiles()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if strings.EqualFold(profiles[i].Name, name) {
			return &profiles[i], nil
		}
	}
	return nil, fmt.Errorf("profile %q not found (known: %s)",
		name, strings.Join(model.GetProfileNames(), ", "))
}

func profileKind(p model.GCodeProfile) string {
	if p.IsBuiltIn {
		return "built-in"
	}
	return "custom"
}

func printProfile(w io.Writer, p model.GCodeProfile) {
	fmt.Fprintf(w, "Name:        %s (%s)\n", p.Name, profileKind(p))
	fmt.Fprintf(w, "Description: %s\n", p.Description)
	fmt.Fprintf(w, "Units:       %s\n", p.Units)
	fmt.Fprintf(w, "Start code:  %s\n", strings.Join(p.StartCode, " | "))
	fmt.Fprintf(w, "Laser on:    %s\n", p.LaserOn)
	fmt.Fprintf(w, "Laser off:   %s\n", p.LaserOff)
	fmt.Fprintf(w, "Home:        %s\n", p.HomeAll)
	fmt.Fprintf(w, "Moves:       rapid %s, feed %s\n", p.RapidMove, p.FeedMove)
	fmt.Fprintf(w, "End code:    %s\n", strings.Join(p.EndCode, " | "))
	fmt.Fprintf(w, "Comments:    %q %q\n", p.CommentPrefix, p.CommentSuffix)
	fmt.Fprintf(w, "Decimals:    %d (leading zeros: %v)\n", p.DecimalPlaces, p.LeadingZeros)
}
