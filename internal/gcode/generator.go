package gcode

import (
	"fmt"
	"strings"

	"github.com/piwi3910/BoxForge/internal/model"
)

// Generator produces laser GCode from a generated box layout.
type Generator struct {
	Laser   model.LaserSettings
	profile model.GCodeProfile
}

func New(laser model.LaserSettings) *Generator {
	return &Generator{
		Laser:   laser,
		profile: model.GetProfile(laser.GCodeProfile),
	}
}

// Generate produces GCode cutting every panel of the box, in layout
// coordinates, with the program name in the header comment block.
func (g *Generator) Generate(name string, box model.Box) string {
	var b strings.Builder

	g.writeHeader(&b, name, box)

	for i, panel := range box.Panels {
		g.writePanel(&b, panel, i+1)
	}

	g.writeFooter(&b)
	return b.String()
}

// GeneratePanels produces GCode for a bare panel list, e.g. one nested
// sheet of a larger job.
func (g *Generator) GeneratePanels(name string, panels []model.Panel) string {
	return g.Generate(name, model.Box{Panels: panels})
}

func (g *Generator) writeHeader(b *strings.Builder, name string, box model.Box) {
	p := g.profile

	b.WriteString(g.comment("BoxForge GCode - " + name))
	if params := box.Params; params.X > 0 {
		b.WriteString(g.comment(fmt.Sprintf("Box: %.1f x %.1f x %.1f mm, stock %.1f mm",
			params.X, params.Y, params.H, params.Thickness)))
	}
	b.WriteString(g.comment(fmt.Sprintf("Panels: %d, layout %.1f x %.1f mm",
		len(box.Panels), box.Width(), box.Height())))
	b.WriteString(g.comment(fmt.Sprintf("Feed: %.0f mm/min, Power: S%d, Passes: %d",
		g.Laser.FeedRate, g.Laser.LaserPower, g.passes())))
	b.WriteString(g.comment("Profile: " + p.Name))
	b.WriteString("\n")

	for _, code := range p.StartCode {
		b.WriteString(code + "\n")
	}
	if g.Laser.HomeFirst && p.HomeAll != "" {
		b.WriteString(p.HomeAll + "\n")
	}

	b.WriteString("\n")
}

func (g *Generator) writeFooter(b *strings.Builder) {
	p := g.profile

	b.WriteString("\n")
	b.WriteString(g.comment("=== Job complete ==="))

	for _, code := range p.EndCode {
		b.WriteString(code + "\n")
	}
}

// writePanel cuts one panel outline: rapid to the first vertex, laser
// on, feed through every vertex, laser off. Outlines are closed, so
// repeat passes chain without repositioning and the beam stays on
// between passes of the same panel.
func (g *Generator) writePanel(b *strings.Builder, panel model.Panel, num int) {
	outline := panel.Outline
	if len(outline) < 3 {
		b.WriteString(g.comment(fmt.Sprintf(
			"WARNING: panel %q has no cuttable outline, skipping", panel.Label)))
		return
	}

	b.WriteString(g.comment(fmt.Sprintf("--- Panel %d: %s (%.1f x %.1f mm) ---",
		num, panel.Label, outline.Width(), outline.Height())))

	b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.RapidMove,
		g.format(outline[0].X), g.format(outline[0].Y)))
	if g.profile.LaserOn != "" {
		b.WriteString(fmt.Sprintf(g.profile.LaserOn+"\n", g.Laser.LaserPower))
	}

	passes := g.passes()
	for pass := 1; pass <= passes; pass++ {
		if passes > 1 {
			b.WriteString(g.comment(fmt.Sprintf("Pass %d/%d", pass, passes)))
		}

		for i := 1; i < len(outline); i++ {
			if i == 1 && pass == 1 {
				b.WriteString(fmt.Sprintf("%s X%s Y%s F%s\n", g.profile.FeedMove,
					g.format(outline[i].X), g.format(outline[i].Y),
					g.format(g.Laser.FeedRate)))
				continue
			}
			b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.FeedMove,
				g.format(outline[i].X), g.format(outline[i].Y)))
		}
		// Imported outlines may arrive open; close them so the part
		// actually drops out and the next pass starts at the right spot.
		if !outline.IsClosed(0.01) {
			b.WriteString(fmt.Sprintf("%s X%s Y%s\n", g.profile.FeedMove,
				g.format(outline[0].X), g.format(outline[0].Y)))
		}
	}

	if g.profile.LaserOff != "" {
		b.WriteString(g.profile.LaserOff + "\n")
	}
	b.WriteString("\n")
}

func (g *Generator) passes() int {
	if g.Laser.LaserPasses < 1 {
		return 1
	}
	return g.Laser.LaserPasses
}

// comment wraps text in the profile's comment syntax.
func (g *Generator) comment(text string) string {
	return g.profile.CommentPrefix + " " + text + g.profile.CommentSuffix + "\n"
}

// format formats a coordinate according to the profile's decimal places.
func (g *Generator) format(v float64) string {
	format := fmt.Sprintf("%%.%df", g.profile.DecimalPlaces)
	return fmt.Sprintf(format, v)
}
