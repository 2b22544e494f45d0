package engine

import (
	"fmt"

	"github.com/piwi3910/BoxForge/internal/model"
)

// Assembler turns box parameters into a laid-out set of panels.
type Assembler struct {
	Config model.LayoutConfig
}

// New creates an Assembler with the given layout configuration.
func New(cfg model.LayoutConfig) *Assembler {
	return &Assembler{Config: cfg}
}

// wallPlan describes one panel before any geometry exists: its nominal
// size, the edge style template in bottom/right/top/left order, which
// mating wall each side joints into, and the layout row it lands on.
type wallPlan struct {
	label    string
	width    float64
	height   float64
	template string
	mates    [4]bool
	row      int
}

// Generate validates the parameters and produces all panels of the box,
// rebuilt from scratch and laid out in rows. Walls that would joint into
// a wall the box type omits get a plain edge there instead, so an open
// tray has no orphaned sockets along its rim.
func (a *Assembler) Generate(params model.BoxParameters) (model.Box, error) {
	if err := params.Validate(); err != nil {
		return model.Box{}, err
	}

	x, y, h := params.X, params.Y, params.H
	t := params.Thickness
	if params.Outside {
		x -= 2 * t
		y -= 2 * t
		h -= 2 * t
	}

	walls := params.BoxType.Walls()
	plans := make([]wallPlan, 0, 6+params.DividersX+params.DividersY)
	if walls.Front {
		plans = append(plans, wallPlan{"front", x, h, "FFFF",
			[4]bool{walls.Bottom, walls.Right, walls.Top, walls.Left}, 0})
	}
	if walls.Right {
		plans = append(plans, wallPlan{"right", y, h, "FfFf",
			[4]bool{walls.Bottom, walls.Back, walls.Top, walls.Front}, 0})
	}
	if walls.Left {
		plans = append(plans, wallPlan{"left", y, h, "FfFf",
			[4]bool{walls.Bottom, walls.Front, walls.Top, walls.Back}, 0})
	}
	if walls.Back {
		plans = append(plans, wallPlan{"back", x, h, "FFFF",
			[4]bool{walls.Bottom, walls.Left, walls.Top, walls.Right}, 0})
	}
	if walls.Top {
		plans = append(plans, wallPlan{"top", x, y, "ffff",
			[4]bool{walls.Front, walls.Right, walls.Back, walls.Left}, 1})
	}
	if walls.Bottom {
		plans = append(plans, wallPlan{"bottom", x, y, "ffff",
			[4]bool{walls.Front, walls.Right, walls.Back, walls.Left}, 1})
	}
	allMates := [4]bool{true, true, true, true}
	for i := 0; i < params.DividersX; i++ {
		plans = append(plans, wallPlan{fmt.Sprintf("divider-x-%d", i+1), y, h, "FfeF", allMates, 1})
	}
	for i := 0; i < params.DividersY; i++ {
		plans = append(plans, wallPlan{fmt.Sprintf("divider-y-%d", i+1), x, h, "FfeF", allMates, 1})
	}

	spacing := a.Config.Spacing
	panels := make([]model.Panel, 0, len(plans))
	cursorX, rowY, rowH := 0.0, 0.0, 0.0
	currentRow := 0
	for _, plan := range plans {
		if plan.row != currentRow {
			if rowH > 0 {
				rowY += rowH + spacing
			}
			cursorX, rowH = 0, 0
			currentRow = plan.row
		}

		styles, err := ParseEdgeStyles(degrade(plan.template, plan.mates))
		if err != nil {
			return model.Box{}, fmt.Errorf("panel %s: %w", plan.label, err)
		}
		outline := DrawRectangularWall(plan.width, plan.height, styles,
			model.Point2D{}, t, params.Burn, params.FingerJoint)

		min, max := outline.BoundingBox()
		outline = outline.Translate(cursorX-min.X, rowY-min.Y)
		cursorX += (max.X - min.X) + spacing
		if bh := max.Y - min.Y; bh > rowH {
			rowH = bh
		}
		panels = append(panels, model.NewPanel(plan.label, outline))
	}

	if params.OptimizeLayout {
		panels = NewPacker(a.Config).Pack(panels)
	}

	return model.Box{Params: params, Panels: panels}, nil
}

// degrade replaces the template style with a plain edge on every side
// whose mating wall is not part of the box.
func degrade(template string, mates [4]bool) string {
	b := []byte(template)
	for i := range b {
		if !mates[i] {
			b[i] = 'e'
		}
	}
	return string(b)
}
