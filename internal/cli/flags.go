package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/piwi3910/BoxForge/internal/project"
)

// paramFlags holds the box, joint, laser and layout flags shared by the
// generate, merge and stats commands. Values are seeded from the model
// defaults so --help shows the real defaults; the template, preset and
// material sources are applied first and explicitly set flags override
// them.
type paramFlags struct {
	preset   string
	template string
	material string

	width     float64
	depth     float64
	height    float64
	thickness float64
	outside   bool
	boxType   string
	burn      float64

	finger       float64
	space        float64
	surround     float64
	play         float64
	extraLength  float64
	style        string
	dimpleHeight float64
	dimpleLength float64

	dividersX int
	dividersY int
	optimize  bool
	spacing   float64

	feedRate  float64
	power     int
	passes    int
	homeFirst bool
	bedWidth  float64
	bedHeight float64
	profile   string
}

func newParamFlags() paramFlags {
	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	layout := model.DefaultLayoutConfig()
	return paramFlags{
		width:        params.X,
		depth:        params.Y,
		height:       params.H,
		thickness:    params.Thickness,
		boxType:      params.BoxType.String(),
		burn:         params.Burn,
		finger:       params.FingerJoint.Finger,
		space:        params.FingerJoint.Space,
		surround:     params.FingerJoint.SurroundingSpaces,
		play:         params.FingerJoint.Play,
		extraLength:  params.FingerJoint.ExtraLength,
		style:        params.FingerJoint.Style.String(),
		dimpleHeight: params.FingerJoint.DimpleHeight,
		dimpleLength: params.FingerJoint.DimpleLength,
		spacing:      layout.Spacing,
		feedRate:     laser.FeedRate,
		power:        laser.LaserPower,
		passes:       laser.LaserPasses,
		bedWidth:     laser.BedWidth,
		bedHeight:    laser.BedHeight,
		profile:      laser.GCodeProfile,
	}
}

// register adds the shared parameter flags to cmd.
func (o *paramFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()

	fl.StringVar(&o.preset, "preset", "", "TOML preset file with box/joint/laser overrides")
	fl.StringVar(&o.template, "template", "", "start from a stored template by name")
	fl.StringVar(&o.material, "material", "", "material preset name (sets thickness, kerf, feed, power)")

	fl.Float64Var(&o.width, "width", o.width, "box width (x) in mm")
	fl.Float64Var(&o.depth, "depth", o.depth, "box depth (y) in mm")
	fl.Float64Var(&o.height, "height", o.height, "box height (h) in mm")
	fl.Float64Var(&o.thickness, "thickness", o.thickness, "material thickness in mm")
	fl.BoolVar(&o.outside, "outside", false, "treat dimensions as outer measurements")
	fl.StringVar(&o.boxType, "type", o.boxType, "box type (Full Box, Open Top, No Left/Right, No Front/Back)")
	fl.Float64Var(&o.burn, "burn", o.burn, "kerf compensation in mm")

	fl.Float64Var(&o.finger, "finger", o.finger, "finger width in thickness units")
	fl.Float64Var(&o.space, "space", o.space, "space between fingers in thickness units")
	fl.Float64Var(&o.surround, "surround", o.surround, "minimum spaces at edge ends in thickness units")
	fl.Float64Var(&o.play, "play", o.play, "notch clearance in thickness units")
	fl.Float64Var(&o.extraLength, "extra-length", o.extraLength, "extra finger protrusion in thickness units")
	fl.StringVar(&o.style, "style", o.style, "joint style (Rectangular, Springs, Barbs, Snap, Dogbone)")
	fl.Float64Var(&o.dimpleHeight, "dimple-height", o.dimpleHeight, "friction-fit bump height in mm, 0 disables")
	fl.Float64Var(&o.dimpleLength, "dimple-length", o.dimpleLength, "minimum flank run for a bump in mm")

	fl.IntVar(&o.dividersX, "dividers-x", 0, "dividers along the width")
	fl.IntVar(&o.dividersY, "dividers-y", 0, "dividers along the depth")
	fl.BoolVar(&o.optimize, "optimize", false, "pack panels with the shelf packer instead of rows")
	fl.Float64Var(&o.spacing, "spacing", o.spacing, "gap between panels on the sheet in mm")

	fl.Float64Var(&o.feedRate, "feed", o.feedRate, "cutting feed rate in mm/min")
	fl.IntVar(&o.power, "power", o.power, "laser power S value")
	fl.IntVar(&o.passes, "passes", o.passes, "cutting passes per outline")
	fl.BoolVar(&o.homeFirst, "home", false, "home the machine before cutting")
	fl.Float64Var(&o.bedWidth, "bed-width", o.bedWidth, "machine bed width in mm")
	fl.Float64Var(&o.bedHeight, "bed-height", o.bedHeight, "machine bed height in mm")
	fl.StringVar(&o.profile, "profile", o.profile, "G-code dialect profile name")
}

// build resolves the final parameter set from defaults, the optional
// template/preset/material sources and explicitly set flags.
func (o *paramFlags) build(cmd *cobra.Command) (model.BoxParameters, model.LaserSettings, model.LayoutConfig, error) {
	params := model.DefaultBoxParameters()
	laser := model.DefaultLaserSettings()
	layout := model.DefaultLayoutConfig()

	if o.template != "" {
		store, err := project.LoadDefaultTemplates()
		if err != nil {
			return params, laser, layout, fmt.Errorf("load templates: %w", err)
		}
		tpl := store.FindByName(o.template)
		if tpl == nil {
			return params, laser, layout, fmt.Errorf("template %q not found (known: %s)",
				o.template, strings.Join(store.Names(), ", "))
		}
		params, laser, layout = tpl.Params, tpl.Laser, tpl.Layout
	}

	if o.preset != "" {
		p, err := loadPreset(o.preset)
		if err != nil {
			return params, laser, layout, err
		}
		if err := p.apply(&params, &laser); err != nil {
			return params, laser, layout, err
		}
	}

	if o.material != "" {
		materials, _, err := project.LoadOrCreateMaterials()
		if err != nil {
			return params, laser, layout, fmt.Errorf("load materials: %w", err)
		}
		mat := project.FindMaterialByName(materials, o.material)
		if mat == nil {
			return params, laser, layout, fmt.Errorf("material %q not found (known: %s)",
				o.material, strings.Join(project.MaterialNames(materials), ", "))
		}
		mat.ApplyToParameters(&params)
		mat.ApplyToLaser(&laser)
	}

	// Explicitly set flags win over template, preset and material values.
	fl := cmd.Flags()
	if fl.Changed("width") {
		params.X = o.width
	}
	if fl.Changed("depth") {
		params.Y = o.depth
	}
	if fl.Changed("height") {
		params.H = o.height
	}
	if fl.Changed("thickness") {
		params.Thickness = o.thickness
	}
	if fl.Changed("outside") {
		params.Outside = o.outside
	}
	if fl.Changed("type") {
		bt, err := parseBoxTypeName(o.boxType)
		if err != nil {
			return params, laser, layout, err
		}
		params.BoxType = bt
	}
	if fl.Changed("burn") {
		params.Burn = o.burn
	}
	if fl.Changed("finger") {
		params.FingerJoint.Finger = o.finger
	}
	if fl.Changed("space") {
		params.FingerJoint.Space = o.space
	}
	if fl.Changed("surround") {
		params.FingerJoint.SurroundingSpaces = o.surround
	}
	if fl.Changed("play") {
		params.FingerJoint.Play = o.play
	}
	if fl.Changed("extra-length") {
		params.FingerJoint.ExtraLength = o.extraLength
	}
	if fl.Changed("style") {
		style, err := parseJointStyleName(o.style)
		if err != nil {
			return params, laser, layout, err
		}
		params.FingerJoint.Style = style
	}
	if fl.Changed("dimple-height") {
		params.FingerJoint.DimpleHeight = o.dimpleHeight
	}
	if fl.Changed("dimple-length") {
		params.FingerJoint.DimpleLength = o.dimpleLength
	}
	if fl.Changed("dividers-x") {
		params.DividersX = o.dividersX
	}
	if fl.Changed("dividers-y") {
		params.DividersY = o.dividersY
	}
	if fl.Changed("optimize") {
		params.OptimizeLayout = o.optimize
	}
	if fl.Changed("spacing") {
		layout.Spacing = o.spacing
	}
	if fl.Changed("feed") {
		laser.FeedRate = o.feedRate
	}
	if fl.Changed("power") {
		laser.LaserPower = o.power
	}
	if fl.Changed("passes") {
		laser.LaserPasses = o.passes
	}
	if fl.Changed("home") {
		laser.HomeFirst = o.homeFirst
	}
	if fl.Changed("bed-width") {
		laser.BedWidth = o.bedWidth
	}
	if fl.Changed("bed-height") {
		laser.BedHeight = o.bedHeight
	}
	if fl.Changed("profile") {
		laser.GCodeProfile = o.profile
	}

	return params, laser, layout, nil
}
