package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/BoxForge/internal/model"
)

// boxPreset mirrors the layout of a TOML preset file. Every field is a
// pointer so keys absent from the file leave the current value alone,
// letting a preset override just the handful of settings it cares about.
//
// Example preset:
//
//	[box]
//	x = 120.0
//	y = 80.0
//	h = 50.0
//	thickness = 6.0
//	type = "open top"
//
//	[joint]
//	style = "dogbone"
//	play = 0.05
//
//	[laser]
//	feed_rate = 450.0
//	power = 700
type boxPreset struct {
	Box   boxSection   `toml:"box"`
	Joint jointSection `toml:"joint"`
	Laser laserSection `toml:"laser"`
}

type boxSection struct {
	X         *float64 `toml:"x"`
	Y         *float64 `toml:"y"`
	H         *float64 `toml:"h"`
	Thickness *float64 `toml:"thickness"`
	Outside   *bool    `toml:"outside"`
	Type      *string  `toml:"type"`
	Burn      *float64 `toml:"burn"`
	DividersX *int     `toml:"dividers_x"`
	DividersY *int     `toml:"dividers_y"`
	Optimize  *bool    `toml:"optimize"`
}

type jointSection struct {
	Finger            *float64 `toml:"finger"`
	Space             *float64 `toml:"space"`
	SurroundingSpaces *float64 `toml:"surrounding_spaces"`
	Play              *float64 `toml:"play"`
	ExtraLength       *float64 `toml:"extra_length"`
	Style             *string  `toml:"style"`
	DimpleHeight      *float64 `toml:"dimple_height"`
	DimpleLength      *float64 `toml:"dimple_length"`
}

type laserSection struct {
	FeedRate  *float64 `toml:"feed_rate"`
	Power     *int     `toml:"power"`
	Passes    *int     `toml:"passes"`
	HomeFirst *bool    `toml:"home_first"`
	BedWidth  *float64 `toml:"bed_width"`
	BedHeight *float64 `toml:"bed_height"`
	Profile   *string  `toml:"profile"`
}

// loadPreset reads and parses a TOML preset file.
func loadPreset(path string) (boxPreset, error) {
	var p boxPreset
	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse preset %s: %w", path, err)
	}
	return p, nil
}

// apply copies every field the preset defines onto params and laser.
// Box type and joint style names are resolved here so a bad preset fails
// before any geometry is produced.
func (p boxPreset) apply(params *model.BoxParameters, laser *model.LaserSettings) error {
	if p.Box.X != nil {
		params.X = *p.Box.X
	}
	if p.Box.Y != nil {
		params.Y = *p.Box.Y
	}
	if p.Box.H != nil {
		params.H = *p.Box.H
	}
	if p.Box.Thickness != nil {
		params.Thickness = *p.Box.Thickness
	}
	if p.Box.Outside != nil {
		params.Outside = *p.Box.Outside
	}
	if p.Box.Type != nil {
		bt, err := parseBoxTypeName(*p.Box.Type)
		if err != nil {
			return err
		}
		params.BoxType = bt
	}
	if p.Box.Burn != nil {
		params.Burn = *p.Box.Burn
	}
	if p.Box.DividersX != nil {
		params.DividersX = *p.Box.DividersX
	}
	if p.Box.DividersY != nil {
		params.DividersY = *p.Box.DividersY
	}
	if p.Box.Optimize != nil {
		params.OptimizeLayout = *p.Box.Optimize
	}

	if p.Joint.Finger != nil {
		params.FingerJoint.Finger = *p.Joint.Finger
	}
	if p.Joint.Space != nil {
		params.FingerJoint.Space = *p.Joint.Space
	}
	if p.Joint.SurroundingSpaces != nil {
		params.FingerJoint.SurroundingSpaces = *p.Joint.SurroundingSpaces
	}
	if p.Joint.Play != nil {
		params.FingerJoint.Play = *p.Joint.Play
	}
	if p.Joint.ExtraLength != nil {
		params.FingerJoint.ExtraLength = *p.Joint.ExtraLength
	}
	if p.Joint.Style != nil {
		style, err := parseJointStyleName(*p.Joint.Style)
		if err != nil {
			return err
		}
		params.FingerJoint.Style = style
	}
	if p.Joint.DimpleHeight != nil {
		params.FingerJoint.DimpleHeight = *p.Joint.DimpleHeight
	}
	if p.Joint.DimpleLength != nil {
		params.FingerJoint.DimpleLength = *p.Joint.DimpleLength
	}

	if p.Laser.FeedRate != nil {
		laser.FeedRate = *p.Laser.FeedRate
	}
	if p.Laser.Power != nil {
		laser.LaserPower = *p.Laser.Power
	}
	if p.Laser.Passes != nil {
		laser.LaserPasses = *p.Laser.Passes
	}
	if p.Laser.HomeFirst != nil {
		laser.HomeFirst = *p.Laser.HomeFirst
	}
	if p.Laser.BedWidth != nil {
		laser.BedWidth = *p.Laser.BedWidth
	}
	if p.Laser.BedHeight != nil {
		laser.BedHeight = *p.Laser.BedHeight
	}
	if p.Laser.Profile != nil {
		laser.GCodeProfile = *p.Laser.Profile
	}

	return nil
}

// parseBoxTypeName accepts a numeric box type code or a display name
// ("Full Box", "Open Top", "No Left/Right", "No Front/Back"), matched
// case-insensitively.
func parseBoxTypeName(s string) (model.BoxType, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		return model.BoxTypeFromCode(code)
	}
	for i, name := range model.BoxTypeNames() {
		if strings.EqualFold(s, name) {
			return model.BoxType(i), nil
		}
	}
	return model.FullBox, fmt.Errorf("unknown box type %q (use one of: %s)",
		s, strings.Join(model.BoxTypeNames(), ", "))
}

// parseJointStyleName accepts a numeric style code or a display name
// ("Rectangular", "Springs", "Barbs", "Snap", "Dogbone"), matched
// case-insensitively.
func parseJointStyleName(s string) (model.JointStyle, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		return model.JointStyleFromCode(code)
	}
	for i, name := range model.JointStyleNames() {
		if strings.EqualFold(s, name) {
			return model.JointStyle(i), nil
		}
	}
	return model.JointRectangular, fmt.Errorf("unknown joint style %q (use one of: %s)",
		s, strings.Join(model.JointStyleNames(), ", "))
}
