package model

import (
	"errors"
	"fmt"
	"math"
)

// Validation errors returned by BoxParameters.Validate. Wrapped with
// detail, so test with errors.Is.
var (
	ErrDimensionTooSmall   = errors.New("dimension too small")
	ErrThicknessOutOfRange = errors.New("thickness out of range")
	ErrDegenerateJoint     = errors.New("degenerate finger joint")
	ErrUnknownBoxType      = errors.New("unknown box type")
	ErrUnknownJointStyle   = errors.New("unknown joint style")
)

// JointStyle selects the finger profile drawn along jointed edges.
type JointStyle int

const (
	JointRectangular JointStyle = iota // Plain rectangular fingers
	JointSprings                       // Accepted, currently rendered as rectangular
	JointBarbs                         // Accepted, currently rendered as rectangular
	JointSnap                          // Accepted, currently rendered as rectangular
	JointDogbone                       // Rectangular fingers with corner overcuts for router bits
)

func (j JointStyle) String() string {
	switch j {
	case JointRectangular:
		return "Rectangular"
	case JointSprings:
		return "Springs"
	case JointBarbs:
		return "Barbs"
	case JointSnap:
		return "Snap"
	case JointDogbone:
		return "Dogbone"
	default:
		return fmt.Sprintf("JointStyle(%d)", int(j))
	}
}

// JointStyleFromCode maps a numeric style code to a JointStyle.
// Unknown codes are an error rather than a silent rectangular fallback,
// so bad input surfaces at parse time instead of as wrong geometry.
func JointStyleFromCode(code int) (JointStyle, error) {
	if code < int(JointRectangular) || code > int(JointDogbone) {
		return JointRectangular, fmt.Errorf("%w: code %d", ErrUnknownJointStyle, code)
	}
	return JointStyle(code), nil
}

// JointStyleNames returns the display names of all styles in code order.
func JointStyleNames() []string {
	return []string{"Rectangular", "Springs", "Barbs", "Snap", "Dogbone"}
}

// BoxType selects which of the six walls a generated box includes.
type BoxType int

const (
	FullBox     BoxType = iota // All six walls
	NoTop                      // Open-top box/tray
	NoLeftRight                // Channel: top, bottom, front, back only
	NoFrontBack                // Channel: top, bottom, left, right only
)

func (bt BoxType) String() string {
	switch bt {
	case FullBox:
		return "Full Box"
	case NoTop:
		return "Open Top"
	case NoLeftRight:
		return "No Left/Right"
	case NoFrontBack:
		return "No Front/Back"
	default:
		return fmt.Sprintf("BoxType(%d)", int(bt))
	}
}

// BoxTypeFromCode maps a numeric box type code to a BoxType.
// Unknown codes are an error rather than a silent FullBox fallback.
func BoxTypeFromCode(code int) (BoxType, error) {
	if code < int(FullBox) || code > int(NoFrontBack) {
		return FullBox, fmt.Errorf("%w: code %d", ErrUnknownBoxType, code)
	}
	return BoxType(code), nil
}

// BoxTypeNames returns the display names of all box types in code order.
func BoxTypeNames() []string {
	return []string{"Full Box", "Open Top", "No Left/Right", "No Front/Back"}
}

// WallSet flags which walls a box type includes.
type WallSet struct {
	Top    bool
	Bottom bool
	Front  bool
	Back   bool
	Left   bool
	Right  bool
}

// Walls returns the wall inclusion flags for the box type.
func (bt BoxType) Walls() WallSet {
	w := WallSet{Top: true, Bottom: true, Front: true, Back: true, Left: true, Right: true}
	switch bt {
	case NoTop:
		w.Top = false
	case NoLeftRight:
		w.Left = false
		w.Right = false
	case NoFrontBack:
		w.Front = false
		w.Back = false
	}
	return w
}

// FingerJointSettings controls finger sizing and fit. Finger, Space,
// SurroundingSpaces, Play and ExtraLength are multiples of the material
// thickness; DimpleHeight and DimpleLength are absolute mm.
type FingerJointSettings struct {
	Finger            float64    `json:"finger"`             // Finger width in thickness units
	Space             float64    `json:"space"`              // Gap between fingers in thickness units
	SurroundingSpaces float64    `json:"surrounding_spaces"` // Minimum spaces kept at the edge ends
	Play              float64    `json:"play"`               // Extra clearance on notches in thickness units
	ExtraLength       float64    `json:"extra_length"`       // Extra finger protrusion for sanding flush
	Style             JointStyle `json:"style"`              // Finger profile
	DimpleHeight      float64    `json:"dimple_height"`      // Friction-fit bump height in mm, 0 disables
	DimpleLength      float64    `json:"dimple_length"`      // Minimum flank run for a bump in mm
}

func DefaultFingerJointSettings() FingerJointSettings {
	return FingerJointSettings{
		Finger:            2.0,
		Space:             2.0,
		SurroundingSpaces: 2.0,
		Play:              0.0,
		ExtraLength:       0.0,
		Style:             JointRectangular,
		DimpleHeight:      0.0,
		DimpleLength:      0.0,
	}
}

// Validate rejects finger/space combinations too degenerate to divide an
// edge into a joint pitch.
func (s FingerJointSettings) Validate() error {
	if math.Abs(s.Finger+s.Space) < 0.1 {
		return fmt.Errorf("%w: finger %.3f + space %.3f must total at least 0.1 thickness units",
			ErrDegenerateJoint, s.Finger, s.Space)
	}
	return nil
}

// BoxParameters holds everything Generate needs to produce a box.
type BoxParameters struct {
	X         float64 `json:"x"` // Box width in mm
	Y         float64 `json:"y"` // Box depth in mm
	H         float64 `json:"h"` // Box height in mm
	Thickness float64 `json:"thickness"`
	// Outside treats X/Y/H as outer dimensions: wall thickness is
	// subtracted so the finished outside matches the requested size.
	Outside        bool                `json:"outside"`
	BoxType        BoxType             `json:"box_type"`
	FingerJoint    FingerJointSettings `json:"finger_joint"`
	Burn           float64             `json:"burn"` // Kerf: beam/bit width in mm
	DividersX      int                 `json:"dividers_x"`
	DividersY      int                 `json:"dividers_y"`
	OptimizeLayout bool                `json:"optimize_layout"`
}

func DefaultBoxParameters() BoxParameters {
	return BoxParameters{
		X:           100.0,
		Y:           100.0,
		H:           100.0,
		Thickness:   3.0,
		Outside:     false,
		BoxType:     FullBox,
		FingerJoint: DefaultFingerJointSettings(),
		Burn:        0.1,
	}
}

// Validate checks the parameter set before any geometry is produced.
// Generation fails fast on the first violation and emits no panels.
func (p BoxParameters) Validate() error {
	const minDim = 20.0
	for _, d := range []struct {
		name string
		val  float64
	}{
		{"x", p.X},
		{"y", p.Y},
		{"h", p.H},
	} {
		if d.val < minDim {
			return fmt.Errorf("%w: %s = %.2f mm, minimum is %.0f mm",
				ErrDimensionTooSmall, d.name, d.val, minDim)
		}
	}
	if p.Thickness < 1.0 || p.Thickness > 20.0 {
		return fmt.Errorf("%w: %.2f mm, supported range is 1-20 mm",
			ErrThicknessOutOfRange, p.Thickness)
	}
	return p.FingerJoint.Validate()
}

// LayoutConfig controls how generated panels are arranged on the sheet.
type LayoutConfig struct {
	Spacing      float64 `json:"spacing"`       // Gap between panel bounding boxes in mm
	TargetAspect float64 `json:"target_aspect"` // Packer width factor over sqrt(total area)
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Spacing:      5.0,
		TargetAspect: 1.5,
	}
}
