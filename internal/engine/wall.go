package engine

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoxForge/internal/model"
)

// EdgeStyle selects how one side of a wall is cut.
type EdgeStyle byte

const (
	EdgeFinger EdgeStyle = 'f' // Tabs protrude outward past the nominal edge
	EdgeNotch  EdgeStyle = 'F' // Sockets cut into the panel for mating tabs
	EdgePlain  EdgeStyle = 'e' // Straight cut, offset outward by half the kerf
)

// ParseEdgeStyles parses a four-character style string in
// bottom/right/top/left order, e.g. "FfeF".
func ParseEdgeStyles(spec string) ([4]EdgeStyle, error) {
	var styles [4]EdgeStyle
	if len(spec) != 4 {
		return styles, fmt.Errorf("edge styles %q: need exactly 4 characters, got %d", spec, len(spec))
	}
	for i := 0; i < 4; i++ {
		switch c := spec[i]; c {
		case 'f', 'F', 'e':
			styles[i] = EdgeStyle(c)
		default:
			return styles, fmt.Errorf("edge styles %q: unknown style %q at position %d", spec, c, i)
		}
	}
	return styles, nil
}

// DrawRectangularWall traces the closed outline of a width x height wall
// whose four sides are cut per styles, in bottom/right/top/left order.
// Each side is generated in edge-local coordinates by FingerEdge and
// mapped into panel space walking counter-clockwise from origin.
//
// Plain sides run half a kerf outside the nominal rectangle so the
// finished part measures width x height after cutting. Corners touching
// a plain side get the same offset so adjacent sides meet cleanly.
func DrawRectangularWall(width, height float64, styles [4]EdgeStyle, origin model.Point2D, thickness, kerf float64, s model.FingerJointSettings) model.Outline {
	ox, oy := origin.X, origin.Y

	sides := [4]struct {
		length float64
		place  func(p model.Point2D) model.Point2D
	}{
		{width, func(p model.Point2D) model.Point2D {
			return model.Point2D{X: ox + p.X, Y: oy + p.Y}
		}},
		{height, func(p model.Point2D) model.Point2D {
			return model.Point2D{X: ox + width - p.Y, Y: oy + p.X}
		}},
		{width, func(p model.Point2D) model.Point2D {
			return model.Point2D{X: ox + width - p.X, Y: oy + height - p.Y}
		}},
		{height, func(p model.Point2D) model.Point2D {
			return model.Point2D{X: ox + p.Y, Y: oy + height - p.X}
		}},
	}

	// Plain edges sit half a kerf outside the rectangle; the matching
	// corner offsets keep the closed loop watertight.
	edgeOut := func(i int) float64 {
		if styles[i] == EdgePlain {
			return kerf / 2
		}
		return 0
	}
	corners := [4]model.Point2D{
		{X: ox + width + edgeOut(1), Y: oy - edgeOut(0)},
		{X: ox + width + edgeOut(1), Y: oy + height + edgeOut(2)},
		{X: ox - edgeOut(3), Y: oy + height + edgeOut(2)},
		{X: ox - edgeOut(3), Y: oy - edgeOut(0)},
	}

	var path model.Outline
	for i, side := range sides {
		var local model.Outline
		switch styles[i] {
		case EdgeFinger:
			local = FingerEdge(side.length, true, thickness, kerf, s)
		case EdgeNotch:
			local = FingerEdge(side.length, false, thickness, kerf, s)
		default:
			local = plainEdge(side.length, -kerf/2)
		}
		for _, p := range local {
			path = append(path, side.place(p))
		}
		path = append(path, corners[i])
	}

	return closeOutline(dedupe(path))
}

// dedupe removes consecutive points closer than the merge tolerance.
func dedupe(path model.Outline) model.Outline {
	out := make(model.Outline, 0, len(path))
	for _, p := range path {
		if n := len(out); n > 0 && nearlyEqual(out[n-1], p) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// closeOutline makes the last point an exact copy of the first.
func closeOutline(path model.Outline) model.Outline {
	if len(path) == 0 {
		return path
	}
	if last := len(path) - 1; nearlyEqual(path[0], path[last]) {
		path[last] = path[0]
		return path
	}
	return append(path, path[0])
}

func nearlyEqual(a, b model.Point2D) bool {
	return math.Abs(a.X-b.X) < pointEps && math.Abs(a.Y-b.Y) < pointEps
}
