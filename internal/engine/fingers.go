package engine

import (
	"math"

	"github.com/piwi3910/BoxForge/internal/model"
)

// pointEps is the coordinate tolerance for merging and closure checks (mm).
const pointEps = 0.01

// CalcFingers computes how many fingers fit along an edge of the given
// length and the leftover length that remains. Finger and space widths
// come from the settings as multiples of the material thickness. The
// leftover is split evenly between the two edge ends by FingerEdge.
//
// A zero or negative finger width disables the joint entirely. An edge
// too short for a full pitch still gets a single finger when it can hold
// one finger plus a wall socket, so small boxes keep at least one tab
// per edge.
func CalcFingers(length, thickness float64, s model.FingerJointSettings) (count int, leftover float64) {
	finger := s.Finger * thickness
	space := s.Space * thickness

	// Degenerate pitches would divide by zero or produce fingers of
	// negative width. Both fall back to a plain edge.
	if finger <= 0 || space+finger <= 0 {
		return 0, length
	}

	count = int(math.Floor((length - (s.SurroundingSpaces-1)*space) / (space + finger)))
	if count < 0 {
		count = 0
	}
	if count == 0 && length > finger+thickness {
		count = 1
	}

	leftover = length
	if count > 0 {
		leftover = length - float64(count)*(space+finger) + space
	}
	return count, leftover
}

// FingerEdge returns the cut path of one jointed edge in edge-local
// coordinates: x runs from 0 to length, y is 0 on the baseline, negative
// where a tab protrudes and positive where a notch cuts into the panel.
// The first and last points always sit on the baseline so the wall
// builder can chain edges corner to corner.
//
// Positive edges draw tabs widened by the kerf; negative edges draw
// notches narrowed by it, so the physical joint comes out at nominal
// size after the beam removes material. Play widens notches relative to
// the mating tabs for an easier fit and only applies to negative edges.
func FingerEdge(length float64, positive bool, thickness, kerf float64, s model.FingerJointSettings) model.Outline {
	count, leftover := CalcFingers(length, thickness, s)
	if count == 0 {
		return plainEdge(length, 0)
	}

	finger := s.Finger * thickness
	space := s.Space * thickness

	var depth float64
	var drawnFinger, drawnSpace, endRun float64
	if positive {
		depth = -(thickness + s.ExtraLength*thickness + kerf/2)
		drawnFinger = finger + kerf
		drawnSpace = space - kerf
		endRun = leftover/2 - kerf/2
	} else {
		play := s.Play * thickness
		finger += play
		space -= play
		leftover -= play
		depth = thickness - kerf/2
		drawnFinger = finger - kerf
		drawnSpace = space + kerf
		endRun = leftover/2 + kerf/2
	}

	dogbone := !positive && s.Style == model.JointDogbone
	bulgeDown := -s.DimpleHeight
	if !positive {
		bulgeDown = s.DimpleHeight
	}

	path := model.Outline{{X: 0, Y: 0}}
	x := endRun
	for i := 0; i < count; i++ {
		if i > 0 {
			x += drawnSpace
		}
		path = append(path, model.Point2D{X: x, Y: 0})

		if dogbone {
			// Overshoot both floor corners by half the kerf so a round
			// bit clears the inside corner and the mating tab seats flat.
			over := depth + kerf/2
			path = appendFlank(path, model.Point2D{X: x, Y: over}, bulgeDown, s)
			path = append(path, model.Point2D{X: x + kerf/2, Y: depth})
			x += drawnFinger
			path = append(path, model.Point2D{X: x - kerf/2, Y: depth})
			path = append(path, model.Point2D{X: x, Y: over})
			path = appendFlank(path, model.Point2D{X: x, Y: 0}, -bulgeDown, s)
		} else {
			path = appendFlank(path, model.Point2D{X: x, Y: depth}, bulgeDown, s)
			x += drawnFinger
			path = append(path, model.Point2D{X: x, Y: depth})
			path = appendFlank(path, model.Point2D{X: x, Y: 0}, -bulgeDown, s)
		}
	}
	path = append(path, model.Point2D{X: length, Y: 0})
	return path
}

// plainEdge returns a straight edge at the given offset from the baseline.
func plainEdge(length, offset float64) model.Outline {
	return model.Outline{{X: 0, Y: offset}, {X: length, Y: offset}}
}

// appendFlank extends the path from its last point to the target with a
// vertical flank, bulging sideways at the midpoint when dimples are
// enabled and the run is long enough. The bulge forms the friction-fit
// bump that keeps dry-assembled boxes together.
func appendFlank(path model.Outline, to model.Point2D, bulge float64, s model.FingerJointSettings) model.Outline {
	from := path[len(path)-1]
	run := math.Abs(to.Y - from.Y)
	if s.DimpleHeight <= 0 || s.DimpleLength <= 0 || run <= s.DimpleLength {
		return append(path, to)
	}

	dir := 1.0
	if to.Y < from.Y {
		dir = -1.0
	}
	mid := (from.Y + to.Y) / 2
	half := s.DimpleLength / 2
	return append(path,
		model.Point2D{X: from.X, Y: mid - dir*half},
		model.Point2D{X: from.X + bulge, Y: mid},
		model.Point2D{X: from.X, Y: mid + dir*half},
		to,
	)
}
