package engine

import (
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestJoint() model.FingerJointSettings {
	return model.DefaultFingerJointSettings()
}

func TestCalcFingers_ReferenceBox(t *testing.T) {
	// 100 mm edge, 3 mm stock, default 2/2/2 joint: 6 mm fingers on a
	// 12 mm pitch leave a healthy margin at both ends.
	count, leftover := CalcFingers(100, 3, defaultTestJoint())

	assert.Equal(t, 7, count)
	assert.InDelta(t, 22.0, leftover, 1e-9)
	assert.Greater(t, leftover, 0.0)
	assert.GreaterOrEqual(t, count, 7)
	assert.LessOrEqual(t, count, 10)
}

func TestCalcFingers_ShortEdgeStillGetsOneFinger(t *testing.T) {
	// 15 mm is under one full pitch but can hold a finger plus a wall
	// socket, so the joint keeps a single tab instead of vanishing.
	count, leftover := CalcFingers(15, 3, defaultTestJoint())

	assert.Equal(t, 1, count)
	assert.InDelta(t, 9.0, leftover, 1e-9)
}

func TestCalcFingers_TooShortForAnyFinger(t *testing.T) {
	count, leftover := CalcFingers(8, 3, defaultTestJoint())

	assert.Equal(t, 0, count)
	assert.InDelta(t, 8.0, leftover, 1e-9)
}

func TestCalcFingers_ZeroFingerWidthDisablesJoint(t *testing.T) {
	s := defaultTestJoint()
	s.Finger = 0

	count, leftover := CalcFingers(100, 3, s)

	assert.Equal(t, 0, count)
	assert.InDelta(t, 100.0, leftover, 1e-9)
}

func TestCalcFingers_LeftoverNeverNegative(t *testing.T) {
	for _, thickness := range []float64{1.5, 3, 6, 12} {
		for _, surrounding := range []float64{1, 2, 3} {
			s := defaultTestJoint()
			s.SurroundingSpaces = surrounding
			for length := 5.0; length <= 400; length += 7.3 {
				count, leftover := CalcFingers(length, thickness, s)

				require.GreaterOrEqual(t, count, 0,
					"length=%v thickness=%v surrounding=%v", length, thickness, surrounding)
				require.GreaterOrEqual(t, leftover, 0.0,
					"length=%v thickness=%v surrounding=%v", length, thickness, surrounding)
			}
		}
	}
}

func TestFingerEdge_StartsAndEndsOnBaseline(t *testing.T) {
	for _, positive := range []bool{true, false} {
		for _, length := range []float64{15, 60, 100, 247.3} {
			path := FingerEdge(length, positive, 3, 0.2, defaultTestJoint())

			require.NotEmpty(t, path)
			first, last := path[0], path[len(path)-1]
			assert.InDelta(t, 0.0, first.X, 1e-9)
			assert.InDelta(t, 0.0, first.Y, 1e-9)
			assert.InDelta(t, length, last.X, 1e-9, "positive=%v length=%v", positive, length)
			assert.InDelta(t, 0.0, last.Y, 1e-9)
		}
	}
}

func TestFingerEdge_SingleFingerGeometry(t *testing.T) {
	// 15 mm edge with one 6 mm finger, 0.2 mm kerf. The tab is drawn one
	// kerf wider and the notch one kerf narrower so the assembled joint
	// comes out at nominal size.
	tab := FingerEdge(15, true, 3, 0.2, defaultTestJoint())
	require.Len(t, tab, 6)
	assert.InDelta(t, 4.4, tab[1].X, 1e-9)
	assert.InDelta(t, -3.1, tab[2].Y, 1e-9)
	assert.InDelta(t, 10.6, tab[3].X, 1e-9)
	assert.InDelta(t, 6.2, tab[3].X-tab[2].X, 1e-9, "tab width grows by kerf")

	notch := FingerEdge(15, false, 3, 0.2, defaultTestJoint())
	require.Len(t, notch, 6)
	assert.InDelta(t, 4.6, notch[1].X, 1e-9)
	assert.InDelta(t, 2.9, notch[2].Y, 1e-9)
	assert.InDelta(t, 5.8, notch[3].X-notch[2].X, 1e-9, "notch width shrinks by kerf")
}

func TestFingerEdge_PlayWidensNotchesOnly(t *testing.T) {
	s := defaultTestJoint()
	s.Play = 0.1

	tab := FingerEdge(15, true, 3, 0.2, s)
	require.Len(t, tab, 6)
	assert.InDelta(t, 6.2, tab[3].X-tab[2].X, 1e-9, "play must not change the tab")

	notch := FingerEdge(15, false, 3, 0.2, s)
	require.Len(t, notch, 6)
	assert.InDelta(t, 6.1, notch[3].X-notch[2].X, 1e-9, "notch gains play*thickness")
	assert.InDelta(t, 15.0, notch[len(notch)-1].X, 1e-9, "edge length is preserved")
}

func TestFingerEdge_ExtraLengthDeepensTabs(t *testing.T) {
	s := defaultTestJoint()
	s.ExtraLength = 0.5

	path := FingerEdge(15, true, 3, 0.2, s)

	minY := 0.0
	for _, p := range path {
		if p.Y < minY {
			minY = p.Y
		}
	}
	assert.InDelta(t, -(3 + 1.5 + 0.1), minY, 1e-9)
}

func TestFingerEdge_DogboneOvershootsNotchCorners(t *testing.T) {
	s := defaultTestJoint()
	s.Style = model.JointDogbone

	notch := FingerEdge(15, false, 3, 0.2, s)

	// Each floor corner becomes two relief points, so the single-notch
	// edge grows from 6 to 8 points and overshoots to full depth.
	require.Len(t, notch, 8)
	maxY := 0.0
	for _, p := range notch {
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	assert.InDelta(t, 3.0, maxY, 1e-9)

	// Tabs never get reliefs; a round bit cuts their outside corners fine.
	tab := FingerEdge(15, true, 3, 0.2, s)
	assert.Len(t, tab, 6)
}

func TestFingerEdge_DimplesBulgeFlanks(t *testing.T) {
	s := defaultTestJoint()
	s.DimpleHeight = 0.5
	s.DimpleLength = 1.0

	tab := FingerEdge(15, true, 3, 0.2, s)
	require.Len(t, tab, 12)
	assert.True(t, hasPointAtX(tab, 4.4-0.5), "left flank bulges left")
	assert.True(t, hasPointAtX(tab, 10.6+0.5), "right flank bulges right")

	notch := FingerEdge(15, false, 3, 0.2, s)
	require.Len(t, notch, 12)
	assert.True(t, hasPointAtX(notch, 4.6+0.5), "notch bulges narrow the hole")
	assert.True(t, hasPointAtX(notch, 10.4-0.5))
}

func TestFingerEdge_NoJointFallsBackToPlainEdge(t *testing.T) {
	s := defaultTestJoint()
	s.Finger = 0

	path := FingerEdge(100, true, 3, 0.2, s)

	require.Len(t, path, 2)
	assert.InDelta(t, 0.0, path[0].Y, 1e-9)
	assert.InDelta(t, 100.0, path[1].X, 1e-9)
}

func hasPointAtX(path model.Outline, x float64) bool {
	for _, p := range path {
		if p.X > x-1e-9 && p.X < x+1e-9 {
			return true
		}
	}
	return false
}
