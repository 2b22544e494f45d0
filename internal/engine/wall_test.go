package engine

import (
	"math"
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStyles(t *testing.T, spec string) [4]EdgeStyle {
	t.Helper()
	styles, err := ParseEdgeStyles(spec)
	require.NoError(t, err)
	return styles
}

func TestParseEdgeStyles_Valid(t *testing.T) {
	styles, err := ParseEdgeStyles("FfeF")

	require.NoError(t, err)
	assert.Equal(t, [4]EdgeStyle{EdgeNotch, EdgeFinger, EdgePlain, EdgeNotch}, styles)
}

func TestParseEdgeStyles_RejectsBadInput(t *testing.T) {
	_, err := ParseEdgeStyles("Ffe")
	assert.Error(t, err, "too short")

	_, err = ParseEdgeStyles("FfeFF")
	assert.Error(t, err, "too long")

	_, err = ParseEdgeStyles("FfxF")
	assert.Error(t, err, "unknown style char")
}

func TestDrawRectangularWall_AlwaysClosed(t *testing.T) {
	specs := []string{"eeee", "ffff", "FFFF", "FfFf", "FfeF", "fFeF", "FFeF", "fefe", "efef"}
	for _, spec := range specs {
		outline := DrawRectangularWall(60, 40, mustStyles(t, spec),
			model.Point2D{}, 3, 0.2, defaultTestJoint())

		require.True(t, outline.IsClosed(1e-9), "styles %s", spec)
		for i := 1; i < len(outline); i++ {
			dx := math.Abs(outline[i].X - outline[i-1].X)
			dy := math.Abs(outline[i].Y - outline[i-1].Y)
			assert.False(t, dx < pointEps && dy < pointEps,
				"styles %s: duplicate points at %d", spec, i)
		}
	}
}

func TestDrawRectangularWall_PlainRectOffsetByHalfKerf(t *testing.T) {
	// An all-plain wall cuts half a kerf outside the nominal rectangle on
	// every side, so the finished part measures exactly width x height.
	outline := DrawRectangularWall(60, 40, mustStyles(t, "eeee"),
		model.Point2D{}, 3, 0.2, defaultTestJoint())

	min, max := outline.BoundingBox()
	assert.InDelta(t, -0.1, min.X, 1e-9)
	assert.InDelta(t, -0.1, min.Y, 1e-9)
	assert.InDelta(t, 60.1, max.X, 1e-9)
	assert.InDelta(t, 40.1, max.Y, 1e-9)
}

func TestDrawRectangularWall_TabsProtrudePastRect(t *testing.T) {
	outline := DrawRectangularWall(60, 40, mustStyles(t, "ffff"),
		model.Point2D{}, 3, 0.2, defaultTestJoint())

	// Tabs reach thickness + kerf/2 past the rectangle on all four sides.
	min, max := outline.BoundingBox()
	assert.InDelta(t, -3.1, min.X, 1e-9)
	assert.InDelta(t, -3.1, min.Y, 1e-9)
	assert.InDelta(t, 63.1, max.X, 1e-9)
	assert.InDelta(t, 43.1, max.Y, 1e-9)
}

func TestDrawRectangularWall_NotchesStayInsideRect(t *testing.T) {
	outline := DrawRectangularWall(60, 40, mustStyles(t, "FFFF"),
		model.Point2D{}, 3, 0.2, defaultTestJoint())

	min, max := outline.BoundingBox()
	assert.InDelta(t, 0.0, min.X, 1e-9)
	assert.InDelta(t, 0.0, min.Y, 1e-9)
	assert.InDelta(t, 60.0, max.X, 1e-9)
	assert.InDelta(t, 40.0, max.Y, 1e-9)
}

func TestDrawRectangularWall_OriginShiftsOutline(t *testing.T) {
	at0 := DrawRectangularWall(60, 40, mustStyles(t, "FfeF"),
		model.Point2D{}, 3, 0.2, defaultTestJoint())
	at1 := DrawRectangularWall(60, 40, mustStyles(t, "FfeF"),
		model.Point2D{X: 10, Y: 20}, 3, 0.2, defaultTestJoint())

	require.Len(t, at1, len(at0))
	for i := range at0 {
		assert.InDelta(t, at0[i].X+10, at1[i].X, 1e-9)
		assert.InDelta(t, at0[i].Y+20, at1[i].Y, 1e-9)
	}
}

func TestDrawRectangularWall_MixedStylesMeetAtCorners(t *testing.T) {
	// A divider profile: notched bottom, fingers right, plain top,
	// notched left. The plain top must sit half a kerf above the rect
	// while the notched sides stay on it.
	outline := DrawRectangularWall(60, 40, mustStyles(t, "FfeF"),
		model.Point2D{}, 3, 0.2, defaultTestJoint())

	min, max := outline.BoundingBox()
	assert.InDelta(t, 0.0, min.X, 1e-9, "notched left edge on the rect")
	assert.InDelta(t, 0.0, min.Y, 1e-9, "notched bottom edge on the rect")
	assert.InDelta(t, 63.1, max.X, 1e-9, "finger tabs protrude right")
	assert.InDelta(t, 40.1, max.Y, 1e-9, "plain top offset by half kerf")
}
