package engine

import (
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nestTestLaser(w, h float64) model.LaserSettings {
	laser := model.DefaultLaserSettings()
	laser.BedWidth = w
	laser.BedHeight = h
	return laser
}

func TestNestSheets_EverythingFitsOneSheet(t *testing.T) {
	panels := []model.Panel{
		rectPanel("a", 0, 0, 100, 80),
		rectPanel("b", 0, 0, 120, 60),
	}

	result := NestSheets(panels, nestTestLaser(600, 400), model.DefaultLayoutConfig())

	require.Len(t, result.Sheets, 1)
	assert.Empty(t, result.Unplaced)
	assert.Len(t, result.Sheets[0].Panels, 2)
	assert.Empty(t, FindOverlaps(result.Sheets[0].Panels))
}

func TestNestSheets_SplitsAcrossSheets(t *testing.T) {
	// Three 80x80 panels on a 100x100 bed with 5 mm spacing cannot share
	// a sheet, so each gets its own.
	panels := []model.Panel{
		rectPanel("p1", 0, 0, 80, 80),
		rectPanel("p2", 0, 0, 80, 80),
		rectPanel("p3", 0, 0, 80, 80),
	}

	result := NestSheets(panels, nestTestLaser(100, 100), model.DefaultLayoutConfig())

	require.Len(t, result.Sheets, 3)
	assert.Empty(t, result.Unplaced)
	for _, sheet := range result.Sheets {
		assert.Len(t, sheet.Panels, 1)
	}
}

func TestNestSheets_PanelsStayWithinBed(t *testing.T) {
	panels := []model.Panel{
		rectPanel("a", 7, -3, 50, 30),
		rectPanel("b", 0, 0, 100, 200),
		rectPanel("c", 0, 0, 300, 100),
		rectPanel("d", 0, 0, 250, 250),
		rectPanel("e", 0, 0, 120, 80),
	}
	laser := nestTestLaser(400, 300)

	result := NestSheets(panels, laser, model.DefaultLayoutConfig())

	assert.Empty(t, result.Unplaced)
	placed := 0
	for _, sheet := range result.Sheets {
		assert.Empty(t, FindOverlaps(sheet.Panels), "sheet %d", sheet.Index)
		for _, p := range sheet.Panels {
			min, max := p.Outline.BoundingBox()
			assert.GreaterOrEqual(t, min.X, -1e-9)
			assert.GreaterOrEqual(t, min.Y, -1e-9)
			assert.LessOrEqual(t, max.X, laser.BedWidth+1e-9)
			assert.LessOrEqual(t, max.Y, laser.BedHeight+1e-9)
			placed++
		}
	}
	assert.Equal(t, len(panels), placed)
}

func TestNestSheets_OversizePanelReportedUnplaced(t *testing.T) {
	panels := []model.Panel{
		rectPanel("huge", 0, 0, 700, 500),
		rectPanel("ok", 0, 0, 100, 100),
	}

	result := NestSheets(panels, nestTestLaser(600, 400), model.DefaultLayoutConfig())

	require.Len(t, result.Unplaced, 1)
	assert.Equal(t, "huge", result.Unplaced[0].Label)
	require.Len(t, result.Sheets, 1)
	assert.Len(t, result.Sheets[0].Panels, 1)
}

func TestNestSheets_ZeroBedPassesThrough(t *testing.T) {
	panels := []model.Panel{rectPanel("a", 12, 34, 999, 999)}

	result := NestSheets(panels, nestTestLaser(0, 0), model.DefaultLayoutConfig())

	require.Len(t, result.Sheets, 1)
	assert.Equal(t, panels[0].Outline, result.Sheets[0].Panels[0].Outline)
	assert.Empty(t, result.Unplaced)
}

func TestNestSheets_Deterministic(t *testing.T) {
	panels := []model.Panel{
		rectPanel("a", 0, 0, 90, 60),
		rectPanel("b", 0, 0, 60, 90),
		rectPanel("c", 0, 0, 40, 40),
		rectPanel("d", 0, 0, 90, 60),
	}
	laser := nestTestLaser(200, 150)

	first := NestSheets(panels, laser, model.DefaultLayoutConfig())
	second := NestSheets(panels, laser, model.DefaultLayoutConfig())

	require.Len(t, second.Sheets, len(first.Sheets))
	for i := range first.Sheets {
		require.Len(t, second.Sheets[i].Panels, len(first.Sheets[i].Panels))
		for j := range first.Sheets[i].Panels {
			assert.Equal(t, first.Sheets[i].Panels[j].Label, second.Sheets[i].Panels[j].Label)
			assert.Equal(t, first.Sheets[i].Panels[j].Outline, second.Sheets[i].Panels[j].Outline)
		}
	}
}

func TestNestSheets_GeneratedBoxRoundTrip(t *testing.T) {
	// A default cube laid out in rows is far wider than a small bed; the
	// nester must split it without losing panels.
	box := generateBox(t, defaultTestParams())
	laser := nestTestLaser(250, 250)

	result := NestSheets(box.Panels, laser, model.DefaultLayoutConfig())

	assert.Empty(t, result.Unplaced)
	total := 0
	for _, sheet := range result.Sheets {
		total += len(sheet.Panels)
		assert.Empty(t, FindOverlaps(sheet.Panels), "sheet %d", sheet.Index)
	}
	assert.Equal(t, len(box.Panels), total)
	assert.Greater(t, len(result.Sheets), 1)
}
