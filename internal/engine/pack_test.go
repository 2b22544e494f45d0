package engine

import (
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rectPanel builds a closed rectangular test panel at the given position.
func rectPanel(label string, x, y, w, h float64) model.Panel {
	return model.NewPanel(label, model.Outline{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	})
}

func scatteredPanels() []model.Panel {
	return []model.Panel{
		rectPanel("a", 0, 0, 40, 30),
		rectPanel("b", 100, 50, 25, 60),
		rectPanel("c", -20, 10, 70, 15),
		rectPanel("d", 5, 200, 55, 45),
		rectPanel("e", 300, 0, 10, 80),
		rectPanel("f", 0, -90, 35, 35),
	}
}

func TestPack_NoOverlaps(t *testing.T) {
	packed := NewPacker(model.DefaultLayoutConfig()).Pack(scatteredPanels())

	assert.Empty(t, FindOverlaps(packed))
}

func TestPack_NoWiderThanSingleRow(t *testing.T) {
	panels := scatteredPanels()
	cfg := model.DefaultLayoutConfig()

	packed := NewPacker(cfg).Pack(panels)

	box := model.Box{Panels: packed}
	assert.LessOrEqual(t, box.Width(), RowWidth(panels, cfg.Spacing)+1e-9)
}

func TestPack_PreservesOrderShapesAndIDs(t *testing.T) {
	panels := scatteredPanels()
	packed := NewPacker(model.DefaultLayoutConfig()).Pack(panels)

	require.Len(t, packed, len(panels))
	for i := range panels {
		assert.Equal(t, panels[i].ID, packed[i].ID)
		assert.Equal(t, panels[i].Label, packed[i].Label)
		assert.InDelta(t, panels[i].Outline.Width(), packed[i].Outline.Width(), 1e-9)
		assert.InDelta(t, panels[i].Outline.Height(), packed[i].Outline.Height(), 1e-9)
		assert.Len(t, packed[i].Outline, len(panels[i].Outline))
	}
}

func TestPack_WidePanelGetsItsOwnShelf(t *testing.T) {
	// One panel far wider than the others must still fit: the target
	// width never drops below the widest bounding box.
	panels := []model.Panel{
		rectPanel("wide", 0, 0, 500, 10),
		rectPanel("s1", 0, 0, 20, 20),
		rectPanel("s2", 0, 0, 20, 20),
	}

	packed := NewPacker(model.DefaultLayoutConfig()).Pack(panels)

	assert.Empty(t, FindOverlaps(packed))
	box := model.Box{Panels: packed}
	assert.InDelta(t, 500.0, box.Width(), 1e-9)
}

func TestPack_SinglePanelPassesThrough(t *testing.T) {
	panels := []model.Panel{rectPanel("only", 42, 17, 30, 30)}
	packed := NewPacker(model.DefaultLayoutConfig()).Pack(panels)

	require.Len(t, packed, 1)
	assert.Equal(t, panels[0].Outline, packed[0].Outline)
}

func TestPack_Deterministic(t *testing.T) {
	panels := scatteredPanels()

	first := NewPacker(model.DefaultLayoutConfig()).Pack(panels)
	second := NewPacker(model.DefaultLayoutConfig()).Pack(panels)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Outline, second[i].Outline)
	}
}

func TestPack_EqualHeightsKeepInputOrder(t *testing.T) {
	// Ties in the height sort must not reorder placements between runs.
	panels := []model.Panel{
		rectPanel("p1", 0, 0, 20, 40),
		rectPanel("p2", 0, 0, 15, 40),
		rectPanel("p3", 0, 0, 18, 40),
	}

	packed := NewPacker(model.DefaultLayoutConfig()).Pack(panels)

	m1, _ := packed[0].Outline.BoundingBox()
	m2, _ := packed[1].Outline.BoundingBox()
	m3, _ := packed[2].Outline.BoundingBox()
	assert.Less(t, m1.X, m2.X)
	assert.Less(t, m2.X, m3.X)
}
