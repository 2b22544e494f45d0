package engine

import (
	"math"
	"sort"

	"github.com/piwi3910/BoxForge/internal/model"
)

// Packer compacts a panel layout using a shelf algorithm: panels are
// sorted by bounding box height and placed left to right on shelves of
// decreasing height, wrapping when a shelf reaches the target width.
type Packer struct {
	Config model.LayoutConfig
}

// NewPacker creates a Packer with the given layout configuration.
func NewPacker(cfg model.LayoutConfig) *Packer {
	return &Packer{Config: cfg}
}

// bbox caches one panel's bounding box for the packing pass.
type bbox struct {
	minX, minY float64
	w, h       float64
}

// placement records where a panel's bounding box lands after packing,
// keyed by the panel's position in the input slice.
type placement struct {
	x, y float64
}

// Pack returns repositioned copies of the panels. Outlines are only
// translated; panel order, IDs and shapes are untouched, so two runs on
// the same input produce the same layout.
func (pk *Packer) Pack(panels []model.Panel) []model.Panel {
	if len(panels) < 2 {
		return panels
	}

	boxes := make([]bbox, len(panels))
	var totalArea, widest float64
	for i, p := range panels {
		min, max := p.Outline.BoundingBox()
		boxes[i] = bbox{minX: min.X, minY: min.Y, w: max.X - min.X, h: max.Y - min.Y}
		totalArea += boxes[i].w * boxes[i].h
		if boxes[i].w > widest {
			widest = boxes[i].w
		}
	}

	// Aim for a roughly landscape sheet, but never narrower than the
	// widest panel so every panel fits a fresh shelf.
	targetWidth := math.Sqrt(totalArea) * pk.Config.TargetAspect
	if widest > targetWidth {
		targetWidth = widest
	}

	order := make([]int, len(panels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return boxes[order[a]].h > boxes[order[b]].h
	})

	spacing := pk.Config.Spacing
	arena := make([]placement, len(panels))
	curX, curY, shelfH := 0.0, 0.0, 0.0
	for _, idx := range order {
		bb := boxes[idx]
		if curX > 0 && curX+bb.w > targetWidth {
			curY += shelfH + spacing
			curX, shelfH = 0, 0
		}
		arena[idx] = placement{x: curX, y: curY}
		curX += bb.w + spacing
		if bb.h > shelfH {
			shelfH = bb.h
		}
	}

	packed := make([]model.Panel, len(panels))
	for i, p := range panels {
		p.Outline = p.Outline.Translate(arena[i].x-boxes[i].minX, arena[i].y-boxes[i].minY)
		packed[i] = p
	}
	return packed
}

// RowWidth returns the width of all panels laid side by side in one row
// with the given spacing. The packed layout never exceeds it.
func RowWidth(panels []model.Panel, spacing float64) float64 {
	var width float64
	for i, p := range panels {
		if i > 0 {
			width += spacing
		}
		width += p.Outline.Width()
	}
	return width
}
