package engine

import (
	"sort"

	"github.com/piwi3910/BoxForge/internal/model"
)

// Sheet is one bed-sized page of a nested layout, with panels in
// placement order translated into sheet-local coordinates.
type Sheet struct {
	Index  int
	Panels []model.Panel
}

// NestResult holds the nested sheets plus any panels larger than the bed.
type NestResult struct {
	Sheets   []Sheet
	Unplaced []model.Panel
}

// NestSheets distributes panels onto bed-sized sheets for machines
// smaller than the one-sheet layout. Panels are placed largest first
// into the free rectangle with the best area fit, keeping cfg.Spacing
// between bounding boxes. Non-positive bed dimensions return everything
// on a single sheet unchanged.
func NestSheets(panels []model.Panel, laser model.LaserSettings, cfg model.LayoutConfig) NestResult {
	if laser.BedWidth <= 0 || laser.BedHeight <= 0 {
		return NestResult{Sheets: []Sheet{{Index: 0, Panels: panels}}}
	}

	type item struct {
		idx        int
		minX, minY float64
		w, h       float64
	}
	items := make([]item, len(panels))
	for i, p := range panels {
		min, max := p.Outline.BoundingBox()
		items[i] = item{idx: i, minX: min.X, minY: min.Y, w: max.X - min.X, h: max.Y - min.Y}
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].w*items[a].h > items[b].w*items[b].h
	})

	var packers []*sheetPacker
	var sheets []Sheet
	var unplaced []model.Panel

	for _, it := range items {
		if it.w > laser.BedWidth+0.001 || it.h > laser.BedHeight+0.001 {
			unplaced = append(unplaced, panels[it.idx])
			continue
		}

		placed := false
		for si, sp := range packers {
			if x, y, ok := sp.insert(it.w, it.h); ok {
				sheets[si].Panels = append(sheets[si].Panels,
					translatePanel(panels[it.idx], x-it.minX, y-it.minY))
				placed = true
				break
			}
		}
		if placed {
			continue
		}

		sp := newSheetPacker(laser.BedWidth, laser.BedHeight, cfg.Spacing)
		x, y, ok := sp.insert(it.w, it.h)
		if !ok {
			unplaced = append(unplaced, panels[it.idx])
			continue
		}
		packers = append(packers, sp)
		sheets = append(sheets, Sheet{
			Index:  len(sheets),
			Panels: []model.Panel{translatePanel(panels[it.idx], x-it.minX, y-it.minY)},
		})
	}

	return NestResult{Sheets: sheets, Unplaced: unplaced}
}

func translatePanel(p model.Panel, dx, dy float64) model.Panel {
	p.Outline = p.Outline.Translate(dx, dy)
	return p
}

// nestRect is an axis-aligned free rectangle on a sheet.
type nestRect struct {
	x, y, w, h float64
}

// sheetPacker tracks the free rectangles of one bed-sized sheet. The
// free area extends one spacing past the bed on both axes so a panel
// may sit flush against the far edges; its spacing allowance hangs off
// the sheet where nothing else can be placed anyway.
type sheetPacker struct {
	spacing float64
	free    []nestRect
}

func newSheetPacker(width, height, spacing float64) *sheetPacker {
	return &sheetPacker{
		spacing: spacing,
		free:    []nestRect{{0, 0, width + spacing, height + spacing}},
	}
}

// insert places a w x h bounding box using best-area-fit and returns the
// chosen position. The spacing allowance is added on both axes before
// matching against free rectangles.
func (sp *sheetPacker) insert(w, h float64) (x, y float64, ok bool) {
	wk := w + sp.spacing
	hk := h + sp.spacing

	bestIdx := -1
	var bestScore float64
	for i, fr := range sp.free {
		if wk > fr.w+0.001 || hk > fr.h+0.001 {
			continue
		}
		score := fr.w*fr.h - wk*hk
		if bestIdx == -1 || score < bestScore {
			bestIdx = i
			bestScore = score
			x, y = fr.x, fr.y
		}
	}
	if bestIdx == -1 {
		return 0, 0, false
	}

	sp.splitAround(nestRect{x, y, wk, hk})
	return x, y, true
}

// splitAround subtracts the used rectangle from every overlapping free
// rectangle, keeping the maximal leftover rectangles on each side.
func (sp *sheetPacker) splitAround(used nestRect) {
	var next []nestRect
	for _, fr := range sp.free {
		if !nestRectsOverlap(fr, used) {
			next = append(next, fr)
			continue
		}
		if used.x > fr.x {
			next = append(next, nestRect{fr.x, fr.y, used.x - fr.x, fr.h})
		}
		if used.x+used.w < fr.x+fr.w {
			next = append(next, nestRect{used.x + used.w, fr.y, fr.x + fr.w - (used.x + used.w), fr.h})
		}
		if used.y > fr.y {
			next = append(next, nestRect{fr.x, fr.y, fr.w, used.y - fr.y})
		}
		if used.y+used.h < fr.y+fr.h {
			next = append(next, nestRect{fr.x, used.y + used.h, fr.w, fr.y + fr.h - (used.y + used.h)})
		}
	}
	sp.free = pruneContainedRects(next)
}

func nestRectsOverlap(a, b nestRect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x && a.y < b.y+b.h && a.y+a.h > b.y
}

// pruneContainedRects drops free rectangles fully contained in another.
func pruneContainedRects(rects []nestRect) []nestRect {
	var result []nestRect
	for i, r := range rects {
		contained := false
		for j, other := range rects {
			if i == j {
				continue
			}
			if containsNestRect(other, r) {
				// Mutual containment means identical rects; keep the first.
				if containsNestRect(r, other) && i < j {
					continue
				}
				contained = true
				break
			}
		}
		if !contained {
			result = append(result, r)
		}
	}
	return result
}

// containsNestRect reports whether outer fully contains inner.
func containsNestRect(outer, inner nestRect) bool {
	return inner.x >= outer.x-0.001 &&
		inner.y >= outer.y-0.001 &&
		inner.x+inner.w <= outer.x+outer.w+0.001 &&
		inner.y+inner.h <= outer.y+outer.h+0.001
}
