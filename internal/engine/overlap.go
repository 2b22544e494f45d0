package engine

import (
	"fmt"

	"github.com/piwi3910/BoxForge/internal/model"
)

// PanelOverlap reports two panels whose bounding boxes intersect on the
// sheet. Depth values give how far the boxes interpenetrate per axis.
type PanelOverlap struct {
	IndexA, IndexB int
	LabelA, LabelB string
	DepthX, DepthY float64
}

// FindOverlaps returns every pair of panels whose bounding boxes
// intersect by more than the merge tolerance. A clean layout returns nil.
func FindOverlaps(panels []model.Panel) []PanelOverlap {
	type box struct {
		minX, minY, maxX, maxY float64
	}
	boxes := make([]box, len(panels))
	for i, p := range panels {
		min, max := p.Outline.BoundingBox()
		boxes[i] = box{min.X, min.Y, max.X, max.Y}
	}

	var overlaps []PanelOverlap
	for i := 0; i < len(panels); i++ {
		for j := i + 1; j < len(panels); j++ {
			dx := minFloat(boxes[i].maxX, boxes[j].maxX) - maxFloat(boxes[i].minX, boxes[j].minX)
			dy := minFloat(boxes[i].maxY, boxes[j].maxY) - maxFloat(boxes[i].minY, boxes[j].minY)
			if dx > pointEps && dy > pointEps {
				overlaps = append(overlaps, PanelOverlap{
					IndexA: i, IndexB: j,
					LabelA: panels[i].Label, LabelB: panels[j].Label,
					DepthX: dx, DepthY: dy,
				})
			}
		}
	}
	return overlaps
}

// CheckBedFit warns when the layout bounding box exceeds the machine bed.
// Zero bed dimensions disable the corresponding check.
func CheckBedFit(b model.Box, laser model.LaserSettings) []string {
	if len(b.Panels) == 0 {
		return nil
	}
	var warnings []string
	if w := b.Width(); laser.BedWidth > 0 && w > laser.BedWidth {
		warnings = append(warnings, fmt.Sprintf(
			"layout width %.1f mm exceeds bed width %.0f mm", w, laser.BedWidth))
	}
	if h := b.Height(); laser.BedHeight > 0 && h > laser.BedHeight {
		warnings = append(warnings, fmt.Sprintf(
			"layout height %.1f mm exceeds bed height %.0f mm", h, laser.BedHeight))
	}
	return warnings
}

// FormatOverlapWarnings produces human-readable messages from overlap data.
func FormatOverlapWarnings(overlaps []PanelOverlap) []string {
	var warnings []string
	for _, o := range overlaps {
		warnings = append(warnings, fmt.Sprintf(
			"panels %q and %q overlap by %.1f x %.1f mm",
			o.LabelA, o.LabelB, o.DepthX, o.DepthY))
	}
	return warnings
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
