package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/model"
)

// Panel colors — cycle through these for visual distinction.
var panelColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// PanelCanvas renders the cut layout of a set of panels with every
// outline drawn point by point, fingers and all.
type PanelCanvas struct {
	widget.BaseWidget
	panels    []model.Panel
	laser     model.LaserSettings
	maxWidth  float32
	maxHeight float32
}

func NewPanelCanvas(panels []model.Panel, laser model.LaserSettings, maxW, maxH float32) *PanelCanvas {
	pc := &PanelCanvas{
		panels:    panels,
		laser:     laser,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	pc.ExtendBaseWidget(pc)
	return pc
}

func (pc *PanelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newPanelCanvasRenderer(pc)
}

type panelCanvasRenderer struct {
	pc      *PanelCanvas
	objects []fyne.CanvasObject
}

func newPanelCanvasRenderer(pc *PanelCanvas) *panelCanvasRenderer {
	r := &panelCanvasRenderer{pc: pc}
	r.rebuild()
	return r
}

// layoutBounds returns the bounding box around all panels.
func layoutBounds(panels []model.Panel) (min, max model.Point2D) {
	first := true
	for _, p := range panels {
		pmin, pmax := p.Outline.BoundingBox()
		if first {
			min, max = pmin, pmax
			first = false
			continue
		}
		if pmin.X < min.X {
			min.X = pmin.X
		}
		if pmin.Y < min.Y {
			min.Y = pmin.Y
		}
		if pmax.X > max.X {
			max.X = pmax.X
		}
		if pmax.Y > max.Y {
			max.Y = pmax.Y
		}
	}
	return min, max
}

func (r *panelCanvasRenderer) scale() (scale float32, layoutW, layoutH float64, origin model.Point2D) {
	min, max := layoutBounds(r.pc.panels)
	layoutW = max.X - min.X
	layoutH = max.Y - min.Y
	if layoutW <= 0 || layoutH <= 0 {
		return 1, layoutW, layoutH, min
	}
	scaleX := r.pc.maxWidth / float32(layoutW)
	scaleY := r.pc.maxHeight / float32(layoutH)
	scale = scaleX
	if scaleY < scale {
		scale = scaleY
	}
	return scale, layoutW, layoutH, min
}

func (r *panelCanvasRenderer) rebuild() {
	r.objects = nil

	if len(r.pc.panels) == 0 {
		return
	}

	scale, layoutW, layoutH, origin := r.scale()
	canvasW := float32(layoutW) * scale
	canvasH := float32(layoutH) * scale

	// Material background
	bg := canvas.NewRectangle(color.NRGBA{R: 210, G: 180, B: 140, A: 255}) // wood color
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Layout border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	// Mark the part of the layout hanging off the machine bed
	r.drawBedOverflow(scale, layoutW, layoutH, canvasW, canvasH)

	// Panel outlines, each in its own color with a label
	for i, p := range r.pc.panels {
		col := panelColors[i%len(panelColors)]
		r.drawOutline(p.Outline, origin, scale, col)

		pmin, pmax := p.Outline.BoundingBox()
		pw := float32(pmax.X-pmin.X) * scale
		ph := float32(pmax.Y-pmin.Y) * scale
		px := float32(pmin.X-origin.X) * scale
		py := float32(pmin.Y-origin.Y) * scale

		// Label (only if big enough)
		if pw > 30 && ph > 16 {
			label := canvas.NewText(
				fmt.Sprintf("%s %.0fx%.0f", p.Label, pmax.X-pmin.X, pmax.Y-pmin.Y),
				color.Black,
			)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

// drawOutline renders a closed outline as line segments.
func (r *panelCanvasRenderer) drawOutline(o model.Outline, origin model.Point2D, scale float32, col color.NRGBA) {
	for i := 0; i+1 < len(o); i++ {
		line := canvas.NewLine(col)
		line.StrokeWidth = 1.5
		line.Position1 = fyne.NewPos(
			float32(o[i].X-origin.X)*scale,
			float32(o[i].Y-origin.Y)*scale,
		)
		line.Position2 = fyne.NewPos(
			float32(o[i+1].X-origin.X)*scale,
			float32(o[i+1].Y-origin.Y)*scale,
		)
		r.objects = append(r.objects, line)
	}
}

// drawBedOverflow shades the part of the layout past the laser bed red.
func (r *panelCanvasRenderer) drawBedOverflow(scale float32, layoutW, layoutH float64, canvasW, canvasH float32) {
	laser := r.pc.laser
	if laser.BedWidth <= 0 || laser.BedHeight <= 0 {
		return
	}

	type zone struct {
		x, y, w, h float32
	}
	var zones []zone

	if layoutW > laser.BedWidth {
		bx := float32(laser.BedWidth) * scale
		zones = append(zones, zone{x: bx, y: 0, w: canvasW - bx, h: canvasH})
	}
	if layoutH > laser.BedHeight {
		by := float32(laser.BedHeight) * scale
		zones = append(zones, zone{x: 0, y: by, w: canvasW, h: canvasH - by})
	}

	for _, z := range zones {
		zoneRect := canvas.NewRectangle(color.NRGBA{R: 255, G: 50, B: 50, A: 120}) // red warning
		zoneRect.Resize(fyne.NewSize(z.w, z.h))
		zoneRect.Move(fyne.NewPos(z.x, z.y))
		r.objects = append(r.objects, zoneRect)

		zoneBorder := canvas.NewRectangle(color.Transparent)
		zoneBorder.StrokeColor = color.NRGBA{R: 200, G: 0, B: 0, A: 255}
		zoneBorder.StrokeWidth = 2
		zoneBorder.Resize(fyne.NewSize(z.w, z.h))
		zoneBorder.Move(fyne.NewPos(z.x, z.y))
		r.objects = append(r.objects, zoneBorder)

		if z.w > 40 && z.h > 15 {
			label := canvas.NewText("OFF BED", color.White)
			label.TextSize = 8
			label.TextStyle = fyne.TextStyle{Bold: true}
			label.Move(fyne.NewPos(z.x+5, z.y+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *panelCanvasRenderer) Layout(size fyne.Size)        {}
func (r *panelCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *panelCanvasRenderer) Destroy()                     {}
func (r *panelCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *panelCanvasRenderer) MinSize() fyne.Size {
	scale, layoutW, layoutH, _ := r.scale()
	return fyne.NewSize(float32(layoutW)*scale, float32(layoutH)*scale)
}

// RenderBoxLayout creates a scrollable view of a generated box layout.
func RenderBoxLayout(box *model.Box, laser model.LaserSettings) fyne.CanvasObject {
	if box == nil || len(box.Panels) == 0 {
		return widget.NewLabel("No box yet. Set the dimensions, then click Generate.")
	}

	layoutW := box.Width()
	layoutH := box.Height()
	utilization := 0.0
	if layoutW > 0 && layoutH > 0 {
		utilization = box.PanelArea() / (layoutW * layoutH) * 100.0
	}

	header := widget.NewLabel(fmt.Sprintf(
		"Layout: %.0f × %.0f mm — %d panels, %.1f%% material utilization",
		layoutW, layoutH, len(box.Panels), utilization,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}

	items := []fyne.CanvasObject{
		header,
		NewPanelCanvas(box.Panels, laser, 600, 400),
		widget.NewSeparator(),
	}

	if laser.BedWidth > 0 && laser.BedHeight > 0 &&
		(layoutW > laser.BedWidth || layoutH > laser.BedHeight) {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: layout exceeds the %.0f × %.0f mm bed! Nest onto sheets or enlarge the bed.",
			laser.BedWidth, laser.BedHeight,
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
	}

	// Per-panel-size breakdown
	sizeBreakdown := buildPanelSizeBreakdown(box.Panels)
	if len(sizeBreakdown) > 1 {
		breakdownHeader := widget.NewLabel("Panel Size Breakdown:")
		breakdownHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, breakdownHeader)
		for _, line := range sizeBreakdown {
			items = append(items, widget.NewLabel(line))
		}
		items = append(items, widget.NewSeparator())
	}

	var cutLength float64
	for _, p := range box.Panels {
		cutLength += p.Outline.Perimeter()
	}
	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %.0f mm cut length, %.0f mm² panel area",
		cutLength, box.PanelArea(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// buildPanelSizeBreakdown groups panels by bounding box size and reports
// a count per size, largest first.
func buildPanelSizeBreakdown(panels []model.Panel) []string {
	type sizeKey struct {
		w, h float64
	}

	var order []sizeKey
	counts := make(map[sizeKey]int)

	for _, p := range panels {
		min, max := p.Outline.BoundingBox()
		key := sizeKey{roundMM(max.X - min.X), roundMM(max.Y - min.Y)}
		if _, exists := counts[key]; !exists {
			order = append(order, key)
		}
		counts[key]++
	}

	var lines []string
	for _, key := range order {
		lines = append(lines, fmt.Sprintf(
			"  %.1f x %.1f mm: %d panel(s)",
			key.w, key.h, counts[key],
		))
	}
	return lines
}

// roundMM rounds to a tenth of a millimetre so kerf-level float noise
// does not split identical panels into separate size groups.
func roundMM(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
