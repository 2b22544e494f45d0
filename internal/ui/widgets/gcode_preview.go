package widgets

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BoxForge/internal/gcode"
	"github.com/piwi3910/BoxForge/internal/model"
)

// Toolpath colors for different move types.
var (
	colorRapid = color.NRGBA{R: 255, G: 60, B: 60, A: 200}   // Red for rapid moves
	colorCut   = color.NRGBA{R: 30, G: 120, B: 255, A: 230}  // Blue for cutting moves
	colorSheet = color.NRGBA{R: 230, G: 210, B: 175, A: 255} // Light wood for stock
	colorPanel = color.NRGBA{R: 100, G: 130, B: 180, A: 160} // Light blue for panel outlines
)

// GCodePreview is a custom Fyne widget that renders a visual preview
// of GCode toolpath movements overlaid on the panel outlines they cut.
type GCodePreview struct {
	widget.BaseWidget
	moves     []gcode.GCodeMove
	panels    []model.Panel
	maxWidth  float32
	maxHeight float32

	// Extent of the drawing in layout coordinates, spanning both the
	// panel outlines and every toolpath endpoint.
	originX, originY float64
	spanW, spanH     float64
}

// NewGCodePreview creates a new GCode preview widget. Moves and panels
// share the layout coordinate frame the generator emits.
func NewGCodePreview(moves []gcode.GCodeMove, panels []model.Panel, maxW, maxH float32) *GCodePreview {
	gp := &GCodePreview{
		moves:     moves,
		panels:    panels,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	gp.measure()
	gp.ExtendBaseWidget(gp)
	return gp
}

// measure finds the bounding box of everything that will be drawn.
// Rapid moves start at the machine origin, so the extent can reach
// outside the panel layout.
func (gp *GCodePreview) measure() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	grow := func(x, y float64) {
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}

	for _, p := range gp.panels {
		pmin, pmax := p.Outline.BoundingBox()
		grow(pmin.X, pmin.Y)
		grow(pmax.X, pmax.Y)
	}
	for _, m := range gp.moves {
		grow(m.FromX, m.FromY)
		grow(m.ToX, m.ToY)
	}

	if math.IsInf(minX, 1) {
		return
	}
	gp.originX, gp.originY = minX, minY
	gp.spanW, gp.spanH = maxX-minX, maxY-minY
}

// CreateRenderer implements fyne.Widget.
func (gp *GCodePreview) CreateRenderer() fyne.WidgetRenderer {
	return newGCodePreviewRenderer(gp)
}

type gcodePreviewRenderer struct {
	gp      *GCodePreview
	objects []fyne.CanvasObject
}

func newGCodePreviewRenderer(gp *GCodePreview) *gcodePreviewRenderer {
	r := &gcodePreviewRenderer{gp: gp}
	r.rebuild()
	return r
}

const previewMargin = float32(10)

func (gp *GCodePreview) fitScale() float32 {
	if gp.spanW <= 0 || gp.spanH <= 0 {
		return 1
	}
	scaleX := (gp.maxWidth - previewMargin*2) / float32(gp.spanW)
	scaleY := (gp.maxHeight - previewMargin*2) / float32(gp.spanH)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale <= 0 {
		scale = 1
	}
	return scale
}

func (r *gcodePreviewRenderer) rebuild() {
	r.objects = nil

	gp := r.gp
	if gp.spanW <= 0 || gp.spanH <= 0 {
		return
	}

	scale := gp.fitScale()
	offsetX := previewMargin
	offsetY := previewMargin

	mapX := func(x float64) float32 { return float32(x-gp.originX)*scale + offsetX }
	mapY := func(y float64) float32 { return float32(y-gp.originY)*scale + offsetY }

	canvasW := float32(gp.spanW) * scale
	canvasH := float32(gp.spanH) * scale

	// Stock sheet background
	bg := canvas.NewRectangle(colorSheet)
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(offsetX, offsetY))
	r.objects = append(r.objects, bg)

	// Stock border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(offsetX, offsetY))
	r.objects = append(r.objects, border)

	// Draw panel outlines as the light backdrop the toolpath cuts over
	for _, p := range gp.panels {
		outline := p.Outline
		for i := 0; i+1 < len(outline); i++ {
			line := canvas.NewLine(colorPanel)
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(mapX(outline[i].X), mapY(outline[i].Y))
			line.Position2 = fyne.NewPos(mapX(outline[i+1].X), mapY(outline[i+1].Y))
			r.objects = append(r.objects, line)
		}

		pmin, pmax := outline.BoundingBox()
		pw := float32(pmax.X-pmin.X) * scale
		ph := float32(pmax.Y-pmin.Y) * scale
		if pw > 40 && ph > 18 {
			label := canvas.NewText(p.Label, color.NRGBA{R: 50, G: 70, B: 120, A: 200})
			label.TextSize = 10
			label.Move(fyne.NewPos(mapX(pmin.X)+3, mapY(pmin.Y)+2))
			r.objects = append(r.objects, label)
		}
	}

	// Draw toolpath lines
	for _, m := range gp.moves {
		dx := m.ToX - m.FromX
		dy := m.ToY - m.FromY
		if math.Sqrt(dx*dx+dy*dy) < 0.01 {
			continue
		}

		fromX := mapX(m.FromX)
		fromY := mapY(m.FromY)
		toX := mapX(m.ToX)
		toY := mapY(m.ToY)

		switch m.Type {
		case gcode.MoveRapid:
			line := canvas.NewLine(colorRapid)
			line.StrokeWidth = 1
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)

			// Draw dashes along rapid moves for visual distinction
			r.drawDashedOverlay(fromX, fromY, toX, toY)

		case gcode.MoveCut:
			line := canvas.NewLine(colorCut)
			line.StrokeWidth = 2
			line.Position1 = fyne.NewPos(fromX, fromY)
			line.Position2 = fyne.NewPos(toX, toY)
			r.objects = append(r.objects, line)
		}
	}
}

// drawDashedOverlay adds alternating gaps along a rapid move line for dashed appearance.
func (r *gcodePreviewRenderer) drawDashedOverlay(x1, y1, x2, y2 float32) {
	dx := x2 - x1
	dy := y2 - y1
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length < 8 {
		return
	}

	dashLen := float32(6)
	gapLen := float32(4)
	nx := dx / length
	ny := dy / length

	// Overlay background-colored segments for gaps
	cursor := dashLen
	for cursor+gapLen < length {
		gx1 := x1 + nx*cursor
		gy1 := y1 + ny*cursor
		gx2 := x1 + nx*(cursor+gapLen)
		gy2 := y1 + ny*(cursor+gapLen)

		gap := canvas.NewLine(colorSheet)
		gap.StrokeWidth = 2.5
		gap.Position1 = fyne.NewPos(gx1, gy1)
		gap.Position2 = fyne.NewPos(gx2, gy2)
		r.objects = append(r.objects, gap)

		cursor += dashLen + gapLen
	}
}

func (r *gcodePreviewRenderer) Layout(size fyne.Size)        {}
func (r *gcodePreviewRenderer) Refresh()                     { r.rebuild() }
func (r *gcodePreviewRenderer) Destroy()                     {}
func (r *gcodePreviewRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *gcodePreviewRenderer) MinSize() fyne.Size {
	gp := r.gp
	if gp.spanW <= 0 || gp.spanH <= 0 {
		return fyne.NewSize(100, 100)
	}
	scale := gp.fitScale()
	return fyne.NewSize(
		float32(gp.spanW)*scale+previewMargin*2,
		float32(gp.spanH)*scale+previewMargin*2,
	)
}

// RenderGCodePreview parses generated GCode and renders its toolpath
// over the panel outlines it came from, with a travel summary below.
func RenderGCodePreview(box model.Box, gcodeStr string) fyne.CanvasObject {
	moves := gcode.ParseGCode(gcodeStr)
	if len(moves) == 0 && len(box.Panels) == 0 {
		return widget.NewLabel("Nothing to preview yet. Generate a box first.")
	}

	preview := NewGCodePreview(moves, box.Panels, 700, 450)

	stats := gcode.Stats(moves)
	summary := widget.NewLabel(fmt.Sprintf(
		"%d moves: %.0f mm cutting (blue), %.0f mm rapids (red dashed), est. %.1f min",
		stats.MoveCount, stats.CutLength, stats.RapidLength, stats.TotalTime(),
	))

	return container.NewVScroll(container.NewVBox(preview, summary))
}
