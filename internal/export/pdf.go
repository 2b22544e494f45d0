// Package export writes generated box layouts to cut-ready vector files
// and human-readable documents.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxForge/internal/model"
)

// panelColor represents an RGB fill color for a drawn panel.
type panelColor struct {
	R, G, B int
}

// panelColors mirrors the color scheme used in the UI panel canvas widget.
var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a box layout: a scale drawing
// of every panel outline on the first page, followed by a summary page
// with the generation parameters and a per-panel dimension table.
func ExportPDF(path string, box model.Box, laser model.LaserSettings) error {
	if len(box.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, box)

	pdf.AddPage()
	renderSummaryPage(pdf, box, laser)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the full panel layout on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, box model.Box) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	p := box.Params
	title := fmt.Sprintf("Panel Layout: %d panels", len(box.Panels))
	if p.X > 0 {
		title = fmt.Sprintf("Box Layout: %.0f x %.0f x %.0f mm, %.1f mm stock", p.X, p.Y, p.H, p.Thickness)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Panels: %d | Cut area: %.0f mm² | Cut length: %.0f mm | Layout: %.0f x %.0f mm",
		len(box.Panels), box.PanelArea(), totalCutLength(box), box.Width(), box.Height())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	// Calculate scale to fit the layout within the drawing area
	min, max := box.Bounds()
	layoutW := max.X - min.X
	layoutH := max.Y - min.Y
	scaleX := drawWidth / layoutW
	scaleY := drawHeight / layoutH
	scale := math.Min(scaleX, scaleY)

	canvasW := layoutW * scale
	canvasH := layoutH * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Draw stock sheet background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Draw panel outlines. Y is flipped so the page reads the same way
	// up as the generator's coordinate system.
	for i, panel := range box.Panels {
		col := panelColors[i%len(panelColors)]

		pts := make([]fpdf.PointType, len(panel.Outline))
		for j, pt := range panel.Outline {
			pts[j] = fpdf.PointType{
				X: offsetX + (pt.X-min.X)*scale,
				Y: offsetY + (max.Y-pt.Y)*scale,
			}
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Polygon(pts, "FD")

		drawPanelLabel(pdf, panel, scale, offsetX, offsetY, min, max)
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, layoutW, layoutH, offsetX, offsetY, canvasW, canvasH)

	// Panel legend at bottom of page
	drawPanelLegend(pdf, box, offsetY+canvasH+5)
}

// drawPanelLabel writes the panel name and bounding size centered in the
// panel, when the drawn rectangle is large enough to hold them.
func drawPanelLabel(pdf *fpdf.Fpdf, panel model.Panel, scale, offsetX, offsetY float64, min, max model.Point2D) {
	pmin, pmax := panel.Outline.BoundingBox()
	pw := (pmax.X - pmin.X) * scale
	ph := (pmax.Y - pmin.Y) * scale
	px := offsetX + (pmin.X-min.X)*scale
	py := offsetY + (max.Y-pmax.Y)*scale

	if pw <= 15 || ph <= 8 {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	label := panel.Label
	dims := fmt.Sprintf("%.0fx%.0f", pmax.X-pmin.X, pmax.Y-pmin.Y)

	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	// First line: label
	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}

	// Second line: dimensions
	if ph > 14 && dimsW < pw-2 {
		pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds width and height labels outside the layout rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, layoutW, layoutH, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the layout)
	widthLabel := fmt.Sprintf("%.1f mm", layoutW)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the layout, rotated)
	heightLabel := fmt.Sprintf("%.1f mm", layoutH)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawPanelLegend renders a compact legend of panels at the bottom of the layout page.
func drawPanelLegend(pdf *fpdf.Fpdf, box model.Box, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panels:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, panel := range box.Panels {
		col := panelColors[i%len(panelColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", panel.Label, panel.Outline.Width(), panel.Outline.Height())
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with box parameters,
// the per-panel dimension table and the laser settings.
func renderSummaryPage(pdf *fpdf.Fpdf, box model.Box, laser model.LaserSettings) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Box Cutting Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	// Box parameters
	p := box.Params
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Box Parameters", "", 0, "L", false, 0, "")
	y += 9

	sizeLabel := "Inner Size"
	if p.Outside {
		sizeLabel = "Outer Size"
	}
	paramItems := []struct {
		label string
		value string
	}{
		{sizeLabel, fmt.Sprintf("%.1f x %.1f x %.1f mm", p.X, p.Y, p.H)},
		{"Material Thickness", fmt.Sprintf("%.1f mm", p.Thickness)},
		{"Kerf Width", fmt.Sprintf("%.2f mm", p.Burn)},
		{"Box Type", p.BoxType.String()},
		{"Joint Style", p.FingerJoint.Style.String()},
		{"Finger / Space", fmt.Sprintf("%.1f / %.1f x thickness", p.FingerJoint.Finger, p.FingerJoint.Space)},
		{"Dividers", fmt.Sprintf("%d x %d", p.DividersX, p.DividersY)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range paramItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-panel breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Panel Breakdown", "", 0, "L", false, 0, "")
	y += 9

	// Table header
	colWidths := []float64{15, 50, 60, 60, 60}
	headers := []string{"#", "Panel", "Size (mm)", "Area (mm²)", "Cut Length (mm)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows. Stop before running into the laser settings block;
	// boxes with many dividers do not fit on one page.
	pdf.SetFont("Helvetica", "", 9)
	for i, panel := range box.Panels {
		if y > pageHeight-marginBottom-55 {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetXY(marginLeft, y+1)
			pdf.CellFormat(100, 5, fmt.Sprintf("... and %d more panels", len(box.Panels)-i), "", 0, "L", false, 0, "")
			y += 6
			break
		}

		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			panel.Label,
			fmt.Sprintf("%.1f x %.1f", panel.Outline.Width(), panel.Outline.Height()),
			fmt.Sprintf("%.0f", panel.Outline.Area()),
			fmt.Sprintf("%.0f", panel.Outline.Perimeter()),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Laser settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Laser Settings", "", 0, "L", false, 0, "")
	y += 9

	laserItems := []struct {
		label string
		value string
	}{
		{"GCode Profile", laser.GCodeProfile},
		{"Feed Rate", fmt.Sprintf("%.0f mm/min", laser.FeedRate)},
		{"Laser Power", fmt.Sprintf("S%d", laser.LaserPower)},
		{"Passes", fmt.Sprintf("%d", laser.LaserPasses)},
		{"Bed Size", fmt.Sprintf("%.0f x %.0f mm", laser.BedWidth, laser.BedHeight)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range laserItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoxForge - Finger Joint Box Generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// totalCutLength returns the summed outline perimeter across all panels.
func totalCutLength(box model.Box) float64 {
	total := 0.0
	for _, p := range box.Panels {
		total += p.Outline.Perimeter()
	}
	return total
}
