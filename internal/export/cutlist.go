package export

import (
	"fmt"
	"math"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportCutListXLSX writes a spreadsheet cut list: one row per panel
// with bounding-box dimensions, cut area, cut length and layout
// position, plus a totals row. Dimensions are bounding boxes, so finger
// protrusion is included.
func ExportCutListXLSX(path string, box model.Box) error {
	if len(box.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"Panel", "Width (mm)", "Height (mm)", "Area (mm²)", "Cut Length (mm)", "X (mm)", "Y (mm)"}
	for i, h := range headers {
		if err := setCell(f, sheet, i+1, 1, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return err
	}

	row := 2
	var totalArea, totalCut float64
	for _, p := range box.Panels {
		pmin, pmax := p.Outline.BoundingBox()
		area := p.Outline.Area()
		perimeter := p.Outline.Perimeter()

		values := []interface{}{
			p.Label,
			round2(pmax.X - pmin.X),
			round2(pmax.Y - pmin.Y),
			round2(area),
			round2(perimeter),
			round2(pmin.X),
			round2(pmin.Y),
		}
		for i, v := range values {
			if err := setCell(f, sheet, i+1, row, v); err != nil {
				return err
			}
		}

		totalArea += area
		totalCut += perimeter
		row++
	}

	// Totals row
	if err := setCell(f, sheet, 1, row, fmt.Sprintf("Total (%d panels)", len(box.Panels))); err != nil {
		return err
	}
	if err := setCell(f, sheet, 4, row, round2(totalArea)); err != nil {
		return err
	}
	if err := setCell(f, sheet, 5, row, round2(totalCut)); err != nil {
		return err
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "G", 15); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save cut list: %w", err)
	}
	return nil
}

// setCell writes a single cell value by column and row index (1-based).
func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

// round2 keeps spreadsheet values readable without float noise.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
