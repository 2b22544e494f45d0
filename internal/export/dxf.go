package export

import (
	"fmt"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"
)

// cutLayerName is the DXF layer all cut paths land on. CAM tools map
// layers to operations, so every outline goes to one well-known name.
const cutLayerName = "CUT"

// ExportDXF writes each panel outline as a closed LWPOLYLINE on the CUT
// layer. Coordinates are in mm with the layout's bottom-left corner at
// the DXF origin; Y grows upward as CAD tools expect, matching the
// generator's coordinate system directly.
func ExportDXF(path string, box model.Box) error {
	if len(box.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(cutLayerName, color.Red, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to create cut layer: %w", err)
	}

	min, _ := box.Bounds()
	for _, p := range box.Panels {
		verts := polylineVertices(p.Outline, min)
		if len(verts) < 3 {
			continue
		}
		if _, err := d.LwPolyline(true, verts...); err != nil {
			return fmt.Errorf("failed to write outline for %q: %w", p.Label, err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF file: %w", err)
	}
	return nil
}

// polylineVertices converts an outline to LWPOLYLINE vertex arrays,
// dropping the explicit closing point since the polyline closes itself.
func polylineVertices(o model.Outline, min model.Point2D) [][]float64 {
	pts := o
	if o.IsClosed(0.01) && len(o) > 1 {
		pts = o[:len(o)-1]
	}
	verts := make([][]float64, len(pts))
	for i, pt := range pts {
		verts[i] = []float64{pt.X - min.X, pt.Y - min.Y}
	}
	return verts
}
