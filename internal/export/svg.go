package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/BoxForge/internal/model"
)

// svgMargin is the whitespace kept around the layout in mm.
const svgMargin = 5.0

// svgCutStyle is the stroke applied to cut paths. Most laser controllers
// treat a thin red stroke as "cut" when importing vector files.
const svgCutStyle = `stroke="red" stroke-width="0.1" fill="none"`

// svgWriter serializes panel outlines into an SVG document. The first
// write error sticks and suppresses the rest.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

// WriteSVG writes the panel outlines of a box as an SVG document with
// millimeter-calibrated units: the viewBox spans the layout in mm and
// the width/height attributes carry explicit mm sizes, so the file
// imports at true scale.
func WriteSVG(w io.Writer, box model.Box) error {
	if len(box.Panels) == 0 {
		return fmt.Errorf("no panels to export")
	}

	min, max := box.Bounds()
	width := max.X - min.X + 2*svgMargin
	height := max.Y - min.Y + 2*svgMargin

	s := &svgWriter{w: w}
	s.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	s.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%.3fmm\" height=\"%.3fmm\" viewBox=\"0 0 %.3f %.3f\">\n",
		width, height, width, height)

	for _, p := range box.Panels {
		s.printf("  <path id=\"%s\" d=\"%s\" %s/>\n", pathID(p.Label), pathData(p.Outline, min, max), svgCutStyle)
	}

	s.printf("</svg>\n")
	return s.err
}

// ExportSVG writes the box layout to an SVG file.
func ExportSVG(path string, box model.Box) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := WriteSVG(f, box); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// pathData renders an outline as an SVG path. Y is flipped so the
// document reads the same way up as the generator's coordinate system,
// and the explicit closing point is dropped in favor of a Z command.
func pathData(o model.Outline, min, max model.Point2D) string {
	pts := o
	if o.IsClosed(0.01) && len(o) > 1 {
		pts = o[:len(o)-1]
	}

	var b strings.Builder
	for i, pt := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.3f %.3f ", cmd, pt.X-min.X+svgMargin, max.Y-pt.Y+svgMargin)
	}
	b.WriteString("Z")
	return b.String()
}

// pathID turns a panel label into a usable XML id attribute. Labels from
// imported files may contain spaces.
func pathID(label string) string {
	return strings.ReplaceAll(label, " ", "-")
}
