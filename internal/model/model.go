package model

import (
	"math"

	"github.com/google/uuid"
)

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a polygon as a sequence of 2D points.
// Panel outlines are explicitly closed: the last point repeats the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Width returns the bounding box width of the outline.
func (o Outline) Width() float64 {
	min, max := o.BoundingBox()
	return max.X - min.X
}

// Height returns the bounding box height of the outline.
func (o Outline) Height() float64 {
	min, max := o.BoundingBox()
	return max.Y - min.Y
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Area returns the absolute enclosed area via the shoelace formula.
func (o Outline) Area() float64 {
	if len(o) < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < len(o); i++ {
		j := (i + 1) % len(o)
		sum += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(sum) / 2.0
}

// Perimeter returns the total edge length of the outline, including the
// closing segment from the last point back to the first.
func (o Outline) Perimeter() float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := 0; i < len(o); i++ {
		j := (i + 1) % len(o)
		total += math.Hypot(o[j].X-o[i].X, o[j].Y-o[i].Y)
	}
	return total
}

// IsClosed reports whether the first and last points coincide within eps
// on both axes.
func (o Outline) IsClosed(eps float64) bool {
	if len(o) < 4 {
		return false
	}
	first, last := o[0], o[len(o)-1]
	return math.Abs(first.X-last.X) <= eps && math.Abs(first.Y-last.Y) <= eps
}

// Panel represents one flat part of a box: a closed cut path with a label.
type Panel struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Outline Outline `json:"outline"`
}

func NewPanel(label string, outline Outline) Panel {
	return Panel{
		ID:      uuid.New().String()[:8],
		Label:   label,
		Outline: outline,
	}
}

// Box holds the parameters a box was generated from and the resulting
// panels. A Box is rebuilt from scratch on every generation; panels are
// never patched in place.
type Box struct {
	Params BoxParameters `json:"params"`
	Panels []Panel       `json:"panels"`
}

// Bounds returns the corners of the bounding box around all panels.
func (b Box) Bounds() (min, max Point2D) {
	first := true
	for _, p := range b.Panels {
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

// Width returns the overall layout width across all panels.
func (b Box) Width() float64 {
	min, max := b.Bounds()
	return max.X - min.X
}

// Height returns the overall layout height across all panels.
func (b Box) Height() float64 {
	min, max := b.Bounds()
	return max.Y - min.Y
}

// PanelArea returns the summed outline area of all panels.
func (b Box) PanelArea() float64 {
	var total float64
	for _, p := range b.Panels {
		total += p.Outline.Area()
	}
	return total
}

// Find returns the first panel with the given label, or false.
func (b Box) Find(label string) (Panel, bool) {
	for _, p := range b.Panels {
		if p.Label == label {
			return p, true
		}
	}
	return Panel{}, false
}

// Project ties everything together for save/load.
type Project struct {
	Name   string        `json:"name"`
	Params BoxParameters `json:"params"`
	Laser  LaserSettings `json:"laser"`
	Layout LayoutConfig  `json:"layout"`
	Box    *Box          `json:"box,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:   "Untitled",
		Params: DefaultBoxParameters(),
		Laser:  DefaultLaserSettings(),
		Layout: DefaultLayoutConfig(),
	}
}
