package model

import "github.com/google/uuid"

// MaterialPreset represents a reusable stock material configuration.
// Choosing a material sets the box thickness and burn plus the laser
// parameters that are known to cut it.
type MaterialPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Thickness   float64 `json:"thickness"`    // mm
	Burn        float64 `json:"burn"`         // Kerf in mm
	FeedRate    float64 `json:"feed_rate"`    // mm/min
	LaserPower  int     `json:"laser_power"`  // S value
	LaserPasses int     `json:"laser_passes"` //
	Notes       string  `json:"notes"`
}

// NewMaterialPreset creates a new MaterialPreset with a generated ID.
func NewMaterialPreset(name string, thickness, burn, feedRate float64, power, passes int) MaterialPreset {
	return MaterialPreset{
		ID:          uuid.New().String()[:8],
		Name:        name,
		Thickness:   thickness,
		Burn:        burn,
		FeedRate:    feedRate,
		LaserPower:  power,
		LaserPasses: passes,
	}
}

// ApplyToParameters copies the material's stock properties into box parameters.
func (m MaterialPreset) ApplyToParameters(p *BoxParameters) {
	p.Thickness = m.Thickness
	p.Burn = m.Burn
}

// ApplyToLaser copies the material's cut parameters into laser settings.
func (m MaterialPreset) ApplyToLaser(s *LaserSettings) {
	s.FeedRate = m.FeedRate
	s.LaserPower = m.LaserPower
	s.LaserPasses = m.LaserPasses
}

// DefaultMaterials returns the starter material library written on first run.
// Values are conservative starting points for a 40-60W CO2 laser; users tune
// and save their own.
func DefaultMaterials() []MaterialPreset {
	return []MaterialPreset{
		NewMaterialPreset("Poplar Plywood 3mm", 3.0, 0.10, 900, 700, 1),
		NewMaterialPreset("Birch Plywood 6mm", 6.0, 0.15, 350, 850, 1),
		NewMaterialPreset("MDF 3mm", 3.0, 0.12, 700, 750, 1),
		NewMaterialPreset("MDF 6mm", 6.0, 0.17, 300, 900, 2),
		NewMaterialPreset("Acrylic 3mm", 3.0, 0.08, 500, 650, 1),
		NewMaterialPreset("Acrylic 5mm", 5.0, 0.10, 250, 800, 1),
		NewMaterialPreset("Basswood 4mm", 4.0, 0.11, 800, 700, 1),
	}
}
