package engine

import (
	"fmt"

	"github.com/piwi3910/BoxForge/internal/model"
)

// LayoutStats summarizes one generated layout for comparison.
type LayoutStats struct {
	PanelCount  int     // Number of panels in the layout
	PanelArea   float64 // Summed panel outline area in mm²
	SheetWidth  float64 // Layout bounding box width in mm
	SheetHeight float64 // Layout bounding box height in mm
	SheetArea   float64 // Bounding box area in mm²
	Utilization float64 // PanelArea / SheetArea, 0 when the sheet is empty
	CutLength   float64 // Total cut path length in mm
}

// MeasureLayout computes the stats of a generated box layout.
func MeasureLayout(b model.Box) LayoutStats {
	stats := LayoutStats{
		PanelCount:  len(b.Panels),
		PanelArea:   b.PanelArea(),
		SheetWidth:  b.Width(),
		SheetHeight: b.Height(),
	}
	stats.SheetArea = stats.SheetWidth * stats.SheetHeight
	if stats.SheetArea > 0 {
		stats.Utilization = stats.PanelArea / stats.SheetArea
	}
	for _, p := range b.Panels {
		stats.CutLength += p.Outline.Perimeter()
	}
	return stats
}

// ComparisonScenario defines a named parameter set to compare.
type ComparisonScenario struct {
	Name   string
	Params model.BoxParameters
	Layout model.LayoutConfig
}

// ComparisonResult holds the generated layout and computed statistics
// for a single scenario. Scenarios that fail to generate carry the
// error instead of stats.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Stats    LayoutStats
	Err      error
}

// CompareScenarios generates each scenario and returns the results in
// scenario order. This enables side-by-side comparison of different
// parameters (e.g., packed vs. row layout, different spacing).
func CompareScenarios(scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		res := ComparisonResult{Scenario: scenario}
		box, err := New(scenario.Layout).Generate(scenario.Params)
		if err != nil {
			res.Err = err
		} else {
			res.Stats = MeasureLayout(box)
		}
		results = append(results, res)
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current parameters, varying key knobs to show what-if alternatives.
func BuildDefaultScenarios(params model.BoxParameters, layout model.LayoutConfig) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:   "Current Settings",
			Params: params,
			Layout: layout,
		},
	}

	// Scenario: flip the layout strategy
	alt := params
	alt.OptimizeLayout = !params.OptimizeLayout
	altName := "Shelf Packed"
	if params.OptimizeLayout {
		altName = "Row Layout"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:   altName,
		Params: alt,
		Layout: layout,
	})

	// Scenario: tighter panel spacing
	if layout.Spacing > 2.0 {
		tight := layout
		tight.Spacing = layout.Spacing * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:   fmt.Sprintf("Spacing %.1fmm (half)", tight.Spacing),
			Params: params,
			Layout: tight,
		})
	}

	// Scenario: no kerf compensation, to show the raw geometry cost
	if params.Burn > 0 {
		noKerf := params
		noKerf.Burn = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:   "No Kerf Compensation",
			Params: noKerf,
			Layout: layout,
		})
	}

	return scenarios
}
