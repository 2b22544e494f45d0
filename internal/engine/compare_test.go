package engine

import (
	"testing"

	"github.com/piwi3910/BoxForge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureLayout_SimpleSquare(t *testing.T) {
	box := model.Box{Panels: []model.Panel{rectPanel("sq", 0, 0, 10, 10)}}

	stats := MeasureLayout(box)

	assert.Equal(t, 1, stats.PanelCount)
	assert.InDelta(t, 100.0, stats.PanelArea, 1e-9)
	assert.InDelta(t, 10.0, stats.SheetWidth, 1e-9)
	assert.InDelta(t, 1.0, stats.Utilization, 1e-9)
	assert.InDelta(t, 40.0, stats.CutLength, 1e-9)
}

func TestMeasureLayout_EmptyBox(t *testing.T) {
	stats := MeasureLayout(model.Box{})

	assert.Equal(t, 0, stats.PanelCount)
	assert.Equal(t, 0.0, stats.Utilization)
}

func TestCompareScenarios_RunsEveryScenario(t *testing.T) {
	scenarios := BuildDefaultScenarios(model.DefaultBoxParameters(), model.DefaultLayoutConfig())
	require.Len(t, scenarios, 4)

	results := CompareScenarios(scenarios)

	require.Len(t, results, 4)
	for _, res := range results {
		require.NoError(t, res.Err, "scenario %s", res.Scenario.Name)
		assert.Equal(t, 6, res.Stats.PanelCount)
		assert.Greater(t, res.Stats.Utilization, 0.0)
	}
}

func TestCompareScenarios_CarriesGenerationErrors(t *testing.T) {
	bad := model.DefaultBoxParameters()
	bad.X = 5

	results := CompareScenarios([]ComparisonScenario{
		{Name: "broken", Params: bad, Layout: model.DefaultLayoutConfig()},
	})

	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, model.ErrDimensionTooSmall)
}

func TestBuildDefaultScenarios_SkipsIrrelevantVariants(t *testing.T) {
	params := model.DefaultBoxParameters()
	params.Burn = 0
	layout := model.DefaultLayoutConfig()
	layout.Spacing = 1.0

	scenarios := BuildDefaultScenarios(params, layout)

	// Only the base scenario and the layout flip remain.
	require.Len(t, scenarios, 2)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, "Shelf Packed", scenarios[1].Name)
}

func TestBuildDefaultScenarios_FlipNameMatchesBase(t *testing.T) {
	params := model.DefaultBoxParameters()
	params.OptimizeLayout = true

	scenarios := BuildDefaultScenarios(params, model.DefaultLayoutConfig())

	assert.Equal(t, "Row Layout", scenarios[1].Name)
	assert.False(t, scenarios[1].Params.OptimizeLayout)
}
