package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/piwi3910/SheetPack/internal/errors"
	"github.com/piwi3910/SheetPack/internal/model"
)

func compareInputs() []model.InputSprite {
	return []model.InputSprite{
		rgbaSprite(4, 4, [2]int{1, 1}, [2]int{2, 2}),
		rgbaSprite(3, 2, [2]int{0, 0}, [2]int{2, 1}),
		rgbaSprite(2, 5, [2]int{1, 4}),
	}
}

func TestCompareScenarios_BasicComparison(t *testing.T) {
	base := model.DefaultSettings()
	base.PreferredWidth = 16
	base.PreferredHeight = 16

	scenarios := []ComparisonScenario{
		{Name: "MaxRects", Settings: base},
		{Name: "Simple", Settings: func() model.PackSettings {
			s := base
			s.Algorithm = model.AlgorithmSimple
			return s
		}()},
	}

	results := CompareScenarios(scenarios, compareInputs())
	require.Len(t, results, 2)

	for _, r := range results {
		require.NoError(t, r.Err, r.Scenario.Name)
		assert.Equal(t, 1, r.SheetsUsed, r.Scenario.Name)
		assert.Greater(t, r.Efficiency, 0.0)
		assert.LessOrEqual(t, r.Efficiency, 100.0)
		assert.InDelta(t, 100.0, r.Efficiency+r.WastePercent, 1e-9)
	}
	assert.Equal(t, "MaxRects", results[0].Scenario.Name)
	assert.Equal(t, "Simple", results[1].Scenario.Name)
}

func TestCompareScenarios_TrimImprovesEfficiency(t *testing.T) {
	base := model.DefaultSettings()
	trimmed := base
	trimmed.Trim = true

	results := CompareScenarios([]ComparisonScenario{
		{Name: "raw", Settings: base},
		{Name: "trimmed", Settings: trimmed},
	}, compareInputs())
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.NoError(t, results[1].Err)

	assert.Less(t, results[1].TotalArea, results[0].TotalArea)
}

func TestCompareScenarios_FailingScenarioKeepsOthers(t *testing.T) {
	bad := model.DefaultSettings()
	bad.Algorithm = "skyline"

	results := CompareScenarios([]ComparisonScenario{
		{Name: "bad", Settings: bad},
		{Name: "good", Settings: model.DefaultSettings()},
	}, compareInputs())
	require.Len(t, results, 2)

	assert.True(t, perrors.Is(results[0].Err, perrors.ErrCodeInvalidPacker))
	assert.NoError(t, results[1].Err)
	assert.Equal(t, 1, results[1].SheetsUsed)
}

func TestCompareScenarios_Empty(t *testing.T) {
	results := CompareScenarios(nil, compareInputs())
	assert.Empty(t, results)
}

func TestBuildDefaultScenarios_MaxRects(t *testing.T) {
	base := model.DefaultSettings()
	base.PreferredWidth = 512
	base.PreferredHeight = 256

	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 5)

	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)
	assert.Equal(t, model.AlgorithmSimple, scenarios[1].Settings.Algorithm)
	assert.Equal(t, 256, scenarios[2].Settings.PreferredWidth)
	assert.Equal(t, 128, scenarios[2].Settings.PreferredHeight)
	assert.Equal(t, 1024, scenarios[3].Settings.PreferredWidth)
	assert.Equal(t, "With Trim", scenarios[4].Name)
	assert.True(t, scenarios[4].Settings.Trim)
}

func TestBuildDefaultScenarios_Simple(t *testing.T) {
	base := model.DefaultSettings()
	base.Algorithm = model.AlgorithmSimple
	base.Trim = true

	scenarios := BuildDefaultScenarios(base)
	require.Len(t, scenarios, 3)

	assert.Equal(t, "MaxRects Packer", scenarios[1].Name)
	assert.Equal(t, "Without Trim", scenarios[2].Name)
	assert.False(t, scenarios[2].Settings.Trim)
}
