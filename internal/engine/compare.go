package engine

import (
	"fmt"

	"github.com/piwi3910/SheetPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packed sheets and computed statistics for a
// single scenario. Err is set when the scenario could not be packed.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Sheets       []model.SpriteSheet
	SheetsUsed   int
	TotalArea    int
	Efficiency   float64
	WastePercent float64
	Err          error
}

// CompareScenarios packs the same inputs under each scenario and returns the
// results in scenario order. A failing scenario does not stop the others.
func CompareScenarios(scenarios []ComparisonScenario, inputs []model.InputSprite) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		sheets, err := packScenario(scenario.Settings, inputs)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		totalArea := 0
		for _, s := range sheets {
			totalArea += s.TotalArea()
		}
		efficiency := model.TotalEfficiency(sheets)

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Sheets:       sheets,
			SheetsUsed:   len(sheets),
			TotalArea:    totalArea,
			Efficiency:   efficiency,
			WastePercent: 100.0 - efficiency,
		})
	}

	return results
}

func packScenario(settings model.PackSettings, inputs []model.InputSprite) ([]model.SpriteSheet, error) {
	packer, err := NewPacker(settings)
	if err != nil {
		return nil, err
	}
	if settings.Trim {
		inputs, err = Trim(inputs, settings.Stride, settings.AlphaChannel)
		if err != nil {
			return nil, err
		}
	}
	return Pack(inputs, settings.Stride, packer)
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Try the other packer
	altPacker := baseSettings
	if baseSettings.Algorithm == model.AlgorithmSimple {
		altPacker.Algorithm = model.AlgorithmMaxRects
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "MaxRects Packer",
			Settings: altPacker,
		})
	} else {
		altPacker.Algorithm = model.AlgorithmSimple
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Simple Packer",
			Settings: altPacker,
		})
	}

	// Sheet size only matters to maxrects
	if baseSettings.Algorithm != model.AlgorithmSimple {
		half := baseSettings
		half.PreferredWidth = max(1, baseSettings.PreferredWidth/2)
		half.PreferredHeight = max(1, baseSettings.PreferredHeight/2)
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Sheet %dx%d (half)", half.PreferredWidth, half.PreferredHeight),
			Settings: half,
		})

		double := baseSettings
		double.PreferredWidth = baseSettings.PreferredWidth * 2
		double.PreferredHeight = baseSettings.PreferredHeight * 2
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Sheet %dx%d (double)", double.PreferredWidth, double.PreferredHeight),
			Settings: double,
		})
	}

	// Scenario: Toggle trimming
	toggled := baseSettings
	toggled.Trim = !baseSettings.Trim
	name := "With Trim"
	if baseSettings.Trim {
		name = "Without Trim"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: toggled,
	})

	return scenarios
}
