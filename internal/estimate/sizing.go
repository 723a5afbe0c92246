// Package estimate holds the pure sizing and cost arithmetic. Nothing
// here performs I/O; callers validate inputs before calling in.
package estimate

import (
	"fmt"
	"math"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

// Canonical sizing constants. Historical client revisions disagreed on
// the battery unit (16 vs 13.5 kWh); the server-side figures win.
const (
	DefaultPerformanceRatio = 0.70
	DefaultPanelWatts       = 400.0
	DefaultBatteryKWh       = 16.0
)

// Sizer carries the physical constants the sizing formulas use.
type Sizer struct {
	PerformanceRatio float64 // derating factor for real-world losses
	PanelWatts       float64
	BatteryKWh       float64
}

// DefaultSizer returns a Sizer with the canonical constants.
func DefaultSizer() Sizer {
	return Sizer{
		PerformanceRatio: DefaultPerformanceRatio,
		PanelWatts:       DefaultPanelWatts,
		BatteryKWh:       DefaultBatteryKWh,
	}
}

// SystemSize computes the recommended array from annual consumption
// (kWh) and annual average irradiance (kWh/m²/day). Both inputs must
// be positive; the orchestrator rejects anything else before calling.
//
// The annual production figure is recomputed from the rounded size,
// so it will not exactly equal the requested consumption.
func (s Sizer) SystemSize(annualConsumption, annualIrradiance float64, batteryCount int) models.SizingResult {
	yieldPerKW := annualIrradiance * 365 * s.PerformanceRatio

	solarSize := roundTenth(annualConsumption / yieldPerKW)
	panelCount := int(math.Ceil(solarSize * 1000 / s.PanelWatts))
	production := solarSize * yieldPerKW
	offset := math.Min(100, math.Round(production/annualConsumption*100))

	return models.SizingResult{
		SolarSize:                 solarSize,
		PanelCount:                panelCount,
		EstimatedAnnualProduction: production,
		EnergyOffset:              fmt.Sprintf("%d%%", int(offset)),
		BatterySize:               s.BatteryDescription(batteryCount),
	}
}

// BatteryDescription renders the battery line for the proposal, e.g.
// "3 x 16 kWh", or "None" when no batteries are requested.
func (s Sizer) BatteryDescription(batteryCount int) string {
	if batteryCount <= 0 {
		return "None"
	}
	return fmt.Sprintf("%d x %g kWh", batteryCount, s.BatteryKWh)
}

// RecommendBatteries suggests a battery configuration targeting a 2:1
// storage-to-array-size ratio.
func (s Sizer) RecommendBatteries(solarSizeKW float64) models.BatteryRecommendation {
	target := solarSizeKW * 2
	count := int(math.Ceil(target / s.BatteryKWh))
	return models.BatteryRecommendation{
		BatteryCount: count,
		TotalStorage: float64(count) * s.BatteryKWh,
	}
}

// roundTenth rounds half-up on the tenths digit (8.5339 → 8.5).
func roundTenth(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}
