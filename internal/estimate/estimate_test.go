package estimate

import (
	"math"
	"testing"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

func TestSystemSizeReference(t *testing.T) {
	// 12000 / (5.5 * 365 * 0.70) = 12000 / 1405.25 ≈ 8.5394 → 8.5 kW
	s := DefaultSizer()
	res := s.SystemSize(12000, 5.5, 0)

	if res.SolarSize != 8.5 {
		t.Errorf("solarSize = %v, want 8.5", res.SolarSize)
	}
	if res.PanelCount != 22 {
		t.Errorf("panelCount = %d, want 22", res.PanelCount)
	}

	// Production is recomputed from the rounded size.
	wantProduction := 8.5 * 5.5 * 365 * 0.70
	if math.Abs(res.EstimatedAnnualProduction-wantProduction) > 1e-9 {
		t.Errorf("production = %v, want %v", res.EstimatedAnnualProduction, wantProduction)
	}
	if res.EnergyOffset != "100%" {
		t.Errorf("energyOffset = %q, want 100%%", res.EnergyOffset)
	}
	if res.BatterySize != "None" {
		t.Errorf("batterySize = %q, want None", res.BatterySize)
	}
}

func TestSystemSizePositiveInvariants(t *testing.T) {
	s := DefaultSizer()
	cases := []struct {
		consumption float64
		irradiance  float64
	}{
		{1000, 4.0},
		{12000, 5.5},
		{45000, 6.2},
		{250, 3.1},
		{999999, 7.0},
	}

	for _, tc := range cases {
		res := s.SystemSize(tc.consumption, tc.irradiance, 0)
		if res.SolarSize <= 0 {
			t.Errorf("(%v, %v): solarSize = %v, want > 0", tc.consumption, tc.irradiance, res.SolarSize)
		}
		wantPanels := int(math.Ceil(res.SolarSize * 1000 / 400))
		if res.PanelCount != wantPanels {
			t.Errorf("(%v, %v): panelCount = %d, want %d", tc.consumption, tc.irradiance, res.PanelCount, wantPanels)
		}
	}
}

func TestSystemSizeOffsetClamped(t *testing.T) {
	s := DefaultSizer()
	// Tiny consumption with strong sun: rounded size overshoots, the
	// offset must still cap at 100%.
	res := s.SystemSize(100, 6.5, 0)
	if res.EnergyOffset != "100%" {
		t.Errorf("energyOffset = %q, want 100%%", res.EnergyOffset)
	}

	// Here the tenth-rounding shaves the size down far enough that the
	// offset lands below 100%: 1073 / (5.0*365*0.70) ≈ 0.8399 → 0.8 kW,
	// production 1022 kWh, offset 95%.
	res = s.SystemSize(1073, 5.0, 0)
	if res.EnergyOffset != "95%" {
		t.Errorf("energyOffset = %q, want 95%%", res.EnergyOffset)
	}
}

func TestSystemSizeIdempotent(t *testing.T) {
	s := DefaultSizer()
	first := s.SystemSize(18000, 4.8, 2)
	second := s.SystemSize(18000, 4.8, 2)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestBatteryDescription(t *testing.T) {
	s := DefaultSizer()
	if got := s.BatteryDescription(3); got != "3 x 16 kWh" {
		t.Errorf("BatteryDescription(3) = %q", got)
	}
	if got := s.BatteryDescription(0); got != "None" {
		t.Errorf("BatteryDescription(0) = %q", got)
	}
}

func TestRecommendBatteries(t *testing.T) {
	s := DefaultSizer()
	// 8.5 kW → 17 kWh target → 2 batteries, 32 kWh.
	rec := s.RecommendBatteries(8.5)
	if rec.BatteryCount != 2 {
		t.Errorf("batteryCount = %d, want 2", rec.BatteryCount)
	}
	if rec.TotalStorage != 32 {
		t.Errorf("totalStorage = %v, want 32", rec.TotalStorage)
	}

	// 16 kW → 32 kWh target → exactly 2 batteries.
	rec = s.RecommendBatteries(16)
	if rec.BatteryCount != 2 || rec.TotalStorage != 32 {
		t.Errorf("recommendation = %+v", rec)
	}
}

func TestConsumptionFromBill(t *testing.T) {
	got, err := ConsumptionFromBill(300, 0.45)
	if err != nil {
		t.Fatalf("ConsumptionFromBill: %v", err)
	}
	if got != 8000 {
		t.Errorf("consumption = %d, want 8000", got)
	}

	if _, err := ConsumptionFromBill(300, 0); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := ConsumptionFromBill(0, 0.45); err == nil {
		t.Error("expected error for zero bill")
	}
}

func TestMonthlyBillFromSeasons(t *testing.T) {
	got, err := MonthlyBillFromSeasons(400, 200, 250)
	if err != nil {
		t.Fatalf("MonthlyBillFromSeasons: %v", err)
	}
	// 400*3/12 + 200*3/12 + 250*6/12 = 100 + 50 + 125 = 275
	if got != 275 {
		t.Errorf("monthly bill = %v, want 275", got)
	}

	if _, err := MonthlyBillFromSeasons(-1, 200, 250); err == nil {
		t.Error("expected error for negative seasonal bill")
	}
}

func TestUtilityRate(t *testing.T) {
	tests := []struct {
		provider string
		care     bool
		want     float64
	}{
		{"PG&E", false, 0.45},
		{"PG&E", true, 0.31},
		{"SDG&E", false, 0.385},
		{"SDG&E", true, 0.2695},
		{"SCE", false, 0.42},
		{"SCE", true, 0.294},
	}
	for _, tt := range tests {
		got, err := UtilityRate(tt.provider, tt.care)
		if err != nil {
			t.Fatalf("UtilityRate(%s): %v", tt.provider, err)
		}
		if got != tt.want {
			t.Errorf("UtilityRate(%s, %v) = %v, want %v", tt.provider, tt.care, got, tt.want)
		}
	}

	if _, err := UtilityRate("ConEd", false); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestUtilityRateTable(t *testing.T) {
	entries := UtilityRateTable()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Provider != "PG&E" || entries[0].Standard != 0.45 || entries[0].CARE != 0.31 {
		t.Errorf("first entry = %+v", entries[0])
	}
	if entries[1].Provider != "SDG&E" || entries[1].Standard != 0.385 || entries[1].CARE != 0.2695 {
		t.Errorf("second entry = %+v", entries[1])
	}
	if entries[2].Provider != "SCE" || entries[2].Standard != 0.42 || entries[2].CARE != 0.294 {
		t.Errorf("third entry = %+v", entries[2])
	}
}

func TestSystemCost(t *testing.T) {
	breakdown, err := SystemCost(models.SystemCostRequest{
		SalesRedline:    2.5,
		SystemSize:      8.5,
		BatterySize:     32,
		AdderCosts:      1500,
		SalesCommission: 2000,
	})
	if err != nil {
		t.Fatalf("SystemCost: %v", err)
	}

	if breakdown.SolarCost != 21250 {
		t.Errorf("solarCost = %v, want 21250", breakdown.SolarCost)
	}
	if breakdown.BatteryCost != 32000 {
		t.Errorf("batteryCost = %v, want 32000", breakdown.BatteryCost)
	}
	if breakdown.TotalCost != 56750 {
		t.Errorf("totalCost = %v, want 56750", breakdown.TotalCost)
	}
}

func TestSystemCostValidation(t *testing.T) {
	if _, err := SystemCost(models.SystemCostRequest{SalesRedline: 0, SystemSize: 8}); err == nil {
		t.Error("expected error for zero redline")
	}
	if _, err := SystemCost(models.SystemCostRequest{SalesRedline: 2.5, SystemSize: 0}); err == nil {
		t.Error("expected error for zero system size")
	}
	if _, err := SystemCost(models.SystemCostRequest{SalesRedline: 2.5, SystemSize: 8, AdderCosts: -1}); err == nil {
		t.Error("expected error for negative adders")
	}
}
