package estimate

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

// batteryCostPerKWh is the installed battery price used by the cost
// calculator, in USD.
var batteryCostPerKWh = decimal.NewFromInt(1000)

// SystemCost itemizes a system price from the sales redline (USD per
// watt), array size, battery storage, adders and commission. Currency
// math runs on decimals so the quoted figures add up exactly.
func SystemCost(req models.SystemCostRequest) (models.SystemCostBreakdown, error) {
	if req.SalesRedline <= 0 {
		return models.SystemCostBreakdown{}, fmt.Errorf("sales redline must be positive")
	}
	if req.SystemSize <= 0 {
		return models.SystemCostBreakdown{}, fmt.Errorf("system size must be positive")
	}
	if req.BatterySize < 0 || req.AdderCosts < 0 || req.SalesCommission < 0 {
		return models.SystemCostBreakdown{}, fmt.Errorf("battery size, adders and commission must be non-negative")
	}

	// solarCost = sizeKW * 1000 * redline (kW → W)
	solarCost := decimal.NewFromFloat(req.SystemSize).
		Mul(decimal.NewFromInt(1000)).
		Mul(decimal.NewFromFloat(req.SalesRedline)).
		Round(2)
	batteryCost := decimal.NewFromFloat(req.BatterySize).
		Mul(batteryCostPerKWh).
		Round(2)
	adders := decimal.NewFromFloat(req.AdderCosts).Round(2)
	commission := decimal.NewFromFloat(req.SalesCommission).Round(2)

	total := solarCost.Add(batteryCost).Add(adders).Add(commission)

	return models.SystemCostBreakdown{
		SolarCost:       solarCost.InexactFloat64(),
		BatteryCost:     batteryCost.InexactFloat64(),
		AdderCosts:      adders.InexactFloat64(),
		SalesCommission: commission.InexactFloat64(),
		TotalCost:       total.InexactFloat64(),
	}, nil
}
