package models

// ConsumptionEstimateRequest is the body for POST /api/estimateConsumption.
type ConsumptionEstimateRequest struct {
	MonthlyBill float64 `json:"monthlyBill"` // USD
	UtilityRate float64 `json:"utilityRate"` // USD per kWh
}

// ConsumptionEstimateResponse carries the estimated annual consumption.
type ConsumptionEstimateResponse struct {
	AnnualConsumption int `json:"annualConsumption"` // kWh, rounded
}

// MonthlyBillEstimateRequest is the body for POST /api/estimateMonthlyBill.
// Seasonal bills are weighted 3/3/6 months (summer/winter/fall-spring).
type MonthlyBillEstimateRequest struct {
	SummerBill     float64 `json:"summerBill"`
	WinterBill     float64 `json:"winterBill"`
	FallSpringBill float64 `json:"fallSpringBill"`
}

// MonthlyBillEstimateResponse carries the weighted average monthly bill.
type MonthlyBillEstimateResponse struct {
	MonthlyBill float64 `json:"monthlyBill"`
}

// BatteryRecommendationRequest is the body for POST /api/recommendBatteries.
type BatteryRecommendationRequest struct {
	SolarSize float64 `json:"solarSize"` // kW
}

// BatteryRecommendation is a suggested battery configuration sized at
// a 2:1 storage-to-array ratio.
type BatteryRecommendation struct {
	BatteryCount int     `json:"batteryCount"`
	TotalStorage float64 `json:"totalStorage"` // kWh
}

// SystemCostRequest is the body for POST /api/calculateSystemCost.
type SystemCostRequest struct {
	SalesRedline    float64 `json:"salesRedline"`    // USD per watt
	SystemSize      float64 `json:"systemSize"`      // kW
	BatterySize     float64 `json:"batterySize"`     // total kWh
	AdderCosts      float64 `json:"adderCosts"`      // USD
	SalesCommission float64 `json:"salesCommission"` // USD
}

// SystemCostBreakdown itemizes the computed system cost.
type SystemCostBreakdown struct {
	SolarCost       float64 `json:"solarCost"`
	BatteryCost     float64 `json:"batteryCost"`
	AdderCosts      float64 `json:"adderCosts"`
	SalesCommission float64 `json:"salesCommission"`
	TotalCost       float64 `json:"totalCost"`
}

// UtilityRateEntry is one provider's per-kWh rate, with and without
// CARE enrollment.
type UtilityRateEntry struct {
	Provider string  `json:"provider"`
	Standard float64 `json:"standard"` // USD per kWh
	CARE     float64 `json:"care"`     // USD per kWh with CARE enrollment
}
