// Package models defines the core data structures shared across the
// Brighthouse proposal tool.
package models

// SizingRequest is the body for POST /api/calculateSolarSize.
// Address must be resolvable to coordinates before any downstream
// computation runs; the orchestrator validates the rest.
type SizingRequest struct {
	Address                   string  `json:"address"`
	CurrentConsumption        float64 `json:"currentConsumption"`        // annual kWh
	CurrentMonthlyAverageBill float64 `json:"currentMonthlyAverageBill"` // USD
	BatteryCount              int     `json:"batteryCount"`
	FinancingTerm             int     `json:"financingTerm"`   // years, default 25
	InterestRate              float64 `json:"interestRate"`    // percent, default 5.99
	SystemCost                float64 `json:"systemCost"`      // USD, 0 allowed for sizing-only calls
	SalesCommission           float64 `json:"salesCommission"` // USD, default 0
	MonthlyCost               float64 `json:"monthlyCost"`     // USD monthly payment with solar
}

// ApplyDefaults fills the financing fields the client may omit.
func (r *SizingRequest) ApplyDefaults() {
	if r.FinancingTerm == 0 {
		r.FinancingTerm = 25
	}
	if r.InterestRate == 0 {
		r.InterestRate = 5.99
	}
}

// Coordinates is a geocoded location in decimal degrees. Ephemeral:
// derived per request, never persisted.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Irradiance is the annual average solar radiation at a location,
// in kWh/m²/day. Re-fetched on every request.
type Irradiance struct {
	AnnualAverage float64 `json:"annualSolarRadiation"`
}

// SizingResult holds the computed system figures.
type SizingResult struct {
	SolarSize                 float64 `json:"solarSize"`                 // kW, rounded to 0.1
	PanelCount                int     `json:"panelCount"`                // 400 W panels
	EstimatedAnnualProduction float64 `json:"estimatedAnnualProduction"` // kWh
	EnergyOffset              string  `json:"energyOffset"`              // e.g. "98%", capped at "100%"
	BatterySize               string  `json:"batterySize"`               // e.g. "3 x 16 kWh" or "None"
}

// SizingParams is the params object of the sizing response: the
// computed result together with the echoed inputs and coordinates.
type SizingParams struct {
	Address                   string  `json:"address"`
	Latitude                  float64 `json:"latitude"`
	Longitude                 float64 `json:"longitude"`
	AnnualSolarRadiation      float64 `json:"annualSolarRadiation"`
	SolarSize                 float64 `json:"solarSize"`
	PanelCount                int     `json:"panelCount"`
	EstimatedAnnualProduction float64 `json:"estimatedAnnualProduction"`
	EnergyOffset              string  `json:"energyOffset"`
	BatterySize               string  `json:"batterySize"`
	BatteryCount              int     `json:"batteryCount"`
	SystemCost                float64 `json:"systemCost"`
	FinancingTerm             int     `json:"financingTerm"`
	InterestRate              float64 `json:"interestRate"`
	MonthlyCost               float64 `json:"monthlyCost"`
	CurrentConsumption        float64 `json:"currentConsumption"`
	CurrentMonthlyAverageBill float64 `json:"currentMonthlyAverageBill"`
	SalesCommission           float64 `json:"salesCommission"`
}

// ProposalArtifact points at a generated proposal: the editable deck
// and the server-relative path of the exported PDF. Either field may
// be empty when the corresponding step failed.
type ProposalArtifact struct {
	PPTURL     string `json:"pptUrl"`
	PDFViewURL string `json:"pdfViewUrl"`
}

// SizingResponse is the body returned by POST /api/calculateSolarSize.
// PPTURL and PDFViewURL are null when proposal generation was skipped
// or failed; the sizing figures are always present on success.
type SizingResponse struct {
	Success    bool         `json:"success"`
	Params     SizingParams `json:"params"`
	PPTURL     *string      `json:"pptUrl"`
	PDFViewURL *string      `json:"pdfViewUrl"`
}
