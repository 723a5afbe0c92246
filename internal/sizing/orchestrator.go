// Package sizing runs the end-to-end solar sizing pipeline: validate
// the request, geocode the address, fetch the annual irradiance,
// compute the system estimate and, when the inputs warrant one,
// generate a proposal document.
package sizing

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/estimate"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/googlemaps"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/nrel"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.Coordinates, error)
}

// IrradianceSource reports the annual average solar irradiance at a
// location, in kWh/m²/day.
type IrradianceSource interface {
	AnnualIrradiance(ctx context.Context, lat, lon float64) (models.Irradiance, error)
}

// ProposalMaker builds a customer proposal from the computed params.
type ProposalMaker interface {
	Generate(ctx context.Context, params models.SizingParams) (*models.ProposalArtifact, error)
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	geocoder   Geocoder
	irradiance IrradianceSource
	proposals  ProposalMaker
	sizer      estimate.Sizer
}

// NewOrchestrator builds an orchestrator. proposals may be nil, in
// which case sizing responses never carry document links.
func NewOrchestrator(geocoder Geocoder, irradiance IrradianceSource, proposals ProposalMaker) *Orchestrator {
	return &Orchestrator{
		geocoder:   geocoder,
		irradiance: irradiance,
		proposals:  proposals,
		sizer:      estimate.DefaultSizer(),
	}
}

// SetSizer overrides the default sizing constants, typically from
// configuration. Must be called before Calculate.
func (o *Orchestrator) SetSizer(s estimate.Sizer) {
	o.sizer = s
}

// Validate checks the request bounds. It applies defaults in place
// before checking, so callers get the same view the pipeline uses.
func (o *Orchestrator) Validate(req *models.SizingRequest) *Error {
	req.ApplyDefaults()

	if strings.TrimSpace(req.Address) == "" {
		return invalid("address", "A valid address is required. Please select an address from the suggestions.")
	}
	if req.CurrentConsumption <= 0 || req.CurrentConsumption > 1000000 {
		return invalid("currentConsumption", "Valid current consumption is required (must be a positive number of kWh per year).")
	}
	if req.CurrentMonthlyAverageBill < 0 || req.CurrentMonthlyAverageBill > 10000 {
		return invalid("currentMonthlyAverageBill", "Valid current monthly average bill is required (must be a non-negative dollar amount).")
	}
	if req.BatteryCount < 0 || req.BatteryCount > 100 {
		return invalid("batteryCount", "Valid battery count is required (must be between 0 and 100).")
	}
	if req.SystemCost < 0 || req.SystemCost > 1000000 {
		return invalid("systemCost", "Valid system cost is required (must be a non-negative dollar amount).")
	}
	if req.MonthlyCost < 0 {
		return invalid("monthlyCost", "Valid monthly cost is required (must be a non-negative dollar amount).")
	}
	if req.FinancingTerm <= 0 {
		return invalid("financingTerm", "Valid financing term is required (must be a positive number of years).")
	}
	if req.InterestRate < 0 {
		return invalid("interestRate", "Valid interest rate is required (must be a non-negative percentage).")
	}
	return nil
}

// Calculate runs the full pipeline for one request. Geocoding and
// irradiance failures are terminal; proposal failures are absorbed so
// the caller still receives the computed numbers.
func (o *Orchestrator) Calculate(ctx context.Context, req models.SizingRequest) (*models.SizingResponse, *Error) {
	if err := o.Validate(&req); err != nil {
		return nil, err
	}

	coords, err := o.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		if errors.Is(err, googlemaps.ErrAddressNotFound) {
			return nil, &Error{
				Kind:    KindAddressNotFound,
				Field:   "address",
				Message: "Could not find the provided address. Please check the address and try again.",
				Err:     err,
			}
		}
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "Error geocoding address.",
			Err:     err,
		}
	}

	irr, err := o.irradiance.AnnualIrradiance(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		if errors.Is(err, nrel.ErrIrradianceUnavailable) {
			return nil, &Error{
				Kind:    KindIrradianceUnavailable,
				Message: "Could not retrieve solar resource data for the provided location.",
				Err:     err,
			}
		}
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "Error retrieving solar resource data.",
			Err:     err,
		}
	}

	result := o.sizer.SystemSize(req.CurrentConsumption, irr.AnnualAverage, req.BatteryCount)

	params := models.SizingParams{
		Address:                   req.Address,
		Latitude:                  coords.Latitude,
		Longitude:                 coords.Longitude,
		AnnualSolarRadiation:      irr.AnnualAverage,
		SolarSize:                 result.SolarSize,
		PanelCount:                result.PanelCount,
		EstimatedAnnualProduction: result.EstimatedAnnualProduction,
		EnergyOffset:              result.EnergyOffset,
		BatterySize:               result.BatterySize,
		BatteryCount:              req.BatteryCount,
		SystemCost:                req.SystemCost,
		FinancingTerm:             req.FinancingTerm,
		InterestRate:              req.InterestRate,
		MonthlyCost:               req.MonthlyCost,
		CurrentConsumption:        req.CurrentConsumption,
		CurrentMonthlyAverageBill: req.CurrentMonthlyAverageBill,
		SalesCommission:           req.SalesCommission,
	}

	resp := &models.SizingResponse{Success: true, Params: params}

	if o.proposals != nil && result.SolarSize > 0 && req.SystemCost > 0 {
		artifact, perr := o.proposals.Generate(ctx, params)
		if perr != nil {
			log.Printf("proposal generation failed, returning numbers only: %v", perr)
		} else if artifact != nil {
			if artifact.PPTURL != "" {
				resp.PPTURL = &artifact.PPTURL
			}
			if artifact.PDFViewURL != "" {
				resp.PDFViewURL = &artifact.PDFViewURL
			}
		}
	}

	return resp, nil
}
