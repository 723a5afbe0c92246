package estimate

import (
	"fmt"
	"math"
	"strings"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

// ConsumptionFromBill estimates annual consumption (kWh) from an
// average monthly bill and a per-kWh utility rate.
func ConsumptionFromBill(monthlyBill, utilityRate float64) (int, error) {
	if monthlyBill <= 0 {
		return 0, fmt.Errorf("monthly bill must be positive")
	}
	if utilityRate <= 0 {
		return 0, fmt.Errorf("utility rate must be positive")
	}
	return int(math.Round(monthlyBill / utilityRate * 12)), nil
}

// MonthlyBillFromSeasons averages seasonal bills into a monthly
// figure, weighting summer and winter at three months each and
// fall/spring at six.
func MonthlyBillFromSeasons(summer, winter, fallSpring float64) (float64, error) {
	if summer < 0 || winter < 0 || fallSpring < 0 {
		return 0, fmt.Errorf("seasonal bills must be non-negative")
	}
	return summer*(3.0/12) + winter*(3.0/12) + fallSpring*(6.0/12), nil
}

// utilityRates is the static per-kWh rate table for the supported
// California providers, with and without CARE enrollment.
var utilityRates = map[string]struct{ standard, care float64 }{
	"PG&E":  {0.45, 0.31},
	"SDG&E": {0.385, 0.2695},
	"SCE":   {0.42, 0.294},
}

// UtilityRate looks up the estimated per-kWh rate for a provider.
func UtilityRate(provider string, careEnrolled bool) (float64, error) {
	rates, ok := utilityRates[strings.ToUpper(provider)]
	if !ok {
		return 0, fmt.Errorf("unknown utility provider %q", provider)
	}
	if careEnrolled {
		return rates.care, nil
	}
	return rates.standard, nil
}

// UtilityRateTable returns the full rate table in display order.
func UtilityRateTable() []models.UtilityRateEntry {
	entries := make([]models.UtilityRateEntry, 0, len(utilityRates))
	for _, provider := range []string{"PG&E", "SDG&E", "SCE"} {
		rates := utilityRates[provider]
		entries = append(entries, models.UtilityRateEntry{
			Provider: provider,
			Standard: rates.standard,
			CARE:     rates.care,
		})
	}
	return entries
}
