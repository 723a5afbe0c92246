// Package nrel implements the NREL Solar Resource API client used to
// look up annual average solar irradiance for a coordinate pair.
//
// Docs: https://developer.nrel.gov/docs/solar/solar-resource-v1/
package nrel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/infra"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

const defaultBaseURL = "https://developer.nrel.gov"

// ErrIrradianceUnavailable means the solar-resource response lacked
// the annual average field for the requested location.
var ErrIrradianceUnavailable = errors.New("could not retrieve solar resource data")

// Client calls the NREL Solar Resource API.
type Client struct {
	apiKey  string
	baseURL string
	limiter *infra.RateLimiter
}

// NewClient creates a solar-resource client with the given API key.
// NREL's developer tier allows roughly one request per second.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limiter: infra.NewRateLimiter(1, time.Second),
	}
}

// solarResourceResponse mirrors the subset of the solar_resource
// response the sizing flow needs. The avg_dni annual figure is in
// kWh/m²/day.
type solarResourceResponse struct {
	Outputs struct {
		AvgDNI struct {
			Annual float64 `json:"annual"`
		} `json:"avg_dni"`
	} `json:"outputs"`
}

// AnnualIrradiance looks up the annual average direct normal
// irradiance for the given coordinates.
func (c *Client) AnnualIrradiance(ctx context.Context, lat, lon float64) (models.Irradiance, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Irradiance{}, err
	}

	u := fmt.Sprintf("%s/api/solar/solar_resource/v1.json?api_key=%s&lat=%v&lon=%v",
		c.baseURL, url.QueryEscape(c.apiKey), lat, lon)

	body, _, err := infra.DoGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return models.Irradiance{}, fmt.Errorf("solar resource request: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return models.Irradiance{}, fmt.Errorf("read solar resource response: %w", err)
	}

	var resp solarResourceResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Irradiance{}, fmt.Errorf("parse solar resource JSON: %w", err)
	}

	// Offshore or out-of-coverage coordinates come back with the
	// field missing or zeroed.
	if resp.Outputs.AvgDNI.Annual <= 0 {
		return models.Irradiance{}, ErrIrradianceUnavailable
	}

	return models.Irradiance{AnnualAverage: resp.Outputs.AvgDNI.Annual}, nil
}
