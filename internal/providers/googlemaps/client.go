// Package googlemaps implements the Google Geocoding API client used
// to resolve a customer's street address to coordinates.
//
// Docs: https://developers.google.com/maps/documentation/geocoding
package googlemaps

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

const defaultBaseURL = "https://maps.googleapis.com"

// ErrAddressNotFound means the geocoder answered but found no match
// for the address (non-OK status or an empty result list).
var ErrAddressNotFound = errors.New("could not geocode address")

// Client calls the Google Geocoding API.
type Client struct {
	apiKey  string
	baseURL string
	limiter *infra.RateLimiter
}

// NewClient creates a geocoding client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		limiter: infra.NewRateLimiter(10, time.Second),
	}
}

// geocodeResponse mirrors the subset of the Geocoding API response the
// sizing flow needs.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a free-text address to coordinates, taking the
// first result the provider returns.
func (c *Client) Geocode(ctx context.Context, address string) (models.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.Coordinates{}, err
	}

	u := fmt.Sprintf("%s/maps/api/geocode/json?address=%s&key=%s",
		c.baseURL, url.QueryEscape(address), url.QueryEscape(c.apiKey))

	body, _, err := infra.DoGet(ctx, u, map[string]string{"Accept": "application/json"})
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoding request: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("read geocoding response: %w", err)
	}

	var resp geocodeResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return models.Coordinates{}, fmt.Errorf("parse geocoding JSON: %w", err)
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		return models.Coordinates{}, fmt.Errorf("%w (status %s)", ErrAddressNotFound, resp.Status)
	}

	loc := resp.Results[0].Geometry.Location
	return models.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
