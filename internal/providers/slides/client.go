// Package slides implements the Google Slides and Drive API calls the
// proposal generator needs: batch text substitution in the proposal
// deck and PDF export.
//
// Docs: https://developers.google.com/slides/api/reference/rest
package slides

import (
	"context"
	"fmt"
	"io"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/infra"
)

const (
	defaultSlidesBaseURL = "https://slides.googleapis.com"
	defaultDriveBaseURL  = "https://www.googleapis.com"
)

// Replacement is one placeholder substitution in the deck, e.g.
// {{ADDRESS}} → "123 Main St".
type Replacement struct {
	Token string
	Value string
}

// Client calls the presentation-editing service.
type Client struct {
	tokens        *TokenSource
	slidesBaseURL string
	driveBaseURL  string
}

// NewClient creates a slides client backed by the given token source.
func NewClient(tokens *TokenSource) *Client {
	return &Client{
		tokens:        tokens,
		slidesBaseURL: defaultSlidesBaseURL,
		driveBaseURL:  defaultDriveBaseURL,
	}
}

// batchUpdateRequest mirrors the Slides batchUpdate payload for
// replaceAllText requests.
type batchUpdateRequest struct {
	Requests []map[string]any `json:"requests"`
}

// ReplaceAllText performs a single batch update replacing each
// placeholder token across the whole presentation.
func (c *Client) ReplaceAllText(ctx context.Context, presentationID string, replacements []Replacement) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("slides auth: %w", err)
	}

	payload := batchUpdateRequest{}
	for _, rep := range replacements {
		payload.Requests = append(payload.Requests, map[string]any{
			"replaceAllText": map[string]any{
				"containsText": map[string]any{"text": rep.Token, "matchCase": true},
				"replaceText":  rep.Value,
			},
		})
	}

	u := fmt.Sprintf("%s/v1/presentations/%s:batchUpdate", c.slidesBaseURL, presentationID)
	headers := map[string]string{"Authorization": "Bearer " + token}
	if err := infra.DoPostJSON(ctx, u, headers, payload, nil); err != nil {
		return fmt.Errorf("slides batch update: %w", err)
	}
	return nil
}

// ExportPDF downloads the presentation rendered as a PDF.
func (c *Client) ExportPDF(ctx context.Context, presentationID string) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("drive auth: %w", err)
	}

	u := fmt.Sprintf("%s/drive/v3/files/%s/export?mimeType=application%%2Fpdf",
		c.driveBaseURL, presentationID)
	headers := map[string]string{"Authorization": "Bearer " + token}

	body, _, err := infra.DoGet(ctx, u, headers)
	if err != nil {
		return nil, fmt.Errorf("drive export: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read exported PDF: %w", err)
	}
	return data, nil
}

// PresentationURL returns the shareable edit link for a deck.
func PresentationURL(presentationID string) string {
	return fmt.Sprintf("https://docs.google.com/presentation/d/%s/edit?usp=sharing", presentationID)
}
