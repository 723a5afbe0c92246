// Package proposal fills the shared Google Slides proposal template
// with computed sizing figures and exports it as a PDF into the local
// temp directory.
package proposal

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/slides"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/utils"
)

// SlidesAPI is the subset of the Slides/Drive surface the generator
// needs.
type SlidesAPI interface {
	ReplaceAllText(ctx context.Context, presentationID string, replacements []slides.Replacement) error
	ExportPDF(ctx context.Context, presentationID string) ([]byte, error)
}

// Generator writes proposals against a single shared template
// presentation. Concurrent requests race on the template text, so the
// most recent request wins; acceptable for a single-rep sales tool.
type Generator struct {
	api        SlidesAPI
	templateID string
	tempDir    string
}

func NewGenerator(api SlidesAPI, templateID, tempDir string) *Generator {
	return &Generator{api: api, templateID: templateID, tempDir: tempDir}
}

// Generate fills the template and exports it. A failure before the
// text replacement returns an error; an export failure after a
// successful replacement still returns the presentation link.
func (g *Generator) Generate(ctx context.Context, params models.SizingParams) (*models.ProposalArtifact, error) {
	if err := g.api.ReplaceAllText(ctx, g.templateID, Replacements(params)); err != nil {
		return nil, fmt.Errorf("fill proposal template: %w", err)
	}

	artifact := &models.ProposalArtifact{
		PPTURL: slides.PresentationURL(g.templateID),
	}

	pdf, err := g.api.ExportPDF(ctx, g.templateID)
	if err != nil {
		log.Printf("pdf export failed, returning presentation link only: %v", err)
		return artifact, nil
	}

	filename := fmt.Sprintf("Brighthouse_Solar_Proposal_%s.pdf", uuid.NewString())
	if err := g.writePDF(filename, pdf); err != nil {
		log.Printf("pdf write failed, returning presentation link only: %v", err)
		return artifact, nil
	}

	artifact.PDFViewURL = "/api/viewPdf/" + filename
	return artifact, nil
}

func (g *Generator) writePDF(filename string, data []byte) error {
	if err := os.MkdirAll(g.tempDir, 0o755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(g.tempDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// Replacements maps the computed params onto the template
// placeholders.
func Replacements(params models.SizingParams) []slides.Replacement {
	return []slides.Replacement{
		{Token: "{{ADDRESS}}", Value: params.Address},
		{Token: "{{SYSTEM_SIZE}}", Value: fmt.Sprintf("%.1f kW", params.SolarSize)},
		{Token: "{{PANEL_COUNT}}", Value: strconv.Itoa(params.PanelCount)},
		{Token: "{{BATTERY_SIZE}}", Value: params.BatterySize},
		{Token: "{{ANNUAL_PRODUCTION}}", Value: utils.FormatKWh(params.EstimatedAnnualProduction)},
		{Token: "{{ENERGY_OFFSET}}", Value: params.EnergyOffset},
		{Token: "{{SYSTEM_COST}}", Value: utils.FormatUSD(params.SystemCost)},
		{Token: "{{MONTHLY_PAYMENT}}", Value: utils.FormatUSD(params.MonthlyCost)},
		{Token: "{{CURRENT_BILL}}", Value: utils.FormatUSD(params.CurrentMonthlyAverageBill)},
		{Token: "{{FINANCING_TERM}}", Value: fmt.Sprintf("%d years", params.FinancingTerm)},
		{Token: "{{INTEREST_RATE}}", Value: strconv.FormatFloat(params.InterestRate, 'f', -1, 64) + "%"},
	}
}
