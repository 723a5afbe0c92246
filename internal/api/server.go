// Package api provides the HTTP REST API server for the Brighthouse
// proposal tool.
//
// It exposes the solar sizing endpoint, the consumption and cost
// estimate helpers, the stored-PDF viewer, and the Maps key handoff
// for the address autocomplete UI.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/config"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/estimate"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/proposal"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/googlemaps"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/nrel"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/providers/slides"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/sizing"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/models"
)

// Calculator runs the sizing pipeline for one request.
type Calculator interface {
	Calculate(ctx context.Context, req models.SizingRequest) (*models.SizingResponse, *sizing.Error)
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	calc    Calculator
	sizer   estimate.Sizer
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(cfg *config.Config) (*Server, error) {
	var maker sizing.ProposalMaker
	if cfg.Google.CredentialsFile != "" {
		tokens, err := slides.NewTokenSource(cfg.Google.CredentialsFile)
		if err != nil {
			log.Printf("Slides credentials unavailable, proposal generation disabled: %v", err)
		} else {
			maker = proposal.NewGenerator(slides.NewClient(tokens), cfg.Slides.TemplateID, cfg.Storage.TempDir)
		}
	} else {
		log.Println("No Google service-account credentials configured, proposal generation disabled")
	}

	orch := sizing.NewOrchestrator(
		googlemaps.NewClient(cfg.Google.MapsAPIKey),
		nrel.NewClient(cfg.NREL.APIKey),
		maker,
	)

	sizer := estimate.DefaultSizer()
	if cfg.Solar.PerformanceRatio > 0 {
		sizer.PerformanceRatio = cfg.Solar.PerformanceRatio
	}
	if cfg.Solar.PanelWatts > 0 {
		sizer.PanelWatts = cfg.Solar.PanelWatts
	}
	if cfg.Solar.BatteryKWh > 0 {
		sizer.BatteryKWh = cfg.Solar.BatteryKWh
	}
	orch.SetSizer(sizer)

	srv := &Server{
		cfg:     cfg,
		calc:    orch,
		sizer:   sizer,
		version: "dev",
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// SetVersion sets the version string reported by /health.
func (s *Server) SetVersion(v string) {
	s.version = v
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.API.CORSOrigins) > 0 {
		origins = s.cfg.API.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		// Sizing pipeline
		r.Post("/calculateSolarSize", s.handleCalculateSolarSize)

		// Stored proposal PDFs
		r.Get("/viewPdf/{filename}", s.handleViewPDF)

		// Address autocomplete key handoff
		r.Get("/getGoogleMapsApiKey", s.handleGetGoogleMapsAPIKey)

		// Estimate helpers
		r.Post("/estimateConsumption", s.handleEstimateConsumption)
		r.Post("/estimateMonthlyBill", s.handleEstimateMonthlyBill)
		r.Post("/recommendBatteries", s.handleRecommendBatteries)
		r.Post("/calculateSystemCost", s.handleCalculateSystemCost)
		r.Get("/utilityRates", s.handleUtilityRates)
	})

	return r
}

// APIResponse is the standard JSON envelope for the helper endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// errorResponse is the error body shape: a bare error message.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":  "ok",
			"version": s.version,
		},
	})
}

func (s *Server) handleCalculateSolarSize(w http.ResponseWriter, r *http.Request) {
	var req models.SizingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	resp, cerr := s.calc.Calculate(ctx, req)
	if cerr != nil {
		writeError(w, cerr.HTTPStatus(), cerr.Message)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleViewPDF(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !validPDFName(filename) {
		writeError(w, http.StatusBadRequest, "invalid file name")
		return
	}

	path := filepath.Join(s.cfg.Storage.TempDir, filename)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		writeError(w, http.StatusNotFound, "PDF not found")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+filename+`"`)
	http.ServeFile(w, r, path)
}

// validPDFName accepts only the flat generated file names, keeping
// traversal out of the temp directory.
func validPDFName(name string) bool {
	if name == "" || !strings.HasSuffix(name, ".pdf") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return true
}

func (s *Server) handleGetGoogleMapsAPIKey(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Google.MapsAPIKey == "" {
		writeError(w, http.StatusInternalServerError, "Google Maps API key is not configured")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"apiKey": s.cfg.Google.MapsAPIKey})
}

func (s *Server) handleEstimateConsumption(w http.ResponseWriter, r *http.Request) {
	var req models.ConsumptionEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	annual, err := estimate.ConsumptionFromBill(req.MonthlyBill, req.UtilityRate)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    models.ConsumptionEstimateResponse{AnnualConsumption: annual},
	})
}

func (s *Server) handleEstimateMonthlyBill(w http.ResponseWriter, r *http.Request) {
	var req models.MonthlyBillEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	monthly, err := estimate.MonthlyBillFromSeasons(req.SummerBill, req.WinterBill, req.FallSpringBill)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    models.MonthlyBillEstimateResponse{MonthlyBill: monthly},
	})
}

func (s *Server) handleRecommendBatteries(w http.ResponseWriter, r *http.Request) {
	var req models.BatteryRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.SolarSize <= 0 {
		writeError(w, http.StatusBadRequest, "solarSize must be positive")
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.sizer.RecommendBatteries(req.SolarSize),
	})
}

func (s *Server) handleCalculateSystemCost(w http.ResponseWriter, r *http.Request) {
	var req models.SystemCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	breakdown, err := estimate.SystemCost(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    breakdown,
	})
}

func (s *Server) handleUtilityRates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    estimate.UtilityRateTable(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
