// Brighthouse Proposal Tool — residential solar sizing and proposal
// generation service.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/api"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/config"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/internal/estimate"
	"github.com/GarnerSolutions/Brighthouse-Proposal-Tool/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "brighthouse",
	Short: "Brighthouse Proposal Tool — solar sizing and proposal generation",
	Long: `Brighthouse Proposal Tool
Sizes residential solar systems from a customer's address and annual
consumption, using Google Maps geocoding and NREL irradiance data, and
generates a Google Slides proposal exported to PDF.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Brighthouse Proposal Tool %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return fmt.Errorf("failed to build server: %w", err)
		}
		srv.SetVersion(version)

		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting Brighthouse API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Estimate Command ---

var estimateCmd = &cobra.Command{
	Use:   "estimate [annual-kwh] [irradiance]",
	Short: "Compute a system estimate from the command line",
	Long: `Compute the solar array sizing for a given annual consumption (kWh)
and annual average irradiance (kWh/m²/day), without calling any API.

Examples:
  brighthouse estimate 12000 5.5
  brighthouse estimate 12000 5.5 --batteries 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		consumption, err := strconv.ParseFloat(args[0], 64)
		if err != nil || consumption <= 0 {
			return fmt.Errorf("invalid annual consumption: %s", args[0])
		}
		irradiance, err := strconv.ParseFloat(args[1], 64)
		if err != nil || irradiance <= 0 {
			return fmt.Errorf("invalid irradiance: %s", args[1])
		}
		batteries, _ := cmd.Flags().GetInt("batteries")

		sizer := estimate.DefaultSizer()
		res := sizer.SystemSize(consumption, irradiance, batteries)

		fmt.Printf("System Size:       %.1f kW\n", res.SolarSize)
		fmt.Printf("Panel Count:       %d\n", res.PanelCount)
		fmt.Printf("Annual Production: %s\n", utils.FormatKWh(res.EstimatedAnnualProduction))
		fmt.Printf("Energy Offset:     %s\n", res.EnergyOffset)
		fmt.Printf("Battery Storage:   %s\n", res.BatterySize)
		return nil
	},
}

func init() {
	estimateCmd.Flags().Int("batteries", 0, "number of 16 kWh batteries")
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  Brighthouse Proposal Tool — Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    API Server:     %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Printf("    Temp Dir:       %s\n", cfg.Storage.TempDir)
		fmt.Printf("    Slides Template: %s\n", cfg.Slides.TemplateID)
		fmt.Println()

		fmt.Println("  API Keys:")
		keys := config.CheckAPIKeys(cfg)
		for _, k := range keys {
			status := "not set"
			if k.IsSet {
				status = fmt.Sprintf("set (%s: %s)", k.Source, k.Masked)
			}
			fmt.Printf("    %-25s %s\n", k.Name+":", status)
		}

		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}
