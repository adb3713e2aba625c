// Command pokerscraper collects cash game and tournament listings from
// poker sites.
//
// Usage:
//
//	pokerscraper scrape                 # all configured providers, JSON to stdout
//	pokerscraper scrape gg-poker        # one provider
//	pokerscraper run                    # publish to redis every CRAWL_INTERVAL_SECONDS
//	pokerscraper providers
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sjsage522/pokerscraper/config"
	"sjsage522/pokerscraper/internal/crawler"
	"sjsage522/pokerscraper/logger"
	"sjsage522/pokerscraper/services/worker"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	// Initialize logger first
	logger.Init()

	root := &cobra.Command{
		Use:           "pokerscraper",
		Short:         "Poker listing scraper",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(scrapeCmd())
	root.AddCommand(runCmd())
	root.AddCommand(providersCmd())

	if err := root.Execute(); err != nil {
		logger.Default.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// loadConfig loads and validates configuration
func loadConfig() (*config.Config, error) {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func scrapeCmd() *cobra.Command {
	var mode string
	var pretty bool
	cmd := &cobra.Command{
		Use:   "scrape [provider...]",
		Short: "Scrape providers once and print the entries as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if mode != "" {
				cfg.RenderMode = mode
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			if len(args) > 0 {
				cfg.Providers = args
			}

			ctx, cancel := signalContext()
			defer cancel()

			services, err := initializeServices(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer services.Cleanup()

			entries := services.Aggregator.ScrapeAll(ctx)

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(entries)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "render mode override: browser, http or fixture")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Scrape periodically and publish results to redis streams",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.Default

			log.Info().
				Str("environment", cfg.Environment).
				Str("render_mode", cfg.RenderMode).
				Dur("crawl_interval", cfg.CrawlInterval).
				Msg("Starting application")

			ctx, cancel := signalContext()
			defer cancel()

			services, err := initializeServices(ctx, cfg, true)
			if err != nil {
				return err
			}
			defer services.Cleanup()

			w := worker.NewWorker(services.Aggregator, services.Publisher, cfg.CrawlInterval, !cfg.IsProduction())
			log.Info().Msg("Starting poker listing worker")
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				return err
			}

			log.Info().Msg("Shutting down gracefully...")
			return nil
		},
	}
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List providers with a scraper",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			for _, p := range crawler.SupportedProviders() {
				site, err := crawler.SiteFor(p, cfg)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %s\n", p, site.URLs)
			}
			return nil
		},
	}
}
