package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"namecheck/adapters/cache"
	"namecheck/adapters/llm"
	"namecheck/adapters/probe"
	"namecheck/adapters/registrar"
	"namecheck/adapters/search"
	"namecheck/app"
	"namecheck/internal/config"
	"namecheck/internal/report"
	"namecheck/internal/resolve"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "namecheck",
		Short: "Check brand name availability across domains, social handles, trademarks and search",
	}

	rootCmd.AddCommand(
		newCheckCmd(),
		newGenerateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCheckCmd() *cobra.Command {
	var tlds []string
	var platforms []string

	cmd := &cobra.Command{
		Use:   "check [name]",
		Short: "Check one name across domain, social, trademark and SEO channels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks, _ := buildServices()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			result, err := checks.CheckName(ctx, args[0], tlds, platforms)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringSliceVar(&tlds, "tlds", nil, "TLDs to check (default com)")
	cmd.Flags().StringSliceVar(&platforms, "platforms", nil, "social platforms to check")
	return cmd
}

func newGenerateCmd() *cobra.Command {
	var max int
	var extended bool
	var xlsxPath string

	cmd := &cobra.Command{
		Use:   "generate [business description]",
		Short: "Generate name candidates, check and rank them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pipeline := buildServices()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Minute)
			defer cancel()

			result, err := pipeline.Run(ctx, args[0], max, extended)
			if err != nil {
				return err
			}

			fmt.Println(report.Markdown(result))

			if xlsxPath != "" {
				buf, err := report.Excel(result)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, buf.Bytes(), 0o644); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Wrote %s\n", xlsxPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&max, "max", 0, "maximum ranked candidates (default from config)")
	cmd.Flags().BoolVar(&extended, "extended", false, "check the extended TLD set")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX report to this path")
	return cmd
}

// buildServices wires the one-shot service graph. The CLI never touches
// Postgres: results are printed, not persisted.
func buildServices() (*app.CheckService, *app.PipelineService) {
	if err := godotenv.Load(); err == nil {
		log.Println("[CLI] Loaded .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[CLI] Configuration error: %v", err)
	}

	registrarClient, err := registrar.New(registrar.Config{
		Endpoint:    cfg.Registrar.Endpoint,
		Username:    cfg.Registrar.Username,
		Password:    cfg.Registrar.Password,
		Timeout:     cfg.Registrar.Timeout,
		HourlyLimit: cfg.Registrar.HourlyLimit,
	})
	if err != nil {
		log.Fatalf("[CLI] Registrar client setup failed: %v", err)
	}

	searcher := search.New(search.Config{
		APIKey:   cfg.Search.APIKey,
		Endpoint: cfg.Search.Endpoint,
		Timeout:  cfg.Search.Timeout,
	})

	llmConfig := llm.Config{
		Model:       cfg.AI.OpenAIModel,
		APIKey:      cfg.AI.OpenAIKey,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}

	checks := app.NewCheckService(
		&resolve.DomainResolver{
			Registrar:        registrarClient,
			DNS:              probe.NewDNSProber("", cfg.Checker.DNSTimeout),
			Site:             probe.NewHTTPProber(cfg.Checker.HTTPProbeTimeout),
			PremiumThreshold: cfg.Checker.PremiumPriceThreshold,
		},
		&resolve.SocialResolver{
			Prober:    probe.NewHTTPProber(cfg.Checker.HTTPProbeTimeout),
			Searcher:  searcher,
			Platforms: resolve.DefaultPlatforms,
		},
		&resolve.TrademarkResolver{Searcher: searcher},
		&resolve.SEOResolver{Searcher: searcher},
		cache.NewMemory(),
		app.CheckConfig{
			MaxChannels: cfg.Checker.MaxChannelsPerCheck,
			CacheTTL:    cfg.Database.CacheTTL,
		},
	)

	pipeline := app.NewPipelineService(
		llm.NewGeneratorAdapter(llmConfig),
		llm.NewFitAdapter(llmConfig),
		checks,
		nil,
		app.PipelineConfig{
			MaxCandidates:       cfg.Checker.MaxCandidates,
			MaxConcurrentChecks: cfg.Checker.MaxConcurrentChecks,
			DefaultTLDs:         cfg.Checker.DefaultTLDs,
			ExtendedTLDs:        cfg.Checker.ExtendedTLDs,
			Platforms:           cfg.Checker.Platforms,
		},
	)

	return checks, pipeline
}
