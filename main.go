package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"namecheck/adapters/cache"
	"namecheck/adapters/llm"
	"namecheck/adapters/postgres"
	"namecheck/adapters/probe"
	"namecheck/adapters/registrar"
	"namecheck/adapters/search"
	"namecheck/app"
	"namecheck/internal/api"
	"namecheck/internal/config"
	"namecheck/internal/resolve"
	"namecheck/ports"
)

func main() {
	// Load .env file if present (development convenience)
	if err := godotenv.Load(); err != nil {
		log.Println("[Main] No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Configuration error: %v", err)
	}

	verdictCache, runRepo := initStorage(cfg)

	checks, pipeline := buildServices(cfg, verdictCache, runRepo)

	server := api.NewServer(checks, pipeline, runRepo)

	addr := ":" + cfg.Server.Port
	log.Printf("[Main] Listening on %s", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("[Main] Server failed: %v", err)
	}
}

// initStorage connects Postgres when DATABASE_URL is set. Without it the
// verdict cache falls back to in-process memory and run history is disabled.
func initStorage(cfg *config.Config) (ports.Cache, ports.RunRepository) {
	if cfg.Database.URL == "" {
		log.Println("[Main] DATABASE_URL not set, using in-memory cache, run history disabled")
		return newLocalCache(cfg), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		log.Printf("[Main] Database unavailable (%v), using in-memory cache", err)
		return newLocalCache(cfg), nil
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("[Main] Schema setup failed: %v", err)
	}

	return pickCache(cfg, db), postgres.NewRunStore(db)
}

func newLocalCache(cfg *config.Config) ports.Cache {
	if !cfg.Database.CacheEnabled {
		return cache.Noop{}
	}
	return cache.NewMemory()
}

func pickCache(cfg *config.Config, db *sqlx.DB) ports.Cache {
	if !cfg.Database.CacheEnabled {
		return cache.Noop{}
	}
	return postgres.NewCacheStore(db)
}

func buildServices(cfg *config.Config, verdictCache ports.Cache, runRepo ports.RunRepository) (*app.CheckService, *app.PipelineService) {
	registrarClient, err := registrar.New(registrar.Config{
		Endpoint:    cfg.Registrar.Endpoint,
		Username:    cfg.Registrar.Username,
		Password:    cfg.Registrar.Password,
		Timeout:     cfg.Registrar.Timeout,
		HourlyLimit: cfg.Registrar.HourlyLimit,
	})
	if err != nil {
		log.Fatalf("[Main] Registrar client setup failed: %v", err)
	}
	if !registrarClient.Configured() {
		log.Println("[Main] Registrar credentials not set, domain checks fall back to DNS")
	}

	searcher := search.New(search.Config{
		APIKey:   cfg.Search.APIKey,
		Endpoint: cfg.Search.Endpoint,
		Timeout:  cfg.Search.Timeout,
	})
	if !searcher.Configured() {
		log.Println("[Main] SEARCH_API_KEY not set, trademark and SEO channels degraded")
	}

	llmConfig := llm.Config{
		Model:       cfg.AI.OpenAIModel,
		APIKey:      cfg.AI.OpenAIKey,
		BaseURL:     cfg.AI.BaseURL,
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
		Timeout:     cfg.AI.Timeout,
	}
	generator := llm.NewGeneratorAdapter(llmConfig)
	fitScorer := llm.NewFitAdapter(llmConfig)

	domainResolver := &resolve.DomainResolver{
		Registrar:        registrarClient,
		DNS:              probe.NewDNSProber("", cfg.Checker.DNSTimeout),
		Site:             probe.NewHTTPProber(cfg.Checker.HTTPProbeTimeout),
		PremiumThreshold: cfg.Checker.PremiumPriceThreshold,
	}
	socialResolver := &resolve.SocialResolver{
		Prober:    probe.NewHTTPProber(cfg.Checker.HTTPProbeTimeout),
		Searcher:  searcher,
		Platforms: resolve.DefaultPlatforms,
	}
	trademarkResolver := &resolve.TrademarkResolver{Searcher: searcher}
	seoResolver := &resolve.SEOResolver{Searcher: searcher}

	checks := app.NewCheckService(
		domainResolver,
		socialResolver,
		trademarkResolver,
		seoResolver,
		verdictCache,
		app.CheckConfig{
			MaxChannels: cfg.Checker.MaxChannelsPerCheck,
			CacheTTL:    cfg.Database.CacheTTL,
		},
	)

	pipeline := app.NewPipelineService(generator, fitScorer, checks, runRepo, app.PipelineConfig{
		MaxCandidates:       cfg.Checker.MaxCandidates,
		MaxConcurrentChecks: cfg.Checker.MaxConcurrentChecks,
		DefaultTLDs:         cfg.Checker.DefaultTLDs,
		ExtendedTLDs:        cfg.Checker.ExtendedTLDs,
		Platforms:           cfg.Checker.Platforms,
	})

	return checks, pipeline
}
