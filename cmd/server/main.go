package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/hi8esh/askziva/config"
	httpDelivery "github.com/hi8esh/askziva/internal/delivery/http"
	"github.com/hi8esh/askziva/internal/domain"
	"github.com/hi8esh/askziva/internal/infrastructure/cache"
	"github.com/hi8esh/askziva/internal/infrastructure/extractor"
	"github.com/hi8esh/askziva/internal/infrastructure/history"
	"github.com/hi8esh/askziva/internal/infrastructure/judge"
	"github.com/hi8esh/askziva/internal/infrastructure/storefront"
	"github.com/hi8esh/askziva/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting AskZiva Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// One shared client for all outbound scraping
	scrapeClient := &http.Client{Timeout: 25 * time.Second}

	pageExtractor := extractor.NewAmazonExtractor(scrapeClient)

	// Competitor scanners are optional: an empty site list simply means
	// reports carry no competitor data.
	var scanners []domain.CompetitorScanner
	if cfg.Scanner.Enabled {
		scannerCfg := storefront.ScannerConfig{
			SimilarityFloor: cfg.Scanner.SimilarityFloor,
			MaxCandidates:   cfg.Scanner.MaxCandidates,
		}
		for _, name := range cfg.Scanner.Sites {
			site := storefrontByName(name)
			if site == nil {
				continue
			}
			scanners = append(scanners, storefront.NewScanner(site, scrapeClient, scannerCfg))
			log.Printf("Competitor scanner enabled: %s", site.Name())
		}
	}
	if len(scanners) == 0 {
		log.Printf("WARNING: no competitor scanners enabled - reports will carry no market data")
	}

	// History lookups share one TTL cache across requests
	var historyProvider domain.HistoryProvider
	if cfg.History.Enabled {
		historyProvider = history.NewCachedProvider(
			history.NewClient(cfg.History.BaseURL, scrapeClient),
			cache.NewMemoryCache(),
			cfg.Cache.TTL,
		)
		log.Printf("History lookup enabled: %s (cache TTL %s)", cfg.History.BaseURL, cfg.Cache.TTL)
	}

	judgeClient := judge.NewClient(judge.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
	if judgeClient.Available() {
		log.Printf("Judge configured: %s (%s)", cfg.LLM.BaseURL, cfg.LLM.Model)
	} else {
		log.Printf("WARNING: no LLM API key set - judge will run in fallback mode")
	}

	aggregator := usecase.NewAggregator(
		pageExtractor,
		judgeClient,
		scanners,
		historyProvider,
		usecase.AggregatorConfig{SourceTimeout: cfg.Scanner.Timeout},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(aggregator)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// storefrontByName maps a configured site name to its markup variant.
func storefrontByName(name string) storefront.Site {
	switch name {
	case "flipkart":
		return storefront.Flipkart{}
	case "croma":
		return storefront.Croma{}
	default:
		log.Printf("WARNING: unknown storefront %q skipped", name)
		return nil
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
