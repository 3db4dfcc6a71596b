package main

import (
	"context"
	"log"
	"os"
	"time"

	"feedcurator/config"
	"feedcurator/content"
	"feedcurator/feeds"
	"feedcurator/ledger"
	"feedcurator/pipeline"
	"feedcurator/publish"
	"feedcurator/scoring"
	"feedcurator/types"

	"github.com/joho/godotenv"
)

func main() {
	log.SetOutput(os.Stderr)

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	log.Println("=== Feed Curation Run ===")
	log.Printf("Started: %s", time.Now().Format("2006-01-02 15:04:05"))

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	sources := loadSources(cfg)
	if len(sources) == 0 {
		log.Fatalf("configuration error: no usable feed source found")
	}
	log.Printf("%d feed(s) configured, keeping items newer than %dh", len(sources), cfg.MaxAgeHours)

	ctx := context.Background()

	ledgerStore, closeLedger, err := newLedger(ctx, cfg)
	if err != nil {
		log.Fatalf("ledger init error: %v", err)
	}
	if closeLedger != nil {
		defer closeLedger()
	}

	pipe := pipeline.New(pipeline.Deps{
		Aggregator: feeds.NewAggregator(),
		Resolver:   content.NewResolver(),
		Scorer:     scoring.NewEngine(scoring.NewCohereBackend(cfg.CohereAPIKey, cfg.CohereModel)),
		Publisher:  publish.NewPublisher(publish.NewNotionStore(cfg.NotionAPIKey, cfg.NotionDatabaseID), ledgerStore),
		Ledger:     ledgerStore,
	})

	stats, err := pipe.Run(ctx, pipeline.Options{
		Sources:     sources,
		MaxAge:      time.Duration(cfg.MaxAgeHours) * time.Hour,
		MinRating:   cfg.MinRating,
		MaxArticles: cfg.MaxArticles,
	})
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}

	log.Println("=== Run Summary ===")
	log.Printf("Feeds:      %d (%d failed)", stats.FeedsConfigured, stats.FeedsFailed)
	log.Printf("Candidates: %d", stats.Candidates)
	log.Printf("Scored:     %d", stats.Scored)
	log.Printf("Published:  %d/%d", stats.Published, stats.Selected)
	log.Println("===================")
}

// loadSources merges OPML-declared feeds with the manual URL list; the
// OPML list keeps precedence in load order.
func loadSources(cfg config.Config) []types.FeedSource {
	var sources []types.FeedSource

	if cfg.OPMLFile != "" {
		opmlSources, err := feeds.LoadOPML(cfg.OPMLFile)
		if err != nil {
			log.Printf("warning: %v", err)
		} else {
			log.Printf("%d feed(s) loaded from %s", len(opmlSources), cfg.OPMLFile)
		}
		sources = append(sources, opmlSources...)
	}

	sources = append(sources, feeds.SourcesFromURLs(cfg.FeedURLs)...)
	return sources
}

func newLedger(ctx context.Context, cfg config.Config) (ledger.Store, func(), error) {
	switch cfg.LedgerBackend {
	case config.LedgerBackendRedis:
		r, err := ledger.NewRedis(cfg.Redis, config.DefaultRedisLedgerKey)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case config.LedgerBackendS3:
		s, err := ledger.NewS3(ctx, cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return ledger.NewFile(cfg.LedgerFile), nil, nil
	}
}
