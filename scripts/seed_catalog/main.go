// Command seed_catalog loads the embedding tables and writes the derived review
// catalog into the Postgres places table. Existing (name, category) rows are kept.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/go-itinerary-recommender/app/db"
	"github.com/FACorreiaa/go-itinerary-recommender/config"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/catalog"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/recommend/vectorstore"
	"github.com/FACorreiaa/go-itinerary-recommender/internal/types"
)

func main() {
	dataDir := flag.String("data", "", "directory holding word2vec.txt and place_vectors.csv")
	dryRun := flag.Bool("dry-run", false, "print per-category counts without writing")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dataDir != "" {
		cfg.Recommender.DataDir = *dataDir
	}

	src, err := vectorstore.FindFileSource(cfg.Recommender.DataDir)
	if err != nil {
		log.Fatalf("Embedding tables not found: %v", err)
	}
	store := vectorstore.Load(ctx, src, logger)
	if store.IsFallback() {
		log.Fatalf("Embedding tables in %s could not be parsed, refusing to seed the built-in dataset", src.Dir)
	}

	places, err := catalog.NewDerivedCatalog(store).Places(ctx)
	if err != nil {
		log.Fatalf("Failed to derive catalog: %v", err)
	}
	batches := byCategory(places)

	if *dryRun {
		for _, c := range types.Categories {
			fmt.Printf("%-14s %d\n", c.Slug(), len(batches[c.Slug()]))
		}
		return
	}

	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err = database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	dbpool, err := database.Init(ctx, dbConfig.ConnectionURL, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbpool.Close()
	if !database.WaitForDB(ctx, dbpool, logger) {
		log.Fatalf("Database not ready")
	}

	repo := catalog.NewPostgresCatalog(dbpool, logger)
	var totalInserted int64
	totalErrors := 0
	for _, c := range types.Categories {
		batch := batches[c.Slug()]
		if len(batch) == 0 {
			continue
		}
		inserted, err := repo.Seed(ctx, batch)
		if err != nil {
			logger.Error("Failed to seed category", slog.String("category", c.Slug()), slog.Any("error", err))
			totalErrors++
			continue
		}
		totalInserted += inserted
		logger.Info("Seeded category",
			slog.String("category", c.Slug()),
			slog.Int("places", len(batch)),
			slog.Int64("inserted", inserted))
	}

	logger.Info("Catalog seeding completed",
		slog.Int64("total_inserted", totalInserted),
		slog.Int("failed_categories", totalErrors))
	if totalErrors > 0 {
		os.Exit(1)
	}
}

func byCategory(places []types.Place) map[string][]types.Place {
	out := make(map[string][]types.Place, len(types.Categories))
	for _, p := range places {
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}
