package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/infrastructure/logger"
	"github.com/vitos/trade_stats_bridge/internal/infrastructure/storage"
	"github.com/vitos/trade_stats_bridge/internal/usecase"
)

// One-shot roster import, for seeding the database before the bridge runs.
func main() {
	path := flag.String("file", "participants.csv", "participants CSV file")
	flag.Parse()

	_ = godotenv.Load()

	log, err := logger.NewLogger("info")
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	store, err := storage.NewPostgresStore(dsn)
	if err != nil {
		log.Fatal("Failed to init storage", zap.Error(err))
	}
	defer store.Close()

	registry := usecase.NewRegistryService(store, log)
	if err := registry.SyncFromCSV(context.Background(), *path); err != nil {
		log.Fatal("Import failed", zap.Error(err))
	}

	participants, err := store.ListParticipants(context.Background())
	if err != nil {
		log.Fatal("Failed to list participants", zap.Error(err))
	}
	log.Info("Import finished", zap.Int("participants", len(participants)))
}
