package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/vitos/trade_stats_bridge/internal/domain"
	"github.com/vitos/trade_stats_bridge/internal/infrastructure/logger"
	"github.com/vitos/trade_stats_bridge/internal/infrastructure/notifier"
	"github.com/vitos/trade_stats_bridge/internal/infrastructure/storage"
	"github.com/vitos/trade_stats_bridge/internal/infrastructure/terminal"
	"github.com/vitos/trade_stats_bridge/internal/usecase"
	"github.com/vitos/trade_stats_bridge/internal/web"
)

type Config struct {
	Gateway struct {
		URL                    string `yaml:"url"`
		BrokerUTCOffsetSeconds int    `yaml:"broker_utc_offset_seconds"`
	} `yaml:"gateway"`
	Sync struct {
		IntervalSeconds int    `yaml:"interval_seconds"`
		HistoryFrom     string `yaml:"history_from"`
	} `yaml:"sync"`
	Registry struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"registry"`
	MarketData struct {
		Enabled         bool     `yaml:"enabled"`
		IntervalSeconds int      `yaml:"interval_seconds"`
		Symbols         []string `yaml:"symbols"`
	} `yaml:"market_data"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Telegram struct {
		ChatID int64 `yaml:"chat_id"`
	} `yaml:"telegram"`
	Logging struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"logging"`
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
}

func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func main() {
	// Secrets come from the environment; .env covers local runs.
	_ = godotenv.Load()

	cfg, err := loadConfig("config/config.yaml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(cfg.Logging.Level)
	if cfg.Logging.File != "" {
		log, err = logger.NewFileLogger(cfg.Logging.File, cfg.Logging.Level)
	}
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dsn := cfg.Database.URL
	if env := os.Getenv("DATABASE_URL"); env != "" {
		dsn = env
	}
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	store, err := storage.NewPostgresStore(dsn)
	if err != nil {
		log.Fatal("Failed to init storage", zap.Error(err))
	}
	defer store.Close()

	gatewayURL := cfg.Gateway.URL
	if env := os.Getenv("GATEWAY_URL"); env != "" {
		gatewayURL = env
	}
	if gatewayURL == "" {
		gatewayURL = "ws://127.0.0.1:8765"
	}
	gateway := terminal.NewGateway(gatewayURL, log)
	defer gateway.Close()

	var alerts domain.Notifier = notifier.Noop{}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID := cfg.Telegram.ChatID
		if env := os.Getenv("TELEGRAM_CHAT_ID"); env != "" {
			if id, err := strconv.ParseInt(env, 10, 64); err == nil {
				chatID = id
			}
		}
		tg, err := notifier.NewTelegram(token, chatID)
		if err != nil {
			log.Error("Telegram disabled", zap.Error(err))
		} else {
			alerts = tg
		}
	}

	brokerOffset := 3 * time.Hour
	if cfg.Gateway.BrokerUTCOffsetSeconds != 0 {
		brokerOffset = time.Duration(cfg.Gateway.BrokerUTCOffsetSeconds) * time.Second
	}

	historyFrom := time.Now().UTC().AddDate(0, -3, 0)
	if cfg.Sync.HistoryFrom != "" {
		t, err := time.Parse("2006-01-02", cfg.Sync.HistoryFrom)
		if err != nil {
			log.Fatal("Bad sync.history_from, want YYYY-MM-DD", zap.Error(err))
		}
		historyFrom = t
	}

	equityService := usecase.NewEquityService(store, store, log)
	syncService := usecase.NewSyncService(store, store, store, gateway, equityService, log, brokerOffset, historyFrom)
	registryService := usecase.NewRegistryService(store, log)

	// Every worker selects on ctx.Done(), so one signal reaches all of them.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registryPath := cfg.Registry.CSVPath
	if registryPath == "" {
		registryPath = "participants.csv"
	}

	syncInterval := 60 * time.Second
	if cfg.Sync.IntervalSeconds > 0 {
		syncInterval = time.Duration(cfg.Sync.IntervalSeconds) * time.Second
	}

	go func() {
		ticker := time.NewTicker(syncInterval)
		defer ticker.Stop()

		for {
			// Roster edits land mid-contest; pick them up every cycle.
			if err := registryService.SyncFromCSV(ctx, registryPath); err != nil {
				log.Error("Registry import failed", zap.Error(err))
			}
			if err := syncService.SyncAll(ctx); err != nil {
				log.Error("Sync cycle failed", zap.Error(err))
				if nerr := alerts.Notify(ctx, fmt.Sprintf("Sync cycle failed: %v", err)); nerr != nil {
					log.Error("Alert delivery failed", zap.Error(nerr))
				}
			}
			select {
			case <-ticker.C:
				continue
			case <-ctx.Done():
				return
			}
		}
	}()

	if cfg.MarketData.Enabled {
		marketService := usecase.NewMarketDataService(gateway, store, log, brokerOffset, cfg.MarketData.Symbols)
		marketInterval := 5 * time.Minute
		if cfg.MarketData.IntervalSeconds > 0 {
			marketInterval = time.Duration(cfg.MarketData.IntervalSeconds) * time.Second
		}

		go func() {
			ticker := time.NewTicker(marketInterval)
			defer ticker.Stop()

			for {
				if err := marketService.Sync(ctx); err != nil {
					log.Error("Market data sync failed", zap.Error(err))
				}
				select {
				case <-ticker.C:
					continue
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Snapshot retention runs on a slow clock; one pass a day is enough.
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := equityService.CleanupSnapshots(ctx, time.Now()); err != nil {
					log.Error("Snapshot cleanup failed", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	server := web.NewServer(port, store, store, store, store, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	if err := alerts.Notify(ctx, "Bridge started"); err != nil {
		log.Error("Alert delivery failed", zap.Error(err))
	}

	<-ctx.Done()

	log.Info("Shutting down...")
	if err := alerts.Notify(context.Background(), "Bridge stopping"); err != nil {
		log.Error("Alert delivery failed", zap.Error(err))
	}
	server.Shutdown(context.Background())
}
