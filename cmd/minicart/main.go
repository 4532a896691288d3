package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"MiniCart/internal/config"
	"MiniCart/internal/inventory"
	"MiniCart/internal/orders"
	"MiniCart/internal/shop"
	"MiniCart/pkg/kit"
)

const service = "minicart"

func main() {
	cfg := config.Load()

	log, err := kit.NewLogger(service, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	engine, err := inventory.NewEngine(inventory.DefaultProducts())
	if err != nil {
		log.Fatal("init inventory failed", zap.Error(err))
	}

	journal, closeJournal, err := openJournal(cfg, log)
	if err != nil {
		log.Fatal("init order journal failed", zap.Error(err))
	}
	defer closeJournal()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	h := shop.NewHandler(
		&shop.Server{Engine: engine, Orders: journal, Log: log},
		shop.HTTPDeps{
			Log:             log,
			Service:         service,
			Registry:        reg,
			MetricsEnabled:  cfg.MetricsEnabled,
			MetricsToken:    cfg.MetricsToken,
			CartWriteLimit:  cfg.CartWriteLimit,
			CartWriteWindow: cfg.CartWriteWindow,
		},
	)

	if err := kit.RunHTTPServer(cfg.Addr(), h, log, cfg.ShutdownTimeout); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openJournal(cfg config.Config, log *zap.Logger) (orders.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("order journal: memory")
		return orders.NewMemStore(), func() {}, nil
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	store := orders.NewPostgresStore(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	log.Info("order journal: postgres")
	return store, func() { _ = db.Close() }, nil
}
