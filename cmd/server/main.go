package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"skyward-mro/shopfloor/internal/config"
	"skyward-mro/shopfloor/internal/db"
	"skyward-mro/shopfloor/internal/logging"
	"skyward-mro/shopfloor/internal/registry"
	"skyward-mro/shopfloor/internal/routes"
	"skyward-mro/shopfloor/internal/seed"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Shopfloor starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	if cfg.DatabaseDSN != "" {
		if _, err := db.InitORM(cfg.DatabaseDSN); err != nil {
			logging.Error("Failed to connect database (GORM)", "error", err.Error())
			log.Fatalf("failed to connect database (GORM): %v", err)
		}
		logging.Info("Connected to database (GORM)")

		// raw reporting queries need a real Postgres
		if isPostgresDSN(cfg.DatabaseDSN) {
			if err := db.InitPostgres(cfg.DatabaseDSN); err != nil {
				logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
				log.Fatalf("failed to connect to Postgres (sqlx): %v", err)
			}
			logging.Info("Connected to Postgres (sqlx)")
		}
	} else {
		logging.Info("No database configured, running memory-only")
	}

	reg := registry.New(registry.WithQRBaseURL(cfg.QRBaseURL))
	if cfg.SeedDemoData {
		if err := seed.Load(reg); err != nil {
			logging.Error("Failed to seed demo data", "error", err.Error())
			log.Fatalf("failed to seed demo data: %v", err)
		}
		logging.Info("Demo data seeded",
			"parts", len(reg.Parts()),
			"technicians", len(reg.Technicians()),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	upSince := time.Now()
	router, err := routes.RegisterRoutes(ctx, cfg, reg, upSince)
	if err != nil {
		logging.Error("Failed to initialize routes", "error", err.Error())
		log.Fatalf("failed to initialize routes: %v", err)
	}

	// metrics endpoint lives outside the Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("Server starting", "address", cfg.Address, "environment", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logging.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logging.Error("Server exited with error", "error", err.Error())
		log.Fatalf("server exited: %v", err)
	}
	logging.Info("Server stopped")
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.Contains(dsn, "host=")
}
