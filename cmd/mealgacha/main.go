package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"mealgacha/internal/catalog"
	"mealgacha/internal/cli"
	"mealgacha/internal/drawcache"
	apphttp "mealgacha/internal/http"
	"mealgacha/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	records := services.NewRecordService(repo)
	defer records.Close()

	cat := cli.InitCatalog(logger, cfg.CatalogPath)
	engine := catalog.NewEngine(cat)

	tickets, err := drawcache.NewStore(cfg.DrawCacheDir)
	if err != nil {
		logger.Error("Failed to initialize draw cache", "error", err, "dir", cfg.DrawCacheDir)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, records, engine, tickets)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting mealgacha server",
			"port", cfg.Port,
			"db", cfg.SQLiteDBPath,
			"catalog_items", cat.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
