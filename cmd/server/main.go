package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripsearch/internal/cache"
	"tripsearch/internal/config"
	"tripsearch/internal/db"
	"tripsearch/internal/jobs"
	"tripsearch/internal/metrics"
	"tripsearch/internal/search"
	"tripsearch/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL, cfg.StatementTimeoutMS)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	if cfg.IsDev() && cfg.SeedDevData {
		if err := database.SeedDevData(ctx); err != nil {
			log.Printf("Warning: failed to seed dev data: %v", err)
		}
	}

	// Metrics collector and recorder
	metrics.Init(database)

	// Optional Redis result cache
	var resultCache *cache.ResultCache
	if cfg.RedisURL != "" {
		resultCache, err = cache.New(cfg.RedisURL, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		if err != nil {
			log.Printf("Warning: result cache disabled: %v", err)
		} else {
			defer resultCache.Close()
		}
	}

	// The canonical resolver, shared by the HTML surface and the JSON API.
	// The DB doubles as its store and its semantic component matcher.
	resolver := search.NewResolver(database, database, cfg.SearchConfig(), nil)

	// Background answer-cache janitor
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	janitor := jobs.NewAnswerJanitor(database, time.Duration(cfg.JanitorIntervalMinutes)*time.Minute)
	go janitor.Start(janitorCtx)

	// HTTP server
	srv := server.New(cfg)
	srv.RegisterRoutes(database, resolver, resultCache)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()
	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopJanitor()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
