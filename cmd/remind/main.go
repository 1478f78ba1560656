// Command remind sends one batch of feedback reminder emails and exits.
// It is meant for hosts that schedule jobs externally instead of running the in-process cron.
package main

import (
	"context"
	"log"
	"time"

	"bridgeforum/internal/bootstrap"
	"bridgeforum/internal/config"
	"bridgeforum/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv, err := server.NewServerWithDeps(cfg, db, redisClient, server.Deps{})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	res, err := srv.Reminders().SendReminders(ctx)
	if err != nil {
		_ = srv.Shutdown(context.Background())
		log.Fatalf("Reminder batch failed: %v", err)
	}
	log.Printf("reminders sent=%d failed=%d skipped=%d", res.Sent, res.Failed, res.Skipped)
	_ = srv.Shutdown(context.Background())
}
