// Command main is the entry point for the forum server.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bridgeforum/internal/bootstrap"
	"bridgeforum/internal/config"
	"bridgeforum/internal/featureflags"
	"bridgeforum/internal/middleware"
	"bridgeforum/internal/observability"
	"bridgeforum/internal/scheduler"
	"bridgeforum/internal/server"

	"github.com/joho/godotenv"
)

// @title TheBridge forum
// @version 1.0
// @description Student forum with weekly feedback posts, threaded comments and an admin report.
// @description Pages are server-rendered; every non-auth route needs a session cookie.

// @contact.name TheBridge
// @contact.email soporte@thebridge.dev

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey SessionCookie
// @in cookie
// @name bridgeforum_session

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := observability.InitTracing(observability.TracingConfigFrom(cfg, version))
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	ctx := context.Background()
	db, redisClient, err := bootstrap.InitRuntime(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	srv, err := server.NewServerWithDeps(cfg, db, redisClient, server.Deps{})
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	jobs := scheduler.New(middleware.Logger)
	if srv.FeatureFlags().EnabledGlobally(featureflags.ReminderEmails) {
		reminders := srv.Reminders()
		if _, err := jobs.Register(cfg.ReminderCron, "feedback_reminder", func(ctx context.Context) error {
			res, err := reminders.SendReminders(ctx)
			if err != nil {
				return err
			}
			log.Printf("feedback reminders: sent=%d failed=%d skipped=%d", res.Sent, res.Failed, res.Skipped)
			return nil
		}); err != nil {
			log.Fatalf("Failed to schedule reminders: %v", err)
		}
	}
	jobs.Start()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := jobs.Stop(ctx); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server resource shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracing shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}
}
