package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedback-backend/internal/auth"
	"feedback-backend/internal/config"
	"feedback-backend/internal/database"
	"feedback-backend/internal/notify"
	"feedback-backend/internal/repository"
	"feedback-backend/internal/router"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production, env vars are set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feedbackRepo, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeStore()

	var notifier notify.Notifier = notify.NewLogNotifier()
	if cfg.EmailEnabled() {
		notifier = notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, cfg.NotifyEmail)
		log.Printf("📧 Feedback notifications will be e-mailed to %s", cfg.NotifyEmail)
	}

	handler := router.NewRouter(router.Deps{
		FeedbackRepo:  feedbackRepo,
		Notifier:      notifier,
		Authenticator: auth.NewAuthenticator(cfg.AdminUsername, cfg.AdminPassword, cfg.JWTSecret, cfg.TokenTTL),
		CORSOrigins:   cfg.CORSOrigins,
		RequestLog:    true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("⚠️  Graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("🚀 Feedback backend starting on port %s (store: %s)", cfg.Port, cfg.StoreDriver)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Server failed: %v", err)
	}
	log.Println("👋 Server stopped")
}

// openStore connects the configured backend and returns a cleanup func.
func openStore(ctx context.Context, cfg *config.Config) (repository.FeedbackRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("⚠️  Using in-memory store; feedback is lost on restart")
		return repository.NewMemoryFeedbackRepo(), func() {}, nil

	case config.DriverMongo:
		db, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMongoFeedbackRepo(db)
		indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(indexCtx); err != nil {
			log.Printf("⚠️  Warning: failed to create feedback indexes: %v", err)
		}
		return repo, func() { _ = db.Client().Disconnect(context.Background()) }, nil

	default:
		db, err := database.OpenPostgres(cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repository.NewPostgresFeedbackRepo(db), func() { db.Close() }, nil
	}
}
