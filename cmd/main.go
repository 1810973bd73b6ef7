package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Abhishek200416/p2/internal/ai"
	"github.com/Abhishek200416/p2/internal/auth"
	"github.com/Abhishek200416/p2/internal/config"
	"github.com/Abhishek200416/p2/internal/database"
	"github.com/Abhishek200416/p2/internal/handlers"
	"github.com/Abhishek200416/p2/internal/media"
	"github.com/Abhishek200416/p2/internal/middleware"
	"github.com/Abhishek200416/p2/internal/repository"
	"github.com/Abhishek200416/p2/internal/server"
	"github.com/Abhishek200416/p2/internal/services"
	"github.com/Abhishek200416/p2/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sugar, err := utils.NewLogger(cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()
	sugar.Infof("Starting portfolio API in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatalf("mongo connect: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
		if err != nil {
			sugar.Warnf("redis unavailable, rate limiting disabled: %v", err)
			rdb = nil
		}
	}

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.OwnerPass)

	contentRepo := repository.NewMongoContentRepo(db)
	subscriberRepo := repository.NewMongoSubscriberRepo(db)
	feedbackRepo := repository.NewMongoFeedbackRepo(db)
	contactRepo := repository.NewMongoContactRepo(db)
	statusRepo := repository.NewMongoStatusRepo(db)

	contentSvc := services.NewContentService(contentRepo, sugar)
	intakeSvc := services.NewIntakeService(subscriberRepo, feedbackRepo, contactRepo, sugar)
	statusSvc := services.NewStatusService(statusRepo, sugar)

	mediaStore, err := media.NewStore(cfg.Upload.Dir, sugar)
	if err != nil {
		sugar.Fatalf("media store init: %v", err)
	}

	gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.Model)
	if err != nil {
		sugar.Fatalf("gemini init: %v", err)
	}
	if !gemini.IsConfigured() {
		sugar.Warn("Gemini API key not set. AI features will run in degraded mode.")
	}
	assist := ai.NewAssist(gemini, sugar)

	h := handlers.NewHandler(tokens, contentSvc, intakeSvc, statusSvc, mediaStore, assist, sugar)
	limiter := middleware.NewRateLimiter(rdb, "portfolio:rl", cfg.RateLimit.Requests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	app := server.New(cfg, h, tokens, limiter, sugar.Desugar())

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			sugar.Errorf("Redis client close error: %v", err)
		}
	}
	_ = gemini.Close()

	sugar.Info("Graceful shutdown complete")
}
