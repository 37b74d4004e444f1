package main

import (
	"log/slog"
	"os"
	"time"

	"dairy-pos/internal/accounts"
	"dairy-pos/internal/ai"
	"dairy-pos/internal/auth"
	"dairy-pos/internal/catalog"
	"dairy-pos/internal/config"
	"dairy-pos/internal/customers"
	"dairy-pos/internal/database"
	"dairy-pos/internal/handlers"
	"dairy-pos/internal/sales"
	"dairy-pos/internal/uploads"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(database.Options{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DBDSN,
		Retries:  cfg.DBRetries,
		LogLevel: cfg.DBLogLevel,
	})
	if err != nil {
		logger.Error("database unavailable", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Error("cannot create upload dir", "dir", cfg.UploadDir, "err", err)
		os.Exit(1)
	}

	products := catalog.New(db)
	directory := customers.New(db)
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpiresHours)*time.Hour)
	agent := ai.NewAgent(cfg.GeminiAPIKey, db, products)
	if !agent.Enabled() {
		logger.Warn("GEMINI_API_KEY not set, /api/ask is disabled")
	}

	engine := sales.New(db, products, directory,
		sales.WithTimeout(cfg.SaleTxTimeout),
		sales.WithLogger(logger),
	)

	r := handlers.NewRouter(handlers.Deps{
		DB:          db,
		Sales:       engine,
		Catalog:     products,
		Customers:   directory,
		Accounts:    accounts.New(db, tokens),
		Tokens:      tokens,
		Uploads:     uploads.New(cfg.UploadDir, cfg.BaseURL, cfg.UploadMaxBytes),
		Agent:       agent,
		Logger:      logger,
		CORSOrigins: cfg.CORSOrigins,
		UploadDir:   cfg.UploadDir,
	})

	logger.Info("server starting", "url", cfg.BaseURL, "port", cfg.Port, "db", cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server failed to start", "err", err)
		os.Exit(1)
	}
}
