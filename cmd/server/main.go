package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/patungan-app/backend/internal/api"
	"github.com/patungan-app/backend/internal/service"
	"github.com/patungan-app/backend/internal/storage/sqlite"
	"github.com/patungan-app/backend/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/sessions.db")
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		slog.Error("Invalid PORT", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	cfg := api.DefaultConfig()
	cfg.Port = port
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	if getEnv("GIN_MODE", "") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(cfg, service.NewSessionService(store))
	slog.Info("Server starting", "port", cfg.Port)
	if err := server.Run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
