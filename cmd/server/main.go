package main

import (
	"log/slog"
	"os"

	"github.com/giftwell/backend/internal/auth"
	"github.com/giftwell/backend/internal/config"
	"github.com/giftwell/backend/internal/server"
	"github.com/giftwell/backend/internal/service"
	"github.com/giftwell/backend/internal/storage/sqlite"
	"github.com/giftwell/backend/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.DBPath)

	tokens, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		logger.Error("Failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	authenticator := auth.NewAuthenticator(store, tokens, logger)
	users := service.NewUserService(store, logger)
	wishes := service.NewWishService(store, logger)
	wishlists := service.NewWishlistService(store, logger)
	offers := service.NewOfferService(store, logger)

	srv := server.New(authenticator, tokens, users, wishes, wishlists, offers, logger)
	router := srv.Router()

	addr := ":" + cfg.Port
	logger.Info("Server starting", "address", addr)
	if err := router.Run(addr); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
