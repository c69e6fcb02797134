package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"boomstore/internal/cartstore"
	"boomstore/internal/config"
	"boomstore/internal/db"
	"boomstore/internal/httpserver"
	categoryrepo "boomstore/internal/repository/category"
	orderrepo "boomstore/internal/repository/order"
	productrepo "boomstore/internal/repository/product"
	settingsrepo "boomstore/internal/repository/settings"
	tokenrepo "boomstore/internal/repository/token"
	userrepo "boomstore/internal/repository/user"
	adminsvc "boomstore/internal/service/admin"
	authsvc "boomstore/internal/service/auth"
	catalogsvc "boomstore/internal/service/catalog"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	var cartStorage cartstore.Storage
	if cfg.RedisAddr != "" {
		redisStorage, err := cartstore.NewRedisStorage(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Fatalf("connect to redis: %v", err)
		}
		defer redisStorage.Close()
		cartStorage = redisStorage
		logger.Printf("cart storage: redis at %s", cfg.RedisAddr)
	} else {
		cartStorage = cartstore.NewMemoryStorage()
		logger.Printf("cart storage: in-memory (set REDIS_ADDR for durable carts)")
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	settingsRepo := settingsrepo.NewPostgres(dbpool)

	catalogService := catalogsvc.New(productRepo, categoryRepo)
	authService := authsvc.New(userRepo, tokenRepo)
	adminService := adminsvc.New(productRepo, categoryRepo, orderRepo, userRepo, settingsRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog: catalogService,
		Auth:    authService,
		Admin:   adminService,
		Carts:   cartStorage,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
