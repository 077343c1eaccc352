package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"local-market-backend/config"
	"local-market-backend/internal/api"
	"local-market-backend/internal/catalog"
	"local-market-backend/internal/checkout"
	"local-market-backend/internal/form"
	"local-market-backend/internal/kv"
	"local-market-backend/internal/notification"
	"local-market-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "marketd ", log.LstdFlags)

	if err := godotenv.Load(); err != nil {
		logger.Println("no .env file found; using the process environment")
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	storage, closeStorage, err := kv.Open(&cfg.Storage)
	if err != nil {
		logger.Fatalf("failed to open %s storage: %v", cfg.Storage.Driver, err)
	}
	logger.Printf("%s storage opened", cfg.Storage.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flusher := store.NewFlusher(cfg.Flush.Workers, cfg.Flush.QueueSize)
	reg := store.NewRegistry(store.Options{Storage: storage, Scheduler: flusher})
	flusher.Register(reg.Stores()...)
	flusher.Start(ctx)

	cat := catalog.NewService(&cfg.Catalog)
	if err := cat.Load(); err != nil {
		logger.Fatalf("failed to load catalog: %v", err)
	}
	if err := reg.Load(ctx, cat.Seed()); err != nil {
		logger.Fatalf("failed to load stores: %v", err)
	}
	logger.Println("stores loaded")

	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, reg.Subscriptions, reg.Settings, webpushOptions)
		pool.Start(ctx)
		reg.Bookings.SetObserver(pool)
	} else {
		logger.Println("VAPID keys are not configured; booking notifications are disabled")
	}

	gateway, err := checkout.NewGateway(&cfg.Checkout)
	if err != nil {
		logger.Fatalf("failed to configure checkout: %v", err)
	}
	checkoutSvc := checkout.NewService(&cfg.Checkout, gateway, reg.Bookings)

	go reg.Run(ctx, cfg.Flush.Interval)
	go cat.Run(ctx)

	handler := api.NewHandler(reg, cat, form.NewFactory(reg, cat), checkoutSvc, cfg.Flows.SessionTTL, webpushOptions)
	router := api.NewRouter(handler, cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}
	cancel()

	// Whatever the background flusher had not written yet goes out now.
	if err := reg.Close(shutdownCtx); err != nil {
		logger.Printf("final flush failed: %v", err)
	}
	if err := closeStorage(); err != nil {
		logger.Printf("failed to close storage: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
