package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/jaydenbeard/gotham-ecdsa/internal/auth"
	"github.com/jaydenbeard/gotham-ecdsa/internal/config"
	"github.com/jaydenbeard/gotham-ecdsa/internal/ecdsaproto"
	"github.com/jaydenbeard/gotham-ecdsa/internal/httpapi"
	"github.com/jaydenbeard/gotham-ecdsa/internal/storage"
)

func main() {
	cfg := config.Load()

	if err := config.ValidateJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("FATAL: JWT secret validation failed: %v", err)
	}

	log.Printf("Starting ECDSA server: %s", cfg.ServerID)

	verifier, err := auth.NewVerifier(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to initialize auth verifier: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize persistence adapter: %v", err)
	}

	orch := ecdsaproto.New(store, cfg.FailKeygenIfActiveShareExists)

	router := httpapi.NewRouter(orch, verifier)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"POST", "GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           corsHandler.Handler(router),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Listening on port %s (storage backend: %s)", cfg.ServerPort, cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal %v - starting graceful shutdown...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Warning: HTTP server shutdown error: %v", err)
	}

	log.Println("Server stopped gracefully")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "cloud" {
		return storage.NewCloud(context.Background(), cfg.MinioURL, cfg.MinioKey, cfg.MinioSecret, cfg.MinioUseSSL, cfg.Env)
	}
	return storage.NewLocal(), nil
}
