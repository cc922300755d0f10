package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"college-trip-planner/internal/database"
	"college-trip-planner/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	config, err := database.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	maxExact := config.MaxExactColleges
	if v := os.Getenv("MAX_EXACT_COLLEGES"); v != "" {
		maxExact, err = strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MAX_EXACT_COLLEGES %q: %w", v, err)
		}
	}

	srv, err := server.New(server.Config{
		Addr:             getEnv("SERVER_ADDR", config.ServerAddr),
		DatabasePath:     getEnv("DATABASE_PATH", config.DatabasePath),
		MaxExactColleges: maxExact,
		SessionTTL:       config.TTL(),
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	actualAddr, err := srv.Start()
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	log.Printf("API available at http://%s/api/v1", actualAddr)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	sig := <-shutdown
	log.Printf("Received signal %v, starting graceful shutdown", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}

	log.Print("Server stopped")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
