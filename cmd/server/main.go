/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the sales simulator server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Initialize SQLite run store
  3. Choose the response cache (Redis if configured, memory otherwise)
  4. Create API handler, optionally with defaults from a YAML file
  5. Start retention scheduler
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS (environment fallback in brackets):
  -port      HTTP server port [PORT] (default: 8080)
  -db        SQLite database path [DB_PATH] (default: simulator.db)
             Use ":memory:" for in-memory database
  -redis     Redis address for the response cache [REDIS_ADDR]
             Empty means an in-process cache
  -cache-ttl Redis entry TTL [CACHE_TTL] (default: 1h)
  -defaults  YAML file with the default commercial configuration [DEFAULTS_FILE]
  -max-runs  Saved runs kept by the retention scheduler [MAX_RUNS] (default: 500)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler, close cache and database
  4. Exit

EXAMPLES:
  # Run with file database and Redis
  ./server -db="./data/simulator.db" -redis="localhost:6379"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run with a custom default configuration
  ./server -defaults=./configs/launch.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/warp/sales-simulator/api"
	"github.com/warp/sales-simulator/cache"
	"github.com/warp/sales-simulator/factory"
	"github.com/warp/sales-simulator/store/sqlite"
)

func main() {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	// Flags
	port := flag.Int("port", getenvInt("PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", getenvDefault("DB_PATH", "simulator.db"), "SQLite database path")
	redisAddr := flag.String("redis", getenvDefault("REDIS_ADDR", ""), "Redis address for the response cache")
	cacheTTL := flag.Duration("cache-ttl", getenvDuration("CACHE_TTL", time.Hour), "Redis cache entry TTL")
	defaultsFile := flag.String("defaults", getenvDefault("DEFAULTS_FILE", ""), "YAML file with the default configuration")
	maxRuns := flag.Int("max-runs", getenvInt("MAX_RUNS", 500), "Saved runs to keep (0 keeps all)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize cache
	var responseCache cache.Cache = cache.NewMemory()
	if *redisAddr != "" {
		rc := cache.NewRedis(*redisAddr, *cacheTTL)
		defer rc.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Printf("Warning: Redis at %s unreachable, cache will miss until it recovers: %v", *redisAddr, err)
		}
		cancel()
		responseCache = rc
	}

	// Initialize handler
	handler := api.NewHandler(store, responseCache)

	if *defaultsFile != "" {
		if err := loadDefaults(handler.Factory, *defaultsFile); err != nil {
			log.Fatalf("Failed to load defaults: %v", err)
		}
		log.Printf("Loaded default configuration from %s", *defaultsFile)
	}

	// Retention
	scheduler := api.NewRetentionScheduler(store)
	scheduler.MaxRuns = *maxRuns
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// loadDefaults replaces the factory defaults with the YAML configuration at
// path. Keys the file omits keep their current value.
func loadDefaults(f *factory.SimulationFactory, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read defaults file: %w", err)
	}
	cfg, err := f.ParseConfigYAML(data)
	if err != nil {
		return fmt.Errorf("defaults file %s: %w", path, err)
	}
	f.Defaults = cfg
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: ignoring %s=%q: %v", key, v, err)
		return def
	}
	return d
}
