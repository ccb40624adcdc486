/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Brightline quote engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Seed the default catalog if none is stored
  4. Create API handler with dependencies
  5. Configure HTTP router
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: 8080)
  -db         SQLite database path (default: quotes.db)
              Use ":memory:" for in-memory database
  -contracts  Output directory for generated documents (default: contracts)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/quotes.db"

  # Run with in-memory database
  ./server -db=":memory:"

  # Run on different port
  ./server -port=3000

ENVIRONMENT:
  No environment variables currently. All config via flags.
  Future: DATABASE_URL, PORT, LOG_LEVEL

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightline/quote-engine/api"
	"github.com/brightline/quote-engine/catalog"
	"github.com/brightline/quote-engine/quote"
	"github.com/brightline/quote-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "quotes.db", "SQLite database path")
	contractsDir := flag.String("contracts", "contracts", "Output directory for generated documents")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed the default catalog on first boot
	if err := seedCatalog(context.Background(), store); err != nil {
		log.Printf("Warning: Failed to seed catalog: %v", err)
	}

	// Initialize handler
	handler := api.NewHandler(store)
	handler.ContractsDir = *contractsDir

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
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
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
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedCatalog stores the default catalog document when none exists yet, so
// a fresh database prices quotes immediately.
func seedCatalog(ctx context.Context, store *sqlite.Store) error {
	_, err := store.GetCatalogDoc(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, quote.ErrCatalogNotFound) {
		return err
	}

	raw, err := json.MarshalIndent(catalog.DefaultCatalog(), "", "  ")
	if err != nil {
		return err
	}
	return store.PutCatalogDoc(ctx, raw)
}
