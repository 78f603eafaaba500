// main.go
// FireCheckPoint Central API
// Receives watch-point photo reports, serves the dashboard status feed
// and the passcode-gated admin summary.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vwin2537-arch/FireCheckPointReport/auth"
	"github.com/vwin2537-arch/FireCheckPointReport/cache"
	"github.com/vwin2537-arch/FireCheckPointReport/config"
	"github.com/vwin2537-arch/FireCheckPointReport/db"
	"github.com/vwin2537-arch/FireCheckPointReport/handlers"
	"github.com/vwin2537-arch/FireCheckPointReport/middleware"
	"github.com/vwin2537-arch/FireCheckPointReport/models"
	"github.com/vwin2537-arch/FireCheckPointReport/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()
	cfg.Validate()

	log.Printf("🚀 Starting FireCheckPoint API Server")
	log.Printf("📍 Environment: %s", cfg.Server.Environment)
	log.Printf("🔧 Port: %s", cfg.Server.Port)

	// Initialize the report store: Firestore in production, in-memory
	// when no project is configured (local development)
	ctx := context.Background()
	var store db.ReportStore
	if cfg.Firebase.ProjectID != "" {
		firestoreDB, err := db.NewFirestoreDB(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Firestore: %v", err)
		}
		store = firestoreDB
	} else {
		log.Println("⚠️  FIREBASE_PROJECT_ID not set, using in-memory store")
		store = db.NewMemoryDB()
	}
	defer store.Close()

	// Initialize the photo archive
	archive, err := storage.NewArchive(cfg.Archive.Root)
	if err != nil {
		log.Fatalf("❌ Failed to initialize photo archive: %v", err)
	}
	log.Printf("🗂️  Photo archive at %s", archive.Root())

	// Optional Redis status cache
	var statusCache *cache.StatusCache
	if cfg.Redis.Addr != "" {
		statusCache = cache.NewStatusCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		defer statusCache.Close()
		log.Printf("🧰 Status cache enabled (redis %s, ttl %v)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Initialize JWT Manager for dashboard sessions
	jwtManager := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Expiration)
	log.Printf("🔐 JWT Manager initialized (expiration: %v)", cfg.JWT.Expiration)

	// Static watch-point registry
	points := models.DefaultWatchPoints(cfg.Watch.PointCount)
	log.Printf("🗺️  Watch-point registry: %d points", len(points))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg.Watch.PasscodeHash, jwtManager)
	reportHandler := handlers.NewReportHandler(store, archive, statusCache)
	adminHandler := handlers.NewAdminHandler(store, points)
	log.Printf("✅ Handlers initialized")

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	rateLimiter.CleanupOldLimiters()
	log.Printf("🛡️  Rate limiter initialized (%d requests per %v)", cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// Set up router
	mux := http.NewServeMux()

	// Public routes (no authentication required)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/reports", reportHandler.Submit)
	mux.HandleFunc("/api/reports/status", reportHandler.Status)

	// Admin routes (dashboard session required)
	authMiddleware := middleware.AuthMiddleware(jwtManager)
	mux.Handle("/api/admin/summary", authMiddleware(http.HandlerFunc(adminHandler.GetSummary)))
	mux.Handle("/api/admin/export", authMiddleware(http.HandlerFunc(adminHandler.ExportReports)))

	// Apply global middleware
	handler := middleware.CORSMiddleware(cfg.CORS.AllowedOrigins)(mux)
	handler = rateLimiter.Middleware()(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// Health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%d,"version":"1.0.0"}`, time.Now().Unix())
}
