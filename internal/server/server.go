// Package server provides the HTTP REST API consumed by the recruiter and
// candidate views.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rafael/talentmatch/internal/analysis"
	"github.com/rafael/talentmatch/internal/config"
	"github.com/rafael/talentmatch/internal/db"
	"github.com/rafael/talentmatch/internal/hiring"
	"github.com/rafael/talentmatch/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	db         *db.DB
	analyzer   *analysis.Client
	jobs       *hiring.JobService
	apps       *hiring.ApplicationService
	validate   *validator.Validate
}

// New creates a server instance wired to the store, the object storage and
// the analyzer. The database and AI clients are constructed once here and
// shared for the process lifetime.
func New(ctx context.Context, cfg *config.Config, port int) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	resumes, err := storage.New(ctx, storage.Config{
		Endpoint:      cfg.StorageEndpoint,
		Region:        cfg.StorageRegion,
		Bucket:        cfg.StorageBucket,
		AccessKey:     cfg.StorageAccessKey,
		SecretKey:     cfg.StorageSecretKey,
		PublicBaseURL: cfg.ResumePublicURL,
	})
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create resume store: %w", err)
	}

	analyzer, err := analysis.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	s := &Server{
		db:       database,
		analyzer: analyzer,
		jobs:     hiring.NewJobService(database),
		apps:     hiring.NewApplicationService(database, resumes, analyzer),
		validate: validator.New(),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // analysis calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the handler tree with the middleware chain applied
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Job endpoints
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("PUT /jobs/{id}", s.handleUpdateJob)
	mux.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)
	mux.HandleFunc("PUT /jobs/{id}/status", s.handleSetJobStatus)

	// Candidate endpoints
	mux.HandleFunc("GET /jobs/{id}/candidates", s.handleListCandidates)
	mux.HandleFunc("POST /jobs/{id}/candidates", s.handleCreateCandidate)
	mux.HandleFunc("POST /candidates/{id}/analyze", s.handleAnalyzeCandidate)

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := s.analyzer.Close(); err != nil {
		log.Printf("Error closing analyzer: %v", err)
	}
	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a workflow error onto the wire. Schema-missing errors
// get a setup-specific message so a misconfigured database is recognizable
// from the banner alone.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	message := err.Error()
	if status == http.StatusServiceUnavailable {
		message = "Database unavailable: " + message
	}
	s.errorResponse(w, status, message)
}
