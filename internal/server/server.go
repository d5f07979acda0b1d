package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/openimpact/aia-engine/internal/advisory"
	"github.com/openimpact/aia-engine/internal/assessment"
	"github.com/openimpact/aia-engine/internal/config"
	"github.com/openimpact/aia-engine/internal/db"
	"github.com/openimpact/aia-engine/internal/export"
	"github.com/openimpact/aia-engine/internal/server/middleware"
	"github.com/openimpact/aia-engine/internal/server/ratelimit"
	"github.com/openimpact/aia-engine/internal/survey"
	"github.com/openimpact/aia-engine/internal/types"
	"github.com/openimpact/aia-engine/internal/workflow"
)

// Server represents the HTTP tool API server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	orchestrator *assessment.Orchestrator
	registry     *workflow.Registry
	advisor      advisory.Generator
	validator    *validator.Validate
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService // nil when JWT_SECRET is unset
}

// Config holds server configuration
type Config struct {
	Port        int
	SurveyPath  string
	OutputDir   string
	APIKey      string
	DatabaseURL string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	def, err := loadSurvey(cfg.SurveyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey: %w", err)
	}

	advisor, err := advisory.NewGenerator(context.Background(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create advisory generator: %w", err)
	}

	exporter, err := export.NewMarkdownExporter(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	s := &Server{
		orchestrator: assessment.New(def, advisor),
		advisor:      advisor,
		validator:    validator.New(),
	}

	// Optional audit log. The workflow keeps all session state in memory,
	// so a missing database degrades to no persistence rather than failing.
	var auditor workflow.Auditor
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: database unavailable, continuing without audit log: %v", err)
		} else if err := database.Migrate(context.Background()); err != nil {
			log.Printf("Warning: audit migration failed, continuing without audit log: %v", err)
			database.Close()
		} else {
			s.db = database
			auditor = database
		}
	}

	s.registry = workflow.NewRegistry(workflow.Deps{
		Survey:   def,
		Advisor:  advisor,
		Exporter: exporter,
		Auditor:  auditor,
	})

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	// Optional bearer token auth on the tool endpoints.
	var authWrap func(http.Handler) http.Handler
	if os.Getenv("JWT_SECRET") != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)
		authWrap = middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	}

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	tools := http.NewServeMux()
	tools.HandleFunc("POST /tools/assess_project", s.handleAssessProject)
	tools.HandleFunc("POST /tools/functional_preview", s.handleFunctionalPreview)
	tools.HandleFunc("POST /tools/create_workflow", s.handleCreateWorkflow)
	tools.HandleFunc("POST /tools/execute_workflow_step", s.handleExecuteWorkflowStep)
	tools.HandleFunc("GET /tools/workflow_status/{session_id}", s.handleWorkflowStatus)
	tools.HandleFunc("POST /tools/export_report", s.handleExportReport)

	var toolHandler http.Handler = tools
	if authWrap != nil {
		toolHandler = authWrap(tools)
	}
	mux.Handle("/tools/", toolHandler)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // advisory generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// loadSurvey reads a survey definition from disk, or falls back to the
// embedded default.
func loadSurvey(path string) (*types.Survey, error) {
	if path == "" {
		return survey.LoadDefault()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return survey.Load(data)
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.advisor != nil {
		if err := s.advisor.Close(); err != nil {
			log.Printf("Warning: failed to close advisory generator: %v", err)
		}
	}
	if s.db != nil {
		s.db.Close()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
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

// extractClientID extracts the client identifier from the request.
// For now this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	}
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]interface{}{
		"error":       "rate_limit_exceeded",
		"retry_after": info.RetryAfter.Seconds(),
	})
}
