// Package server provides the HTTP REST API for the career guidance service.
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

	"github.com/jonathan/career-pilot/internal/analysis"
	"github.com/jonathan/career-pilot/internal/chat"
	"github.com/jonathan/career-pilot/internal/jobs"
	"github.com/jonathan/career-pilot/internal/llm"
	"github.com/jonathan/career-pilot/internal/profile"
	"github.com/jonathan/career-pilot/internal/roadmap"
	"github.com/jonathan/career-pilot/internal/server/ratelimit"
	"github.com/jonathan/career-pilot/internal/suggest"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       *profile.Store
	planner     *roadmap.Planner
	analyzer    *analysis.Analyzer
	chat        *chat.Client
	suggester   *suggest.Client
	jobs        *jobs.Client
	llmClient   llm.Client
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
	closers     []func()
}

// Config holds server configuration
type Config struct {
	Port          int
	GeminiAPIKey  string
	JSearchAPIKey string
	DatabaseURL   string
	SessionDir    string
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	s := &Server{
		validate: validator.New(),
	}

	// Pick the persistence backend: Postgres when a database URL is set,
	// the session directory when configured, in-memory otherwise.
	var persist profile.Persistence
	switch {
	case cfg.DatabaseURL != "":
		pg, err := profile.NewPostgresPersistence(context.Background(), cfg.DatabaseURL, "default")
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		s.closers = append(s.closers, pg.Close)
		persist = pg
	case cfg.SessionDir != "":
		persist = profile.NewFilePersistence(cfg.SessionDir)
	default:
		persist = profile.NewMemoryPersistence()
	}
	s.store = profile.New(persist)

	// The LLM client is optional at startup; model-backed endpoints report
	// the missing key per request instead of refusing to boot.
	if cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llmClient = client
		s.closers = append(s.closers, func() {
			if err := client.Close(); err != nil {
				log.Printf("Error closing LLM client: %v", err)
			}
		})
	}
	s.wireComponents()

	s.jobs = jobs.NewClient(cfg.JSearchAPIKey)
	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// wireComponents builds the model-backed components over the current LLM
// client. They stay nil without a client and handlers report the missing key.
func (s *Server) wireComponents() {
	if s.llmClient == nil {
		return
	}
	s.planner = roadmap.NewPlanner(roadmap.NewGenerator(s.llmClient), s.store.TaskCache())
	s.analyzer = analysis.NewAnalyzer(s.llmClient)
	s.chat = chat.NewClient(s.llmClient)
	s.suggester = suggest.NewClient(s.llmClient)
}

// routes builds the request router.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Profile endpoints
	mux.HandleFunc("POST /profiles", s.handleCreateProfile)
	mux.HandleFunc("GET /profiles", s.handleListProfiles)
	mux.HandleFunc("GET /profiles/current", s.handleCurrentProfile)
	mux.HandleFunc("GET /profiles/{id}", s.handleGetProfile)
	mux.HandleFunc("PATCH /profiles/{id}", s.handleUpdateProfile)
	mux.HandleFunc("POST /profiles/{id}/activate", s.handleActivateProfile)
	mux.HandleFunc("POST /logout", s.handleLogout)

	// Roadmap endpoints
	mux.HandleFunc("POST /profiles/{id}/roadmap/generate", s.handleGenerateRoadmap)
	mux.HandleFunc("GET /profiles/{id}/roadmap", s.handleGetRoadmap)
	mux.HandleFunc("POST /profiles/{id}/roadmap/toggle", s.handleToggleSubtask)
	mux.HandleFunc("POST /profiles/{id}/roadmap/more", s.handleMoreTasks)

	// Resume analysis
	mux.HandleFunc("POST /resume/analyze", s.handleAnalyzeResume)

	// Chat
	mux.HandleFunc("POST /chat", s.handleChat)

	// Field and role suggestions
	mux.HandleFunc("POST /suggest/fields", s.handleSuggest)

	// Job search
	mux.HandleFunc("POST /jobs/search", s.handleJobSearch)

	return mux
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
	for _, closeFn := range s.closers {
		closeFn()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

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

// failWith maps the error to a status and writes it.
func (s *Server) failWith(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// decodeJSON parses the request body into dst and runs struct validation.
func (s *Server) decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON"}
	}
	if err := s.validate.Struct(dst); err != nil {
		return err
	}
	return nil
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

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
