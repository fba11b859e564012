// Package server provides the HTTP API for the resume builder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/fetch"
	"github.com/jonathan/resume-builder/internal/generation"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/server/ratelimit"
	"github.com/jonathan/resume-builder/internal/suggestions"
)

// ShutdownTimeout bounds how long in-flight requests get to finish on shutdown
const ShutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	chat        llm.Client
	suggestions *suggestions.Service
	generator   *generation.Generator
	printer     rendering.PDFPrinter
	rateLimiter *ratelimit.Limiter
	template    rendering.Template
	maxUpload   int64
}

// Deps are the collaborators a server delegates to.
// A nil Chat client makes /api/chat fail with a configuration error; nil Suggestions disables
// suggestions; a nil Generator is built on the Chat client.
type Deps struct {
	Chat        llm.Client
	Suggestions *suggestions.Service
	Generator   *generation.Generator
	Printer     rendering.PDFPrinter
	RateLimiter *ratelimit.Limiter
}

// New creates a server from validated configuration and its collaborators
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		defaults := config.Defaults()
		cfg = &defaults
	}
	tmpl, err := rendering.ParseTemplate(cfg.Template)
	if err != nil {
		return nil, err
	}

	s := &Server{
		chat:        deps.Chat,
		suggestions: deps.Suggestions,
		generator:   deps.Generator,
		printer:     deps.Printer,
		rateLimiter: deps.RateLimiter,
		template:    tmpl,
		maxUpload:   cfg.MaxUploadBytes(),
	}
	if s.suggestions == nil {
		s.suggestions = suggestions.NewService(nil)
	}
	if s.generator == nil {
		s.generator = generation.New(deps.Chat)
	}
	if s.printer == nil {
		s.printer = rendering.NewChromePrinter(0)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// LLM-backed routes
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/generate-resume", s.handleGenerateResume)
	mux.HandleFunc("POST /api/generate-resume/stream", s.handleGenerateResumeStream)
	mux.HandleFunc("POST /api/suggestions", s.handleSuggestions)

	// Documents and resume state
	mux.HandleFunc("POST /api/parse-pdf", s.handleParsePDF)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("POST /api/suggestions/apply", s.handleApplySuggestion)
	mux.HandleFunc("POST /api/resume/preview", s.handlePreview)
	mux.HandleFunc("POST /api/resume/export", s.handleExport)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // two sequential completions plus an optional browser fetch
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// NewFromConfig builds the provider clients, job fetcher, printer and rate limiter from cfg.
// Missing provider keys disable the matching features instead of failing.
func NewFromConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	chat, err := llm.NewClient(ctx, cfg.ChatLLM())
	if err != nil {
		if !llm.IsMissingKey(err) {
			return nil, fmt.Errorf("failed to create chat client: %w", err)
		}
		log.Warn().Str("provider", string(cfg.ChatLLM().Provider)).Msg("API key not found, chat and resume generation are disabled")
		chat = nil
	}

	sugg, err := suggestions.NewServiceFromConfig(ctx, cfg.SuggestionsLLM())
	if err != nil {
		return nil, fmt.Errorf("failed to create suggestions client: %w", err)
	}

	return New(cfg, Deps{
		Chat:        chat,
		Suggestions: sugg,
		Generator:   generation.New(chat, generation.WithFetcher(fetch.NewJobFetcher(nil, cfg.UseBrowser))),
		Printer:     rendering.NewChromePrinter(0),
		RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	})
}

// Handler returns the root handler with middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully and releases the clients
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.Close()
	log.Info().Msg("server stopped")
	return err
}

// Close stops the rate limiter and closes the provider clients
func (s *Server) Close() {
	s.rateLimiter.Stop()
	if s.chat != nil {
		if err := s.chat.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close chat client")
		}
	}
	if err := s.suggestions.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close suggestions client")
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects requests over the client's per-endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the recorder
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"chat":        s.chat != nil,
		"suggestions": s.suggestions.Enabled(),
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("error encoding JSON response")
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID uses the IP address from RemoteAddr.
// X-Forwarded-For is ignored since the server is not deployed behind a trusted proxy.
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
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}

	log.Warn().
		Str("path", r.URL.Path).
		Int("limit", info.Limit).
		Time("reset", info.ResetTime).
		Msg("rate limit exceeded")

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
