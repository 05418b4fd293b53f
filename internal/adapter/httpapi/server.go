// Package httpapi exposes the chatbot over HTTP: the chat endpoint, the
// welcome and profile reads, the conversation counter, recruiter contact
// intake, and health. Responses use a JSON success/error envelope; CORS
// and fixed-window rate limiting sit in front of the chat route.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/vrcrush/ai-interview-clone/internal/domain"
	"github.com/vrcrush/ai-interview-clone/internal/knowledge"
	"github.com/vrcrush/ai-interview-clone/internal/usecase/chat"
)

// Responder is the conversation core as seen by the HTTP layer.
type Responder interface {
	Respond(ctx context.Context, message string, history []domain.ConversationTurn) (chat.Reply, error)
}

// ConversationCounter counts started conversations. Failures are logged
// and otherwise ignored so the chat path never depends on the counter.
type ConversationCounter interface {
	Hit(ctx context.Context) (int64, error)
	Value(ctx context.Context) (int64, error)
}

// Contact is one recruiter contact submission.
type Contact struct {
	Name     string
	Email    string
	Company  string
	LinkedIn string
}

// ContactStore persists recruiter contact submissions.
type ContactStore interface {
	SaveContact(ctx context.Context, contact Contact) error
}

// Logger is the structured logging surface the handlers use.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
	LogWarning(ctx context.Context, message string, fields map[string]interface{})
	LogError(ctx context.Context, message string, fields map[string]interface{})
}

// Config holds the HTTP surface settings.
type Config struct {
	Addr            string
	AllowedOrigins  []string
	RateLimit       int
	RateWindow      time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Deps are the collaborators the server routes requests to. Counter,
// Contacts, and Logger may be nil; the affected endpoints degrade.
type Deps struct {
	Guard    Responder
	KB       knowledge.Base
	Counter  ConversationCounter
	Contacts ContactStore
	Logger   Logger
}

// Server is the HTTP front of the chatbot.
type Server struct {
	cfg        Config
	deps       Deps
	limiter    *RateLimiter
	handler    http.Handler
	httpServer *http.Server
}

// NewServer wires the routes and middleware.
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:     cfg,
		deps:    deps,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.route(http.MethodGet, s.handleHealth))
	mux.HandleFunc("/api/welcome", s.route(http.MethodGet, s.handleWelcome))
	mux.HandleFunc("/api/profile", s.route(http.MethodGet, s.handleProfile))
	mux.HandleFunc("/api/counter", s.route(http.MethodGet, s.handleCounter))
	mux.HandleFunc("/api/chat", s.route(http.MethodPost, s.rateLimited(s.handleChat)))
	mux.HandleFunc("/api/recruiter-contact", s.route(http.MethodPost, s.handleRecruiterContact))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	s.handler = s.withRequestID(s.withCORS(mux))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe runs the server until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// route produces a JSON 404 for any non-matching method, matching the
// frontend contract: unknown method is an unknown endpoint, not a 405.
func (s *Server) route(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			s.writeError(w, http.StatusNotFound, "Endpoint not found")
			return
		}
		h(w, r)
	}
}

// rateLimited guards a handler with the fixed-window limiter.
func (s *Server) rateLimited(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := s.limiter.Allow(clientIP(r))
		if !allowed {
			s.warn(r.Context(), "rate limit exceeded", map[string]interface{}{
				"client":     clientIP(r),
				"retryAfter": retryAfter,
			})
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			s.writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"success":    false,
				"error":      "Rate limit exceeded. Please try again later.",
				"retryAfter": retryAfter,
			})
			return
		}
		h(w, r)
	}
}

func (s *Server) info(ctx context.Context, message string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.LogInfo(ctx, message, fields)
	}
}

func (s *Server) warn(ctx context.Context, message string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.LogWarning(ctx, message, fields)
	}
}

func (s *Server) error(ctx context.Context, message string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.LogError(ctx, message, fields)
	}
}
