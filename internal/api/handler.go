package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/alutalk/channel/internal/biz/domain"
	"github.com/alutalk/channel/internal/biz/usecase"
)

// AuthScheme is the Authorization header scheme shared by the channel and the hub
const AuthScheme = "authkey "

// Options configures the API server
type Options struct {
	ChannelName string
	AuthKey     string
	Welcome     string
	Port        int
}

// Server provides the channel HTTP API
type Server struct {
	moderationUC *usecase.ModerationUsecase
	retentionUC  *usecase.RetentionUsecase
	opts         Options
	logger       *slog.Logger

	now    func() time.Time
	server *http.Server
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Name string `json:"name"`
}

// NewServer creates a new API server
func NewServer(moderationUC *usecase.ModerationUsecase, retentionUC *usecase.RetentionUsecase, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		moderationUC: moderationUC,
		retentionUC:  retentionUC,
		opts:         opts,
		logger:       logger.With("component", "api"),
		now:          time.Now,
	}
}

// Handler returns the routed and logged HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.requireAuth(s.handleHealth))
	mux.HandleFunc("GET /{$}", s.requireAuth(s.handleListMessages))
	mux.HandleFunc("POST /{$}", s.requireAuth(s.handlePostMessage))
	mux.HandleFunc("GET /moderation", s.requireAuth(s.handleModeration))

	return s.withLogging(mux)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", "port", s.opts.Port)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// ============ Handlers ============

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, HealthResponse{Name: s.opts.ChannelName})
}

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := s.retentionUC.Sweep(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	welcome := domain.Message{
		Content:   s.opts.Welcome,
		Sender:    domain.ServerSender,
		Timestamp: domain.FormatTimestamp(s.now()),
	}

	result := make([]domain.Message, 0, len(messages)+1)
	result = append(result, welcome)
	result = append(result, messages...)

	s.writeJSON(w, result)
}

func (s *Server) handlePostMessage(w http.ResponseWriter, r *http.Request) {
	var msg *domain.Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil || msg == nil {
		writeText(w, http.StatusBadRequest, "No message")
		return
	}

	if err := domain.ValidateMessage(*msg); err != nil {
		writeText(w, http.StatusBadRequest, ingestionErrorText(err))
		return
	}

	if _, err := s.moderationUC.Post(r.Context(), *msg); err != nil {
		s.logger.Error("failed to post message", "sender", msg.Sender, "error", err)
		s.writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, "OK")
}

func (s *Server) handleModeration(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	events, err := s.moderationUC.ListModerationEvents(r.Context(), limit)
	if errors.Is(err, usecase.ErrAuditDisabled) {
		http.Error(w, "audit log disabled", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, map[string]interface{}{"events": events})
}

// ============ Helpers ============

func ingestionErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingContent):
		return "No content"
	case errors.Is(err, domain.ErrMissingSender):
		return "No sender"
	case errors.Is(err, domain.ErrMissingTimestamp):
		return "No timestamp"
	case errors.Is(err, domain.ErrInvalidTimestamp):
		return "Invalid timestamp"
	default:
		return "No message"
	}
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// ============ Middleware ============

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AuthKey == "" || r.Header.Get("Authorization") != AuthScheme+s.opts.AuthKey {
			writeText(w, http.StatusBadRequest, "Invalid authorization")
			return
		}
		next(w, r)
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)

		s.logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}
