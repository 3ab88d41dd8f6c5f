// Package chi is the HTTP transport for the question-answering service.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/domain"
	healthuc "github.com/DylanqTran04/NBA-applied-ai-engineer-intern-showcase/internal/usecase/health"
)

// ChatService answers free-form questions.
type ChatService interface {
	Chat(ctx context.Context, question string) (domain.Answer, error)
}

// Error codes returned in JSON error bodies.
const (
	codeBadRequest       = "bad_request"
	codeEmptyQuestion    = "empty_question"
	codeStoreUnavailable = "store_unavailable"
	codeModelUnavailable = "model_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the chat pipeline over HTTP.
type Server struct {
	chat          ChatService
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat ChatService, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		chat:   chat,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuestion, http.StatusBadRequest, codeEmptyQuestion),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, codeModelUnavailable),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, codeModelUnavailable),
	}
	return s
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Post("/api/chat", s.HandleChat)
	r.Get("/healthz", s.HandleHealth)
	r.Get("/metrics", s.HandleMetrics)
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	ID       string               `json:"id"`
	Answer   string               `json:"answer"`
	Evidence []domain.EvidenceRef `json:"evidence"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HandleChat handles POST /api/chat.
func (s *Server) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	answer, err := s.chat.Chat(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	evidence := answer.Evidence
	if evidence == nil {
		evidence = []domain.EvidenceRef{}
	}

	writeJSON(w, http.StatusOK, chatResponse{
		ID:       answer.ID,
		Answer:   answer.Text,
		Evidence: evidence,
	})
}

// HandleHealth handles GET /healthz.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// HandleMetrics handles GET /metrics.
func (s *Server) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// CORSMiddleware allows the browser frontend at origin to call the API.
func CORSMiddleware(origin string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrEmptyQuestion,
		domain.ErrStoreUnavailable,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
