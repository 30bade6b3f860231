package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/janus-access/janus-server/internal/janus/service"
	"github.com/janus-access/janus-server/internal/janus/store"
	"github.com/janus-access/janus-server/internal/janus/types"
)

type Dependencies struct {
	Logger         *zap.Logger
	Addr           string
	AdminToken     string
	AllowedOrigins []string

	Registry *service.ControllerRegistry
	Access   *service.AccessService
	Events   *service.EventService
	Keys     *service.KeyService
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	adminToken string

	registry *service.ControllerRegistry
	access   *service.AccessService
	events   *service.EventService
	keys     *service.KeyService
}

func NewServer(d Dependencies) *Server {
	s := &Server{
		logger:     d.Logger,
		adminToken: d.AdminToken,
		registry:   d.Registry,
		access:     d.Access,
		events:     d.Events,
		keys:       d.Keys,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Controller-facing endpoints, authenticated by x-api-key.
	mux.HandleFunc("POST /validate-cardpin", s.handleValidateCardPIN)
	mux.HandleFunc("POST /log-access", s.handleLogAccess)

	// Admin surface (key lifecycle, log reads), authenticated by bearer token.
	mux.HandleFunc("POST /admin/controller-keys", s.requireAdmin(s.handleCreateKey))
	mux.HandleFunc("GET /admin/controller-keys", s.requireAdmin(s.handleListKeys))
	mux.HandleFunc("POST /admin/controller-keys/{id}/revoke", s.requireAdmin(s.handleRevokeKey))
	mux.HandleFunc("GET /admin/access-logs", s.requireAdmin(s.handleListAccessLogs))

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type", "x-api-key"},
	})

	handler := c.Handler(loggingMiddleware(d.Logger, mux))

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ── Controller endpoints ─────────────────────────────────────────────────────

// authenticate runs the shared controller identity check. On failure it
// writes the response and returns ok=false; the request proceeds no further.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (string, bool) {
	controllerID, err := s.registry.Authenticate(r.Context(), r.Header.Get("x-api-key"))
	switch {
	case errors.Is(err, service.ErrMissingAPIKey):
		writeError(w, http.StatusUnauthorized, "Missing API key")
		return "", false
	case errors.Is(err, service.ErrInvalidAPIKey):
		writeError(w, http.StatusForbidden, "Invalid or inactive API key")
		return "", false
	case err != nil:
		s.logger.Error("controller auth failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return "", false
	}
	return controllerID, true
}

func (s *Server) handleValidateCardPIN(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	var req types.ValidateCardPINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	resp, err := s.access.ValidateCardPIN(r.Context(), req)
	switch {
	case errors.Is(err, service.ErrCardPINRequired):
		writeError(w, http.StatusBadRequest, "card_number and pin required")
	case errors.Is(err, service.ErrAccessDenied):
		// One body for no-match, disabled and pin_disabled: the caller
		// must not be able to tell them apart.
		writeError(w, http.StatusForbidden, "Not found or access denied")
	case err != nil:
		s.logger.Error("validate-cardpin failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleLogAccess(w http.ResponseWriter, r *http.Request) {
	controllerID, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	var req types.LogAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	err := s.events.Record(r.Context(), controllerID, req)
	switch {
	case errors.Is(err, service.ErrEventFieldsRequired):
		writeError(w, http.StatusBadRequest, "card_number, pin, door_id and access_type required")
	case err != nil:
		s.logger.Error("log-access failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "DB error",
			Details: err.Error(),
		})
	default:
		writeJSON(w, http.StatusOK, types.LogAccessResponse{Success: true})
	}
}

// ── Admin endpoints ──────────────────────────────────────────────────────────

func (s *Server) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	var req types.CreateControllerKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	rec, err := s.keys.Issue(r.Context(), req.ControllerName)
	switch {
	case errors.Is(err, service.ErrControllerNameRequired):
		writeError(w, http.StatusBadRequest, "controller_name required")
	case err != nil:
		s.logger.Error("issue key failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
	default:
		writeJSON(w, http.StatusCreated, keyToWire(rec))
	}
}

func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	recs, err := s.keys.List(r.Context())
	if err != nil {
		s.logger.Error("list keys failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	out := make([]types.ControllerKey, 0, len(recs))
	for _, rec := range recs {
		out = append(out, keyToWire(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleRevokeKey(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	err := s.keys.Revoke(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
		writeError(w, http.StatusNotFound, "Key not found")
	case err != nil:
		s.logger.Error("revoke key failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
	default:
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func (s *Server) handleListAccessLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.events.Recent(r.Context(), limit)
	if err != nil {
		s.logger.Error("list access logs failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	out := make([]types.AccessLogEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, logToWire(rec))
	}
	writeJSON(w, http.StatusOK, out)
}
