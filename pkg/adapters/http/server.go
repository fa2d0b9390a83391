package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/aretw0/storefront/internal/logging"
	"github.com/aretw0/storefront/pkg/domain"
	"github.com/aretw0/storefront/pkg/runner"
	"github.com/aretw0/storefront/pkg/session"
)

// maxBodySize caps request bodies. Intents are tiny.
const maxBodySize = 64 << 10

// Server serves the storefront over HTTP.
type Server struct {
	Sessions *session.Manager
	Streams  *StreamManager
	Metrics  http.Handler
	Version  string
	Logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// WithMetrics mounts a metrics handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.Metrics = h
	}
}

// WithVersion sets the application version reported by /info.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.Version = v
	}
}

// SessionResponse is returned by session mutations.
type SessionResponse = runner.RichResponse

type createSessionRequest struct {
	SessionID string `json:"session_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewServer builds a Server and registers its stream as a session observer.
// Must be called before the manager is shared between goroutines.
func NewServer(manager *session.Manager, opts ...Option) *Server {
	s := &Server{
		Sessions: manager,
		Streams:  NewStreamManager(),
		Version:  "dev",
		Logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	manager.Observe(s.Streams.Observe)
	return s
}

// NewHandler creates the HTTP handler for the storefront API.
func NewHandler(manager *session.Manager, opts ...Option) http.Handler {
	return NewServer(manager, opts...).Routes()
}

// Routes returns the router with every endpoint mounted.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/graph", s.GetGraph)
	r.Get("/events", s.SubscribeEvents)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{sessionId}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/view", s.GetView)
			r.Post("/intents", s.DispatchIntent)
		})
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		_, _ = w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(swaggerHTML))
	})

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Paradise Nursery API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	} else if err != nil {
		s.Logger.Warn("Info: openapi spec unavailable", "err", err)
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "Paradise Nursery",
		"version":     s.Version,
		"api_version": apiVersion,
	})
}

// GetCatalog handles GET /catalog.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.Engine().Catalog().Categories())
}

// GetGraph handles GET /graph.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Sessions.Engine().Inspect())
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.fail(w, "ListSessions", err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// CreateSession handles POST /sessions. An empty body gets a generated ID.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if err := decodeBody(r, &body); err != nil {
		s.badRequest(w, "CreateSession", err)
		return
	}
	id := strings.TrimSpace(body.SessionID)
	if id == "" {
		id = uuid.NewString()
	}

	resp, err := runner.StartAndRender(r.Context(), s.Sessions, id)
	if err != nil {
		s.fail(w, "CreateSession", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

// GetSession handles GET /sessions/{sessionId}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	state, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		s.fail(w, "GetSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

// GetView handles GET /sessions/{sessionId}/view.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	resp, err := runner.LoadAndRender(r.Context(), s.Sessions, chi.URLParam(r, "sessionId"))
	if err != nil {
		s.fail(w, "GetView", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp.View)
}

// DispatchIntent handles POST /sessions/{sessionId}/intents.
func (s *Server) DispatchIntent(w http.ResponseWriter, r *http.Request) {
	var intent domain.Intent
	if err := decodeBody(r, &intent); err != nil {
		s.badRequest(w, "DispatchIntent", err)
		return
	}
	if err := intent.Validate(); err != nil {
		s.badRequest(w, "DispatchIntent", err)
		return
	}

	resp, err := runner.ApplyAndRender(r.Context(), s.Sessions, chi.URLParam(r, "sessionId"), intent)
	if err != nil {
		s.fail(w, "DispatchIntent", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// DeleteSession handles DELETE /sessions/{sessionId}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Sessions.Delete(r.Context(), chi.URLParam(r, "sessionId")); err != nil {
		s.fail(w, "DeleteSession", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		s.badRequest(w, "SubscribeEvents", errors.New("session_id is required"))
		return
	}
	filter := parseWatch(r.URL.Query().Get("watch"))

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe(sessionID)
	defer cancel()

	s.Logger.Info("SSE: Subscribing to session updates", "session_id", sessionID)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			diff := ev.Diff
			if ev.Name == EventDiff {
				if diff = filter.apply(ev.Diff); diff == nil {
					continue
				}
			}
			payload, err := json.Marshal(diff)
			if err != nil {
				s.Logger.Error("SSE: failed to encode diff", "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload)
			flusher.Flush()
			if ev.Name == EventDeleted {
				return
			}
		}
	}
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func (s *Server) badRequest(w http.ResponseWriter, op string, err error) {
	s.Logger.Warn(op+": rejected request", "err", err)
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domain.ErrSessionNotFound) {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	s.Logger.Error(op+" failed", "err", err)
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
