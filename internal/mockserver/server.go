// Package mockserver serves a catalog over the HTTP contract the client
// speaks, for local development without the remote service.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pluqqy/promptcat/internal/logger"
	"github.com/pluqqy/promptcat/pkg/api"
	"github.com/pluqqy/promptcat/pkg/models"
)

// Search defaults applied when the query string omits them.
const (
	defaultPage     = 1
	defaultPageSize = 9
)

// Config holds server configuration.
type Config struct {
	Addr     string
	AllowAll bool // allow all CORS origins
}

// Server exposes a catalog Service over HTTP.
type Server struct {
	cfg        Config
	svc        api.Service
	log        *logger.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for svc.
func New(cfg Config, svc api.Service, log *logger.Logger) *Server {
	s := &Server{cfg: cfg, svc: svc, log: log.Component(logger.ComponentMockServer)}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get(api.PathCategories, s.handleCategories)
	r.Post(api.PathCreatePrompt, s.handleCreate)
	r.Route("/prompts", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Post("/customize", s.handleCustomize)
		r.Get("/author/{authorID}", s.handleAuthor)
		r.Get("/{promptID}", s.handleGet)
		r.Post("/{promptID}/like", s.handleLike)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(map[string]any{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.Categories(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := models.SearchParams{
		Query:     q.Get("query"),
		Category:  q.Get("category"),
		Page:      defaultPage,
		PageSize:  defaultPageSize,
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	for key, dst := range map[string]*int{"page": &params.Page, "page_size": &params.PageSize} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeDetail(w, http.StatusUnprocessableEntity, fmt.Sprintf("%s must be an integer", key))
			return
		}
		*dst = n
	}

	page, err := s.svc.Search(r.Context(), params)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.GetPrompt(r.Context(), models.PromptID(chi.URLParam(r, "promptID")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	resp, err := s.svc.LikePrompt(r.Context(), models.PromptID(chi.URLParam(r, "promptID")))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCustomize(w http.ResponseWriter, r *http.Request) {
	var req models.CustomizationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	text, err := s.svc.Customize(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, models.CustomizationResponse{CustomizedPrompt: text})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePromptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return
	}
	resp, err := s.svc.CreatePrompt(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAuthor(w http.ResponseWriter, r *http.Request) {
	page, err := s.svc.AuthorPrompts(r.Context(), chi.URLParam(r, "authorID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// Start listens on the configured address until Shutdown. After Shutdown
// it returns nil at once.
func (s *Server) Start() error {
	s.log.WithFields(map[string]any{"addr": s.cfg.Addr}).Info("mock server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// writeError maps a service error onto a FastAPI-style error body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var apiErr *api.APIError
	var verr *models.ValidationError
	switch {
	case errors.As(err, &apiErr):
		s.writeDetail(w, apiErr.Status, apiErr.Message)
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", verr.Field}, "msg": verr.Message}},
		})
	default:
		s.writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithFields(map[string]any{"status": status}).Error(err, "failed to write response")
	}
}
