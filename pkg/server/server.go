// Package server exposes one board's layout engine over HTTP.
//
// # Routes
//
//	GET    /healthz                          liveness
//	GET    /board                            config and rows
//	GET    /board.svg                        board rendered with Graphviz
//	POST   /cards                            add a card
//	PUT    /cards/{id}                       replace a card's content and layout
//	DELETE /cards/{id}                       delete a card
//	POST   /cards/{id}/move                  move a card to a row and position
//	POST   /rows/{id}/reorder                reorder a row
//	POST   /rows/{id}/resize                 set a row's height
//	POST   /rows/{id}/cards/{index}/resize   resize the border after a card
//	POST   /drop                             resolve a drop event
//
// Request and response bodies are JSON. Mutations answer with the
// committed change set. Errors are written as {"code": ..., "message": ...}
// with the status given by [errors.HTTPStatus].
//
// Resize gestures are settled in a single request: the server starts a
// session, applies the final pointer position and ends it. Width resizes are
// expressed as a pixel delta plus the row's pixel width, which the server
// records in its [engine.LiveGeometry]. The engine must read that geometry
// through [engine.WithWidthGeometry] only, so the recorded widths never reach
// drop resolution. Drop pointers are read with the engine's own geometry;
// cardboard serve uses [engine.GridGeometry].
package server

import (
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/cardboard/pkg/engine"
	"github.com/matzehuels/cardboard/pkg/observability"
)

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger. The default discards all output.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithRowWidths sets the geometry width resizes record row widths in.
func WithRowWidths(g *engine.LiveGeometry) Option { return func(s *Server) { s.widths = g } }

// WithIDGenerator sets the function naming cards added without an id.
// The default generates random UUIDs.
func WithIDGenerator(fn func() string) Option { return func(s *Server) { s.newID = fn } }

// WithHooks overrides the globally registered [observability.HTTPHooks].
func WithHooks(h observability.HTTPHooks) Option { return func(s *Server) { s.hooks = h } }

// Server serves one engine.
type Server struct {
	engine *engine.Engine
	widths *engine.LiveGeometry
	logger *log.Logger
	hooks  observability.HTTPHooks
	newID  func() string

	// gesture serialises resize requests so their sessions never overlap.
	gesture sync.Mutex
}

// New returns a server for e.
func New(e *engine.Engine, opts ...Option) *Server {
	s := &Server{engine: e, newID: uuid.NewString}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if s.hooks == nil {
		s.hooks = observability.HTTP()
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Get("/board", s.handleBoard)
	r.Get("/board.svg", s.handleBoardSVG)

	r.Post("/cards", s.handleAddCard)
	r.Put("/cards/{id}", s.handleUpdateCard)
	r.Delete("/cards/{id}", s.handleDeleteCard)
	r.Post("/cards/{id}/move", s.handleMoveCard)

	r.Post("/rows/{id}/reorder", s.handleReorder)
	r.Post("/rows/{id}/resize", s.handleRowResize)
	r.Post("/rows/{id}/cards/{index}/resize", s.handleWidthResize)

	r.Post("/drop", s.handleDrop)
	return r
}

// observe reports every request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		s.hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		path := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			path = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		s.hooks.OnResponse(r.Context(), r.Method, path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", path, "status", status,
			"duration", elapsed, "request_id", middleware.GetReqID(r.Context()))
	})
}
