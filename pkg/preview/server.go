package preview

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/labelkit/pkg/errors"
	"github.com/matzehuels/labelkit/pkg/export"
	"github.com/matzehuels/labelkit/pkg/pipeline"
)

const (
	// DefaultAddr is where the server listens unless configured otherwise.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultLimit bounds how many labels are kept in memory.
	DefaultLimit = 256

	maxBodyBytes    = 8 << 20
	shutdownTimeout = 5 * time.Second
)

var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatSVG:  "image/svg+xml",
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRunner sets the runner used to render artifacts.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Server) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithBaseURL sets the URL prefix returned by [Server.Open]. It is filled
// in by [Server.ListenAndServe] when unset.
func WithBaseURL(u string) Option {
	return func(s *Server) { s.baseURL = strings.TrimSuffix(u, "/") }
}

// WithLimit bounds the number of stored labels. Zero keeps everything.
func WithLimit(n int) Option {
	return func(s *Server) { s.store = newStore(n) }
}

// Server is the label preview server.
type Server struct {
	router chi.Router
	store  *store
	runner *pipeline.Runner
	logger *log.Logger

	mu      sync.RWMutex
	baseURL string
}

// New creates a server with its routes mounted.
func New(opts ...Option) *Server {
	s := &Server{
		store:  newStore(DefaultLimit),
		runner: pipeline.NewRunner(nil, nil, nil),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(s.recoverer)
	r.Get("/", s.handleIndex)
	r.Post("/labels", s.handleCreate)
	r.Get("/labels/{ref}", s.handleLabel)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Add stores a document and returns its entry.
func (s *Server) Add(doc export.Document) *Entry {
	return s.store.put(doc)
}

// Open implements [export.Opener]. It fails while the server is not
// reachable, which makes delivery fall back to a file.
func (s *Server) Open(ctx context.Context, doc export.Document) (string, error) {
	s.mu.RLock()
	base := s.baseURL
	s.mu.RUnlock()
	if base == "" {
		return "", errors.New(errors.ErrCodeUnsupported, "preview server is not running")
	}
	e := s.store.put(doc)
	s.logger.Debug("opened label", "id", e.ID, "elements", e.Elements)
	return base + "/labels/" + e.ID, nil
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on an existing listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.baseURL == "" {
		s.baseURL = "http://" + ln.Addr().String()
	}
	base := s.baseURL
	s.mu.Unlock()

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("preview listening", "url", base)
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("shutdown failed", "err", err)
	}
	s.mu.Lock()
	s.baseURL = ""
	s.mu.Unlock()
	s.logger.Info("preview stopped")
	return <-errCh
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"labels": s.store.list()})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	doc, err := export.Read(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, err)
		return
	}
	e := s.store.put(doc)
	w.Header().Set("Location", "/labels/"+e.ID)
	writeJSON(w, http.StatusCreated, e)
}

var pageTemplate = template.Must(template.New("label").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>label {{.ID}}</title></head>
<body style="margin:0;background:#f3f4f6;display:flex;justify-content:center;padding:24px">
<img src="/labels/{{.ID}}.svg" width="{{.Width}}" height="{{.Height}}" alt="label">
<p><a href="/labels/{{.ID}}.png">png</a> <a href="/labels/{{.ID}}.pdf">pdf</a> <a href="/labels/{{.ID}}.json">json</a></p>
</body>
</html>
`))

// handleLabel serves /labels/{id} as a page and /labels/{id}.{format} as
// an artifact.
func (s *Server) handleLabel(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	id, format, hasFormat := strings.Cut(ref, ".")
	e, ok := s.store.get(id)
	if !ok {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "no label %q", id))
		return
	}
	if hasFormat {
		s.serveArtifact(w, r, e, format)
		return
	}
	s.servePage(w, e)
}

func (s *Server) servePage(w http.ResponseWriter, e *Entry) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTemplate.Execute(w, map[string]any{
		"ID":     e.ID,
		"Width":  e.Document.Canvas.Width,
		"Height": e.Document.Canvas.Height,
	})
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, e *Entry, format string) {
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), e.Document, pipeline.Options{Formats: []string{format}})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "max-age=3600")
	_, _ = w.Write(artifacts[format])
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"code":  string(errors.GetCode(err)),
		"error": errors.UserMessage(err),
	})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

var _ export.Opener = (*Server)(nil)
