// Package fakeapi is an in-memory stand-in for the remote crawl API. It serves
// canned scan results and keeps the domain registry in memory; it is used by
// tests and by `domscan serve-fake` for local development.
package fakeapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/aalvaropc/domscan/internal/domain"
)

type failure struct {
	httpStatus int
	message    string
}

type Server struct {
	mu       sync.Mutex
	domains  []domain.DomainEntry
	scans    map[string]domain.SyncResult
	sitemaps map[string][]string
	failures map[string]failure
	latency  time.Duration
	newID    func() string
	seed     []string
	log      *slog.Logger
}

type Option func(*Server)

// WithDomains seeds the registry in order.
func WithDomains(names ...string) Option {
	return func(s *Server) {
		s.seed = append(s.seed, names...)
	}
}

// WithScan sets the result served for a scanned URL or synced domain.
func WithScan(target string, res domain.SyncResult) Option {
	return func(s *Server) { s.scans[target] = res }
}

// WithSitemap sets the candidate domains served for a sitemap root.
func WithSitemap(root string, domains ...string) Option {
	return func(s *Server) { s.sitemaps[root] = domains }
}

// WithLatency delays every response, useful to watch loading states.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithIDs replaces uuid ids with a deterministic generator.
func WithIDs(next func() string) Option {
	return func(s *Server) { s.newID = next }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		scans:    map[string]domain.SyncResult{},
		sitemaps: map[string][]string{},
		failures: map[string]failure{},
		newID:    uuid.NewString,
		log:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, n := range s.seed {
		s.domains = append(s.domains, domain.DomainEntry{ID: s.newID(), Name: n})
	}
	s.seed = nil
	return s
}

// Routes returns a chi.Router serving the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if s.latency > 0 {
		r.Use(s.delay)
	}

	r.Get("/domains", s.listDomains)
	r.Post("/domains", s.createDomain)
	r.Put("/domains/{id}", s.updateDomain)
	r.Delete("/domains/{id}", s.deleteDomain)
	r.Get("/scan", s.scan)
	r.Get("/sitemap-products", s.sitemap)
	return r
}

// FailNext makes the next request matching method and route pattern (for
// example "PUT /domains/{id}") fail. httpStatus 200 yields a transport success
// whose envelope reports an error.
func (s *Server) FailNext(method, pattern string, httpStatus int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pattern] = failure{httpStatus: httpStatus, message: message}
}

// Domains returns a copy of the server-side registry.
func (s *Server) Domains() []domain.DomainEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DomainEntry(nil), s.domains...)
}

func (s *Server) listDomains(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	s.mu.Lock()
	data := make([]domainJSON, 0, len(s.domains))
	for _, d := range s.domains {
		data = append(data, domainJSON{ID: d.ID, Domain: d.Name})
	}
	s.mu.Unlock()
	writeOK(w, data)
}

func (s *Server) createDomain(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	name, ok := readDomain(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	if domain.FindByName(s.domains, name) >= 0 {
		s.mu.Unlock()
		writeError(w, http.StatusConflict, "domain already exists")
		return
	}
	e := domain.DomainEntry{ID: s.newID(), Name: name}
	s.domains = append(s.domains, e)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"status": http.StatusCreated,
		"data":   domainJSON{ID: e.ID, Domain: e.Name},
	})
}

func (s *Server) updateDomain(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	name, ok := readDomain(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	i := domain.FindByID(s.domains, id)
	if i >= 0 {
		s.domains[i].Name = name
	}
	s.mu.Unlock()

	if i < 0 {
		writeError(w, http.StatusNotFound, "domain not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "message": "updated"})
}

func (s *Server) deleteDomain(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	i := domain.FindByID(s.domains, id)
	if i >= 0 {
		s.domains = append(s.domains[:i], s.domains[i+1:]...)
	}
	s.mu.Unlock()

	if i < 0 {
		writeError(w, http.StatusNotFound, "domain not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "message": "deleted"})
}

// scan answers a registered domain with the sync shape and anything else with
// the single-URL shape.
func (s *Server) scan(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	target := strings.TrimSpace(r.URL.Query().Get("url"))
	if target == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	s.mu.Lock()
	res, ok := s.scans[target]
	registered := domain.FindByName(s.domains, target) >= 0
	s.mu.Unlock()
	if !ok {
		res = cannedScan(target)
	}

	if registered {
		links := res.InvalidLinks
		if links == nil {
			links = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data": map[string]any{
				"requests":     recordsJSON(res.Requests),
				"invalidLinks": links,
			},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": recordsJSON(res.Requests)})
}

func (s *Server) sitemap(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, r) {
		return
	}
	root := strings.TrimSpace(r.URL.Query().Get("url"))

	s.mu.Lock()
	found, ok := s.sitemaps[root]
	s.mu.Unlock()
	if !ok {
		found = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": map[string]any{"domains": found}})
}

func (s *Server) injected(w http.ResponseWriter, r *http.Request) bool {
	key := r.Method + " " + chi.RouteContext(r.Context()).RoutePattern()

	s.mu.Lock()
	f, ok := s.failures[key]
	if ok {
		delete(s.failures, key)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	if f.httpStatus == http.StatusOK {
		writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": f.message})
		return true
	}
	writeError(w, f.httpStatus, f.message)
	return true
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("fakeapi.request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-ID"),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) delay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(s.latency):
		case <-r.Context().Done():
			return
		}
		next.ServeHTTP(w, r)
	})
}

type domainJSON struct {
	ID     string `json:"id"`
	Domain string `json:"domain"`
}

type recordJSON struct {
	Type    string `json:"type,omitempty"`
	URL     string `json:"url"`
	IsValid bool   `json:"isValid"`
}

func recordsJSON(in []domain.ResourceRecord) []recordJSON {
	out := make([]recordJSON, 0, len(in))
	for _, r := range in {
		out = append(out, recordJSON{Type: string(r.Type), URL: r.URL, IsValid: r.IsValid})
	}
	return out
}

func readDomain(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return "", false
	}
	name := domain.NormalizeDomainName(body.Domain)
	if err := domain.ValidateDomainName(name); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return "", false
	}
	return name, true
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"status": http.StatusOK, "data": data})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"status": code, "message": msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
