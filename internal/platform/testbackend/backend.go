// Package testbackend serves a scripted stand-in for the ERP backend so
// adapter and usecase tests can exercise real HTTP round trips.
package testbackend

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Recorded is one request observed by the backend.
type Recorded struct {
	Method      string
	Path        string
	Pattern     string
	Auth        string
	ContentType string
	RequestID   string
	Body        map[string]any
	Params      map[string]string
}

type reply struct {
	status int
	body   string
}

type Backend struct {
	URL string

	mu       sync.Mutex
	requests []Recorded
	replies  map[string]reply
}

const okBody = `{"success": true, "message": "ok"}`

// New starts a backend and registers the route table the client uses. Every
// route answers success until overridden with Reply.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{replies: map[string]reply{}}

	r := chi.NewRouter()
	r.Post("/api/production", b.handle(okBody))
	r.Post("/api/attendance", b.handle(okBody))
	r.Post("/api/downtime", b.handle(okBody))
	r.Post("/api/requisition", b.handle(okBody))
	r.Post("/api/requisition/{id}/{action}", b.handle(okBody))
	r.Get("/api/reports/production", b.handle(`{"success": true, "labels": [], "targets": [], "actuals": []}`))
	r.Get("/api/reports/attendance", b.handle(`{"success": true, "data": []}`))
	r.Get("/api/reports/downtime", b.handle(`{"success": true, "data": []}`))
	r.Get("/api/reports/material_flow", b.handle(`{"success": true, "data": []}`))
	r.Get("/api/worker_history/{workerID}", b.handle(`{"success": true, "history": []}`))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// Reply overrides the answer for a route pattern such as
// "POST /api/requisition/{id}/{action}".
func (b *Backend) Reply(route string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replies[route] = reply{status: status, body: body}
}

// Requests returns a copy of everything received so far.
func (b *Backend) Requests() []Recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Recorded, len(b.requests))
	copy(out, b.requests)
	return out
}

func (b *Backend) handle(fallback string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rctx := chi.RouteContext(r.Context())
		pattern := rctx.RoutePattern()
		rec := Recorded{
			Method:      r.Method,
			Path:        r.URL.Path,
			Pattern:     pattern,
			Auth:        r.Header.Get("Authorization"),
			ContentType: r.Header.Get("Content-Type"),
			RequestID:   r.Header.Get("X-Request-ID"),
			Params:      map[string]string{},
		}
		for i, key := range rctx.URLParams.Keys {
			rec.Params[key] = rctx.URLParams.Values[i]
		}
		if raw, err := io.ReadAll(r.Body); err == nil && len(raw) > 0 {
			body := map[string]any{}
			if json.Unmarshal(raw, &body) == nil {
				rec.Body = body
			}
		}

		b.mu.Lock()
		b.requests = append(b.requests, rec)
		rep, ok := b.replies[r.Method+" "+pattern]
		b.mu.Unlock()
		if !ok {
			rep = reply{status: http.StatusOK, body: fallback}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rep.status)
		_, _ = io.WriteString(w, rep.body)
	}
}
