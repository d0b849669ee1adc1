// Package http exposes the draw engine and record store as a local JSON
// API for the UI layer.
package http

import (
	"net"
	"net/http"
	"strings"
	"time"

	"mealgacha/internal/catalog"
	"mealgacha/internal/drawcache"
	applog "mealgacha/internal/log"
	"mealgacha/internal/middleware/trace"
	"mealgacha/internal/services"
)

type Server struct {
	http.Server
	records *services.RecordService
	engine  *catalog.Engine
	tickets *drawcache.Store
	trace   *trace.Middleware

	startedAt time.Time
}

// NewServer configures routes, returning a ready-to-run http.Server.
func NewServer(addr string, records *services.RecordService, engine *catalog.Engine, tickets *drawcache.Store) *Server {
	mux := http.NewServeMux()

	s := &Server{
		records:   records,
		engine:    engine,
		tickets:   tickets,
		startedAt: time.Now(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/status", s.handleStatus)

	mux.HandleFunc("POST /api/draw", s.handleDraw)
	mux.HandleFunc("GET /api/draw/{ticket}", s.handleGetDraw)
	mux.HandleFunc("DELETE /api/draw/{ticket}", s.handleDeleteDraw)

	mux.HandleFunc("POST /api/records", s.handleCreateRecord)
	mux.HandleFunc("GET /api/records/{id}", s.handleGetRecord)
	mux.HandleFunc("PUT /api/records/{id}", s.handleUpdateRecord)
	mux.HandleFunc("DELETE /api/records/{id}", s.handleDeleteRecord)

	mux.HandleFunc("GET /api/week/stats", s.handleWeekStats)
	mux.HandleFunc("GET /api/week/records", s.handleWeekRecords)

	logger := applog.New(applog.DefaultConfig())
	s.trace = trace.NewMiddleware(extractClientIP)
	var handler http.Handler = applog.Middleware(logger)(
		applog.ComponentMiddleware(applog.ComponentHTTP)(
			s.trace.Middleware(withSecurityHeaders(mux))))

	s.Server = http.Server{
		Addr:    addr,
		Handler: handler,
	}

	return s
}

// withSecurityHeaders adds conservative security headers to every response.
func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

func extractClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
