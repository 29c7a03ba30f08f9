package server

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/yousuf64/shift"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the id assigned by the request id middleware, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// entropyPool provides a pool of monotonic entropy sources for ULID generation
var entropyPool = sync.Pool{
	New: func() any {
		return ulid.Monotonic(rand.Reader, 0)
	},
}

func generateID() string {
	e := entropyPool.Get().(*ulid.MonotonicEntropy)

	ts := ulid.Timestamp(time.Now())
	id := ulid.MustNew(ts, e)

	entropyPool.Put(e)
	return id.String()
}

// requestIDMiddleware keeps a caller supplied id or assigns a new ULID.
func (s *Server) requestIDMiddleware(next shift.HandlerFunc) shift.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = generateID()
		}
		w.Header().Set(RequestIDHeader, id)
		return next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)), route)
	}
}

// corsMiddleware handles CORS requests
func (s *Server) corsMiddleware(next shift.HandlerFunc) shift.HandlerFunc {
	allowAll := len(s.cfg.AllowedOrigins) == 0 || slices.Contains(s.cfg.AllowedOrigins, "*")

	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		origin := r.Header.Get("Origin")
		switch {
		case allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.cfg.AllowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", RequestIDHeader)
		w.Header().Set("Access-Control-Max-Age", "86400")
		return next(w, r, route)
	}
}

// errorMiddleware handles errors
func (s *Server) errorMiddleware(next shift.HandlerFunc) shift.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, route shift.Route) error {
		err := next(w, r, route)
		if err != nil {
			s.log.Error("Request error",
				slog.String("request_id", RequestID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return err
	}
}
