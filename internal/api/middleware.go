package api

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/yegors/aeroguard/internal/i18n"
	"github.com/yegors/aeroguard/pkg/logger"
)

type ctxKey int

const languageKey ctxKey = iota

// Middleware contains custom middleware functions
type Middleware struct {
	logger          *logger.Logger
	defaultLanguage string
}

// NewMiddleware creates a new middleware
func NewMiddleware(log *logger.Logger, defaultLanguage string) *Middleware {
	return &Middleware{
		logger:          log.Named("api-middleware"),
		defaultLanguage: i18n.Resolve(defaultLanguage),
	}
}

// Logger logs each request with its request ID. Server errors log at warn.
func (m *Middleware) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log := m.logger.WithRequestID(middleware.GetReqID(r.Context()))
			fields := []logger.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.String("remote_addr", r.RemoteAddr),
				logger.Int("status", ww.Status()),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Warn("HTTP request failed", fields...)
				return
			}
			log.Debug("HTTP request", fields...)
		}()

		next.ServeHTTP(ww, r)
	})
}

// Language resolves the request language from ?lang= or Accept-Language
func (m *Middleware) Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := m.defaultLanguage
		if q := r.URL.Query().Get("lang"); q != "" {
			lang = i18n.Resolve(q)
		} else if h := r.Header.Get("Accept-Language"); h != "" {
			lang = i18n.Resolve(h)
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), languageKey, lang)))
	})
}

// requestLanguage returns the language chosen by the Language middleware
func requestLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(languageKey).(string); ok {
		return lang
	}
	return i18n.DefaultLanguage
}

// CORS adds CORS headers for allowed origins. An empty list allows any origin.
func (m *Middleware) CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && originAllowed(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept-Language")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed reports whether origin is in the list. An empty list allows any origin.
func originAllowed(allowedOrigins []string, origin string) bool {
	return len(allowedOrigins) == 0 ||
		slices.Contains(allowedOrigins, "*") ||
		slices.Contains(allowedOrigins, origin)
}

// RequestID is a middleware that adds a request ID to the context
func (m *Middleware) RequestID(next http.Handler) http.Handler {
	return middleware.RequestID(next)
}

// Recoverer is a middleware that recovers from panics
func (m *Middleware) Recoverer(next http.Handler) http.Handler {
	return middleware.Recoverer(next)
}
