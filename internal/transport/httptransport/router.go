package httptransport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// NewRouter mounts POST /check and, when metrics is not nil, GET /metrics.
func NewRouter(h *Handler, metrics http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(ZapRequestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Post("/check", h.Check)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}
	return r
}

// ZapRequestLogger logs one entry per served request on the global logger.
func ZapRequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t1 := time.Now()
		defer func() {
			zap.L().Info("request served",
				zap.String("requestid", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remoteaddr", r.RemoteAddr),
				zap.Duration("lat", time.Since(t1)),
				zap.Int("http_status", ww.Status()),
				zap.Int("size", ww.BytesWritten()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
