package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cataloghandler "veripass/internal/catalog/handler"
	profilehandler "veripass/internal/profile/handler"
	verificationhandler "veripass/internal/verification/handler"
	"veripass/pkg/platform/audit"
	"veripass/pkg/platform/httputil"
)

// Deps carries the handlers and services the router mounts.
type Deps struct {
	Catalog      *cataloghandler.Handler
	Profiles     *profilehandler.Handler
	Verification *verificationhandler.Handler
	Auditor      *audit.Publisher
	Logger       *slog.Logger
}

// New wires all public endpoints. Transport concerns only; business logic
// stays in the services.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		deps.Catalog.Register(api)
		deps.Profiles.Register(api)
		deps.Verification.Register(api)

		// Audit trail read model for external dashboards.
		api.Get("/audit/{entityID}", func(w http.ResponseWriter, r *http.Request) {
			events, err := deps.Auditor.List(r.Context(), chi.URLParam(r, "entityID"))
			if err != nil {
				deps.Logger.ErrorContext(r.Context(), "audit list failed", "error", err)
				httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
				return
			}
			if events == nil {
				events = []audit.Event{}
			}
			httputil.WriteJSON(w, http.StatusOK, events)
		})
	})

	return r
}

// requestLogger logs one line per request with the chi request id.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
