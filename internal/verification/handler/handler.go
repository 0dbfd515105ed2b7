package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veripass/internal/verification"
	"veripass/pkg/platform/httputil"
)

// Runner triggers one verification pass. The orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context) (verification.RunSummary, error)
}

// Handler exposes the scheduler-facing verification trigger.
type Handler struct {
	runner Runner
	logger *slog.Logger
}

func New(runner Runner, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// Register mounts verification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verification/run", h.HandleRun)
}

// HandleRun executes a synchronous verification run and returns its counts.
// The external scheduler calls this with no arguments.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	summary, err := h.runner.Run(r.Context())
	if errors.Is(err, verification.ErrNoProfiles) {
		httputil.WriteError(w, http.StatusConflict, "no_profiles_configured",
			"no compliance profiles exist; configure at least one before running verification")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "verification run failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summary)
}
