package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veripass/internal/profile"
	"veripass/pkg/platform/httputil"
)

// Handler wires compliance profile endpoints to the profile service.
type Handler struct {
	service *profile.Service
	logger  *slog.Logger
}

func New(service *profile.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts profile endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/profiles", h.HandleCreate)
	r.Get("/profiles", h.HandleList)
	r.Get("/profiles/{id}", h.HandleGet)
	r.Delete("/profiles/{id}", h.HandleDelete)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[profile.CreateRequest](w, r)
	if !ok {
		return
	}
	if req.Name == "" || req.Category == "" {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "name and category are required")
		return
	}

	created, err := h.service.Create(r.Context(), req, actor(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "profile create failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, profile.ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "not_found", "profile not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "profile get failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "profile list failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor(r))
	if errors.Is(err, profile.ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "not_found", "profile not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "profile delete failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func actor(r *http.Request) string {
	if v := r.Header.Get("X-Actor-ID"); v != "" {
		return v
	}
	return "anonymous"
}
