package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"veripass/internal/catalog"
	"veripass/pkg/platform/httputil"
)

// Handler wires product passport endpoints to the catalog service.
type Handler struct {
	service *catalog.Service
	logger  *slog.Logger
}

func New(service *catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts catalog endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/products", h.HandleCreate)
	r.Get("/products", h.HandleList)
	r.Get("/products/{id}", h.HandleGet)
	r.Post("/products/{id}/submit", h.HandleSubmit)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.Decode[catalog.CreateRequest](w, r)
	if !ok {
		return
	}
	if req.Name == "" || req.Category == "" {
		httputil.WriteError(w, http.StatusBadRequest, "bad_request", "name and category are required")
		return
	}

	product, err := h.service.Create(r.Context(), req, actor(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "product create failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(r.Context(), "product get failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "product list failed", "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.service.Submit(r.Context(), id, actor(r))
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		httputil.WriteError(w, http.StatusNotFound, "not_found", "product not found")
	case errors.As(err, &catalog.ErrInvalidTransition{}):
		httputil.WriteError(w, http.StatusConflict, "invalid_transition", err.Error())
	case err != nil:
		h.logger.ErrorContext(r.Context(), "product submit failed", "product_id", id, "error", err)
		httputil.WriteError(w, http.StatusInternalServerError, "internal_error", "")
	default:
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": string(catalog.StatusPending)})
	}
}

// actor resolves the acting user from the gateway-injected header. Identity
// enforcement happens upstream; an absent header maps to "anonymous".
func actor(r *http.Request) string {
	if v := r.Header.Get("X-Actor-ID"); v != "" {
		return v
	}
	return "anonymous"
}
