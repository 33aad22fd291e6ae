package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/converter"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/respond"
)

type CatalogService interface {
	ListComponents(ctx context.Context, filter model.ComponentsFilter) ([]*model.Component, error)
	ComponentByID(ctx context.Context, id string) (*model.Component, error)
}

type handler struct {
	svc CatalogService
}

func NewCatalogHandler(service CatalogService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Get("/components", h.ListComponents)
	r.Get("/components/{componentID}", h.ComponentByID)
}

func (h *handler) ListComponents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := model.ComponentsFilter{}
	if raw := r.URL.Query().Get("slot"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			filter.Slots = append(filter.Slots, model.Slot(strings.ToUpper(strings.TrimSpace(s))))
		}
	}
	if raw := r.URL.Query().Get("tag"); raw != "" {
		filter.Tags = strings.Split(raw, ",")
	}

	components, err := h.svc.ListComponents(ctx, filter)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.ComponentsToDTO(components))
}

func (h *handler) ComponentByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	component, err := h.svc.ComponentByID(ctx, chi.URLParam(r, "componentID"))
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.ComponentToDTO(component))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrBadGateway):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
