package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/compat"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/converter"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/respond"
)

type BuildService interface {
	StartSession(ctx context.Context) (*model.BuildSelection, error)
	Check(ctx context.Context, params model.SelectComponentParams) (compat.Result, error)
	Select(ctx context.Context, params model.SelectComponentParams) (*model.BuildSelection, error)
	Remove(ctx context.Context, sessionID uuid.UUID, slot model.Slot) (*model.BuildSelection, error)
	Clear(ctx context.Context, sessionID uuid.UUID) (*model.BuildSelection, error)
	Selection(ctx context.Context, sessionID uuid.UUID) (*model.BuildSelection, error)
	Export(ctx context.Context, sessionID uuid.UUID) (*model.BuildExport, error)
}

type handler struct {
	svc BuildService
}

func NewBuildHandler(service BuildService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/builds", func(r chi.Router) {
		r.Post("/", h.StartSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.Selection)
			r.Delete("/", h.Clear)
			r.Get("/check", h.Check)
			r.Post("/components", h.Select)
			r.Delete("/slots/{slot}", h.Remove)
			r.Get("/export", h.Export)
		})
	})
}

type selectComponentRequest struct {
	ComponentID string `json:"component_id"`
}

func (h *handler) StartSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sel, err := h.svc.StartSession(ctx)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, converter.SelectionToDTO(sel))
}

func (h *handler) Selection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	sel, err := h.svc.Selection(ctx, sessionID)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.SelectionToDTO(sel))
}

func (h *handler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	res, err := h.svc.Check(ctx, model.SelectComponentParams{
		SessionID:   sessionID,
		ComponentID: r.URL.Query().Get("component_id"),
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.CheckResultToDTO(res))
}

func (h *handler) Select(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	var req selectComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	sel, err := h.svc.Select(ctx, model.SelectComponentParams{
		SessionID:   sessionID,
		ComponentID: req.ComponentID,
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.SelectionToDTO(sel))
}

func (h *handler) Remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	slot := model.Slot(strings.ToUpper(chi.URLParam(r, "slot")))

	sel, err := h.svc.Remove(ctx, sessionID, slot)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.SelectionToDTO(sel))
}

func (h *handler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	sel, err := h.svc.Clear(ctx, sessionID)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.SelectionToDTO(sel))
}

func (h *handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid session id"))
		return
	}

	export, err := h.svc.Export(ctx, sessionID)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.BuildExportToDTO(export))
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUnknownSlot):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrSessionNotFound),
		errors.Is(err, model.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrIncompatibleSelection):
		return http.StatusConflict
	case errors.Is(err, model.ErrBadGateway):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
