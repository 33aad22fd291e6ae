package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/converter"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/transport/http/respond"
)

// Gateway-injected identity headers. The gateway authenticates; we only
// consume the result.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

type OrderService interface {
	Create(ctx context.Context, params model.CreateOrderParams) (*model.CreateOrderResult, error)
	SubmitPaymentProof(ctx context.Context, actor model.Actor, params model.SubmitPaymentProofParams) (*model.Order, error)
	SetStatus(ctx context.Context, actor model.Actor, params model.SetStatusParams) (*model.Order, error)
	SetTracking(ctx context.Context, actor model.Actor, params model.SetTrackingParams) (*model.Order, error)
	OrderByID(ctx context.Context, actor model.Actor, ordID uuid.UUID) (*model.Order, error)
}

type handler struct {
	svc OrderService
}

func NewOrderHandler(service OrderService) *handler {
	return &handler{svc: service}
}

func (h *handler) Register(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", h.OrderByID)
			r.Post("/payment-proof", h.SubmitPaymentProof)
			r.Patch("/status", h.SetStatus)
			r.Patch("/tracking", h.SetTracking)
		})
	})
}

type createOrderRequest struct {
	Items []converter.OrderItemDTO `json:"items"`
}

type submitProofRequest struct {
	ProofRef string `json:"proof_ref"`
}

type setStatusRequest struct {
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	TrackingNumber  *string `json:"tracking_number,omitempty"`
	Carrier         *string `json:"carrier,omitempty"`
}

type setTrackingRequest struct {
	TrackingNumber string `json:"tracking_number"`
	Carrier        string `json:"carrier"`
}

func (h *handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		respond.Error(ctx, w, http.StatusUnauthorized, err)
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.OrderItem{
			ComponentID: it.ComponentID,
			Quantity:    it.Quantity,
		})
	}

	res, err := h.svc.Create(ctx, model.CreateOrderParams{
		UserID: actor.UserID,
		Items:  items,
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusCreated, converter.CreateOrderResultToResponse(res))
}

func (h *handler) OrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		respond.Error(ctx, w, http.StatusUnauthorized, err)
		return
	}

	ordID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	ord, err := h.svc.OrderByID(ctx, actor, ordID)
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.OrderToDTO(ord))
}

func (h *handler) SubmitPaymentProof(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		respond.Error(ctx, w, http.StatusUnauthorized, err)
		return
	}

	ordID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req submitProofRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ord, err := h.svc.SubmitPaymentProof(ctx, actor, model.SubmitPaymentProofParams{
		OrderID:  ordID,
		ProofRef: req.ProofRef,
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.OrderToDTO(ord))
}

func (h *handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		respond.Error(ctx, w, http.StatusUnauthorized, err)
		return
	}

	ordID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req setStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ord, err := h.svc.SetStatus(ctx, actor, model.SetStatusParams{
		OrderID:         ordID,
		Status:          model.OrderStatus(req.Status),
		RejectionReason: req.RejectionReason,
		TrackingNumber:  req.TrackingNumber,
		Carrier:         req.Carrier,
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.OrderToDTO(ord))
}

func (h *handler) SetTracking(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := actorFromRequest(r)
	if err != nil {
		respond.Error(ctx, w, http.StatusUnauthorized, err)
		return
	}

	ordID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var req setTrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(ctx, w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	ord, err := h.svc.SetTracking(ctx, actor, model.SetTrackingParams{
		OrderID:        ordID,
		TrackingNumber: req.TrackingNumber,
		Carrier:        req.Carrier,
	})
	if err != nil {
		respond.Error(ctx, w, mapErrorToStatus(err), err)
		return
	}

	respond.JSON(ctx, w, http.StatusOK, converter.OrderToDTO(ord))
}

func actorFromRequest(r *http.Request) (model.Actor, error) {
	userID, err := uuid.Parse(r.Header.Get(HeaderUserID))
	if err != nil {
		return model.Actor{}, errors.New("missing or invalid " + HeaderUserID + " header")
	}

	role := model.Role(r.Header.Get(HeaderUserRole))
	if role != model.RoleAdmin {
		role = model.RoleCustomer
	}

	return model.Actor{UserID: userID, Role: role}, nil
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrComponentNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrOrderConflict),
		errors.Is(err, model.ErrStaleWrite),
		errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrComponentsOutOfStock):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrBadGateway):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
