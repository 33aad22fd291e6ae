package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type OrderRepository interface {
	Create(ctx context.Context, ord *model.Order) (uuid.UUID, error)
	OrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Update(ctx context.Context, upd *model.Order) error
}

type CatalogClient interface {
	ListComponents(ctx context.Context, filter model.ComponentsFilter) ([]*model.Component, error)
}

type StatusProducer interface {
	SendStatusChanged(ctx context.Context, event model.StatusChanged) error
}

type service struct {
	repo     OrderRepository
	catalog  CatalogClient
	producer StatusProducer
	// allowFromTerminal lets admins move orders out of COMPLETED/CANCELLED.
	// Off by default; refunds and support tooling flip it per deployment.
	allowFromTerminal bool
	readDBTimeout     time.Duration
	writeDBTimeout    time.Duration
}

func NewOrderService(
	repository OrderRepository,
	catalog CatalogClient,
	producer StatusProducer,
	allowFromTerminal bool,
	readDBTimeout time.Duration,
	writeDBTimeout time.Duration,
) *service {
	return &service{
		repo:              repository,
		catalog:           catalog,
		producer:          producer,
		allowFromTerminal: allowFromTerminal,
		readDBTimeout:     readDBTimeout,
		writeDBTimeout:    writeDBTimeout,
	}
}

func (svc *service) Create(
	ctx context.Context,
	params model.CreateOrderParams,
) (*model.CreateOrderResult, error) {
	const op string = "order.service.Create"
	log := logger.With(
		logger.String("user_id", params.UserID.String()),
		logger.Int("number_items", len(params.Items)),
	)

	if params.UserID == uuid.Nil || len(params.Items) == 0 {
		log.Error(ctx, "wrong params")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}
	for _, it := range params.Items {
		if it.ComponentID == "" || it.Quantity <= 0 {
			log.Error(ctx, "wrong item",
				logger.String("component_id", it.ComponentID),
				logger.Int("quantity", int(it.Quantity)),
			)
			return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
		}
	}

	ids := lo.Map(params.Items, func(it model.OrderItem, _ int) string {
		return it.ComponentID
	})

	components, err := svc.catalog.ListComponents(ctx, model.ComponentsFilter{IDs: ids})
	if err != nil {
		log.Error(ctx, "list components", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, model.ErrBadGateway)
	}

	byID := lo.SliceToMap(components, func(c *model.Component) (string, *model.Component) {
		return c.ID, c
	})

	var totalCents int64
	items := make([]model.OrderItem, 0, len(params.Items))
	ended := make([]string, 0)
	for _, it := range params.Items {
		c, found := byID[it.ComponentID]
		if !found {
			log.Error(ctx, "component missing", logger.String("component_id", it.ComponentID))
			return nil, fmt.Errorf("%s: %w", op, model.ErrComponentNotFound)
		}
		if c.StockQuantity < it.Quantity {
			log.Warn(ctx, "ended component",
				logger.String("component_id", c.ID),
				logger.Int("stock_quantity", int(c.StockQuantity)),
			)
			ended = append(ended, c.ID)
			continue
		}

		// Price is snapshotted from the catalog now; whatever the caller
		// sent as unit price is ignored.
		items = append(items, model.OrderItem{
			ComponentID:    c.ID,
			Quantity:       it.Quantity,
			UnitPriceCents: c.PriceCents,
		})
		totalCents += c.PriceCents * it.Quantity
	}

	if len(ended) > 0 {
		log.Warn(ctx, "len ended components", logger.Int("number_ended", len(ended)))
		return nil, fmt.Errorf("%s: %w %v", op, model.ErrComponentsOutOfStock, ended)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	ordID, err := svc.repo.Create(ctx, &model.Order{
		UserID:     params.UserID,
		Items:      items,
		TotalCents: totalCents,
		Status:     model.StatusPending,
	})
	if err != nil {
		log.Error(ctx, "repository create order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &model.CreateOrderResult{ID: ordID, TotalCents: totalCents}, nil
}

// SubmitPaymentProof attaches a payment slip reference and moves the order
// to VERIFYING. Resubmitting while already VERIFYING replaces the slip; a
// rejection reason left over from a failed verification is cleared.
func (svc *service) SubmitPaymentProof(
	ctx context.Context,
	actor model.Actor,
	params model.SubmitPaymentProofParams,
) (*model.Order, error) {
	const op string = "order.service.SubmitPaymentProof"
	log := logger.With(
		logger.String("order_id", params.OrderID.String()),
		logger.String("user_id", actor.UserID.String()),
	)

	if params.ProofRef == "" {
		log.Error(ctx, "empty proof ref")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	ord, err := svc.ownedOrder(ctx, actor, params.OrderID)
	if err != nil {
		log.Error(ctx, "load order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch ord.Status {
	case model.StatusPending, model.StatusVerifying:
	case model.StatusPaid, model.StatusShipped, model.StatusCompleted, model.StatusCancelled:
		log.Error(ctx, "wrong order status for proof", logger.String("status", string(ord.Status)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrInvalidTransition)
	default:
		log.Error(ctx, "unknown order status", logger.String("status", string(ord.Status)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	oldStatus := ord.Status
	ord.PaymentProof = &params.ProofRef
	ord.RejectionReason = nil
	ord.Status = model.StatusVerifying

	if err := svc.update(ctx, ord); err != nil {
		log.Error(ctx, "repository update order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.publishStatusChanged(ctx, ord, oldStatus)

	return ord, nil
}

// SetStatus is the admin lever: any valid target status is reachable in one
// call, subject to the terminal policy and the shipping metadata rule.
func (svc *service) SetStatus(
	ctx context.Context,
	actor model.Actor,
	params model.SetStatusParams,
) (*model.Order, error) {
	const op string = "order.service.SetStatus"
	log := logger.With(
		logger.String("order_id", params.OrderID.String()),
		logger.String("user_id", actor.UserID.String()),
		logger.String("target_status", string(params.Status)),
	)

	if !actor.IsAdmin() {
		log.Error(ctx, "actor is not admin", logger.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnauthorized)
	}
	if !model.ValidOrderStatus(params.Status) {
		log.Error(ctx, "unknown target status")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownStatus)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	ord, err := svc.repo.OrderByID(rdbCtx, params.OrderID)
	if err != nil {
		log.Error(ctx, "repository order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log = log.With(logger.String("order_status", string(ord.Status)))

	if ord.Status.Terminal() && !svc.allowFromTerminal && params.Status != ord.Status {
		log.Error(ctx, "order in terminal status")
		return nil, fmt.Errorf("%s: %w", op, model.ErrOrderConflict)
	}

	if params.Status == model.StatusShipped {
		tracking := params.TrackingNumber
		carrier := params.Carrier
		if tracking == nil {
			tracking = ord.TrackingNumber
		}
		if carrier == nil {
			carrier = ord.Carrier
		}
		if tracking == nil || *tracking == "" || carrier == nil || *carrier == "" {
			log.Error(ctx, "shipping without tracking metadata")
			return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
		}
		ord.TrackingNumber = tracking
		ord.Carrier = carrier
	} else {
		if params.TrackingNumber != nil {
			ord.TrackingNumber = params.TrackingNumber
		}
		if params.Carrier != nil {
			ord.Carrier = params.Carrier
		}
	}

	oldStatus := ord.Status
	ord.Status = params.Status
	// A rejection reason accompanies the status it was set with; the next
	// proof submission clears it.
	if params.RejectionReason != nil {
		ord.RejectionReason = params.RejectionReason
	}

	if err := svc.update(ctx, ord); err != nil {
		log.Error(ctx, "repository update order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	svc.publishStatusChanged(ctx, ord, oldStatus)

	return ord, nil
}

func (svc *service) SetTracking(
	ctx context.Context,
	actor model.Actor,
	params model.SetTrackingParams,
) (*model.Order, error) {
	const op string = "order.service.SetTracking"
	log := logger.With(
		logger.String("order_id", params.OrderID.String()),
		logger.String("user_id", actor.UserID.String()),
	)

	if !actor.IsAdmin() {
		log.Error(ctx, "actor is not admin", logger.String("role", string(actor.Role)))
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnauthorized)
	}
	if params.TrackingNumber == "" || params.Carrier == "" {
		log.Error(ctx, "empty tracking metadata")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	rdbCtx, rdbCancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer rdbCancel()

	ord, err := svc.repo.OrderByID(rdbCtx, params.OrderID)
	if err != nil {
		log.Error(ctx, "repository order by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ord.TrackingNumber = &params.TrackingNumber
	ord.Carrier = &params.Carrier

	if err := svc.update(ctx, ord); err != nil {
		log.Error(ctx, "repository update order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ord, nil
}

func (svc *service) OrderByID(ctx context.Context, actor model.Actor, ordID uuid.UUID) (*model.Order, error) {
	const op string = "order.service.OrderByID"
	log := logger.With(
		logger.String("order_id", ordID.String()),
		logger.String("user_id", actor.UserID.String()),
	)

	ord, err := svc.ownedOrder(ctx, actor, ordID)
	if err != nil {
		log.Error(ctx, "load order", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ord, nil
}

// ownedOrder loads the order and enforces that non-admin actors only reach
// their own orders.
func (svc *service) ownedOrder(ctx context.Context, actor model.Actor, ordID uuid.UUID) (*model.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, svc.readDBTimeout)
	defer cancel()

	ord, err := svc.repo.OrderByID(ctx, ordID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && ord.UserID != actor.UserID {
		return nil, model.ErrUnauthorized
	}

	return ord, nil
}

func (svc *service) update(ctx context.Context, ord *model.Order) error {
	ctx, cancel := context.WithTimeout(ctx, svc.writeDBTimeout)
	defer cancel()

	return svc.repo.Update(ctx, ord)
}

// publishStatusChanged is best-effort: the state is already persisted, so a
// broker hiccup is logged and swallowed rather than rolled back.
func (svc *service) publishStatusChanged(ctx context.Context, ord *model.Order, oldStatus model.OrderStatus) {
	if svc.producer == nil || ord.Status == oldStatus {
		return
	}

	event := model.StatusChanged{
		EventID:    uuid.New(),
		OrderID:    ord.ID,
		UserID:     ord.UserID,
		OldStatus:  oldStatus,
		NewStatus:  ord.Status,
		OccurredAt: time.Now(),
	}
	if err := svc.producer.SendStatusChanged(ctx, event); err != nil {
		logger.Error(ctx, "send status changed event",
			logger.String("order_id", ord.ID.String()),
			logger.ErrorF(err),
		)
	}
}
