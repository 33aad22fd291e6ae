package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/compat"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type SelectionRepository interface {
	Create(ctx context.Context) (*model.BuildSelection, error)
	SelectionByID(ctx context.Context, sessionID uuid.UUID) (*model.BuildSelection, error)
	Save(ctx context.Context, sel *model.BuildSelection) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

type ComponentProvider interface {
	ComponentByID(ctx context.Context, id string) (*model.Component, error)
}

type service struct {
	selections SelectionRepository
	catalog    ComponentProvider
	rules      *compat.RuleSet
	opTimeout  time.Duration
}

func NewBuildService(
	selections SelectionRepository,
	catalog ComponentProvider,
	rules *compat.RuleSet,
	opTimeout time.Duration,
) *service {
	return &service{
		selections: selections,
		catalog:    catalog,
		rules:      rules,
		opTimeout:  opTimeout,
	}
}

func (svc *service) StartSession(ctx context.Context) (*model.BuildSelection, error) {
	const op string = "build.service.StartSession"

	ctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	sel, err := svc.selections.Create(ctx)
	if err != nil {
		logger.Error(ctx, "repository create selection", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sel, nil
}

// Check is the advisory probe: it reports whether the component would fit
// the current selection without changing anything. Renderers call it for
// every catalog item, so it must never mutate state.
func (svc *service) Check(ctx context.Context, params model.SelectComponentParams) (compat.Result, error) {
	const op string = "build.service.Check"
	log := logger.With(
		logger.String("session_id", params.SessionID.String()),
		logger.String("component_id", params.ComponentID),
	)

	candidate, sel, err := svc.load(ctx, params)
	if err != nil {
		log.Error(ctx, "load candidate and selection", logger.ErrorF(err))
		return compat.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return svc.rules.Check(candidate, sel), nil
}

// Select places the component into its slot, replacing any previous
// occupant. Compatibility is re-verified here even if the caller already
// ran Check; the check result may be stale by the time Select arrives.
func (svc *service) Select(ctx context.Context, params model.SelectComponentParams) (*model.BuildSelection, error) {
	const op string = "build.service.Select"
	log := logger.With(
		logger.String("session_id", params.SessionID.String()),
		logger.String("component_id", params.ComponentID),
	)

	candidate, sel, err := svc.load(ctx, params)
	if err != nil {
		log.Error(ctx, "load candidate and selection", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if res := svc.rules.Check(candidate, sel); !res.Compatible {
		log.Warn(ctx, "incompatible selection", logger.String("reason", res.Reason))
		return nil, fmt.Errorf("%s: %w: %s", op, model.ErrIncompatibleSelection, res.Reason)
	}

	sel.Slots[candidate.Slot] = candidate

	wctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	if err := svc.selections.Save(wctx, sel); err != nil {
		log.Error(ctx, "repository save selection", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sel, nil
}

func (svc *service) Remove(ctx context.Context, sessionID uuid.UUID, slot model.Slot) (*model.BuildSelection, error) {
	const op string = "build.service.Remove"
	log := logger.With(
		logger.String("session_id", sessionID.String()),
		logger.String("slot", string(slot)),
	)

	if !model.ValidSlot(slot) {
		log.Error(ctx, "unknown slot")
		return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownSlot)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	sel, err := svc.selections.SelectionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository selection by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Removing from an empty slot is a no-op, not an error.
	delete(sel.Slots, slot)

	if err := svc.selections.Save(ctx, sel); err != nil {
		log.Error(ctx, "repository save selection", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sel, nil
}

func (svc *service) Clear(ctx context.Context, sessionID uuid.UUID) (*model.BuildSelection, error) {
	const op string = "build.service.Clear"
	log := logger.With(logger.String("session_id", sessionID.String()))

	ctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	sel, err := svc.selections.SelectionByID(ctx, sessionID)
	if err != nil {
		log.Error(ctx, "repository selection by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	sel.Slots = make(map[model.Slot]*model.Component)

	if err := svc.selections.Save(ctx, sel); err != nil {
		log.Error(ctx, "repository save selection", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sel, nil
}

func (svc *service) Selection(ctx context.Context, sessionID uuid.UUID) (*model.BuildSelection, error) {
	const op string = "build.service.Selection"

	ctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	sel, err := svc.selections.SelectionByID(ctx, sessionID)
	if err != nil {
		logger.Error(ctx, "repository selection by id",
			logger.String("session_id", sessionID.String()),
			logger.ErrorF(err),
		)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return sel, nil
}

// Export flattens the selection into cart lines, one per occupied slot in
// the fixed slot order, each with quantity 1 and the current catalog price
// as the unit price.
func (svc *service) Export(ctx context.Context, sessionID uuid.UUID) (*model.BuildExport, error) {
	const op string = "build.service.Export"

	sel, err := svc.Selection(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	lines := make([]model.CartLine, 0, sel.Occupied())
	for _, slot := range model.AllSlots {
		c := sel.Occupant(slot)
		if c == nil {
			continue
		}
		lines = append(lines, model.CartLine{
			ComponentID:    c.ID,
			Name:           c.Name,
			Slot:           slot,
			Quantity:       1,
			UnitPriceCents: c.PriceCents,
		})
	}

	return &model.BuildExport{
		SessionID:  sessionID,
		Lines:      lines,
		TotalCents: sel.TotalCents(),
	}, nil
}

func (svc *service) load(ctx context.Context, params model.SelectComponentParams) (*model.Component, *model.BuildSelection, error) {
	if params.ComponentID == "" {
		return nil, nil, model.ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, svc.opTimeout)
	defer cancel()

	candidate, err := svc.catalog.ComponentByID(ctx, params.ComponentID)
	if err != nil {
		return nil, nil, err
	}
	if !model.ValidSlot(candidate.Slot) {
		return nil, nil, model.ErrUnknownSlot
	}

	sel, err := svc.selections.SelectionByID(ctx, params.SessionID)
	if err != nil {
		return nil, nil, err
	}

	return candidate, sel, nil
}
