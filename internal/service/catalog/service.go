package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type ComponentRepository interface {
	ComponentByID(ctx context.Context, id string) (*model.Component, error)
	List(ctx context.Context, filter model.ComponentsFilter) ([]*model.Component, error)
}

type service struct {
	repo        ComponentRepository
	readTimeout time.Duration
}

func NewCatalogService(repository ComponentRepository, readTimeout time.Duration) *service {
	return &service{
		repo:        repository,
		readTimeout: readTimeout,
	}
}

func (svc *service) ListComponents(ctx context.Context, filter model.ComponentsFilter) ([]*model.Component, error) {
	const op string = "catalog.service.ListComponents"

	for _, s := range filter.Slots {
		if !model.ValidSlot(s) {
			logger.Error(ctx, "unknown slot in filter", logger.String("slot", string(s)))
			return nil, fmt.Errorf("%s: %w", op, model.ErrUnknownSlot)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	components, err := svc.repo.List(ctx, filter)
	if err != nil {
		logger.Error(ctx, "repository list components", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return components, nil
}

func (svc *service) ComponentByID(ctx context.Context, id string) (*model.Component, error) {
	const op string = "catalog.service.ComponentByID"
	log := logger.With(logger.String("component_id", id))

	if id == "" {
		log.Error(ctx, "empty component id")
		return nil, fmt.Errorf("%s: %w", op, model.ErrValidation)
	}

	ctx, cancel := context.WithTimeout(ctx, svc.readTimeout)
	defer cancel()

	component, err := svc.repo.ComponentByID(ctx, id)
	if err != nil {
		log.Error(ctx, "repository component by id", logger.ErrorF(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return component, nil
}
