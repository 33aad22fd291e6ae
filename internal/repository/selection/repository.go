package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

// repository keeps build selections in memory. A selection lives only as
// long as its session; nothing here survives a restart, which is the
// intended lifecycle for an in-progress build.
type repository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]*model.BuildSelection
}

func NewSelectionRepository() *repository {
	return &repository{
		data: make(map[uuid.UUID]*model.BuildSelection),
	}
}

func (r *repository) Create(_ context.Context) (*model.BuildSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sel := model.NewBuildSelection(uuid.New())
	r.data[sel.SessionID] = sel

	return sel.Clone(), nil
}

func (r *repository) SelectionByID(_ context.Context, sessionID uuid.UUID) (*model.BuildSelection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sel, ok := r.data[sessionID]
	if !ok {
		return nil, model.ErrSessionNotFound
	}

	return sel.Clone(), nil
}

func (r *repository) Save(_ context.Context, sel *model.BuildSelection) error {
	if sel == nil {
		return model.ErrValidation
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[sel.SessionID]; !ok {
		return model.ErrSessionNotFound
	}
	r.data[sel.SessionID] = sel.Clone()

	return nil
}

func (r *repository) Delete(_ context.Context, sessionID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, sessionID)
	return nil
}
