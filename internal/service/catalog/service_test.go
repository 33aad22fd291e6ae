package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/service/mocks"
)

func TestServiceListComponents(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		filter model.ComponentsFilter
		setup  func(repo *mocks.MockComponentRepository)
		assert func(t *testing.T, got []*model.Component, err error)
	}

	tests := []testCase{
		{
			name:   "error: unknown slot in filter",
			filter: model.ComponentsFilter{Slots: []model.Slot{model.Slot("TOASTER")}},
			assert: func(t *testing.T, got []*model.Component, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrUnknownSlot)
				assert.Nil(t, got)
			},
		},
		{
			name:   "error: repository failure",
			filter: model.ComponentsFilter{Slots: []model.Slot{model.SlotCPU}},
			setup: func(repo *mocks.MockComponentRepository) {
				repo.
					On("List", mock.Anything, mock.Anything).
					Return(nil, errors.New("mongo is down")).
					Once()
			},
			assert: func(t *testing.T, got []*model.Component, err error) {
				require.Error(t, err)
				assert.Nil(t, got)
			},
		},
		{
			name:   "success: passes the filter through",
			filter: model.ComponentsFilter{Slots: []model.Slot{model.SlotCPU}, Tags: []string{"amd"}},
			setup: func(repo *mocks.MockComponentRepository) {
				repo.
					On("List", mock.Anything, mock.MatchedBy(func(f model.ComponentsFilter) bool {
						return len(f.Slots) == 1 && f.Slots[0] == model.SlotCPU && len(f.Tags) == 1
					})).
					Return([]*model.Component{
						{ID: uuid.NewString(), Slot: model.SlotCPU, Name: "AMD Ryzen 7 7700X"},
					}, nil).
					Once()
			},
			assert: func(t *testing.T, got []*model.Component, err error) {
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, model.SlotCPU, got[0].Slot)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := mocks.NewMockComponentRepository(t)
			if tt.setup != nil {
				tt.setup(repo)
			}

			svc := NewCatalogService(repo, 2*time.Second)

			got, err := svc.ListComponents(context.Background(), tt.filter)
			tt.assert(t, got, err)
		})
	}
}

func TestServiceComponentByID(t *testing.T) {
	t.Parallel()

	t.Run("error: empty id", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockComponentRepository(t)
		svc := NewCatalogService(repo, 2*time.Second)

		_, err := svc.ComponentByID(context.Background(), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("error: not found passes through", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockComponentRepository(t)
		id := uuid.NewString()
		repo.
			On("ComponentByID", mock.Anything, id).
			Return((*model.Component)(nil), model.ErrComponentNotFound).
			Once()

		svc := NewCatalogService(repo, 2*time.Second)

		_, err := svc.ComponentByID(context.Background(), id)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrComponentNotFound)
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()

		repo := mocks.NewMockComponentRepository(t)
		id := uuid.NewString()
		repo.
			On("ComponentByID", mock.Anything, id).
			Return(&model.Component{ID: id, Slot: model.SlotGPU}, nil).
			Once()

		svc := NewCatalogService(repo, 2*time.Second)

		got, err := svc.ComponentByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})
}
