package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type repository struct {
	coll *mongo.Collection
}

func NewComponentRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) ComponentByID(ctx context.Context, id string) (*model.Component, error) {
	const op = "repository.ComponentByID"

	var ent ComponentEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrComponentNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return EntityToModel(&ent), nil
}

func (r *repository) List(ctx context.Context, filter model.ComponentsFilter) ([]*model.Component, error) {
	const op = "repository.List"

	cur, err := r.coll.Find(ctx, BuildMongoFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			log.Printf("%s failed to close cursor: %s", op, cerr)
			return
		}
	}()

	out := make([]*model.Component, 0)
	for cur.Next(ctx) {
		var ent ComponentEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}
		out = append(out, EntityToModel(&ent))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	const op = "repository.Count"

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (r *repository) CreateBatch(ctx context.Context, components []*model.Component) error {
	const op = "repository.CreateBatch"

	docs := make([]any, 0, len(components))
	for _, c := range components {
		if c == nil {
			continue
		}
		if c.ID == "" {
			return fmt.Errorf("%s: component ID is empty", op)
		}
		if c.CreatedAt == nil || c.CreatedAt.IsZero() {
			c.CreatedAt = lo.ToPtr(time.Now())
		}

		docs = append(docs, EntityFromModel(c))
	}
	if len(docs) == 0 {
		return nil
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
