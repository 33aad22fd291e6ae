package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

func EntityToModel(e *ComponentEntity) *model.Component {
	if e == nil {
		return nil
	}

	return &model.Component{
		ID:            e.ID,
		Name:          e.Name,
		Slot:          e.Slot,
		PriceCents:    e.PriceCents,
		StockQuantity: e.StockQuantity,
		Attributes:    e.Attributes,
		Tags:          e.Tags,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func EntityFromModel(c *model.Component) *ComponentEntity {
	if c == nil {
		return nil
	}

	return &ComponentEntity{
		ID:            c.ID,
		Name:          c.Name,
		Slot:          c.Slot,
		PriceCents:    c.PriceCents,
		StockQuantity: c.StockQuantity,
		Attributes:    c.Attributes,
		Tags:          c.Tags,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func BuildMongoFilter(f model.ComponentsFilter) bson.M {
	q := bson.M{}

	if len(f.IDs) > 0 {
		q["_id"] = bson.M{"$in": f.IDs}
	}
	if len(f.Slots) > 0 {
		q["slot"] = bson.M{"$in": f.Slots}
	}
	if len(f.Tags) > 0 {
		q["tags"] = bson.M{"$in": f.Tags}
	}

	return q
}
