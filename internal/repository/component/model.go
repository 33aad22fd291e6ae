package repository

import (
	"time"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type ComponentEntity struct {
	ID            string         `bson:"_id"`
	Name          string         `bson:"name"`
	Slot          model.Slot     `bson:"slot"`
	PriceCents    int64          `bson:"price_cents"`
	StockQuantity int64          `bson:"stock_quantity"`
	Attributes    map[string]any `bson:"attributes,omitempty"`
	Tags          []string       `bson:"tags,omitempty"`
	CreatedAt     *time.Time     `bson:"created_at,omitempty"`
	UpdatedAt     *time.Time     `bson:"updated_at,omitempty"`
}
