package converter

import (
	"time"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type ComponentDTO struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slot          string         `json:"slot"`
	PriceCents    int64          `json:"price_cents"`
	Price         string         `json:"price"`
	StockQuantity int64          `json:"stock_quantity"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	Tags          []string       `json:"tags,omitempty"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
	UpdatedAt     *time.Time     `json:"updated_at,omitempty"`
}

func ComponentToDTO(m *model.Component) *ComponentDTO {
	if m == nil {
		return nil
	}

	return &ComponentDTO{
		ID:            m.ID,
		Name:          m.Name,
		Slot:          string(m.Slot),
		PriceCents:    m.PriceCents,
		Price:         FormatCents(m.PriceCents),
		StockQuantity: m.StockQuantity,
		Attributes:    m.Attributes,
		Tags:          m.Tags,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ComponentsToDTO(ms []*model.Component) []*ComponentDTO {
	out := make([]*ComponentDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, ComponentToDTO(m))
	}
	return out
}
