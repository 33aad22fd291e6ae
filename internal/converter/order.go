package converter

import (
	"fmt"
	"time"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type OrderItemDTO struct {
	ComponentID    string `json:"component_id"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type OrderDTO struct {
	ID              string         `json:"id"`
	UserID          string         `json:"user_id"`
	Items           []OrderItemDTO `json:"items"`
	TotalCents      int64          `json:"total_cents"`
	TotalPrice      string         `json:"total_price"`
	Status          string         `json:"status"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	TrackingNumber  *string        `json:"tracking_number,omitempty"`
	Carrier         *string        `json:"carrier,omitempty"`
	PaymentProof    *string        `json:"payment_proof,omitempty"`
	Version         int64          `json:"version"`
	CreatedAt       *time.Time     `json:"created_at,omitempty"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

type CreateOrderResponse struct {
	ID         string `json:"id"`
	TotalCents int64  `json:"total_cents"`
	TotalPrice string `json:"total_price"`
}

func OrderToDTO(m *model.Order) *OrderDTO {
	if m == nil {
		return nil
	}

	items := make([]OrderItemDTO, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, OrderItemDTO{
			ComponentID:    it.ComponentID,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}

	return &OrderDTO{
		ID:              m.ID.String(),
		UserID:          m.UserID.String(),
		Items:           items,
		TotalCents:      m.TotalCents,
		TotalPrice:      FormatCents(m.TotalCents),
		Status:          string(m.Status),
		RejectionReason: m.RejectionReason,
		TrackingNumber:  m.TrackingNumber,
		Carrier:         m.Carrier,
		PaymentProof:    m.PaymentProof,
		Version:         m.Version,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func CreateOrderResultToResponse(res *model.CreateOrderResult) *CreateOrderResponse {
	return &CreateOrderResponse{
		ID:         res.ID.String(),
		TotalCents: res.TotalCents,
		TotalPrice: FormatCents(res.TotalCents),
	}
}

// FormatCents renders a minor-unit amount as a decimal string, e.g.
// 1500000 -> "15000.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
