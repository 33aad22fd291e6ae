package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
)

type statusChangedRecord struct {
	EventID    string `json:"event_id"`
	OrderID    string `json:"order_id"`
	UserID     string `json:"user_id"`
	OldStatus  string `json:"old_status"`
	NewStatus  string `json:"new_status"`
	OccurredAt string `json:"occurred_at"`
}

type checkoutRecord struct {
	EventID string             `json:"event_id"`
	UserID  string             `json:"user_id"`
	Lines   []checkoutLineItem `json:"lines"`
}

type checkoutLineItem struct {
	ComponentID    string `json:"component_id"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

type kafkaConverter struct{}

func NewKafkaConverter() *kafkaConverter { return &kafkaConverter{} }

func (c *kafkaConverter) StatusChangedToPayload(m model.StatusChanged) ([]byte, error) {
	rec := statusChangedRecord{
		EventID:    m.EventID.String(),
		OrderID:    m.OrderID.String(),
		UserID:     m.UserID.String(),
		OldStatus:  string(m.OldStatus),
		NewStatus:  string(m.NewStatus),
		OccurredAt: m.OccurredAt.UTC().Format(time.RFC3339Nano),
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal status changed record: %w", err)
	}

	return payload, nil
}

func (c *kafkaConverter) CheckoutToModel(data []byte) (model.CheckoutEvent, error) {
	var rec checkoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return model.CheckoutEvent{}, fmt.Errorf("failed to unmarshal checkout record: %w", err)
	}

	eventID, err := uuid.Parse(rec.EventID)
	if err != nil {
		return model.CheckoutEvent{}, fmt.Errorf("bad event id %q: %w", rec.EventID, err)
	}
	userID, err := uuid.Parse(rec.UserID)
	if err != nil {
		return model.CheckoutEvent{}, fmt.Errorf("bad user id %q: %w", rec.UserID, err)
	}

	items := make([]model.OrderItem, 0, len(rec.Lines))
	for _, l := range rec.Lines {
		items = append(items, model.OrderItem{
			ComponentID:    l.ComponentID,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}

	return model.CheckoutEvent{
		EventID: eventID,
		UserID:  userID,
		Items:   items,
	}, nil
}
