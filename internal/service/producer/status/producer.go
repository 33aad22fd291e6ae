package statusproducer

import (
	"context"
	"fmt"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka"
)

type Converter interface {
	StatusChangedToPayload(m model.StatusChanged) ([]byte, error)
}

type service struct {
	producer kafka.Producer
	conv     Converter
}

func NewStatusProducer(producer kafka.Producer, conv Converter) *service {
	return &service{producer: producer, conv: conv}
}

func (s *service) SendStatusChanged(ctx context.Context, event model.StatusChanged) error {
	payload, err := s.conv.StatusChangedToPayload(event)
	if err != nil {
		return fmt.Errorf("converter status_changed_to_payload error: %w", err)
	}

	if err := s.producer.Send(ctx, event.OrderID[:], payload); err != nil {
		return fmt.Errorf("producer to order.status.changed topic error: %w", err)
	}

	return nil
}
