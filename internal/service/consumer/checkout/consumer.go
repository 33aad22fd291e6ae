package checkoutconsumer

import (
	"context"
	"fmt"

	"github.com/MarkCnw/I-Have-Gpu-sub000/internal/model"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/kafka"
	"github.com/MarkCnw/I-Have-Gpu-sub000/platform/logger"
)

type Converter interface {
	CheckoutToModel(data []byte) (model.CheckoutEvent, error)
}

type Service interface {
	Create(ctx context.Context, params model.CreateOrderParams) (*model.CreateOrderResult, error)
}

type service struct {
	consumer kafka.Consumer
	conv     Converter
	svc      Service
}

func NewCheckoutConsumer(
	consumer kafka.Consumer,
	conv Converter,
	svc Service,
) *service {
	return &service{consumer: consumer, conv: conv, svc: svc}
}

func (s *service) RunCheckoutConsume(ctx context.Context) error {
	logger.Info(ctx, "Starting cart checkout consumer")

	if err := s.consumer.Consume(ctx, s.checkoutHandler); err != nil {
		logger.Error(ctx, "Consume from cart.checkout topic error", logger.ErrorF(err))
		return err
	}

	return nil
}

func (s *service) checkoutHandler(ctx context.Context, msg kafka.Message) error {
	payload, err := s.conv.CheckoutToModel(msg.Value)
	if err != nil {
		logger.Error(ctx, "Failed to decode CheckoutRecord", logger.ErrorF(err))
		return fmt.Errorf("converter checkout_to_model error: %w", err)
	}

	res, err := s.svc.Create(ctx, model.CreateOrderParams{
		UserID: payload.UserID,
		Items:  payload.Items,
	})
	if err != nil {
		logger.Error(ctx, "consumer.CreateOrder", logger.ErrorF(err))
		return err
	}

	logger.Info(ctx, "Order created from checkout",
		logger.String("order_id", res.ID.String()),
		logger.String("event_id", payload.EventID.String()),
	)

	return nil
}
