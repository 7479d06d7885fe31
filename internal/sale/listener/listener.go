package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/afifurrozaq/tillpos/internal/broker"
	"github.com/afifurrozaq/tillpos/internal/logger"
	"github.com/afifurrozaq/tillpos/internal/sale"
	"github.com/afifurrozaq/tillpos/internal/sale/dto"
	"go.uber.org/zap"
)

// SaleListener consumes OrderCreated events from self-service kiosks and
// funnels them through the same checkout path the HTTP API uses.
type SaleListener struct {
	consumer *broker.KafkaConsumer
	uc       sale.UseCase
	logger   logger.ZapLogger
}

func NewSaleListener(consumer *broker.KafkaConsumer, uc sale.UseCase, logger logger.ZapLogger) *SaleListener {
	return &SaleListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *SaleListener) Start(ctx context.Context) {
	l.logger.Info("Starting Sale Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Sale Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type OrderCreatedEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   OrderPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type OrderPayload struct {
	Total float64            `json:"total"`
	Items []OrderItemPayload `json:"items"`
}

type OrderItemPayload struct {
	ProductID int64   `json:"product_id"`
	VariantID *int64  `json:"variant_id"`
	Quantity  int64   `json:"quantity"`
	Price     float64 `json:"price"`
}

func (l *SaleListener) processMessage(ctx context.Context, value []byte) {
	var event OrderCreatedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "OrderCreated" {
		return
	}

	l.logger.Info("Processing OrderCreated event", zap.String("event_id", event.EventID))

	input := &dto.CheckoutInput{Total: event.Payload.Total}
	for _, item := range event.Payload.Items {
		input.Items = append(input.Items, dto.CartItem{
			ID:                item.ProductID,
			SelectedVariantID: item.VariantID,
			Quantity:          item.Quantity,
			Price:             item.Price,
		})
	}
	if len(input.Items) == 0 {
		l.logger.Warn("OrderCreated event without items", zap.String("event_id", event.EventID))
		return
	}

	saleID, err := l.uc.Checkout(ctx, input)
	if err != nil {
		l.logger.Error("Failed to record order as sale",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Recorded order as sale",
		zap.String("event_id", event.EventID),
		zap.Int64("sale_id", saleID),
	)
}
