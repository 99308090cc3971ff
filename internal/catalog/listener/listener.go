package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DiscountChanged = "DiscountChanged"
	ProductChanged  = "ProductChanged"
	VendorChanged   = "VendorChanged"
	PolicyChanged   = "PolicyChanged"
)

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

// Invalidator drops cached entries matching a glob pattern.
type Invalidator interface {
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

type CatalogEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type CatalogListener struct {
	consumer    MessageReader
	invalidator Invalidator
	patterns    map[string]string
	retryDelay  time.Duration
	logger      logger.ZapLogger
}

// NewCatalogListener evicts cached listings and policy content when the
// catalog publishes a change. listingPrefix and policyPrefix are the
// cache key prefixes of the promotion and policy use cases.
func NewCatalogListener(consumer MessageReader, invalidator Invalidator, listingPrefix, policyPrefix string, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer:    consumer,
		invalidator: invalidator,
		patterns: map[string]string{
			DiscountChanged: listingPrefix + "*",
			ProductChanged:  listingPrefix + "*",
			VendorChanged:   listingPrefix + "*",
			PolicyChanged:   policyPrefix + "*",
		},
		retryDelay: time.Second,
		logger:     logger,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.retryDelay):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event CatalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	pattern, ok := l.patterns[event.EventType]
	if !ok {
		return
	}

	deleted, err := l.invalidator.DeletePattern(ctx, pattern)
	if err != nil {
		l.logger.Error("Failed to invalidate cache",
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return
	}
	l.logger.Info("Cache invalidated",
		zap.String("event_id", event.EventID),
		zap.String("event_type", event.EventType),
		zap.String("pattern", pattern),
		zap.Int("deleted", deleted),
	)
}
