package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/portfolio-api/internal/application/service"
	"github.com/khoahotran/portfolio-api/internal/config"
	"github.com/khoahotran/portfolio-api/internal/domain/content"
	"github.com/khoahotran/portfolio-api/pkg/logger"
)

const TopicContentEvents = "content.events"

// MessageWriter is the part of *kafka.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ContentEventsWriter MessageWriter
	logger              logger.Logger
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'content.events'
	contentWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicContentEvents,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
	}

	log.Info("Initialize Kafka Producers successfully.")

	return NewProducerWithWriter(contentWriter, log), nil
}

func NewProducerWithWriter(w MessageWriter, log logger.Logger) *KafkaProducerClient {
	return &KafkaProducerClient{ContentEventsWriter: w, logger: log}
}

// PublishContentEvent writes evt keyed by collection, so events of one
// collection land on one partition. The content store calls it from a single
// goroutine in commit order.
func (c *KafkaProducerClient) PublishContentEvent(ctx context.Context, evt content.Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal content event: %w", err)
	}

	err = c.ContentEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Collection),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write content event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ContentEventsWriter != nil {
		if err := c.ContentEventsWriter.Close(); err != nil {
			c.logger.Error("Failed to close Kafka writer", err)
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
