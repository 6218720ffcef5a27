package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/stocksage/internal/models"
)

// messageProducer is the subset of *kafka.Producer used by Producer.
type messageProducer interface {
	Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error
	Events() chan kafka.Event
	Flush(timeoutMs int) int
	Close()
}

// Producer publishes prediction events. Delivery is fire-and-forget: the
// delivery reports are drained and logged in the background.
type Producer struct {
	producer messageProducer
	topic    string
}

func NewProducer(cfg KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...", slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
		"delivery.timeout.ms": DELIVERY_TIMEOUT_MS,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	producer := newProducer(p, cfg.topic())
	slog.Info("[KafkaClient] Kafka Producer initialized successfully", slog.String("topic", producer.topic))
	return producer, nil
}

func newProducer(mp messageProducer, topic string) *Producer {
	producer := &Producer{producer: mp, topic: topic}
	go producer.drainEvents()
	return producer
}

func (p *Producer) drainEvents() {
	for e := range p.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Delivery failed",
					slog.String("error", ev.TopicPartition.Error.Error()))
			}
		case kafka.Error:
			slog.Error("[KafkaClient] Producer error", slog.String("error", ev.Error()))
		}
	}
}

// Publish enqueues a prediction event keyed by stock symbol, or by "market"
// for news-driven predictions.
func (p *Producer) Publish(ctx context.Context, event models.PredictionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal prediction event: %w", err)
	}

	key := event.Input.StockSymbol
	if key == "" {
		key = "market"
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &p.topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          jsonData,
	}

	for i := 0; i < PRODUCE_RETRIES; i++ {
		err = p.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce prediction event: %w", err)
	}

	slog.Info("[KafkaClient] Published prediction event",
		slog.String("topic", p.topic),
		slog.String("key", key))
	return nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}
