// Package kafka publishes domain events to Kafka topics.
package kafka

import (
	"context"
	"fmt"
	"time"

	"bloodbank/internal/domain"

	kafkago "github.com/segmentio/kafka-go"
)

var _ domain.EventPublisher = (*Publisher)(nil)

// Publisher writes each event to the topic mapped for its type, falling back
// to a default topic.
type Publisher struct {
	writer       *kafkago.Writer
	defaultTopic string
	topicByEvent map[string]string
}

// NewPublisher creates a publisher for brokers. Events without a mapping go
// to defaultTopic.
func NewPublisher(brokers []string, defaultTopic string, topicByEvent map[string]string) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	if defaultTopic == "" {
		return nil, fmt.Errorf("kafka publisher requires a default topic")
	}
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			RequiredAcks: kafkago.RequireAll,
			Balancer:     &kafkago.Hash{},
			WriteTimeout: 5 * time.Second,
		},
		defaultTopic: defaultTopic,
		topicByEvent: topicByEvent,
	}, nil
}

// TopicFor returns the topic events of eventType are written to.
func (p *Publisher) TopicFor(eventType string) string {
	if mapped, ok := p.topicByEvent[eventType]; ok && mapped != "" {
		return mapped
	}
	return p.defaultTopic
}

// Publish writes one message keyed by key.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload []byte, key string) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: p.TopicFor(eventType),
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventType)},
		},
		Time: time.Now().UTC(),
	})
}

// Close flushes pending writes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
