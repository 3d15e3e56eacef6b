package events

import (
	"context"
	"encoding/json"
	"fmt"

	aws_pkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/segmentio/kafka-go"
)

// Publisher delivers domain events to the configured bus. key groups
// related events (the user id for orders).
type Publisher interface {
	Publish(ctx context.Context, key string, event interface{}) error
	Close() error
}

// Typed events expose their name, sent as the event_type attribute on SNS
// and as a header on Kafka.
type Typed interface {
	EventName() string
}

func eventName(event interface{}) string {
	if t, ok := event.(Typed); ok {
		return t.EventName()
	}
	return ""
}

// SNSPublisher publishes JSON events to one SNS topic.
type SNSPublisher struct {
	client   aws_pkg.SNSPublisher
	topicArn string
}

func NewSNSPublisher(client aws_pkg.SNSPublisher, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	attrs := map[string]string{}
	if name := eventName(event); name != "" {
		attrs["event_type"] = name
	}
	if key != "" {
		attrs["partition_key"] = key
	}
	return p.client.Publish(ctx, p.topicArn, b, attrs)
}

func (p *SNSPublisher) Close() error { return nil }

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON events to one Kafka topic.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

func newKafkaPublisherWithWriter(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, key string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if name := eventName(event); name != "" {
		msg.Headers = []kafka.Header{{Key: "event_type", Value: []byte(name)}}
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write to %s failed: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
