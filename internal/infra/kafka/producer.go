package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// messageWriter 便于测试替换
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Publisher 领域事件发布器
type Publisher struct {
	writer messageWriter
	topic  string
}

// NewPublisher 基于全局生产者创建发布器
func NewPublisher(topic string) *Publisher {
	p := &Publisher{topic: topic}
	if producer != nil {
		p.writer = producer
	}
	return p
}

// Publish 发送领域事件
func (p *Publisher) Publish(ctx context.Context, evt *DomainEvent) error {
	if p.writer == nil {
		return fmt.Errorf("kafka producer not initialized")
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal domain event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(evt.Key()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send domain event: %w", err)
	}

	logger.Debug("Domain event sent",
		zap.String("type", evt.Type),
		zap.Int64("aggregate_id", evt.AggregateID),
		zap.String("topic", p.topic),
	)

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}
