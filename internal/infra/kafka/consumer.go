package kafka

import (
	"context"
	"encoding/json"
	"time"

	"vidtube/pkg/logger"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventHandler 处理领域事件的回调函数
type EventHandler func(ctx context.Context, evt *DomainEvent) error

// StartEventConsumer 启动领域事件消费者（阻塞，需在 goroutine 中运行）
// ctx 取消后会自动停止
func StartEventConsumer(ctx context.Context, brokers []string, topic, groupID string, handler EventHandler) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			logger.Error("Failed to close kafka consumer", zap.Error(err))
		}
		logger.Info("Kafka event consumer stopped")
	}()

	logger.Info("Kafka event consumer started",
		zap.String("topic", topic),
		zap.String("group", groupID),
	)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}

		dispatch(ctx, msg, handler)
	}
}

func dispatch(ctx context.Context, msg kafka.Message, handler EventHandler) {
	var evt DomainEvent
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		logger.Error("Failed to unmarshal domain event",
			zap.Error(err),
			zap.ByteString("value", msg.Value),
		)
		return
	}

	logger.Debug("Received domain event",
		zap.String("type", evt.Type),
		zap.Int64("aggregate_id", evt.AggregateID),
	)

	if err := handler(ctx, &evt); err != nil {
		logger.Error("Failed to handle domain event",
			zap.String("type", evt.Type),
			zap.Int64("aggregate_id", evt.AggregateID),
			zap.Error(err),
		)
	}
}
