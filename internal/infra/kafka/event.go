package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 领域事件类型
const (
	EventVideoPublished      = "video.published"
	EventVideoUpdated        = "video.updated"
	EventVideoDeleted        = "video.deleted"
	EventCommentCreated      = "comment.created"
	EventLikeToggled         = "like.toggled"
	EventSubscriptionToggled = "subscription.toggled"
)

// DomainEvent 写操作成功后发布的事件
type DomainEvent struct {
	EventID     string          `json:"event_id"`
	Type        string          `json:"type"`
	AggregateID int64           `json:"aggregate_id"`
	ActorID     int64           `json:"actor_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}

// NewEvent 构造事件，payload 为 nil 时不携带负载
func NewEvent(eventType string, aggregateID, actorID int64, payload any) (*DomainEvent, error) {
	evt := &DomainEvent{
		EventID:     uuid.New().String(),
		Type:        eventType,
		AggregateID: aggregateID,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		evt.Payload = raw
	}
	return evt, nil
}

// Key 同一聚合的事件落在同一分区，保证顺序
func (e *DomainEvent) Key() string {
	return fmt.Sprintf("%s-%d", e.Type, e.AggregateID)
}

// VideoPayload 视频事件负载
type VideoPayload struct {
	OwnerID     int64  `json:"owner_id"`
	Title       string `json:"title,omitempty"`
	IsPublished bool   `json:"is_published"`
}

// TogglePayload 开关类事件负载
type TogglePayload struct {
	TargetType string `json:"target_type"`
	State      bool   `json:"state"`
}
