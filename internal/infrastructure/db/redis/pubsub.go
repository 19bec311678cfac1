package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// MessagePublisher fans stored chat messages out over Redis pub/sub so a
// websocket or SSE edge can push them to connected clients. One channel per
// conversation: chat:<conversation_id>.
type MessagePublisher struct {
	client *redis.Client
}

func NewMessagePublisher(client *redis.Client) *MessagePublisher {
	return &MessagePublisher{client: client}
}

func (p *MessagePublisher) Publish(ctx context.Context, m *domain.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	return p.client.Publish(ctx, channelFor(m.ConversationID), payload).Err()
}

// Subscribe opens a subscription on one conversation's channel. The caller
// owns the returned PubSub and must close it.
func (p *MessagePublisher) Subscribe(ctx context.Context, conversationID string) *redis.PubSub {
	return p.client.Subscribe(ctx, channelFor(conversationID))
}

func channelFor(conversationID string) string {
	return "chat:" + conversationID
}
