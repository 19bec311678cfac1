package ports

import (
	"context"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// SendMessageInput carries one outgoing chat message. ConversationID is the
// explicit session identifier supplied by the caller.
type SendMessageInput struct {
	ConversationID string
	SenderName     string
	Text           string
	Sticker        string
	FileURL        string
	FromAdmin      bool
}

// MessageRepository persists chat messages.
type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) (*domain.Message, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)
	// MarkRead flags all messages in the conversation sent by the other
	// side (fromAdmin selects whose messages are being read).
	MarkRead(ctx context.Context, conversationID string, fromAdmin bool) error
	// Summaries returns one row per conversation with the latest message
	// and the count of unread customer messages, newest conversation first.
	Summaries(ctx context.Context) ([]*domain.ConversationSummary, error)
}

// MessagePublisher fans a stored message out to live subscribers.
// Best-effort: a failed publish never fails the send.
type MessagePublisher interface {
	Publish(ctx context.Context, m *domain.Message) error
}

// MessageService defines the chat operations.
type MessageService interface {
	Send(ctx context.Context, input SendMessageInput) (*domain.Message, error)
	ListConversation(ctx context.Context, conversationID string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, conversationID string, fromAdmin bool) error
	ListConversations(ctx context.Context) ([]*domain.ConversationSummary, error)
}
