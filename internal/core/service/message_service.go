package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

// MessageService implements the customer/staff chat. Conversations are
// keyed by an explicit identifier supplied with every call; the service
// keeps no ambient session state.
type MessageService struct {
	repo      ports.MessageRepository
	publisher ports.MessagePublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewMessageService(repo ports.MessageRepository, publisher ports.MessagePublisher, logger zerolog.Logger) *MessageService {
	return &MessageService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Send stores a message and fans it out to live subscribers. The publish is
// best-effort; a subscriber outage never loses the stored message.
func (s *MessageService) Send(ctx context.Context, input ports.SendMessageInput) (*domain.Message, error) {
	conversationID := strings.TrimSpace(input.ConversationID)
	if conversationID == "" {
		return nil, fmt.Errorf("send message: missing conversation id")
	}
	if strings.TrimSpace(input.Text) == "" && input.Sticker == "" && input.FileURL == "" {
		return nil, fmt.Errorf("send message: %w", domain.ErrEmptyMessage)
	}

	msg := &domain.Message{
		ConversationID: conversationID,
		SenderName:     strings.TrimSpace(input.SenderName),
		Text:           strings.TrimSpace(input.Text),
		Sticker:        input.Sticker,
		FileURL:        input.FileURL,
		FromAdmin:      input.FromAdmin,
		Read:           false,
		CreatedAt:      s.now(),
	}

	stored, err := s.repo.Insert(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, stored); err != nil {
			s.logger.Warn().Err(err).Str("conversation", conversationID).Msg("message publish failed")
		}
	}

	return stored, nil
}

func (s *MessageService) ListConversation(ctx context.Context, conversationID string) ([]*domain.Message, error) {
	messages, err := s.repo.ListByConversation(ctx, strings.TrimSpace(conversationID))
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	return messages, nil
}

// MarkRead flags the other side's messages as read. fromAdmin selects
// whose messages are being acknowledged: true marks admin messages read
// (the customer opened the widget), false marks customer messages read.
func (s *MessageService) MarkRead(ctx context.Context, conversationID string, fromAdmin bool) error {
	if err := s.repo.MarkRead(ctx, strings.TrimSpace(conversationID), fromAdmin); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}

func (s *MessageService) ListConversations(ctx context.Context) ([]*domain.ConversationSummary, error) {
	summaries, err := s.repo.Summaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return summaries, nil
}
