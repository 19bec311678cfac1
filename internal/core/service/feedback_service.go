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

// FeedbackService stores customer feedback and forwards each submission to
// the support inbox.
type FeedbackService struct {
	repo     ports.FeedbackRepository
	notifier ports.FeedbackNotifier
	logger   zerolog.Logger
	now      func() time.Time
}

func NewFeedbackService(repo ports.FeedbackRepository, notifier ports.FeedbackNotifier, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores the feedback and emails the support inbox. The email is
// best-effort; an SMTP outage never loses the stored submission.
func (s *FeedbackService) Submit(ctx context.Context, input ports.SubmitFeedbackInput) (*domain.Feedback, error) {
	feedback := &domain.Feedback{
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Message:   strings.TrimSpace(input.Message),
		CreatedAt: s.now(),
	}
	if feedback.Name == "" || feedback.Email == "" || feedback.Message == "" {
		return nil, fmt.Errorf("submit feedback: %w", domain.ErrEmptyFeedback)
	}

	stored, err := s.repo.Insert(ctx, feedback)
	if err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyFeedback(ctx, stored.Name, stored.Email, stored.Message); err != nil {
			s.logger.Warn().Err(err).Str("email", stored.Email).Msg("feedback notification failed")
		}
	}

	return stored, nil
}

func (s *FeedbackService) List(ctx context.Context) ([]*domain.Feedback, error) {
	feedbacks, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return feedbacks, nil
}
