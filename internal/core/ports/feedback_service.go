package ports

import (
	"context"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
)

// SubmitFeedbackInput carries one customer feedback submission.
type SubmitFeedbackInput struct {
	Name    string
	Email   string
	Message string
}

// FeedbackRepository persists customer feedback.
type FeedbackRepository interface {
	Insert(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	// ListAll returns every submission, newest first.
	ListAll(ctx context.Context) ([]*domain.Feedback, error)
}

// FeedbackNotifier forwards a stored submission to the support inbox.
// Best-effort: callers log failures and move on.
type FeedbackNotifier interface {
	NotifyFeedback(ctx context.Context, name, email, message string) error
}

// FeedbackService defines the customer-feedback operations.
type FeedbackService interface {
	Submit(ctx context.Context, input SubmitFeedbackInput) (*domain.Feedback, error)
	List(ctx context.Context) ([]*domain.Feedback, error)
}
