package domain

import (
	"errors"
	"time"
)

var ErrEmptyFeedback = errors.New("feedback requires name, email, and message")

// Feedback is a customer-submitted note about the service. Submissions are
// listed in the staff dashboard and forwarded to the support inbox.
type Feedback struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
