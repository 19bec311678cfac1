package domain

import (
	"errors"
	"time"
)

var ErrEmptyMessage = errors.New("message has no content")

// Message is a single chat entry. A conversation is keyed by an opaque
// user identifier supplied by the caller; there is no ambient client id.
// Exactly one of Text, Sticker, FileURL is expected, though the store does
// not enforce exclusivity.
type Message struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	ConversationID string    `json:"conversation_id" bson:"conversation_id"`
	SenderName     string    `json:"sender_name,omitempty" bson:"sender_name,omitempty"`
	Text           string    `json:"text,omitempty" bson:"text,omitempty"`
	Sticker        string    `json:"sticker,omitempty" bson:"sticker,omitempty"`
	FileURL        string    `json:"file_url,omitempty" bson:"file_url,omitempty"`
	FromAdmin      bool      `json:"from_admin" bson:"from_admin"`
	Read           bool      `json:"read" bson:"read"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// ConversationSummary is the staff-inbox view of one conversation.
type ConversationSummary struct {
	ConversationID string    `json:"conversation_id"`
	SenderName     string    `json:"sender_name,omitempty"`
	LastMessage    string    `json:"last_message"`
	LastAt         time.Time `json:"last_at"`
	UnreadCount    int       `json:"unread_count"`
}

// Preview returns the short text shown in conversation lists.
func (m Message) Preview() string {
	switch {
	case m.Sticker != "":
		return m.Sticker
	case m.Text != "":
		return m.Text
	case m.FileURL != "":
		return "attachment"
	}
	return ""
}
