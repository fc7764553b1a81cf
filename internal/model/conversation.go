package model

import "time"

// SenderType identifies who wrote a chat message.
type SenderType string

const (
	// SenderUser is a message typed by the customer.
	SenderUser SenderType = "user"
	// SenderBot is a composed reply.
	SenderBot SenderType = "bot"
)

// Conversation is a chat session thread.
type Conversation struct {
	StartedAt time.Time `json:"started_at"`
	SessionID string    `json:"session_id"`
	ID        int64     `json:"conversation_id"`
	UserID    int64     `json:"user_id,omitempty"`
	IsActive  bool      `json:"is_active"`
}

// Message is one persisted chat turn.
type Message struct {
	CreatedAt       time.Time            `json:"created_at"`
	Intent          *Intent              `json:"intent,omitempty"`
	Confidence      *float64             `json:"confidence,omitempty"`
	Sender          SenderType           `json:"sender_type"`
	Text            string               `json:"message"`
	Recommendations []ChatRecommendation `json:"recommendations,omitempty"`
	ID              int64                `json:"message_id"`
	ConversationID  int64                `json:"conversation_id"`
}

// ChatRecommendation is a product attached to a bot message.
type ChatRecommendation struct {
	CreatedAt time.Time `json:"created_at"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Reason    string    `json:"reason"`
	ImageURL  string    `json:"image_url,omitempty"`
	ID        int64     `json:"recommendation_id"`
	MessageID int64     `json:"message_id"`
	ProductID int64     `json:"product_id"`
	Price     float64   `json:"price"`
	Score     float64   `json:"score"`
}

// UserPreference is a remembered customer preference.
type UserPreference struct {
	UpdatedAt  time.Time `json:"updated_at"`
	Type       string    `json:"preference_type"`
	Value      string    `json:"preference_value"`
	ID         int64     `json:"preference_id"`
	UserID     int64     `json:"user_id"`
	Confidence float64   `json:"confidence"`
}
