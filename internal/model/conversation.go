package model

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a multi-participant message thread. Participant order is
// irrelevant; membership gates all visibility.
type Conversation struct {
	ID           uuid.UUID     `db:"id" json:"id"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at" json:"updated_at"`
	Participants []Participant `json:"participants"`
}

// Participant is the projection of a conversation member.
type Participant struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`
}

type Message struct {
	ID             uuid.UUID `db:"id" json:"id"`
	ConversationID uuid.UUID `db:"conversation_id" json:"conversation_id"`
	SenderID       uuid.UUID `db:"sender_id" json:"sender_id"`
	SenderUsername string    `db:"sender_username" json:"sender_username,omitempty"`
	Body           string    `db:"body" json:"message"`
	SentAt         time.Time `db:"sent_at" json:"sent_at"`
}

type CreateConversationRequest struct {
	Participants []uuid.UUID `json:"participants" binding:"required,min=1"`
}

type PostMessageRequest struct {
	Body string `json:"message" binding:"required"`
}
