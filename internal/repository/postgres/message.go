package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
)

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	message.SentAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.ConversationID,
		message.SenderID,
		message.Body,
		message.SentAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*model.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.sent_at,
		       u.username AS sender_username
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.sent_at
	`
	var messages []*model.Message
	if err := r.db.SelectContext(ctx, &messages, query, conversationID); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}
