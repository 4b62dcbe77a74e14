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

type conversationRepository struct {
	db *sqlx.DB
}

func NewConversationRepository(db *sqlx.DB) repository.ConversationRepository {
	return &conversationRepository{db: db}
}

func (r *conversationRepository) Create(ctx context.Context, conversation *model.Conversation, participantIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now

	query := `INSERT INTO conversations (id, created_at, updated_at) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, conversation.ID, conversation.CreatedAt, conversation.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	insert := `INSERT INTO conversation_participants (conversation_id, user_id) VALUES ($1, $2)`
	for _, userID := range participantIDs {
		if _, err := tx.ExecContext(ctx, insert, conversation.ID, userID); err != nil {
			if translated := translateError(err); translated != err {
				return translated
			}
			return fmt.Errorf("failed to add participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit conversation: %w", err)
	}
	return nil
}

func (r *conversationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	query := `SELECT id, created_at, updated_at FROM conversations WHERE id = $1`
	var conversation model.Conversation
	if err := r.db.GetContext(ctx, &conversation, query, id); err != nil {
		return nil, translateError(err)
	}

	participants, err := r.listParticipants(ctx, id)
	if err != nil {
		return nil, err
	}
	conversation.Participants = participants
	return &conversation, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	query := `
		SELECT c.id, c.created_at, c.updated_at
		FROM conversations c
		JOIN conversation_participants cp ON cp.conversation_id = c.id
		WHERE cp.user_id = $1
		ORDER BY c.updated_at DESC
	`
	var conversations []*model.Conversation
	if err := r.db.SelectContext(ctx, &conversations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	for _, conversation := range conversations {
		participants, err := r.listParticipants(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}
		conversation.Participants = participants
	}
	return conversations, nil
}

func (r *conversationRepository) listParticipants(ctx context.Context, conversationID uuid.UUID) ([]model.Participant, error) {
	query := `
		SELECT u.id, u.username, u.email
		FROM users u
		JOIN conversation_participants cp ON cp.user_id = u.id
		WHERE cp.conversation_id = $1
		ORDER BY u.username
	`
	var participants []model.Participant
	if err := r.db.SelectContext(ctx, &participants, query, conversationID); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	return participants, nil
}

func (r *conversationRepository) IsParticipant(ctx context.Context, conversationID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM conversation_participants WHERE conversation_id = $1 AND user_id = $2
	)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, conversationID, userID); err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}
	return exists, nil
}

func (r *conversationRepository) Touch(ctx context.Context, conversationID uuid.UUID, at time.Time) error {
	query := `UPDATE conversations SET updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, at, conversationID); err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	return nil
}
