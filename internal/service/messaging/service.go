package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/pkg/apperror"
)

// Service owns conversations and their messages. All visibility is
// membership-based: non-participants see empty results, never errors, so a
// conversation's existence is not revealed.
type Service struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
}

func NewService(conversations repository.ConversationRepository,
	messages repository.MessageRepository, users repository.UserRepository) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		users:         users,
	}
}

// CreateConversation starts a conversation between the caller and the given
// participants. Every participant id must resolve to an existing user.
// Conversations with identical participant sets are not deduplicated.
func (s *Service) CreateConversation(ctx context.Context, userID uuid.UUID, participantIDs []uuid.UUID) (*model.Conversation, error) {
	members := map[uuid.UUID]struct{}{userID: {}}
	for _, id := range participantIDs {
		members[id] = struct{}{}
	}

	ids := make([]uuid.UUID, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}

	existing, err := s.users.FilterExisting(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participants: %w", err)
	}
	if len(existing) != len(ids) {
		return nil, apperror.NotFound("participant")
	}

	conversation := &model.Conversation{ID: uuid.New()}
	if err := s.conversations.Create(ctx, conversation, ids); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("participant")
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return s.conversations.Get(ctx, conversation.ID)
}

// ListConversations returns the caller's conversations, most recently
// updated first.
func (s *Service) ListConversations(ctx context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	return s.conversations.ListForUser(ctx, userID)
}

// ListMessages returns the conversation's messages in send order, or an
// empty list when the caller is not a participant (including when the
// conversation does not exist).
func (s *Service) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) ([]*model.Message, error) {
	member, err := s.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		return []*model.Message{}, nil
	}

	return s.messages.ListByConversation(ctx, conversationID)
}

// PostMessage appends a message. The sender is always the caller, regardless
// of the request payload, and must be a current participant.
func (s *Service) PostMessage(ctx context.Context, userID, conversationID uuid.UUID, body string) (*model.Message, error) {
	member, err := s.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !member {
		// Covers both a missing conversation and a non-participant.
		return nil, apperror.NotFound("conversation")
	}

	message := &model.Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		if errors.Is(err, repository.ErrMissingReference) {
			return nil, apperror.NotFound("conversation")
		}
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	if err := s.conversations.Touch(ctx, conversationID, message.SentAt); err != nil {
		log.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to bump conversation")
	}
	return message, nil
}
