package messaging

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthbridge/records-api/internal/model"
	"github.com/healthbridge/records-api/internal/repository"
	"github.com/healthbridge/records-api/pkg/apperror"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Get(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FilterExisting(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range ids {
		if _, ok := f.users[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*model.Conversation
	members       map[uuid.UUID][]uuid.UUID
	touched       map[uuid.UUID]time.Time
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[uuid.UUID]*model.Conversation),
		members:       make(map[uuid.UUID][]uuid.UUID),
		touched:       make(map[uuid.UUID]time.Time),
	}
}

func (f *fakeConversationRepo) Create(_ context.Context, c *model.Conversation, participantIDs []uuid.UUID) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	f.conversations[c.ID] = c
	f.members[c.ID] = participantIDs
	return nil
}

func (f *fakeConversationRepo) Get(_ context.Context, id uuid.UUID) (*model.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Participants = nil
	for _, uid := range f.members[id] {
		c.Participants = append(c.Participants, model.Participant{ID: uid})
	}
	return c, nil
}

// ListForUser returns the member's conversations most recently updated
// first, matching the store's ordering contract.
func (f *fakeConversationRepo) ListForUser(_ context.Context, userID uuid.UUID) ([]*model.Conversation, error) {
	out := []*model.Conversation{}
	for id, uids := range f.members {
		for _, uid := range uids {
			if uid == userID {
				out = append(out, f.conversations[id])
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (f *fakeConversationRepo) IsParticipant(_ context.Context, conversationID, userID uuid.UUID) (bool, error) {
	for _, uid := range f.members[conversationID] {
		if uid == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConversationRepo) Touch(_ context.Context, conversationID uuid.UUID, at time.Time) error {
	f.touched[conversationID] = at
	if c, ok := f.conversations[conversationID]; ok {
		c.UpdatedAt = at
	}
	return nil
}

type fakeMessageRepo struct {
	messages []*model.Message
}

func (f *fakeMessageRepo) Create(_ context.Context, m *model.Message) error {
	m.SentAt = time.Now()
	f.messages = append(f.messages, m)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID uuid.UUID) ([]*model.Message, error) {
	out := []*model.Message{}
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fixture struct {
	svc           *Service
	users         *fakeUserRepo
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo

	alice uuid.UUID
	bob   uuid.UUID
	carol uuid.UUID
}

func newFixture() *fixture {
	users := &fakeUserRepo{users: make(map[uuid.UUID]*model.User)}
	conversations := newFakeConversationRepo()
	messages := &fakeMessageRepo{}

	f := &fixture{
		svc:           NewService(conversations, messages, users),
		users:         users,
		conversations: conversations,
		messages:      messages,
		alice:         uuid.New(),
		bob:           uuid.New(),
		carol:         uuid.New(),
	}
	for _, id := range []uuid.UUID{f.alice, f.bob, f.carol} {
		users.users[id] = &model.User{ID: id}
	}
	return f
}

func TestCreateConversationIncludesCaller(t *testing.T) {
	f := newFixture()

	conversation, err := f.svc.CreateConversation(context.Background(), f.alice, []uuid.UUID{f.bob, f.bob})
	require.NoError(t, err)

	members := f.conversations.members[conversation.ID]
	assert.Len(t, members, 2)
	assert.Contains(t, members, f.alice)
	assert.Contains(t, members, f.bob)
}

func TestCreateConversationUnknownParticipant(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateConversation(context.Background(), f.alice, []uuid.UUID{uuid.New()})
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestListMessagesMembershipGated(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conversation, err := f.svc.CreateConversation(ctx, f.alice, []uuid.UUID{f.bob})
	require.NoError(t, err)

	_, err = f.svc.PostMessage(ctx, f.alice, conversation.ID, "hello")
	require.NoError(t, err)

	visible, err := f.svc.ListMessages(ctx, f.bob, conversation.ID)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	// Non-participants get an empty list, not an error.
	hidden, err := f.svc.ListMessages(ctx, f.carol, conversation.ID)
	require.NoError(t, err)
	assert.Empty(t, hidden)

	// Same for a conversation that does not exist at all.
	missing, err := f.svc.ListMessages(ctx, f.alice, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestListConversationsRecencyOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	older, err := f.svc.CreateConversation(ctx, f.alice, []uuid.UUID{f.bob})
	require.NoError(t, err)
	newer, err := f.svc.CreateConversation(ctx, f.alice, []uuid.UUID{f.carol})
	require.NoError(t, err)

	listed, err := f.svc.ListConversations(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)

	// Posting into the older conversation bumps it back to the top.
	_, err = f.svc.PostMessage(ctx, f.alice, older.ID, "ping")
	require.NoError(t, err)

	listed, err = f.svc.ListConversations(ctx, f.alice)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, older.ID, listed[0].ID)
}

func TestPostMessage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	conversation, err := f.svc.CreateConversation(ctx, f.alice, []uuid.UUID{f.bob})
	require.NoError(t, err)

	message, err := f.svc.PostMessage(ctx, f.bob, conversation.ID, "how are you?")
	require.NoError(t, err)
	assert.Equal(t, f.bob, message.SenderID)
	assert.Equal(t, "how are you?", message.Body)
	assert.False(t, f.conversations.touched[conversation.ID].IsZero())

	_, err = f.svc.PostMessage(ctx, f.carol, conversation.ID, "let me in")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	_, err = f.svc.PostMessage(ctx, f.alice, uuid.New(), "anyone?")
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
