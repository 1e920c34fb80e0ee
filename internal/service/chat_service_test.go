package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"social-service/internal/models"
	"social-service/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

type chatFixture struct {
	svc           ChatService
	conversations *fakeConversationRepo
	messages      *fakeMessageRepo
	relay         *recordingRelay
}

func newChatFixture() *chatFixture {
	messages := newFakeMessageRepo()
	conversations := newFakeConversationRepo(messages)
	users := newFakeUserRepo(
		&models.User{ID: "alice", Username: "alice"},
		&models.User{ID: "bob", Username: "bob"},
		&models.User{ID: "carol", Username: "carol"},
	)
	conversations.users = users.byID
	relay := &recordingRelay{}
	return &chatFixture{
		svc:           NewChatService(conversations, messages, users, relay, nil),
		conversations: conversations,
		messages:      messages,
		relay:         relay,
	}
}

func (f *chatFixture) seedConversation(id string, participantIDs ...string) {
	conv := &models.Conversation{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	_ = f.conversations.Create(context.Background(), conv, participantIDs)
}

func TestSendMessageEmitsToAllParticipantsIncludingSender(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")

	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)

	for _, userID := range []string{"alice", "bob"} {
		events := f.relay.eventsFor(userID)
		require.Len(t, events, 1, "expected one event for %s", userID)
		assert.Equal(t, ws.EventNewMessage, events[0].Type)
		payload := events[0].Payload.(ws.MessagePayload)
		assert.Equal(t, msg.ID, payload.Message.ID)
		assert.Equal(t, "alice", payload.Message.SenderID)
	}
}

func TestSendMessagesEmitInWriteOrder(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")

	first, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("one")})
	require.NoError(t, err)
	second, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("two")})
	require.NoError(t, err)

	events := f.relay.eventsFor("bob")
	require.Len(t, events, 2)
	assert.Equal(t, first.ID, events[0].Payload.(ws.MessagePayload).Message.ID)
	assert.Equal(t, second.ID, events[1].Payload.(ws.MessagePayload).Message.ID)
}

func TestSendMessageWriteFailureEmitsNothing(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	boom := errors.New("connection reset")
	f.messages.createErr = boom

	_, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, f.relay.emitted)
}

func TestSendMessageRelayFailureDoesNotFailTheWrite(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	f.relay.failAll = true

	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)
	assert.NotNil(t, f.messages.byID[msg.ID])
}

func TestSendMessageRejectsEmptyBody(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")

	_, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessageRequiresParticipant(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")

	_, err := f.svc.SendMessage(context.Background(), "carol", "c1", &models.SendMessageRequest{Text: str("hi")})
	assert.ErrorIs(t, err, ErrNotParticipant)
	assert.Empty(t, f.relay.emitted)
}

func TestSendMessageAdvancesConversationTimestamp(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	f.conversations.conversations["c1"].UpdatedAt = time.Now().Add(-time.Hour)

	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)
	assert.Equal(t, msg.CreatedAt, f.conversations.conversations["c1"].UpdatedAt)
}

func TestCreateConversationNotifiesEveryParticipant(t *testing.T) {
	f := newChatFixture()

	view, err := f.svc.CreateConversation(context.Background(), "alice", []string{"bob", "carol"})
	require.NoError(t, err)
	require.NotNil(t, view)

	// creator's own view excludes the creator from the participant list
	names := make([]string, 0, len(view.Participants))
	for _, p := range view.Participants {
		names = append(names, p.Username)
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	for _, userID := range []string{"alice", "bob", "carol"} {
		events := f.relay.eventsFor(userID)
		require.Len(t, events, 1, "expected one event for %s", userID)
		assert.Equal(t, ws.EventNewConversation, events[0].Type)
		payload := events[0].Payload.(ws.NewConversationPayload)
		for _, p := range payload.Conversation.Participants {
			assert.NotEqual(t, userID, p.ID, "recipient should not appear in their own summary")
		}
	}
}

func TestCreateConversationDeduplicatesParticipants(t *testing.T) {
	f := newChatFixture()

	view, err := f.svc.CreateConversation(context.Background(), "alice", []string{"bob", "bob", "alice"})
	require.NoError(t, err)

	participants := f.conversations.participants[view.ID]
	assert.ElementsMatch(t, []string{"alice", "bob"}, participants)
	assert.Len(t, f.relay.emitted, 2)
}

func TestEditMessageOnlyBySender(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)
	f.relay.emitted = nil

	_, err = f.svc.EditMessage(context.Background(), "bob", msg.ID, str("changed"))
	assert.ErrorIs(t, err, ErrNotSender)
	assert.Empty(t, f.relay.emitted)

	edited, err := f.svc.EditMessage(context.Background(), "alice", msg.ID, str("changed"))
	require.NoError(t, err)
	assert.Equal(t, "changed", *edited.Text)
	assert.NotNil(t, edited.TextUpdatedAt)

	events := f.relay.eventsFor("bob")
	require.Len(t, events, 1)
	assert.Equal(t, ws.EventMessageEdited, events[0].Type)
}

func TestDeleteMessageEmitsConversationAndMessageID(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)
	f.relay.emitted = nil

	require.ErrorIs(t, f.svc.DeleteMessage(context.Background(), "bob", msg.ID), ErrNotSender)
	require.NoError(t, f.svc.DeleteMessage(context.Background(), "alice", msg.ID))

	events := f.relay.eventsFor("bob")
	require.Len(t, events, 1)
	payload := events[0].Payload.(ws.MessageDeletedPayload)
	assert.Equal(t, "c1", payload.ConversationID)
	assert.Equal(t, msg.ID, payload.MessageID)
}

func TestMarkSeenEmitsOnlyWhenSomethingFlipped(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	msg, err := f.svc.SendMessage(context.Background(), "alice", "c1", &models.SendMessageRequest{Text: str("hi")})
	require.NoError(t, err)
	f.relay.emitted = nil

	// alice marking her own conversation seen flips nothing: the only
	// message is hers
	require.NoError(t, f.svc.MarkConversationSeen(context.Background(), "alice", "c1"))
	assert.Empty(t, f.relay.emitted)

	require.NoError(t, f.svc.MarkConversationSeen(context.Background(), "bob", "c1"))
	for _, userID := range []string{"alice", "bob"} {
		events := f.relay.eventsFor(userID)
		require.Len(t, events, 1, "expected one event for %s", userID)
		payload := events[0].Payload.(ws.MessagesSeenPayload)
		assert.Equal(t, []string{msg.ID}, payload.MessageIDs)
	}

	// repeating is a no-op
	f.relay.emitted = nil
	require.NoError(t, f.svc.MarkConversationSeen(context.Background(), "bob", "c1"))
	assert.Empty(t, f.relay.emitted)
}

func TestGetConversationReflectsLastMessage(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")
	_, err := f.svc.SendMessage(context.Background(), "bob", "c1", &models.SendMessageRequest{Text: str("latest")})
	require.NoError(t, err)

	_, err = f.svc.GetConversation(context.Background(), "carol", "c1")
	assert.ErrorIs(t, err, ErrNotParticipant)

	summary, err := f.svc.GetConversation(context.Background(), "alice", "c1")
	require.NoError(t, err)
	require.NotNil(t, summary.LastMessage)
	assert.Equal(t, "latest", *summary.LastMessage.Text)
	assert.Equal(t, "bob", summary.LastMessage.SenderUsername)
	require.Len(t, summary.Participants, 1)
	assert.Equal(t, "bob", summary.Participants[0].Username)
}

func TestListMessagesRequiresParticipant(t *testing.T) {
	f := newChatFixture()
	f.seedConversation("c1", "alice", "bob")

	_, err := f.svc.ListMessages(context.Background(), "carol", "c1", time.Now(), 20)
	assert.ErrorIs(t, err, ErrNotParticipant)
}
