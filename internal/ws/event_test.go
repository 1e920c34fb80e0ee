package ws

import (
	"encoding/json"
	"testing"
	"time"

	"social-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEventRestoresTypedPayload(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	msg := models.Message{
		ID:             "m1",
		ConversationID: "c1",
		SenderID:       "u1",
		CreatedAt:      now,
	}
	data, err := json.Marshal(NewMessageEvent(msg))
	require.NoError(t, err)

	ev, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, EventNewMessage, ev.Type)

	payload, ok := ev.Payload.(MessagePayload)
	require.True(t, ok)
	assert.Equal(t, "m1", payload.Message.ID)
	assert.Equal(t, "c1", payload.Message.ConversationID)
	assert.True(t, now.Equal(payload.Message.CreatedAt))
}

func TestDecodeEventRejectsUnknownType(t *testing.T) {
	_, err := DecodeEvent([]byte(`{"type":"mystery","payload":{}}`))
	assert.Error(t, err)
}

func TestEventTypeValidity(t *testing.T) {
	assert.True(t, EventMessagesSeen.IsValid())
	assert.True(t, EventOnlineUsers.IsValid())
	assert.False(t, EventType("channel.join").IsValid())
}

func TestMessagesSeenEventCarriesIDs(t *testing.T) {
	data, err := json.Marshal(MessagesSeenEvent("c1", []string{"m1", "m2"}))
	require.NoError(t, err)

	ev, err := DecodeEvent(data)
	require.NoError(t, err)

	payload := ev.Payload.(MessagesSeenPayload)
	assert.Equal(t, "c1", payload.ConversationID)
	assert.Equal(t, []string{"m1", "m2"}, payload.MessageIDs)
}
