package ws

import (
	"encoding/json"
	"fmt"
	"time"

	"social-service/internal/models"
)

// EventType identifies a live-push event on the wire.
type EventType string

const (
	EventNewNotification  EventType = "notification.new"
	EventNotificationRead EventType = "notification.read"
	EventNewMessage       EventType = "message.new"
	EventMessageEdited    EventType = "message.edited"
	EventMessageDeleted   EventType = "message.deleted"
	EventMessagesSeen     EventType = "messages.seen"
	EventNewConversation  EventType = "conversation.new"
	EventOnlineUsers      EventType = "presence.online_users"
)

func (et EventType) String() string {
	return string(et)
}

func (et EventType) IsValid() bool {
	switch et {
	case EventNewNotification, EventNotificationRead, EventNewMessage,
		EventMessageEdited, EventMessageDeleted, EventMessagesSeen,
		EventNewConversation, EventOnlineUsers:
		return true
	default:
		return false
	}
}

// Event is the closed union pushed to clients. Payload holds exactly one of
// the *Payload structs below, matching Type. Events are ephemeral: they are
// never persisted and reach only currently-open connections.
type Event struct {
	Type      EventType   `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

type NewNotificationPayload struct {
	Notification models.Notification `json:"notification"`
	Actor        models.UserSummary  `json:"actor"`
}

type NotificationReadPayload struct {
	NotificationID string `json:"notificationId"`
}

type MessagePayload struct {
	Message models.Message `json:"message"`
}

type MessageDeletedPayload struct {
	ConversationID string `json:"conversationId"`
	MessageID      string `json:"messageId"`
}

type MessagesSeenPayload struct {
	ConversationID string   `json:"conversationId"`
	MessageIDs     []string `json:"messageIds"`
}

type NewConversationPayload struct {
	Conversation models.ConversationSummary `json:"conversation"`
}

type OnlineUsersPayload struct {
	UserIDs []string `json:"userIds"`
}

func newEvent(t EventType, payload interface{}) Event {
	return Event{Type: t, Payload: payload, Timestamp: time.Now().Unix()}
}

func NewNotificationEvent(n models.Notification, actor models.UserSummary) Event {
	return newEvent(EventNewNotification, NewNotificationPayload{Notification: n, Actor: actor})
}

func NotificationReadEvent(notificationID string) Event {
	return newEvent(EventNotificationRead, NotificationReadPayload{NotificationID: notificationID})
}

func NewMessageEvent(m models.Message) Event {
	return newEvent(EventNewMessage, MessagePayload{Message: m})
}

func MessageEditedEvent(m models.Message) Event {
	return newEvent(EventMessageEdited, MessagePayload{Message: m})
}

func MessageDeletedEvent(conversationID, messageID string) Event {
	return newEvent(EventMessageDeleted, MessageDeletedPayload{ConversationID: conversationID, MessageID: messageID})
}

func MessagesSeenEvent(conversationID string, messageIDs []string) Event {
	return newEvent(EventMessagesSeen, MessagesSeenPayload{ConversationID: conversationID, MessageIDs: messageIDs})
}

func NewConversationEvent(c models.ConversationSummary) Event {
	return newEvent(EventNewConversation, NewConversationPayload{Conversation: c})
}

func OnlineUsersEvent(userIDs []string) Event {
	return newEvent(EventOnlineUsers, OnlineUsersPayload{UserIDs: userIDs})
}

// DecodeEvent parses a wire frame back into an Event with its typed payload,
// so receivers can switch on Payload exhaustively.
func DecodeEvent(data []byte) (Event, error) {
	var frame struct {
		Type      EventType       `json:"type"`
		Payload   json.RawMessage `json:"payload"`
		Timestamp int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &frame); err != nil {
		return Event{}, err
	}

	ev := Event{Type: frame.Type, Timestamp: frame.Timestamp}
	var err error
	switch frame.Type {
	case EventNewNotification:
		var p NewNotificationPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventNotificationRead:
		var p NotificationReadPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventNewMessage, EventMessageEdited:
		var p MessagePayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventMessageDeleted:
		var p MessageDeletedPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventMessagesSeen:
		var p MessagesSeenPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventNewConversation:
		var p NewConversationPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	case EventOnlineUsers:
		var p OnlineUsersPayload
		err = json.Unmarshal(frame.Payload, &p)
		ev.Payload = p
	default:
		return Event{}, fmt.Errorf("unknown event type: %s", frame.Type)
	}
	if err != nil {
		return Event{}, err
	}
	return ev, nil
}
