package clientcache

import (
	"sort"
	"sync"

	"social-service/internal/models"
	"social-service/internal/ws"
)

// Store is the full client-side state for one signed-in user: the chat
// cache, the locally cached notifications, the unread badges, and the
// online-user set. ApplyEvent is the single entry point for live pushes.
type Store struct {
	userID string

	Chat          *ChatStore
	Messages      *BadgeCounter
	Notifications *BadgeCounter

	mu            sync.Mutex
	notifications []models.Notification
	online        map[string]bool
}

func NewStore(userID string) *Store {
	return &Store{
		userID:        userID,
		Chat:          NewChatStore(),
		Messages:      NewBadgeCounter(),
		Notifications: NewBadgeCounter(),
		online:        make(map[string]bool),
	}
}

// ApplyEvent merges one live-pushed event into local state. Events are
// idempotent here: replays and echoes of our own writes change nothing.
func (s *Store) ApplyEvent(event ws.Event) {
	switch payload := event.Payload.(type) {
	case ws.MessagePayload:
		switch event.Type {
		case ws.EventNewMessage:
			added := s.Chat.AddMessage(payload.Message.ConversationID, payload.Message)
			if added && payload.Message.SenderID != s.userID {
				s.Messages.Increment()
			}
		case ws.EventMessageEdited:
			s.Chat.UpdateMessage(payload.Message.ConversationID, payload.Message)
		}

	case ws.MessageDeletedPayload:
		s.Chat.RemoveMessage(payload.ConversationID, payload.MessageID)

	case ws.MessagesSeenPayload:
		s.Chat.MarkMessagesSeen(payload.ConversationID, payload.MessageIDs)

	case ws.NewConversationPayload:
		s.Chat.UpsertConversation(payload.Conversation)

	case ws.NewNotificationPayload:
		if s.addNotification(payload.Notification) {
			s.Notifications.Increment()
		}

	case ws.NotificationReadPayload:
		s.markNotificationRead(payload.NotificationID)

	case ws.OnlineUsersPayload:
		s.setOnline(payload.UserIDs)
	}
}

// SetNotifications replaces the local list after a paginated fetch.
func (s *Store) SetNotifications(ns []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notifications = make([]models.Notification, len(ns))
	copy(s.notifications, ns)
	sort.SliceStable(s.notifications, func(i, j int) bool {
		return s.notifications[i].CreatedAt.After(s.notifications[j].CreatedAt)
	})
}

func (s *Store) NotificationList() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) addNotification(n models.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.notifications {
		if existing.ID == n.ID {
			return false
		}
	}
	s.notifications = append([]models.Notification{n}, s.notifications...)
	return true
}

func (s *Store) markNotificationRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return
		}
	}
}

func (s *Store) setOnline(userIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.online = make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		s.online[id] = true
	}
}

// IsOnline renders the presence indicator for a user.
func (s *Store) IsOnline(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.online[userID]
}
