package service

import (
	"context"
	"errors"
	"time"

	"social-service/internal/adapters/kafka"
	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrNotParticipant = errors.New("user is not a conversation participant")
	ErrNotSender      = errors.New("user is not the message sender")
	ErrEmptyMessage   = errors.New("message needs text or an image")
)

type ChatService interface {
	CreateConversation(ctx context.Context, creatorID string, participantIDs []string) (*models.ConversationSummary, error)
	GetConversation(ctx context.Context, userID, conversationID string) (*models.ConversationSummary, error)
	ListConversations(ctx context.Context, userID string, before time.Time, limit int) ([]*models.ConversationSummary, error)
	ListMessages(ctx context.Context, userID, conversationID string, before time.Time, limit int) ([]*models.Message, error)
	SendMessage(ctx context.Context, senderID, conversationID string, req *models.SendMessageRequest) (*models.Message, error)
	EditMessage(ctx context.Context, userID, messageID string, text *string) (*models.Message, error)
	DeleteMessage(ctx context.Context, userID, messageID string) error
	MarkConversationSeen(ctx context.Context, userID, conversationID string) error
}

type chatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	users         repository.UserRepository
	emitter
}

func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	users repository.UserRepository,
	relay EventRelay,
	journal *kafka.Journal,
) ChatService {
	return &chatService{
		conversations: conversations,
		messages:      messages,
		users:         users,
		emitter:       emitter{relay: relay, journal: journal},
	}
}

// CreateConversation writes the conversation, then pushes a NewConversation
// event to every participant. Each recipient gets a summary with themselves
// excluded from the participant list.
func (s *chatService) CreateConversation(ctx context.Context, creatorID string, participantIDs []string) (*models.ConversationSummary, error) {
	ids := dedupe(append([]string{creatorID}, participantIDs...))

	conv := &models.Conversation{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.conversations.Create(ctx, conv, ids); err != nil {
		return nil, err
	}

	users, err := s.conversations.ParticipantUsers(ctx, conv.ID)
	if err != nil {
		// The write committed; fall back to bare summaries rather than
		// failing the caller.
		users = nil
	}

	var creatorView *models.ConversationSummary
	for _, recipient := range ids {
		summary := summaryFor(conv, users, recipient, nil)
		s.emitTo([]string{recipient}, ws.NewConversationEvent(*summary))
		if recipient == creatorID {
			creatorView = summary
		}
	}
	return creatorView, nil
}

func (s *chatService) GetConversation(ctx context.Context, userID, conversationID string) (*models.ConversationSummary, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}

	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	users, err := s.conversations.ParticipantUsers(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	last, err := s.lastMessageSummary(ctx, conversationID, users)
	if err != nil {
		return nil, err
	}
	return summaryFor(conv, users, userID, last), nil
}

func (s *chatService) ListConversations(ctx context.Context, userID string, before time.Time, limit int) ([]*models.ConversationSummary, error) {
	convs, err := s.conversations.ListForUser(ctx, userID, before, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*models.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		users, err := s.conversations.ParticipantUsers(ctx, conv.ID)
		if err != nil {
			return nil, err
		}
		last, err := s.lastMessageSummary(ctx, conv.ID, users)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summaryFor(conv, users, userID, last))
	}
	return summaries, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, conversationID string, before time.Time, limit int) ([]*models.Message, error) {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return nil, err
	}
	return s.messages.ListByConversation(ctx, conversationID, before, limit)
}

// SendMessage performs the authoritative write, then emits NewMessage to
// every participant including the sender, so the sender's other devices
// stay in sync.
func (s *chatService) SendMessage(ctx context.Context, senderID, conversationID string, req *models.SendMessageRequest) (*models.Message, error) {
	if req.Text == nil && req.ImageURL == nil {
		return nil, ErrEmptyMessage
	}
	if err := s.requireParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           req.Text,
		ImageURL:       req.ImageURL,
		CreatedAt:      time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.conversations.TouchUpdatedAt(ctx, conversationID, msg.CreatedAt); err != nil {
		return nil, err
	}

	s.emitToParticipants(ctx, conversationID, ws.NewMessageEvent(*msg))
	return msg, nil
}

func (s *chatService) EditMessage(ctx context.Context, userID, messageID string, text *string) (*models.Message, error) {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != userID {
		return nil, ErrNotSender
	}

	now := time.Now()
	if err := s.messages.UpdateText(ctx, messageID, text, now); err != nil {
		return nil, err
	}
	msg.Text = text
	msg.TextUpdatedAt = &now

	s.emitToParticipants(ctx, msg.ConversationID, ws.MessageEditedEvent(*msg))
	return msg, nil
}

func (s *chatService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	msg, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return ErrNotSender
	}

	if err := s.messages.Delete(ctx, messageID); err != nil {
		return err
	}

	s.emitToParticipants(ctx, msg.ConversationID, ws.MessageDeletedEvent(msg.ConversationID, messageID))
	return nil
}

// MarkConversationSeen flips every unseen message not sent by userID, then
// tells all participants which ids changed. Nothing unseen means nothing
// to emit.
func (s *chatService) MarkConversationSeen(ctx context.Context, userID, conversationID string) error {
	if err := s.requireParticipant(ctx, conversationID, userID); err != nil {
		return err
	}

	ids, err := s.messages.MarkSeen(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	s.emitToParticipants(ctx, conversationID, ws.MessagesSeenEvent(conversationID, ids))
	return nil
}

func (s *chatService) requireParticipant(ctx context.Context, conversationID, userID string) error {
	ok, err := s.conversations.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotParticipant
	}
	return nil
}

func (s *chatService) emitToParticipants(ctx context.Context, conversationID string, event ws.Event) {
	participants, err := s.conversations.Participants(ctx, conversationID)
	if err != nil {
		// Write already committed; skipping the push leaves receivers to
		// catch up on their next fetch.
		return
	}
	s.emitTo(participants, event)
}

func (s *chatService) lastMessageSummary(ctx context.Context, conversationID string, users []*models.User) (*models.LastMessage, error) {
	msg, err := s.conversations.LastMessage(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}

	last := &models.LastMessage{Text: msg.Text, ImageURL: msg.ImageURL}
	for _, u := range users {
		if u.ID == msg.SenderID {
			last.SenderUsername = u.Username
			break
		}
	}
	return last, nil
}

func summaryFor(conv *models.Conversation, users []*models.User, viewerID string, last *models.LastMessage) *models.ConversationSummary {
	others := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		if u.ID == viewerID {
			continue
		}
		others = append(others, u.Summary())
	}
	return &models.ConversationSummary{
		ID:           conv.ID,
		Participants: others,
		LastMessage:  last,
		UpdatedAt:    conv.UpdatedAt,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
