package clientcache

import (
	"sort"
	"sync"

	"social-service/internal/models"
)

// SeenAll is the sentinel message id meaning "mark every cached message in
// the conversation seen". Point in time: messages added afterwards are not
// covered.
const SeenAll = "all"

// ChatStore is the client-side cache of conversations and their ordered
// message lists. It merges server-confirmed baselines (paginated fetches)
// with live-pushed deltas. All merge decisions key on message id, never on
// position, so a push and a baseline load are safe to apply in either
// order.
type ChatStore struct {
	mu            sync.Mutex
	conversations map[string]models.ConversationSummary
	messages      map[string][]models.Message
}

func NewChatStore() *ChatStore {
	return &ChatStore{
		conversations: make(map[string]models.ConversationSummary),
		messages:      make(map[string][]models.Message),
	}
}

// SetConversations replaces the conversation list wholesale after a fetch.
func (s *ChatStore) SetConversations(summaries []models.ConversationSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conversations = make(map[string]models.ConversationSummary, len(summaries))
	for _, summary := range summaries {
		s.conversations[summary.ID] = summary
	}
}

// UpsertConversation adds or replaces one conversation summary, keeping
// UpdatedAt monotonic.
func (s *ChatStore) UpsertConversation(summary models.ConversationSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.conversations[summary.ID]; ok && summary.UpdatedAt.Before(existing.UpdatedAt) {
		summary.UpdatedAt = existing.UpdatedAt
	}
	s.conversations[summary.ID] = summary
}

func (s *ChatStore) Conversation(conversationID string) (models.ConversationSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	summary, ok := s.conversations[conversationID]
	return summary, ok
}

func (s *ChatStore) Conversations() []models.ConversationSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ConversationSummary, 0, len(s.conversations))
	for _, summary := range s.conversations {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}

// SetMessages replaces the cached list for a conversation with a fetched
// baseline, establishing creation-time ascending order.
func (s *ChatStore) SetMessages(conversationID string, msgs []models.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]models.Message, len(msgs))
	copy(list, msgs)
	sortMessages(list)
	s.messages[conversationID] = list
	s.refreshSummary(conversationID)
}

// AddMessage appends a live-pushed message. Duplicate ids are no-ops, which
// makes push delivery idempotent: the sender's own echo or a double
// delivery cannot grow the list. Reports whether the message was new.
func (s *ChatStore) AddMessage(conversationID string, msg models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.messages[conversationID] {
		if existing.ID == msg.ID {
			return false
		}
	}
	list := append(s.messages[conversationID], msg)
	sortMessages(list)
	s.messages[conversationID] = list
	s.refreshSummary(conversationID)
	return true
}

// UpdateMessage merges an edit into the existing entry. An id not in the
// cache is a no-op so a stale edit can never resurrect a deleted message.
func (s *ChatStore) UpdateMessage(conversationID string, msg models.Message) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.messages[conversationID]
	for i := range list {
		if list[i].ID != msg.ID {
			continue
		}
		if msg.Text != nil {
			list[i].Text = msg.Text
		}
		if msg.ImageURL != nil {
			list[i].ImageURL = msg.ImageURL
		}
		if msg.TextUpdatedAt != nil {
			list[i].TextUpdatedAt = msg.TextUpdatedAt
		}
		if msg.Seen {
			list[i].Seen = true
		}
		s.refreshSummary(conversationID)
		return true
	}
	return false
}

// RemoveMessage filters the id out; removing an absent id is a no-op.
func (s *ChatStore) RemoveMessage(conversationID, messageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.messages[conversationID]
	kept := list[:0]
	for _, msg := range list {
		if msg.ID != messageID {
			kept = append(kept, msg)
		}
	}
	s.messages[conversationID] = kept
	s.refreshSummary(conversationID)
}

// MarkMessagesSeen sets seen on the given ids, or on every cached message
// when the set contains SeenAll.
func (s *ChatStore) MarkMessagesSeen(conversationID string, messageIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := false
	wanted := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		if id == SeenAll {
			all = true
			break
		}
		wanted[id] = true
	}

	list := s.messages[conversationID]
	for i := range list {
		if all || wanted[list[i].ID] {
			list[i].Seen = true
		}
	}
}

// Messages returns a copy of the cached list in creation order.
func (s *ChatStore) Messages(conversationID string) []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.messages[conversationID]
	out := make([]models.Message, len(list))
	copy(out, list)
	return out
}

// refreshSummary recomputes the conversation's lastMessage/updatedAt from
// the current list. Caller holds the lock. An emptied list keeps the old
// timestamp: UpdatedAt never moves backward.
func (s *ChatStore) refreshSummary(conversationID string) {
	summary, ok := s.conversations[conversationID]
	if !ok {
		return
	}

	list := s.messages[conversationID]
	if len(list) == 0 {
		summary.LastMessage = nil
		s.conversations[conversationID] = summary
		return
	}

	last := list[len(list)-1]
	lm := &models.LastMessage{Text: last.Text, ImageURL: last.ImageURL}
	for _, p := range summary.Participants {
		if p.ID == last.SenderID {
			lm.SenderUsername = p.Username
			break
		}
	}
	summary.LastMessage = lm
	if last.CreatedAt.After(summary.UpdatedAt) {
		summary.UpdatedAt = last.CreatedAt
	}
	s.conversations[conversationID] = summary
}

// sortMessages orders ascending by CreatedAt. The sort is stable so arrival
// order breaks ties, which is the guarantee receivers rely on when two
// messages share a timestamp.
func sortMessages(list []models.Message) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
}
