package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"social-service/internal/models"
	"social-service/internal/ws"

	"gorm.io/gorm"
)

// recordingRelay captures every emit in call order.
type recordingRelay struct {
	emitted []emittedEvent
	failAll bool
}

type emittedEvent struct {
	userID string
	event  ws.Event
}

func (r *recordingRelay) Emit(userID string, event ws.Event) error {
	if r.failAll {
		return errors.New("relay down")
	}
	r.emitted = append(r.emitted, emittedEvent{userID: userID, event: event})
	return nil
}

func (r *recordingRelay) Broadcast(event ws.Event) error {
	return r.Emit("*", event)
}

func (r *recordingRelay) eventsFor(userID string) []ws.Event {
	var out []ws.Event
	for _, e := range r.emitted {
		if e.userID == userID {
			out = append(out, e.event)
		}
	}
	return out
}

// fakeConversationRepo keeps conversations and participant sets in memory.
type fakeConversationRepo struct {
	conversations map[string]*models.Conversation
	participants  map[string][]string
	users         map[string]*models.User
	messages      *fakeMessageRepo
}

func newFakeConversationRepo(messages *fakeMessageRepo) *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*models.Conversation),
		participants:  make(map[string][]string),
		users:         make(map[string]*models.User),
		messages:      messages,
	}
}

func (f *fakeConversationRepo) Create(_ context.Context, conv *models.Conversation, participantIDs []string) error {
	stored := *conv
	f.conversations[conv.ID] = &stored
	f.participants[conv.ID] = append([]string{}, participantIDs...)
	return nil
}

func (f *fakeConversationRepo) FindByID(_ context.Context, id string) (*models.Conversation, error) {
	conv, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return conv, nil
}

func (f *fakeConversationRepo) ListForUser(_ context.Context, userID string, before time.Time, limit int) ([]*models.Conversation, error) {
	var out []*models.Conversation
	for id, conv := range f.conversations {
		for _, p := range f.participants[id] {
			if p == userID && conv.UpdatedAt.Before(before) {
				out = append(out, conv)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) Participants(_ context.Context, conversationID string) ([]string, error) {
	return append([]string{}, f.participants[conversationID]...), nil
}

func (f *fakeConversationRepo) ParticipantUsers(_ context.Context, conversationID string) ([]*models.User, error) {
	var out []*models.User
	for _, id := range f.participants[conversationID] {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		} else {
			out = append(out, &models.User{ID: id, Username: id})
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	for _, p := range f.participants[conversationID] {
		if p == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeConversationRepo) TouchUpdatedAt(_ context.Context, conversationID string, at time.Time) error {
	conv, ok := f.conversations[conversationID]
	if ok && conv.UpdatedAt.Before(at) {
		conv.UpdatedAt = at
	}
	return nil
}

func (f *fakeConversationRepo) LastMessage(_ context.Context, conversationID string) (*models.Message, error) {
	var last *models.Message
	for _, m := range f.messages.byID {
		if m.ConversationID != conversationID {
			continue
		}
		if last == nil || m.CreatedAt.After(last.CreatedAt) {
			last = m
		}
	}
	return last, nil
}

type fakeMessageRepo struct {
	byID      map[string]*models.Message
	createErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{byID: make(map[string]*models.Message)}
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *models.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *msg
	f.byID[msg.ID] = &stored
	return nil
}

func (f *fakeMessageRepo) FindByID(_ context.Context, id string) (*models.Message, error) {
	msg, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *msg
	return &found, nil
}

func (f *fakeMessageRepo) ListByConversation(_ context.Context, conversationID string, before time.Time, limit int) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range f.byID {
		if m.ConversationID == conversationID && m.CreatedAt.Before(before) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) UpdateText(_ context.Context, id string, text *string, at time.Time) error {
	msg, ok := f.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	msg.Text = text
	msg.TextUpdatedAt = &at
	return nil
}

func (f *fakeMessageRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeMessageRepo) MarkSeen(_ context.Context, conversationID, exceptSenderID string) ([]string, error) {
	var flipped []string
	for id, m := range f.byID {
		if m.ConversationID == conversationID && m.SenderID != exceptSenderID && !m.Seen {
			m.Seen = true
			flipped = append(flipped, id)
		}
	}
	return flipped, nil
}

type fakeNotificationRepo struct {
	byID      map[string]*models.Notification
	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: make(map[string]*models.Notification)}
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	stored := *n
	f.byID[n.ID] = &stored
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id string) (*models.Notification, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := *n
	return &found, nil
}

func (f *fakeNotificationRepo) ListForUser(_ context.Context, userID string, before time.Time, limit int) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range f.byID {
		if n.UserID == userID && n.CreatedAt.Before(before) {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := f.byID[id]; ok {
		now := time.Now()
		n.Read = true
		n.ReadAt = &now
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	now := time.Now()
	for _, n := range f.byID {
		if n.UserID == userID && !n.Read {
			n.Read = true
			n.ReadAt = &now
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range f.byID {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) PurgeRead(_ context.Context, olderThan time.Time) (int64, error) {
	var purged int64
	for id, n := range f.byID {
		if n.Read && n.ReadAt != nil && n.ReadAt.Before(olderThan) {
			delete(f.byID, id)
			purged++
		}
	}
	return purged, nil
}

type fakePostRepo struct {
	posts   map[string]*models.Post
	replies map[string]*models.Reply
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*models.Post), replies: make(map[string]*models.Reply)}
}

func (f *fakePostRepo) Create(_ context.Context, p *models.Post) error {
	stored := *p
	f.posts[p.ID] = &stored
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePostRepo) CreateReply(_ context.Context, reply *models.Reply) error {
	stored := *reply
	f.replies[reply.ID] = &stored
	return nil
}

type fakeFollowRepo struct {
	byID map[string]*models.Follow
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{byID: make(map[string]*models.Follow)}
}

func (f *fakeFollowRepo) Create(_ context.Context, follow *models.Follow) error {
	stored := *follow
	f.byID[follow.ID] = &stored
	return nil
}

func (f *fakeFollowRepo) FindByPair(_ context.Context, followerID, followeeID string) (*models.Follow, error) {
	for _, follow := range f.byID {
		if follow.FollowerID == followerID && follow.FolloweeID == followeeID {
			return follow, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFollowRepo) Accept(_ context.Context, id string) error {
	if follow, ok := f.byID[id]; ok {
		follow.Accepted = true
	}
	return nil
}

func (f *fakeFollowRepo) Delete(_ context.Context, followerID, followeeID string) error {
	for id, follow := range f.byID {
		if follow.FollowerID == followerID && follow.FolloweeID == followeeID {
			delete(f.byID, id)
		}
	}
	return nil
}

type fakeLikeRepo struct {
	byID map[string]*models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{byID: make(map[string]*models.Like)}
}

func (f *fakeLikeRepo) Create(_ context.Context, l *models.Like) error {
	stored := *l
	f.byID[l.ID] = &stored
	return nil
}

func (f *fakeLikeRepo) Delete(_ context.Context, postID, userID string) error {
	for id, l := range f.byID {
		if l.PostID == postID && l.UserID == userID {
			delete(f.byID, id)
		}
	}
	return nil
}

func (f *fakeLikeRepo) Exists(_ context.Context, postID, userID string) (bool, error) {
	for _, l := range f.byID {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUserRepo struct {
	byID map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	f := &fakeUserRepo{byID: make(map[string]*models.User)}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
