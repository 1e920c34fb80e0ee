package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"social-service/internal/adapters/kafka"
	"social-service/internal/models"
	"social-service/internal/repository"
	"social-service/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrSelfFollow   = errors.New("cannot follow yourself")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotFollowee  = errors.New("user is not the follow target")
)

// SocialService covers the notification-worthy mutations: follows, likes,
// replies, posts. Each one writes first, then notifies the recipient only —
// never the actor.
type SocialService interface {
	CreatePost(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error)
	FollowUser(ctx context.Context, actorID, targetID string) (*models.Follow, error)
	AcceptFollow(ctx context.Context, userID, followerID string) error
	UnfollowUser(ctx context.Context, actorID, targetID string) error
	LikePost(ctx context.Context, actorID, postID string) (*models.Like, error)
	UnlikePost(ctx context.Context, actorID, postID string) error
	ReplyToPost(ctx context.Context, actorID, postID, text string) (*models.Reply, error)
}

type socialService struct {
	posts         repository.PostRepository
	follows       repository.FollowRepository
	likes         repository.LikeRepository
	notifications repository.NotificationRepository
	users         repository.UserRepository
	emitter
}

func NewSocialService(
	posts repository.PostRepository,
	follows repository.FollowRepository,
	likes repository.LikeRepository,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	relay EventRelay,
	journal *kafka.Journal,
) SocialService {
	return &socialService{
		posts:         posts,
		follows:       follows,
		likes:         likes,
		notifications: notifications,
		users:         users,
		emitter:       emitter{relay: relay, journal: journal},
	}
}

func (s *socialService) CreatePost(ctx context.Context, userID string, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Text:      req.Text,
		ImageURL:  req.ImageURL,
		CreatedAt: time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *socialService) FollowUser(ctx context.Context, actorID, targetID string) (*models.Follow, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	follow := &models.Follow{
		ID:         uuid.New().String(),
		FollowerID: actorID,
		FolloweeID: targetID,
		Accepted:   true,
		CreatedAt:  time.Now(),
	}
	if err := s.follows.Create(ctx, follow); err != nil {
		return nil, err
	}

	s.notify(ctx, targetID, actorID, models.NotificationFollow, nil)
	return follow, nil
}

// AcceptFollow confirms a pending follow and notifies the follower.
func (s *socialService) AcceptFollow(ctx context.Context, userID, followerID string) error {
	follow, err := s.follows.FindByPair(ctx, followerID, userID)
	if err != nil {
		return err
	}
	if follow.FolloweeID != userID {
		return ErrNotFollowee
	}
	if err := s.follows.Accept(ctx, follow.ID); err != nil {
		return err
	}

	s.notify(ctx, followerID, userID, models.NotificationFollowAccepted, nil)
	return nil
}

func (s *socialService) UnfollowUser(ctx context.Context, actorID, targetID string) error {
	return s.follows.Delete(ctx, actorID, targetID)
}

func (s *socialService) LikePost(ctx context.Context, actorID, postID string) (*models.Like, error) {
	exists, err := s.likes.Exists(ctx, postID, actorID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyLiked
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	like := &models.Like{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    actorID,
		CreatedAt: time.Now(),
	}
	if err := s.likes.Create(ctx, like); err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		s.notify(ctx, post.UserID, actorID, models.NotificationLike, &postID)
	}
	return like, nil
}

func (s *socialService) UnlikePost(ctx context.Context, actorID, postID string) error {
	return s.likes.Delete(ctx, postID, actorID)
}

func (s *socialService) ReplyToPost(ctx context.Context, actorID, postID, text string) (*models.Reply, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	reply := &models.Reply{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    actorID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.posts.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	if post.UserID != actorID {
		s.notify(ctx, post.UserID, actorID, models.NotificationReply, &postID)
	}
	return reply, nil
}

// notify stores the notification, then pushes it to the recipient's live
// connections. The push carries the actor summary so clients can render it
// without a follow-up fetch. A failed store skips the push entirely; a
// failed push is logged inside the emitter and swallowed.
func (s *socialService) notify(ctx context.Context, recipientID, actorID string, t models.NotificationType, postID *string) {
	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    recipientID,
		ActorID:   actorID,
		Type:      t,
		PostID:    postID,
		CreatedAt: time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		slog.Error("failed to store notification", "type", t, "recipientId", recipientID, "error", err)
		return
	}

	actor := models.UserSummary{ID: actorID}
	if u, err := s.users.FindByID(ctx, actorID); err == nil {
		actor = u.Summary()
	}

	s.emitTo([]string{recipientID}, ws.NewNotificationEvent(*n, actor))
}
