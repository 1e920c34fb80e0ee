package repository

import (
	"context"

	"social-service/internal/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, f *models.Follow) error
	FindByPair(ctx context.Context, followerID, followeeID string) (*models.Follow, error)
	Accept(ctx context.Context, id string) error
	Delete(ctx context.Context, followerID, followeeID string) error
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, f *models.Follow) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *followRepository) FindByPair(ctx context.Context, followerID, followeeID string) (*models.Follow, error) {
	var f models.Follow
	err := r.db.WithContext(ctx).
		First(&f, "follower_id = ? AND followee_id = ?", followerID, followeeID).Error
	return &f, err
}

func (r *followRepository) Accept(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("id = ?", id).
		Update("accepted", true).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Follow{}, "follower_id = ? AND followee_id = ?", followerID, followeeID).Error
}

type LikeRepository interface {
	Create(ctx context.Context, l *models.Like) error
	Delete(ctx context.Context, postID, userID string) error
	Exists(ctx context.Context, postID, userID string) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, l *models.Like) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Delete(&models.Like{}, "post_id = ? AND user_id = ?", postID, userID).Error
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}

type PostRepository interface {
	Create(ctx context.Context, p *models.Post) error
	FindByID(ctx context.Context, id string) (*models.Post, error)
	CreateReply(ctx context.Context, reply *models.Reply) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *postRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *postRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "username = ?", username).Error
	return &u, err
}
