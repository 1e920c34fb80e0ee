package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"social-service/internal/models"

	"github.com/redis/go-redis/v9"
)

const statusChannel = "user_status"

// RedisService mirrors presence into redis for REST queries ("is this user
// online", "when were they last seen") and backs the rate limiter. The
// websocket hub's in-memory registry stays authoritative for delivery.
type RedisService struct {
	client *redis.Client
}

func NewRedisService(client *redis.Client) *RedisService {
	return &RedisService{client: client}
}

// =============================================================================
// Presence mirror
// =============================================================================

func (r *RedisService) UserOnline(ctx context.Context, userID string) error {
	pipe := r.client.Pipeline()

	pipe.SAdd(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":    "online",
		"last_seen": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 5*time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	r.publishStatus(ctx, userID, "online")
	return nil
}

func (r *RedisService) UserOffline(ctx context.Context, userID string) error {
	pipe := r.client.Pipeline()

	pipe.SRem(ctx, "online_users", userID)
	pipe.HSet(ctx, fmt.Sprintf("user:%s:status", userID), map[string]interface{}{
		"status":    "offline",
		"last_seen": time.Now().Unix(),
	})
	pipe.Expire(ctx, fmt.Sprintf("user:%s:status", userID), 24*time.Hour)

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	r.publishStatus(ctx, userID, "offline")
	return nil
}

func (r *RedisService) IsUserOnline(ctx context.Context, userID string) (bool, error) {
	return r.client.SIsMember(ctx, "online_users", userID).Result()
}

func (r *RedisService) GetOnlineUsers(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, "online_users").Result()
}

func (r *RedisService) LastSeen(ctx context.Context, userID string) (time.Time, error) {
	val, err := r.client.HGet(ctx, fmt.Sprintf("user:%s:status", userID), "last_seen").Int64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(val, 0), nil
}

func (r *RedisService) publishStatus(ctx context.Context, userID, status string) {
	update := models.StatusUpdate{UserID: userID, Status: status, LastSeen: time.Now()}
	payload, err := json.Marshal(update)
	if err != nil {
		slog.Error("failed to marshal status update", "userId", userID, "error", err)
		return
	}
	if err := r.client.Publish(ctx, statusChannel, payload).Err(); err != nil {
		slog.Error("failed to publish status update", "userId", userID, "error", err)
	}
}

// =============================================================================
// Rate limiting
// =============================================================================

// CheckRateLimit implements a sliding window over a sorted set per key.
func (r *RedisService) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).Unix()

	pipe := r.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.Unix()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, window)

	results, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}

	count := results[1].(*redis.IntCmd).Val()
	return count < int64(limit), nil
}
