package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"social-service/internal/models"
	"social-service/internal/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNotification(repo *fakeNotificationRepo, id, userID string, read bool) {
	var readAt *time.Time
	if read {
		at := time.Now().Add(-48 * time.Hour)
		readAt = &at
	}
	repo.byID[id] = &models.Notification{
		ID:        id,
		UserID:    userID,
		ActorID:   "actor",
		Type:      models.NotificationLike,
		Read:      read,
		ReadAt:    readAt,
		CreatedAt: time.Now().Add(-time.Hour),
	}
}

func TestMarkReadEchoesToOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	relay := &recordingRelay{}
	svc := NewNotificationService(repo, relay, nil)
	seedNotification(repo, "n1", "alice", false)

	require.NoError(t, svc.MarkRead(context.Background(), "alice", "n1"))

	assert.True(t, repo.byID["n1"].Read)
	events := relay.eventsFor("alice")
	require.Len(t, events, 1)
	assert.Equal(t, ws.EventNotificationRead, events[0].Type)
	assert.Equal(t, "n1", events[0].Payload.(ws.NotificationReadPayload).NotificationID)
}

func TestMarkReadRejectsNonOwner(t *testing.T) {
	repo := newFakeNotificationRepo()
	relay := &recordingRelay{}
	svc := NewNotificationService(repo, relay, nil)
	seedNotification(repo, "n1", "alice", false)

	err := svc.MarkRead(context.Background(), "bob", "n1")
	assert.ErrorIs(t, err, ErrNotNotificationOwner)
	assert.False(t, repo.byID["n1"].Read)
	assert.Empty(t, relay.emitted)
}

func TestMarkAllReadEchoesEachUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	relay := &recordingRelay{}
	svc := NewNotificationService(repo, relay, nil)
	seedNotification(repo, "n1", "alice", false)
	seedNotification(repo, "n2", "alice", false)
	seedNotification(repo, "n3", "alice", true)
	seedNotification(repo, "n4", "bob", false)

	require.NoError(t, svc.MarkAllRead(context.Background(), "alice"))

	count, err := svc.CountUnread(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.False(t, repo.byID["n4"].Read, "other users' notifications untouched")

	var echoed []string
	for _, ev := range relay.eventsFor("alice") {
		require.Equal(t, ws.EventNotificationRead, ev.Type)
		echoed = append(echoed, ev.Payload.(ws.NotificationReadPayload).NotificationID)
	}
	assert.ElementsMatch(t, []string{"n1", "n2"}, echoed, "already-read entries get no echo")
}

func TestMarkAllReadEchoesBeyondOnePage(t *testing.T) {
	repo := newFakeNotificationRepo()
	relay := &recordingRelay{}
	svc := NewNotificationService(repo, relay, nil)

	total := markAllReadPageSize*2 + 100
	base := time.Now().Add(-time.Hour)
	for i := 0; i < total; i++ {
		id := fmt.Sprintf("n%04d", i)
		repo.byID[id] = &models.Notification{
			ID:        id,
			UserID:    "alice",
			ActorID:   "actor",
			Type:      models.NotificationLike,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
	}

	require.NoError(t, svc.MarkAllRead(context.Background(), "alice"))

	count, err := svc.CountUnread(context.Background(), "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Len(t, relay.eventsFor("alice"), total)
}

func TestCountUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &recordingRelay{}, nil)
	seedNotification(repo, "n1", "alice", false)
	seedNotification(repo, "n2", "alice", true)

	count, err := svc.CountUnread(context.Background(), "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestPurgeReadDropsOnlyOldReadEntries(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, &recordingRelay{}, nil)
	seedNotification(repo, "n1", "alice", true)  // read two days ago
	seedNotification(repo, "n2", "alice", false) // unread, must survive

	purged, err := svc.PurgeRead(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
	_, gone := repo.byID["n1"]
	assert.False(t, gone)
	_, kept := repo.byID["n2"]
	assert.True(t, kept)
}
