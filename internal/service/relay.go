package service

import (
	"log/slog"

	"social-service/internal/adapters/kafka"
	"social-service/internal/ws"
)

// EventRelay is what the bridge needs from the websocket hub. Delivery is
// best effort: a recipient with no live connections is a no-op.
type EventRelay interface {
	Emit(userID string, event ws.Event) error
	Broadcast(event ws.Event) error
}

// emitter fans one event out to a set of users after a successful write.
// Relay failures are logged and swallowed: the authoritative write already
// committed, so they must never surface to the mutation's caller.
type emitter struct {
	relay   EventRelay
	journal *kafka.Journal
}

func (e *emitter) emitTo(userIDs []string, event ws.Event) {
	for _, userID := range userIDs {
		if err := e.relay.Emit(userID, event); err != nil {
			slog.Error("failed to emit event", "type", event.Type, "userId", userID, "error", err)
			continue
		}
		e.journal.Record(userID, event)
	}
}
