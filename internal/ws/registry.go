package ws

import (
	"sort"
	"sync"
)

// ConnectionRegistry maps a user id to the set of their live connection ids.
// A user with several tabs or devices holds several entries under one key;
// the entry disappears when the last connection goes, so "is online" is a
// plain existence check. A connection id belongs to at most one user.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]map[string]bool // userID -> set of connectionID
	owner map[string]string          // connectionID -> userID
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		conns: make(map[string]map[string]bool),
		owner: make(map[string]string),
	}
}

// Register adds connectionID under userID. Idempotent; if the connection id
// was somehow registered under a different user it is moved.
func (r *ConnectionRegistry) Register(userID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.owner[connectionID]; ok && prev != userID {
		r.removeLocked(prev, connectionID)
	}

	if r.conns[userID] == nil {
		r.conns[userID] = make(map[string]bool)
	}
	r.conns[userID][connectionID] = true
	r.owner[connectionID] = userID
}

// Unregister removes connectionID from userID's set. A pair that was never
// registered is a silent no-op.
func (r *ConnectionRegistry) Unregister(userID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(userID, connectionID)
}

func (r *ConnectionRegistry) removeLocked(userID, connectionID string) {
	set, ok := r.conns[userID]
	if !ok {
		return
	}
	if !set[connectionID] {
		return
	}
	delete(set, connectionID)
	delete(r.owner, connectionID)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

// ConnectionsFor returns the connection ids for userID; empty when offline.
func (r *ConnectionRegistry) ConnectionsFor(userID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.conns[userID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// OnlineUserIDs returns a sorted snapshot of every user with at least one
// live connection.
func (r *ConnectionRegistry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *ConnectionRegistry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

// ConnectionCount reports the total number of live connections.
func (r *ConnectionRegistry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.owner)
}
