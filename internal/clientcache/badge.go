package clientcache

import "sync"

// BadgeCounter tracks "new since last viewed" for one surface. It is a
// display derivative only; authoritative seen/read state lives server-side.
type BadgeCounter struct {
	mu        sync.Mutex
	count     int
	hasUnread bool
	focused   bool
}

func NewBadgeCounter() *BadgeCounter {
	return &BadgeCounter{}
}

// Increment ticks the counter unless the surface is currently focused; the
// screen the user is looking at never grows a badge.
func (b *BadgeCounter) Increment() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.focused {
		return
	}
	b.count++
	b.hasUnread = true
}

// Clear resets the counter, e.g. after an explicit mark-all-read.
func (b *BadgeCounter) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.count = 0
	b.hasUnread = false
}

// Focus marks the surface as the active screen and clears it.
func (b *BadgeCounter) Focus() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused = true
	b.count = 0
	b.hasUnread = false
}

// Blur marks the surface as no longer active.
func (b *BadgeCounter) Blur() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.focused = false
}

// DisplayCount is what the badge renders: always 0 while focused.
func (b *BadgeCounter) DisplayCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.focused {
		return 0
	}
	return b.count
}

func (b *BadgeCounter) HasUnread() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.focused {
		return false
	}
	return b.hasUnread
}
