package clientcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncrementWhileFocusedIsSuppressed(t *testing.T) {
	b := NewBadgeCounter()
	b.Focus()

	b.Increment()

	assert.Equal(t, 0, b.DisplayCount())
	assert.False(t, b.HasUnread())

	b.Blur()
	b.Increment()

	assert.Equal(t, 1, b.DisplayCount())
	assert.True(t, b.HasUnread())
}

func TestFocusClearsStoredCount(t *testing.T) {
	b := NewBadgeCounter()
	b.Increment()
	b.Increment()
	assert.Equal(t, 2, b.DisplayCount())

	b.Focus()
	assert.Equal(t, 0, b.DisplayCount())

	// the count does not come back after navigating away
	b.Blur()
	assert.Equal(t, 0, b.DisplayCount())
}

func TestClearResetsEverything(t *testing.T) {
	b := NewBadgeCounter()
	b.Increment()

	b.Clear()

	assert.Equal(t, 0, b.DisplayCount())
	assert.False(t, b.HasUnread())
}
