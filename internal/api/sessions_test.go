package api

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"salesdash/internal/engine"
	"salesdash/internal/i18n"
)

// fakeClock is a settable time source.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newClockedRegistry(ttl time.Duration) (*Registry, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(engine.DefaultSettings(), i18n.English, ttl)
	r.now = clock.Now
	return r, clock
}

func TestRegistryCreateDefaultsLanguage(t *testing.T) {
	r, _ := newClockedRegistry(time.Hour)

	assert.Equal(t, i18n.English, r.Create(language.Und).Language())
	assert.Equal(t, i18n.Indonesian, r.Create(i18n.Indonesian).Language())
	assert.Equal(t, 2, r.Len())
}

func TestRegistrySweepEvictsIdleSessions(t *testing.T) {
	r, clock := newClockedRegistry(30 * time.Minute)

	idle := r.Create(language.Und)
	active := r.Create(language.Und)

	clock.Advance(20 * time.Minute)
	_, ok := r.Get(active.ID)
	require.True(t, ok)

	clock.Advance(20 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 1, r.Len())

	_, ok = r.Get(idle.ID)
	assert.False(t, ok)
	_, ok = r.Get(active.ID)
	assert.True(t, ok)
}

func TestRegistryGetDropsExpiredSession(t *testing.T) {
	r, clock := newClockedRegistry(time.Minute)
	s := r.Create(language.Und)

	clock.Advance(2 * time.Minute)
	_, ok := r.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistryWithoutTTLKeepsSessions(t *testing.T) {
	r, clock := newClockedRegistry(0)
	s := r.Create(language.Und)

	clock.Advance(24 * time.Hour)
	assert.Equal(t, 0, r.Sweep())
	_, ok := r.Get(s.ID)
	assert.True(t, ok)
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	r, clock := newClockedRegistry(time.Minute)
	r.Create(language.Und)
	clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
