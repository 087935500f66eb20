package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
	"golang.org/x/text/language"

	"salesdash/internal/engine"
	"salesdash/internal/logger"
)

type entry struct {
	session *engine.Session
	seen    time.Time
}

// Registry maps session IDs to sessions. Sessions idle for longer than the
// TTL are dropped together with their upload and parsed table.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	settings engine.Settings
	lang     language.Tag
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates sessions with the given settings and default language.
// A ttl of zero or less keeps sessions forever.
func NewRegistry(settings engine.Settings, lang language.Tag, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		settings: settings,
		lang:     lang,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a live session and marks it as used.
func (r *Registry) Get(id string) (*engine.Session, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(e, now) {
		delete(r.sessions, id)
		return nil, false
	}
	e.seen = now
	return e.session, true
}

// Create opens a new session. language.Und selects the registry default.
func (r *Registry) Create(lang language.Tag) *engine.Session {
	if lang == language.Und {
		lang = r.lang
	}
	s := engine.NewSession(uuid.NewString(), lang, r.settings)

	r.mu.Lock()
	r.sessions[s.ID] = &entry{session: s, seen: r.now()}
	r.mu.Unlock()
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops every idle session and returns how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	now := r.now()
	removed := 0
	for id, e := range r.sessions {
		if r.expired(e, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	live := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		logger.Get().Infoj(log.JSON{"event": "sessions_evicted", "removed": removed, "live": live})
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) expired(e *entry, now time.Time) bool {
	return r.ttl > 0 && now.Sub(e.seen) > r.ttl
}
