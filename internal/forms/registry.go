package forms

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type session struct {
	forms    map[string]*Form
	lastSeen time.Time
}

// Registry держит формы отдельно для каждой сессии браузера и каждого вида формы.
type Registry struct {
	successDelay time.Duration
	idle         time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

func NewRegistry(successDelay, idle time.Duration) *Registry {
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return &Registry{
		successDelay: successDelay,
		idle:         idle,
		now:          time.Now,
		sessions:     map[string]*session{},
	}
}

// Form returns the form instance for (sessionID, kind), creating it on first use.
func (r *Registry) Form(sessionID, kind string) *Form {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		s = &session{forms: map[string]*Form{}}
		r.sessions[sessionID] = s
	}
	s.lastSeen = r.now()

	f, ok := s.forms[kind]
	if !ok {
		f = New(kind, r.successDelay)
		s.forms[kind] = f
	}
	return f
}

// Peek возвращает состояние формы, не создавая её. Пустое состояние, если формы нет.
func (r *Registry) Peek(sessionID, kind string) State {
	r.mu.Lock()
	s, ok := r.sessions[sessionID]
	var f *Form
	if ok {
		s.lastSeen = r.now()
		f = s.forms[kind]
	}
	r.mu.Unlock()

	if f == nil {
		return State{Kind: kind, Values: map[string]string{}}
	}
	return f.Snapshot()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep удаляет сессии, к которым не обращались дольше idle.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-r.idle)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.After(cutoff) {
			continue
		}
		for _, f := range s.forms {
			f.Close()
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Run периодически чистит сессии, пока не отменён ctx.
func (r *Registry) Run(ctx context.Context, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := r.Sweep(); n > 0 {
				slog.Debug("form sessions swept", "removed", n)
			}
		}
	}
}
