package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"billetera/internal/logging"
)

// DefaultIdle is how long an untouched entry survives.
const DefaultIdle = 30 * time.Minute

// Closer is what the registry holds; Close is called once on eviction.
type Closer interface {
	Close()
}

type settings struct {
	now func() time.Time
	log *zap.Logger
}

// Option configures a Registry.
type Option func(*settings)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.log = logging.OrNop(l) }
}

type entry[V Closer] struct {
	value V
	seen  time.Time
}

// Registry is an idle-expiring map of session id to V.
type Registry[V Closer] struct {
	create func() V
	idle   time.Duration
	now    func() time.Time
	log    *zap.Logger

	mu      sync.Mutex
	entries map[string]*entry[V]
}

// NewRegistry returns an empty registry building values with create. A
// non-positive idle means DefaultIdle.
func NewRegistry[V Closer](create func() V, idle time.Duration, opts ...Option) *Registry[V] {
	cfg := settings{now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Registry[V]{
		create:  create,
		idle:    idle,
		now:     cfg.now,
		log:     cfg.log,
		entries: make(map[string]*entry[V]),
	}
}

// Get returns the live value for id and marks it used.
func (r *Registry[V]) Get(id string) (V, bool) {
	r.mu.Lock()
	now := r.now()
	e, ok := r.entries[id]
	if ok && now.Sub(e.seen) >= r.idle {
		delete(r.entries, id)
		r.mu.Unlock()
		e.value.Close()
		r.log.Debug("view set expired", logging.Redacted("browser", id))
		var zero V
		return zero, false
	}
	defer r.mu.Unlock()
	if !ok {
		var zero V
		return zero, false
	}
	e.seen = now
	return e.value, true
}

// GetOrCreate returns the live value for id, creating one when there is
// none. created reports whether a new value was built.
func (r *Registry[V]) GetOrCreate(id string) (v V, created bool) {
	if v, ok := r.Get(id); ok {
		return v, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[id]; ok {
		e.seen = r.now()
		return e.value, false
	}
	v = r.create()
	r.entries[id] = &entry[V]{value: v, seen: r.now()}
	r.log.Debug("view set created", logging.Redacted("browser", id), zap.Int("live", len(r.entries)))
	return v, true
}

// Delete evicts and closes the value for id, if any.
func (r *Registry[V]) Delete(id string) {
	r.mu.Lock()
	e, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		e.value.Close()
	}
}

// Len reports how many entries are held, expired or not.
func (r *Registry[V]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts and closes every expired entry and reports how many it
// removed.
func (r *Registry[V]) Sweep() int {
	r.mu.Lock()
	now := r.now()
	var expired []V
	for id, e := range r.entries {
		if now.Sub(e.seen) >= r.idle {
			expired = append(expired, e.value)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Close()
	}
	if len(expired) > 0 {
		r.log.Debug("swept idle view sets", zap.Int("evicted", len(expired)))
	}
	return len(expired)
}

// CloseAll evicts and closes every entry.
func (r *Registry[V]) CloseAll() {
	r.mu.Lock()
	all := r.entries
	r.entries = make(map[string]*entry[V])
	r.mu.Unlock()

	for _, e := range all {
		e.value.Close()
	}
}

// Run sweeps every interval until ctx is done, then closes everything.
func (r *Registry[V]) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.idle / 2
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return
		case <-t.C:
			r.Sweep()
		}
	}
}
