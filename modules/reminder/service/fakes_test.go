package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	"eventrely-api/core/clock"
	"eventrely-api/modules/reminder/domain"
)

var now = time.Date(2025, 12, 21, 15, 30, 0, 0, time.UTC)

// memoryRepository mirrors the SQL repository's semantics in memory.
type memoryRepository struct {
	mu       sync.Mutex
	events   map[domain.EventID]domain.Event
	clock    clock.Clock
	findByID int
	saveErr  error
	findErr  error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{events: map[domain.EventID]domain.Event{}, clock: clock.NewFixed(now)}
}

func (r *memoryRepository) Save(_ context.Context, e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	stored, ok := r.events[e.ID]
	if e.Version > 1 {
		if !ok {
			return domain.ErrEventNotFound
		}
		if stored.Version != e.Version-1 {
			return domain.ErrConcurrentModification
		}
	}
	r.events[e.ID] = e
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id domain.EventID) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findByID++
	if r.findErr != nil {
		return nil, r.findErr
	}
	e, ok := r.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *memoryRepository) Delete(_ context.Context, id domain.EventID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *memoryRepository) filter(keep func(domain.Event) bool) []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Event
	for _, e := range r.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EventDate.Time().Before(out[j].EventDate.Time())
	})
	return out
}

func (r *memoryRepository) FindByUser(_ context.Context, userID string) ([]domain.Event, error) {
	out := r.filter(func(e domain.Event) bool { return e.UserID == userID })
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *memoryRepository) FindByUserAndDate(_ context.Context, userID string, date time.Time) ([]domain.Event, error) {
	y, m, d := date.UTC().Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)
	return r.filter(func(e domain.Event) bool {
		t := e.EventDate.Time()
		return e.UserID == userID && !t.Before(start) && t.Before(end)
	}), nil
}

func (r *memoryRepository) FindUpcoming(_ context.Context, userID string, limit int) ([]domain.Event, error) {
	current := r.clock.Now()
	out := r.filter(func(e domain.Event) bool {
		return e.UserID == userID && e.Status == domain.StatusPending && !e.EventDate.Time().Before(current)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e domain.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) types() []domain.DomainEventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.DomainEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	err    error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	raw, ok := c.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = raw
	return nil
}

func (c *memoryCache) SetJSONIfAbsent(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	_, exists := c.values[key]
	c.mu.Unlock()
	if exists {
		return false, c.err
	}
	if err := c.SetJSON(ctx, key, value, ttl); err != nil {
		return false, err
	}
	return true, nil
}

func (c *memoryCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
	}
	return c.err
}

func (c *memoryCache) entry(key string) (cachedEvent, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.values[key]
	if !ok {
		return cachedEvent{}, false
	}
	var e cachedEvent
	if err := json.Unmarshal(raw, &e); err != nil {
		return cachedEvent{}, false
	}
	return e, true
}

func (c *memoryCache) Ping(context.Context) error { return c.err }

func (c *memoryCache) Close() error { return nil }

var errStore = errors.New("store unavailable")
