package service

import (
	"context"
	"time"

	"eventrely-api/core/cache"
	"eventrely-api/core/constants"
	"eventrely-api/core/logger"
	"eventrely-api/modules/reminder/domain"
	"eventrely-api/modules/reminder/dto"
)

// cachedEvent is the cache entry for one event. Deleted marks a removed event.
type cachedEvent struct {
	Event   *dto.EventResponse `json:"event,omitempty"`
	Deleted bool               `json:"deleted,omitempty"`
}

// eventCache keeps single events by id. Writers overwrite the entry with the
// state they committed; readers only fill a missing entry, so a read that
// loaded a row before a concurrent write can never replace the newer entry.
type eventCache struct {
	cache cache.Cache
	ttl   time.Duration
}

func newEventCache(c cache.Cache, ttl time.Duration) eventCache {
	if c == nil {
		c = cache.NewNoop()
	}
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return eventCache{cache: c, ttl: ttl}
}

func eventCacheKey(id domain.EventID) string {
	return constants.RedisKeyEvent + id.String()
}

func (c eventCache) get(ctx context.Context, id domain.EventID) (cachedEvent, bool) {
	var entry cachedEvent
	hit, err := c.cache.GetJSON(ctx, eventCacheKey(id), &entry)
	if err != nil {
		logger.Warn("EventCache:get:Error", "error", err, "event_id", id.String())
		return cachedEvent{}, false
	}
	if !hit || (entry.Event == nil && !entry.Deleted) {
		return cachedEvent{}, false
	}
	return entry, true
}

// fill stores a freshly read event unless a writer got there first.
func (c eventCache) fill(ctx context.Context, id domain.EventID, resp *dto.EventResponse) {
	if _, err := c.cache.SetJSONIfAbsent(ctx, eventCacheKey(id), cachedEvent{Event: resp}, c.ttl); err != nil {
		logger.Warn("EventCache:fill:Error", "error", err, "event_id", id.String())
	}
}

// store replaces the entry after a committed write. When that fails the
// entry is dropped instead.
func (c eventCache) store(ctx context.Context, id domain.EventID, entry cachedEvent) {
	key := eventCacheKey(id)
	err := c.cache.SetJSON(ctx, key, entry, c.ttl)
	if err == nil {
		return
	}
	logger.Warn("EventCache:store:Error", "error", err, "event_id", id.String())
	if err := c.cache.Del(ctx, key); err != nil {
		logger.Warn("EventCache:store:Del:Error", "error", err, "event_id", id.String())
	}
}
