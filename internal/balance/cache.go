package balance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const cacheTTL = 60 * time.Second

// Cache keeps rendered balance summaries in Redis so the summary view does
// not recompute on every poll. Expense mutations invalidate the room's key;
// the TTL is a backstop. A nil client disables caching entirely.
type Cache struct {
	client *redis.Client
}

// NewCache creates a balance cache. client may be nil.
func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func cacheKey(roomID uuid.UUID) string {
	return "balances:" + roomID.String()
}

// Get returns the cached summary for a room, or nil on miss
func (c *Cache) Get(ctx context.Context, roomID uuid.UUID) *RoomBalanceSummary {
	if c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, cacheKey(roomID)).Bytes()
	if err != nil {
		return nil
	}

	summary := &RoomBalanceSummary{}
	if err := json.Unmarshal(raw, summary); err != nil {
		return nil
	}
	return summary
}

// Set stores a summary for a room
func (c *Cache) Set(ctx context.Context, roomID uuid.UUID, summary *RoomBalanceSummary) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(roomID), raw, cacheTTL)
}

// Invalidate drops a room's cached summary
func (c *Cache) Invalidate(ctx context.Context, roomID uuid.UUID) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, cacheKey(roomID))
}
