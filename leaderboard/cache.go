package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neon-pong/backend/game"
)

const cacheTimeout = 2 * time.Second

// Cache mirrors leaderboard entries into redis sorted sets, one per mode,
// so reads can fall back to the mirror when the primary store is
// unreachable.
type Cache struct {
	client *redis.Client
}

func NewCache(addr string) *Cache {
	return &Cache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func cacheKey(mode game.Mode) string {
	if mode == "" {
		return "leaderboard:all"
	}
	return "leaderboard:" + string(mode)
}

// Mirror writes an entry into the per-mode and global sorted sets,
// best-effort.
func (c *Cache) Mirror(e Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	member := redis.Z{Score: float64(e.Score), Member: string(data)}
	if err := c.client.ZAdd(ctx, cacheKey(e.Mode), member).Err(); err != nil {
		log.Printf("[leaderboard] cache mirror failed: %v", err)
		return
	}
	c.client.ZAdd(ctx, cacheKey(""), member)
}

// Top reads the mirrored ranking, highest scores first.
func (c *Cache) Top(mode game.Mode, limit int) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	members, err := c.client.ZRevRange(ctx, cacheKey(mode), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard cache: %w", err)
	}

	out := make([]Entry, 0, len(members))
	for _, m := range members {
		var e Entry
		if err := json.Unmarshal([]byte(m), &e); err != nil {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// CachedStore wraps a Store with a redis mirror: writes go to both,
// reads fall back to the mirror when the store errors.
type CachedStore struct {
	store Store
	cache *Cache
}

func NewCachedStore(store Store, cache *Cache) *CachedStore {
	return &CachedStore{store: store, cache: cache}
}

func (s *CachedStore) List(mode game.Mode, limit int) ([]Entry, error) {
	entries, err := s.store.List(mode, limit)
	if err == nil {
		return entries, nil
	}
	log.Printf("[leaderboard] store unreachable, serving cache: %v", err)
	return s.cache.Top(mode, limit)
}

func (s *CachedStore) Add(entry NewEntry) (Entry, error) {
	e, err := s.store.Add(entry)
	if err != nil {
		return Entry{}, err
	}
	s.cache.Mirror(e)
	return e, nil
}
