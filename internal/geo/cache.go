// README: Redis-backed geocoding cache; read-through with TTL, falls back to the inner geocoder.
package geo

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geo:addr:"

// CachedGeocoder wraps another Geocoder with a redis read-through cache.
// The same city tends to be looked up by many trips, so positive results are
// cached with a TTL. Misses and redis failures fall through to the inner
// geocoder; a broken cache must never break geocoding.
type CachedGeocoder struct {
	inner Geocoder
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedGeocoder creates a caching wrapper around inner.
func NewCachedGeocoder(inner Geocoder, client *redis.Client, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, redis: client, ttl: ttl}
}

func (c *CachedGeocoder) Resolve(ctx context.Context, location string) (*Coordinates, error) {
	key := cacheKeyPrefix + strings.ToLower(strings.TrimSpace(location))
	if key == cacheKeyPrefix {
		return nil, nil
	}

	if raw, err := c.redis.Get(ctx, key).Result(); err == nil {
		var coords Coordinates
		if err := json.Unmarshal([]byte(raw), &coords); err == nil {
			return &coords, nil
		}
	} else if err != redis.Nil {
		log.Printf("geocode cache get %q: %v", location, err)
	}

	coords, err := c.inner.Resolve(ctx, location)
	if err != nil || coords == nil {
		return coords, err
	}

	if raw, err := json.Marshal(coords); err == nil {
		if err := c.redis.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			log.Printf("geocode cache set %q: %v", location, err)
		}
	}
	return coords, nil
}
