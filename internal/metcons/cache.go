package metcons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/metconstats/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte                = 1024 * 1024
	DefaultSnapshotCacheTTL = 10 * time.Minute
)

// SnapshotCache keeps serialized snapshots in a local in-memory cache, backed by
// redis when a client is set, so that other service instances can reuse them.
type SnapshotCache struct {
	local          *freecache.Cache
	redisClient    *redis.Client
	ttl            time.Duration
	metricsManager *metrics.Manager
}

func NewSnapshotCache(
	sizeMB int,
	ttl time.Duration,
	redisClient *redis.Client,
	metricsManager *metrics.Manager,
) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultSnapshotCacheTTL
	}
	return &SnapshotCache{
		local:          freecache.NewCache(sizeMB * megabyte),
		redisClient:    redisClient,
		ttl:            ttl,
		metricsManager: metricsManager,
	}
}

func snapshotCacheKey(programID int, dateRange Range) string {
	return fmt.Sprintf("metcons::heatmap::%d::%s", programID, dateRange)
}

func (c *SnapshotCache) Get(ctx context.Context, programID int, dateRange Range) (*Snapshot, bool) {
	key := snapshotCacheKey(programID, dateRange)

	if snapshotBytes, err := c.local.Get([]byte(key)); err == nil {
		snapshot, err := decodeSnapshot(snapshotBytes)
		if err == nil {
			c.countLookup("local", "hit")
			return snapshot, true
		}
		log.Errorf("failed to unmarshal snapshot [%s] from local cache: %s", key, err)
	}
	c.countLookup("local", "miss")

	if c.redisClient == nil {
		return nil, false
	}

	snapshotBytes, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Errorf("failed to get snapshot [%s] from redis: %s", key, err)
		}
		c.countLookup("redis", "miss")
		return nil, false
	}

	snapshot, err := decodeSnapshot(snapshotBytes)
	if err != nil {
		log.Errorf("failed to unmarshal snapshot [%s] from redis: %s", key, err)
		c.countLookup("redis", "miss")
		return nil, false
	}
	c.countLookup("redis", "hit")

	// warm up the local cache for the next request
	if err := c.local.Set([]byte(key), snapshotBytes, c.ttlSeconds()); err != nil {
		log.Warnf("failed to set snapshot [%s] in local cache: %s", key, err)
	}

	return snapshot, true
}

func (c *SnapshotCache) Set(ctx context.Context, snapshot *Snapshot) {
	key := snapshotCacheKey(snapshot.ProgramID, snapshot.Range)
	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("failed to marshal snapshot [%s]: %s", key, err)
		return
	}

	if err := c.local.Set([]byte(key), snapshotBytes, c.ttlSeconds()); err != nil {
		log.Warnf("failed to set snapshot [%s] in local cache: %s", key, err)
	}

	if c.redisClient == nil {
		return
	}
	if err := c.redisClient.Set(ctx, key, snapshotBytes, c.ttl).Err(); err != nil {
		log.Errorf("failed to set snapshot [%s] in redis: %s", key, err)
	} else {
		log.Tracef("snapshot [%s] cached in redis", key)
	}
}

func (c *SnapshotCache) ttlSeconds() int {
	return int(c.ttl.Seconds())
}

func (c *SnapshotCache) countLookup(layer, result string) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterSnapshotCache.WithLabelValues(layer, result).Inc()
}

func decodeSnapshot(snapshotBytes []byte) (*Snapshot, error) {
	snapshot := &Snapshot{}
	if err := json.Unmarshal(snapshotBytes, snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}
