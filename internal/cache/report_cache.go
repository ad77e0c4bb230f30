package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/smart-reorder/backend-go/internal/config"
	"github.com/andresuchdata/smart-reorder/backend-go/internal/reorder"
	"github.com/redis/go-redis/v9"
)

const (
	reportKeyPrefix     = "reorder_report"
	reportVersionKey    = "reorder_report_version"
	reportScanBatchSize = 100
)

// ReportCache stores generated reorder reports keyed by cache version and
// simulation parameters. InvalidateAll bumps the version, so callers read
// Version before loading the snapshot they cache.
type ReportCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, version int64, sim reorder.Simulation) ([]reorder.ReportEntry, bool, error)
	Set(ctx context.Context, version int64, sim reorder.Simulation, entries []reorder.ReportEntry) error
	InvalidateAll(ctx context.Context) error
}

type redisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopReportCache struct{}

func NewReportCache(ctx context.Context, cfg config.CacheConfig) (ReportCache, error) {
	if !cfg.Enabled {
		return &noopReportCache{}, nil
	}

	client, ttl, err := newRedisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &redisReportCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopReportCache() ReportCache {
	return &noopReportCache{}
}

func (c *redisReportCache) Version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, reportVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get version failed: %w", err)
	}
	return version, nil
}

func (c *redisReportCache) Get(ctx context.Context, version int64, sim reorder.Simulation) ([]reorder.ReportEntry, bool, error) {
	payload, err := c.client.Get(ctx, buildReportKey(version, sim)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var entries []reorder.ReportEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, false, fmt.Errorf("decode reorder report cache: %w", err)
	}

	return entries, true, nil
}

func (c *redisReportCache) Set(ctx context.Context, version int64, sim reorder.Simulation, entries []reorder.ReportEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode reorder report cache: %w", err)
	}

	if err := c.client.Set(ctx, buildReportKey(version, sim), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll bumps the version first so in-flight writers land on a dead key,
// then drops the old entries.
func (c *redisReportCache) InvalidateAll(ctx context.Context) error {
	if err := c.client.Incr(ctx, reportVersionKey).Err(); err != nil {
		return fmt.Errorf("redis incr version failed: %w", err)
	}
	return deleteKeysWithPrefix(ctx, c.client, reportKeyPrefix+":", reportScanBatchSize)
}

func (n *noopReportCache) Version(ctx context.Context) (int64, error) {
	return 0, nil
}

func (n *noopReportCache) Get(ctx context.Context, version int64, sim reorder.Simulation) ([]reorder.ReportEntry, bool, error) {
	return nil, false, nil
}

func (n *noopReportCache) Set(ctx context.Context, version int64, sim reorder.Simulation, entries []reorder.ReportEntry) error {
	return nil
}

func (n *noopReportCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildReportKey(version int64, sim reorder.Simulation) string {
	return fmt.Sprintf("%s:v%d:%s", reportKeyPrefix, version, simulationHash(sim))
}

// simulationHash is stable for equivalent simulations. Inactive simulations all
// produce the same report, so they share one key.
func simulationHash(sim reorder.Simulation) string {
	if !sim.Active {
		return "default"
	}

	parts := []string{
		"active=true",
		"product_id=" + strings.TrimSpace(sim.ProductID),
		"multiplier=" + strconv.FormatFloat(sim.Multiplier, 'f', -1, 64),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
