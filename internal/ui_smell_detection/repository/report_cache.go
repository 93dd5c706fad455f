package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
)

const (
	reportKeyPrefix    = "duis:report:" // duis:report:{graph_hash}:{config_hash}
	unitReportsPrefix  = "duis:unit:"   // set of report keys for a unit: duis:unit:{unit}
	eventChannelPrefix = "duis:events:" // pub/sub channel per unit: duis:events:{unit}
	DefaultReportTTL   = 24 * time.Hour
)

// ReportEvent is published whenever a report is stored.
type ReportEvent struct {
	Unit       string                `json:"unit"`
	GraphHash  string                `json:"graph_hash"`
	ConfigHash string                `json:"config_hash"`
	Findings   int                   `json:"findings"`
	Summary    map[domain.RuleID]int `json:"summary"`
	StoredAt   time.Time             `json:"stored_at"`
}

// ReportCache keeps reports in Redis, keyed by graph hash and config hash.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	if ttl <= 0 {
		ttl = DefaultReportTTL
	}
	return &ReportCache{client: client, ttl: ttl}
}

func (c *ReportCache) Get(ctx context.Context, graphHash, configHash string) (*domain.Report, error) {
	return c.get(ctx, reportKey(graphHash, configHash))
}

// GetLatest returns any cached report for graphHash, whatever the config.
func (c *ReportCache) GetLatest(ctx context.Context, graphHash string) (*domain.Report, error) {
	keys, err := c.client.Keys(ctx, reportKeyPrefix+graphHash+":*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if len(keys) == 0 {
		return nil, domain.ErrReportNotFound
	}
	sort.Strings(keys)
	return c.get(ctx, keys[0])
}

func (c *ReportCache) get(ctx context.Context, key string) (*domain.Report, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var r domain.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &r, nil
}

func (c *ReportCache) Put(ctx context.Context, configHash string, r *domain.Report) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	key := reportKey(r.GraphHash, configHash)
	unitKey := unitReportsPrefix + r.Unit

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, unitKey, key)
	pipe.Expire(ctx, unitKey, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	event, err := json.Marshal(ReportEvent{
		Unit:       r.Unit,
		GraphHash:  r.GraphHash,
		ConfigHash: configHash,
		Findings:   len(r.Findings),
		Summary:    r.Summary,
		StoredAt:   time.Now().UTC(),
	})
	if err == nil {
		c.client.Publish(ctx, eventChannelPrefix+r.Unit, event)
	}
	return nil
}

// ListKeysByUnit returns the cache keys stored for unit.
func (c *ReportCache) ListKeysByUnit(ctx context.Context, unit string) ([]string, error) {
	keys, err := c.client.SMembers(ctx, unitReportsPrefix+unit).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for unit: %w", err)
	}
	return keys, nil
}

// Subscribe listens for report events of unit.
func (c *ReportCache) Subscribe(ctx context.Context, unit string) *redis.PubSub {
	return c.client.Subscribe(ctx, eventChannelPrefix+unit)
}

func (c *ReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func reportKey(graphHash, configHash string) string {
	return reportKeyPrefix + graphHash + ":" + configHash
}
