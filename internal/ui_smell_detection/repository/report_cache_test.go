package repository_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/domain"
	"github.com/GoSim-25-26J-441/duis-detector/internal/ui_smell_detection/repository"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func sampleReport() *domain.Report {
	return &domain.Report{
		Unit:      "src/App.jsx",
		GraphHash: "0123456789abcdef",
		Findings: []domain.Finding{{
			RuleID:     domain.RuleInefficientList,
			Severity:   domain.SeverityWarning,
			Confidence: 0.9,
			File:       "src/App.jsx",
			StartLine:  12,
			EndLine:    20,
			Rationale:  "list renders 5000 rows eagerly",
			Evidence:   []domain.EvidenceRef{{Kind: domain.EvidenceList, ID: "App/list/rows", Node: "App"}},
		}},
		Summary: map[domain.RuleID]int{domain.RuleInefficientList: 1},
	}
}

func TestReportCache_PutGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := repository.NewReportCache(client, time.Hour)
	ctx := context.Background()

	_, err := cache.Get(ctx, "0123456789abcdef", "cfg")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	require.NoError(t, cache.Put(ctx, "cfg", sampleReport()))

	got, err := cache.Get(ctx, "0123456789abcdef", "cfg")
	require.NoError(t, err)
	assert.Equal(t, sampleReport(), got)

	assert.Equal(t, time.Hour, mr.TTL("duis:report:0123456789abcdef:cfg"))

	_, err = cache.Get(ctx, "0123456789abcdef", "other")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	latest, err := cache.GetLatest(ctx, "0123456789abcdef")
	require.NoError(t, err)
	assert.Equal(t, "src/App.jsx", latest.Unit)

	_, err = cache.GetLatest(ctx, "ffff")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)

	keys, err := cache.ListKeysByUnit(ctx, "src/App.jsx")
	require.NoError(t, err)
	assert.Equal(t, []string{"duis:report:0123456789abcdef:cfg"}, keys)
}

func TestReportCache_Expires(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := repository.NewReportCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, "cfg", sampleReport()))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, "0123456789abcdef", "cfg")
	assert.ErrorIs(t, err, domain.ErrReportNotFound)
}

func TestReportCache_PublishesEvents(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := repository.NewReportCache(client, 0)
	ctx := context.Background()

	sub := cache.Subscribe(ctx, "src/App.jsx")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, cache.Put(ctx, "cfg", sampleReport()))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)

	var ev repository.ReportEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	assert.Equal(t, "src/App.jsx", ev.Unit)
	assert.Equal(t, "cfg", ev.ConfigHash)
	assert.Equal(t, 1, ev.Findings)
}

func TestReportCache_Unavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := repository.NewReportCache(client, time.Hour)
	mr.Close()

	_, err := cache.Get(context.Background(), "h", "c")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrReportNotFound)
	assert.Error(t, cache.Ping(context.Background()))
}
