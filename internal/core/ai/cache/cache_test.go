package cache

import (
	"context"
	"testing"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestManager(maxSize int, ttl time.Duration) (*Manager, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	m := NewManager(config.CacheConfig{Enabled: true, MaxSize: maxSize, TTL: ttl})
	m.now = clock.Now
	return m, clock
}

func dets(labels ...string) []detection.RawDetection {
	out := make([]detection.RawDetection, 0, len(labels))
	for _, l := range labels {
		out = append(out, detection.RawDetection{Label: l, Confidence: 0.8, Source: detection.SourceLabel})
	}
	return out
}

func TestManager_SetGet(t *testing.T) {
	m, _ := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "a", dets("tomato", "onion")))
	got, ok := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, dets("tomato", "onion"), got)

	stats := m.GetStats()
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRatio, 1e-9)
}

func TestManager_ReturnsCopies(t *testing.T) {
	m, _ := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	in := []detection.RawDetection{{Label: "carrot", Source: detection.SourceObject, Box: &detection.BoundingBox{X2: 1}}}
	require.NoError(t, m.Set(ctx, "k", in))
	in[0].Label = "changed"
	in[0].Box.X2 = 0.3

	got, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "carrot", got[0].Label)
	assert.Equal(t, 1.0, got[0].Box.X2)

	got[0].Label = "mutated"
	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "carrot", again[0].Label)
}

func TestManager_Expiry(t *testing.T) {
	m, clock := newTestManager(10, time.Minute)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", dets("rice")))
	clock.Advance(61 * time.Second)

	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)
	stats := m.GetStats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestManager_EvictsLeastUsed(t *testing.T) {
	m, clock := newTestManager(2, time.Hour)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", dets("a")))
	clock.Advance(time.Second)
	require.NoError(t, m.Set(ctx, "b", dets("b")))
	_, _ = m.Get(ctx, "a")

	clock.Advance(time.Second)
	require.NoError(t, m.Set(ctx, "c", dets("c")))

	_, okA := m.Get(ctx, "a")
	_, okB := m.Get(ctx, "b")
	_, okC := m.Get(ctx, "c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestManager_ExpiredEntriesFreeSpaceFirst(t *testing.T) {
	m, clock := newTestManager(2, time.Minute)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "old", dets("x")))
	clock.Advance(2 * time.Minute)
	require.NoError(t, m.Set(ctx, "b", dets("b")))
	_, _ = m.Get(ctx, "b")
	require.NoError(t, m.Set(ctx, "c", dets("c")))

	_, okB := m.Get(ctx, "b")
	assert.True(t, okB)
	assert.Equal(t, 2, m.GetStats().Size)
}

func TestManager_CloseIsIdempotent(t *testing.T) {
	m := NewManager(config.CacheConfig{MaxSize: 1, TTL: time.Minute, CleanupInterval: time.Millisecond})
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestDecodeDetections(t *testing.T) {
	got, err := decodeDetections([]byte(`[{"label":"egg","confidence":0.7,"source":"object","bbox":{"x1":0.1,"y1":0.1,"x2":0.4,"y2":0.5}}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, detection.SourceObject, got[0].Source)
	require.NotNil(t, got[0].Box)
	assert.Equal(t, 0.4, got[0].Box.X2)

	got, err = decodeDetections([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, got)

	_, err = decodeDetections([]byte(`{oops`))
	assert.Error(t, err)
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := NewRedisCache(client, time.Minute)
	defer c.Close()
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", dets("rice")))
	assert.Error(t, c.Ping(ctx))
}

func TestNewRedisClient_FailsFast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err := NewRedisClient(ctx, config.RedisConfig{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
