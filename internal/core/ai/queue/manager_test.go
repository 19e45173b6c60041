package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"eatease-backend/internal/core/detection"
	"eatease-backend/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingDetector 直到 release 關閉才回傳
type blockingDetector struct {
	started chan struct{}
	release chan struct{}
}

func newBlockingDetector() *blockingDetector {
	return &blockingDetector{started: make(chan struct{}, 10), release: make(chan struct{})}
}

func (d *blockingDetector) Name() string { return "blocking" }

func (d *blockingDetector) Detect(ctx context.Context, image []byte) ([]detection.RawDetection, error) {
	d.started <- struct{}{}
	<-d.release
	return []detection.RawDetection{{Label: string(image), Confidence: 0.9}}, nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, time.Millisecond)
}

func TestManager_PassesThrough(t *testing.T) {
	d := newBlockingDetector()
	close(d.release)
	m := NewManager(d, 2, 0)

	raw, err := m.Detect(context.Background(), []byte("tomato"))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "tomato", raw[0].Label)
	assert.Equal(t, "blocking", m.Name())
	assert.Equal(t, Status{Workers: 2, ProcessedCount: 1}, m.GetQueueStatus())
}

func TestManager_QueueFull(t *testing.T) {
	d := newBlockingDetector()
	m := NewManager(d, 1, 1)
	ctx := context.Background()

	done := make(chan error, 2)
	go func() { _, err := m.Detect(ctx, []byte("a")); done <- err }()
	<-d.started

	go func() { _, err := m.Detect(ctx, []byte("b")); done <- err }()
	waitFor(t, func() bool { return m.GetQueueStatus().Waiting == 1 })

	_, err := m.Detect(ctx, []byte("c"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.ErrorIs(t, err, common.ErrServiceUnavailable)

	close(d.release)
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	st := m.GetQueueStatus()
	assert.Equal(t, int64(2), st.ProcessedCount)
	assert.Equal(t, 0, st.Waiting)
	assert.Equal(t, 0, st.Running)
}

func TestManager_WaitHonorsContext(t *testing.T) {
	d := newBlockingDetector()
	m := NewManager(d, 1, 5)

	go func() { _, _ = m.Detect(context.Background(), []byte("a")) }()
	<-d.started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := m.Detect(ctx, []byte("b"))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, 0, m.GetQueueStatus().Waiting)

	close(d.release)
}
