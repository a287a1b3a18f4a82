package expiry

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PropertyService/internal/service/bookings/models"
	"github.com/m04kA/SMC-PropertyService/pkg/logger"
)

type stubExpirer struct {
	mu    sync.Mutex
	calls atomic.Int32
	nows  []time.Time
	ids   []int64
	err   error
}

func (s *stubExpirer) ExpireOverdue(_ context.Context, now time.Time) (*models.ExpireResult, error) {
	s.calls.Add(1)
	s.mu.Lock()
	s.nows = append(s.nows, now)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &models.ExpireResult{Cutoff: now, ExpiredIDs: s.ids}, nil
}

func TestWorker_RunOnce(t *testing.T) {
	fixed := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	stub := &stubExpirer{ids: []int64{1, 2}}
	w := NewWorker(stub, time.Hour, logger.NewNop())
	w.now = func() time.Time { return fixed }

	assert.Equal(t, 2, w.RunOnce(context.Background()))
	require.Len(t, stub.nows, 1)
	assert.Equal(t, fixed, stub.nows[0])
}

func TestWorker_RunOnce_ErrorIsSwallowed(t *testing.T) {
	stub := &stubExpirer{err: errors.New("db down")}
	w := NewWorker(stub, time.Hour, logger.NewNop())

	assert.Equal(t, 0, w.RunOnce(context.Background()))
}

func TestWorker_StartStop(t *testing.T) {
	stub := &stubExpirer{}
	w := NewWorker(stub, 10*time.Millisecond, logger.NewNop())

	w.Start(context.Background())
	assert.Eventually(t, func() bool { return stub.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	w.Stop()

	after := stub.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, stub.calls.Load())

	// повторный Stop безопасен
	w.Stop()
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewWorker(&stubExpirer{}, time.Hour, logger.NewNop())

	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorker_NotConfigured(t *testing.T) {
	w := NewWorker(nil, time.Second, logger.NewNop())
	assert.ErrorIs(t, w.Run(context.Background()), ErrWorkerNotConfigured)
}
