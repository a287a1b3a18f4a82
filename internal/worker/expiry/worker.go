package expiry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m04kA/SMC-PropertyService/internal/service/bookings/models"
)

// Expirer переводит просроченные PENDING бронирования в EXPIRED
type Expirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (*models.ExpireResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var ErrWorkerNotConfigured = errors.New("expiry: worker missing dependencies")

const defaultInterval = time.Minute

// Worker периодически запускает просрочку бронирований
type Worker struct {
	expirer  Expirer
	interval time.Duration
	now      func() time.Time
	logger   Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker создает воркер просрочки
func NewWorker(expirer Expirer, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		expirer:  expirer,
		interval: interval,
		now:      time.Now,
		logger:   logger,
	}
}

// Run блокируется до отмены ctx. Первый прогон выполняется сразу.
func (w *Worker) Run(ctx context.Context) error {
	if w.expirer == nil || w.logger == nil {
		return ErrWorkerNotConfigured
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce один прогон. Ошибки логируются, следующий тик повторит попытку.
func (w *Worker) RunOnce(ctx context.Context) int {
	res, err := w.expirer.ExpireOverdue(ctx, w.now().UTC())
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("ExpiryWorker: run failed: %v", err)
		}
		return 0
	}
	if n := len(res.ExpiredIDs); n > 0 {
		w.logger.Info("ExpiryWorker: expired %d bookings", n)
		return n
	}
	return 0
}

// Start запускает Run в отдельной горутине
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Warn("ExpiryWorker: stopped: %v", err)
		}
	}(w.done)
	w.logger.Info("ExpiryWorker: started, interval=%s", w.interval)
}

// Stop останавливает воркер и ждет завершения текущего прогона
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	w.logger.Info("ExpiryWorker: stopped")
}
