package completion

import (
	"context"
	"time"
)

const lockName = "complete-expired-bookings"

// Результаты запуска (метка метрики)
const (
	ResultOK      = "ok"
	ResultSkipped = "skipped"
	ResultError   = "error"
)

// Worker периодически переводит закончившиеся бронирования в completed
type Worker struct {
	service  BookingService
	locker   Locker
	metrics  Metrics
	logger   Logger
	interval time.Duration
}

// NewWorker создает воркер обхода
func NewWorker(service BookingService, locker Locker, metrics Metrics, logger Logger, interval time.Duration) *Worker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Worker{
		service:  service,
		locker:   locker,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
	}
}

// Run выполняет обход сразу и затем по таймеру, пока не отменён ctx
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("CompletionWorker: started, interval=%s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("CompletionWorker: stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один обход под блокировкой и возвращает результат запуска
func (w *Worker) RunOnce(ctx context.Context) string {
	result := w.runOnce(ctx)
	w.metrics.ObserveSweep(result)
	return result
}

func (w *Worker) runOnce(ctx context.Context) string {
	release, ok, err := w.locker.TryAcquire(ctx, lockName)
	if err != nil {
		w.logger.Error("CompletionWorker: failed to acquire lock: %v", err)
		return ResultError
	}
	if !ok {
		w.logger.Info("CompletionWorker: another instance is sweeping, skipping")
		return ResultSkipped
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			w.logger.Warn("CompletionWorker: failed to release lock: %v", err)
		}
	}()

	count, err := w.service.CompleteExpiredBookings(ctx, nil)
	if err != nil {
		w.logger.Error("CompletionWorker: sweep failed: %v", err)
		return ResultError
	}

	if count > 0 {
		w.logger.Info("CompletionWorker: completed %d bookings", count)
	}
	return ResultOK
}
