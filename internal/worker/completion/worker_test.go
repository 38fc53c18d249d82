package completion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PetSpace-BookingService/internal/infra/lock"
	"github.com/m04kA/PetSpace-BookingService/pkg/logger"
)

type fakeService struct {
	calls atomic.Int32
	count int
	err   error
}

func (f *fakeService) CompleteExpiredBookings(ctx context.Context, spaceID *int64) (int, error) {
	f.calls.Add(1)
	return f.count, f.err
}

type fakeLocker struct {
	held     bool
	err      error
	released int
}

func (f *fakeLocker) TryAcquire(ctx context.Context, name string) (lock.Release, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	if f.held {
		return nil, false, nil
	}
	return func(context.Context) error {
		f.released++
		return nil
	}, true, nil
}

type sweepMetrics struct{ results []string }

func (m *sweepMetrics) ObserveSweep(result string) { m.results = append(m.results, result) }

func TestWorker_RunOnce(t *testing.T) {
	tests := []struct {
		name      string
		locker    *fakeLocker
		svcErr    error
		want      string
		wantCalls int32
		released  int
	}{
		{"sweeps under lock", &fakeLocker{}, nil, ResultOK, 1, 1},
		{"lock held elsewhere", &fakeLocker{held: true}, nil, ResultSkipped, 0, 0},
		{"lock error", &fakeLocker{err: lock.ErrLockFailed}, nil, ResultError, 0, 0},
		{"service error releases lock", &fakeLocker{}, errors.New("db down"), ResultError, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{count: 2, err: tt.svcErr}
			m := &sweepMetrics{}
			w := NewWorker(svc, tt.locker, m, logger.Nop(), time.Minute)

			got := w.RunOnce(context.Background())

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, svc.calls.Load())
			assert.Equal(t, tt.released, tt.locker.released)
			assert.Equal(t, []string{tt.want}, m.results)
		})
	}
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	svc := &fakeService{}
	w := NewWorker(svc, lock.Noop{}, &sweepMetrics{}, logger.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return svc.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
