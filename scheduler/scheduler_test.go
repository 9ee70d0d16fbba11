package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func countingTask(counter *int32) func(context.Context) {
	return func(ctx context.Context) {
		atomic.AddInt32(counter, 1)
	}
}

func TestScheduler_RunsPeriodically(t *testing.T) {
	var counter int32
	s := New("refresh", 50*time.Millisecond, countingTask(&counter))

	s.Start(context.Background(), true)
	assert.True(t, s.IsRunning())

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter) >= 3
	}, time.Second, 10*time.Millisecond)

	s.Stop()
	assert.False(t, s.IsRunning())

	stopped := atomic.LoadInt32(&counter)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&counter), "task ran after Stop")
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	s := New("refresh", 50*time.Millisecond, func(ctx context.Context) {})
	assert.NotPanics(t, s.Stop)
	assert.False(t, s.IsRunning())
}

func TestScheduler_DoubleStartIgnored(t *testing.T) {
	var counter int32
	s := New("refresh", time.Hour, countingTask(&counter))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx, true)
	s.Start(ctx, true)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&counter))

	s.Stop()
}

func TestScheduler_RestartAfterStop(t *testing.T) {
	var counter int32
	s := New("refresh", time.Hour, countingTask(&counter))

	s.Start(context.Background(), true)
	s.Stop()
	s.Start(context.Background(), true)
	defer s.Stop()

	assert.True(t, s.IsRunning())
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestScheduler_ContextCancellation(t *testing.T) {
	var counter int32
	s := New("refresh", 50*time.Millisecond, countingTask(&counter))

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, true)

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&counter) > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	time.Sleep(20 * time.Millisecond)
	afterCancel := atomic.LoadInt32(&counter)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, afterCancel, atomic.LoadInt32(&counter))

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestScheduler_TaskReceivesCancelledContextOnStop(t *testing.T) {
	done := make(chan struct{})
	s := New("refresh", time.Hour, func(ctx context.Context) {
		<-ctx.Done()
		close(done)
	})

	s.Start(context.Background(), true)
	s.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task context was not cancelled by Stop")
	}
}

func TestScheduler_ImmediateExecution(t *testing.T) {
	t.Run("With immediate execution", func(t *testing.T) {
		var counter int32
		s := New("refresh", time.Hour, countingTask(&counter))

		s.Start(context.Background(), true)
		defer s.Stop()

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&counter) == 1
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("Without immediate execution", func(t *testing.T) {
		var counter int32
		s := New("refresh", 100*time.Millisecond, countingTask(&counter))

		s.Start(context.Background(), false)
		defer s.Stop()

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int32(0), atomic.LoadInt32(&counter))

		assert.Eventually(t, func() bool {
			return atomic.LoadInt32(&counter) >= 1
		}, time.Second, 10*time.Millisecond)
	})
}

func TestScheduler_Name(t *testing.T) {
	assert.Equal(t, "dashboard-refresh", New("dashboard-refresh", time.Second, func(context.Context) {}).Name())
}
