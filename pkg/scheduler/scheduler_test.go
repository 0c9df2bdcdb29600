package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berayon/review-bot/pkg/scheduler/mocks"
	"github.com/berayon/review-bot/pkg/watcher"
)

func TestScheduler_StartStop(t *testing.T) {
	var running int32
	mkWatcher := func(id string) *mocks.WatcherMock {
		return &mocks.WatcherMock{
			RunFunc: func(ctx context.Context) {
				atomic.AddInt32(&running, 1)
				<-ctx.Done()
				atomic.AddInt32(&running, -1)
			},
			StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: id} },
		}
	}

	w1, w2 := mkWatcher("1"), mkWatcher("2")
	s := New(w1, w2)
	s.Start(context.Background())

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&running) == 2 },
		time.Second, 5*time.Millisecond, "both watchers should be running")

	s.Stop()
	assert.Equal(t, int32(0), atomic.LoadInt32(&running), "Stop waits for watchers to exit")
	assert.Len(t, w1.RunCalls(), 1)
	assert.Len(t, w2.RunCalls(), 1)
}

func TestScheduler_WatchersIndependent(t *testing.T) {
	slowStarted := make(chan struct{})
	slow := &mocks.WatcherMock{
		RunFunc: func(ctx context.Context) {
			close(slowStarted)
			<-ctx.Done() // hangs until shutdown
		},
		StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "slow"} },
	}

	fastTicks := make(chan struct{}, 10)
	fast := &mocks.WatcherMock{
		RunFunc: func(ctx context.Context) {
			for {
				select {
				case <-ctx.Done():
					return
				case fastTicks <- struct{}{}:
					time.Sleep(time.Millisecond)
				}
			}
		},
		StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "fast"} },
	}

	s := New(slow, fast)
	s.Start(context.Background())
	defer s.Stop()

	<-slowStarted
	for i := 0; i < 3; i++ {
		select {
		case <-fastTicks:
		case <-time.After(time.Second):
			t.Fatal("fast watcher blocked by slow watcher")
		}
	}
}

func TestScheduler_RunOnce(t *testing.T) {
	good := &mocks.WatcherMock{
		TickFunc:   func(context.Context) error { return nil },
		StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "good"} },
	}
	bad := &mocks.WatcherMock{
		TickFunc:   func(context.Context) error { return errors.New("store down") },
		StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "bad"} },
	}

	t.Run("all succeed", func(t *testing.T) {
		s := New(good)
		require.NoError(t, s.RunOnce(context.Background()))
		assert.Len(t, good.TickCalls(), 1)
	})

	t.Run("partial failure reported", func(t *testing.T) {
		s := New(good, bad)
		err := s.RunOnce(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 watchers failed")
	})
}

func TestScheduler_Status(t *testing.T) {
	w1 := &mocks.WatcherMock{StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "1", Delivered: 3} }}
	w2 := &mocks.WatcherMock{StatusFunc: func() watcher.Stats { return watcher.Stats{AppID: "2"} }}

	s := New(w1, w2)
	st := s.Status()
	require.Len(t, st, 2)
	assert.Equal(t, "1", st[0].AppID)
	assert.Equal(t, 3, st[0].Delivered)
	assert.Equal(t, "2", st[1].AppID)
}
