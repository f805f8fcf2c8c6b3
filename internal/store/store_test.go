package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDoRecordsSuccess(t *testing.T) {
	tr := NewTracker("test", nil)

	res := tr.Do("fetch", func() (bool, string) { return true, "fetched" })

	require.True(t, res.Success)
	require.Equal(t, "fetched", res.Message)
	require.False(t, tr.Loading())
	require.Empty(t, tr.Err())

	ops := tr.Ops()
	require.Contains(t, ops, "fetch")
	require.False(t, ops["fetch"].InFlight)
	require.Empty(t, ops["fetch"].Error)
	require.NotEmpty(t, ops["fetch"].RequestID)
}

func TestDoRecordsFailure(t *testing.T) {
	tr := NewTracker("test", nil)

	res := tr.Do("fetch", func() (bool, string) { return false, "backend down" })

	require.False(t, res.Success)
	require.Equal(t, "backend down", tr.Err())
	require.Equal(t, "backend down", tr.Ops()["fetch"].Error)

	tr.ClearError()
	require.Empty(t, tr.Err())
}

func TestDoClearsStaleErrorOnNewAction(t *testing.T) {
	tr := NewTracker("test", nil)

	tr.Do("fetch", func() (bool, string) { return false, "backend down" })
	require.NotEmpty(t, tr.Err())

	tr.Do("fetch", func() (bool, string) { return true, "fetched" })
	require.Empty(t, tr.Err())
	require.Empty(t, tr.Ops()["fetch"].Error)
}

func TestLoadingWhileInFlight(t *testing.T) {
	tr := NewTracker("test", nil)
	entered := make(chan struct{})
	release := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		tr.Do("slow", func() (bool, string) {
			close(entered)
			<-release
			return true, "ok"
		})
	}()

	<-entered
	require.True(t, tr.Loading())
	require.True(t, tr.Ops()["slow"].InFlight)

	close(release)
	<-done
	require.False(t, tr.Loading())
}

func TestDoRecoversPanic(t *testing.T) {
	tr := NewTracker("test", nil)

	var res Result
	require.NotPanics(t, func() {
		res = tr.Do("explode", func() (bool, string) { panic("boom") })
	})

	require.False(t, res.Success)
	require.Equal(t, "unexpected error, please retry", res.Message)
	require.False(t, tr.Loading(), "a panic must not leave the action stuck in flight")
	require.Equal(t, res.Message, tr.Err())
}

func TestConcurrentActionsDoNotRace(t *testing.T) {
	tr := NewTracker("test", nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Do("fetch", func() (bool, string) {
				time.Sleep(time.Millisecond)
				return true, "ok"
			})
		}()
	}
	wg.Wait()

	require.False(t, tr.Loading())
}

func TestRunAllAllSucceed(t *testing.T) {
	ok := func(ctx context.Context) Result { return Result{Success: true, Message: "loaded"} }

	res := RunAll(context.Background(), ok, ok, ok)

	require.True(t, res.Success)
	require.Equal(t, "all data loaded", res.Message)
}

func TestRunAllJoinsFailures(t *testing.T) {
	ok := func(ctx context.Context) Result { return Result{Success: true, Message: "loaded"} }
	failA := func(ctx context.Context) Result { return Result{Success: false, Message: "pool unavailable"} }
	failB := func(ctx context.Context) Result { return Result{Success: false, Message: "persons unavailable"} }

	res := RunAll(context.Background(), failA, ok, failB)

	require.False(t, res.Success)
	require.Equal(t, "pool unavailable; persons unavailable", res.Message)
}

func TestRunAllRunsConcurrently(t *testing.T) {
	var mu sync.Mutex
	active, peak := 0, 0

	action := func(ctx context.Context) Result {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		active--
		mu.Unlock()
		return Result{Success: true}
	}

	res := RunAll(context.Background(), action, action, action)

	require.True(t, res.Success)
	require.Greater(t, peak, 1, "actions must overlap")
}

func TestRunAllNoActions(t *testing.T) {
	res := RunAll(context.Background())
	require.True(t, res.Success)
}
