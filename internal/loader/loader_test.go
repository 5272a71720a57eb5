package loader

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamar-Folarin/portfolio-service/internal/models"
)

type reply struct {
	portfolio *models.Portfolio
	err       error
}

// scriptedFetcher answers the nth call with whatever is sent on replies[n]
type scriptedFetcher struct {
	calls   int32
	replies []chan reply
}

func newScriptedFetcher(n int) *scriptedFetcher {
	f := &scriptedFetcher{replies: make([]chan reply, n)}
	for i := range f.replies {
		f.replies[i] = make(chan reply, 1)
	}
	return f
}

func (f *scriptedFetcher) FetchAll(ctx context.Context) (*models.Portfolio, error) {
	n := int(atomic.AddInt32(&f.calls, 1))
	if n > len(f.replies) {
		return nil, errors.New("unexpected fetch")
	}
	r := <-f.replies[n-1]
	return r.portfolio, r.err
}

func (f *scriptedFetcher) Calls() int {
	return int(atomic.LoadInt32(&f.calls))
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func portfolioFor(login string, repos ...string) *models.Portfolio {
	p := &models.Portfolio{User: &models.User{Login: login}}
	for _, name := range repos {
		p.Repos = append(p.Repos, models.Repository{Name: name})
	}
	p.Stats = models.Stats{TotalRepos: len(repos)}
	return p
}

func TestLoader_InitialState(t *testing.T) {
	assert.Equal(t, models.StateIdle, New(newScriptedFetcher(0), newTestLogger(), Options{}).Snapshot().State)
	assert.Equal(t, models.StateLoading, New(newScriptedFetcher(0), newTestLogger(), Options{AutoFetch: true}).Snapshot().State)
}

func TestLoader_RefetchSuccessThenFailure(t *testing.T) {
	f := newScriptedFetcher(2)
	var (
		successes []*models.Portfolio
		failures  []error
	)
	l := New(f, newTestLogger(), Options{
		OnSuccess: func(p *models.Portfolio) { successes = append(successes, p) },
		OnError:   func(err error) { failures = append(failures, err) },
	})

	f.replies[0] <- reply{portfolio: portfolioFor("octocat", "a", "b")}
	status, err := l.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StateSuccess, status.State)
	assert.Equal(t, "octocat", status.User.Login)
	assert.Len(t, status.Repos, 2)
	assert.Equal(t, 2, status.Stats.TotalRepos)
	assert.Empty(t, status.Error)
	assert.False(t, status.LastSuccess.IsZero())
	assert.Len(t, successes, 1)

	f.replies[1] <- reply{err: errors.New("GitHub API rate limit exceeded. Resets at unknown time")}
	status, err = l.Refetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, models.StateError, status.State)
	assert.Equal(t, "GitHub API rate limit exceeded. Resets at unknown time", status.Error)
	// prior data is kept
	assert.Equal(t, "octocat", status.User.Login)
	assert.Len(t, status.Repos, 2)
	assert.Len(t, failures, 1)
	assert.Len(t, successes, 1)
}

func TestLoader_ConcurrentRefetchesShareOneLoad(t *testing.T) {
	f := newScriptedFetcher(1)
	l := New(f, newTestLogger(), Options{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := l.Refetch(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, models.StateSuccess, status.State)
		}()
	}

	require.Eventually(t, func() bool { return f.Calls() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, models.StateLoading, l.Snapshot().State)
	time.Sleep(20 * time.Millisecond)
	f.replies[0] <- reply{portfolio: portfolioFor("octocat")}
	wg.Wait()

	assert.Equal(t, 1, f.Calls())
	assert.Equal(t, uint64(1), l.Snapshot().Generation)
}

func TestLoader_StaleResultIsDiscarded(t *testing.T) {
	f := newScriptedFetcher(2)
	l := New(f, newTestLogger(), Options{})

	older := make(chan models.LoadStatus, 1)
	go func() {
		status, _ := l.Refetch(context.Background())
		older <- status
	}()
	require.Eventually(t, func() bool { return f.Calls() == 1 }, time.Second, 5*time.Millisecond)

	newer := make(chan models.LoadStatus, 1)
	go func() {
		status, _ := l.ForceRefetch(context.Background())
		newer <- status
	}()
	require.Eventually(t, func() bool { return f.Calls() == 2 }, time.Second, 5*time.Millisecond)

	// the older request answers first but it has been superseded
	f.replies[0] <- reply{portfolio: portfolioFor("old")}
	<-older
	assert.Equal(t, models.StateLoading, l.Snapshot().State)
	assert.Nil(t, l.Snapshot().User)

	f.replies[1] <- reply{portfolio: portfolioFor("new")}
	status := <-newer
	assert.Equal(t, models.StateSuccess, status.State)
	assert.Equal(t, "new", status.User.Login)
	assert.Equal(t, uint64(2), status.Generation)
}

func TestLoader_LateStaleResultDoesNotOverwrite(t *testing.T) {
	f := newScriptedFetcher(2)
	l := New(f, newTestLogger(), Options{})

	older := make(chan struct{})
	go func() {
		l.Refetch(context.Background())
		close(older)
	}()
	require.Eventually(t, func() bool { return f.Calls() == 1 }, time.Second, 5*time.Millisecond)

	f.replies[1] <- reply{portfolio: portfolioFor("new")}
	go l.ForceRefetch(context.Background())
	require.Eventually(t, func() bool { return l.Snapshot().State == models.StateSuccess }, time.Second, 5*time.Millisecond)

	f.replies[0] <- reply{err: errors.New("late failure")}
	<-older

	status := l.Snapshot()
	assert.Equal(t, models.StateSuccess, status.State)
	assert.Equal(t, "new", status.User.Login)
	assert.Empty(t, status.Error)
}

func TestLoader_SnapshotIsACopy(t *testing.T) {
	f := newScriptedFetcher(1)
	l := New(f, newTestLogger(), Options{})
	f.replies[0] <- reply{portfolio: portfolioFor("octocat", "a")}
	_, err := l.Refetch(context.Background())
	require.NoError(t, err)

	snap := l.Snapshot()
	snap.Repos[0].Name = "mutated"
	snap.User.Login = "mutated"

	again := l.Snapshot()
	assert.Equal(t, "a", again.Repos[0].Name)
	assert.Equal(t, "octocat", again.User.Login)
}

func TestLoader_StartAutoFetch(t *testing.T) {
	f := newScriptedFetcher(1)
	f.replies[0] <- reply{portfolio: portfolioFor("octocat")}
	l := New(f, newTestLogger(), Options{AutoFetch: true})

	l.Start(context.Background())

	require.Eventually(t, func() bool { return l.Snapshot().State == models.StateSuccess }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, f.Calls())
}

func TestLoader_StartWithoutAutoFetchDoesNothing(t *testing.T) {
	f := newScriptedFetcher(0)
	l := New(f, newTestLogger(), Options{})

	l.Start(context.Background())
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 0, f.Calls())
	assert.Equal(t, models.StateIdle, l.Snapshot().State)
}

func TestLoader_CallerCancellationLeavesLoadRunning(t *testing.T) {
	f := newScriptedFetcher(1)
	l := New(f, newTestLogger(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Refetch(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool { return f.Calls() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	f.replies[0] <- reply{portfolio: portfolioFor("octocat")}
	require.Eventually(t, func() bool { return l.Snapshot().State == models.StateSuccess }, time.Second, 5*time.Millisecond)
}

type callerKey struct{}

// namedFetcher answers each load with the portfolio named by its caller's
// context, once that name is released
type namedFetcher struct {
	mu      sync.Mutex
	release map[string]chan struct{}
}

func (f *namedFetcher) gate(name string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.release[name] == nil {
		f.release[name] = make(chan struct{})
	}
	return f.release[name]
}

func (f *namedFetcher) FetchAll(ctx context.Context) (*models.Portfolio, error) {
	name := ctx.Value(callerKey{}).(string)
	<-f.gate(name)
	return portfolioFor(name), nil
}

func TestLoader_GenerationFollowsIssueOrder(t *testing.T) {
	f := &namedFetcher{release: map[string]chan struct{}{}}
	l := New(f, newTestLogger(), Options{})

	first := make(chan models.LoadStatus, 1)
	go func() {
		status, _ := l.ForceRefetch(context.WithValue(context.Background(), callerKey{}, "first"))
		first <- status
	}()
	require.Eventually(t, func() bool { return l.Snapshot().Generation == 1 }, time.Second, 5*time.Millisecond)

	second := make(chan models.LoadStatus, 1)
	go func() {
		status, _ := l.ForceRefetch(context.WithValue(context.Background(), callerKey{}, "second"))
		second <- status
	}()
	require.Eventually(t, func() bool { return l.Snapshot().Generation == 2 }, time.Second, 5*time.Millisecond)

	// the later call answers first, then the earlier one arrives late
	close(f.gate("second"))
	status := <-second
	assert.Equal(t, "second", status.User.Login)

	close(f.gate("first"))
	<-first

	status = l.Snapshot()
	assert.Equal(t, models.StateSuccess, status.State)
	assert.Equal(t, "second", status.User.Login)
	assert.Equal(t, uint64(2), status.Generation)
}

func TestLoader_BeginIssuesGenerationsSynchronously(t *testing.T) {
	l := New(newScriptedFetcher(0), newTestLogger(), Options{})

	key1, gen1 := l.begin(true)
	key2, gen2 := l.begin(true)
	assert.Equal(t, uint64(1), gen1)
	assert.Equal(t, uint64(2), gen2)
	assert.NotEqual(t, key1, key2)

	// a plain refetch joins whatever is active
	key3, gen3 := l.begin(false)
	assert.Equal(t, key2, key3)
	assert.Equal(t, gen2, gen3)
	assert.Equal(t, models.StateLoading, l.Snapshot().State)
}
