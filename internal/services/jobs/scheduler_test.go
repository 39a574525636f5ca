package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) SendAlert(_ context.Context, message string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
	return nil
}

func (a *recordingAlerter) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.messages)
}

// immediateJob запускается сразу и сообщает о каждом прогоне
type immediateJob struct {
	name  string
	runs  atomic.Int32
	fails int32 // сколько первых прогонов падает
	done  chan struct{}
}

func (j *immediateJob) Name() string                    { return j.name }
func (j *immediateJob) NextRun(now time.Time) time.Time { return now }

func (j *immediateJob) Run(context.Context) error {
	n := j.runs.Add(1)
	if n <= j.fails {
		return errors.New("attempt failed")
	}
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func newTestScheduler(alerter *recordingAlerter) *Scheduler {
	s := NewScheduler(discardLogger(), alerter)
	s.retries = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}
	return s
}

func TestScheduler_RetriesUntilSuccess(t *testing.T) {
	alerter := &recordingAlerter{}
	s := newTestScheduler(alerter)
	job := &immediateJob{name: "flaky", fails: 2, done: make(chan struct{}, 1)}
	s.Register(job)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not succeed")
	}
	cancel()
	s.Wait()

	assert.GreaterOrEqual(t, job.runs.Load(), int32(3))
	assert.Zero(t, alerter.count())
}

func TestScheduler_AlertsAfterAllRetries(t *testing.T) {
	alerter := &recordingAlerter{}
	s := newTestScheduler(alerter)
	job := &immediateJob{name: "broken", fails: 1 << 30}

	attemptErrors := s.executeJobWithRetry(context.Background(), job)
	require.Len(t, attemptErrors, 4)
	assert.Equal(t, 4, attemptErrors[3].attempt)

	s.sendAlert(context.Background(), job.Name(), attemptErrors)
	require.Equal(t, 1, alerter.count())
	assert.Contains(t, alerter.messages[0], "Job: broken")
	assert.Contains(t, alerter.messages[0], "Attempt 4: attempt failed")
}

func TestScheduler_StopsOnCancelDuringRetry(t *testing.T) {
	s := newTestScheduler(&recordingAlerter{})
	s.retries = []time.Duration{time.Hour}
	job := &immediateJob{name: "slow", fails: 1 << 30}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	attemptErrors := s.executeJobWithRetry(ctx, job)
	require.Len(t, attemptErrors, 2)
	assert.ErrorIs(t, attemptErrors[1].err, context.Canceled)
}

func TestScheduler_NoJobs(t *testing.T) {
	s := newTestScheduler(nil)
	require.NoError(t, s.Start(context.Background()))
	s.Wait()
}
