package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	"github.com/sensa-ai-tech/OATH/internal/ports/jobs"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

// defaultRetries паузы между попытками: now + 1m + 10m + 30m
var defaultRetries = []time.Duration{
	1 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// Scheduler управляет запуском периодических джоб
type Scheduler struct {
	jobs           []jobs.Job
	alerterService service.IAlerterService
	log            *slog.Logger
	retries        []time.Duration
	now            func() time.Time
	wg             sync.WaitGroup
}

func NewScheduler(log *slog.Logger, alerterService service.IAlerterService) *Scheduler {
	return &Scheduler{
		jobs:           make([]jobs.Job, 0),
		alerterService: alerterService,
		log:            log,
		retries:        defaultRetries,
		now:            time.Now,
	}
}

func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
	s.log.Debug("job registered", "job_name", job.Name(), "total_jobs", len(s.jobs))
}

// Start запускает все зарегистрированные джобы и сразу возвращает управление;
// остановка через отмену ctx, дождаться завершения - Wait
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Warn("no jobs registered, scheduler not started")
		return nil
	}

	s.log.Info("starting job scheduler", "jobs_count", len(s.jobs))

	for _, job := range s.jobs {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.runJob(ctx, job)
		}()
	}

	return nil
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	jobName := job.Name()
	for {
		now := s.now()
		timer := time.NewTimer(job.NextRun(now).Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.Info("job stopped by context", "job_name", jobName)
			return
		case <-timer.C:
			if attemptErrors := s.executeJobWithRetry(ctx, job); attemptErrors != nil {
				if ctx.Err() != nil {
					return
				}
				metrics.JobRuns.WithLabelValues(jobName, "failed").Inc()
				s.log.Error("job failed after all retries",
					"job_name", jobName,
					"attempts", len(attemptErrors),
					"last_error", attemptErrors[len(attemptErrors)-1].err,
				)
				s.sendAlert(ctx, jobName, attemptErrors)
			} else {
				metrics.JobRuns.WithLabelValues(jobName, "ok").Inc()
				s.log.Info("job executed successfully", "job_name", jobName)
			}
		}
	}
}

// jobAttemptError ошибка конкретной попытки выполнения джобы
type jobAttemptError struct {
	attempt int
	err     error
}

// executeJobWithRetry nil при успехе одной из попыток, иначе ошибки всех попыток
func (s *Scheduler) executeJobWithRetry(ctx context.Context, job jobs.Job) []jobAttemptError {
	var attemptErrors []jobAttemptError

	for attempt := 1; attempt <= len(s.retries)+1; attempt++ {
		if attempt > 1 {
			timer := time.NewTimer(s.retries[attempt-2])
			select {
			case <-ctx.Done():
				timer.Stop()
				return append(attemptErrors, jobAttemptError{attempt: attempt, err: ctx.Err()})
			case <-timer.C:
			}
		}

		err := job.Run(ctx)
		if err == nil {
			return nil
		}
		attemptErrors = append(attemptErrors, jobAttemptError{attempt: attempt, err: err})
		s.log.Warn("job attempt failed",
			"job_name", job.Name(),
			"attempt", attempt,
			"retries_remaining", len(s.retries)+1-attempt,
			"error", err,
		)
	}

	return attemptErrors
}

// sendAlert алертит на финальную ошибку после ретраев
func (s *Scheduler) sendAlert(ctx context.Context, jobName string, attemptErrors []jobAttemptError) {
	if s.alerterService == nil {
		return
	}

	var message strings.Builder
	message.WriteString("Scheduler: all retries exhausted\n\n")
	fmt.Fprintf(&message, "Job: %s\n\n", jobName)
	message.WriteString("Attempt errors:\n")
	for _, attemptErr := range attemptErrors {
		fmt.Fprintf(&message, "Attempt %d: %s\n", attemptErr.attempt, attemptErr.err)
	}

	if alertErr := s.alerterService.SendAlert(ctx, message.String()); alertErr != nil {
		s.log.Warn("failed to send job failure alert",
			"job_name", jobName,
			"error", alertErr,
		)
	}
}
