package usecase

import (
	"context"
	"log/slog"
	"time"

	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/clock"
	"venuebook/internal/pkg/config"
	"venuebook/internal/pkg/errs"
	"venuebook/internal/usecase/shared"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/xid"
)

// Handler executes one job attempt. Handlers must be idempotent: worker
// overlap can deliver the same job twice.
type Handler func(ctx context.Context, payload []byte) error

// HandlerRegistry maps a job type to the handler that owns its payload
// schema.
type HandlerRegistry map[retryjob.JobType]Handler

// QueueUseCase drains the durable retry queue. RunBatch is triggered
// externally by a scheduler, so each call does a bounded amount of work.
type QueueUseCase interface {
	Enqueue(ctx context.Context, jobType retryjob.JobType, payload any, priority, maxRetries int) (uuid.UUID, error)
	RunBatch(ctx context.Context) (*shared.QueueRunReport, error)
	RequeueStuck(ctx context.Context) (int64, error)
	PendingCount(ctx context.Context) (int64, error)
}

type queueUseCaseImpl struct {
	uow      shared.UnitOfWork
	jobs     shared.JobRepository
	handlers HandlerRegistry
	clock    clock.Clock
	cfg      config.QueueConfig
	workerID string
}

func NewQueueUseCase(
	uow shared.UnitOfWork,
	jobs shared.JobRepository,
	handlers HandlerRegistry,
	clk clock.Clock,
	cfg config.QueueConfig,
) QueueUseCase {
	return &queueUseCaseImpl{
		uow:      uow,
		jobs:     jobs,
		handlers: handlers,
		clock:    clk,
		cfg:      cfg,
		workerID: "worker-" + xid.New().String(),
	}
}

// Enqueue persists a job for the next worker pass.
func (u *queueUseCaseImpl) Enqueue(ctx context.Context, jobType retryjob.JobType, payload any, priority, maxRetries int) (uuid.UUID, error) {
	raw, err := retryjob.EncodePayload(payload)
	if err != nil {
		return uuid.Nil, err
	}
	job, err := retryjob.NewJob(u.clock.Now(), jobType, raw, priority, maxRetries)
	if err != nil {
		return uuid.Nil, err
	}
	err = u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return u.jobs.Enqueue(ctx, dbtx, job)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return job.ID(), nil
}

// RunBatch claims up to the configured batch of due jobs, highest priority
// first and oldest within a priority, dispatches each to its handler and
// persists the outcome. A failed outcome write leaves the job in
// processing state for RequeueStuck to reclaim.
func (u *queueUseCaseImpl) RunBatch(ctx context.Context) (*shared.QueueRunReport, error) {
	var claimed []*retryjob.Job
	err := u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		jobs, err := u.jobs.ClaimBatch(ctx, dbtx, u.clock.Now(), u.cfg.BatchSize, u.workerID)
		if err != nil {
			return err
		}
		claimed = jobs
		return nil
	})
	if err != nil {
		return nil, err
	}

	report := &shared.QueueRunReport{Claimed: len(claimed)}
	for _, job := range claimed {
		u.runOne(ctx, job, report)
	}

	err = u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		remaining, err := u.jobs.CountPending(ctx, dbtx, u.clock.Now())
		if err != nil {
			return err
		}
		report.Remaining = remaining
		return nil
	})
	if err != nil {
		return nil, err
	}

	if report.Claimed > 0 {
		slog.Info("retry queue batch drained",
			"claimed", report.Claimed,
			"succeeded", report.Succeeded,
			"retried", report.Retried,
			"failed", report.Failed,
			"remaining", report.Remaining,
			"worker_id", u.workerID,
		)
	}
	return report, nil
}

func (u *queueUseCaseImpl) runOne(ctx context.Context, job *retryjob.Job, report *shared.QueueRunReport) {
	handleErr := u.dispatch(ctx, job)
	now := u.clock.Now()
	if handleErr == nil {
		job.MarkCompleted(now)
		report.Succeeded++
	} else {
		retryable := job.ScheduleRetry(now, u.retryDelay(job.RetryCount()), handleErr.Error())
		if retryable {
			report.Retried++
			slog.Warn("job attempt failed, scheduled retry",
				"job_id", job.ID(),
				"job_type", job.JobType(),
				"retry_count", job.RetryCount(),
				"next_retry_at", job.NextRetryAt(),
				"error", handleErr.Error(),
			)
		} else {
			report.Failed++
			slog.Error("job exhausted retries, marked failed",
				"job_id", job.ID(),
				"job_type", job.JobType(),
				"retry_count", job.RetryCount(),
				"error", handleErr.Error(),
			)
		}
	}

	err := u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		return u.jobs.Finish(ctx, dbtx, job)
	})
	if err != nil {
		slog.Error("job outcome write failed, visibility timeout will requeue",
			"job_id", job.ID(), "error", err.Error())
	}
}

func (u *queueUseCaseImpl) dispatch(ctx context.Context, job *retryjob.Job) error {
	handler, ok := u.handlers[job.JobType()]
	if !ok {
		return errs.New("no handler registered for job type " + string(job.JobType()))
	}
	return handler(ctx, job.Payload())
}

// retryDelay computes the wait before attempt retryCount+1. The schedule is
// deterministic because it lands in a persisted next_retry_at column; the
// bounded claim batch already spreads worker load.
func (u *queueUseCaseImpl) retryDelay(retryCount int) time.Duration {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = u.cfg.InitialBackoff
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = u.cfg.MaxBackoff
	eb.MaxElapsedTime = 0
	eb.Reset()

	delay := eb.NextBackOff()
	for i := 0; i < retryCount; i++ {
		delay = eb.NextBackOff()
	}
	return delay
}

// RequeueStuck returns jobs stuck in processing state to pending. Covers
// workers that died between claim and outcome write.
func (u *queueUseCaseImpl) RequeueStuck(ctx context.Context) (int64, error) {
	cutoff := u.clock.Now().Add(-u.cfg.VisibilityTimeout)
	var requeued int64
	err := u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		n, err := u.jobs.RequeueStuck(ctx, dbtx, cutoff)
		if err != nil {
			return err
		}
		requeued = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if requeued > 0 {
		slog.Warn("requeued stuck jobs", "count", requeued, "cutoff", cutoff)
	}
	return requeued, nil
}

// PendingCount reports how many jobs are due right now.
func (u *queueUseCaseImpl) PendingCount(ctx context.Context) (int64, error) {
	var pending int64
	err := u.uow.WithDB(ctx, func(ctx context.Context, dbtx db.DBTX) error {
		n, err := u.jobs.CountPending(ctx, dbtx, u.clock.Now())
		if err != nil {
			return err
		}
		pending = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return pending, nil
}
