package repository

import (
	"context"
	"time"

	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/db"
	"venuebook/internal/pkg/pgconv"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
)

const jobsTable = "retry_jobs"

var jobColumns = []any{
	"id",
	"job_type",
	"payload",
	"priority",
	"status",
	"retry_count",
	"max_retries",
	"scheduled_at",
	"next_retry_at",
	"last_error",
	"locked_by",
	"updated_at",
}

type JobRepository struct{}

func NewJobRepository() *JobRepository {
	return &JobRepository{}
}

func (r *JobRepository) Enqueue(ctx context.Context, dbtx db.DBTX, job *retryjob.Job) error {
	ds := dialect.Insert(jobsTable).Rows(goqu.Record{
		"id":            job.ID(),
		"job_type":      job.JobType().String(),
		"payload":       goqu.L("?::jsonb", string(job.Payload())),
		"priority":      job.Priority(),
		"status":        job.Status().String(),
		"retry_count":   job.RetryCount(),
		"max_retries":   job.MaxRetries(),
		"scheduled_at":  job.ScheduledAt(),
		"next_retry_at": job.NextRetryAt(),
		"last_error":    job.LastError(),
		"locked_by":     job.LockedBy(),
		"updated_at":    job.UpdatedAt(),
	})

	query, _, err := ds.ToSQL()
	if err != nil {
		return wrapDBErr("failed to build job insert query", err)
	}

	if _, err := dbtx.Exec(ctx, query); err != nil {
		return wrapDBErr("failed to enqueue job", err)
	}
	return nil
}

// ClaimBatch flips up to limit due jobs to processing in one statement and
// returns them. SKIP LOCKED keeps two overlapping workers from claiming the
// same rows; the locked_by stamp makes a stuck claim attributable.
func (r *JobRepository) ClaimBatch(ctx context.Context, dbtx db.DBTX, now time.Time, limit int, workerID string) ([]*retryjob.Job, error) {
	sub := dialect.From(jobsTable).
		Select("id").
		Where(goqu.Ex{
			"status":        retryjob.StatusPending.String(),
			"next_retry_at": goqu.Op{"lte": now},
		}).
		Order(goqu.I("priority").Desc(), goqu.I("scheduled_at").Asc()).
		Limit(uint(limit)).
		ForUpdate(exp.SkipLocked)

	ds := dialect.Update(jobsTable).
		Set(goqu.Record{
			"status":     retryjob.StatusProcessing.String(),
			"locked_by":  workerID,
			"updated_at": now,
		}).
		Where(goqu.C("id").In(sub)).
		Returning(jobColumns...)

	query, _, err := ds.ToSQL()
	if err != nil {
		return nil, wrapDBErr("failed to build job claim query", err)
	}

	rows, err := dbtx.Query(ctx, query)
	if err != nil {
		return nil, wrapDBErr("failed to claim job batch", err)
	}
	defer rows.Close()

	var jobs []*retryjob.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("failed to iterate claimed job rows", err)
	}
	return jobs, nil
}

// Finish persists the outcome the domain computed: completed, re-pending
// with a backoff, or terminally failed.
func (r *JobRepository) Finish(ctx context.Context, dbtx db.DBTX, job *retryjob.Job) error {
	ds := dialect.Update(jobsTable).
		Set(goqu.Record{
			"status":        job.Status().String(),
			"retry_count":   job.RetryCount(),
			"next_retry_at": job.NextRetryAt(),
			"last_error":    job.LastError(),
			"locked_by":     job.LockedBy(),
			"updated_at":    job.UpdatedAt(),
		}).
		Where(goqu.Ex{"id": job.ID()})

	query, _, err := ds.ToSQL()
	if err != nil {
		return wrapDBErr("failed to build job finish query", err)
	}

	if _, err := dbtx.Exec(ctx, query); err != nil {
		return wrapDBErr("failed to finish job", err)
	}
	return nil
}

// RequeueStuck returns jobs whose worker died mid-claim to the pending
// pool. A processing row untouched since before the cutoff has no live
// owner; handlers are idempotent, so re-running one that actually finished
// is harmless.
func (r *JobRepository) RequeueStuck(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error) {
	ds := dialect.Update(jobsTable).
		Set(goqu.Record{
			"status":    retryjob.StatusPending.String(),
			"locked_by": nil,
		}).
		Where(goqu.Ex{
			"status":     retryjob.StatusProcessing.String(),
			"updated_at": goqu.Op{"lte": cutoff},
		})

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build stuck job requeue query", err)
	}

	tag, err := dbtx.Exec(ctx, query)
	if err != nil {
		return 0, wrapDBErr("failed to requeue stuck jobs", err)
	}
	return tag.RowsAffected(), nil
}

func (r *JobRepository) CountPending(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error) {
	ds := dialect.From(jobsTable).
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{
			"status":        retryjob.StatusPending.String(),
			"next_retry_at": goqu.Op{"lte": now},
		})

	query, _, err := ds.ToSQL()
	if err != nil {
		return 0, wrapDBErr("failed to build pending job count query", err)
	}

	var count int64
	if err := dbtx.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, wrapDBErr("failed to count pending jobs", err)
	}
	return count, nil
}

func scanJob(row rowScanner) (*retryjob.Job, error) {
	var (
		id          uuid.UUID
		jobType     string
		payload     []byte
		priority    int
		status      string
		retryCount  int
		maxRetries  int
		scheduledAt time.Time
		nextRetryAt time.Time
		lastError   *string
		lockedBy    *string
		updatedAt   time.Time
	)
	err := row.Scan(
		&id, &jobType, &payload, &priority, &status, &retryCount,
		&maxRetries, &scheduledAt, &nextRetryAt, &lastError, &lockedBy, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, notFoundErr("job not found")
		}
		return nil, wrapDBErr("failed to scan job row", err)
	}

	return retryjob.ReconstructJob(
		id,
		retryjob.JobType(jobType),
		payload,
		priority,
		retryjob.Status(status),
		retryCount,
		maxRetries,
		scheduledAt,
		nextRetryAt,
		lastError,
		lockedBy,
		updatedAt,
	), nil
}
