package retryjob

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnknownJobType     = errors.New("unknown job type")
	ErrEmptyPayload       = errors.New("job payload is required")
	ErrNegativeMaxRetries = errors.New("max retries cannot be negative")
)

// Job is one durable unit of deferred work. The row survives process
// restarts; a worker claims it, runs the handler, and writes the outcome
// back. Handlers must be idempotent because overlap can hand the same job
// to two workers in the worst case.
type Job struct {
	id          uuid.UUID
	jobType     JobType
	payload     []byte
	priority    int
	status      Status
	retryCount  int
	maxRetries  int
	scheduledAt time.Time
	nextRetryAt time.Time
	lastError   *string
	lockedBy    *string
	updatedAt   time.Time
}

func NewJob(now time.Time, jobType JobType, payload []byte, priority, maxRetries int) (*Job, error) {
	if !jobType.IsValid() {
		return nil, ErrUnknownJobType
	}
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	if maxRetries < 0 {
		return nil, ErrNegativeMaxRetries
	}

	return &Job{
		id:          uuid.New(),
		jobType:     jobType,
		payload:     payload,
		priority:    priority,
		status:      StatusPending,
		retryCount:  0,
		maxRetries:  maxRetries,
		scheduledAt: now,
		nextRetryAt: now,
		updatedAt:   now,
	}, nil
}

func ReconstructJob(
	id uuid.UUID,
	jobType JobType,
	payload []byte,
	priority int,
	status Status,
	retryCount, maxRetries int,
	scheduledAt, nextRetryAt time.Time,
	lastError, lockedBy *string,
	updatedAt time.Time,
) *Job {
	return &Job{
		id:          id,
		jobType:     jobType,
		payload:     payload,
		priority:    priority,
		status:      status,
		retryCount:  retryCount,
		maxRetries:  maxRetries,
		scheduledAt: scheduledAt,
		nextRetryAt: nextRetryAt,
		lastError:   lastError,
		lockedBy:    lockedBy,
		updatedAt:   updatedAt,
	}
}

// Due reports whether a worker may claim the job right now.
func (j *Job) Due(now time.Time) bool {
	return j.status == StatusPending && !now.Before(j.nextRetryAt)
}

func (j *Job) MarkProcessing(workerID string, now time.Time) {
	j.status = StatusProcessing
	j.lockedBy = &workerID
	j.updatedAt = now
}

func (j *Job) MarkCompleted(now time.Time) {
	j.status = StatusCompleted
	j.lockedBy = nil
	j.updatedAt = now
}

// ScheduleRetry records one handler failure. It returns true when the job
// goes back to pending for another attempt, false when retries are spent
// and the job is now terminally failed.
func (j *Job) ScheduleRetry(now time.Time, backoff time.Duration, cause string) bool {
	j.retryCount++
	j.lastError = &cause
	j.lockedBy = nil
	j.updatedAt = now

	if j.retryCount > j.maxRetries {
		j.status = StatusFailed
		return false
	}
	j.status = StatusPending
	j.nextRetryAt = now.Add(backoff)
	return true
}

func (j *Job) ID() uuid.UUID          { return j.id }
func (j *Job) JobType() JobType       { return j.jobType }
func (j *Job) Payload() []byte        { return j.payload }
func (j *Job) Priority() int          { return j.priority }
func (j *Job) Status() Status         { return j.status }
func (j *Job) RetryCount() int        { return j.retryCount }
func (j *Job) MaxRetries() int        { return j.maxRetries }
func (j *Job) ScheduledAt() time.Time { return j.scheduledAt }
func (j *Job) NextRetryAt() time.Time { return j.nextRetryAt }
func (j *Job) LastError() *string     { return j.lastError }
func (j *Job) LockedBy() *string      { return j.lockedBy }
func (j *Job) UpdatedAt() time.Time   { return j.updatedAt }
