//go:build unit || e2e

package builder

import (
	"time"

	"venuebook/internal/domain/retryjob"

	"github.com/google/uuid"
)

type JobBuilder struct {
	ID          uuid.UUID
	JobType     retryjob.JobType
	Payload     []byte
	Priority    int
	Status      retryjob.Status
	RetryCount  int
	MaxRetries  int
	ScheduledAt time.Time
	NextRetryAt time.Time
	LastError   *string
	LockedBy    *string
	UpdatedAt   time.Time
}

func NewJobBuilder() *JobBuilder {
	now := time.Now().UTC()
	return &JobBuilder{
		ID:          uuid.New(),
		JobType:     retryjob.JobTypeCleanupOrphanedBlob,
		Payload:     []byte(`{"url":"https://blob.example.com/deposits/orphan.png"}`),
		Priority:    retryjob.PriorityNormal,
		Status:      retryjob.StatusPending,
		RetryCount:  0,
		MaxRetries:  5,
		ScheduledAt: now.Add(-time.Minute),
		NextRetryAt: now.Add(-time.Minute),
		UpdatedAt:   now.Add(-time.Minute),
	}
}

func (j *JobBuilder) With(mutate func(*JobBuilder)) *JobBuilder {
	mutate(j)
	return j
}

// Build methods
func (j *JobBuilder) BuildDomain() *retryjob.Job {
	return retryjob.ReconstructJob(
		j.ID,
		j.JobType,
		j.Payload,
		j.Priority,
		j.Status,
		j.RetryCount,
		j.MaxRetries,
		j.ScheduledAt,
		j.NextRetryAt,
		j.LastError,
		j.LockedBy,
		j.UpdatedAt,
	)
}

// Fluent builder methods
func (j *JobBuilder) WithJobType(jt retryjob.JobType) *JobBuilder {
	j.JobType = jt
	return j
}

func (j *JobBuilder) WithPayload(payload []byte) *JobBuilder {
	j.Payload = payload
	return j
}

func (j *JobBuilder) WithPriority(priority int) *JobBuilder {
	j.Priority = priority
	return j
}

func (j *JobBuilder) WithStatus(status retryjob.Status) *JobBuilder {
	j.Status = status
	return j
}

func (j *JobBuilder) WithRetries(count, max int) *JobBuilder {
	j.RetryCount = count
	j.MaxRetries = max
	return j
}

func (j *JobBuilder) WithNextRetryAt(at time.Time) *JobBuilder {
	j.NextRetryAt = at
	return j
}

func (j *JobBuilder) WithLockedBy(workerID string) *JobBuilder {
	j.LockedBy = &workerID
	return j
}
