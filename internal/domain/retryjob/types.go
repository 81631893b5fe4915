package retryjob

type JobType string

const (
	JobTypeCleanupOrphanedBlob JobType = "cleanup_orphaned_blob"
	JobTypeSendResponseEmail   JobType = "send_response_email"
)

func (jt JobType) String() string {
	return string(jt)
}

func (jt JobType) IsValid() bool {
	switch jt {
	case JobTypeCleanupOrphanedBlob, JobTypeSendResponseEmail:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	default:
		return false
	}
}

// Higher priority drains first; equal priority drains oldest first.
const (
	PriorityLow    = 1
	PriorityNormal = 5
	PriorityHigh   = 10
)
