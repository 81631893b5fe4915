package response

import "venuebook/internal/usecase/shared"

type QueueRunResponse struct {
	Claimed   int   `json:"claimed"`
	Succeeded int   `json:"succeeded"`
	Retried   int   `json:"retried"`
	Failed    int   `json:"failed"`
	Remaining int64 `json:"remaining"`
}

type RequeueResponse struct {
	Requeued int64 `json:"requeued"`
}

type QueuePendingResponse struct {
	Pending int64 `json:"pending"`
}

type SweepResponse struct {
	Removed int64 `json:"removed"`
}

func FromQueueRunReport(r *shared.QueueRunReport) *QueueRunResponse {
	return &QueueRunResponse{
		Claimed:   r.Claimed,
		Succeeded: r.Succeeded,
		Retried:   r.Retried,
		Failed:    r.Failed,
		Remaining: r.Remaining,
	}
}
