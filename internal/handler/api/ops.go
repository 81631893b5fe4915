package api

import (
	"net/http"

	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/handler/httperr"
	"venuebook/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OpsHandler exposes the worker triggers an external scheduler fires on a
// cadence. The service itself never runs timers for these.
type OpsHandler struct {
	queueUseCase usecase.QueueUseCase
	lockUseCase  usecase.LockUseCase
}

func NewOpsHandler(queueUseCase usecase.QueueUseCase, lockUseCase usecase.LockUseCase) *OpsHandler {
	return &OpsHandler{
		queueUseCase: queueUseCase,
		lockUseCase:  lockUseCase,
	}
}

// @Summary Run retry-queue batch
// @Description Claim and process one bounded batch of due retry jobs
// @Tags ops
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Success 200 {object} resdto.QueueRunResponse
// @Failure 401 {object} map[string]string
// @Router /cron/queue/run [post]
func (h *OpsHandler) RunQueueBatch(c *gin.Context) {
	report, err := h.queueUseCase.RunBatch(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromQueueRunReport(report))
}

// @Summary Requeue stuck jobs
// @Description Return jobs stuck in processing past the visibility timeout to pending
// @Tags ops
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Success 200 {object} resdto.RequeueResponse
// @Failure 401 {object} map[string]string
// @Router /cron/queue/requeue-stuck [post]
func (h *OpsHandler) RequeueStuck(c *gin.Context) {
	requeued, err := h.queueUseCase.RequeueStuck(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.RequeueResponse{Requeued: requeued})
}

// @Summary Pending job count
// @Description Count retry jobs currently due for a worker pass
// @Tags ops
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Success 200 {object} resdto.QueuePendingResponse
// @Failure 401 {object} map[string]string
// @Router /cron/queue/pending [get]
func (h *OpsHandler) QueuePending(c *gin.Context) {
	pending, err := h.queueUseCase.PendingCount(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.QueuePendingResponse{Pending: pending})
}

// @Summary Sweep expired locks
// @Description Delete expired action-lock rows in one bounded batch
// @Tags ops
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} map[string]string
// @Router /cron/locks/sweep [post]
func (h *OpsHandler) SweepLocks(c *gin.Context) {
	removed, err := h.lockUseCase.SweepExpired(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.SweepResponse{Removed: removed})
}
