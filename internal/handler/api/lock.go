package api

import (
	"net/http"

	reqdto "venuebook/internal/handler/dto/request"
	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/handler/httperr"
	"venuebook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LockHandler struct {
	lockUseCase usecase.LockUseCase
}

func NewLockHandler(lockUseCase usecase.LockUseCase) *LockHandler {
	return &LockHandler{
		lockUseCase: lockUseCase,
	}
}

// @Summary List live locks
// @Description List every unexpired action lock for the admin dashboard
// @Tags locks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string][]resdto.LockResponse
// @Failure 401 {object} map[string]string
// @Router /locks [get]
func (h *LockHandler) List(c *gin.Context) {
	locks, err := h.lockUseCase.ListLive(c.Request.Context())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"locks": resdto.FromLocks(locks)})
}

// @Summary Lock status
// @Description Report whether a resource/action tuple is currently held
// @Tags locks
// @Produce json
// @Security BearerAuth
// @Param resource_type query string true "Resource type"
// @Param resource_id query string true "Resource ID"
// @Param action query string true "Action"
// @Success 200 {object} resdto.LockStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /locks/status [get]
func (h *LockHandler) Status(c *gin.Context) {
	var query reqdto.LockStatusQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lock status query", nil)
		return
	}

	key := query.ToKey()
	if err := key.Validate(); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid lock key", nil)
		return
	}

	view, err := h.lockUseCase.Status(c.Request.Context(), key)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromLockStatusView(view))
}
