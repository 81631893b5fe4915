package httperr

import (
	"net/http"

	"venuebook/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithDomainError maps the error taxonomy onto HTTP statuses. Invalid
// transitions share 409 with version conflicts: both mean the booking moved
// under a stale admin screen and the client should reload before retrying.
func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := statusForKind(err)
	AbortWithError(c, status, err, msg, nil)
}

func statusForKind(err error) (int, string) {
	switch errs.KindOf(err) {
	case errs.KindNotFound:
		return http.StatusNotFound, "Not found"
	case errs.KindConflict:
		return http.StatusConflict, "Booking was changed by someone else"
	case errs.KindInvalidTransition:
		return http.StatusConflict, "Action is not allowed in the current status"
	case errs.KindTokenExpired:
		return http.StatusGone, "Response link has expired"
	case errs.KindLockContention:
		return http.StatusLocked, "Another admin is working on this booking"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}
