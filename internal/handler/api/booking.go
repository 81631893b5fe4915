package api

import (
	"context"
	"errors"
	"net/http"

	"venuebook/internal/domain/booking"
	reqdto "venuebook/internal/handler/dto/request"
	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/handler/httperr"
	"venuebook/internal/handler/middleware"
	"venuebook/internal/usecase"
	"venuebook/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

type statusActionFunc func(ctx context.Context, id uuid.UUID, admin shared.AdminIdentity, note *string) (*shared.BookingView, error)

// statusAction is the shared shape of every admin lifecycle action: resolve
// identity, parse the target, bind the optional note, run the transition.
func (h *BookingHandler) statusAction(c *gin.Context, action statusActionFunc) {
	admin, ok := middleware.GetAdminIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("admin identity missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.ActionRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
			return
		}
	}

	view, err := action(c.Request.Context(), id, admin, req.GetNote())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Submit booking
// @Description Register a booking request and issue its response token
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitBookingRequest true "Booking intake"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	view, err := h.bookingUseCase.Submit(c.Request.Context(), req.CustomerEmail)
	if err != nil {
		if errors.Is(err, booking.ErrEmptyCustomerEmail) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Customer email is required", nil)
			return
		}
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.Header("Location", "/api/bookings/"+view.ID.String())
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}

// @Summary Get booking
// @Description Get a booking with its full status history
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingUseCase.GetWithHistory(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Request deposit
// @Description Move a booking to pending_deposit and rotate its response token
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/request-deposit [post]
func (h *BookingHandler) RequestDeposit(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.RequestDeposit)
}

// @Summary Confirm booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.Confirm)
}

// @Summary Reject booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.Reject)
}

// @Summary Postpone booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/postpone [post]
func (h *BookingHandler) Postpone(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.Postpone)
}

// @Summary Finish booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/finish [post]
func (h *BookingHandler) Finish(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.Finish)
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ActionRequest false "Optional note"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	h.statusAction(c, h.bookingUseCase.Cancel)
}

// @Summary Delete booking
// @Description Remove a booking; any deposit evidence is cleaned up durably
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 423 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	admin, ok := middleware.GetAdminIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("admin identity missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingUseCase.Delete(c.Request.Context(), id, admin); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Resend response email
// @Description Rotate the response token and queue a fresh response email
// @Tags bookings
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 202 "Accepted"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/resend-email [post]
func (h *BookingHandler) ResendResponseEmail(c *gin.Context) {
	admin, ok := middleware.GetAdminIdentity(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errors.New("admin identity missing from context"), "Internal server error", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.bookingUseCase.ResendResponseEmail(c.Request.Context(), id, admin); err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.Status(http.StatusAccepted)
}

// @Summary Get booking by token
// @Description Customer view of a booking via the emailed response link
// @Tags response
// @Produce json
// @Param id path string true "Booking ID"
// @Param token query string true "Response token"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /response/{id} [get]
func (h *BookingHandler) GetByToken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.TokenQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Response token is required", nil)
		return
	}

	view, err := h.bookingUseCase.GetByToken(c.Request.Context(), id, req.Token)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking by token
// @Description Customer cancellation via the emailed response link
// @Tags response
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body reqdto.TokenActionRequest true "Response token"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /response/{id}/cancel [post]
func (h *BookingHandler) CancelByToken(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	var req reqdto.TokenActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Response token is required", nil)
		return
	}

	view, err := h.bookingUseCase.CancelByToken(c.Request.Context(), id, req.Token)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
