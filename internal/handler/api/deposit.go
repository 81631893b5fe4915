package api

import (
	"io"
	"net/http"

	resdto "venuebook/internal/handler/dto/response"
	"venuebook/internal/handler/httperr"
	"venuebook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Evidence images are small photographs of a transfer receipt; anything
// bigger than this is a client mistake.
const maxEvidenceBytes = 10 << 20

type DepositHandler struct {
	depositUseCase usecase.DepositUseCase
}

func NewDepositHandler(depositUseCase usecase.DepositUseCase) *DepositHandler {
	return &DepositHandler{
		depositUseCase: depositUseCase,
	}
}

// @Summary Upload deposit evidence
// @Description Attach deposit evidence to a booking via the emailed response link
// @Tags response
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Booking ID"
// @Param token formData string true "Response token"
// @Param file formData file true "Evidence image"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /response/{id}/deposit [post]
func (h *DepositHandler) Upload(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	token := c.PostForm("token")
	if token == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, usecase.ErrEvidenceTokenMissing, "Response token is required", nil)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Evidence file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxEvidenceBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, usecase.ErrEvidenceTooLarge, "Evidence file too large", nil)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxEvidenceBytes+1))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read evidence file", nil)
		return
	}
	if len(data) > maxEvidenceBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, usecase.ErrEvidenceTooLarge, "Evidence file too large", nil)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	view, err := h.depositUseCase.UploadDeposit(c.Request.Context(), id, token, data, contentType)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
