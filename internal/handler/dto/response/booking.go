package response

import (
	"time"

	"venuebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                 uuid.UUID              `json:"id"`
	CustomerEmail      string                 `json:"customerEmail"`
	Status             string                 `json:"status"`
	DepositEvidenceURL *string                `json:"depositEvidenceUrl,omitempty"`
	TokenExpiresAt     int64                  `json:"tokenExpiresAt"`
	CreatedAt          int64                  `json:"createdAt"`
	UpdatedAt          int64                  `json:"updatedAt"`
	History            []HistoryEntryResponse `json:"history,omitempty"`
}

type HistoryEntryResponse struct {
	FromStatus string    `json:"fromStatus"`
	ToStatus   string    `json:"toStatus"`
	Actor      string    `json:"actor"`
	Note       *string   `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

func FromBookingView(v *shared.BookingView) *BookingResponse {
	resp := &BookingResponse{
		ID:                 v.ID,
		CustomerEmail:      v.CustomerEmail,
		Status:             v.Status,
		DepositEvidenceURL: v.DepositEvidenceURL,
		TokenExpiresAt:     v.TokenExpiresAt,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	if len(v.History) > 0 {
		resp.History = make([]HistoryEntryResponse, len(v.History))
		for i, h := range v.History {
			resp.History[i] = HistoryEntryResponse{
				FromStatus: h.FromStatus,
				ToStatus:   h.ToStatus,
				Actor:      h.Actor,
				Note:       h.Note,
				RecordedAt: h.RecordedAt,
			}
		}
	}
	return resp
}
