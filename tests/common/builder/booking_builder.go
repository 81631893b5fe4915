//go:build unit || e2e

package builder

import (
	"time"

	dombooking "venuebook/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID                 uuid.UUID
	CustomerEmail      string
	Status             dombooking.Status
	ResponseToken      string
	TokenExpiresAt     int64
	DepositEvidenceURL *string
	CreatedAt          int64
	UpdatedAt          int64
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now().UTC()
	return &BookingBuilder{
		ID:             uuid.New(),
		CustomerEmail:  "customer@example.com",
		Status:         dombooking.StatusPendingDeposit,
		ResponseToken:  "b6fca9a43f2a4f0f9c61d0a9a7f3a1c8b6fca9a43f2a4f0f9c61d0a9a7f3a1c8",
		TokenExpiresAt: now.Add(24 * time.Hour).Unix(),
		CreatedAt:      now.Add(-time.Hour).Unix(),
		UpdatedAt:      now.Add(-time.Minute).Unix(),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	return dombooking.ReconstructBooking(
		b.ID,
		b.CustomerEmail,
		b.Status,
		b.ResponseToken,
		b.TokenExpiresAt,
		b.DepositEvidenceURL,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

// Fluent builder methods
func (b *BookingBuilder) WithID(id uuid.UUID) *BookingBuilder {
	b.ID = id
	return b
}

func (b *BookingBuilder) WithCustomerEmail(email string) *BookingBuilder {
	b.CustomerEmail = email
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithResponseToken(token string) *BookingBuilder {
	b.ResponseToken = token
	return b
}

func (b *BookingBuilder) WithoutToken() *BookingBuilder {
	b.ResponseToken = ""
	b.TokenExpiresAt = 0
	return b
}

func (b *BookingBuilder) WithTokenExpiresAt(epoch int64) *BookingBuilder {
	b.TokenExpiresAt = epoch
	return b
}

func (b *BookingBuilder) WithDepositEvidence(url string) *BookingBuilder {
	b.DepositEvidenceURL = &url
	return b
}

func (b *BookingBuilder) WithUpdatedAt(epoch int64) *BookingBuilder {
	b.UpdatedAt = epoch
	return b
}
