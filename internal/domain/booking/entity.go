package booking

import (
	"errors"
	"strings"
	"time"

	"venuebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyCustomerEmail = errors.New("customer email is required")
	ErrUnknownStatus      = errors.New("unknown booking status")

	ErrInvalidTransition = errs.NewKind(errs.KindInvalidTransition, "illegal booking status transition")
	ErrDepositNotAllowed = errs.NewKind(errs.KindInvalidTransition, "deposit evidence not accepted in current status")
	ErrTokenMismatch     = errs.NewKind(errs.KindNotFound, "response token does not match")
	ErrTokenExpired      = errs.NewKind(errs.KindTokenExpired, "response token has expired")
)

// Booking is the aggregate the platform serializes all mutations around.
// updatedAt doubles as the optimistic version stamp: every persisted write
// must compare it and bump it, so two admins editing the same row cannot
// silently overwrite each other.
type Booking struct {
	id                 uuid.UUID
	customerEmail      string
	status             Status
	responseToken      string
	tokenExpiresAt     int64
	depositEvidenceURL *string
	createdAt          int64
	updatedAt          int64
}

func NewBooking(now time.Time, customerEmail string, tokenTTL time.Duration) (*Booking, error) {
	email := strings.TrimSpace(customerEmail)
	if email == "" {
		return nil, ErrEmptyCustomerEmail
	}

	token, err := NewResponseToken()
	if err != nil {
		return nil, err
	}

	epoch := now.Unix()
	return &Booking{
		id:             uuid.New(),
		customerEmail:  email,
		status:         StatusPending,
		responseToken:  token,
		tokenExpiresAt: now.Add(tokenTTL).Unix(),
		createdAt:      epoch,
		updatedAt:      epoch,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	customerEmail string,
	status Status,
	responseToken string,
	tokenExpiresAt int64,
	depositEvidenceURL *string,
	createdAt, updatedAt int64,
) *Booking {
	return &Booking{
		id:                 id,
		customerEmail:      customerEmail,
		status:             status,
		responseToken:      responseToken,
		tokenExpiresAt:     tokenExpiresAt,
		depositEvidenceURL: depositEvidenceURL,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// TransitionTo mutates the status only when the legality table allows it.
// Terminal states have no outgoing edges, so they fail here too.
func (b *Booking) TransitionTo(next Status) error {
	if !next.IsValid() {
		return ErrUnknownStatus
	}
	if !b.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	return nil
}

// CanAttachDeposit reports whether a deposit upload is legal right now:
// always from pending_deposit, and from postponed only while no evidence
// has been stored yet.
func (b *Booking) CanAttachDeposit() bool {
	switch b.status {
	case StatusPendingDeposit:
		return true
	case StatusPostponed:
		return b.depositEvidenceURL == nil
	default:
		return false
	}
}

func (b *Booking) AttachDepositEvidence(url string) error {
	if !b.CanAttachDeposit() {
		return ErrDepositNotAllowed
	}
	if err := b.TransitionTo(StatusPaidDeposit); err != nil {
		return err
	}
	b.depositEvidenceURL = &url
	return nil
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) CustomerEmail() string       { return b.customerEmail }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) ResponseToken() string       { return b.responseToken }
func (b *Booking) TokenExpiresAt() int64       { return b.tokenExpiresAt }
func (b *Booking) DepositEvidenceURL() *string { return b.depositEvidenceURL }
func (b *Booking) CreatedAt() int64            { return b.createdAt }
func (b *Booking) UpdatedAt() int64            { return b.updatedAt }
