package shared

import (
	"context"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/domain/booking"
	"venuebook/internal/domain/retryjob"
	"venuebook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
}

// Tx deliberately exposes no lock repository: lock steps are independent
// atomic statements resolved by the UNIQUE tuple constraint, and running
// them inside a shared transaction would reintroduce the races the verify
// step exists to close.
type Tx interface {
	Bookings() BookingRepository
	History() HistoryRepository
	Jobs() JobRepository
	DB() db.DBTX
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	UpdateGuarded(ctx context.Context, dbtx db.DBTX, b *booking.Booking, expectedUpdatedAt int64, now time.Time) (int64, error)
	DeleteGuarded(ctx context.Context, dbtx db.DBTX, id uuid.UUID, expectedUpdatedAt int64) error
}

type HistoryRepository interface {
	Append(ctx context.Context, dbtx db.DBTX, rec booking.HistoryRecord) error
	ListByBooking(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID) ([]booking.HistoryRecord, error)
}

type LockRepository interface {
	DeleteExpired(ctx context.Context, dbtx db.DBTX, key actionlock.Key, now time.Time) (int64, error)
	Find(ctx context.Context, dbtx db.DBTX, key actionlock.Key) (*actionlock.Lock, error)
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*actionlock.Lock, error)
	Insert(ctx context.Context, dbtx db.DBTX, lock *actionlock.Lock) (bool, error)
	ExtendByHolder(ctx context.Context, dbtx db.DBTX, id uuid.UUID, holderEmail string, newExpiresAt, now time.Time) (bool, error)
	DeleteByHolder(ctx context.Context, dbtx db.DBTX, id uuid.UUID, holderEmail string) (int64, error)
	SweepExpired(ctx context.Context, dbtx db.DBTX, now time.Time, limit int) (int64, error)
	ListLive(ctx context.Context, dbtx db.DBTX, now time.Time) ([]*actionlock.Lock, error)
}

type JobRepository interface {
	Enqueue(ctx context.Context, dbtx db.DBTX, job *retryjob.Job) error
	ClaimBatch(ctx context.Context, dbtx db.DBTX, now time.Time, limit int, workerID string) ([]*retryjob.Job, error)
	Finish(ctx context.Context, dbtx db.DBTX, job *retryjob.Job) error
	RequeueStuck(ctx context.Context, dbtx db.DBTX, cutoff time.Time) (int64, error)
	CountPending(ctx context.Context, dbtx db.DBTX, now time.Time) (int64, error)
}
