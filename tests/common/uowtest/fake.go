//go:build unit || e2e

package uowtest

import (
	"context"

	"venuebook/internal/infra/db"
	"venuebook/internal/usecase/shared"
)

// FakeUoW runs unit-of-work closures inline so usecase tests can drive the
// repository mocks wired into it. Within and WithinReadOnly hand the fake
// itself to the closure as the transaction; WithDB passes a nil DBTX, which
// the repository mocks never touch.
type FakeUoW struct {
	BookingRepo shared.BookingRepository
	HistoryRepo shared.HistoryRepository
	JobRepo     shared.JobRepository

	// BeginErr short-circuits every method before the closure runs,
	// simulating a connection-level failure.
	BeginErr error
}

func (f *FakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	return fn(ctx, f)
}

func (f *FakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	return fn(ctx, f)
}

func (f *FakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	return fn(ctx, nil)
}

func (f *FakeUoW) Bookings() shared.BookingRepository { return f.BookingRepo }

func (f *FakeUoW) History() shared.HistoryRepository { return f.HistoryRepo }

func (f *FakeUoW) Jobs() shared.JobRepository { return f.JobRepo }

func (f *FakeUoW) DB() db.DBTX { return nil }
