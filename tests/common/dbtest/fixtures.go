//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"venuebook/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestBooking inserts a booking row in the given status with a fresh
// response token valid for a week. Returns the booking id and the token so
// tests can drive the customer surface without reading the email.
func CreateTestBooking(t *testing.T, db DBLike, email, status string) (uuid.UUID, string) {
	t.Helper()

	id := uuid.New()
	token, err := booking.NewResponseToken()
	require.NoError(t, err)

	ctx := context.Background()
	now := time.Now().Unix()
	_, err = db.Exec(ctx, `
		INSERT INTO bookings (id, customer_email, status, response_token, token_expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		id, email, status, token, now+7*24*3600, now)
	require.NoError(t, err)

	return id, token
}

// SetBookingEvidence attaches an evidence URL directly, for tests that
// need a booking with a stored artifact without running the upload flow.
func SetBookingEvidence(t *testing.T, db DBLike, id uuid.UUID, url string) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE bookings SET deposit_evidence_url = $1 WHERE id = $2", url, id)
	require.NoError(t, err)
}

// ExpireBookingToken moves the token expiry far enough into the past that
// no grace window can save it.
func ExpireBookingToken(t *testing.T, db DBLike, id uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE bookings SET token_expires_at = $1 WHERE id = $2",
		time.Now().Add(-2*time.Hour).Unix(), id)
	require.NoError(t, err)
}

// BookingRow reads the columns assertions care about.
func BookingRow(t *testing.T, db DBLike, id uuid.UUID) (status string, evidenceURL *string, updatedAt int64) {
	t.Helper()

	ctx := context.Background()
	err := db.QueryRow(ctx,
		"SELECT status, deposit_evidence_url, updated_at FROM bookings WHERE id = $1", id).
		Scan(&status, &evidenceURL, &updatedAt)
	require.NoError(t, err)
	return status, evidenceURL, updatedAt
}

func CountHistoryRows(t *testing.T, db DBLike, bookingID uuid.UUID) int {
	t.Helper()

	ctx := context.Background()
	var n int
	err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM booking_status_history WHERE booking_id = $1", bookingID).Scan(&n)
	require.NoError(t, err)
	return n
}

// CreateTestLock plants a live lease owned by holderEmail, as if another
// admin were mid-operation on the tuple.
func CreateTestLock(t *testing.T, db DBLike, resourceType, resourceID, action, holderEmail, holderName string, ttl time.Duration) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	now := time.Now()
	_, err := db.Exec(ctx, `
		INSERT INTO action_locks (id, resource_type, resource_id, action, admin_email, admin_name, locked_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, resourceType, resourceID, action, holderEmail, holderName, now, now.Add(ttl))
	require.NoError(t, err)

	return id
}

func CountLiveLocks(t *testing.T, db DBLike) int {
	t.Helper()

	ctx := context.Background()
	var n int
	err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM action_locks WHERE expires_at > now()").Scan(&n)
	require.NoError(t, err)
	return n
}

// CreateTestJob inserts a retry job row directly, bypassing the enqueue
// path, so queue tests can stage arbitrary states.
func CreateTestJob(t *testing.T, db DBLike, jobType, payload, status string, priority int, nextRetryAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	now := time.Now()
	_, err := db.Exec(ctx, `
		INSERT INTO retry_jobs (id, job_type, payload, priority, status, retry_count, max_retries, scheduled_at, next_retry_at, updated_at)
		VALUES ($1, $2, $3::jsonb, $4, $5, 0, 5, $6, $7, $6)`,
		id, jobType, payload, priority, status, now, nextRetryAt)
	require.NoError(t, err)

	return id
}

// AdvanceJobRetries fast-forwards a job's attempt counter, for tests that
// exercise the exhaustion path without replaying every backoff window.
func AdvanceJobRetries(t *testing.T, db DBLike, id uuid.UUID, count int) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE retry_jobs SET retry_count = $1 WHERE id = $2", count, id)
	require.NoError(t, err)
}

// CreateStuckJob plants a processing row whose claim is older than age, the
// footprint of a worker that died mid-batch.
func CreateStuckJob(t *testing.T, db DBLike, jobType, payload string, age time.Duration) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	stale := time.Now().Add(-age)
	_, err := db.Exec(ctx, `
		INSERT INTO retry_jobs (id, job_type, payload, priority, status, retry_count, max_retries, scheduled_at, next_retry_at, locked_by, updated_at)
		VALUES ($1, $2, $3::jsonb, 0, 'processing', 0, 5, $4, $4, 'worker-dead', $4)`,
		id, jobType, payload, stale)
	require.NoError(t, err)

	return id
}

func JobRow(t *testing.T, db DBLike, id uuid.UUID) (status string, retryCount int, lastError *string) {
	t.Helper()

	ctx := context.Background()
	err := db.QueryRow(ctx,
		"SELECT status, retry_count, last_error FROM retry_jobs WHERE id = $1", id).
		Scan(&status, &retryCount, &lastError)
	require.NoError(t, err)
	return status, retryCount, lastError
}

func CountJobsByStatus(t *testing.T, db DBLike, status string) int {
	t.Helper()

	ctx := context.Background()
	var n int
	err := db.QueryRow(ctx,
		"SELECT COUNT(*) FROM retry_jobs WHERE status = $1", status).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables so each subtest starts from a clean slate.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
