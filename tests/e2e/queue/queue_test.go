//go:build e2e

package queue_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"venuebook/internal/domain/retryjob"
	"venuebook/internal/handler/dto/response"
	"venuebook/tests/common/dbtest"
	"venuebook/tests/common/httptest"
	"venuebook/tests/e2e"
	"venuebook/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	runURL          = "/api/cron/queue/run"
	requeueStuckURL = "/api/cron/queue/requeue-stuck"
	pendingURL      = "/api/cron/queue/pending"

	// Points at storage this service does not own, so the cleanup handler
	// fails deterministically without any network round trip.
	foreignBlobURL = "http://elsewhere.invalid:9000/other-bucket/receipt.jpg"
)

type QueueSuite struct {
	e2e.SharedSuite
}

func (s *QueueSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestQueueSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) cronHeaders() map[string]string {
	return map[string]string{"X-Cron-Secret": s.Config.Server.CronSecret}
}

func emailPayload() string {
	return fmt.Sprintf(`{"booking_id":"%s","customer_email":"customer@example.com","response_token":"token"}`, uuid.New())
}

func cleanupPayload(url string) string {
	return fmt.Sprintf(`{"url":"%s"}`, url)
}

// =============================================================================
// TestRunQueueBatch - Bounded drain of due jobs
// =============================================================================

func (s *QueueSuite) TestRunQueueBatch() {
	s.Run("Normal case: a due email job is delivered and completed", func() {
		t := s.T()

		id := dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 1, report.Claimed)
		require.Equal(t, 1, report.Succeeded)
		require.Equal(t, 0, report.Retried)
		require.Equal(t, 0, report.Failed)
		require.EqualValues(t, 0, report.Remaining)

		status, retries, lastError := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusCompleted.String(), status)
		require.Equal(t, 0, retries)
		require.Nil(t, lastError)
	})

	s.Run("Normal case: an empty queue reports zero work", func() {
		t := s.T()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 0, report.Claimed)
		require.EqualValues(t, 0, report.Remaining)
	})

	s.Run("Normal case: jobs scheduled in the future are left alone", func() {
		t := s.T()

		id := dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			retryjob.StatusPending.String(), retryjob.PriorityNormal, time.Now().Add(time.Hour))

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 0, report.Claimed)
		require.EqualValues(t, 0, report.Remaining, "a job before its retry time is not due")

		status, _, _ := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusPending.String(), status)
	})

	s.Run("Normal case: the batch claims strictly by priority", func() {
		t := s.T()

		// One more job than the batch can hold; the low-priority one must
		// be the one left behind
		due := time.Now().Add(-time.Second)
		for range s.Config.Queue.BatchSize {
			dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
				retryjob.StatusPending.String(), retryjob.PriorityNormal, due)
		}
		lowID := dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			retryjob.StatusPending.String(), retryjob.PriorityLow, due)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, s.Config.Queue.BatchSize, report.Claimed)
		require.Equal(t, s.Config.Queue.BatchSize, report.Succeeded)
		require.EqualValues(t, 1, report.Remaining)

		status, _, _ := dbtest.JobRow(t, s.DB, lowID)
		require.Equal(t, retryjob.StatusPending.String(), status, "lowest priority job waits for the next pass")
	})

	s.Run("Error case: a handler failure schedules a backoff retry", func() {
		t := s.T()

		id := dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(foreignBlobURL),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 1, report.Claimed)
		require.Equal(t, 1, report.Retried)
		require.Equal(t, 0, report.Failed)
		require.EqualValues(t, 0, report.Remaining, "the retry is rescheduled beyond now")

		status, retries, lastError := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusPending.String(), status)
		require.Equal(t, 1, retries)
		require.NotNil(t, lastError)

		// The backoff window holds the job back from an immediate second run
		rw := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())
		var second response.QueueRunResponse
		httptest.AssertSuccessResponse(t, rw, http.StatusOK, &second)
		require.Equal(t, 0, second.Claimed)
	})

	s.Run("Error case: a job out of retries is terminally failed", func() {
		t := s.T()

		id := dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(foreignBlobURL),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))
		dbtest.AdvanceJobRetries(t, s.DB, id, 5)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 1, report.Claimed)
		require.Equal(t, 1, report.Failed)
		require.Equal(t, 0, report.Retried)

		status, retries, lastError := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusFailed.String(), status)
		require.Equal(t, 6, retries)
		require.NotNil(t, lastError)
	})

	s.Run("Normal case: a queued cleanup deletes the real artifact", func() {
		t := s.T()

		probe := helper.NewBlobProbe(t, s.Config.Blob)
		url := probe.SeedObject(t, "orphans/"+uuid.New().String()+".jpg", []byte("evidence-bytes"))
		probe.RequireObjectExists(t, url)

		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(url),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 1, report.Succeeded)

		probe.RequireObjectGone(t, url)
	})

	s.Run("Normal case: duplicate cleanups of one artifact all succeed", func() {
		t := s.T()

		probe := helper.NewBlobProbe(t, s.Config.Blob)
		url := probe.SeedObject(t, "orphans/"+uuid.New().String()+".jpg", []byte("evidence-bytes"))

		// Worker overlap can deliver the same cleanup twice; the second
		// delete must land on a missing object and still count as done
		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(url),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))
		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(url),
			retryjob.StatusPending.String(), retryjob.PriorityHigh, time.Now().Add(-time.Second))

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())

		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &report)
		require.Equal(t, 2, report.Claimed)
		require.Equal(t, 2, report.Succeeded)

		probe.RequireObjectGone(t, url)
	})

	s.Run("Error case: run requires the cron secret", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, runURL, nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Cron secret required")
	})
}

// =============================================================================
// TestRequeueStuck - Reclaiming claims from dead workers
// =============================================================================

func (s *QueueSuite) TestRequeueStuck() {
	s.Run("Normal case: a dead worker's claim returns to pending", func() {
		t := s.T()

		id := dbtest.CreateStuckJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			s.Config.Queue.VisibilityTimeout+5*time.Minute)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requeueStuckURL, nil, s.cronHeaders())

		var requeued response.RequeueResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &requeued)
		require.EqualValues(t, 1, requeued.Requeued)

		status, _, _ := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusPending.String(), status)

		// And the reclaimed job is immediately claimable again
		rw := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, runURL, nil, s.cronHeaders())
		var report response.QueueRunResponse
		httptest.AssertSuccessResponse(t, rw, http.StatusOK, &report)
		require.Equal(t, 1, report.Claimed)
		require.Equal(t, 1, report.Succeeded)
	})

	s.Run("Normal case: live claims are left with their worker", func() {
		t := s.T()

		id := dbtest.CreateStuckJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			time.Minute)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, requeueStuckURL, nil, s.cronHeaders())

		var requeued response.RequeueResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &requeued)
		require.EqualValues(t, 0, requeued.Requeued)

		status, _, _ := dbtest.JobRow(t, s.DB, id)
		require.Equal(t, retryjob.StatusProcessing.String(), status, "a claim inside the visibility window is not stuck")
	})

	s.Run("Error case: requeue requires the cron secret", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, requeueStuckURL, nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Cron secret required")
	})
}

// =============================================================================
// TestQueuePending - Backlog visibility
// =============================================================================

func (s *QueueSuite) TestQueuePending() {
	s.Run("Normal case: counts only jobs due right now", func() {
		t := s.T()

		due := time.Now().Add(-time.Second)
		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			retryjob.StatusPending.String(), retryjob.PriorityNormal, due)
		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeCleanupOrphanedBlob.String(), cleanupPayload(foreignBlobURL),
			retryjob.StatusPending.String(), retryjob.PriorityNormal, due)
		dbtest.CreateTestJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(),
			retryjob.StatusPending.String(), retryjob.PriorityNormal, time.Now().Add(time.Hour))
		dbtest.CreateStuckJob(t, s.DB, retryjob.JobTypeSendResponseEmail.String(), emailPayload(), time.Minute)

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodGet, pendingURL, nil, s.cronHeaders())

		var pending response.QueuePendingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &pending)
		require.EqualValues(t, 2, pending.Pending)
	})

	s.Run("Error case: pending requires the cron secret", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, pendingURL, nil, "")

		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Cron secret required")
	})
}
