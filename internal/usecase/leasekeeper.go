package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"venuebook/internal/domain/actionlock"
	"venuebook/internal/pkg/config"

	"github.com/google/uuid"
)

// LockExtender is the slice of LockUseCase the keeper needs.
type LockExtender interface {
	Extend(ctx context.Context, lockID uuid.UUID, holder actionlock.Holder) (bool, error)
}

// LeaseKeeper keeps one held lease alive for the duration of a long
// operation. It extends immediately on Start, then on a fixed cadence.
// A definitive "lease gone" result, or too many consecutive failures,
// stops the keeper and fires the lost callback exactly once so the
// operation can abort instead of finishing without exclusivity.
//
// Start and Stop are idempotent and safe to race: an extend that is in
// flight when Stop lands has its result discarded.
type LeaseKeeper struct {
	extender     LockExtender
	interval     time.Duration
	extendBudget time.Duration
	failureLimit int

	mu   sync.Mutex
	sess *keeperSession
}

type keeperSession struct {
	lockID   uuid.UUID
	holder   actionlock.Holder
	onLost   func()
	stop     chan struct{}
	stopOnce sync.Once
	lostOnce sync.Once
	failures int
}

func NewLeaseKeeper(extender LockExtender, cfg config.LockConfig) *LeaseKeeper {
	return &LeaseKeeper{
		extender:     extender,
		interval:     cfg.ExtendInterval,
		extendBudget: cfg.SafetyBuffer,
		failureLimit: cfg.FailureLimit,
	}
}

// Start begins keeping lockID alive for holder. Returns false when the
// keeper is already running; the active session is left untouched.
// onLost may be nil.
func (k *LeaseKeeper) Start(lockID uuid.UUID, holder actionlock.Holder, onLost func()) bool {
	k.mu.Lock()
	if k.sess != nil {
		k.mu.Unlock()
		return false
	}
	s := &keeperSession{
		lockID: lockID,
		holder: holder,
		onLost: onLost,
		stop:   make(chan struct{}),
	}
	k.sess = s
	k.mu.Unlock()

	go k.run(s)
	return true
}

// Stop halts the keeper. The lease itself is not released here; the owner
// of the operation releases it. Safe to call repeatedly and concurrently
// with a scheduled extend.
func (k *LeaseKeeper) Stop() {
	k.mu.Lock()
	s := k.sess
	k.sess = nil
	k.mu.Unlock()
	if s != nil {
		s.stopOnce.Do(func() { close(s.stop) })
	}
}

// Active reports whether a session is currently running.
func (k *LeaseKeeper) Active() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sess != nil
}

func (k *LeaseKeeper) run(s *keeperSession) {
	if !k.extendOnce(s) {
		return
	}
	ticker := time.NewTicker(k.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !k.extendOnce(s) {
				return
			}
		}
	}
}

// extendOnce performs one extend attempt and reports whether the session
// should keep running.
func (k *LeaseKeeper) extendOnce(s *keeperSession) bool {
	ctx, cancel := context.WithTimeout(context.Background(), k.extendBudget)
	ok, err := k.extender.Extend(ctx, s.lockID, s.holder)
	cancel()

	if !k.isCurrent(s) {
		// Stopped while the call was in flight; whatever happened, the
		// session no longer owns the outcome.
		return false
	}

	switch {
	case err != nil:
		s.failures++
		slog.Warn("lease extend attempt failed",
			"lock_id", s.lockID,
			"holder", s.holder.Email,
			"consecutive_failures", s.failures,
			"error", err.Error(),
		)
		if s.failures >= k.failureLimit {
			k.loseLease(s, "consecutive failures reached limit")
			return false
		}
		return true
	case !ok:
		k.loseLease(s, "lease no longer held")
		return false
	default:
		s.failures = 0
		return true
	}
}

func (k *LeaseKeeper) isCurrent(s *keeperSession) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.sess == s
}

func (k *LeaseKeeper) loseLease(s *keeperSession, reason string) {
	k.mu.Lock()
	if k.sess == s {
		k.sess = nil
	}
	k.mu.Unlock()
	s.stopOnce.Do(func() { close(s.stop) })

	slog.Warn("lease lost, aborting keeper",
		"lock_id", s.lockID,
		"holder", s.holder.Email,
		"reason", reason,
	)
	s.lostOnce.Do(func() {
		if s.onLost != nil {
			s.onLost()
		}
	})
}
