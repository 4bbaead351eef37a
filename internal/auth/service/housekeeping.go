package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/qurehealth/qure/internal/auth/store"
)

// DefaultResetTokenRetention is how long used or expired reset tokens are
// kept before housekeeping deletes them. Until then a stale link still
// reports that it was used or has expired; afterwards it is simply invalid.
const DefaultResetTokenRetention = 30 * 24 * time.Hour

// HousekeepingService periodically deletes stale password-reset tokens to
// prevent unbounded growth of password_reset_tokens.
type HousekeepingService struct {
	Store     store.Store
	Logger    *slog.Logger
	Interval  time.Duration
	Retention time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:     store,
		Logger:    logger,
		Interval:  interval,
		Retention: DefaultResetTokenRetention,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.Cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Cleanup deletes reset tokens that expired, or were used, more than
// Retention ago. Returns the number of rows removed.
func (s *HousekeepingService) Cleanup(ctx context.Context) int64 {
	cutoff := time.Now().UTC().Add(-s.Retention)

	n, err := s.Store.PasswordResetTokens().DeleteStalePasswordResetTokens(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete stale password reset tokens", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping cleanup completed", "reset_tokens_deleted", n)
	return n
}
