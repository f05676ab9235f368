package services

import (
	"time"

	"github.com/pulse-hq/pulse/internal/models"
	"github.com/pulse-hq/pulse/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// TokenCleanupService periodically flushes expired OutstandingToken rows and
// their ledger entries. An expired token is invalid regardless of revocation
// state, so dropping both rows preserves every observable outcome; the
// LoginSession audit trail is never touched.
type TokenCleanupService struct {
	db            *gorm.DB
	cronScheduler *cron.Cron
}

func NewTokenCleanupService(db *gorm.DB) *TokenCleanupService {
	return &TokenCleanupService{db: db}
}

// StartScheduler flushes once at startup, then daily at 03:00.
func (s *TokenCleanupService) StartScheduler() {
	s.flush()

	s.cronScheduler = cron.New()
	if _, err := s.cronScheduler.AddFunc("0 3 * * *", s.flush); err != nil {
		logger.Error().Err(err).Msg("failed to schedule token flush")
		return
	}
	s.cronScheduler.Start()
}

func (s *TokenCleanupService) StopScheduler() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
	}
}

// FlushExpired deletes expired outstanding tokens and their blacklist rows.
// Returns the number of token rows removed.
func (s *TokenCleanupService) FlushExpired() (int64, error) {
	var deleted int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		expired := tx.Model(&models.OutstandingToken{}).
			Select("id").
			Where("expires_at < ?", time.Now())

		if err := tx.Where("token_id IN (?)", expired).
			Delete(&models.BlacklistedToken{}).Error; err != nil {
			return err
		}

		result := tx.Where("expires_at < ?", time.Now()).
			Delete(&models.OutstandingToken{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (s *TokenCleanupService) flush() {
	deleted, err := s.FlushExpired()
	if err != nil {
		logger.Error().Err(err).Msg("expired token flush failed")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("flushed expired tokens")
	}
}
