package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService periodically drops cached difficulty aggregates and
// prediction results so a ranking pass never serves values computed against a
// superseded snapshot. The ingestion layer writes on its own schedule; this
// keeps cache lifetime bounded to the refresh interval.
type RefresherService struct {
	cache     *CacheService
	logger    *logrus.Logger
	cron      *cron.Cron
	schedule  string
	mu        sync.Mutex
	isRunning bool
}

func NewRefresherService(cache *CacheService, logger *logrus.Logger, schedule string) *RefresherService {
	return &RefresherService{
		cache:    cache,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Start begins the scheduled cache refresh
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	if _, err := s.cron.AddFunc(s.schedule, s.invalidateCaches); err != nil {
		return fmt.Errorf("failed to schedule cache refresh: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	s.logger.WithField("schedule", s.schedule).Info("Cache refresher started")
	return nil
}

// Stop halts the scheduled refresh
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Cache refresher stopped")
}

func (s *RefresherService) invalidateCaches() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total := 0
	for _, prefix := range []string{"difficulty:", "predictions:"} {
		deleted, err := s.cache.DeleteByPrefix(ctx, prefix)
		total += deleted
		if err != nil {
			s.logger.WithField("prefix", prefix).WithError(err).Error("Cache invalidation failed")
		}
	}

	s.logger.WithField("keys_deleted", total).Info("Scheduled cache invalidation completed")
}

// InvalidateTeam drops the difficulty aggregates for one team, called when
// new match records arrive for it.
func (s *RefresherService) InvalidateTeam(ctx context.Context, teamID uint) error {
	deleted, err := s.cache.DeleteByPrefix(ctx, DifficultyKeyPrefix(teamID))
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"team_id":      teamID,
		"keys_deleted": deleted,
	}).Debug("Team difficulty cache invalidated")
	return nil
}
