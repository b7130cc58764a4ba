package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/cache"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/realtime"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	SiteStatsCacheKey = "site_stats:totals"
	SiteStatsChannel  = "site_stats:updated"

	adjustAttempts = 3
)

// StatsUpdate is published on SiteStatsChannel after every counter write.
type StatsUpdate struct {
	Type string `json:"type"`
	models.SiteTotals
}

type SiteStatService interface {
	// Totals reports zeros while no counters have been recorded.
	Totals(ctx context.Context) (models.SiteTotals, error)
	// Adjust ignores unknown fields. Counters never go below zero.
	Adjust(ctx context.Context, field models.StatField, delta int64) error
	// Set overwrites the provided fields and keeps the rest.
	Set(ctx context.Context, patch models.SiteTotalsPatch) (models.SiteTotals, error)
	Recompute(ctx context.Context) (models.SiteTotals, error)
}

type siteStatService struct {
	repo     pgrepo.SiteStatRepository
	cache    cache.Cache
	bus      realtime.Publisher
	cacheTTL time.Duration
	log      *logrus.Logger

	backoff time.Duration
}

// NewSiteStatService accepts a nil cache and a nil bus.
func NewSiteStatService(repo pgrepo.SiteStatRepository, c cache.Cache, bus realtime.Publisher, cacheTTL time.Duration, log *logrus.Logger) SiteStatService {
	return &siteStatService{
		repo:     repo,
		cache:    c,
		bus:      bus,
		cacheTTL: cacheTTL,
		log:      log,
		backoff:  25 * time.Millisecond,
	}
}

func (s *siteStatService) Totals(ctx context.Context) (models.SiteTotals, error) {
	const op = "SiteStatService.Totals"

	return cache.Remember(ctx, s.cache, SiteStatsCacheKey, s.cacheTTL, func(ctx context.Context) (models.SiteTotals, error) {
		row, err := s.repo.Get(ctx)
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return models.SiteTotals{}, nil
		case err != nil:
			return models.SiteTotals{}, utils.E(utils.CodeInternal, op, "failed to read site stats", err)
		}
		return row.Totals(), nil
	})
}

func (s *siteStatService) Adjust(ctx context.Context, field models.StatField, delta int64) error {
	const op = "SiteStatService.Adjust"

	if _, ok := field.Column(); !ok {
		s.log.WithFields(logrus.Fields{"field": field, "delta": delta}).Debug("ignoring unknown site stat field")
		return nil
	}
	if delta == 0 {
		return nil
	}

	var (
		row *models.SiteStat
		err error
	)
	for attempt := 1; attempt <= adjustAttempts; attempt++ {
		row, err = s.repo.Adjust(ctx, field, delta)
		if err == nil || !pgrepo.IsRetryable(err) || attempt == adjustAttempts {
			break
		}
		s.log.WithFields(logrus.Fields{"field": field, "attempt": attempt}).WithError(err).Debug("retrying site stat adjust")
		select {
		case <-ctx.Done():
			return utils.E(utils.CodeTimeout, op, "site stat adjust cancelled", ctx.Err())
		case <-time.After(time.Duration(attempt) * s.backoff):
		}
	}
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to adjust site stats", err)
	}
	if row != nil {
		s.afterWrite(ctx, row.Totals())
	}
	return nil
}

func (s *siteStatService) Set(ctx context.Context, patch models.SiteTotalsPatch) (models.SiteTotals, error) {
	const op = "SiteStatService.Set"

	if patch.Empty() {
		return models.SiteTotals{}, utils.E(utils.CodeInvalidArgument, op, "at least one total is required", nil)
	}
	if patch.HasNegative() {
		return models.SiteTotals{}, utils.E(utils.CodeInvalidArgument, op, "totals must not be negative", nil)
	}
	row, err := s.repo.Patch(ctx, patch)
	if err != nil {
		return models.SiteTotals{}, utils.E(utils.CodeInternal, op, "failed to set site stats", err)
	}
	s.afterWrite(ctx, row.Totals())
	return row.Totals(), nil
}

func (s *siteStatService) Recompute(ctx context.Context) (models.SiteTotals, error) {
	const op = "SiteStatService.Recompute"

	row, err := s.repo.Recompute(ctx)
	if err != nil {
		return models.SiteTotals{}, utils.E(utils.CodeInternal, op, "failed to recompute site stats", err)
	}
	s.log.WithFields(logrus.Fields{
		"total_users":        row.TotalUsers,
		"total_companies":    row.TotalCompanies,
		"total_jobs":         row.TotalJobs,
		"total_applications": row.TotalApplications,
	}).Info("site stats recomputed")

	s.afterWrite(ctx, row.Totals())
	return row.Totals(), nil
}

func (s *siteStatService) afterWrite(ctx context.Context, totals models.SiteTotals) {
	if s.cache != nil {
		if err := s.cache.Del(ctx, SiteStatsCacheKey); err != nil {
			s.log.WithError(err).Warn("site stats cache invalidation failed")
		}
	}
	if s.bus == nil {
		return
	}
	b, err := json.Marshal(StatsUpdate{Type: "site_stats", SiteTotals: totals})
	if err != nil {
		return
	}
	if err := s.bus.Publish(ctx, SiteStatsChannel, b); err != nil {
		s.log.WithError(err).Warn("site stats publish failed")
	}
}

// StatsHooks translate entity lifecycle events into counter deltas.
type StatsHooks interface {
	Created(ctx context.Context, field models.StatField)
	Deleted(ctx context.Context, field models.StatField)
	Restored(ctx context.Context, field models.StatField)
}

type statsHooks struct {
	stats SiteStatService
	log   *logrus.Logger
}

func NewStatsHooks(stats SiteStatService, log *logrus.Logger) StatsHooks {
	return &statsHooks{stats: stats, log: log}
}

func (h *statsHooks) Created(ctx context.Context, field models.StatField) {
	h.adjust(ctx, field, 1)
}

func (h *statsHooks) Deleted(ctx context.Context, field models.StatField) {
	h.adjust(ctx, field, -1)
}

func (h *statsHooks) Restored(ctx context.Context, field models.StatField) {
	h.adjust(ctx, field, 1)
}

func (h *statsHooks) adjust(ctx context.Context, field models.StatField, delta int64) {
	if err := h.stats.Adjust(ctx, field, delta); err != nil {
		h.log.WithFields(logrus.Fields{"field": field, "delta": delta}).WithError(err).Warn("site stat adjust failed")
	}
}
