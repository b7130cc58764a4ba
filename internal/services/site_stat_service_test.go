package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/cache"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/realtime"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/testutil"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/sync/errgroup"
)

func newStats(t *testing.T) (SiteStatService, *cache.Memory, *realtime.LocalBroadcaster) {
	t.Helper()
	c := cache.NewMemory()
	bus := realtime.NewLocalBroadcaster()
	svc := NewSiteStatService(pgrepo.NewSiteStatRepo(testutil.SQLite(t)), c, bus, time.Minute, testutil.Logger(t))
	return svc, c, bus
}

func TestTotalsOfAbsentRowAreZero(t *testing.T) {
	svc, _, _ := newStats(t)
	got, err := svc.Totals(context.Background())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got != (models.SiteTotals{}) {
		t.Fatalf("want zeros, got %+v", got)
	}
}

func TestAdjustUnknownFieldIsIgnored(t *testing.T) {
	svc, _, _ := newStats(t)
	ctx := context.Background()
	if err := svc.Adjust(ctx, models.StatField("visitors"), 5); err != nil {
		t.Fatalf("unknown field should be a no-op, got %v", err)
	}
	got, _ := svc.Totals(ctx)
	if got != (models.SiteTotals{}) {
		t.Fatalf("unknown field changed totals: %+v", got)
	}
}

func TestCounterFloorThroughService(t *testing.T) {
	svc, _, _ := newStats(t)
	ctx := context.Background()

	if _, err := svc.Set(ctx, models.FullPatch(models.SiteTotals{TotalCompanies: 3})); err != nil {
		t.Fatalf("set: %v", err)
	}
	for i := 0; i < 4; i++ {
		if err := svc.Adjust(ctx, models.StatCompanies, -1); err != nil {
			t.Fatalf("adjust: %v", err)
		}
	}
	got, _ := svc.Totals(ctx)
	if got.TotalCompanies != 0 {
		t.Fatalf("want=0 got=%d", got.TotalCompanies)
	}
}

func TestSetRejectsNegativeTotals(t *testing.T) {
	svc, _, _ := newStats(t)
	_, err := svc.Set(context.Background(), models.FullPatch(models.SiteTotals{TotalJobs: -1}))
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("want INVALID_ARGUMENT, got %v", err)
	}
}

func TestSetKeepsOmittedTotals(t *testing.T) {
	svc, _, _ := newStats(t)
	ctx := context.Background()

	if _, err := svc.Set(ctx, models.FullPatch(models.SiteTotals{TotalUsers: 5, TotalCompanies: 4, TotalJobs: 3, TotalApplications: 2})); err != nil {
		t.Fatalf("set: %v", err)
	}
	jobs := int64(9)
	got, err := svc.Set(ctx, models.SiteTotalsPatch{TotalJobs: &jobs})
	if err != nil {
		t.Fatalf("partial set: %v", err)
	}
	want := models.SiteTotals{TotalUsers: 5, TotalCompanies: 4, TotalJobs: 9, TotalApplications: 2}
	if got != want {
		t.Fatalf("want=%+v got=%+v", want, got)
	}
	if _, err := svc.Set(ctx, models.SiteTotalsPatch{}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("empty set: want INVALID_ARGUMENT, got %v", err)
	}
}

func TestConcurrentAdjustCounts(t *testing.T) {
	svc, _, _ := newStats(t)
	ctx := context.Background()

	const n = 30
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error { return svc.Adjust(ctx, models.StatUsers, 1) })
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	got, err := svc.Totals(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	if got.TotalUsers != n {
		t.Fatalf("want=%d got=%d", n, got.TotalUsers)
	}
}

func TestWritesInvalidateCacheAndPublish(t *testing.T) {
	svc, c, bus := newStats(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, _ := bus.Subscribe(ctx, SiteStatsChannel)

	// prime the cache with zeros
	if _, err := svc.Totals(ctx); err != nil {
		t.Fatalf("totals: %v", err)
	}
	if err := svc.Adjust(ctx, models.StatJobs, 1); err != nil {
		t.Fatalf("adjust: %v", err)
	}

	var cached models.SiteTotals
	if hit, _ := c.GetJSON(ctx, SiteStatsCacheKey, &cached); hit {
		t.Fatalf("cache should be invalidated after adjust")
	}
	got, _ := svc.Totals(ctx)
	if got.TotalJobs != 1 {
		t.Fatalf("totals after adjust: %+v", got)
	}

	select {
	case m := <-sub.Messages():
		var upd StatsUpdate
		if err := json.Unmarshal(m, &upd); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if upd.Type != "site_stats" || upd.TotalJobs != 1 {
			t.Fatalf("update: %+v", upd)
		}
	case <-time.After(time.Second):
		t.Fatalf("no update published")
	}
}

type flakyStatRepo struct {
	pgrepo.SiteStatRepository
	failures int
	calls    int
	err      error
}

func (r *flakyStatRepo) Adjust(ctx context.Context, field models.StatField, delta int64) (*models.SiteStat, error) {
	r.calls++
	if r.calls <= r.failures {
		return nil, r.err
	}
	return &models.SiteStat{ID: models.SiteStatID, TotalUsers: 1}, nil
}

func TestAdjustRetriesRetryableErrors(t *testing.T) {
	repo := &flakyStatRepo{failures: 2, err: &pgconn.PgError{Code: "40P01"}}
	svc := NewSiteStatService(repo, nil, nil, 0, testutil.Logger(t)).(*siteStatService)
	svc.backoff = time.Millisecond

	if err := svc.Adjust(context.Background(), models.StatUsers, 1); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if repo.calls != 3 {
		t.Fatalf("want 3 attempts, got %d", repo.calls)
	}

	repo = &flakyStatRepo{failures: 5, err: &pgconn.PgError{Code: "40001"}}
	svc = NewSiteStatService(repo, nil, nil, 0, testutil.Logger(t)).(*siteStatService)
	svc.backoff = time.Millisecond
	if err := svc.Adjust(context.Background(), models.StatUsers, 1); err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if repo.calls != adjustAttempts {
		t.Fatalf("want %d attempts, got %d", adjustAttempts, repo.calls)
	}

	repo = &flakyStatRepo{failures: 1, err: errors.New("syntax error")}
	svc = NewSiteStatService(repo, nil, nil, 0, testutil.Logger(t)).(*siteStatService)
	if err := svc.Adjust(context.Background(), models.StatUsers, 1); err == nil || repo.calls != 1 {
		t.Fatalf("non-retryable: err=%v calls=%d", err, repo.calls)
	}
}

type spyStats struct {
	SiteStatService
	deltas map[models.StatField]int64
	err    error
}

func newSpyStats() *spyStats { return &spyStats{deltas: map[models.StatField]int64{}} }

func (s *spyStats) Adjust(_ context.Context, field models.StatField, delta int64) error {
	if s.err != nil {
		return s.err
	}
	s.deltas[field] += delta
	return nil
}

func TestStatsHooksMapToDeltas(t *testing.T) {
	spy := newSpyStats()
	hooks := NewStatsHooks(spy, testutil.Logger(t))
	ctx := context.Background()

	hooks.Created(ctx, models.StatJobs)
	hooks.Created(ctx, models.StatJobs)
	hooks.Deleted(ctx, models.StatJobs)
	hooks.Restored(ctx, models.StatUsers)

	if spy.deltas[models.StatJobs] != 1 || spy.deltas[models.StatUsers] != 1 {
		t.Fatalf("deltas: %v", spy.deltas)
	}

	spy.err = errors.New("db down")
	hooks.Created(ctx, models.StatJobs) // logged, not propagated
}
