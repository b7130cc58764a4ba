package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/config"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/cache"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/logger"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/realtime"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
)

// stats-recalc rebuilds the site_stats row from the live tables. With Redis
// configured the cached snapshot is dropped and subscribers get the new totals.
func main() {
	var dryRun bool
	var timeout time.Duration
	flag.BoolVar(&dryRun, "dry-run", false, "print the stored totals without recomputing")
	flag.DurationVar(&timeout, "timeout", time.Minute, "overall deadline")
	flag.Parse()

	config.LoadApp()
	log := logger.New("stats-recalc")

	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("init postgres")
	}
	if err := config.MigratePostgres(); err != nil {
		log.WithError(err).Fatal("migrate postgres")
	}
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("init redis")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	repo := pgrepo.NewSiteStatRepo(config.PostgresDB)

	var (
		c   cache.Cache
		bus realtime.Publisher
	)
	if config.RedisClient != nil && !dryRun {
		c = cache.NewRedisCache(config.RedisClient, "recruitment:")
		bus = realtime.NewRedisBroadcaster(config.RedisClient)
	}
	if config.RedisClient != nil {
		defer config.RedisClient.Close()
	}

	svc := services.NewSiteStatService(repo, c, bus, 0, log)
	label, totals, err := recalc(ctx, repo, svc, dryRun)
	if err != nil {
		log.WithError(err).WithField("dry_run", dryRun).Fatal("stats recalc failed")
	}
	printTotals(label, totals)
}

// recalc returns the stored totals on a dry run and the recomputed ones otherwise.
func recalc(ctx context.Context, repo pgrepo.SiteStatRepository, svc services.SiteStatService, dryRun bool) (string, models.SiteTotals, error) {
	if dryRun {
		row, err := repo.Get(ctx)
		if err != nil && !errors.Is(err, utils.ErrNotFound) {
			return "", models.SiteTotals{}, fmt.Errorf("read site stats: %w", err)
		}
		return "stored", row.Totals(), nil
	}
	totals, err := svc.Recompute(ctx)
	if err != nil {
		return "", models.SiteTotals{}, fmt.Errorf("recompute: %w", err)
	}
	return "recomputed", totals, nil
}

func printTotals(label string, t models.SiteTotals) {
	fmt.Printf("%s: users=%d companies=%d jobs=%d applications=%d\n",
		label, t.TotalUsers, t.TotalCompanies, t.TotalJobs, t.TotalApplications)
}
