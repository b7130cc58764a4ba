package main

import (
	"context"
	"testing"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/services"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/testutil"
	"github.com/google/uuid"
)

func TestRecalc(t *testing.T) {
	db := testutil.SQLite(t)
	ctx := context.Background()
	repo := pgrepo.NewSiteStatRepo(db)
	svc := services.NewSiteStatService(repo, nil, nil, 0, testutil.Logger(t))

	label, got, err := recalc(ctx, repo, svc, true)
	if err != nil || label != "stored" || got != (models.SiteTotals{}) {
		t.Fatalf("dry run on absent row: %q %+v %v", label, got, err)
	}

	u := &models.User{ID: uuid.NewString(), Name: "Ana", Email: "ana@example.com", PasswordHash: "x", Role: models.RoleJobSeeker}
	if err := pgrepo.NewUserRepo(db).Create(ctx, u); err != nil {
		t.Fatalf("user: %v", err)
	}
	drift := models.SiteTotals{TotalUsers: 9, TotalJobs: 4}
	if _, err := repo.Patch(ctx, models.FullPatch(drift)); err != nil {
		t.Fatalf("patch: %v", err)
	}

	label, got, err = recalc(ctx, repo, svc, true)
	if err != nil || label != "stored" || got != drift {
		t.Fatalf("dry run must not write: %q %+v %v", label, got, err)
	}

	label, got, err = recalc(ctx, repo, svc, false)
	want := models.SiteTotals{TotalUsers: 1}
	if err != nil || label != "recomputed" || got != want {
		t.Fatalf("recompute: %q want=%+v got=%+v err=%v", label, want, got, err)
	}
}

func TestRecalcReturnsDatabaseErrors(t *testing.T) {
	db := testutil.SQLite(t)
	repo := pgrepo.NewSiteStatRepo(db)
	svc := services.NewSiteStatService(repo, nil, nil, 0, testutil.Logger(t))

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	for _, dry := range []bool{true, false} {
		if _, _, err := recalc(context.Background(), repo, svc, dry); err == nil {
			t.Fatalf("dry_run=%v: want error from closed database", dry)
		}
	}
}
