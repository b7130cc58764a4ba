package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/testutil"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
)

func TestSoftDeleteAndRestoreReportChanges(t *testing.T) {
	ctx := context.Background()
	repo := NewCompanyRepo(testutil.SQLite(t))

	c := &models.Company{ID: uuid.NewString(), Name: "Acme"}
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	steps := []struct {
		name string
		run  func() (bool, error)
		want bool
	}{
		{"delete", func() (bool, error) { return repo.SoftDelete(ctx, c.ID) }, true},
		{"delete again", func() (bool, error) { return repo.SoftDelete(ctx, c.ID) }, false},
		{"restore", func() (bool, error) { return repo.Restore(ctx, c.ID) }, true},
		{"restore again", func() (bool, error) { return repo.Restore(ctx, c.ID) }, false},
	}
	for _, s := range steps {
		changed, err := s.run()
		if err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
		if changed != s.want {
			t.Fatalf("%s: want changed=%v got=%v", s.name, s.want, changed)
		}
	}

	if _, err := repo.SoftDelete(ctx, uuid.NewString()); !errors.Is(err, utils.ErrNotFound) {
		t.Fatalf("missing row: want ErrNotFound, got %v", err)
	}
}

func TestApplicationDuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := NewApplicationRepo(testutil.SQLite(t))

	jobID, cvID := uuid.NewString(), uuid.NewString()
	first := &models.Application{ID: uuid.NewString(), JobID: jobID, CVID: cvID, UserID: uuid.NewString(), Status: models.ApplicationPending}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	dup := &models.Application{ID: uuid.NewString(), JobID: jobID, CVID: cvID, UserID: first.UserID, Status: models.ApplicationPending}
	if err := repo.Create(ctx, dup); !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}
