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

func TestAttachDoesNotOverwriteExistingLinks(t *testing.T) {
	ctx := context.Background()
	repo := NewSkillRepo(testutil.SQLite(t))

	goSkill := &models.Skill{ID: uuid.NewString(), Name: "Go"}
	sql := &models.Skill{ID: uuid.NewString(), Name: "SQL"}
	for _, s := range []*models.Skill{goSkill, sql} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create skill: %v", err)
		}
	}

	userID := uuid.NewString()
	five := 5
	if err := repo.Attach(ctx, userID, []models.SkillAttachment{{SkillID: goSkill.ID, Proficiency: &five}}); err != nil {
		t.Fatalf("attach explicit: %v", err)
	}
	if err := repo.Attach(ctx, userID, []models.SkillAttachment{{SkillID: goSkill.ID}, {SkillID: sql.ID}}); err != nil {
		t.Fatalf("attach default: %v", err)
	}

	links, err := repo.UserSkills(ctx, userID)
	if err != nil {
		t.Fatalf("user skills: %v", err)
	}
	got := map[string]int{}
	for _, l := range links {
		got[l.Skill.Name] = l.Proficiency
	}
	if len(got) != 2 || got["Go"] != 5 || got["SQL"] != models.DefaultProficiency {
		t.Fatalf("links: %v", got)
	}

	two := 2
	if err := repo.Attach(ctx, userID, []models.SkillAttachment{{SkillID: goSkill.ID, Proficiency: &two}}); err != nil {
		t.Fatalf("attach update: %v", err)
	}
	links, _ = repo.UserSkills(ctx, userID)
	if len(links) != 2 {
		t.Fatalf("attach must never remove links, got %d", len(links))
	}
	for _, l := range links {
		if l.SkillID == goSkill.ID && l.Proficiency != 2 {
			t.Fatalf("explicit proficiency should update: %d", l.Proficiency)
		}
	}
}

func TestSkillNamesAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewSkillRepo(testutil.SQLite(t))

	for _, name := range []string{"SQL", "Docker", "Go"} {
		if err := repo.Create(ctx, &models.Skill{ID: uuid.NewString(), Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	if err := repo.Create(ctx, &models.Skill{ID: uuid.NewString(), Name: "Go"}); !errors.Is(err, utils.ErrConflict) {
		t.Fatalf("duplicate name: want conflict, got %v", err)
	}

	names, err := repo.ListNames(ctx)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 3 || names[0] != "Docker" || names[2] != "SQL" {
		t.Fatalf("names: %v", names)
	}

	ids, err := repo.IDsByNames(ctx, []string{"Go", "Rust"})
	if err != nil {
		t.Fatalf("ids: %v", err)
	}
	if len(ids) != 1 || ids["Go"] == "" {
		t.Fatalf("ids: %v", ids)
	}
}
