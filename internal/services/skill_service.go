package services

import (
	"context"
	"errors"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SkillService interface {
	List(ctx context.Context) ([]models.Skill, error)
	UserSkills(ctx context.Context, userID string) ([]models.UserSkill, error)
	// AddToUser never removes links. Omitted proficiency keeps existing values.
	AddToUser(ctx context.Context, userID string, atts []models.SkillAttachment) ([]models.UserSkill, error)
	Create(ctx context.Context, name, description string) (*models.Skill, error)
}

type skillService struct {
	tx     pgrepo.TxRunner
	skills pgrepo.SkillRepository
}

func NewSkillService(tx pgrepo.TxRunner, skills pgrepo.SkillRepository) SkillService {
	return &skillService{tx: tx, skills: skills}
}

func (s *skillService) List(ctx context.Context) ([]models.Skill, error) {
	const op = "SkillService.List"

	rows, err := s.skills.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skills", err)
	}
	return rows, nil
}

func (s *skillService) UserSkills(ctx context.Context, userID string) ([]models.UserSkill, error) {
	const op = "SkillService.UserSkills"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.skills.UserSkills(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list user skills", err)
	}
	return rows, nil
}

func (s *skillService) AddToUser(ctx context.Context, userID string, atts []models.SkillAttachment) ([]models.UserSkill, error) {
	const op = "SkillService.AddToUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	if len(atts) == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "at least one skill is required", nil)
	}

	ids := make([]string, 0, len(atts))
	for _, a := range atts {
		if a.SkillID == "" {
			return nil, utils.E(utils.CodeInvalidArgument, op, "skill_id is required", nil)
		}
		if p := a.Proficiency; p != nil && (*p < models.MinProficiency || *p > models.MaxProficiency) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "proficiency must be between 1 and 5", nil)
		}
		ids = append(ids, a.SkillID)
	}

	known, err := s.skills.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to check skills", err)
	}
	for _, id := range ids {
		if !known[id] {
			return nil, utils.E(utils.CodeNotFound, op, "skill "+id+" not found", nil)
		}
	}

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		return s.skills.WithTx(tx).Attach(ctx, userID, atts)
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to attach skills", err)
	}
	return s.UserSkills(ctx, userID)
}

func (s *skillService) Create(ctx context.Context, name, description string) (*models.Skill, error) {
	const op = "SkillService.Create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	sk := &models.Skill{ID: uuid.NewString(), Name: name, Description: strings.TrimSpace(description)}
	if err := s.skills.Create(ctx, sk); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "skill already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create skill", err)
	}
	return sk, nil
}
