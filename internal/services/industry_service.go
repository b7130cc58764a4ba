package services

import (
	"context"
	"errors"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
)

type IndustryService interface {
	List(ctx context.Context) ([]models.Industry, error)
	Create(ctx context.Context, name string) (*models.Industry, error)
}

type industryService struct {
	industries pgrepo.IndustryRepository
}

func NewIndustryService(industries pgrepo.IndustryRepository) IndustryService {
	return &industryService{industries: industries}
}

func (s *industryService) List(ctx context.Context) ([]models.Industry, error) {
	const op = "IndustryService.List"

	rows, err := s.industries.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list industries", err)
	}
	return rows, nil
}

func (s *industryService) Create(ctx context.Context, name string) (*models.Industry, error) {
	const op = "IndustryService.Create"

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	in := &models.Industry{Name: name}
	if err := s.industries.Create(ctx, in); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "industry already exists", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create industry", err)
	}
	return in, nil
}

// checkIndustry accepts a nil id and rejects ids with no industry row.
func checkIndustry(ctx context.Context, industries pgrepo.IndustryRepository, op string, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := industries.GetByID(ctx, *id); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeInvalidArgument, op, "industry does not exist", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to check industry", err)
	}
	return nil
}
