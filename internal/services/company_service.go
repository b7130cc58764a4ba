package services

import (
	"context"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
)

type CompanyInput struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Website       string `json:"website"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	IndustryID    *uint  `json:"industry_id"`
}

type CompanyService interface {
	Create(ctx context.Context, in CompanyInput) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Delete(ctx context.Context, id string) error
	Restore(ctx context.Context, id string) error
}

type companyService struct {
	companies  pgrepo.CompanyRepository
	industries pgrepo.IndustryRepository
	hooks      StatsHooks
}

func NewCompanyService(companies pgrepo.CompanyRepository, industries pgrepo.IndustryRepository, hooks StatsHooks) CompanyService {
	return &companyService{companies: companies, industries: industries, hooks: hooks}
}

func (s *companyService) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	const op = "CompanyService.Create"

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name is required", nil)
	}
	if in.ContactEmail != "" && !validEmail(strings.TrimSpace(in.ContactEmail)) {
		return nil, utils.E(utils.CodeInvalidArgument, op, "contact_email is not valid", nil)
	}
	if err := checkIndustry(ctx, s.industries, op, in.IndustryID); err != nil {
		return nil, err
	}

	c := &models.Company{
		ID:            uuid.NewString(),
		Name:          name,
		Description:   in.Description,
		Website:       strings.TrimSpace(in.Website),
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		ContactEmail:  strings.TrimSpace(in.ContactEmail),
		ContactPhone:  strings.TrimSpace(in.ContactPhone),
		IndustryID:    in.IndustryID,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create company", err)
	}
	s.hooks.Created(ctx, models.StatCompanies)
	return c, nil
}

func (s *companyService) List(ctx context.Context) ([]models.Company, error) {
	const op = "CompanyService.List"

	rows, err := s.companies.List(ctx)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list companies", err)
	}
	return rows, nil
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	const op = "CompanyService.Delete"

	changed, err := s.companies.SoftDelete(ctx, id)
	if err != nil {
		return lifecycleError(op, "company", err)
	}
	if changed {
		s.hooks.Deleted(ctx, models.StatCompanies)
	}
	return nil
}

func (s *companyService) Restore(ctx context.Context, id string) error {
	const op = "CompanyService.Restore"

	changed, err := s.companies.Restore(ctx, id)
	if err != nil {
		return lifecycleError(op, "company", err)
	}
	if changed {
		s.hooks.Restored(ctx, models.StatCompanies)
	}
	return nil
}
