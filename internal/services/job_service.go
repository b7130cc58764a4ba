package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type JobInput struct {
	CompanyID      string   `json:"company_id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	WorkType       string   `json:"work_type"`
	WorkTime       string   `json:"work_time"`
	Salary         string   `json:"salary"`
	Benefits       *string  `json:"benefits"`
	RequiredSkills []string `json:"required_skills"`
}

type JobService interface {
	Create(ctx context.Context, actor Actor, in JobInput) (*models.Job, error)
	List(ctx context.Context, limit int) ([]models.Job, error)
	ListForRecruiter(ctx context.Context, actor Actor) ([]models.Job, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Restore(ctx context.Context, id string) error
}

type jobService struct {
	jobs      pgrepo.JobRepository
	companies pgrepo.CompanyRepository
	users     pgrepo.UserRepository
	hooks     StatsHooks
}

func NewJobService(jobs pgrepo.JobRepository, companies pgrepo.CompanyRepository, users pgrepo.UserRepository, hooks StatsHooks) JobService {
	return &jobService{jobs: jobs, companies: companies, users: users, hooks: hooks}
}

func (s *jobService) Create(ctx context.Context, actor Actor, in JobInput) (*models.Job, error) {
	const op = "JobService.Create"

	in.Title = strings.TrimSpace(in.Title)
	switch {
	case in.Title == "":
		return nil, utils.E(utils.CodeInvalidArgument, op, "title is required", nil)
	case strings.TrimSpace(in.Description) == "":
		return nil, utils.E(utils.CodeInvalidArgument, op, "description is required", nil)
	case !slices.Contains(models.JobWorkTypes, in.WorkType):
		return nil, utils.E(utils.CodeInvalidArgument, op, "work_type must be one of remote, onsite, hybrid", nil)
	case !slices.Contains(models.JobWorkTimes, in.WorkTime):
		return nil, utils.E(utils.CodeInvalidArgument, op, "work_time must be full_time or part_time", nil)
	}

	if in.CompanyID == "" {
		if u, err := s.users.GetByID(ctx, actor.ID); err == nil && u.CompanyID != nil {
			in.CompanyID = *u.CompanyID
		}
	}
	if in.CompanyID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "company_id is required", nil)
	}
	if _, err := s.companies.GetByID(ctx, in.CompanyID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "company does not exist", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to check company", err)
	}

	salary := strings.TrimSpace(in.Salary)
	if salary == "" {
		salary = models.DefaultSalary
	}
	skills := make([]string, 0, len(in.RequiredSkills))
	for _, sk := range in.RequiredSkills {
		if sk = strings.TrimSpace(sk); sk != "" {
			skills = append(skills, sk)
		}
	}

	createdBy := actor.ID
	j := &models.Job{
		ID:             uuid.NewString(),
		CompanyID:      in.CompanyID,
		CreatedBy:      &createdBy,
		Title:          in.Title,
		Description:    in.Description,
		WorkType:       in.WorkType,
		WorkTime:       in.WorkTime,
		Salary:         salary,
		Benefits:       in.Benefits,
		RequiredSkills: datatypes.JSONSlice[string](skills),
		Status:         models.JobStatusOpen,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create job", err)
	}
	s.hooks.Created(ctx, models.StatJobs)
	return j, nil
}

func (s *jobService) List(ctx context.Context, limit int) ([]models.Job, error) {
	const op = "JobService.List"

	rows, err := s.jobs.List(ctx, pgrepo.JobFilter{Limit: limit})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return rows, nil
}

func (s *jobService) ListForRecruiter(ctx context.Context, actor Actor) ([]models.Job, error) {
	const op = "JobService.ListForRecruiter"

	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}

	f := pgrepo.JobFilter{CreatedBy: u.ID}
	if u.CompanyID != nil {
		f = pgrepo.JobFilter{CompanyID: *u.CompanyID}
	}
	rows, err := s.jobs.List(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list jobs", err)
	}
	return rows, nil
}

func (s *jobService) Delete(ctx context.Context, actor Actor, id string) error {
	const op = "JobService.Delete"

	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return lifecycleError(op, "job", err)
	}
	if !managesJob(ctx, s.users, actor, j) {
		return utils.E(utils.CodeForbidden, op, "job belongs to another recruiter", nil)
	}

	changed, err := s.jobs.SoftDelete(ctx, id)
	if err != nil {
		return lifecycleError(op, "job", err)
	}
	if changed {
		s.hooks.Deleted(ctx, models.StatJobs)
	}
	return nil
}

func (s *jobService) Restore(ctx context.Context, id string) error {
	const op = "JobService.Restore"

	changed, err := s.jobs.Restore(ctx, id)
	if err != nil {
		return lifecycleError(op, "job", err)
	}
	if changed {
		s.hooks.Restored(ctx, models.StatJobs)
	}
	return nil
}

// managesJob reports whether actor may administer j: admins always, recruiters
// for jobs they posted or jobs of their company.
func managesJob(ctx context.Context, users pgrepo.UserRepository, actor Actor, j *models.Job) bool {
	if actor.IsAdmin() {
		return true
	}
	if j.CreatedBy != nil && *j.CreatedBy == actor.ID {
		return true
	}
	u, err := users.GetByID(ctx, actor.ID)
	return err == nil && u.CompanyID != nil && *u.CompanyID == j.CompanyID
}
