package services

import (
	"context"
	"errors"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
)

type ApplicationService interface {
	Apply(ctx context.Context, actor Actor, jobID, cvID string) (*models.Application, error)
	ListByJob(ctx context.Context, actor Actor, jobID string) ([]models.Application, error)
	Delete(ctx context.Context, actor Actor, id string) error
	Restore(ctx context.Context, id string) error
}

type applicationService struct {
	apps  pgrepo.ApplicationRepository
	jobs  pgrepo.JobRepository
	cvs   pgrepo.CVRepository
	users pgrepo.UserRepository
	hooks StatsHooks
}

func NewApplicationService(apps pgrepo.ApplicationRepository, jobs pgrepo.JobRepository, cvs pgrepo.CVRepository, users pgrepo.UserRepository, hooks StatsHooks) ApplicationService {
	return &applicationService{apps: apps, jobs: jobs, cvs: cvs, users: users, hooks: hooks}
}

func (s *applicationService) Apply(ctx context.Context, actor Actor, jobID, cvID string) (*models.Application, error) {
	const op = "ApplicationService.Apply"

	if jobID == "" || cvID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "job_id and cv_id are required", nil)
	}

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if job.Status != models.JobStatusOpen {
		return nil, utils.E(utils.CodeConflict, op, "job is not accepting applications", nil)
	}
	if _, err := s.cvs.GetForOwner(ctx, actor.ID, cvID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load cv", err)
	}

	a := &models.Application{
		ID:     uuid.NewString(),
		JobID:  jobID,
		CVID:   cvID,
		UserID: actor.ID,
		Status: models.ApplicationPending,
	}
	if err := s.apps.Create(ctx, a); err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "this cv was already submitted to the job", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create application", err)
	}
	s.hooks.Created(ctx, models.StatApplications)
	return a, nil
}

func (s *applicationService) ListByJob(ctx context.Context, actor Actor, jobID string) ([]models.Application, error) {
	const op = "ApplicationService.ListByJob"

	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}
	if !managesJob(ctx, s.users, actor, job) {
		return nil, utils.E(utils.CodeForbidden, op, "job belongs to another recruiter", nil)
	}

	rows, err := s.apps.ListByJob(ctx, jobID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}
	return rows, nil
}

func (s *applicationService) Delete(ctx context.Context, actor Actor, id string) error {
	const op = "ApplicationService.Delete"

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return lifecycleError(op, "application", err)
	}
	if a.UserID != actor.ID && !actor.IsAdmin() {
		return utils.E(utils.CodeForbidden, op, "application belongs to another user", nil)
	}

	changed, err := s.apps.SoftDelete(ctx, id)
	if err != nil {
		return lifecycleError(op, "application", err)
	}
	if changed {
		s.hooks.Deleted(ctx, models.StatApplications)
	}
	return nil
}

func (s *applicationService) Restore(ctx context.Context, id string) error {
	const op = "ApplicationService.Restore"

	changed, err := s.apps.Restore(ctx, id)
	if err != nil {
		return lifecycleError(op, "application", err)
	}
	if changed {
		s.hooks.Restored(ctx, models.StatApplications)
	}
	return nil
}
