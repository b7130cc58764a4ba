package services

import (
	"context"
	"errors"
	"strings"

	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
)

// PlaceholderMatchScore is returned until real scoring exists.
const PlaceholderMatchScore = 0.72

type MatchResult struct {
	CVID          string   `json:"cv_id"`
	JobID         string   `json:"job_id"`
	Score         float64  `json:"score"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type MatchService interface {
	Match(ctx context.Context, userID, cvID, jobID string) (*MatchResult, error)
}

type matchService struct {
	cvs  pgrepo.CVRepository
	jobs pgrepo.JobRepository
}

func NewMatchService(cvs pgrepo.CVRepository, jobs pgrepo.JobRepository) MatchService {
	return &matchService{cvs: cvs, jobs: jobs}
}

func (s *matchService) Match(ctx context.Context, userID, cvID, jobID string) (*MatchResult, error) {
	const op = "MatchService.Match"

	if cvID == "" || jobID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "cv_id and job_id are required", nil)
	}
	cv, err := s.cvs.GetForOwner(ctx, userID, cvID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "cv not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load cv", err)
	}
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "job not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load job", err)
	}

	have := make(map[string]bool, len(cv.MatchedSkills))
	for _, sk := range cv.MatchedSkills {
		have[strings.ToLower(sk)] = true
	}
	res := &MatchResult{
		CVID:          cv.ID,
		JobID:         job.ID,
		Score:         PlaceholderMatchScore,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
	for _, req := range job.RequiredSkills {
		if have[strings.ToLower(req)] {
			res.MatchedSkills = append(res.MatchedSkills, req)
		} else {
			res.MissingSkills = append(res.MissingSkills, req)
		}
	}
	return res, nil
}
