package services

import (
	"context"
	"testing"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/testutil"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type platform struct {
	db    *gorm.DB
	stats SiteStatService
	users UserService
	comps CompanyService
	jobs  JobService
	apps  ApplicationService
	match MatchService
	cvs   pgrepo.CVRepository
	inds  pgrepo.IndustryRepository
}

func newPlatform(t *testing.T) *platform {
	t.Helper()
	utils.PasswordCost = bcrypt.MinCost
	t.Cleanup(func() { utils.PasswordCost = bcrypt.DefaultCost })

	db := testutil.SQLite(t)
	log := testutil.Logger(t)
	stats := NewSiteStatService(pgrepo.NewSiteStatRepo(db), nil, nil, 0, log)
	hooks := NewStatsHooks(stats, log)

	userRepo := pgrepo.NewUserRepo(db)
	companyRepo := pgrepo.NewCompanyRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	cvRepo := pgrepo.NewCVRepo(db)
	industryRepo := pgrepo.NewIndustryRepo(db)
	tokens := utils.NewTokenIssuer("test-secret", "recruitment-api", time.Hour)

	return &platform{
		db:    db,
		stats: stats,
		users: NewUserService(pgrepo.NewGormTxRunner(db), userRepo, companyRepo, industryRepo, tokens, hooks),
		comps: NewCompanyService(companyRepo, industryRepo, hooks),
		jobs:  NewJobService(jobRepo, companyRepo, userRepo, hooks),
		apps:  NewApplicationService(pgrepo.NewApplicationRepo(db), jobRepo, cvRepo, userRepo, hooks),
		match: NewMatchService(cvRepo, jobRepo),
		cvs:   cvRepo,
		inds:  industryRepo,
	}
}

func (p *platform) totals(t *testing.T) models.SiteTotals {
	t.Helper()
	got, err := p.stats.Totals(context.Background())
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	return got
}

// register signs up a user. A recruiter without companyID gets a new company.
func (p *platform) register(t *testing.T, email string, role models.UserRole, companyID *string) Actor {
	t.Helper()
	in := RegisterInput{Name: "Test", Email: email, Password: "Password123", Role: role, CompanyID: companyID}
	if role == models.RoleRecruiter && companyID == nil {
		in.CompanyName = email + " Co"
	}
	res, err := p.users.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return Actor{ID: res.User.ID, Role: res.User.Role}
}

func TestUserLifecycleDrivesCounter(t *testing.T) {
	p := newPlatform(t)
	ctx := context.Background()

	a := p.register(t, "Ana@Example.com", "", nil)
	p.register(t, "bob@example.com", models.RoleRecruiter, nil)
	if got := p.totals(t).TotalUsers; got != 2 {
		t.Fatalf("after register: %d", got)
	}

	if _, err := p.users.Register(ctx, RegisterInput{Name: "Xavier", Email: "ana@example.com", Password: "Password123"}); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("duplicate email: want CONFLICT, got %v", err)
	}
	if _, err := p.users.Register(ctx, RegisterInput{Name: "Xavier", Email: "root@example.com", Password: "Password123", Role: models.RoleAdmin}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("admin self-registration: want INVALID_ARGUMENT, got %v", err)
	}
	if got := p.totals(t).TotalUsers; got != 2 {
		t.Fatalf("failed registrations must not count: %d", got)
	}

	if _, err := p.users.Login(ctx, "ana@example.com", "Password123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := p.users.Login(ctx, "ana@example.com", "wrong-password"); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Fatalf("bad password: want UNAUTHORIZED, got %v", err)
	}

	if err := p.users.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.users.Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete again: %v", err)
	}
	if got := p.totals(t).TotalUsers; got != 1 {
		t.Fatalf("repeated delete must decrement once: %d", got)
	}
	if _, err := p.users.Login(ctx, "ana@example.com", "Password123"); !utils.IsCode(err, utils.CodeUnauthorized) {
		t.Fatalf("deleted user login: %v", err)
	}

	if err := p.users.Restore(ctx, a.ID); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if got := p.totals(t).TotalUsers; got != 2 {
		t.Fatalf("after restore: %d", got)
	}
	if err := p.users.Delete(ctx, uuid.NewString()); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("missing user: want NOT_FOUND, got %v", err)
	}
}

func TestJobsApplicationsAndMatch(t *testing.T) {
	p := newPlatform(t)
	ctx := context.Background()

	company, err := p.comps.Create(ctx, CompanyInput{Name: "Acme"})
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	recruiter := p.register(t, "rec@example.com", models.RoleRecruiter, &company.ID)
	other := p.register(t, "other@example.com", models.RoleRecruiter, nil)
	seeker := p.register(t, "seek@example.com", models.RoleJobSeeker, nil)

	job, err := p.jobs.Create(ctx, recruiter, JobInput{
		Title: "Backend", Description: "APIs", WorkType: "remote", WorkTime: "full_time",
		RequiredSkills: []string{"go", "Kubernetes", " "},
	})
	if err != nil {
		t.Fatalf("job: %v", err)
	}
	if job.Salary != models.DefaultSalary || job.Status != models.JobStatusOpen || job.CompanyID != company.ID {
		t.Fatalf("job defaults: %+v", job)
	}
	if len(job.RequiredSkills) != 2 {
		t.Fatalf("blank skills kept: %v", job.RequiredSkills)
	}
	if _, err := p.jobs.Create(ctx, recruiter, JobInput{Title: "x", Description: "y", WorkType: "moon", WorkTime: "full_time"}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("bad work type: %v", err)
	}

	cv := &models.CV{ID: uuid.NewString(), UserID: seeker.ID, MatchedSkills: datatypes.JSONSlice[string]{"Go", "SQL"}, ParsedAt: time.Now(), CreatedAt: time.Now()}
	if err := p.cvs.Insert(ctx, cv); err != nil {
		t.Fatalf("cv: %v", err)
	}

	res, err := p.match.Match(ctx, seeker.ID, cv.ID, job.ID)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if res.Score != PlaceholderMatchScore || len(res.MatchedSkills) != 1 || res.MatchedSkills[0] != "go" || len(res.MissingSkills) != 1 {
		t.Fatalf("match: %+v", res)
	}

	app, err := p.apps.Apply(ctx, seeker, job.ID, cv.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := p.apps.Apply(ctx, seeker, job.ID, cv.ID); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("duplicate apply: want CONFLICT, got %v", err)
	}
	if _, err := p.apps.Apply(ctx, other, job.ID, cv.ID); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("foreign cv: want NOT_FOUND, got %v", err)
	}

	if _, err := p.apps.ListByJob(ctx, other, job.ID); !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("other recruiter listing: want FORBIDDEN, got %v", err)
	}
	list, err := p.apps.ListByJob(ctx, recruiter, job.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %d", err, len(list))
	}

	want := models.SiteTotals{TotalUsers: 3, TotalCompanies: 2, TotalJobs: 1, TotalApplications: 1}
	if got := p.totals(t); got != want {
		t.Fatalf("totals: want=%+v got=%+v", want, got)
	}

	if err := p.apps.Delete(ctx, other, app.ID); !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("foreign delete: %v", err)
	}
	if err := p.jobs.Delete(ctx, other, job.ID); !utils.IsCode(err, utils.CodeForbidden) {
		t.Fatalf("foreign job delete: %v", err)
	}
	if err := p.apps.Delete(ctx, seeker, app.ID); err != nil {
		t.Fatalf("delete application: %v", err)
	}
	if err := p.jobs.Delete(ctx, recruiter, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	if err := p.comps.Delete(ctx, company.ID); err != nil {
		t.Fatalf("delete company: %v", err)
	}

	want = models.SiteTotals{TotalUsers: 3, TotalCompanies: 1}
	if got := p.totals(t); got != want {
		t.Fatalf("totals after deletes: want=%+v got=%+v", want, got)
	}

	// recompute agrees with the incrementally maintained counters
	re, err := p.stats.Recompute(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if re != want {
		t.Fatalf("recompute: want=%+v got=%+v", want, re)
	}
}
