package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	pgrepo "github.com/LifeIsCold/Intelligent-Recruitment-System/internal/repositories/postgres"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const minPasswordLen = 8

// Actor is the authenticated caller of a service method.
type Actor struct {
	ID   string
	Role models.UserRole
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// RegisterInput registers a job seeker or a recruiter. A recruiter either joins
// an existing company through CompanyID or creates one from the Company* fields.
type RegisterInput struct {
	Name      string          `json:"name" binding:"max=255"`
	Email     string          `json:"email" binding:"max=255"`
	Password  string          `json:"password"`
	Phone     string          `json:"phone" binding:"max=20"`
	Role      models.UserRole `json:"role"`
	CompanyID *string         `json:"company_id"`

	CompanyName          string `json:"company_name" binding:"max=255"`
	CompanyWebsite       string `json:"company_website" binding:"omitempty,url,max=255"`
	CompanyContactPerson string `json:"company_contact_person" binding:"max=255"`
	CompanyContactPhone  string `json:"company_contact_phone" binding:"max=20"`
	IndustryID           *uint  `json:"industry_id"`
}

// ProfileInput is a partial profile update; nil fields are left alone.
// Company fields apply to recruiters attached to a company only.
type ProfileInput struct {
	Name  *string `json:"name" binding:"omitempty,max=255"`
	Email *string `json:"email" binding:"omitempty,max=255"`
	Phone *string `json:"phone" binding:"omitempty,max=20"`

	CompanyName          *string `json:"company_name" binding:"omitempty,max=255"`
	CompanyWebsite       *string `json:"company_website" binding:"omitempty,url,max=255"`
	CompanyContactPerson *string `json:"company_contact_person" binding:"omitempty,max=255"`
	CompanyContactPhone  *string `json:"company_contact_phone" binding:"omitempty,max=20"`
	IndustryID           *uint   `json:"industry_id"`
}

type AuthResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      *models.User    `json:"user"`
	Company   *models.Company `json:"company,omitempty"`
}

type Profile struct {
	User    *models.User    `json:"user"`
	Company *models.Company `json:"company"`
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*Profile, error)
	Delete(ctx context.Context, userID string) error
	Restore(ctx context.Context, userID string) error
}

type userService struct {
	tx         pgrepo.TxRunner
	users      pgrepo.UserRepository
	companies  pgrepo.CompanyRepository
	industries pgrepo.IndustryRepository
	tokens     *utils.TokenIssuer
	hooks      StatsHooks
}

func NewUserService(tx pgrepo.TxRunner, users pgrepo.UserRepository, companies pgrepo.CompanyRepository, industries pgrepo.IndustryRepository, tokens *utils.TokenIssuer, hooks StatsHooks) UserService {
	return &userService{tx: tx, users: users, companies: companies, industries: industries, tokens: tokens, hooks: hooks}
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	const op = "UserService.Register"

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	if in.Role == "" {
		in.Role = models.RoleJobSeeker
	}
	if in.CompanyID != nil && *in.CompanyID == "" {
		in.CompanyID = nil
	}

	switch {
	case len(in.Name) < 2:
		return nil, utils.E(utils.CodeInvalidArgument, op, "name must be at least 2 characters", nil)
	case !validEmail(in.Email):
		return nil, utils.E(utils.CodeInvalidArgument, op, "a valid email is required", nil)
	case in.Role != models.RoleJobSeeker && in.Role != models.RoleRecruiter:
		return nil, utils.E(utils.CodeInvalidArgument, op, "role must be job_seeker or recruiter", nil)
	}
	if err := checkPasswordRule(op, in.Password); err != nil {
		return nil, err
	}

	// only recruiters carry a company
	var company *models.Company
	switch {
	case in.Role != models.RoleRecruiter:
		in.CompanyID = nil
	case in.CompanyID != nil:
		if _, err := s.companies.GetByID(ctx, *in.CompanyID); err != nil {
			if errors.Is(err, utils.ErrNotFound) {
				return nil, utils.E(utils.CodeInvalidArgument, op, "company does not exist", err)
			}
			return nil, utils.E(utils.CodeInternal, op, "failed to check company", err)
		}
	default:
		if len(in.CompanyName) < 2 {
			return nil, utils.E(utils.CodeInvalidArgument, op, "company_name is required for recruiters", nil)
		}
		if err := checkIndustry(ctx, s.industries, op, in.IndustryID); err != nil {
			return nil, err
		}
		company = &models.Company{
			ID:            uuid.NewString(),
			Name:          in.CompanyName,
			Website:       strings.TrimSpace(in.CompanyWebsite),
			ContactPerson: strings.TrimSpace(in.CompanyContactPerson),
			ContactEmail:  in.Email,
			ContactPhone:  strings.TrimSpace(in.CompanyContactPhone),
			IndustryID:    in.IndustryID,
		}
		in.CompanyID = &company.ID
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         in.Role,
		CompanyID:    in.CompanyID,
	}
	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if company != nil {
			if err := s.companies.WithTx(tx).Create(ctx, company); err != nil {
				return err
			}
		}
		return s.users.WithTx(tx).Create(ctx, u)
	})
	if err != nil {
		if errors.Is(err, utils.ErrConflict) {
			return nil, utils.E(utils.CodeConflict, op, "email is already registered", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
	}
	if company != nil {
		s.hooks.Created(ctx, models.StatCompanies)
	}
	s.hooks.Created(ctx, models.StatUsers)

	res, err := s.issue(op, u)
	if err != nil {
		return nil, err
	}
	res.Company = company
	return res, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "UserService.Login"

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to load user", err)
	}
	if !utils.CheckPassword(u.PasswordHash, password) {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid credentials", nil)
	}
	return s.issue(op, u)
}

func (s *userService) issue(op string, u *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to issue token", err)
	}
	return &AuthResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*Profile, error) {
	const op = "UserService.Me"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	return s.profile(ctx, op, userID)
}

func (s *userService) profile(ctx context.Context, op, userID string) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	p := &Profile{User: u}
	if u.CompanyID != nil {
		c, err := s.companies.GetByID(ctx, *u.CompanyID)
		switch {
		case err == nil:
			p.Company = c
		case !errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeInternal, op, "failed to get company", err)
		}
	}
	return p, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (*Profile, error) {
	const op = "UserService.UpdateProfile"

	cur, err := s.profile(ctx, op, userID)
	if err != nil {
		return nil, err
	}

	userCols := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if len(name) < 2 {
			return nil, utils.E(utils.CodeInvalidArgument, op, "name must be at least 2 characters", nil)
		}
		userCols["name"] = name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !validEmail(email) {
			return nil, utils.E(utils.CodeInvalidArgument, op, "a valid email is required", nil)
		}
		userCols["email"] = email
	}
	if in.Phone != nil {
		userCols["phone"] = strings.TrimSpace(*in.Phone)
	}

	companyCols := map[string]any{}
	if cur.User.Role == models.RoleRecruiter && cur.Company != nil {
		if in.CompanyName != nil {
			name := strings.TrimSpace(*in.CompanyName)
			if len(name) < 2 {
				return nil, utils.E(utils.CodeInvalidArgument, op, "company_name must be at least 2 characters", nil)
			}
			companyCols["name"] = name
		}
		if in.CompanyWebsite != nil {
			companyCols["website"] = strings.TrimSpace(*in.CompanyWebsite)
		}
		if in.CompanyContactPerson != nil {
			companyCols["contact_person"] = strings.TrimSpace(*in.CompanyContactPerson)
		}
		if in.CompanyContactPhone != nil {
			companyCols["contact_phone"] = strings.TrimSpace(*in.CompanyContactPhone)
		}
		if in.IndustryID != nil {
			if err := checkIndustry(ctx, s.industries, op, in.IndustryID); err != nil {
				return nil, err
			}
			companyCols["industry_id"] = *in.IndustryID
		}
	}

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.users.WithTx(tx).Update(ctx, userID, userCols); err != nil {
			return err
		}
		if len(companyCols) > 0 {
			return s.companies.WithTx(tx).Update(ctx, cur.Company.ID, companyCols)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrConflict):
			return nil, utils.E(utils.CodeConflict, op, "email is already registered", err)
		case errors.Is(err, utils.ErrNotFound):
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}
	return s.profile(ctx, op, userID)
}

func (s *userService) Delete(ctx context.Context, userID string) error {
	const op = "UserService.Delete"

	changed, err := s.users.SoftDelete(ctx, userID)
	if err != nil {
		return lifecycleError(op, "user", err)
	}
	if changed {
		s.hooks.Deleted(ctx, models.StatUsers)
	}
	return nil
}

func (s *userService) Restore(ctx context.Context, userID string) error {
	const op = "UserService.Restore"

	changed, err := s.users.Restore(ctx, userID)
	if err != nil {
		return lifecycleError(op, "user", err)
	}
	if changed {
		s.hooks.Restored(ctx, models.StatUsers)
	}
	return nil
}

// checkPasswordRule requires 8+ characters with an uppercase letter and a digit.
func checkPasswordRule(op, pw string) error {
	if len(pw) < minPasswordLen {
		return utils.E(utils.CodeInvalidArgument, op, "password must be at least 8 characters", nil)
	}
	var upper, digit bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !digit {
		return utils.E(utils.CodeInvalidArgument, op, "password must contain at least one uppercase letter and one number", nil)
	}
	return nil
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func lifecycleError(op, entity string, err error) error {
	if errors.Is(err, utils.ErrNotFound) {
		return utils.E(utils.CodeNotFound, op, entity+" not found", err)
	}
	return utils.E(utils.CodeInternal, op, "failed to update "+entity, err)
}
