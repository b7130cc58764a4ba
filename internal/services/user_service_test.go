package services

import (
	"context"
	"testing"

	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/models"
	"github.com/LifeIsCold/Intelligent-Recruitment-System/internal/utils"
)

func TestRegisterPasswordRule(t *testing.T) {
	p := newPlatform(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"too short", "Pass1", false},
		{"no uppercase", "password123", false},
		{"no digit", "Password", false},
		{"upper and digit", "Password1", true},
	}
	for i, tc := range cases {
		_, err := p.users.Register(ctx, RegisterInput{
			Name: "Test", Email: string(rune('a'+i)) + "@example.com", Password: tc.password,
		})
		if tc.ok && err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !tc.ok && !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Fatalf("%s: want INVALID_ARGUMENT, got %v", tc.name, err)
		}
	}
}

func TestRecruiterRegistrationCreatesCompany(t *testing.T) {
	p := newPlatform(t)
	ctx := context.Background()

	ind := &models.Industry{Name: "Software"}
	if err := p.inds.Create(ctx, ind); err != nil {
		t.Fatalf("industry: %v", err)
	}

	in := RegisterInput{
		Name: "Rita", Email: "Rita@Acme.io", Password: "Password123", Role: models.RoleRecruiter,
		CompanyWebsite: "https://acme.io", CompanyContactPerson: "Rita", CompanyContactPhone: "555",
	}
	if _, err := p.users.Register(ctx, in); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("missing company name: want INVALID_ARGUMENT, got %v", err)
	}

	in.CompanyName = "Acme"
	missing := ind.ID + 100
	in.IndustryID = &missing
	if _, err := p.users.Register(ctx, in); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("unknown industry: want INVALID_ARGUMENT, got %v", err)
	}
	if got := p.totals(t); got != (models.SiteTotals{}) {
		t.Fatalf("rejected registrations must not count: %+v", got)
	}

	in.IndustryID = &ind.ID
	res, err := p.users.Register(ctx, in)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	c := res.Company
	if c == nil || res.User.CompanyID == nil || *res.User.CompanyID != c.ID {
		t.Fatalf("company link: %+v", res)
	}
	if c.Name != "Acme" || c.ContactEmail != "rita@acme.io" || c.Website != "https://acme.io" || c.IndustryID == nil || *c.IndustryID != ind.ID {
		t.Fatalf("company fields: %+v", c)
	}
	want := models.SiteTotals{TotalUsers: 1, TotalCompanies: 1}
	if got := p.totals(t); got != want {
		t.Fatalf("totals: want=%+v got=%+v", want, got)
	}

	// a failed user insert rolls the company back
	in.CompanyName = "Acme Two"
	if _, err := p.users.Register(ctx, in); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("duplicate email: want CONFLICT, got %v", err)
	}
	re, err := p.stats.Recompute(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if re != want {
		t.Fatalf("recompute after rollback: want=%+v got=%+v", want, re)
	}

	// seekers never carry a company
	seeker, err := p.users.Register(ctx, RegisterInput{
		Name: "Sam", Email: "sam@example.com", Password: "Password123", CompanyName: "Ignored",
	})
	if err != nil {
		t.Fatalf("seeker: %v", err)
	}
	if seeker.Company != nil || seeker.User.CompanyID != nil {
		t.Fatalf("seeker got a company: %+v", seeker)
	}
}

func TestUpdateProfile(t *testing.T) {
	p := newPlatform(t)
	ctx := context.Background()

	ind := &models.Industry{Name: "Finance"}
	if err := p.inds.Create(ctx, ind); err != nil {
		t.Fatalf("industry: %v", err)
	}
	rec := p.register(t, "rec@example.com", models.RoleRecruiter, nil)
	seeker := p.register(t, "seek@example.com", models.RoleJobSeeker, nil)

	name, email, phone := "  Rita Q ", "RITA@example.com", "555-0100"
	coName, site := "Acme Labs", "https://labs.acme.io"
	got, err := p.users.UpdateProfile(ctx, rec.ID, ProfileInput{
		Name: &name, Email: &email, Phone: &phone,
		CompanyName: &coName, CompanyWebsite: &site, IndustryID: &ind.ID,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.User.Name != "Rita Q" || got.User.Email != "rita@example.com" || got.User.Phone != "555-0100" {
		t.Fatalf("user: %+v", got.User)
	}
	if got.Company == nil || got.Company.Name != "Acme Labs" || got.Company.Website != site {
		t.Fatalf("company: %+v", got.Company)
	}
	if got.Company.Industry == nil || got.Company.Industry.Name != "Finance" {
		t.Fatalf("industry: %+v", got.Company.Industry)
	}
	if _, err := p.users.Login(ctx, "rita@example.com", "Password123"); err != nil {
		t.Fatalf("login with new email: %v", err)
	}

	// omitted fields stay
	other := "Rita R"
	got, err = p.users.UpdateProfile(ctx, rec.ID, ProfileInput{Name: &other})
	if err != nil {
		t.Fatalf("partial update: %v", err)
	}
	if got.User.Email != "rita@example.com" || got.User.Phone != "555-0100" || got.Company.Name != "Acme Labs" {
		t.Fatalf("partial update dropped fields: %+v %+v", got.User, got.Company)
	}

	taken := "seek@example.com"
	if _, err := p.users.UpdateProfile(ctx, rec.ID, ProfileInput{Email: &taken}); !utils.IsCode(err, utils.CodeConflict) {
		t.Fatalf("taken email: want CONFLICT, got %v", err)
	}
	bad := "not-an-email"
	if _, err := p.users.UpdateProfile(ctx, rec.ID, ProfileInput{Email: &bad}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("bad email: want INVALID_ARGUMENT, got %v", err)
	}
	missing := ind.ID + 100
	if _, err := p.users.UpdateProfile(ctx, rec.ID, ProfileInput{IndustryID: &missing}); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("unknown industry: want INVALID_ARGUMENT, got %v", err)
	}

	// company fields are ignored for users without a company
	got, err = p.users.UpdateProfile(ctx, seeker.ID, ProfileInput{CompanyName: &coName})
	if err != nil {
		t.Fatalf("seeker update: %v", err)
	}
	if got.Company != nil {
		t.Fatalf("seeker company: %+v", got.Company)
	}

	if err := p.users.Delete(ctx, seeker.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.users.UpdateProfile(ctx, seeker.ID, ProfileInput{Name: &other}); !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("deleted user: want NOT_FOUND, got %v", err)
	}
}
