package models

import "time"

// SiteStatID is the primary key of the only site_stats row.
const SiteStatID uint = 1

type StatField string

const (
	StatUsers        StatField = "users"
	StatCompanies    StatField = "companies"
	StatJobs         StatField = "jobs"
	StatApplications StatField = "applications"
)

// Column returns the site_stats column backing f.
func (f StatField) Column() (string, bool) {
	switch f {
	case StatUsers:
		return "total_users", true
	case StatCompanies:
		return "total_companies", true
	case StatJobs:
		return "total_jobs", true
	case StatApplications:
		return "total_applications", true
	}
	return "", false
}

type SiteStat struct {
	ID                uint  `gorm:"column:id;primaryKey;autoIncrement:false" json:"-"`
	TotalUsers        int64 `gorm:"column:total_users;not null" json:"total_users"`
	TotalCompanies    int64 `gorm:"column:total_companies;not null" json:"total_companies"`
	TotalJobs         int64 `gorm:"column:total_jobs;not null" json:"total_jobs"`
	TotalApplications int64 `gorm:"column:total_applications;not null" json:"total_applications"`

	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (SiteStat) TableName() string { return "site_stats" }

// Apply adds delta to field, flooring the result at zero, and returns the new value.
func (s *SiteStat) Apply(field StatField, delta int64) int64 {
	var p *int64
	switch field {
	case StatUsers:
		p = &s.TotalUsers
	case StatCompanies:
		p = &s.TotalCompanies
	case StatJobs:
		p = &s.TotalJobs
	case StatApplications:
		p = &s.TotalApplications
	default:
		return 0
	}
	*p = max(0, *p+delta)
	return *p
}

func (s *SiteStat) Totals() SiteTotals {
	if s == nil {
		return SiteTotals{}
	}
	return SiteTotals{
		TotalUsers:        s.TotalUsers,
		TotalCompanies:    s.TotalCompanies,
		TotalJobs:         s.TotalJobs,
		TotalApplications: s.TotalApplications,
	}
}

// SiteTotals is the read model of SiteStat. The zero value is what an absent row reads as.
type SiteTotals struct {
	TotalUsers        int64 `json:"total_users"`
	TotalCompanies    int64 `json:"total_companies"`
	TotalJobs         int64 `json:"total_jobs"`
	TotalApplications int64 `json:"total_applications"`
}

func (t SiteTotals) Row() SiteStat {
	return SiteStat{
		ID:                SiteStatID,
		TotalUsers:        t.TotalUsers,
		TotalCompanies:    t.TotalCompanies,
		TotalJobs:         t.TotalJobs,
		TotalApplications: t.TotalApplications,
	}
}

// SiteTotalsPatch is a partial administrative write; nil fields keep their
// stored value.
type SiteTotalsPatch struct {
	TotalUsers        *int64 `json:"total_users"`
	TotalCompanies    *int64 `json:"total_companies"`
	TotalJobs         *int64 `json:"total_jobs"`
	TotalApplications *int64 `json:"total_applications"`
}

// FullPatch sets every field of t.
func FullPatch(t SiteTotals) SiteTotalsPatch {
	return SiteTotalsPatch{
		TotalUsers:        &t.TotalUsers,
		TotalCompanies:    &t.TotalCompanies,
		TotalJobs:         &t.TotalJobs,
		TotalApplications: &t.TotalApplications,
	}
}

func (p SiteTotalsPatch) fields() []*int64 {
	return []*int64{p.TotalUsers, p.TotalCompanies, p.TotalJobs, p.TotalApplications}
}

func (p SiteTotalsPatch) Empty() bool {
	for _, f := range p.fields() {
		if f != nil {
			return false
		}
	}
	return true
}

func (p SiteTotalsPatch) HasNegative() bool {
	for _, f := range p.fields() {
		if f != nil && *f < 0 {
			return true
		}
	}
	return false
}

// Merge returns t with the set fields of p applied.
func (p SiteTotalsPatch) Merge(t SiteTotals) SiteTotals {
	if p.TotalUsers != nil {
		t.TotalUsers = *p.TotalUsers
	}
	if p.TotalCompanies != nil {
		t.TotalCompanies = *p.TotalCompanies
	}
	if p.TotalJobs != nil {
		t.TotalJobs = *p.TotalJobs
	}
	if p.TotalApplications != nil {
		t.TotalApplications = *p.TotalApplications
	}
	return t
}
