package domain

import (
	"context"
	"time"
)

type Experience struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profile_id"`
	JobTitle    string     `json:"job_title"`
	CompanyName string     `json:"company_name"`
	Location    *string    `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProfileName *string    `json:"profile_name,omitempty"`
}

// ExperiencePublic drops audit columns for portfolio pages.
type ExperiencePublic struct {
	ID          int64      `json:"id"`
	JobTitle    string     `json:"job_title"`
	CompanyName string     `json:"company_name"`
	Location    *string    `json:"location"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsCurrent   bool       `json:"is_current"`
	Description *string    `json:"description"`
}

func (e *Experience) Public() ExperiencePublic {
	return ExperiencePublic{
		ID:          e.ID,
		JobTitle:    e.JobTitle,
		CompanyName: e.CompanyName,
		Location:    e.Location,
		StartDate:   e.StartDate,
		EndDate:     e.EndDate,
		IsCurrent:   e.IsCurrent,
		Description: e.Description,
	}
}

type ExperienceFilter struct {
	ProfileID   *int64
	IsCurrent   *bool
	Search      string // profile name, job title, company or location
	JobTitle    string
	CompanyName string
	Location    string
}

type ExperiencePatch struct {
	ProfileID   *int64
	JobTitle    *string
	CompanyName *string
	Location    *string
	StartDate   *time.Time
	// EndDateSet distinguishes an explicit null from an absent end_date.
	EndDateSet  bool
	EndDate     *time.Time
	IsCurrent   *bool
	Description *string
}

type ExperienceStatistics struct {
	Total                  int64 `json:"total_experiences"`
	ProfilesWithExperience int64 `json:"profiles_with_experience"`
	CurrentPositions       int64 `json:"current_positions"`
	UniqueCompanies        int64 `json:"unique_companies"`
	UniqueJobTitles        int64 `json:"unique_job_titles"`
	CreatedToday           int64 `json:"created_today"`
	CreatedThisWeek        int64 `json:"created_this_week"`
}

type TopCompany struct {
	CompanyName      string  `json:"company_name"`
	Location         *string `json:"location"`
	ExperienceCount  int64   `json:"experience_count"`
	UniqueProfiles   int64   `json:"unique_profiles"`
	CurrentEmployees int64   `json:"current_employees"`
}

type ExperienceRepository interface {
	// Create and Update clear is_current on the profile's other rows in the
	// same transaction when the row is current.
	Create(ctx context.Context, e *Experience) error
	Update(ctx context.Context, e *Experience) error
	GetByID(ctx context.Context, id int64) (*Experience, error)
	List(ctx context.Context, filter ExperienceFilter, page PageRequest) ([]Experience, error)
	Count(ctx context.Context, filter ExperienceFilter) (int64, error)
	Exists(ctx context.Context, profileID int64, jobTitle, company string, excludeID int64) (bool, error)
	SoftDelete(ctx context.Context, id int64) error
	// Restore drops is_current if another current row exists by then.
	Restore(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*ExperienceStatistics, error)
	TopCompanies(ctx context.Context, limit int) ([]TopCompany, error)
}

type ExperienceUsecase interface {
	List(ctx context.Context, filter ExperienceFilter, page PageRequest) ([]Experience, Pagination, error)
	ListByProfile(ctx context.Context, profileID int64, currentOnly bool, page PageRequest) ([]Experience, Pagination, error)
	Get(ctx context.Context, id int64) (*Experience, error)
	Create(ctx context.Context, e *Experience) error
	Update(ctx context.Context, id int64, patch ExperiencePatch) (*Experience, error)
	Delete(ctx context.Context, id int64) error
	Restore(ctx context.Context, id int64) (*Experience, error)
	ToggleCurrent(ctx context.Context, id int64) (*Experience, error)
	Statistics(ctx context.Context) (*ExperienceStatistics, error)
	TopCompanies(ctx context.Context, limit int) ([]TopCompany, error)
}
