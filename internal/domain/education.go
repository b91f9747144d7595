package domain

import (
	"context"
	"time"
)

type Education struct {
	ID              int64     `json:"id"`
	ProfileID       int64     `json:"profile_id"`
	Degree          string    `json:"degree"`
	Major           string    `json:"major"`
	InstitutionName string    `json:"institution_name"`
	Location        *string   `json:"location"`
	StartYear       *int      `json:"start_year"`
	GraduationYear  *int      `json:"graduation_year"`
	GPA             *float64  `json:"gpa"`
	Description     *string   `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	ProfileName     *string   `json:"profile_name,omitempty"`
	ProfileEmail    *string   `json:"profile_email,omitempty"`
}

type EducationFilter struct {
	ProfileID       *int64
	Search          string // profile name, degree, major, institution or location
	Degree          string
	Major           string
	InstitutionName string
	GraduationYear  *int
	MinGPA          *float64
	MaxGPA          *float64
}

type EducationPatch struct {
	ProfileID       *int64
	Degree          *string
	Major           *string
	InstitutionName *string
	Location        *string
	StartYear       *int
	GraduationYear  *int
	GPA             *float64
	Description     *string
}

type EducationStatistics struct {
	Total                 int64    `json:"total_educations"`
	ProfilesWithEducation int64    `json:"profiles_with_education"`
	AvgGPA                *float64 `json:"avg_gpa"`
	MaxGPA                *float64 `json:"max_gpa"`
	MinGPA                *float64 `json:"min_gpa"`
	UniqueDegrees         int64    `json:"unique_degrees"`
	UniqueInstitutions    int64    `json:"unique_institutions"`
	CreatedToday          int64    `json:"created_today"`
	CreatedThisWeek       int64    `json:"created_this_week"`
}

type TopInstitution struct {
	InstitutionName string   `json:"institution_name"`
	Location        *string  `json:"location"`
	EducationCount  int64    `json:"education_count"`
	AvgGPA          *float64 `json:"avg_gpa"`
	UniqueProfiles  int64    `json:"unique_profiles"`
}

type EducationRepository interface {
	Create(ctx context.Context, e *Education) error
	GetByID(ctx context.Context, id int64) (*Education, error)
	List(ctx context.Context, filter EducationFilter, page PageRequest) ([]Education, error)
	Count(ctx context.Context, filter EducationFilter) (int64, error)
	Exists(ctx context.Context, profileID int64, degree, institution string, excludeID int64) (bool, error)
	Update(ctx context.Context, e *Education) error
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*EducationStatistics, error)
	TopInstitutions(ctx context.Context, limit int) ([]TopInstitution, error)
}

type EducationUsecase interface {
	List(ctx context.Context, filter EducationFilter, page PageRequest) ([]Education, Pagination, error)
	ListByProfile(ctx context.Context, profileID int64, page PageRequest) ([]Education, Pagination, error)
	Get(ctx context.Context, id int64) (*Education, error)
	Create(ctx context.Context, e *Education) error
	Update(ctx context.Context, id int64, patch EducationPatch) (*Education, error)
	Delete(ctx context.Context, id int64) error
	Statistics(ctx context.Context) (*EducationStatistics, error)
	TopInstitutions(ctx context.Context, limit int) ([]TopInstitution, error)
}
