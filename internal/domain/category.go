package domain

import (
	"context"
	"time"
)

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedBy   int64     `json:"created_by"`
	UpdatedBy   int64     `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CategoryPublic omits audit columns.
type CategoryPublic struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsActive    bool    `json:"is_active"`
}

func (c *Category) Public() CategoryPublic {
	return CategoryPublic{ID: c.ID, Name: c.Name, Description: c.Description, IsActive: c.IsActive}
}

type CategoryWithSkills struct {
	Category
	SkillCount int     `json:"skill_count"`
	Skills     []Skill `json:"skills"`
}

type CategoryStatistics struct {
	Total           int64 `json:"total_categories"`
	Active          int64 `json:"active_categories"`
	Inactive        int64 `json:"inactive_categories"`
	CreatedToday    int64 `json:"created_today"`
	CreatedThisWeek int64 `json:"created_this_week"`
}

type CategoryFilter struct {
	Search          string // name or description
	CreatedBy       *int64
	IncludeInactive bool
}

type CategoryPatch struct {
	Name        *string
	Description *string
	IsActive    *bool
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context, filter CategoryFilter, page PageRequest) ([]Category, error)
	Count(ctx context.Context, filter CategoryFilter) (int64, error)
	NameExists(ctx context.Context, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, c *Category) error
	// SoftDelete fails with ErrHasDependents while non-deleted skills reference the category.
	SoftDelete(ctx context.Context, id, actorID int64) error
	Restore(ctx context.Context, id, actorID int64) error
	ToggleActive(ctx context.Context, id, actorID int64) (bool, error)
	CountSkills(ctx context.Context, id int64) (int64, error)
	ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]CategoryWithSkills, error)
	Statistics(ctx context.Context) (*CategoryStatistics, error)
}

type CategoryUsecase interface {
	List(ctx context.Context, filter CategoryFilter, page PageRequest) ([]Category, Pagination, error)
	Get(ctx context.Context, id int64) (*Category, error)
	Create(ctx context.Context, actor Actor, c *Category) error
	Update(ctx context.Context, actor Actor, id int64, patch CategoryPatch) (*Category, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	Restore(ctx context.Context, actor Actor, id int64) (*Category, error)
	ToggleStatus(ctx context.Context, actor Actor, id int64) (*Category, error)
	ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]CategoryWithSkills, error)
	Statistics(ctx context.Context) (*CategoryStatistics, error)
}
