package domain

import (
	"context"
	"time"
)

type Skill struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Icon         *string   `json:"icon"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    int64     `json:"created_by"`
	UpdatedBy    int64     `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CategoryName *string   `json:"category_name,omitempty"`
}

type SkillFilter struct {
	Search          string // name or description
	CategoryID      *int64
	IncludeInactive bool
}

type SkillPatch struct {
	CategoryID  *int64
	Name        *string
	Description *string
	Icon        *string
	IsActive    *bool
}

type SkillRepository interface {
	Create(ctx context.Context, s *Skill) error
	GetByID(ctx context.Context, id int64) (*Skill, error)
	List(ctx context.Context, filter SkillFilter, page PageRequest) ([]Skill, error)
	Count(ctx context.Context, filter SkillFilter) (int64, error)
	NameExistsInCategory(ctx context.Context, categoryID int64, name string, excludeID int64) (bool, error)
	Update(ctx context.Context, s *Skill) error
	SoftDelete(ctx context.Context, id, actorID int64) error
	Restore(ctx context.Context, id, actorID int64) error
	ToggleActive(ctx context.Context, id, actorID int64) (bool, error)
}

type SkillUsecase interface {
	List(ctx context.Context, filter SkillFilter, page PageRequest) ([]Skill, Pagination, error)
	ListByCategory(ctx context.Context, categoryID int64, includeInactive bool, page PageRequest) ([]Skill, Pagination, error)
	Get(ctx context.Context, id int64) (*Skill, error)
	Create(ctx context.Context, actor Actor, s *Skill) error
	Update(ctx context.Context, actor Actor, id int64, patch SkillPatch) (*Skill, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	Restore(ctx context.Context, actor Actor, id int64) (*Skill, error)
	ToggleStatus(ctx context.Context, actor Actor, id int64) (*Skill, error)
}
