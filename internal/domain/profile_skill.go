package domain

import (
	"context"
	"time"
)

type ProfileSkill struct {
	ID           int64     `json:"id"`
	ProfileID    int64     `json:"profile_id"`
	CategoryID   int64     `json:"category_id"`
	SkillID      int64     `json:"skill_id"`
	Percent      int       `json:"percent"`
	IsActive     bool      `json:"is_active"`
	CreatedBy    int64     `json:"created_by"`
	UpdatedBy    int64     `json:"updated_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	ProfileName  *string   `json:"profile_name,omitempty"`
	CategoryName *string   `json:"category_name,omitempty"`
	SkillName    *string   `json:"skill_name,omitempty"`
	SkillIcon    *string   `json:"skill_icon,omitempty"`
}

// ProfileSkillPublic is what a portfolio page renders for one skill bar.
type ProfileSkillPublic struct {
	ID           int64   `json:"id"`
	SkillID      int64   `json:"skill_id"`
	SkillName    *string `json:"skill_name"`
	SkillIcon    *string `json:"skill_icon"`
	CategoryID   int64   `json:"category_id"`
	CategoryName *string `json:"category_name"`
	Percent      int     `json:"percent"`
}

func (ps *ProfileSkill) Public() ProfileSkillPublic {
	return ProfileSkillPublic{
		ID:           ps.ID,
		SkillID:      ps.SkillID,
		SkillName:    ps.SkillName,
		SkillIcon:    ps.SkillIcon,
		CategoryID:   ps.CategoryID,
		CategoryName: ps.CategoryName,
		Percent:      ps.Percent,
	}
}

// ProfileSkillGroup is one category with the profile's skills in it.
type ProfileSkillGroup struct {
	CategoryID   int64                `json:"category_id"`
	CategoryName *string              `json:"category_name"`
	Skills       []ProfileSkillPublic `json:"skills"`
}

// GroupProfileSkillsByCategory keeps the first-seen category order.
func GroupProfileSkillsByCategory(skills []ProfileSkill) []ProfileSkillGroup {
	groups := make([]ProfileSkillGroup, 0)
	index := make(map[int64]int)
	for i := range skills {
		ps := &skills[i]
		pos, ok := index[ps.CategoryID]
		if !ok {
			pos = len(groups)
			index[ps.CategoryID] = pos
			groups = append(groups, ProfileSkillGroup{
				CategoryID:   ps.CategoryID,
				CategoryName: ps.CategoryName,
				Skills:       []ProfileSkillPublic{},
			})
		}
		groups[pos].Skills = append(groups[pos].Skills, ps.Public())
	}
	return groups
}

type ProfileSkillFilter struct {
	ProfileID       *int64
	CategoryID      *int64
	SkillID         *int64
	SkillIDs        []int64
	MinPercent      *int
	IncludeInactive bool
	Search          string // profile, category or skill name
}

type ProfileSkillPatch struct {
	CategoryID *int64
	SkillID    *int64
	Percent    *int
	IsActive   *bool
}

type ProfileSkillRepository interface {
	Create(ctx context.Context, ps *ProfileSkill) error
	GetByID(ctx context.Context, id int64) (*ProfileSkill, error)
	List(ctx context.Context, filter ProfileSkillFilter, page PageRequest) ([]ProfileSkill, error)
	Count(ctx context.Context, filter ProfileSkillFilter) (int64, error)
	Exists(ctx context.Context, profileID, skillID, excludeID int64) (bool, error)
	Update(ctx context.Context, ps *ProfileSkill) error
	SoftDelete(ctx context.Context, id, actorID int64) error
	Restore(ctx context.Context, id, actorID int64) error
	ToggleActive(ctx context.Context, id, actorID int64) (bool, error)
}

type ProfileSkillUsecase interface {
	List(ctx context.Context, filter ProfileSkillFilter, page PageRequest) ([]ProfileSkill, Pagination, error)
	ListByProfile(ctx context.Context, profileID int64, includeInactive bool) ([]ProfileSkill, error)
	ListByProfileGrouped(ctx context.Context, profileID int64, includeInactive bool) ([]ProfileSkillGroup, error)
	ListByCategory(ctx context.Context, categoryID int64, page PageRequest) ([]ProfileSkill, Pagination, error)
	Get(ctx context.Context, id int64) (*ProfileSkill, error)
	Create(ctx context.Context, actor Actor, ps *ProfileSkill) error
	Update(ctx context.Context, actor Actor, id int64, patch ProfileSkillPatch) (*ProfileSkill, error)
	Delete(ctx context.Context, actor Actor, id int64) error
	Restore(ctx context.Context, actor Actor, id int64) (*ProfileSkill, error)
	ToggleStatus(ctx context.Context, actor Actor, id int64) (*ProfileSkill, error)
}
