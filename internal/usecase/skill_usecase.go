package usecase

import (
	"context"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const skillNotFoundMsg = "Skill not found"

type skillUsecase struct {
	skillRepo    domain.SkillRepository
	categoryRepo domain.CategoryRepository
}

func NewSkillUsecase(skillRepo domain.SkillRepository, categoryRepo domain.CategoryRepository) domain.SkillUsecase {
	return &skillUsecase{skillRepo: skillRepo, categoryRepo: categoryRepo}
}

func (u *skillUsecase) requireCategory(ctx context.Context, id int64) error {
	if _, err := u.categoryRepo.GetByID(ctx, id); err != nil {
		return notFoundAs(err, categoryNotFoundMsg)
	}
	return nil
}

func (u *skillUsecase) List(ctx context.Context, filter domain.SkillFilter, page domain.PageRequest) ([]domain.Skill, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.Skill, error) { return u.skillRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.skillRepo.Count(ctx, filter) },
	)
}

func (u *skillUsecase) ListByCategory(ctx context.Context, categoryID int64, includeInactive bool, page domain.PageRequest) ([]domain.Skill, domain.Pagination, error) {
	if err := u.requireCategory(ctx, categoryID); err != nil {
		return nil, domain.Pagination{}, err
	}
	return u.List(ctx, domain.SkillFilter{CategoryID: &categoryID, IncludeInactive: includeInactive}, page)
}

func (u *skillUsecase) Get(ctx context.Context, id int64) (*domain.Skill, error) {
	s, err := u.skillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, skillNotFoundMsg)
	}
	return s, nil
}

func (u *skillUsecase) Create(ctx context.Context, actor domain.Actor, s *domain.Skill) error {
	if err := u.requireCategory(ctx, s.CategoryID); err != nil {
		return err
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Description = trimNullable(s.Description)
	s.Icon = trimNullable(s.Icon)

	exists, err := u.skillRepo.NameExistsInCategory(ctx, s.CategoryID, s.Name, 0)
	if err != nil {
		return wrap(err)
	}
	if exists {
		return apperror.Conflict("Skill with this name already exists in this category")
	}

	s.CreatedBy = actor.ID
	s.UpdatedBy = actor.ID
	return wrap(u.skillRepo.Create(ctx, s))
}

func (u *skillUsecase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.SkillPatch) (*domain.Skill, error) {
	s, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	nameChanged := false
	if patch.CategoryID != nil && *patch.CategoryID != s.CategoryID {
		if err := u.requireCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		s.CategoryID = *patch.CategoryID
		nameChanged = true
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		nameChanged = nameChanged || !strings.EqualFold(name, s.Name)
		s.Name = name
	}
	if nameChanged {
		exists, err := u.skillRepo.NameExistsInCategory(ctx, s.CategoryID, s.Name, id)
		if err != nil {
			return nil, wrap(err)
		}
		if exists {
			return nil, apperror.Conflict("Skill name already exists in this category")
		}
	}
	setNullable(&s.Description, patch.Description)
	setNullable(&s.Icon, patch.Icon)
	setValue(&s.IsActive, patch.IsActive)
	s.UpdatedBy = actor.ID

	if err := u.skillRepo.Update(ctx, s); err != nil {
		return nil, notFoundAs(err, skillNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *skillUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := u.skillRepo.SoftDelete(ctx, id, actor.ID); err != nil {
		return notFoundAs(err, skillNotFoundMsg)
	}
	return nil
}

func (u *skillUsecase) Restore(ctx context.Context, actor domain.Actor, id int64) (*domain.Skill, error) {
	if err := u.skillRepo.Restore(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, skillNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *skillUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id int64) (*domain.Skill, error) {
	if _, err := u.skillRepo.ToggleActive(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, skillNotFoundMsg)
	}
	return u.Get(ctx, id)
}
