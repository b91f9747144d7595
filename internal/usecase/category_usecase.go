package usecase

import (
	"context"
	"errors"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/security"
)

const (
	categoryNotFoundMsg  = "Category not found"
	categoryHasSkillsMsg = "Cannot delete category that has associated skills"
	categoryDuplicateMsg = "Category with this name already exists"
	categoryNameInUseMsg = "Category name already in use"
)

type categoryUsecase struct {
	categoryRepo domain.CategoryRepository
	audit        *security.SecurityLogger
}

func NewCategoryUsecase(categoryRepo domain.CategoryRepository, audit *security.SecurityLogger) domain.CategoryUsecase {
	if audit == nil {
		audit = security.DefaultLogger()
	}
	return &categoryUsecase{categoryRepo: categoryRepo, audit: audit}
}

func (u *categoryUsecase) List(ctx context.Context, filter domain.CategoryFilter, page domain.PageRequest) ([]domain.Category, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.Category, error) { return u.categoryRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.categoryRepo.Count(ctx, filter) },
	)
}

func (u *categoryUsecase) Get(ctx context.Context, id int64) (*domain.Category, error) {
	c, err := u.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, categoryNotFoundMsg)
	}
	return c, nil
}

func (u *categoryUsecase) Create(ctx context.Context, actor domain.Actor, c *domain.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = trimNullable(c.Description)

	exists, err := u.categoryRepo.NameExists(ctx, c.Name, 0)
	if err != nil {
		return wrap(err)
	}
	if exists {
		return apperror.Conflict(categoryDuplicateMsg)
	}

	c.CreatedBy = actor.ID
	c.UpdatedBy = actor.ID
	return wrap(u.categoryRepo.Create(ctx, c))
}

func (u *categoryUsecase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	c, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if !strings.EqualFold(name, c.Name) {
			exists, err := u.categoryRepo.NameExists(ctx, name, id)
			if err != nil {
				return nil, wrap(err)
			}
			if exists {
				return nil, apperror.Conflict(categoryNameInUseMsg)
			}
		}
		c.Name = name
	}
	setNullable(&c.Description, patch.Description)
	setValue(&c.IsActive, patch.IsActive)
	c.UpdatedBy = actor.ID

	if err := u.categoryRepo.Update(ctx, c); err != nil {
		return nil, notFoundAs(err, categoryNotFoundMsg)
	}
	return c, nil
}

func (u *categoryUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if _, err := u.Get(ctx, id); err != nil {
		return err
	}
	skills, err := u.categoryRepo.CountSkills(ctx, id)
	if err != nil {
		return wrap(err)
	}
	if skills > 0 {
		return apperror.BadRequest(categoryHasSkillsMsg)
	}

	if err := u.categoryRepo.SoftDelete(ctx, id, actor.ID); err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			return apperror.BadRequest(categoryHasSkillsMsg)
		}
		return notFoundAs(err, categoryNotFoundMsg)
	}
	u.audit.LogAdminAction(ctx, actor.ID, "delete", "category", id)
	return nil
}

func (u *categoryUsecase) Restore(ctx context.Context, actor domain.Actor, id int64) (*domain.Category, error) {
	if err := u.categoryRepo.Restore(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, categoryNotFoundMsg)
	}
	u.audit.LogAdminAction(ctx, actor.ID, "restore", "category", id)
	return u.Get(ctx, id)
}

func (u *categoryUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id int64) (*domain.Category, error) {
	if _, err := u.categoryRepo.ToggleActive(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, categoryNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *categoryUsecase) ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]domain.CategoryWithSkills, error) {
	if categoryID != nil {
		if _, err := u.Get(ctx, *categoryID); err != nil {
			return nil, err
		}
	}
	out, err := u.categoryRepo.ListWithSkills(ctx, categoryID, includeInactive)
	if err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (u *categoryUsecase) Statistics(ctx context.Context) (*domain.CategoryStatistics, error) {
	s, err := u.categoryRepo.Statistics(ctx)
	if err != nil {
		return nil, wrap(err)
	}
	return s, nil
}
