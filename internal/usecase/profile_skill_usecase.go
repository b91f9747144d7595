package usecase

import (
	"context"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const (
	profileSkillNotFoundMsg  = "Profile skill not found"
	profileSkillDuplicateMsg = "Profile skill combination already exists"
	skillCategoryMismatchMsg = "Skill does not belong to the specified category"
)

type profileSkillUsecase struct {
	profileSkillRepo domain.ProfileSkillRepository
	profileRepo      domain.ProfileRepository
	categoryRepo     domain.CategoryRepository
	skillRepo        domain.SkillRepository
}

func NewProfileSkillUsecase(
	profileSkillRepo domain.ProfileSkillRepository,
	profileRepo domain.ProfileRepository,
	categoryRepo domain.CategoryRepository,
	skillRepo domain.SkillRepository,
) domain.ProfileSkillUsecase {
	return &profileSkillUsecase{
		profileSkillRepo: profileSkillRepo,
		profileRepo:      profileRepo,
		categoryRepo:     categoryRepo,
		skillRepo:        skillRepo,
	}
}

func validatePercent(p int) error {
	if p < 1 || p > 100 {
		return apperror.BadRequest("Percent must be between 1 and 100")
	}
	return nil
}

// checkReferences loads the profile, category and skill of ps and verifies
// that the skill sits in the given category.
func (u *profileSkillUsecase) checkReferences(ctx context.Context, ps *domain.ProfileSkill) error {
	if err := requireProfile(ctx, u.profileRepo, ps.ProfileID); err != nil {
		return err
	}
	if _, err := u.categoryRepo.GetByID(ctx, ps.CategoryID); err != nil {
		return notFoundAs(err, categoryNotFoundMsg)
	}
	skill, err := u.skillRepo.GetByID(ctx, ps.SkillID)
	if err != nil {
		return notFoundAs(err, skillNotFoundMsg)
	}
	if skill.CategoryID != ps.CategoryID {
		return apperror.BadRequest(skillCategoryMismatchMsg)
	}
	return nil
}

func (u *profileSkillUsecase) checkDuplicate(ctx context.Context, ps *domain.ProfileSkill) error {
	exists, err := u.profileSkillRepo.Exists(ctx, ps.ProfileID, ps.SkillID, ps.ID)
	if err != nil {
		return wrap(err)
	}
	if exists {
		return apperror.Conflict(profileSkillDuplicateMsg)
	}
	return nil
}

func (u *profileSkillUsecase) List(ctx context.Context, filter domain.ProfileSkillFilter, page domain.PageRequest) ([]domain.ProfileSkill, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.ProfileSkill, error) { return u.profileSkillRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.profileSkillRepo.Count(ctx, filter) },
	)
}

// ListByProfile returns every skill of the profile without paging.
func (u *profileSkillUsecase) ListByProfile(ctx context.Context, profileID int64, includeInactive bool) ([]domain.ProfileSkill, error) {
	if err := requireProfile(ctx, u.profileRepo, profileID); err != nil {
		return nil, err
	}
	filter := domain.ProfileSkillFilter{ProfileID: &profileID, IncludeInactive: includeInactive}
	out := make([]domain.ProfileSkill, 0)
	for pageNo := 1; ; pageNo++ {
		page := domain.NewPageRequest(pageNo, domain.MaxPageLimit)
		items, err := u.profileSkillRepo.List(ctx, filter, page)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, items...)
		if len(items) < page.Limit {
			return out, nil
		}
	}
}

func (u *profileSkillUsecase) ListByProfileGrouped(ctx context.Context, profileID int64, includeInactive bool) ([]domain.ProfileSkillGroup, error) {
	skills, err := u.ListByProfile(ctx, profileID, includeInactive)
	if err != nil {
		return nil, err
	}
	return domain.GroupProfileSkillsByCategory(skills), nil
}

func (u *profileSkillUsecase) ListByCategory(ctx context.Context, categoryID int64, page domain.PageRequest) ([]domain.ProfileSkill, domain.Pagination, error) {
	if _, err := u.categoryRepo.GetByID(ctx, categoryID); err != nil {
		return nil, domain.Pagination{}, notFoundAs(err, categoryNotFoundMsg)
	}
	return u.List(ctx, domain.ProfileSkillFilter{CategoryID: &categoryID}, page)
}

func (u *profileSkillUsecase) Get(ctx context.Context, id int64) (*domain.ProfileSkill, error) {
	ps, err := u.profileSkillRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, profileSkillNotFoundMsg)
	}
	return ps, nil
}

func (u *profileSkillUsecase) Create(ctx context.Context, actor domain.Actor, ps *domain.ProfileSkill) error {
	if err := validatePercent(ps.Percent); err != nil {
		return err
	}
	if err := u.checkReferences(ctx, ps); err != nil {
		return err
	}
	if err := u.checkDuplicate(ctx, ps); err != nil {
		return err
	}
	ps.IsActive = true
	ps.CreatedBy = actor.ID
	ps.UpdatedBy = actor.ID
	return wrap(u.profileSkillRepo.Create(ctx, ps))
}

func (u *profileSkillUsecase) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.ProfileSkillPatch) (*domain.ProfileSkill, error) {
	ps, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Percent != nil {
		if err := validatePercent(*patch.Percent); err != nil {
			return nil, err
		}
		ps.Percent = *patch.Percent
	}
	refsChanged := (patch.CategoryID != nil && *patch.CategoryID != ps.CategoryID) ||
		(patch.SkillID != nil && *patch.SkillID != ps.SkillID)
	skillChanged := patch.SkillID != nil && *patch.SkillID != ps.SkillID
	setValue(&ps.CategoryID, patch.CategoryID)
	setValue(&ps.SkillID, patch.SkillID)
	setValue(&ps.IsActive, patch.IsActive)

	if refsChanged {
		if err := u.checkReferences(ctx, ps); err != nil {
			return nil, err
		}
	}
	if skillChanged {
		if err := u.checkDuplicate(ctx, ps); err != nil {
			return nil, err
		}
	}

	ps.UpdatedBy = actor.ID
	if err := u.profileSkillRepo.Update(ctx, ps); err != nil {
		return nil, notFoundAs(err, profileSkillNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *profileSkillUsecase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if err := u.profileSkillRepo.SoftDelete(ctx, id, actor.ID); err != nil {
		return notFoundAs(err, profileSkillNotFoundMsg)
	}
	return nil
}

func (u *profileSkillUsecase) Restore(ctx context.Context, actor domain.Actor, id int64) (*domain.ProfileSkill, error) {
	if err := u.profileSkillRepo.Restore(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, profileSkillNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *profileSkillUsecase) ToggleStatus(ctx context.Context, actor domain.Actor, id int64) (*domain.ProfileSkill, error) {
	if _, err := u.profileSkillRepo.ToggleActive(ctx, id, actor.ID); err != nil {
		return nil, notFoundAs(err, profileSkillNotFoundMsg)
	}
	return u.Get(ctx, id)
}
