package usecase

import (
	"context"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const (
	experienceNotFoundMsg  = "Profile experience not found"
	experienceDuplicateMsg = "Profile experience with same job title and company already exists"
)

type experienceUsecase struct {
	experienceRepo domain.ExperienceRepository
	profileRepo    domain.ProfileRepository
}

func NewExperienceUsecase(experienceRepo domain.ExperienceRepository, profileRepo domain.ProfileRepository) domain.ExperienceUsecase {
	return &experienceUsecase{experienceRepo: experienceRepo, profileRepo: profileRepo}
}

// validateExperienceDates requires start_date < end_date whenever an end date is set.
func validateExperienceDates(x *domain.Experience) error {
	if x.EndDate != nil && !x.StartDate.Before(*x.EndDate) {
		return apperror.BadRequest("Start date cannot be after end date")
	}
	return nil
}

func (u *experienceUsecase) List(ctx context.Context, filter domain.ExperienceFilter, page domain.PageRequest) ([]domain.Experience, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.Experience, error) { return u.experienceRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.experienceRepo.Count(ctx, filter) },
	)
}

func (u *experienceUsecase) ListByProfile(ctx context.Context, profileID int64, currentOnly bool, page domain.PageRequest) ([]domain.Experience, domain.Pagination, error) {
	if err := requireProfile(ctx, u.profileRepo, profileID); err != nil {
		return nil, domain.Pagination{}, err
	}
	filter := domain.ExperienceFilter{ProfileID: &profileID}
	if currentOnly {
		current := true
		filter.IsCurrent = &current
	}
	return u.List(ctx, filter, page)
}

func (u *experienceUsecase) Get(ctx context.Context, id int64) (*domain.Experience, error) {
	x, err := u.experienceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, experienceNotFoundMsg)
	}
	return x, nil
}

func (u *experienceUsecase) checkDuplicate(ctx context.Context, x *domain.Experience) error {
	exists, err := u.experienceRepo.Exists(ctx, x.ProfileID, x.JobTitle, x.CompanyName, x.ID)
	if err != nil {
		return wrap(err)
	}
	if exists {
		return apperror.Conflict(experienceDuplicateMsg)
	}
	return nil
}

func (u *experienceUsecase) Create(ctx context.Context, x *domain.Experience) error {
	x.JobTitle = strings.TrimSpace(x.JobTitle)
	x.CompanyName = strings.TrimSpace(x.CompanyName)
	x.Location = trimNullable(x.Location)
	x.Description = trimNullable(x.Description)

	if err := requireProfile(ctx, u.profileRepo, x.ProfileID); err != nil {
		return err
	}
	if err := validateExperienceDates(x); err != nil {
		return err
	}
	if x.IsCurrent && x.EndDate != nil {
		return apperror.BadRequest("End date should be null for current positions")
	}
	if err := u.checkDuplicate(ctx, x); err != nil {
		return err
	}
	return wrap(u.experienceRepo.Create(ctx, x))
}

func (u *experienceUsecase) Update(ctx context.Context, id int64, patch domain.ExperiencePatch) (*domain.Experience, error) {
	x, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	keyChanged := false
	if patch.ProfileID != nil && *patch.ProfileID != x.ProfileID {
		if err := requireProfile(ctx, u.profileRepo, *patch.ProfileID); err != nil {
			return nil, err
		}
		x.ProfileID = *patch.ProfileID
		keyChanged = true
	}
	if patch.JobTitle != nil {
		v := strings.TrimSpace(*patch.JobTitle)
		keyChanged = keyChanged || !strings.EqualFold(v, x.JobTitle)
		x.JobTitle = v
	}
	if patch.CompanyName != nil {
		v := strings.TrimSpace(*patch.CompanyName)
		keyChanged = keyChanged || !strings.EqualFold(v, x.CompanyName)
		x.CompanyName = v
	}
	setNullable(&x.Location, patch.Location)
	setValue(&x.StartDate, patch.StartDate)
	if patch.EndDateSet {
		x.EndDate = patch.EndDate
	}
	setNullable(&x.Description, patch.Description)

	if patch.IsCurrent != nil {
		if *patch.IsCurrent && patch.EndDateSet && patch.EndDate != nil {
			return nil, apperror.BadRequest("End date should be null for current positions")
		}
		x.IsCurrent = *patch.IsCurrent
	}
	if x.IsCurrent {
		x.EndDate = nil
	}

	if err := validateExperienceDates(x); err != nil {
		return nil, err
	}
	if keyChanged {
		if err := u.checkDuplicate(ctx, x); err != nil {
			return nil, err
		}
	}
	if err := u.experienceRepo.Update(ctx, x); err != nil {
		return nil, notFoundAs(err, experienceNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *experienceUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.experienceRepo.SoftDelete(ctx, id); err != nil {
		return notFoundAs(err, experienceNotFoundMsg)
	}
	return nil
}

func (u *experienceUsecase) Restore(ctx context.Context, id int64) (*domain.Experience, error) {
	if err := u.experienceRepo.Restore(ctx, id); err != nil {
		return nil, notFoundAs(err, experienceNotFoundMsg)
	}
	return u.Get(ctx, id)
}

// ToggleCurrent flips is_current. Becoming current clears the end date and
// every other current row of the profile.
func (u *experienceUsecase) ToggleCurrent(ctx context.Context, id int64) (*domain.Experience, error) {
	x, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	x.IsCurrent = !x.IsCurrent
	if x.IsCurrent {
		x.EndDate = nil
	}
	if err := u.experienceRepo.Update(ctx, x); err != nil {
		return nil, notFoundAs(err, experienceNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *experienceUsecase) Statistics(ctx context.Context) (*domain.ExperienceStatistics, error) {
	s, err := u.experienceRepo.Statistics(ctx)
	return s, wrap(err)
}

func (u *experienceUsecase) TopCompanies(ctx context.Context, limit int) ([]domain.TopCompany, error) {
	out, err := u.experienceRepo.TopCompanies(ctx, clampTop(limit))
	return out, wrap(err)
}
