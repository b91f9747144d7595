package usecase

import (
	"context"
	"strings"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const (
	educationNotFoundMsg  = "Profile education not found"
	educationDuplicateMsg = "Education with same degree and institution already exists for this profile"

	defaultTopLimit = 10
	maxTopLimit     = 100
)

type educationUsecase struct {
	educationRepo domain.EducationRepository
	profileRepo   domain.ProfileRepository
}

func NewEducationUsecase(educationRepo domain.EducationRepository, profileRepo domain.ProfileRepository) domain.EducationUsecase {
	return &educationUsecase{educationRepo: educationRepo, profileRepo: profileRepo}
}

func requireProfile(ctx context.Context, repo domain.ProfileRepository, id int64) error {
	if _, err := repo.GetByID(ctx, id); err != nil {
		return notFoundAs(err, profileNotFoundMsg)
	}
	return nil
}

// clampTop bounds a "top N" limit to [1, 100], defaulting to 10.
func clampTop(limit int) int {
	switch {
	case limit <= 0:
		return defaultTopLimit
	case limit > maxTopLimit:
		return maxTopLimit
	}
	return limit
}

func validateEducation(e *domain.Education) error {
	if e.StartYear != nil && e.GraduationYear != nil && *e.StartYear >= *e.GraduationYear {
		return apperror.BadRequest("Start year cannot be after graduation year")
	}
	if e.GPA != nil && (*e.GPA < 0 || *e.GPA > 4) {
		return apperror.BadRequest("GPA must be between 0 and 4.0")
	}
	return nil
}

func (u *educationUsecase) List(ctx context.Context, filter domain.EducationFilter, page domain.PageRequest) ([]domain.Education, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.Education, error) { return u.educationRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.educationRepo.Count(ctx, filter) },
	)
}

func (u *educationUsecase) ListByProfile(ctx context.Context, profileID int64, page domain.PageRequest) ([]domain.Education, domain.Pagination, error) {
	if err := requireProfile(ctx, u.profileRepo, profileID); err != nil {
		return nil, domain.Pagination{}, err
	}
	return u.List(ctx, domain.EducationFilter{ProfileID: &profileID}, page)
}

func (u *educationUsecase) Get(ctx context.Context, id int64) (*domain.Education, error) {
	e, err := u.educationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, educationNotFoundMsg)
	}
	return e, nil
}

func (u *educationUsecase) checkDuplicate(ctx context.Context, e *domain.Education) error {
	exists, err := u.educationRepo.Exists(ctx, e.ProfileID, e.Degree, e.InstitutionName, e.ID)
	if err != nil {
		return wrap(err)
	}
	if exists {
		return apperror.Conflict(educationDuplicateMsg)
	}
	return nil
}

func (u *educationUsecase) Create(ctx context.Context, e *domain.Education) error {
	e.Degree = strings.TrimSpace(e.Degree)
	e.Major = strings.TrimSpace(e.Major)
	e.InstitutionName = strings.TrimSpace(e.InstitutionName)
	e.Location = trimNullable(e.Location)
	e.Description = trimNullable(e.Description)

	if err := validateEducation(e); err != nil {
		return err
	}
	if err := requireProfile(ctx, u.profileRepo, e.ProfileID); err != nil {
		return err
	}
	if err := u.checkDuplicate(ctx, e); err != nil {
		return err
	}
	return wrap(u.educationRepo.Create(ctx, e))
}

func (u *educationUsecase) Update(ctx context.Context, id int64, patch domain.EducationPatch) (*domain.Education, error) {
	e, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	keyChanged := false
	if patch.ProfileID != nil && *patch.ProfileID != e.ProfileID {
		if err := requireProfile(ctx, u.profileRepo, *patch.ProfileID); err != nil {
			return nil, err
		}
		e.ProfileID = *patch.ProfileID
		keyChanged = true
	}
	if patch.Degree != nil {
		v := strings.TrimSpace(*patch.Degree)
		keyChanged = keyChanged || !strings.EqualFold(v, e.Degree)
		e.Degree = v
	}
	if patch.InstitutionName != nil {
		v := strings.TrimSpace(*patch.InstitutionName)
		keyChanged = keyChanged || !strings.EqualFold(v, e.InstitutionName)
		e.InstitutionName = v
	}
	setString(&e.Major, patch.Major)
	setNullable(&e.Location, patch.Location)
	setPointer(&e.StartYear, patch.StartYear)
	setPointer(&e.GraduationYear, patch.GraduationYear)
	setPointer(&e.GPA, patch.GPA)
	setNullable(&e.Description, patch.Description)

	if err := validateEducation(e); err != nil {
		return nil, err
	}
	if keyChanged {
		if err := u.checkDuplicate(ctx, e); err != nil {
			return nil, err
		}
	}
	if err := u.educationRepo.Update(ctx, e); err != nil {
		return nil, notFoundAs(err, educationNotFoundMsg)
	}
	return u.Get(ctx, id)
}

func (u *educationUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.educationRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, educationNotFoundMsg)
	}
	return nil
}

func (u *educationUsecase) Statistics(ctx context.Context) (*domain.EducationStatistics, error) {
	s, err := u.educationRepo.Statistics(ctx)
	return s, wrap(err)
}

func (u *educationUsecase) TopInstitutions(ctx context.Context, limit int) ([]domain.TopInstitution, error) {
	out, err := u.educationRepo.TopInstitutions(ctx, clampTop(limit))
	return out, wrap(err)
}
