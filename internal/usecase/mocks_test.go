package usecase_test

import (
	"context"
	"time"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/auth"

	"github.com/stretchr/testify/mock"
)

// first returns the typed first return value of a mocked call, or the zero value.
func first[T any](args mock.Arguments) T {
	var zero T
	if v := args.Get(0); v != nil {
		return v.(T)
	}
	return zero
}

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	return first[*domain.User](args), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	return first[*domain.User](args), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, f domain.UserFilter, p domain.PageRequest) ([]domain.User, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.User](args), args.Error(1)
}
func (m *MockUserRepo) Count(ctx context.Context, f domain.UserFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockUserRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}
func (m *MockUserRepo) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategoryRepo) List(ctx context.Context, f domain.CategoryFilter, p domain.PageRequest) ([]domain.Category, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Category](args), args.Error(1)
}
func (m *MockCategoryRepo) Count(ctx context.Context, f domain.CategoryFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockCategoryRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *MockCategoryRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockCategoryRepo) Restore(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockCategoryRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	args := m.Called(ctx, id, actorID)
	return args.Bool(0), args.Error(1)
}
func (m *MockCategoryRepo) CountSkills(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return first[int64](args), args.Error(1)
}
func (m *MockCategoryRepo) ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]domain.CategoryWithSkills, error) {
	args := m.Called(ctx, categoryID, includeInactive)
	return first[[]domain.CategoryWithSkills](args), args.Error(1)
}
func (m *MockCategoryRepo) Statistics(ctx context.Context) (*domain.CategoryStatistics, error) {
	args := m.Called(ctx)
	return first[*domain.CategoryStatistics](args), args.Error(1)
}

type MockSkillRepo struct {
	mock.Mock
}

func (m *MockSkillRepo) Create(ctx context.Context, s *domain.Skill) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSkillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	args := m.Called(ctx, id)
	return first[*domain.Skill](args), args.Error(1)
}
func (m *MockSkillRepo) List(ctx context.Context, f domain.SkillFilter, p domain.PageRequest) ([]domain.Skill, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Skill](args), args.Error(1)
}
func (m *MockSkillRepo) Count(ctx context.Context, f domain.SkillFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockSkillRepo) NameExistsInCategory(ctx context.Context, categoryID int64, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, categoryID, name, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockSkillRepo) Update(ctx context.Context, s *domain.Skill) error {
	return m.Called(ctx, s).Error(0)
}
func (m *MockSkillRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockSkillRepo) Restore(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockSkillRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	args := m.Called(ctx, id, actorID)
	return args.Bool(0), args.Error(1)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	return first[*domain.Profile](args), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	return first[*domain.Profile](args), args.Error(1)
}
func (m *MockProfileRepo) List(ctx context.Context, f domain.ProfileFilter, p domain.PageRequest) ([]domain.Profile, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Profile](args), args.Error(1)
}
func (m *MockProfileRepo) Count(ctx context.Context, f domain.ProfileFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockProfileRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	return m.Called(ctx, p).Error(0)
}
func (m *MockProfileRepo) CountDependents(ctx context.Context, id int64) (domain.ProfileDependents, error) {
	args := m.Called(ctx, id)
	return first[domain.ProfileDependents](args), args.Error(1)
}
func (m *MockProfileRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockEducationRepo struct {
	mock.Mock
}

func (m *MockEducationRepo) Create(ctx context.Context, e *domain.Education) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEducationRepo) GetByID(ctx context.Context, id int64) (*domain.Education, error) {
	args := m.Called(ctx, id)
	return first[*domain.Education](args), args.Error(1)
}
func (m *MockEducationRepo) List(ctx context.Context, f domain.EducationFilter, p domain.PageRequest) ([]domain.Education, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Education](args), args.Error(1)
}
func (m *MockEducationRepo) Count(ctx context.Context, f domain.EducationFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockEducationRepo) Exists(ctx context.Context, profileID int64, degree, institution string, excludeID int64) (bool, error) {
	args := m.Called(ctx, profileID, degree, institution, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockEducationRepo) Update(ctx context.Context, e *domain.Education) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockEducationRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockEducationRepo) Statistics(ctx context.Context) (*domain.EducationStatistics, error) {
	args := m.Called(ctx)
	return first[*domain.EducationStatistics](args), args.Error(1)
}
func (m *MockEducationRepo) TopInstitutions(ctx context.Context, limit int) ([]domain.TopInstitution, error) {
	args := m.Called(ctx, limit)
	return first[[]domain.TopInstitution](args), args.Error(1)
}

type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) Create(ctx context.Context, x *domain.Experience) error {
	return m.Called(ctx, x).Error(0)
}
func (m *MockExperienceRepo) Update(ctx context.Context, x *domain.Experience) error {
	return m.Called(ctx, x).Error(0)
}
func (m *MockExperienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return first[*domain.Experience](args), args.Error(1)
}
func (m *MockExperienceRepo) List(ctx context.Context, f domain.ExperienceFilter, p domain.PageRequest) ([]domain.Experience, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Experience](args), args.Error(1)
}
func (m *MockExperienceRepo) Count(ctx context.Context, f domain.ExperienceFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockExperienceRepo) Exists(ctx context.Context, profileID int64, jobTitle, company string, excludeID int64) (bool, error) {
	args := m.Called(ctx, profileID, jobTitle, company, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockExperienceRepo) SoftDelete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExperienceRepo) Restore(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExperienceRepo) Statistics(ctx context.Context) (*domain.ExperienceStatistics, error) {
	args := m.Called(ctx)
	return first[*domain.ExperienceStatistics](args), args.Error(1)
}
func (m *MockExperienceRepo) TopCompanies(ctx context.Context, limit int) ([]domain.TopCompany, error) {
	args := m.Called(ctx, limit)
	return first[[]domain.TopCompany](args), args.Error(1)
}

type MockProfileSkillRepo struct {
	mock.Mock
}

func (m *MockProfileSkillRepo) Create(ctx context.Context, ps *domain.ProfileSkill) error {
	return m.Called(ctx, ps).Error(0)
}
func (m *MockProfileSkillRepo) GetByID(ctx context.Context, id int64) (*domain.ProfileSkill, error) {
	args := m.Called(ctx, id)
	return first[*domain.ProfileSkill](args), args.Error(1)
}
func (m *MockProfileSkillRepo) List(ctx context.Context, f domain.ProfileSkillFilter, p domain.PageRequest) ([]domain.ProfileSkill, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.ProfileSkill](args), args.Error(1)
}
func (m *MockProfileSkillRepo) Count(ctx context.Context, f domain.ProfileSkillFilter) (int64, error) {
	args := m.Called(ctx, f)
	return first[int64](args), args.Error(1)
}
func (m *MockProfileSkillRepo) Exists(ctx context.Context, profileID, skillID, excludeID int64) (bool, error) {
	args := m.Called(ctx, profileID, skillID, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockProfileSkillRepo) Update(ctx context.Context, ps *domain.ProfileSkill) error {
	return m.Called(ctx, ps).Error(0)
}
func (m *MockProfileSkillRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockProfileSkillRepo) Restore(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}
func (m *MockProfileSkillRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	args := m.Called(ctx, id, actorID)
	return args.Bool(0), args.Error(1)
}

type MockUploads struct {
	mock.Mock
}

func (m *MockUploads) StoreProfileImage(ctx context.Context, img domain.ImageUpload) (*domain.StoredImage, error) {
	args := m.Called(ctx, img)
	return first[*domain.StoredImage](args), args.Error(1)
}
func (m *MockUploads) GetProfileImage(ctx context.Context, filename string) (*domain.StoredImage, error) {
	args := m.Called(ctx, filename)
	return first[*domain.StoredImage](args), args.Error(1)
}
func (m *MockUploads) DeleteProfileImage(ctx context.Context, filename string) error {
	return m.Called(ctx, filename).Error(0)
}

// plainHasher stores passwords prefixed so tests can read them back.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool  { return hash == "hashed:"+password }

type MockTokens struct {
	mock.Mock
}

func (m *MockTokens) Generate(userID int64, email, name, role string) (string, time.Time, error) {
	args := m.Called(userID, email, name, role)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokens) Validate(token string) (auth.Claims, error) {
	args := m.Called(token)
	return args.Get(0).(auth.Claims), args.Error(1)
}

type MockGuard struct {
	mock.Mock
}

func (m *MockGuard) IsBlocked(ctx context.Context, email string) (bool, time.Duration, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Get(1).(time.Duration), args.Error(2)
}
func (m *MockGuard) RecordFailure(ctx context.Context, email, ip, requestID string) error {
	return m.Called(ctx, email, ip, requestID).Error(0)
}
func (m *MockGuard) Reset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
