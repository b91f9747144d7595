package v1_test

import (
	"context"

	"portfolio-cms-backend/internal/domain"

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

type MockAuthUC struct {
	mock.Mock
}

func (m *MockAuthUC) Register(ctx context.Context, in domain.CreateUserInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	return first[*domain.AuthResult](args), args.Error(1)
}
func (m *MockAuthUC) Login(ctx context.Context, in domain.LoginInput) (*domain.AuthResult, error) {
	args := m.Called(ctx, in)
	return first[*domain.AuthResult](args), args.Error(1)
}
func (m *MockAuthUC) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	return first[*domain.User](args), args.Error(1)
}
func (m *MockAuthUC) Me(ctx context.Context, userID int64) (*domain.User, error) {
	args := m.Called(ctx, userID)
	return first[*domain.User](args), args.Error(1)
}
func (m *MockAuthUC) UpdateMe(ctx context.Context, userID int64, patch domain.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, userID, patch)
	return first[*domain.User](args), args.Error(1)
}
func (m *MockAuthUC) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	return m.Called(ctx, userID, current, next).Error(0)
}

type MockCategoryUC struct {
	mock.Mock
}

func (m *MockCategoryUC) List(ctx context.Context, f domain.CategoryFilter, p domain.PageRequest) ([]domain.Category, domain.Pagination, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Category](args), args.Get(1).(domain.Pagination), args.Error(2)
}
func (m *MockCategoryUC) Get(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategoryUC) Create(ctx context.Context, actor domain.Actor, c *domain.Category) error {
	return m.Called(ctx, actor, c).Error(0)
}
func (m *MockCategoryUC) Update(ctx context.Context, actor domain.Actor, id int64, patch domain.CategoryPatch) (*domain.Category, error) {
	args := m.Called(ctx, actor, id, patch)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategoryUC) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	return m.Called(ctx, actor, id).Error(0)
}
func (m *MockCategoryUC) Restore(ctx context.Context, actor domain.Actor, id int64) (*domain.Category, error) {
	args := m.Called(ctx, actor, id)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategoryUC) ToggleStatus(ctx context.Context, actor domain.Actor, id int64) (*domain.Category, error) {
	args := m.Called(ctx, actor, id)
	return first[*domain.Category](args), args.Error(1)
}
func (m *MockCategoryUC) ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]domain.CategoryWithSkills, error) {
	args := m.Called(ctx, categoryID, includeInactive)
	return first[[]domain.CategoryWithSkills](args), args.Error(1)
}
func (m *MockCategoryUC) Statistics(ctx context.Context) (*domain.CategoryStatistics, error) {
	args := m.Called(ctx)
	return first[*domain.CategoryStatistics](args), args.Error(1)
}

type MockExperienceUC struct {
	mock.Mock
}

func (m *MockExperienceUC) List(ctx context.Context, f domain.ExperienceFilter, p domain.PageRequest) ([]domain.Experience, domain.Pagination, error) {
	args := m.Called(ctx, f, p)
	return first[[]domain.Experience](args), args.Get(1).(domain.Pagination), args.Error(2)
}
func (m *MockExperienceUC) ListByProfile(ctx context.Context, profileID int64, currentOnly bool, p domain.PageRequest) ([]domain.Experience, domain.Pagination, error) {
	args := m.Called(ctx, profileID, currentOnly, p)
	return first[[]domain.Experience](args), args.Get(1).(domain.Pagination), args.Error(2)
}
func (m *MockExperienceUC) Get(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return first[*domain.Experience](args), args.Error(1)
}
func (m *MockExperienceUC) Create(ctx context.Context, e *domain.Experience) error {
	return m.Called(ctx, e).Error(0)
}
func (m *MockExperienceUC) Update(ctx context.Context, id int64, patch domain.ExperiencePatch) (*domain.Experience, error) {
	args := m.Called(ctx, id, patch)
	return first[*domain.Experience](args), args.Error(1)
}
func (m *MockExperienceUC) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockExperienceUC) Restore(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return first[*domain.Experience](args), args.Error(1)
}
func (m *MockExperienceUC) ToggleCurrent(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	return first[*domain.Experience](args), args.Error(1)
}
func (m *MockExperienceUC) Statistics(ctx context.Context) (*domain.ExperienceStatistics, error) {
	args := m.Called(ctx)
	return first[*domain.ExperienceStatistics](args), args.Error(1)
}
func (m *MockExperienceUC) TopCompanies(ctx context.Context, limit int) ([]domain.TopCompany, error) {
	args := m.Called(ctx, limit)
	return first[[]domain.TopCompany](args), args.Error(1)
}

type MockHealthUC struct {
	mock.Mock
}

func (m *MockHealthUC) Check(ctx context.Context) (map[string]string, bool) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]string), args.Bool(1)
}
