package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Each case drives delete, a lookup that must miss, restore, and a lookup
// that must hit again. Repository expectations are consumed in order.
func TestSoftDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("Category", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		category := &domain.Category{ID: 3, Name: "Backend"}
		repo.On("GetByID", ctx, int64(3)).Return(category, nil).Once()
		repo.On("CountSkills", ctx, int64(3)).Return(int64(0), nil)
		repo.On("SoftDelete", ctx, int64(3), admin.ID).Return(nil)
		repo.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound).Once()
		repo.On("Restore", ctx, int64(3), admin.ID).Return(nil)
		repo.On("GetByID", ctx, int64(3)).Return(category, nil).Once()

		require.NoError(t, uc.Delete(ctx, admin, 3))
		_, err := uc.Get(ctx, 3)
		assertAppError(t, err, http.StatusNotFound, "Category not found")

		restored, err := uc.Restore(ctx, admin, 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), restored.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Skill", func(t *testing.T) {
		skills, categories := new(MockSkillRepo), new(MockCategoryRepo)
		uc := usecase.NewSkillUsecase(skills, categories)
		skills.On("SoftDelete", ctx, int64(5), admin.ID).Return(nil).Once()
		skills.On("GetByID", ctx, int64(5)).Return(nil, domain.ErrNotFound).Once()
		skills.On("SoftDelete", ctx, int64(5), admin.ID).Return(domain.ErrNotFound).Once()
		skills.On("Restore", ctx, int64(5), admin.ID).Return(nil)
		skills.On("GetByID", ctx, int64(5)).Return(&domain.Skill{ID: 5, Name: "Go"}, nil).Once()

		require.NoError(t, uc.Delete(ctx, admin, 5))
		_, err := uc.Get(ctx, 5)
		assertAppError(t, err, http.StatusNotFound, "Skill not found")
		assertAppError(t, uc.Delete(ctx, admin, 5), http.StatusNotFound, "Skill not found")

		restored, err := uc.Restore(ctx, admin, 5)
		require.NoError(t, err)
		assert.Equal(t, "Go", restored.Name)
		skills.AssertExpectations(t)
	})

	t.Run("ProfileSkill", func(t *testing.T) {
		ps := new(MockProfileSkillRepo)
		uc := usecase.NewProfileSkillUsecase(ps, new(MockProfileRepo), new(MockCategoryRepo), new(MockSkillRepo))
		ps.On("SoftDelete", ctx, int64(8), admin.ID).Return(nil)
		ps.On("GetByID", ctx, int64(8)).Return(nil, domain.ErrNotFound).Once()
		ps.On("Restore", ctx, int64(8), admin.ID).Return(nil)
		ps.On("GetByID", ctx, int64(8)).Return(&domain.ProfileSkill{ID: 8, Percent: 80}, nil).Once()

		require.NoError(t, uc.Delete(ctx, admin, 8))
		_, err := uc.Get(ctx, 8)
		assertAppError(t, err, http.StatusNotFound, "Profile skill not found")

		restored, err := uc.Restore(ctx, admin, 8)
		require.NoError(t, err)
		assert.Equal(t, 80, restored.Percent)
		ps.AssertExpectations(t)
	})

	t.Run("Experience", func(t *testing.T) {
		experiences := new(MockExperienceRepo)
		uc := usecase.NewExperienceUsecase(experiences, new(MockProfileRepo))
		experiences.On("SoftDelete", ctx, int64(11)).Return(nil)
		experiences.On("GetByID", ctx, int64(11)).Return(nil, domain.ErrNotFound).Once()
		experiences.On("Restore", ctx, int64(11)).Return(nil)
		experiences.On("GetByID", ctx, int64(11)).Return(&domain.Experience{ID: 11, CompanyName: "Acme"}, nil).Once()

		require.NoError(t, uc.Delete(ctx, 11))
		_, err := uc.Get(ctx, 11)
		assertAppError(t, err, http.StatusNotFound, "Profile experience not found")

		restored, err := uc.Restore(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, "Acme", restored.CompanyName)
		experiences.AssertExpectations(t)
	})

	t.Run("User", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, plainHasher{}, nil)
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "jane@example.com", IsActive: true}, nil).Once()
		users.On("SetActive", ctx, int64(7), false).Return(nil).Once()
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "jane@example.com", IsActive: false}, nil).Times(2)
		users.On("SetActive", ctx, int64(7), true).Return(nil).Once()
		users.On("GetByID", ctx, int64(7)).Return(&domain.User{ID: 7, Email: "jane@example.com", IsActive: true}, nil).Once()

		require.NoError(t, uc.Delete(ctx, admin, 7))
		_, err := uc.Get(ctx, 7)
		assertAppError(t, err, http.StatusNotFound, "User not found")
		assertAppError(t, uc.Delete(ctx, admin, 7), http.StatusNotFound, "User not found")

		restored, err := uc.Restore(ctx, admin, 7)
		require.NoError(t, err)
		assert.True(t, restored.IsActive)
		users.AssertExpectations(t)
		users.AssertNumberOfCalls(t, "SetActive", 2)
	})
}

func TestUserUsecaseHidesDeactivatedAccounts(t *testing.T) {
	ctx := context.Background()
	inactive := &domain.User{ID: 9, Email: "old@example.com", IsActive: false}

	t.Run("Should answer 404 on get and delete", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, plainHasher{}, nil)
		users.On("GetByID", ctx, int64(9)).Return(inactive, nil)

		_, err := uc.Get(ctx, 9)
		assertAppError(t, err, http.StatusNotFound, "User not found")
		assertAppError(t, uc.Delete(ctx, admin, 9), http.StatusNotFound, "User not found")
		users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should still reactivate through toggle", func(t *testing.T) {
		users := new(MockUserRepo)
		uc := usecase.NewUserUsecase(users, plainHasher{}, nil)
		users.On("GetByID", ctx, int64(9)).Return(&domain.User{ID: 9, IsActive: false}, nil)
		users.On("SetActive", ctx, int64(9), true).Return(nil)

		user, err := uc.ToggleStatus(ctx, admin, 9)
		require.NoError(t, err)
		assert.True(t, user.IsActive)
	})
}
