package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/internal/usecase"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{ID: 1, Email: "admin@example.com", Role: domain.RoleAdmin}

func ptr[T any](v T) *T { return &v }

func assertAppError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
	assert.Equal(t, msg, appErr.Message)
}

func TestCategoryUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		repo.On("NameExists", ctx, "Backend", int64(0)).Return(true, nil)

		err := uc.Create(ctx, admin, &domain.Category{Name: "  Backend "})
		assertAppError(t, err, http.StatusBadRequest, "Category with this name already exists")
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should stamp the actor on create", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		repo.On("NameExists", ctx, "Frontend", int64(0)).Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(c *domain.Category) bool {
			return c.CreatedBy == admin.ID && c.UpdatedBy == admin.ID && c.Description == nil
		})).Return(nil)

		err := uc.Create(ctx, admin, &domain.Category{Name: "Frontend", Description: ptr("  ")})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should refuse to delete a category with skills", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Category{ID: 7, Name: "Backend"}, nil)
		repo.On("CountSkills", ctx, int64(7)).Return(int64(2), nil)

		err := uc.Delete(ctx, admin, 7)
		assertAppError(t, err, http.StatusBadRequest, "Cannot delete category that has associated skills")
		repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should map a skill added meanwhile to the same error", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		repo.On("GetByID", ctx, int64(7)).Return(&domain.Category{ID: 7}, nil)
		repo.On("CountSkills", ctx, int64(7)).Return(int64(0), nil)
		repo.On("SoftDelete", ctx, int64(7), admin.ID).Return(domain.ErrHasDependents)

		err := uc.Delete(ctx, admin, 7)
		assertAppError(t, err, http.StatusBadRequest, "Cannot delete category that has associated skills")
	})

	t.Run("Should report a missing category as 404", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		uc := usecase.NewCategoryUsecase(repo, nil)
		repo.On("GetByID", ctx, int64(9)).Return(nil, domain.ErrNotFound)

		_, err := uc.Get(ctx, 9)
		assertAppError(t, err, http.StatusNotFound, "Category not found")
	})
}

func TestSkillUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require an existing category", func(t *testing.T) {
		skills, categories := new(MockSkillRepo), new(MockCategoryRepo)
		uc := usecase.NewSkillUsecase(skills, categories)
		categories.On("GetByID", ctx, int64(3)).Return(nil, domain.ErrNotFound)

		err := uc.Create(ctx, admin, &domain.Skill{CategoryID: 3, Name: "Go"})
		assertAppError(t, err, http.StatusNotFound, "Category not found")
	})

	t.Run("Should re-check the name when moving category", func(t *testing.T) {
		skills, categories := new(MockSkillRepo), new(MockCategoryRepo)
		uc := usecase.NewSkillUsecase(skills, categories)
		skills.On("GetByID", ctx, int64(5)).Return(&domain.Skill{ID: 5, CategoryID: 1, Name: "Go"}, nil)
		categories.On("GetByID", ctx, int64(2)).Return(&domain.Category{ID: 2}, nil)
		skills.On("NameExistsInCategory", ctx, int64(2), "Go", int64(5)).Return(true, nil)

		_, err := uc.Update(ctx, admin, 5, domain.SkillPatch{CategoryID: ptr(int64(2))})
		assertAppError(t, err, http.StatusBadRequest, "Skill name already exists in this category")
	})
}

func TestProfileSkillUsecase(t *testing.T) {
	ctx := context.Background()

	newUC := func() (domain.ProfileSkillUsecase, *MockProfileSkillRepo, *MockProfileRepo, *MockCategoryRepo, *MockSkillRepo) {
		ps, profiles, categories, skills := new(MockProfileSkillRepo), new(MockProfileRepo), new(MockCategoryRepo), new(MockSkillRepo)
		return usecase.NewProfileSkillUsecase(ps, profiles, categories, skills), ps, profiles, categories, skills
	}

	t.Run("Should reject a skill from another category", func(t *testing.T) {
		uc, ps, profiles, categories, skills := newUC()
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)
		categories.On("GetByID", ctx, int64(20)).Return(&domain.Category{ID: 20, Name: "Frontend"}, nil)
		skills.On("GetByID", ctx, int64(30)).Return(&domain.Skill{ID: 30, CategoryID: 10, Name: "Go"}, nil)

		err := uc.Create(ctx, admin, &domain.ProfileSkill{ProfileID: 1, CategoryID: 20, SkillID: 30, Percent: 80})
		assertAppError(t, err, http.StatusBadRequest, "Skill does not belong to the specified category")
		ps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject percent outside 1..100", func(t *testing.T) {
		uc, _, _, _, _ := newUC()
		for _, p := range []int{0, 101} {
			err := uc.Create(ctx, admin, &domain.ProfileSkill{ProfileID: 1, CategoryID: 1, SkillID: 1, Percent: p})
			assertAppError(t, err, http.StatusBadRequest, "Percent must be between 1 and 100")
		}
	})

	t.Run("Should reject a duplicate profile skill", func(t *testing.T) {
		uc, ps, profiles, categories, skills := newUC()
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)
		categories.On("GetByID", ctx, int64(10)).Return(&domain.Category{ID: 10}, nil)
		skills.On("GetByID", ctx, int64(30)).Return(&domain.Skill{ID: 30, CategoryID: 10}, nil)
		ps.On("Exists", ctx, int64(1), int64(30), int64(0)).Return(true, nil)

		err := uc.Create(ctx, admin, &domain.ProfileSkill{ProfileID: 1, CategoryID: 10, SkillID: 30, Percent: 50})
		assertAppError(t, err, http.StatusBadRequest, "Profile skill combination already exists")
	})

	t.Run("Should group by category in list order", func(t *testing.T) {
		uc, ps, profiles, _, _ := newUC()
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)
		ps.On("List", ctx, mock.Anything, domain.NewPageRequest(1, domain.MaxPageLimit)).Return([]domain.ProfileSkill{
			{ID: 1, CategoryID: 2, SkillID: 11, Percent: 90},
			{ID: 2, CategoryID: 1, SkillID: 12, Percent: 80},
			{ID: 3, CategoryID: 2, SkillID: 13, Percent: 70},
		}, nil)

		groups, err := uc.ListByProfileGrouped(ctx, 1, false)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, int64(2), groups[0].CategoryID)
		assert.Len(t, groups[0].Skills, 2)
		assert.Equal(t, int64(1), groups[1].CategoryID)
	})
}

func TestExperienceUsecase(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Should reject an end date on a current position", func(t *testing.T) {
		experiences, profiles := new(MockExperienceRepo), new(MockProfileRepo)
		uc := usecase.NewExperienceUsecase(experiences, profiles)
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)

		err := uc.Create(ctx, &domain.Experience{ProfileID: 1, JobTitle: "Dev", CompanyName: "Acme",
			StartDate: start, EndDate: &end, IsCurrent: true})
		assertAppError(t, err, http.StatusBadRequest, "End date should be null for current positions")
	})

	t.Run("Should reject a start date after the end date", func(t *testing.T) {
		experiences, profiles := new(MockExperienceRepo), new(MockProfileRepo)
		uc := usecase.NewExperienceUsecase(experiences, profiles)
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)

		err := uc.Create(ctx, &domain.Experience{ProfileID: 1, JobTitle: "Dev", CompanyName: "Acme",
			StartDate: end, EndDate: &start})
		assertAppError(t, err, http.StatusBadRequest, "Start date cannot be after end date")
	})

	t.Run("Should clear the end date when toggled current", func(t *testing.T) {
		experiences, profiles := new(MockExperienceRepo), new(MockProfileRepo)
		uc := usecase.NewExperienceUsecase(experiences, profiles)
		x := &domain.Experience{ID: 4, ProfileID: 1, StartDate: start, EndDate: &end}
		experiences.On("GetByID", ctx, int64(4)).Return(x, nil)
		experiences.On("Update", ctx, mock.MatchedBy(func(x *domain.Experience) bool {
			return x.IsCurrent && x.EndDate == nil
		})).Return(nil)

		got, err := uc.ToggleCurrent(ctx, 4)
		require.NoError(t, err)
		assert.True(t, got.IsCurrent)
		experiences.AssertExpectations(t)
	})

	t.Run("Should drop the end date when updated to current", func(t *testing.T) {
		experiences, profiles := new(MockExperienceRepo), new(MockProfileRepo)
		uc := usecase.NewExperienceUsecase(experiences, profiles)
		experiences.On("GetByID", ctx, int64(4)).Return(&domain.Experience{ID: 4, ProfileID: 1, StartDate: start, EndDate: &end}, nil)
		experiences.On("Update", ctx, mock.MatchedBy(func(x *domain.Experience) bool {
			return x.IsCurrent && x.EndDate == nil
		})).Return(nil)

		_, err := uc.Update(ctx, 4, domain.ExperiencePatch{IsCurrent: ptr(true)})
		require.NoError(t, err)
		experiences.AssertExpectations(t)
	})

	t.Run("Should filter current rows for a profile", func(t *testing.T) {
		experiences, profiles := new(MockExperienceRepo), new(MockProfileRepo)
		uc := usecase.NewExperienceUsecase(experiences, profiles)
		page := domain.NewPageRequest(1, 10)
		profiles.On("GetByID", ctx, int64(1)).Return(&domain.Profile{ID: 1}, nil)
		current := mock.MatchedBy(func(f domain.ExperienceFilter) bool {
			return f.ProfileID != nil && *f.ProfileID == 1 && f.IsCurrent != nil && *f.IsCurrent
		})
		experiences.On("List", ctx, current, page).Return([]domain.Experience{{ID: 4, IsCurrent: true}}, nil)
		experiences.On("Count", ctx, current).Return(int64(1), nil)

		items, pagination, err := uc.ListByProfile(ctx, 1, true, page)
		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, domain.Pagination{CurrentPage: 1, TotalPages: 1, TotalData: 1, Limit: 10}, pagination)
	})
}

func TestEducationUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("Should require start year before graduation year", func(t *testing.T) {
		uc := usecase.NewEducationUsecase(new(MockEducationRepo), new(MockProfileRepo))
		err := uc.Create(ctx, &domain.Education{ProfileID: 1, Degree: "BSc", InstitutionName: "MIT",
			StartYear: ptr(2020), GraduationYear: ptr(2020)})
		assertAppError(t, err, http.StatusBadRequest, "Start year cannot be after graduation year")
	})

	t.Run("Should bound GPA to 0..4", func(t *testing.T) {
		uc := usecase.NewEducationUsecase(new(MockEducationRepo), new(MockProfileRepo))
		err := uc.Create(ctx, &domain.Education{ProfileID: 1, Degree: "BSc", InstitutionName: "MIT", GPA: ptr(4.5)})
		assertAppError(t, err, http.StatusBadRequest, "GPA must be between 0 and 4.0")
	})

	t.Run("Should validate the merged record on update", func(t *testing.T) {
		educations := new(MockEducationRepo)
		uc := usecase.NewEducationUsecase(educations, new(MockProfileRepo))
		educations.On("GetByID", ctx, int64(3)).Return(&domain.Education{ID: 3, ProfileID: 1,
			StartYear: ptr(2018), GraduationYear: ptr(2022)}, nil)

		_, err := uc.Update(ctx, 3, domain.EducationPatch{StartYear: ptr(2023)})
		assertAppError(t, err, http.StatusBadRequest, "Start year cannot be after graduation year")
		educations.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Should clamp the top institutions limit", func(t *testing.T) {
		educations := new(MockEducationRepo)
		uc := usecase.NewEducationUsecase(educations, new(MockProfileRepo))
		educations.On("TopInstitutions", ctx, 100).Return([]domain.TopInstitution{}, nil)
		educations.On("TopInstitutions", ctx, 10).Return([]domain.TopInstitution{}, nil)

		_, err := uc.TopInstitutions(ctx, 5000)
		require.NoError(t, err)
		_, err = uc.TopInstitutions(ctx, 0)
		require.NoError(t, err)
		educations.AssertExpectations(t)
	})
}

func TestProfileUsecaseImageLifecycle(t *testing.T) {
	ctx := context.Background()
	img := &domain.ImageUpload{Filename: "me.png", Data: []byte("png")}
	stored := &domain.StoredImage{Filename: "profile-new.png"}

	t.Run("Should remove the stored image when the email is taken", func(t *testing.T) {
		profiles, uploads := new(MockProfileRepo), new(MockUploads)
		uc := usecase.NewProfileUsecase(profiles, uploads)
		uploads.On("StoreProfileImage", ctx, *img).Return(stored, nil)
		profiles.On("EmailExists", ctx, "jane@example.com", int64(0)).Return(true, nil)
		uploads.On("DeleteProfileImage", mock.Anything, "profile-new.png").Return(nil)

		err := uc.Create(ctx, &domain.Profile{FullName: "Jane", Email: " Jane@Example.com "}, img)
		assertAppError(t, err, http.StatusBadRequest, "Profile with this email already exists")
		uploads.AssertExpectations(t)
	})

	t.Run("Should store the filename on create", func(t *testing.T) {
		profiles, uploads := new(MockProfileRepo), new(MockUploads)
		uc := usecase.NewProfileUsecase(profiles, uploads)
		uploads.On("StoreProfileImage", ctx, *img).Return(stored, nil)
		profiles.On("EmailExists", ctx, "jane@example.com", int64(0)).Return(false, nil)
		profiles.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.ProfilePictureURL != nil && *p.ProfilePictureURL == "profile-new.png"
		})).Return(nil)

		err := uc.Create(ctx, &domain.Profile{FullName: "Jane", Email: "jane@example.com"}, img)
		require.NoError(t, err)
		uploads.AssertNotCalled(t, "DeleteProfileImage", mock.Anything, mock.Anything)
	})

	t.Run("Should delete the old picture only after a successful update", func(t *testing.T) {
		profiles, uploads := new(MockProfileRepo), new(MockUploads)
		uc := usecase.NewProfileUsecase(profiles, uploads)
		uploads.On("StoreProfileImage", ctx, *img).Return(stored, nil)
		profiles.On("GetByID", ctx, int64(2)).Return(&domain.Profile{ID: 2, Email: "jane@example.com",
			ProfilePictureURL: ptr("profile-old.png")}, nil)
		profiles.On("Update", ctx, mock.Anything).Return(nil)
		uploads.On("DeleteProfileImage", mock.Anything, "profile-old.png").Return(nil)

		p, err := uc.Update(ctx, 2, domain.ProfilePatch{}, img)
		require.NoError(t, err)
		assert.Equal(t, "profile-new.png", *p.ProfilePictureURL)
		uploads.AssertExpectations(t)
	})

	t.Run("Should keep the old picture when the update fails", func(t *testing.T) {
		profiles, uploads := new(MockProfileRepo), new(MockUploads)
		uc := usecase.NewProfileUsecase(profiles, uploads)
		uploads.On("StoreProfileImage", ctx, *img).Return(stored, nil)
		profiles.On("GetByID", ctx, int64(2)).Return(&domain.Profile{ID: 2, Email: "jane@example.com",
			ProfilePictureURL: ptr("profile-old.png")}, nil)
		profiles.On("Update", ctx, mock.Anything).Return(errors.New("db down"))
		uploads.On("DeleteProfileImage", mock.Anything, "profile-new.png").Return(nil)

		_, err := uc.Update(ctx, 2, domain.ProfilePatch{}, img)
		assertAppError(t, err, http.StatusInternalServerError, "Internal Server Error")
		uploads.AssertNotCalled(t, "DeleteProfileImage", mock.Anything, "profile-old.png")
		uploads.AssertExpectations(t)
	})

	t.Run("Should refuse to delete a profile with dependents", func(t *testing.T) {
		profiles, uploads := new(MockProfileRepo), new(MockUploads)
		uc := usecase.NewProfileUsecase(profiles, uploads)
		profiles.On("GetByID", ctx, int64(2)).Return(&domain.Profile{ID: 2}, nil)
		profiles.On("CountDependents", ctx, int64(2)).Return(domain.ProfileDependents{Skills: 1}, nil)

		err := uc.Delete(ctx, 2)
		assertAppError(t, err, http.StatusBadRequest, "Cannot delete profile that has associated records")
		profiles.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestAuthUsecaseLogin(t *testing.T) {
	ctx := context.Background()
	expires := time.Now().Add(time.Hour)
	user := &domain.User{ID: 1, Name: "Jane", Email: "jane@example.com", Password: "hashed:secret", Role: domain.RoleUser, IsActive: true}

	t.Run("Should refuse a blocked email", func(t *testing.T) {
		users, tokens, guard := new(MockUserRepo), new(MockTokens), new(MockGuard)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, guard, nil)
		guard.On("IsBlocked", ctx, "jane@example.com").Return(true, time.Minute, nil)

		_, err := uc.Login(ctx, domain.LoginInput{Email: "Jane@example.com", Password: "secret"})
		assertAppError(t, err, http.StatusTooManyRequests, "Too many failed login attempts. Please try again later.")
		users.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Should record a wrong password", func(t *testing.T) {
		users, tokens, guard := new(MockUserRepo), new(MockTokens), new(MockGuard)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, guard, nil)
		guard.On("IsBlocked", ctx, "jane@example.com").Return(false, time.Duration(0), nil)
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		guard.On("RecordFailure", ctx, "jane@example.com", "10.0.0.1", "req-1").Return(nil)

		_, err := uc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "wrong", IP: "10.0.0.1", RequestID: "req-1"})
		assertAppError(t, err, http.StatusUnauthorized, "Invalid email or password")
		guard.AssertExpectations(t)
	})

	t.Run("Should hide unknown emails behind the same message", func(t *testing.T) {
		users, tokens := new(MockUserRepo), new(MockTokens)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, nil, nil)
		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, domain.LoginInput{Email: "ghost@example.com", Password: "secret"})
		assertAppError(t, err, http.StatusUnauthorized, "Invalid email or password")
	})

	t.Run("Should issue a token and reset failures on success", func(t *testing.T) {
		users, tokens, guard := new(MockUserRepo), new(MockTokens), new(MockGuard)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, guard, nil)
		guard.On("IsBlocked", ctx, "jane@example.com").Return(false, time.Duration(0), nil)
		users.On("GetByEmail", ctx, "jane@example.com").Return(user, nil)
		guard.On("Reset", ctx, "jane@example.com").Return(nil)
		tokens.On("Generate", int64(1), "jane@example.com", "Jane", domain.RoleUser).Return("tok", expires, nil)

		res, err := uc.Login(ctx, domain.LoginInput{Email: "jane@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "tok", res.Token)
		assert.Equal(t, user.Email, res.User.Email)
		guard.AssertExpectations(t)
	})
}

func TestAuthUsecaseRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should always register a plain user", func(t *testing.T) {
		users, tokens := new(MockUserRepo), new(MockTokens)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, nil, nil)
		users.On("EmailExists", ctx, "new@example.com", int64(0)).Return(false, nil)
		users.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleUser && u.Password == "hashed:pw123456"
		})).Return(nil)
		tokens.On("Generate", mock.Anything, "new@example.com", "New", domain.RoleUser).Return("tok", time.Now(), nil)

		res, err := uc.Register(ctx, domain.CreateUserInput{Name: "New", Email: "new@example.com", Password: "pw123456", Role: domain.RoleAdmin})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, res.User.Role)
	})

	t.Run("Should distinguish expired tokens", func(t *testing.T) {
		users, tokens := new(MockUserRepo), new(MockTokens)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, nil, nil)
		tokens.On("Validate", "old").Return(auth.Claims{}, auth.ErrTokenExpired)
		tokens.On("Validate", "junk").Return(auth.Claims{}, auth.ErrTokenInvalid)

		_, err := uc.Authenticate(ctx, "old")
		assertAppError(t, err, http.StatusUnauthorized, "Token expired")
		_, err = uc.Authenticate(ctx, "junk")
		assertAppError(t, err, http.StatusUnauthorized, "Invalid token")
	})

	t.Run("Should reject tokens of deactivated users", func(t *testing.T) {
		users, tokens := new(MockUserRepo), new(MockTokens)
		uc := usecase.NewAuthUsecase(users, plainHasher{}, tokens, nil, nil)
		tokens.On("Validate", "tok").Return(auth.Claims{UserID: 4}, nil)
		users.On("GetByID", ctx, int64(4)).Return(&domain.User{ID: 4, IsActive: false}, nil)

		_, err := uc.Authenticate(ctx, "tok")
		assertAppError(t, err, http.StatusUnauthorized, "User not found or inactive")
	})
}

func TestUserUsecaseSelfProtection(t *testing.T) {
	ctx := context.Background()
	users := new(MockUserRepo)
	uc := usecase.NewUserUsecase(users, plainHasher{}, nil)
	users.On("GetByID", ctx, admin.ID).Return(&domain.User{ID: admin.ID, IsActive: true}, nil)

	err := uc.Delete(ctx, admin, admin.ID)
	assertAppError(t, err, http.StatusBadRequest, "You cannot delete your own account")

	_, err = uc.ToggleStatus(ctx, admin, admin.ID)
	assertAppError(t, err, http.StatusBadRequest, "You cannot deactivate your own account")
	users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestHealthUsecase(t *testing.T) {
	ok := usecase.PingFunc(func(context.Context) error { return nil })
	down := usecase.PingFunc(func(context.Context) error { return errors.New("refused") })

	status, healthy := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": ok, "redis": down}).Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "ok", status["database"])
	assert.Equal(t, "down", status["redis"])
	assert.Equal(t, "degraded", status["status"])
}
