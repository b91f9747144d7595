package v1_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	v1 "portfolio-cms-backend/internal/delivery/http/v1"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const adminToken = "admin-token"

var adminUser = &domain.User{ID: 7, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func doJSON(t *testing.T, r http.Handler, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

type fixture struct {
	auth        *MockAuthUC
	categories  *MockCategoryUC
	experiences *MockExperienceUC
	health      *MockHealthUC
	router      http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		auth:        new(MockAuthUC),
		categories:  new(MockCategoryUC),
		experiences: new(MockExperienceUC),
		health:      new(MockHealthUC),
	}
	f.auth.On("Authenticate", mock.Anything, adminToken).Return(adminUser, nil).Maybe()
	f.auth.On("Authenticate", mock.Anything, "user-token").
		Return(&domain.User{ID: 9, Role: domain.RoleUser, IsActive: true}, nil).Maybe()

	f.router = v1.NewRouter(v1.RouterDeps{
		AuthUC:          f.auth,
		CategoryUC:      f.categories,
		ExperienceUC:    f.experiences,
		HealthUC:        f.health,
		MaxUploadBytes:  1 << 20,
		RateLimitWindow: time.Minute,
	})
	return f
}

func TestCategoryRoutes(t *testing.T) {
	t.Run("Should clamp the page size and wrap the list", func(t *testing.T) {
		f := newFixture()
		page := domain.PageRequest{Page: 2, Limit: domain.MaxPageLimit}
		f.categories.On("List", mock.Anything, domain.CategoryFilter{Search: "go"}, page).
			Return([]domain.Category{{ID: 1, Name: "Go"}}, domain.NewPagination(page, 1001), nil)

		w, env := doJSON(t, f.router, http.MethodGet, "/api/categories?page=2&limit=5000&search=go", "", "")
		require.Equal(t, http.StatusOK, w.Code)

		var data struct {
			Categories []domain.Category  `json:"categories"`
			Pagination domain.Pagination `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data.Categories, 1)
		assert.Equal(t, 2, data.Pagination.TotalPages)
		assert.Equal(t, 2, data.Pagination.CurrentPage)
	})

	t.Run("Should turn an aligned offset into a page", func(t *testing.T) {
		f := newFixture()
		page := domain.PageRequest{Page: 3, Limit: 10}
		f.categories.On("List", mock.Anything, domain.CategoryFilter{}, page).
			Return([]domain.Category{}, domain.NewPagination(page, 25), nil)

		w, _ := doJSON(t, f.router, http.MethodGet, "/api/categories?offset=20&limit=10", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		f.categories.AssertExpectations(t)
	})

	t.Run("Should reject an offset off a page boundary", func(t *testing.T) {
		f := newFixture()
		w, env := doJSON(t, f.router, http.MethodGet, "/api/categories?offset=5&limit=10", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid offset: must be a multiple of limit", env.Message)
		f.categories.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should reject a non-numeric id", func(t *testing.T) {
		f := newFixture()
		w, env := doJSON(t, f.router, http.MethodGet, "/api/categories/abc", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid id", env.Message)
	})

	t.Run("Should surface not found from the usecase", func(t *testing.T) {
		f := newFixture()
		f.categories.On("Get", mock.Anything, int64(4)).Return(nil, apperror.NotFound("Category not found"))
		w, env := doJSON(t, f.router, http.MethodGet, "/api/categories/4", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Category not found", env.Message)
	})

	t.Run("Should require a token to create", func(t *testing.T) {
		f := newFixture()
		w, _ := doJSON(t, f.router, http.MethodPost, "/api/categories", "", `{"name":"Backend"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		f.categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should forbid regular users", func(t *testing.T) {
		f := newFixture()
		w, _ := doJSON(t, f.router, http.MethodPost, "/api/categories", "user-token", `{"name":"Backend"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Should create as admin with the actor attached", func(t *testing.T) {
		f := newFixture()
		f.categories.On("Create", mock.Anything,
			mock.MatchedBy(func(a domain.Actor) bool { return a.ID == adminUser.ID }),
			mock.MatchedBy(func(c *domain.Category) bool { return c.Name == "Backend" && c.IsActive }),
		).Return(nil)

		w, env := doJSON(t, f.router, http.MethodPost, "/api/categories", adminToken, `{"name":"Backend"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "Category created successfully", env.Message)
		f.categories.AssertExpectations(t)
	})

	t.Run("Should report validation errors", func(t *testing.T) {
		f := newFixture()
		w, env := doJSON(t, f.router, http.MethodPost, "/api/categories", adminToken, `{"name":"B"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Validation failed", env.Message)
		assert.NotEmpty(t, env.Errors)
	})
}

func TestExperienceUpdateEndDate(t *testing.T) {
	t.Run("Should clear the end date on explicit null", func(t *testing.T) {
		f := newFixture()
		f.experiences.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(p domain.ExperiencePatch) bool {
			return p.EndDateSet && p.EndDate == nil && p.StartDate == nil
		})).Return(&domain.Experience{ID: 3}, nil)

		w, _ := doJSON(t, f.router, http.MethodPut, "/api/profile-experiences/3", adminToken, `{"end_date":null}`)
		assert.Equal(t, http.StatusOK, w.Code)
		f.experiences.AssertExpectations(t)
	})

	t.Run("Should leave the end date alone when absent", func(t *testing.T) {
		f := newFixture()
		f.experiences.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(p domain.ExperiencePatch) bool {
			return !p.EndDateSet && p.JobTitle != nil && *p.JobTitle == "Engineer"
		})).Return(&domain.Experience{ID: 3}, nil)

		w, _ := doJSON(t, f.router, http.MethodPut, "/api/profile-experiences/3", adminToken, `{"job_title":"Engineer"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		f.experiences.AssertExpectations(t)
	})

	t.Run("Should parse plain dates", func(t *testing.T) {
		f := newFixture()
		want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		f.experiences.On("Update", mock.Anything, int64(3), mock.MatchedBy(func(p domain.ExperiencePatch) bool {
			return p.EndDateSet && p.EndDate != nil && p.EndDate.Equal(want)
		})).Return(&domain.Experience{ID: 3}, nil)

		w, _ := doJSON(t, f.router, http.MethodPut, "/api/profile-experiences/3", adminToken, `{"end_date":"2024-02-01"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should reject malformed dates", func(t *testing.T) {
		f := newFixture()
		w, _ := doJSON(t, f.router, http.MethodPut, "/api/profile-experiences/3", adminToken, `{"end_date":"01/02/2024"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		f.experiences.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestHealthAndFallback(t *testing.T) {
	t.Run("Should report degraded dependencies", func(t *testing.T) {
		f := newFixture()
		f.health.On("Check", mock.Anything).Return(map[string]string{"database": "down"}, false)
		w, env := doJSON(t, f.router, http.MethodGet, "/api/health", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "Service degraded", env.Message)
	})

	t.Run("Should say the server is running", func(t *testing.T) {
		f := newFixture()
		f.health.On("Check", mock.Anything).Return(map[string]string{"database": "ok"}, true)
		w, env := doJSON(t, f.router, http.MethodGet, "/api/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Server is running", env.Message)
	})

	t.Run("Should answer unknown routes with 404", func(t *testing.T) {
		f := newFixture()
		w, env := doJSON(t, f.router, http.MethodGet, "/api/nope", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Route not found", env.Message)
	})
}

func TestProfileSkillValidation(t *testing.T) {
	f := newFixture()
	w, env := doJSON(t, f.router, http.MethodPost, "/api/profile-skills", adminToken,
		`{"profile_id":1,"category_id":1,"skill_id":1,"percent":150}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Validation failed", env.Message)
}
