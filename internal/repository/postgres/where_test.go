package postgres

import (
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

func ptr[T any](v T) *T { return &v }

// whereOf extracts the WHERE clause from a list or count query.
func whereOf(t *testing.T, query string) string {
	t.Helper()
	i := strings.Index(query, " WHERE ")
	if i < 0 {
		return ""
	}
	rest := query[i:]
	if j := strings.Index(rest, " ORDER BY "); j >= 0 {
		rest = rest[:j]
	}
	return rest
}

func assertListCountAgree(t *testing.T, list string, listArgs []any, count string, countArgs []any, page domain.PageRequest) {
	t.Helper()
	assert.Equal(t, whereOf(t, count), whereOf(t, list))
	require.Len(t, listArgs, len(countArgs)+2)
	assert.Equal(t, countArgs, listArgs[:len(countArgs)])
	assert.Equal(t, page.Limit, listArgs[len(countArgs)])
	assert.Equal(t, page.Offset(), listArgs[len(countArgs)+1])
}

func TestWhereBuilder(t *testing.T) {
	w := &whereBuilder{}
	assert.Equal(t, "", w.sql())

	w.raw("is_deleted = FALSE")
	w.eq("category_id", int64(3))
	w.ilikeAny([]string{"name", "description"}, " Go_lang% ")
	page := w.page(domain.NewPageRequest(2, 5))

	assert.Equal(t, " WHERE is_deleted = FALSE AND category_id = $1 AND (name ILIKE $2 OR description ILIKE $2)", w.sql())
	assert.Equal(t, " LIMIT $3 OFFSET $4", page)
	assert.Equal(t, []any{int64(3), `%Go\_lang\%%`, 5, 5}, w.args)
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, "%%", likePattern("   "))
}

func TestUserQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(3, 20)
	filters := []domain.UserFilter{
		{},
		{IncludeInactive: true},
		{Role: domain.RoleAdmin},
		{Search: "ann", Role: domain.RoleUser, IncludeInactive: true},
	}
	for _, f := range filters {
		list, listArgs := userListQuery(f, page)
		count, countArgs := userCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
	}

	list, _ := userListQuery(domain.UserFilter{}, page)
	assert.Contains(t, list, "is_active = TRUE")
	assert.Contains(t, list, "ORDER BY created_at DESC, id DESC")
}

func TestCategoryQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(2, 10)
	filters := []domain.CategoryFilter{
		{},
		{Search: "back"},
		{CreatedBy: ptr(int64(1))},
		{Search: "x", CreatedBy: ptr(int64(9)), IncludeInactive: true},
	}
	for _, f := range filters {
		list, listArgs := categoryListQuery(f, page)
		count, countArgs := categoryCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
		assert.Contains(t, count, "is_deleted = FALSE")
	}

	inactive, _ := categoryCountQuery(domain.CategoryFilter{IncludeInactive: true})
	assert.NotContains(t, inactive, "is_active")
}

func TestSkillQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(2, 5)
	filters := []domain.SkillFilter{
		{},
		{CategoryID: ptr(int64(4))},
		{Search: "go", CategoryID: ptr(int64(4)), IncludeInactive: true},
	}
	for _, f := range filters {
		list, listArgs := skillListQuery(f, page)
		count, countArgs := skillCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
	}
}

func TestProfileQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(1, 10)
	for _, f := range []domain.ProfileFilter{{}, {Search: "jane"}} {
		list, listArgs := profileListQuery(f, page)
		count, countArgs := profileCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
	}

	q, args := profileCountQuery(domain.ProfileFilter{Search: "jane"})
	assert.Contains(t, q, "current_job_title ILIKE $1")
	assert.Equal(t, []any{"%jane%"}, args)
}

func TestEducationQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(2, 10)
	filters := []domain.EducationFilter{
		{},
		{ProfileID: ptr(int64(1))},
		{Degree: "Bachelor", Major: "CS", InstitutionName: "ITB"},
		{GraduationYear: ptr(2020), MinGPA: ptr(3.0), MaxGPA: ptr(4.0)},
		{Search: "ui", ProfileID: ptr(int64(2)), MinGPA: ptr(2.5)},
	}
	for _, f := range filters {
		list, listArgs := educationListQuery(f, page)
		count, countArgs := educationCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
	}

	list, _ := educationListQuery(domain.EducationFilter{}, page)
	assert.Contains(t, list, "ORDER BY e.graduation_year DESC NULLS LAST, e.start_year DESC NULLS LAST, e.id DESC")
}

func TestExperienceQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(1, 25)
	filters := []domain.ExperienceFilter{
		{},
		{ProfileID: ptr(int64(1)), IsCurrent: ptr(true)},
		{JobTitle: "eng", CompanyName: "acme", Location: "jakarta"},
		{Search: "dev", IsCurrent: ptr(false)},
	}
	for _, f := range filters {
		list, listArgs := experienceListQuery(f, page)
		count, countArgs := experienceCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
		assert.Contains(t, count, "x.is_delete = FALSE")
	}

	list, _ := experienceListQuery(domain.ExperienceFilter{}, page)
	assert.Contains(t, list, "ORDER BY x.is_current DESC, x.start_date DESC, x.id DESC")
}

func TestProfileSkillQueriesAgree(t *testing.T) {
	page := domain.NewPageRequest(4, 3)
	filters := []domain.ProfileSkillFilter{
		{},
		{ProfileID: ptr(int64(1)), CategoryID: ptr(int64(2))},
		{SkillID: ptr(int64(3)), MinPercent: ptr(50)},
		{SkillIDs: []int64{1, 2, 3}, IncludeInactive: true},
		{Search: "react", ProfileID: ptr(int64(7)), SkillIDs: []int64{9}},
	}
	for _, f := range filters {
		list, listArgs := profileSkillListQuery(f, page)
		count, countArgs := profileSkillCountQuery(f)
		assertListCountAgree(t, list, listArgs, count, countArgs, page)
	}

	q, args := profileSkillCountQuery(domain.ProfileSkillFilter{SkillIDs: []int64{1, 2}})
	assert.Contains(t, q, "ps.skill_id = ANY($1)")
	assert.Equal(t, []any{[]int64{1, 2}}, args)
}

func TestProfileDeleteQueryGuardsEveryDependent(t *testing.T) {
	q := profileDeleteQuery()
	for _, table := range profileDependentTables {
		assert.Contains(t, q, `FROM "`+table+`" d WHERE d.profile_id = p.id`)
	}
	assert.True(t, strings.HasPrefix(q, "DELETE FROM cms_profile p WHERE p.id = $1"))
}

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil, "dup"))

	err := mapWriteError(&pgconn.PgError{Code: pgUniqueViolation}, "Category with this name already exists")
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.EqualError(t, err, "Category with this name already exists")

	err = mapWriteError(&pgconn.PgError{Code: pgCheckViolation, Message: "violates check"}, "dup")
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	err = mapWriteError(assert.AnError, "dup")
	assert.True(t, apperror.IsKind(err, apperror.KindInternal))
}

func TestMapReadError(t *testing.T) {
	assert.ErrorIs(t, mapReadError(pgx.ErrNoRows), domain.ErrNotFound)
	assert.Equal(t, assert.AnError, mapReadError(assert.AnError))
}
