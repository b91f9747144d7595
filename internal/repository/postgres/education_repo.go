package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const educationDuplicateMsg = "Education with same degree and institution already exists for this profile"

const educationSelect = `SELECT e.id, e.profile_id, e.degree, e.major, e.institution_name, e.location, e.start_year,
                                e.graduation_year, e.gpa::float8, e.description, e.created_at, e.updated_at,
                                p.full_name, p.email
                         FROM cms_profile_educations e
                         LEFT JOIN cms_profile p ON p.id = e.profile_id`

type educationRepo struct {
	db *pgxpool.Pool
}

func NewEducationRepository(db *pgxpool.Pool) domain.EducationRepository {
	return &educationRepo{db: db}
}

func scanEducation(row interface{ Scan(...any) error }) (*domain.Education, error) {
	var e domain.Education
	err := row.Scan(&e.ID, &e.ProfileID, &e.Degree, &e.Major, &e.InstitutionName, &e.Location, &e.StartYear,
		&e.GraduationYear, &e.GPA, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.ProfileName, &e.ProfileEmail)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *educationRepo) Create(ctx context.Context, e *domain.Education) error {
	query := `INSERT INTO cms_profile_educations (profile_id, degree, major, institution_name, location, start_year,
                  graduation_year, gpa, description)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, e.ProfileID, e.Degree, e.Major, e.InstitutionName, e.Location, e.StartYear,
		e.GraduationYear, e.GPA, e.Description).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	return mapWriteError(err, educationDuplicateMsg)
}

func (r *educationRepo) GetByID(ctx context.Context, id int64) (*domain.Education, error) {
	e, err := scanEducation(r.db.QueryRow(ctx, educationSelect+` WHERE e.id = $1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return e, nil
}

func educationWhere(f domain.EducationFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.ProfileID != nil {
		w.eq("e.profile_id", *f.ProfileID)
	}
	if f.Degree != "" {
		w.ilike("e.degree", f.Degree)
	}
	if f.Major != "" {
		w.ilike("e.major", f.Major)
	}
	if f.InstitutionName != "" {
		w.ilike("e.institution_name", f.InstitutionName)
	}
	if f.GraduationYear != nil {
		w.eq("e.graduation_year", *f.GraduationYear)
	}
	if f.MinGPA != nil {
		w.gte("e.gpa", *f.MinGPA)
	}
	if f.MaxGPA != nil {
		w.lte("e.gpa", *f.MaxGPA)
	}
	if f.Search != "" {
		w.ilikeAny([]string{"p.full_name", "e.degree", "e.major", "e.institution_name", "e.location"}, f.Search)
	}
	return w
}

func educationListQuery(f domain.EducationFilter, p domain.PageRequest) (string, []any) {
	w := educationWhere(f)
	query := educationSelect + w.sql() +
		` ORDER BY e.graduation_year DESC NULLS LAST, e.start_year DESC NULLS LAST, e.id DESC` + w.page(p)
	return query, w.args
}

func educationCountQuery(f domain.EducationFilter) (string, []any) {
	w := educationWhere(f)
	return `SELECT COUNT(*) FROM cms_profile_educations e LEFT JOIN cms_profile p ON p.id = e.profile_id` + w.sql(), w.args
}

func (r *educationRepo) List(ctx context.Context, filter domain.EducationFilter, page domain.PageRequest) ([]domain.Education, error) {
	query, args := educationListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	educations := make([]domain.Education, 0)
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		educations = append(educations, *e)
	}
	return educations, rows.Err()
}

func (r *educationRepo) Count(ctx context.Context, filter domain.EducationFilter) (int64, error) {
	query, args := educationCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *educationRepo) Exists(ctx context.Context, profileID int64, degree, institution string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_profile_educations
                        WHERE profile_id = $1 AND LOWER(degree) = LOWER($2) AND LOWER(institution_name) = LOWER($3) AND id <> $4)`,
		profileID, degree, institution, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *educationRepo) Update(ctx context.Context, e *domain.Education) error {
	query := `UPDATE cms_profile_educations SET
                  profile_id = $2, degree = $3, major = $4, institution_name = $5, location = $6, start_year = $7,
                  graduation_year = $8, gpa = $9, description = $10, updated_at = NOW()
              WHERE id = $1
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, e.ID, e.ProfileID, e.Degree, e.Major, e.InstitutionName, e.Location, e.StartYear,
		e.GraduationYear, e.GPA, e.Description).Scan(&e.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapWriteError(err, educationDuplicateMsg)
	}
	return nil
}

func (r *educationRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cms_profile_educations WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *educationRepo) Statistics(ctx context.Context) (*domain.EducationStatistics, error) {
	query := `SELECT
                COUNT(*),
                COUNT(DISTINCT profile_id),
                AVG(gpa)::float8,
                MAX(gpa)::float8,
                MIN(gpa)::float8,
                COUNT(DISTINCT LOWER(degree)),
                COUNT(DISTINCT LOWER(institution_name)),
                COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())),
                COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
              FROM cms_profile_educations`
	var s domain.EducationStatistics
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.ProfilesWithEducation, &s.AvgGPA, &s.MaxGPA, &s.MinGPA,
		&s.UniqueDegrees, &s.UniqueInstitutions, &s.CreatedToday, &s.CreatedThisWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *educationRepo) TopInstitutions(ctx context.Context, limit int) ([]domain.TopInstitution, error) {
	query := `SELECT institution_name, location, COUNT(*), AVG(gpa)::float8, COUNT(DISTINCT profile_id)
              FROM cms_profile_educations
              GROUP BY institution_name, location
              ORDER BY COUNT(*) DESC, institution_name ASC
              LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TopInstitution, 0)
	for rows.Next() {
		var t domain.TopInstitution
		if err := rows.Scan(&t.InstitutionName, &t.Location, &t.EducationCount, &t.AvgGPA, &t.UniqueProfiles); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
