package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const (
	experienceDuplicateMsg = "Profile experience with same job title and company already exists"
	experienceOneCurrentIx = "cms_profile_experiences_one_current"
)

const experienceSelect = `SELECT x.id, x.profile_id, x.job_title, x.company_name, x.location, x.start_date, x.end_date,
                                 x.is_current, x.description, x.created_at, x.updated_at, p.full_name
                          FROM cms_profile_experiences x
                          LEFT JOIN cms_profile p ON p.id = x.profile_id`

type experienceRepo struct {
	db *pgxpool.Pool
}

func NewExperienceRepository(db *pgxpool.Pool) domain.ExperienceRepository {
	return &experienceRepo{db: db}
}

func scanExperience(row interface{ Scan(...any) error }) (*domain.Experience, error) {
	var x domain.Experience
	err := row.Scan(&x.ID, &x.ProfileID, &x.JobTitle, &x.CompanyName, &x.Location, &x.StartDate, &x.EndDate,
		&x.IsCurrent, &x.Description, &x.CreatedAt, &x.UpdatedAt, &x.ProfileName)
	if err != nil {
		return nil, err
	}
	return &x, nil
}

func mapExperienceWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == experienceOneCurrentIx {
		return apperror.Conflict("Another experience is already marked as current for this profile")
	}
	return mapWriteError(err, experienceDuplicateMsg)
}

// clearCurrent unsets is_current on every other live row of the profile.
func clearCurrent(ctx context.Context, tx pgx.Tx, profileID, exceptID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE cms_profile_experiences SET is_current = FALSE, updated_at = NOW()
         WHERE profile_id = $1 AND id <> $2 AND is_current AND is_delete = FALSE`,
		profileID, exceptID)
	return err
}

func (r *experienceRepo) Create(ctx context.Context, x *domain.Experience) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if x.IsCurrent {
		if err := clearCurrent(ctx, tx, x.ProfileID, 0); err != nil {
			return apperror.Internal(err)
		}
	}

	query := `INSERT INTO cms_profile_experiences (profile_id, job_title, company_name, location, start_date, end_date,
                  is_current, description)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id, created_at, updated_at`
	err = tx.QueryRow(ctx, query, x.ProfileID, x.JobTitle, x.CompanyName, x.Location, x.StartDate, x.EndDate,
		x.IsCurrent, x.Description).Scan(&x.ID, &x.CreatedAt, &x.UpdatedAt)
	if err != nil {
		return mapExperienceWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *experienceRepo) Update(ctx context.Context, x *domain.Experience) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if x.IsCurrent {
		if err := clearCurrent(ctx, tx, x.ProfileID, x.ID); err != nil {
			return apperror.Internal(err)
		}
	}

	query := `UPDATE cms_profile_experiences SET
                  profile_id = $2, job_title = $3, company_name = $4, location = $5, start_date = $6, end_date = $7,
                  is_current = $8, description = $9, updated_at = NOW()
              WHERE id = $1 AND is_delete = FALSE
              RETURNING updated_at`
	err = tx.QueryRow(ctx, query, x.ID, x.ProfileID, x.JobTitle, x.CompanyName, x.Location, x.StartDate, x.EndDate,
		x.IsCurrent, x.Description).Scan(&x.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapExperienceWriteError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *experienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	x, err := scanExperience(r.db.QueryRow(ctx, experienceSelect+` WHERE x.id = $1 AND x.is_delete = FALSE`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return x, nil
}

func experienceWhere(f domain.ExperienceFilter) *whereBuilder {
	w := &whereBuilder{}
	w.raw("x.is_delete = FALSE")
	if f.ProfileID != nil {
		w.eq("x.profile_id", *f.ProfileID)
	}
	if f.IsCurrent != nil {
		w.eq("x.is_current", *f.IsCurrent)
	}
	if f.JobTitle != "" {
		w.ilike("x.job_title", f.JobTitle)
	}
	if f.CompanyName != "" {
		w.ilike("x.company_name", f.CompanyName)
	}
	if f.Location != "" {
		w.ilike("x.location", f.Location)
	}
	if f.Search != "" {
		w.ilikeAny([]string{"p.full_name", "x.job_title", "x.company_name", "x.location"}, f.Search)
	}
	return w
}

func experienceListQuery(f domain.ExperienceFilter, p domain.PageRequest) (string, []any) {
	w := experienceWhere(f)
	query := experienceSelect + w.sql() + ` ORDER BY x.is_current DESC, x.start_date DESC, x.id DESC` + w.page(p)
	return query, w.args
}

func experienceCountQuery(f domain.ExperienceFilter) (string, []any) {
	w := experienceWhere(f)
	return `SELECT COUNT(*) FROM cms_profile_experiences x LEFT JOIN cms_profile p ON p.id = x.profile_id` + w.sql(), w.args
}

func (r *experienceRepo) List(ctx context.Context, filter domain.ExperienceFilter, page domain.PageRequest) ([]domain.Experience, error) {
	query, args := experienceListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := make([]domain.Experience, 0)
	for rows.Next() {
		x, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, *x)
	}
	return experiences, rows.Err()
}

func (r *experienceRepo) Count(ctx context.Context, filter domain.ExperienceFilter) (int64, error) {
	query, args := experienceCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *experienceRepo) Exists(ctx context.Context, profileID int64, jobTitle, company string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_profile_experiences
                        WHERE profile_id = $1 AND LOWER(job_title) = LOWER($2) AND LOWER(company_name) = LOWER($3)
                          AND id <> $4 AND is_delete = FALSE)`,
		profileID, jobTitle, company, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *experienceRepo) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cms_profile_experiences SET is_delete = TRUE, is_current = FALSE, updated_at = NOW()
         WHERE id = $1 AND is_delete = FALSE`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *experienceRepo) Restore(ctx context.Context, id int64) error {
	query := `UPDATE cms_profile_experiences x SET
                  is_delete = FALSE,
                  is_current = x.end_date IS NULL AND x.is_current AND NOT EXISTS (
                      SELECT 1 FROM cms_profile_experiences o
                      WHERE o.profile_id = x.profile_id AND o.id <> x.id AND o.is_current AND o.is_delete = FALSE),
                  updated_at = NOW()
              WHERE x.id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapExperienceWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *experienceRepo) Statistics(ctx context.Context) (*domain.ExperienceStatistics, error) {
	query := `SELECT
                COUNT(*),
                COUNT(DISTINCT profile_id),
                COUNT(*) FILTER (WHERE is_current),
                COUNT(DISTINCT LOWER(company_name)),
                COUNT(DISTINCT LOWER(job_title)),
                COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())),
                COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
              FROM cms_profile_experiences WHERE is_delete = FALSE`
	var s domain.ExperienceStatistics
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.ProfilesWithExperience, &s.CurrentPositions,
		&s.UniqueCompanies, &s.UniqueJobTitles, &s.CreatedToday, &s.CreatedThisWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *experienceRepo) TopCompanies(ctx context.Context, limit int) ([]domain.TopCompany, error) {
	query := `SELECT company_name, location, COUNT(*), COUNT(DISTINCT profile_id), COUNT(*) FILTER (WHERE is_current)
              FROM cms_profile_experiences
              WHERE is_delete = FALSE
              GROUP BY company_name, location
              ORDER BY COUNT(*) DESC, COUNT(*) FILTER (WHERE is_current) DESC, company_name ASC
              LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.TopCompany, 0)
	for rows.Next() {
		var t domain.TopCompany
		if err := rows.Scan(&t.CompanyName, &t.Location, &t.ExperienceCount, &t.UniqueProfiles, &t.CurrentEmployees); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
