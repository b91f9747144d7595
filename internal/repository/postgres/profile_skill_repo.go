package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const profileSkillDuplicateMsg = "Profile skill combination already exists"

const profileSkillFrom = ` FROM cms_profile_skills ps
    LEFT JOIN cms_profile p ON p.id = ps.profile_id
    LEFT JOIN cms_m_category c ON c.id = ps.category_id
    LEFT JOIN cms_m_skills s ON s.id = ps.skill_id`

const profileSkillSelect = `SELECT ps.id, ps.profile_id, ps.category_id, ps.skill_id, ps.percent, ps.is_active,
    ps.created_by, ps.updated_by, ps.created_at, ps.updated_at, p.full_name, c.name, s.name, s.icon` + profileSkillFrom

type profileSkillRepo struct {
	db *pgxpool.Pool
}

func NewProfileSkillRepository(db *pgxpool.Pool) domain.ProfileSkillRepository {
	return &profileSkillRepo{db: db}
}

func scanProfileSkill(row interface{ Scan(...any) error }) (*domain.ProfileSkill, error) {
	var ps domain.ProfileSkill
	err := row.Scan(&ps.ID, &ps.ProfileID, &ps.CategoryID, &ps.SkillID, &ps.Percent, &ps.IsActive,
		&ps.CreatedBy, &ps.UpdatedBy, &ps.CreatedAt, &ps.UpdatedAt,
		&ps.ProfileName, &ps.CategoryName, &ps.SkillName, &ps.SkillIcon)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *profileSkillRepo) Create(ctx context.Context, ps *domain.ProfileSkill) error {
	query := `INSERT INTO cms_profile_skills (profile_id, category_id, skill_id, percent, is_active, created_by, updated_by)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, ps.ProfileID, ps.CategoryID, ps.SkillID, ps.Percent, ps.IsActive,
		ps.CreatedBy, ps.UpdatedBy).Scan(&ps.ID, &ps.CreatedAt, &ps.UpdatedAt)
	return mapWriteError(err, profileSkillDuplicateMsg)
}

func (r *profileSkillRepo) GetByID(ctx context.Context, id int64) (*domain.ProfileSkill, error) {
	ps, err := scanProfileSkill(r.db.QueryRow(ctx, profileSkillSelect+` WHERE ps.id = $1 AND ps.is_delete = FALSE`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return ps, nil
}

func profileSkillWhere(f domain.ProfileSkillFilter) *whereBuilder {
	w := &whereBuilder{}
	w.raw("ps.is_delete = FALSE")
	if !f.IncludeInactive {
		w.raw("ps.is_active = TRUE")
	}
	if f.ProfileID != nil {
		w.eq("ps.profile_id", *f.ProfileID)
	}
	if f.CategoryID != nil {
		w.eq("ps.category_id", *f.CategoryID)
	}
	if f.SkillID != nil {
		w.eq("ps.skill_id", *f.SkillID)
	}
	if len(f.SkillIDs) > 0 {
		w.raw("ps.skill_id = ANY(" + w.arg(f.SkillIDs) + ")")
	}
	if f.MinPercent != nil {
		w.gte("ps.percent", *f.MinPercent)
	}
	if f.Search != "" {
		w.ilikeAny([]string{"p.full_name", "c.name", "s.name"}, f.Search)
	}
	return w
}

func profileSkillListQuery(f domain.ProfileSkillFilter, p domain.PageRequest) (string, []any) {
	w := profileSkillWhere(f)
	query := profileSkillSelect + w.sql() +
		` ORDER BY ps.percent DESC, ps.created_at DESC, ps.id DESC` + w.page(p)
	return query, w.args
}

func profileSkillCountQuery(f domain.ProfileSkillFilter) (string, []any) {
	w := profileSkillWhere(f)
	return `SELECT COUNT(*)` + profileSkillFrom + w.sql(), w.args
}

func (r *profileSkillRepo) List(ctx context.Context, filter domain.ProfileSkillFilter, page domain.PageRequest) ([]domain.ProfileSkill, error) {
	query, args := profileSkillListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ProfileSkill, 0)
	for rows.Next() {
		ps, err := scanProfileSkill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ps)
	}
	return out, rows.Err()
}

func (r *profileSkillRepo) Count(ctx context.Context, filter domain.ProfileSkillFilter) (int64, error) {
	query, args := profileSkillCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *profileSkillRepo) Exists(ctx context.Context, profileID, skillID, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_profile_skills
                        WHERE profile_id = $1 AND skill_id = $2 AND id <> $3 AND is_delete = FALSE)`,
		profileID, skillID, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *profileSkillRepo) Update(ctx context.Context, ps *domain.ProfileSkill) error {
	query := `UPDATE cms_profile_skills SET
                  category_id = $2, skill_id = $3, percent = $4, is_active = $5, updated_by = $6, updated_at = NOW()
              WHERE id = $1 AND is_delete = FALSE
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, ps.ID, ps.CategoryID, ps.SkillID, ps.Percent, ps.IsActive, ps.UpdatedBy).
		Scan(&ps.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapWriteError(err, profileSkillDuplicateMsg)
	}
	return nil
}

func (r *profileSkillRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cms_profile_skills SET is_delete = TRUE, updated_by = $2, updated_at = NOW()
         WHERE id = $1 AND is_delete = FALSE`, id, actorID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileSkillRepo) Restore(ctx context.Context, id, actorID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cms_profile_skills SET is_delete = FALSE, updated_by = $2, updated_at = NOW() WHERE id = $1`,
		id, actorID)
	if err != nil {
		return mapWriteError(err, profileSkillDuplicateMsg)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileSkillRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		`UPDATE cms_profile_skills SET is_active = NOT is_active, updated_by = $2, updated_at = NOW()
         WHERE id = $1 AND is_delete = FALSE RETURNING is_active`,
		id, actorID,
	).Scan(&active)
	if err != nil {
		return false, mapReadError(err)
	}
	return active, nil
}
