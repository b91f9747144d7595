package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const skillSelect = `SELECT s.id, s.category_id, s.name, s.description, s.icon, s.is_active,
                            s.created_by, s.updated_by, s.created_at, s.updated_at, c.name
                     FROM cms_m_skills s
                     LEFT JOIN cms_m_category c ON c.id = s.category_id`

type skillRepo struct {
	db *pgxpool.Pool
}

func NewSkillRepository(db *pgxpool.Pool) domain.SkillRepository {
	return &skillRepo{db: db}
}

func scanSkill(row interface{ Scan(...any) error }) (*domain.Skill, error) {
	var s domain.Skill
	err := row.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Description, &s.Icon, &s.IsActive,
		&s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt, &s.CategoryName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *skillRepo) Create(ctx context.Context, s *domain.Skill) error {
	query := `INSERT INTO cms_m_skills (category_id, name, description, icon, is_active, created_by, updated_by)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, s.CategoryID, s.Name, s.Description, s.Icon, s.IsActive, s.CreatedBy, s.UpdatedBy).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return mapWriteError(err, "Skill with this name already exists in this category")
}

func (r *skillRepo) GetByID(ctx context.Context, id int64) (*domain.Skill, error) {
	s, err := scanSkill(r.db.QueryRow(ctx, skillSelect+` WHERE s.id = $1 AND s.is_deleted = FALSE`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return s, nil
}

func skillWhere(f domain.SkillFilter) *whereBuilder {
	w := &whereBuilder{}
	w.raw("s.is_deleted = FALSE")
	if !f.IncludeInactive {
		w.raw("s.is_active = TRUE")
	}
	if f.CategoryID != nil {
		w.eq("s.category_id", *f.CategoryID)
	}
	if f.Search != "" {
		w.ilikeAny([]string{"s.name", "s.description"}, f.Search)
	}
	return w
}

func skillListQuery(f domain.SkillFilter, p domain.PageRequest) (string, []any) {
	w := skillWhere(f)
	query := skillSelect + w.sql() + ` ORDER BY s.created_at DESC, s.id DESC` + w.page(p)
	return query, w.args
}

func skillCountQuery(f domain.SkillFilter) (string, []any) {
	w := skillWhere(f)
	return `SELECT COUNT(*) FROM cms_m_skills s` + w.sql(), w.args
}

func (r *skillRepo) List(ctx context.Context, filter domain.SkillFilter, page domain.PageRequest) ([]domain.Skill, error) {
	query, args := skillListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]domain.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, *s)
	}
	return skills, rows.Err()
}

func (r *skillRepo) Count(ctx context.Context, filter domain.SkillFilter) (int64, error) {
	query, args := skillCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *skillRepo) NameExistsInCategory(ctx context.Context, categoryID int64, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_m_skills
                        WHERE category_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3 AND is_deleted = FALSE)`,
		categoryID, name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *skillRepo) Update(ctx context.Context, s *domain.Skill) error {
	query := `UPDATE cms_m_skills
              SET category_id = $2, name = $3, description = $4, icon = $5, is_active = $6, updated_by = $7, updated_at = NOW()
              WHERE id = $1 AND is_deleted = FALSE
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, s.ID, s.CategoryID, s.Name, s.Description, s.Icon, s.IsActive, s.UpdatedBy).
		Scan(&s.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapWriteError(err, "Skill name already exists in this category")
	}
	return nil
}

func (r *skillRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE cms_m_skills SET is_deleted = TRUE, updated_by = $2, updated_at = NOW() WHERE id = $1 AND is_deleted = FALSE`,
		id, actorID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Restore refuses to revive a skill whose category is gone.
func (r *skillRepo) Restore(ctx context.Context, id, actorID int64) error {
	query := `UPDATE cms_m_skills s SET is_deleted = FALSE, updated_by = $2, updated_at = NOW()
              WHERE s.id = $1
                AND EXISTS (SELECT 1 FROM cms_m_category c WHERE c.id = s.category_id AND c.is_deleted = FALSE)`
	tag, err := r.db.Exec(ctx, query, id, actorID)
	if err != nil {
		return mapWriteError(err, "Skill with this name already exists in this category")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *skillRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx,
		`UPDATE cms_m_skills SET is_active = NOT is_active, updated_by = $2, updated_at = NOW()
         WHERE id = $1 AND is_deleted = FALSE RETURNING is_active`,
		id, actorID,
	).Scan(&active)
	if err != nil {
		return false, mapReadError(err)
	}
	return active, nil
}
