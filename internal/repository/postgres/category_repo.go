package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const categoryColumns = `id, name, description, is_active, created_by, updated_by, created_at, updated_at`

type categoryRepo struct {
	db *pgxpool.Pool
}

func NewCategoryRepository(db *pgxpool.Pool) domain.CategoryRepository {
	return &categoryRepo{db: db}
}

func scanCategory(row interface{ Scan(...any) error }) (*domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO cms_m_category (name, description, is_active, created_by, updated_by)
              VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, c.Name, c.Description, c.IsActive, c.CreatedBy, c.UpdatedBy).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	return mapWriteError(err, "Category with this name already exists")
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM cms_m_category WHERE id = $1 AND is_deleted = FALSE`
	c, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return c, nil
}

func categoryWhere(f domain.CategoryFilter) *whereBuilder {
	w := &whereBuilder{}
	w.raw("is_deleted = FALSE")
	if !f.IncludeInactive {
		w.raw("is_active = TRUE")
	}
	if f.CreatedBy != nil {
		w.eq("created_by", *f.CreatedBy)
	}
	if f.Search != "" {
		w.ilikeAny([]string{"name", "description"}, f.Search)
	}
	return w
}

func categoryListQuery(f domain.CategoryFilter, p domain.PageRequest) (string, []any) {
	w := categoryWhere(f)
	query := `SELECT ` + categoryColumns + ` FROM cms_m_category` + w.sql() +
		` ORDER BY created_at DESC, id DESC` + w.page(p)
	return query, w.args
}

func categoryCountQuery(f domain.CategoryFilter) (string, []any) {
	w := categoryWhere(f)
	return `SELECT COUNT(*) FROM cms_m_category` + w.sql(), w.args
}

func (r *categoryRepo) List(ctx context.Context, filter domain.CategoryFilter, page domain.PageRequest) ([]domain.Category, error) {
	query, args := categoryListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Count(ctx context.Context, filter domain.CategoryFilter) (int64, error) {
	query, args := categoryCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *categoryRepo) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_m_category WHERE LOWER(name) = LOWER($1) AND id <> $2 AND is_deleted = FALSE)`,
		name, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *categoryRepo) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE cms_m_category
              SET name = $2, description = $3, is_active = $4, updated_by = $5, updated_at = NOW()
              WHERE id = $1 AND is_deleted = FALSE
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, c.ID, c.Name, c.Description, c.IsActive, c.UpdatedBy).Scan(&c.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapWriteError(err, "Category name already in use")
	}
	return nil
}

// SoftDelete checks for live skills in the same statement, so a skill
// inserted between the usecase pre-check and this call still blocks it.
func (r *categoryRepo) SoftDelete(ctx context.Context, id, actorID int64) error {
	query := `UPDATE cms_m_category c
              SET is_deleted = TRUE, updated_by = $2, updated_at = NOW()
              WHERE c.id = $1 AND c.is_deleted = FALSE
                AND NOT EXISTS (SELECT 1 FROM cms_m_skills s WHERE s.category_id = c.id AND s.is_deleted = FALSE)`
	tag, err := r.db.Exec(ctx, query, id, actorID)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrHasDependents
}

func (r *categoryRepo) Restore(ctx context.Context, id, actorID int64) error {
	query := `UPDATE cms_m_category SET is_deleted = FALSE, updated_by = $2, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, actorID)
	if err != nil {
		return mapWriteError(err, "Category with this name already exists")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepo) ToggleActive(ctx context.Context, id, actorID int64) (bool, error) {
	query := `UPDATE cms_m_category SET is_active = NOT is_active, updated_by = $2, updated_at = NOW()
              WHERE id = $1 AND is_deleted = FALSE RETURNING is_active`
	var active bool
	if err := r.db.QueryRow(ctx, query, id, actorID).Scan(&active); err != nil {
		return false, mapReadError(err)
	}
	return active, nil
}

func (r *categoryRepo) CountSkills(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM cms_m_skills WHERE category_id = $1 AND is_deleted = FALSE`, id,
	).Scan(&n)
	return n, err
}

// ListWithSkills returns categories in name order with their live skills nested.
func (r *categoryRepo) ListWithSkills(ctx context.Context, categoryID *int64, includeInactive bool) ([]domain.CategoryWithSkills, error) {
	w := &whereBuilder{}
	w.raw("c.is_deleted = FALSE")
	if !includeInactive {
		w.raw("c.is_active = TRUE")
	}
	if categoryID != nil {
		w.eq("c.id", *categoryID)
	}
	skillActive := ""
	if !includeInactive {
		skillActive = " AND s.is_active = TRUE"
	}
	query := `SELECT c.id, c.name, c.description, c.is_active, c.created_by, c.updated_by, c.created_at, c.updated_at,
                     s.id, s.name, s.description, s.icon, s.is_active, s.created_by, s.updated_by, s.created_at, s.updated_at
              FROM cms_m_category c
              LEFT JOIN cms_m_skills s ON s.category_id = c.id AND s.is_deleted = FALSE` + skillActive +
		w.sql() + ` ORDER BY c.name ASC, c.id ASC, s.name ASC, s.id ASC`

	rows, err := r.db.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.CategoryWithSkills, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var c domain.Category
		var (
			skillID                        *int64
			skillName                      *string
			skillDesc, skillIcon           *string
			skillActiveFlag                *bool
			skillCreatedBy, skillUpdatedBy *int64
			skillCreatedAt, skillUpdatedAt *time.Time
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.IsActive, &c.CreatedBy, &c.UpdatedBy, &c.CreatedAt, &c.UpdatedAt,
			&skillID, &skillName, &skillDesc, &skillIcon, &skillActiveFlag, &skillCreatedBy, &skillUpdatedBy, &skillCreatedAt, &skillUpdatedAt,
		); err != nil {
			return nil, err
		}
		pos, ok := index[c.ID]
		if !ok {
			pos = len(out)
			index[c.ID] = pos
			out = append(out, domain.CategoryWithSkills{Category: c, Skills: []domain.Skill{}})
		}
		if skillID == nil {
			continue
		}
		categoryName := c.Name
		s := domain.Skill{
			ID:           *skillID,
			CategoryID:   c.ID,
			Name:         *skillName,
			Description:  skillDesc,
			Icon:         skillIcon,
			IsActive:     *skillActiveFlag,
			CreatedBy:    *skillCreatedBy,
			UpdatedBy:    *skillUpdatedBy,
			CreatedAt:    *skillCreatedAt,
			UpdatedAt:    *skillUpdatedAt,
			CategoryName: &categoryName,
		}
		out[pos].Skills = append(out[pos].Skills, s)
		out[pos].SkillCount++
	}
	return out, rows.Err()
}

func (r *categoryRepo) Statistics(ctx context.Context) (*domain.CategoryStatistics, error) {
	query := `SELECT
                COUNT(*),
                COUNT(*) FILTER (WHERE is_active),
                COUNT(*) FILTER (WHERE NOT is_active),
                COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())),
                COUNT(*) FILTER (WHERE created_at >= NOW() - INTERVAL '7 days')
              FROM cms_m_category WHERE is_deleted = FALSE`
	var s domain.CategoryStatistics
	err := r.db.QueryRow(ctx, query).Scan(&s.Total, &s.Active, &s.Inactive, &s.CreatedToday, &s.CreatedThisWeek)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
