package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
)

const profileColumns = `id, full_name, email, phone_number, linkedin_profile, github_profile, instagram_profile,
                        tiktok_profile, x_profile, profile_picture_url, bio, years_of_experience, current_job_title,
                        preferred_tech_stack, certifications, resume_url, created_at, updated_at`

// profileDependentTables reference cms_profile(id). Soft-deleted rows still
// count because the foreign keys would reject the delete anyway.
var profileDependentTables = []string{
	"cms_profile_educations",
	"cms_profile_experiences",
	"cms_profile_skills",
	"profile_projects",
}

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID, &p.FullName, &p.Email, &p.PhoneNumber, &p.LinkedinProfile, &p.GithubProfile, &p.InstagramProfile,
		&p.TiktokProfile, &p.XProfile, &p.ProfilePictureURL, &p.Bio, &p.YearsOfExperience, &p.CurrentJobTitle,
		&p.PreferredTechStack, &p.Certifications, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *profileRepo) Create(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO cms_profile (full_name, email, phone_number, linkedin_profile, github_profile, instagram_profile,
                  tiktok_profile, x_profile, profile_picture_url, bio, years_of_experience, current_job_title,
                  preferred_tech_stack, certifications, resume_url)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
              RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		p.FullName, p.Email, p.PhoneNumber, p.LinkedinProfile, p.GithubProfile, p.InstagramProfile,
		p.TiktokProfile, p.XProfile, p.ProfilePictureURL, p.Bio, p.YearsOfExperience, p.CurrentJobTitle,
		p.PreferredTechStack, p.Certifications, p.ResumeURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return mapWriteError(err, "Profile with this email already exists")
}

func (r *profileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM cms_profile WHERE id = $1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return p, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := scanProfile(r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM cms_profile WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, mapReadError(err)
	}
	return p, nil
}

func profileWhere(f domain.ProfileFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Search != "" {
		w.ilikeAny([]string{"full_name", "email", "phone_number", "current_job_title"}, f.Search)
	}
	return w
}

func profileListQuery(f domain.ProfileFilter, p domain.PageRequest) (string, []any) {
	w := profileWhere(f)
	query := `SELECT ` + profileColumns + ` FROM cms_profile` + w.sql() +
		` ORDER BY created_at DESC, id DESC` + w.page(p)
	return query, w.args
}

func profileCountQuery(f domain.ProfileFilter) (string, []any) {
	w := profileWhere(f)
	return `SELECT COUNT(*) FROM cms_profile` + w.sql(), w.args
}

func (r *profileRepo) List(ctx context.Context, filter domain.ProfileFilter, page domain.PageRequest) ([]domain.Profile, error) {
	query, args := profileListQuery(filter, page)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *p)
	}
	return profiles, rows.Err()
}

func (r *profileRepo) Count(ctx context.Context, filter domain.ProfileFilter) (int64, error) {
	query, args := profileCountQuery(filter)
	var total int64
	err := r.db.QueryRow(ctx, query, args...).Scan(&total)
	return total, err
}

func (r *profileRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM cms_profile WHERE LOWER(email) = LOWER($1) AND id <> $2)`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

func (r *profileRepo) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE cms_profile SET
                  full_name = $2, email = $3, phone_number = $4, linkedin_profile = $5, github_profile = $6,
                  instagram_profile = $7, tiktok_profile = $8, x_profile = $9, profile_picture_url = $10, bio = $11,
                  years_of_experience = $12, current_job_title = $13, preferred_tech_stack = $14,
                  certifications = $15, resume_url = $16, updated_at = NOW()
              WHERE id = $1
              RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		p.ID, p.FullName, p.Email, p.PhoneNumber, p.LinkedinProfile, p.GithubProfile,
		p.InstagramProfile, p.TiktokProfile, p.XProfile, p.ProfilePictureURL, p.Bio,
		p.YearsOfExperience, p.CurrentJobTitle, p.PreferredTechStack,
		p.Certifications, p.ResumeURL,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if mapped := mapReadError(err); mapped == domain.ErrNotFound {
			return mapped
		}
		return mapWriteError(err, "Email already in use")
	}
	return nil
}

func (r *profileRepo) CountDependents(ctx context.Context, id int64) (domain.ProfileDependents, error) {
	parts := make([]string, len(profileDependentTables))
	for i, t := range profileDependentTables {
		parts[i] = `(SELECT COUNT(*) FROM ` + pq.QuoteIdentifier(t) + ` WHERE profile_id = $1)`
	}
	var d domain.ProfileDependents
	err := r.db.QueryRow(ctx, `SELECT `+strings.Join(parts, ", "), id).
		Scan(&d.Educations, &d.Experiences, &d.Skills, &d.Projects)
	return d, err
}

func profileDeleteQuery() string {
	guards := make([]string, len(profileDependentTables))
	for i, t := range profileDependentTables {
		guards[i] = `NOT EXISTS (SELECT 1 FROM ` + pq.QuoteIdentifier(t) + ` d WHERE d.profile_id = p.id)`
	}
	return `DELETE FROM cms_profile p WHERE p.id = $1 AND ` + strings.Join(guards, " AND ")
}

func (r *profileRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, profileDeleteQuery(), id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrHasDependents
		}
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
