package domain

import (
	"context"
	"io"
	"time"
)

type Profile struct {
	ID                 int64     `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	PhoneNumber        *string   `json:"phone_number"`
	LinkedinProfile    *string   `json:"linkedin_profile"`
	GithubProfile      *string   `json:"github_profile"`
	InstagramProfile   *string   `json:"instagram_profile"`
	TiktokProfile      *string   `json:"tiktok_profile"`
	XProfile           *string   `json:"x_profile"`
	ProfilePictureURL  *string   `json:"profile_picture_url"`
	Bio                *string   `json:"bio"`
	YearsOfExperience  *int      `json:"years_of_experience"`
	CurrentJobTitle    *string   `json:"current_job_title"`
	PreferredTechStack *string   `json:"preferred_tech_stack"`
	Certifications     *string   `json:"certifications"`
	ResumeURL          *string   `json:"resume_url"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// PublicProfile is the portfolio-facing view without private contact data.
type PublicProfile struct {
	ID                 int64   `json:"id"`
	FullName           string  `json:"full_name"`
	Bio                *string `json:"bio"`
	ProfilePictureURL  *string `json:"profile_picture_url"`
	CurrentJobTitle    *string `json:"current_job_title"`
	YearsOfExperience  *int    `json:"years_of_experience"`
	PreferredTechStack *string `json:"preferred_tech_stack"`
	Certifications     *string `json:"certifications"`
	LinkedinProfile    *string `json:"linkedin_profile"`
	GithubProfile      *string `json:"github_profile"`
	ResumeURL          *string `json:"resume_url"`
}

// ProfileContact carries only the ways to reach the person.
type ProfileContact struct {
	ID               int64   `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number"`
	LinkedinProfile  *string `json:"linkedin_profile"`
	GithubProfile    *string `json:"github_profile"`
	InstagramProfile *string `json:"instagram_profile"`
	TiktokProfile    *string `json:"tiktok_profile"`
	XProfile         *string `json:"x_profile"`
}

func (p *Profile) Public() PublicProfile {
	return PublicProfile{
		ID:                 p.ID,
		FullName:           p.FullName,
		Bio:                p.Bio,
		ProfilePictureURL:  p.ProfilePictureURL,
		CurrentJobTitle:    p.CurrentJobTitle,
		YearsOfExperience:  p.YearsOfExperience,
		PreferredTechStack: p.PreferredTechStack,
		Certifications:     p.Certifications,
		LinkedinProfile:    p.LinkedinProfile,
		GithubProfile:      p.GithubProfile,
		ResumeURL:          p.ResumeURL,
	}
}

func (p *Profile) Contact() ProfileContact {
	return ProfileContact{
		ID:               p.ID,
		FullName:         p.FullName,
		Email:            p.Email,
		PhoneNumber:      p.PhoneNumber,
		LinkedinProfile:  p.LinkedinProfile,
		GithubProfile:    p.GithubProfile,
		InstagramProfile: p.InstagramProfile,
		TiktokProfile:    p.TiktokProfile,
		XProfile:         p.XProfile,
	}
}

type ProfileFilter struct {
	Search string // full name, email, phone or job title
}

// ProfilePatch fields left nil are unchanged. An empty string clears a nullable column.
type ProfilePatch struct {
	FullName           *string
	Email              *string
	PhoneNumber        *string
	LinkedinProfile    *string
	GithubProfile      *string
	InstagramProfile   *string
	TiktokProfile      *string
	XProfile           *string
	ProfilePictureURL  *string
	Bio                *string
	YearsOfExperience  *int
	CurrentJobTitle    *string
	PreferredTechStack *string
	Certifications     *string
	ResumeURL          *string
}

// ProfileDependents counts rows that block a hard delete.
type ProfileDependents struct {
	Educations  int64 `json:"educations"`
	Experiences int64 `json:"experiences"`
	Skills      int64 `json:"skills"`
	Projects    int64 `json:"projects"`
}

func (d ProfileDependents) Total() int64 {
	return d.Educations + d.Experiences + d.Skills + d.Projects
}

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id int64) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context, filter ProfileFilter, page PageRequest) ([]Profile, error)
	Count(ctx context.Context, filter ProfileFilter) (int64, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, p *Profile) error
	CountDependents(ctx context.Context, id int64) (ProfileDependents, error)
	// Delete fails with ErrHasDependents if any dependent row appeared meanwhile.
	Delete(ctx context.Context, id int64) error
}

type ProfileUsecase interface {
	List(ctx context.Context, filter ProfileFilter, page PageRequest) ([]Profile, Pagination, error)
	Search(ctx context.Context, query string, page PageRequest) ([]Profile, Pagination, error)
	Get(ctx context.Context, id int64) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// Create and Update store image first when given and roll it back on failure.
	Create(ctx context.Context, p *Profile, image *ImageUpload) error
	Update(ctx context.Context, id int64, patch ProfilePatch, image *ImageUpload) (*Profile, error)
	Delete(ctx context.Context, id int64) error
	Export(ctx context.Context, filter ProfileFilter, w io.Writer) error
}
