package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"
	"portfolio-cms-backend/pkg/logger"
)

const (
	profileNotFoundMsg      = "Profile not found"
	profileHasDependentsMsg = "Cannot delete profile that has associated records"
)

type profileUsecase struct {
	profileRepo domain.ProfileRepository
	uploads     domain.UploadUsecase
}

func NewProfileUsecase(profileRepo domain.ProfileRepository, uploads domain.UploadUsecase) domain.ProfileUsecase {
	return &profileUsecase{profileRepo: profileRepo, uploads: uploads}
}

func (u *profileUsecase) List(ctx context.Context, filter domain.ProfileFilter, page domain.PageRequest) ([]domain.Profile, domain.Pagination, error) {
	return paginate(ctx, page,
		func(ctx context.Context) ([]domain.Profile, error) { return u.profileRepo.List(ctx, filter, page) },
		func(ctx context.Context) (int64, error) { return u.profileRepo.Count(ctx, filter) },
	)
}

func (u *profileUsecase) Search(ctx context.Context, query string, page domain.PageRequest) ([]domain.Profile, domain.Pagination, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Pagination{}, apperror.BadRequest("Search query is required")
	}
	return u.List(ctx, domain.ProfileFilter{Search: query}, page)
}

func (u *profileUsecase) Get(ctx context.Context, id int64) (*domain.Profile, error) {
	p, err := u.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, profileNotFoundMsg)
	}
	return p, nil
}

func (u *profileUsecase) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	p, err := u.profileRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFoundAs(err, profileNotFoundMsg)
	}
	return p, nil
}

// storeImage saves img and returns a cleanup that removes it again.
func (u *profileUsecase) storeImage(ctx context.Context, img *domain.ImageUpload) (*domain.StoredImage, func(), error) {
	if img == nil {
		return nil, func() {}, nil
	}
	stored, err := u.uploads.StoreProfileImage(ctx, *img)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		u.removeImage(context.WithoutCancel(ctx), stored.Filename)
	}
	return stored, cleanup, nil
}

// removeImage deletes a stored picture. Missing files are ignored.
func (u *profileUsecase) removeImage(ctx context.Context, ref string) {
	name := path.Base(ref)
	if name == "" || name == "." || name == "/" {
		return
	}
	if err := u.uploads.DeleteProfileImage(ctx, name); err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
		logger.Log.Warn("failed to delete profile image", "filename", name, "error", err)
	}
}

func normalizeProfile(p *domain.Profile) {
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = normalizeEmail(p.Email)
	for _, f := range []**string{
		&p.PhoneNumber, &p.LinkedinProfile, &p.GithubProfile, &p.InstagramProfile, &p.TiktokProfile,
		&p.XProfile, &p.Bio, &p.CurrentJobTitle, &p.PreferredTechStack, &p.Certifications, &p.ResumeURL,
	} {
		*f = trimNullable(*f)
	}
}

func (u *profileUsecase) Create(ctx context.Context, p *domain.Profile, image *domain.ImageUpload) error {
	stored, cleanup, err := u.storeImage(ctx, image)
	if err != nil {
		return err
	}

	normalizeProfile(p)
	if stored != nil {
		p.ProfilePictureURL = &stored.Filename
	}

	exists, err := u.profileRepo.EmailExists(ctx, p.Email, 0)
	if err != nil {
		cleanup()
		return wrap(err)
	}
	if exists {
		cleanup()
		return apperror.Conflict("Profile with this email already exists")
	}
	if err := u.profileRepo.Create(ctx, p); err != nil {
		cleanup()
		return wrap(err)
	}
	return nil
}

func (u *profileUsecase) Update(ctx context.Context, id int64, patch domain.ProfilePatch, image *domain.ImageUpload) (*domain.Profile, error) {
	stored, cleanup, err := u.storeImage(ctx, image)
	if err != nil {
		return nil, err
	}

	p, err := u.Get(ctx, id)
	if err != nil {
		cleanup()
		return nil, err
	}
	oldPicture := p.ProfilePictureURL

	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email != strings.ToLower(p.Email) {
			exists, err := u.profileRepo.EmailExists(ctx, email, id)
			if err != nil {
				cleanup()
				return nil, wrap(err)
			}
			if exists {
				cleanup()
				return nil, apperror.Conflict("Email already in use")
			}
		}
		p.Email = email
	}
	setString(&p.FullName, patch.FullName)
	setNullable(&p.PhoneNumber, patch.PhoneNumber)
	setNullable(&p.LinkedinProfile, patch.LinkedinProfile)
	setNullable(&p.GithubProfile, patch.GithubProfile)
	setNullable(&p.InstagramProfile, patch.InstagramProfile)
	setNullable(&p.TiktokProfile, patch.TiktokProfile)
	setNullable(&p.XProfile, patch.XProfile)
	setNullable(&p.ProfilePictureURL, patch.ProfilePictureURL)
	setNullable(&p.Bio, patch.Bio)
	setPointer(&p.YearsOfExperience, patch.YearsOfExperience)
	setNullable(&p.CurrentJobTitle, patch.CurrentJobTitle)
	setNullable(&p.PreferredTechStack, patch.PreferredTechStack)
	setNullable(&p.Certifications, patch.Certifications)
	setNullable(&p.ResumeURL, patch.ResumeURL)
	if stored != nil {
		p.ProfilePictureURL = &stored.Filename
	}

	if err := u.profileRepo.Update(ctx, p); err != nil {
		cleanup()
		return nil, notFoundAs(err, profileNotFoundMsg)
	}

	if stored != nil && oldPicture != nil && *oldPicture != stored.Filename {
		u.removeImage(context.WithoutCancel(ctx), *oldPicture)
	}
	return p, nil
}

func (u *profileUsecase) Delete(ctx context.Context, id int64) error {
	p, err := u.Get(ctx, id)
	if err != nil {
		return err
	}
	deps, err := u.profileRepo.CountDependents(ctx, id)
	if err != nil {
		return wrap(err)
	}
	if deps.Total() > 0 {
		return apperror.BadRequest(profileHasDependentsMsg)
	}
	if err := u.profileRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrHasDependents) {
			return apperror.BadRequest(profileHasDependentsMsg)
		}
		return notFoundAs(err, profileNotFoundMsg)
	}
	if p.ProfilePictureURL != nil {
		u.removeImage(context.WithoutCancel(ctx), *p.ProfilePictureURL)
	}
	return nil
}

var profileExportColumns = []struct {
	header string
	value  func(p *domain.Profile) any
}{
	{"ID", func(p *domain.Profile) any { return p.ID }},
	{"FULL NAME", func(p *domain.Profile) any { return p.FullName }},
	{"EMAIL", func(p *domain.Profile) any { return p.Email }},
	{"PHONE NUMBER", func(p *domain.Profile) any { return deref(p.PhoneNumber) }},
	{"CURRENT JOB TITLE", func(p *domain.Profile) any { return deref(p.CurrentJobTitle) }},
	{"YEARS OF EXPERIENCE", func(p *domain.Profile) any {
		if p.YearsOfExperience == nil {
			return ""
		}
		return *p.YearsOfExperience
	}},
	{"PREFERRED TECH STACK", func(p *domain.Profile) any { return deref(p.PreferredTechStack) }},
	{"CERTIFICATIONS", func(p *domain.Profile) any { return deref(p.Certifications) }},
	{"LINKEDIN", func(p *domain.Profile) any { return deref(p.LinkedinProfile) }},
	{"GITHUB", func(p *domain.Profile) any { return deref(p.GithubProfile) }},
	{"RESUME URL", func(p *domain.Profile) any { return deref(p.ResumeURL) }},
	{"CREATED AT", func(p *domain.Profile) any { return p.CreatedAt.Format("2006-01-02 15:04:05") }},
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Export writes every profile matching filter to w as an XLSX workbook.
func (u *profileUsecase) Export(ctx context.Context, filter domain.ProfileFilter, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Profiles"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return apperror.Internal(err)
	}

	for i, col := range profileExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(profileExportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	row := 2
	for pageNo := 1; ; pageNo++ {
		page := domain.NewPageRequest(pageNo, domain.MaxPageLimit)
		profiles, err := u.profileRepo.List(ctx, filter, page)
		if err != nil {
			return wrap(err)
		}
		for i := range profiles {
			for colIdx, col := range profileExportColumns {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, row)
				f.SetCellValue(sheetName, cell, col.value(&profiles[i]))
			}
			row++
		}
		if len(profiles) < page.Limit {
			break
		}
	}

	for i := range profileExportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	if err := f.Write(w); err != nil {
		return apperror.Internal(fmt.Errorf("failed to write Excel file: %w", err))
	}
	return nil
}
