package v1

import (
	"bytes"
	"net/http"
	"time"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// ProfileImageField is the multipart field carrying a profile picture.
const ProfileImageField = "profileImage"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ProfileHandler struct {
	profileUC      domain.ProfileUsecase
	maxUploadBytes int64
}

// NewProfileHandler registers the profile routes. uploadGuard runs in front
// of the multipart routes, after authentication.
func NewProfileHandler(public *gin.RouterGroup, admin *gin.RouterGroup, profileUC domain.ProfileUsecase, maxUploadBytes int64, uploadGuard gin.HandlerFunc) {
	handler := &ProfileHandler{profileUC: profileUC, maxUploadBytes: maxUploadBytes}

	publicProfiles := public.Group("/profiles")
	{
		publicProfiles.GET("", handler.List)
		publicProfiles.GET("/search", handler.Search)
		publicProfiles.GET("/email/:email", handler.GetByEmail)
		publicProfiles.GET("/:id", handler.Get)
		publicProfiles.GET("/:id/public", handler.GetPublic)
		publicProfiles.GET("/:id/contact", handler.GetContact)
	}

	adminProfiles := admin.Group("/profiles")
	{
		adminProfiles.GET("/export", handler.Export)
		adminProfiles.POST("", handler.Create)
		adminProfiles.POST("/with-image", uploadGuard, handler.CreateWithImage)
		adminProfiles.PUT("/:id", handler.Update)
		adminProfiles.PUT("/:id/with-image", uploadGuard, handler.UpdateWithImage)
		adminProfiles.DELETE("/:id", handler.Delete)
	}
}

type CreateProfileRequest struct {
	FullName           string  `json:"full_name" form:"full_name" binding:"required,min=2,max=100,valid_name"`
	Email              string  `json:"email" form:"email" binding:"required,email,max=100"`
	PhoneNumber        *string `json:"phone_number" form:"phone_number" binding:"omitempty,valid_phone"`
	LinkedinProfile    *string `json:"linkedin_profile" form:"linkedin_profile" binding:"omitempty,max=255"`
	GithubProfile      *string `json:"github_profile" form:"github_profile" binding:"omitempty,max=255"`
	InstagramProfile   *string `json:"instagram_profile" form:"instagram_profile" binding:"omitempty,max=255"`
	TiktokProfile      *string `json:"tiktok_profile" form:"tiktok_profile" binding:"omitempty,max=255"`
	XProfile           *string `json:"x_profile" form:"x_profile" binding:"omitempty,max=255"`
	ProfilePictureURL  *string `json:"profile_picture_url" form:"profile_picture_url" binding:"omitempty,max=255"`
	Bio                *string `json:"bio" form:"bio" binding:"omitempty,max=2000"`
	YearsOfExperience  *int    `json:"years_of_experience" form:"years_of_experience" binding:"omitempty,gte=0,lte=70"`
	CurrentJobTitle    *string `json:"current_job_title" form:"current_job_title" binding:"omitempty,max=100"`
	PreferredTechStack *string `json:"preferred_tech_stack" form:"preferred_tech_stack" binding:"omitempty,max=500"`
	Certifications     *string `json:"certifications" form:"certifications" binding:"omitempty,max=2000"`
	ResumeURL          *string `json:"resume_url" form:"resume_url" binding:"omitempty,max=255"`
}

// UpdateProfileRequest changes only the fields present. An empty string clears a nullable field.
type UpdateProfileRequest struct {
	FullName           *string `json:"full_name" form:"full_name" binding:"omitempty,min=2,max=100,valid_name"`
	Email              *string `json:"email" form:"email" binding:"omitempty,email,max=100"`
	PhoneNumber        *string `json:"phone_number" form:"phone_number" binding:"omitempty,max=20"`
	LinkedinProfile    *string `json:"linkedin_profile" form:"linkedin_profile" binding:"omitempty,max=255"`
	GithubProfile      *string `json:"github_profile" form:"github_profile" binding:"omitempty,max=255"`
	InstagramProfile   *string `json:"instagram_profile" form:"instagram_profile" binding:"omitempty,max=255"`
	TiktokProfile      *string `json:"tiktok_profile" form:"tiktok_profile" binding:"omitempty,max=255"`
	XProfile           *string `json:"x_profile" form:"x_profile" binding:"omitempty,max=255"`
	ProfilePictureURL  *string `json:"profile_picture_url" form:"profile_picture_url" binding:"omitempty,max=255"`
	Bio                *string `json:"bio" form:"bio" binding:"omitempty,max=2000"`
	YearsOfExperience  *int    `json:"years_of_experience" form:"years_of_experience" binding:"omitempty,gte=0,lte=70"`
	CurrentJobTitle    *string `json:"current_job_title" form:"current_job_title" binding:"omitempty,max=100"`
	PreferredTechStack *string `json:"preferred_tech_stack" form:"preferred_tech_stack" binding:"omitempty,max=500"`
	Certifications     *string `json:"certifications" form:"certifications" binding:"omitempty,max=2000"`
	ResumeURL          *string `json:"resume_url" form:"resume_url" binding:"omitempty,max=255"`
}

func (r *CreateProfileRequest) toProfile() *domain.Profile {
	return &domain.Profile{
		FullName:           r.FullName,
		Email:              r.Email,
		PhoneNumber:        r.PhoneNumber,
		LinkedinProfile:    r.LinkedinProfile,
		GithubProfile:      r.GithubProfile,
		InstagramProfile:   r.InstagramProfile,
		TiktokProfile:      r.TiktokProfile,
		XProfile:           r.XProfile,
		ProfilePictureURL:  r.ProfilePictureURL,
		Bio:                r.Bio,
		YearsOfExperience:  r.YearsOfExperience,
		CurrentJobTitle:    r.CurrentJobTitle,
		PreferredTechStack: r.PreferredTechStack,
		Certifications:     r.Certifications,
		ResumeURL:          r.ResumeURL,
	}
}

func (r *UpdateProfileRequest) toPatch() domain.ProfilePatch {
	return domain.ProfilePatch{
		FullName:           r.FullName,
		Email:              r.Email,
		PhoneNumber:        r.PhoneNumber,
		LinkedinProfile:    r.LinkedinProfile,
		GithubProfile:      r.GithubProfile,
		InstagramProfile:   r.InstagramProfile,
		TiktokProfile:      r.TiktokProfile,
		XProfile:           r.XProfile,
		ProfilePictureURL:  r.ProfilePictureURL,
		Bio:                r.Bio,
		YearsOfExperience:  r.YearsOfExperience,
		CurrentJobTitle:    r.CurrentJobTitle,
		PreferredTechStack: r.PreferredTechStack,
		Certifications:     r.Certifications,
		ResumeURL:          r.ResumeURL,
	}
}

// ListProfiles godoc
// @Summary      List profiles
// @Tags         profiles
// @Produce      json
// @Param        page    query     int     false  "Page number"
// @Param        limit   query     int     false  "Page size (max 1000)"
// @Param        offset  query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        search  query     string  false  "Name, email, phone or job title contains"
// @Success      200     {object}  response.Response
// @Router       /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	profiles, pagination, err := h.profileUC.List(c.Request.Context(), domain.ProfileFilter{Search: c.Query("search")}, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "profiles", profiles, pagination)
}

// SearchProfiles godoc
// @Summary      Search profiles
// @Tags         profiles
// @Produce      json
// @Param        q      query     string  true   "Search term"
// @Param        page   query     int     false  "Page number"
// @Param        limit  query     int     false  "Page size"
// @Param        offset query     int     false  "Row offset when page is absent (multiple of limit)"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /profiles/search [get]
func (h *ProfileHandler) Search(c *gin.Context) {
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	profiles, pagination, err := h.profileUC.Search(c.Request.Context(), c.Query("q"), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "profiles", profiles, pagination)
}

func (h *ProfileHandler) load(c *gin.Context) (*domain.Profile, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	profile, err := h.profileUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return nil, false
	}
	return profile, true
}

// GetProfile godoc
// @Summary      Get profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"profile": profile})
}

// GetPublicProfile godoc
// @Summary      Portfolio view of a profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id}/public [get]
func (h *ProfileHandler) GetPublic(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"profile": profile.Public()})
}

// GetProfileContact godoc
// @Summary      Contact details of a profile
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id}/contact [get]
func (h *ProfileHandler) GetContact(c *gin.Context) {
	profile, ok := h.load(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"contact": profile.Contact()})
}

// GetProfileByEmail godoc
// @Summary      Get profile by email
// @Tags         profiles
// @Produce      json
// @Param        email  path      string  true  "Email"
// @Success      200    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /profiles/email/{email} [get]
func (h *ProfileHandler) GetByEmail(c *gin.Context) {
	profile, err := h.profileUC.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"profile": profile})
}

// ExportProfiles godoc
// @Summary      Export profiles as XLSX
// @Tags         profiles
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search  query     string  false  "Name, email, phone or job title contains"
// @Success      200     {file}    file
// @Router       /profiles/export [get]
// @Security     BearerAuth
func (h *ProfileHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.profileUC.Export(c.Request.Context(), domain.ProfileFilter{Search: c.Query("search")}, &buf); err != nil {
		c.Error(err)
		return
	}
	filename := "profiles-" + time.Now().Format("20060102-150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// CreateProfile godoc
// @Summary      Create profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        profile  body      CreateProfileRequest  true  "Profile"
// @Success      201      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /profiles [post]
// @Security     BearerAuth
func (h *ProfileHandler) Create(c *gin.Context) {
	var req CreateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile := req.toProfile()
	if err := h.profileUC.Create(c.Request.Context(), profile, nil); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile created successfully", gin.H{"profile": profile})
}

// CreateProfileWithImage godoc
// @Summary      Create profile with picture
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        full_name     formData  string  true   "Full name"
// @Param        email         formData  string  true   "Email"
// @Param        profileImage  formData  file    false  "Profile picture"
// @Success      201           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Router       /profiles/with-image [post]
// @Security     BearerAuth
func (h *ProfileHandler) CreateWithImage(c *gin.Context) {
	var req CreateProfileRequest
	if !bindForm(c, &req) {
		return
	}
	image, err := readUpload(c, ProfileImageField, h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	profile := req.toProfile()
	if err := h.profileUC.Create(c.Request.Context(), profile, image); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile created successfully", gin.H{"profile": profile})
}

// UpdateProfile godoc
// @Summary      Update profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Profile ID"
// @Param        profile  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /profiles/{id} [put]
// @Security     BearerAuth
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	profile, err := h.profileUC.Update(c.Request.Context(), id, req.toPatch(), nil)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"profile": profile})
}

// UpdateProfileWithImage godoc
// @Summary      Update profile with a new picture
// @Tags         profiles
// @Accept       multipart/form-data
// @Produce      json
// @Param        id            path      int   true   "Profile ID"
// @Param        profileImage  formData  file  false  "Profile picture"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      404           {object}  response.Response
// @Router       /profiles/{id}/with-image [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateWithImage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindForm(c, &req) {
		return
	}
	image, err := readUpload(c, ProfileImageField, h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	profile, err := h.profileUC.Update(c.Request.Context(), id, req.toPatch(), image)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"profile": profile})
}

// DeleteProfile godoc
// @Summary      Delete profile
// @Description  Refused while educations, experiences, skills or projects reference it
// @Tags         profiles
// @Produce      json
// @Param        id   path      int  true  "Profile ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profiles/{id} [delete]
// @Security     BearerAuth
func (h *ProfileHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.profileUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile deleted successfully", nil)
}
