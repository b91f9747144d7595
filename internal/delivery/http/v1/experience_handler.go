package v1

import (
	"net/http"
	"strconv"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ExperienceHandler struct {
	experienceUC domain.ExperienceUsecase
}

func NewExperienceHandler(public *gin.RouterGroup, admin *gin.RouterGroup, experienceUC domain.ExperienceUsecase) {
	handler := &ExperienceHandler{experienceUC: experienceUC}

	publicExperiences := public.Group("/profile-experiences")
	{
		publicExperiences.GET("", handler.List)
		publicExperiences.GET("/details", handler.List)
		publicExperiences.GET("/profile/:profileId", handler.ListByProfile)
		publicExperiences.GET("/profile/:profileId/current", handler.ListCurrentByProfile)
		publicExperiences.GET("/:id", handler.Get)
	}

	adminExperiences := admin.Group("/profile-experiences")
	{
		adminExperiences.GET("/statistics", handler.Statistics)
		adminExperiences.GET("/top-companies", handler.TopCompanies)
		adminExperiences.POST("", handler.Create)
		adminExperiences.PUT("/:id", handler.Update)
		adminExperiences.DELETE("/:id", handler.Delete)
		adminExperiences.PATCH("/:id/toggle-current", handler.ToggleCurrent)
		adminExperiences.PATCH("/:id/restore", handler.Restore)
	}
}

type CreateExperienceRequest struct {
	ProfileID   int64   `json:"profile_id" binding:"required,gt=0"`
	JobTitle    string  `json:"job_title" binding:"required,min=2,max=100"`
	CompanyName string  `json:"company_name" binding:"required,min=2,max=150"`
	Location    *string `json:"location" binding:"omitempty,max=150"`
	StartDate   Date    `json:"start_date" swaggertype:"string" example:"2021-03-01"`
	EndDate     *Date   `json:"end_date" swaggertype:"string" example:"2023-06-30"`
	IsCurrent   bool    `json:"is_current"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// UpdateExperienceRequest: send "end_date": null to clear the end date.
type UpdateExperienceRequest struct {
	ProfileID   *int64       `json:"profile_id" binding:"omitempty,gt=0"`
	JobTitle    *string      `json:"job_title" binding:"omitempty,min=2,max=100"`
	CompanyName *string      `json:"company_name" binding:"omitempty,min=2,max=150"`
	Location    *string      `json:"location" binding:"omitempty,max=150"`
	StartDate   *Date        `json:"start_date" swaggertype:"string"`
	EndDate     NullableDate `json:"end_date" swaggertype:"string"`
	IsCurrent   *bool        `json:"is_current"`
	Description *string      `json:"description" binding:"omitempty,max=2000"`
}

// ListExperiences godoc
// @Summary      List profile experiences
// @Tags         profile-experiences
// @Produce      json
// @Param        page          query     int     false  "Page number"
// @Param        limit         query     int     false  "Page size (max 1000)"
// @Param        offset        query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        profile_id    query     int     false  "Profile ID"
// @Param        is_current    query     bool    false  "Only current (true) or past (false) positions"
// @Param        search        query     string  false  "Profile, job title, company or location contains"
// @Param        job_title     query     string  false  "Job title contains"
// @Param        company_name  query     string  false  "Company contains"
// @Param        location      query     string  false  "Location contains"
// @Success      200           {object}  response.Response
// @Router       /profile-experiences [get]
func (h *ExperienceHandler) List(c *gin.Context) {
	profileID, ok := queryInt64(c, "profile_id")
	if !ok {
		return
	}
	isCurrent, ok := queryOptionalBool(c, "is_current")
	if !ok {
		return
	}
	filter := domain.ExperienceFilter{
		ProfileID:   profileID,
		IsCurrent:   isCurrent,
		Search:      c.Query("search"),
		JobTitle:    c.Query("job_title"),
		CompanyName: c.Query("company_name"),
		Location:    c.Query("location"),
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	experiences, pagination, err := h.experienceUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "experiences", experiences, pagination)
}

func (h *ExperienceHandler) listByProfile(c *gin.Context, currentOnly bool) {
	profileID, ok := parseID(c, "profileId")
	if !ok {
		return
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	experiences, pagination, err := h.experienceUC.ListByProfile(c.Request.Context(), profileID, currentOnly, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "experiences", experiences, pagination)
}

// ListExperiencesByProfile godoc
// @Summary      Experiences of one profile
// @Tags         profile-experiences
// @Produce      json
// @Param        profileId  path      int  true   "Profile ID"
// @Param        page       query     int  false  "Page number"
// @Param        limit      query     int  false  "Page size"
// @Param        offset     query     int  false  "Row offset when page is absent (multiple of limit)"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile-experiences/profile/{profileId} [get]
func (h *ExperienceHandler) ListByProfile(c *gin.Context) {
	h.listByProfile(c, false)
}

// ListCurrentExperiencesByProfile godoc
// @Summary      Current position of one profile
// @Tags         profile-experiences
// @Produce      json
// @Param        profileId  path      int  true  "Profile ID"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile-experiences/profile/{profileId}/current [get]
func (h *ExperienceHandler) ListCurrentByProfile(c *gin.Context) {
	h.listByProfile(c, true)
}

// GetExperience godoc
// @Summary      Get profile experience
// @Tags         profile-experiences
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-experiences/{id} [get]
func (h *ExperienceHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	experience, err := h.experienceUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"experience": experience})
}

// ExperienceStatistics godoc
// @Summary      Experience counters
// @Tags         profile-experiences
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile-experiences/statistics [get]
// @Security     BearerAuth
func (h *ExperienceHandler) Statistics(c *gin.Context) {
	stats, err := h.experienceUC.Statistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"statistics": stats})
}

// TopCompanies godoc
// @Summary      Companies with the most experience records
// @Tags         profile-experiences
// @Produce      json
// @Param        limit  query     int  false  "How many (default 10, max 100)"
// @Success      200    {object}  response.Response
// @Router       /profile-experiences/top-companies [get]
// @Security     BearerAuth
func (h *ExperienceHandler) TopCompanies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	companies, err := h.experienceUC.TopCompanies(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"companies": companies})
}

// CreateExperience godoc
// @Summary      Create profile experience
// @Description  A current position clears is_current on the profile's other experiences
// @Tags         profile-experiences
// @Accept       json
// @Produce      json
// @Param        experience  body      CreateExperienceRequest  true  "Experience"
// @Success      201         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile-experiences [post]
// @Security     BearerAuth
func (h *ExperienceHandler) Create(c *gin.Context) {
	var req CreateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.StartDate.IsZero() {
		c.Error(apperror.Validation("Validation failed", "Start date is required"))
		return
	}

	experience := &domain.Experience{
		ProfileID:   req.ProfileID,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		StartDate:   req.StartDate.Time,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
	}
	if req.EndDate != nil {
		end := req.EndDate.Time
		experience.EndDate = &end
	}
	if err := h.experienceUC.Create(c.Request.Context(), experience); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile experience created successfully", gin.H{"experience": experience})
}

// UpdateExperience godoc
// @Summary      Update profile experience
// @Tags         profile-experiences
// @Accept       json
// @Produce      json
// @Param        id          path      int                      true  "Experience ID"
// @Param        experience  body      UpdateExperienceRequest  true  "Fields to change"
// @Success      200         {object}  response.Response
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile-experiences/{id} [put]
// @Security     BearerAuth
func (h *ExperienceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateExperienceRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := domain.ExperiencePatch{
		ProfileID:   req.ProfileID,
		JobTitle:    req.JobTitle,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		EndDateSet:  req.EndDate.Set,
		EndDate:     req.EndDate.Value,
		IsCurrent:   req.IsCurrent,
		Description: req.Description,
	}
	if req.StartDate != nil {
		start := req.StartDate.Time
		patch.StartDate = &start
	}

	experience, err := h.experienceUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile experience updated successfully", gin.H{"experience": experience})
}

// DeleteExperience godoc
// @Summary      Soft-delete profile experience
// @Tags         profile-experiences
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-experiences/{id} [delete]
// @Security     BearerAuth
func (h *ExperienceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.experienceUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile experience deleted successfully", nil)
}

// RestoreExperience godoc
// @Summary      Restore a deleted profile experience
// @Tags         profile-experiences
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Router       /profile-experiences/{id}/restore [patch]
// @Security     BearerAuth
func (h *ExperienceHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	experience, err := h.experienceUC.Restore(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile experience restored successfully", gin.H{"experience": experience})
}

// ToggleCurrentExperience godoc
// @Summary      Flip the current-position flag
// @Tags         profile-experiences
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Router       /profile-experiences/{id}/toggle-current [patch]
// @Security     BearerAuth
func (h *ExperienceHandler) ToggleCurrent(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	experience, err := h.experienceUC.ToggleCurrent(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile experience current status updated successfully", gin.H{"experience": experience})
}
