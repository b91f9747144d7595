package v1

import (
	"net/http"
	"strconv"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type EducationHandler struct {
	educationUC domain.EducationUsecase
}

func NewEducationHandler(public *gin.RouterGroup, admin *gin.RouterGroup, educationUC domain.EducationUsecase) {
	handler := &EducationHandler{educationUC: educationUC}

	publicEducations := public.Group("/profile-educations")
	{
		publicEducations.GET("", handler.List)
		publicEducations.GET("/details", handler.List)
		publicEducations.GET("/profile/:profileId", handler.ListByProfile)
		publicEducations.GET("/:id", handler.Get)
	}

	adminEducations := admin.Group("/profile-educations")
	{
		adminEducations.GET("/statistics", handler.Statistics)
		adminEducations.GET("/top-institutions", handler.TopInstitutions)
		adminEducations.POST("", handler.Create)
		adminEducations.PUT("/:id", handler.Update)
		adminEducations.DELETE("/:id", handler.Delete)
	}
}

type CreateEducationRequest struct {
	ProfileID       int64    `json:"profile_id" binding:"required,gt=0"`
	Degree          string   `json:"degree" binding:"required,min=2,max=100"`
	Major           string   `json:"major" binding:"required,min=2,max=100"`
	InstitutionName string   `json:"institution_name" binding:"required,min=2,max=150"`
	Location        *string  `json:"location" binding:"omitempty,max=150"`
	StartYear       *int     `json:"start_year" binding:"omitempty,gte=1900,max_current_year"`
	GraduationYear  *int     `json:"graduation_year" binding:"omitempty,gte=1900,lte=2100"`
	GPA             *float64 `json:"gpa" binding:"omitempty,gte=0,lte=4"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
}

type UpdateEducationRequest struct {
	ProfileID       *int64   `json:"profile_id" binding:"omitempty,gt=0"`
	Degree          *string  `json:"degree" binding:"omitempty,min=2,max=100"`
	Major           *string  `json:"major" binding:"omitempty,min=2,max=100"`
	InstitutionName *string  `json:"institution_name" binding:"omitempty,min=2,max=150"`
	Location        *string  `json:"location" binding:"omitempty,max=150"`
	StartYear       *int     `json:"start_year" binding:"omitempty,gte=1900,max_current_year"`
	GraduationYear  *int     `json:"graduation_year" binding:"omitempty,gte=1900,lte=2100"`
	GPA             *float64 `json:"gpa" binding:"omitempty,gte=0,lte=4"`
	Description     *string  `json:"description" binding:"omitempty,max=2000"`
}

// ListEducations godoc
// @Summary      List profile educations
// @Tags         profile-educations
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 1000)"
// @Param        offset            query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        profile_id        query     int     false  "Profile ID"
// @Param        search            query     string  false  "Profile, degree, major, institution or location contains"
// @Param        degree            query     string  false  "Degree contains"
// @Param        major             query     string  false  "Major contains"
// @Param        institution_name  query     string  false  "Institution contains"
// @Param        graduation_year   query     int     false  "Graduation year"
// @Param        min_gpa           query     number  false  "Minimum GPA"
// @Param        max_gpa           query     number  false  "Maximum GPA"
// @Success      200               {object}  response.Response
// @Router       /profile-educations [get]
func (h *EducationHandler) List(c *gin.Context) {
	profileID, ok := queryInt64(c, "profile_id")
	if !ok {
		return
	}
	gradYear, ok := queryInt(c, "graduation_year")
	if !ok {
		return
	}
	minGPA, ok := queryFloat(c, "min_gpa")
	if !ok {
		return
	}
	maxGPA, ok := queryFloat(c, "max_gpa")
	if !ok {
		return
	}

	filter := domain.EducationFilter{
		ProfileID:       profileID,
		Search:          c.Query("search"),
		Degree:          c.Query("degree"),
		Major:           c.Query("major"),
		InstitutionName: c.Query("institution_name"),
		GraduationYear:  gradYear,
		MinGPA:          minGPA,
		MaxGPA:          maxGPA,
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	educations, pagination, err := h.educationUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "educations", educations, pagination)
}

// ListEducationsByProfile godoc
// @Summary      Educations of one profile
// @Tags         profile-educations
// @Produce      json
// @Param        profileId  path      int  true   "Profile ID"
// @Param        page       query     int  false  "Page number"
// @Param        limit      query     int  false  "Page size"
// @Param        offset     query     int  false  "Row offset when page is absent (multiple of limit)"
// @Success      200        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile-educations/profile/{profileId} [get]
func (h *EducationHandler) ListByProfile(c *gin.Context) {
	profileID, ok := parseID(c, "profileId")
	if !ok {
		return
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	educations, pagination, err := h.educationUC.ListByProfile(c.Request.Context(), profileID, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "educations", educations, pagination)
}

// GetEducation godoc
// @Summary      Get profile education
// @Tags         profile-educations
// @Produce      json
// @Param        id   path      int  true  "Education ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-educations/{id} [get]
func (h *EducationHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	education, err := h.educationUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"education": education})
}

// EducationStatistics godoc
// @Summary      Education counters and GPA aggregates
// @Tags         profile-educations
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /profile-educations/statistics [get]
// @Security     BearerAuth
func (h *EducationHandler) Statistics(c *gin.Context) {
	stats, err := h.educationUC.Statistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"statistics": stats})
}

// TopInstitutions godoc
// @Summary      Institutions with the most education records
// @Tags         profile-educations
// @Produce      json
// @Param        limit  query     int  false  "How many (default 10, max 100)"
// @Success      200    {object}  response.Response
// @Router       /profile-educations/top-institutions [get]
// @Security     BearerAuth
func (h *EducationHandler) TopInstitutions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	institutions, err := h.educationUC.TopInstitutions(c.Request.Context(), limit)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"institutions": institutions})
}

// CreateEducation godoc
// @Summary      Create profile education
// @Tags         profile-educations
// @Accept       json
// @Produce      json
// @Param        education  body      CreateEducationRequest  true  "Education"
// @Success      201        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile-educations [post]
// @Security     BearerAuth
func (h *EducationHandler) Create(c *gin.Context) {
	var req CreateEducationRequest
	if !bindJSON(c, &req) {
		return
	}
	education := &domain.Education{
		ProfileID:       req.ProfileID,
		Degree:          req.Degree,
		Major:           req.Major,
		InstitutionName: req.InstitutionName,
		Location:        req.Location,
		StartYear:       req.StartYear,
		GraduationYear:  req.GraduationYear,
		GPA:             req.GPA,
		Description:     req.Description,
	}
	if err := h.educationUC.Create(c.Request.Context(), education); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Profile education created successfully", gin.H{"education": education})
}

// UpdateEducation godoc
// @Summary      Update profile education
// @Tags         profile-educations
// @Accept       json
// @Produce      json
// @Param        id         path      int                     true  "Education ID"
// @Param        education  body      UpdateEducationRequest  true  "Fields to change"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /profile-educations/{id} [put]
// @Security     BearerAuth
func (h *EducationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateEducationRequest
	if !bindJSON(c, &req) {
		return
	}
	education, err := h.educationUC.Update(c.Request.Context(), id, domain.EducationPatch{
		ProfileID:       req.ProfileID,
		Degree:          req.Degree,
		Major:           req.Major,
		InstitutionName: req.InstitutionName,
		Location:        req.Location,
		StartYear:       req.StartYear,
		GraduationYear:  req.GraduationYear,
		GPA:             req.GPA,
		Description:     req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile education updated successfully", gin.H{"education": education})
}

// DeleteEducation godoc
// @Summary      Delete profile education
// @Tags         profile-educations
// @Produce      json
// @Param        id   path      int  true  "Education ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-educations/{id} [delete]
// @Security     BearerAuth
func (h *EducationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.educationUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile education deleted successfully", nil)
}
