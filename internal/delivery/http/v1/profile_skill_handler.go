package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ProfileSkillHandler struct {
	profileSkillUC domain.ProfileSkillUsecase
}

func NewProfileSkillHandler(public *gin.RouterGroup, admin *gin.RouterGroup, profileSkillUC domain.ProfileSkillUsecase) {
	handler := &ProfileSkillHandler{profileSkillUC: profileSkillUC}

	publicSkills := public.Group("/profile-skills")
	{
		publicSkills.GET("", handler.List)
		publicSkills.GET("/details", handler.List)
		publicSkills.GET("/profile/:profileId", handler.ListByProfile)
		publicSkills.GET("/category/:categoryId", handler.ListByCategory)
		publicSkills.GET("/:id", handler.Get)
	}

	adminSkills := admin.Group("/profile-skills")
	{
		adminSkills.POST("", handler.Create)
		adminSkills.PUT("/:id", handler.Update)
		adminSkills.DELETE("/:id", handler.Delete)
		adminSkills.PATCH("/:id/toggle-status", handler.ToggleStatus)
		adminSkills.PATCH("/:id/restore", handler.Restore)
	}
}

type CreateProfileSkillRequest struct {
	ProfileID  int64 `json:"profile_id" binding:"required,gt=0"`
	CategoryID int64 `json:"category_id" binding:"required,gt=0"`
	SkillID    int64 `json:"skill_id" binding:"required,gt=0"`
	Percent    int   `json:"percent" binding:"required,gte=1,lte=100"`
	IsActive   *bool `json:"is_active"`
}

type UpdateProfileSkillRequest struct {
	CategoryID *int64 `json:"category_id" binding:"omitempty,gt=0"`
	SkillID    *int64 `json:"skill_id" binding:"omitempty,gt=0"`
	Percent    *int   `json:"percent" binding:"omitempty,gte=1,lte=100"`
	IsActive   *bool  `json:"is_active"`
}

// ListProfileSkills godoc
// @Summary      List profile skills
// @Tags         profile-skills
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 1000)"
// @Param        offset            query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        profile_id        query     int     false  "Profile ID"
// @Param        category_id       query     int     false  "Category ID"
// @Param        skill_id          query     int     false  "Skill ID"
// @Param        skill_ids         query     string  false  "Comma separated skill IDs"
// @Param        min_percent       query     int     false  "Minimum percent"
// @Param        include_inactive  query     bool    false  "Include inactive rows"
// @Param        search            query     string  false  "Profile, category or skill name contains"
// @Success      200               {object}  response.Response
// @Router       /profile-skills [get]
func (h *ProfileSkillHandler) List(c *gin.Context) {
	profileID, ok := queryInt64(c, "profile_id")
	if !ok {
		return
	}
	categoryID, ok := queryInt64(c, "category_id")
	if !ok {
		return
	}
	skillID, ok := queryInt64(c, "skill_id")
	if !ok {
		return
	}
	skillIDs, ok := queryInt64List(c, "skill_ids")
	if !ok {
		return
	}
	minPercent, ok := queryInt(c, "min_percent")
	if !ok {
		return
	}

	filter := domain.ProfileSkillFilter{
		ProfileID:       profileID,
		CategoryID:      categoryID,
		SkillID:         skillID,
		SkillIDs:        skillIDs,
		MinPercent:      minPercent,
		IncludeInactive: queryBool(c, "include_inactive"),
		Search:          c.Query("search"),
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	skills, pagination, err := h.profileSkillUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "profile_skills", skills, pagination)
}

// ListProfileSkillsByProfile godoc
// @Summary      Skills of one profile
// @Description  grouped=true nests the skills under their categories
// @Tags         profile-skills
// @Produce      json
// @Param        profileId         path      int   true   "Profile ID"
// @Param        grouped           query     bool  false  "Group by category"
// @Param        include_inactive  query     bool  false  "Include inactive rows"
// @Success      200               {object}  response.Response
// @Failure      404               {object}  response.Response
// @Router       /profile-skills/profile/{profileId} [get]
func (h *ProfileSkillHandler) ListByProfile(c *gin.Context) {
	profileID, ok := parseID(c, "profileId")
	if !ok {
		return
	}
	includeInactive := queryBool(c, "include_inactive")

	if queryBool(c, "grouped") {
		groups, err := h.profileSkillUC.ListByProfileGrouped(c.Request.Context(), profileID, includeInactive)
		if err != nil {
			c.Error(err)
			return
		}
		response.Success(c, http.StatusOK, "", gin.H{"categories": groups})
		return
	}

	skills, err := h.profileSkillUC.ListByProfile(c.Request.Context(), profileID, includeInactive)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"profile_skills": skills})
}

// ListProfileSkillsByCategory godoc
// @Summary      Profile skills in one category
// @Tags         profile-skills
// @Produce      json
// @Param        categoryId  path      int  true   "Category ID"
// @Param        page        query     int  false  "Page number"
// @Param        limit       query     int  false  "Page size"
// @Param        offset      query     int  false  "Row offset when page is absent (multiple of limit)"
// @Success      200         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /profile-skills/category/{categoryId} [get]
func (h *ProfileSkillHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	skills, pagination, err := h.profileSkillUC.ListByCategory(c.Request.Context(), categoryID, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "profile_skills", skills, pagination)
}

// GetProfileSkill godoc
// @Summary      Get profile skill
// @Tags         profile-skills
// @Produce      json
// @Param        id   path      int  true  "Profile skill ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-skills/{id} [get]
func (h *ProfileSkillHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ps, err := h.profileSkillUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"profile_skill": ps})
}

// CreateProfileSkill godoc
// @Summary      Create profile skill
// @Tags         profile-skills
// @Accept       json
// @Produce      json
// @Param        profile_skill  body      CreateProfileSkillRequest  true  "Profile skill"
// @Success      201            {object}  response.Response
// @Failure      400            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /profile-skills [post]
// @Security     BearerAuth
func (h *ProfileSkillHandler) Create(c *gin.Context) {
	var req CreateProfileSkillRequest
	if !bindJSON(c, &req) {
		return
	}
	ps := &domain.ProfileSkill{
		ProfileID:  req.ProfileID,
		CategoryID: req.CategoryID,
		SkillID:    req.SkillID,
		Percent:    req.Percent,
	}
	if err := h.profileSkillUC.Create(c.Request.Context(), currentActor(c), ps); err != nil {
		c.Error(err)
		return
	}
	if req.IsActive != nil && !*req.IsActive {
		toggled, err := h.profileSkillUC.ToggleStatus(c.Request.Context(), currentActor(c), ps.ID)
		if err != nil {
			c.Error(err)
			return
		}
		ps = toggled
	}
	response.Success(c, http.StatusCreated, "Profile skill created successfully", gin.H{"profile_skill": ps})
}

// UpdateProfileSkill godoc
// @Summary      Update profile skill
// @Tags         profile-skills
// @Accept       json
// @Produce      json
// @Param        id             path      int                        true  "Profile skill ID"
// @Param        profile_skill  body      UpdateProfileSkillRequest  true  "Fields to change"
// @Success      200            {object}  response.Response
// @Failure      400            {object}  response.Response
// @Failure      404            {object}  response.Response
// @Router       /profile-skills/{id} [put]
// @Security     BearerAuth
func (h *ProfileSkillHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateProfileSkillRequest
	if !bindJSON(c, &req) {
		return
	}
	ps, err := h.profileSkillUC.Update(c.Request.Context(), currentActor(c), id, domain.ProfileSkillPatch{
		CategoryID: req.CategoryID,
		SkillID:    req.SkillID,
		Percent:    req.Percent,
		IsActive:   req.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile skill updated successfully", gin.H{"profile_skill": ps})
}

// DeleteProfileSkill godoc
// @Summary      Soft-delete profile skill
// @Tags         profile-skills
// @Produce      json
// @Param        id   path      int  true  "Profile skill ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /profile-skills/{id} [delete]
// @Security     BearerAuth
func (h *ProfileSkillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.profileSkillUC.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile skill deleted successfully", nil)
}

// ToggleProfileSkillStatus godoc
// @Summary      Toggle profile skill active flag
// @Tags         profile-skills
// @Produce      json
// @Param        id   path      int  true  "Profile skill ID"
// @Success      200  {object}  response.Response
// @Router       /profile-skills/{id}/toggle-status [patch]
// @Security     BearerAuth
func (h *ProfileSkillHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ps, err := h.profileSkillUC.ToggleStatus(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile skill status updated successfully", gin.H{"profile_skill": ps})
}

// RestoreProfileSkill godoc
// @Summary      Restore a deleted profile skill
// @Tags         profile-skills
// @Produce      json
// @Param        id   path      int  true  "Profile skill ID"
// @Success      200  {object}  response.Response
// @Router       /profile-skills/{id}/restore [patch]
// @Security     BearerAuth
func (h *ProfileSkillHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ps, err := h.profileSkillUC.Restore(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile skill restored successfully", gin.H{"profile_skill": ps})
}
