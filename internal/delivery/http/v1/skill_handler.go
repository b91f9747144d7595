package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillUC domain.SkillUsecase
}

func NewSkillHandler(public *gin.RouterGroup, admin *gin.RouterGroup, skillUC domain.SkillUsecase) {
	handler := &SkillHandler{skillUC: skillUC}

	publicSkills := public.Group("/skills")
	{
		publicSkills.GET("", handler.List)
		publicSkills.GET("/category/:categoryId", handler.ListByCategory)
		publicSkills.GET("/:id", handler.Get)
	}

	adminSkills := admin.Group("/skills")
	{
		adminSkills.POST("", handler.Create)
		adminSkills.PUT("/:id", handler.Update)
		adminSkills.DELETE("/:id", handler.Delete)
		adminSkills.PATCH("/:id/toggle-status", handler.ToggleStatus)
		adminSkills.PATCH("/:id/restore", handler.Restore)
	}
}

type CreateSkillRequest struct {
	CategoryID  int64   `json:"category_id" binding:"required,gt=0"`
	Name        string  `json:"name" binding:"required,min=1,max=100,no_emoji"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateSkillRequest struct {
	CategoryID  *int64  `json:"category_id" binding:"omitempty,gt=0"`
	Name        *string `json:"name" binding:"omitempty,min=1,max=100,no_emoji"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Icon        *string `json:"icon" binding:"omitempty,max=255"`
	IsActive    *bool   `json:"is_active"`
}

// ListSkills godoc
// @Summary      List skills
// @Tags         skills
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 1000)"
// @Param        offset            query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        search            query     string  false  "Name or description contains"
// @Param        category_id       query     int     false  "Category ID"
// @Param        include_inactive  query     bool    false  "Include inactive skills"
// @Success      200               {object}  response.Response
// @Router       /skills [get]
func (h *SkillHandler) List(c *gin.Context) {
	categoryID, ok := queryInt64(c, "category_id")
	if !ok {
		return
	}
	filter := domain.SkillFilter{
		Search:          c.Query("search"),
		CategoryID:      categoryID,
		IncludeInactive: queryBool(c, "include_inactive"),
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	skills, pagination, err := h.skillUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "skills", skills, pagination)
}

// ListSkillsByCategory godoc
// @Summary      Skills in one category
// @Tags         skills
// @Produce      json
// @Param        categoryId        path      int   true   "Category ID"
// @Param        page              query     int   false  "Page number"
// @Param        limit             query     int   false  "Page size"
// @Param        offset            query     int   false  "Row offset when page is absent (multiple of limit)"
// @Param        include_inactive  query     bool  false  "Include inactive skills"
// @Success      200               {object}  response.Response
// @Failure      404               {object}  response.Response
// @Router       /skills/category/{categoryId} [get]
func (h *SkillHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "categoryId")
	if !ok {
		return
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	skills, pagination, err := h.skillUC.ListByCategory(c.Request.Context(), categoryID, queryBool(c, "include_inactive"), page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "skills", skills, pagination)
}

// GetSkill godoc
// @Summary      Get skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [get]
func (h *SkillHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	skill, err := h.skillUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"skill": skill})
}

// CreateSkill godoc
// @Summary      Create skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        skill  body      CreateSkillRequest  true  "Skill"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /skills [post]
// @Security     BearerAuth
func (h *SkillHandler) Create(c *gin.Context) {
	var req CreateSkillRequest
	if !bindJSON(c, &req) {
		return
	}
	skill := &domain.Skill{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    true,
	}
	if req.IsActive != nil {
		skill.IsActive = *req.IsActive
	}
	if err := h.skillUC.Create(c.Request.Context(), currentActor(c), skill); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Skill created successfully", gin.H{"skill": skill})
}

// UpdateSkill godoc
// @Summary      Update skill
// @Tags         skills
// @Accept       json
// @Produce      json
// @Param        id     path      int                 true  "Skill ID"
// @Param        skill  body      UpdateSkillRequest  true  "Fields to change"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /skills/{id} [put]
// @Security     BearerAuth
func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateSkillRequest
	if !bindJSON(c, &req) {
		return
	}
	skill, err := h.skillUC.Update(c.Request.Context(), currentActor(c), id, domain.SkillPatch{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		IsActive:    req.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill updated successfully", gin.H{"skill": skill})
}

// DeleteSkill godoc
// @Summary      Soft-delete skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /skills/{id} [delete]
// @Security     BearerAuth
func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.skillUC.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill deleted successfully", nil)
}

// ToggleSkillStatus godoc
// @Summary      Toggle skill active flag
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Router       /skills/{id}/toggle-status [patch]
// @Security     BearerAuth
func (h *SkillHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	skill, err := h.skillUC.ToggleStatus(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill status updated successfully", gin.H{"skill": skill})
}

// RestoreSkill godoc
// @Summary      Restore a deleted skill
// @Tags         skills
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Router       /skills/{id}/restore [patch]
// @Security     BearerAuth
func (h *SkillHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	skill, err := h.skillUC.Restore(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Skill restored successfully", gin.H{"skill": skill})
}
