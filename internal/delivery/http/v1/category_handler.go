package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(public *gin.RouterGroup, admin *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}

	publicCategories := public.Group("/categories")
	{
		publicCategories.GET("", handler.List)
		publicCategories.GET("/with-skills", handler.ListWithSkills)
		publicCategories.GET("/skills", handler.ListWithSkills)
		publicCategories.GET("/skills/:categoryId", handler.ListWithSkills)
		publicCategories.GET("/:id", handler.Get)
	}

	adminCategories := admin.Group("/categories")
	{
		adminCategories.GET("/statistics", handler.Statistics)
		adminCategories.POST("", handler.Create)
		adminCategories.PUT("/:id", handler.Update)
		adminCategories.DELETE("/:id", handler.Delete)
		adminCategories.PATCH("/:id/toggle-status", handler.ToggleStatus)
		adminCategories.PATCH("/:id/restore", handler.Restore)
	}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100,no_emoji"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=100,no_emoji"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 1000)"
// @Param        offset            query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        search            query     string  false  "Name or description contains"
// @Param        created_by        query     int     false  "Creator user ID"
// @Param        include_inactive  query     bool    false  "Include inactive categories"
// @Success      200               {object}  response.Response
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	createdBy, ok := queryInt64(c, "created_by")
	if !ok {
		return
	}
	filter := domain.CategoryFilter{
		Search:          c.Query("search"),
		CreatedBy:       createdBy,
		IncludeInactive: queryBool(c, "include_inactive"),
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	categories, pagination, err := h.categoryUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "categories", categories, pagination)
}

// GetCategory godoc
// @Summary      Get category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"category": category})
}

// ListCategoriesWithSkills godoc
// @Summary      Categories with their skills
// @Description  Optionally narrowed to one category by path or categoryId query
// @Tags         categories
// @Produce      json
// @Param        categoryId        query     int   false  "Category ID"
// @Param        include_inactive  query     bool  false  "Include inactive rows"
// @Success      200               {object}  response.Response
// @Router       /categories/with-skills [get]
func (h *CategoryHandler) ListWithSkills(c *gin.Context) {
	var categoryID *int64
	if c.Param("categoryId") != "" {
		id, ok := parseID(c, "categoryId")
		if !ok {
			return
		}
		categoryID = &id
	} else {
		id, ok := queryInt64(c, "categoryId")
		if !ok {
			return
		}
		categoryID = id
	}

	categories, err := h.categoryUC.ListWithSkills(c.Request.Context(), categoryID, queryBool(c, "include_inactive"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"categories": categories})
}

// CategoryStatistics godoc
// @Summary      Category counters
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories/statistics [get]
// @Security     BearerAuth
func (h *CategoryHandler) Statistics(c *gin.Context) {
	stats, err := h.categoryUC.Statistics(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"statistics": stats})
}

// CreateCategory godoc
// @Summary      Create category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        category  body      CreateCategoryRequest  true  "Category"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /categories [post]
// @Security     BearerAuth
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category := &domain.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if err := h.categoryUC.Create(c.Request.Context(), currentActor(c), category); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created successfully", gin.H{"category": category})
}

// UpdateCategory godoc
// @Summary      Update category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id        path      int                    true  "Category ID"
// @Param        category  body      UpdateCategoryRequest  true  "Fields to change"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /categories/{id} [put]
// @Security     BearerAuth
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryUC.Update(c.Request.Context(), currentActor(c), id, domain.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category updated successfully", gin.H{"category": category})
}

// DeleteCategory godoc
// @Summary      Soft-delete category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /categories/{id} [delete]
// @Security     BearerAuth
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryUC.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category deleted successfully", nil)
}

// ToggleCategoryStatus godoc
// @Summary      Toggle category active flag
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Router       /categories/{id}/toggle-status [patch]
// @Security     BearerAuth
func (h *CategoryHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryUC.ToggleStatus(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category status updated successfully", gin.H{"category": category})
}

// RestoreCategory godoc
// @Summary      Restore a deleted category
// @Tags         categories
// @Produce      json
// @Param        id   path      int  true  "Category ID"
// @Success      200  {object}  response.Response
// @Router       /categories/{id}/restore [patch]
// @Security     BearerAuth
func (h *CategoryHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryUC.Restore(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Category restored successfully", gin.H{"category": category})
}
