package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC domain.UserUsecase
}

// NewUserHandler registers the user administration routes; every one is admin-only.
func NewUserHandler(admin *gin.RouterGroup, userUC domain.UserUsecase) {
	handler := &UserHandler{userUC: userUC}

	users := admin.Group("/users")
	{
		users.GET("", handler.List)
		users.GET("/:id", handler.Get)
		users.POST("", handler.Create)
		users.PUT("/:id", handler.Update)
		users.DELETE("/:id", handler.Delete)
		users.PATCH("/:id/toggle-status", handler.ToggleStatus)
		users.PATCH("/:id/restore", handler.Restore)
	}
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100,valid_name"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128,strong_password"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=100,valid_name"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin user"`
	IsActive *bool   `json:"is_active"`
}

// ListUsers godoc
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page              query     int     false  "Page number"
// @Param        limit             query     int     false  "Page size (max 1000)"
// @Param        offset            query     int     false  "Row offset when page is absent (multiple of limit)"
// @Param        search            query     string  false  "Name or email contains"
// @Param        role              query     string  false  "admin or user"
// @Param        include_inactive  query     bool    false  "Include deactivated users"
// @Success      200               {object}  response.Response
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) List(c *gin.Context) {
	filter := domain.UserFilter{
		Search:          c.Query("search"),
		Role:            c.Query("role"),
		IncludeInactive: queryBool(c, "include_inactive"),
	}
	page, ok := pageFromQuery(c)
	if !ok {
		return
	}
	users, pagination, err := h.userUC.List(c.Request.Context(), filter, page)
	if err != nil {
		c.Error(err)
		return
	}
	response.List(c, "users", domain.UsersPublic(users), pagination)
}

// GetUser godoc
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [get]
// @Security     BearerAuth
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": user.Public()})
}

// CreateUser godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        user  body      CreateUserRequest  true  "User"
// @Success      201   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Router       /users [post]
// @Security     BearerAuth
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userUC.Create(c.Request.Context(), domain.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "User created successfully", gin.H{"user": user.Public()})
}

// UpdateUser godoc
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "User ID"
// @Param        user  body      UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /users/{id} [put]
// @Security     BearerAuth
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userUC.Update(c.Request.Context(), currentActor(c), id, domain.UserPatch{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User updated successfully", gin.H{"user": user.Public()})
}

// DeleteUser godoc
// @Summary      Deactivate user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{id} [delete]
// @Security     BearerAuth
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userUC.Delete(c.Request.Context(), currentActor(c), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User deleted successfully", nil)
}

// ToggleUserStatus godoc
// @Summary      Toggle user active flag
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Router       /users/{id}/toggle-status [patch]
// @Security     BearerAuth
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.ToggleStatus(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User status updated successfully", gin.H{"user": user.Public()})
}

// RestoreUser godoc
// @Summary      Reactivate user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  response.Response
// @Router       /users/{id}/restore [patch]
// @Security     BearerAuth
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userUC.Restore(c.Request.Context(), currentActor(c), id)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "User restored successfully", gin.H{"user": user.Public()})
}
