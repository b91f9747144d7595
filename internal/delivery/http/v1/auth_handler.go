package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

// NewAuthHandler registers login/register on strict (the rate limited public
// group) and the account routes on protected.
func NewAuthHandler(strict *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase) {
	handler := &AuthHandler{authUC: authUC}

	publicAuth := strict.Group("/auth")
	{
		publicAuth.POST("/register", handler.Register)
		publicAuth.POST("/login", handler.Login)
	}

	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.GET("/profile", handler.Me)
		protectedAuth.PUT("/profile", handler.UpdateMe)
		protectedAuth.PUT("/change-password", handler.ChangePassword)
		protectedAuth.POST("/logout", handler.Logout)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100,valid_name"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128,strong_password"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateMeRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100,valid_name"`
	Email *string `json:"email" binding:"omitempty,email,max=100"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6,max=128,strong_password"`
}

// Register godoc
// @Summary      Register
// @Description  Create a user account with the "user" role and return a token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Register(c.Request.Context(), domain.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", result)
}

// Login godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      429    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authUC.Login(c.Request.Context(), domain.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IP:        c.ClientIP(),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", result)
}

// Me godoc
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/profile [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUC.Me(c.Request.Context(), currentActor(c).ID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": user.Public()})
}

// UpdateMe godoc
// @Summary      Update current user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        profile  body      UpdateMeRequest  true  "Name and/or email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /auth/profile [put]
// @Security     BearerAuth
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authUC.UpdateMe(c.Request.Context(), currentActor(c).ID, domain.UserPatch{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile updated successfully", gin.H{"user": user.Public()})
}

// ChangePassword godoc
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        passwords  body      ChangePasswordRequest  true  "Current and new password"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  response.Response
// @Router       /auth/change-password [put]
// @Security     BearerAuth
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), currentActor(c).ID, req.CurrentPassword, req.NewPassword); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// Logout godoc
// @Summary      Logout
// @Description  Tokens are stateless; the client discards its copy
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, "Logout successful. Please remove the token from client storage.", nil)
}
