package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadUC       domain.UploadUsecase
	maxUploadBytes int64
}

func NewUploadHandler(public *gin.RouterGroup, admin *gin.RouterGroup, uploadUC domain.UploadUsecase, maxUploadBytes int64, uploadGuard gin.HandlerFunc) {
	handler := &UploadHandler{uploadUC: uploadUC, maxUploadBytes: maxUploadBytes}

	public.GET("/upload/profile-image/:filename", handler.GetProfileImage)

	adminUpload := admin.Group("/upload")
	{
		adminUpload.POST("/profile-image", uploadGuard, handler.UploadProfileImage)
		adminUpload.DELETE("/profile-image/:filename", handler.DeleteProfileImage)
	}
}

// UploadProfileImage godoc
// @Summary      Upload a profile picture
// @Description  JPEG, PNG, GIF or WebP. Large images are downscaled.
// @Tags         upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        profileImage  formData  file  true  "Image"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Router       /upload/profile-image [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadProfileImage(c *gin.Context) {
	image, err := readUpload(c, ProfileImageField, h.maxUploadBytes)
	if err != nil {
		c.Error(err)
		return
	}
	if image == nil {
		c.Error(apperror.BadRequest("No image file provided. Please upload an image."))
		return
	}

	stored, err := h.uploadUC.StoreProfileImage(c.Request.Context(), *image)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Image uploaded successfully", stored)
}

// GetProfileImage godoc
// @Summary      Stored image metadata
// @Tags         upload
// @Produce      json
// @Param        filename  path      string  true  "Stored filename"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /upload/profile-image/{filename} [get]
func (h *UploadHandler) GetProfileImage(c *gin.Context) {
	info, err := h.uploadUC.GetProfileImage(c.Request.Context(), c.Param("filename"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "", info)
}

// DeleteProfileImage godoc
// @Summary      Delete a stored image
// @Tags         upload
// @Produce      json
// @Param        filename  path      string  true  "Stored filename"
// @Success      200       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /upload/profile-image/{filename} [delete]
// @Security     BearerAuth
func (h *UploadHandler) DeleteProfileImage(c *gin.Context) {
	if err := h.uploadUC.DeleteProfileImage(c.Request.Context(), c.Param("filename")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Image deleted successfully", nil)
}
