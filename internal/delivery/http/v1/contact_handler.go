package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the visitor contact form. Mount it on a
// rate-limited group.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{contactUC: contactUC}
	public.POST("/profiles/:id/contact", handler.SubmitContact)
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email,max=100"`
	Subject string `json:"subject" binding:"required,min=2,max=150"`
	Message string `json:"message" binding:"required,min=10,max=5000"`
}

// SubmitContact godoc
// @Summary      Message a profile owner
// @Description  Forwards a visitor message to the profile's email. Public, rate limited.
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Profile ID"
// @Param        contact  body      ContactRequest  true  "Message"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /profiles/{id}/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ContactRequest
	if !bindJSON(c, &req) {
		return
	}
	err := h.contactUC.SendToProfile(c.Request.Context(), id, domain.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Your message has been sent successfully!", nil)
}
