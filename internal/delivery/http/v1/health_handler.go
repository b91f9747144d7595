package v1

import (
	"net/http"

	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	public.GET("/health", handler.Check)
}

// HealthCheck godoc
// @Summary      Liveness and dependency status
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      503  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status, healthy := h.healthUC.Check(c.Request.Context())
	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Status:  response.StatusError,
			Message: "Service degraded",
			Data:    status,
		})
		return
	}
	response.Success(c, http.StatusOK, "Server is running", status)
}
