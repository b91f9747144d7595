package v1

import (
	"net/http"
	"time"

	"portfolio-cms-backend/internal/delivery/http/middleware"
	"portfolio-cms-backend/internal/delivery/http/response"
	"portfolio-cms-backend/internal/domain"
	"portfolio-cms-backend/internal/usecase"
	"portfolio-cms-backend/pkg/security"
	"portfolio-cms-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// ProfileImagesPath is where locally stored pictures are served from.
const ProfileImagesPath = "/uploads/profile-images"

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	UserUC         domain.UserUsecase
	CategoryUC     domain.CategoryUsecase
	SkillUC        domain.SkillUsecase
	ProfileUC      domain.ProfileUsecase
	EducationUC    domain.EducationUsecase
	ExperienceUC   domain.ExperienceUsecase
	ProfileSkillUC domain.ProfileSkillUsecase
	UploadUC       domain.UploadUsecase
	ContactUC      domain.ContactUsecase
	HealthUC       usecase.HealthUsecase
	UploadLimiter  *security.UploadLimiter

	AllowedOrigins []string
	Production     bool
	MaxUploadBytes int64
	// LocalUploadDir is served at ProfileImagesPath when set.
	LocalUploadDir string

	RateLimitWindow time.Duration
	GlobalRateLimit int
	AuthRateLimit   int
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()
	if deps.MaxUploadBytes > 0 {
		// multipart parts beyond this spill to temp files
		r.MaxMultipartMemory = deps.MaxUploadBytes + 1<<20
	}

	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins)) // before anything that can abort
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Production))
	r.Use(middleware.ErrorHandler())

	if deps.LocalUploadDir != "" {
		r.Static(ProfileImagesPath, deps.LocalUploadDir)
	}

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.GlobalRateLimit, deps.RateLimitWindow)))

	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if deps.HealthUC != nil {
		NewHealthHandler(api, deps.HealthUC)
	}

	strict := api.Group("")
	strict.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.AuthRateLimit, deps.RateLimitWindow)))

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))

	admin := protected.Group("")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	uploadGuard := func(c *gin.Context) { c.Next() }
	if deps.UploadLimiter != nil {
		uploadGuard = middleware.UploadLimit(deps.UploadLimiter)
	}

	NewAuthHandler(strict, protected, deps.AuthUC)
	NewUserHandler(admin, deps.UserUC)
	NewCategoryHandler(api, admin, deps.CategoryUC)
	NewSkillHandler(api, admin, deps.SkillUC)
	NewProfileHandler(api, admin, deps.ProfileUC, deps.MaxUploadBytes, uploadGuard)
	NewEducationHandler(api, admin, deps.EducationUC)
	NewExperienceHandler(api, admin, deps.ExperienceUC)
	NewProfileSkillHandler(api, admin, deps.ProfileSkillUC)
	NewUploadHandler(api, admin, deps.UploadUC, deps.MaxUploadBytes, uploadGuard)
	if deps.ContactUC != nil {
		NewContactHandler(strict, deps.ContactUC)
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "Route not found", nil)
	})

	return r
}
