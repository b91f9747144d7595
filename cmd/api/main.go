package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-cms-backend/config"
	_ "portfolio-cms-backend/docs" // swagger docs
	v1 "portfolio-cms-backend/internal/delivery/http/v1"
	"portfolio-cms-backend/internal/repository/postgres"
	"portfolio-cms-backend/internal/usecase"
	"portfolio-cms-backend/pkg/auth"
	"portfolio-cms-backend/pkg/database"
	"portfolio-cms-backend/pkg/email"
	"portfolio-cms-backend/pkg/logger"
	"portfolio-cms-backend/pkg/redis"
	"portfolio-cms-backend/pkg/security"
	"portfolio-cms-backend/pkg/security/antivirus"
	"portfolio-cms-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio CMS API
// @version         1.0
// @description     Backend for a personal portfolio: profiles, education, experience and skills.
// @host            localhost:8000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.AppEnv)
	logger.Log.Info("Starting portfolio CMS backend", "port", cfg.Port, "env", cfg.AppEnv)

	secLogger := security.InitSecurityLogger("portfolio-cms-backend", cfg.AppEnv)
	defer func() { _ = secLogger.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, database.PoolConfig{
		URL:            cfg.DBUrl,
		MaxConns:       int32(cfg.DBMaxConns),
		MinConns:       int32(cfg.DBMinConns),
		SimpleProtocol: cfg.DBSimpleProtocol,
	})
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// 4. Setup Redis (optional)
	if err := redis.Initialize(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, falling back to in-memory limits", "error", err)
	}
	defer func() { _ = redis.Close() }()

	// 5. Setup Storage
	storeCfg := storage.Config{
		Driver:          cfg.StorageDriver,
		BaseDir:         cfg.UploadDir,
		BaseURL:         cfg.BaseURL + v1.ProfileImagesPath,
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Prefix:          "profile-images",
	}
	if cfg.StorageDriver == "s3" {
		storeCfg.BaseURL = cfg.S3PublicBaseURL
	}
	store, err := storage.New(ctx, storeCfg)
	if err != nil {
		logger.Log.Error("Failed to initialize storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	categoryRepo := postgres.NewCategoryRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	educationRepo := postgres.NewEducationRepository(dbPool)
	experienceRepo := postgres.NewExperienceRepository(dbPool)
	profileSkillRepo := postgres.NewProfileSkillRepository(dbPool)

	// 7. Setup UseCases
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewHMACService(cfg.JWTSecret, cfg.JWTExpiresIn)
	loginTracker := security.NewLoginTracker(redis.Client(), security.DefaultLoginTrackerConfig(), secLogger)

	healthDeps := map[string]usecase.Pinger{
		"database": dbPool,
	}
	if redis.Client() != nil {
		healthDeps["redis"] = usecase.PingFunc(redis.HealthCheck)
	}

	uploadCfg := usecase.UploadConfig{
		MaxBytes:     cfg.MaxUploadBytes,
		MaxDimension: cfg.ImageMaxDimension,
		JPEGQuality:  cfg.ImageJPEGQuality,
	}
	if cfg.ClamAVAddress != "" {
		scanner := antivirus.NewClamAVScanner(cfg.ClamAVAddress, cfg.ClamAVTimeout)
		uploadCfg.Scanner = scanner
		healthDeps["clamav"] = scanner
	} else if cfg.IsProduction() {
		logger.Log.Warn("CLAMAV_ADDRESS not set, uploads are not scanned for malware")
	}

	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, loginTracker, secLogger)
	userUC := usecase.NewUserUsecase(userRepo, hasher, secLogger)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, secLogger)
	skillUC := usecase.NewSkillUsecase(skillRepo, categoryRepo)
	uploadUC := usecase.NewUploadUsecase(store, uploadCfg, secLogger)
	profileUC := usecase.NewProfileUsecase(profileRepo, uploadUC)
	educationUC := usecase.NewEducationUsecase(educationRepo, profileRepo)
	experienceUC := usecase.NewExperienceUsecase(experienceRepo, profileRepo)
	profileSkillUC := usecase.NewProfileSkillUsecase(profileSkillRepo, profileRepo, categoryRepo, skillRepo)
	healthUC := usecase.NewHealthUsecase(healthDeps)

	mailer := email.NewSender(email.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
	if !mailer.IsConfigured() {
		logger.Log.Warn("SMTP not configured - profile contact form will be unavailable")
	}
	contactUC := usecase.NewContactUsecase(profileRepo, mailer)

	// 8. Setup Router
	localDir := ""
	if cfg.StorageDriver == "local" {
		localDir = cfg.UploadDir
	}
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		CategoryUC:     categoryUC,
		SkillUC:        skillUC,
		ProfileUC:      profileUC,
		EducationUC:    educationUC,
		ExperienceUC:   experienceUC,
		ProfileSkillUC: profileSkillUC,
		UploadUC:       uploadUC,
		ContactUC:      contactUC,
		HealthUC:       healthUC,
		UploadLimiter:  security.NewUploadLimiter(cfg.RateLimitUploadThreshold, cfg.UploadDailyLimit),

		AllowedOrigins: cfg.CORSAllowedOrigins,
		Production:     cfg.IsProduction(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		LocalUploadDir: localDir,

		RateLimitWindow: time.Duration(cfg.RateLimitWindowSeconds) * time.Second,
		GlobalRateLimit: cfg.RateLimitGlobalThreshold,
		AuthRateLimit:   cfg.RateLimitAuthThreshold,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
