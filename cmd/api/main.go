package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/workhive/jobportal-api/api/swagger"
	"github.com/workhive/jobportal-api/internal/handler"
	"github.com/workhive/jobportal-api/internal/middleware"
	"github.com/workhive/jobportal-api/internal/models"
	"github.com/workhive/jobportal-api/internal/query"
	"github.com/workhive/jobportal-api/internal/repository"
	"github.com/workhive/jobportal-api/internal/service"
	"github.com/workhive/jobportal-api/pkg/cache"
	"github.com/workhive/jobportal-api/pkg/config"
	"github.com/workhive/jobportal-api/pkg/database"
	"github.com/workhive/jobportal-api/pkg/logger"
	corsmiddleware "github.com/workhive/jobportal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/workhive/jobportal-api/pkg/middleware/requestid"
)

// @title WorkHive Admin API
// @version 1.0.0
// @description Administrative backend for the WorkHive job portal
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient != nil {
		redisRepo := repository.NewCacheRepository(redisClient, logr)
		defer redisRepo.Close() //nolint:errcheck
		cacheRepo = redisRepo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Settings.CacheTTL, logr, redisClient != nil)

	store := query.NewStore(db, logr, query.Config{
		DefaultPageSize: cfg.Query.DefaultPageSize,
		MaxPageSize:     cfg.Query.MaxPageSize,
	}).WithObserver(metricsSvc.ObserveDBQuery)

	auditRepo := repository.NewAuditRepository(db)
	settingsSvc := service.NewSettingsService(repository.NewSettingRepository(db), cacheSvc, auditRepo, validate, logr, cfg.Settings.CacheTTL)

	authSvc := service.NewAuthService(cfg.JWT.Secret)
	jobSvc := service.NewJobService(store, repository.NewJobRepository(db), settingsSvc, auditRepo, validate, logr)
	applicationRepo := repository.NewApplicationRepository(db)
	applicationSvc := service.NewApplicationService(store, applicationRepo, auditRepo, validate, logr)
	userSvc := service.NewUserService(store, repository.NewUserRepository(db), auditRepo, validate, logr)
	companySvc := service.NewCompanyService(store, logr)
	reviewSvc := service.NewReviewService(store, repository.NewReviewRepository(db), auditRepo, logr)
	blogSvc := service.NewBlogService(store, logr)
	subscriberSvc := service.NewSubscriberService(store, repository.NewSubscriberRepository(db), logr)
	auditSvc := service.NewAuditService(store, logr)
	dashboardSvc := service.NewDashboardService(store, applicationRepo, cacheSvc, cfg.Dashboard.CacheTTL, cfg.Dashboard.WindowDays, logr)
	reportSvc := service.NewReportService(store, applicationRepo, cfg.Reports.WindowDays, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	admin := api.Group("/admin")
	admin.Use(middleware.JWT(authSvc))
	admin.Use(middleware.RequireRoles(models.RoleAdmin))

	// Mutations below feed the dashboard totals; drop its cached overviews.
	purgeDashboard := middleware.InvalidateCache(cacheSvc, "dashboard:overview:*")

	jobHandler := handler.NewJobHandler(jobSvc)
	admin.GET("/jobs", jobHandler.List)
	admin.POST("/jobs", purgeDashboard, jobHandler.Create)
	admin.GET("/jobs/:id", jobHandler.Get)
	admin.PATCH("/jobs/:id/status", purgeDashboard, jobHandler.UpdateStatus)
	admin.DELETE("/jobs/:id", purgeDashboard, jobHandler.Delete)

	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	admin.GET("/applications", applicationHandler.List)
	admin.GET("/applications/:id", applicationHandler.Get)
	admin.PATCH("/applications/:id/decision", purgeDashboard, applicationHandler.Decide)

	userHandler := handler.NewUserHandler(userSvc)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", purgeDashboard, userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.DELETE("/users/:id", purgeDashboard, userHandler.Deactivate)

	companyHandler := handler.NewCompanyHandler(companySvc)
	admin.GET("/companies", companyHandler.List)

	reviewHandler := handler.NewReviewHandler(reviewSvc)
	admin.GET("/reviews", reviewHandler.List)
	admin.PATCH("/reviews/:id/approval", reviewHandler.Approve)

	blogHandler := handler.NewBlogHandler(blogSvc)
	admin.GET("/blog-posts", blogHandler.List)

	// Subscriber removal has no service-side audit entry; record it here.
	subscriberHandler := handler.NewSubscriberHandler(subscriberSvc)
	admin.GET("/subscribers", subscriberHandler.List)
	admin.DELETE("/subscribers/:id",
		middleware.Audit(auditRepo, logr, "SUBSCRIBER_DELETE", "subscribers"),
		subscriberHandler.Delete)

	auditHandler := handler.NewAuditHandler(auditSvc)
	admin.GET("/audit-logs", auditHandler.List)

	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	admin.GET("/settings/:group", settingsHandler.GetGroup)
	admin.PUT("/settings/:group", settingsHandler.Update)

	if cfg.Dashboard.Enabled {
		dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
		admin.GET("/dashboard", dashboardHandler.Overview)
	}

	if cfg.Reports.Enabled {
		reportHandler := handler.NewReportHandler(reportSvc)
		admin.GET("/reports/jobs", reportHandler.Jobs)
		admin.GET("/reports/jobs/export", reportHandler.ExportJobs)
		admin.GET("/reports/applications", reportHandler.Applications)
		admin.GET("/reports/applications/export", reportHandler.ExportApplications)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
