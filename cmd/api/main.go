package main

import (
	"net/http"
	"os"

	_ "github.com/Siva2k2k/ES-TM-sub001/api/swagger" // swagger docs
	"github.com/Siva2k2k/ES-TM-sub001/internal/config"
	"github.com/Siva2k2k/ES-TM-sub001/internal/database"
	"github.com/Siva2k2k/ES-TM-sub001/internal/handler"
	"github.com/Siva2k2k/ES-TM-sub001/internal/logger"
	"github.com/Siva2k2k/ES-TM-sub001/internal/metrics"
	"github.com/Siva2k2k/ES-TM-sub001/internal/repository"
	"github.com/Siva2k2k/ES-TM-sub001/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Timesheet Team Review API
// @version         1.0
// @description     Multi-project timesheet approval, verification and billing.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		// logger config is not available yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	gin.SetMode(cfg.Server.GinMode)

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	log.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.Name).
		Msg("connected to PostgreSQL")

	metrics.Init()

	// Set up dependencies (Repository -> Service -> Handler)
	timesheetRepo := repository.NewTimesheetRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	txManager := repository.NewTransactionManager(db)

	approvalService := service.NewApprovalService(
		timesheetRepo,
		approvalRepo,
		auditRepo,
		projectRepo,
		txManager,
		cfg.Workflow.Mode(),
		log.With().Str("component", "approval_service").Logger(),
	)
	auditService := service.NewAuditService(auditRepo)

	teamReviewHandler := handler.NewTeamReviewHandler(approvalService, auditService, []byte(cfg.Auth.JWTSecret))

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.Origins()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	teamReviewHandler.RegisterRoutes(router.Group(""))

	log.Info().
		Str("port", cfg.Server.Port).
		Str("consistency_mode", cfg.Workflow.ConsistencyMode).
		Msg("server listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
