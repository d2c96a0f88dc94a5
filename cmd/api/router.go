package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"spendlog/internal/config"
	apperrors "spendlog/internal/errors"
	"spendlog/internal/handlers"
	"spendlog/internal/middleware"
	"spendlog/internal/services"
	"spendlog/web"
)

// setupRouter wires services, handlers and middleware onto a new engine.
func setupRouter(appConfig *config.Config, db *gorm.DB) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	// Initialize services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(db, appConfig.SessionTTL)
	expenseService := services.NewExpenseService(db)
	portabilityService := services.NewPortabilityService(db)
	auditService := services.NewAuditService(db)

	sessions := middleware.NewSessionAuth(sessionService, appConfig)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, sessions)
	expenseHandler := handlers.NewExpenseHandler(expenseService, auditService)
	portabilityHandler := handlers.NewPortabilityHandler(portabilityService, auditService)

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.MaxMultipartMemory = handlers.MaxBackupSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", handlers.Health)

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/list")
	})

	// Public routes
	public := router.Group("/")
	public.Use(sessions.RedirectIfAuthenticated())
	public.GET("/signup", authHandler.ShowSignup)
	public.POST("/signup", authHandler.Signup)
	public.GET("/login", authHandler.ShowLogin)
	public.POST("/login", authHandler.Login)

	router.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := router.Group("/")
	protected.Use(sessions.Required())

	protected.GET("/list", expenseHandler.List)
	protected.GET("/add", expenseHandler.ShowAdd)
	protected.POST("/add", expenseHandler.Add)
	protected.GET("/edit/:id", expenseHandler.ShowEdit)
	protected.POST("/edit/:id", expenseHandler.Edit)
	protected.POST("/delete/:id", expenseHandler.Delete)

	protected.GET("/export_csv", portabilityHandler.ExportCSV)
	protected.GET("/export_xlsx", portabilityHandler.ExportXLSX)
	protected.GET("/backup_json", portabilityHandler.BackupJSON)
	protected.GET("/restore_json", portabilityHandler.ShowRestore)
	protected.POST("/restore_json", portabilityHandler.RestoreJSON)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	return router, nil
}
