package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NabsK/hr-admin-system/internal/config"
	"github.com/NabsK/hr-admin-system/internal/email"
	"github.com/NabsK/hr-admin-system/internal/handlers"
	"github.com/NabsK/hr-admin-system/internal/middleware"
	"github.com/NabsK/hr-admin-system/internal/service"
)

func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) {
	router.Use(corsMiddleware(cfg.AllowedOriginsRaw))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "hr-admin-backend"})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var notifier service.Notifier
	if cfg.SmtpConfigured() {
		notifier = email.NewMailer(email.Config{
			Host:     cfg.SmtpHost,
			Port:     cfg.SmtpPort,
			Username: cfg.SmtpUser,
			Password: cfg.SmtpPass,
			From:     cfg.SmtpFrom,
		})
	}

	authHandler := handlers.NewAuthHandler(db, cfg)
	employeeHandler := handlers.NewEmployeeHandler(service.NewEmployeeService(db, cfg.DefaultPassword, notifier))
	departmentHandler := handlers.NewDepartmentHandler(service.NewDepartmentService(db))

	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(cfg.JwtSecret))
	{
		protected.GET("/me", authHandler.Me)

		protected.GET("/employees", employeeHandler.List)
		protected.POST("/employees", employeeHandler.Create)
		protected.GET("/employees/managers", employeeHandler.ListManagers)
		protected.GET("/employees/:id", employeeHandler.Get)
		protected.PUT("/employees/:id", employeeHandler.Update)
		protected.PATCH("/employees/:id/status", employeeHandler.ToggleStatus)

		protected.GET("/departments", departmentHandler.List)
		protected.POST("/departments", departmentHandler.Create)
		protected.GET("/departments/:id", departmentHandler.Get)
		protected.PUT("/departments/:id", departmentHandler.Update)
		protected.PATCH("/departments/:id/status", departmentHandler.ToggleStatus)
	}
}

func corsMiddleware(allowed string) gin.HandlerFunc {
	origins := []string{}
	for _, origin := range strings.Split(allowed, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	allowAll := len(origins) == 0

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			for _, allowedOrigin := range origins {
				if origin == allowedOrigin {
					c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
					c.Writer.Header().Set("Vary", "Origin")
					break
				}
			}
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
