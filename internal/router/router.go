package router

import (
	"github.com/gin-gonic/gin"
	"github.com/paragonmaik/accounts-api/config"
	"github.com/paragonmaik/accounts-api/internal/app/controller"
	"github.com/paragonmaik/accounts-api/internal/middleware"
)

type Router struct {
	accountController *controller.AccountController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	accountController *controller.AccountController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		accountController: accountController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "accounts API is running",
		})
	})

	v1 := router.Group("/api/v1")
	{
		accounts := v1.Group("/accounts")
		{
			accounts.POST("/register", r.accountController.Register)
			accounts.POST("/register-admin", r.accountController.RegisterAdmin)
			accounts.POST("/login", r.accountController.Login)
			accounts.POST("/password-change", r.authMiddleware.Authenticate(), r.accountController.ChangePassword)
			accounts.POST("/send-reset-password-email", r.accountController.SendResetPasswordEmail)
			accounts.POST("/reset-password/:uid/:token", r.accountController.ResetPassword)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
