package main

import (
	"github.com/gin-gonic/gin"

	"brickvest.backend/internal/interfaces/http/handlers"
	"brickvest.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	projectHandler    *handlers.ProjectHandler
	investmentHandler *handlers.InvestmentHandler
	documentHandler   *handlers.DocumentHandler
	analyticsHandler  *handlers.AnalyticsHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIRoutes(r *gin.Engine, d routeDeps) {
	api := r.Group("/api")
	{
		// Auth routes (public unless noted)
		auth := api.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/forgotpassword", d.authHandler.ForgotPassword)
			auth.PUT("/resetpassword/:token", d.authHandler.ResetPassword)
			auth.GET("/verifyemail/:token", d.authHandler.VerifyEmail)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
			auth.PUT("/updatedetails", d.authMiddleware, d.authHandler.UpdateDetails)
			auth.PUT("/updatepassword", d.authMiddleware, d.authHandler.ChangePassword)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
		}

		// Project reads (public)
		api.GET("/projects", d.projectHandler.List)
		api.GET("/projects/:id", d.projectHandler.Get)

		// Project writes (protected)
		projects := api.Group("/projects")
		projects.Use(d.authMiddleware)
		{
			projects.POST("", middleware.RequireManagerOrAdmin(), d.projectHandler.Create)
			projects.PUT("/:id", d.projectHandler.Update)
			projects.DELETE("/:id", d.projectHandler.Delete)
			projects.PUT("/:id/images", d.projectHandler.UploadImages)
			projects.POST("/:id/updates", d.projectHandler.AddUpdate)
			projects.POST("/:id/favorite", d.projectHandler.Favorite)
			projects.DELETE("/:id/favorite", d.projectHandler.Unfavorite)

			// Committing funds is the one endpoint guarded against replays.
			projects.POST("/:id/investments", middleware.IdempotencyMiddleware(), d.investmentHandler.Create)
		}

		// Investment routes (protected)
		investments := api.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.GET("", middleware.RequireManagerOrAdmin(), d.investmentHandler.List)
			investments.GET("/me", d.investmentHandler.ListMine)
			investments.GET("/:id", d.investmentHandler.Get)
			investments.PUT("/:id/cancel", d.investmentHandler.Cancel)
			investments.PUT("/:id/complete", middleware.RequireAdmin(), d.investmentHandler.Complete)
		}

		// Document routes (protected)
		documents := api.Group("/documents")
		documents.Use(d.authMiddleware)
		{
			documents.POST("", d.documentHandler.Upload)
			documents.GET("", d.documentHandler.List)
			documents.GET("/:id", d.documentHandler.Get)
			documents.PUT("/:id", d.documentHandler.Update)
			documents.DELETE("/:id", d.documentHandler.Delete)
			documents.POST("/:id/share", d.documentHandler.Share)
			documents.GET("/:id/signed-url", d.documentHandler.SignedURL)
		}

		// Analytics routes (admin, except per-project performance)
		analytics := api.Group("/analytics")
		analytics.Use(d.authMiddleware)
		{
			analytics.GET("/dashboard", middleware.RequireAdmin(), d.analyticsHandler.Dashboard)
			analytics.GET("/investments", middleware.RequireAdmin(), d.analyticsHandler.InvestmentStats)
			analytics.GET("/activity", middleware.RequireAdmin(), d.analyticsHandler.UserActivity)
			analytics.GET("/trends", middleware.RequireAdmin(), d.analyticsHandler.MarketTrends)
			analytics.GET("/projects/:id", middleware.RequireManagerOrAdmin(), d.analyticsHandler.ProjectPerformance)
		}
	}
}
