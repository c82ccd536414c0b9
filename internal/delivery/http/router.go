package http

import (
	"log/slog"

	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/fourthmouse-backend/internal/delivery/http/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler         *handler.AuthHandler
	accountHandler      *handler.AccountHandler
	profileHandler      *handler.ProfileHandler
	interestHandler     *handler.InterestHandler
	relationshipHandler *handler.RelationshipHandler
	authMiddleware      *middleware.AuthMiddleware
	logger              *slog.Logger
}

func NewRouter(
	authHandler *handler.AuthHandler,
	accountHandler *handler.AccountHandler,
	profileHandler *handler.ProfileHandler,
	interestHandler *handler.InterestHandler,
	relationshipHandler *handler.RelationshipHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *slog.Logger,
) *Router {
	return &Router{
		authHandler:         authHandler,
		accountHandler:      accountHandler,
		profileHandler:      profileHandler,
		interestHandler:     interestHandler,
		relationshipHandler: relationshipHandler,
		authMiddleware:      authMiddleware,
		logger:              logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.logger))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.Signup)
			auth.POST("/login", r.authHandler.Login)
			auth.POST("/forgot", r.authHandler.ForgotPassword)
			auth.POST("/reset/:token", r.authHandler.ResetPassword)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
		}

		// Interest catalogue (public)
		v1.GET("/interests", r.interestHandler.ListInterests)
		v1.GET("/interests/categories", r.interestHandler.ListCategories)

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			account := protected.Group("/account")
			{
				account.GET("", r.accountHandler.GetAccount)
				account.DELETE("", r.accountHandler.DeleteAccount)
				account.PUT("/password", r.accountHandler.ChangePassword)
				account.POST("/providers/:provider", r.accountHandler.LinkProvider)
				account.DELETE("/providers/:provider", r.accountHandler.UnlinkProvider)
			}

			profile := protected.Group("/profile/me")
			{
				profile.GET("", r.profileHandler.GetMyProfile)
				profile.PUT("", r.profileHandler.UpdateMyProfile)
				profile.POST("/summaries", r.profileHandler.GenerateSummaries)
				profile.POST("/pictures", r.profileHandler.UploadPicture)
				profile.DELETE("/pictures", r.profileHandler.RemovePicture)
				profile.GET("/interests", r.interestHandler.ListMine)
				profile.POST("/interests/:id", r.interestHandler.Add)
				profile.DELETE("/interests/:id", r.interestHandler.Remove)
			}

			matches := protected.Group("/matches")
			{
				matches.GET("", r.relationshipHandler.ListMatches)
				matches.GET("/:id", r.relationshipHandler.GetMatch)
				matches.PATCH("/:id", r.relationshipHandler.UpdateMatch)
				matches.POST("/:id/rating", r.relationshipHandler.RateMatch)
			}

			messages := protected.Group("/messages")
			{
				messages.GET("", r.relationshipHandler.ListMessages)
				messages.POST("", r.relationshipHandler.SendMessage)
				messages.GET("/with/:account_id", r.relationshipHandler.ListConversation)
				messages.GET("/:id", r.relationshipHandler.GetMessage)
			}

			ratings := protected.Group("/ratings")
			{
				ratings.GET("", r.relationshipHandler.ListRatings)
				ratings.POST("", r.relationshipHandler.CreateRating)
				ratings.GET("/:id", r.relationshipHandler.GetRating)
			}

			reports := protected.Group("/reports")
			{
				reports.GET("", r.relationshipHandler.ListReports)
				reports.POST("", r.relationshipHandler.CreateReport)
				reports.GET("/:id", r.relationshipHandler.GetReport)
			}
		}
	}

	return router
}
