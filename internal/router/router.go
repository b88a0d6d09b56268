// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/config"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/docuseal"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/handlers"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/middleware"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/services"
	"github.com/ADORSYS-GIS/likelee-ai-sub008/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Signing provider client
	docusealClient := docuseal.NewClient(cfg.Docuseal)

	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)
	paymentService := services.NewPaymentService(db, cfg)

	authService := services.NewAuthService(db, cfg, notificationService)
	agencyService := services.NewAgencyService(db, storageService)
	templateService := services.NewTemplateService(db, docusealClient)
	submissionService := services.NewSubmissionService(db, docusealClient, notificationService)
	rosterService := services.NewRosterService(db)
	prospectService := services.NewProspectService(db, rosterService, notificationService)
	bookingService := services.NewBookingService(db, notificationService)
	creditService := services.NewCreditService(db, cfg, paymentService)
	adminService := services.NewAdminService(db, notificationService, paymentService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	agencyHandler := handlers.NewAgencyHandler(agencyService)
	templateHandler := handlers.NewTemplateHandler(templateService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	rosterHandler := handlers.NewRosterHandler(rosterService, storageService)
	prospectHandler := handlers.NewProspectHandler(prospectService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	creditHandler := handlers.NewCreditHandler(creditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/verify-email/:token", authHandler.VerifyEmail)
		}

		// Agency profile
		agency := v1.Group("/agency")
		agency.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			agency.GET("", agencyHandler.GetAgency)
			agency.PUT("", agencyHandler.UpdateAgency)
			agency.POST("/logo", middleware.UploadRateLimit(), agencyHandler.UploadLogo)
		}

		// License templates
		templates := v1.Group("/templates")
		templates.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			templates.GET("", templateHandler.ListTemplates)
			templates.POST("", templateHandler.CreateTemplate)
			templates.GET("/:id", templateHandler.GetTemplate)
			templates.PUT("/:id", templateHandler.UpdateTemplate)
			templates.DELETE("/:id", templateHandler.DeactivateTemplate)
		}

		// Signing provider catalog
		provider := v1.Group("/provider")
		provider.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			provider.GET("/templates", templateHandler.ListProviderTemplates)
		}

		// Contract submissions
		contracts := v1.Group("/contracts")
		contracts.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			contracts.GET("", submissionHandler.ListSubmissions)
			contracts.POST("/drafts", submissionHandler.CreateDraft)
			contracts.POST("/preview", submissionHandler.Preview)
			contracts.POST("/send", submissionHandler.Finalize)
			contracts.GET("/:id", submissionHandler.GetSubmission)
		}

		// Roster
		roster := v1.Group("/roster")
		roster.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			roster.GET("", rosterHandler.SearchMembers)
			roster.POST("", rosterHandler.AddMember)
			roster.GET("/:id", rosterHandler.GetMember)
			roster.PUT("/:id", rosterHandler.UpdateMember)
			roster.DELETE("/:id", rosterHandler.RemoveMember)
			roster.POST("/:id/portfolio", middleware.UploadRateLimit(), rosterHandler.UploadPortfolioAsset)
		}

		// Public talent directory
		v1.GET("/talent", middleware.OptionalAuth(), rosterHandler.BrowseTalent)

		// Stored asset downloads
		assets := v1.Group("/assets")
		assets.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			assets.GET("/url", rosterHandler.PresignAsset)
		}

		// Scouting pipeline
		prospects := v1.Group("/prospects")
		prospects.Use(middleware.AuthRequired(), middleware.AgencyRequired())
		{
			prospects.GET("", prospectHandler.SearchProspects)
			prospects.POST("", prospectHandler.CreateProspect)
			prospects.GET("/:id", prospectHandler.GetProspect)
			prospects.PUT("/:id", prospectHandler.UpdateProspect)
			prospects.PUT("/:id/stage", prospectHandler.AdvanceStage)
			prospects.POST("/:id/sign", prospectHandler.SignProspect)
			prospects.DELETE("/:id", prospectHandler.DeleteProspect)
		}

		// Bookings
		bookings := v1.Group("/bookings")
		bookings.Use(middleware.AuthRequired())
		{
			bookings.GET("", bookingHandler.ListBookings)
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.GET("/:id", bookingHandler.GetBooking)
			bookings.PUT("/:id/confirm", middleware.AgencyRequired(), bookingHandler.ConfirmBooking)
			bookings.PUT("/:id/complete", middleware.AgencyRequired(), bookingHandler.CompleteBooking)
			bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
		}

		// Credits and AI generations
		credits := v1.Group("/credits")
		credits.Use(middleware.AuthRequired())
		{
			credits.GET("/balance", creditHandler.GetBalance)
			credits.GET("/ledger", creditHandler.GetLedger)
			credits.POST("/purchase", creditHandler.PurchasePack)
		}

		generations := v1.Group("/generations")
		generations.Use(middleware.AuthRequired())
		{
			generations.GET("", creditHandler.ListGenerations)
			generations.POST("", creditHandler.RequestGeneration)
			generations.GET("/:id", creditHandler.GetGeneration)
		}

		// Payments
		payments := v1.Group("/payments")
		payments.Use(middleware.AuthRequired())
		{
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
			payments.GET("/history", paymentHandler.GetPaymentHistory)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminHandler.GetDashboardStats)
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.POST("/generations/:id/complete", creditHandler.CompleteGeneration)
			admin.POST("/generations/:id/fail", creditHandler.FailGeneration)
			admin.GET("/transactions", adminHandler.GetTransactions)
			admin.POST("/transactions/:id/refund", adminHandler.ProcessRefund)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
