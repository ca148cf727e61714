package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"MediClaim/cache"
	"MediClaim/config"
	"MediClaim/controllers"
	"MediClaim/database"
	"MediClaim/handlers"
	"MediClaim/middlewares"
	"MediClaim/repositories"
	"MediClaim/services"
	"MediClaim/storage"
)

// SetupRoutes wires repositories, services and handlers and returns the
// HTTP handler for the server.
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB, store storage.ObjectStore, signer *storage.URLSigner) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	router.Use(middlewares.ValidateBearerToken(config.GetBearerToken()))

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   []string{"http://localhost:3000", "https://portal.mediclaim.dev"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	userRepo := repositories.NewUserRepository(db, cache)
	appointmentRepo := repositories.NewAppointmentRepository(db, cache)
	reportRepo := repositories.NewReportRepository(db, cache)
	claimRepo := repositories.NewClaimRepository(db, cache)
	paymentRepo := repositories.NewPaymentRepository(db, cache)
	documentRepo := repositories.NewDocumentRepository(db, cache)

	userService := services.NewUserService(userRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, userRepo)
	reportService := services.NewReportService(reportRepo, appointmentRepo)
	claimService := services.NewClaimService(claimRepo, reportRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, claimRepo, userRepo, database.RedisLocker{})
	documentService := services.NewDocumentService(documentRepo, appointmentRepo, claimRepo, store, signer)

	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	reportHandler := handlers.NewReportHandler(reportService)
	claimHandler := handlers.NewClaimHandler(claimService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	documentHandler := handlers.NewDocumentHandler(documentService)

	controllers.SetupPortalRoutes(
		router,
		authHandler,
		userHandler,
		appointmentHandler,
		reportHandler,
		claimHandler,
		paymentHandler,
		documentHandler,
	)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
