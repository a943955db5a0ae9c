package server

import (
	"net/http"

	"github.com/fitzone/fitzone-backend/internal/config"
	"github.com/fitzone/fitzone-backend/internal/handlers"
	"github.com/fitzone/fitzone-backend/internal/middleware"
	"github.com/fitzone/fitzone-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Users       handlers.UserStore
	Trainers    handlers.TrainerStore
	Schedules   handlers.ScheduleCatalog
	Memberships handlers.MembershipStore
	Services    handlers.ServiceStore
	Contacts    handlers.ContactStore
	Bookings    handlers.BookingManager
	Storage     handlers.ImageStorage
	Hub         *services.Hub
	DB          handlers.Pinger
	Logger      *zap.Logger
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(deps.Logger), middleware.Recovery(), middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowOrigins
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	if !cfg.UseS3() {
		r.Static("/uploads", cfg.UploadDir)
	}

	r.GET("/health", handlers.Health(deps.DB, deps.Hub))
	r.GET("/metrics", middleware.MetricsHandler())

	tokens := handlers.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}
	auth := middleware.AuthMiddleware(cfg.JWTSecret, deps.Users)
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", handlers.Register(deps.Users, tokens))
			authRoutes.POST("/login", handlers.Login(deps.Users, tokens))
			authRoutes.GET("/me", auth, handlers.Me())
		}

		api.GET("/ws", auth, handlers.WebSocketHandler(deps.Hub))

		users := api.Group("/users", auth)
		{
			users.GET("/profile", handlers.GetProfile())
			users.PUT("/profile", handlers.UpdateProfile(deps.Users))
			users.GET("", admin, handlers.ListUsers(deps.Users))
			users.DELETE("/:userId", admin, handlers.DeleteUser(deps.Users))
		}

		trainers := api.Group("/trainers")
		{
			trainers.GET("", handlers.ListTrainers(deps.Trainers))
			trainers.GET("/:trainerId", handlers.GetTrainer(deps.Trainers))
			trainers.POST("", auth, admin, handlers.CreateTrainer(deps.Trainers))
			trainers.PUT("/:trainerId", auth, admin, handlers.UpdateTrainer(deps.Trainers))
			trainers.DELETE("/:trainerId", auth, admin, handlers.DeleteTrainer(deps.Trainers, deps.Storage))
			trainers.POST("/:trainerId/photo", auth, admin, handlers.UploadTrainerPhoto(deps.Trainers, deps.Storage))
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("", handlers.ListSchedules(deps.Schedules))
			schedules.GET("/:scheduleId", handlers.GetSchedule(deps.Schedules))
			schedules.POST("", auth, admin, handlers.CreateSchedule(deps.Schedules, deps.Trainers))
			schedules.PUT("/:scheduleId", auth, admin, handlers.UpdateSchedule(deps.Schedules, deps.Trainers))
			schedules.DELETE("/:scheduleId", auth, admin, handlers.DeleteSchedule(deps.Schedules))
		}

		memberships := api.Group("/memberships")
		{
			memberships.GET("", handlers.ListMemberships(deps.Memberships))
			memberships.GET("/my", auth, handlers.MyMemberships(deps.Memberships))
			memberships.GET("/subscriptions", auth, admin, handlers.ListSubscriptions(deps.Memberships))
			memberships.PUT("/subscriptions/:id/status", auth, admin, handlers.UpdateSubscriptionStatus(deps.Memberships))
			memberships.POST("", auth, admin, handlers.CreateMembership(deps.Memberships))
			memberships.PUT("/:membershipId", auth, admin, handlers.UpdateMembership(deps.Memberships))
			memberships.DELETE("/:membershipId", auth, admin, handlers.DeleteMembership(deps.Memberships))
			memberships.POST("/:membershipId/subscribe", auth, handlers.Subscribe(deps.Memberships))
		}

		gymServices := api.Group("/services")
		{
			gymServices.GET("", handlers.ListServices(deps.Services))
			gymServices.POST("", auth, admin, handlers.CreateService(deps.Services))
			gymServices.PUT("/:serviceId", auth, admin, handlers.UpdateService(deps.Services))
			gymServices.DELETE("/:serviceId", auth, admin, handlers.DeleteService(deps.Services, deps.Storage))
			gymServices.POST("/:serviceId/image", auth, admin, handlers.UploadServiceImage(deps.Services, deps.Storage))
		}

		contact := api.Group("/contact")
		{
			contact.POST("", handlers.CreateContact(deps.Contacts))
			contact.GET("", auth, admin, handlers.ListContacts(deps.Contacts))
			contact.PUT("/:contactId/status", auth, admin, handlers.UpdateContactStatus(deps.Contacts))
		}

		bookings := api.Group("/bookings", auth)
		{
			bookings.GET("/my-bookings", handlers.GetMyBookings(deps.Bookings))
			bookings.POST("", handlers.CreateBooking(deps.Bookings))
			bookings.PUT("/:bookingId/cancel", handlers.CancelBooking(deps.Bookings))
			bookings.GET("", admin, handlers.ListBookings(deps.Bookings))
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
	})

	return r
}
