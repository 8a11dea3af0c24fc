package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/studysync/tutor-scheduler/internal/audit"
	"github.com/studysync/tutor-scheduler/internal/cache"
	"github.com/studysync/tutor-scheduler/internal/clock"
	"github.com/studysync/tutor-scheduler/internal/config"
	"github.com/studysync/tutor-scheduler/internal/events"
	"github.com/studysync/tutor-scheduler/internal/handlers"
	infraRepo "github.com/studysync/tutor-scheduler/internal/infra/repository"
	"github.com/studysync/tutor-scheduler/internal/middleware"
	"github.com/studysync/tutor-scheduler/internal/models"
	ucBooking "github.com/studysync/tutor-scheduler/internal/usecase/booking"
)

// Wiring is everything the entrypoint needs beyond the router itself.
type Wiring struct {
	Sweeper *ucBooking.CompletePastBookings
}

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *zap.Logger,
) *Wiring {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	now := clock.System()
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	eventDispatcher := events.NewDispatcher(log)

	availabilityCache := cache.NewAvailability(cfg.RedisAddr, log)

	// cached slot lists go stale on any booking change
	eventDispatcher.Subscribe(func(ev events.Event) {
		availabilityCache.Invalidate(context.Background(), ev.TeacherID, ev.Date)
	})

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	approveBookingUC := ucBooking.NewApproveBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	rejectBookingUC := ucBooking.NewRejectBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	availabilityUC := ucBooking.NewGetAvailability(
		bookingRepo,
		availabilityCache,
	)

	nextAvailableUC := ucBooking.NewNextAvailable(
		bookingRepo,
		cfg.SearchHorizonDays,
	)

	sweeperUC := ucBooking.NewCompletePastBookings(
		bookingRepo,
		auditDispatcher,
		eventDispatcher,
		now,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	teacherHandler := handlers.NewTeacherHandler(
		db,
		availabilityUC,
		nextAvailableUC,
		now,
	)

	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		approveBookingUC,
		rejectBookingUC,
		cancelBookingUC,
		completeBookingUC,
	)

	workingHoursHandler := handlers.NewWorkingHoursHandler(db)
	messageHandler := handlers.NewMessageHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/teachers", teacherHandler.List)
		api.GET("/teachers/:id/availability", teacherHandler.Availability)
		api.GET("/teachers/:id/next-available", teacherHandler.NextAvailable)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/me/bookings",
				middleware.RequireRole(models.RoleStudent),
				bookingHandler.Create,
			)
			secured.GET("/me/bookings", bookingHandler.List)
			secured.PATCH("/me/bookings/:id/approve", bookingHandler.Approve)
			secured.PATCH("/me/bookings/:id/reject", bookingHandler.Reject)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PATCH("/me/bookings/:id/complete", bookingHandler.Complete)

			// ------------------------------
			// WORKING HOURS
			// ------------------------------
			whGroup := secured.Group("/me/working-hours")
			whGroup.Use(middleware.RequireRole(models.RoleTeacher))
			{
				whGroup.GET("", workingHoursHandler.Get)
				whGroup.PUT("", workingHoursHandler.Update)
			}

			// ------------------------------
			// MESSAGES
			// ------------------------------
			secured.POST("/me/messages", messageHandler.Send)
			secured.GET("/me/messages/unread", messageHandler.UnreadCount)
			secured.GET("/me/messages/:userID", messageHandler.Thread)
			secured.PATCH("/me/messages/:userID/read", messageHandler.MarkRead)

			// ------------------------------
			// ADMIN
			// ------------------------------
			adminGroup := secured.Group("/admin")
			adminGroup.Use(middleware.RequireRole(models.RoleAdmin))
			{
				adminGroup.GET("/stats", adminHandler.Stats)
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.GET("/audit-logs", adminHandler.ListAuditLogs)
			}
		}
	}

	return &Wiring{Sweeper: sweeperUC}
}
