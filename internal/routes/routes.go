package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/petcrm/internal/audit"
	"github.com/BruksfildServices01/petcrm/internal/config"
	"github.com/BruksfildServices01/petcrm/internal/handlers"
	"github.com/BruksfildServices01/petcrm/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/petcrm/internal/infra/repository"
	"github.com/BruksfildServices01/petcrm/internal/middleware"
	ucBooking "github.com/BruksfildServices01/petcrm/internal/usecase/booking"
	ucDashboard "github.com/BruksfildServices01/petcrm/internal/usecase/dashboard"
	ucFeed "github.com/BruksfildServices01/petcrm/internal/usecase/feed"
	ucPet "github.com/BruksfildServices01/petcrm/internal/usecase/pet"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	slotCache *cache.SlotCache,
	auditDispatcher *audit.Dispatcher,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	feedRepo := infraRepo.NewFeedGormRepository(db)
	petRepo := infraRepo.NewPetGormRepository(db)

	// ======================================================
	// USE CASES: BOOKINGS & SLOTS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher, nil)
	confirmBookingUC := ucBooking.NewConfirmBooking(bookingRepo, slotCache, auditDispatcher, nil)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, slotCache, auditDispatcher, nil)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo, nil)

	listSlotsUC := ucBooking.NewListSlots(bookingRepo, slotCache)
	setAvailabilityUC := ucBooking.NewSetSlotAvailability(bookingRepo, slotCache, auditDispatcher)
	generateSlotsUC := ucBooking.NewGenerateSlots(bookingRepo, slotCache, auditDispatcher, nil)

	// ======================================================
	// USE CASES: FEED, PETS & DASHBOARD
	// ======================================================
	getFeedUC := ucFeed.NewGetFeed(feedRepo, cfg.FeedPageSize)
	getThreadUC := ucFeed.NewGetThread(feedRepo)
	postWoofUC := ucFeed.NewPostWoof(feedRepo, nil)
	postReplyUC := ucFeed.NewPostReply(feedRepo, nil)
	postGlobalWoofUC := ucFeed.NewPostGlobalWoof(feedRepo, nil)

	presenceUC := ucPet.NewUpdatePresence(petRepo, auditDispatcher, nil)
	addTrainingUC := ucPet.NewAddTrainingEntry(petRepo, auditDispatcher, nil)
	listTrainingUC := ucPet.NewListTrainingEntries(petRepo)
	updateOwnPetUC := ucPet.NewUpdateOwnPet(petRepo, auditDispatcher)
	updateTutorProfileUC := ucPet.NewUpdateTutorProfile(petRepo, auditDispatcher)

	dashboardUC := ucDashboard.New(
		bookingRepo,
		petRepo,
		getFeedUC,
		listSlotsUC,
		listBookingsUC,
		generateSlotsUC,
		cfg.SlotHorizonDays,
		nil,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	publicHandler := handlers.NewPublicHandler(db)
	businessHandler := handlers.NewBusinessHandler(db)
	tutorHandler := handlers.NewTutorHandler(db, updateTutorProfileUC)
	invitationHandler := handlers.NewInvitationHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(audit.NewStore(db))
	petHandler := handlers.NewPetHandler(
		db,
		petRepo,
		presenceUC,
		addTrainingUC,
		listTrainingUC,
		updateOwnPetUC,
	)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		confirmBookingUC,
		cancelBookingUC,
		listBookingsUC,
	)
	slotHandler := handlers.NewSlotHandler(
		bookingRepo,
		listSlotsUC,
		setAvailabilityUC,
		generateSlotsUC,
		cfg.SlotHorizonDays,
	)
	feedHandler := handlers.NewFeedHandler(
		getFeedUC,
		getThreadUC,
		postWoofUC,
		postReplyUC,
		postGlobalWoofUC,
	)
	dashboardHandler := handlers.NewDashboardHandler(dashboardUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/public/businesses/:slug", publicHandler.GetBusiness)

		// ------------------------------
		// AUTH
		// ------------------------------
		auth := api.Group("/auth")
		auth.Use(middleware.RateLimit(cfg.LoginRateLimit))
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/invitations/:token/accept", authHandler.AcceptInvitation)
		}

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/services", slotHandler.Services)
			secured.GET("/dashboard", dashboardHandler.Get)
			secured.PATCH("/me/tutor", tutorHandler.UpdateProfile)
			secured.GET("/pets", petHandler.List)
			secured.PATCH("/pets/:id", petHandler.UpdateOwn)
			secured.GET("/pets/:id/training", petHandler.Training)

			secured.GET("/slots", slotHandler.List)

			secured.GET("/bookings", bookingHandler.List)
			secured.POST("/bookings", middleware.RateLimit(cfg.BookingRateLimit), bookingHandler.Create)
			secured.POST("/bookings/:id/confirm", bookingHandler.Confirm)
			secured.POST("/bookings/:id/reject", middleware.RequireStaff(), bookingHandler.Reject)
			secured.POST("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.GET("/feed", feedHandler.Feed)
			secured.GET("/woofs/:id/thread", feedHandler.Thread)
			secured.POST("/woofs", middleware.RequireStaff(), feedHandler.PostWoof)
			secured.POST("/woofs/:id/replies", feedHandler.PostReply)
			secured.POST("/global-woofs", middleware.RequireStaff(), feedHandler.PostGlobalWoof)
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		staff := api.Group("/staff")
		staff.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
		{
			staff.POST("/pets", petHandler.Create)
			staff.PATCH("/pets/:id", petHandler.Update)
			staff.POST("/pets/:id/checkin", petHandler.CheckIn)
			staff.POST("/pets/:id/checkout", petHandler.CheckOut)
			staff.POST("/pets/:id/training", petHandler.AddTraining)

			staff.GET("/tutors", tutorHandler.List)
			staff.POST("/tutors", tutorHandler.Create)

			staff.GET("/invitations", invitationHandler.List)
			staff.POST("/invitations", invitationHandler.Create)

			staff.GET("/business", businessHandler.Get)
			staff.PATCH("/business", middleware.RequireManager(), businessHandler.Update)

			staff.GET("/audit-logs", auditLogsHandler.List)

			staff.POST("/slots/generate", slotHandler.Generate)
			staff.PATCH("/slots/:id/availability", slotHandler.SetAvailability)
		}
	}
}
