package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lesson-booking/internal/audit"
	"github.com/BruksfildServices01/lesson-booking/internal/config"
	domainAvailability "github.com/BruksfildServices01/lesson-booking/internal/domain/availability"
	domainBooking "github.com/BruksfildServices01/lesson-booking/internal/domain/booking"
	domainSettings "github.com/BruksfildServices01/lesson-booking/internal/domain/settings"
	domainUser "github.com/BruksfildServices01/lesson-booking/internal/domain/user"
	"github.com/BruksfildServices01/lesson-booking/internal/handlers"
	"github.com/BruksfildServices01/lesson-booking/internal/infra/cache"
	"github.com/BruksfildServices01/lesson-booking/internal/metrics"
	"github.com/BruksfildServices01/lesson-booking/internal/middleware"
	"github.com/BruksfildServices01/lesson-booking/internal/notify"
	"github.com/BruksfildServices01/lesson-booking/internal/timezone"
	ucAuth "github.com/BruksfildServices01/lesson-booking/internal/usecase/auth"
	ucAvailability "github.com/BruksfildServices01/lesson-booking/internal/usecase/availability"
	ucBooking "github.com/BruksfildServices01/lesson-booking/internal/usecase/booking"
	ucSettings "github.com/BruksfildServices01/lesson-booking/internal/usecase/settings"
	"github.com/BruksfildServices01/lesson-booking/internal/validators"
)

// Dependencies are the long-lived collaborators built once at startup.
type Dependencies struct {
	Windows  domainAvailability.Repository
	Bookings domainBooking.Repository
	Settings domainSettings.Repository
	Users    domainUser.Repository
	AuditLog audit.Store

	SlotCache cache.SlotCache
	Audit     *audit.Dispatcher
	Notifier  *notify.Dispatcher
	Metrics   *metrics.Service
	Log       *zap.Logger

	ReadyChecks map[string]handlers.ReadyCheck
}

func RegisterRoutes(r *gin.Engine, d Dependencies, cfg *config.Config) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	validate := validators.New()

	loc := timezone.Location(cfg.App.Timezone)
	locale := domainAvailability.ParseLocale(cfg.App.Locale)
	rateLimit := middleware.NewRateLimiter(cfg.RateLimitPerMinute, log).Middleware()

	// ======================================================
	// USE CASES
	// ======================================================
	windowSvc := ucAvailability.NewWindowService(d.Windows, d.SlotCache, d.Audit, validate, log)
	getSchedule := ucAvailability.NewGetSchedule(
		d.Windows,
		d.SlotCache,
		d.Metrics,
		log,
		loc,
		cfg.Booking.DedupeSlots,
	)

	createBooking := ucBooking.NewCreateBooking(
		d.Bookings,
		d.Settings,
		validate,
		d.Notifier,
		d.Metrics,
		log,
		ucBooking.CreateBookingOptions{
			Locale:               locale,
			Location:             loc,
			PreventDoubleBooking: cfg.Booking.PreventDoubleBooking,
		},
	)
	listBookings := ucBooking.NewListBookings(d.Bookings)
	updateStatus := ucBooking.NewUpdateBookingStatus(
		d.Bookings,
		d.Audit,
		d.Notifier,
		d.Metrics,
		log,
		cfg.Booking.StrictStatus,
	)
	exportBookings := ucBooking.NewExportBookings(d.Bookings, loc)

	settingsSvc := ucSettings.NewService(d.Settings, d.Audit, validate)
	authSvc := ucAuth.NewService(d.Users, d.Audit, cfg.JWT.Secret, cfg.JWT.Expiration)

	// ======================================================
	// HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(windowSvc, getSchedule, locale)
	bookingHandler := handlers.NewBookingHandler(createBooking, listBookings, updateStatus, exportBookings)
	formSettingsHandler := handlers.NewFormSettingsHandler(settingsSvc)
	authHandler := handlers.NewAuthHandler(authSvc, cfg.IsProduction())
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, loc)
	healthHandler := handlers.NewHealthHandler(d.ReadyChecks)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	// ======================================================
	// PUBLIC
	// ======================================================
	api.GET("/availability", availabilityHandler.List)
	api.GET("/availability/slots", availabilityHandler.Slots)
	api.GET("/form-settings", formSettingsHandler.Get)
	api.POST("/bookings", rateLimit, bookingHandler.Create)

	auth := api.Group("/auth")
	{
		auth.POST("/login", rateLimit, authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	// ======================================================
	// ADMIN
	// ======================================================
	admin := api.Group("")
	admin.Use(middleware.AuthMiddleware(cfg.JWT.Secret))
	{
		admin.GET("/auth/me", authHandler.Me)

		admin.POST("/availability", availabilityHandler.Add)
		admin.DELETE("/availability/:id", availabilityHandler.Remove)
		admin.DELETE("/availability", availabilityHandler.Clear)

		admin.PATCH("/form-settings", formSettingsHandler.Update)

		admin.GET("/bookings", bookingHandler.List)
		admin.GET("/bookings/export", bookingHandler.Export)
		admin.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)

		admin.GET("/audit-logs", auditLogsHandler.List)
	}
}
