package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"local-market-backend/config"
	"local-market-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(h *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	latency := mw.Latency(cfg.SimulatedLatency)

	// Only the read-only catalog is cached.
	cacheStore := cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	caching := mw.Cache(cacheStore, cfg.CacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, latency)
	{
		api.GET("/bookings", h.ListBookings)
		api.GET("/bookings/upcoming", h.UpcomingBookings)
		api.GET("/bookings/past", h.PastBookings)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings", h.CreateBooking)
		api.PATCH("/bookings/:id", h.EditBooking)
		api.POST("/bookings/:id/cancel", h.CancelBooking)
		api.POST("/bookings/:id/confirm", h.ConfirmBooking)
		api.POST("/bookings/:id/complete", h.CompleteBooking)
		api.DELETE("/bookings/:id", h.DeleteBooking)

		api.GET("/addresses", h.ListAddresses)
		api.POST("/addresses", h.AddAddress)
		api.PUT("/addresses/:id/default", h.SetDefaultAddress)
		api.PATCH("/addresses/:id", h.EditAddress)
		api.DELETE("/addresses/:id", h.DeleteAddress)

		api.GET("/barters", h.ListBarters)
		api.GET("/barters/:id", h.GetBarter)
		api.POST("/barters", h.CreateBarter)
		api.DELETE("/barters/:id", h.DeleteBarter)

		api.GET("/saved-fixers", h.ListSavedFixers)
		api.PUT("/saved-fixers/:id", h.ToggleSavedFixer)

		api.GET("/applications/:kind", h.ListApplications)
		api.POST("/applications/:kind", h.SubmitApplication)
		api.PUT("/applications/:kind/:id/status", h.SetApplicationStatus)

		api.GET("/settings", h.GetSettings)
		api.PATCH("/settings", h.PatchSettings)
		api.POST("/settings/notifications/toggle", h.ToggleNotifications)

		api.GET("/categories", caching, h.ListCategories)
		api.GET("/fixers", caching, h.ListFixers)
		api.GET("/fixers/:id", caching, h.GetFixer)
		api.GET("/products", caching, h.ListProducts)

		api.POST("/flows/:id", h.StartFlow)
		api.GET("/flows/:id", h.GetFlow)
		api.PUT("/flows/:id/fields", h.SetFlowFields)
		api.POST("/flows/:id/next", h.NextFlowStep)
		api.POST("/flows/:id/back", h.PreviousFlowStep)
		api.POST("/flows/:id/submit", h.SubmitFlow)
		api.DELETE("/flows/:id", h.CancelFlow)

		api.POST("/checkout/resolve", h.ResolveCheckout)
		api.POST("/checkout/:booking_id", h.StartCheckout)

		api.GET("/subscriptions", h.GetSubscription)
		api.PUT("/subscriptions", h.PutSubscription)
		api.DELETE("/subscriptions", h.DeleteSubscription)
		api.GET("/vapid_public_key", h.GetVAPIDPublicKey)

		api.POST("/admin/flush", h.FlushStores)
	}

	return r
}
