package http

import (
	"net/http"

	"neptrip-backend/internal/delivery/http/handler"
	"neptrip-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	bookingHandler      *handler.BookingHandler
	guideBookingHandler *handler.GuideBookingHandler
	guideHandler        *handler.GuideHandler
	destinationHandler  *handler.DestinationHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookingHandler *handler.BookingHandler,
	guideBookingHandler *handler.GuideBookingHandler,
	guideHandler *handler.GuideHandler,
	destinationHandler *handler.DestinationHandler,
	notificationHandler *handler.NotificationHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		bookingHandler:      bookingHandler,
		guideBookingHandler: guideBookingHandler,
		guideHandler:        guideHandler,
		destinationHandler:  destinationHandler,
		notificationHandler: notificationHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/me", r.authHandler.UpdateProfile).Methods(http.MethodPut)

	// Public catalog and availability routes
	api.HandleFunc("/destinations", r.destinationHandler.GetAllDestinations).Methods(http.MethodGet)
	api.HandleFunc("/destinations/{id}", r.destinationHandler.GetDestination).Methods(http.MethodGet)
	api.HandleFunc("/guides", r.guideHandler.ListGuides).Methods(http.MethodGet)
	// registered before /guides/{id} so "available" is not parsed as an ID
	api.HandleFunc("/guides/available", r.bookingHandler.AvailableGuides).Methods(http.MethodGet)
	api.HandleFunc("/guides/{id}", r.guideHandler.GetGuide).Methods(http.MethodGet)
	api.HandleFunc("/bookings/booked-dates", r.bookingHandler.BookedDates).Methods(http.MethodGet)

	// Notifications (any authenticated account)
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)

	// Booking routes (requester side)
	bookings := api.PathPrefix("/bookings").Subrouter()
	bookings.Use(r.authMiddleware.Authenticate)
	bookings.Use(middleware.RequireUser)
	bookings.HandleFunc("", r.bookingHandler.CreateBooking).Methods(http.MethodPost)
	bookings.HandleFunc("", r.bookingHandler.GetMyBookings).Methods(http.MethodGet)
	bookings.HandleFunc("/latest", r.bookingHandler.GetLatestBooking).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/status", r.bookingHandler.GetBookingStatus).Methods(http.MethodGet)
	bookings.HandleFunc("/{id}/confirm-payment", r.bookingHandler.ConfirmPayment).Methods(http.MethodPost)
	bookings.HandleFunc("/{id}/rate", r.bookingHandler.RateBooking).Methods(http.MethodPost)

	// Guide routes (guide side of the booking ledger)
	guide := api.PathPrefix("/guide").Subrouter()
	guide.Use(r.authMiddleware.Authenticate)
	guide.Use(middleware.RequireGuide)
	guide.HandleFunc("/requests", r.guideBookingHandler.GetRequests).Methods(http.MethodGet)
	guide.HandleFunc("/bookings", r.guideBookingHandler.SearchBookings).Methods(http.MethodGet)
	guide.HandleFunc("/bookings/{id}/respond", r.guideBookingHandler.Respond).Methods(http.MethodPost)
	guide.HandleFunc("/bookings/{id}/complete", r.guideBookingHandler.Complete).Methods(http.MethodPost)
	guide.HandleFunc("/bookings/{id}/confirm-payment", r.guideBookingHandler.ConfirmPayment).Methods(http.MethodPost)
	guide.HandleFunc("/bookings/{id}/payment-status", r.guideBookingHandler.UpdatePaymentStatus).Methods(http.MethodPut)
	guide.HandleFunc("/bookings/{id}/payment-method", r.guideBookingHandler.UpdatePaymentMethod).Methods(http.MethodPut)
	guide.HandleFunc("/profile", r.guideHandler.UpdateGuideProfile).Methods(http.MethodPut)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/guides", r.guideHandler.CreateGuide).Methods(http.MethodPost)
	admin.HandleFunc("/guides/{id}", r.guideHandler.DeleteGuide).Methods(http.MethodDelete)
	admin.HandleFunc("/users", r.guideHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/destinations", r.destinationHandler.CreateDestination).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
