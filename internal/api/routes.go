package api

import (
	"net/http"

	"github.com/codr1/Courtside/internal/api/availability"
	"github.com/codr1/Courtside/internal/api/bookings"
	"github.com/codr1/Courtside/internal/api/waitlist"
	"github.com/codr1/Courtside/internal/booking"
)

// InitHandlers hands svc to every handler package.
func InitHandlers(svc *booking.Service) {
	bookings.InitHandlers(svc)
	waitlist.InitHandlers(svc)
	availability.InitHandlers(svc)
}

// RegisterRoutes mounts the booking API on mux.
func RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Booking routes
	mux.HandleFunc("POST /api/v1/bookings/availability", bookings.HandleCheckAvailability)
	mux.HandleFunc("POST /api/v1/bookings/price", bookings.HandlePrice)
	mux.HandleFunc("POST /api/v1/bookings", bookings.HandleCreate)
	mux.HandleFunc("GET /api/v1/bookings/{id}", bookings.HandleGet)
	mux.HandleFunc("POST /api/v1/bookings/{id}/cancel", bookings.HandleCancel)
	mux.HandleFunc("GET /api/v1/users/{user_id}/bookings", bookings.HandleUserBookings)

	// Waitlist routes
	mux.HandleFunc("POST /api/v1/waitlist", waitlist.HandleWaitlistJoin)

	// Availability routes
	mux.HandleFunc("GET /api/v1/availability/slots/{date}", availability.HandleDailySlots)
	mux.HandleFunc("GET /api/v1/availability/equipment", availability.HandleEquipment)
	mux.HandleFunc("GET /api/v1/availability/coaches/{date}", availability.HandleCoaches)
}

// NewHandler wraps mux in the standard middleware chain. extra runs closest
// to the handlers, after the request logger is in place.
func NewHandler(mux *http.ServeMux, extra ...Middleware) http.Handler {
	chain := append(append([]Middleware{}, extra...), WithLogging, WithRecovery, WithRequestID, WithContentType)
	return ChainMiddleware(mux, chain...)
}
