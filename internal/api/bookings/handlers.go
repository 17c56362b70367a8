// internal/api/bookings/handlers.go
package bookings

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/api/apiutil"
	"github.com/codr1/Courtside/internal/booking"
)

var service atomic.Pointer[booking.Service]

type cancelResponse struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
}

type userBookingsResponse struct {
	UserID   string                   `json:"user_id"`
	Bookings []booking.BookingDetails `json:"bookings"`
}

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		log.Warn().Msg("bookings.InitHandlers called with nil service")
		return
	}
	service.Store(svc)
}

func loadService(w http.ResponseWriter, r *http.Request) *booking.Service {
	svc := service.Load()
	if svc == nil {
		log.Ctx(r.Context()).Error().Msg("Booking service not initialized")
		apiutil.Respond(w, r, http.StatusInternalServerError, apiutil.ErrorResponse{Error: "Internal Server Error"})
	}
	return svc
}

// POST /api/v1/bookings/availability
func HandleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var req booking.AvailabilityRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	result, err := svc.CheckAvailability(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, result)
}

// POST /api/v1/bookings/price
func HandlePrice(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var req booking.PriceRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	quote, err := svc.CalculatePrice(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, quote)
}

// POST /api/v1/bookings
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	var req booking.CreateBookingRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}
	created, err := svc.CreateBooking(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/bookings/"+created.BookingReference)
	apiutil.Respond(w, r, http.StatusCreated, created)
}

// POST /api/v1/bookings/{id}/cancel
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := bookingIDFromPath(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	if err := svc.CancelBooking(r.Context(), id); err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, cancelResponse{BookingID: id, Status: booking.StatusCancelled})
}

// GET /api/v1/bookings/{id}
func HandleGet(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	id, err := bookingIDFromPath(r)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	details, err := svc.GetBooking(r.Context(), id)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, details)
}

// GET /api/v1/users/{user_id}/bookings
func HandleUserBookings(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	userID := strings.TrimSpace(r.PathValue("user_id"))
	list, err := svc.ListUserBookings(r.Context(), userID)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, userBookingsResponse{UserID: userID, Bookings: list})
}

// bookingIDFromPath accepts a numeric id or a BK reference.
func bookingIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	if id, ok := booking.ParseReference(raw); ok {
		return id, nil
	}
	return apiutil.PathID(r, "id")
}
