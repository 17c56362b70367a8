// internal/api/waitlist/handlers.go
package waitlist

import (
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/api/apiutil"
	"github.com/codr1/Courtside/internal/booking"
)

var service atomic.Pointer[booking.Service]

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		log.Warn().Msg("waitlist.InitHandlers called with nil service")
		return
	}
	service.Store(svc)
}

// POST /api/v1/waitlist
func HandleWaitlistJoin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	svc := service.Load()
	if svc == nil {
		logger.Error().Msg("Booking service not initialized")
		apiutil.Respond(w, r, http.StatusInternalServerError, apiutil.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	var req booking.JoinWaitlistRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteError(w, r, apiutil.BadRequest(err))
		return
	}

	entry, err := svc.JoinWaitlist(r.Context(), req)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusCreated, entry)
}
