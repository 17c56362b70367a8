// internal/api/availability/handlers.go
package availability

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Courtside/internal/api/apiutil"
	"github.com/codr1/Courtside/internal/booking"
)

var service atomic.Pointer[booking.Service]

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(svc *booking.Service) {
	if svc == nil {
		log.Warn().Msg("availability.InitHandlers called with nil service")
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

// GET /api/v1/availability/slots/{date}
func HandleDailySlots(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	coachID, err := apiutil.OptionalQueryID(r, "coach_id")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	day, err := svc.DailySlots(r.Context(), booking.SlotsRequest{
		Date:      r.PathValue("date"),
		CourtType: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("court_type"))),
		CoachID:   coachID,
	})
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, day)
}

// GET /api/v1/availability/equipment?start_time=...&end_time=...
func HandleEquipment(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	start, err := apiutil.QueryTime(r, "start_time")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	end, err := apiutil.QueryTime(r, "end_time")
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	report, err := svc.EquipmentAvailability(r.Context(), start, end)
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, report)
}

// GET /api/v1/availability/coaches/{date}
func HandleCoaches(w http.ResponseWriter, r *http.Request) {
	svc := loadService(w, r)
	if svc == nil {
		return
	}
	roster, err := svc.CoachSchedule(r.Context(), r.PathValue("date"))
	if err != nil {
		apiutil.WriteError(w, r, err)
		return
	}
	apiutil.Respond(w, r, http.StatusOK, roster)
}
