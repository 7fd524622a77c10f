package handlers

import (
	"net/http"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	mw "github.com/Suyash1602/airBNB-clone/internal/http/middleware"
	"github.com/Suyash1602/airBNB-clone/internal/http/response"
	"github.com/Suyash1602/airBNB-clone/internal/service"
	"github.com/go-chi/chi/v5"
)

type BookingsHandler struct {
	bookingService service.BookingService
	sessions       *mw.Sessions
}

func NewBookingsHandler(bookingService service.BookingService, sessions *mw.Sessions) *BookingsHandler {
	return &BookingsHandler{
		bookingService: bookingService,
		sessions:       sessions,
	}
}

func (h *BookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(h.sessions.Require)
	r.Post("/", h.Create)
	r.Get("/", h.List)
	return r
}

// Create stamps the requester from the session. Any requester-like field in
// the payload is rejected by strict decoding.
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	var req domain.BookingRequest
	if err := decodeStrict(r, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, booking)
}

// List returns only the caller's own bookings.
func (h *BookingsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	bookings, err := h.bookingService.ListForUser(r.Context(), claims.Sub)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	response.WriteJSON(w, http.StatusOK, bookings)
}
