package handlers

import (
	"net/http"
	"strconv"

	"github.com/Suyash1602/airBNB-clone/internal/domain"
	mw "github.com/Suyash1602/airBNB-clone/internal/http/middleware"
	"github.com/Suyash1602/airBNB-clone/internal/http/response"
	"github.com/Suyash1602/airBNB-clone/internal/service"
	"github.com/go-chi/chi/v5"
)

type PlacesHandler struct {
	placeService service.PlaceService
	sessions     *mw.Sessions
}

func NewPlacesHandler(placeService service.PlaceService, sessions *mw.Sessions) *PlacesHandler {
	return &PlacesHandler{
		placeService: placeService,
		sessions:     sessions,
	}
}

// Routes: reads are public, writes require a session. The update route
// additionally runs the ownership gate inside the service.
func (h *PlacesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.With(h.sessions.Require).Post("/", h.Create)
	r.With(h.sessions.Require).Put("/", h.Update)
	return r
}

func (h *PlacesHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.placeService.ListAll(r.Context())
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	response.WriteJSON(w, http.StatusOK, places)
}

func (h *PlacesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid place ID")
		return
	}

	place, err := h.placeService.Get(r.Context(), id)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, place)
}

func (h *PlacesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	var req domain.PlaceRequest
	if err := decodeStrict(r, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	place, err := h.placeService.Create(r.Context(), claims.Sub, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, place)
}

func (h *PlacesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	var req domain.PlaceUpdateRequest
	if err := decodeStrict(r, &req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}

	place, err := h.placeService.Update(r.Context(), claims.Sub, &req)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	response.WriteJSON(w, http.StatusOK, place)
}

// UserPlaces lists the caller's own listings. Mounted outside the /places
// subtree to keep the original route shape.
func (h *PlacesHandler) UserPlaces(w http.ResponseWriter, r *http.Request) {
	claims := mw.Claims(r)

	places, err := h.placeService.ListOwned(r.Context(), claims.Sub)
	if err != nil {
		response.DomainError(w, err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	response.WriteJSON(w, http.StatusOK, places)
}
