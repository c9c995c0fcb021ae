package handler

import (
	"net/http"
	"stayspot/internal/bookings/service"
	"stayspot/pkg/auth"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ownerBookingsResponse struct {
	Bookings []model.BookingForOwner `json:"Bookings"`
}

type guestBookingsResponse struct {
	Bookings []model.BookingForGuest `json:"Bookings"`
}

type userBookingsResponse struct {
	Bookings []model.BookingWithSpot `json:"Bookings"`
}

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) ListBySpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	list, err := h.service.ListBySpot(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId"))
	if err != nil {
		h.writeError(w, "ListBySpot", err)
		return
	}

	var body any = guestBookingsResponse{Bookings: list.Guest}
	if list.Owner != nil {
		body = ownerBookingsResponse{Bookings: list.Owner}
	}
	if err := httputil.WriteSuccess(w, body); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBySpot", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListCurrent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	bookings, err := h.service.ListByUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeError(w, "ListCurrent", err)
		return
	}

	if err := httputil.WriteSuccess(w, userBookingsResponse{Bookings: bookings}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCurrent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.BookingInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId"), &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.BookingInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	booking, err := h.service.Update(r.Context(), auth.UserID(r.Context()), ps.ByName("bookingId"), &in)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.UserID(r.Context()), ps.ByName("bookingId")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteDeleted(w); err != nil {
		h.log.Error("failed to write deleted response", "handler", "Delete", "operation", "WriteDeleted", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/spots/:spotId/bookings", auth.RequireAuth(h.ListBySpot))
	router.POST("/api/spots/:spotId/bookings", auth.RequireAuth(h.Create))
	router.GET("/api/bookings/current", auth.RequireAuth(h.ListCurrent))
	router.PUT("/api/bookings/:bookingId", auth.RequireAuth(h.Update))
	router.DELETE("/api/bookings/:bookingId", auth.RequireAuth(h.Delete))
}
