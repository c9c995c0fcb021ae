package handler

import (
	"net/http"
	"stayspot/internal/spots/filter"
	"stayspot/internal/spots/service"
	"stayspot/pkg/auth"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// currentSegment shares its position with :spotId, which httprouter cannot
// register side by side, so GetByID dispatches on it.
const currentSegment = "current"

type SpotHandler struct {
	service service.SpotService
	limits  filter.Limits
	log     *logger.Logger
}

func NewSpotHandler(service service.SpotService, limits filter.Limits, log *logger.Logger) *SpotHandler {
	return &SpotHandler{
		service: service,
		limits:  limits,
		log:     log,
	}
}

func (h *SpotHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f, err := filter.Parse(r.URL.Query(), h.limits)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	list, err := h.service.Search(r.Context(), f)
	if err != nil {
		h.writeError(w, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, list); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpotHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("spotId")
	if id == currentSegment {
		auth.RequireAuth(h.ListCurrent)(w, r, ps)
		return
	}

	detail, err := h.service.GetDetail(r.Context(), id)
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, detail); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpotHandler) ListCurrent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	list, err := h.service.ListByOwner(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeError(w, "ListCurrent", err)
		return
	}

	if err := httputil.WriteSuccess(w, list); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCurrent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpotHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.SpotInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	spot, err := h.service.Create(r.Context(), auth.UserID(r.Context()), &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, spot); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *SpotHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.SpotInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	spot, err := h.service.Update(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId"), &in)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, spot); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SpotHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteDeleted(w); err != nil {
		h.log.Error("failed to write deleted response", "handler", "Delete", "operation", "WriteDeleted", "error", err)
	}
}

func (h *SpotHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SpotHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/spots", h.Search)
	router.GET("/api/spots/:spotId", h.GetByID)
	router.POST("/api/spots", auth.RequireAuth(h.Create))
	router.PUT("/api/spots/:spotId", auth.RequireAuth(h.Update))
	router.DELETE("/api/spots/:spotId", auth.RequireAuth(h.Delete))
}
