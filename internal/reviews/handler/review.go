package handler

import (
	"net/http"
	"stayspot/internal/reviews/service"
	"stayspot/pkg/auth"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type spotReviewsResponse struct {
	Reviews []model.ReviewDetail `json:"Reviews"`
}

type userReviewsResponse struct {
	Reviews []model.UserReview `json:"Reviews"`
}

type ReviewHandler struct {
	service service.ReviewService
	log     *logger.Logger
}

func NewReviewHandler(service service.ReviewService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

func (h *ReviewHandler) ListBySpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reviews, err := h.service.ListBySpot(r.Context(), ps.ByName("spotId"))
	if err != nil {
		h.writeError(w, "ListBySpot", err)
		return
	}

	if err := httputil.WriteSuccess(w, spotReviewsResponse{Reviews: reviews}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBySpot", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) ListCurrent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reviews, err := h.service.ListByUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.writeError(w, "ListCurrent", err)
		return
	}

	if err := httputil.WriteSuccess(w, userReviewsResponse{Reviews: reviews}); err != nil {
		h.log.Error("failed to write success response", "handler", "ListCurrent", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.ReviewInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Create", err)
		return
	}

	review, err := h.service.Create(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId"), &in)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, review); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.ReviewInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "Update", err)
		return
	}

	review, err := h.service.Update(r.Context(), auth.UserID(r.Context()), ps.ByName("reviewId"), &in)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, review); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), auth.UserID(r.Context()), ps.ByName("reviewId")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	if err := httputil.WriteDeleted(w); err != nil {
		h.log.Error("failed to write deleted response", "handler", "Delete", "operation", "WriteDeleted", "error", err)
	}
}

func (h *ReviewHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReviewHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/spots/:spotId/reviews", h.ListBySpot)
	router.POST("/api/spots/:spotId/reviews", auth.RequireAuth(h.Create))
	router.GET("/api/reviews/current", auth.RequireAuth(h.ListCurrent))
	router.PUT("/api/reviews/:reviewId", auth.RequireAuth(h.Update))
	router.DELETE("/api/reviews/:reviewId", auth.RequireAuth(h.Delete))
}
