package handler

import (
	"net/http"
	"stayspot/internal/images/service"
	"stayspot/pkg/auth"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type ImageHandler struct {
	service service.ImageService
	log     *logger.Logger
}

func NewImageHandler(service service.ImageService, log *logger.Logger) *ImageHandler {
	return &ImageHandler{
		service: service,
		log:     log,
	}
}

func (h *ImageHandler) AddSpotImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.SpotImageInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "AddSpotImage", err)
		return
	}

	image, err := h.service.AddSpotImage(r.Context(), auth.UserID(r.Context()), ps.ByName("spotId"), &in)
	if err != nil {
		h.writeError(w, "AddSpotImage", err)
		return
	}

	if err := httputil.WriteCreated(w, image); err != nil {
		h.log.Error("failed to write created response", "handler", "AddSpotImage", "operation", "WriteCreated", "error", err)
	}
}

func (h *ImageHandler) AddReviewImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var in model.ReviewImageInput
	if err := httputil.DecodeJSON(r, &in); err != nil {
		h.writeError(w, "AddReviewImage", err)
		return
	}

	image, err := h.service.AddReviewImage(r.Context(), auth.UserID(r.Context()), ps.ByName("reviewId"), &in)
	if err != nil {
		h.writeError(w, "AddReviewImage", err)
		return
	}

	if err := httputil.WriteCreated(w, image); err != nil {
		h.log.Error("failed to write created response", "handler", "AddReviewImage", "operation", "WriteCreated", "error", err)
	}
}

func (h *ImageHandler) DeleteSpotImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteSpotImage(r.Context(), auth.UserID(r.Context()), ps.ByName("imageId")); err != nil {
		h.writeError(w, "DeleteSpotImage", err)
		return
	}

	if err := httputil.WriteDeleted(w); err != nil {
		h.log.Error("failed to write deleted response", "handler", "DeleteSpotImage", "operation", "WriteDeleted", "error", err)
	}
}

func (h *ImageHandler) DeleteReviewImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteReviewImage(r.Context(), auth.UserID(r.Context()), ps.ByName("imageId")); err != nil {
		h.writeError(w, "DeleteReviewImage", err)
		return
	}

	if err := httputil.WriteDeleted(w); err != nil {
		h.log.Error("failed to write deleted response", "handler", "DeleteReviewImage", "operation", "WriteDeleted", "error", err)
	}
}

func (h *ImageHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ImageHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/spots/:spotId/images", auth.RequireAuth(h.AddSpotImage))
	router.POST("/api/reviews/:reviewId/images", auth.RequireAuth(h.AddReviewImage))
	router.DELETE("/api/spot-images/:imageId", auth.RequireAuth(h.DeleteSpotImage))
	router.DELETE("/api/review-images/:imageId", auth.RequireAuth(h.DeleteReviewImage))
}
