package handler

import (
	"net/http"
	"stayspot/internal/users/service"
	"stayspot/pkg/auth"
	httputil "stayspot/pkg/http"
	"stayspot/pkg/logger"
	"stayspot/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type UserResponse struct {
	User *model.SessionUser `json:"user"`
}

type SessionHandler struct {
	service service.UserService
	tokens  *auth.TokenManager
	log     *logger.Logger
}

func NewSessionHandler(service service.UserService, tokens *auth.TokenManager, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		tokens:  tokens,
		log:     log,
	}
}

// Current answers {"user": null} for anonymous callers and for tokens whose
// user no longer exists.
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := UserResponse{}

	if userID := auth.UserID(r.Context()); userID != "" {
		user, err := h.service.GetByID(r.Context(), userID)
		if err == nil {
			session := user.Session()
			resp.User = &session
		}
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Current", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := h.startSession(w, user); err != nil {
		h.writeError(w, "Login", err)
		return
	}

	session := user.Session()
	if err := httputil.WriteSuccess(w, UserResponse{User: &session}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.tokens.ClearCookie(w)
	if err := httputil.WriteMessage(w, http.StatusOK, "success"); err != nil {
		h.log.Error("failed to write message response", "handler", "Logout", "operation", "WriteMessage", "error", err)
	}
}

func (h *SessionHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(w, "Signup", err)
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		h.writeError(w, "Signup", err)
		return
	}

	if err := h.startSession(w, user); err != nil {
		h.writeError(w, "Signup", err)
		return
	}

	session := user.Session()
	if err := httputil.WriteCreated(w, UserResponse{User: &session}); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "operation", "WriteCreated", "error", err)
	}
}

func (h *SessionHandler) startSession(w http.ResponseWriter, user *model.User) error {
	token, expiresAt, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	h.tokens.SetCookie(w, token, expiresAt)
	return nil
}

func (h *SessionHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *SessionHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/session", h.Current)
	router.POST("/api/session", h.Login)
	router.DELETE("/api/session", h.Logout)
	router.POST("/api/users", h.Signup)
}
